package models

import "errors"

// Domain error sentinels. Repositories and services wrap these with context
// via fmt.Errorf("...: %w", ...); handlers match them with errors.Is to pick
// an HTTP status. Every one of them is scoped to a single request.
var (
	// ErrNotFound means the referenced entity has no record.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientStock means the requested quantity exceeds the
	// product's current stock.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrEmptyCart means checkout was attempted with no cart lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrUnauthorized means the actor does not own the resource.
	ErrUnauthorized = errors.New("unauthorized access")

	// ErrAlreadyExists means a unique record (registration, feedback)
	// is being duplicated.
	ErrAlreadyExists = errors.New("already exists")

	// ErrPaymentVerificationFailed means the payment gateway rejected the
	// verification call; no order mutation happens in that case.
	ErrPaymentVerificationFailed = errors.New("payment verification failed")

	// ErrInvalidStatus means a status transition was rejected by the
	// active transition policy, or the status value itself is unknown.
	ErrInvalidStatus = errors.New("invalid order status")
)
