package models

// StatusPolicy decides whether an order may move between two statuses.
// The order workflow consults it on every status update, so a stricter
// state machine can replace the default without touching callers.
type StatusPolicy interface {
	CanTransition(from, to OrderStatus) bool
}

// PermissivePolicy allows any overwrite between non-terminal statuses, which
// matches the admin-override behavior the marketplace ships with. Delivered
// and cancelled orders are frozen.
type PermissivePolicy struct{}

func (PermissivePolicy) CanTransition(from, to OrderStatus) bool {
	if !to.Valid() {
		return false
	}
	switch from {
	case StatusDelivered, StatusCancelled:
		return false
	}
	return true
}

// StrictPolicy enforces the forward-only lifecycle with cancellation
// reachable from any non-terminal state.
type StrictPolicy struct{}

var strictNext = map[OrderStatus]map[OrderStatus]bool{
	StatusPending:        {StatusConfirmed: true, StatusCancelled: true},
	StatusConfirmed:      {StatusProcessing: true, StatusCancelled: true},
	StatusProcessing:     {StatusShipped: true, StatusCancelled: true},
	StatusShipped:        {StatusOutForDelivery: true, StatusCancelled: true},
	StatusOutForDelivery: {StatusDelivered: true, StatusCancelled: true},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

func (StrictPolicy) CanTransition(from, to OrderStatus) bool {
	return strictNext[from][to]
}
