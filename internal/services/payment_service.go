package services

import (
	"strings"

	"github.com/google/uuid"
)

// PaymentService simulates the payment gateway. Every payment in demo mode
// succeeds; the order workflow only ever treats Verify as a boolean gate.
type PaymentService struct{}

// NewPaymentService creates a new PaymentService.
func NewPaymentService() *PaymentService {
	return &PaymentService{}
}

// CreatePendingPayment registers a payment attempt for the amount and
// returns its reference. The amount is echoed back by the handler; the demo
// gateway does not track it.
func (s *PaymentService) CreatePendingPayment(amount float64) string {
	return "DEMO_ORDER_" + randomToken()
}

// ProcessPayment simulates the gateway charging the given method and
// returns the payment identifier.
func (s *PaymentService) ProcessPayment(paymentRef, method string) string {
	return "DEMO_PAY_" + randomToken()
}

// Verify is the authoritative check the order workflow gates on. A single
// call is final; there is no retry. In demo mode any non-empty pair passes.
func (s *PaymentService) Verify(paymentRef, paymentID string) bool {
	return paymentRef != "" && paymentID != ""
}

func randomToken() string {
	return strings.ToUpper(uuid.New().String()[:8])
}
