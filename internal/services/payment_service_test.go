package services_test

import (
	"strings"
	"testing"

	"livemart/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestPaymentService_DemoFlow(t *testing.T) {
	service := services.NewPaymentService()

	ref := service.CreatePendingPayment(499.0)
	assert.True(t, strings.HasPrefix(ref, "DEMO_ORDER_"))
	assert.Len(t, ref, len("DEMO_ORDER_")+8)

	paymentID := service.ProcessPayment(ref, "UPI")
	assert.True(t, strings.HasPrefix(paymentID, "DEMO_PAY_"))

	assert.True(t, service.Verify(ref, paymentID))

	// Each attempt gets a distinct reference.
	assert.NotEqual(t, ref, service.CreatePendingPayment(499.0))
}

func TestPaymentService_VerifyRejectsMissingIdentifiers(t *testing.T) {
	service := services.NewPaymentService()

	assert.False(t, service.Verify("", "DEMO_PAY_AB12CD34"))
	assert.False(t, service.Verify("DEMO_ORDER_AB12CD34", ""))
	assert.False(t, service.Verify("", ""))
}
