package services_test

import (
	"strings"
	"sync"
	"testing"
	"time"

	"livemart/internal/models"
	"livemart/internal/repositories"
	"livemart/internal/services"

	"github.com/stretchr/testify/assert"
)

// recordingPublisher captures published routing keys so tests can assert on
// the event stream without a broker.
type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *recordingPublisher) Publish(routingKey string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, routingKey)
	return nil
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

type orderFixture struct {
	service       *services.OrderService
	products      *repositories.MockProductRepository
	carts         *repositories.MockCartRepository
	orders        *repositories.MockOrderRepository
	notifications *repositories.MockNotificationRepository
	users         *repositories.MockUserRepository
	publisher     *recordingPublisher
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	f := &orderFixture{
		products:      repositories.NewMockProductRepository(),
		carts:         repositories.NewMockCartRepository(),
		orders:        repositories.NewMockOrderRepository(),
		notifications: repositories.NewMockNotificationRepository(),
		users:         repositories.NewMockUserRepository(),
		publisher:     &recordingPublisher{},
	}
	tx := repositories.NewMockTxManager(f.products, f.carts, f.orders, f.notifications)
	f.service = services.NewOrderService(f.orders, f.products, f.users, tx, f.publisher)
	return f
}

func (f *orderFixture) seedUser(t *testing.T, id string, role models.UserRole) {
	t.Helper()
	err := f.users.Create(&models.User{
		ID:       id,
		FullName: "User " + id,
		Email:    id + "@example.com",
		Password: "hashed",
		Role:     role,
		Enabled:  true,
	})
	assert.NoError(t, err)
}

func (f *orderFixture) seedCatalog(t *testing.T, id, sellerID string, price float64, stock int) {
	t.Helper()
	err := f.products.Create(&models.Product{
		ID:            id,
		Name:          "Product " + id,
		Category:      "general",
		Price:         price,
		StockQuantity: stock,
		SellerID:      sellerID,
		Available:     true,
	})
	assert.NoError(t, err)
}

func (f *orderFixture) seedCart(t *testing.T, userID string, lines map[string]int) {
	t.Helper()
	cart := &models.Cart{UserID: userID}
	assert.NoError(t, f.carts.Create(cart))
	for productID, quantity := range lines {
		assert.NoError(t, f.carts.SaveItem(&models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
		}))
	}
}

func (f *orderFixture) stockOf(t *testing.T, productID string) int {
	t.Helper()
	product, err := f.products.GetByID(productID)
	assert.NoError(t, err)
	return product.StockQuantity
}

func TestCreateOrder_FromCart(t *testing.T) {
	f := newOrderFixture(t)
	f.seedUser(t, "buyer-1", models.RoleCustomer)
	f.seedCatalog(t, "prod-1", "seller-1", 10.0, 10)
	f.seedCatalog(t, "prod-2", "seller-1", 5.0, 10)
	f.seedCart(t, "buyer-1", map[string]int{"prod-1": 2, "prod-2": 1})

	order, err := f.service.CreateOrder("buyer-1", models.PaymentCashOnDelivery, "leave at door", nil)
	assert.NoError(t, err)

	// 2 x 10.00 + 1 x 5.00
	assert.Equal(t, 25.0, order.TotalAmount)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	assert.Len(t, order.OrderNumber, len("ORD-")+8)
	assert.False(t, order.PaymentCompleted)
	assert.Equal(t, "leave at door", order.SpecialInstructions)
	assert.Len(t, order.Items, 2)

	// Stock decremented per line.
	assert.Equal(t, 8, f.stockOf(t, "prod-1"))
	assert.Equal(t, 9, f.stockOf(t, "prod-2"))

	// Cart emptied.
	cart, err := f.carts.GetByUser("buyer-1")
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)

	// One event on the order stream.
	assert.Equal(t, []string{"order.created"}, f.publisher.published())
}

func TestCreateOrder_PrepaidMarksPaymentCompleted(t *testing.T) {
	f := newOrderFixture(t)
	f.seedUser(t, "buyer-1", models.RoleCustomer)
	f.seedCatalog(t, "prod-1", "seller-1", 10.0, 10)
	f.seedCart(t, "buyer-1", map[string]int{"prod-1": 1})

	order, err := f.service.CreateOrder("buyer-1", models.PaymentUPI, "", nil)
	assert.NoError(t, err)
	assert.True(t, order.PaymentCompleted)
}

func TestCreateOrder_PriceSnapshotSurvivesCatalogChange(t *testing.T) {
	f := newOrderFixture(t)
	f.seedUser(t, "buyer-1", models.RoleCustomer)
	f.seedCatalog(t, "prod-1", "seller-1", 10.0, 10)
	f.seedCart(t, "buyer-1", map[string]int{"prod-1": 2})

	order, err := f.service.CreateOrder("buyer-1", models.PaymentCashOnDelivery, "", nil)
	assert.NoError(t, err)

	// A later price change must not affect the stored order.
	product, err := f.products.GetByID("prod-1")
	assert.NoError(t, err)
	product.Price = 99.0
	assert.NoError(t, f.products.Update(product))

	stored, err := f.orders.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, 10.0, stored.Items[0].Price)
	assert.Equal(t, 20.0, stored.TotalAmount)
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	f := newOrderFixture(t)
	f.seedUser(t, "buyer-1", models.RoleCustomer)

	// No cart at all.
	_, err := f.service.CreateOrder("buyer-1", models.PaymentCashOnDelivery, "", nil)
	assert.ErrorIs(t, err, models.ErrEmptyCart)

	// A cart with no lines behaves the same.
	f.seedCart(t, "buyer-1", nil)
	_, err = f.service.CreateOrder("buyer-1", models.PaymentCashOnDelivery, "", nil)
	assert.ErrorIs(t, err, models.ErrEmptyCart)

	orders, err := f.orders.GetAll()
	assert.NoError(t, err)
	assert.Empty(t, orders)
	assert.Empty(t, f.publisher.published())
}

func TestCreateOrder_UnknownPaymentMethod(t *testing.T) {
	f := newOrderFixture(t)
	f.seedUser(t, "buyer-1", models.RoleCustomer)

	_, err := f.service.CreateOrder("buyer-1", models.PaymentMethod("BARTER"), "", nil)
	assert.Error(t, err)
}

func TestCreateOrder_InsufficientStockRollsBackEverything(t *testing.T) {
	f := newOrderFixture(t)
	f.seedUser(t, "buyer-1", models.RoleCustomer)
	f.seedCatalog(t, "prod-1", "seller-1", 10.0, 10)
	f.seedCatalog(t, "prod-2", "seller-1", 5.0, 3)
	f.seedCart(t, "buyer-1", map[string]int{"prod-1": 2, "prod-2": 5})

	_, err := f.service.CreateOrder("buyer-1", models.PaymentCashOnDelivery, "", nil)
	assert.ErrorIs(t, err, models.ErrInsufficientStock)

	// All-or-nothing: the first line's decrement is rolled back too.
	assert.Equal(t, 10, f.stockOf(t, "prod-1"))
	assert.Equal(t, 3, f.stockOf(t, "prod-2"))

	orders, err := f.orders.GetAll()
	assert.NoError(t, err)
	assert.Empty(t, orders)

	sellerNotes, err := f.notifications.GetByUser("seller-1")
	assert.NoError(t, err)
	assert.Empty(t, sellerNotes)

	// The cart keeps its lines so the buyer can adjust and retry.
	cart, err := f.carts.GetByUser("buyer-1")
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 2)

	assert.Empty(t, f.publisher.published())
}

func TestCreateOrder_NotifiesEachSellerOnce(t *testing.T) {
	f := newOrderFixture(t)
	f.seedUser(t, "buyer-1", models.RoleCustomer)
	f.seedCatalog(t, "prod-1", "seller-1", 10.0, 10)
	f.seedCatalog(t, "prod-2", "seller-1", 5.0, 10)
	f.seedCatalog(t, "prod-3", "seller-2", 7.0, 10)
	f.seedCart(t, "buyer-1", map[string]int{"prod-1": 1, "prod-2": 2, "prod-3": 1})

	order, err := f.service.CreateOrder("buyer-1", models.PaymentCashOnDelivery, "", nil)
	assert.NoError(t, err)

	// seller-1 sold two products but gets a single digest.
	notes, err := f.notifications.GetByUser("seller-1")
	assert.NoError(t, err)
	assert.Len(t, notes, 1)
	assert.Equal(t, "New Order Received", notes[0].Title)
	assert.Equal(t, models.NotificationOrderReceived, notes[0].Type)
	assert.Contains(t, notes[0].Message, order.OrderNumber)
	assert.Contains(t, notes[0].Message, "Product prod-1 (Qty: 1)")
	assert.Contains(t, notes[0].Message, "Product prod-2 (Qty: 2)")
	assert.Contains(t, notes[0].Message, "₹20.00")

	notes, err = f.notifications.GetByUser("seller-2")
	assert.NoError(t, err)
	assert.Len(t, notes, 1)
	assert.Contains(t, notes[0].Message, "₹7.00")

	// The buyer gets the confirmation with the grand total.
	notes, err = f.notifications.GetByUser("buyer-1")
	assert.NoError(t, err)
	assert.Len(t, notes, 1)
	assert.Equal(t, "Order Placed Successfully", notes[0].Title)
	assert.Equal(t, models.NotificationOrderPlaced, notes[0].Type)
	assert.Contains(t, notes[0].Message, "₹27.00")
	assert.Equal(t, order.ID, notes[0].RelatedOrderID)
}

func TestCreateB2BOrder_Defaults(t *testing.T) {
	f := newOrderFixture(t)
	f.seedUser(t, "retailer-1", models.RoleRetailer)
	f.seedCatalog(t, "bulk-1", "wholesaler-1", 100.0, 50)

	before := time.Now()
	order, err := f.service.CreateB2BOrder("retailer-1", "bulk-1", 20, "dock 4")
	assert.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderNumber, "B2B-"))
	assert.Equal(t, models.PaymentCashOnDelivery, order.PaymentMethod)
	assert.False(t, order.PaymentCompleted)
	assert.Equal(t, 2000.0, order.TotalAmount)
	assert.Equal(t, 30, f.stockOf(t, "bulk-1"))

	// Delivery defaults to a week out.
	if assert.NotNil(t, order.DeliveryDate) {
		expected := before.AddDate(0, 0, 7)
		assert.WithinDuration(t, expected, *order.DeliveryDate, time.Minute)
	}

	notes, err := f.notifications.GetByUser("wholesaler-1")
	assert.NoError(t, err)
	assert.Len(t, notes, 1)
	assert.Equal(t, "New B2B Order", notes[0].Title)
	assert.Contains(t, notes[0].Message, "Requested delivery: ")
}

func TestCreateB2BOrder_InvalidQuantity(t *testing.T) {
	f := newOrderFixture(t)
	f.seedUser(t, "retailer-1", models.RoleRetailer)
	f.seedCatalog(t, "bulk-1", "wholesaler-1", 100.0, 50)

	_, err := f.service.CreateB2BOrder("retailer-1", "bulk-1", 0, "")
	assert.Error(t, err)
	assert.Equal(t, 50, f.stockOf(t, "bulk-1"))
}

func TestCreateB2BOrder_ConcurrentPlacementNeverOversells(t *testing.T) {
	f := newOrderFixture(t)
	f.seedUser(t, "retailer-1", models.RoleRetailer)
	f.seedUser(t, "retailer-2", models.RoleRetailer)
	f.seedCatalog(t, "bulk-1", "wholesaler-1", 100.0, 5)

	// Two buyers race for stock that only covers one of them.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, buyerID := range []string{"retailer-1", "retailer-2"} {
		wg.Add(1)
		go func(i int, buyerID string) {
			defer wg.Done()
			_, errs[i] = f.service.CreateB2BOrder(buyerID, "bulk-1", 5, "")
		}(i, buyerID)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, models.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 0, f.stockOf(t, "bulk-1"))
}

func TestUpdateOrderStatus_NotifiesBuyer(t *testing.T) {
	f := newOrderFixture(t)
	f.seedUser(t, "buyer-1", models.RoleCustomer)
	f.seedCatalog(t, "prod-1", "seller-1", 10.0, 10)
	f.seedCart(t, "buyer-1", map[string]int{"prod-1": 1})

	order, err := f.service.CreateOrder("buyer-1", models.PaymentCashOnDelivery, "", nil)
	assert.NoError(t, err)

	updated, err := f.service.UpdateOrderStatus(order.ID, models.StatusConfirmed)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, updated.Status)

	stored, err := f.orders.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, stored.Status)

	notes, err := f.notifications.GetByUser("buyer-1")
	assert.NoError(t, err)
	assert.Len(t, notes, 2) // placement note + status note
	var statusNote *models.Notification
	for i := range notes {
		if notes[i].Type == models.NotificationOrderUpdate {
			statusNote = &notes[i]
		}
	}
	if assert.NotNil(t, statusNote) {
		assert.Contains(t, statusNote.Message, "from PENDING to CONFIRMED")
		assert.Equal(t, order.ID, statusNote.RelatedOrderID)
	}

	assert.Equal(t, []string{"order.created", "order.status_updated"}, f.publisher.published())
}

func TestUpdateOrderStatus_ShippedIncludesDeliveryReminder(t *testing.T) {
	f := newOrderFixture(t)
	f.seedUser(t, "buyer-1", models.RoleCustomer)
	f.seedCatalog(t, "prod-1", "seller-1", 10.0, 10)
	f.seedCart(t, "buyer-1", map[string]int{"prod-1": 1})

	delivery := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	order, err := f.service.CreateOrder("buyer-1", models.PaymentCashOnDelivery, "", &delivery)
	assert.NoError(t, err)

	_, err = f.service.UpdateOrderStatus(order.ID, models.StatusShipped)
	assert.NoError(t, err)

	notes, err := f.notifications.GetByUser("buyer-1")
	assert.NoError(t, err)
	found := false
	for _, note := range notes {
		if note.Type == models.NotificationOrderUpdate {
			assert.Contains(t, note.Message, "Expected delivery: 2026-09-15")
			found = true
		}
	}
	assert.True(t, found)
}

func TestUpdateOrderStatus_RejectsUnknownStatus(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.service.UpdateOrderStatus("any", models.OrderStatus("TELEPORTED"))
	assert.ErrorIs(t, err, models.ErrInvalidStatus)
}

func TestUpdateOrderStatus_TerminalStatesAreFrozen(t *testing.T) {
	f := newOrderFixture(t)
	f.seedUser(t, "buyer-1", models.RoleCustomer)
	f.seedCatalog(t, "prod-1", "seller-1", 10.0, 10)
	f.seedCart(t, "buyer-1", map[string]int{"prod-1": 1})

	order, err := f.service.CreateOrder("buyer-1", models.PaymentCashOnDelivery, "", nil)
	assert.NoError(t, err)

	_, err = f.service.UpdateOrderStatus(order.ID, models.StatusDelivered)
	assert.NoError(t, err)

	_, err = f.service.UpdateOrderStatus(order.ID, models.StatusConfirmed)
	assert.ErrorIs(t, err, models.ErrInvalidStatus)

	stored, err := f.orders.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, stored.Status)
}

func TestUpdateOrderStatus_StrictPolicySkipsNoStage(t *testing.T) {
	f := newOrderFixture(t)
	f.seedUser(t, "buyer-1", models.RoleCustomer)
	f.seedCatalog(t, "prod-1", "seller-1", 10.0, 10)
	f.seedCart(t, "buyer-1", map[string]int{"prod-1": 1})

	order, err := f.service.CreateOrder("buyer-1", models.PaymentCashOnDelivery, "", nil)
	assert.NoError(t, err)

	f.service.UsePolicy(models.StrictPolicy{})

	// PENDING cannot jump straight to SHIPPED under the strict policy.
	_, err = f.service.UpdateOrderStatus(order.ID, models.StatusShipped)
	assert.ErrorIs(t, err, models.ErrInvalidStatus)

	_, err = f.service.UpdateOrderStatus(order.ID, models.StatusConfirmed)
	assert.NoError(t, err)
	_, err = f.service.UpdateOrderStatus(order.ID, models.StatusCancelled)
	assert.NoError(t, err)
}

func TestGetOrderForUser_OwnershipEnforced(t *testing.T) {
	f := newOrderFixture(t)
	f.seedUser(t, "buyer-1", models.RoleCustomer)
	f.seedCatalog(t, "prod-1", "seller-1", 10.0, 10)
	f.seedCart(t, "buyer-1", map[string]int{"prod-1": 1})

	order, err := f.service.CreateOrder("buyer-1", models.PaymentCashOnDelivery, "", nil)
	assert.NoError(t, err)

	got, err := f.service.GetOrderForUser(order.ID, "buyer-1")
	assert.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = f.service.GetOrderForUser(order.ID, "buyer-2")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestGetSellerOrders(t *testing.T) {
	f := newOrderFixture(t)
	f.seedUser(t, "buyer-1", models.RoleCustomer)
	f.seedCatalog(t, "prod-1", "seller-1", 10.0, 10)
	f.seedCatalog(t, "prod-2", "seller-2", 5.0, 10)
	f.seedCart(t, "buyer-1", map[string]int{"prod-1": 1})

	order, err := f.service.CreateOrder("buyer-1", models.PaymentCashOnDelivery, "", nil)
	assert.NoError(t, err)

	received, err := f.service.GetSellerOrders("seller-1")
	assert.NoError(t, err)
	assert.Len(t, received, 1)
	assert.Equal(t, order.ID, received[0].ID)

	received, err = f.service.GetSellerOrders("seller-2")
	assert.NoError(t, err)
	assert.Empty(t, received)
}
