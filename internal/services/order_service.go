package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"livemart/internal/models"
	"livemart/internal/repositories"
	"livemart/pkg/rabbitmq"

	"github.com/google/uuid"
)

// How long after placement a B2B order is expected to arrive when the buyer
// gives no date.
const b2bDeliveryOffsetDays = 7

// OrderService handles the order placement and status transition workflow.
//
// Placement runs inside one TxManager boundary: stock decrement, order
// insert, notification inserts and cart clearing either all commit or all
// roll back. Event publishing happens after commit and is best-effort.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	userRepo    repositories.UserRepository
	tx          repositories.TxManager
	publisher   rabbitmq.Publisher
	policy      models.StatusPolicy
}

// NewOrderService creates a new OrderService with the permissive status
// transition policy.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	userRepo repositories.UserRepository,
	tx repositories.TxManager,
	publisher rabbitmq.Publisher,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		tx:          tx,
		publisher:   publisher,
		policy:      models.PermissivePolicy{},
	}
}

// UsePolicy swaps the status transition policy.
func (s *OrderService) UsePolicy(policy models.StatusPolicy) {
	s.policy = policy
}

// orderLine is one (product, quantity) pair being purchased. The product is
// read inside the placement transaction so the price snapshot is current.
type orderLine struct {
	product  models.Product
	quantity int
}

// placement carries the per-entry-point defaults of the unified placeOrder.
type placement struct {
	numberPrefix string
	method       models.PaymentMethod
	instructions string
	deliveryDate *time.Time
	b2b          bool
}

// CreateOrder converts the user's cart into an order.
func (s *OrderService) CreateOrder(userID string, method models.PaymentMethod, instructions string, deliveryDate *time.Time) (*models.Order, error) {
	if !method.Valid() {
		return nil, fmt.Errorf("unknown payment method %q", method)
	}

	buyer, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	var created *models.Order
	err = s.tx.RunInTx(func(r repositories.TxRepos) error {
		cart, err := r.Carts.GetByUser(userID)
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("user %s: %w", userID, models.ErrEmptyCart)
		}
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return fmt.Errorf("user %s: %w", userID, models.ErrEmptyCart)
		}

		lines := make([]orderLine, 0, len(cart.Items))
		for _, item := range cart.Items {
			product, err := r.Products.GetByID(item.ProductID)
			if err != nil {
				return err
			}
			lines = append(lines, orderLine{product: *product, quantity: item.Quantity})
		}

		order, err := s.placeOrder(r, buyer, lines, placement{
			numberPrefix: "ORD-",
			method:       method,
			instructions: instructions,
			deliveryDate: deliveryDate,
		})
		if err != nil {
			return err
		}

		if err := r.Carts.ClearItems(cart.ID); err != nil {
			return err
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(rabbitmq.RouteOrderCreated, created)
	return created, nil
}

// CreateB2BOrder places a single-product order for a retailer buying from a
// wholesaler, bypassing the cart. Payment is cash on delivery and delivery
// defaults to a week out.
func (s *OrderService) CreateB2BOrder(buyerID, productID string, quantity int, instructions string) (*models.Order, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}

	buyer, err := s.userRepo.GetByID(buyerID)
	if err != nil {
		return nil, err
	}

	var created *models.Order
	err = s.tx.RunInTx(func(r repositories.TxRepos) error {
		product, err := r.Products.GetByID(productID)
		if err != nil {
			return err
		}

		delivery := time.Now().AddDate(0, 0, b2bDeliveryOffsetDays)
		order, err := s.placeOrder(r, buyer, []orderLine{{product: *product, quantity: quantity}}, placement{
			numberPrefix: "B2B-",
			method:       models.PaymentCashOnDelivery,
			instructions: instructions,
			deliveryDate: &delivery,
			b2b:          true,
		})
		if err != nil {
			return err
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(rabbitmq.RouteOrderCreated, created)
	return created, nil
}

// placeOrder is the single internal placement path both entry points adapt
// to. It decrements stock per line, persists the order with frozen prices,
// and appends the seller and buyer notifications, all through the tx-bound
// repositories.
func (s *OrderService) placeOrder(r repositories.TxRepos, buyer *models.User, lines []orderLine, p placement) (*models.Order, error) {
	var totalAmount float64
	items := make([]models.OrderItem, 0, len(lines))

	for _, line := range lines {
		if line.quantity < 1 {
			return nil, fmt.Errorf("invalid quantity %d for product %s", line.quantity, line.product.ID)
		}
		if err := r.Products.DecrementStock(line.product.ID, line.quantity); err != nil {
			return nil, err
		}
		items = append(items, models.OrderItem{
			ProductID: line.product.ID,
			Quantity:  line.quantity,
			Price:     line.product.Price, // Unit price at the time of order
		})
		totalAmount += line.product.Price * float64(line.quantity)
	}

	order := &models.Order{
		ID:                  uuid.New().String(),
		OrderNumber:         generateOrderNumber(p.numberPrefix),
		UserID:              buyer.ID,
		Items:               items,
		TotalAmount:         totalAmount,
		Status:              models.StatusPending,
		PaymentMethod:       p.method,
		PaymentCompleted:    p.method.Prepaid(),
		SpecialInstructions: p.instructions,
		DeliveryDate:        p.deliveryDate,
	}
	if err := r.Orders.Create(order); err != nil {
		return nil, err
	}

	if err := s.notifySellers(r, order, buyer, lines, p); err != nil {
		return nil, err
	}

	buyerNote := &models.Notification{
		UserID:         buyer.ID,
		Title:          "Order Placed Successfully",
		Message:        fmt.Sprintf("Your order #%s has been placed successfully. Total: ₹%.2f", order.OrderNumber, order.TotalAmount),
		Type:           models.NotificationOrderPlaced,
		RelatedOrderID: order.ID,
	}
	if err := r.Notifications.Create(buyerNote); err != nil {
		return nil, err
	}

	return order, nil
}

// notifySellers appends one notification per distinct seller across the
// order's lines, summarizing what that seller sold.
func (s *OrderService) notifySellers(r repositories.TxRepos, order *models.Order, buyer *models.User, lines []orderLine, p placement) error {
	type sellerDigest struct {
		amount float64
		parts  []string
	}
	digests := make(map[string]*sellerDigest)
	for _, line := range lines {
		d := digests[line.product.SellerID]
		if d == nil {
			d = &sellerDigest{}
			digests[line.product.SellerID] = d
		}
		d.parts = append(d.parts, fmt.Sprintf("%s (Qty: %d)", line.product.Name, line.quantity))
		d.amount += line.product.Price * float64(line.quantity)
	}

	title := "New Order Received"
	if p.b2b {
		title = "New B2B Order"
	}

	for sellerID, d := range digests {
		message := fmt.Sprintf(
			"Order #%s: %s ordered %s. Requested delivery: %s. Amount: ₹%.2f",
			order.OrderNumber,
			buyer.FullName,
			strings.Join(d.parts, ", "),
			formatDeliveryDate(order.DeliveryDate),
			d.amount,
		)
		note := &models.Notification{
			UserID:         sellerID,
			Title:          title,
			Message:        message,
			Type:           models.NotificationOrderReceived,
			RelatedOrderID: order.ID,
		}
		if err := r.Notifications.Create(note); err != nil {
			return err
		}
	}
	return nil
}

// UpdateOrderStatus overwrites an order's status if the active policy
// allows the transition, and tells the buyer about the change. A shipped
// order with a known delivery date gets the date appended as a reminder.
func (s *OrderService) UpdateOrderStatus(orderID string, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%q: %w", status, models.ErrInvalidStatus)
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	oldStatus := order.Status
	if !s.policy.CanTransition(oldStatus, status) {
		return nil, fmt.Errorf("transition %s -> %s: %w", oldStatus, status, models.ErrInvalidStatus)
	}

	err = s.tx.RunInTx(func(r repositories.TxRepos) error {
		if err := r.Orders.UpdateStatus(orderID, status); err != nil {
			return err
		}

		message := fmt.Sprintf("Your order #%s status has been updated from %s to %s.",
			order.OrderNumber, oldStatus, status)
		if status == models.StatusShipped && order.DeliveryDate != nil {
			message += fmt.Sprintf(" Expected delivery: %s", order.DeliveryDate.Format("2006-01-02"))
		}

		return r.Notifications.Create(&models.Notification{
			UserID:         order.UserID,
			Title:          "Order Status Update",
			Message:        message,
			Type:           models.NotificationOrderUpdate,
			RelatedOrderID: order.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	order.Status = status
	s.publishEvent(rabbitmq.RouteOrderStatusUpdated, order)
	return order, nil
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// GetOrderForUser retrieves an order only if the given user owns it.
func (s *OrderService) GetOrderForUser(orderID, userID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order %s does not belong to user %s: %w", orderID, userID, models.ErrUnauthorized)
	}
	return order, nil
}

// GetUserOrders retrieves a user's orders, newest first.
func (s *OrderService) GetUserOrders(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// GetSellerOrders retrieves orders containing any of the seller's products.
func (s *OrderService) GetSellerOrders(sellerID string) ([]models.Order, error) {
	products, err := s.productRepo.GetBySeller(sellerID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return s.orderRepo.GetByProducts(ids)
}

// publishEvent sends an order event to the queue. Failures are logged and
// swallowed: the order is already committed and the event stream is
// advisory.
func (s *OrderService) publishEvent(routingKey string, order *models.Order) {
	if s.publisher == nil {
		log.Println("RabbitMQ client is not initialized. Skipping message publication.")
		return
	}
	payload := map[string]interface{}{
		"orderID":     order.ID,
		"orderNumber": order.OrderNumber,
		"userID":      order.UserID,
		"status":      order.Status,
		"total":       order.TotalAmount,
	}
	if err := s.publisher.Publish(routingKey, payload); err != nil {
		log.Printf("Warning: Failed to publish %s event for order %s: %v", routingKey, order.ID, err)
	}
}

// generateOrderNumber builds the human-readable order token: the prefix plus
// the first eight hex characters of a fresh UUID, uppercased.
func generateOrderNumber(prefix string) string {
	return prefix + strings.ToUpper(uuid.New().String()[:8])
}

// formatDeliveryDate renders an optional delivery date for messages.
func formatDeliveryDate(t *time.Time) string {
	if t == nil {
		return "not specified"
	}
	return t.Format("2006-01-02")
}
