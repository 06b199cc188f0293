package repositories

import "sync"

// MockTxManager implements TxManager over the in-memory repositories. It
// snapshots their state before running fn and restores the snapshots when fn
// fails, so tests get the same all-or-nothing contract as the database.
type MockTxManager struct {
	products      *MockProductRepository
	carts         *MockCartRepository
	orders        *MockOrderRepository
	notifications *MockNotificationRepository
	mu            sync.Mutex
}

// NewMockTxManager creates a new instance of MockTxManager over the given
// in-memory repositories.
func NewMockTxManager(
	products *MockProductRepository,
	carts *MockCartRepository,
	orders *MockOrderRepository,
	notifications *MockNotificationRepository,
) *MockTxManager {
	return &MockTxManager{
		products:      products,
		carts:         carts,
		orders:        orders,
		notifications: notifications,
	}
}

// RunInTx serializes transactions behind one mutex, runs fn against the live
// repositories, and rolls everything back to the snapshots on error.
func (m *MockTxManager) RunInTx(fn func(r TxRepos) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	productState := m.products.snapshot()
	cartState, itemState := m.carts.snapshot()
	orderState := m.orders.snapshot()
	notificationState := m.notifications.snapshot()

	err := fn(TxRepos{
		Products:      m.products,
		Carts:         m.carts,
		Orders:        m.orders,
		Notifications: m.notifications,
	})
	if err != nil {
		m.products.restore(productState)
		m.carts.restore(cartState, itemState)
		m.orders.restore(orderState)
		m.notifications.restore(notificationState)
		return err
	}
	return nil
}
