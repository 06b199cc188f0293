package repositories

import "gorm.io/gorm"

// GormTxManager implements TxManager on top of a database transaction.
type GormTxManager struct {
	db *gorm.DB
}

// NewGormTxManager creates a new instance of GormTxManager.
func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{
		db: db,
	}
}

// RunInTx opens a database transaction and rebinds the repositories to it,
// so all repository calls inside fn share one commit/rollback.
func (m *GormTxManager) RunInTx(fn func(r TxRepos) error) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		return fn(TxRepos{
			Products:      NewGORMProductRepository(tx),
			Carts:         NewGORMCartRepository(tx),
			Orders:        NewGORMOrderRepository(tx),
			Notifications: NewGORMNotificationRepository(tx),
		})
	})
}
