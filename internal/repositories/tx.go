package repositories

// TxRepos bundles the repositories that participate in the order placement
// boundary. Everything done through a TxRepos inside RunInTx commits or
// rolls back as one unit.
type TxRepos struct {
	Products      ProductRepository
	Carts         CartRepository
	Orders        OrderRepository
	Notifications NotificationRepository
}

// TxManager runs a function inside one consistency boundary. If fn returns
// an error, every mutation made through the passed TxRepos is undone.
type TxManager interface {
	RunInTx(fn func(r TxRepos) error) error
}
