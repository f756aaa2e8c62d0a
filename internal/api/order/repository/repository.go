package orderRepository

import (
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"waroengg-be/internal/entity"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Order:     &orderRepo{q: sqlExecutor, log: r.log},
		Inventory: &inventoryRepo{q: sqlExecutor, log: r.log},
		Profile:   &profileRepo{q: sqlExecutor, log: r.log},
		Deposit:   &depositRepo{q: sqlExecutor, log: r.log},
		Commit:    commitFunc,
		Rollback:  rollbackFunc,
	}, nil
}

type Client struct {
	Order interface {
		CreateOrder(ctx context.Context, order entity.Order) error
		GetOrderByPaymentID(ctx context.Context, paymentID string) (entity.Order, error)
		ListOrdersByUser(ctx context.Context, userID string) ([]OrderWithDetails, error)
		DecrementStock(ctx context.Context, productID string) (bool, error)
	}

	Inventory interface {
		ClaimItem(ctx context.Context, productID, orderID string) (entity.InventoryItem, error)
	}

	Profile interface {
		DebitBalance(ctx context.Context, userID string, amount float64) (bool, error)
		CreditBalance(ctx context.Context, userID string, amount float64) error
	}

	Deposit interface {
		CreateDeposit(ctx context.Context, deposit entity.Deposit) error
		GetDepositByPaymentID(ctx context.Context, paymentID string) (entity.Deposit, error)
	}

	Commit   func() error
	Rollback func() error
}

type orderRepo struct {
	q   SQLExecutor
	log *logrus.Logger
}

type inventoryRepo struct {
	q   SQLExecutor
	log *logrus.Logger
}

type profileRepo struct {
	q   SQLExecutor
	log *logrus.Logger
}

type depositRepo struct {
	q   SQLExecutor
	log *logrus.Logger
}

// OrderWithDetails is one row of a user's purchase history, carrying the
// product name and the delivered credential when fulfillment claimed one.
type OrderWithDetails struct {
	Order       entity.Order
	ProductName string
	Email       *string
	Password    *string
}
