package productRepository

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
		Product:  &productRepo{q: sqlExecutor, log: r.log},
		Banner:   &bannerRepo{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Product interface {
		ListProducts(ctx context.Context, category string, bestSeller bool) ([]entity.Product, error)
		GetProductByID(ctx context.Context, id string) (entity.Product, error)
		UpdateProductImage(ctx context.Context, id, imageURL string) error
	}

	Banner interface {
		ListActiveBanners(ctx context.Context) ([]entity.Banner, error)
		UpdateBannerImage(ctx context.Context, id, imageURL string) error
	}

	Commit   func() error
	Rollback func() error
}

type productRepo struct {
	q   SQLExecutor
	log *logrus.Logger
}

type bannerRepo struct {
	q   SQLExecutor
	log *logrus.Logger
}
