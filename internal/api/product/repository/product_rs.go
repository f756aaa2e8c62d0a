package productRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"waroengg-be/internal/api/product"
	"waroengg-be/internal/entity"
	contextPkg "waroengg-be/pkg/context"
)

type ProductDB struct {
	ID           sql.NullString  `db:"id"`
	Name         sql.NullString  `db:"name"`
	Description  sql.NullString  `db:"description"`
	Price        sql.NullFloat64 `db:"price"`
	Category     sql.NullString  `db:"category"`
	ImageURL     sql.NullString  `db:"image_url"`
	IsBestSeller sql.NullBool    `db:"is_best_seller"`
	Stock        sql.NullInt64   `db:"stock"`
	CreatedAt    time.Time       `db:"created_at"`
}

func (r *productRepo) ListProducts(ctx context.Context, category string, bestSeller bool) ([]entity.Product, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []ProductDB

	argsKV := map[string]interface{}{
		"category":    category,
		"best_seller": bestSeller,
	}

	query, args, err := sqlx.Named(queryListProducts, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListProducts named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListProducts execution err")
		return nil, err
	}

	products := make([]entity.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, makeProduct(row))
	}

	return products, nil
}

func (r *productRepo) GetProductByID(ctx context.Context, id string) (entity.Product, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var row ProductDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetProductByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetProductByID named query preparation err")
		return entity.Product{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"product_id": id,
			}).Warn("GetProductByID no rows found")
			return entity.Product{}, product.ErrProductNotFound
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetProductByID execution err")

		return entity.Product{}, err
	}

	return makeProduct(row), nil
}

func (r *productRepo) UpdateProductImage(ctx context.Context, id, imageURL string) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":        id,
		"image_url": imageURL,
	}

	query, args, err := sqlx.Named(queryUpdateProductImage, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateProductImage named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when updating product image")
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return product.ErrProductNotFound
	}

	return nil
}

func makeProduct(row ProductDB) entity.Product {
	return entity.Product{
		ID:           row.ID.String,
		Name:         row.Name.String,
		Description:  row.Description.String,
		Price:        row.Price.Float64,
		Category:     row.Category.String,
		ImageURL:     row.ImageURL.String,
		IsBestSeller: row.IsBestSeller.Bool,
		Stock:        int(row.Stock.Int64),
		CreatedAt:    row.CreatedAt,
	}
}
