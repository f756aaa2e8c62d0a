package orderRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"waroengg-be/internal/api/order"
	"waroengg-be/internal/entity"
	contextPkg "waroengg-be/pkg/context"
)

type InventoryItemDB struct {
	ID        sql.NullString `db:"id"`
	ProductID sql.NullString `db:"product_id"`
	Email     sql.NullString `db:"email"`
	Password  sql.NullString `db:"password"`
	IsSold    sql.NullBool   `db:"is_sold"`
	OrderID   sql.NullString `db:"order_id"`
	CreatedAt time.Time      `db:"created_at"`
}

// ClaimItem marks the oldest unsold credential for the product as sold and
// binds it to the order. SKIP LOCKED keeps concurrent checkouts from
// fighting over the same row; no row left means the product is sold out.
func (r *inventoryRepo) ClaimItem(ctx context.Context, productID, orderID string) (entity.InventoryItem, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var row InventoryItemDB

	argsKV := map[string]interface{}{
		"product_id": productID,
		"order_id":   orderID,
	}

	query, args, err := sqlx.Named(queryClaimInventoryItem, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ClaimItem named query preparation err")
		return entity.InventoryItem{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"product_id": productID,
			}).Warn("No unsold inventory left to claim")
			return entity.InventoryItem{}, order.ErrOutOfStock
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ClaimItem execution err")

		return entity.InventoryItem{}, err
	}

	item := entity.InventoryItem{
		ID:        row.ID.String,
		ProductID: row.ProductID.String,
		Email:     row.Email.String,
		Password:  row.Password.String,
		IsSold:    row.IsSold.Bool,
		CreatedAt: row.CreatedAt,
	}

	if row.OrderID.Valid {
		claimedBy := row.OrderID.String
		item.OrderID = &claimedBy
	}

	return item, nil
}
