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

type OrderDB struct {
	ID            sql.NullString  `db:"id"`
	UserID        sql.NullString  `db:"user_id"`
	ProductID     sql.NullString  `db:"product_id"`
	Amount        sql.NullFloat64 `db:"amount"`
	Status        sql.NullString  `db:"status"`
	QRISPaymentID sql.NullString  `db:"qris_payment_id"`
	CreatedAt     time.Time       `db:"created_at"`
}

type OrderWithDetailsDB struct {
	OrderDB
	ProductName sql.NullString `db:"product_name"`
	Email       sql.NullString `db:"email"`
	Password    sql.NullString `db:"password"`
}

func (r *orderRepo) CreateOrder(ctx context.Context, o entity.Order) error {
	requestID := contextPkg.GetRequestID(ctx)

	var paymentID interface{}
	if o.QRISPaymentID != nil {
		paymentID = *o.QRISPaymentID
	}

	argsKV := map[string]interface{}{
		"id":              o.ID,
		"user_id":         o.UserID,
		"product_id":      o.ProductID,
		"amount":          o.Amount,
		"status":          o.Status,
		"qris_payment_id": paymentID,
		"created_at":      o.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateOrder, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateOrder")
		return err
	}

	query = r.q.Rebind(query)

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating order")
		return err
	}

	return nil
}

func (r *orderRepo) GetOrderByPaymentID(ctx context.Context, paymentID string) (entity.Order, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var row OrderDB

	argsKV := map[string]interface{}{
		"qris_payment_id": paymentID,
	}

	query, args, err := sqlx.Named(queryGetOrderByPaymentID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetOrderByPaymentID named query preparation err")
		return entity.Order{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Order{}, order.ErrOrderNotFound
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetOrderByPaymentID execution err")

		return entity.Order{}, err
	}

	return makeOrder(row), nil
}

func (r *orderRepo) ListOrdersByUser(ctx context.Context, userID string) ([]OrderWithDetails, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []OrderWithDetailsDB

	argsKV := map[string]interface{}{
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryListOrdersByUser, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListOrdersByUser named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListOrdersByUser execution err")
		return nil, err
	}

	orders := make([]OrderWithDetails, 0, len(rows))
	for _, row := range rows {
		detail := OrderWithDetails{
			Order:       makeOrder(row.OrderDB),
			ProductName: row.ProductName.String,
		}

		if row.Email.Valid {
			email := row.Email.String
			detail.Email = &email
		}
		if row.Password.Valid {
			password := row.Password.String
			detail.Password = &password
		}

		orders = append(orders, detail)
	}

	return orders, nil
}

// DecrementStock refuses to go below zero. Returns whether a unit was taken.
func (r *orderRepo) DecrementStock(ctx context.Context, productID string) (bool, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id": productID,
	}

	query, args, err := sqlx.Named(queryDecrementStock, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DecrementStock named query preparation err")
		return false, err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when decrementing stock")
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func makeOrder(row OrderDB) entity.Order {
	o := entity.Order{
		ID:        row.ID.String,
		UserID:    row.UserID.String,
		ProductID: row.ProductID.String,
		Amount:    row.Amount.Float64,
		Status:    row.Status.String,
		CreatedAt: row.CreatedAt,
	}

	if row.QRISPaymentID.Valid {
		paymentID := row.QRISPaymentID.String
		o.QRISPaymentID = &paymentID
	}

	return o
}
