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

type DepositDB struct {
	ID            sql.NullString  `db:"id"`
	UserID        sql.NullString  `db:"user_id"`
	Amount        sql.NullFloat64 `db:"amount"`
	Status        sql.NullString  `db:"status"`
	QRISPaymentID sql.NullString  `db:"qris_payment_id"`
	CreatedAt     time.Time       `db:"created_at"`
}

func (r *depositRepo) CreateDeposit(ctx context.Context, d entity.Deposit) error {
	requestID := contextPkg.GetRequestID(ctx)

	var paymentID interface{}
	if d.QRISPaymentID != nil {
		paymentID = *d.QRISPaymentID
	}

	argsKV := map[string]interface{}{
		"id":              d.ID,
		"user_id":         d.UserID,
		"amount":          d.Amount,
		"status":          d.Status,
		"qris_payment_id": paymentID,
		"created_at":      d.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateDeposit, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateDeposit")
		return err
	}

	query = r.q.Rebind(query)

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating deposit")
		return err
	}

	return nil
}

func (r *depositRepo) GetDepositByPaymentID(ctx context.Context, paymentID string) (entity.Deposit, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var row DepositDB

	argsKV := map[string]interface{}{
		"qris_payment_id": paymentID,
	}

	query, args, err := sqlx.Named(queryGetDepositByPaymentID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetDepositByPaymentID named query preparation err")
		return entity.Deposit{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Deposit{}, order.ErrOrderNotFound
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetDepositByPaymentID execution err")

		return entity.Deposit{}, err
	}

	d := entity.Deposit{
		ID:        row.ID.String,
		UserID:    row.UserID.String,
		Amount:    row.Amount.Float64,
		Status:    row.Status.String,
		CreatedAt: row.CreatedAt,
	}

	if row.QRISPaymentID.Valid {
		claimedBy := row.QRISPaymentID.String
		d.QRISPaymentID = &claimedBy
	}

	return d, nil
}
