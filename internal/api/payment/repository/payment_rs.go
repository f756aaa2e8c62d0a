package paymentRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"waroengg-be/internal/api/payment"
	"waroengg-be/internal/entity"
	contextPkg "waroengg-be/pkg/context"
)

type QRISPaymentDB struct {
	ID          sql.NullString  `db:"id"`
	UserID      sql.NullString  `db:"user_id"`
	QRISCode    sql.NullString  `db:"qris_code"`
	QRISURL     sql.NullString  `db:"qris_url"`
	Amount      sql.NullFloat64 `db:"amount"`
	Type        sql.NullString  `db:"type"`
	ReferenceID sql.NullString  `db:"reference_id"`
	Status      sql.NullString  `db:"status"`
	CreatedAt   time.Time       `db:"created_at"`
	ExpiresAt   time.Time       `db:"expires_at"`
}

func (r *paymentRepo) CreatePayment(ctx context.Context, p entity.QRISPayment) error {
	requestID := contextPkg.GetRequestID(ctx)

	var referenceID interface{}
	if p.ReferenceID != nil {
		referenceID = *p.ReferenceID
	}

	argsKV := map[string]interface{}{
		"id":           p.ID,
		"user_id":      p.UserID,
		"qris_code":    p.QRISCode,
		"qris_url":     p.QRISURL,
		"amount":       p.Amount,
		"type":         string(p.Type),
		"reference_id": referenceID,
		"status":       string(p.Status),
		"created_at":   p.CreatedAt,
		"expires_at":   p.ExpiresAt,
	}

	query, args, err := sqlx.Named(queryCreatePayment, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreatePayment")
		return err
	}

	query = r.q.Rebind(query)

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating payment")
		return err
	}

	return nil
}

func (r *paymentRepo) GetPaymentByID(ctx context.Context, id string) (entity.QRISPayment, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var row QRISPaymentDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetPaymentByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPaymentByID named query preparation err")
		return entity.QRISPayment{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"payment_id": id,
			}).Warn("GetPaymentByID no rows found")
			return entity.QRISPayment{}, payment.ErrPaymentNotFound
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPaymentByID execution err")

		return entity.QRISPayment{}, err
	}

	return makePayment(row), nil
}

func (r *paymentRepo) GetPayerEmail(ctx context.Context, paymentID string) (string, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var email string

	argsKV := map[string]interface{}{
		"id": paymentID,
	}

	query, args, err := sqlx.Named(queryGetPayerEmail, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPayerEmail named query preparation err")
		return "", err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", payment.ErrPaymentNotFound
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPayerEmail execution err")

		return "", err
	}

	return email, nil
}

// UpdateStatusFromPending only moves sessions out of pending, so terminal
// states can never be overwritten. Returns whether a row was updated.
func (r *paymentRepo) UpdateStatusFromPending(ctx context.Context, id string, status entity.PaymentStatus) (bool, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":     id,
		"status": string(status),
	}

	query, args, err := sqlx.Named(queryUpdateStatusFromPending, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateStatusFromPending named query preparation err")
		return false, err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when updating payment status")
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func makePayment(row QRISPaymentDB) entity.QRISPayment {
	p := entity.QRISPayment{
		ID:        row.ID.String,
		UserID:    row.UserID.String,
		QRISCode:  row.QRISCode.String,
		QRISURL:   row.QRISURL.String,
		Amount:    row.Amount.Float64,
		Type:      entity.PaymentPurpose(row.Type.String),
		Status:    entity.PaymentStatus(row.Status.String),
		CreatedAt: row.CreatedAt,
		ExpiresAt: row.ExpiresAt,
	}

	if row.ReferenceID.Valid {
		ref := row.ReferenceID.String
		p.ReferenceID = &ref
	}

	return p
}
