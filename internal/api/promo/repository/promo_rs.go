package promoRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"waroengg-be/internal/api/promo"
	"waroengg-be/internal/entity"
	contextPkg "waroengg-be/pkg/context"
)

type PromoCodeDB struct {
	ID            sql.NullString  `db:"id"`
	Code          sql.NullString  `db:"code"`
	DiscountType  sql.NullString  `db:"discount_type"`
	DiscountValue sql.NullFloat64 `db:"discount_value"`
	IsActive      sql.NullBool    `db:"is_active"`
	MinPurchase   sql.NullFloat64 `db:"min_purchase"`
	MaxUsage      sql.NullInt64   `db:"max_usage"`
	CurrentUsage  sql.NullInt64   `db:"current_usage"`
	ValidUntil    sql.NullTime    `db:"valid_until"`
	CreatedAt     time.Time       `db:"created_at"`
}

func (r *promoRepo) GetActiveByCode(ctx context.Context, code string) (entity.PromoCode, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var row PromoCodeDB

	argsKV := map[string]interface{}{
		"code": code,
	}

	query, args, err := sqlx.Named(queryGetActiveByCode, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetActiveByCode named query preparation err")
		return entity.PromoCode{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"code":       code,
			}).Warn("GetActiveByCode no rows found")
			return entity.PromoCode{}, promo.ErrPromoNotFound
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetActiveByCode execution err")

		return entity.PromoCode{}, err
	}

	return makePromoCode(row), nil
}

func (r *promoRepo) IncrementUsage(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryIncrementUsage, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("IncrementUsage named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when incrementing promo usage")
		return err
	}

	return nil
}

func makePromoCode(row PromoCodeDB) entity.PromoCode {
	p := entity.PromoCode{
		ID:            row.ID.String,
		Code:          row.Code.String,
		DiscountType:  entity.DiscountType(row.DiscountType.String),
		DiscountValue: row.DiscountValue.Float64,
		IsActive:      row.IsActive.Bool,
		MinPurchase:   row.MinPurchase.Float64,
		CurrentUsage:  int(row.CurrentUsage.Int64),
		CreatedAt:     row.CreatedAt,
	}

	if row.MaxUsage.Valid {
		max := int(row.MaxUsage.Int64)
		p.MaxUsage = &max
	}

	if row.ValidUntil.Valid {
		until := row.ValidUntil.Time
		p.ValidUntil = &until
	}

	return p
}
