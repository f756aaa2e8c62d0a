package orderRepository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	contextPkg "waroengg-be/pkg/context"
)

// DebitBalance takes funds only when enough are available; the guard lives
// in the WHERE clause so two concurrent purchases can never overdraw.
func (r *profileRepo) DebitBalance(ctx context.Context, userID string, amount float64) (bool, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":     userID,
		"amount": amount,
	}

	query, args, err := sqlx.Named(queryDebitBalance, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DebitBalance named query preparation err")
		return false, err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when debiting balance")
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *profileRepo) CreditBalance(ctx context.Context, userID string, amount float64) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":     userID,
		"amount": amount,
	}

	query, args, err := sqlx.Named(queryCreditBalance, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreditBalance named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when crediting balance")
		return err
	}

	return nil
}
