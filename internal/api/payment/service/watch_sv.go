package paymentService

import (
	"context"
	"time"

	"waroengg-be/internal/api/payment"
	"waroengg-be/internal/entity"
	contextPkg "waroengg-be/pkg/context"
	"waroengg-be/pkg/log"
	"waroengg-be/pkg/qris"
)

const (
	countdownInterval  = time.Second
	statusPollInterval = 3 * time.Second
)

// Watch drives one open checkout: a one-second countdown and a three-second
// status poll run in a single select loop, so cancelling the context (or the
// session resolving) stops both together and no timer is left behind.
func (s *paymentService) Watch(ctx context.Context, id string, send func(payment.WatchUpdate) error) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.paymentRepository.NewClient(false)
	if err != nil {
		return err
	}

	record, err := repo.Payment.GetPaymentByID(ctx, id)
	if err != nil {
		return err
	}

	status := record.Status
	remaining := qris.FormatRemaining(record.ExpiresAt, time.Now())

	if err := send(payment.WatchUpdate{Status: string(status), RemainingTime: remaining}); err != nil {
		return err
	}
	if status.Terminal() {
		return nil
	}

	countdown := time.NewTicker(countdownInterval)
	defer countdown.Stop()
	poll := time.NewTicker(statusPollInterval)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-countdown.C:
			remaining = qris.FormatRemaining(record.ExpiresAt, time.Now())

			if remaining == qris.ExpiredLabel {
				// Reconcile through GetStatus so the expiry is persisted,
				// not just observed locally.
				if _, err := s.GetStatus(ctx, id); err != nil {
					s.log.WithFields(log.Fields{
						"request_id": requestID,
						"payment_id": id,
						"error":      err.Error(),
					}).Warn("Failed to reconcile expired payment")
				}
				status = entity.PaymentStatusExpired
			}

			if err := send(payment.WatchUpdate{Status: string(status), RemainingTime: remaining}); err != nil {
				return err
			}
			if status.Terminal() {
				return nil
			}

		case <-poll.C:
			statusResp, err := s.GetStatus(ctx, id)
			if err != nil {
				// A failed poll leaves the session in place; keep watching.
				s.log.WithFields(log.Fields{
					"request_id": requestID,
					"payment_id": id,
					"error":      err.Error(),
				}).Warn("Payment status poll failed")
				continue
			}

			if entity.PaymentStatus(statusResp.Status) != status {
				status = entity.PaymentStatus(statusResp.Status)
				if err := send(payment.WatchUpdate{Status: string(status), RemainingTime: remaining}); err != nil {
					return err
				}
				if status.Terminal() {
					return nil
				}
			}
		}
	}
}
