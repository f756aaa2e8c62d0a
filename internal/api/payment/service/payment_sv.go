package paymentService

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"waroengg-be/internal/api/payment"
	"waroengg-be/internal/entity"
	contextPkg "waroengg-be/pkg/context"
	"waroengg-be/pkg/log"
	"waroengg-be/pkg/qris"
)

const statusCacheTTL = 3 * time.Second

type cachedStatus struct {
	Status    string `json:"status"`
	ExpiresAt int64  `json:"expires_at"`
}

func (s *paymentService) CreatePayment(ctx context.Context, userID string, req payment.CreatePaymentRequest) (*payment.PaymentResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	uniqueFee := s.codec.GenerateUniqueFee()

	payload, err := s.codec.BuildDynamicPayload(req.Amount, uniqueFee)
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"amount":     req.Amount,
			"unique_fee": uniqueFee,
			"error":      err.Error(),
		}).Error("Failed to build dynamic QRIS payload")

		if errors.Is(err, qris.ErrInvalidAmount) {
			return nil, payment.ErrInvalidAmount
		}
		if errors.Is(err, qris.ErrMalformedTemplate) {
			return nil, payment.ErrMalformedTemplate
		}
		return nil, err
	}

	now := time.Now()

	paymentID, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate payment ID")
		return nil, err
	}

	paymentCode, err := s.utils.NewPaymentCode(now)
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate payment code")
		return nil, err
	}

	record := entity.QRISPayment{
		ID:          paymentID,
		UserID:      userID,
		QRISCode:    payload,
		QRISURL:     fmt.Sprintf("%s/%s", s.payBaseURL, paymentCode),
		Amount:      req.Amount + float64(uniqueFee),
		Type:        entity.PaymentPurpose(req.Type),
		ReferenceID: req.ReferenceID,
		Status:      entity.PaymentStatusPending,
		CreatedAt:   now,
		ExpiresAt:   qris.ExpiryTimestamp(qris.DefaultExpiryMinutes),
	}

	repo, err := s.paymentRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	if err := repo.Payment.CreatePayment(ctx, record); err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"error":      err.Error(),
		}).Error("Failed to persist payment")
		return nil, err
	}

	s.log.WithFields(log.Fields{
		"request_id": requestID,
		"user_id":    userID,
		"payment_id": record.ID,
		"amount":     record.Amount,
		"type":       record.Type,
	}).Info("QRIS payment created")

	return makePaymentResponse(record), nil
}

func (s *paymentService) GetPayment(ctx context.Context, userID, id string) (*payment.PaymentResponse, error) {
	repo, err := s.paymentRepository.NewClient(false)
	if err != nil {
		return nil, err
	}

	record, err := repo.Payment.GetPaymentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Sessions are private to their owner.
	if record.UserID != userID {
		return nil, payment.ErrPaymentNotFound
	}

	return makePaymentResponse(record), nil
}

// GetStatus answers the poll loop. Results are cached for a few seconds so
// open checkouts polling in parallel do not hammer Postgres. A pending
// session past its deadline is reconciled to expired here, making the store
// authoritative for expiry rather than leaving it a per-client observation.
func (s *paymentService) GetStatus(ctx context.Context, id string) (*payment.StatusResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if raw, ok, err := s.cache.GetPaymentStatus(ctx, id); err == nil && ok {
		var cached cachedStatus
		if err := jsoniter.UnmarshalFromString(raw, &cached); err == nil {
			return &payment.StatusResponse{
				Status:        cached.Status,
				RemainingTime: qris.FormatRemaining(time.Unix(cached.ExpiresAt, 0), time.Now()),
			}, nil
		}
	}

	repo, err := s.paymentRepository.NewClient(false)
	if err != nil {
		return nil, err
	}

	record, err := repo.Payment.GetPaymentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	if record.Status == entity.PaymentStatusPending && now.After(record.ExpiresAt) {
		if _, err := repo.Payment.UpdateStatusFromPending(ctx, id, entity.PaymentStatusExpired); err != nil {
			s.log.WithFields(log.Fields{
				"request_id": requestID,
				"payment_id": id,
				"error":      err.Error(),
			}).Error("Failed to persist expired status")
			return nil, err
		}
		record.Status = entity.PaymentStatusExpired
	}

	s.cacheStatus(ctx, record)

	return &payment.StatusResponse{
		Status:        string(record.Status),
		RemainingTime: qris.FormatRemaining(record.ExpiresAt, now),
	}, nil
}

func (s *paymentService) cacheStatus(ctx context.Context, record entity.QRISPayment) {
	raw, err := jsoniter.MarshalToString(cachedStatus{
		Status:    string(record.Status),
		ExpiresAt: record.ExpiresAt.Unix(),
	})
	if err != nil {
		return
	}

	// Cache writes are best effort; the store remains the source of truth.
	if err := s.cache.SetPaymentStatus(ctx, record.ID, raw, statusCacheTTL); err != nil {
		s.log.WithFields(log.Fields{
			"payment_id": record.ID,
			"error":      err.Error(),
		}).Warn("Failed to cache payment status")
	}
}

func (s *paymentService) MarkCompleted(ctx context.Context, id string) (*payment.PaymentResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.paymentRepository.NewClient(false)
	if err != nil {
		return nil, err
	}

	updated, err := repo.Payment.UpdateStatusFromPending(ctx, id, entity.PaymentStatusCompleted)
	if err != nil {
		return nil, err
	}

	record, err := repo.Payment.GetPaymentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !updated {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"payment_id": id,
			"status":     record.Status,
		}).Warn("Refused to complete a non-pending payment")
		return nil, payment.ErrInvalidTransactionState
	}

	if err := s.cache.InvalidatePaymentStatus(ctx, id); err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"payment_id": id,
			"error":      err.Error(),
		}).Warn("Failed to invalidate cached payment status")
	}

	s.sendReceipt(ctx, record)

	s.log.WithFields(log.Fields{
		"request_id": requestID,
		"payment_id": id,
		"user_id":    record.UserID,
		"amount":     record.Amount,
	}).Info("QRIS payment completed")

	record.Status = entity.PaymentStatusCompleted
	return makePaymentResponse(record), nil
}

func (s *paymentService) sendReceipt(ctx context.Context, record entity.QRISPayment) {
	repo, err := s.paymentRepository.NewClient(false)
	if err != nil {
		return
	}

	email, err := repo.Payment.GetPayerEmail(ctx, record.ID)
	if err != nil {
		s.log.WithFields(log.Fields{
			"payment_id": record.ID,
			"error":      err.Error(),
		}).Warn("Failed to look up payer email for receipt")
		return
	}

	go func() {
		if err := s.mailer.SendPaymentReceipt(email, record.ID, record.Amount); err != nil {
			s.log.WithFields(log.Fields{
				"payment_id": record.ID,
				"error":      err.Error(),
			}).Warn("Failed to send payment receipt")
		}
	}()
}

// SimulatePayment mirrors a wallet app paying the code: the session is
// completed a few seconds after the call. Only registered outside production.
func (s *paymentService) SimulatePayment(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.paymentRepository.NewClient(false)
	if err != nil {
		return err
	}

	record, err := repo.Payment.GetPaymentByID(ctx, id)
	if err != nil {
		return err
	}

	if record.Status != entity.PaymentStatusPending {
		return payment.ErrInvalidTransactionState
	}

	time.AfterFunc(3*time.Second, func() {
		simCtx := contextPkg.WithRequestID(context.Background(), requestID)
		if _, err := s.MarkCompleted(simCtx, id); err != nil {
			s.log.WithFields(log.Fields{
				"request_id": requestID,
				"payment_id": id,
				"error":      err.Error(),
			}).Warn("Simulated payment completion failed")
		}
	})

	return nil
}
