package orderService

import (
	"context"
	"errors"
	"time"

	"waroengg-be/internal/api/order"
	"waroengg-be/internal/api/payment"
	"waroengg-be/internal/entity"
	contextPkg "waroengg-be/pkg/context"
	"waroengg-be/pkg/log"
)

// CreateDeposit opens a QRIS session tagged as a top-up. The balance only
// moves when the completed session is confirmed.
func (s *orderService) CreateDeposit(ctx context.Context, userID string, req order.CreateDepositRequest) (*payment.PaymentResponse, error) {
	return s.paymentService.CreatePayment(ctx, userID, payment.CreatePaymentRequest{
		Amount: req.Amount,
		Type:   string(entity.PaymentPurposeDeposit),
	})
}

func (s *orderService) ConfirmDeposit(ctx context.Context, userID, paymentID string) (*order.DepositResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	paymentRecord, err := s.paymentService.GetPayment(ctx, userID, paymentID)
	if err != nil {
		return nil, err
	}

	if paymentRecord.Status != string(entity.PaymentStatusCompleted) {
		return nil, order.ErrPaymentNotCompleted
	}

	if paymentRecord.Type != string(entity.PaymentPurposeDeposit) {
		return nil, order.ErrPaymentNotCompleted
	}

	repo, err := s.orderRepository.NewClient(true)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := repo.Rollback(); err != nil {
			s.log.WithFields(log.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Deposit transaction rollback failed")
		}
	}()

	// The unique index on deposits.qris_payment_id backs this check up under
	// concurrent confirms.
	if _, err := repo.Deposit.GetDepositByPaymentID(ctx, paymentID); err == nil {
		return nil, order.ErrDepositAlreadyCredited
	} else if !errors.Is(err, order.ErrOrderNotFound) {
		return nil, err
	}

	now := time.Now()

	depositID, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		return nil, err
	}

	record := entity.Deposit{
		ID:            depositID,
		UserID:        userID,
		Amount:        paymentRecord.Amount,
		Status:        entity.DepositStatusCompleted,
		QRISPaymentID: &paymentID,
		CreatedAt:     now,
	}

	if err := repo.Deposit.CreateDeposit(ctx, record); err != nil {
		return nil, err
	}

	if err := repo.Profile.CreditBalance(ctx, userID, paymentRecord.Amount); err != nil {
		return nil, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"deposit_id": depositID,
			"error":      err.Error(),
		}).Error("Failed to commit deposit transaction")
		return nil, err
	}

	s.log.WithFields(log.Fields{
		"request_id": requestID,
		"deposit_id": depositID,
		"user_id":    userID,
		"amount":     paymentRecord.Amount,
	}).Info("Deposit credited")

	return &order.DepositResponse{
		ID:        depositID,
		Amount:    paymentRecord.Amount,
		Status:    record.Status,
		CreatedAt: now,
	}, nil
}
