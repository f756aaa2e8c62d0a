package orderService

import (
	"context"
	"errors"
	"time"

	"waroengg-be/internal/api/order"
	"waroengg-be/internal/api/promo"
	"waroengg-be/internal/entity"
	contextPkg "waroengg-be/pkg/context"
	"waroengg-be/pkg/log"
)

func (s *orderService) CreateOrder(ctx context.Context, userID string, req order.CreateOrderRequest) (*order.OrderResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	productRecord, err := s.productService.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	finalAmount := productRecord.Price

	if req.PromoCode != nil && *req.PromoCode != "" {
		applied, err := s.promoService.Validate(ctx, promo.ValidatePromoRequest{
			Code:     *req.PromoCode,
			Subtotal: productRecord.Price,
		})
		if err != nil {
			return nil, err
		}
		finalAmount = applied.FinalAmount
	}

	if req.PaymentMethod == "qris" {
		if err := s.verifyPurchasePayment(ctx, userID, req, finalAmount); err != nil {
			return nil, err
		}
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
			}).Warn("Order transaction rollback failed")
		}
	}()

	if req.PaymentMethod == "balance" {
		debited, err := repo.Profile.DebitBalance(ctx, userID, finalAmount)
		if err != nil {
			return nil, err
		}
		if !debited {
			return nil, order.ErrInsufficientBalance
		}
	}

	taken, err := repo.Order.DecrementStock(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !taken {
		return nil, order.ErrOutOfStock
	}

	now := time.Now()

	orderID, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		return nil, err
	}

	record := entity.Order{
		ID:            orderID,
		UserID:        userID,
		ProductID:     req.ProductID,
		Amount:        finalAmount,
		Status:        entity.OrderStatusCompleted,
		QRISPaymentID: req.QRISPaymentID,
		CreatedAt:     now,
	}

	if err := repo.Order.CreateOrder(ctx, record); err != nil {
		return nil, err
	}

	item, err := repo.Inventory.ClaimItem(ctx, req.ProductID, orderID)
	if err != nil {
		return nil, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"order_id":   orderID,
			"error":      err.Error(),
		}).Error("Failed to commit order transaction")
		return nil, err
	}

	// Usage bookkeeping happens outside the transaction; the order stands
	// even if the counter bump fails.
	if req.PromoCode != nil && *req.PromoCode != "" {
		if err := s.promoService.Consume(ctx, *req.PromoCode); err != nil {
			s.log.WithFields(log.Fields{
				"request_id": requestID,
				"order_id":   orderID,
				"error":      err.Error(),
			}).Warn("Failed to consume promo code")
		}
	}

	s.log.WithFields(log.Fields{
		"request_id":     requestID,
		"order_id":       orderID,
		"user_id":        userID,
		"product_id":     req.ProductID,
		"amount":         finalAmount,
		"payment_method": req.PaymentMethod,
	}).Info("Order placed")

	return &order.OrderResponse{
		ID:          orderID,
		ProductID:   req.ProductID,
		ProductName: productRecord.Name,
		Amount:      finalAmount,
		Status:      record.Status,
		Credential: &order.CredentialResponse{
			Email:    item.Email,
			Password: item.Password,
		},
		CreatedAt: now,
	}, nil
}

// verifyPurchasePayment makes sure a QRIS-funded order rides on a completed
// purchase session that belongs to this user, targets this product, covers
// the price, and has not funded another order.
func (s *orderService) verifyPurchasePayment(ctx context.Context, userID string, req order.CreateOrderRequest, finalAmount float64) error {
	if req.QRISPaymentID == nil || *req.QRISPaymentID == "" {
		return order.ErrMissingPaymentID
	}

	paymentRecord, err := s.paymentService.GetPayment(ctx, userID, *req.QRISPaymentID)
	if err != nil {
		return err
	}

	if paymentRecord.Status != string(entity.PaymentStatusCompleted) {
		return order.ErrPaymentNotCompleted
	}

	if paymentRecord.Type != string(entity.PaymentPurposePurchase) {
		return order.ErrPaymentNotCompleted
	}

	if paymentRecord.ReferenceID == nil || *paymentRecord.ReferenceID != req.ProductID {
		return order.ErrPaymentNotCompleted
	}

	if paymentRecord.Amount < finalAmount {
		return order.ErrPaymentNotCompleted
	}

	repo, err := s.orderRepository.NewClient(false)
	if err != nil {
		return err
	}

	if _, err := repo.Order.GetOrderByPaymentID(ctx, *req.QRISPaymentID); err == nil {
		return order.ErrPaymentAlreadyUsed
	} else if !errors.Is(err, order.ErrOrderNotFound) {
		return err
	}

	return nil
}

func (s *orderService) ListOrders(ctx context.Context, userID string) ([]order.OrderResponse, error) {
	repo, err := s.orderRepository.NewClient(false)
	if err != nil {
		return nil, err
	}

	details, err := repo.Order.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]order.OrderResponse, 0, len(details))
	for _, detail := range details {
		resp := order.OrderResponse{
			ID:          detail.Order.ID,
			ProductID:   detail.Order.ProductID,
			ProductName: detail.ProductName,
			Amount:      detail.Order.Amount,
			Status:      detail.Order.Status,
			CreatedAt:   detail.Order.CreatedAt,
		}

		if detail.Email != nil && detail.Password != nil {
			resp.Credential = &order.CredentialResponse{
				Email:    *detail.Email,
				Password: *detail.Password,
			}
		}

		responses = append(responses, resp)
	}

	return responses, nil
}
