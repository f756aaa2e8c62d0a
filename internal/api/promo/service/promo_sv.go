package promoService

import (
	"context"
	"strings"
	"time"

	"waroengg-be/internal/api/promo"
	"waroengg-be/internal/entity"
	contextPkg "waroengg-be/pkg/context"
	"waroengg-be/pkg/log"
)

// Validate checks a code against a subtotal without consuming it. The usage
// counter only moves when an order carrying the code is placed.
func (s *promoService) Validate(ctx context.Context, req promo.ValidatePromoRequest) (*promo.ValidatePromoResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.promoRepository.NewClient(false)
	if err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))

	record, err := repo.Promo.GetActiveByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	discount, err := applyDiscount(record, req.Subtotal)
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"code":       code,
			"subtotal":   req.Subtotal,
			"error":      err.Error(),
		}).Warn("Promo code rejected")
		return nil, err
	}

	return &promo.ValidatePromoResponse{
		Code:        code,
		Discount:    discount,
		FinalAmount: req.Subtotal - discount,
	}, nil
}

// Consume bumps a code's usage counter after the order carrying it has been
// placed. The counter is advisory so a failed bump is logged, not fatal.
func (s *promoService) Consume(ctx context.Context, code string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.promoRepository.NewClient(false)
	if err != nil {
		return err
	}

	code = strings.ToUpper(strings.TrimSpace(code))

	record, err := repo.Promo.GetActiveByCode(ctx, code)
	if err != nil {
		return err
	}

	if err := repo.Promo.IncrementUsage(ctx, record.ID); err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"code":       code,
			"error":      err.Error(),
		}).Warn("Failed to increment promo usage")
		return err
	}

	return nil
}

func applyDiscount(p entity.PromoCode, subtotal float64) (float64, error) {
	if p.ValidUntil != nil && time.Now().After(*p.ValidUntil) {
		return 0, promo.ErrPromoExpired
	}

	if p.MaxUsage != nil && p.CurrentUsage >= *p.MaxUsage {
		return 0, promo.ErrPromoExhausted
	}

	if subtotal < p.MinPurchase {
		return 0, promo.ErrBelowMinPurchase
	}

	var discount float64
	switch p.DiscountType {
	case entity.DiscountPercentage:
		discount = subtotal * p.DiscountValue / 100
	case entity.DiscountFixed:
		discount = p.DiscountValue
	}

	// A discount never exceeds what is being paid.
	if discount > subtotal {
		discount = subtotal
	}

	return discount, nil
}
