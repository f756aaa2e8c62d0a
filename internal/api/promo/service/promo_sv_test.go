package promoService

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"waroengg-be/internal/api/promo"
	promoRepository "waroengg-be/internal/api/promo/repository"
	"waroengg-be/internal/entity"
)

type fakePromoStore struct {
	codes      map[string]entity.PromoCode
	increments map[string]int
}

func (f *fakePromoStore) GetActiveByCode(_ context.Context, code string) (entity.PromoCode, error) {
	p, ok := f.codes[code]
	if !ok {
		return entity.PromoCode{}, promo.ErrPromoNotFound
	}
	return p, nil
}

func (f *fakePromoStore) IncrementUsage(_ context.Context, id string) error {
	f.increments[id]++
	return nil
}

type fakeRepository struct {
	store *fakePromoStore
}

func (f *fakeRepository) NewClient(bool) (promoRepository.Client, error) {
	return promoRepository.Client{
		Promo:    f.store,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

func newTestService(t *testing.T) (IPromoService, *fakePromoStore) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := &fakePromoStore{
		codes:      make(map[string]entity.PromoCode),
		increments: make(map[string]int),
	}

	return New(logger, &fakeRepository{store: store}), store
}

func intPtr(v int) *int { return &v }

func timePtr(v time.Time) *time.Time { return &v }

func TestService_Validate(t *testing.T) {
	svc, store := newTestService(t)

	store.codes["HEMAT10"] = entity.PromoCode{
		ID:            "promo-1",
		Code:          "HEMAT10",
		DiscountType:  entity.DiscountPercentage,
		DiscountValue: 10,
		IsActive:      true,
		MinPurchase:   10000,
	}
	store.codes["POTONG5K"] = entity.PromoCode{
		ID:            "promo-2",
		Code:          "POTONG5K",
		DiscountType:  entity.DiscountFixed,
		DiscountValue: 5000,
		IsActive:      true,
	}

	t.Run("PercentageDiscount", func(t *testing.T) {
		resp, err := svc.Validate(context.Background(), promo.ValidatePromoRequest{
			Code:     "HEMAT10",
			Subtotal: 50000,
		})
		require.NoError(t, err)
		assert.Equal(t, float64(5000), resp.Discount)
		assert.Equal(t, float64(45000), resp.FinalAmount)
	})

	t.Run("FixedDiscount", func(t *testing.T) {
		resp, err := svc.Validate(context.Background(), promo.ValidatePromoRequest{
			Code:     "POTONG5K",
			Subtotal: 20000,
		})
		require.NoError(t, err)
		assert.Equal(t, float64(5000), resp.Discount)
		assert.Equal(t, float64(15000), resp.FinalAmount)
	})

	t.Run("CodeIsUppercasedAndTrimmed", func(t *testing.T) {
		resp, err := svc.Validate(context.Background(), promo.ValidatePromoRequest{
			Code:     "  hemat10 ",
			Subtotal: 50000,
		})
		require.NoError(t, err)
		assert.Equal(t, "HEMAT10", resp.Code)
	})

	t.Run("FixedDiscountCappedAtSubtotal", func(t *testing.T) {
		resp, err := svc.Validate(context.Background(), promo.ValidatePromoRequest{
			Code:     "POTONG5K",
			Subtotal: 3000,
		})
		require.NoError(t, err)
		assert.Equal(t, float64(3000), resp.Discount)
		assert.Equal(t, float64(0), resp.FinalAmount)
	})

	t.Run("BelowMinPurchase", func(t *testing.T) {
		_, err := svc.Validate(context.Background(), promo.ValidatePromoRequest{
			Code:     "HEMAT10",
			Subtotal: 9999,
		})
		assert.ErrorIs(t, err, promo.ErrBelowMinPurchase)
	})

	t.Run("UnknownCode", func(t *testing.T) {
		_, err := svc.Validate(context.Background(), promo.ValidatePromoRequest{
			Code:     "NADA",
			Subtotal: 50000,
		})
		assert.ErrorIs(t, err, promo.ErrPromoNotFound)
	})

	t.Run("ExpiredCode", func(t *testing.T) {
		store.codes["LAMA"] = entity.PromoCode{
			ID:           "promo-3",
			Code:         "LAMA",
			DiscountType: entity.DiscountFixed,
			IsActive:     true,
			ValidUntil:   timePtr(time.Now().Add(-time.Hour)),
		}

		_, err := svc.Validate(context.Background(), promo.ValidatePromoRequest{
			Code:     "LAMA",
			Subtotal: 50000,
		})
		assert.ErrorIs(t, err, promo.ErrPromoExpired)
	})

	t.Run("ExhaustedCode", func(t *testing.T) {
		store.codes["HABIS"] = entity.PromoCode{
			ID:           "promo-4",
			Code:         "HABIS",
			DiscountType: entity.DiscountFixed,
			IsActive:     true,
			MaxUsage:     intPtr(5),
			CurrentUsage: 5,
		}

		_, err := svc.Validate(context.Background(), promo.ValidatePromoRequest{
			Code:     "HABIS",
			Subtotal: 50000,
		})
		assert.ErrorIs(t, err, promo.ErrPromoExhausted)
	})

	t.Run("ValidationDoesNotConsume", func(t *testing.T) {
		_, err := svc.Validate(context.Background(), promo.ValidatePromoRequest{
			Code:     "HEMAT10",
			Subtotal: 50000,
		})
		require.NoError(t, err)
		assert.Zero(t, store.increments["promo-1"])
	})
}

func TestService_Consume(t *testing.T) {
	svc, store := newTestService(t)

	store.codes["HEMAT10"] = entity.PromoCode{
		ID:           "promo-1",
		Code:         "HEMAT10",
		DiscountType: entity.DiscountPercentage,
		IsActive:     true,
	}

	t.Run("IncrementsUsage", func(t *testing.T) {
		require.NoError(t, svc.Consume(context.Background(), "hemat10"))
		assert.Equal(t, 1, store.increments["promo-1"])
	})

	t.Run("UnknownCode", func(t *testing.T) {
		err := svc.Consume(context.Background(), "NADA")
		assert.ErrorIs(t, err, promo.ErrPromoNotFound)
	})
}
