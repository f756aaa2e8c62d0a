package paymentService

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"waroengg-be/internal/api/payment"
	paymentRepository "waroengg-be/internal/api/payment/repository"
	"waroengg-be/internal/entity"
	"waroengg-be/pkg/qris"
	"waroengg-be/pkg/utils"
)

const testTemplate = "00020154040.005802ID6304ABCD"

type fakePaymentStore struct {
	mu       sync.Mutex
	payments map[string]entity.QRISPayment
	emails   map[string]string
}

func (f *fakePaymentStore) CreatePayment(_ context.Context, p entity.QRISPayment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payments[p.ID] = p
	return nil
}

func (f *fakePaymentStore) GetPaymentByID(_ context.Context, id string) (entity.QRISPayment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[id]
	if !ok {
		return entity.QRISPayment{}, payment.ErrPaymentNotFound
	}
	return p, nil
}

func (f *fakePaymentStore) GetPayerEmail(_ context.Context, paymentID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	email, ok := f.emails[paymentID]
	if !ok {
		return "", payment.ErrPaymentNotFound
	}
	return email, nil
}

func (f *fakePaymentStore) UpdateStatusFromPending(_ context.Context, id string, status entity.PaymentStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[id]
	if !ok || p.Status != entity.PaymentStatusPending {
		return false, nil
	}
	p.Status = status
	f.payments[id] = p
	return true, nil
}

type fakeRepository struct {
	store *fakePaymentStore
}

func (f *fakeRepository) NewClient(bool) (paymentRepository.Client, error) {
	return paymentRepository.Client{
		Payment:  f.store,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type fakeCache struct {
	mu     sync.Mutex
	values map[string]string
}

func (f *fakeCache) SetPaymentStatus(_ context.Context, paymentID, status string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[paymentID] = status
	return nil
}

func (f *fakeCache) GetPaymentStatus(_ context.Context, paymentID string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	val, ok := f.values[paymentID]
	return val, ok, nil
}

func (f *fakeCache) InvalidatePaymentStatus(_ context.Context, paymentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, paymentID)
	return nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeMailer) SendPaymentReceipt(userEmail string, _ string, _ float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, userEmail)
	return nil
}

func (f *fakeMailer) sentTo() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func newTestService(t *testing.T) (IPaymentService, *fakePaymentStore, *fakeCache, *fakeMailer) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := &fakePaymentStore{
		payments: make(map[string]entity.QRISPayment),
		emails:   make(map[string]string),
	}
	cache := &fakeCache{values: make(map[string]string)}
	mailer := &fakeMailer{}

	codec := qris.New(testTemplate, qris.WithRandSource(rand.NewSource(42)))

	svc := New(logger, &fakeRepository{store: store}, codec, cache, mailer, utils.New())
	return svc, store, cache, mailer
}

func TestService_CreatePayment(t *testing.T) {
	svc, store, _, _ := newTestService(t)

	t.Run("TotalIncludesUniqueFee", func(t *testing.T) {
		resp, err := svc.CreatePayment(context.Background(), "user-1", payment.CreatePaymentRequest{
			Amount: 15000,
			Type:   "purchase",
		})
		require.NoError(t, err)

		assert.Greater(t, resp.Amount, float64(15000))
		assert.LessOrEqual(t, resp.Amount, float64(15999))
		assert.Equal(t, string(entity.PaymentStatusPending), resp.Status)
		assert.True(t, strings.HasSuffix(resp.QRISCode[:len(resp.QRISCode)-4], "6304"))
		assert.True(t, resp.ExpiresAt.After(time.Now().Add(29*time.Minute)))

		stored, ok := store.payments[resp.ID]
		require.True(t, ok)
		assert.Equal(t, resp.Amount, stored.Amount)
	})

	t.Run("RejectsNonPositiveAmount", func(t *testing.T) {
		_, err := svc.CreatePayment(context.Background(), "user-1", payment.CreatePaymentRequest{
			Amount: -1,
			Type:   "deposit",
		})
		assert.ErrorIs(t, err, payment.ErrInvalidAmount)
	})
}

func TestService_GetPayment(t *testing.T) {
	svc, store, _, _ := newTestService(t)

	store.payments["pay-1"] = entity.QRISPayment{
		ID:     "pay-1",
		UserID: "owner",
		Status: entity.PaymentStatusPending,
	}

	t.Run("OwnerSeesPayment", func(t *testing.T) {
		resp, err := svc.GetPayment(context.Background(), "owner", "pay-1")
		require.NoError(t, err)
		assert.Equal(t, "pay-1", resp.ID)
	})

	t.Run("OtherUserGetsNotFound", func(t *testing.T) {
		_, err := svc.GetPayment(context.Background(), "intruder", "pay-1")
		assert.ErrorIs(t, err, payment.ErrPaymentNotFound)
	})
}

func TestService_GetStatus(t *testing.T) {
	t.Run("PendingPastDueBecomesExpired", func(t *testing.T) {
		svc, store, _, _ := newTestService(t)

		store.payments["pay-1"] = entity.QRISPayment{
			ID:        "pay-1",
			UserID:    "user-1",
			Status:    entity.PaymentStatusPending,
			ExpiresAt: time.Now().Add(-time.Minute),
		}

		resp, err := svc.GetStatus(context.Background(), "pay-1")
		require.NoError(t, err)
		assert.Equal(t, string(entity.PaymentStatusExpired), resp.Status)
		assert.Equal(t, qris.ExpiredLabel, resp.RemainingTime)
		assert.Equal(t, entity.PaymentStatusExpired, store.payments["pay-1"].Status)
	})

	t.Run("PendingBeforeDueStaysPending", func(t *testing.T) {
		svc, store, _, _ := newTestService(t)

		store.payments["pay-2"] = entity.QRISPayment{
			ID:        "pay-2",
			UserID:    "user-1",
			Status:    entity.PaymentStatusPending,
			ExpiresAt: time.Now().Add(90 * time.Second),
		}

		resp, err := svc.GetStatus(context.Background(), "pay-2")
		require.NoError(t, err)
		assert.Equal(t, string(entity.PaymentStatusPending), resp.Status)
		assert.NotEqual(t, qris.ExpiredLabel, resp.RemainingTime)
	})

	t.Run("ServedFromCacheWithoutStoreHit", func(t *testing.T) {
		svc, store, cache, _ := newTestService(t)

		expiresAt := time.Now().Add(10 * time.Minute)
		require.NoError(t, cache.SetPaymentStatus(context.Background(), "pay-3",
			`{"status":"pending","expires_at":`+timestampString(expiresAt)+`}`, time.Minute))

		resp, err := svc.GetStatus(context.Background(), "pay-3")
		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Status)

		_, ok := store.payments["pay-3"]
		assert.False(t, ok)
	})

	t.Run("UnknownPaymentErrors", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		_, err := svc.GetStatus(context.Background(), "missing")
		assert.ErrorIs(t, err, payment.ErrPaymentNotFound)
	})
}

func TestService_MarkCompleted(t *testing.T) {
	t.Run("PendingCompletes", func(t *testing.T) {
		svc, store, cache, mailer := newTestService(t)

		store.payments["pay-1"] = entity.QRISPayment{
			ID:        "pay-1",
			UserID:    "user-1",
			Amount:    15042,
			Status:    entity.PaymentStatusPending,
			ExpiresAt: time.Now().Add(10 * time.Minute),
		}
		store.emails["pay-1"] = "buyer@example.com"
		cache.values["pay-1"] = `{"status":"pending","expires_at":0}`

		resp, err := svc.MarkCompleted(context.Background(), "pay-1")
		require.NoError(t, err)
		assert.Equal(t, string(entity.PaymentStatusCompleted), resp.Status)
		assert.Equal(t, entity.PaymentStatusCompleted, store.payments["pay-1"].Status)

		_, cached, _ := cache.GetPaymentStatus(context.Background(), "pay-1")
		assert.False(t, cached)

		assert.Eventually(t, func() bool {
			sent := mailer.sentTo()
			return len(sent) == 1 && sent[0] == "buyer@example.com"
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("TerminalStateRejected", func(t *testing.T) {
		svc, store, _, _ := newTestService(t)

		store.payments["pay-2"] = entity.QRISPayment{
			ID:     "pay-2",
			UserID: "user-1",
			Status: entity.PaymentStatusExpired,
		}

		_, err := svc.MarkCompleted(context.Background(), "pay-2")
		assert.ErrorIs(t, err, payment.ErrInvalidTransactionState)
	})
}

func TestService_Watch(t *testing.T) {
	t.Run("TerminalSessionSendsOneFrame", func(t *testing.T) {
		svc, store, _, _ := newTestService(t)

		store.payments["pay-1"] = entity.QRISPayment{
			ID:        "pay-1",
			UserID:    "user-1",
			Status:    entity.PaymentStatusCompleted,
			ExpiresAt: time.Now().Add(10 * time.Minute),
		}

		var updates []payment.WatchUpdate
		err := svc.Watch(context.Background(), "pay-1", func(u payment.WatchUpdate) error {
			updates = append(updates, u)
			return nil
		})

		require.NoError(t, err)
		require.Len(t, updates, 1)
		assert.Equal(t, string(entity.PaymentStatusCompleted), updates[0].Status)
	})

	t.Run("CancelledContextStopsWatch", func(t *testing.T) {
		svc, store, _, _ := newTestService(t)

		store.payments["pay-2"] = entity.QRISPayment{
			ID:        "pay-2",
			UserID:    "user-1",
			Status:    entity.PaymentStatusPending,
			ExpiresAt: time.Now().Add(10 * time.Minute),
		}

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() {
			done <- svc.Watch(ctx, "pay-2", func(payment.WatchUpdate) error { return nil })
		}()

		cancel()

		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(3 * time.Second):
			t.Fatal("watch did not stop after cancellation")
		}
	})

	t.Run("SendFailureEndsWatch", func(t *testing.T) {
		svc, store, _, _ := newTestService(t)

		store.payments["pay-3"] = entity.QRISPayment{
			ID:        "pay-3",
			UserID:    "user-1",
			Status:    entity.PaymentStatusPending,
			ExpiresAt: time.Now().Add(10 * time.Minute),
		}

		sendErr := errors.New("socket closed")
		err := svc.Watch(context.Background(), "pay-3", func(payment.WatchUpdate) error {
			return sendErr
		})

		assert.ErrorIs(t, err, sendErr)
	})
}

func timestampString(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}
