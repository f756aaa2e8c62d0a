package paymentRepository

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"waroengg-be/internal/api/payment"
	"waroengg-be/internal/entity"
)

func newTestRepo(t *testing.T) (Client, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "postgres")
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	client, err := New(db, logger).NewClient(false)
	require.NoError(t, err)

	return client, mock
}

func TestRepository_CreatePayment(t *testing.T) {
	client, mock := newTestRepo(t)

	now := time.Now()
	record := entity.QRISPayment{
		ID:        "01TESTPAYMENT",
		UserID:    "user-1",
		QRISCode:  "000201...6304ABCD",
		QRISURL:   "https://qris.id/pay/QRIS01TEST",
		Amount:    15042,
		Type:      entity.PaymentPurposePurchase,
		Status:    entity.PaymentStatusPending,
		CreatedAt: now,
		ExpiresAt: now.Add(30 * time.Minute),
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO qris_payments").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := client.Payment.CreatePayment(context.Background(), record)
		assert.NoError(t, err)
	})

	t.Run("DatabaseError", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO qris_payments").
			WillReturnError(assert.AnError)

		err := client.Payment.CreatePayment(context.Background(), record)
		assert.Error(t, err)
	})
}

func TestRepository_GetPaymentByID(t *testing.T) {
	client, mock := newTestRepo(t)

	columns := []string{
		"id", "user_id", "qris_code", "qris_url", "amount",
		"type", "reference_id", "status", "created_at", "expires_at",
	}

	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(columns).AddRow(
			"pay-1", "user-1", "000201...6304ABCD", "https://qris.id/pay/QRIS01",
			25777.0, "deposit", nil, "pending", now, now.Add(30*time.Minute),
		)

		mock.ExpectQuery("SELECT (.+) FROM qris_payments").
			WithArgs("pay-1").
			WillReturnRows(rows)

		record, err := client.Payment.GetPaymentByID(context.Background(), "pay-1")
		require.NoError(t, err)
		assert.Equal(t, "pay-1", record.ID)
		assert.Equal(t, entity.PaymentPurposeDeposit, record.Type)
		assert.Equal(t, entity.PaymentStatusPending, record.Status)
		assert.Nil(t, record.ReferenceID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM qris_payments").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := client.Payment.GetPaymentByID(context.Background(), "missing")
		assert.ErrorIs(t, err, payment.ErrPaymentNotFound)
	})
}

func TestRepository_GetPayerEmail(t *testing.T) {
	client, mock := newTestRepo(t)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT p.email").
			WithArgs("pay-1").
			WillReturnRows(sqlmock.NewRows([]string{"email"}).AddRow("buyer@example.com"))

		email, err := client.Payment.GetPayerEmail(context.Background(), "pay-1")
		require.NoError(t, err)
		assert.Equal(t, "buyer@example.com", email)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT p.email").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"email"}))

		_, err := client.Payment.GetPayerEmail(context.Background(), "missing")
		assert.ErrorIs(t, err, payment.ErrPaymentNotFound)
	})
}

func TestRepository_UpdateStatusFromPending(t *testing.T) {
	client, mock := newTestRepo(t)

	t.Run("PendingRowUpdated", func(t *testing.T) {
		mock.ExpectExec("UPDATE qris_payments").
			WillReturnResult(sqlmock.NewResult(0, 1))

		updated, err := client.Payment.UpdateStatusFromPending(context.Background(), "pay-1", entity.PaymentStatusCompleted)
		require.NoError(t, err)
		assert.True(t, updated)
	})

	t.Run("TerminalRowUntouched", func(t *testing.T) {
		mock.ExpectExec("UPDATE qris_payments").
			WillReturnResult(sqlmock.NewResult(0, 0))

		updated, err := client.Payment.UpdateStatusFromPending(context.Background(), "pay-1", entity.PaymentStatusExpired)
		require.NoError(t, err)
		assert.False(t, updated)
	})
}
