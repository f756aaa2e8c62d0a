package orderService

import (
	"context"
	"io"
	"mime/multipart"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"waroengg-be/internal/api/order"
	orderRepository "waroengg-be/internal/api/order/repository"
	"waroengg-be/internal/api/payment"
	"waroengg-be/internal/api/product"
	"waroengg-be/internal/api/promo"
	"waroengg-be/internal/entity"
	"waroengg-be/pkg/utils"
)

type fakeOrderStore struct {
	orders       map[string]entity.Order
	byPaymentID  map[string]entity.Order
	stock        map[string]int
	committed    bool
	rolledBack   bool
	claimedItems int
}

func (f *fakeOrderStore) CreateOrder(_ context.Context, o entity.Order) error {
	f.orders[o.ID] = o
	if o.QRISPaymentID != nil {
		f.byPaymentID[*o.QRISPaymentID] = o
	}
	return nil
}

func (f *fakeOrderStore) GetOrderByPaymentID(_ context.Context, paymentID string) (entity.Order, error) {
	o, ok := f.byPaymentID[paymentID]
	if !ok {
		return entity.Order{}, order.ErrOrderNotFound
	}
	return o, nil
}

func (f *fakeOrderStore) ListOrdersByUser(_ context.Context, userID string) ([]orderRepository.OrderWithDetails, error) {
	var details []orderRepository.OrderWithDetails
	for _, o := range f.orders {
		if o.UserID == userID {
			details = append(details, orderRepository.OrderWithDetails{Order: o, ProductName: "Netflix Premium"})
		}
	}
	return details, nil
}

func (f *fakeOrderStore) DecrementStock(_ context.Context, productID string) (bool, error) {
	if f.stock[productID] <= 0 {
		return false, nil
	}
	f.stock[productID]--
	return true, nil
}

type fakeInventoryStore struct {
	store *fakeOrderStore
	items map[string][]entity.InventoryItem
}

func (f *fakeInventoryStore) ClaimItem(_ context.Context, productID, orderID string) (entity.InventoryItem, error) {
	available := f.items[productID]
	if len(available) == 0 {
		return entity.InventoryItem{}, order.ErrOutOfStock
	}

	item := available[0]
	f.items[productID] = available[1:]
	item.IsSold = true
	item.OrderID = &orderID
	f.store.claimedItems++
	return item, nil
}

type fakeProfileStore struct {
	balances map[string]float64
}

func (f *fakeProfileStore) DebitBalance(_ context.Context, userID string, amount float64) (bool, error) {
	if f.balances[userID] < amount {
		return false, nil
	}
	f.balances[userID] -= amount
	return true, nil
}

func (f *fakeProfileStore) CreditBalance(_ context.Context, userID string, amount float64) error {
	f.balances[userID] += amount
	return nil
}

type fakeDepositStore struct {
	deposits    map[string]entity.Deposit
	byPaymentID map[string]entity.Deposit
}

func (f *fakeDepositStore) CreateDeposit(_ context.Context, d entity.Deposit) error {
	f.deposits[d.ID] = d
	if d.QRISPaymentID != nil {
		f.byPaymentID[*d.QRISPaymentID] = d
	}
	return nil
}

func (f *fakeDepositStore) GetDepositByPaymentID(_ context.Context, paymentID string) (entity.Deposit, error) {
	d, ok := f.byPaymentID[paymentID]
	if !ok {
		return entity.Deposit{}, order.ErrOrderNotFound
	}
	return d, nil
}

type fakeRepository struct {
	orders    *fakeOrderStore
	inventory *fakeInventoryStore
	profiles  *fakeProfileStore
	deposits  *fakeDepositStore
}

func (f *fakeRepository) NewClient(bool) (orderRepository.Client, error) {
	return orderRepository.Client{
		Order:     f.orders,
		Inventory: f.inventory,
		Profile:   f.profiles,
		Deposit:   f.deposits,
		Commit:    func() error { f.orders.committed = true; return nil },
		Rollback:  func() error { f.orders.rolledBack = true; return nil },
	}, nil
}

type fakePaymentService struct {
	payments map[string]payment.PaymentResponse
}

func (f *fakePaymentService) CreatePayment(_ context.Context, userID string, req payment.CreatePaymentRequest) (*payment.PaymentResponse, error) {
	resp := payment.PaymentResponse{
		ID:     "pay-new",
		UserID: userID,
		Amount: req.Amount + 42,
		Type:   req.Type,
		Status: string(entity.PaymentStatusPending),
	}
	f.payments[resp.ID] = resp
	return &resp, nil
}

func (f *fakePaymentService) GetPayment(_ context.Context, userID, id string) (*payment.PaymentResponse, error) {
	p, ok := f.payments[id]
	if !ok || p.UserID != userID {
		return nil, payment.ErrPaymentNotFound
	}
	return &p, nil
}

func (f *fakePaymentService) GetStatus(context.Context, string) (*payment.StatusResponse, error) {
	return nil, payment.ErrPaymentNotFound
}

func (f *fakePaymentService) MarkCompleted(context.Context, string) (*payment.PaymentResponse, error) {
	return nil, payment.ErrPaymentNotFound
}

func (f *fakePaymentService) SimulatePayment(context.Context, string) error {
	return nil
}

func (f *fakePaymentService) Watch(context.Context, string, func(payment.WatchUpdate) error) error {
	return nil
}

type fakeProductService struct {
	products map[string]product.ProductResponse
}

func (f *fakeProductService) ListProducts(context.Context, product.ListProductsQuery) ([]product.ProductResponse, error) {
	return nil, nil
}

func (f *fakeProductService) GetProduct(_ context.Context, id string) (*product.ProductResponse, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	return &p, nil
}

func (f *fakeProductService) ListBanners(context.Context) ([]product.BannerResponse, error) {
	return nil, nil
}

func (f *fakeProductService) UploadProductImage(context.Context, string, *multipart.FileHeader) (*product.UploadImageResponse, error) {
	return nil, nil
}

func (f *fakeProductService) UploadBannerImage(context.Context, string, *multipart.FileHeader) (*product.UploadImageResponse, error) {
	return nil, nil
}

type fakePromoService struct {
	discount float64
	consumed []string
}

func (f *fakePromoService) Validate(_ context.Context, req promo.ValidatePromoRequest) (*promo.ValidatePromoResponse, error) {
	return &promo.ValidatePromoResponse{
		Code:        req.Code,
		Discount:    f.discount,
		FinalAmount: req.Subtotal - f.discount,
	}, nil
}

func (f *fakePromoService) Consume(_ context.Context, code string) error {
	f.consumed = append(f.consumed, code)
	return nil
}

type testEnv struct {
	svc      IOrderService
	repo     *fakeRepository
	payments *fakePaymentService
	promos   *fakePromoService
}

func newTestService(t *testing.T) testEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	orders := &fakeOrderStore{
		orders:      make(map[string]entity.Order),
		byPaymentID: make(map[string]entity.Order),
		stock:       map[string]int{"prod-1": 3},
	}
	repo := &fakeRepository{
		orders: orders,
		inventory: &fakeInventoryStore{
			store: orders,
			items: map[string][]entity.InventoryItem{
				"prod-1": {
					{ID: "inv-1", ProductID: "prod-1", Email: "acc1@mail.com", Password: "secret1"},
					{ID: "inv-2", ProductID: "prod-1", Email: "acc2@mail.com", Password: "secret2"},
				},
			},
		},
		profiles: &fakeProfileStore{balances: map[string]float64{"user-1": 100000}},
		deposits: &fakeDepositStore{
			deposits:    make(map[string]entity.Deposit),
			byPaymentID: make(map[string]entity.Deposit),
		},
	}

	payments := &fakePaymentService{payments: make(map[string]payment.PaymentResponse)}
	products := &fakeProductService{products: map[string]product.ProductResponse{
		"prod-1": {ID: "prod-1", Name: "Netflix Premium", Price: 50000, Stock: 3},
	}}
	promos := &fakePromoService{discount: 5000}

	svc := New(logger, repo, payments, products, promos, utils.New())

	return testEnv{svc: svc, repo: repo, payments: payments, promos: promos}
}

func strPtr(v string) *string { return &v }

func TestService_CreateOrder_Balance(t *testing.T) {
	t.Run("HappyPathDeliversCredential", func(t *testing.T) {
		env := newTestService(t)

		resp, err := env.svc.CreateOrder(context.Background(), "user-1", order.CreateOrderRequest{
			ProductID:     "prod-1",
			PaymentMethod: "balance",
		})
		require.NoError(t, err)

		assert.Equal(t, entity.OrderStatusCompleted, resp.Status)
		assert.Equal(t, float64(50000), resp.Amount)
		require.NotNil(t, resp.Credential)
		assert.Equal(t, "acc1@mail.com", resp.Credential.Email)
		assert.Equal(t, "secret1", resp.Credential.Password)

		assert.Equal(t, float64(50000), env.repo.profiles.balances["user-1"])
		assert.Equal(t, 2, env.repo.orders.stock["prod-1"])
		assert.True(t, env.repo.orders.committed)
	})

	t.Run("PromoDiscountApplied", func(t *testing.T) {
		env := newTestService(t)

		resp, err := env.svc.CreateOrder(context.Background(), "user-1", order.CreateOrderRequest{
			ProductID:     "prod-1",
			PaymentMethod: "balance",
			PromoCode:     strPtr("HEMAT"),
		})
		require.NoError(t, err)

		assert.Equal(t, float64(45000), resp.Amount)
		assert.Equal(t, float64(55000), env.repo.profiles.balances["user-1"])
		assert.Equal(t, []string{"HEMAT"}, env.promos.consumed)
	})

	t.Run("InsufficientBalance", func(t *testing.T) {
		env := newTestService(t)
		env.repo.profiles.balances["user-1"] = 100

		_, err := env.svc.CreateOrder(context.Background(), "user-1", order.CreateOrderRequest{
			ProductID:     "prod-1",
			PaymentMethod: "balance",
		})
		assert.ErrorIs(t, err, order.ErrInsufficientBalance)
		assert.False(t, env.repo.orders.committed)
	})

	t.Run("OutOfStock", func(t *testing.T) {
		env := newTestService(t)
		env.repo.orders.stock["prod-1"] = 0

		_, err := env.svc.CreateOrder(context.Background(), "user-1", order.CreateOrderRequest{
			ProductID:     "prod-1",
			PaymentMethod: "balance",
		})
		assert.ErrorIs(t, err, order.ErrOutOfStock)
		assert.False(t, env.repo.orders.committed)
		assert.True(t, env.repo.orders.rolledBack)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		env := newTestService(t)

		_, err := env.svc.CreateOrder(context.Background(), "user-1", order.CreateOrderRequest{
			ProductID:     "missing",
			PaymentMethod: "balance",
		})
		assert.ErrorIs(t, err, product.ErrProductNotFound)
	})
}

func TestService_CreateOrder_QRIS(t *testing.T) {
	completedPayment := payment.PaymentResponse{
		ID:          "pay-1",
		UserID:      "user-1",
		Amount:      50042,
		Type:        string(entity.PaymentPurposePurchase),
		ReferenceID: strPtr("prod-1"),
		Status:      string(entity.PaymentStatusCompleted),
	}

	t.Run("CompletedPaymentFundsOrder", func(t *testing.T) {
		env := newTestService(t)
		env.payments.payments["pay-1"] = completedPayment

		resp, err := env.svc.CreateOrder(context.Background(), "user-1", order.CreateOrderRequest{
			ProductID:     "prod-1",
			PaymentMethod: "qris",
			QRISPaymentID: strPtr("pay-1"),
		})
		require.NoError(t, err)

		require.NotNil(t, resp.Credential)
		assert.Equal(t, float64(100000), env.repo.profiles.balances["user-1"], "qris order must not touch balance")
	})

	t.Run("MissingPaymentID", func(t *testing.T) {
		env := newTestService(t)

		_, err := env.svc.CreateOrder(context.Background(), "user-1", order.CreateOrderRequest{
			ProductID:     "prod-1",
			PaymentMethod: "qris",
		})
		assert.ErrorIs(t, err, order.ErrMissingPaymentID)
	})

	t.Run("PendingPaymentRejected", func(t *testing.T) {
		env := newTestService(t)
		pending := completedPayment
		pending.Status = string(entity.PaymentStatusPending)
		env.payments.payments["pay-1"] = pending

		_, err := env.svc.CreateOrder(context.Background(), "user-1", order.CreateOrderRequest{
			ProductID:     "prod-1",
			PaymentMethod: "qris",
			QRISPaymentID: strPtr("pay-1"),
		})
		assert.ErrorIs(t, err, order.ErrPaymentNotCompleted)
	})

	t.Run("WrongProductReference", func(t *testing.T) {
		env := newTestService(t)
		other := completedPayment
		other.ReferenceID = strPtr("prod-other")
		env.payments.payments["pay-1"] = other

		_, err := env.svc.CreateOrder(context.Background(), "user-1", order.CreateOrderRequest{
			ProductID:     "prod-1",
			PaymentMethod: "qris",
			QRISPaymentID: strPtr("pay-1"),
		})
		assert.ErrorIs(t, err, order.ErrPaymentNotCompleted)
	})

	t.Run("ReusedPaymentRejected", func(t *testing.T) {
		env := newTestService(t)
		env.payments.payments["pay-1"] = completedPayment

		_, err := env.svc.CreateOrder(context.Background(), "user-1", order.CreateOrderRequest{
			ProductID:     "prod-1",
			PaymentMethod: "qris",
			QRISPaymentID: strPtr("pay-1"),
		})
		require.NoError(t, err)

		_, err = env.svc.CreateOrder(context.Background(), "user-1", order.CreateOrderRequest{
			ProductID:     "prod-1",
			PaymentMethod: "qris",
			QRISPaymentID: strPtr("pay-1"),
		})
		assert.ErrorIs(t, err, order.ErrPaymentAlreadyUsed)
	})
}

func TestService_ConfirmDeposit(t *testing.T) {
	depositPayment := payment.PaymentResponse{
		ID:     "pay-dep",
		UserID: "user-1",
		Amount: 25042,
		Type:   string(entity.PaymentPurposeDeposit),
		Status: string(entity.PaymentStatusCompleted),
	}

	t.Run("CreditsBalanceOnce", func(t *testing.T) {
		env := newTestService(t)
		env.payments.payments["pay-dep"] = depositPayment

		resp, err := env.svc.ConfirmDeposit(context.Background(), "user-1", "pay-dep")
		require.NoError(t, err)

		assert.Equal(t, float64(25042), resp.Amount)
		assert.Equal(t, entity.DepositStatusCompleted, resp.Status)
		assert.Equal(t, float64(125042), env.repo.profiles.balances["user-1"])

		_, err = env.svc.ConfirmDeposit(context.Background(), "user-1", "pay-dep")
		assert.ErrorIs(t, err, order.ErrDepositAlreadyCredited)
		assert.Equal(t, float64(125042), env.repo.profiles.balances["user-1"])
	})

	t.Run("PendingPaymentRejected", func(t *testing.T) {
		env := newTestService(t)
		pending := depositPayment
		pending.Status = string(entity.PaymentStatusPending)
		env.payments.payments["pay-dep"] = pending

		_, err := env.svc.ConfirmDeposit(context.Background(), "user-1", "pay-dep")
		assert.ErrorIs(t, err, order.ErrPaymentNotCompleted)
	})

	t.Run("PurchasePaymentRejected", func(t *testing.T) {
		env := newTestService(t)
		purchase := depositPayment
		purchase.Type = string(entity.PaymentPurposePurchase)
		env.payments.payments["pay-dep"] = purchase

		_, err := env.svc.ConfirmDeposit(context.Background(), "user-1", "pay-dep")
		assert.ErrorIs(t, err, order.ErrPaymentNotCompleted)
	})

	t.Run("ForeignPaymentRejected", func(t *testing.T) {
		env := newTestService(t)
		env.payments.payments["pay-dep"] = depositPayment

		_, err := env.svc.ConfirmDeposit(context.Background(), "someone-else", "pay-dep")
		assert.ErrorIs(t, err, payment.ErrPaymentNotFound)
	})
}

func TestService_ListOrders(t *testing.T) {
	env := newTestService(t)

	now := time.Now()
	env.repo.orders.orders["ord-1"] = entity.Order{
		ID:        "ord-1",
		UserID:    "user-1",
		ProductID: "prod-1",
		Amount:    50000,
		Status:    entity.OrderStatusCompleted,
		CreatedAt: now,
	}
	env.repo.orders.orders["ord-2"] = entity.Order{
		ID:     "ord-2",
		UserID: "someone-else",
	}

	orders, err := env.svc.ListOrders(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "ord-1", orders[0].ID)
	assert.Equal(t, "Netflix Premium", orders[0].ProductName)
}
