package orderService

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"waroengg-be/internal/api/order"
	orderRepository "waroengg-be/internal/api/order/repository"
	"waroengg-be/internal/api/payment"
	paymentService "waroengg-be/internal/api/payment/service"
	productService "waroengg-be/internal/api/product/service"
	promoService "waroengg-be/internal/api/promo/service"
	"waroengg-be/pkg/utils"
)

type IOrderService interface {
	CreateOrder(ctx context.Context, userID string, req order.CreateOrderRequest) (*order.OrderResponse, error)
	ListOrders(ctx context.Context, userID string) ([]order.OrderResponse, error)
	CreateDeposit(ctx context.Context, userID string, req order.CreateDepositRequest) (*payment.PaymentResponse, error)
	ConfirmDeposit(ctx context.Context, userID, paymentID string) (*order.DepositResponse, error)
}

type orderService struct {
	log             *logrus.Logger
	orderRepository orderRepository.Repository
	paymentService  paymentService.IPaymentService
	productService  productService.IProductService
	promoService    promoService.IPromoService
	utils           utils.IUtils
}

func New(
	log *logrus.Logger,
	repo orderRepository.Repository,
	ps paymentService.IPaymentService,
	products productService.IProductService,
	promo promoService.IPromoService,
	utils utils.IUtils,
) IOrderService {
	return &orderService{
		log:             log,
		orderRepository: repo,
		paymentService:  ps,
		productService:  products,
		promoService:    promo,
		utils:           utils,
	}
}
