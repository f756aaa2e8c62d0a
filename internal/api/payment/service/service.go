package paymentService

import (
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"waroengg-be/internal/api/payment"
	paymentRepository "waroengg-be/internal/api/payment/repository"
	"waroengg-be/internal/entity"
	"waroengg-be/pkg/qris"
	"waroengg-be/pkg/redis"
	"waroengg-be/pkg/smtp"
	"waroengg-be/pkg/utils"
)

type IPaymentService interface {
	CreatePayment(ctx context.Context, userID string, req payment.CreatePaymentRequest) (*payment.PaymentResponse, error)
	GetPayment(ctx context.Context, userID, id string) (*payment.PaymentResponse, error)
	GetStatus(ctx context.Context, id string) (*payment.StatusResponse, error)
	MarkCompleted(ctx context.Context, id string) (*payment.PaymentResponse, error)
	SimulatePayment(ctx context.Context, id string) error
	Watch(ctx context.Context, id string, send func(payment.WatchUpdate) error) error
}

type paymentService struct {
	log               *logrus.Logger
	paymentRepository paymentRepository.Repository
	codec             qris.IQris
	cache             redis.IRedis
	mailer            smtp.ItfSmtp
	utils             utils.IUtils
	payBaseURL        string
}

func New(
	log *logrus.Logger,
	repo paymentRepository.Repository,
	codec qris.IQris,
	cache redis.IRedis,
	mailer smtp.ItfSmtp,
	utils utils.IUtils,
) IPaymentService {
	payBaseURL := os.Getenv("QRIS_PAY_BASE_URL")
	if payBaseURL == "" {
		payBaseURL = "https://qris.id/pay"
	}

	return &paymentService{
		log:               log,
		paymentRepository: repo,
		codec:             codec,
		cache:             cache,
		mailer:            mailer,
		utils:             utils,
		payBaseURL:        payBaseURL,
	}
}

func makePaymentResponse(p entity.QRISPayment) *payment.PaymentResponse {
	return &payment.PaymentResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		QRISCode:    p.QRISCode,
		QRISURL:     p.QRISURL,
		Amount:      p.Amount,
		Type:        string(p.Type),
		ReferenceID: p.ReferenceID,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		ExpiresAt:   p.ExpiresAt,
	}
}
