package paymentHandler

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
	paymentService "waroengg-be/internal/api/payment/service"
	"waroengg-be/internal/middleware"
)

type PaymentHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	paymentService paymentService.IPaymentService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ps paymentService.IPaymentService,
) *PaymentHandler {
	return &PaymentHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		paymentService: ps,
	}
}

func (h *PaymentHandler) Start(srv fiber.Router) {
	payments := srv.Group("/payments")

	payments.Post("/generate", h.middleware.NewRateLimiter, h.middleware.NewTokenMiddleware, h.CreatePayment)

	if os.Getenv("APP_ENV") != "production" {
		payments.Post("/:id/simulate", h.middleware.NewTokenMiddleware, h.SimulatePayment)
	}

	payments.Get("/:id/status", h.middleware.NewTokenMiddleware, h.GetStatus)
	payments.Post("/:id/complete", h.middleware.NewTokenMiddleware, h.middleware.NewAdminMiddleware, h.CompletePayment)
	payments.Get("/:id/watch", h.middleware.NewTokenMiddleware, upgradeRequired, websocket.New(h.WatchPayment))
	payments.Get("/:id", h.middleware.NewTokenMiddleware, h.GetPayment)
}

func upgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}
