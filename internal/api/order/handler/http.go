package orderHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	orderService "waroengg-be/internal/api/order/service"
	"waroengg-be/internal/middleware"
)

type OrderHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	orderService orderService.IOrderService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	os orderService.IOrderService,
) *OrderHandler {
	return &OrderHandler{
		log:          log,
		validator:    validate,
		middleware:   middleware,
		orderService: os,
	}
}

func (h *OrderHandler) Start(srv fiber.Router) {
	orders := srv.Group("/orders")

	orders.Post("/", h.middleware.NewTokenMiddleware, h.CreateOrder)
	orders.Get("/", h.middleware.NewTokenMiddleware, h.ListOrders)

	deposits := srv.Group("/deposits")

	deposits.Post("/", h.middleware.NewTokenMiddleware, h.CreateDeposit)
	deposits.Post("/:payment_id/confirm", h.middleware.NewTokenMiddleware, h.ConfirmDeposit)
}
