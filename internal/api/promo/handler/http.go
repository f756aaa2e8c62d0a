package promoHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	promoService "waroengg-be/internal/api/promo/service"
	"waroengg-be/internal/middleware"
)

type PromoHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	promoService promoService.IPromoService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ps promoService.IPromoService,
) *PromoHandler {
	return &PromoHandler{
		log:          log,
		validator:    validate,
		middleware:   middleware,
		promoService: ps,
	}
}

func (h *PromoHandler) Start(srv fiber.Router) {
	promos := srv.Group("/promos")

	promos.Post("/validate", h.middleware.NewRateLimiter, h.middleware.NewTokenMiddleware, h.ValidatePromo)
}
