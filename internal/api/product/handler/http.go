package productHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	productService "waroengg-be/internal/api/product/service"
	"waroengg-be/internal/middleware"
)

type ProductHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	productService productService.IProductService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ps productService.IProductService,
) *ProductHandler {
	return &ProductHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		productService: ps,
	}
}

func (h *ProductHandler) Start(srv fiber.Router) {
	products := srv.Group("/products")

	products.Get("/", h.ListProducts)
	products.Get("/:id", h.GetProduct)
	products.Post("/:id/image", h.middleware.NewTokenMiddleware, h.middleware.NewAdminMiddleware, h.UploadProductImage)

	banners := srv.Group("/banners")

	banners.Get("/", h.ListBanners)
	banners.Post("/:id/image", h.middleware.NewTokenMiddleware, h.middleware.NewAdminMiddleware, h.UploadBannerImage)
}
