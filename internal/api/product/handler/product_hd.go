package productHandler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
	"waroengg-be/internal/api/product"
	contextPkg "waroengg-be/pkg/context"
	"waroengg-be/pkg/handlerUtil"
)

func (h *ProductHandler) ListProducts(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var query product.ListProductsQuery
	if err := ctx.QueryParser(&query); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_query")
	}

	response, err := h.productService.ListProducts(c, query)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_products")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
}

func (h *ProductHandler) GetProduct(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	response, err := h.productService.GetProduct(c, ctx.Params("id"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_product")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
}

func (h *ProductHandler) ListBanners(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	response, err := h.productService.ListBanners(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_banners")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
}

func (h *ProductHandler) UploadProductImage(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	file, err := ctx.FormFile("image")
	if err != nil {
		return errHandler.Handle(ctx, requestID, product.ErrInvalidFileType, ctx.Path(), "parse_image_file")
	}

	response, err := h.productService.UploadProductImage(c, ctx.Params("id"), file)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "upload_product_image")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
}

func (h *ProductHandler) UploadBannerImage(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	file, err := ctx.FormFile("image")
	if err != nil {
		return errHandler.Handle(ctx, requestID, product.ErrInvalidFileType, ctx.Path(), "parse_image_file")
	}

	response, err := h.productService.UploadBannerImage(c, ctx.Params("id"), file)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "upload_banner_image")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
}
