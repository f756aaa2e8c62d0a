package promoHandler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
	"waroengg-be/internal/api/promo"
	contextPkg "waroengg-be/pkg/context"
	"waroengg-be/pkg/handlerUtil"
)

func (h *PromoHandler) ValidatePromo(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req promo.ValidatePromoRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	response, err := h.promoService.Validate(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "validate_promo")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
}
