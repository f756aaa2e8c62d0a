package handlerUtil

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
	"waroengg-be/internal/api/order"
	"waroengg-be/internal/api/payment"
	"waroengg-be/internal/api/product"
	"waroengg-be/internal/api/promo"
	"waroengg-be/pkg/log"
	"waroengg-be/pkg/response"
)

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	// Payment domain errors
	if errors.Is(err, payment.ErrPaymentNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Payment not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Payment not found",
			"code":  "PAYMENT_NOT_FOUND",
		})
	}

	if errors.Is(err, payment.ErrInvalidAmount) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid payment amount")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid payment amount",
			"code":  "INVALID_AMOUNT",
		})
	}

	if errors.Is(err, payment.ErrInvalidTransactionState) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Payment is no longer pending")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Payment is no longer pending",
			"code":  "INVALID_TRANSACTION_STATE",
		})
	}

	if errors.Is(err, payment.ErrPaymentExpired) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Payment has expired")
		return c.Status(fiber.StatusGone).JSON(fiber.Map{
			"error": "Payment has expired",
			"code":  "PAYMENT_EXPIRED",
		})
	}

	if errors.Is(err, payment.ErrMalformedTemplate) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Error("QRIS template is malformed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to generate payment code",
			"code":  "MALFORMED_TEMPLATE",
		})
	}

	// Product domain errors
	if errors.Is(err, product.ErrProductNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Product not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
			"code":  "PRODUCT_NOT_FOUND",
		})
	}

	if errors.Is(err, product.ErrBannerNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Banner not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Banner not found",
			"code":  "BANNER_NOT_FOUND",
		})
	}

	if errors.Is(err, product.ErrInvalidFileType) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid file type")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid file type. Only images are allowed.",
		})
	}

	if errors.Is(err, product.ErrFileTooLarge) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("File too large")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File too large. Maximum size is 5MB.",
		})
	}

	if errors.Is(err, product.ErrFailedToUploadFile) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Failed to upload file")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload file",
		})
	}

	// Promo domain errors
	if errors.Is(err, promo.ErrPromoNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid promo code")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Invalid promo code",
			"code":  "PROMO_NOT_FOUND",
		})
	}

	if errors.Is(err, promo.ErrPromoExpired) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Promo code has expired")
		return c.Status(fiber.StatusGone).JSON(fiber.Map{
			"error": "Promo code has expired",
			"code":  "PROMO_EXPIRED",
		})
	}

	if errors.Is(err, promo.ErrPromoExhausted) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Promo code usage limit reached")
		return c.Status(fiber.StatusGone).JSON(fiber.Map{
			"error": "Promo code usage limit reached",
			"code":  "PROMO_EXHAUSTED",
		})
	}

	if errors.Is(err, promo.ErrBelowMinPurchase) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Subtotal below promo minimum purchase")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Subtotal is below the minimum purchase for this promo",
			"code":  "BELOW_MIN_PURCHASE",
		})
	}

	// Order domain errors
	if errors.Is(err, order.ErrOrderNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Order not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
			"code":  "ORDER_NOT_FOUND",
		})
	}

	if errors.Is(err, order.ErrInsufficientBalance) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Insufficient balance")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Insufficient balance",
			"code":  "INSUFFICIENT_BALANCE",
		})
	}

	if errors.Is(err, order.ErrOutOfStock) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Product is out of stock")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Product is out of stock",
			"code":  "OUT_OF_STOCK",
		})
	}

	if errors.Is(err, order.ErrPaymentNotCompleted) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Payment is not completed")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Payment is not completed",
			"code":  "PAYMENT_NOT_COMPLETED",
		})
	}

	if errors.Is(err, order.ErrPaymentAlreadyUsed) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Payment has already been used")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Payment has already been used",
			"code":  "PAYMENT_ALREADY_USED",
		})
	}

	if errors.Is(err, order.ErrDepositAlreadyCredited) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Deposit has already been credited")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Deposit has already been credited",
			"code":  "DEPOSIT_ALREADY_CREDITED",
		})
	}

	if errors.Is(err, order.ErrMissingPaymentID) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Missing qris_payment_id")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "qris_payment_id is required for qris payment",
			"code":  "MISSING_PAYMENT_ID",
		})
	}

	var respErr *response.Error
	if errors.As(err, &respErr) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       respErr.Code,
			"path":       path,
			"operation":  operation,
		}).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(fiber.Map{"error": err.Error()})
	}

	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}).Error("Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "An unexpected error occurred",
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
		"code":  "UNAUTHORIZED",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
