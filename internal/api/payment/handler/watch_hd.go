package paymentHandler

import (
	"context"

	"github.com/gofiber/websocket/v2"
	"waroengg-be/internal/api/payment"
	"waroengg-be/internal/entity"
	"waroengg-be/internal/middleware"
	contextPkg "waroengg-be/pkg/context"
	"waroengg-be/pkg/log"
)

// WatchPayment streams countdown and status frames for one session. The
// socket closing cancels the watch context, which stops both tickers.
func (h *PaymentHandler) WatchPayment(conn *websocket.Conn) {
	defer func() {
		_ = conn.Close()
	}()

	paymentID := conn.Params("id")

	requestID, _ := conn.Locals(middleware.RequestIDKey).(string)
	if requestID == "" {
		requestID = "unknown"
	}

	userData, ok := conn.Locals("user").(entity.UserLoginData)
	if !ok {
		_ = conn.WriteJSON(map[string]string{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithCancel(contextPkg.WithRequestID(context.Background(), requestID))
	defer cancel()

	if _, err := h.paymentService.GetPayment(ctx, userData.ID, paymentID); err != nil {
		_ = conn.WriteJSON(map[string]string{"error": err.Error()})
		return
	}

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	send := func(update payment.WatchUpdate) error {
		return conn.WriteJSON(update)
	}

	if err := h.paymentService.Watch(ctx, paymentID, send); err != nil && ctx.Err() == nil {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"payment_id": paymentID,
			"error":      err.Error(),
		}).Warn("Payment watch ended with error")
	}
}
