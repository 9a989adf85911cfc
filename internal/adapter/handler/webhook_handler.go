package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/srgjo27/healthbook/internal/core/services"
	"go.uber.org/zap"
)

const (
	signatureHeader    = "x-paystack-signature"
	eventChargeSuccess = "charge.success"
	maxWebhookBody     = 1 << 20
)

type webhookPayload struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
	} `json:"data"`
}

// WebhookHandler receives Paystack events. Once the signature checks
// out it always acknowledges, so the gateway never retries on errors the
// service owns; recovery runs through the outbox relay.
type WebhookHandler struct {
	finalizer services.Finalizer
	secret    string
	logger    *zap.Logger
}

func NewWebhookHandler(finalizer services.Finalizer, secret string, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{finalizer: finalizer, secret: secret, logger: logger}
}

func (h *WebhookHandler) Handle(c echo.Context) error {
	if h.secret == "" {
		h.logger.Error("Webhook secret not configured")
		return c.JSON(http.StatusInternalServerError, errorBody{Error: "webhook secret not configured"})
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		h.logger.Error("Failed to read webhook body", zap.Error(err))
		return c.JSON(http.StatusBadRequest, errorBody{Error: "failed to read request body"})
	}

	if !services.VerifySignature(body, c.Request().Header.Get(signatureHeader), h.secret) {
		h.logger.Warn("Webhook signature mismatch", zap.String("ip", c.RealIP()))
		return c.JSON(http.StatusUnauthorized, errorBody{Error: "invalid signature"})
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		h.logger.Warn("Malformed webhook payload", zap.Error(err))
		return h.ack(c)
	}

	if payload.Event != eventChargeSuccess {
		h.logger.Debug("Ignoring webhook event", zap.String("event", payload.Event))
		return h.ack(c)
	}

	h.logger.Info("Processing charge.success", zap.String("reference", payload.Data.Reference))

	if err := h.finalizer.HandleChargeSuccess(c.Request().Context(), payload.Data.Reference); err != nil {
		h.logger.Error("Finalize failed, acknowledging anyway",
			zap.String("reference", payload.Data.Reference),
			zap.Error(err))
	}

	return h.ack(c)
}

func (h *WebhookHandler) ack(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"received": true})
}
