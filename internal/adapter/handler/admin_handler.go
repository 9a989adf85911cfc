package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/srgjo27/healthbook/internal/core/domain"
	"github.com/srgjo27/healthbook/internal/core/services"
	"go.uber.org/zap"
)

type OverviewProvider interface {
	Overview(ctx context.Context, principal domain.Principal) (*services.Overview, error)
}

type AdminHandler struct {
	svc    OverviewProvider
	logger *zap.Logger
}

func NewAdminHandler(svc OverviewProvider, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, logger: logger}
}

func (h *AdminHandler) Overview(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return respondError(c, h.logger, domain.ErrForbidden)
	}

	overview, err := h.svc.Overview(c.Request().Context(), principal)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, overview)
}
