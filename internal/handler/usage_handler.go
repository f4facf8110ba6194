package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/BYRON-lang/dashboard/internal/service"
)

// UsageHandler reports blob storage consumption.
type UsageHandler struct {
	service *service.UsageService
}

// NewUsageHandler creates a new handler instance.
func NewUsageHandler(service *service.UsageService) *UsageHandler {
	return &UsageHandler{service: service}
}

// Usage handles GET /storage/usage requests. The report is computed fresh on
// every call.
func (h *UsageHandler) Usage(c echo.Context) error {
	report := h.service.ComputeUsage(c.Request().Context())
	return Success(c, http.StatusOK, "", report)
}
