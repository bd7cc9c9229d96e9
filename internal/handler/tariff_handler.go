package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wattbill/internal/billing"
	"wattbill/internal/service"
)

// TariffHandler handles tariff read and admin update endpoints.
type TariffHandler struct {
	tariffService service.TariffService
}

// NewTariffHandler creates a new TariffHandler.
func NewTariffHandler(tariffService service.TariffService) *TariffHandler {
	return &TariffHandler{tariffService: tariffService}
}

// Get handles GET /api/v1/tariff. Seeds the default slab table on first read.
func (h *TariffHandler) Get(c *gin.Context) {
	tariff, err := h.tariffService.GetTariff(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tariff)
}

// Update handles PUT /api/v1/tariff (admin only, enforced by the router).
// Absent fields keep their current value.
func (h *TariffHandler) Update(c *gin.Context) {
	var req service.UpdateTariffInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid tariff payload")
		return
	}

	tariff, err := h.tariffService.UpdateTariff(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tariff)
}

// Estimate handles GET /api/v1/tariff/estimate?units=N and prices an
// arbitrary unit count against the live tariff.
func (h *TariffHandler) Estimate(c *gin.Context) {
	units, err := strconv.ParseFloat(c.Query("units"), 64)
	if err != nil || units < 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_UNITS", "units must be a non-negative number")
		return
	}

	tariff, err := h.tariffService.GetTariff(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, billing.CalculateCost(units, tariff))
}
