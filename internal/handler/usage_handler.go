package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wattbill/internal/service"
)

// UsageHandler handles usage entry and monthly summary endpoints.
type UsageHandler struct {
	usageService     service.UsageService
	householdService service.HouseholdService
}

// NewUsageHandler creates a new UsageHandler.
func NewUsageHandler(usageService service.UsageService, householdService service.HouseholdService) *UsageHandler {
	return &UsageHandler{usageService: usageService, householdService: householdService}
}

// Create handles POST /api/v1/usage
func (h *UsageHandler) Create(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req service.CreateUsageInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "household_id and date are required")
		return
	}

	if _, err := h.householdService.VerifyOwner(c.Request.Context(), req.HouseholdID, userID, role); err != nil {
		HandleError(c, err)
		return
	}

	entry, err := h.usageService.Create(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, entry)
}

// ListByHousehold handles GET /api/v1/households/:id/usage
func (h *UsageHandler) ListByHousehold(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	householdID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid household ID")
		return
	}

	if _, err := h.householdService.VerifyOwner(c.Request.Context(), householdID, userID, role); err != nil {
		HandleError(c, err)
		return
	}

	entries, err := h.usageService.ListByHousehold(c.Request.Context(), householdID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entries)
}

// Update handles PUT /api/v1/usage/:id
func (h *UsageHandler) Update(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	usageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid usage entry ID")
		return
	}

	entry, err := h.usageService.GetByID(c.Request.Context(), usageID)
	if err != nil {
		HandleError(c, err)
		return
	}
	if _, err := h.householdService.VerifyOwner(c.Request.Context(), entry.HouseholdID, userID, role); err != nil {
		HandleError(c, err)
		return
	}

	var req service.UpdateUsageInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid update payload")
		return
	}

	updated, err := h.usageService.Update(c.Request.Context(), usageID, req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, updated)
}

// Delete handles DELETE /api/v1/usage/:id
func (h *UsageHandler) Delete(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	usageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid usage entry ID")
		return
	}

	entry, err := h.usageService.GetByID(c.Request.Context(), usageID)
	if err != nil {
		HandleError(c, err)
		return
	}
	if _, err := h.householdService.VerifyOwner(c.Request.Context(), entry.HouseholdID, userID, role); err != nil {
		HandleError(c, err)
		return
	}

	if err := h.usageService.Delete(c.Request.Context(), usageID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}

// MonthlySummary handles GET /api/v1/households/:id/usage/summary
func (h *UsageHandler) MonthlySummary(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	householdID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid household ID")
		return
	}

	month, year, ok := parsePeriod(c)
	if !ok {
		return
	}

	if _, err := h.householdService.VerifyOwner(c.Request.Context(), householdID, userID, role); err != nil {
		HandleError(c, err)
		return
	}

	summary, err := h.usageService.GetMonthlyCostSummary(c.Request.Context(), householdID, month, year)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}

// parsePeriod reads month and year query params, defaulting to the current
// UTC month when absent.
func parsePeriod(c *gin.Context) (month, year int, ok bool) {
	now := time.Now().UTC()
	month, year = int(now.Month()), now.Year()

	if m := c.Query("month"); m != "" {
		v, err := strconv.Atoi(m)
		if err != nil || v < 1 || v > 12 {
			RespondError(c, http.StatusBadRequest, "INVALID_PERIOD", "month must be between 1 and 12")
			return 0, 0, false
		}
		month = v
	}
	if y := c.Query("year"); y != "" {
		v, err := strconv.Atoi(y)
		if err != nil || v < 2000 || v > 2100 {
			RespondError(c, http.StatusBadRequest, "INVALID_PERIOD", "year must be between 2000 and 2100")
			return 0, 0, false
		}
		year = v
	}
	return month, year, true
}
