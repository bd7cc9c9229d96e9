package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wattbill/internal/domain"
	"wattbill/internal/service"
)

// HouseholdHandler handles household management endpoints.
type HouseholdHandler struct {
	householdService service.HouseholdService
}

// NewHouseholdHandler creates a new HouseholdHandler.
func NewHouseholdHandler(householdService service.HouseholdService) *HouseholdHandler {
	return &HouseholdHandler{householdService: householdService}
}

// Create handles POST /api/v1/households
func (h *HouseholdHandler) Create(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req service.CreateHouseholdInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name, city, and occupants are required")
		return
	}

	household, err := h.householdService.Create(c.Request.Context(), userID, req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, household)
}

// List handles GET /api/v1/households. Admins see every household, regular
// users only their own.
func (h *HouseholdHandler) List(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var (
		households []domain.Household
		err        error
	)
	if role == domain.RoleAdmin {
		households, err = h.householdService.List(c.Request.Context())
	} else {
		households, err = h.householdService.ListByOwner(c.Request.Context(), userID)
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, households)
}

// GetByID handles GET /api/v1/households/:id
func (h *HouseholdHandler) GetByID(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	householdID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid household ID")
		return
	}

	household, err := h.householdService.VerifyOwner(c.Request.Context(), householdID, userID, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, household)
}

// Update handles PUT /api/v1/households/:id
func (h *HouseholdHandler) Update(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	householdID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid household ID")
		return
	}

	var req service.UpdateHouseholdInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid update payload")
		return
	}

	household, err := h.householdService.Update(c.Request.Context(), householdID, userID, role, req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, household)
}

// Delete handles DELETE /api/v1/households/:id
func (h *HouseholdHandler) Delete(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	householdID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid household ID")
		return
	}

	if err := h.householdService.Delete(c.Request.Context(), householdID, userID, role); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}
