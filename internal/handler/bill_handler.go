package handler

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wattbill/internal/csvexport"
	"wattbill/internal/domain"
	"wattbill/internal/service"
)

// BillHandler handles bill generation, comparison, and management endpoints.
type BillHandler struct {
	billService      service.BillService
	householdService service.HouseholdService
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(billService service.BillService, householdService service.HouseholdService) *BillHandler {
	return &BillHandler{billService: billService, householdService: householdService}
}

// Generate handles POST /api/v1/households/:id/bills/generate. The bill is
// computed from recorded usage; regenerating an existing period replaces it
// and resets payment state.
func (h *BillHandler) Generate(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	householdID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid household ID")
		return
	}

	var req struct {
		Month int `json:"month" binding:"required,min=1,max=12"`
		Year  int `json:"year" binding:"required,min=2000,max=2100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "month (1-12) and year (2000-2100) are required")
		return
	}

	if _, err := h.householdService.VerifyOwner(c.Request.Context(), householdID, userID, role); err != nil {
		HandleError(c, err)
		return
	}

	bill, err := h.billService.GenerateBill(c.Request.Context(), householdID, req.Month, req.Year)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, bill)
}

// Create handles POST /api/v1/bills for user-entered bills.
func (h *BillHandler) Create(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req service.CreateBillInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "household_id, month, and year are required")
		return
	}

	if _, err := h.householdService.VerifyOwner(c.Request.Context(), req.HouseholdID, userID, role); err != nil {
		HandleError(c, err)
		return
	}

	bill, err := h.billService.CreateUserBill(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, bill)
}

// ListByHousehold handles GET /api/v1/households/:id/bills
func (h *BillHandler) ListByHousehold(c *gin.Context) {
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

	bills, err := h.billService.ListByHousehold(c.Request.Context(), householdID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, bills)
}

// List handles GET /api/v1/bills (admin only, enforced by the router).
func (h *BillHandler) List(c *gin.Context) {
	bills, err := h.billService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, bills)
}

// GetByID handles GET /api/v1/bills/:id
func (h *BillHandler) GetByID(c *gin.Context) {
	bill, ok := h.authorizedBill(c)
	if !ok {
		return
	}
	RespondOK(c, bill)
}

// Compare handles GET /api/v1/households/:id/bills/compare. An absent current
// bill yields an empty comparison, not an error.
func (h *BillHandler) Compare(c *gin.Context) {
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

	comparison, err := h.billService.CompareBills(c.Request.Context(), householdID, month, year)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, comparison)
}

// Regenerate handles POST /api/v1/bills/:id/regenerate
func (h *BillHandler) Regenerate(c *gin.Context) {
	bill, ok := h.authorizedBill(c)
	if !ok {
		return
	}

	regenerated, err := h.billService.Regenerate(c.Request.Context(), bill.ID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, regenerated)
}

// UpdateStatus handles PATCH /api/v1/bills/:id/status
func (h *BillHandler) UpdateStatus(c *gin.Context) {
	bill, ok := h.authorizedBill(c)
	if !ok {
		return
	}

	var req struct {
		Status domain.BillStatus `json:"status" binding:"required,oneof=unpaid paid"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "status must be unpaid or paid")
		return
	}

	updated, err := h.billService.UpdateStatus(c.Request.Context(), bill.ID, req.Status)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, updated)
}

// Delete handles DELETE /api/v1/bills/:id
func (h *BillHandler) Delete(c *gin.Context) {
	bill, ok := h.authorizedBill(c)
	if !ok {
		return
	}

	if err := h.billService.Delete(c.Request.Context(), bill.ID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}

// ExportCSV handles GET /api/v1/households/:id/bills/export and streams the
// household's bill history as a CSV download.
func (h *BillHandler) ExportCSV(c *gin.Context) {
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

	bills, err := h.billService.ListByHousehold(c.Request.Context(), householdID)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("bills_%s.csv", householdID)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := csvexport.WriteBillHistory(c.Writer, household, bills); err != nil {
		// Headers are already sent; nothing left to do but log.
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] csv export failed: %v", requestID, err)
	}
}

// authorizedBill loads the bill from the :id param and verifies the caller
// owns its household. On failure the error response is already written.
func (h *BillHandler) authorizedBill(c *gin.Context) (*domain.Bill, bool) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return nil, false
	}

	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill ID")
		return nil, false
	}

	bill, err := h.billService.GetByID(c.Request.Context(), billID)
	if err != nil {
		HandleError(c, err)
		return nil, false
	}
	if _, err := h.householdService.VerifyOwner(c.Request.Context(), bill.HouseholdID, userID, role); err != nil {
		HandleError(c, err)
		return nil, false
	}
	return bill, true
}
