package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gstdesk/internal/domain"
	"gstdesk/internal/export"
	"gstdesk/internal/service"
)

// InvoiceHandler handles invoice review endpoints.
type InvoiceHandler struct {
	reviewService service.ReviewService
	maxExport     int
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(reviewService service.ReviewService, maxExport int) *InvoiceHandler {
	return &InvoiceHandler{reviewService: reviewService, maxExport: maxExport}
}

// List handles GET /api/v1/invoices
// @Summary List invoices
// @Description List invoices for the tenant with an optional status filter
// @Tags invoices
// @Produce json
// @Param status query string false "Filter by status"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} APIResponse{data=[]domain.Invoice,meta=PagMeta} "List of invoices"
// @Failure 400 {object} APIResponse "Invalid status filter"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Security BearerAuth
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)

	var status *domain.InvoiceStatus
	if statusStr := c.Query("status"); statusStr != "" {
		s := domain.InvoiceStatus(statusStr)
		if !domain.ValidStatuses[s] {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "unknown status filter")
			return
		}
		status = &s
	}

	invoices, total, err := h.reviewService.List(c.Request.Context(), tenantID, status, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/invoices/:id
// @Summary Get invoice by ID
// @Description Get the invoice including the full extracted document
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} APIResponse{data=domain.Invoice} "Invoice details"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 404 {object} APIResponse "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	inv, err := h.reviewService.Get(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// Save handles PUT /api/v1/invoices/:id
// @Summary Save an edited invoice
// @Description Persist the edited working copy. Derived tax fields are recomputed server-side; status is unchanged.
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Param request body domain.InvoiceDocument true "Edited invoice document"
// @Success 200 {object} APIResponse{data=domain.Invoice} "Invoice saved"
// @Failure 400 {object} APIResponse "Invalid request or document validation failed"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 404 {object} APIResponse "Invoice not found"
// @Failure 409 {object} APIResponse "Invoice is no longer editable"
// @Security BearerAuth
// @Router /invoices/{id} [put]
func (h *InvoiceHandler) Save(c *gin.Context) {
	input, ok := h.bindSaveInput(c)
	if !ok {
		return
	}

	inv, err := h.reviewService.Save(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// Approve handles POST /api/v1/invoices/:id/approve
// @Summary Approve an invoice
// @Description Save the edited working copy and transition the invoice to approved
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Param request body domain.InvoiceDocument true "Edited invoice document"
// @Success 200 {object} APIResponse{data=domain.Invoice} "Invoice approved"
// @Failure 400 {object} APIResponse "Invalid request or document validation failed"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 404 {object} APIResponse "Invoice not found"
// @Failure 409 {object} APIResponse "Not editable, or saved but not approved"
// @Security BearerAuth
// @Router /invoices/{id}/approve [post]
func (h *InvoiceHandler) Approve(c *gin.Context) {
	input, ok := h.bindSaveInput(c)
	if !ok {
		return
	}

	inv, err := h.reviewService.Approve(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

func (h *InvoiceHandler) bindSaveInput(c *gin.Context) (*service.SaveInvoiceInput, bool) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return nil, false
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return nil, false
	}

	var doc domain.InvoiceDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invoice document body is required")
		return nil, false
	}

	return &service.SaveInvoiceInput{
		TenantID:  tenantID,
		InvoiceID: invoiceID,
		UserID:    userID,
		Document:  doc,
	}, true
}

// Reject handles POST /api/v1/invoices/:id/reject
// @Summary Reject an invoice
// @Description Transition the invoice to rejected. Pending client-side edits are not persisted.
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Param request body object{notes=string} true "Reviewer notes"
// @Success 200 {object} APIResponse{data=domain.Invoice} "Invoice rejected"
// @Failure 400 {object} APIResponse "Invalid request"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 404 {object} APIResponse "Invoice not found"
// @Failure 409 {object} APIResponse "Invoice status does not allow rejection"
// @Security BearerAuth
// @Router /invoices/{id}/reject [post]
func (h *InvoiceHandler) Reject(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	var req struct {
		Notes string `json:"notes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "notes are required when rejecting")
		return
	}

	inv, err := h.reviewService.Reject(c.Request.Context(), &service.RejectInvoiceInput{
		TenantID:  tenantID,
		InvoiceID: invoiceID,
		UserID:    userID,
		Notes:     req.Notes,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// BulkApprove handles POST /api/v1/invoices/bulk-approve
// @Summary Bulk approve invoices
// @Description Approve a set of invoices in one request. Returns the number actually modified; invoices already transitioned by someone else are skipped.
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body object{ids=[]string} true "Invoice IDs to approve"
// @Success 200 {object} APIResponse{data=object{modified_count=int}} "Bulk approval result"
// @Failure 400 {object} APIResponse "Invalid request"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Security BearerAuth
// @Router /invoices/bulk-approve [post]
func (h *InvoiceHandler) BulkApprove(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	ids, ok := h.bindIDList(c)
	if !ok {
		return
	}

	modified, err := h.reviewService.BulkApprove(c.Request.Context(), tenantID, userID, ids)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"modified_count": modified, "requested_count": len(ids)})
}

// Export handles POST /api/v1/invoices/export
// @Summary Export approved invoices
// @Description Build an export file (xlsx or csv) from approved invoices and mark them exported
// @Tags invoices
// @Accept json
// @Produce application/octet-stream
// @Param request body object{ids=[]string,format=string} true "Invoice IDs and format (xlsx or csv)"
// @Success 200 {file} binary "Export file"
// @Failure 400 {object} APIResponse "Invalid request or nothing to export"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Security BearerAuth
// @Router /invoices/export [post]
func (h *InvoiceHandler) Export(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req struct {
		IDs    []string `json:"ids" binding:"required,min=1"`
		Format string   `json:"format"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "ids are required")
		return
	}
	if h.maxExport > 0 && len(req.IDs) > h.maxExport {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST",
			fmt.Sprintf("at most %d invoices can be exported per request", h.maxExport))
		return
	}

	format := export.Format(req.Format)
	if format == "" {
		format = export.FormatXLSX
	}
	if !export.ValidFormats[format] {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "format must be 'xlsx' or 'csv'")
		return
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, idStr := range req.IDs {
		id, err := uuid.Parse(idStr)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID in ids")
			return
		}
		ids = append(ids, id)
	}

	result, err := h.reviewService.Export(c.Request.Context(), &service.ExportInput{
		TenantID: tenantID,
		UserID:   userID,
		IDs:      ids,
		Format:   format,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Header("X-Modified-Count", fmt.Sprintf("%d", result.ModifiedCount))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// SourceURL handles GET /api/v1/invoices/:id/source-url
// @Summary Get source file URL
// @Description Get a presigned, time-limited URL for the invoice's original scanned document
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} APIResponse{data=object{url=string}} "Presigned URL"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 404 {object} APIResponse "Invoice or source file not found"
// @Security BearerAuth
// @Router /invoices/{id}/source-url [get]
func (h *InvoiceHandler) SourceURL(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	url, err := h.reviewService.SourceFileURL(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"url": url})
}

// Audit handles GET /api/v1/invoices/:id/audit
// @Summary Get invoice audit trail
// @Description List review actions recorded against the invoice, newest first
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} APIResponse{data=[]domain.InvoiceAuditEntry} "Audit entries"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 404 {object} APIResponse "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id}/audit [get]
func (h *InvoiceHandler) Audit(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	entries, err := h.reviewService.AuditTrail(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entries)
}

func (h *InvoiceHandler) bindIDList(c *gin.Context) ([]uuid.UUID, bool) {
	var req struct {
		IDs []string `json:"ids" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "ids are required")
		return nil, false
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, idStr := range req.IDs {
		id, err := uuid.Parse(idStr)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID in ids")
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
