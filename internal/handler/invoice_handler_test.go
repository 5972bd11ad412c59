package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstdesk/internal/domain"
	"gstdesk/internal/gst"
	"gstdesk/internal/handler"
	"gstdesk/internal/middleware"
	"gstdesk/internal/service"
	"gstdesk/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authedContext(w *httptest.ResponseRecorder, tenantID, userID uuid.UUID) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	c.Set(middleware.ContextKeyTenantID, tenantID)
	c.Set(middleware.ContextKeyUserID, userID)
	c.Set(middleware.ContextKeyRole, string(domain.RoleMember))
	return c
}

func TestInvoiceHandler_Get(t *testing.T) {
	mockSvc := new(mocks.MockReviewService)
	h := handler.NewInvoiceHandler(mockSvc, 500)

	tenantID := uuid.New()
	inv := &domain.Invoice{ID: uuid.New(), TenantID: tenantID, Status: domain.StatusPendingReview}
	mockSvc.On("Get", mock.Anything, tenantID, inv.ID).Return(inv, nil)

	w := httptest.NewRecorder()
	c := authedContext(w, tenantID, uuid.New())
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/invoices/"+inv.ID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: inv.ID.String()}}

	h.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	mockSvc.AssertExpectations(t)
}

func TestInvoiceHandler_Get_NotFound(t *testing.T) {
	mockSvc := new(mocks.MockReviewService)
	h := handler.NewInvoiceHandler(mockSvc, 500)

	tenantID := uuid.New()
	invoiceID := uuid.New()
	mockSvc.On("Get", mock.Anything, tenantID, invoiceID).Return(nil, domain.ErrInvoiceNotFound)

	w := httptest.NewRecorder()
	c := authedContext(w, tenantID, uuid.New())
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/invoices/"+invoiceID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: invoiceID.String()}}

	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "INVOICE_NOT_FOUND", resp.Error.Code)
}

func TestInvoiceHandler_Save_ValidationErrorCarriesFields(t *testing.T) {
	mockSvc := new(mocks.MockReviewService)
	h := handler.NewInvoiceHandler(mockSvc, 500)

	tenantID := uuid.New()
	invoiceID := uuid.New()
	mockSvc.On("Save", mock.Anything, mock.AnythingOfType("*service.SaveInvoiceInput")).
		Return(nil, &service.DocumentValidationError{
			Fields: []gst.FieldError{{Field: "line_items[0].gst_rate", Message: "must be between 0 and 28"}},
		})

	body, _ := json.Marshal(domain.InvoiceDocument{})
	w := httptest.NewRecorder()
	c := authedContext(w, tenantID, uuid.New())
	c.Request, _ = http.NewRequest(http.MethodPut, "/api/v1/invoices/"+invoiceID.String(), bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: invoiceID.String()}}

	h.Save(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_DOCUMENT", resp.Error.Code)
	assert.NotNil(t, resp.Error.Details)
}

func TestInvoiceHandler_Approve_SavedNotApproved(t *testing.T) {
	mockSvc := new(mocks.MockReviewService)
	h := handler.NewInvoiceHandler(mockSvc, 500)

	tenantID := uuid.New()
	invoiceID := uuid.New()
	inv := &domain.Invoice{ID: invoiceID, TenantID: tenantID, Status: domain.StatusPendingReview}
	mockSvc.On("Approve", mock.Anything, mock.AnythingOfType("*service.SaveInvoiceInput")).
		Return(inv, fmt.Errorf("%w: conflict", domain.ErrSavedNotApproved))

	body, _ := json.Marshal(domain.InvoiceDocument{})
	w := httptest.NewRecorder()
	c := authedContext(w, tenantID, uuid.New())
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invoices/"+invoiceID.String()+"/approve", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: invoiceID.String()}}

	h.Approve(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SAVED_NOT_APPROVED", resp.Error.Code)
}

func TestInvoiceHandler_Reject_RequiresNotes(t *testing.T) {
	mockSvc := new(mocks.MockReviewService)
	h := handler.NewInvoiceHandler(mockSvc, 500)

	invoiceID := uuid.New()
	body, _ := json.Marshal(map[string]string{})
	w := httptest.NewRecorder()
	c := authedContext(w, uuid.New(), uuid.New())
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invoices/"+invoiceID.String()+"/reject", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: invoiceID.String()}}

	h.Reject(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Reject", mock.Anything, mock.Anything)
}

func TestInvoiceHandler_BulkApprove(t *testing.T) {
	mockSvc := new(mocks.MockReviewService)
	h := handler.NewInvoiceHandler(mockSvc, 500)

	tenantID := uuid.New()
	userID := uuid.New()
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	mockSvc.On("BulkApprove", mock.Anything, tenantID, userID, ids).Return(2, nil)

	idStrs := make([]string, len(ids))
	for i, id := range ids {
		idStrs[i] = id.String()
	}
	body, _ := json.Marshal(map[string][]string{"ids": idStrs})

	w := httptest.NewRecorder()
	c := authedContext(w, tenantID, userID)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invoices/bulk-approve", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.BulkApprove(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			ModifiedCount  int `json:"modified_count"`
			RequestedCount int `json:"requested_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Data.ModifiedCount)
	assert.Equal(t, 3, resp.Data.RequestedCount)
}

func TestInvoiceHandler_Export_TooManyIDs(t *testing.T) {
	mockSvc := new(mocks.MockReviewService)
	h := handler.NewInvoiceHandler(mockSvc, 2)

	body, _ := json.Marshal(map[string]interface{}{
		"ids":    []string{uuid.NewString(), uuid.NewString(), uuid.NewString()},
		"format": "csv",
	})

	w := httptest.NewRecorder()
	c := authedContext(w, uuid.New(), uuid.New())
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invoices/export", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Export", mock.Anything, mock.Anything)
}

func TestInvoiceHandler_Export(t *testing.T) {
	mockSvc := new(mocks.MockReviewService)
	h := handler.NewInvoiceHandler(mockSvc, 500)

	tenantID := uuid.New()
	userID := uuid.New()
	id := uuid.New()
	mockSvc.On("Export", mock.Anything, mock.AnythingOfType("*service.ExportInput")).
		Return(&service.ExportResult{
			FileName:      "invoices-20260825-100000.csv",
			ContentType:   "text/csv; charset=utf-8",
			Data:          []byte("csv-bytes"),
			ModifiedCount: 1,
		}, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"ids":    []string{id.String()},
		"format": "csv",
	})

	w := httptest.NewRecorder()
	c := authedContext(w, tenantID, userID)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invoices/export", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "invoices-20260825-100000.csv")
	assert.Equal(t, "1", w.Header().Get("X-Modified-Count"))
	assert.Equal(t, "csv-bytes", w.Body.String())
}

func TestInvoiceHandler_List_InvalidStatus(t *testing.T) {
	mockSvc := new(mocks.MockReviewService)
	h := handler.NewInvoiceHandler(mockSvc, 500)

	w := httptest.NewRecorder()
	c := authedContext(w, uuid.New(), uuid.New())
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/invoices?status=bogus", nil)

	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
