package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"gstdesk/internal/domain"
	"gstdesk/internal/export"
	"gstdesk/internal/gst"
	"gstdesk/internal/port"
	"gstdesk/internal/review"
)

// editableStatuses are the valid source statuses for Save/Approve/Reject.
var editableStatuses = []domain.InvoiceStatus{
	domain.StatusPendingUserConfirmation,
	domain.StatusPendingReview,
}

// SaveInvoiceInput is the DTO for persisting an edited working copy.
type SaveInvoiceInput struct {
	TenantID  uuid.UUID
	InvoiceID uuid.UUID
	UserID    uuid.UUID
	Document  domain.InvoiceDocument
}

// RejectInvoiceInput is the DTO for rejecting an invoice. Pending
// edits are deliberately absent: Reject never persists them.
type RejectInvoiceInput struct {
	TenantID  uuid.UUID
	InvoiceID uuid.UUID
	UserID    uuid.UUID
	Notes     string
}

// ExportInput is the DTO for exporting approved invoices.
type ExportInput struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	IDs      []uuid.UUID
	Format   export.Format
}

// ExportResult carries the generated file and how many invoices were
// actually marked exported.
type ExportResult struct {
	FileName      string
	ContentType   string
	Data          []byte
	ModifiedCount int
}

// DocumentValidationError carries the inline field errors found before
// a Save or Approve touched the network.
type DocumentValidationError struct {
	Fields []gst.FieldError
}

func (e *DocumentValidationError) Error() string {
	return fmt.Sprintf("invoice document failed validation (%d field errors)", len(e.Fields))
}

func (e *DocumentValidationError) Unwrap() error { return domain.ErrInvalidDocument }

// ReviewService defines the invoice review-workflow contract.
type ReviewService interface {
	Get(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, tenantID uuid.UUID, status *domain.InvoiceStatus, offset, limit int) ([]domain.Invoice, int, error)
	Save(ctx context.Context, input *SaveInvoiceInput) (*domain.Invoice, error)
	Approve(ctx context.Context, input *SaveInvoiceInput) (*domain.Invoice, error)
	Reject(ctx context.Context, input *RejectInvoiceInput) (*domain.Invoice, error)
	BulkApprove(ctx context.Context, tenantID, userID uuid.UUID, ids []uuid.UUID) (int, error)
	Export(ctx context.Context, input *ExportInput) (*ExportResult, error)
	SourceFileURL(ctx context.Context, tenantID, invoiceID uuid.UUID) (string, error)
	AuditTrail(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]domain.InvoiceAuditEntry, error)
}

type reviewService struct {
	invoiceRepo   port.InvoiceRepository
	auditRepo     port.InvoiceAuditRepository
	userRepo      port.UserRepository
	storage       port.ObjectStorage
	email         port.EmailSender
	presignExpiry int64
}

// NewReviewService creates a new ReviewService implementation.
func NewReviewService(
	invoiceRepo port.InvoiceRepository,
	auditRepo port.InvoiceAuditRepository,
	userRepo port.UserRepository,
	storage port.ObjectStorage,
	email port.EmailSender,
	presignExpiry int64,
) ReviewService {
	return &reviewService{
		invoiceRepo:   invoiceRepo,
		auditRepo:     auditRepo,
		userRepo:      userRepo,
		storage:       storage,
		email:         email,
		presignExpiry: presignExpiry,
	}
}

// audit records a review mutation. Failures are logged but never block
// the workflow.
func (s *reviewService) audit(ctx context.Context, tenantID, invoiceID uuid.UUID, userID *uuid.UUID, action domain.AuditAction, changes json.RawMessage) {
	if s.auditRepo == nil {
		return
	}
	if changes == nil {
		changes = json.RawMessage("{}")
	}
	entry := &domain.InvoiceAuditEntry{
		ID:        uuid.New(),
		TenantID:  tenantID,
		InvoiceID: invoiceID,
		UserID:    userID,
		Action:    string(action),
		Changes:   changes,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("reviewService.audit: failed to write audit entry for %s/%s: %v", action, invoiceID, err)
	}
}

func (s *reviewService) Get(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, tenantID, invoiceID)
}

func (s *reviewService) List(ctx context.Context, tenantID uuid.UUID, status *domain.InvoiceStatus, offset, limit int) ([]domain.Invoice, int, error) {
	return s.invoiceRepo.ListByTenant(ctx, tenantID, status, offset, limit)
}

// Save persists the edited working copy without changing status. The
// submitted document's derived fields are discarded and recomputed by
// the engine before anything is written; on any failure the caller's
// working copy is untouched and can be retried as-is.
func (s *reviewService) Save(ctx context.Context, input *SaveInvoiceInput) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, input.TenantID, input.InvoiceID)
	if err != nil {
		return nil, err
	}

	sess := review.NewSession(inv)
	if err := sess.ReplaceDocument(input.Document); err != nil {
		return nil, err
	}
	if fieldErrs := sess.Validate(); len(fieldErrs) > 0 {
		return nil, &DocumentValidationError{Fields: fieldErrs}
	}

	inv.Document = sess.Document()
	if err := s.invoiceRepo.UpdateDocument(ctx, inv); err != nil {
		return nil, err
	}

	changes, _ := json.Marshal(map[string]interface{}{
		"invoice_number": inv.Document.Header.InvoiceNumber,
		"line_items":     len(inv.Document.LineItems),
		"grand_total":    inv.Document.Totals.GrandTotal,
	})
	s.audit(ctx, input.TenantID, input.InvoiceID, &input.UserID, domain.AuditInvoiceSaved, changes)

	return inv, nil
}

// Approve performs Save and then requests the pending→approved
// transition. If the save succeeds but the transition fails, the saved
// invoice is returned together with ErrSavedNotApproved so the caller
// can tell this partial failure apart from a full one and avoid
// re-submitting the same data.
func (s *reviewService) Approve(ctx context.Context, input *SaveInvoiceInput) (*domain.Invoice, error) {
	inv, err := s.Save(ctx, input)
	if err != nil {
		return nil, err
	}

	err = s.invoiceRepo.TransitionStatus(ctx, input.TenantID, input.InvoiceID,
		editableStatuses, domain.StatusApproved, &input.UserID, "")
	if err != nil {
		log.Printf("reviewService.Approve: invoice %s saved but transition failed: %v", input.InvoiceID, err)
		return inv, fmt.Errorf("%w: %v", domain.ErrSavedNotApproved, err)
	}

	now := time.Now().UTC()
	inv.Status = domain.StatusApproved
	inv.ReviewedBy = &input.UserID
	inv.ReviewedAt = &now

	s.audit(ctx, input.TenantID, input.InvoiceID, &input.UserID, domain.AuditInvoiceApproved, nil)
	return inv, nil
}

// Reject transitions the invoice to rejected without persisting any
// pending edits, then notifies the invoice creator best-effort.
func (s *reviewService) Reject(ctx context.Context, input *RejectInvoiceInput) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, input.TenantID, input.InvoiceID)
	if err != nil {
		return nil, err
	}

	err = s.invoiceRepo.TransitionStatus(ctx, input.TenantID, input.InvoiceID,
		editableStatuses, domain.StatusRejected, &input.UserID, input.Notes)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	inv.Status = domain.StatusRejected
	inv.ReviewedBy = &input.UserID
	inv.ReviewedAt = &now
	inv.ReviewerNotes = input.Notes

	changes, _ := json.Marshal(map[string]string{"notes": input.Notes})
	s.audit(ctx, input.TenantID, input.InvoiceID, &input.UserID, domain.AuditInvoiceRejected, changes)

	s.notifyRejection(ctx, inv)
	return inv, nil
}

func (s *reviewService) notifyRejection(ctx context.Context, inv *domain.Invoice) {
	if s.email == nil || s.userRepo == nil {
		return
	}
	creator, err := s.userRepo.GetByID(ctx, inv.TenantID, inv.CreatedBy)
	if err != nil {
		log.Printf("reviewService.notifyRejection: creator lookup failed for invoice %s: %v", inv.ID, err)
		return
	}
	err = s.email.SendRejectionNotice(ctx, creator.Email, creator.FullName,
		inv.Document.Header.InvoiceNumber, inv.ReviewerNotes)
	if err != nil {
		log.Printf("reviewService.notifyRejection: email to %s failed for invoice %s: %v", creator.Email, inv.ID, err)
	}
}

// BulkApprove transitions a set of invoices to approved in one request
// and returns the number actually modified. Invoices already
// transitioned by a concurrent actor reduce the count; they are not an
// error.
func (s *reviewService) BulkApprove(ctx context.Context, tenantID, userID uuid.UUID, ids []uuid.UUID) (int, error) {
	modified, err := s.invoiceRepo.BulkTransitionStatus(ctx, tenantID, ids,
		editableStatuses, domain.StatusApproved, &userID)
	if err != nil {
		return 0, err
	}
	if modified < len(ids) {
		log.Printf("reviewService.BulkApprove: tenant %s requested %d, modified %d", tenantID, len(ids), modified)
	}

	changes, _ := json.Marshal(map[string]int{"requested": len(ids), "modified": modified})
	for _, id := range ids {
		s.audit(ctx, tenantID, id, &userID, domain.AuditInvoiceBulkApproved, changes)
	}
	return modified, nil
}

// Export builds an export file from the approved invoices in the
// request, marks them exported, and returns the file. Requested ids
// that are not approved are skipped, mirroring the bulk-approve
// partial-application contract.
func (s *reviewService) Export(ctx context.Context, input *ExportInput) (*ExportResult, error) {
	invoices, err := s.invoiceRepo.ListByIDs(ctx, input.TenantID, input.IDs)
	if err != nil {
		return nil, err
	}

	approved := make([]domain.Invoice, 0, len(invoices))
	approvedIDs := make([]uuid.UUID, 0, len(invoices))
	for _, inv := range invoices {
		if inv.Status == domain.StatusApproved {
			approved = append(approved, inv)
			approvedIDs = append(approvedIDs, inv.ID)
		}
	}
	if len(approved) == 0 {
		return nil, domain.ErrNothingToExport
	}

	data, contentType, err := export.Write(approved, input.Format)
	if err != nil {
		return nil, fmt.Errorf("building %s export: %w", input.Format, err)
	}

	modified, err := s.invoiceRepo.BulkTransitionStatus(ctx, input.TenantID, approvedIDs,
		[]domain.InvoiceStatus{domain.StatusApproved}, domain.StatusExported, &input.UserID)
	if err != nil {
		return nil, fmt.Errorf("marking invoices exported: %w", err)
	}

	changes, _ := json.Marshal(map[string]interface{}{"format": string(input.Format), "count": modified})
	for _, id := range approvedIDs {
		s.audit(ctx, input.TenantID, id, &input.UserID, domain.AuditInvoiceExported, changes)
	}

	return &ExportResult{
		FileName:      fmt.Sprintf("invoices-%s.%s", time.Now().UTC().Format("20060102-150405"), input.Format),
		ContentType:   contentType,
		Data:          data,
		ModifiedCount: modified,
	}, nil
}

func (s *reviewService) SourceFileURL(ctx context.Context, tenantID, invoiceID uuid.UUID) (string, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, tenantID, invoiceID)
	if err != nil {
		return "", err
	}
	if inv.SourceBucket == "" || inv.SourceKey == "" {
		return "", domain.ErrNoSourceFile
	}
	return s.storage.GetPresignedURL(ctx, inv.SourceBucket, inv.SourceKey, s.presignExpiry)
}

func (s *reviewService) AuditTrail(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]domain.InvoiceAuditEntry, error) {
	if _, err := s.invoiceRepo.GetByID(ctx, tenantID, invoiceID); err != nil {
		return nil, err
	}
	return s.auditRepo.ListByInvoice(ctx, tenantID, invoiceID)
}
