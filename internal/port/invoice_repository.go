package port

import (
	"context"

	"github.com/google/uuid"

	"gstdesk/internal/domain"
)

// InvoiceRepository defines persistence operations for invoices.
type InvoiceRepository interface {
	GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, status *domain.InvoiceStatus, offset, limit int) ([]domain.Invoice, int, error)
	ListByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]domain.Invoice, error)

	// UpdateDocument persists the recomputed working copy without
	// touching the status. It only applies while the invoice is in an
	// editable status; otherwise it reports ErrInvoiceNotEditable.
	UpdateDocument(ctx context.Context, inv *domain.Invoice) error

	// TransitionStatus applies a conditional status update: the row is
	// only modified when its current status is one of the allowed
	// source statuses. A concurrent transition by another actor
	// surfaces as ErrInvalidTransition, never as a silent overwrite.
	TransitionStatus(ctx context.Context, tenantID, invoiceID uuid.UUID, from []domain.InvoiceStatus, to domain.InvoiceStatus, reviewedBy *uuid.UUID, notes string) error

	// BulkTransitionStatus applies the same conditional update to a
	// set of invoices in one statement and returns how many rows
	// actually changed.
	BulkTransitionStatus(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID, from []domain.InvoiceStatus, to domain.InvoiceStatus, reviewedBy *uuid.UUID) (int, error)
}
