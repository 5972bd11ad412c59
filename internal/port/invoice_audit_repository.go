package port

import (
	"context"

	"github.com/google/uuid"

	"gstdesk/internal/domain"
)

// InvoiceAuditRepository records review-workflow mutations.
type InvoiceAuditRepository interface {
	Create(ctx context.Context, entry *domain.InvoiceAuditEntry) error
	ListByInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]domain.InvoiceAuditEntry, error)
}
