package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstdesk/internal/domain"
	"gstdesk/internal/port"
)

type invoiceAuditRepo struct {
	db *sqlx.DB
}

// NewInvoiceAuditRepo creates a new PostgreSQL-backed InvoiceAuditRepository.
func NewInvoiceAuditRepo(db *sqlx.DB) port.InvoiceAuditRepository {
	return &invoiceAuditRepo{db: db}
}

func (r *invoiceAuditRepo) Create(ctx context.Context, entry *domain.InvoiceAuditEntry) error {
	entry.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invoice_audit (id, tenant_id, invoice_id, user_id, action, changes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.TenantID, entry.InvoiceID, entry.UserID,
		entry.Action, entry.Changes, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("invoiceAuditRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceAuditRepo) ListByInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]domain.InvoiceAuditEntry, error) {
	var entries []domain.InvoiceAuditEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM invoice_audit
		 WHERE tenant_id = $1 AND invoice_id = $2
		 ORDER BY created_at DESC`,
		tenantID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("invoiceAuditRepo.ListByInvoice: %w", err)
	}
	return entries, nil
}
