package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstdesk/internal/domain"
	"gstdesk/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv,
		"SELECT * FROM invoices WHERE id = $1 AND tenant_id = $2", invoiceID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, status *domain.InvoiceStatus, offset, limit int) ([]domain.Invoice, int, error) {
	where := "WHERE tenant_id = $1"
	args := []interface{}{tenantID}
	if status != nil {
		where += " AND status = $2"
		args = append(args, *status)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM invoices "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListByTenant count: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT * FROM invoices %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var invoices []domain.Invoice
	if err := r.db.SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListByTenant: %w", err)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) ListByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]domain.Invoice, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(
		"SELECT * FROM invoices WHERE tenant_id = ? AND id IN (?) ORDER BY created_at DESC",
		tenantID, ids)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListByIDs build: %w", err)
	}
	query = r.db.Rebind(query)

	var invoices []domain.Invoice
	if err := r.db.SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListByIDs: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepo) UpdateDocument(ctx context.Context, inv *domain.Invoice) error {
	inv.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET
			document = $1, extraction_notes = $2, updated_at = $3
		 WHERE id = $4 AND tenant_id = $5
		   AND status IN ('pending_user_confirmation', 'pending_review')`,
		inv.Document, inv.ExtractionNotes, inv.UpdatedAt,
		inv.ID, inv.TenantID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateDocument: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return r.explainNoRows(ctx, inv.TenantID, inv.ID, domain.ErrInvoiceNotEditable)
	}
	return nil
}

func (r *invoiceRepo) TransitionStatus(ctx context.Context, tenantID, invoiceID uuid.UUID, from []domain.InvoiceStatus, to domain.InvoiceStatus, reviewedBy *uuid.UUID, notes string) error {
	now := time.Now().UTC()
	query, args, err := sqlx.In(
		`UPDATE invoices SET
			status = ?, reviewed_by = ?, reviewed_at = ?, reviewer_notes = ?, updated_at = ?
		 WHERE id = ? AND tenant_id = ? AND status IN (?)`,
		to, reviewedBy, now, notes, now, invoiceID, tenantID, from)
	if err != nil {
		return fmt.Errorf("invoiceRepo.TransitionStatus build: %w", err)
	}
	query = r.db.Rebind(query)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("invoiceRepo.TransitionStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return r.explainNoRows(ctx, tenantID, invoiceID, domain.ErrInvalidTransition)
	}
	return nil
}

func (r *invoiceRepo) BulkTransitionStatus(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID, from []domain.InvoiceStatus, to domain.InvoiceStatus, reviewedBy *uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	query, args, err := sqlx.In(
		`UPDATE invoices SET
			status = ?, reviewed_by = ?, reviewed_at = ?, updated_at = ?
		 WHERE tenant_id = ? AND id IN (?) AND status IN (?)`,
		to, reviewedBy, now, now, tenantID, ids, from)
	if err != nil {
		return 0, fmt.Errorf("invoiceRepo.BulkTransitionStatus build: %w", err)
	}
	query = r.db.Rebind(query)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("invoiceRepo.BulkTransitionStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}

// explainNoRows distinguishes "row does not exist" from "row exists
// but its status blocked the conditional update".
func (r *invoiceRepo) explainNoRows(ctx context.Context, tenantID, invoiceID uuid.UUID, blocked error) error {
	var status domain.InvoiceStatus
	err := r.db.GetContext(ctx, &status,
		"SELECT status FROM invoices WHERE id = $1 AND tenant_id = $2", invoiceID, tenantID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrInvoiceNotFound
	}
	if err != nil {
		return fmt.Errorf("invoiceRepo.explainNoRows: %w", err)
	}
	return blocked
}
