package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstdesk/internal/domain"
)

// MockInvoiceRepo is a mock implementation of port.InvoiceRepository.
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, tenantID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, status *domain.InvoiceStatus, offset, limit int) ([]domain.Invoice, int, error) {
	args := m.Called(ctx, tenantID, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Invoice), args.Int(1), args.Error(2)
}

func (m *MockInvoiceRepo) ListByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]domain.Invoice, error) {
	args := m.Called(ctx, tenantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) UpdateDocument(ctx context.Context, inv *domain.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepo) TransitionStatus(ctx context.Context, tenantID, invoiceID uuid.UUID, from []domain.InvoiceStatus, to domain.InvoiceStatus, reviewedBy *uuid.UUID, notes string) error {
	args := m.Called(ctx, tenantID, invoiceID, from, to, reviewedBy, notes)
	return args.Error(0)
}

func (m *MockInvoiceRepo) BulkTransitionStatus(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID, from []domain.InvoiceStatus, to domain.InvoiceStatus, reviewedBy *uuid.UUID) (int, error) {
	args := m.Called(ctx, tenantID, ids, from, to, reviewedBy)
	return args.Int(0), args.Error(1)
}
