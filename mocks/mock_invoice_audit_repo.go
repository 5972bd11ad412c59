package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstdesk/internal/domain"
)

// MockInvoiceAuditRepo is a mock implementation of port.InvoiceAuditRepository.
type MockInvoiceAuditRepo struct {
	mock.Mock
}

func (m *MockInvoiceAuditRepo) Create(ctx context.Context, entry *domain.InvoiceAuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockInvoiceAuditRepo) ListByInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]domain.InvoiceAuditEntry, error) {
	args := m.Called(ctx, tenantID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceAuditEntry), args.Error(1)
}
