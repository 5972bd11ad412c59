package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendRejectionNotice(ctx context.Context, toEmail, toName, invoiceNumber, reviewerNotes string) error {
	args := m.Called(ctx, toEmail, toName, invoiceNumber, reviewerNotes)
	return args.Error(0)
}
