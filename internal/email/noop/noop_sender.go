package noop

import (
	"context"
	"log"

	"gstdesk/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs notices to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendRejectionNotice(_ context.Context, toEmail, toName, invoiceNumber, reviewerNotes string) error {
	log.Printf("[NOOP EMAIL] Rejection notice for %s (%s): invoice %s, notes: %s", toName, toEmail, invoiceNumber, reviewerNotes)
	return nil
}
