package port

import "context"

// EmailSender delivers review-workflow notifications.
type EmailSender interface {
	SendRejectionNotice(ctx context.Context, toEmail, toName, invoiceNumber, reviewerNotes string) error
}
