package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"gstdesk/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	frontendURL string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName, frontendURL string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		frontendURL: frontendURL,
	}, nil
}

func (s *sesSender) SendRejectionNotice(ctx context.Context, toEmail, toName, invoiceNumber, reviewerNotes string) error {
	subject := fmt.Sprintf("Invoice %s was rejected during review", invoiceNumber)
	htmlBody := buildRejectionHTML(toName, invoiceNumber, reviewerNotes, s.frontendURL)
	textBody := fmt.Sprintf(
		"Hi %s,\n\nInvoice %s was rejected during review.\n\nReviewer notes:\n%s\n\nYou can view the invoice at %s/invoices.\n\nGSTDesk Team",
		toName, invoiceNumber, reviewerNotes, s.frontendURL,
	)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildRejectionHTML(name, invoiceNumber, reviewerNotes, frontendURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Invoice %s was rejected</h2>
  <p>Hi %s,</p>
  <p>A reviewer rejected invoice <strong>%s</strong>. Their notes:</p>
  <blockquote style="border-left: 3px solid #DC2626; margin: 20px 0; padding: 8px 16px; color: #555;">%s</blockquote>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s/invoices" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">View Invoices</a>
  </p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">GSTDesk - Invoice Review Platform</p>
</body>
</html>`, invoiceNumber, name, invoiceNumber, reviewerNotes, frontendURL)
}
