package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendSender implements Sender using the Resend API.
type ResendSender struct {
	client *resend.Client
	config Config
}

func NewResendSender(config Config) (*ResendSender, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}
	if config.FromEmail == "" {
		return nil, fmt.Errorf("from email is required")
	}

	return &ResendSender{
		client: resend.NewClient(config.APIKey),
		config: config,
	}, nil
}

func (s *ResendSender) SendListShared(ctx context.Context, to, targetName, listTitle, ownerName string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail),
		To:      []string{to},
		Subject: fmt.Sprintf("%s shared a shopping list with you", ownerName),
		Html:    listSharedTemplate(targetName, listTitle, ownerName),
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send share notification: %w", err)
	}
	return nil
}

func listSharedTemplate(targetName, listTitle, ownerName string) string {
	return fmt.Sprintf(`
		<div style="font-family: sans-serif; max-width: 520px;">
			<h2>Hi %s,</h2>
			<p>%s shared the shopping list <strong>%s</strong> with you.</p>
			<p>Log in to see it and start adding items.</p>
		</div>`,
		targetName, ownerName, listTitle,
	)
}
