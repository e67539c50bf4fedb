// Package email sends the share-notification mails. Sending is always
// best-effort; callers must never fail a request on a send error.
package email

import "context"

// Sender delivers notification emails.
type Sender interface {
	// SendListShared notifies a user that a shopping list was shared with
	// them.
	SendListShared(ctx context.Context, to, targetName, listTitle, ownerName string) error
}

// Config holds the sender configuration.
type Config struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// Noop is the sender used when email is disabled.
type Noop struct{}

func (Noop) SendListShared(ctx context.Context, to, targetName, listTitle, ownerName string) error {
	return nil
}
