package model

import "context"

// Mailer delivers out-of-band notifications. Delivery is best effort:
// callers log failures and keep going rather than rolling back state.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
