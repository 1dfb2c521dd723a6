package model

import (
	"context"
	"time"
)

// DefaultOTPTTL is how long an issued one-time code stays valid.
const DefaultOTPTTL = 3 * time.Minute

// OTPPurpose partitions the one-time-code key space by why the code was
// issued. A code issued for one purpose never matches a verify call for
// the other.
type OTPPurpose uint8

const (
	OTPPurposeVerifyAccount OTPPurpose = iota
	OTPPurposeResetPassword
)

// String returns a stable name used in Redis keys and log fields.
func (p OTPPurpose) String() string {
	switch p {
	case OTPPurposeVerifyAccount:
		return "verify"
	case OTPPurposeResetPassword:
		return "reset"
	}
	return "unknown"
}

// OTPStore keeps at most one live code per (email, purpose) with a TTL.
type OTPStore interface {
	// Save stores code for (email, purpose), replacing any live code.
	Save(ctx context.Context, email string, purpose OTPPurpose, code string, ttl time.Duration) error
	// Consume deletes the stored code and returns true when code matches.
	// A failed match leaves the stored code live and retryable.
	Consume(ctx context.Context, email string, purpose OTPPurpose, code string) (bool, error)
	// Exists reports whether a live code exists without consuming it.
	Exists(ctx context.Context, email string, purpose OTPPurpose) (bool, error)
}
