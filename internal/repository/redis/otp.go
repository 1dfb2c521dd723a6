package redis

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tronghn/taskhub/internal/model"
)

var _ model.OTPStore = (*OTPRepository)(nil)

const (
	otpVerifyKeyPrefix = "otp:verify:"
	otpResetKeyPrefix  = "otp:reset:"
)

// OTPRepository stores one-time codes keyed by (email, purpose) with a TTL.
type OTPRepository struct {
	rdb *redis.Client
}

// NewOTPRepository creates an OTPRepository backed by the given client.
func NewOTPRepository(rdb *redis.Client) *OTPRepository {
	return &OTPRepository{rdb: rdb}
}

func otpKey(purpose model.OTPPurpose, email string) string {
	switch purpose {
	case model.OTPPurposeVerifyAccount:
		return otpVerifyKeyPrefix + email
	case model.OTPPurposeResetPassword:
		return otpResetKeyPrefix + email
	}
	return "otp:" + purpose.String() + ":" + email
}

// Save stores the code with the given TTL. SET replaces any live code for
// the same key, so at most one code per (email, purpose) is ever valid.
func (r *OTPRepository) Save(ctx context.Context, email string, purpose model.OTPPurpose, code string, ttl time.Duration) error {
	if err := r.rdb.Set(ctx, otpKey(purpose, email), code, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}
	return nil
}

// Consume compares code against the stored value. On a match the code is
// deleted and true is returned; a mismatch or an absent key returns false
// and leaves any stored code untouched.
func (r *OTPRepository) Consume(ctx context.Context, email string, purpose model.OTPPurpose, code string) (bool, error) {
	key := otpKey(purpose, email)

	stored, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get otp: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return false, nil
	}

	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		return false, fmt.Errorf("failed to consume otp: %w", err)
	}

	return true, nil
}

// Exists reports whether a live code exists for (email, purpose).
func (r *OTPRepository) Exists(ctx context.Context, email string, purpose model.OTPPurpose) (bool, error) {
	n, err := r.rdb.Exists(ctx, otpKey(purpose, email)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check otp existence: %w", err)
	}
	return n > 0, nil
}
