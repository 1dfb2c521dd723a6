package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/tronghn/taskhub/internal/logger"
	"github.com/tronghn/taskhub/internal/model"
)

// OTP issues and verifies one-time codes. A code is a uniformly random
// six-digit number stored against (email, purpose) with a short TTL;
// issuing again for the same key replaces the previous code.
type OTP struct {
	store  model.OTPStore
	mailer model.Mailer
	logger *logger.Logger
	ttl    time.Duration
}

// NewOTP creates the OTP engine. ttl bounds how long an issued code stays
// verifiable.
func NewOTP(store model.OTPStore, mailer model.Mailer, logger *logger.Logger, ttl time.Duration) *OTP {
	if ttl <= 0 {
		ttl = model.DefaultOTPTTL
	}
	return &OTP{store: store, mailer: mailer, logger: logger, ttl: ttl}
}

// generateCode draws a uniform six-digit code from a cryptographically
// secure source, in the range [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}

// SendVerificationCode issues an account-verification code for email and
// mails it. Mail failure is logged and swallowed: the stored code stays
// valid and the user can request a resend.
func (s *OTP) SendVerificationCode(ctx context.Context, email, username string) error {
	code, err := s.issue(ctx, email, model.OTPPurposeVerifyAccount)
	if err != nil {
		return err
	}

	subject := "Taskhub - Account Verification"
	body := buildVerificationMailBody(username, code, s.ttl)
	if err := s.mailer.Send(ctx, email, subject, body); err != nil {
		s.logger.Error("OTP service: failed to send verification mail",
			"email", email,
			"error", err.Error())
	} else {
		s.logger.Info("OTP service: verification code sent", "email", email)
	}

	return nil
}

// SendPasswordResetCode issues a password-reset code for email and mails it.
func (s *OTP) SendPasswordResetCode(ctx context.Context, email, username string) error {
	code, err := s.issue(ctx, email, model.OTPPurposeResetPassword)
	if err != nil {
		return err
	}

	subject := "Taskhub - Password Reset"
	body := buildPasswordResetMailBody(username, code, s.ttl)
	if err := s.mailer.Send(ctx, email, subject, body); err != nil {
		s.logger.Error("OTP service: failed to send password reset mail",
			"email", email,
			"error", err.Error())
	} else {
		s.logger.Info("OTP service: password reset code sent", "email", email)
	}

	return nil
}

func (s *OTP) issue(ctx context.Context, email string, purpose model.OTPPurpose) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}

	if err := s.store.Save(ctx, email, purpose, code, s.ttl); err != nil {
		return "", fmt.Errorf("failed to issue otp: %w", err)
	}

	return code, nil
}

// Verify consumes the stored code when it matches. A mismatch leaves the
// code live so a typo does not burn a legitimate still-valid code.
func (s *OTP) Verify(ctx context.Context, email, code string, purpose model.OTPPurpose) (bool, error) {
	ok, err := s.store.Consume(ctx, email, purpose, code)
	if err != nil {
		return false, fmt.Errorf("failed to verify otp: %w", err)
	}

	if ok {
		s.logger.Info("OTP service: verification successful", "email", email, "purpose", purpose.String())
	} else {
		s.logger.Warn("OTP service: verification failed", "email", email, "purpose", purpose.String())
	}

	return ok, nil
}

// HasLive reports whether a live code exists without consuming it.
func (s *OTP) HasLive(ctx context.Context, email string, purpose model.OTPPurpose) (bool, error) {
	ok, err := s.store.Exists(ctx, email, purpose)
	if err != nil {
		return false, fmt.Errorf("failed to check otp: %w", err)
	}
	return ok, nil
}

func buildVerificationMailBody(username, code string, ttl time.Duration) string {
	return fmt.Sprintf(`Dear %s,

Welcome to Taskhub! Please verify your account using the code below:

Verification Code: %s

This code will expire in %d minutes.

If you didn't request this verification, please ignore this email.

Best regards,
Taskhub Team
`, username, code, int(ttl.Minutes()))
}

func buildPasswordResetMailBody(username, code string, ttl time.Duration) string {
	return fmt.Sprintf(`Dear %s,

You have requested to reset your password for your Taskhub account.

Reset Code: %s

This code will expire in %d minutes.

If you didn't request this password reset, please ignore this email and your password will remain unchanged.

Best regards,
Taskhub Team
`, username, code, int(ttl.Minutes()))
}
