package service

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tronghn/taskhub/internal/mocks"
	"github.com/tronghn/taskhub/internal/model"
	"github.com/tronghn/taskhub/internal/testutil"
)

func TestGenerateCode_SixDigits(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 100; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestOTP_SendVerificationCode_StoresBeforeMailing(t *testing.T) {
	store := &mocks.OTPStore{}
	mailer := &mocks.Mailer{}
	svc := NewOTP(store, mailer, testutil.MakeNoopLogger(), 3*time.Minute)

	var storedCode string
	store.On("Save", mock.Anything, "a@example.com", model.OTPPurposeVerifyAccount, mock.MatchedBy(func(code string) bool {
		storedCode = code
		return len(code) == 6
	}), 3*time.Minute).Return(nil)
	mailer.On("Send", mock.Anything, "a@example.com", "Taskhub - Account Verification", mock.MatchedBy(func(body string) bool {
		return storedCode != "" && strings.Contains(body, storedCode)
	})).Return(nil)

	require.NoError(t, svc.SendVerificationCode(context.Background(), "a@example.com", "alice"))
	store.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestOTP_SendVerificationCode_StoreFailureFails(t *testing.T) {
	store := &mocks.OTPStore{}
	mailer := &mocks.Mailer{}
	svc := NewOTP(store, mailer, testutil.MakeNoopLogger(), 3*time.Minute)

	store.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))

	err := svc.SendVerificationCode(context.Background(), "a@example.com", "alice")

	require.Error(t, err)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOTP_SendPasswordResetCode_MailFailureSwallowed(t *testing.T) {
	store := &mocks.OTPStore{}
	mailer := &mocks.Mailer{}
	svc := NewOTP(store, mailer, testutil.MakeNoopLogger(), 3*time.Minute)

	store.On("Save", mock.Anything, "a@example.com", model.OTPPurposeResetPassword, mock.Anything, mock.Anything).Return(nil)
	mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("relay down"))

	require.NoError(t, svc.SendPasswordResetCode(context.Background(), "a@example.com", "alice"))
}

func TestOTP_Verify_DelegatesToStore(t *testing.T) {
	store := &mocks.OTPStore{}
	svc := NewOTP(store, &mocks.Mailer{}, testutil.MakeNoopLogger(), 3*time.Minute)

	store.On("Consume", mock.Anything, "a@example.com", model.OTPPurposeVerifyAccount, "123456").Return(true, nil)
	store.On("Consume", mock.Anything, "a@example.com", model.OTPPurposeVerifyAccount, "000000").Return(false, nil)

	ok, err := svc.Verify(context.Background(), "a@example.com", "123456", model.OTPPurposeVerifyAccount)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Verify(context.Background(), "a@example.com", "000000", model.OTPPurposeVerifyAccount)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewOTP_DefaultTTL(t *testing.T) {
	svc := NewOTP(&mocks.OTPStore{}, &mocks.Mailer{}, testutil.MakeNoopLogger(), 0)
	assert.Equal(t, model.DefaultOTPTTL, svc.ttl)
}
