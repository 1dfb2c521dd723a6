package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tronghn/taskhub/internal/apierr"
	"github.com/tronghn/taskhub/internal/mocks"
	"github.com/tronghn/taskhub/internal/model"
	"github.com/tronghn/taskhub/internal/password"
	"github.com/tronghn/taskhub/internal/testutil"
)

func newAuthFixture() (*Auth, *mocks.UserStore, *mocks.OTPStore, *mocks.SessionStore, *mocks.TokenManager, *mocks.Mailer) {
	users := &mocks.UserStore{}
	otpStore := &mocks.OTPStore{}
	sessionStore := &mocks.SessionStore{}
	manager := &mocks.TokenManager{}
	mailer := &mocks.Mailer{}
	log := testutil.MakeNoopLogger()

	otp := NewOTP(otpStore, mailer, log, 3*time.Minute)
	sessions := NewSession(manager, sessionStore, log, 24*time.Hour, 720*time.Hour)

	return NewAuth(users, otp, sessions, log), users, otpStore, sessionStore, manager, mailer
}

func expectIssue(store *mocks.SessionStore, manager *mocks.TokenManager, username, access, refresh string) {
	manager.On("GenerateAccessToken", username).Return(access, nil)
	manager.On("GenerateRefreshToken", username).Return(refresh, nil)
	store.On("Put", mock.Anything, username, model.TokenClassAccess, access, mock.Anything).Return(nil)
	store.On("Put", mock.Anything, username, model.TokenClassRefresh, refresh, mock.Anything).Return(nil)
}

func TestAuth_Register_Success(t *testing.T) {
	auth, users, otpStore, _, _, mailer := newAuthFixture()

	users.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
	users.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.Username == "alice" && u.Email == "alice@example.com" && !u.Verified && !u.Active && u.PasswordHash != "secret"
	})).Return(model.User{Username: "alice", Email: "alice@example.com"}, nil)
	otpStore.On("Save", mock.Anything, "alice@example.com", model.OTPPurposeVerifyAccount, mock.Anything, 3*time.Minute).Return(nil)
	mailer.On("Send", mock.Anything, "alice@example.com", mock.Anything, mock.Anything).Return(nil)

	msg, err := auth.Register(context.Background(), "alice", "alice@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, "Registration successful. Please check your email for verification code.", msg)
	users.AssertExpectations(t)
	otpStore.AssertExpectations(t)
}

func TestAuth_Register_UsernameTaken(t *testing.T) {
	auth, users, _, _, _, _ := newAuthFixture()

	users.On("ExistsByUsername", mock.Anything, "alice").Return(true, nil)

	_, err := auth.Register(context.Background(), "alice", "alice@example.com", "secret")

	var apiErr *apierr.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.Status)
	assert.Equal(t, apierr.NewErrUsernameTaken().Message, apiErr.Message)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuth_Register_EmailTaken(t *testing.T) {
	auth, users, _, _, _, _ := newAuthFixture()

	users.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
	users.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(true, nil)

	_, err := auth.Register(context.Background(), "alice", "alice@example.com", "secret")

	var apiErr *apierr.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierr.NewErrEmailTaken().Message, apiErr.Message)
}

func TestAuth_Register_RacingCreateConflict(t *testing.T) {
	auth, users, _, _, _, _ := newAuthFixture()

	// Both optimistic checks pass but a concurrent writer gets there first.
	users.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil).Once()
	users.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(model.User{}, model.ErrConflict)
	users.On("ExistsByUsername", mock.Anything, "alice").Return(true, nil).Once()

	_, err := auth.Register(context.Background(), "alice", "alice@example.com", "secret")

	var apiErr *apierr.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierr.NewErrUsernameTaken().Message, apiErr.Message)
}

func TestAuth_Register_MailFailureDoesNotFail(t *testing.T) {
	auth, users, otpStore, _, _, mailer := newAuthFixture()

	users.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
	users.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(model.User{Username: "alice", Email: "alice@example.com"}, nil)
	otpStore.On("Save", mock.Anything, "alice@example.com", model.OTPPurposeVerifyAccount, mock.Anything, mock.Anything).Return(nil)
	mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("relay down"))

	_, err := auth.Register(context.Background(), "alice", "alice@example.com", "secret")

	require.NoError(t, err)
}

func TestAuth_VerifyAccount_Success(t *testing.T) {
	auth, users, otpStore, sessionStore, manager, _ := newAuthFixture()

	otpStore.On("Consume", mock.Anything, "alice@example.com", model.OTPPurposeVerifyAccount, "123456").Return(true, nil)
	users.On("GetByEmail", mock.Anything, "alice@example.com").Return(model.User{Username: "alice", Email: "alice@example.com"}, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.Verified && u.Active
	})).Return(model.User{Username: "alice", Email: "alice@example.com", Verified: true, Active: true}, nil)
	expectIssue(sessionStore, manager, "alice", "acc-token", "ref-token")

	resp, err := auth.VerifyAccount(context.Background(), "alice@example.com", "123456")

	require.NoError(t, err)
	assert.Equal(t, "acc-token", resp.AccessToken)
	assert.Equal(t, "ref-token", resp.RefreshToken)
	assert.Equal(t, "alice", resp.Username)
	users.AssertExpectations(t)
	sessionStore.AssertExpectations(t)
}

func TestAuth_VerifyAccount_WrongCode(t *testing.T) {
	auth, users, otpStore, _, _, _ := newAuthFixture()

	otpStore.On("Consume", mock.Anything, "alice@example.com", model.OTPPurposeVerifyAccount, "000000").Return(false, nil)

	_, err := auth.VerifyAccount(context.Background(), "alice@example.com", "000000")

	var apiErr *apierr.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAuth_Login_Success(t *testing.T) {
	auth, users, _, sessionStore, manager, _ := newAuthFixture()

	hash, err := password.Hash("secret")
	require.NoError(t, err)

	users.On("GetByUsername", mock.Anything, "alice").Return(model.User{
		Username: "alice", Email: "alice@example.com", PasswordHash: hash, Verified: true, Active: true,
	}, nil)
	expectIssue(sessionStore, manager, "alice", "acc-token", "ref-token")

	resp, err := auth.Login(context.Background(), "alice", "secret")

	require.NoError(t, err)
	assert.Equal(t, "acc-token", resp.AccessToken)
	assert.Equal(t, "alice@example.com", resp.Email)
}

func TestAuth_Login_ByEmail(t *testing.T) {
	auth, users, _, sessionStore, manager, _ := newAuthFixture()

	hash, err := password.Hash("secret")
	require.NoError(t, err)

	users.On("GetByUsername", mock.Anything, "alice@example.com").Return(model.User{}, model.ErrNotFound)
	users.On("GetByEmail", mock.Anything, "alice@example.com").Return(model.User{
		Username: "alice", Email: "alice@example.com", PasswordHash: hash, Verified: true, Active: true,
	}, nil)
	expectIssue(sessionStore, manager, "alice", "acc-token", "ref-token")

	resp, err := auth.Login(context.Background(), "alice@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
}

func TestAuth_Login_UnknownUser(t *testing.T) {
	auth, users, _, _, _, _ := newAuthFixture()

	users.On("GetByUsername", mock.Anything, "ghost").Return(model.User{}, model.ErrNotFound)
	users.On("GetByEmail", mock.Anything, "ghost").Return(model.User{}, model.ErrNotFound)

	_, err := auth.Login(context.Background(), "ghost", "secret")

	var apiErr *apierr.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
}

func TestAuth_Login_WrongPassword(t *testing.T) {
	auth, users, _, _, _, _ := newAuthFixture()

	hash, err := password.Hash("secret")
	require.NoError(t, err)

	users.On("GetByUsername", mock.Anything, "alice").Return(model.User{
		Username: "alice", PasswordHash: hash, Verified: true, Active: true,
	}, nil)

	_, err = auth.Login(context.Background(), "alice", "wrong")

	var apiErr *apierr.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
}

func TestAuth_Login_DisabledBeforeUnverified(t *testing.T) {
	auth, users, _, _, _, _ := newAuthFixture()

	hash, err := password.Hash("secret")
	require.NoError(t, err)

	// Both flags are down; the disabled answer must win.
	users.On("GetByUsername", mock.Anything, "alice").Return(model.User{
		Username: "alice", PasswordHash: hash, Verified: false, Active: false,
	}, nil)

	_, err = auth.Login(context.Background(), "alice", "secret")

	var apiErr *apierr.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierr.NewErrAccountDisabled().Message, apiErr.Message)
}

func TestAuth_Login_Unverified(t *testing.T) {
	auth, users, _, _, _, _ := newAuthFixture()

	hash, err := password.Hash("secret")
	require.NoError(t, err)

	users.On("GetByUsername", mock.Anything, "alice").Return(model.User{
		Username: "alice", PasswordHash: hash, Verified: false, Active: true,
	}, nil)

	_, err = auth.Login(context.Background(), "alice", "secret")

	var apiErr *apierr.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.Status)
	assert.Equal(t, apierr.NewErrAccountNotVerified().Message, apiErr.Message)
}

func TestAuth_ForgotPassword_Success(t *testing.T) {
	auth, users, otpStore, _, _, mailer := newAuthFixture()

	users.On("GetByEmail", mock.Anything, "alice@example.com").Return(model.User{
		Username: "alice", Email: "alice@example.com", Verified: true,
	}, nil)
	otpStore.On("Save", mock.Anything, "alice@example.com", model.OTPPurposeResetPassword, mock.Anything, mock.Anything).Return(nil)
	mailer.On("Send", mock.Anything, "alice@example.com", mock.Anything, mock.Anything).Return(nil)

	msg, err := auth.ForgotPassword(context.Background(), "alice@example.com")

	require.NoError(t, err)
	assert.Equal(t, "Password reset code sent to your email.", msg)
}

func TestAuth_ForgotPassword_Unverified(t *testing.T) {
	auth, users, otpStore, _, _, _ := newAuthFixture()

	users.On("GetByEmail", mock.Anything, "alice@example.com").Return(model.User{
		Username: "alice", Email: "alice@example.com", Verified: false,
	}, nil)

	_, err := auth.ForgotPassword(context.Background(), "alice@example.com")

	var apiErr *apierr.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.Status)
	otpStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuth_ResetPassword_Success(t *testing.T) {
	auth, users, otpStore, sessionStore, _, _ := newAuthFixture()

	oldHash, err := password.Hash("old-secret")
	require.NoError(t, err)

	otpStore.On("Consume", mock.Anything, "alice@example.com", model.OTPPurposeResetPassword, "123456").Return(true, nil)
	users.On("GetByEmail", mock.Anything, "alice@example.com").Return(model.User{
		Username: "alice", Email: "alice@example.com", PasswordHash: oldHash, Verified: true, Active: true,
	}, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.PasswordHash != oldHash && password.Verify(u.PasswordHash, "new-secret")
	})).Return(model.User{Username: "alice"}, nil)
	sessionStore.On("RevokeAll", mock.Anything, "alice").Return(nil)

	msg, err := auth.ResetPassword(context.Background(), "alice@example.com", "123456", "new-secret")

	require.NoError(t, err)
	assert.Equal(t, "Password reset successfully. Please login with your new password.", msg)
	sessionStore.AssertExpectations(t)
}

func TestAuth_ResetPassword_WrongCode(t *testing.T) {
	auth, users, otpStore, sessionStore, _, _ := newAuthFixture()

	otpStore.On("Consume", mock.Anything, "alice@example.com", model.OTPPurposeResetPassword, "000000").Return(false, nil)

	_, err := auth.ResetPassword(context.Background(), "alice@example.com", "000000", "new-secret")

	var apiErr *apierr.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	sessionStore.AssertNotCalled(t, "RevokeAll", mock.Anything, mock.Anything)
}

func TestAuth_Logout_Idempotent(t *testing.T) {
	auth, _, _, sessionStore, _, _ := newAuthFixture()

	sessionStore.On("RevokeAll", mock.Anything, "alice").Return(nil).Twice()

	require.NoError(t, auth.Logout(context.Background(), "alice"))
	require.NoError(t, auth.Logout(context.Background(), "alice"))
	sessionStore.AssertExpectations(t)
}

func TestAuth_ResendVerification_Success(t *testing.T) {
	auth, users, otpStore, _, _, mailer := newAuthFixture()

	users.On("GetByEmail", mock.Anything, "alice@example.com").Return(model.User{
		Username: "alice", Email: "alice@example.com", Verified: false,
	}, nil)
	otpStore.On("Save", mock.Anything, "alice@example.com", model.OTPPurposeVerifyAccount, mock.Anything, mock.Anything).Return(nil)
	mailer.On("Send", mock.Anything, "alice@example.com", mock.Anything, mock.Anything).Return(nil)

	msg, err := auth.ResendVerification(context.Background(), "alice@example.com")

	require.NoError(t, err)
	assert.Equal(t, "Verification code resent to your email.", msg)
}

func TestAuth_ResendVerification_AlreadyVerified(t *testing.T) {
	auth, users, otpStore, _, _, _ := newAuthFixture()

	users.On("GetByEmail", mock.Anything, "alice@example.com").Return(model.User{
		Username: "alice", Email: "alice@example.com", Verified: true,
	}, nil)

	_, err := auth.ResendVerification(context.Background(), "alice@example.com")

	var apiErr *apierr.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.Status)
	otpStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
