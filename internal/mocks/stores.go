// Package mocks provides testify mocks for the model interfaces, shared
// across service and handler tests.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/tronghn/taskhub/internal/model"
)

var (
	_ model.UserStore     = (*UserStore)(nil)
	_ model.TaskStore     = (*TaskStore)(nil)
	_ model.CategoryStore = (*CategoryStore)(nil)
	_ model.OTPStore      = (*OTPStore)(nil)
	_ model.SessionStore  = (*SessionStore)(nil)
	_ model.TokenManager  = (*TokenManager)(nil)
	_ model.Mailer        = (*Mailer)(nil)
)

// UserStore mocks model.UserStore.
type UserStore struct {
	mock.Mock
}

func (m *UserStore) GetByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *UserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Update(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// TaskStore mocks model.TaskStore.
type TaskStore struct {
	mock.Mock
}

func (m *TaskStore) List(ctx context.Context, userID uuid.UUID, filter model.TaskFilter) ([]model.Task, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (model.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *TaskStore) Create(ctx context.Context, task model.Task) (model.Task, error) {
	args := m.Called(ctx, task)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *TaskStore) Update(ctx context.Context, task model.Task) (model.Task, error) {
	args := m.Called(ctx, task)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *TaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// CategoryStore mocks model.CategoryStore.
type CategoryStore struct {
	mock.Mock
}

func (m *CategoryStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Category, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *CategoryStore) GetByID(ctx context.Context, id uuid.UUID) (model.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Category), args.Error(1)
}

func (m *CategoryStore) ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, userID)
	return args.Bool(0), args.Error(1)
}

func (m *CategoryStore) Create(ctx context.Context, category model.Category) (model.Category, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(model.Category), args.Error(1)
}

func (m *CategoryStore) Update(ctx context.Context, category model.Category) (model.Category, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(model.Category), args.Error(1)
}

func (m *CategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// OTPStore mocks model.OTPStore.
type OTPStore struct {
	mock.Mock
}

func (m *OTPStore) Save(ctx context.Context, email string, purpose model.OTPPurpose, code string, ttl time.Duration) error {
	args := m.Called(ctx, email, purpose, code, ttl)
	return args.Error(0)
}

func (m *OTPStore) Consume(ctx context.Context, email string, purpose model.OTPPurpose, code string) (bool, error) {
	args := m.Called(ctx, email, purpose, code)
	return args.Bool(0), args.Error(1)
}

func (m *OTPStore) Exists(ctx context.Context, email string, purpose model.OTPPurpose) (bool, error) {
	args := m.Called(ctx, email, purpose)
	return args.Bool(0), args.Error(1)
}

// SessionStore mocks model.SessionStore.
type SessionStore struct {
	mock.Mock
}

func (m *SessionStore) Put(ctx context.Context, username string, class model.TokenClass, token string, ttl time.Duration) error {
	args := m.Called(ctx, username, class, token, ttl)
	return args.Error(0)
}

func (m *SessionStore) Get(ctx context.Context, username string, class model.TokenClass) (string, error) {
	args := m.Called(ctx, username, class)
	return args.String(0), args.Error(1)
}

func (m *SessionStore) IsCurrent(ctx context.Context, username string, class model.TokenClass, presented string) (bool, error) {
	args := m.Called(ctx, username, class, presented)
	return args.Bool(0), args.Error(1)
}

func (m *SessionStore) RevokeAll(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

// TokenManager mocks model.TokenManager.
type TokenManager struct {
	mock.Mock
}

func (m *TokenManager) GenerateAccessToken(username string) (string, error) {
	args := m.Called(username)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) GenerateRefreshToken(username string) (string, error) {
	args := m.Called(username)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) ParseAccessToken(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) ParseRefreshToken(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

// Mailer mocks model.Mailer.
type Mailer struct {
	mock.Mock
}

func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}
