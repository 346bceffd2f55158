package user

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"idcards/internal/app/server/api/http/middleware/auth"
	"idcards/internal/domain/identity"
	"idcards/internal/domain/session"
	"idcards/internal/domain/user"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, login, password string) (int, error) {
	args := m.Called(ctx, login, password)
	return args.Int(0), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, login, password string) (user.User, error) {
	args := m.Called(ctx, login, password)
	return args.Get(0).(user.User), args.Error(1)
}

type MockSession struct {
	mock.Mock
}

func (m *MockSession) Create(ctx context.Context, userID int) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockSession) Resolve(ctx context.Context, token string) (identity.Identity, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(identity.Identity), args.Error(1)
}

func (m *MockSession) Revoke(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func newHandler(svc user.Servicer, sess session.Servicer) *Handler {
	return NewHandler(svc, sess, slog.Default(), nil, nil)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.ErrorAs(t, err, &se)
	return se.GetStatus()
}

func credentials(login, password string) Credentials {
	return Credentials{Login: login, Password: password}
}

func TestHandler_register(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "created"},
		{name: "weak password", err: user.ErrInvalidInput, wantStatus: http.StatusUnprocessableEntity},
		{name: "login taken", err: user.ErrLoginTaken, wantStatus: http.StatusConflict},
		{name: "storage error", err: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockUserService)
			svc.On("Register", mock.Anything, "ann", "Secret123!").Return(5, tt.err)

			out, err := newHandler(svc, nil).register(context.Background(), &registerInput{Body: credentials("ann", "Secret123!")})

			if tt.wantStatus != 0 {
				assert.Equal(t, tt.wantStatus, statusOf(t, err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 5, out.Body.ID)
			assert.Equal(t, statusOK, out.Body.Status)
		})
	}
}

func TestHandler_login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(MockUserService)
		sess := new(MockSession)
		svc.On("Authenticate", mock.Anything, "ann", "pw").Return(user.User{ID: 5, Login: "ann"}, nil)
		sess.On("Create", mock.Anything, 5).Return("tok", nil)

		out, err := newHandler(svc, sess).login(context.Background(), &loginInput{Body: credentials("ann", "pw")})

		require.NoError(t, err)
		assert.Equal(t, "tok", out.Body.Token)
		sess.AssertExpectations(t)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		svc := new(MockUserService)
		sess := new(MockSession)
		svc.On("Authenticate", mock.Anything, "ann", "bad").Return(user.User{}, user.ErrInvalidAuth)

		_, err := newHandler(svc, sess).login(context.Background(), &loginInput{Body: credentials("ann", "bad")})

		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
		sess.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("session error", func(t *testing.T) {
		svc := new(MockUserService)
		sess := new(MockSession)
		svc.On("Authenticate", mock.Anything, "ann", "pw").Return(user.User{ID: 5}, nil)
		sess.On("Create", mock.Anything, 5).Return("", errors.New("db down"))

		_, err := newHandler(svc, sess).login(context.Background(), &loginInput{Body: credentials("ann", "pw")})

		assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
	})
}

func TestHandler_logout(t *testing.T) {
	t.Run("revokes current token", func(t *testing.T) {
		sess := new(MockSession)
		sess.On("Revoke", mock.Anything, "tok").Return(nil)

		out, err := newHandler(nil, sess).logout(auth.WithToken(context.Background(), "tok"), nil)

		require.NoError(t, err)
		assert.Equal(t, statusOK, out.Body.Status)
		sess.AssertExpectations(t)
	})

	t.Run("no token", func(t *testing.T) {
		_, err := newHandler(nil, new(MockSession)).logout(context.Background(), nil)
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	})

	t.Run("already revoked", func(t *testing.T) {
		sess := new(MockSession)
		sess.On("Revoke", mock.Anything, "tok").Return(session.ErrInvalidSession)

		_, err := newHandler(nil, sess).logout(auth.WithToken(context.Background(), "tok"), nil)
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	})
}

func TestHandler_me(t *testing.T) {
	ctx := identity.WithContext(context.Background(), identity.Identity{UserID: 5, Login: "ann"})

	out, err := newHandler(nil, nil).me(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, MeResponse{ID: 5, Login: "ann"}, out.Body)

	_, err = newHandler(nil, nil).me(context.Background(), nil)
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}
