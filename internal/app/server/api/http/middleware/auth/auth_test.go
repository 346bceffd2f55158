package auth

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"idcards/internal/domain/identity"
	"idcards/internal/domain/session"
)

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

type whoOutput struct {
	Body struct {
		Login string `json:"login"`
		Token string `json:"token"`
	}
}

func setup(t *testing.T, sess session.Servicer) humatest.TestAPI {
	_, api := humatest.New(t)
	mw := New(sess, slog.Default())

	huma.Register(api, huma.Operation{
		OperationID: "who",
		Method:      http.MethodGet,
		Path:        "/who",
		Middlewares: huma.Middlewares{mw.Middleware()},
	}, func(ctx context.Context, _ *struct{}) (*whoOutput, error) {
		out := &whoOutput{}
		who, _ := identity.FromContext(ctx)
		out.Body.Login = who.Login
		out.Body.Token, _ = Token(ctx)
		return out, nil
	})
	return api
}

func TestMiddleware_ValidToken(t *testing.T) {
	sess := new(MockSession)
	sess.On("Resolve", mock.Anything, "tok").Return(identity.Identity{UserID: 7, Login: "ann"}, nil)

	api := setup(t, sess)
	resp := api.Get("/who", "Authorization: Bearer tok")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"login":"ann"`)
	assert.Contains(t, resp.Body.String(), `"token":"tok"`)
	sess.AssertExpectations(t)
}

func TestMiddleware_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		headers []any
	}{
		{name: "no header"},
		{name: "not bearer", headers: []any{"Authorization: Basic abc"}},
		{name: "unknown token", headers: []any{"Authorization: Bearer bad"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := new(MockSession)
			sess.On("Resolve", mock.Anything, "bad").Return(identity.Identity{}, session.ErrInvalidSession).Maybe()

			api := setup(t, sess)
			resp := api.Get("/who", tt.headers...)

			assert.Equal(t, http.StatusUnauthorized, resp.Code)
			assert.Contains(t, resp.Body.String(), "bearer token required")
		})
	}
}

func TestToken_Empty(t *testing.T) {
	_, ok := Token(context.Background())
	assert.False(t, ok)

	_, ok = Token(WithToken(context.Background(), ""))
	assert.False(t, ok)
}
