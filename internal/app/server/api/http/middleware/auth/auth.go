package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"idcards/internal/domain/identity"
	"idcards/internal/domain/session"
	"idcards/internal/utils/logger"
)

const bearerPrefix = "Bearer "

type Auth struct {
	session session.Servicer
	log     *slog.Logger
}

func New(session session.Servicer, log *slog.Logger) *Auth {
	return &Auth{
		session: session,
		log:     log.With(slog.String("component", "auth_middleware")),
	}
}

type contextKey struct{}

var tokenKey contextKey

// Middleware пропускает запрос дальше только с действующим bearer-токеном.
// Identity владельца кладётся в контекст запроса.
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		header := ctx.Header("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			a.log.Debug("missing bearer token", slog.String("path", ctx.URL().Path))
			a.unauthorized(ctx)
			return
		}
		token := strings.TrimSpace(header[len(bearerPrefix):])

		who, err := a.session.Resolve(ctx.Context(), token)
		if err != nil {
			a.log.Debug("resolve session", logger.Err(err))
			a.unauthorized(ctx)
			return
		}

		newCtx := identity.WithContext(ctx.Context(), who)
		newCtx = WithToken(newCtx, token)
		next(huma.WithContext(ctx, newCtx))
	}
}

func (a *Auth) unauthorized(ctx huma.Context) {
	ctx.SetHeader("Content-Type", "application/problem+json")
	ctx.SetStatus(http.StatusUnauthorized)

	err := json.NewEncoder(ctx.BodyWriter()).Encode(huma.ErrorModel{
		Title:  http.StatusText(http.StatusUnauthorized),
		Status: http.StatusUnauthorized,
		Detail: "valid bearer token required",
	})
	if err != nil {
		a.log.Error("encode unauthorized response", logger.Err(err))
	}
}

// WithToken сохраняет сырой токен, по нему работает logout.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

func Token(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok && token != ""
}
