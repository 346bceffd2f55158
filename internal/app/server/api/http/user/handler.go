package user

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"idcards/internal/app/server/api/http/middleware/auth"
	"idcards/internal/domain/identity"
	"idcards/internal/domain/session"
	"idcards/internal/domain/user"
	"idcards/internal/utils/logger"
)

const statusOK = "Ok"

type Handler struct {
	service user.Servicer
	session session.Servicer
	log     *slog.Logger
	public  huma.Middlewares
	private huma.Middlewares
}

// NewHandler принимает два набора мидлварей: public для register/login
// и private (с auth) для logout/me.
func NewHandler(service user.Servicer, session session.Servicer, log *slog.Logger, public, private huma.Middlewares) *Handler {
	return &Handler{
		service: service,
		session: session,
		log:     log.With(slog.String("component", "user_handler")),
		public:  public,
		private: private,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.logoutOp(), h.logout)
	huma.Register(api, h.meOp(), h.me)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*registerOutput, error) {
	userID, err := h.service.Register(ctx, input.Body.Login, input.Body.Password)
	switch {
	case err == nil:
	case errors.Is(err, user.ErrInvalidInput):
		return nil, huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, user.ErrLoginTaken):
		return nil, huma.Error409Conflict(err.Error())
	default:
		h.log.Error("register", logger.Err(err))
		return nil, huma.Error500InternalServerError("registration failed")
	}

	return &registerOutput{
		Body: RegisterResponse{ID: userID, Status: statusOK},
	}, nil
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	u, err := h.service.Authenticate(ctx, input.Body.Login, input.Body.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidAuth) {
			return nil, huma.Error401Unauthorized("invalid credentials")
		}
		h.log.Error("authenticate", logger.Err(err))
		return nil, huma.Error500InternalServerError("login failed")
	}

	token, err := h.session.Create(ctx, u.ID)
	if err != nil {
		h.log.Error("create session", slog.Int("user_id", u.ID), logger.Err(err))
		return nil, huma.Error500InternalServerError("login failed")
	}

	return &loginOutput{
		Body: LoginResponse{Token: token, Status: statusOK},
	}, nil
}

func (h *Handler) logout(ctx context.Context, _ *struct{}) (*logoutOutput, error) {
	token, ok := auth.Token(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("not authenticated")
	}

	if err := h.session.Revoke(ctx, token); err != nil {
		if errors.Is(err, session.ErrInvalidSession) {
			return nil, huma.Error401Unauthorized("session already closed")
		}
		h.log.Error("revoke session", logger.Err(err))
		return nil, huma.Error500InternalServerError("logout failed")
	}

	return &logoutOutput{Body: StatusResponse{Status: statusOK}}, nil
}

func (h *Handler) me(ctx context.Context, _ *struct{}) (*meOutput, error) {
	who, ok := identity.FromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("not authenticated")
	}
	return &meOutput{Body: MeResponse{ID: who.UserID, Login: who.Login}}, nil
}
