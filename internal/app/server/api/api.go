//POST /user/register        # Регистрация (публичный)
//POST /user/login           # Логин (публичный)
//POST /user/logout          # Отзыв сессии (auth)
//GET  /user/me              # Текущий пользователь (auth)
//GET  /api/cards?q=         # Список карточек (auth)
//POST /api/cards            # Создать карточку (auth)
//GET  /api/cards/{id}       # Получить карточку (auth)
//PUT  /api/cards/{id}       # Обновить карточку (auth)
//DELETE /api/cards/{id}     # Удалить карточку (auth)
//GET  /api/cards/{id}/preview # HTML-превью (auth)
//GET  /api/cards/{id}/export  # PNG-экспорт (auth)
//GET  /metrics              # Prometheus

package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/exp/slog"

	cardAPI "idcards/internal/app/server/api/http/card"
	healthAPI "idcards/internal/app/server/api/http/health"
	"idcards/internal/app/server/api/http/middleware"
	"idcards/internal/app/server/api/http/middleware/auth"
	"idcards/internal/app/server/api/http/middleware/logger"
	userAPI "idcards/internal/app/server/api/http/user"
	"idcards/internal/app/server/config"
	"idcards/internal/domain/card"
	"idcards/internal/domain/session"
	"idcards/internal/domain/user"
)

// Deps - собранные сервисы, которые API публикует наружу.
type Deps struct {
	Users    user.Servicer
	Sessions session.Servicer
	Cards    card.Servicer
	Renderer cardAPI.Renderer
	Checks   map[string]healthAPI.Pinger
	Gatherer prometheus.Gatherer
}

type Handlers struct {
	Health *healthAPI.Handler
	User   *userAPI.Handler
	Card   *cardAPI.Handler
}

// New создает *chi.Mux со всеми операциями, зарегистрированными через huma.
func New(cfg config.Server, deps Deps, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()
	mux.Use(cors.Handler(corsOptions(cfg.CORSOrigins)))
	if cfg.RateLimit > 0 {
		mux.Use(httprate.LimitByIP(cfg.RateLimit, time.Minute))
	}

	if deps.Gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	humaCfg := huma.DefaultConfig("ID Cards API", "1.0.0")
	humaCfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, humaCfg)

	h := handlers(deps, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Card.SetupRoutes(API)

	return mux
}

func handlers(deps Deps, log *slog.Logger) *Handlers {
	authMW := auth.New(deps.Sessions, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear(), deps.Checks)

	middlewares.Add(loggerMW.Middleware())
	public := middlewares.GetAllAndClear()
	middlewares.Add(loggerMW.Middleware(), authMW.Middleware())
	userHandler := userAPI.NewHandler(deps.Users, deps.Sessions, log, public, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware(), authMW.Middleware())
	cardHandler := cardAPI.NewHandler(deps.Cards, deps.Renderer, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		User:   userHandler,
		Card:   cardHandler,
	}
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition", "Location"},
		MaxAge:         300,
	}
}
