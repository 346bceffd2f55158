package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/exp/slog"

	"idcards/internal/app/server/api"
	healthAPI "idcards/internal/app/server/api/http/health"
	"idcards/internal/app/server/config"
	"idcards/internal/domain/card"
	"idcards/internal/domain/session"
	"idcards/internal/domain/user"
	"idcards/internal/export"
	"idcards/internal/infrastructure/browser"
	"idcards/internal/infrastructure/events"
	"idcards/internal/infrastructure/storage/mongo"
	"idcards/internal/infrastructure/storage/postgres"
	"idcards/internal/render"
	"idcards/internal/utils/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.MustLoad()

	var logOpts []logger.Option
	if cfg.Logger.LogFile != "" {
		logOpts = append(logOpts, logger.WithFile(cfg.Logger.LogFile))
	}
	log := logger.New(cfg.Env, logOpts...)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", logger.Err(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pg, err := postgres.New(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pg.Close()

	checks := map[string]healthAPI.Pinger{"postgres": pg}

	cardRepo, closeCards, err := cardRepository(ctx, cfg.DB, pg, log, checks)
	if err != nil {
		return err
	}
	defer closeCards()

	notifier := card.NopNotifier()
	if cfg.Events.NatsURL != "" {
		pub, err := events.Connect(cfg.Events.NatsURL, cfg.Events.NatsToken, log)
		if err != nil {
			return err
		}
		defer pub.Close()
		notifier = pub
		checks["nats"] = pub
	}

	chrome := browser.NewManager(browser.Config{
		RemoteURL:       cfg.Browser.RemoteURL,
		Bin:             cfg.Browser.Bin,
		RecycleInterval: cfg.Browser.RecycleInterval,
		Logger:          log,
	})
	if err := chrome.Start(ctx); err != nil {
		return err
	}
	defer chrome.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	renderer := render.NewService(render.NewRenderer(chrome), render.Rasterizer{}, log,
		export.WithDesignWidth(cfg.Export.DesignWidth),
		export.WithMetrics(export.NewMetrics(reg)),
	)

	sessions := session.NewService(postgres.NewSessionRepository(pg.Pool(), log), log)
	router := api.New(cfg.Server, api.Deps{
		Users:    user.NewService(postgres.NewUserRepository(pg.Pool(), log), user.NewCredentialsValidator(), log),
		Sessions: sessions,
		Cards:    card.NewService(cardRepo, log, card.WithNotifier(notifier)),
		Renderer: renderer,
		Checks:   checks,
		Gatherer: reg,
	}, log)

	server := &http.Server{
		Addr:              cfg.Server.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	log.Info("server started", slog.String("address", cfg.Server.RunAddress), slog.String("card_store", cfg.DB.CardStore))

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server gracefully stopped")
	return nil
}

// cardRepository выбирает хранилище карточек по CARD_STORE.
func cardRepository(ctx context.Context, db config.DB, pg *postgres.Storage, log *slog.Logger, checks map[string]healthAPI.Pinger) (card.Repository, func(), error) {
	if db.CardStore != config.CardStoreMongo {
		return postgres.NewCardRepository(pg.Pool(), log), func() {}, nil
	}

	store, err := mongo.Connect(ctx, db.MongoURI)
	if err != nil {
		return nil, nil, err
	}
	repo := mongo.NewCardRepository(store.Database(), log)
	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = store.Close(context.Background())
		return nil, nil, err
	}
	checks["mongo"] = store

	return repo, func() {
		if err := store.Close(context.Background()); err != nil {
			log.Warn("close mongo", logger.Err(err))
		}
	}, nil
}
