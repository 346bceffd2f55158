package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/exp/slog"

	"idcards/internal/app/client/config"
	"idcards/internal/domain/card"
	"idcards/internal/domain/identity"
	"idcards/internal/export"
	"idcards/internal/utils/logger"
)

const connectionTimeout = 10 * time.Second

// App связывает HTTP-клиент, локальный кэш и identity вошедшего пользователя.
type App struct {
	config     *config.Config
	log        *slog.Logger
	httpClient *httpClient
	storage    Storage
	identity   *IdentityWatcher
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}

	httpCl, err := NewHTTPClient(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("init http client: %w", err)
	}

	var storage Storage
	sqliteStorage, err := NewSQLiteStorage(cfg.DataPath)
	if err != nil {
		log.Warn("sqlite cache unavailable, using memory", logger.Err(err))
		storage = NewMemoryStorage()
	} else {
		storage = sqliteStorage
	}

	app := &App{
		config:     cfg,
		log:        log.With(slog.String("component", "client")),
		httpClient: httpCl,
		storage:    storage,
		identity:   NewIdentityWatcher(),
	}

	// Кэш принадлежит вошедшему владельцу: выход или смена владельца
	// его сбрасывают.
	app.identity.Subscribe(func(prev, next identity.Identity) {
		if prev.IsZero() || prev.UserID == next.UserID {
			return
		}
		if err := app.storage.Purge(context.Background()); err != nil {
			app.log.Warn("purge card cache", logger.Err(err))
		}
	})

	if token, err := app.token(); err == nil {
		httpCl.SetToken(token)
		who, err := app.loadIdentity()
		if err != nil {
			app.log.Debug("stored identity unavailable", logger.Err(err))
		}
		app.identity.Set(who)
	}

	return app, nil
}

func (a *App) Config() *config.Config {
	return a.config
}

func (a *App) Identity() *IdentityWatcher {
	return a.identity
}

func (a *App) IsAuthenticated() bool {
	return !a.identity.Current().IsZero()
}

func (a *App) Close() error {
	return a.storage.Close()
}

// CheckConnection проверяет, что сервер отвечает на health check.
func (a *App) CheckConnection(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, connectionTimeout)
	defer cancel()
	return a.httpClient.HealthCheck(ctx)
}

// Init сохраняет config.yaml и проверяет локальный кэш.
func (a *App) Init(ctx context.Context) (string, int, error) {
	path, err := a.config.Save()
	if err != nil {
		return "", 0, err
	}
	count, err := a.storage.Count(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("init card cache: %w", err)
	}
	return path, count, nil
}

func (a *App) Register(ctx context.Context, login, password string) (int, error) {
	id, err := a.httpClient.Register(ctx, login, password)
	if err != nil {
		return 0, err
	}
	a.log.Debug("user registered", slog.String("login", login))
	return id, nil
}

// Login получает токен, сохраняет его и публикует новую identity.
func (a *App) Login(ctx context.Context, login, password string) (identity.Identity, error) {
	token, err := a.httpClient.Login(ctx, login, password)
	if err != nil {
		return identity.Identity{}, err
	}
	a.httpClient.SetToken(token)

	me, err := a.httpClient.Me(ctx)
	if err != nil {
		return identity.Identity{}, fmt.Errorf("fetch identity: %w", err)
	}
	who := identity.Identity{UserID: me.ID, Login: me.Login}

	if err := a.saveToken(token); err != nil {
		return identity.Identity{}, err
	}
	if err := a.saveIdentity(who); err != nil {
		a.log.Warn("save identity", logger.Err(err))
	}

	a.identity.Set(who)
	return who, nil
}

// Logout отзывает сессию на сервере и удаляет локальный токен. Локальный
// выход выполняется, даже если сервер недоступен.
func (a *App) Logout(ctx context.Context) error {
	var serverErr error
	if _, err := a.token(); err == nil {
		serverErr = a.httpClient.Logout(ctx)
		if errors.Is(serverErr, ErrUnauthorized) {
			serverErr = nil
		}
	}

	a.httpClient.SetToken("")
	for _, path := range []string{a.config.TokenPath, a.statePath()} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", filepath.Base(path), err)
		}
	}
	a.identity.Clear()

	return serverErr
}

// WhoAmI спрашивает у сервера, кому принадлежит токен.
func (a *App) WhoAmI(ctx context.Context) (identity.Identity, error) {
	me, err := a.httpClient.Me(ctx)
	if err != nil {
		return identity.Identity{}, err
	}
	who := identity.Identity{UserID: me.ID, Login: me.Login}
	a.identity.Set(who)
	return who, nil
}

// ListCards берёт список с сервера. Полный список обновляет кэш.
func (a *App) ListCards(ctx context.Context, q string) ([]card.Card, error) {
	cards, err := a.httpClient.ListCards(ctx, q)
	if err != nil {
		return nil, err
	}
	if q == "" {
		if err := a.storage.ReplaceAll(ctx, cards); err != nil {
			a.log.Warn("refresh card cache", logger.Err(err))
		}
	}
	return cards, nil
}

// SearchLocal ищет по кэшу без обращения к серверу.
func (a *App) SearchLocal(ctx context.Context, q string) ([]card.Card, error) {
	cards, err := a.storage.List(ctx)
	if err != nil {
		return nil, err
	}
	return card.Filter(cards, q), nil
}

func (a *App) CreateCard(ctx context.Context, f card.Fields) (*card.Card, error) {
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, err
	}

	id, err := a.httpClient.CreateCard(ctx, f)
	if err != nil {
		return nil, err
	}
	return a.GetCard(ctx, id)
}

func (a *App) GetCard(ctx context.Context, id string) (*card.Card, error) {
	c, err := a.httpClient.GetCard(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			_ = a.storage.Delete(ctx, id)
		}
		return nil, err
	}
	a.cache(ctx, *c)
	return c, nil
}

func (a *App) UpdateCard(ctx context.Context, id string, f card.Fields) (*card.Card, error) {
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, err
	}

	c, err := a.httpClient.UpdateCard(ctx, id, f)
	if err != nil {
		return nil, err
	}
	a.cache(ctx, *c)
	return c, nil
}

func (a *App) DeleteCard(ctx context.Context, id string) error {
	if err := a.httpClient.DeleteCard(ctx, id); err != nil {
		return err
	}
	return a.storage.Delete(ctx, id)
}

// Preview сохраняет HTML карточки в dir и возвращает путь к файлу.
func (a *App) Preview(ctx context.Context, id, dir string) (string, error) {
	doc, err := a.httpClient.Preview(ctx, id)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = a.config.ExportDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create preview dir: %w", err)
	}

	path := filepath.Join(dir, "card-"+filepath.Base(id)+".html")
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return "", fmt.Errorf("write preview: %w", err)
	}
	return path, nil
}

// Export скачивает PNG и сохраняет его в dir под именем, выданным сервером.
func (a *App) Export(ctx context.Context, id, dir string) (string, error) {
	artifact, err := a.httpClient.Export(ctx, id)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = a.config.ExportDir
	}

	d := export.FileDeliverer{Dir: dir}
	if err := d.Deliver(ctx, artifact); err != nil {
		return "", fmt.Errorf("%w: %v", export.ErrDeliveryFailed, err)
	}
	return d.Path(artifact.Filename), nil
}

func (a *App) cache(ctx context.Context, c card.Card) {
	if err := a.storage.Save(ctx, c); err != nil {
		a.log.Warn("cache card", slog.String("card_id", c.ID), logger.Err(err))
	}
}

func (a *App) token() (string, error) {
	data, err := os.ReadFile(a.config.TokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrUnauthorized
		}
		return "", fmt.Errorf("read token: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrUnauthorized
	}
	return token, nil
}

func (a *App) saveToken(token string) error {
	if err := os.WriteFile(a.config.TokenPath, []byte(token), 0o600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (a *App) statePath() string {
	return filepath.Join(a.config.ConfigDir, "state.json")
}

func (a *App) loadIdentity() (identity.Identity, error) {
	data, err := os.ReadFile(a.statePath())
	if err != nil {
		return identity.Identity{}, err
	}

	var who identity.Identity
	if err := json.Unmarshal(data, &who); err != nil {
		return identity.Identity{}, fmt.Errorf("decode state: %w", err)
	}
	return who, nil
}

func (a *App) saveIdentity(who identity.Identity) error {
	data, err := json.MarshalIndent(who, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(a.statePath(), data, 0o600)
}
