// Package browser управляет жизненным циклом headless Chrome: запуск
// или подключение к внешнему, выдача страниц и плановый перезапуск.
package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"golang.org/x/exp/slog"
)

const (
	defaultRecycleInterval = 4 * time.Hour
	monitorTick            = 30 * time.Second
)

var ErrClosed = errors.New("browser: manager is closed")

type Config struct {
	// RemoteURL - websocket внешнего Chrome. Пусто - запустить локальный.
	RemoteURL string
	// Bin - путь к локальному Chrome. Пусто - rod найдёт или скачает сам.
	Bin string
	// RecycleInterval - максимальное время жизни процесса Chrome.
	RecycleInterval time.Duration
	Logger          *slog.Logger
}

func (c *Config) defaults() {
	if c.RecycleInterval <= 0 {
		c.RecycleInterval = defaultRecycleInterval
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Manager безопасен для параллельного использования. Перезапуск
// откладывается, пока хотя бы одна страница выдана наружу.
type Manager struct {
	cfg Config
	log *slog.Logger

	mu      sync.RWMutex
	browser *rod.Browser
	lnch    *launcher.Launcher
	startAt time.Time
	closed  bool

	leased atomic.Int64
}

func NewManager(cfg Config) *Manager {
	cfg.defaults()
	return &Manager{
		cfg: cfg,
		log: cfg.Logger.With("component", "browser_manager"),
	}
}

// Start запускает Chrome и фоновый контроль времени жизни.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	b, err := m.launch()
	if err != nil {
		return err
	}
	m.browser = b
	m.startAt = time.Now()

	go m.monitorLoop(ctx)

	return nil
}

// Lease - страница, выданная вызывающему. Release закрывает её.
type Lease struct {
	Page *rod.Page

	m    *Manager
	once sync.Once
}

func (l *Lease) Release() {
	l.once.Do(func() {
		if err := l.Page.Close(); err != nil {
			l.m.log.Debug("failed to close page", "error", err)
		}
		l.m.leased.Add(-1)
	})
}

// NewPage открывает чистую вкладку about:blank.
func (m *Manager) NewPage(ctx context.Context) (*Lease, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}
	if m.browser == nil {
		return nil, fmt.Errorf("browser: not started")
	}

	page, err := m.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("browser: create page: %w", err)
	}

	m.leased.Add(1)
	return &Lease{Page: page, m: m}, nil
}

// Leased - число выданных и ещё не освобождённых страниц.
func (m *Manager) Leased() int64 {
	return m.leased.Load()
}

// Recycle перезапускает Chrome. Возвращает false, если перезапуск
// отложен из-за выданных страниц.
func (m *Manager) Recycle() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return false, ErrClosed
	}
	if n := m.leased.Load(); n > 0 {
		m.log.Debug("recycle postponed", "leased_pages", n)
		return false, nil
	}

	m.log.Info("recycling chrome", "uptime", time.Since(m.startAt))
	m.cleanup()

	b, err := m.launch()
	if err != nil {
		return false, fmt.Errorf("browser: relaunch: %w", err)
	}
	m.browser = b
	m.startAt = time.Now()

	return true, nil
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.cleanup()
	return nil
}

func (m *Manager) launch() (*rod.Browser, error) {
	wsURL := m.cfg.RemoteURL

	if wsURL != "" {
		m.log.Info("connecting to remote chrome", "url", wsURL)
	} else {
		l := launcher.New().Headless(true).Set("hide-scrollbars")
		if m.cfg.Bin != "" {
			l = l.Bin(m.cfg.Bin)
		}
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("browser: launch: %w", err)
		}
		wsURL = u
		m.lnch = l
		m.log.Info("launched local chrome", "url", wsURL)
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("browser: connect: %w", err)
	}

	return b, nil
}

func (m *Manager) cleanup() {
	if m.browser != nil {
		if err := m.browser.Close(); err != nil {
			m.log.Warn("failed to close chrome", "error", err)
		}
		m.browser = nil
	}
	if m.lnch != nil {
		m.lnch.Cleanup()
		m.lnch = nil
	}
}

func (m *Manager) monitorLoop(ctx context.Context) {
	ticker := time.NewTicker(monitorTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.mu.RLock()
			closed := m.closed
			startAt := m.startAt
			m.mu.RUnlock()

			if closed {
				return
			}
			if time.Since(startAt) < m.cfg.RecycleInterval {
				continue
			}
			if _, err := m.Recycle(); err != nil {
				m.log.Error("recycle failed", "error", err)
			}
		}
	}
}
