package card

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"idcards/internal/domain/identity"
)

type Servicer interface {
	Create(ctx context.Context, who identity.Identity, f Fields) (string, error)
	ListForOwner(ctx context.Context, who identity.Identity) ([]Card, error)
	Search(ctx context.Context, who identity.Identity, q string) ([]Card, error)
	Get(ctx context.Context, who identity.Identity, id string) (*Card, error)
	Update(ctx context.Context, who identity.Identity, c Card) error
	Delete(ctx context.Context, who identity.Identity, id string) error
	Notify(ctx context.Context, typ EventType, c *Card)
}

type Service struct {
	repo     Repository
	notifier Notifier
	now      func() time.Time
	log      *slog.Logger
}

type Option func(*Service)

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithNotifier включает публикацию событий.
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

func NewService(repo Repository, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		notifier: NopNotifier(),
		now:      time.Now,
		log:      log.With("component", "card_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create сохраняет новую карточку владельца who и возвращает её id.
// Некорректные поля отклоняются до обращения к репозиторию.
func (s *Service) Create(ctx context.Context, who identity.Identity, f Fields) (string, error) {
	if who.IsZero() {
		return "", ErrNotAuthenticated
	}

	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return "", err
	}

	now := s.now().UnixMilli()
	c := &Card{
		ID:        uuid.NewString(),
		OwnerID:   who.UserID,
		Fields:    f,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.log.Error("failed to create card", "user_id", who.UserID, "error", err)
		return "", fmt.Errorf("create card: %w", err)
	}

	s.log.Info("card created", "card_id", c.ID, "user_id", who.UserID)
	s.publish(ctx, EventCreated, c)

	return c.ID, nil
}

// ListForOwner возвращает карточки who, новые первыми.
func (s *Service) ListForOwner(ctx context.Context, who identity.Identity) ([]Card, error) {
	if who.IsZero() {
		return nil, ErrNotAuthenticated
	}

	cards, err := s.repo.ListByOwner(ctx, who.UserID)
	if err != nil {
		s.log.Error("failed to list cards", "user_id", who.UserID, "error", err)
		return nil, fmt.Errorf("list cards: %w", err)
	}

	return cards, nil
}

func (s *Service) Search(ctx context.Context, who identity.Identity, q string) ([]Card, error) {
	cards, err := s.ListForOwner(ctx, who)
	if err != nil {
		return nil, err
	}
	return Filter(cards, q), nil
}

// Get возвращает карточку, если она принадлежит who.
func (s *Service) Get(ctx context.Context, who identity.Identity, id string) (*Card, error) {
	if who.IsZero() {
		return nil, ErrNotAuthenticated
	}

	c, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to get card", "card_id", id, "user_id", who.UserID, "error", err)
		return nil, fmt.Errorf("get card: %w", err)
	}

	if !who.Owns(c.OwnerID) {
		s.log.Warn("card access denied", "card_id", id, "user_id", who.UserID)
		return nil, ErrNotAuthorized
	}

	return c, nil
}

// Update заменяет поля карточки c.ID. Владелец и created_at сохраняются,
// updated_at растёт строго монотонно.
func (s *Service) Update(ctx context.Context, who identity.Identity, c Card) error {
	current, err := s.Get(ctx, who, c.ID)
	if err != nil {
		return err
	}

	f := c.Fields.Normalize()
	if err := f.Validate(); err != nil {
		return err
	}

	updated := *current
	updated.Fields = f
	updated.UpdatedAt = s.now().UnixMilli()
	if updated.UpdatedAt <= current.UpdatedAt {
		updated.UpdatedAt = current.UpdatedAt + 1
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.log.Error("failed to update card", "card_id", c.ID, "user_id", who.UserID, "error", err)
		return fmt.Errorf("update card: %w", err)
	}

	s.log.Info("card updated", "card_id", c.ID, "user_id", who.UserID)
	s.publish(ctx, EventUpdated, &updated)

	return nil
}

func (s *Service) Delete(ctx context.Context, who identity.Identity, id string) error {
	current, err := s.Get(ctx, who, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.log.Error("failed to delete card", "card_id", id, "user_id", who.UserID, "error", err)
		return fmt.Errorf("delete card: %w", err)
	}

	s.log.Info("card deleted", "card_id", id, "user_id", who.UserID)
	s.publish(ctx, EventDeleted, current)

	return nil
}

// Notify публикует произвольное событие по карточке, например об экспорте.
func (s *Service) Notify(ctx context.Context, typ EventType, c *Card) {
	s.publish(ctx, typ, c)
}

func (s *Service) publish(ctx context.Context, typ EventType, c *Card) {
	e := Event{Type: typ, CardID: c.ID, OwnerID: c.OwnerID, At: s.now().UnixMilli()}
	if err := s.notifier.Publish(ctx, e); err != nil {
		s.log.Warn("failed to publish card event", "type", typ, "card_id", c.ID, "error", err)
	}
}
