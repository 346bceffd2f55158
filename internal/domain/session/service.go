package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"idcards/internal/domain/identity"
)

const DefaultTTL = 24 * time.Hour

var ErrInvalidSession = errors.New("invalid session")

type Servicer interface {
	Create(ctx context.Context, userID int) (string, error)
	Resolve(ctx context.Context, token string) (identity.Identity, error)
	Revoke(ctx context.Context, token string) error
}

type Service struct {
	repo Repository
	ttl  time.Duration
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		ttl:  DefaultTTL,
		log:  log.With("component", "session_service"),
	}
}

// Create выпускает новый bearer-токен. В хранилище попадает только
// sha256 токена.
func (s *Service) Create(ctx context.Context, userID int) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	token := base64.URLEncoding.EncodeToString(tokenBytes)

	expiresAt := time.Now().Add(s.ttl)
	if err := s.repo.Create(ctx, userID, hashToken(token), expiresAt); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	return token, nil
}

func (s *Service) Resolve(ctx context.Context, token string) (identity.Identity, error) {
	if token == "" {
		return identity.Anonymous(), ErrInvalidSession
	}

	who, err := s.repo.Resolve(ctx, hashToken(token))
	if err != nil {
		if !errors.Is(err, ErrInvalidSession) {
			s.log.Error("failed to resolve session", "error", err)
		}
		return identity.Anonymous(), fmt.Errorf("resolve session: %w", err)
	}

	return who, nil
}

func (s *Service) Revoke(ctx context.Context, token string) error {
	if err := s.repo.Revoke(ctx, hashToken(token)); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
