package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"idcards/internal/domain/identity"
	"idcards/internal/domain/session"
)

type SessionRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewSessionRepository(pool *pgxpool.Pool, log *slog.Logger) *SessionRepository {
	return &SessionRepository{
		pool: pool,
		log:  log.With("component", "session_repository"),
	}
}

func (r *SessionRepository) Create(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO sessions (user_id, token_hash, expires_at)
         VALUES ($1, decode($2, 'hex'), $3)`,
		userID, tokenHash, expiresAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Resolve(ctx context.Context, tokenHash string) (identity.Identity, error) {
	var who identity.Identity
	err := r.pool.QueryRow(ctx,
		`SELECT u.id, u.login
         FROM sessions s
         JOIN users u ON u.id = s.user_id
         WHERE s.token_hash = decode($1, 'hex')
           AND s.expires_at > NOW()
           AND s.revoked_at IS NULL`,
		tokenHash).Scan(&who.UserID, &who.Login)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return identity.Anonymous(), session.ErrInvalidSession
		}
		return identity.Anonymous(), fmt.Errorf("select session: %w", err)
	}
	return who, nil
}

func (r *SessionRepository) Revoke(ctx context.Context, tokenHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE sessions SET revoked_at = NOW()
         WHERE token_hash = decode($1, 'hex') AND revoked_at IS NULL`,
		tokenHash)
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return session.ErrInvalidSession
	}
	return nil
}
