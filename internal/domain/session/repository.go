package session

import (
	"context"
	"time"

	"idcards/internal/domain/identity"
)

type Repository interface {
	Create(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error
	// Resolve возвращает владельца живой (не истёкшей и не отозванной)
	// сессии или ErrInvalidSession.
	Resolve(ctx context.Context, tokenHash string) (identity.Identity, error)
	Revoke(ctx context.Context, tokenHash string) error
}
