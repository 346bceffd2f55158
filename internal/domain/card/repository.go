package card

import (
	"context"
)

// Repository - хранилище карточек (postgres или mongo).
type Repository interface {
	Create(ctx context.Context, c *Card) error
	// ListByOwner возвращает карточки владельца, новые первыми.
	ListByOwner(ctx context.Context, ownerID int) ([]Card, error)
	// Get возвращает ErrNotFound, если карточки нет.
	Get(ctx context.Context, id string) (*Card, error)
	Update(ctx context.Context, c *Card) error
	Delete(ctx context.Context, id string) error
}
