// Package identity описывает вызывающего пользователя, от имени которого
// выполняются операции с карточками.
package identity

import (
	"context"
)

// Identity - явный идентификатор вызывающего. Нулевое значение означает
// анонимного пользователя.
type Identity struct {
	UserID int    `json:"user_id"`
	Login  string `json:"login"`
}

// Anonymous возвращает нулевую identity.
func Anonymous() Identity {
	return Identity{}
}

func (i Identity) IsZero() bool {
	return i.UserID <= 0
}

// Owns сообщает, принадлежит ли ресурс с ownerID этому пользователю.
func (i Identity) Owns(ownerID int) bool {
	return !i.IsZero() && i.UserID == ownerID
}

type ctxKey struct{}

// WithContext кладёт identity в контекст запроса.
func WithContext(ctx context.Context, who Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, who)
}

// FromContext достаёт identity из контекста. Второй результат false,
// если identity не была установлена.
func FromContext(ctx context.Context) (Identity, bool) {
	who, ok := ctx.Value(ctxKey{}).(Identity)
	return who, ok && !who.IsZero()
}
