package user

import (
	"time"

	"idcards/internal/domain/identity"
)

type User struct {
	ID        int
	Login     string
	Password  string // bcrypt-хэш
	CreatedAt time.Time
}

// Identity возвращает identity пользователя для сервисов карточек.
func (u User) Identity() identity.Identity {
	return identity.Identity{UserID: u.ID, Login: u.Login}
}
