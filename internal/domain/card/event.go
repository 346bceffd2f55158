package card

import (
	"context"
)

type EventType string

const (
	EventCreated  EventType = "created"
	EventUpdated  EventType = "updated"
	EventDeleted  EventType = "deleted"
	EventExported EventType = "exported"
)

// Event - событие жизненного цикла карточки.
type Event struct {
	Type    EventType `json:"type"`
	CardID  string    `json:"card_id"`
	OwnerID int       `json:"owner_id"`
	At      int64     `json:"at"`
}

// Notifier публикует события. Ошибка публикации не отменяет операцию.
type Notifier interface {
	Publish(ctx context.Context, e Event) error
}

type nopNotifier struct{}

func (nopNotifier) Publish(context.Context, Event) error { return nil }

// NopNotifier ничего не публикует.
func NopNotifier() Notifier {
	return nopNotifier{}
}
