// Package events публикует события жизненного цикла карточек в NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"golang.org/x/exp/slog"

	"idcards/internal/domain/card"
)

const subjectPrefix = "idcards.card."

// Subject возвращает тему NATS для типа события, например
// "idcards.card.exported".
func Subject(t card.EventType) string {
	return subjectPrefix + string(t)
}

// Conn - часть *nats.Conn, нужная публикатору.
type Conn interface {
	Publish(subj string, data []byte) error
	Drain() error
	Status() nats.Status
}

type Publisher struct {
	conn Conn
	log  *slog.Logger
}

var _ card.Notifier = (*Publisher)(nil)

// Connect подключается к NATS. Пустой token - без аутентификации.
func Connect(url, token string, log *slog.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.Name("idcards-server"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}

	return NewPublisher(nc, log), nil
}

func NewPublisher(conn Conn, log *slog.Logger) *Publisher {
	return &Publisher{
		conn: conn,
		log:  log.With("component", "event_publisher"),
	}
}

func (p *Publisher) Publish(_ context.Context, e card.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := p.conn.Publish(Subject(e.Type), data); err != nil {
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}

	p.log.Debug("event published", "type", e.Type, "card_id", e.CardID)
	return nil
}

// Ping сообщает об ошибке, пока соединение не в состоянии CONNECTED.
func (p *Publisher) Ping(context.Context) error {
	if st := p.conn.Status(); st != nats.CONNECTED {
		return fmt.Errorf("nats %s", st)
	}
	return nil
}

// Close дожидается отправки буфера и закрывает соединение.
func (p *Publisher) Close() error {
	return p.conn.Drain()
}
