package client

import (
	"context"
	"sort"
	"sync"

	"idcards/internal/domain/card"
)

// MemoryStorage - кэш в памяти, если sqlite недоступен.
type MemoryStorage struct {
	mu    sync.RWMutex
	cards map[string]card.Card
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{cards: make(map[string]card.Card)}
}

func (m *MemoryStorage) ReplaceAll(_ context.Context, cards []card.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cards = make(map[string]card.Card, len(cards))
	for _, c := range cards {
		m.cards[c.ID] = c
	}
	return nil
}

func (m *MemoryStorage) Save(_ context.Context, c card.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cur, ok := m.cards[c.ID]; ok && cur.UpdatedAt > c.UpdatedAt {
		return nil
	}
	m.cards[c.ID] = c
	return nil
}

func (m *MemoryStorage) Get(_ context.Context, id string) (*card.Card, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.cards[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (m *MemoryStorage) List(_ context.Context) ([]card.Card, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cards := make([]card.Card, 0, len(m.cards))
	for _, c := range m.cards {
		cards = append(cards, c)
	}
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].CreatedAt != cards[j].CreatedAt {
			return cards[i].CreatedAt > cards[j].CreatedAt
		}
		return cards[i].ID < cards[j].ID
	})
	return cards, nil
}

func (m *MemoryStorage) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cards, id)
	return nil
}

func (m *MemoryStorage) Purge(ctx context.Context) error {
	return m.ReplaceAll(ctx, nil)
}

func (m *MemoryStorage) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cards), nil
}

func (m *MemoryStorage) Close() error {
	return nil
}
