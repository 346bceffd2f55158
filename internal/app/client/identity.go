package client

import (
	"sync"

	"idcards/internal/domain/identity"
)

// IdentityWatcher хранит identity вошедшего пользователя и оповещает
// подписчиков о её смене: вход, выход, загрузка сохранённого токена.
type IdentityWatcher struct {
	mu      sync.RWMutex
	current identity.Identity
	nextID  int
	subs    map[int]func(prev, next identity.Identity)
}

func NewIdentityWatcher() *IdentityWatcher {
	return &IdentityWatcher{subs: make(map[int]func(prev, next identity.Identity))}
}

func (w *IdentityWatcher) Current() identity.Identity {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Subscribe регистрирует fn и возвращает функцию отписки.
func (w *IdentityWatcher) Subscribe(fn func(prev, next identity.Identity)) (unsubscribe func()) {
	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.subs[id] = fn
	w.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.subs, id)
			w.mu.Unlock()
		})
	}
}

// Set меняет identity. Подписчики вызываются вне блокировки и только
// при фактической смене.
func (w *IdentityWatcher) Set(next identity.Identity) {
	w.mu.Lock()
	prev := w.current
	if prev == next {
		w.mu.Unlock()
		return
	}
	w.current = next

	subs := make([]func(prev, next identity.Identity), 0, len(w.subs))
	for _, fn := range w.subs {
		subs = append(subs, fn)
	}
	w.mu.Unlock()

	for _, fn := range subs {
		fn(prev, next)
	}
}

func (w *IdentityWatcher) Clear() {
	w.Set(identity.Anonymous())
}
