package export

import (
	"context"
	"sync"
)

// Future - одноразовый результат: разрешается или отклоняется ровно
// один раз, последующие вызовы игнорируются.
type Future struct {
	once sync.Once
	done chan struct{}
	err  error
}

func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Async выполняет fn в отдельной горутине и отражает результат в Future.
func Async(fn func() error) *Future {
	f := NewFuture()
	go func() {
		f.settle(fn())
	}()
	return f
}

// Resolved возвращает уже разрешённый Future.
func Resolved() *Future {
	f := NewFuture()
	f.Resolve()
	return f
}

func (f *Future) Resolve() {
	f.settle(nil)
}

// Reject отклоняет Future. nil трактуется как Resolve.
func (f *Future) Reject(err error) {
	f.settle(err)
}

func (f *Future) settle(err error) {
	f.once.Do(func() {
		f.err = err
		close(f.done)
	})
}

func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Err возвращает ошибку отклонения. До завершения всегда nil.
func (f *Future) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return nil
	}
}

func (f *Future) Settled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Wait ждёт завершения Future или отмены ctx.
func (f *Future) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
