package logger

import (
	"context"
	"errors"
	"io"
	"os"

	"golang.org/x/exp/slog"
	"gopkg.in/natefinch/lumberjack.v2"

	"idcards/internal/app/server/config"
)

// Option настраивает логгер
type Option func(*options)

type options struct {
	file string
}

// WithFile дублирует вывод в файл с ротацией. В файл всегда пишется JSON,
// в том числе в окружении local.
func WithFile(path string) Option {
	return func(o *options) {
		o.file = path
	}
}

// New создает логгер в зависимости от окружения:
// local - цветной вывод, debug; dev - JSON, debug; prod - JSON, info.
func New(env string, opts ...Option) *slog.Logger {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	var log *slog.Logger

	switch env {
	case config.EnvLocal:
		log = setupPrettySlog()
		if f := rotating(o); f != nil {
			file := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
			log = slog.New(teeHandler{log.Handler(), file})
		}
	case config.EnvDev:
		log = slog.New(slog.NewJSONHandler(output(o), &slog.HandlerOptions{Level: slog.LevelDebug}))
	case config.EnvProd:
		log = slog.New(slog.NewJSONHandler(output(o), &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(output(o), &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func output(o *options) io.Writer {
	if f := rotating(o); f != nil {
		return io.MultiWriter(os.Stdout, f)
	}
	return os.Stdout
}

func rotating(o *options) io.Writer {
	if o.file == "" {
		return nil
	}
	return &lumberjack.Logger{
		Filename:   o.file,
		MaxSize:    50, // MB
		MaxBackups: 5,
		MaxAge:     28, // дней
		Compress:   true,
	}
}

// teeHandler отдаёт запись каждому обработчику, которому она нужна.
type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithGroup(name)
	}
	return out
}

func setupPrettySlog() *slog.Logger {
	opts := PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}

// Err оборачивает ошибку в атрибут
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}
