package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
)

const filenameSuffix = "-ID-Card.png"

// Пробельные символы в смысле Unicode: ASCII, \v, разделители Z и BOM.
var whitespaceRun = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)

// Filename заменяет каждую серию пробельных символов в имени владельца
// одним дефисом и добавляет суффикс "-ID-Card.png".
func Filename(holder string) string {
	return whitespaceRun.ReplaceAllString(holder, "-") + filenameSuffix
}

// EncodePNG кодирует изображение без потерь.
func EncodePNG(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrEncodingFailed)
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodingFailed, err)
	}
	return buf.Bytes(), nil
}

// Artifact - готовый к сохранению PNG.
type Artifact struct {
	Filename string
	Data     []byte
}

// Deliverer инициирует сохранение артефакта.
type Deliverer interface {
	Deliver(ctx context.Context, a Artifact) error
}

type DeliverFunc func(ctx context.Context, a Artifact) error

func (f DeliverFunc) Deliver(ctx context.Context, a Artifact) error {
	return f(ctx, a)
}

// FileDeliverer пишет артефакты в каталог Dir.
type FileDeliverer struct {
	Dir string
}

// Path возвращает путь, по которому будет сохранён файл.
func (d FileDeliverer) Path(filename string) string {
	return filepath.Join(d.Dir, filepath.Base(filename))
}

// Deliver пишет файл атомарно: во временный файл и затем rename.
func (d FileDeliverer) Deliver(_ context.Context, a Artifact) error {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	tmp, err := os.CreateTemp(d.Dir, ".export-*.png")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(a.Data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", a.Filename, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", a.Filename, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", a.Filename, err)
	}

	return os.Rename(tmp.Name(), d.Path(a.Filename))
}
