package export

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		holder string
		want   string
	}{
		{"John   Doe", "John-Doe-ID-Card.png"},
		{"Ann Lee", "Ann-Lee-ID-Card.png"},
		{"Madonna", "Madonna-ID-Card.png"},
		{"Mary\tJane\n Watson", "Mary-Jane-Watson-ID-Card.png"},
		{"José  María", "José-María-ID-Card.png"},
		{"Ann\u00a0Lee", "Ann-Lee-ID-Card.png"},
		{"Ann\vLee", "Ann-Lee-ID-Card.png"},
		{"Ann \u00a0 Lee", "Ann-Lee-ID-Card.png"},
		{"Ann\u2003Lee\u3000Park", "Ann-Lee-Park-ID-Card.png"},
		{"Ann\ufeffLee", "Ann-Lee-ID-Card.png"},
	}

	for _, tt := range tests {
		t.Run(tt.holder, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.holder))
		})
	}
}

func TestEncodePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 12))
	data, err := EncodePNG(img)
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Width)
	assert.Equal(t, 12, cfg.Height)
}

func TestEncodePNG_Failure(t *testing.T) {
	_, err := EncodePNG(nil)
	assert.ErrorIs(t, err, ErrEncodingFailed)

	_, err = EncodePNG(image.NewRGBA(image.Rectangle{}))
	assert.ErrorIs(t, err, ErrEncodingFailed)
}

func TestFileDeliverer(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	d := FileDeliverer{Dir: dir}

	err := d.Deliver(context.Background(), Artifact{Filename: "Ann-Lee-ID-Card.png", Data: []byte("png")})
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "Ann-Lee-ID-Card.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileDeliverer_PathStaysInDir(t *testing.T) {
	d := FileDeliverer{Dir: "/tmp/out"}
	assert.Equal(t, "/tmp/out/x.png", d.Path("../../etc/x.png"))
}
