package export

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChromeRenderer_Available(t *testing.T) {
	ctx := context.Background()

	t.Run("remote browser", func(t *testing.T) {
		r := NewChromeRenderer(ChromeConfig{RemoteURL: "ws://127.0.0.1:9222"})
		r.lookPath = func(string) (string, error) { return "", errors.New("not found") }

		assert.NoError(t, r.Available(ctx, FormatPDF))
		assert.NoError(t, r.Available(ctx, FormatJPG))
	})

	t.Run("local executable", func(t *testing.T) {
		r := NewChromeRenderer(ChromeConfig{})
		r.lookPath = func(name string) (string, error) {
			if name == "chromium" {
				return "/usr/bin/chromium", nil
			}
			return "", errors.New("not found")
		}

		assert.NoError(t, r.Available(ctx, FormatPDF))
	})

	t.Run("no browser", func(t *testing.T) {
		r := NewChromeRenderer(ChromeConfig{})
		r.lookPath = func(string) (string, error) { return "", errors.New("not found") }

		assert.ErrorIs(t, r.Available(ctx, FormatPDF), ErrRendererUnavailable)
	})

	t.Run("unknown format", func(t *testing.T) {
		r := NewChromeRenderer(ChromeConfig{RemoteURL: "ws://127.0.0.1:9222"})

		assert.ErrorIs(t, r.Available(ctx, Format("png")), ErrRendererUnavailable)
	})
}

func TestPageSize(t *testing.T) {
	w, h := pageSize([]float64{960, 1440})
	assert.InDelta(t, 10.0, w, 1e-9)
	assert.InDelta(t, 15.0, h, 1e-9)

	w, h = pageSize(nil)
	assert.Equal(t, 8.5, w)
	assert.Equal(t, 11.0, h)
}

func TestViewport(t *testing.T) {
	w, h := viewport([]float64{800.2, 1200})
	assert.Equal(t, int64(801), w)
	assert.Equal(t, int64(1200), h)
}

func TestJPEGQuality(t *testing.T) {
	assert.Equal(t, 95, jpegQuality(0))
	assert.Equal(t, 80, jpegQuality(0.8))
	assert.Equal(t, 99, jpegQuality(1))
	assert.Equal(t, 95, jpegQuality(3))
}
