package imagestore

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPutAndDelete(t *testing.T) {
	root := t.TempDir()
	s, err := NewFileStore(root, "http://localhost:8080/media/")
	require.NoError(t, err)
	ctx := context.Background()

	url, err := s.Put(ctx, Key("p1", "img1", ".png"), []byte("data"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/media/properties/p1/img1.png", url)

	stored, err := os.ReadFile(filepath.Join(root, "properties", "p1", "img1.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), stored)

	require.NoError(t, s.Delete(ctx, url))
	_, err = os.Stat(filepath.Join(root, "properties", "p1", "img1.png"))
	assert.True(t, os.IsNotExist(err))

	// retrying a delete is safe
	require.NoError(t, s.Delete(ctx, url))
	require.NoError(t, s.Delete(ctx, "https://cdn.example.com/other.png"))
}

func TestPutRejectsTraversal(t *testing.T) {
	s, err := NewFileStore(t.TempDir(), "http://localhost/media")
	require.NoError(t, err)

	_, err = s.Put(context.Background(), "../escape.png", []byte("x"), "image/png")
	assert.Error(t, err)
}

func TestInspect(t *testing.T) {
	info, err := Inspect(pngBytes(t, 4, 3))
	require.NoError(t, err)

	assert.Equal(t, "image/png", info.MimeType)
	assert.Equal(t, "png", info.Format)
	assert.Equal(t, ".png", info.Extension)
	assert.Equal(t, 4, info.Width)
	assert.Equal(t, 3, info.Height)

	_, err = Inspect([]byte("plain text, not a picture"))
	assert.ErrorIs(t, err, ErrNotImage)
}
