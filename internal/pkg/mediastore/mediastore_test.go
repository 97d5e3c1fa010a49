package mediastore

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSavePostImage(t *testing.T) {
	t.Setenv("UPLOAD_DIR", t.TempDir())

	relPath, err := SavePostImage(bytes.NewReader(pngBytes(t, 20, 20)), "photo.png")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(relPath, "post_images/"))
	assert.True(t, strings.HasSuffix(relPath, ".png"))
	// Random name, not the client-provided one.
	assert.NotContains(t, relPath, "photo")

	_, err = os.Stat(filepath.Join(UploadRoot(), relPath))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(UploadRoot(), PreviewPath(relPath)))
	require.NoError(t, err)
}

func TestSavePostImageRejectsUnknownExtension(t *testing.T) {
	t.Setenv("UPLOAD_DIR", t.TempDir())

	_, err := SavePostImage(bytes.NewReader([]byte("not an image")), "payload.exe")
	require.Error(t, err)
}

func TestRemove(t *testing.T) {
	t.Setenv("UPLOAD_DIR", t.TempDir())

	relPath, err := SavePostImage(bytes.NewReader(pngBytes(t, 10, 10)), "photo.jpg")
	require.NoError(t, err)

	require.NoError(t, Remove(relPath))

	_, err = os.Stat(filepath.Join(UploadRoot(), relPath))
	assert.True(t, os.IsNotExist(err))

	// Removing twice is fine.
	require.NoError(t, Remove(relPath))
}
