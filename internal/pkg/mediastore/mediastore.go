// Package mediastore stores uploaded post images on local disk. Files get
// random names so uploads cannot collide or be guessed, and every image
// gets a bounded preview rendition for list pages.
package mediastore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/blogram/blogram/internal/pkg/env"
)

const (
	postImageDir = "post_images"
	previewDir   = "post_images/previews"
	previewWidth = 1280
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// UploadRoot returns the directory uploads are written to.
func UploadRoot() string {
	return env.GetEnv("UPLOAD_DIR", "./uploads")
}

// SavePostImage writes the uploaded image under a random name and renders
// a preview. It returns the path relative to the upload root, which is
// what gets persisted on the post.
func SavePostImage(src io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	name := uuid.New().String() + ext
	relPath := filepath.Join(postImageDir, name)
	absPath := filepath.Join(UploadRoot(), relPath)

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(absPath)
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", err
	}

	if err := writePreview(absPath, name); err != nil {
		// The original is already in place; a failed preview should not
		// fail the upload.
		return relPath, nil
	}

	return relPath, nil
}

// PreviewPath maps a stored image path to its preview rendition.
func PreviewPath(relPath string) string {
	if relPath == "" {
		return ""
	}
	return filepath.Join(previewDir, filepath.Base(relPath))
}

// Remove deletes a stored image and its preview. Missing files are not an
// error.
func Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(UploadRoot(), relPath)); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := os.Remove(filepath.Join(UploadRoot(), PreviewPath(relPath))); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func writePreview(absPath, name string) error {
	img, err := imaging.Open(absPath, imaging.AutoOrientation(true))
	if err != nil {
		return err
	}

	if img.Bounds().Dx() > previewWidth {
		img = imaging.Resize(img, previewWidth, 0, imaging.Lanczos)
	}

	previewAbs := filepath.Join(UploadRoot(), previewDir, name)
	if err := os.MkdirAll(filepath.Dir(previewAbs), 0o755); err != nil {
		return err
	}
	return imaging.Save(img, previewAbs)
}
