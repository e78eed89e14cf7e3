package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// SaveEventImage stores an uploaded event picture and a 300px-wide thumbnail
// under dir. The saved file is named <id>.jpg; the thumbnail lives in
// dir/thumb with the same name.
func SaveEventImage(src multipart.File, dir, id string) (string, error) {
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind image file: %w", err)
	}

	img, err := imaging.Decode(src)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	fileName := id + ".jpg"
	thumbDir := filepath.Join(dir, "thumb")

	if err := EnsureDir(dir); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := EnsureDir(thumbDir); err != nil {
		return "", fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	if err := imaging.Save(img, filepath.Join(dir, fileName)); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	thumbImg := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumbImg, filepath.Join(thumbDir, fileName)); err != nil {
		return "", fmt.Errorf("failed to save thumbnail: %w", err)
	}

	return fileName, nil
}
