package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/podsnap/internal/model"
)

// SupportedExtensions lists the audio containers accepted for upload.
var SupportedExtensions = []string{".mp3", ".wav", ".m4a", ".ogg", ".flac", ".webm", ".mp4", ".aac"}

// IsSupported reports whether filename has an accepted audio extension.
func IsSupported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// FromUpload copies the uploaded bytes into a fresh temp file inside dir.
func (r *implResolver) FromUpload(ctx context.Context, dir string, up model.Upload) (Audio, error) {
	if up.Body == nil {
		return Audio{}, model.StorageError("store upload", errors.New("no file provided"))
	}

	ext := strings.ToLower(filepath.Ext(up.Filename))
	if ext == "" {
		ext = ".mp3"
	}

	f, err := os.CreateTemp(dir, "upload-*"+ext)
	if err != nil {
		return Audio{}, model.StorageError("create temp file", err)
	}
	path := f.Name()

	n, err := io.Copy(f, up.Body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil && n == 0 {
		err = errors.New("uploaded file is empty")
	}
	if err != nil {
		os.Remove(path)
		return Audio{}, model.StorageError("write upload", err)
	}

	r.logger.Info(ctx, "Stored upload %s (%d bytes) at %s", up.Filename, n, path)

	return Audio{Path: path, Title: titleFromFilename(up.Filename)}, nil
}

func titleFromFilename(name string) string {
	base := filepath.Base(name)
	title := strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
	if title == "" || title == "." || title == string(filepath.Separator) {
		return fallbackTitle
	}
	return title
}

func fileNonEmpty(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%s is empty", path)
	}
	return nil
}
