package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/xid"
)

// Uploader accepts an uploaded binary and returns a stable reference URL.
// The rest of the system treats that URL as an opaque post reference and
// never looks at the bytes again.
type Uploader interface {
	Upload(ctx context.Context, filename string, source io.Reader) (string, error)
}

type LocalUploader struct {
	BasePath string
	BaseURL  string
}

func NewLocalUploader(basePath, baseURL string) *LocalUploader {
	return &LocalUploader{BasePath: basePath, BaseURL: baseURL}
}

func (v *LocalUploader) Upload(_ context.Context, filename string, source io.Reader) (string, error) {
	key := xid.New().String() + filepath.Ext(filename)

	if err := os.MkdirAll(v.BasePath, 0755); err != nil {
		return "", fmt.Errorf("unable to prepare storage directory: %v", err)
	}

	dst, err := os.Create(filepath.Join(v.BasePath, key))
	if err != nil {
		return "", fmt.Errorf("unable to create attachment file: %v", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, source); err != nil {
		return "", fmt.Errorf("unable to write attachment file: %v", err)
	}

	return fmt.Sprintf("%s/%s", v.BaseURL, key), nil
}
