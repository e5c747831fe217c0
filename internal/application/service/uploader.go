package service

import (
	"context"
	"io"
)

// Uploader is the object-storage collaborator. Upload stores a blob at the
// given path and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, path string) (string, error)
	Delete(ctx context.Context, path string) error
}
