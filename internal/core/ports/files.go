package ports

import (
	"context"
	"io"

	"github.com/melih/docker-agent/internal/core/domain"
)

// FileStore is the shared directory exchanged with the automation receiver.
type FileStore interface {
	List(ctx context.Context) ([]domain.FileEntry, error)
	Names(ctx context.Context) ([]string, error)
	// Save writes r to name, replacing any existing file.
	Save(ctx context.Context, name string, r io.Reader) (domain.StoredFile, error)
	// Open returns the file's bytes and size, or domain.ErrFileNotFound.
	Open(ctx context.Context, name string) (io.ReadCloser, int64, error)
}
