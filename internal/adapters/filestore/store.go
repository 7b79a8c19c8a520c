// Package filestore implements the shared directory used for uploads,
// downloads and the list_shared_files tool.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/melih/docker-agent/internal/core/domain"
)

// Store implements ports.FileStore on top of an afero filesystem rooted at
// the shared directory.
type Store struct {
	fs   afero.Fs
	root string
}

// New creates root on base if it does not exist and returns a store confined
// to it.
func New(base afero.Fs, root string) (*Store, error) {
	if err := base.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create shared dir %s: %w", root, err)
	}
	return &Store{fs: afero.NewBasePathFs(base, root), root: root}, nil
}

// NewOS returns a store backed by the local disk.
func NewOS(root string) (*Store, error) {
	return New(afero.NewOsFs(), root)
}

// Root returns the shared directory path.
func (s *Store) Root() string { return s.root }

// List returns the regular files directly under the shared directory.
func (s *Store) List(ctx context.Context) ([]domain.FileEntry, error) {
	infos, err := afero.ReadDir(s.fs, string(filepath.Separator))
	if err != nil {
		return nil, fmt.Errorf("read shared dir: %w", err)
	}
	files := make([]domain.FileEntry, 0, len(infos))
	for _, info := range infos {
		if !info.Mode().IsRegular() {
			continue
		}
		files = append(files, domain.FileEntry{Name: info.Name(), Size: info.Size()})
	}
	return files, nil
}

// Names returns just the file names from List.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	files, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	return names, nil
}

// Save writes r to name, truncating any previous content.
func (s *Store) Save(ctx context.Context, name string, r io.Reader) (domain.StoredFile, error) {
	if err := ValidateName(name); err != nil {
		return domain.StoredFile{}, err
	}
	f, err := s.fs.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return domain.StoredFile{}, fmt.Errorf("create %s: %w", name, err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return domain.StoredFile{}, fmt.Errorf("write %s: %w", name, err)
	}
	return domain.StoredFile{Name: name, Path: s.path(name), Size: n}, nil
}

// Open returns a reader over the named file and its size.
func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, int64, error) {
	if err := ValidateName(name); err != nil {
		return nil, 0, err
	}
	info, err := s.fs.Stat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, fmt.Errorf("%s: %w", name, domain.ErrFileNotFound)
		}
		return nil, 0, fmt.Errorf("stat %s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		return nil, 0, fmt.Errorf("%s: %w", name, domain.ErrFileNotFound)
	}
	f, err := s.fs.Open(name)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", name, err)
	}
	return f, info.Size(), nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.root, name)
}

// ValidateName rejects names that are empty, special, or contain a path
// separator. Stored names are otherwise kept exactly as given.
func ValidateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%q: %w", name, domain.ErrInvalidFileName)
	case strings.ContainsAny(name, `/\`), strings.ContainsRune(name, 0):
		return fmt.Errorf("%q: %w", name, domain.ErrInvalidFileName)
	}
	return nil
}
