package domain

import "errors"

var (
	// ErrContainerNotFound is returned when no container has the requested name.
	ErrContainerNotFound = errors.New("container not found")

	// ErrFileNotFound is returned when the shared directory has no such file.
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidFileName is returned for names that would escape the shared
	// directory or do not name a file at all.
	ErrInvalidFileName = errors.New("invalid file name")
)
