package domain

// FileEntry describes a regular file in the shared directory.
type FileEntry struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// StoredFile is the outcome of writing an upload to the shared directory.
type StoredFile struct {
	Name string
	Path string
	Size int64
}
