package domain

import (
	"fmt"
	"strings"

	"github.com/allisson/accounts/internal/errors"
)

// File holds the metadata of a stored file. Key is the storage key,
// Filename the name the file was uploaded with.
type File struct {
	Key         string
	Filename    string
	Size        int64
	ContentType string
}

// Domain errors for file operations.
var (
	ErrFileNotFound           = fmt.Errorf("file not found: %w", errors.ErrNotFound)
	ErrFileTooLarge           = fmt.Errorf("file too large: %w", errors.ErrInvalidInput)
	ErrUnsupportedContentType = fmt.Errorf("unsupported content type: %w", errors.ErrInvalidInput)
)

// FilenameFromKey strips the unique prefix from a storage key, returning the
// filename the file was uploaded with. Keys without a prefix are returned
// unchanged.
func FilenameFromKey(key string) string {
	if _, name, ok := strings.Cut(key, "_"); ok {
		return name
	}
	return key
}

