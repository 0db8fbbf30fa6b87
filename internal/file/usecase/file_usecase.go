package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/allisson/accounts/internal/errors"
	"github.com/allisson/accounts/internal/file/domain"
	"github.com/allisson/accounts/internal/file/storage"
)

// UploadFileInput holds the data needed to store an uploaded file.
type UploadFileInput struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// UseCase defines the business logic interface for file operations.
type UseCase interface {
	// UploadFile validates and stores an uploaded file, returning its metadata.
	UploadFile(ctx context.Context, input UploadFileInput) (*domain.File, error)
	// DownloadFile returns a reader for the stored file together with its
	// metadata. The caller must close the reader.
	DownloadFile(ctx context.Context, key string) (io.ReadCloser, *domain.File, error)
	// ListFiles returns the metadata of every stored file.
	ListFiles(ctx context.Context) ([]*domain.File, error)
	// DeleteFile removes a stored file by key.
	DeleteFile(ctx context.Context, key string) error
}

// FileUseCase implements UseCase over a FileStorage.
type FileUseCase struct {
	storage             storage.FileStorage
	maxUploadSize       int64
	allowedContentTypes map[string]struct{}
}

// NewFileUseCase creates a file use case. allowedContentTypes is a
// comma-separated list of accepted content types.
func NewFileUseCase(
	fileStorage storage.FileStorage,
	maxUploadSize int64,
	allowedContentTypes string,
) *FileUseCase {
	allowed := make(map[string]struct{})
	for _, contentType := range strings.Split(allowedContentTypes, ",") {
		contentType = strings.ToLower(strings.TrimSpace(contentType))
		if contentType != "" {
			allowed[contentType] = struct{}{}
		}
	}

	return &FileUseCase{
		storage:             fileStorage,
		maxUploadSize:       maxUploadSize,
		allowedContentTypes: allowed,
	}
}

func (uc *FileUseCase) UploadFile(
	ctx context.Context,
	input UploadFileInput,
) (*domain.File, error) {
	contentType := strings.ToLower(strings.TrimSpace(input.ContentType))
	if _, ok := uc.allowedContentTypes[contentType]; !ok {
		return nil, fmt.Errorf("%q: %w", input.ContentType, domain.ErrUnsupportedContentType)
	}

	filename := filepath.Base(strings.TrimSpace(input.Filename))
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		return nil, fmt.Errorf("missing filename: %w", apperrors.ErrInvalidInput)
	}

	// Read one byte past the limit to detect oversized uploads without
	// buffering the whole stream.
	data, err := io.ReadAll(io.LimitReader(input.Content, uc.maxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > uc.maxUploadSize {
		return nil, fmt.Errorf(
			"maximum size is %d bytes: %w", uc.maxUploadSize, domain.ErrFileTooLarge,
		)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate file key: %w", err)
	}
	key := id.String() + "_" + filename

	if err := uc.storage.Upload(ctx, key, contentType, data); err != nil {
		return nil, err
	}

	return &domain.File{
		Key:         key,
		Filename:    filename,
		Size:        int64(len(data)),
		ContentType: contentType,
	}, nil
}

func (uc *FileUseCase) DownloadFile(
	ctx context.Context,
	key string,
) (io.ReadCloser, *domain.File, error) {
	if err := validateKey(key); err != nil {
		return nil, nil, err
	}
	return uc.storage.Download(ctx, key)
}

func (uc *FileUseCase) ListFiles(ctx context.Context) ([]*domain.File, error) {
	return uc.storage.List(ctx)
}

func (uc *FileUseCase) DeleteFile(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	return uc.storage.Delete(ctx, key)
}

// validateKey rejects keys that could escape the storage root.
func validateKey(key string) error {
	if key == "" || strings.Contains(key, "/") || strings.Contains(key, "\\") ||
		strings.Contains(key, "..") {
		return domain.ErrFileNotFound
	}
	return nil
}
