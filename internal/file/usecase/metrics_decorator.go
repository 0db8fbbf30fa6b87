package usecase

import (
	"context"
	"io"
	"time"

	"github.com/allisson/accounts/internal/file/domain"
	"github.com/allisson/accounts/internal/metrics"
)

// fileUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type fileUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewFileUseCaseWithMetrics wraps a file UseCase with metrics recording.
func NewFileUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &fileUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// UploadFile records metrics for file upload operations.
func (f *fileUseCaseWithMetrics) UploadFile(
	ctx context.Context,
	input UploadFileInput,
) (*domain.File, error) {
	start := time.Now()
	file, err := f.next.UploadFile(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	f.metrics.RecordOperation(ctx, "file", "upload", status)
	f.metrics.RecordDuration(ctx, "file", "upload", time.Since(start), status)

	return file, err
}

// DownloadFile records metrics for file download operations.
func (f *fileUseCaseWithMetrics) DownloadFile(
	ctx context.Context,
	key string,
) (io.ReadCloser, *domain.File, error) {
	start := time.Now()
	reader, file, err := f.next.DownloadFile(ctx, key)

	status := "success"
	if err != nil {
		status = "error"
	}

	f.metrics.RecordOperation(ctx, "file", "download", status)
	f.metrics.RecordDuration(ctx, "file", "download", time.Since(start), status)

	return reader, file, err
}

// ListFiles records metrics for file list operations.
func (f *fileUseCaseWithMetrics) ListFiles(ctx context.Context) ([]*domain.File, error) {
	start := time.Now()
	files, err := f.next.ListFiles(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	f.metrics.RecordOperation(ctx, "file", "list", status)
	f.metrics.RecordDuration(ctx, "file", "list", time.Since(start), status)

	return files, err
}

// DeleteFile records metrics for file deletion operations.
func (f *fileUseCaseWithMetrics) DeleteFile(ctx context.Context, key string) error {
	start := time.Now()
	err := f.next.DeleteFile(ctx, key)

	status := "success"
	if err != nil {
		status = "error"
	}

	f.metrics.RecordOperation(ctx, "file", "delete", status)
	f.metrics.RecordDuration(ctx, "file", "delete", time.Since(start), status)

	return err
}
