package storage

import (
	"context"
	"fmt"
	"io"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/gcerrors"

	"github.com/allisson/accounts/internal/file/domain"
)

// FileStorage abstracts the blob store backing file uploads.
type FileStorage interface {
	// Upload writes data under key with the given content type.
	Upload(ctx context.Context, key, contentType string, data []byte) error
	// Download returns a reader for the stored blob together with its metadata.
	// The caller must close the reader.
	Download(ctx context.Context, key string) (io.ReadCloser, *domain.File, error)
	// List returns the metadata of every stored blob.
	List(ctx context.Context) ([]*domain.File, error)
	// Delete removes the blob stored under key.
	Delete(ctx context.Context, key string) error
	// Close releases the underlying bucket.
	Close() error
}

// blobFileStorage implements FileStorage using gocloud.dev/blob with the
// fileblob driver.
type blobFileStorage struct {
	bucket *blob.Bucket
}

// NewBlobFileStorage opens a fileblob bucket rooted at dir, creating the
// directory if needed.
func NewBlobFileStorage(dir string) (FileStorage, error) {
	bucket, err := fileblob.OpenBucket(dir, &fileblob.Options{CreateDir: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open file bucket: %w", err)
	}
	return &blobFileStorage{bucket: bucket}, nil
}

func (s *blobFileStorage) Upload(ctx context.Context, key, contentType string, data []byte) error {
	opts := &blob.WriterOptions{ContentType: contentType}
	if err := s.bucket.WriteAll(ctx, key, data, opts); err != nil {
		return fmt.Errorf("failed to write blob: %w", err)
	}
	return nil
}

func (s *blobFileStorage) Download(
	ctx context.Context,
	key string,
) (io.ReadCloser, *domain.File, error) {
	reader, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, nil, domain.ErrFileNotFound
		}
		return nil, nil, fmt.Errorf("failed to open blob: %w", err)
	}

	file := &domain.File{
		Key:         key,
		Filename:    domain.FilenameFromKey(key),
		Size:        reader.Size(),
		ContentType: reader.ContentType(),
	}
	return reader, file, nil
}

func (s *blobFileStorage) List(ctx context.Context) ([]*domain.File, error) {
	var files []*domain.File

	iter := s.bucket.List(&blob.ListOptions{})
	for {
		obj, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list blobs: %w", err)
		}

		attrs, err := s.bucket.Attributes(ctx, obj.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to read blob attributes: %w", err)
		}

		files = append(files, &domain.File{
			Key:         obj.Key,
			Filename:    domain.FilenameFromKey(obj.Key),
			Size:        obj.Size,
			ContentType: attrs.ContentType,
		})
	}

	return files, nil
}

func (s *blobFileStorage) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return domain.ErrFileNotFound
		}
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}

func (s *blobFileStorage) Close() error {
	return s.bucket.Close()
}
