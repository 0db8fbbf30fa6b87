// Package dto contains data transfer objects for file HTTP payloads.
package dto

import (
	"github.com/allisson/accounts/internal/file/domain"
)

// UploadFileResponse is returned after a successful upload.
type UploadFileResponse struct {
	Message     string `json:"message"`
	Filename    string `json:"filename"`
	SavedAs     string `json:"saved_as"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	URL         string `json:"url"`
	UploadedBy  string `json:"uploaded_by"`
}

// NewUploadFileResponse converts stored file metadata to an upload response.
func NewUploadFileResponse(file *domain.File, uploadedBy string) UploadFileResponse {
	return UploadFileResponse{
		Message:     "File uploaded successfully",
		Filename:    file.Filename,
		SavedAs:     file.Key,
		Size:        file.Size,
		ContentType: file.ContentType,
		URL:         "/api/v1/files/" + file.Key,
		UploadedBy:  uploadedBy,
	}
}

// FileResponse describes one stored file in a listing.
type FileResponse struct {
	Filename  string `json:"filename"`
	Size      int64  `json:"size"`
	URL       string `json:"url"`
	MediaType string `json:"media_type"`
}

// ListFilesResponse wraps a file listing.
type ListFilesResponse struct {
	Files []FileResponse `json:"files"`
	Total int            `json:"total"`
}

// ToListFilesResponse converts stored file metadata to a listing response.
func ToListFilesResponse(files []*domain.File) ListFilesResponse {
	items := make([]FileResponse, 0, len(files))
	for _, file := range files {
		items = append(items, FileResponse{
			Filename:  file.Key,
			Size:      file.Size,
			URL:       "/api/v1/files/" + file.Key,
			MediaType: file.ContentType,
		})
	}
	return ListFilesResponse{Files: items, Total: len(items)}
}

// DeleteFileResponse is returned after a successful deletion.
type DeleteFileResponse struct {
	Message   string `json:"message"`
	Filename  string `json:"filename"`
	DeletedBy string `json:"deleted_by"`
}
