// Package http provides HTTP handlers for file upload and download.
package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/accounts/internal/auth/http"
	apperrors "github.com/allisson/accounts/internal/errors"
	"github.com/allisson/accounts/internal/file/http/dto"
	"github.com/allisson/accounts/internal/file/usecase"
	"github.com/allisson/accounts/internal/httputil"
)

// FileHandler handles file-related HTTP requests
type FileHandler struct {
	fileUseCase usecase.UseCase
	logger      *slog.Logger
}

// NewFileHandler creates a new FileHandler
func NewFileHandler(fileUseCase usecase.UseCase, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		fileUseCase: fileUseCase,
		logger:      logger,
	}
}

// UploadFileHandler stores a multipart file upload.
// POST /v1/files/upload (auth required)
// Returns 201 Created with the stored file metadata.
func (h *FileHandler) UploadFileHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httputil.HandleValidationErrorGin(
			c, errors.New("a file is required in the 'file' form field"), h.logger,
		)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			h.logger.Warn("failed to close upload stream", "error", closeErr)
		}
	}()

	file, err := h.fileUseCase.UploadFile(c.Request.Context(), usecase.UploadFileInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     src,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.NewUploadFileResponse(file, user.Username))
}

// DownloadFileHandler streams a stored file. The default disposition is
// inline; ?download=true forces an attachment.
// GET /v1/files/:filename
func (h *FileHandler) DownloadFileHandler(c *gin.Context) {
	key := c.Param("filename")
	download, _ := strconv.ParseBool(c.DefaultQuery("download", "false"))

	reader, file, err := h.fileUseCase.DownloadFile(c.Request.Context(), key)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil {
			h.logger.Warn("failed to close download stream", "error", closeErr)
		}
	}()

	disposition := "inline"
	if download {
		disposition = "attachment"
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	headers := map[string]string{
		"Content-Disposition": fmt.Sprintf(
			"%s; filename*=UTF-8''%s", disposition, url.PathEscape(file.Filename),
		),
	}
	c.DataFromReader(http.StatusOK, file.Size, contentType, reader, headers)
}

// ListFilesHandler lists stored files.
// GET /v1/files (auth required)
func (h *FileHandler) ListFilesHandler(c *gin.Context) {
	files, err := h.fileUseCase.ListFiles(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToListFilesResponse(files))
}

// DeleteFileHandler removes a stored file by key.
// DELETE /v1/files/:filename (auth required)
func (h *FileHandler) DeleteFileHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	key := c.Param("filename")
	if err := h.fileUseCase.DeleteFile(c.Request.Context(), key); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteFileResponse{
		Message:   "File deleted successfully",
		Filename:  key,
		DeletedBy: user.Username,
	})
}
