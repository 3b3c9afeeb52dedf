package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"fad/internal/domain/entity"
	"fad/internal/domain/repository"
	"fad/internal/domain/service"
	"fad/pkg/errors"
	"fad/pkg/logger"
)

// FileInput is an uploaded file as received from the client.
type FileInput struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

var allowedFileTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"image/gif":       true,
	"application/pdf": true,
}

// FileUseCase stores uploads in object storage and records their metadata.
type FileUseCase struct {
	fileService  service.FileUploadService
	metadataRepo repository.FileMetadataRepository
	maxFileSize  int64
}

func NewFileUseCase(fileService service.FileUploadService, metadataRepo repository.FileMetadataRepository, maxFileSize int64) *FileUseCase {
	if maxFileSize <= 0 {
		maxFileSize = 5 * 1024 * 1024
	}
	return &FileUseCase{
		fileService:  fileService,
		metadataRepo: metadataRepo,
		maxFileSize:  maxFileSize,
	}
}

func (uc *FileUseCase) validate(file FileInput) error {
	if file.Content == nil || strings.TrimSpace(file.Name) == "" {
		return errors.BadRequest("Missing or invalid file", nil)
	}
	if file.Size > uc.maxFileSize {
		return errors.BadRequest(fmt.Sprintf("File size exceeds maximum allowed (%dMB)", uc.maxFileSize/(1024*1024)), nil)
	}
	if !allowedFileTypes[file.ContentType] {
		return errors.BadRequest("File type not supported", nil)
	}
	return nil
}

// Store uploads file as objectName and records who uploaded it for which
// entity. An empty objectName lets storage pick one under folder.
func (uc *FileUseCase) Store(ctx context.Context, session *entity.Session, file FileInput, entityType, entityID, folder, objectName string) (*entity.FileMetadata, error) {
	if err := uc.validate(file); err != nil {
		return nil, err
	}

	var (
		url string
		err error
	)
	if objectName != "" {
		url, err = uc.fileService.UploadObject(ctx, file.Content, file.ContentType, objectName, true)
	} else {
		url, err = uc.fileService.UploadFile(ctx, file.Content, file.ContentType, folder, true)
		objectName = objectNameFromURL(url)
	}
	if err != nil {
		return nil, errors.Internal("Failed to upload file", err)
	}

	metadata := &entity.FileMetadata{
		ID:         uuid.New().String(),
		URL:        url,
		ObjectName: objectName,
		EntityType: entityType,
		EntityID:   entityID,
		UploadedBy: session.ActorID(),
		Filename:   path.Base(file.Name),
		FileType:   file.ContentType,
		FileSize:   file.Size,
		IsPublic:   true,
		CreatedAt:  timeNow(),
	}

	if err := uc.metadataRepo.Create(ctx, metadata); err != nil {
		logger.LogSideEffectError("file_metadata", metadata.ID, err)
	}

	return metadata, nil
}

// Discard removes an upload whose owning write failed.
func (uc *FileUseCase) Discard(ctx context.Context, metadata *entity.FileMetadata) {
	if metadata == nil {
		return
	}
	if err := uc.fileService.DeleteFile(ctx, metadata.URL); err != nil {
		logger.LogSideEffectError("discard_file", metadata.ObjectName, err)
	}
	if err := uc.metadataRepo.Delete(ctx, metadata.ID); err != nil {
		logger.LogSideEffectError("discard_file_metadata", metadata.ID, err)
	}
}

func (uc *FileUseCase) ListFiles(ctx context.Context, entityType, entityID string) ([]*entity.FileMetadata, error) {
	files, err := uc.metadataRepo.GetByEntityID(ctx, entityType, entityID)
	if err != nil {
		logger.LogReadDegraded("files", err)
		return []*entity.FileMetadata{}, nil
	}
	return files, nil
}

func objectNameFromURL(url string) string {
	for _, prefix := range []string{"https://storage.googleapis.com/", "gs://"} {
		if strings.HasPrefix(url, prefix) {
			rest := strings.TrimPrefix(url, prefix)
			if i := strings.Index(rest, "/"); i >= 0 {
				return rest[i+1:]
			}
		}
	}
	return url
}
