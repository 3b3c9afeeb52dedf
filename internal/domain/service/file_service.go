package service

import (
	"context"
	"io"
)

type FileUploadService interface {
	// UploadFile stores file under folder with a generated object name.
	UploadFile(ctx context.Context, file io.Reader, fileType, folder string, isPublic bool) (string, error)
	// UploadObject stores file under the exact object name.
	UploadObject(ctx context.Context, file io.Reader, fileType, objectName string, isPublic bool) (string, error)
	PublicURL(objectName string) string
	DeleteFile(ctx context.Context, fileURL string) error
	Close() error
}
