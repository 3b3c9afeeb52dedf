package handler

import (
	"mime/multipart"

	"fad/internal/usecase"
	"fad/pkg/errors"
)

// openUpload turns a multipart part into a use case file input. The caller
// closes the returned file.
func openUpload(header *multipart.FileHeader) (usecase.FileInput, multipart.File, error) {
	src, err := header.Open()
	if err != nil {
		return usecase.FileInput{}, nil, errors.BadRequest("Failed to read uploaded file", err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return usecase.FileInput{
		Name:        header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Content:     src,
	}, src, nil
}
