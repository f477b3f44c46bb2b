package request

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// FileUpload is an in-memory copy of a multipart file field.
type FileUpload struct {
	Filename    string
	ContentType string
	Content     []byte
}

// File reads the named multipart file field into memory.
// It returns (nil, nil) when the field is absent, since uploads are optional
// on every form in this API.
func File(c *gin.Context, field string) (*FileUpload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}

	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	return &FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}
