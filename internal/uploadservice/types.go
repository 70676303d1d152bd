package uploadservice

import (
	"errors"
	"time"
)

var (
	ErrEmptyFile       = errors.New("uploaded file is empty")
	ErrUnsupportedType = errors.New("uploaded file type is not supported")
	ErrTooLarge        = errors.New("uploaded file is too large")
	ErrInvalidPath     = errors.New("invalid upload path")
)

// AllowedTypes are the image formats accepted as cover images.
var AllowedTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

// Store writes uploaded files into one directory that is served under urlPrefix.
type Store struct {
	dir       string
	urlPrefix string
	maxBytes  int64
	now       func() time.Time
}

// Upload describes a stored file. Path is what gets persisted on the blog.
type Upload struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	OriginalName string `json:"original_name"`
	ContentType  string `json:"content_type"`
	Size         int64  `json:"size"`
}
