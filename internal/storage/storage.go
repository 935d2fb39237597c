package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Storage persists uploaded files and returns a public path for them.
type Storage interface {
	Put(ctx context.Context, name string, contentType string, r io.Reader) (string, error)
}

// Kind buckets an upload by its sniffed content type; each kind carries
// its own size cap.
type Kind string

const (
	KindImage    Kind = "image"
	KindDocument Kind = "document"
	KindVideo    Kind = "video"
)

var allowedTypes = map[string]Kind{
	"image/jpeg":       KindImage,
	"image/png":        KindImage,
	"image/webp":       KindImage,
	"application/pdf":  KindDocument,
	"application/msword": KindDocument,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": KindDocument,
	"video/mp4": KindVideo,
}

// KindFor maps a content type to its bucket, or an error when the type
// is not on the allow-list.
func KindFor(contentType string) (Kind, error) {
	// Strip any parameters ("; charset=...") before the lookup.
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	k, ok := allowedTypes[contentType]
	if !ok {
		return "", fmt.Errorf("unsupported file type %q", contentType)
	}
	return k, nil
}

// ObjectName builds a collision-free storage name keeping the original
// extension for content-type inference by static file servers.
func ObjectName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%s/%s%s", time.Now().UTC().Format("2006/01"), uuid.New().String(), ext)
}
