package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalDisk writes uploads under a base directory and serves them from
// a URL prefix (typically "/uploads").
type LocalDisk struct {
	baseDir   string
	urlPrefix string
}

func NewLocalDisk(baseDir, urlPrefix string) *LocalDisk {
	return &LocalDisk{baseDir: baseDir, urlPrefix: urlPrefix}
}

func (l *LocalDisk) Put(ctx context.Context, name string, contentType string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dest := filepath.Join(l.baseDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("write upload: %w", err)
	}
	return l.urlPrefix + "/" + name, nil
}
