// Package storage keeps uploaded photos on disk for the lifetime of one
// recognition request. Files are transient: the orchestrator removes
// them on every path, success or failure.
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// UploadStore writes request-scoped files under a single directory.
type UploadStore struct {
	dir    string
	logger *zap.Logger
}

// NewUploadStore creates the upload directory if needed.
func NewUploadStore(dir string, logger *zap.Logger) (*UploadStore, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &UploadStore{dir: dir, logger: logger}, nil
}

// Store writes the upload to a uniquely named file and returns its path.
func (s *UploadStore) Store(r io.Reader) (string, error) {
	name, err := randomName()
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close upload file: %w", err)
	}

	return path, nil
}

// Read returns the file contents.
func (s *UploadStore) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read upload file: %w", err)
	}
	return data, nil
}

// Remove deletes the file. A missing file is not an error: cleanup is
// best-effort and may race with itself.
func (s *UploadStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("Failed to remove transient upload", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("remove upload file: %w", err)
	}
	return nil
}

func randomName() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate upload name: %w", err)
	}
	return "upload_" + hex.EncodeToString(b[:]), nil
}
