package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// MockStorage keeps photos on the local filesystem and hands out URLs served
// by this process. For development and tests only.
type MockStorage struct {
	baseURL    string
	uploadsDir string
}

func NewMockStorage(baseURL, uploadsDir string) (*MockStorage, error) {
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory: %w", err)
	}
	return &MockStorage{baseURL: baseURL, uploadsDir: uploadsDir}, nil
}

func (m *MockStorage) GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error) {
	return fmt.Sprintf("%s/api/v1/photos/upload/%s", m.baseURL, encodeKey(key)), nil
}

func (m *MockStorage) GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	return fmt.Sprintf("%s/api/v1/photos/download/%s", m.baseURL, encodeKey(key)), nil
}

func (m *MockStorage) FileExists(ctx context.Context, key string) (bool, int64, error) {
	info, err := os.Stat(m.path(key))
	if os.IsNotExist(err) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, err
	}
	return true, info.Size(), nil
}

func (m *MockStorage) DeleteFile(ctx context.Context, key string) error {
	err := os.Remove(m.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (m *MockStorage) SaveFile(key string, reader io.Reader) error {
	path := m.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, reader)
	return err
}

func (m *MockStorage) ReadFile(key string) (io.ReadCloser, error) {
	return os.Open(m.path(key))
}

func (m *MockStorage) path(key string) string {
	return filepath.Join(m.uploadsDir, filepath.FromSlash(key))
}

// encodeKey makes a storage key safe for use as a URL path segment.
func encodeKey(key string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(key))
}

// DecodeKey reverses encodeKey; used by the mock upload/download handlers.
func DecodeKey(encoded string) (string, error) {
	b, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("invalid storage key: %w", err)
	}
	return string(b), nil
}
