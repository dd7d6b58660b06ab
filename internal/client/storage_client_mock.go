package client

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MockStorageClient implements StorageClient for tests without AWS
// credentials. It records uploaded and deleted keys and supports per-call
// overrides through the func fields.
type MockStorageClient struct {
	Bucket string

	mu           sync.Mutex
	UploadedKeys []string
	DeletedKeys  []string

	GenerateImageKeyFunc func(userID, fileName string) string
	UploadFileFunc       func(ctx context.Context, key string, file io.Reader, contentType string) (string, error)
	DeleteFileFunc       func(ctx context.Context, key string) error
	GetFileURLFunc       func(key string) string
}

// NewMockStorageClient creates a new mock storage client
func NewMockStorageClient() *MockStorageClient {
	return &MockStorageClient{Bucket: "test-bucket"}
}

// GenerateImageKey generates a deterministic-looking test key
func (m *MockStorageClient) GenerateImageKey(userID, fileName string) string {
	if m.GenerateImageKeyFunc != nil {
		return m.GenerateImageKeyFunc(userID, fileName)
	}
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("posts/%s/%s%s", userID, uuid.New().String(), ext)
}

// UploadFile records the uploaded key and returns a fake URL
func (m *MockStorageClient) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error) {
	if m.UploadFileFunc != nil {
		return m.UploadFileFunc(ctx, key, file, contentType)
	}
	m.mu.Lock()
	m.UploadedKeys = append(m.UploadedKeys, key)
	m.mu.Unlock()
	return m.GetFileURL(key), nil
}

// DeleteFile records the deleted key
func (m *MockStorageClient) DeleteFile(ctx context.Context, key string) error {
	if m.DeleteFileFunc != nil {
		return m.DeleteFileFunc(ctx, key)
	}
	m.mu.Lock()
	m.DeletedKeys = append(m.DeletedKeys, key)
	m.mu.Unlock()
	return nil
}

// GetFileURL returns a fake public URL
func (m *MockStorageClient) GetFileURL(key string) string {
	if m.GetFileURLFunc != nil {
		return m.GetFileURLFunc(key)
	}
	return fmt.Sprintf("https://%s.s3.test/%s", m.Bucket, key)
}
