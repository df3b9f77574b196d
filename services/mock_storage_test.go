package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
)

// mockStorage is an in-memory StorageProvider for tests
type mockStorage struct {
	blobs        map[string][]byte
	contentTypes map[string]string
	failUpload   bool
}

func newMockStorage() *mockStorage {
	return &mockStorage{
		blobs:        make(map[string][]byte),
		contentTypes: make(map[string]string),
	}
}

func (m *mockStorage) IsConfigured() bool {
	return true
}

func (m *mockStorage) Upload(ctx context.Context, file *multipart.FileHeader, key string) (*StorageResult, error) {
	if m.failUpload {
		return nil, fmt.Errorf("upload failed")
	}
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	contentType := file.Header.Get("Content-Type")
	m.blobs[key] = content
	m.contentTypes[key] = contentType
	return &StorageResult{Key: key, FileSize: int64(len(content)), MimeType: contentType}, nil
}

func (m *mockStorage) UploadReader(ctx context.Context, reader io.Reader, key string, contentType string, size int64) (*StorageResult, error) {
	if m.failUpload {
		return nil, fmt.Errorf("upload failed")
	}
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	m.blobs[key] = content
	m.contentTypes[key] = contentType
	return &StorageResult{Key: key, FileSize: int64(len(content)), MimeType: contentType}, nil
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	delete(m.blobs, key)
	delete(m.contentTypes, key)
	return nil
}

func (m *mockStorage) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	content, ok := m.blobs[key]
	if !ok {
		return nil, "", fmt.Errorf("blob %s not found", key)
	}
	return io.NopCloser(bytes.NewReader(content)), m.contentTypes[key], nil
}
