package ftp

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// MockClient is an in-memory Client for tests.
type MockClient struct {
	mu    sync.Mutex
	files map[string][]byte

	UploadErr   error
	DownloadErr error
}

func NewMockClient() *MockClient {
	return &MockClient{files: map[string][]byte{}}
}

func (m *MockClient) Upload(remotePath string, data io.Reader) error {
	if m.UploadErr != nil {
		return m.UploadErr
	}
	b, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[remotePath] = b
	return nil
}

func (m *MockClient) Download(remotePath string) (io.ReadCloser, error) {
	if m.DownloadErr != nil {
		return nil, m.DownloadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.files[remotePath]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", remotePath)
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *MockClient) Delete(remotePath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, remotePath)
	return nil
}

func (m *MockClient) Close() error { return nil }

// Stored returns the bytes uploaded at remotePath, if any.
func (m *MockClient) Stored(remotePath string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.files[remotePath]
	return b, ok
}
