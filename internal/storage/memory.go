package storage

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// MemoryPhotoStore keeps photos in process; used when no bucket is configured.
type MemoryPhotoStore struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]memoryObject
}

type memoryObject struct {
	contentType string
	data        []byte
}

var _ PhotoStore = (*MemoryPhotoStore)(nil)

func NewMemoryPhotoStore(baseURL string) *MemoryPhotoStore {
	return &MemoryPhotoStore{baseURL: baseURL, objects: map[string]memoryObject{}}
}

func (m *MemoryPhotoStore) Put(_ context.Context, key string, body io.Reader, contentType string) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", err
	}

	m.mu.Lock()
	m.objects[key] = memoryObject{contentType: contentType, data: buf.Bytes()}
	m.mu.Unlock()

	return m.baseURL + "/" + key, nil
}

// Get returns a stored object; ok is false when the key is unknown.
func (m *MemoryPhotoStore) Get(key string) (data []byte, contentType string, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[key]
	return obj.data, obj.contentType, ok
}
