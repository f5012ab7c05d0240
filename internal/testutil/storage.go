package testutil

import (
	"context"
	"io"
	"strings"
	"sync"
)

// FakeStorage is an in-memory media.Storage used in place of S3. Uploaded
// objects are kept by key so tests can assert on cleanup behavior.
type FakeStorage struct {
	mu      sync.Mutex
	baseURL string
	objects map[string][]byte

	// FailNext makes the next Upload return an error, then resets.
	FailNext bool
}

func NewFakeStorage(baseURL string) *FakeStorage {
	return &FakeStorage{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		objects: make(map[string][]byte),
	}
}

func (f *FakeStorage) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailNext {
		f.FailNext = false
		return "", io.ErrUnexpectedEOF
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.objects[key] = data
	return f.baseURL + "/" + key, nil
}

func (f *FakeStorage) Delete(ctx context.Context, location string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := strings.TrimPrefix(location, f.baseURL+"/")
	delete(f.objects, key)
	return nil
}

// Has reports whether an object exists for the given key or public URL.
func (f *FakeStorage) Has(location string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := strings.TrimPrefix(location, f.baseURL+"/")
	_, ok := f.objects[key]
	return ok
}

// Count returns the number of stored objects.
func (f *FakeStorage) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}
