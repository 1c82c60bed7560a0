package media

import (
	"io"
	"sync"
)

// FakeStore keeps uploads in memory, for tests.
type FakeStore struct {
	mu    sync.Mutex
	Files map[string][]byte
}

func NewFakeStore() *FakeStore {
	return &FakeStore{Files: map[string][]byte{}}
}

func (f *FakeStore) Save(fileName string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Files[fileName] = data
	return fileName, nil
}

func (f *FakeStore) GetUrlFromKey(key string) string {
	return "https://fake.media.local/" + key
}

func (f *FakeStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.Files, key)
	return nil
}
