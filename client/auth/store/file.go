package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/afs"
)

// FileStore persists the credential snapshot as JSON at an afs URL (a local path,
// file://, mem:// or any registered scheme). The whole snapshot is rewritten in
// place on every change.
type FileStore struct {
	*memoryStore
	fs  afs.Service
	URL string
}

type fileSnapshot struct {
	Values map[string]string `json:"values"`
}

// NewFileStore creates a Store persisted at URL, loading any existing snapshot.
func NewFileStore(ctx context.Context, URL string) (*FileStore, error) {
	ret := &FileStore{fs: afs.New(), URL: URL}
	memory, err := newPersistentStore(ctx, &filePersister{fs: ret.fs, URL: URL})
	if err != nil {
		return nil, fmt.Errorf("failed to load credential store %v: %w", URL, err)
	}
	ret.memoryStore = memory
	return ret, nil
}

type filePersister struct {
	fs  afs.Service
	URL string
}

func (p *filePersister) load(ctx context.Context) (map[string]string, error) {
	ok, err := p.fs.Exists(ctx, p.URL)
	if err != nil || !ok {
		return nil, err
	}
	data, err := p.fs.DownloadWithURL(ctx, p.URL)
	if err != nil {
		return nil, err
	}
	return decodeSnapshot(data)
}

func (p *filePersister) save(ctx context.Context, values map[string]string) error {
	data, err := encodeSnapshot(values)
	if err != nil {
		return err
	}
	return p.fs.Upload(ctx, p.URL, 0o600, bytes.NewReader(data))
}

func (p *filePersister) remove(ctx context.Context) error {
	ok, err := p.fs.Exists(ctx, p.URL)
	if err != nil || !ok {
		return err
	}
	return p.fs.Delete(ctx, p.URL)
}

func encodeSnapshot(values map[string]string) ([]byte, error) {
	return json.MarshalIndent(fileSnapshot{Values: values}, "", "  ")
}

func decodeSnapshot(data []byte) (map[string]string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var snap fileSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return snap.Values, nil
}
