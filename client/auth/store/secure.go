package store

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/scy"
	_ "github.com/viant/scy/kms/blowfish"
)

// DefaultEncryptionKey uses the blowfish kms with its built-in key.
const DefaultEncryptionKey = "blowfish://default"

// SecureStore is a FileStore variant whose snapshot is encrypted with scy.
type SecureStore struct {
	*memoryStore
	URL string
}

// NewSecureStore creates an encrypted Store at URL. key is a scy kms key URL,
// DefaultEncryptionKey when empty.
func NewSecureStore(ctx context.Context, URL, key string) (*SecureStore, error) {
	if key == "" {
		key = DefaultEncryptionKey
	}
	p := &securePersister{fs: afs.New(), secrets: scy.New(), URL: URL, key: key}
	memory, err := newPersistentStore(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to load secure credential store %v: %w", URL, err)
	}
	return &SecureStore{memoryStore: memory, URL: URL}, nil
}

type securePersister struct {
	fs      afs.Service
	secrets *scy.Service
	URL     string
	key     string
}

func (p *securePersister) resource() *scy.Resource {
	return scy.NewResource(nil, p.URL, p.key)
}

func (p *securePersister) load(ctx context.Context) (map[string]string, error) {
	ok, err := p.fs.Exists(ctx, p.URL)
	if err != nil || !ok {
		return nil, err
	}
	secret, err := p.secrets.Load(ctx, p.resource())
	if err != nil {
		return nil, err
	}
	return decodeSnapshot([]byte(secret.String()))
}

func (p *securePersister) save(ctx context.Context, values map[string]string) error {
	data, err := encodeSnapshot(values)
	if err != nil {
		return err
	}
	return p.secrets.Store(ctx, scy.NewSecret(string(data), p.resource()))
}

func (p *securePersister) remove(ctx context.Context) error {
	ok, err := p.fs.Exists(ctx, p.URL)
	if err != nil || !ok {
		return err
	}
	return p.fs.Delete(ctx, p.URL)
}
