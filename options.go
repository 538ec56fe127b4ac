package sprenza

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/DevendraPaulmerchants/Sprenza/client"
	"github.com/DevendraPaulmerchants/Sprenza/client/auth"
	"github.com/DevendraPaulmerchants/Sprenza/client/auth/store"
	"github.com/DevendraPaulmerchants/Sprenza/client/auth/transport"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreSecure = "secure"
)

// Options defines options for configuring the attendance API services.
type Options struct {
	BaseURL     string        `yaml:"baseURL" json:"baseURL"`
	Timeout     time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	RefreshPath string        `yaml:"refreshPath,omitempty" json:"refreshPath,omitempty"`
	Store       StoreOptions  `yaml:"store,omitempty" json:"store,omitempty"`

	// Authenticator verifies the user before a saved session is restored.
	Authenticator auth.Authenticator `yaml:"-" json:"-"`
	// Observers are told about forced logouts.
	Observers []transport.SessionObserver `yaml:"-" json:"-"`
	// Registerer enables prometheus metrics when set.
	Registerer prometheus.Registerer `yaml:"-" json:"-"`
	Logger     *slog.Logger          `yaml:"-" json:"-"`
}

// StoreOptions defines the credential store.
type StoreOptions struct {
	Kind string `yaml:"kind,omitempty" json:"kind,omitempty"`
	URL  string `yaml:"url,omitempty" json:"url,omitempty"`
	Key  string `yaml:"key,omitempty" json:"key,omitempty"`
}

// Init sets defaults
func (o *Options) Init() {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.RefreshPath == "" {
		o.RefreshPath = client.DefaultRefreshPath
	}
	if o.Store.Kind == "" {
		o.Store.Kind = StoreSecure
	}
	if o.Store.URL == "" {
		o.Store.URL = defaultStoreURL(o.Store.Kind)
	}
	if o.Store.Key == "" {
		o.Store.Key = store.DefaultEncryptionKey
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

func (o *Options) Validate() error {
	if o.BaseURL == "" {
		return fmt.Errorf("base URL was empty")
	}
	switch o.Store.Kind {
	case StoreMemory, StoreFile, StoreSecure:
	default:
		return fmt.Errorf("unsupported store kind: %v", o.Store.Kind)
	}
	return nil
}

// NewStore creates the configured credential store.
func (o *Options) NewStore(ctx context.Context) (store.Store, error) {
	switch o.Store.Kind {
	case StoreFile:
		return store.NewFileStore(ctx, o.Store.URL)
	case StoreSecure:
		return store.NewSecureStore(ctx, o.Store.URL, o.Store.Key)
	default:
		return store.NewMemoryStore(), nil
	}
}

func defaultStoreURL(kind string) string {
	dir, _ := os.UserConfigDir()
	if dir == "" {
		dir = "."
	}
	name := "credentials.json"
	if kind == StoreSecure {
		name = "credentials.enc"
	}
	return filepath.Join(dir, "sprenza", name)
}
