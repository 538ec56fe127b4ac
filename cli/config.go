package cli

import (
	"context"
	"fmt"

	sprenza "github.com/DevendraPaulmerchants/Sprenza"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Config is the CLI configuration, loaded from yaml and overridden by flags.
type Config struct {
	sprenza.Options `yaml:",inline"`
	Log             LogConfig `yaml:"log,omitempty"`
}

type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
	File   string `yaml:"file,omitempty"`
}

// LoadConfig reads a yaml config from URL; any afs supported location works.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	ret := &Config{}
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to parse config %v: %w", URL, err)
	}
	return ret, nil
}

// Merge applies non empty flag values over the config.
func (c *Config) Merge(options *Options) {
	if options.URL != "" {
		c.BaseURL = options.URL
	}
	if options.Timeout > 0 {
		c.Timeout = options.Timeout
	}
	if options.RefreshPath != "" {
		c.RefreshPath = options.RefreshPath
	}
	if options.Store != "" {
		c.Store.Kind = options.Store
	}
	if options.StoreURL != "" {
		c.Store.URL = options.StoreURL
	}
	if options.Key != "" {
		c.Store.Key = options.Key
	}
	if options.LogLevel != "" {
		c.Log.Level = options.LogLevel
	}
	if options.LogFormat != "" {
		c.Log.Format = options.LogFormat
	}
	if options.LogFile != "" {
		c.Log.File = options.LogFile
	}
}

// Init sets defaults
func (c *Config) Init() {
	c.Options.Init()
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
}
