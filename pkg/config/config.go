// Package config loads optional depclose.toml configuration files.
//
// Configuration is entirely optional: every field has a working default and
// CLI flags override file values. A typical file:
//
//	[resolver]
//	link_dir = "node_modules"
//	store_marker = ".pnpm"
//	overlay_base = ".build/distro/npm"
//	repo_root = "/repo"
//
//	[serve]
//	addr = ":8080"
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/depclose/depclose/pkg/errors"
)

// FileName is the configuration file looked up in a workspace directory.
const FileName = "depclose.toml"

// Config is the root configuration structure.
type Config struct {
	Resolver ResolverConfig `toml:"resolver"`
	Serve    ServeConfig    `toml:"serve"`
}

// ResolverConfig configures the resolution pipeline.
type ResolverConfig struct {
	LinkDir     string `toml:"link_dir"`     // dependency link directory (default: node_modules)
	StoreMarker string `toml:"store_marker"` // virtual store directory (default: .pnpm)
	OverlayBase string `toml:"overlay_base"` // overlay base relative to repo root
	RepoRoot    string `toml:"repo_root"`    // repository root anchoring the overlay
	Bin         string `toml:"bin"`          // package manager executable override
}

// ServeConfig configures the HTTP API.
type ServeConfig struct {
	Addr string `toml:"addr"` // listen address (default: :8080)
}

// Load reads the configuration file at path.
// A missing or malformed file is an error; use [Discover] for optional lookup.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeNotFound, "config file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	return &cfg, nil
}

// Discover loads dir/depclose.toml when it exists and returns a zero Config
// otherwise. Only a present-but-malformed file is an error.
func Discover(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		return &Config{}, nil
	}
	return Load(path)
}
