// Package config loads GlyphOS configuration and resolves the storage
// root. Resolution is explicit: the value is computed once and injected
// into the store/repository at construction, never looked up ambiently.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ForceFastMountEnv, when set to any non-empty value, selects the fast
// mount even if the directory does not exist yet. Used on hosts where
// the mount appears after boot.
const ForceFastMountEnv = "GLYPHOS_FORCE_FAST_MOUNT"

// Config is the top-level GlyphOS configuration.
type Config struct {
	// StoreRoot, when set, is used verbatim as the storage root and
	// short-circuits fast-mount/fallback resolution.
	StoreRoot string `yaml:"store_root"`

	// FastMount is the preferred storage location (typically an NVMe
	// mount), used when it exists.
	FastMount string `yaml:"fast_mount"`

	// FallbackDir is the local directory used when no override is set
	// and the fast mount is absent.
	FallbackDir string `yaml:"fallback_dir"`

	// IndexPath, when set, enables the SQLite catalog at that path.
	IndexPath string `yaml:"index_path"`

	// Dynamics holds default engine parameters; flags may override them
	// per invocation.
	Dynamics Dynamics `yaml:"dynamics"`
}

// Dynamics holds engine parameters.
type Dynamics struct {
	ActivationThreshold float64 `yaml:"activation_threshold"`
	DecayRate           float64 `yaml:"decay_rate"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		FastMount:   "/mnt/persistence",
		FallbackDir: "persistence",
		Dynamics: Dynamics{
			ActivationThreshold: 1.0,
			DecayRate:           0.1,
		},
	}
}

// Load reads a YAML config file over the defaults: fields absent from
// the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ResolveStoreRoot picks the storage root:
//
//  1. the explicit StoreRoot override, when set
//  2. the fast mount, when the directory exists or ForceFastMountEnv is set
//  3. the local fallback directory
func (c Config) ResolveStoreRoot() string {
	if c.StoreRoot != "" {
		return c.StoreRoot
	}
	if c.FastMount != "" {
		if _, err := os.Stat(c.FastMount); err == nil || os.Getenv(ForceFastMountEnv) != "" {
			return c.FastMount
		}
	}
	return c.FallbackDir
}
