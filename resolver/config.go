package resolver

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/wippyai/clrmeta/errors"
)

// DefaultCacheSize is the number of resolved assemblies kept when
// Config.CacheSize is zero.
const DefaultCacheSize = 256

// Config describes where a Resolver looks for assemblies.
//
//	runtime_name: Microsoft.NETCore.App
//	runtime_version: 8.0.0
//	search_directories:
//	  - ./bin
//	cache_size: 128
type Config struct {
	// RuntimeDirectory is probed for references with a public key token.
	// When empty it is selected from RuntimeBase, RuntimeName and
	// RuntimeVersion.
	RuntimeDirectory string `yaml:"runtime_directory"`
	// RuntimeBase is the shared framework root; empty means
	// FindRuntimeBaseDirectory.
	RuntimeBase       string   `yaml:"runtime_base"`
	RuntimeName       string   `yaml:"runtime_name"`
	RuntimeVersion    string   `yaml:"runtime_version"`
	SearchDirectories []string `yaml:"search_directories"`
	CacheSize         int      `yaml:"cache_size"`
}

// LoadConfig decodes a YAML configuration. Unknown keys are rejected.
func LoadConfig(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.SetStrict(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "decode resolver configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfigFile decodes the YAML configuration at path.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, fmt.Sprintf("open %s", path))
	}
	defer f.Close()
	return LoadConfig(f)
}

// Validate checks the configuration for contradictory settings.
func (c *Config) Validate() error {
	if c.CacheSize < 0 {
		return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("cache_size %d is negative", c.CacheSize))
	}
	if (c.RuntimeName == "") != (c.RuntimeVersion == "") {
		return errors.InvalidInput(errors.PhaseConfig, "runtime_name and runtime_version must be set together")
	}
	return nil
}

// ResolveRuntimeDirectory returns the runtime directory the configuration
// selects, or "" when none is configured.
func (c *Config) ResolveRuntimeDirectory() string {
	if c.RuntimeDirectory != "" {
		return c.RuntimeDirectory
	}
	if c.RuntimeName == "" || c.RuntimeVersion == "" {
		return ""
	}
	base := c.RuntimeBase
	if base == "" {
		base = FindRuntimeBaseDirectory()
	}
	if base == "" {
		return ""
	}
	return SelectRuntimeDirectory(base, c.RuntimeName, c.RuntimeVersion)
}

func (c *Config) cacheSize() int {
	if c.CacheSize > 0 {
		return c.CacheSize
	}
	return DefaultCacheSize
}
