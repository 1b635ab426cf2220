package resolver

import (
	"context"
	"path/filepath"
	"slices"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/wippyai/clrmeta/errors"
	"github.com/wippyai/clrmeta/metadata"
)

// Assembly is a loaded assembly image.
type Assembly interface {
	FullName() string
}

// Loader reads the assembly image at path. Reading PE files is outside
// this package.
type Loader interface {
	Load(path string) (Assembly, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(path string) (Assembly, error)

func (f LoaderFunc) Load(path string) (Assembly, error) {
	return f(path)
}

// Resolver finds and loads the assemblies that references point to. It is
// safe for concurrent use.
type Resolver struct {
	loader     Loader
	runtimeDir string
	searchDirs []string
	cache      *lru.Cache
	group      singleflight.Group
}

// New creates a resolver from cfg. A nil cfg means no runtime directory,
// no search directories and the default cache size.
func New(cfg *Config, loader Loader) (*Resolver, error) {
	if loader == nil {
		return nil, errors.NilReference([]string{"Resolver"}, "loader")
	}
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cache, err := lru.New(cfg.cacheSize())
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "create assembly cache")
	}

	r := &Resolver{
		loader:     loader,
		runtimeDir: cfg.ResolveRuntimeDirectory(),
		searchDirs: slices.Clone(cfg.SearchDirectories),
		cache:      cache,
	}
	Logger().Debug("resolver created",
		zap.String("runtime_directory", r.runtimeDir),
		zap.Strings("search_directories", r.searchDirs))
	return r, nil
}

// RuntimeDirectory returns the directory probed for framework assemblies.
func (r *Resolver) RuntimeDirectory() string {
	return r.runtimeDir
}

// SearchDirectories returns a copy of the search directories, in probe order.
func (r *Resolver) SearchDirectories() []string {
	return slices.Clone(r.searchDirs)
}

// Probe returns the path of the file ref resolves to without loading it.
// The runtime directory is consulted only when ref carries a public key
// token.
func (r *Resolver) Probe(ref *metadata.AssemblyReference) (string, bool) {
	if ref.HasPublicKeyToken() && r.runtimeDir != "" {
		if path, ok := probeDirectory(r.runtimeDir, ref.Name()); ok {
			return path, true
		}
	}
	for _, dir := range r.searchDirs {
		if path, ok := probeDirectory(dir, ref.Name()); ok {
			return path, true
		}
	}
	return "", false
}

func probeDirectory(dir, name string) (string, bool) {
	for _, candidate := range []string{
		filepath.Join(dir, name+".dll"),
		filepath.Join(dir, name+".exe"),
		filepath.Join(dir, name, name+".dll"),
	} {
		if isFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// Resolve finds and loads the assembly ref points to. It reports false when
// no file matches, when loading fails, or when ctx ends first.
func (r *Resolver) Resolve(ctx context.Context, ref *metadata.AssemblyReference) (Assembly, bool) {
	if ref == nil {
		return nil, false
	}
	key := ref.FullName()
	if cached, ok := r.cache.Get(key); ok {
		return cached.(Assembly), true
	}
	if ctx.Err() != nil {
		return nil, false
	}

	ch := r.group.DoChan(key, func() (any, error) {
		if cached, ok := r.cache.Get(key); ok {
			return cached, nil
		}
		path, ok := r.Probe(ref)
		if !ok {
			return nil, errors.NotFound(errors.PhaseResolve, "assembly", key)
		}
		Logger().Debug("assembly probed",
			zap.String("assembly", key),
			zap.String("path", path))
		asm, err := r.loader.Load(path)
		if err == nil && asm == nil {
			err = errors.InvalidData(errors.PhaseResolve, []string{path}, "loader returned no assembly")
		}
		if err != nil {
			Logger().Warn("assembly load failed",
				zap.String("assembly", key),
				zap.String("path", path),
				zap.Error(err))
			return nil, errors.Wrap(errors.PhaseResolve, errors.KindNotFound, err, "load "+path)
		}
		r.cache.Add(key, asm)
		return asm, nil
	})

	select {
	case <-ctx.Done():
		return nil, false
	case res := <-ch:
		if res.Err != nil {
			Logger().Debug("assembly not resolved",
				zap.String("assembly", key),
				zap.Error(res.Err))
			return nil, false
		}
		return res.Val.(Assembly), true
	}
}

// Purge drops every cached assembly.
func (r *Resolver) Purge() {
	r.cache.Purge()
}
