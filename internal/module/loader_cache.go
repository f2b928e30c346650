package module

import (
	"sync"

	"github.com/tidwall/btree"
	"golang.org/x/sync/singleflight"
)

// resolution is the cached outcome of resolving one Name: either a Path or a
// FindError, never both. Errors are cheap to clone because FindError
// implementations carry no large payload (see find_error.go).
type resolution struct {
	path Path
	err  FindError
}

// LoaderCache memoizes ModuleFinder results per (loader config, module
// name), guaranteeing at-most-one resolution per key even under concurrent
// readers. Mirrors pyrefly's LoaderFindCache (a LockedMap<ModuleName,
// Result<ModulePath, FindError>> with ensure-once semantics): the
// singleflight.Group is the Go idiom for "ensure", and the btree.Map behind
// it is the durable cache once a key's singleflight call has returned.
type LoaderCache struct {
	loader  LoaderID
	finder  *ModuleFinder
	group   singleflight.Group
	mu      sync.RWMutex
	results btree.Map[string, resolution]
}

// NewLoaderCache builds a cache bound to a single loader identity.
func NewLoaderCache(loader LoaderID) *LoaderCache {
	return &LoaderCache{
		loader: loader,
		finder: NewModuleFinder(loader.Config()),
	}
}

// FindImport resolves name, sharing a single in-flight ModuleFinder call
// across any concurrent callers asking for the same name, and caching the
// result (success or failure) for subsequent callers.
func (c *LoaderCache) FindImport(name Name) (Path, FindError) {
	key := name.String()

	c.mu.RLock()
	if cached, ok := c.results.Get(key); ok {
		c.mu.RUnlock()
		return cached.path, cached.err
	}
	c.mu.RUnlock()

	v, _, _ := c.group.Do(key, func() (any, error) {
		// A call that finished between the cache miss above and this Do
		// has already stored its result; reuse it instead of finding again.
		c.mu.RLock()
		cached, ok := c.results.Get(key)
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		path, err := c.finder.Find(name)
		res := resolution{path: path, err: err}

		c.mu.Lock()
		c.results.Set(key, res)
		c.mu.Unlock()

		return res, nil
	})

	res := v.(resolution)
	return res.path, res.err
}

// Loader returns the LoaderID this cache memoizes results for.
func (c *LoaderCache) Loader() LoaderID {
	return c.loader
}
