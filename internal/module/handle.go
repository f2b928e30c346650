package module

import "fmt"

// RuntimeMetadata carries the target language version and platform that a
// Handle was compiled against. Two Handles for the same Name and Path but
// different RuntimeMetadata are distinct compilation units (see spec.md §8
// scenario 1: a module checked once per platform).
type RuntimeMetadata struct {
	PythonVersion [3]int // major, minor, micro
	Platform      string // e.g. "linux", "darwin", "win32"
}

func (r RuntimeMetadata) String() string {
	return fmt.Sprintf("py%d.%d.%d-%s", r.PythonVersion[0], r.PythonVersion[1], r.PythonVersion[2], r.Platform)
}

// LoaderID wraps a *LoaderConfig under pointer identity: two LoaderIDs
// compare equal iff they reference the very same config instance, never by
// deep value equality. This mirrors pyrefly's ArcId<ConfigFile> identity.
type LoaderID struct {
	cfg *LoaderConfig
}

// NewLoaderID wraps a loader configuration for identity-based comparison.
func NewLoaderID(cfg *LoaderConfig) LoaderID {
	return LoaderID{cfg: cfg}
}

// Config returns the wrapped configuration.
func (l LoaderID) Config() *LoaderConfig {
	return l.cfg
}

// Equal reports pointer identity, not value equality.
func (l LoaderID) Equal(other LoaderID) bool {
	return l.cfg == other.cfg
}

// Handle is the immutable primary key for a compilation unit: a module name,
// where it lives, what runtime it targets, and which loader resolved it.
// Handles are comparable (all fields are comparable) so they can key Go maps
// directly throughout AnalysisState.
type Handle struct {
	Name            Name
	ModulePath      Path
	RuntimeMetadata RuntimeMetadata
	Loader          LoaderID
}

// NewHandle builds a Handle. ModulePath must be one of the concrete Path
// variants (FileSystemPath, MemoryPath, NamespacePath, BundledTypeshedPath).
func NewHandle(name Name, path Path, runtime RuntimeMetadata, loader LoaderID) Handle {
	return Handle{
		Name:            name,
		ModulePath:      path,
		RuntimeMetadata: runtime,
		Loader:          loader,
	}
}

func (h Handle) String() string {
	return fmt.Sprintf("%s@%s[%s]", h.Name.String(), h.ModulePath.String(), h.RuntimeMetadata.String())
}
