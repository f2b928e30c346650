package module

import (
	"github.com/moznion/go-optional"
)

// LoaderConfig is the concrete configuration a LoaderID wraps. Reading it
// from disk is an external collaborator's job (spec.md §1 Out of scope); the
// checker only ever consumes an already-parsed *LoaderConfig, constructed by
// the CLI or the LSP server from on-disk/editor-supplied settings.
type LoaderConfig struct {
	// SearchRoots are probed in order for each top-level import.
	SearchRoots []string `yaml:"search_path"`
	// SitePackagePath roots are probed via FindInSitePackages, which tries
	// the "<pkg>-stubs" overlay before falling back to the plain package.
	SitePackagePath []string `yaml:"site_package_path"`
	// IgnoredImports are module names the user has configured to be
	// silently skipped rather than reported as missing.
	IgnoredImports []Name `yaml:"-"`
	// RejectUntyped, when true, turns a found-but-unmarked site package
	// into FindError.NoPyTyped instead of silently accepting it.
	RejectUntyped bool `yaml:"use_untyped_imports,omitempty"`
	// PythonPath is the interpreter path the IDE resolved for this
	// workspace folder, used to derive RuntimeMetadata. Optional: absent
	// until the editor replies to a workspace/configuration request (see
	// internal/lsp's folder configuration flow).
	PythonPath optional.Option[string] `yaml:"-"`
}

// NewLoaderConfig builds a config with no ignored imports and untyped
// imports permitted, the permissive default pyrefly itself ships with.
func NewLoaderConfig(searchRoots, sitePackagePath []string) *LoaderConfig {
	return &LoaderConfig{
		SearchRoots:     searchRoots,
		SitePackagePath: sitePackagePath,
		IgnoredImports:  nil,
		RejectUntyped:   false,
		PythonPath:      optional.None[string](),
	}
}

// IsIgnored reports whether name has been configured to be skipped.
func (c *LoaderConfig) IsIgnored(name Name) bool {
	for _, ignored := range c.IgnoredImports {
		if ignored.Equal(name) {
			return true
		}
	}
	return false
}
