package analysis

import "github.com/brianjo/pyrefly/internal/module"

// SourceLoader reads the text that should be checked for a handle: the
// in-memory overlay when present, otherwise the on-disk file. Reading raw
// bytes off a module.Path is itself out of this package's scope (spec.md
// §1 places the wire/filesystem layer among the external collaborators);
// AnalysisState only decides overlay-vs-disk, never does the I/O itself.
type SourceLoader interface {
	ReadDisk(path module.Path) (string, error)
}
