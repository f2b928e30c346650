package module

import "fmt"

//sumtype:decl
// FindError is the reason a module could not be resolved to a usable Path.
type FindError interface {
	isFindError()
	Error() string
}

func (*NotFoundError) isFindError() {}
func (*IgnoredError) isFindError()  {}
func (*NoPyTypedError) isFindError() {}

// NotFoundError means the module genuinely could not be located anywhere
// along the search path or site-package path.
type NotFoundError struct {
	// Reason is a human-readable description enumerating the search roots
	// and site-package path that were exhausted.
	Reason string
}

func (e *NotFoundError) Error() string {
	return "could not find import: " + e.Reason
}

// SearchPathReason builds the NotFoundError.Reason text for an exhausted
// search, enumerating both search roots and site-package path as spec.md
// §4.1's "Failure" subsection requires.
func SearchPathReason(searchRoots, sitePackagePath []string) string {
	if len(searchRoots) == 0 && len(sitePackagePath) == 0 {
		return "no search roots or site package path"
	}
	return fmt.Sprintf("looked at search roots (%v) and site package path (%v)", searchRoots, sitePackagePath)
}

// IgnoredError means the user configured this import to be skipped; it must
// be suppressed, never surfaced as a diagnostic.
type IgnoredError struct{}

func (e *IgnoredError) Error() string { return "import ignored by configuration" }

// NoPyTypedError means the package was found but lacks the py.typed marker
// and the loader is configured to reject untyped packages.
type NoPyTypedError struct{}

const NoPyTypedMessage = "Imported package does not contain a py.typed file, " +
	"and therefore cannot be typed. See `use_untyped_imports` to import anyway."

func (e *NoPyTypedError) Error() string { return NoPyTypedMessage }
