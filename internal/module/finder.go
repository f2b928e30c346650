package module

import (
	"os"
	"path/filepath"
	"strings"
)

// findOneComponent resolves a single dotted-name component against an
// ordered list of candidate roots, using the priority order from spec.md
// §4.1 step 1: __init__.pyi, __init__.py, <name>.pyi, <name>.py, then (only
// if nothing above matched in any root) a namespace candidate.
//
// Ported directly from original_source/pyrefly/lib/module/finder.rs's
// find_one_part.
func findOneComponent(name string, roots []string) (findResult, bool) {
	var namespaceDirs []string
	for _, root := range roots {
		candidateDir := filepath.Join(root, name)

		for _, initSuffix := range []string{"__init__.pyi", "__init__.py"} {
			initPath := filepath.Join(candidateDir, initSuffix)
			if fileExists(initPath) {
				return regularPackage{initPath: initPath, continueDir: candidateDir}, true
			}
		}

		for _, fileSuffix := range []string{"pyi", "py"} {
			candidatePath := filepath.Join(root, name+"."+fileSuffix)
			if fileExists(candidatePath) {
				return singleFileModule{path: candidatePath}, true
			}
		}

		if dirExists(candidateDir) {
			namespaceDirs = append(namespaceDirs, candidateDir)
		}
	}
	if len(namespaceDirs) == 0 {
		return nil, false
	}
	return namespacePackage{dirs: namespaceDirs}, true
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// FindInSearchPath resolves a dotted module Name against an ordered list of
// search roots, implementing spec.md §4.1's component-by-component
// algorithm: a RegularPackage commits early to its single continuation
// directory for every remaining component, while a NamespacePackage keeps
// every candidate directory collected so far as the next roots to search.
func FindInSearchPath(name Name, roots []string) (Path, bool) {
	parts := name.Components()
	current, ok := findOneComponent(parts[0], roots)
	if !ok {
		return nil, false
	}
	for _, part := range parts[1:] {
		switch r := current.(type) {
		case singleFileModule:
			// Already reached a leaf; no further component can resolve.
			return nil, false
		case regularPackage:
			current, ok = findOneComponent(part, []string{r.continueDir})
			if !ok {
				return nil, false
			}
		case namespacePackage:
			current, ok = findOneComponent(part, r.dirs)
			if !ok {
				return nil, false
			}
		}
	}
	switch r := current.(type) {
	case singleFileModule:
		return FileSystemPath{Path: r.path}, true
	case regularPackage:
		return FileSystemPath{Path: r.initPath}, true
	case namespacePackage:
		// See DESIGN.md: only the first candidate directory is kept.
		return NamespacePath{Path: r.dirs[0]}, true
	default:
		return nil, false
	}
}

// FindInSitePackages resolves a module against site-package roots, first
// trying the "<pkg>-stubs" overlay (which always wins when present) and
// falling back to the plain package name.
func FindInSitePackages(name Name, roots []string) (Path, bool) {
	stubsName := name.WithStubsSuffix()
	if p, ok := FindInSearchPath(stubsName, roots); ok {
		return p, true
	}
	return FindInSearchPath(name, roots)
}

// pyTypedOf reads the py.typed marker for a single candidate directory,
// treating an IO error while reading an existing file as Partial (the
// permissive policy from spec.md §7 item 5).
func pyTypedOf(dir string) PyTyped {
	markerPath := filepath.Join(dir, "py.typed")
	contents, err := os.ReadFile(markerPath)
	if err != nil {
		if os.IsNotExist(err) {
			return PyTypedMissing
		}
		// File exists but couldn't be read: treat as present-but-partial.
		return PyTypedPartial
	}
	if strings.TrimSpace(string(contents)) == "partial" {
		return PyTypedPartial
	}
	return PyTypedComplete
}

// pyTypedOfResult classifies a findResult, taking the strongest
// (Missing < Complete < Partial) across a namespace package's directories.
func pyTypedOfResult(r findResult) PyTyped {
	switch v := r.(type) {
	case singleFileModule:
		return pyTypedOf(filepath.Dir(v.path))
	case regularPackage:
		return pyTypedOf(v.continueDir)
	case namespacePackage:
		strongest := PyTypedMissing
		for _, dir := range v.dirs {
			if t := pyTypedOf(dir); t > strongest {
				strongest = t
			}
		}
		return strongest
	default:
		return PyTypedMissing
	}
}

// ModuleFinder resolves module names to paths for a single LoaderConfig,
// applying the py.typed strictness policy the config carries.
type ModuleFinder struct {
	cfg *LoaderConfig
}

// NewModuleFinder builds a finder bound to a single loader configuration.
func NewModuleFinder(cfg *LoaderConfig) *ModuleFinder {
	return &ModuleFinder{cfg: cfg}
}

// Find resolves name to a Path, or a structured FindError explaining why it
// could not be resolved. Ignored imports and missing py.typed markers are
// checked before a plain not-found, matching spec.md §4.1/§4.2/§7's error
// taxonomy ordering (Ignored and NoPyTyped are not failures to retry, they
// are terminal classifications of an otherwise-successful find).
func (f *ModuleFinder) Find(name Name) (Path, FindError) {
	if f.cfg.IsIgnored(name) {
		return nil, &IgnoredError{}
	}

	// Stub overlays in the site-package path always win, and are never
	// subject to the py.typed check (stub-only packages are typed by
	// definition).
	stubsName := name.WithStubsSuffix()
	if p, ok := findInSearchPathResult(stubsName, f.cfg.SitePackagePath); ok {
		return p.path, nil
	}

	if p, ok := findInSearchPathResult(name, f.cfg.SitePackagePath); ok {
		if f.cfg.RejectUntyped && pyTypedOfResult(p.result) == PyTypedMissing {
			return nil, &NoPyTypedError{}
		}
		return p.path, nil
	}

	if path, ok := FindInSearchPath(name, f.cfg.SearchRoots); ok {
		return path, nil
	}
	return nil, &NotFoundError{Reason: SearchPathReason(f.cfg.SearchRoots, f.cfg.SitePackagePath)}
}

type foundPath struct {
	path   Path
	result findResult
}

// findInSearchPathResult is like FindInSearchPath but also returns the
// internal findResult so callers (the py.typed check) can inspect it
// without re-walking the filesystem.
func findInSearchPathResult(name Name, roots []string) (foundPath, bool) {
	parts := name.Components()
	current, ok := findOneComponent(parts[0], roots)
	if !ok {
		return foundPath{}, false
	}
	for _, part := range parts[1:] {
		switch r := current.(type) {
		case singleFileModule:
			return foundPath{}, false
		case regularPackage:
			current, ok = findOneComponent(part, []string{r.continueDir})
			if !ok {
				return foundPath{}, false
			}
		case namespacePackage:
			current, ok = findOneComponent(part, r.dirs)
			if !ok {
				return foundPath{}, false
			}
		}
	}
	switch r := current.(type) {
	case singleFileModule:
		return foundPath{path: FileSystemPath{Path: r.path}, result: r}, true
	case regularPackage:
		return foundPath{path: FileSystemPath{Path: r.initPath}, result: r}, true
	case namespacePackage:
		return foundPath{path: NamespacePath{Path: r.dirs[0]}, result: r}, true
	default:
		return foundPath{}, false
	}
}

