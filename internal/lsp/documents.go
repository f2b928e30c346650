package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/brianjo/pyrefly/internal/module"
)

func (s *Server) setLoaderConfig(cfg *module.LoaderConfig) {
	s.loaderMu.Lock()
	defer s.loaderMu.Unlock()
	s.loader = module.NewLoaderID(cfg)
}

// SetInitialLoaderConfig seeds the server's loader config before the client
// has replied to any workspace/configuration request — the CLI's
// --search-path/--site-package-path flags (or their environment variable
// fallbacks) populate this for editor integrations that don't implement
// workspace/configuration at all. A later reply, if one arrives, replaces
// it via setLoaderConfig same as any other workspace/didChangeConfiguration.
func (s *Server) SetInitialLoaderConfig(cfg *module.LoaderConfig) {
	s.setLoaderConfig(cfg)
}

func (s *Server) loaderID() module.LoaderID {
	s.loaderMu.RLock()
	defer s.loaderMu.RUnlock()
	return s.loader
}

// handleForURI builds the Handle this server uses to refer to an open
// document: a FileSystemPath at the document's on-disk location (editor
// edits reach the checker as an in-memory overlay on that path, not as a
// distinct MemoryPath, so a saved and an unsaved buffer share one Handle).
func (s *Server) handleForURI(uri protocol.DocumentUri) module.Handle {
	path := uriToFilePath(string(uri))
	return module.NewHandle(module.NewName(moduleNameFromPath(path)), module.FileSystemPath{Path: path}, s.runtime, s.loaderID())
}

// uriToFilePath strips a file:// scheme down to a plain filesystem path.
// Editors always send file:// URIs for on-disk documents; any other scheme
// (untitled:, vscode-notebook-cell:, ...) is passed through unchanged since
// this checker has no use for documents it can't eventually read from disk.
func uriToFilePath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}

// moduleNameFromPath approximates the dotted module name a Python import
// would use to reach path, stripping a .py/.pyi suffix and turning path
// separators into dots. It's a presentation-layer guess good enough to key
// a Handle's Name field for diagnostics and hover text; real import
// resolution (which search root a path lives under, package vs. module)
// is module.ModuleFinder's job, not this one.
func moduleNameFromPath(path string) string {
	trimmed := strings.TrimSuffix(strings.TrimSuffix(path, ".pyi"), ".py")
	trimmed = strings.TrimPrefix(trimmed, "/")
	trimmed = strings.ReplaceAll(trimmed, "/", ".")
	if trimmed == "" {
		return "<unknown>"
	}
	return trimmed
}

// offsetToPosition converts a byte offset into text to an LSP line/character
// position. CompiledArtifact diagnostics and bindings carry flat offsets —
// position info belongs to the external parser, per the Diagnostic and
// Binding doc comments in analysis/artifact.go — so the presentation layer
// recovers line/character
// here, the one place that actually needs to talk to an editor.
func offsetToPosition(text string, offset int) protocol.Position {
	if offset > len(text) {
		offset = len(text)
	}
	line := protocol.UInteger(0)
	lineStart := 0
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return protocol.Position{
		Line:      line,
		Character: protocol.UInteger(offset - lineStart),
	}
}

// positionToOffset is offsetToPosition's inverse, used to turn an incoming
// hover/definition/completion cursor position back into the flat offset
// GotoDefinition/Hover/Completion expect.
func positionToOffset(text string, pos protocol.Position) int {
	line, col := 0, protocol.UInteger(0)
	for i, r := range text {
		if protocol.UInteger(line) == pos.Line && col == pos.Character {
			return i
		}
		if r == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return len(text)
}
