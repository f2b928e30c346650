package analysis

import (
	"sort"
	"strings"

	"github.com/brianjo/pyrefly/internal/module"
)

// InlayHint is a single inline type annotation shown next to a binding
// site, as rendered for the editor.
type InlayHint struct {
	Offset int
	Label  string
}

// GotoDefinition returns the binding whose site covers offset, if h was
// checked to module.RequireEverything. "Covers" here means: the nearest
// binding at or before offset, since retained bindings don't carry an end
// offset — good enough for jump-to-definition, where only the start
// position is shown to the editor.
func (t *Transaction) GotoDefinition(h module.Handle, offset int) (*Binding, bool) {
	a, ok := t.artifacts[h]
	if !ok {
		return nil, false
	}
	var best *Binding
	for i := range a.Bindings {
		b := &a.Bindings[i]
		if b.Offset > offset {
			continue
		}
		if best == nil || b.Offset > best.Offset {
			best = b
		}
	}
	return best, best != nil
}

// Hover renders the type of the binding at offset, or "" if none is
// retained there.
func (t *Transaction) Hover(h module.Handle, offset int) (string, bool) {
	b, ok := t.GotoDefinition(h, offset)
	if !ok {
		return "", false
	}
	return b.Name + ": " + b.Type, true
}

// Completion lists retained binding names starting with prefix, sorted for
// deterministic editor display.
func (t *Transaction) Completion(h module.Handle, prefix string) []string {
	a, ok := t.artifacts[h]
	if !ok {
		return nil
	}
	seen := map[string]bool{}
	var out []string
	for _, b := range a.Bindings {
		if strings.HasPrefix(b.Name, prefix) && !seen[b.Name] {
			seen[b.Name] = true
			out = append(out, b.Name)
		}
	}
	sort.Strings(out)
	return out
}

// InlayHints returns one hint per retained binding, for binding sites that
// have no explicit type annotation in the source — approximated here as
// every retained binding, since annotation presence is tracked by the
// external parser, not this package.
func (t *Transaction) InlayHints(h module.Handle) []InlayHint {
	a, ok := t.artifacts[h]
	if !ok {
		return nil
	}
	hints := make([]InlayHint, 0, len(a.Bindings))
	for _, b := range a.Bindings {
		hints = append(hints, InlayHint{Offset: b.Offset, Label: ": " + b.Type})
	}
	return hints
}
