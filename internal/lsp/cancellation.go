package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// cancelRequest handles $/cancelRequest. glsp's Handler dispatches each
// method to a typed callback without exposing the request id the callback
// is answering, so a query in flight has no way to observe that its own id
// was the one canceled — there's nothing to correlate against. What this
// server can honestly do is log receipt and let in-flight work run to
// completion rather than pretend to interrupt it.
func (s *Server) cancelRequest(context *glsp.Context, params *protocol.CancelParams) error {
	s.log.Debugf("cancel requested for id %v (no in-flight correlation available)", params.ID)
	return nil
}
