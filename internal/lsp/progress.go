package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// withProgress wraps a background recheck with the Language Server
// Protocol's $/progress begin and end notifications (no intermediate
// report is sent), restoring a behavior the distilled checker otherwise
// drops: a didSave-triggered recheck of a large file can take long enough
// that an editor's "checking…" indicator is worth showing. The token comes
// from the server's monotonic progress-token counter (nextProgressToken),
// since this server, unlike a request handler, has no inbound request id to
// reuse.
func (s *Server) withProgress(context *glsp.Context, title string, work func()) {
	token := protocol.IntegerOrString{Value: s.nextProgressToken()}

	if err := context.Call(protocol.ServerWorkDoneProgressCreate, protocol.WorkDoneProgressCreateParams{
		Token: token,
	}, nil); err != nil {
		// Not every client implements workDoneProgress/create; proceed
		// without progress notifications rather than failing the recheck.
		work()
		return
	}

	context.Notify(protocol.MethodProgress, protocol.ProgressParams{
		Token: token,
		Value: protocol.WorkDoneProgressBegin{
			Kind:  "begin",
			Title: title,
		},
	})

	work()

	context.Notify(protocol.MethodProgress, protocol.ProgressParams{
		Token: token,
		Value: protocol.WorkDoneProgressEnd{
			Kind: "end",
		},
	})
}
