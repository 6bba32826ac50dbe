package protocol

// Screen-share handshake: the client opens a TCP connection and sends a
// 4-byte big-endian role tag, the server answers with a textual token.
const (
	RolePresenter uint32 = 1
	RoleViewer    uint32 = 2

	TokenAccept = "OK"
	TokenBusy   = "BUSY"
)
