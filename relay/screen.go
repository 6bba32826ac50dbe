package relay

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"

	"lan-collab/observability"
	"lan-collab/protocol"
)

// ScreenRelay carries the single screen-share stream: one presenter pushes
// length-prefixed frame blobs, every registered viewer receives them. The
// presenter slot is a singleton; a second presenter is turned away with a
// busy token.
type ScreenRelay struct {
	log     *slog.Logger
	host    string
	port    int
	monitor *observability.Monitor

	mu        sync.Mutex
	presenter net.Conn // nil while the slot is free
	viewers   map[net.Conn]struct{}

	ln net.Listener
}

func NewScreenRelay(log *slog.Logger, host string, port int, monitor *observability.Monitor) *ScreenRelay {
	return &ScreenRelay{
		log:     log,
		host:    host,
		port:    port,
		monitor: monitor,
		viewers: make(map[net.Conn]struct{}),
	}
}

func (r *ScreenRelay) Listen() error {
	ln, err := net.Listen("tcp", fmt.Sprintf("%s:%d", r.host, r.port))
	if err != nil {
		return fmt.Errorf("screen relay listen: %w", err)
	}
	r.ln = ln
	return nil
}

func (r *ScreenRelay) Port() int {
	if r.ln == nil {
		return r.port
	}
	return r.ln.Addr().(*net.TCPAddr).Port
}

// DropPresenter force-closes the current presenter connection. Its loop
// then exits and releases the slot for the next taker.
func (r *ScreenRelay) DropPresenter() {
	r.mu.Lock()
	presenter := r.presenter
	r.mu.Unlock()

	if presenter != nil {
		_ = presenter.Close()
	}
}

func (r *ScreenRelay) Run(ctx context.Context) error {
	if r.ln == nil {
		if err := r.Listen(); err != nil {
			return err
		}
	}
	r.log.Info("Screen share relay listening", "addr", r.ln.Addr())

	go func() {
		<-ctx.Done()
		_ = r.ln.Close()
		r.closeAll()
	}()

	for {
		conn, err := r.ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		go r.handleConn(conn)
	}
}

func (r *ScreenRelay) handleConn(conn net.Conn) {
	defer conn.Close()

	var head [4]byte
	if _, err := io.ReadFull(conn, head[:]); err != nil {
		return
	}

	switch binary.BigEndian.Uint32(head[:]) {
	case protocol.RolePresenter:
		r.handlePresenter(conn)
	case protocol.RoleViewer:
		r.handleViewer(conn)
	default:
		// Unknown role tag, abandon the connection.
	}
}

// handlePresenter claims the slot and relays frames until the connection
// ends for any reason, then releases the slot.
func (r *ScreenRelay) handlePresenter(conn net.Conn) {
	r.mu.Lock()
	if r.presenter != nil {
		r.mu.Unlock()
		_, _ = conn.Write([]byte(protocol.TokenBusy))
		return
	}
	r.presenter = conn
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		if r.presenter == conn {
			r.presenter = nil
		}
		r.mu.Unlock()
		r.log.Info("Presenter slot released")
	}()

	if _, err := conn.Write([]byte(protocol.TokenAccept)); err != nil {
		return
	}
	r.log.Info("Presenter connected", "remote", conn.RemoteAddr())

	for {
		frame, err := protocol.ReadFrame(conn, protocol.MaxScreenFrame)
		if err != nil {
			return
		}
		r.monitor.IncrScreenFrames()
		r.broadcastFrame(frame)
	}
}

// handleViewer registers the connection and parks until the client hangs
// up; viewers never send anything after the role tag.
func (r *ScreenRelay) handleViewer(conn net.Conn) {
	if _, err := conn.Write([]byte(protocol.TokenAccept)); err != nil {
		return
	}

	r.mu.Lock()
	r.viewers[conn] = struct{}{}
	count := len(r.viewers)
	r.mu.Unlock()
	r.log.Info("Viewer connected", "remote", conn.RemoteAddr(), "viewers", count)

	_, _ = io.Copy(io.Discard, conn)

	r.mu.Lock()
	delete(r.viewers, conn)
	r.mu.Unlock()
	r.log.Info("Viewer disconnected", "remote", conn.RemoteAddr())
}

// broadcastFrame fans one frame out to every viewer. A viewer that fails
// to accept the write is dropped from the set; the presenter loop never
// notices.
func (r *ScreenRelay) broadcastFrame(frame []byte) {
	r.mu.Lock()
	viewers := make([]net.Conn, 0, len(r.viewers))
	for v := range r.viewers {
		viewers = append(viewers, v)
	}
	r.mu.Unlock()

	for _, viewer := range viewers {
		if err := protocol.WriteFrame(viewer, frame); err != nil {
			r.mu.Lock()
			delete(r.viewers, viewer)
			r.mu.Unlock()
			_ = viewer.Close()
		}
	}
}

func (r *ScreenRelay) closeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.presenter != nil {
		_ = r.presenter.Close()
	}
	for v := range r.viewers {
		_ = v.Close()
	}
}
