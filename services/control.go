// Package services hosts the control plane: the TCP dispatcher that owns
// every client session, the broadcast fabric, and the single cleanup path
// shared by logout, heartbeat timeout, and I/O failure.
package services

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"lan-collab/contract"
	"lan-collab/domain"
	"lan-collab/errors"
	"lan-collab/observability"
	"lan-collab/protocol"
	"lan-collab/runtime"
)

// Static assertions of the control plane's roles.
var (
	_ contract.Worker         = (*ControlService)(nil)
	_ contract.Notifier       = (*ControlService)(nil)
	_ contract.SessionCleaner = (*ControlService)(nil)
)

// session pairs one TCP connection with the participant logged in on it.
// The write mutex keeps concurrent broadcasts from interleaving frames.
type session struct {
	conn    net.Conn
	uid     domain.UID
	writeMu sync.Mutex
}

// ControlService accepts control connections and dispatches their framed
// messages. Per-connection handling is strictly sequential; fan-out to
// other sessions is best-effort and never fatal to the sender.
type ControlService struct {
	log      *slog.Logger
	host     string
	port     int
	registry *runtime.Registry
	history  *runtime.History
	screen   contract.ScreenShare
	files    contract.FileLibrary
	monitor  *observability.Monitor
	validate *validator.Validate

	mu       sync.Mutex
	sessions map[domain.UID]*session

	ln net.Listener
}

func NewControlService(
	log *slog.Logger,
	host string,
	port int,
	registry *runtime.Registry,
	history *runtime.History,
	screen contract.ScreenShare,
	files contract.FileLibrary,
	monitor *observability.Monitor,
) *ControlService {
	return &ControlService{
		log:      log,
		host:     host,
		port:     port,
		registry: registry,
		history:  history,
		screen:   screen,
		files:    files,
		monitor:  monitor,
		validate: validator.New(),
		sessions: make(map[domain.UID]*session),
	}
}

func (s *ControlService) Listen() error {
	ln, err := net.Listen("tcp", fmt.Sprintf("%s:%d", s.host, s.port))
	if err != nil {
		return fmt.Errorf("control listen: %w", err)
	}
	s.ln = ln
	return nil
}

func (s *ControlService) Port() int {
	if s.ln == nil {
		return s.port
	}
	return s.ln.Addr().(*net.TCPAddr).Port
}

func (s *ControlService) Addr() string {
	return s.ln.Addr().String()
}

func (s *ControlService) Run(ctx context.Context) error {
	if s.ln == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	s.log.Info("Control plane listening", "addr", s.ln.Addr())

	go func() {
		<-ctx.Done()
		_ = s.ln.Close()
	}()

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		s.monitor.IncrConnections()
		go s.handleConn(conn)
	}
}

// handleConn runs one connection's read/dispatch loop. Any read failure,
// including an oversized length prefix, abandons the connection; if a
// participant was logged in it goes through the cleanup path.
func (s *ControlService) handleConn(conn net.Conn) {
	s.log.Info("New control connection", "remote", conn.RemoteAddr())

	sess := &session{conn: conn}
	defer func() {
		if sess.uid != 0 {
			s.Cleanup(sess.uid)
		} else {
			_ = conn.Close()
		}
		s.log.Info("Control connection closed", "remote", conn.RemoteAddr())
	}()

	for {
		frame, err := protocol.ReadFrame(conn, protocol.MaxControlFrame)
		if err != nil {
			if stderrors.Is(err, errors.ErrFrameTooLarge) {
				s.log.Warn("Oversized frame, abandoning connection",
					"remote", conn.RemoteAddr())
			}
			return
		}

		var envelope protocol.Message
		if err := json.Unmarshal(frame, &envelope); err != nil {
			s.send(sess, protocol.NewError("Malformed message"))
			continue
		}

		if !s.dispatch(sess, envelope.Type, frame) {
			return
		}
	}
}

// dispatch routes one message. It returns false when the connection loop
// should end (logout).
func (s *ControlService) dispatch(sess *session, msgType string, frame []byte) bool {
	if msgType == protocol.TypeLogin {
		s.handleLogin(sess, frame)
		return true
	}

	participant, ok := s.registry.Find(sess.uid)
	if !ok {
		s.send(sess, protocol.NewError("Not logged in"))
		return true
	}

	// Any message from a live participant counts as a heartbeat.
	s.registry.Touch(sess.uid)

	switch msgType {
	case protocol.TypeHeartbeat:
		s.send(sess, protocol.NewHeartbeatAck())
	case protocol.TypeChat:
		s.handleChat(sess, participant, frame, domain.KindChat)
	case protocol.TypeBroadcast:
		s.handleChat(sess, participant, frame, domain.KindBroadcast)
	case protocol.TypeUnicast:
		s.handleUnicast(sess, participant, frame)
	case protocol.TypeGetHistory:
		s.send(sess, protocol.NewHistory(s.history.Snapshot()))
	case protocol.TypeGetParticipants:
		s.send(sess, protocol.NewParticipantList(s.registry.Snapshot()))
	case protocol.TypeFileOffer:
		s.send(sess, protocol.NewFileUploadPort(s.files.UploadPort()))
	case protocol.TypeFileRequest:
		s.send(sess, protocol.NewFileDownloadPort(s.files.DownloadPort(), s.files.List()))
	case protocol.TypePresentStart:
		s.handlePresentStart(sess, participant)
	case protocol.TypePresentStop:
		s.handlePresentStop(sess, participant)
	case protocol.TypeLogout:
		s.Cleanup(sess.uid)
		sess.uid = 0
		return false
	default:
		s.send(sess, protocol.NewError(fmt.Sprintf("Unknown message type: %s", msgType)))
	}
	return true
}

func (s *ControlService) handleLogin(sess *session, frame []byte) {
	if sess.uid != 0 {
		s.send(sess, protocol.NewError("Already logged in"))
		return
	}

	var request protocol.LoginRequest
	if err := json.Unmarshal(frame, &request); err != nil {
		s.send(sess, protocol.NewError("Malformed message"))
		return
	}
	if err := s.validate.Struct(request); err != nil {
		s.send(sess, protocol.NewError("Username required"))
		return
	}

	participant, err := s.registry.Allocate(request.Username)
	if err != nil {
		// The connection stays open so the client may retry.
		s.send(sess, protocol.NewError(rejectionText(err)))
		return
	}

	sess.uid = participant.UID
	s.mu.Lock()
	s.sessions[participant.UID] = sess
	s.mu.Unlock()

	s.broadcast(protocol.NewUserJoined(participant.UID, participant.Username), participant.UID)
	s.send(sess, protocol.NewLoginSuccess(participant.UID, participant.Username))
	s.log.Info("User logged in", "uid", participant.UID, "username", participant.Username)
}

func (s *ControlService) handleChat(sess *session, from domain.Participant, frame []byte, kind domain.ChatKind) {
	var request protocol.ChatRequest
	if err := json.Unmarshal(frame, &request); err != nil {
		s.send(sess, protocol.NewError("Malformed message"))
		return
	}
	if err := s.validate.Struct(request); err != nil {
		s.send(sess, protocol.NewError("Empty message"))
		return
	}

	entry := domain.ChatEntry{
		ID:       uuid.New(),
		Kind:     kind,
		UID:      from.UID,
		Username: from.Username,
		Content:  request.Content,
		At:       time.Now(),
	}
	s.history.Append(entry)
	s.monitor.IncrMessagesRelayed()

	// Both kinds fan out to everyone, the sender included.
	s.broadcast(protocol.NewChatRelay(entry), 0)

	ack := protocol.TypeChatSent
	if kind == domain.KindBroadcast {
		ack = protocol.TypeBroadcastSent
	}
	s.send(sess, protocol.NewAck(ack))
}

func (s *ControlService) handleUnicast(sess *session, from domain.Participant, frame []byte) {
	var request protocol.UnicastRequest
	if err := json.Unmarshal(frame, &request); err != nil {
		s.send(sess, protocol.NewError("Malformed message"))
		return
	}
	if request.Content == "" {
		s.send(sess, protocol.NewError("Empty message"))
		return
	}

	s.mu.Lock()
	target, ok := s.sessions[request.TargetUID]
	s.mu.Unlock()
	if !ok {
		s.send(sess, protocol.NewError("Target user not found"))
		return
	}

	// Private traffic: only the target sees it, history never does.
	s.send(target, protocol.NewUnicastRelay(from, request.TargetUID, request.Content))
	s.monitor.IncrMessagesRelayed()
	s.send(sess, protocol.NewUnicastSent(request.TargetUID))
}

func (s *ControlService) handlePresentStart(sess *session, from domain.Participant) {
	if err := s.registry.StartPresenting(from.UID); err != nil {
		s.send(sess, protocol.NewError(rejectionText(err)))
		return
	}

	port := s.screen.Port()
	s.log.Info("Presentation started", "uid", from.UID, "username", from.Username, "port", port)
	s.broadcast(protocol.NewPresentStartBroadcast(from.UID, from.Username, port), 0)
	s.send(sess, protocol.NewScreenSharePorts(port))
}

func (s *ControlService) handlePresentStop(sess *session, from domain.Participant) {
	if err := s.registry.StopPresenting(from.UID); err != nil {
		s.send(sess, protocol.NewError(rejectionText(err)))
		return
	}

	s.screen.DropPresenter()
	s.log.Info("Presentation stopped", "uid", from.UID, "username", from.Username)
	s.broadcast(protocol.NewPresentStopBroadcast(from.UID, from.Username), 0)
	s.send(sess, protocol.NewPresentStopped())
}

// Cleanup is the single teardown path shared by explicit logout, heartbeat
// timeout, and connection errors. Re-invoking it for a uid that is already
// gone is a no-op.
func (s *ControlService) Cleanup(uid domain.UID) {
	s.mu.Lock()
	sess, ok := s.sessions[uid]
	if ok {
		delete(s.sessions, uid)
	}
	s.mu.Unlock()
	if !ok {
		return
	}

	if participant, found := s.registry.Find(uid); found && participant.IsPresenting {
		_ = s.registry.StopPresenting(uid)
		s.screen.DropPresenter()
		s.broadcast(protocol.NewPresentStopBroadcast(uid, participant.Username), 0)
		s.log.Info("Stopped presentation of leaving user", "uid", uid)
	}

	if participant, released := s.registry.Release(uid); released {
		s.broadcast(protocol.NewUserLeft(uid, participant.Username), 0)
		s.log.Info("User logged out", "uid", uid, "username", participant.Username)
	}

	_ = sess.conn.Close()
}

// FileAvailable implements contract.Notifier: the file service announces
// a completed upload to every logged-in participant.
func (s *ControlService) FileAvailable(record domain.FileRecord) {
	s.broadcast(protocol.NewFileAvailable(record.Filename, record.Uploader), 0)
	s.log.Info("Announced new file", "file_id", record.ID, "filename", record.Filename)
}

// send delivers one message to one session. Write failures are swallowed:
// delivery is best-effort and a dead peer is reaped by its own read loop
// or the heartbeat sweep.
func (s *ControlService) send(sess *session, msg protocol.Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		s.log.Error("Marshal failed", "type", msg.Type, "error", err)
		return
	}

	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()
	if err := protocol.WriteFrame(sess.conn, payload); err != nil {
		s.log.Debug("Dropped message to dead connection", "type", msg.Type)
	}
}

// broadcast fans a message out to every logged-in session except excluded.
// Zero excludes no one. Per-recipient failures are isolated.
func (s *ControlService) broadcast(msg protocol.Message, exclude domain.UID) {
	s.mu.Lock()
	targets := make([]*session, 0, len(s.sessions))
	for uid, sess := range s.sessions {
		if uid != exclude {
			targets = append(targets, sess)
		}
	}
	s.mu.Unlock()

	for _, sess := range targets {
		s.send(sess, msg)
	}
}

// rejectionText maps business-rule errors to the wire texts clients show.
func rejectionText(err error) string {
	switch {
	case stderrors.Is(err, errors.ErrUsernameRequired):
		return "Username required"
	case stderrors.Is(err, errors.ErrUsernameTaken):
		return "Username already taken"
	case stderrors.Is(err, errors.ErrPresenterBusy):
		return "Someone else is already presenting"
	case stderrors.Is(err, errors.ErrNotPresenting):
		return "Not currently presenting"
	case stderrors.Is(err, errors.ErrTargetNotFound):
		return "Target user not found"
	default:
		return err.Error()
	}
}
