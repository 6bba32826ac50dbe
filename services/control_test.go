package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lan-collab/domain"
	"lan-collab/mocks"
	"lan-collab/observability"
	"lan-collab/protocol"
	"lan-collab/runtime"
)

const screenPort = 12000

func startControl(t *testing.T) *ControlService {
	t.Helper()
	ctrl := gomock.NewController(t)

	screen := mocks.NewMockScreenShare(ctrl)
	screen.EXPECT().Port().Return(screenPort).AnyTimes()
	screen.EXPECT().DropPresenter().AnyTimes()

	files := mocks.NewMockFileLibrary(ctrl)
	files.EXPECT().UploadPort().Return(13000).AnyTimes()
	files.EXPECT().DownloadPort().Return(14000).AnyTimes()
	files.EXPECT().List().Return([]domain.FileRecord{
		{ID: "abc", Filename: "notes.txt", Size: 42, Uploader: "alice"},
	}).AnyTimes()

	svc := NewControlService(
		slog.Default(), "127.0.0.1", 0,
		runtime.NewRegistry(), runtime.NewHistory(500),
		screen, files, observability.NewMonitor(),
	)
	require.NoError(t, svc.Listen())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = svc.Run(ctx) }()
	return svc
}

// controlClient is a minimal wire-level client for driving the control
// plane in tests.
type controlClient struct {
	t    *testing.T
	conn net.Conn
}

func dialControl(t *testing.T, svc *ControlService) *controlClient {
	t.Helper()
	conn, err := net.Dial("tcp", svc.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return &controlClient{t: t, conn: conn}
}

func (c *controlClient) send(payload map[string]any) {
	c.t.Helper()
	frame, err := json.Marshal(payload)
	require.NoError(c.t, err)
	require.NoError(c.t, protocol.WriteFrame(c.conn, frame))
}

func (c *controlClient) recv() protocol.Message {
	c.t.Helper()
	require.NoError(c.t, c.conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	frame, err := protocol.ReadFrame(c.conn, protocol.MaxControlFrame)
	require.NoError(c.t, err)
	require.NoError(c.t, c.conn.SetReadDeadline(time.Time{}))

	var msg protocol.Message
	require.NoError(c.t, json.Unmarshal(frame, &msg))
	return msg
}

func (c *controlClient) expect(msgType string) protocol.Message {
	c.t.Helper()
	msg := c.recv()
	require.Equal(c.t, msgType, msg.Type)
	return msg
}

func (c *controlClient) login(username string) domain.UID {
	c.t.Helper()
	c.send(map[string]any{"type": protocol.TypeLogin, "username": username})
	msg := c.expect(protocol.TypeLoginSuccess)
	require.Equal(c.t, username, msg.Username)
	return msg.UID
}

func TestControl_Login_Assigns_Monotonic_UIDs(t *testing.T) {
	req := require.New(t)
	svc := startControl(t)

	alice := dialControl(t, svc)
	bob := dialControl(t, svc)

	req.Equal(domain.UID(1), alice.login("alice"))
	req.Equal(domain.UID(2), bob.login("bob"))

	// Alice hears about bob; bob never hears about himself.
	joined := alice.expect(protocol.TypeUserJoined)
	req.Equal(domain.UID(2), joined.UID)
	req.Equal("bob", joined.Username)
}

func TestControl_Login_Rejects_Taken_Username(t *testing.T) {
	req := require.New(t)
	svc := startControl(t)

	alice := dialControl(t, svc)
	alice.login("alice")

	// When someone claims the same name, case-sensitively distinct names pass
	imposter := dialControl(t, svc)
	imposter.send(map[string]any{"type": protocol.TypeLogin, "username": "alice"})
	msg := imposter.expect(protocol.TypeError)
	req.Equal("Username already taken", msg.Message)

	// The connection survives the rejection and can retry
	req.Equal(domain.UID(2), imposter.login("Alice"))
}

func TestControl_Login_Requires_Username(t *testing.T) {
	req := require.New(t)
	svc := startControl(t)

	client := dialControl(t, svc)
	client.send(map[string]any{"type": protocol.TypeLogin, "username": ""})
	msg := client.expect(protocol.TypeError)
	req.Equal("Username required", msg.Message)
}

func TestControl_Rejects_Messages_Before_Login(t *testing.T) {
	req := require.New(t)
	svc := startControl(t)

	client := dialControl(t, svc)
	client.send(map[string]any{"type": protocol.TypeChat, "content": "hello"})
	msg := client.expect(protocol.TypeError)
	req.Equal("Not logged in", msg.Message)
}

func TestControl_Heartbeat_Ack(t *testing.T) {
	svc := startControl(t)

	client := dialControl(t, svc)
	client.login("alice")

	client.send(map[string]any{"type": protocol.TypeHeartbeat})
	client.expect(protocol.TypeHeartbeatAck)
}

func TestControl_Chat_Reaches_Everyone_Including_Sender(t *testing.T) {
	req := require.New(t)
	svc := startControl(t)

	alice := dialControl(t, svc)
	bob := dialControl(t, svc)
	aliceUID := alice.login("alice")
	bob.login("bob")
	alice.expect(protocol.TypeUserJoined)

	alice.send(map[string]any{"type": protocol.TypeChat, "content": "hello room"})

	// The sender sees the relayed message first, then the ack
	relayed := alice.expect(protocol.TypeChat)
	req.Equal(aliceUID, relayed.UID)
	req.Equal("alice", relayed.Username)
	req.Equal("hello room", relayed.Content)
	alice.expect(protocol.TypeChatSent)

	relayed = bob.expect(protocol.TypeChat)
	req.Equal("hello room", relayed.Content)
}

func TestControl_Broadcast_Acked_Separately(t *testing.T) {
	svc := startControl(t)

	alice := dialControl(t, svc)
	alice.login("alice")

	alice.send(map[string]any{"type": protocol.TypeBroadcast, "content": "announcement"})
	alice.expect(protocol.TypeBroadcast)
	alice.expect(protocol.TypeBroadcastSent)
}

func TestControl_Empty_Chat_Rejected(t *testing.T) {
	req := require.New(t)
	svc := startControl(t)

	alice := dialControl(t, svc)
	alice.login("alice")

	alice.send(map[string]any{"type": protocol.TypeChat, "content": ""})
	msg := alice.expect(protocol.TypeError)
	req.Equal("Empty message", msg.Message)
}

func TestControl_Unicast_Is_Private(t *testing.T) {
	req := require.New(t)
	svc := startControl(t)

	alice := dialControl(t, svc)
	bob := dialControl(t, svc)
	carol := dialControl(t, svc)

	aliceUID := alice.login("alice")
	bobUID := bob.login("bob")
	carol.login("carol")
	alice.expect(protocol.TypeUserJoined) // bob
	alice.expect(protocol.TypeUserJoined) // carol
	bob.expect(protocol.TypeUserJoined)   // carol

	alice.send(map[string]any{
		"type":       protocol.TypeUnicast,
		"target_uid": bobUID,
		"content":    "just for you",
	})

	private := bob.expect(protocol.TypeUnicast)
	req.Equal(aliceUID, private.UID)
	req.Equal("just for you", private.Content)

	sent := alice.expect(protocol.TypeUnicastSent)
	req.Equal(bobUID, sent.TargetUID)

	// Carol sees nothing, and the message never enters history
	alice.send(map[string]any{"type": protocol.TypeGetHistory})
	history := alice.expect(protocol.TypeHistory)
	req.Empty(history.Messages)

	carolNext := make(chan protocol.Message, 1)
	go func() {
		// Read without require: cleanup closes the connection after the
		// timeout below, and a read error here must not fail the test.
		frame, err := protocol.ReadFrame(carol.conn, protocol.MaxControlFrame)
		if err != nil {
			return
		}
		var msg protocol.Message
		if json.Unmarshal(frame, &msg) == nil {
			carolNext <- msg
		}
	}()
	select {
	case msg := <-carolNext:
		req.Failf("carol must not see private traffic", "got %s", msg.Type)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestControl_Unicast_Unknown_Target(t *testing.T) {
	req := require.New(t)
	svc := startControl(t)

	alice := dialControl(t, svc)
	alice.login("alice")

	alice.send(map[string]any{
		"type":       protocol.TypeUnicast,
		"target_uid": 99,
		"content":    "anyone there?",
	})
	msg := alice.expect(protocol.TypeError)
	req.Equal("Target user not found", msg.Message)
}

func TestControl_History_And_Participants(t *testing.T) {
	req := require.New(t)
	svc := startControl(t)

	alice := dialControl(t, svc)
	bob := dialControl(t, svc)
	alice.login("alice")
	bob.login("bob")
	alice.expect(protocol.TypeUserJoined)

	alice.send(map[string]any{"type": protocol.TypeChat, "content": "first"})
	alice.expect(protocol.TypeChat)
	alice.expect(protocol.TypeChatSent)
	bob.expect(protocol.TypeChat)

	bob.send(map[string]any{"type": protocol.TypeGetHistory})
	history := bob.expect(protocol.TypeHistory)
	req.Len(history.Messages, 1)
	req.Equal("first", history.Messages[0].Content)

	bob.send(map[string]any{"type": protocol.TypeGetParticipants})
	list := bob.expect(protocol.TypeParticipantList)
	req.Len(list.Participants, 2)
	req.Equal("alice", list.Participants[0].Username)
	req.Equal("bob", list.Participants[1].Username)
}

func TestControl_File_Ports_And_Listing(t *testing.T) {
	req := require.New(t)
	svc := startControl(t)

	alice := dialControl(t, svc)
	alice.login("alice")

	alice.send(map[string]any{"type": protocol.TypeFileOffer})
	offer := alice.expect(protocol.TypeFileUploadPort)
	req.Equal(13000, offer.Port)

	alice.send(map[string]any{"type": protocol.TypeFileRequest})
	listing := alice.expect(protocol.TypeFileDownloadPort)
	req.Equal(14000, listing.Port)
	req.Len(listing.Files, 1)
	req.Equal("notes.txt", listing.Files[0].Filename)
}

func TestControl_Single_Presenter(t *testing.T) {
	req := require.New(t)
	svc := startControl(t)

	alice := dialControl(t, svc)
	bob := dialControl(t, svc)
	aliceUID := alice.login("alice")
	bob.login("bob")
	alice.expect(protocol.TypeUserJoined)

	// When alice starts presenting, everyone hears the broadcast and
	// alice additionally receives the relay port.
	alice.send(map[string]any{"type": protocol.TypePresentStart})
	started := alice.expect(protocol.TypePresentStartBroadcast)
	req.Equal(aliceUID, started.UID)
	req.Equal(screenPort, started.ScreenSharePort)
	ports := alice.expect(protocol.TypeScreenSharePorts)
	req.Equal(screenPort, ports.Port)

	bob.expect(protocol.TypePresentStartBroadcast)

	// Then bob cannot take the slot
	bob.send(map[string]any{"type": protocol.TypePresentStart})
	rejection := bob.expect(protocol.TypeError)
	req.Equal("Someone else is already presenting", rejection.Message)

	// Until alice stops
	alice.send(map[string]any{"type": protocol.TypePresentStop})
	alice.expect(protocol.TypePresentStopBroadcast)
	alice.expect(protocol.TypePresentStopped)
	bob.expect(protocol.TypePresentStopBroadcast)

	bob.send(map[string]any{"type": protocol.TypePresentStart})
	bob.expect(protocol.TypePresentStartBroadcast)
	bob.expect(protocol.TypeScreenSharePorts)
}

func TestControl_Present_Stop_Without_Slot(t *testing.T) {
	req := require.New(t)
	svc := startControl(t)

	alice := dialControl(t, svc)
	alice.login("alice")

	alice.send(map[string]any{"type": protocol.TypePresentStop})
	msg := alice.expect(protocol.TypeError)
	req.Equal("Not currently presenting", msg.Message)
}

func TestControl_Disconnect_Cleans_Up_Presenter(t *testing.T) {
	req := require.New(t)
	svc := startControl(t)

	alice := dialControl(t, svc)
	bob := dialControl(t, svc)
	aliceUID := alice.login("alice")
	bob.login("bob")
	alice.expect(protocol.TypeUserJoined)

	alice.send(map[string]any{"type": protocol.TypePresentStart})
	alice.expect(protocol.TypePresentStartBroadcast)
	alice.expect(protocol.TypeScreenSharePorts)
	bob.expect(protocol.TypePresentStartBroadcast)

	// When the presenter's connection dies without a logout
	req.NoError(alice.conn.Close())

	// Then bob sees the presentation end before the departure
	stopped := bob.expect(protocol.TypePresentStopBroadcast)
	req.Equal(aliceUID, stopped.UID)
	left := bob.expect(protocol.TypeUserLeft)
	req.Equal(aliceUID, left.UID)
	req.Equal("alice", left.Username)
}

func TestControl_Logout_Closes_The_Session(t *testing.T) {
	req := require.New(t)
	svc := startControl(t)

	alice := dialControl(t, svc)
	bob := dialControl(t, svc)
	aliceUID := alice.login("alice")
	bob.login("bob")
	alice.expect(protocol.TypeUserJoined)

	alice.send(map[string]any{"type": protocol.TypeLogout})

	left := bob.expect(protocol.TypeUserLeft)
	req.Equal(aliceUID, left.UID)

	// The server hangs up after a logout
	req.NoError(alice.conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	_, err := protocol.ReadFrame(alice.conn, protocol.MaxControlFrame)
	req.Error(err)

	// And the name is free again
	carol := dialControl(t, svc)
	req.Equal(domain.UID(3), carol.login("alice"))
}

func TestControl_Unknown_Message_Type(t *testing.T) {
	req := require.New(t)
	svc := startControl(t)

	alice := dialControl(t, svc)
	alice.login("alice")

	alice.send(map[string]any{"type": "teleport"})
	msg := alice.expect(protocol.TypeError)
	req.Equal("Unknown message type: teleport", msg.Message)
}

func TestControl_FileAvailable_Broadcast(t *testing.T) {
	req := require.New(t)
	svc := startControl(t)

	alice := dialControl(t, svc)
	bob := dialControl(t, svc)
	alice.login("alice")
	bob.login("bob")
	alice.expect(protocol.TypeUserJoined)

	svc.FileAvailable(domain.FileRecord{
		ID:       "abc",
		Filename: "slides.pdf",
		Uploader: "bob",
	})

	for _, client := range []*controlClient{alice, bob} {
		msg := client.expect(protocol.TypeFileAvailable)
		req.Equal("slides.pdf", msg.Filename)
		req.Equal("bob", msg.Uploader)
	}
}
