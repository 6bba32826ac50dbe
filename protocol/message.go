package protocol

import (
	"time"

	"lan-collab/domain"
)

// Client to server message types.
const (
	TypeLogin           = "login"
	TypeHeartbeat       = "heartbeat"
	TypeChat            = "chat"
	TypeBroadcast       = "broadcast"
	TypeUnicast         = "unicast"
	TypeGetHistory      = "get_history"
	TypeGetParticipants = "get_participants"
	TypeFileOffer       = "file_offer"
	TypeFileRequest     = "file_request"
	TypePresentStart    = "present_start"
	TypePresentStop     = "present_stop"
	TypeLogout          = "logout"
)

// Server to client message types.
const (
	TypeLoginSuccess          = "login_success"
	TypeParticipantList       = "participant_list"
	TypeHistory               = "history"
	TypeUserJoined            = "user_joined"
	TypeUserLeft              = "user_left"
	TypeHeartbeatAck          = "heartbeat_ack"
	TypeChatSent              = "chat_sent"
	TypeBroadcastSent         = "broadcast_sent"
	TypeFileUploadPort        = "file_upload_port"
	TypeFileDownloadPort      = "file_download_port"
	TypeFileAvailable         = "file_available"
	TypeScreenSharePorts      = "screen_share_ports"
	TypePresentStartBroadcast = "present_start_broadcast"
	TypePresentStopBroadcast  = "present_stop_broadcast"
	TypePresentStopped        = "present_stopped"
	TypeUnicastSent           = "unicast_sent"
	TypeError                 = "error"
)

// Message is the control-plane envelope. Every frame carries at least
// Type; the remaining fields are populated per message kind.
type Message struct {
	Type            string               `json:"type"`
	UID             domain.UID           `json:"uid,omitempty"`
	Username        string               `json:"username,omitempty"`
	Content         string               `json:"content,omitempty"`
	TargetUID       domain.UID           `json:"target_uid,omitempty"`
	Message         string               `json:"message,omitempty"`
	Port            int                  `json:"port,omitempty"`
	ScreenSharePort int                  `json:"screen_share_port,omitempty"`
	Filename        string               `json:"filename,omitempty"`
	Uploader        string               `json:"uploader,omitempty"`
	Participants    []domain.Participant `json:"participants,omitempty"`
	Messages        []domain.ChatEntry   `json:"messages,omitempty"`
	Files           []domain.FileRecord  `json:"files,omitempty"`
	Timestamp       string               `json:"timestamp,omitempty"`
}

// Inbound payloads, validated before dispatch.

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
}

type ChatRequest struct {
	Content string `json:"content" validate:"required"`
}

type UnicastRequest struct {
	TargetUID domain.UID `json:"target_uid" validate:"required"`
	Content   string     `json:"content" validate:"required"`
}

func stamp() string {
	return time.Now().Format(time.RFC3339)
}

func NewLoginSuccess(uid domain.UID, username string) Message {
	return Message{Type: TypeLoginSuccess, UID: uid, Username: username, Timestamp: stamp()}
}

func NewParticipantList(participants []domain.Participant) Message {
	return Message{Type: TypeParticipantList, Participants: participants, Timestamp: stamp()}
}

func NewHistory(entries []domain.ChatEntry) Message {
	return Message{Type: TypeHistory, Messages: entries, Timestamp: stamp()}
}

func NewUserJoined(uid domain.UID, username string) Message {
	return Message{Type: TypeUserJoined, UID: uid, Username: username, Timestamp: stamp()}
}

func NewUserLeft(uid domain.UID, username string) Message {
	return Message{Type: TypeUserLeft, UID: uid, Username: username, Timestamp: stamp()}
}

func NewHeartbeatAck() Message {
	return Message{Type: TypeHeartbeatAck, Timestamp: stamp()}
}

func NewChatRelay(entry domain.ChatEntry) Message {
	return Message{
		Type:      string(entry.Kind),
		UID:       entry.UID,
		Username:  entry.Username,
		Content:   entry.Content,
		Timestamp: entry.At.Format(time.RFC3339),
	}
}

func NewUnicastRelay(from domain.Participant, target domain.UID, content string) Message {
	return Message{
		Type:      TypeUnicast,
		UID:       from.UID,
		Username:  from.Username,
		TargetUID: target,
		Content:   content,
		Timestamp: stamp(),
	}
}

func NewUnicastSent(target domain.UID) Message {
	return Message{Type: TypeUnicastSent, TargetUID: target, Timestamp: stamp()}
}

func NewFileUploadPort(port int) Message {
	return Message{Type: TypeFileUploadPort, Port: port, Timestamp: stamp()}
}

func NewFileDownloadPort(port int, files []domain.FileRecord) Message {
	return Message{Type: TypeFileDownloadPort, Port: port, Files: files, Timestamp: stamp()}
}

func NewFileAvailable(filename, uploader string) Message {
	return Message{Type: TypeFileAvailable, Filename: filename, Uploader: uploader, Timestamp: stamp()}
}

func NewScreenSharePorts(port int) Message {
	return Message{Type: TypeScreenSharePorts, Port: port, Timestamp: stamp()}
}

func NewPresentStartBroadcast(uid domain.UID, username string, port int) Message {
	return Message{
		Type:            TypePresentStartBroadcast,
		UID:             uid,
		Username:        username,
		ScreenSharePort: port,
		Timestamp:       stamp(),
	}
}

func NewPresentStopBroadcast(uid domain.UID, username string) Message {
	return Message{Type: TypePresentStopBroadcast, UID: uid, Username: username, Timestamp: stamp()}
}

func NewPresentStopped() Message {
	return Message{Type: TypePresentStopped, Timestamp: stamp()}
}

func NewAck(msgType string) Message {
	return Message{Type: msgType, Timestamp: stamp()}
}

func NewError(text string) Message {
	return Message{Type: TypeError, Message: text, Timestamp: stamp()}
}
