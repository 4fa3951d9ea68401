package model

import "encoding/json"

// EventType identifies a room event on the wire.
type EventType string

// Inbound and outbound event names. JOINED, DISCONNECTED and call-initiated
// are outbound-only; the rest are echoed back out under the same name.
const (
	EventJoin          EventType = "JOIN"
	EventJoined        EventType = "JOINED"
	EventDisconnected  EventType = "DISCONNECTED"
	EventCodeChange    EventType = "CODE_CHANGE"
	EventSyncCode      EventType = "SYNC_CODE"
	EventChatMessage   EventType = "chat-message"
	EventToggleMute    EventType = "toggle-mute"
	EventInitiateCall  EventType = "initiate-call"
	EventCallInitiated EventType = "call-initiated"
)

// Event is the envelope for every WebSocket frame in both directions.
type Event struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// JoinPayload is sent by a client right after connecting.
// PeerID is empty when the client has no call transport (no microphone).
type JoinPayload struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
	PeerID   string `json:"peerId,omitempty"`
}

// CodePayload carries the full buffer for CODE_CHANGE and SYNC_CODE.
type CodePayload struct {
	RoomID string `json:"roomId"`
	Code   string `json:"code"`
}

// ChatPayload is an inbound chat-message.
type ChatPayload struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

// MutePayload is an inbound toggle-mute.
type MutePayload struct {
	RoomID  string `json:"roomId"`
	IsMuted bool   `json:"isMuted"`
}

// CallPayload is an inbound initiate-call.
type CallPayload struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

// ClientInfo describes one room member in a JOINED membership snapshot.
type ClientInfo struct {
	SocketID string `json:"socketId"`
	Username string `json:"username"`
	PeerID   string `json:"peerId,omitempty"`
}

// JoinedPayload is broadcast to every room member (including the joiner)
// after a JOIN is accepted.
type JoinedPayload struct {
	Clients  []ClientInfo `json:"clients"`
	Username string       `json:"username"`
	SocketID string       `json:"socketId"`
}

// CodeOutPayload is the outbound form of CODE_CHANGE / SYNC_CODE.
type CodeOutPayload struct {
	Code string `json:"code"`
}

// ChatOutPayload is the outbound form of chat-message.
type ChatOutPayload struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

// MuteOutPayload is the outbound form of toggle-mute.
type MuteOutPayload struct {
	SocketID string `json:"socketId"`
	IsMuted  bool   `json:"isMuted"`
}

// CallOutPayload is the outbound form of call-initiated.
type CallOutPayload struct {
	CallerUsername string `json:"callerUsername"`
}

// DisconnectedPayload is broadcast to remaining members when a connection drops.
type DisconnectedPayload struct {
	SocketID string `json:"socketId"`
	Username string `json:"username"`
}

// NewEvent marshals payload into an Event envelope.
// Payload types above are marshal-safe, so the error path never triggers for them.
func NewEvent(t EventType, payload any) (*Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{Type: t, Payload: raw}, nil
}
