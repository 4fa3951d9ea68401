package service

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Tusshar172004/Code-Pod/internal/model"
)

// Peer represents one WebSocket connection in the hub.
//
// Send is never closed: a concurrent fan-out may still hold this peer in its
// recipient slice after Unregister, and a send on a closed channel would
// panic the process. Writers watch Done instead.
type Peer struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte

	// done is closed exactly once, by Unregister (guarded by the peers map).
	done chan struct{}

	// roomID is set once on the first accepted JOIN and never changes;
	// a connection belongs to at most one room for its lifetime.
	roomID string
}

// Done reports hub-side teardown of this peer; the write pump exits on it.
func (p *Peer) Done() <-chan struct{} { return p.done }

// SnapshotArchiver receives a copy of accepted code writes for persistence (optional).
type SnapshotArchiver interface {
	WriteSnapshot(ctx context.Context, roomID, code string)
	RoomClosed(ctx context.Context, roomID string)
}

// RoomHub owns all room session state: presence, membership, and the latest
// code snapshot per room. Every mutation and fan-out goes through its methods.
//
// Concurrent writes to the same room resolve by arrival order at the hub
// mutex, not wall-clock send time: the last accepted write wins with no merge.
type RoomHub struct {
	mu        sync.RWMutex
	peers     map[string]*Peer // socketID -> peer
	presence  *PresenceRegistry
	members   *MembershipIndex
	snapshots *SnapshotStore

	upgrader   websocket.Upgrader
	maxMsgSize int64
	log        *zap.Logger
	archiver   SnapshotArchiver // optional: copy of latest code to the archive
	ctx        context.Context  // app context for archiving (shutdown propagation)
}

// SetArchiver sets the optional archiver for persisting latest room snapshots.
func (h *RoomHub) SetArchiver(a SnapshotArchiver) { h.archiver = a }

// SetContext sets the app context for archiving (for shutdown propagation).
func (h *RoomHub) SetContext(ctx context.Context) { h.ctx = ctx }

// NewRoomHub creates a new room hub.
func NewRoomHub(readBufferSize, writeBufferSize int, maxMessageSize int64, log *zap.Logger) *RoomHub {
	return &RoomHub{
		peers:      make(map[string]*Peer),
		presence:   NewPresenceRegistry(),
		members:    NewMembershipIndex(),
		snapshots:  NewSnapshotStore(),
		maxMsgSize: maxMessageSize,
		log:        log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  readBufferSize,
			WriteBufferSize: writeBufferSize,
			// Allow all origins; the protocol has no room auth to protect.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Register adds a connection to the hub and returns its peer plus a cleanup
// function. The socket id is server-assigned and opaque to clients.
func (h *RoomHub) Register(conn *websocket.Conn) (*Peer, func()) {
	if conn != nil && h.maxMsgSize > 0 {
		conn.SetReadLimit(h.maxMsgSize)
	}
	p := &Peer{
		ID:   uuid.New().String(),
		Conn: conn,
		Send: make(chan []byte, 256),
		done: make(chan struct{}),
	}
	h.mu.Lock()
	h.peers[p.ID] = p
	h.mu.Unlock()

	h.log.Info("peer connected", zap.String("socket_id", p.ID))

	cleanup := func() {
		h.Unregister(p)
	}
	return p, cleanup
}

// Dispatch decodes one inbound frame and routes it to the matching handler.
// Malformed frames are dropped with a diagnostic; they never take down the
// hub or affect other connections.
func (h *RoomHub) Dispatch(p *Peer, raw []byte) {
	var evt model.Event
	if err := json.Unmarshal(raw, &evt); err != nil {
		h.log.Warn("dropping malformed frame", zap.String("socket_id", p.ID), zap.Error(err))
		return
	}
	switch evt.Type {
	case model.EventJoin:
		var pl model.JoinPayload
		if err := json.Unmarshal(evt.Payload, &pl); err != nil || pl.RoomID == "" {
			h.dropPayload(p, evt.Type, err)
			return
		}
		h.handleJoin(p, pl)
	case model.EventCodeChange:
		var pl model.CodePayload
		if err := json.Unmarshal(evt.Payload, &pl); err != nil || pl.RoomID == "" {
			h.dropPayload(p, evt.Type, err)
			return
		}
		h.handleCodeWrite(p, pl, false)
	case model.EventSyncCode:
		var pl model.CodePayload
		if err := json.Unmarshal(evt.Payload, &pl); err != nil || pl.RoomID == "" {
			h.dropPayload(p, evt.Type, err)
			return
		}
		h.handleCodeWrite(p, pl, true)
	case model.EventChatMessage:
		var pl model.ChatPayload
		if err := json.Unmarshal(evt.Payload, &pl); err != nil || pl.RoomID == "" {
			h.dropPayload(p, evt.Type, err)
			return
		}
		h.handleChat(p, pl)
	case model.EventToggleMute:
		var pl model.MutePayload
		if err := json.Unmarshal(evt.Payload, &pl); err != nil || pl.RoomID == "" {
			h.dropPayload(p, evt.Type, err)
			return
		}
		h.handleToggleMute(p, pl)
	case model.EventInitiateCall:
		var pl model.CallPayload
		if err := json.Unmarshal(evt.Payload, &pl); err != nil || pl.RoomID == "" {
			h.dropPayload(p, evt.Type, err)
			return
		}
		h.handleInitiateCall(p, pl)
	default:
		h.log.Warn("dropping unknown event type",
			zap.String("socket_id", p.ID), zap.String("type", string(evt.Type)))
	}
}

func (h *RoomHub) dropPayload(p *Peer, t model.EventType, err error) {
	h.log.Warn("dropping event with bad payload",
		zap.String("socket_id", p.ID), zap.String("type", string(t)), zap.Error(err))
}

// handleJoin registers presence, joins the room, broadcasts the membership
// snapshot to every member (sender included), then seeds the newcomer with
// the stored code, if the room has any.
func (h *RoomHub) handleJoin(p *Peer, pl model.JoinPayload) {
	h.mu.Lock()
	if p.roomID != "" {
		h.mu.Unlock()
		h.log.Warn("dropping JOIN from already joined peer",
			zap.String("socket_id", p.ID), zap.String("room_id", p.roomID))
		return
	}
	h.presence.Put(p.ID, pl.Username, pl.PeerID)
	h.members.Join(pl.RoomID, p.ID)
	p.roomID = pl.RoomID

	clients, recipients := h.roomViewLocked(pl.RoomID)
	code, hasCode := h.snapshots.Get(pl.RoomID)
	h.mu.Unlock()

	h.log.Info("peer joined room",
		zap.String("socket_id", p.ID),
		zap.String("room_id", pl.RoomID),
		zap.String("username", pl.Username),
		zap.Int("members", len(clients)))

	h.fanOut(recipients, model.EventJoined, model.JoinedPayload{
		Clients:  clients,
		Username: pl.Username,
		SocketID: p.ID,
	})
	if hasCode {
		h.fanOut([]*Peer{p}, model.EventSyncCode, model.CodeOutPayload{Code: code})
	}
}

// handleCodeWrite stores the new buffer and fans it out. SYNC_CODE includes
// the sender (it confirms the round-trip); CODE_CHANGE excludes it, since the
// sender's editor already reflects its own edit.
func (h *RoomHub) handleCodeWrite(p *Peer, pl model.CodePayload, includeSender bool) {
	h.mu.Lock()
	if p.roomID != pl.RoomID {
		h.mu.Unlock()
		h.log.Debug("dropping code write for unjoined room",
			zap.String("socket_id", p.ID), zap.String("room_id", pl.RoomID))
		return
	}
	h.snapshots.Set(pl.RoomID, pl.Code)
	recipients := h.recipientsLocked(pl.RoomID, p, includeSender)
	h.mu.Unlock()

	eventType := model.EventCodeChange
	if includeSender {
		eventType = model.EventSyncCode
	}
	h.fanOut(recipients, eventType, model.CodeOutPayload{Code: pl.Code})
	h.archiveSnapshot(pl.RoomID, pl.Code)
}

// handleChat relays a chat message to every member, sender included. Nothing
// is persisted.
func (h *RoomHub) handleChat(p *Peer, pl model.ChatPayload) {
	h.mu.RLock()
	if p.roomID != pl.RoomID {
		h.mu.RUnlock()
		return
	}
	recipients := h.recipientsLocked(pl.RoomID, p, true)
	h.mu.RUnlock()

	h.fanOut(recipients, model.EventChatMessage, model.ChatOutPayload{
		Username: pl.Username,
		Message:  pl.Message,
	})
}

// handleToggleMute relays the sender's mute state to the rest of the room.
// Mute state is ephemeral: it lives in the broadcast and client UI only.
func (h *RoomHub) handleToggleMute(p *Peer, pl model.MutePayload) {
	h.mu.RLock()
	if p.roomID != pl.RoomID {
		h.mu.RUnlock()
		return
	}
	recipients := h.recipientsLocked(pl.RoomID, p, false)
	h.mu.RUnlock()

	h.fanOut(recipients, model.EventToggleMute, model.MuteOutPayload{
		SocketID: p.ID,
		IsMuted:  pl.IsMuted,
	})
}

// handleInitiateCall notifies the rest of the room that the sender started a call.
func (h *RoomHub) handleInitiateCall(p *Peer, pl model.CallPayload) {
	h.mu.RLock()
	if p.roomID != pl.RoomID {
		h.mu.RUnlock()
		return
	}
	recipients := h.recipientsLocked(pl.RoomID, p, false)
	h.mu.RUnlock()

	h.fanOut(recipients, model.EventCallInitiated, model.CallOutPayload{
		CallerUsername: pl.Username,
	})
}

// Unregister removes a connection: presence entry and room membership go,
// remaining members get DISCONNECTED with the username captured before
// removal, and an emptied room is evicted together with its snapshot.
func (h *RoomHub) Unregister(p *Peer) {
	h.mu.Lock()
	if _, ok := h.peers[p.ID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.peers, p.ID)

	part, _ := h.presence.Get(p.ID)
	h.presence.Remove(p.ID)

	roomID := p.roomID
	var recipients []*Peer
	var emptied bool
	if roomID != "" {
		emptied = h.members.Leave(roomID, p.ID)
		if emptied {
			h.snapshots.Evict(roomID)
		} else {
			recipients = h.recipientsLocked(roomID, p, false)
		}
	}
	h.mu.Unlock()

	close(p.done)
	h.log.Info("peer disconnected",
		zap.String("socket_id", p.ID),
		zap.String("room_id", roomID),
		zap.String("username", part.Username))

	if len(recipients) > 0 {
		h.fanOut(recipients, model.EventDisconnected, model.DisconnectedPayload{
			SocketID: p.ID,
			Username: part.Username,
		})
	}
	if emptied {
		h.log.Info("room closed (empty)", zap.String("room_id", roomID))
		if h.archiver != nil {
			h.archiver.RoomClosed(h.archiveCtx(), roomID)
		}
	}
}

// roomViewLocked builds the membership snapshot and recipient peers for a
// room. Caller holds h.mu. A member id without a presence entry is a
// connection mid-disconnect and is skipped.
func (h *RoomHub) roomViewLocked(roomID string) ([]model.ClientInfo, []*Peer) {
	memberIDs := h.members.Members(roomID)
	clients := make([]model.ClientInfo, 0, len(memberIDs))
	recipients := make([]*Peer, 0, len(memberIDs))
	for _, id := range memberIDs {
		part, ok := h.presence.Get(id)
		if !ok {
			continue
		}
		clients = append(clients, model.ClientInfo{
			SocketID: id,
			Username: part.Username,
			PeerID:   part.PeerID,
		})
		if peer, ok := h.peers[id]; ok {
			recipients = append(recipients, peer)
		}
	}
	return clients, recipients
}

// recipientsLocked returns the room's peers, optionally excluding the sender.
// Caller holds h.mu (read or write).
func (h *RoomHub) recipientsLocked(roomID string, sender *Peer, includeSender bool) []*Peer {
	memberIDs := h.members.Members(roomID)
	recipients := make([]*Peer, 0, len(memberIDs))
	for _, id := range memberIDs {
		if !includeSender && id == sender.ID {
			continue
		}
		if peer, ok := h.peers[id]; ok {
			recipients = append(recipients, peer)
		}
	}
	return recipients
}

// fanOut marshals the event once and delivers it to each recipient's send
// buffer. The hub lock is never held here; a full buffer drops the frame for
// that peer rather than blocking the dispatch path.
func (h *RoomHub) fanOut(recipients []*Peer, t model.EventType, payload any) {
	evt, err := model.NewEvent(t, payload)
	if err != nil {
		h.log.Error("marshal event payload", zap.String("type", string(t)), zap.Error(err))
		return
	}
	raw, err := json.Marshal(evt)
	if err != nil {
		h.log.Error("marshal event", zap.String("type", string(t)), zap.Error(err))
		return
	}
	for _, peer := range recipients {
		select {
		case peer.Send <- raw:
		default:
			h.log.Warn("peer send buffer full, dropping frame",
				zap.String("socket_id", peer.ID), zap.String("type", string(t)))
		}
	}
}

func (h *RoomHub) archiveSnapshot(roomID, code string) {
	if h.archiver == nil {
		return
	}
	h.archiver.WriteSnapshot(h.archiveCtx(), roomID, code)
}

func (h *RoomHub) archiveCtx() context.Context {
	if h.ctx != nil {
		return h.ctx
	}
	return context.Background()
}

// Upgrader returns the WebSocket upgrader for HTTP handlers.
func (h *RoomHub) Upgrader() *websocket.Upgrader {
	return &h.upgrader
}

// RoomSummaries lists active rooms with their member counts.
func (h *RoomHub) RoomSummaries() []model.RoomSummary {
	h.mu.RLock()
	defer h.mu.RUnlock()
	roomIDs := h.members.Rooms()
	out := make([]model.RoomSummary, 0, len(roomIDs))
	for _, id := range roomIDs {
		out = append(out, model.RoomSummary{
			RoomID:      id,
			MemberCount: len(h.members.Members(id)),
		})
	}
	return out
}

// RoomDetail returns the membership snapshot of a room and whether a code
// snapshot exists. ok is false for rooms with no members.
func (h *RoomHub) RoomDetail(roomID string) (clients []model.ClientInfo, hasSnapshot bool, ok bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.members.Members(roomID)) == 0 {
		return nil, false, false
	}
	clients, _ = h.roomViewLocked(roomID)
	_, hasSnapshot = h.snapshots.Get(roomID)
	return clients, hasSnapshot, true
}

// Snapshot exposes the stored code for a room (for tests and diagnostics).
func (h *RoomHub) Snapshot(roomID string) (string, bool) {
	return h.snapshots.Get(roomID)
}

// PeerCount returns the number of connected peers (for debugging).
func (h *RoomHub) PeerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}
