package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Tusshar172004/Code-Pod/internal/service"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// RoomWSHandler handles WebSocket connections for GET /ws.
// A client connects, then sends JOIN with its room id and username; every
// subsequent frame is routed by the hub.
type RoomWSHandler struct {
	hub    *service.RoomHub
	logger *zap.Logger
}

// NewRoomWSHandler creates the WebSocket room handler.
func NewRoomWSHandler(hub *service.RoomHub, logger *zap.Logger) *RoomWSHandler {
	return &RoomWSHandler{hub: hub, logger: logger}
}

// ServeWS upgrades the request to WebSocket and runs the session loop.
func (h *RoomWSHandler) ServeWS(c *gin.Context) {
	conn, err := h.hub.Upgrader().Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	peer, cleanup := h.hub.Register(conn)
	defer cleanup()

	go h.writePump(peer)
	h.readPump(peer)
}

func (h *RoomWSHandler) readPump(p *service.Peer) {
	defer func() {
		_ = p.Conn.Close()
	}()
	_ = p.Conn.SetReadDeadline(time.Now().Add(pongWait))
	p.Conn.SetPongHandler(func(string) error {
		return p.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, data, err := p.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Debug("read error", zap.String("socket_id", p.ID), zap.Error(err))
			}
			break
		}
		h.hub.Dispatch(p, data)
	}
}

func (h *RoomWSHandler) writePump(p *service.Peer) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = p.Conn.Close()
	}()
	for {
		select {
		case data := <-p.Send:
			_ = p.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-p.Done():
			_ = p.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = p.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case <-ticker.C:
			_ = p.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
