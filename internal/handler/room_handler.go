package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tusshar172004/Code-Pod/internal/archive"
	"github.com/Tusshar172004/Code-Pod/internal/errs"
	"github.com/Tusshar172004/Code-Pod/internal/model"
	"github.com/Tusshar172004/Code-Pod/internal/service"
)

// RoomHandler handles the REST view over live rooms and the snapshot archive.
type RoomHandler struct {
	hub    *service.RoomHub
	store  *archive.Store // nil when the archive is disabled
	wsConf *service.WSConfig
}

// NewRoomHandler creates a room handler. store may be nil.
func NewRoomHandler(hub *service.RoomHub, store *archive.Store, wsBaseURL string) *RoomHandler {
	return &RoomHandler{
		hub:    hub,
		store:  store,
		wsConf: &service.WSConfig{BaseURL: wsBaseURL},
	}
}

// ListRooms godoc
// GET /rooms
func (h *RoomHandler) ListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, model.RoomsResponse{Rooms: h.hub.RoomSummaries()})
}

// GetRoom godoc
// GET /rooms/:id
func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID := c.Param("id")
	if roomID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room id required"})
		return
	}
	members, hasSnapshot, ok := h.hub.RoomDetail(roomID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	c.JSON(http.StatusOK, model.RoomDetailResponse{
		RoomID:      roomID,
		Members:     members,
		HasSnapshot: hasSnapshot,
		WSURL:       h.wsConf.WSURL(),
	})
}

// GetRoomSnapshot godoc
// GET /rooms/:id/snapshot
func (h *RoomHandler) GetRoomSnapshot(c *gin.Context) {
	roomID := c.Param("id")
	if roomID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room id required"})
		return
	}
	if h.store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "snapshot archive disabled"})
		return
	}
	snap, err := h.store.Latest(roomID)
	if err != nil {
		if errors.Is(err, errs.ErrSnapshotNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "snapshot not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load snapshot"})
		return
	}
	c.JSON(http.StatusOK, model.RoomSnapshotResponse{
		RoomID:    snap.RoomID,
		Code:      snap.Code,
		UpdatedAt: snap.UpdatedAt.Unix(),
	})
}
