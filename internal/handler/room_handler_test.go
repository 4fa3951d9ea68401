package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Tusshar172004/Code-Pod/internal/handler"
	"github.com/Tusshar172004/Code-Pod/internal/model"
	"github.com/Tusshar172004/Code-Pod/internal/service"
)

func newRoomRouter(hub *service.RoomHub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewRoomHandler(hub, nil, "wss://pod.example.com")
	r := gin.New()
	r.GET("/rooms", h.ListRooms)
	r.GET("/rooms/:id", h.GetRoom)
	r.GET("/rooms/:id/snapshot", h.GetRoomSnapshot)
	return r
}

func joinRoom(t *testing.T, hub *service.RoomHub, roomID, username string) *service.Peer {
	t.Helper()
	peer, _ := hub.Register(nil)
	evt, err := model.NewEvent(model.EventJoin, model.JoinPayload{RoomID: roomID, Username: username})
	require.NoError(t, err)
	raw, err := json.Marshal(evt)
	require.NoError(t, err)
	hub.Dispatch(peer, raw)
	return peer
}

func TestListRooms(t *testing.T) {
	hub := service.NewRoomHub(1024, 1024, 1<<20, zap.NewNop())
	joinRoom(t, hub, "r1", "Alice")
	joinRoom(t, hub, "r1", "Bob")
	joinRoom(t, hub, "r2", "Carol")

	r := newRoomRouter(hub)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rooms", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp model.RoomsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Rooms, 2)

	counts := map[string]int{}
	for _, room := range resp.Rooms {
		counts[room.RoomID] = room.MemberCount
	}
	assert.Equal(t, map[string]int{"r1": 2, "r2": 1}, counts)
}

func TestGetRoom(t *testing.T) {
	hub := service.NewRoomHub(1024, 1024, 1<<20, zap.NewNop())
	alice := joinRoom(t, hub, "r1", "Alice")

	r := newRoomRouter(hub)

	t.Run("existing room", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rooms/r1", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp model.RoomDetailResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "r1", resp.RoomID)
		assert.False(t, resp.HasSnapshot)
		assert.Equal(t, "wss://pod.example.com/ws", resp.WSURL)
		require.Len(t, resp.Members, 1)
		assert.Equal(t, alice.ID, resp.Members[0].SocketID)
		assert.Equal(t, "Alice", resp.Members[0].Username)
	})

	t.Run("unknown room", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rooms/nope", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("snapshot flag follows code writes", func(t *testing.T) {
		evt, err := model.NewEvent(model.EventCodeChange, model.CodePayload{RoomID: "r1", Code: "X"})
		require.NoError(t, err)
		raw, err := json.Marshal(evt)
		require.NoError(t, err)
		hub.Dispatch(alice, raw)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rooms/r1", nil))

		var resp model.RoomDetailResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.True(t, resp.HasSnapshot)
	})
}

func TestGetRoomSnapshotWithArchiveDisabled(t *testing.T) {
	hub := service.NewRoomHub(1024, 1024, 1<<20, zap.NewNop())
	joinRoom(t, hub, "r1", "Alice")

	r := newRoomRouter(hub)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rooms/r1/snapshot", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
