package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tusshar172004/Code-Pod/internal/handler"
	"github.com/Tusshar172004/Code-Pod/pkg/constants"
)

// New builds the HTTP router.
func New(
	roomHandler *handler.RoomHandler,
	compileHandler *handler.CompileHandler,
	roomWS *handler.RoomWSHandler,
	health *handler.HealthHandler,
) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET(constants.PathHealth, health.Health)
	r.GET(constants.PathReady, health.Ready)

	// Execution proxy
	r.POST(constants.PathCompile, compileHandler.Compile)

	// REST view over live rooms and the snapshot archive
	rooms := r.Group(constants.PathRooms)
	{
		rooms.GET("", roomHandler.ListRooms)
		rooms.GET("/:id", roomHandler.GetRoom)
		rooms.GET("/:id/snapshot", roomHandler.GetRoomSnapshot)
	}

	// WebSocket: connect, then send JOIN
	r.GET(constants.PathWS, roomWS.ServeWS)

	return r
}
