package constants

// Route paths shared between router and startup logging.
const (
	PathHealth  = "/health"
	PathReady   = "/ready"
	PathCompile = "/compile"
	PathWS      = "/ws"
	PathRooms   = "/rooms"
)
