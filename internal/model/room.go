package model

// RoomSummary is one entry in the GET /rooms listing.
type RoomSummary struct {
	RoomID      string `json:"room_id"`
	MemberCount int    `json:"member_count"`
}

// RoomsResponse is the response for GET /rooms.
type RoomsResponse struct {
	Rooms []RoomSummary `json:"rooms"`
}

// RoomDetailResponse is the response for GET /rooms/:id.
type RoomDetailResponse struct {
	RoomID      string       `json:"room_id"`
	Members     []ClientInfo `json:"members"`
	HasSnapshot bool         `json:"has_snapshot"`
	WSURL       string       `json:"ws_url"`
}

// RoomSnapshotResponse is the response for GET /rooms/:id/snapshot (archive).
type RoomSnapshotResponse struct {
	RoomID    string `json:"room_id"`
	Code      string `json:"code"`
	UpdatedAt int64  `json:"updated_at"`
}

// CompileRequest is the request body for POST /compile. An empty script is
// valid and forwarded as-is; only the language is mandatory.
type CompileRequest struct {
	Code     string `json:"code"`
	Language string `json:"language" binding:"required"`
}

// CompileResponse is the success response for POST /compile.
type CompileResponse struct {
	Output string `json:"output"`
}
