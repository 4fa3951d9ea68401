package service

// WSConfig holds WebSocket URL base for responses.
type WSConfig struct {
	BaseURL string
}

// WSURL returns the WebSocket endpoint clients should dial before sending JOIN.
func (c *WSConfig) WSURL() string {
	if c == nil || c.BaseURL == "" {
		return "/ws"
	}
	base := c.BaseURL
	if base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	return base + "/ws"
}
