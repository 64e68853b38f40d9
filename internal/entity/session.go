package entity

// Session - a display-name reservation issued by the REST boundary and
// checked during the websocket handshake. Not part of the world state.
type Session struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}
