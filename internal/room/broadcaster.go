package room

// Outbound message types.
const (
	MsgRoomCreated      = "room-created"
	MsgJoined           = "joined"
	MsgPlayerJoined     = "player-joined"
	MsgPlayerLeft       = "player-left"
	MsgPlayerConnection = "player-connection"
	MsgKicked           = "kicked"
	MsgPlayerKicked     = "player-kicked"
	MsgHostChanged      = "host-changed"
	MsgGameStart        = "game-start"
	MsgStateUpdate      = "state-update"
	MsgAnimation        = "animation"
	MsgChat             = "chat"
	MsgError            = "error-msg"
	MsgSessionEnded     = "session-ended"
)

// Message is one outbound envelope.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Conn is a client connection as the manager sees it. Send must not block;
// a transport that cannot keep up drops the connection instead.
type Conn interface {
	ID() string
	Send(msg Message)
	Close()
}

// broadcast sends to every connected member except the one on skip.
// Callers hold r.mu.
func (r *Room) broadcast(typ string, data any, skip Conn) {
	msg := Message{Type: typ, Data: data}
	for _, m := range r.members {
		if m.conn == nil || m.conn == skip {
			continue
		}
		m.conn.Send(msg)
	}
}

// sendTo delivers to a single member when connected.
func (r *Room) sendTo(m *Member, typ string, data any) {
	if m == nil || m.conn == nil {
		return
	}
	m.conn.Send(Message{Type: typ, Data: data})
}
