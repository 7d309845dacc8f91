package room

import (
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"economic-wars/internal/catalog"
	"economic-wars/internal/game"
)

const (
	codeLength     = 5
	maxClientIDLen = 64
	maxNameLen     = 16
	maxChatLen     = 500
)

// Member is one roster seat, keyed by the client's persistent id.
type Member struct {
	ClientID    string
	Name        string
	Avatar      int
	Connected   bool
	Kicked      bool
	PlayerID    string
	PlayerIndex int

	conn Conn
}

// Room is one session: a roster and, once started, the engine that owns
// the game. Every field is guarded by mu.
type Room struct {
	Code      string
	CreatedAt time.Time

	mu           sync.Mutex
	members      []*Member
	creator      string
	engine       *game.Engine
	lastActivity time.Time
	grace        *time.Timer
	graceGen     int
	closed       bool
}

func newRoom(code string, now time.Time) *Room {
	return &Room{Code: code, CreatedAt: now, lastActivity: now}
}

func (r *Room) started() bool { return r.engine != nil }

func (r *Room) member(clientID string) *Member {
	for _, m := range r.members {
		if m.ClientID == clientID {
			return m
		}
	}
	return nil
}

func (r *Room) memberByPlayer(playerID string) *Member {
	if playerID == "" {
		return nil
	}
	for _, m := range r.members {
		if m.PlayerID == playerID && !m.Kicked {
			return m
		}
	}
	return nil
}

func (r *Room) creatorMember() *Member { return r.member(r.creator) }

// ordered returns the seats that were not kicked, in seat order once the
// game has started and join order before.
func (r *Room) ordered() []*Member {
	out := make([]*Member, 0, len(r.members))
	for _, m := range r.members {
		if !m.Kicked {
			out = append(out, m)
		}
	}
	if r.started() {
		slices.SortStableFunc(out, func(a, b *Member) int {
			return seatOrder(a) - seatOrder(b)
		})
	}
	return out
}

func seatOrder(m *Member) int {
	if m.PlayerIndex < 0 {
		return 999
	}
	return m.PlayerIndex
}

func (r *Room) connectedCount() int {
	n := 0
	for _, m := range r.members {
		if m.Connected && !m.Kicked {
			n++
		}
	}
	return n
}

// Participant is the public view of a seat.
type Participant struct {
	Name        string  `json:"name"`
	ClientID    string  `json:"clientId"`
	Connected   bool    `json:"connected"`
	PlayerID    *string `json:"playerId"`
	PlayerIndex *int    `json:"playerIndex"`
	Avatar      int     `json:"avatar"`
	IsCreator   bool    `json:"isCreator"`
}

// Roster is sent with every roster change.
type Roster struct {
	Players      []string      `json:"players"`
	Participants []Participant `json:"participants"`
}

func (r *Room) roster() Roster {
	members := r.ordered()
	out := Roster{Players: make([]string, 0, len(members)), Participants: make([]Participant, 0, len(members))}
	for _, m := range members {
		p := Participant{
			Name:      m.Name,
			ClientID:  m.ClientID,
			Connected: m.Connected,
			Avatar:    m.Avatar,
			IsCreator: m.ClientID == r.creator,
		}
		if m.PlayerID != "" {
			id, idx := m.PlayerID, m.PlayerIndex
			p.PlayerID, p.PlayerIndex = &id, &idx
		}
		out.Players = append(out.Players, m.Name)
		out.Participants = append(out.Participants, p)
	}
	return out
}

// RosterEvent is the payload of joined, player-joined and player-left.
type RosterEvent struct {
	Roster
	Code         string `json:"code,omitempty"`
	ClientID     string `json:"clientId,omitempty"`
	Rejoined     bool   `json:"rejoined,omitempty"`
	NewPlayer    string `json:"newPlayer,omitempty"`
	LeftPlayer   string `json:"leftPlayer,omitempty"`
	Reconnected  bool   `json:"reconnected,omitempty"`
	Disconnected bool   `json:"disconnected,omitempty"`
	Kicked       bool   `json:"kicked,omitempty"`
}

// HostChanged names the new creator.
type HostChanged struct {
	RosterEvent
	Name string `json:"name"`
}

// GameStart is personalised per recipient.
type GameStart struct {
	State       *game.State `json:"state"`
	LocalID     string      `json:"localId"`
	PlayerIndex int         `json:"playerIndex"`
	Rejoined    bool        `json:"rejoined,omitempty"`
}

type Animation struct {
	Type game.EventType `json:"type"`
	Data game.Event     `json:"data"`
}

type Connection struct {
	Name      string `json:"name"`
	ClientID  string `json:"clientId"`
	PlayerID  string `json:"playerId,omitempty"`
	Connected bool   `json:"connected"`
}

const letters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func randCode(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[rand.IntN(len(letters))]
	}
	return string(b)
}

// NormalizeCode upper-cases and trims a user-typed room code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func normalizeClientID(id, connID string) string {
	id = truncate(strings.TrimSpace(id), maxClientIDLen)
	if id == "" {
		return "anon-" + connID
	}
	return id
}

func normalizeName(name, fallback string) string {
	name = strings.TrimSpace(truncate(strings.TrimSpace(name), maxNameLen))
	if name == "" {
		return fallback
	}
	return name
}

func normalizeAvatar(avatar int) int {
	if avatar < 0 || avatar >= catalog.AvatarCount() {
		return -1
	}
	return avatar
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
