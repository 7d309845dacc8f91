package room

import (
	"context"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"economic-wars/internal/game"
	"economic-wars/internal/store"
)

// observer forwards engine output to a room. The engine only calls it from
// inside Apply or SkipDisconnected, so r.mu is already held.
type observer struct {
	m *Manager
	r *Room
}

func (o *observer) Animated(ev game.Event) {
	msg := Animation{Type: ev.Type(), Data: ev}
	if card, ok := ev.(game.CardEvent); ok && card.Private() {
		o.r.sendTo(o.r.memberByPlayer(card.PlayerID), MsgAnimation, msg)
		return
	}
	o.r.broadcast(MsgAnimation, msg, nil)
}

func (o *observer) StateChanged(s *game.State) { o.m.stateChanged(o.r, s) }

// StateUpdate carries the state with decks hidden.
type StateUpdate struct {
	State *game.State `json:"state"`
}

func (m *Manager) stateChanged(r *Room, s *game.State) {
	r.broadcast(MsgStateUpdate, StateUpdate{State: s.Stripped()}, nil)
	m.persist(r, s)
}

// persist writes the full state under the room code. A finished game has
// nothing to resume, so its snapshot is removed instead.
func (m *Manager) persist(r *Room, s *game.State) {
	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.SnapshotTimeout)
	defer cancel()
	log := m.logger.With(zap.String("room", r.Code))

	if s.GameOver {
		if err := m.store.Delete(ctx, r.Code); err != nil {
			log.Warn("delete snapshot", zap.Error(err))
		}
		return
	}
	data, err := game.Encode(s)
	if err != nil {
		log.Error("encode snapshot", zap.Error(err))
		return
	}
	if err := m.store.Save(ctx, r.Code, data); err != nil {
		log.Warn("save snapshot", zap.Error(err))
	}
}

// Summary describes a live room for listings.
type Summary struct {
	Code      string    `json:"code"`
	Started   bool      `json:"started"`
	Members   int       `json:"members"`
	Connected int       `json:"connected"`
	Host      string    `json:"host"`
	CreatedAt time.Time `json:"createdAt"`
	IdleSince time.Time `json:"idleSince"`
}

func (r *Room) summary() Summary {
	s := Summary{
		Code:      r.Code,
		Started:   r.started(),
		Members:   len(r.ordered()),
		Connected: r.connectedCount(),
		CreatedAt: r.CreatedAt,
		IdleSince: r.lastActivity,
	}
	if c := r.creatorMember(); c != nil {
		s.Host = c.Name
	}
	return s
}

// Rooms lists open rooms ordered by code.
func (m *Manager) Rooms() []Summary {
	out := []Summary{}
	for _, r := range m.snapshot() {
		r.mu.Lock()
		if !r.closed {
			out = append(out, r.summary())
		}
		r.mu.Unlock()
	}
	slices.SortFunc(out, func(a, b Summary) int { return strings.Compare(a.Code, b.Code) })
	return out
}

// inspect runs fn with the room locked.
func (m *Manager) inspect(code string, fn func(r *Room) error) error {
	r := m.room(NormalizeCode(code))
	if r == nil {
		return ErrRoomNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRoomNotFound
	}
	return fn(r)
}

func (m *Manager) Summary(code string) (Summary, error) {
	var out Summary
	err := m.inspect(code, func(r *Room) error {
		out = r.summary()
		return nil
	})
	return out, err
}

func (m *Manager) Roster(code string) (Roster, error) {
	var out Roster
	err := m.inspect(code, func(r *Room) error {
		out = r.roster()
		return nil
	})
	return out, err
}

// State returns a copy of a running game with decks hidden.
func (m *Manager) State(code string) (*game.State, error) {
	var out *game.State
	err := m.inspect(code, func(r *Room) error {
		if !r.started() {
			return ErrNotStarted
		}
		out = r.engine.State().Stripped()
		return nil
	})
	return out, err
}

func (m *Manager) Standings(code string) ([]game.Standing, error) {
	var out []game.Standing
	err := m.inspect(code, func(r *Room) error {
		if !r.started() {
			return ErrNotStarted
		}
		out = r.engine.Standings()
		return nil
	})
	return out, err
}

// SavedGames lists resumable snapshot codes when the store can enumerate
// them, and nil otherwise.
func (m *Manager) SavedGames(ctx context.Context) ([]string, error) {
	l, ok := m.store.(store.Lister)
	if !ok {
		return nil, nil
	}
	return l.Codes(ctx)
}

type Stats struct {
	Rooms    int `json:"rooms"`
	Sessions int `json:"sessions"`
}

func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Stats{Rooms: len(m.rooms), Sessions: len(m.sessions)}
}
