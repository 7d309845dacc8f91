package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"economic-wars/internal/catalog"
)

// SnapshotVersion is bumped whenever the persisted layout of State changes.
const SnapshotVersion = 1

var (
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
	ErrCorruptSnapshot    = errors.New("corrupt snapshot")
)

type snapshot struct {
	Version int       `json:"version"`
	SavedAt time.Time `json:"savedAt"`
	State   *State    `json:"state"`
}

// Encode serializes the full state, secrets included, for persistence.
func Encode(s *State) ([]byte, error) {
	b, err := json.Marshal(snapshot{Version: SnapshotVersion, SavedAt: time.Now().UTC(), State: s})
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return b, nil
}

// Decode restores a state written by Encode and checks it is consistent.
func Decode(data []byte) (*State, error) {
	var head struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if head.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, head.Version)
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.State == nil {
		return nil, fmt.Errorf("%w: missing state", ErrCorruptSnapshot)
	}
	if err := snap.State.Validate(); err != nil {
		return nil, err
	}
	snap.State.normalize()
	return snap.State, nil
}

// Validate checks the structural invariants a restored state must hold.
func (s *State) Validate() error {
	if n := len(s.Players); n < catalog.MinPlayers || n > catalog.MaxPlayers {
		return fmt.Errorf("%w: %d players", ErrCorruptSnapshot, n)
	}
	if len(s.Board) == 0 || len(s.Board) != s.Map.TotalSpaces {
		return fmt.Errorf("%w: board has %d spaces, map says %d", ErrCorruptSnapshot, len(s.Board), s.Map.TotalSpaces)
	}
	if s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.Players) {
		return fmt.Errorf("%w: current player %d", ErrCorruptSnapshot, s.CurrentPlayerIndex)
	}
	owned := map[int]string{}
	for _, p := range s.Players {
		if p.Position < 0 || p.Position >= len(s.Board) {
			return fmt.Errorf("%w: player %s at %d", ErrCorruptSnapshot, p.ID, p.Position)
		}
		for _, id := range p.Properties {
			if id < 0 || id >= len(s.Board) {
				return fmt.Errorf("%w: player %s holds space %d", ErrCorruptSnapshot, p.ID, id)
			}
			if prev, dup := owned[id]; dup {
				return fmt.Errorf("%w: space %d held by %s and %s", ErrCorruptSnapshot, id, prev, p.ID)
			}
			owned[id] = p.ID
		}
	}
	for i, sp := range s.Board {
		if sp.ID != i {
			return fmt.Errorf("%w: space %d has id %d", ErrCorruptSnapshot, i, sp.ID)
		}
		if owned[i] != sp.Owner {
			return fmt.Errorf("%w: space %d owner mismatch", ErrCorruptSnapshot, i)
		}
		if sp.DevelopmentLevel < 0 || sp.DevelopmentLevel > catalog.MaxDevelopmentLevel {
			return fmt.Errorf("%w: space %d level %d", ErrCorruptSnapshot, i, sp.DevelopmentLevel)
		}
	}
	for _, deck := range [][]string{s.GlobalNewsDeck, s.DiplomaticDeck, s.GlobalNewsDiscard, s.DiplomaticDiscard} {
		for _, id := range deck {
			if _, ok := catalog.LookupCard(id); !ok {
				return fmt.Errorf("%w: unknown card %q", ErrCorruptSnapshot, id)
			}
		}
	}
	return nil
}

// normalize replaces nil slices so a restored state renders like a fresh one.
func (s *State) normalize() {
	for i := range s.Players {
		if s.Players[i].Properties == nil {
			s.Players[i].Properties = []int{}
		}
	}
	if s.GlobalNewsDeck == nil {
		s.GlobalNewsDeck = []string{}
	}
	if s.DiplomaticDeck == nil {
		s.DiplomaticDeck = []string{}
	}
	if s.GlobalNewsDiscard == nil {
		s.GlobalNewsDiscard = []string{}
	}
	if s.DiplomaticDiscard == nil {
		s.DiplomaticDiscard = []string{}
	}
	if s.Log == nil {
		s.Log = []LogEntry{}
	}
	if s.TradeOffers == nil {
		s.TradeOffers = []TradeOffer{}
	}
	if s.ActiveEffects == nil {
		s.ActiveEffects = []ActiveEffect{}
	}
}
