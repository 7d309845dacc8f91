package game

import (
	"errors"
	"fmt"
	"slices"

	"economic-wars/internal/catalog"

	"github.com/google/uuid"
)

var (
	ErrPlayerCount = fmt.Errorf("a game needs %d to %d players", catalog.MinPlayers, catalog.MaxPlayers)
	ErrUnknownMap  = errors.New("unknown map")
)

// Seat describes one player at game creation. Avatar < 0 selects the seat's
// default avatar.
type Seat struct {
	Name   string
	Avatar int
}

type Setup struct {
	Seats    []Seat
	MapID    string
	Settings Settings
}

// NewState builds a fresh game: every player at start with the starting
// money, an unowned board cloned from the map and both decks shuffled.
func NewState(setup Setup, rng Randomizer) (*State, error) {
	if n := len(setup.Seats); n < catalog.MinPlayers || n > catalog.MaxPlayers {
		return nil, ErrPlayerCount
	}
	mapID := setup.MapID
	if mapID == "" {
		mapID = catalog.MapClassic
	}
	m, ok := catalog.LookupMap(mapID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMap, mapID)
	}
	settings := setup.Settings
	if settings == (Settings{}) {
		settings = DefaultSettings()
	}

	s := &State{
		ID: uuid.NewString(),
		Map: MapInfo{
			ID:                       m.ID,
			TotalSpaces:              m.TotalSpaces(),
			GridSize:                 m.GridSize,
			Corners:                  m.Corners,
			InfrastructureMultiplier: m.InfrastructureMultiplier,
		},
		Settings:          settings,
		Phase:             PhasePreRoll,
		GlobalNewsDeck:    catalog.DeckCardIDs(catalog.DeckGlobalNews),
		DiplomaticDeck:    catalog.DeckCardIDs(catalog.DeckDiplomaticCable),
		GlobalNewsDiscard: []string{},
		DiplomaticDiscard: []string{},
		TurnNumber:        1,
		RoundNumber:       1,
		Log:               []LogEntry{},
		TradeOffers:       []TradeOffer{},
		ActiveEffects:     []ActiveEffect{},
	}
	for i, seat := range setup.Seats {
		avatar := seat.Avatar
		if avatar < 0 || avatar >= catalog.AvatarCount() {
			avatar = i
		}
		s.Players = append(s.Players, Player{
			ID:         uuid.NewString(),
			Name:       seat.Name,
			Color:      catalog.PlayerColor(i),
			Avatar:     avatar,
			Money:      settings.StartingMoney,
			Properties: []int{},
			Connected:  true,
		})
	}
	for _, t := range m.Spaces {
		s.Board = append(s.Board, Space{
			ID:        t.ID,
			Kind:      t.Kind,
			Name:      t.Name,
			Alliance:  t.Alliance,
			Resource:  t.Resource,
			Price:     t.Price,
			Rents:     slices.Clone(t.Rents),
			TaxAmount: t.TaxAmount,
			Deck:      t.Deck,
			Special:   t.Special,
		})
	}
	shuffle(rng, s.GlobalNewsDeck)
	shuffle(rng, s.DiplomaticDeck)
	return s, nil
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	c := *s
	c.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		p.Properties = slices.Clone(p.Properties)
		c.Players[i] = p
	}
	c.Board = make([]Space, len(s.Board))
	for i, sp := range s.Board {
		sp.Rents = slices.Clone(sp.Rents)
		c.Board[i] = sp
	}
	c.GlobalNewsDeck = slices.Clone(s.GlobalNewsDeck)
	c.DiplomaticDeck = slices.Clone(s.DiplomaticDeck)
	c.GlobalNewsDiscard = slices.Clone(s.GlobalNewsDiscard)
	c.DiplomaticDiscard = slices.Clone(s.DiplomaticDiscard)
	if s.LastDice != nil {
		d := *s.LastDice
		c.LastDice = &d
	}
	if s.Discount != nil {
		d := *s.Discount
		c.Discount = &d
	}
	c.Log = slices.Clone(s.Log)
	c.ActiveEffects = slices.Clone(s.ActiveEffects)
	c.TradeOffers = make([]TradeOffer, len(s.TradeOffers))
	for i, t := range s.TradeOffers {
		t.GiveProperties = slices.Clone(t.GiveProperties)
		t.GetProperties = slices.Clone(t.GetProperties)
		t.Custody = slices.Clone(t.Custody)
		c.TradeOffers[i] = t
	}
	return &c
}

// Stripped returns a copy safe to send to clients: the undrawn decks and
// the discard piles are emptied.
func (s *State) Stripped() *State {
	c := s.Clone()
	c.GlobalNewsDeck = []string{}
	c.DiplomaticDeck = []string{}
	c.GlobalNewsDiscard = []string{}
	c.DiplomaticDiscard = []string{}
	return c
}

// PlayerByID returns a pointer into the state, or nil.
func (s *State) PlayerByID(id string) *Player {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i]
		}
	}
	return nil
}

// Space returns a pointer to the space at id, or nil when out of range.
func (s *State) Space(id int) *Space {
	if id < 0 || id >= len(s.Board) {
		return nil
	}
	return &s.Board[id]
}

func (s *State) CurrentPlayer() *Player {
	if len(s.Players) == 0 {
		return nil
	}
	return &s.Players[s.CurrentPlayerIndex]
}

// ActivePlayers returns pointers to every non-bankrupt player.
func (s *State) ActivePlayers() []*Player {
	var out []*Player
	for i := range s.Players {
		if !s.Players[i].Bankrupt {
			out = append(out, &s.Players[i])
		}
	}
	return out
}

func (s *State) appendLog(kind, msg string) {
	s.Log = append(s.Log, LogEntry{Round: s.RoundNumber, Message: msg, Kind: kind})
	if over := len(s.Log) - catalog.LogCapacity; over > 0 {
		s.Log = slices.Clone(s.Log[over:])
	}
}
