package game

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	e, rng, _ := newTestEngine(t, "A", "B", "C")
	rng.roll(1, 2)
	e.RollDice()
	e.BuyProperty()
	e.ProposeTrade(e.state.Players[1].ID, e.state.Players[0].ID, Offer{GiveMoney: 100, GetProperties: []int{3}})

	data, err := Encode(e.State())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, e.State()) {
		t.Fatalf("round trip changed the state")
	}
	if len(got.GlobalNewsDeck) != 18 {
		t.Fatalf("decks must survive persistence, got %d cards", len(got.GlobalNewsDeck))
	}
}

func TestDecodeRejectsOtherVersions(t *testing.T) {
	_, err := Decode([]byte(`{"version":2,"state":{}}`))
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
	if _, err := Decode([]byte(`not json`)); err == nil {
		t.Fatalf("garbage decoded")
	}
}

func TestDecodeRejectsInconsistentOwnership(t *testing.T) {
	e, _, _ := newTestEngine(t, "A", "B")
	e.state.Board[1].Owner = e.state.Players[1].ID

	data, err := Encode(e.State())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := Decode(data); !errors.Is(err, ErrCorruptSnapshot) {
		t.Fatalf("expected ErrCorruptSnapshot, got %v", err)
	}
}

func TestDecodeRejectsBadHoldings(t *testing.T) {
	cases := []struct {
		name  string
		setup func(e *Engine)
	}{
		{"outside the board", func(e *Engine) {
			e.state.Players[0].Properties = []int{999}
		}},
		{"negative id", func(e *Engine) {
			e.state.Players[0].Properties = []int{-1}
		}},
		{"held twice", func(e *Engine) {
			give(e, &e.state.Players[1], 1)
			e.state.Players[0].Properties = []int{1}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, _, _ := newTestEngine(t, "A", "B")
			tc.setup(e)
			data, err := Encode(e.State())
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if _, err := Decode(data); !errors.Is(err, ErrCorruptSnapshot) {
				t.Fatalf("expected ErrCorruptSnapshot, got %v", err)
			}
		})
	}
}

func TestDecodeRejectsUnknownCard(t *testing.T) {
	e, _, _ := newTestEngine(t, "A", "B")
	e.state.GlobalNewsDiscard = []string{"zz1"}
	data, _ := Encode(e.State())
	_, err := Decode(data)
	if !errors.Is(err, ErrCorruptSnapshot) || !strings.Contains(err.Error(), "zz1") {
		t.Fatalf("expected unknown card error, got %v", err)
	}
}

func TestStrippedHidesDecks(t *testing.T) {
	e, _, _ := newTestEngine(t, "A", "B")
	e.state.GlobalNewsDiscard = []string{"gn1"}
	s := e.State().Stripped()
	if len(s.GlobalNewsDeck)+len(s.DiplomaticDeck)+len(s.GlobalNewsDiscard)+len(s.DiplomaticDiscard) != 0 {
		t.Fatalf("stripped state still carries cards")
	}
	if len(e.state.GlobalNewsDeck) != 18 || len(e.state.GlobalNewsDiscard) != 1 {
		t.Fatalf("stripping modified the engine state")
	}
	s.Players[0].Money = 1
	if e.state.Players[0].Money == 1 {
		t.Fatalf("stripped state aliases the engine state")
	}
}
