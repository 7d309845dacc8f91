package game

import (
	"testing"

	"economic-wars/internal/catalog"
)

func TestUnmortgageCosts55Percent(t *testing.T) {
	e, _, _ := newTestEngine(t, "A", "B")
	a := e.current()
	give(e, a, 6) // Yerevan, price 1000

	if !e.Mortgage(a.ID, 6) || a.Money != 8500 {
		t.Fatalf("expected mortgage payout of 500, money %d", a.Money)
	}
	if e.Mortgage(a.ID, 6) {
		t.Fatalf("mortgaged twice")
	}
	if !e.Unmortgage(a.ID, 6) || a.Money != 7950 {
		t.Fatalf("expected unmortgage cost of 550, money %d", a.Money)
	}
	if UnmortgageCost(1000) != 550 {
		t.Fatalf("expected 550, got %d", UnmortgageCost(1000))
	}

	e.Mortgage(a.ID, 6)
	a.Money = 100
	if e.Unmortgage(a.ID, 6) {
		t.Fatalf("unmortgage without cash accepted")
	}
}

func TestMortgagedRentIsAlwaysZero(t *testing.T) {
	e, _, _ := newTestEngine(t, "A", "B")
	b := &e.state.Players[1]
	give(e, b, 23, 24, 21, 5, 15, 12, 28)
	for _, id := range []int{23, 5, 12} {
		e.state.Board[id].Mortgaged = true
	}
	e.state.ActiveEffects = append(e.state.ActiveEffects, ActiveEffect{Kind: catalog.ModifierTechDouble, ExpiresRound: 9})
	for _, id := range []int{23, 5, 12} {
		if got := e.Rent(id, 12); got != 0 {
			t.Fatalf("space %d: expected 0, got %d", id, got)
		}
	}
}

func TestTransportAndInfrastructureRent(t *testing.T) {
	e, _, _ := newTestEngine(t, "A", "B")
	b := &e.state.Players[1]
	give(e, b, 5, 15, 12)
	if got := e.Rent(5, 7); got != 500 {
		t.Fatalf("two transports: expected 500, got %d", got)
	}
	if got := e.Rent(12, 9); got != 36 {
		t.Fatalf("one infrastructure: expected 36, got %d", got)
	}
	give(e, b, 28)
	if got := e.Rent(12, 9); got != 72 {
		t.Fatalf("two infrastructure: expected 72, got %d", got)
	}
}

func TestDevelopRequiresCompleteAlliance(t *testing.T) {
	e, _, _ := newTestEngine(t, "A", "B")
	a := e.current()
	give(e, a, 1, 3)
	if e.Develop(a.ID, 1) {
		t.Fatalf("developed without the full alliance")
	}
	give(e, a, 6)
	e.state.Board[3].Mortgaged = true
	if e.Develop(a.ID, 3) {
		t.Fatalf("developed a mortgaged space")
	}
	if !e.Develop(a.ID, 1) {
		t.Fatalf("develop rejected")
	}
	sp := e.state.Board[1]
	if sp.DevelopmentLevel != 1 || a.Money != 8000-300 || a.DevelopmentCount != 1 || a.Influence != 5 {
		t.Fatalf("unexpected after develop: level=%d money=%d", sp.DevelopmentLevel, a.Money)
	}
	if e.Mortgage(a.ID, 1) {
		t.Fatalf("mortgaged a developed space")
	}
	if e.Develop(e.state.Players[1].ID, 1) {
		t.Fatalf("non-owner developed")
	}
}

func TestOneCapitalPerAlliance(t *testing.T) {
	e, _, _ := newTestEngine(t, "A", "B")
	a := e.current()
	a.Money = 1_000_000
	give(e, a, 1, 3, 6)
	for i := 0; i < 4; i++ {
		if !e.Develop(a.ID, 1) {
			t.Fatalf("develop %d on Gyumri rejected", i+1)
		}
	}
	if e.Develop(a.ID, 1) {
		t.Fatalf("developed beyond level 4")
	}
	for i := 0; i < 3; i++ {
		if !e.Develop(a.ID, 3) {
			t.Fatalf("develop %d on Kapan rejected", i+1)
		}
	}
	if e.Develop(a.ID, 3) {
		t.Fatalf("second capital in the same alliance")
	}
	if _, ok := e.DevelopmentCost(3); ok {
		t.Fatalf("cost offered for a blocked capital")
	}
}

func TestAsianTigersTechHubDiscount(t *testing.T) {
	e, _, _ := newTestEngine(t, "A", "B")
	a := e.current()
	give(e, a, 26, 27, 29)
	e.state.Board[26].DevelopmentLevel = 2
	cost, ok := e.DevelopmentCost(26)
	if !ok || cost != 1300 {
		t.Fatalf("expected discounted tech hub 1300, got %d (%v)", cost, ok)
	}
	e.state.Board[26].DevelopmentLevel = 3
	if cost, _ := e.DevelopmentCost(26); cost != 3900 {
		t.Fatalf("expected capital 3900, got %d", cost)
	}
}

func TestFreeUpgrade(t *testing.T) {
	e, _, rec := newTestEngine(t, "A", "B")
	a := e.current()
	give(e, a, 1, 3, 6)
	if e.FreeUpgrade(a.ID, 1) {
		t.Fatalf("upgrade without entitlement")
	}
	a.HasFreeUpgrade = true
	if !e.FreeUpgrade(a.ID, 1) || a.Money != 8000 || a.HasFreeUpgrade {
		t.Fatalf("free upgrade not applied: %+v", a)
	}
	if e.FreeUpgrade(a.ID, 1) {
		t.Fatalf("entitlement reused")
	}
	if !rec.has(EventDevelop) {
		t.Fatalf("expected develop event")
	}
}

func TestSellDevelopmentAndProperty(t *testing.T) {
	e, _, _ := newTestEngine(t, "A", "B")
	a := e.current()
	give(e, a, 1, 3, 6)
	e.state.Board[1].DevelopmentLevel = 2

	if !e.SellDevelopment(a.ID, 1) || a.Money != 8000+225 || e.state.Board[1].DevelopmentLevel != 1 {
		t.Fatalf("sell development: money=%d", a.Money)
	}
	// 300 for the price plus 150 back on level one.
	if !e.SellProperty(a.ID, 1) || a.Money != 8225+450 {
		t.Fatalf("sell property: money=%d", a.Money)
	}
	if sp := e.state.Board[1]; sp.Owner != "" || sp.DevelopmentLevel != 0 {
		t.Fatalf("space not released: %+v", sp)
	}
	if len(a.Properties) != 2 {
		t.Fatalf("property list not updated: %v", a.Properties)
	}

	e.state.Board[6].Mortgaged = true
	if !e.SellProperty(a.ID, 6) || a.Money != 8675+250 {
		t.Fatalf("mortgaged sale should pay a quarter, money=%d", a.Money)
	}
	if e.SellDevelopment(a.ID, 3) {
		t.Fatalf("sold a development that does not exist")
	}
}

func TestDevelopmentLevelStaysBounded(t *testing.T) {
	e, _, _ := newTestEngine(t, "A", "B")
	a := e.current()
	a.Money = 1_000_000
	give(e, a, 26, 27, 29)
	for i := 0; i < 20; i++ {
		for _, id := range []int{26, 27, 29} {
			e.Develop(a.ID, id)
		}
	}
	capitals := 0
	for _, id := range []int{26, 27, 29} {
		lvl := e.state.Board[id].DevelopmentLevel
		if lvl < 0 || lvl > catalog.MaxDevelopmentLevel {
			t.Fatalf("level out of range: %d", lvl)
		}
		if lvl == catalog.MaxDevelopmentLevel {
			capitals++
		}
	}
	if capitals != 1 {
		t.Fatalf("expected exactly one capital, got %d", capitals)
	}
}
