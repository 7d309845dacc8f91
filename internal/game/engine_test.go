package game

import (
	"testing"

	"economic-wars/internal/catalog"
)

// scriptedRNG returns queued die faces and never reorders decks.
type scriptedRNG struct {
	faces []int
}

func (r *scriptedRNG) roll(d1, d2 int) { r.faces = append(r.faces, d1, d2) }

func (r *scriptedRNG) IntN(n int) int {
	if len(r.faces) == 0 {
		return 0
	}
	v := r.faces[0]
	r.faces = r.faces[1:]
	return v - 1
}

func (r *scriptedRNG) Shuffle(int, func(i, j int)) {}

type recorder struct {
	events  []Event
	changes int
}

func (r *recorder) Animated(ev Event)   { r.events = append(r.events, ev) }
func (r *recorder) StateChanged(*State) { r.changes++ }

func (r *recorder) has(t EventType) bool {
	for _, ev := range r.events {
		if ev.Type() == t {
			return true
		}
	}
	return false
}

func newTestEngine(t *testing.T, names ...string) (*Engine, *scriptedRNG, *recorder) {
	t.Helper()
	rng := &scriptedRNG{}
	seats := make([]Seat, len(names))
	for i, n := range names {
		seats[i] = Seat{Name: n, Avatar: -1}
	}
	s, err := NewState(Setup{Seats: seats, MapID: catalog.MapClassic}, rng)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	rec := &recorder{}
	return NewEngine(s, WithRandomizer(rng), WithObserver(rec)), rng, rec
}

func give(e *Engine, p *Player, ids ...int) {
	for _, id := range ids {
		e.state.Board[id].Owner = p.ID
		p.Properties = append(p.Properties, id)
	}
}

func TestNewStateRejectsPlayerCount(t *testing.T) {
	for _, n := range []int{0, 1, 9} {
		seats := make([]Seat, n)
		if _, err := NewState(Setup{Seats: seats}, &scriptedRNG{}); err == nil {
			t.Fatalf("expected error for %d players", n)
		}
	}
	if _, err := NewState(Setup{Seats: make([]Seat, 2), MapID: "moon"}, &scriptedRNG{}); err == nil {
		t.Fatalf("expected unknown map error")
	}
}

func TestNewStateExpandedMap(t *testing.T) {
	s, err := NewState(Setup{Seats: []Seat{{Name: "A"}, {Name: "B"}}, MapID: catalog.MapExpanded}, NewRandomizer())
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	if len(s.Board) != 48 || s.Map.TotalSpaces != 48 || s.Map.SanctionsIndex() != 12 {
		t.Fatalf("unexpected expanded map: %d spaces, sanctions at %d", len(s.Board), s.Map.SanctionsIndex())
	}
	for _, p := range s.Players {
		if p.Money != catalog.StartingMoney || p.Position != 0 || p.Influence != 0 {
			t.Fatalf("player not at starting values: %+v", p)
		}
	}
	if s.Phase != PhasePreRoll || s.CurrentPlayerIndex != 0 {
		t.Fatalf("expected pre-roll for player 0, got %s/%d", s.Phase, s.CurrentPlayerIndex)
	}
}

func TestRollDiceBounds(t *testing.T) {
	rng := NewRandomizer()
	for i := 0; i < 1000; i++ {
		d := rollDice(rng)
		if d.Total < 2 || d.Total > 12 {
			t.Fatalf("total out of range: %+v", d)
		}
		if d.Doubles != (d.D1 == d.D2) {
			t.Fatalf("doubles flag wrong: %+v", d)
		}
	}
}

func TestBuyUnownedCountry(t *testing.T) {
	e, rng, rec := newTestEngine(t, "A", "B")
	e.state.Board[3].Price = 600
	a := e.current()

	rng.roll(1, 2)
	if !e.RollDice() {
		t.Fatalf("roll rejected")
	}
	if a.Position != 3 || e.state.Phase != PhaseAction {
		t.Fatalf("expected action on space 3, got %s at %d", e.state.Phase, a.Position)
	}
	if !e.BuyProperty() {
		t.Fatalf("buy rejected")
	}
	if a.Money != 7400 {
		t.Fatalf("expected 7400, got %d", a.Money)
	}
	if e.state.Board[3].Owner != a.ID {
		t.Fatalf("expected owner %s, got %q", a.ID, e.state.Board[3].Owner)
	}
	if !rec.has(EventPurchase) || !rec.has(EventDice) || !rec.has(EventMove) {
		t.Fatalf("missing events: %+v", rec.events)
	}
	if e.state.Phase != PhaseEndTurn {
		t.Fatalf("expected end-turn, got %s", e.state.Phase)
	}
}

func TestCompleteAllianceDoublesUndevelopedRent(t *testing.T) {
	e, rng, _ := newTestEngine(t, "C", "B")
	c, b := &e.state.Players[0], &e.state.Players[1]
	give(e, b, 1, 3, 6)

	// Kapan lists 30; doubled for the alliance, then +10% for two resources.
	if got := e.Rent(3, 7); got != 66 {
		t.Fatalf("expected rent 66, got %d", got)
	}
	rng.roll(1, 2)
	e.RollDice()
	if c.Money != 8000-66 || b.Money != 8000+66 {
		t.Fatalf("unexpected balances: C=%d B=%d", c.Money, b.Money)
	}
	if b.TotalRentCollected != 66 || c.TotalRentPaid != 66 {
		t.Fatalf("rent totals not tracked")
	}

	e.state.Board[1].Owner = ""
	b.Properties = []int{3, 6}
	if got := e.Rent(3, 7); got != 33 {
		t.Fatalf("expected rent 33 without the full alliance, got %d", got)
	}
}

func TestThreeDoublesSendsToSanctions(t *testing.T) {
	e, rng, rec := newTestEngine(t, "A", "B")
	a := e.current()

	rng.roll(1, 1)
	e.RollDice()
	if a.Position != 2 || !e.EndTurn() || e.current() != a {
		t.Fatalf("expected a bonus turn after doubles")
	}
	rng.roll(2, 2)
	e.RollDice()
	if a.Position != 6 || !e.DeclinePurchase() || !e.EndTurn() {
		t.Fatalf("expected to decline Yerevan and roll again")
	}
	rng.roll(3, 3)
	e.RollDice()
	if !a.InSanctions || a.Position != e.state.Map.SanctionsIndex() {
		t.Fatalf("expected sanctions, got position %d", a.Position)
	}
	if a.Position == 12 {
		t.Fatalf("player moved by the third roll")
	}
	if !rec.has(EventSanctions) {
		t.Fatalf("expected sanctions event")
	}
	if !e.EndTurn() || e.current().Name != "B" {
		t.Fatalf("sanctioned player must not get a bonus turn")
	}
}

func TestSanctionsStay(t *testing.T) {
	e, rng, _ := newTestEngine(t, "A", "B")
	a := e.current()
	e.sendToSanctions(a)

	rng.roll(1, 2)
	e.RollDice()
	if !a.InSanctions || a.SanctionsTurns != 1 || a.Position != 10 || e.state.Phase != PhaseEndTurn {
		t.Fatalf("expected to stay sanctioned: %+v", a)
	}

	a.SanctionsTurns = catalog.MaxSanctionWaits
	e.state.Phase = PhasePreRoll
	rng.roll(1, 2)
	e.RollDice()
	if a.InSanctions || a.Money != 8000-catalog.SanctionsBail || a.Position != 13 {
		t.Fatalf("expected forced bail and a move: %+v", a)
	}
}

func TestPayBailAndImmunity(t *testing.T) {
	e, _, _ := newTestEngine(t, "A", "B")
	a := e.current()
	if e.PayBail() {
		t.Fatalf("bail accepted outside sanctions")
	}
	e.sendToSanctions(a)
	if !e.PayBail() || a.InSanctions || a.Money != 7000 {
		t.Fatalf("bail not applied: %+v", a)
	}

	e.sendToSanctions(a)
	if e.UseImmunity() {
		t.Fatalf("immunity used without the card")
	}
	a.HasGetOutFree = true
	if !e.UseImmunity() || a.InSanctions || a.HasGetOutFree {
		t.Fatalf("immunity not applied: %+v", a)
	}
	if n := len(e.state.DiplomaticDiscard); n != 1 || e.state.DiplomaticDiscard[0] != catalog.ImmunityCardID {
		t.Fatalf("immunity card not returned: %v", e.state.DiplomaticDiscard)
	}
}

func TestPassingStartPaysSalaryWithInfluenceBonus(t *testing.T) {
	e, rng, _ := newTestEngine(t, "A", "B")
	a := e.current()
	a.Position = 38
	a.Influence = 120
	rng.roll(1, 2)
	e.RollDice()
	// 700 + 2 steps of 50 influence * $10
	if a.Money != 8720 || a.Influence != 140 || a.Position != 1 {
		t.Fatalf("unexpected after passing start: money=%d influence=%d pos=%d", a.Money, a.Influence, a.Position)
	}
}

func TestFreeTradeAndIncident(t *testing.T) {
	e, rng, _ := newTestEngine(t, "A", "B")
	a := e.current()
	a.Position = 16
	rng.roll(1, 3)
	e.RollDice()
	if a.Money != 8100 || a.Influence != 10 {
		t.Fatalf("free trade zone not paid: %+v", a)
	}
	e.EndTurn()

	b := e.current()
	b.Position = 26
	rng.roll(1, 3)
	e.RollDice()
	if !b.InSanctions || b.Position != 10 {
		t.Fatalf("incident should sanction: %+v", b)
	}
}

func TestTaxBankruptsPlayerWithoutAssets(t *testing.T) {
	e, rng, rec := newTestEngine(t, "A", "B")
	a := e.current()
	a.Money = 100
	rng.roll(1, 3)
	e.RollDice()
	if !a.Bankrupt {
		t.Fatalf("expected bankruptcy, money %d", a.Money)
	}
	if !e.state.GameOver || e.state.Winner != e.state.Players[1].ID {
		t.Fatalf("expected B to win as last standing")
	}
	if !rec.has(EventBankrupt) || !rec.has(EventVictory) {
		t.Fatalf("missing bankrupt/victory events")
	}
	if e.RollDice() || e.EndTurn() {
		t.Fatalf("no action may change a finished game")
	}
}

func TestInsolventPlayerMustLiquidate(t *testing.T) {
	e, rng, _ := newTestEngine(t, "A", "B")
	a := e.current()
	give(e, a, 1)
	a.Money = 300
	rng.roll(1, 3)
	e.RollDice()
	if a.Bankrupt || a.Money != -300 {
		t.Fatalf("expected insolvency, got %+v", a)
	}
	if !e.Insolvent(a.ID) || e.EndTurn() {
		t.Fatalf("end turn must be refused while insolvent")
	}
	if !e.Mortgage(a.ID, 1) || a.Money != 0 {
		t.Fatalf("mortgage should restore a zero balance, got %d", a.Money)
	}
	if !e.EndTurn() {
		t.Fatalf("zero balance should allow ending the turn")
	}
}

func TestEmbargoAndEffectExpiry(t *testing.T) {
	e, _, _ := newTestEngine(t, "A", "B")
	a, b := &e.state.Players[0], &e.state.Players[1]
	give(e, b, 3)
	a.Influence = catalog.EmbargoCost

	if e.UseInfluence(InfluenceEmbargo, a.ID) {
		t.Fatalf("self embargo accepted")
	}
	if !e.UseInfluence(InfluenceEmbargo, b.ID) || a.Influence != 0 {
		t.Fatalf("embargo not applied")
	}
	if got := e.Rent(3, 7); got != 0 {
		t.Fatalf("expected embargoed rent 0, got %d", got)
	}
	if e.UseInfluence(InfluenceSummit, "") {
		t.Fatalf("summit accepted without influence")
	}

	for e.state.RoundNumber < 3 {
		e.nextTurn()
		if e.state.RoundNumber == 2 && len(e.state.ActiveEffects) != 1 {
			t.Fatalf("embargo expired early")
		}
	}
	if len(e.state.ActiveEffects) != 0 || e.Rent(3, 7) == 0 {
		t.Fatalf("embargo should expire once round 3 starts")
	}
}

func TestSummitAndGrant(t *testing.T) {
	e, _, _ := newTestEngine(t, "A", "B")
	a, b := &e.state.Players[0], &e.state.Players[1]
	a.Influence = catalog.SummitCost + catalog.DevelopmentGrantCost
	if !e.UseInfluence(InfluenceSummit, "") || a.Money != 8500 || b.Money != 8500 {
		t.Fatalf("summit not paid")
	}
	if !e.UseInfluence(InfluenceDevelopmentGrant, "") || !a.HasFreeUpgrade || a.Influence != 0 {
		t.Fatalf("grant not applied")
	}
}

func TestInfluenceVictory(t *testing.T) {
	e, rng, rec := newTestEngine(t, "A", "B", "C")
	a := e.current()
	a.Position = 16
	a.Influence = catalog.InfluenceToWin - catalog.FreeTradeInfluence
	rng.roll(1, 3)
	e.RollDice()
	if !e.state.GameOver || e.state.Winner != a.ID {
		t.Fatalf("expected influence victory")
	}
	for _, ev := range rec.events {
		if v, ok := ev.(VictoryEvent); ok && v.Reason != VictoryInfluence {
			t.Fatalf("unexpected victory reason %q", v.Reason)
		}
	}
}

func TestRoundBonuses(t *testing.T) {
	e, _, _ := newTestEngine(t, "A", "B")
	a := &e.state.Players[0]
	give(e, a, 31, 32, 34) // oil nations
	e.nextTurn()
	if a.Money != 8000 {
		t.Fatalf("bonus paid mid-round")
	}
	e.nextTurn()
	if e.state.RoundNumber != 2 || a.Money != 8000+catalog.OilRoyalty {
		t.Fatalf("expected oil royalty at round end, money %d", a.Money)
	}
}

func TestSkipDisconnected(t *testing.T) {
	e, _, rec := newTestEngine(t, "A", "B", "C")
	a, b, c := &e.state.Players[0], &e.state.Players[1], &e.state.Players[2]

	e.SetConnected(a.ID, false)
	if !e.SkipDisconnected() || e.current() != b {
		t.Fatalf("expected B's turn, got %s", e.current().Name)
	}
	if rec.changes != 1 {
		t.Fatalf("expected one state change, got %d", rec.changes)
	}

	e.SetConnected(b.ID, false)
	e.SkipDisconnected()
	if e.current() != c {
		t.Fatalf("expected C's turn, got %s", e.current().Name)
	}
	if e.SkipDisconnected() {
		t.Fatalf("connected current player must not be skipped")
	}

	e.SetConnected(c.ID, false)
	if e.SkipDisconnected() {
		t.Fatalf("nobody connected: nothing to skip to")
	}
}

func TestSkipDisconnectedLiquidatesAbsentDebtor(t *testing.T) {
	e, _, _ := newTestEngine(t, "A", "B", "C")
	a := e.current()
	give(e, a, 6)
	a.Money = -200
	e.SetConnected(a.ID, false)
	e.SkipDisconnected()
	if a.Money < 0 || a.Bankrupt || !e.state.Board[6].Mortgaged {
		t.Fatalf("expected the absent debtor to mortgage, got %+v", a)
	}
	if e.current() == a {
		t.Fatalf("turn not skipped")
	}
}

func TestApplyChecksTurnAndIdentity(t *testing.T) {
	e, rng, _ := newTestEngine(t, "A", "B")
	b := &e.state.Players[1]
	give(e, b, 3)
	rng.roll(1, 2)
	if e.Apply(b.ID, RollDice{}) {
		t.Fatalf("B rolled on A's turn")
	}
	if e.Apply("ghost", Mortgage{SpaceID: 3}) {
		t.Fatalf("unknown player accepted")
	}
	if !e.Apply(b.ID, Mortgage{SpaceID: 3}) {
		t.Fatalf("owner should mortgage out of turn")
	}
	if e.Apply(b.ID, Mortgage{SpaceID: 99}) {
		t.Fatalf("out of range space accepted")
	}
}

func TestWealthAndStandings(t *testing.T) {
	e, _, _ := newTestEngine(t, "A", "B")
	a, b := &e.state.Players[0], &e.state.Players[1]
	give(e, b, 1, 3, 6)
	e.state.Board[1].DevelopmentLevel = 2
	b.Influence = 10
	// 8000 + 2400 + 300 + 450 + 100
	if got := e.Wealth(b); got != 11250 {
		t.Fatalf("expected wealth 11250, got %d", got)
	}
	st := e.Standings()
	if st[0].PlayerID != b.ID || st[1].PlayerID != a.ID {
		t.Fatalf("unexpected standings: %+v", st)
	}
}

func TestLogIsCapped(t *testing.T) {
	e, _, _ := newTestEngine(t, "A", "B")
	for i := 0; i < catalog.LogCapacity+50; i++ {
		e.logf("info", "entry %d", i)
	}
	if len(e.state.Log) != catalog.LogCapacity {
		t.Fatalf("expected %d entries, got %d", catalog.LogCapacity, len(e.state.Log))
	}
	if e.state.Log[len(e.state.Log)-1].Message != "entry 249" {
		t.Fatalf("newest entry lost: %q", e.state.Log[len(e.state.Log)-1].Message)
	}
}
