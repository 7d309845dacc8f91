package game

import (
	"slices"

	"economic-wars/internal/catalog"
)

const (
	VictoryInfluence    = "influence"
	VictoryLastStanding = "laststanding"
	VictoryWealth       = "wealth"
)

func (e *Engine) checkWinCondition() {
	if e.state.GameOver {
		return
	}
	active := e.state.ActivePlayers()
	for _, p := range active {
		if p.Influence >= e.state.Settings.InfluenceToWin {
			e.logf("victory", "%s wins with %d Influence Points!", p.Name, p.Influence)
			e.finish(p, VictoryInfluence)
			return
		}
	}
	if len(active) == 1 {
		e.logf("victory", "%s wins as the last player standing!", active[0].Name)
		e.finish(active[0], VictoryLastStanding)
	}
}

// endGame stops a game nobody can continue; the wealthiest player wins.
func (e *Engine) endGame() {
	if e.state.GameOver {
		return
	}
	var best *Player
	for _, p := range e.state.ActivePlayers() {
		if best == nil || e.Wealth(p) > e.Wealth(best) {
			best = p
		}
	}
	if best == nil {
		e.state.GameOver = true
		return
	}
	reason := VictoryWealth
	if len(e.state.ActivePlayers()) == 1 {
		reason = VictoryLastStanding
	}
	e.logf("victory", "%s wins with a total wealth of $%d!", best.Name, e.Wealth(best))
	e.finish(best, reason)
}

func (e *Engine) finish(p *Player, reason string) {
	e.state.Winner = p.ID
	e.state.GameOver = true
	e.emit(VictoryEvent{PlayerID: p.ID, Reason: reason})
}

// Wealth values cash, property prices, money sunk into developments and
// influence at $10 a point.
func (e *Engine) Wealth(p *Player) int {
	w := p.Money
	for _, id := range p.Properties {
		sp := e.state.Board[id]
		w += sp.Price
		for lvl := 1; lvl <= sp.DevelopmentLevel; lvl++ {
			w += catalog.BuildCost(sp.Price, lvl)
		}
	}
	return w + p.Influence*10
}

// declareBankruptcy is terminal: holdings go back to the bank unimproved,
// a held immunity card returns to its deck, open trades are withdrawn.
func (e *Engine) declareBankruptcy(p *Player) {
	for _, id := range slices.Clone(p.Properties) {
		e.releaseSpace(p, &e.state.Board[id])
	}
	p.Properties = []int{}
	p.Bankrupt = true
	p.InSanctions = false
	p.HasFreeUpgrade = false
	if p.HasGetOutFree {
		p.HasGetOutFree = false
		e.state.DiplomaticDiscard = append(e.state.DiplomaticDiscard, catalog.ImmunityCardID)
	}
	for i := range e.state.TradeOffers {
		t := &e.state.TradeOffers[i]
		if t.Status == TradePending && (t.FromID == p.ID || t.ToID == p.ID) {
			t.Status = TradeCancelled
		}
	}
	if d := e.state.Discount; d != nil && d.PlayerID == p.ID {
		e.state.Discount = nil
	}
	e.logf("bankrupt", "%s has gone BANKRUPT!", p.Name)
	e.emit(BankruptEvent{PlayerID: p.ID})
	e.checkWinCondition()
}
