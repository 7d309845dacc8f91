package game

import "economic-wars/internal/catalog"

// handleLanding resolves the space under p and leaves the phase at action or
// end-turn. Debts and win conditions are settled once the action finishes.
func (e *Engine) handleLanding(p *Player) {
	e.landings++
	sp := e.state.Space(p.Position)
	e.state.Phase = PhaseLanded
	e.logf("info", "%s lands on %s.", p.Name, sp.Name)

	switch sp.Kind {
	case catalog.KindCountry, catalog.KindTransport, catalog.KindInfrastructure:
		switch {
		case sp.Owner == "":
			e.state.Phase = PhaseAction
		case sp.Owner != p.ID && !sp.Mortgaged:
			e.payRent(p, sp)
		default:
			e.state.Phase = PhaseEndTurn
		}
	case catalog.KindCard:
		e.drawCard(p, sp.Deck)
	case catalog.KindTax:
		e.adjustMoney(p, -sp.TaxAmount)
		e.emit(PaymentEvent{From: p.ID, Amount: sp.TaxAmount, Reason: "tax"})
		e.logf("warning", "%s pays %s: $%d.", p.Name, sp.Name, sp.TaxAmount)
		e.state.Phase = PhaseEndTurn
	case catalog.KindSpecial:
		e.handleSpecial(p, sp)
	default:
		e.state.Phase = PhaseEndTurn
	}
}

func (e *Engine) handleSpecial(p *Player, sp *Space) {
	switch sp.Special {
	case catalog.SpecialSanctions:
		e.logf("info", "%s is just visiting Trade Sanctions.", p.Name)
	case catalog.SpecialFreeTrade:
		e.adjustMoney(p, catalog.FreeTradeBonus)
		p.Influence += catalog.FreeTradeInfluence
		e.logf("success", "%s enters the Free Trade Zone! Collects $%d and %d influence.", p.Name, catalog.FreeTradeBonus, catalog.FreeTradeInfluence)
	case catalog.SpecialIncident:
		e.sendToSanctions(p)
		e.logf("warning", "%s causes an International Incident! Sent to Trade Sanctions!", p.Name)
	}
	e.state.Phase = PhaseEndTurn
}
