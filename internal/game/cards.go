package game

import (
	"slices"
	"sort"

	"economic-wars/internal/catalog"
)

func (e *Engine) deck(id catalog.DeckID) (deck, discard *[]string) {
	if id == catalog.DeckGlobalNews {
		return &e.state.GlobalNewsDeck, &e.state.GlobalNewsDiscard
	}
	return &e.state.DiplomaticDeck, &e.state.DiplomaticDiscard
}

// drawCard takes the top card of a deck, reshuffling the discard pile back
// in when the deck is empty, and applies it. When the effect moved the
// player the nested landing decides the phase.
func (e *Engine) drawCard(p *Player, id catalog.DeckID) {
	deck, discard := e.deck(id)
	if len(*deck) == 0 {
		*deck = append(*deck, *discard...)
		*discard = []string{}
		shuffle(e.rng, *deck)
	}
	if len(*deck) == 0 {
		e.state.Phase = PhaseEndTurn
		return
	}
	n := len(*deck) - 1
	cardID := (*deck)[n]
	*deck = slices.Clone((*deck)[:n])

	card, ok := catalog.LookupCard(cardID)
	if !ok {
		e.state.Phase = PhaseEndTurn
		return
	}
	ev := CardEvent{PlayerID: p.ID, Deck: id, Card: card}
	if ev.Private() {
		// The log reaches every client; the card itself only goes to the drawer.
		e.logf("info", "%s draws a Diplomatic Cable.", p.Name)
	} else {
		e.logf("info", "%s draws: %s - %s", p.Name, card.Title, card.Text)
	}
	e.emit(ev)

	before := e.landings
	e.applyCard(p, card)
	if !card.Keepable() {
		*discard = append(*discard, card.ID)
	}
	if e.landings == before {
		e.state.Phase = PhaseEndTurn
	}
}

func (e *Engine) applyCard(p *Player, card catalog.Card) {
	switch fx := card.Effect.(type) {
	case catalog.Collect:
		e.adjustMoney(p, fx.Amount)
		e.logf("success", "%s collects $%d.", p.Name, fx.Amount)
	case catalog.Pay:
		e.adjustMoney(p, -fx.Amount)
		e.emit(PaymentEvent{From: p.ID, Amount: fx.Amount, Reason: "card"})
		e.logf("warning", "%s pays $%d.", p.Name, fx.Amount)
	case catalog.AdvanceToStart:
		e.moveTo(p, 0)
	case catalog.GetOutFree:
		p.HasGetOutFree = true
		e.logf("success", "%s receives Diplomatic Immunity!", p.Name)
	case catalog.GoToSanctions:
		e.sendToSanctions(p)
		e.logf("warning", "%s is sent to Trade Sanctions!", p.Name)
	case catalog.GainInfluence:
		p.Influence += fx.Amount
		e.logf("success", "%s gains %d influence!", p.Name, fx.Amount)
	case catalog.AllGainInfluence:
		for _, other := range e.state.ActivePlayers() {
			other.Influence += fx.Amount
		}
		e.logf("success", "All players gain %d influence!", fx.Amount)
	case catalog.PayAllPlayers:
		for _, other := range e.state.ActivePlayers() {
			if other.ID == p.ID {
				continue
			}
			e.adjustMoney(p, -fx.Amount)
			e.adjustMoney(other, fx.Amount)
			e.emit(PaymentEvent{From: p.ID, To: other.ID, Amount: fx.Amount, Reason: "card"})
		}
		e.logf("warning", "%s pays $%d to each player.", p.Name, fx.Amount)
	case catalog.CollectFromAll:
		for _, other := range e.state.ActivePlayers() {
			if other.ID == p.ID {
				continue
			}
			e.adjustMoney(other, -fx.Amount)
			e.adjustMoney(p, fx.Amount)
			e.emit(PaymentEvent{From: other.ID, To: p.ID, Amount: fx.Amount, Reason: "card"})
		}
		e.logf("success", "%s collects $%d from each player.", p.Name, fx.Amount)
	case catalog.PerPropertyCollect:
		total := len(p.Properties) * fx.Amount
		e.adjustMoney(p, total)
		e.logf("success", "%s collects $%d ($%d x %d properties).", p.Name, total, fx.Amount, len(p.Properties))
	case catalog.PerCountryBonus:
		total := e.countOwned(p.ID, catalog.KindCountry) * fx.Amount
		e.adjustMoney(p, total)
		e.logf("success", "%s collects $%d from diaspora investment.", p.Name, total)
	case catalog.PerDevelopmentBonus:
		total := 0
		for _, id := range p.Properties {
			total += e.state.Board[id].DevelopmentLevel * fx.Amount
		}
		e.adjustMoney(p, total)
		e.logf("success", "%s collects $%d from developments.", p.Name, total)
	case catalog.OilBonus:
		if e.ownsResource(p, catalog.ResourceOil) > 0 {
			e.adjustMoney(p, fx.Amount)
			e.logf("success", "%s collects $%d from the oil surge!", p.Name, fx.Amount)
		}
	case catalog.AgricultureBonus:
		total := e.ownsResource(p, catalog.ResourceAgriculture) * fx.Amount
		e.adjustMoney(p, total)
		e.logf("success", "%s collects $%d from the harvest.", p.Name, total)
	case catalog.TourismPenalty:
		total := 0
		for _, id := range p.Properties {
			if sp := e.state.Board[id]; sp.Resource == catalog.ResourceTourism {
				total += sp.DevelopmentLevel * fx.Amount
			}
		}
		if total > 0 {
			e.adjustMoney(p, -total)
			e.emit(PaymentEvent{From: p.ID, Amount: total, Reason: "card"})
			e.logf("warning", "%s pays $%d for the tourism collapse.", p.Name, total)
		}
	case catalog.LosePercentage:
		loss := 0
		if p.Money > 0 {
			loss = p.Money * fx.Percent / 100 / 100 * 100
		}
		e.adjustMoney(p, -loss)
		e.logf("warning", "%s loses $%d in the currency crisis!", p.Name, loss)
	case catalog.FreeAllSanctioned:
		for i := range e.state.Players {
			if other := &e.state.Players[i]; other.InSanctions {
				e.release(other)
				e.logf("success", "%s freed from Trade Sanctions!", other.Name)
			}
		}
	case catalog.TimedRent:
		duration := max(fx.Duration, 1)
		e.state.ActiveEffects = append(e.state.ActiveEffects, ActiveEffect{
			Kind:         fx.Modifier,
			ExpiresRound: e.state.RoundNumber + duration,
		})
	case catalog.LoseDevelopment:
		var developed []*Space
		for _, id := range p.Properties {
			if sp := &e.state.Board[id]; sp.DevelopmentLevel > 0 {
				developed = append(developed, sp)
			}
		}
		if len(developed) > 0 {
			sort.SliceStable(developed, func(i, j int) bool { return developed[i].Price > developed[j].Price })
			developed[0].DevelopmentLevel--
			e.logf("warning", "%s loses a development level!", developed[0].Name)
		}
	case catalog.FreeUpgrade:
		p.HasFreeUpgrade = true
		e.logf("success", "%s receives a free development upgrade.", p.Name)
	case catalog.AdvanceTo:
		if id, ok := e.spaceByName(fx.SpaceName); ok {
			e.moveTo(p, id)
		}
	case catalog.AdvanceToNearest:
		if id, ok := e.nearest(p.Position, fx.Target); ok {
			if fx.DiscountPercent > 0 && e.state.Board[id].Owner == "" {
				e.state.Discount = &Discount{PlayerID: p.ID, SpaceID: id, Percent: fx.DiscountPercent}
			}
			e.moveTo(p, id)
		}
	case catalog.ArmsDeal:
		e.adjustMoney(p, fx.Collect)
		p.Influence = max(0, p.Influence-fx.InfluenceLoss)
		e.logf("info", "%s collects $%d but loses %d influence.", p.Name, fx.Collect, fx.InfluenceLoss)
	case catalog.CulturalExchange:
		e.adjustMoney(p, fx.Amount)
		p.Influence += fx.Influence
		e.logf("success", "%s collects $%d and %d influence.", p.Name, fx.Amount, fx.Influence)
	case catalog.TradeWarTax:
		seen := map[catalog.AllianceID]bool{}
		for _, id := range p.Properties {
			if a := e.state.Board[id].Alliance; a != "" {
				seen[a] = true
			}
		}
		tax := len(seen) * fx.Amount
		if tax > 0 {
			e.adjustMoney(p, -tax)
			e.emit(PaymentEvent{From: p.ID, Amount: tax, Reason: "card"})
		}
		e.logf("warning", "%s pays $%d in trade war tariffs (%d alliances).", p.Name, tax, len(seen))
	case catalog.TechHubBonus:
		n := 0
		for _, id := range p.Properties {
			if e.state.Board[id].DevelopmentLevel >= 3 {
				n++
			}
		}
		e.adjustMoney(p, n*fx.Amount)
		e.logf("success", "%s collects $%d from tech hubs.", p.Name, n*fx.Amount)
	}
}

func (e *Engine) ownsResource(p *Player, r catalog.Resource) int {
	n := 0
	for _, id := range p.Properties {
		if e.state.Board[id].Resource == r {
			n++
		}
	}
	return n
}

// nearest scans forward from pos for the first country matching target.
func (e *Engine) nearest(pos int, target catalog.NearestTarget) (int, bool) {
	n := len(e.state.Board)
	for i := 1; i < n; i++ {
		id := (pos + i) % n
		sp := e.state.Board[id]
		if sp.Kind != catalog.KindCountry {
			continue
		}
		switch target {
		case catalog.NearestTourism:
			if sp.Resource == catalog.ResourceTourism {
				return id, true
			}
		case catalog.NearestUnowned:
			if sp.Owner == "" {
				return id, true
			}
		}
	}
	return 0, false
}
