package game

import (
	"slices"

	"github.com/google/uuid"
)

// maxResolvedTrades bounds how many settled offers stay in the state.
const maxResolvedTrades = 20

// ProposeTrade records an offer from fromID to toID. Each listed property
// must belong to the side that lists it; custody is checked again on accept.
func (e *Engine) ProposeTrade(fromID, toID string, offer Offer) (TradeOffer, bool) {
	var out TradeOffer
	ok := e.run(func() bool {
		from, to := e.state.PlayerByID(fromID), e.state.PlayerByID(toID)
		if from == nil || to == nil || from.ID == to.ID || from.Bankrupt || to.Bankrupt {
			return false
		}
		if offer.GiveMoney < 0 || offer.GetMoney < 0 || !e.validLegs(offer) {
			return false
		}
		if offer.GiveMoney == 0 && offer.GetMoney == 0 && len(offer.GiveProperties) == 0 && len(offer.GetProperties) == 0 {
			return false
		}
		custody, ok := e.custody(offer, fromID, toID)
		if !ok {
			return false
		}
		t := TradeOffer{
			ID:     uuid.NewString(),
			FromID: fromID,
			ToID:   toID,
			Status: TradePending,
			Offer: Offer{
				GiveMoney:      offer.GiveMoney,
				GetMoney:       offer.GetMoney,
				GiveProperties: slices.Clone(offer.GiveProperties),
				GetProperties:  slices.Clone(offer.GetProperties),
			},
			Custody: custody,
		}
		if t.GiveProperties == nil {
			t.GiveProperties = []int{}
		}
		if t.GetProperties == nil {
			t.GetProperties = []int{}
		}
		e.state.TradeOffers = append(e.state.TradeOffers, t)
		e.logf("trade", "%s proposes a trade to %s.", from.Name, to.Name)
		e.emit(TradeEvent{TradeID: t.ID, FromID: fromID, ToID: toID, Status: TradePending})
		out = t
		return true
	})
	return out, ok
}

// validLegs rejects unknown spaces, duplicates and a space on both sides.
func (e *Engine) validLegs(o Offer) bool {
	seen := map[int]bool{}
	for _, id := range slices.Concat(o.GiveProperties, o.GetProperties) {
		if e.state.Space(id) == nil || seen[id] {
			return false
		}
		seen[id] = true
	}
	return true
}

func (e *Engine) custody(o Offer, fromID, toID string) ([]Holding, bool) {
	var out []Holding
	add := func(ids []int, owner string) bool {
		for _, id := range ids {
			sp := e.state.Space(id)
			if sp == nil || !sp.Kind.Ownable() || sp.Owner != owner {
				return false
			}
			out = append(out, Holding{SpaceID: id, Owner: owner, Mortgaged: sp.Mortgaged, Level: sp.DevelopmentLevel})
		}
		return true
	}
	if !add(o.GiveProperties, fromID) || !add(o.GetProperties, toID) {
		return nil, false
	}
	if out == nil {
		out = []Holding{}
	}
	return out, true
}

func (e *Engine) pendingTrade(id string) *TradeOffer {
	for i := range e.state.TradeOffers {
		if t := &e.state.TradeOffers[i]; t.ID == id && t.Status == TradePending {
			return t
		}
	}
	return nil
}

// AcceptTrade executes a pending offer addressed to playerID. Nothing
// changes unless both sides can pay and every listed property is held
// exactly as it was when the offer was made.
func (e *Engine) AcceptTrade(playerID, tradeID string) bool {
	return e.run(func() bool {
		t := e.pendingTrade(tradeID)
		if t == nil || t.ToID != playerID {
			return false
		}
		from, to := e.state.PlayerByID(t.FromID), e.state.PlayerByID(t.ToID)
		if from == nil || to == nil || from.Bankrupt || to.Bankrupt {
			return false
		}
		if from.Money < t.GiveMoney || to.Money < t.GetMoney || !e.validLegs(t.Offer) {
			return false
		}
		current, ok := e.custody(t.Offer, t.FromID, t.ToID)
		if !ok || !slices.Equal(current, t.Custody) {
			return false
		}

		e.adjustMoney(from, t.GetMoney-t.GiveMoney)
		e.adjustMoney(to, t.GiveMoney-t.GetMoney)
		for _, id := range t.GiveProperties {
			e.transfer(&e.state.Board[id], from, to)
		}
		for _, id := range t.GetProperties {
			e.transfer(&e.state.Board[id], to, from)
		}
		t.Status = TradeAccepted
		e.logf("trade", "Trade accepted between %s and %s!", from.Name, to.Name)
		e.emit(TradeEvent{TradeID: t.ID, FromID: t.FromID, ToID: t.ToID, Status: TradeAccepted})
		e.pruneTrades()
		return true
	})
}

func (e *Engine) transfer(sp *Space, from, to *Player) {
	sp.Owner = to.ID
	from.Properties = slices.DeleteFunc(from.Properties, func(id int) bool { return id == sp.ID })
	to.Properties = append(to.Properties, sp.ID)
}

func (e *Engine) RejectTrade(playerID, tradeID string) bool {
	return e.resolveTrade(tradeID, TradeRejected, func(t *TradeOffer) bool { return t.ToID == playerID })
}

// CancelTrade withdraws an offer; only its proposer may do so.
func (e *Engine) CancelTrade(playerID, tradeID string) bool {
	return e.resolveTrade(tradeID, TradeCancelled, func(t *TradeOffer) bool { return t.FromID == playerID })
}

func (e *Engine) resolveTrade(tradeID string, status TradeStatus, allowed func(*TradeOffer) bool) bool {
	return e.run(func() bool {
		t := e.pendingTrade(tradeID)
		if t == nil || !allowed(t) {
			return false
		}
		t.Status = status
		e.logf("trade", "Trade %s.", status)
		e.emit(TradeEvent{TradeID: t.ID, FromID: t.FromID, ToID: t.ToID, Status: status})
		e.pruneTrades()
		return true
	})
}

// pruneTrades keeps every pending offer and the most recent settled ones.
func (e *Engine) pruneTrades() {
	resolved := 0
	for _, t := range e.state.TradeOffers {
		if t.Status != TradePending {
			resolved++
		}
	}
	drop := resolved - maxResolvedTrades
	if drop <= 0 {
		return
	}
	e.state.TradeOffers = slices.DeleteFunc(e.state.TradeOffers, func(t TradeOffer) bool {
		if t.Status != TradePending && drop > 0 {
			drop--
			return true
		}
		return false
	})
}
