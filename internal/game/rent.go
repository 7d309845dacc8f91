package game

import "economic-wars/internal/catalog"

// defaultDiceTotal prices infrastructure rent when no roll is on record.
const defaultDiceTotal = 7

func (e *Engine) allianceCount(playerID string, id catalog.AllianceID) (owned, total int) {
	for _, sp := range e.state.Board {
		if sp.Kind != catalog.KindCountry || sp.Alliance != id {
			continue
		}
		total++
		if sp.Owner == playerID {
			owned++
		}
	}
	return owned, total
}

// HasCompleteAlliance reports whether playerID owns every country of id.
func (e *Engine) HasCompleteAlliance(playerID string, id catalog.AllianceID) bool {
	if playerID == "" {
		return false
	}
	owned, total := e.allianceCount(playerID, id)
	return total > 0 && owned == total
}

func (e *Engine) countOwned(playerID string, kind catalog.SpaceKind) int {
	n := 0
	for _, sp := range e.state.Board {
		if sp.Kind == kind && sp.Owner == playerID {
			n++
		}
	}
	return n
}

// resourcePercent is 5% per distinct resource among the owner's spaces.
func (e *Engine) resourcePercent(playerID string) int {
	seen := map[catalog.Resource]bool{}
	for _, sp := range e.state.Board {
		if sp.Owner == playerID && sp.Resource != "" {
			seen[sp.Resource] = true
		}
	}
	return 5 * len(seen)
}

// Rent is what a visitor owes on spaceID for a roll of diceTotal.
func (e *Engine) Rent(spaceID, diceTotal int) int {
	sp := e.state.Space(spaceID)
	if sp == nil || sp.Owner == "" || sp.Mortgaged {
		return 0
	}
	switch sp.Kind {
	case catalog.KindTransport:
		n := e.countOwned(sp.Owner, catalog.KindTransport)
		if n < 1 || n > len(sp.Rents) {
			return 0
		}
		return sp.Rents[n-1]
	case catalog.KindInfrastructure:
		mult := catalog.InfrastructureBaseMultiplier
		if e.countOwned(sp.Owner, catalog.KindInfrastructure) >= 2 {
			mult = e.state.Map.InfrastructureMultiplier
		}
		return diceTotal * mult
	case catalog.KindCountry:
		return e.countryRent(sp)
	}
	return 0
}

func (e *Engine) countryRent(sp *Space) int {
	if len(sp.Rents) == 0 {
		return 0
	}
	rent := 0
	if sp.DevelopmentLevel < len(sp.Rents) {
		rent = sp.Rents[sp.DevelopmentLevel]
	}
	if rent == 0 {
		rent = sp.Rents[0]
	}

	complete := e.HasCompleteAlliance(sp.Owner, sp.Alliance)
	if complete && sp.DevelopmentLevel == 0 {
		rent *= 2
	}
	if complete && sp.Alliance == catalog.EU && sp.DevelopmentLevel > 0 {
		rent *= 2
	}
	if complete && sp.Alliance == catalog.SouthAsian {
		rent += catalog.SouthAsianSurcharge
	}
	rent = rent * (100 + e.resourcePercent(sp.Owner)) / 100

	// An embargo on the owner wins over every other modifier.
	for _, fx := range e.state.ActiveEffects {
		if fx.Kind == catalog.ModifierEmbargo && fx.TargetID == sp.Owner {
			return 0
		}
	}
	for _, fx := range e.state.ActiveEffects {
		switch fx.Kind {
		case catalog.ModifierHalfRent:
			rent /= 2
		case catalog.ModifierTechDouble:
			if sp.Resource == catalog.ResourceTech {
				rent *= 2
			}
		case catalog.ModifierTechHalf:
			if sp.Resource == catalog.ResourceTech {
				rent /= 2
			}
		}
	}
	return rent
}

// payRent debits the full rent from p, which may leave p below zero.
func (e *Engine) payRent(p *Player, sp *Space) {
	total := defaultDiceTotal
	if e.state.LastDice != nil {
		total = e.state.LastDice.Total
	}
	rent := e.Rent(sp.ID, total)
	owner := e.state.PlayerByID(sp.Owner)
	if rent > 0 && owner != nil && !owner.Bankrupt {
		e.adjustMoney(p, -rent)
		e.adjustMoney(owner, rent)
		owner.Influence += rent / 100
		if e.HasCompleteAlliance(owner.ID, catalog.BRICS) {
			owner.Influence += rent / catalog.BRICSInfluenceDivide
		}
		owner.TotalRentCollected += rent
		p.TotalRentPaid += rent
		e.logf("rent", "%s pays $%d rent to %s for %s.", p.Name, rent, owner.Name, sp.Name)
		e.emit(PaymentEvent{From: p.ID, To: owner.ID, Amount: rent, Reason: "rent"})
	}
	e.state.Phase = PhaseEndTurn
}
