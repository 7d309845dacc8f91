package game

import (
	"slices"

	"economic-wars/internal/catalog"
)

// BuyProperty buys the unowned space the current player stands on.
func (e *Engine) BuyProperty() bool {
	return e.run(func() bool {
		p := e.current()
		sp := e.state.Space(p.Position)
		if e.state.Phase != PhaseAction || sp == nil || !sp.Kind.Ownable() || sp.Owner != "" {
			return false
		}
		price := e.PurchasePrice(p.ID, sp.ID)
		if p.Money < price {
			return false
		}
		e.adjustMoney(p, -price)
		sp.Owner = p.ID
		p.Properties = append(p.Properties, sp.ID)
		p.Influence += catalog.PurchaseInfluence
		e.state.Discount = nil
		e.state.Phase = PhaseEndTurn
		e.logf("purchase", "%s purchases %s for $%d!", p.Name, sp.Name, price)
		e.emit(PurchaseEvent{PlayerID: p.ID, SpaceID: sp.ID, Price: price})
		return true
	})
}

// PurchasePrice is the price playerID pays for spaceID, after any pending
// card discount.
func (e *Engine) PurchasePrice(playerID string, spaceID int) int {
	sp := e.state.Space(spaceID)
	if sp == nil {
		return 0
	}
	d := e.state.Discount
	if d != nil && d.PlayerID == playerID && d.SpaceID == spaceID {
		return sp.Price * (100 - d.Percent) / 100
	}
	return sp.Price
}

func (e *Engine) DeclinePurchase() bool {
	return e.run(func() bool {
		if e.state.Phase != PhaseAction {
			return false
		}
		e.state.Discount = nil
		e.state.Phase = PhaseEndTurn
		e.logf("info", "%s declines to buy.", e.current().Name)
		return true
	})
}

// DevelopmentCost is the price of the next level on spaceID. ok is false
// when the space cannot be developed further by its owner.
func (e *Engine) DevelopmentCost(spaceID int) (cost int, ok bool) {
	sp := e.state.Space(spaceID)
	if sp == nil || sp.Kind != catalog.KindCountry || sp.Owner == "" || sp.Mortgaged {
		return 0, false
	}
	if sp.DevelopmentLevel >= catalog.MaxDevelopmentLevel {
		return 0, false
	}
	if !e.HasCompleteAlliance(sp.Owner, sp.Alliance) {
		return 0, false
	}
	next := sp.DevelopmentLevel + 1
	cost = catalog.BuildCost(sp.Price, next)
	if sp.Alliance == catalog.AsianTigers && next == 3 {
		cost /= 2
	}
	if next == catalog.MaxDevelopmentLevel {
		for _, other := range e.state.Board {
			if other.Alliance == sp.Alliance && other.Owner == sp.Owner && other.DevelopmentLevel == catalog.MaxDevelopmentLevel {
				return 0, false
			}
		}
	}
	return cost, true
}

// Develop builds one level on a country the player owns.
func (e *Engine) Develop(playerID string, spaceID int) bool {
	return e.run(func() bool {
		p := e.state.PlayerByID(playerID)
		sp := e.ownedSpace(playerID, spaceID, catalog.KindCountry)
		if p == nil || sp == nil {
			return false
		}
		cost, ok := e.DevelopmentCost(spaceID)
		if !ok || p.Money < cost {
			return false
		}
		e.adjustMoney(p, -cost)
		e.raiseLevel(p, sp, false)
		e.logf("development", "%s develops %s to %s ($%d)!", p.Name, sp.Name, catalog.TierAt(sp.DevelopmentLevel).Name, cost)
		return true
	})
}

// FreeUpgrade redeems the player's free upgrade entitlement.
func (e *Engine) FreeUpgrade(playerID string, spaceID int) bool {
	return e.run(func() bool {
		p := e.state.PlayerByID(playerID)
		sp := e.ownedSpace(playerID, spaceID, catalog.KindCountry)
		if p == nil || sp == nil || !p.HasFreeUpgrade {
			return false
		}
		if _, ok := e.DevelopmentCost(spaceID); !ok {
			return false
		}
		p.HasFreeUpgrade = false
		e.raiseLevel(p, sp, true)
		e.logf("development", "%s freely develops %s to %s!", p.Name, sp.Name, catalog.TierAt(sp.DevelopmentLevel).Name)
		return true
	})
}

func (e *Engine) raiseLevel(p *Player, sp *Space, free bool) {
	sp.DevelopmentLevel++
	p.DevelopmentCount++
	p.Influence += catalog.DevelopInfluence * sp.DevelopmentLevel
	e.emit(DevelopEvent{PlayerID: p.ID, SpaceID: sp.ID, Level: sp.DevelopmentLevel, Free: free})
}

// MortgageValue is paid out when an undeveloped space is mortgaged.
func MortgageValue(price int) int { return price / 2 }

// UnmortgageCost is the mortgage principal plus 10% interest.
func UnmortgageCost(price int) int { return price * 55 / 100 }

func (e *Engine) Mortgage(playerID string, spaceID int) bool {
	return e.run(func() bool {
		p := e.state.PlayerByID(playerID)
		sp := e.ownedSpace(playerID, spaceID, "")
		if p == nil || sp == nil || sp.Mortgaged || sp.DevelopmentLevel > 0 {
			return false
		}
		e.mortgage(p, sp)
		return true
	})
}

func (e *Engine) mortgage(p *Player, sp *Space) {
	value := MortgageValue(sp.Price)
	sp.Mortgaged = true
	e.adjustMoney(p, value)
	e.logf("info", "%s mortgages %s for $%d.", p.Name, sp.Name, value)
}

func (e *Engine) Unmortgage(playerID string, spaceID int) bool {
	return e.run(func() bool {
		p := e.state.PlayerByID(playerID)
		sp := e.ownedSpace(playerID, spaceID, "")
		if p == nil || sp == nil || !sp.Mortgaged {
			return false
		}
		cost := UnmortgageCost(sp.Price)
		if p.Money < cost {
			return false
		}
		e.adjustMoney(p, -cost)
		sp.Mortgaged = false
		e.emit(PaymentEvent{From: p.ID, Amount: cost, Reason: "unmortgage"})
		e.logf("info", "%s unmortgages %s for $%d.", p.Name, sp.Name, cost)
		return true
	})
}

// SellDevelopment removes one level and refunds half of its build cost.
func (e *Engine) SellDevelopment(playerID string, spaceID int) bool {
	return e.run(func() bool {
		p := e.state.PlayerByID(playerID)
		sp := e.ownedSpace(playerID, spaceID, catalog.KindCountry)
		if p == nil || sp == nil || sp.DevelopmentLevel <= 0 {
			return false
		}
		e.sellDevelopment(p, sp)
		return true
	})
}

func (e *Engine) sellDevelopment(p *Player, sp *Space) {
	refund := catalog.BuildCost(sp.Price, sp.DevelopmentLevel) / 2
	sp.DevelopmentLevel--
	e.adjustMoney(p, refund)
	e.logf("info", "%s sells development on %s for $%d.", p.Name, sp.Name, refund)
}

// SaleValue is what the bank pays for a whole property: half the price, a
// quarter if mortgaged, plus half the build cost of every level on it.
func SaleValue(sp Space) int {
	value := sp.Price / 2
	if sp.Mortgaged {
		value = sp.Price / 4
	}
	for lvl := 1; lvl <= sp.DevelopmentLevel; lvl++ {
		value += catalog.BuildCost(sp.Price, lvl) / 2
	}
	return value
}

// SellProperty liquidates a property back to the bank.
func (e *Engine) SellProperty(playerID string, spaceID int) bool {
	return e.run(func() bool {
		p := e.state.PlayerByID(playerID)
		sp := e.ownedSpace(playerID, spaceID, "")
		if p == nil || sp == nil {
			return false
		}
		e.sellProperty(p, sp)
		return true
	})
}

func (e *Engine) sellProperty(p *Player, sp *Space) {
	value := SaleValue(*sp)
	e.releaseSpace(p, sp)
	e.adjustMoney(p, value)
	e.logf("info", "%s sells %s to the bank for $%d.", p.Name, sp.Name, value)
}

func (e *Engine) releaseSpace(p *Player, sp *Space) {
	sp.Owner = ""
	sp.DevelopmentLevel = 0
	sp.Mortgaged = false
	p.Properties = slices.DeleteFunc(p.Properties, func(id int) bool { return id == sp.ID })
}

// hasLiquidatableAssets reports whether p could still raise cash by
// selling a development or mortgaging or selling an unmortgaged holding.
func (e *Engine) hasLiquidatableAssets(p *Player) bool {
	for _, id := range p.Properties {
		sp := e.state.Board[id]
		if sp.DevelopmentLevel > 0 || (!sp.Mortgaged && sp.Price > 0) {
			return true
		}
	}
	return false
}
