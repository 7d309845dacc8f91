package game

import "economic-wars/internal/catalog"

type liquidationKind int

const (
	liquidateDevelopment liquidationKind = iota
	liquidateMortgage
	liquidateSale
)

type liquidation struct {
	Kind    liquidationKind
	SpaceID int
	Cash    int
}

// Weights per step. Developments go first, whole properties last.
const (
	wDevelopment = 3000
	wMortgage    = 2000
	wSale        = 1000
)

// liquidationScore prefers cheap losses: within a kind, the step that
// gives up the least rent per dollar raised scores highest.
func (e *Engine) liquidationScore(l liquidation) int {
	sp := e.state.Board[l.SpaceID]
	score := 0
	switch l.Kind {
	case liquidateDevelopment:
		score = wDevelopment + sp.DevelopmentLevel*100
	case liquidateMortgage:
		score = wMortgage
	case liquidateSale:
		score = wSale
	}
	if l.Cash > 0 {
		score -= e.Rent(l.SpaceID, defaultDiceTotal) * 100 / l.Cash
	}
	return score
}

func (e *Engine) liquidationCandidates(p *Player) []liquidation {
	var out []liquidation
	for _, id := range p.Properties {
		sp := e.state.Board[id]
		switch {
		case sp.DevelopmentLevel > 0:
			out = append(out, liquidation{liquidateDevelopment, id, catalog.BuildCost(sp.Price, sp.DevelopmentLevel) / 2})
		case !sp.Mortgaged:
			out = append(out, liquidation{liquidateMortgage, id, MortgageValue(sp.Price)})
		default:
			out = append(out, liquidation{liquidateSale, id, SaleValue(sp)})
		}
	}
	return out
}

// autoLiquidate raises cash for an absent insolvent player one step at a
// time until the balance is non-negative or nothing is left to sell.
func (e *Engine) autoLiquidate(p *Player) {
	for p.Money < 0 {
		cands := e.liquidationCandidates(p)
		if len(cands) == 0 {
			return
		}
		best := cands[0]
		bestScore := e.liquidationScore(best)
		for _, c := range cands[1:] {
			if s := e.liquidationScore(c); s > bestScore {
				best, bestScore = c, s
			}
		}
		sp := &e.state.Board[best.SpaceID]
		switch best.Kind {
		case liquidateDevelopment:
			e.sellDevelopment(p, sp)
		case liquidateMortgage:
			e.mortgage(p, sp)
		case liquidateSale:
			e.sellProperty(p, sp)
		}
	}
}
