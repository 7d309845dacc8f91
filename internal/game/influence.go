package game

import "economic-wars/internal/catalog"

// UseInfluence spends the current player's influence on kind. The cost is
// only deducted when the effect applies.
func (e *Engine) UseInfluence(kind InfluenceKind, targetID string) bool {
	return e.run(func() bool {
		p := e.current()
		switch kind {
		case InfluenceEmbargo:
			target := e.state.PlayerByID(targetID)
			if p.Influence < catalog.EmbargoCost || target == nil || target.ID == p.ID || target.Bankrupt {
				return false
			}
			p.Influence -= catalog.EmbargoCost
			e.state.ActiveEffects = append(e.state.ActiveEffects, ActiveEffect{
				Kind:         catalog.ModifierEmbargo,
				ExpiresRound: e.state.RoundNumber + 1,
				TargetID:     target.ID,
			})
			e.logf("influence", "%s imposes a Trade Embargo on %s!", p.Name, target.Name)
		case InfluenceSummit:
			if p.Influence < catalog.SummitCost {
				return false
			}
			p.Influence -= catalog.SummitCost
			for _, other := range e.state.ActivePlayers() {
				e.adjustMoney(other, catalog.SummitPayout)
			}
			e.logf("influence", "%s calls a Summit Meeting! All players receive $%d.", p.Name, catalog.SummitPayout)
		case InfluenceDevelopmentGrant:
			if p.Influence < catalog.DevelopmentGrantCost {
				return false
			}
			p.Influence -= catalog.DevelopmentGrantCost
			p.HasFreeUpgrade = true
			e.logf("influence", "%s uses influence for a Development Grant!", p.Name)
		default:
			return false
		}
		return true
	})
}
