package game

import "sort"

type Standing struct {
	PlayerID   string `json:"playerId"`
	Name       string `json:"name"`
	Wealth     int    `json:"wealth"`
	Influence  int    `json:"influence"`
	Properties int    `json:"properties"`
	Bankrupt   bool   `json:"bankrupt"`
}

// Standings ranks players by wealth, then influence. Bankrupt players sort last.
func (e *Engine) Standings() []Standing {
	out := make([]Standing, 0, len(e.state.Players))
	for i := range e.state.Players {
		p := &e.state.Players[i]
		out = append(out, Standing{
			PlayerID:   p.ID,
			Name:       p.Name,
			Wealth:     e.Wealth(p),
			Influence:  p.Influence,
			Properties: len(p.Properties),
			Bankrupt:   p.Bankrupt,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Bankrupt != b.Bankrupt {
			return !a.Bankrupt
		}
		if a.Wealth != b.Wealth {
			return a.Wealth > b.Wealth
		}
		return a.Influence > b.Influence
	})
	return out
}
