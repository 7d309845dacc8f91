// Command economic-wars plays a headless game between CPU players and
// prints the final standings. It exercises the rules engine without a
// client or a server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"economic-wars/internal/catalog"
	"economic-wars/internal/game"
)

type simOptions struct {
	Players  int
	MapID    string
	Seed     uint64
	MaxSteps int
	Verbose  bool
}

func main() {
	var opts simOptions
	var asJSON bool
	flag.IntVar(&opts.Players, "players", 4, "number of CPU players (2-8)")
	flag.StringVar(&opts.MapID, "map", catalog.MapClassic, "board variant")
	flag.Uint64Var(&opts.Seed, "seed", 0, "random seed (0 = random)")
	flag.IntVar(&opts.MaxSteps, "max-steps", 20000, "stop after this many actions")
	flag.BoolVar(&opts.Verbose, "v", false, "print the game log as it happens")
	flag.BoolVar(&asJSON, "json", false, "print standings as JSON")
	flag.Parse()

	e, err := simulate(opts, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, "economic-wars:", err)
		os.Exit(1)
	}

	s := e.State()
	if asJSON {
		js, _ := json.MarshalIndent(map[string]any{
			"gameOver":  s.GameOver,
			"winner":    s.Winner,
			"rounds":    s.RoundNumber,
			"standings": e.Standings(),
		}, "", "  ")
		fmt.Println(string(js))
		return
	}

	if s.GameOver {
		fmt.Printf("\nGame over after %d rounds.\n", s.RoundNumber)
	} else {
		fmt.Printf("\nStopped after %d rounds without a winner.\n", s.RoundNumber)
	}
	for i, st := range e.Standings() {
		status := ""
		if st.Bankrupt {
			status = " (bankrupt)"
		}
		fmt.Printf("%d. %-8s wealth $%-7d influence %-5d properties %d%s\n",
			i+1, st.Name, st.Wealth, st.Influence, st.Properties, status)
	}
}

// printer echoes log entries added since the last state change.
type printer struct {
	out  io.Writer
	last *game.LogEntry
}

func (p *printer) Animated(game.Event) {}

func (p *printer) StateChanged(s *game.State) {
	start := 0
	if p.last != nil {
		for i := len(s.Log) - 1; i >= 0; i-- {
			if s.Log[i] == *p.last {
				start = i + 1
				break
			}
		}
	}
	for _, entry := range s.Log[start:] {
		fmt.Fprintf(p.out, "[%s] %s\n", entry.Kind, entry.Message)
	}
	if n := len(s.Log); n > 0 {
		last := s.Log[n-1]
		p.last = &last
	}
}

func simulate(opts simOptions, out io.Writer) (*game.Engine, error) {
	var rng game.Randomizer
	if opts.Seed != 0 {
		rng = rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	} else {
		rng = game.NewRandomizer()
	}

	seats := make([]game.Seat, opts.Players)
	for i := range seats {
		seats[i] = game.Seat{Name: fmt.Sprintf("CPU-%d", i+1), Avatar: -1}
	}
	s, err := game.NewState(game.Setup{Seats: seats, MapID: opts.MapID}, rng)
	if err != nil {
		return nil, err
	}

	engineOpts := []game.Option{game.WithRandomizer(rng)}
	if opts.Verbose {
		engineOpts = append(engineOpts, game.WithObserver(&printer{out: out}))
	}
	e := game.NewEngine(s, engineOpts...)
	for step := 0; step < opts.MaxSteps && !e.State().GameOver; step++ {
		play(e)
	}
	return e, nil
}

// reserve is the cash a CPU player keeps back before buying or building.
const reserve = 1500

// play makes one decision for the current player.
func play(e *game.Engine) {
	s := e.State()
	p := s.CurrentPlayer()

	switch s.Phase {
	case game.PhasePreRoll:
		if p.InSanctions {
			if p.HasGetOutFree && e.Apply(p.ID, game.UseImmunity{}) {
				return
			}
			if p.Money > 4*s.Settings.SanctionsBail && e.Apply(p.ID, game.PayBail{}) {
				return
			}
		}
		if e.Apply(p.ID, game.RollDice{}) {
			return
		}
	case game.PhaseAction:
		if p.Money-s.Board[p.Position].Price >= reserve && e.Apply(p.ID, game.BuyProperty{}) {
			return
		}
		if e.Apply(p.ID, game.DeclinePurchase{}) {
			return
		}
	case game.PhaseEndTurn:
		raiseCash(e, p)
		if p.Money > 3*reserve {
			for _, id := range p.Properties {
				if e.Apply(p.ID, game.Develop{SpaceID: id}) {
					break
				}
			}
		}
		if e.Apply(p.ID, game.EndTurn{}) {
			return
		}
	}

	// Nothing applied: let the engine play the turn out as if the player
	// had stepped away.
	e.SetConnected(p.ID, false)
	e.SkipDisconnected()
	e.SetConnected(p.ID, true)
}

// raiseCash sells and mortgages until the player is no longer in debt.
func raiseCash(e *game.Engine, p *game.Player) {
	for e.Insolvent(p.ID) {
		progressed := false
		for _, id := range append([]int(nil), p.Properties...) {
			if e.Apply(p.ID, game.SellDevelopment{SpaceID: id}) ||
				e.Apply(p.ID, game.Mortgage{SpaceID: id}) ||
				e.Apply(p.ID, game.SellProperty{SpaceID: id}) {
				progressed = true
				break
			}
		}
		if !progressed {
			return
		}
	}
}
