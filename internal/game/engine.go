package game

import (
	"fmt"

	"economic-wars/internal/catalog"
)

// Engine is the only mutator of a State. It is not safe for concurrent use;
// callers serialize actions per game.
type Engine struct {
	state    *State
	rng      Randomizer
	observer Observer

	events   []Event
	landings int
}

type Option func(*Engine)

func WithRandomizer(r Randomizer) Option {
	return func(e *Engine) { e.rng = r }
}

func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

func NewEngine(s *State, opts ...Option) *Engine {
	e := &Engine{state: s}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = NewRandomizer()
	}
	if e.observer == nil {
		e.observer = nopObserver{}
	}
	return e
}

// State exposes the live state for inspection. Callers must not modify it.
func (e *Engine) State() *State { return e.state }

// run executes one action. Events are delivered only when fn reports a
// change, and are followed by a single state notification.
func (e *Engine) run(fn func() bool) bool {
	if e.state.GameOver {
		return false
	}
	e.events = nil
	if !fn() {
		e.events = nil
		return false
	}
	e.settle()
	events := e.events
	e.events = nil
	for _, ev := range events {
		e.observer.Animated(ev)
	}
	e.observer.StateChanged(e.state)
	return true
}

// settle resolves debts left by the action: every player below zero with
// nothing to liquidate goes bankrupt, a bankrupt current player loses the
// turn, and win conditions are re-checked.
func (e *Engine) settle() {
	for i := range e.state.Players {
		p := &e.state.Players[i]
		if !p.Bankrupt && p.Money < 0 && !e.hasLiquidatableAssets(p) {
			e.declareBankruptcy(p)
		}
	}
	e.checkWinCondition()
	if !e.state.GameOver && e.state.CurrentPlayer().Bankrupt {
		e.nextTurn()
	}
}

func (e *Engine) emit(ev Event) {
	e.events = append(e.events, ev)
}

func (e *Engine) logf(kind, format string, args ...any) {
	e.state.appendLog(kind, fmt.Sprintf(format, args...))
}

func (e *Engine) adjustMoney(p *Player, amount int) {
	p.Money += amount
}

func (e *Engine) current() *Player { return e.state.CurrentPlayer() }

// Insolvent reports whether a player owes money but can still raise it.
func (e *Engine) Insolvent(playerID string) bool {
	p := e.state.PlayerByID(playerID)
	return p != nil && !p.Bankrupt && p.Money < 0 && e.hasLiquidatableAssets(p)
}

// SetConnected records a player's connection status. It does not notify
// observers; the next broadcast carries it.
func (e *Engine) SetConnected(playerID string, connected bool) {
	if p := e.state.PlayerByID(playerID); p != nil {
		p.Connected = connected
	}
}

// SkipDisconnected forfeits the turn of every disconnected current player
// in a row, as long as some connected player is still in the game.
func (e *Engine) SkipDisconnected() bool {
	return e.run(func() bool {
		skipped := false
		for range e.state.Players {
			p := e.current()
			if e.state.GameOver || p.Connected || p.Bankrupt || !e.anyConnectedActive() {
				break
			}
			e.forfeitTurn(p)
			skipped = true
		}
		return skipped
	})
}

func (e *Engine) anyConnectedActive() bool {
	for _, p := range e.state.ActivePlayers() {
		if p.Connected {
			return true
		}
	}
	return false
}

func (e *Engine) forfeitTurn(p *Player) {
	e.state.Discount = nil
	if p.Money < 0 {
		e.autoLiquidate(p)
	}
	if p.Money < 0 && !e.hasLiquidatableAssets(p) {
		e.declareBankruptcy(p)
	}
	p.DoublesCount = 0
	e.logf("info", "%s is away. Turn skipped.", p.Name)
	e.nextTurn()
}

func (e *Engine) spaceByName(name string) (int, bool) {
	for _, sp := range e.state.Board {
		if sp.Name == name {
			return sp.ID, true
		}
	}
	return 0, false
}

func (e *Engine) ownedSpace(playerID string, spaceID int, kind catalog.SpaceKind) *Space {
	sp := e.state.Space(spaceID)
	if sp == nil || sp.Owner != playerID || sp.Owner == "" {
		return nil
	}
	if kind != "" && sp.Kind != kind {
		return nil
	}
	return sp
}
