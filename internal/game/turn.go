package game

import "economic-wars/internal/catalog"

// RollDice rolls for the current player and resolves the move.
func (e *Engine) RollDice() bool {
	return e.run(func() bool {
		if e.state.Phase != PhasePreRoll {
			return false
		}
		p := e.current()
		if p.Bankrupt {
			e.nextTurn()
			return true
		}

		dice := rollDice(e.rng)
		e.state.LastDice = &dice
		e.state.Phase = PhaseRolling
		e.emit(DiceEvent{PlayerID: p.ID, Dice: dice})
		if dice.Doubles {
			e.logf("info", "%s rolled %d + %d = %d (Doubles!)", p.Name, dice.D1, dice.D2, dice.Total)
		} else {
			e.logf("info", "%s rolled %d + %d = %d", p.Name, dice.D1, dice.D2, dice.Total)
		}

		if p.InSanctions {
			switch {
			case dice.Doubles:
				e.release(p)
				e.logf("success", "%s rolled doubles and escapes Trade Sanctions!", p.Name)
			case p.SanctionsTurns >= catalog.MaxSanctionWaits:
				e.release(p)
				bail := e.state.Settings.SanctionsBail
				e.adjustMoney(p, -bail)
				e.emit(PaymentEvent{From: p.ID, Amount: bail, Reason: "bail"})
				e.logf("warning", "%s forced to pay $%d bail after %d turns in Sanctions.", p.Name, bail, catalog.MaxSanctionWaits)
			default:
				p.SanctionsTurns++
				e.logf("info", "%s remains in Trade Sanctions (turn %d/%d).", p.Name, p.SanctionsTurns, catalog.MaxSanctionWaits)
				e.state.Phase = PhaseEndTurn
				return true
			}
		}

		if dice.Doubles {
			p.DoublesCount++
			if p.DoublesCount >= catalog.MaxDoubles {
				e.sendToSanctions(p)
				e.logf("warning", "%s rolled %d doubles in a row! Sent to Trade Sanctions!", p.Name, catalog.MaxDoubles)
				e.state.Phase = PhaseEndTurn
				return true
			}
		} else {
			p.DoublesCount = 0
		}

		e.movePlayer(p, dice.Total)
		return true
	})
}

func (e *Engine) movePlayer(p *Player, steps int) {
	from := p.Position
	to := (from + steps) % len(e.state.Board)
	if to < from && steps > 0 {
		e.passStart(p)
	}
	e.arrive(p, from, to)
}

// moveTo jumps to target, paying the salary when the jump wraps past start.
func (e *Engine) moveTo(p *Player, target int) {
	from := p.Position
	if target < from {
		e.passStart(p)
	}
	e.arrive(p, from, target)
}

// arrive places p on to and resolves the landing. Dice moves and card
// jumps share it so both pass through PhaseMoving.
func (e *Engine) arrive(p *Player, from, to int) {
	p.Position = to
	e.state.Phase = PhaseMoving
	e.emit(MoveEvent{PlayerID: p.ID, From: from, To: to})
	e.handleLanding(p)
}

func (e *Engine) passStart(p *Player) {
	salary := e.Salary(p)
	e.adjustMoney(p, salary)
	p.Influence += catalog.StartInfluence
	e.logf("success", "%s passes Global Summit! Collects $%d and %d influence.", p.Name, salary, catalog.StartInfluence)
}

// Salary is the start payout, raised by accumulated influence.
func (e *Engine) Salary(p *Player) int {
	return e.state.Settings.StartSalary + p.Influence/catalog.SalaryInfluenceStep*catalog.SalaryInfluenceBonus
}

func (e *Engine) sendToSanctions(p *Player) {
	p.Position = e.state.Map.SanctionsIndex()
	p.InSanctions = true
	p.SanctionsTurns = 0
	p.DoublesCount = 0
	e.emit(SanctionsEvent{PlayerID: p.ID})
}

func (e *Engine) release(p *Player) {
	p.InSanctions = false
	p.SanctionsTurns = 0
}

// PayBail releases the current player from sanctions before rolling.
func (e *Engine) PayBail() bool {
	return e.run(func() bool {
		p := e.current()
		bail := e.state.Settings.SanctionsBail
		if e.state.Phase != PhasePreRoll || !p.InSanctions || p.Money < bail {
			return false
		}
		e.adjustMoney(p, -bail)
		e.release(p)
		e.emit(PaymentEvent{From: p.ID, Amount: bail, Reason: "bail"})
		e.logf("info", "%s pays $%d to exit Trade Sanctions.", p.Name, bail)
		return true
	})
}

// UseImmunity spends a held immunity card. The card goes back to the
// diplomatic cable discard pile.
func (e *Engine) UseImmunity() bool {
	return e.run(func() bool {
		p := e.current()
		if e.state.Phase != PhasePreRoll || !p.InSanctions || !p.HasGetOutFree {
			return false
		}
		p.HasGetOutFree = false
		e.release(p)
		e.state.DiplomaticDiscard = append(e.state.DiplomaticDiscard, catalog.ImmunityCardID)
		e.logf("success", "%s uses Diplomatic Immunity card to escape Sanctions!", p.Name)
		return true
	})
}

// EndTurn finishes the current turn. Doubles grant the same player another
// turn. An insolvent player must liquidate first.
func (e *Engine) EndTurn() bool {
	return e.run(func() bool {
		p := e.current()
		if e.state.Phase != PhaseEndTurn || e.Insolvent(p.ID) {
			return false
		}
		p.TurnsPlayed++
		e.state.Discount = nil
		if e.state.LastDice != nil && e.state.LastDice.Doubles && !p.InSanctions && !p.Bankrupt {
			e.state.Phase = PhasePreRoll
			e.logf("info", "%s gets another turn (doubles)!", p.Name)
			return true
		}
		e.nextTurn()
		return true
	})
}

func (e *Engine) nextTurn() {
	e.current().DoublesCount = 0
	if len(e.state.ActivePlayers()) <= 1 {
		e.endGame()
		return
	}
	n := len(e.state.Players)
	next := (e.state.CurrentPlayerIndex + 1) % n
	for tries := 0; e.state.Players[next].Bankrupt; tries++ {
		if tries >= n {
			e.endGame()
			return
		}
		next = (next + 1) % n
	}

	if next <= e.state.CurrentPlayerIndex {
		e.state.RoundNumber++
		e.completeRound()
	}

	e.state.CurrentPlayerIndex = next
	e.state.TurnNumber++
	e.state.Phase = PhasePreRoll
	e.state.LastDice = nil
	e.state.Discount = nil
}

// completeRound expires timed effects and pays alliance round bonuses.
func (e *Engine) completeRound() {
	kept := e.state.ActiveEffects[:0]
	for _, fx := range e.state.ActiveEffects {
		if e.state.RoundNumber <= fx.ExpiresRound {
			kept = append(kept, fx)
		}
	}
	e.state.ActiveEffects = kept

	for _, p := range e.state.ActivePlayers() {
		if e.HasCompleteAlliance(p.ID, catalog.OilNations) {
			e.adjustMoney(p, catalog.OilRoyalty)
			e.logf("success", "%s collects $%d from Oil Royalties!", p.Name, catalog.OilRoyalty)
		}
		if e.HasCompleteAlliance(p.ID, catalog.Eastern) {
			p.Influence += catalog.EasternInfluence
		}
		if e.HasCompleteAlliance(p.ID, catalog.AfricanRising) {
			e.adjustMoney(p, catalog.AfricanTourism)
			e.logf("success", "%s collects $%d from Tourism Income!", p.Name, catalog.AfricanTourism)
		}
		if e.HasCompleteAlliance(p.ID, catalog.Americas) {
			p.HasFreeUpgrade = true
		}
		if e.HasCompleteAlliance(p.ID, catalog.Nordic) {
			p.Influence += catalog.NordicInfluence
		}
		if e.HasCompleteAlliance(p.ID, catalog.PacificIslands) {
			e.adjustMoney(p, catalog.PacificTourism)
			e.logf("success", "%s collects $%d from the Tourism Boost!", p.Name, catalog.PacificTourism)
		}
	}
}
