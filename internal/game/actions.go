package game

// ActionType is the wire name of an action.
type ActionType string

const (
	ActionRollDice        ActionType = "roll-dice"
	ActionPayBail         ActionType = "pay-bail"
	ActionUseImmunity     ActionType = "use-immunity"
	ActionBuyProperty     ActionType = "buy-property"
	ActionDeclinePurchase ActionType = "decline-purchase"
	ActionEndTurn         ActionType = "end-turn"
	ActionInfluence       ActionType = "influence-action"
	ActionProposeTrade    ActionType = "propose-trade"
	ActionAcceptTrade     ActionType = "accept-trade"
	ActionRejectTrade     ActionType = "reject-trade"
	ActionCancelTrade     ActionType = "cancel-trade"
	ActionDevelop         ActionType = "develop-property"
	ActionFreeUpgrade     ActionType = "free-upgrade"
	ActionMortgage        ActionType = "mortgage-property"
	ActionUnmortgage      ActionType = "unmortgage-property"
	ActionSellDevelopment ActionType = "sell-development"
	ActionSellProperty    ActionType = "sell-property"
)

// Action is the closed set of player requests. TurnBound actions are only
// accepted from the current player.
type Action interface {
	Type() ActionType
	TurnBound() bool
	isAction()
}

type InfluenceKind string

const (
	InfluenceEmbargo          InfluenceKind = "embargo"
	InfluenceSummit           InfluenceKind = "summit"
	InfluenceDevelopmentGrant InfluenceKind = "development_grant"
)

type (
	RollDice        struct{}
	PayBail         struct{}
	UseImmunity     struct{}
	BuyProperty     struct{}
	DeclinePurchase struct{}
	EndTurn         struct{}
	UseInfluence    struct {
		Kind     InfluenceKind
		TargetID string
	}
	ProposeTrade struct {
		PartnerID string
		Offer     Offer
	}
	AcceptTrade     struct{ TradeID string }
	RejectTrade     struct{ TradeID string }
	CancelTrade     struct{ TradeID string }
	Develop         struct{ SpaceID int }
	FreeUpgrade     struct{ SpaceID int }
	Mortgage        struct{ SpaceID int }
	Unmortgage      struct{ SpaceID int }
	SellDevelopment struct{ SpaceID int }
	SellProperty    struct{ SpaceID int }
)

func (RollDice) Type() ActionType        { return ActionRollDice }
func (PayBail) Type() ActionType         { return ActionPayBail }
func (UseImmunity) Type() ActionType     { return ActionUseImmunity }
func (BuyProperty) Type() ActionType     { return ActionBuyProperty }
func (DeclinePurchase) Type() ActionType { return ActionDeclinePurchase }
func (EndTurn) Type() ActionType         { return ActionEndTurn }
func (UseInfluence) Type() ActionType    { return ActionInfluence }
func (ProposeTrade) Type() ActionType    { return ActionProposeTrade }
func (AcceptTrade) Type() ActionType     { return ActionAcceptTrade }
func (RejectTrade) Type() ActionType     { return ActionRejectTrade }
func (CancelTrade) Type() ActionType     { return ActionCancelTrade }
func (Develop) Type() ActionType         { return ActionDevelop }
func (FreeUpgrade) Type() ActionType     { return ActionFreeUpgrade }
func (Mortgage) Type() ActionType        { return ActionMortgage }
func (Unmortgage) Type() ActionType      { return ActionUnmortgage }
func (SellDevelopment) Type() ActionType { return ActionSellDevelopment }
func (SellProperty) Type() ActionType    { return ActionSellProperty }

func (RollDice) TurnBound() bool        { return true }
func (PayBail) TurnBound() bool         { return true }
func (UseImmunity) TurnBound() bool     { return true }
func (BuyProperty) TurnBound() bool     { return true }
func (DeclinePurchase) TurnBound() bool { return true }
func (EndTurn) TurnBound() bool         { return true }
func (UseInfluence) TurnBound() bool    { return true }
func (ProposeTrade) TurnBound() bool    { return false }
func (AcceptTrade) TurnBound() bool     { return false }
func (RejectTrade) TurnBound() bool     { return false }
func (CancelTrade) TurnBound() bool     { return false }
func (Develop) TurnBound() bool         { return false }
func (FreeUpgrade) TurnBound() bool     { return false }
func (Mortgage) TurnBound() bool        { return false }
func (Unmortgage) TurnBound() bool      { return false }
func (SellDevelopment) TurnBound() bool { return false }
func (SellProperty) TurnBound() bool    { return false }

func (RollDice) isAction()        {}
func (PayBail) isAction()         {}
func (UseImmunity) isAction()     {}
func (BuyProperty) isAction()     {}
func (DeclinePurchase) isAction() {}
func (EndTurn) isAction()         {}
func (UseInfluence) isAction()    {}
func (ProposeTrade) isAction()    {}
func (AcceptTrade) isAction()     {}
func (RejectTrade) isAction()     {}
func (CancelTrade) isAction()     {}
func (Develop) isAction()         {}
func (FreeUpgrade) isAction()     {}
func (Mortgage) isAction()        {}
func (Unmortgage) isAction()      {}
func (SellDevelopment) isAction() {}
func (SellProperty) isAction()    {}

// Apply authenticates playerID against the action kind and dispatches it.
// It reports whether the state changed.
func (e *Engine) Apply(playerID string, a Action) bool {
	p := e.state.PlayerByID(playerID)
	if p == nil || p.Bankrupt || e.state.GameOver {
		return false
	}
	if a.TurnBound() && e.state.CurrentPlayer().ID != playerID {
		return false
	}
	switch a := a.(type) {
	case RollDice:
		return e.RollDice()
	case PayBail:
		return e.PayBail()
	case UseImmunity:
		return e.UseImmunity()
	case BuyProperty:
		return e.BuyProperty()
	case DeclinePurchase:
		return e.DeclinePurchase()
	case EndTurn:
		return e.EndTurn()
	case UseInfluence:
		return e.UseInfluence(a.Kind, a.TargetID)
	case ProposeTrade:
		_, ok := e.ProposeTrade(playerID, a.PartnerID, a.Offer)
		return ok
	case AcceptTrade:
		return e.AcceptTrade(playerID, a.TradeID)
	case RejectTrade:
		return e.RejectTrade(playerID, a.TradeID)
	case CancelTrade:
		return e.CancelTrade(playerID, a.TradeID)
	case Develop:
		return e.Develop(playerID, a.SpaceID)
	case FreeUpgrade:
		return e.FreeUpgrade(playerID, a.SpaceID)
	case Mortgage:
		return e.Mortgage(playerID, a.SpaceID)
	case Unmortgage:
		return e.Unmortgage(playerID, a.SpaceID)
	case SellDevelopment:
		return e.SellDevelopment(playerID, a.SpaceID)
	case SellProperty:
		return e.SellProperty(playerID, a.SpaceID)
	default:
		return false
	}
}
