package game

import "economic-wars/internal/catalog"

type EventType string

const (
	EventDice      EventType = "dice"
	EventMove      EventType = "move"
	EventPurchase  EventType = "purchase"
	EventPayment   EventType = "payment"
	EventCard      EventType = "card"
	EventSanctions EventType = "sanctions"
	EventBankrupt  EventType = "bankrupt"
	EventVictory   EventType = "victory"
	EventDevelop   EventType = "develop"
	EventTrade     EventType = "trade"
)

// Event is an animation or notification produced by an action.
type Event interface {
	Type() EventType
}

type DiceEvent struct {
	PlayerID string `json:"playerId"`
	Dice
}

type MoveEvent struct {
	PlayerID string `json:"playerId"`
	From     int    `json:"from"`
	To       int    `json:"to"`
}

type PurchaseEvent struct {
	PlayerID string `json:"playerId"`
	SpaceID  int    `json:"spaceId"`
	Price    int    `json:"price"`
}

// PaymentEvent is a transfer between players. To is empty for the bank.
type PaymentEvent struct {
	From   string `json:"from"`
	To     string `json:"to,omitempty"`
	Amount int    `json:"amount"`
	Reason string `json:"reason"`
}

type CardEvent struct {
	PlayerID string         `json:"playerId"`
	Deck     catalog.DeckID `json:"deckType"`
	Card     catalog.Card   `json:"card"`
}

// Private cards are only shown to the player who drew them.
func (e CardEvent) Private() bool { return e.Deck == catalog.DeckDiplomaticCable }

type SanctionsEvent struct {
	PlayerID string `json:"playerId"`
}

type BankruptEvent struct {
	PlayerID string `json:"playerId"`
}

type VictoryEvent struct {
	PlayerID string `json:"playerId"`
	Reason   string `json:"type"`
}

type DevelopEvent struct {
	PlayerID string `json:"playerId"`
	SpaceID  int    `json:"spaceId"`
	Level    int    `json:"level"`
	Free     bool   `json:"free,omitempty"`
}

type TradeEvent struct {
	TradeID string      `json:"tradeId"`
	FromID  string      `json:"fromId"`
	ToID    string      `json:"toId"`
	Status  TradeStatus `json:"status"`
}

func (DiceEvent) Type() EventType      { return EventDice }
func (MoveEvent) Type() EventType      { return EventMove }
func (PurchaseEvent) Type() EventType  { return EventPurchase }
func (PaymentEvent) Type() EventType   { return EventPayment }
func (CardEvent) Type() EventType      { return EventCard }
func (SanctionsEvent) Type() EventType { return EventSanctions }
func (BankruptEvent) Type() EventType  { return EventBankrupt }
func (VictoryEvent) Type() EventType   { return EventVictory }
func (DevelopEvent) Type() EventType   { return EventDevelop }
func (TradeEvent) Type() EventType     { return EventTrade }

// Observer receives the outcome of every accepted engine action: the events
// in the order they happened, then the resulting state exactly once.
// Implementations must treat the state as read-only.
type Observer interface {
	Animated(ev Event)
	StateChanged(s *State)
}

type nopObserver struct{}

func (nopObserver) Animated(Event)      {}
func (nopObserver) StateChanged(*State) {}
