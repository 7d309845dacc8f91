package game

import "economic-wars/internal/catalog"

type Phase string

const (
	PhasePreRoll Phase = "pre-roll"
	PhaseRolling Phase = "rolling"
	PhaseMoving  Phase = "moving"
	PhaseLanded  Phase = "landed"
	PhaseAction  Phase = "action"
	PhaseEndTurn Phase = "end-turn"
)

type Dice struct {
	D1      int  `json:"d1"`
	D2      int  `json:"d2"`
	Total   int  `json:"total"`
	Doubles bool `json:"isDoubles"`
}

type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	Avatar int    `json:"avatar"`

	Money      int   `json:"money"`
	Properties []int `json:"properties"`
	Influence  int   `json:"influence"`
	Position   int   `json:"position"`

	InSanctions    bool `json:"inSanctions"`
	SanctionsTurns int  `json:"sanctionsTurns"`
	HasGetOutFree  bool `json:"hasGetOutFree"`
	HasFreeUpgrade bool `json:"hasFreeUpgrade"`
	Bankrupt       bool `json:"bankrupt"`
	Connected      bool `json:"connected"`

	DoublesCount       int `json:"doublesCount"`
	TurnsPlayed        int `json:"turnsPlayed"`
	TotalRentCollected int `json:"totalRentCollected"`
	TotalRentPaid      int `json:"totalRentPaid"`
	DevelopmentCount   int `json:"developmentCount"`
}

// Space is a board cell: static template fields plus runtime ownership.
// Owner is empty when the space is unowned.
type Space struct {
	ID        int                `json:"id"`
	Kind      catalog.SpaceKind  `json:"type"`
	Name      string             `json:"name"`
	Alliance  catalog.AllianceID `json:"alliance,omitempty"`
	Resource  catalog.Resource   `json:"resource,omitempty"`
	Price     int                `json:"price,omitempty"`
	Rents     []int              `json:"rents,omitempty"`
	TaxAmount int                `json:"amount,omitempty"`
	Deck      catalog.DeckID     `json:"deck,omitempty"`
	Special   catalog.Special    `json:"subtype,omitempty"`

	Owner            string `json:"owner"`
	DevelopmentLevel int    `json:"developmentLevel"`
	Mortgaged        bool   `json:"mortgaged"`
}

type ActiveEffect struct {
	Kind         catalog.Modifier `json:"type"`
	ExpiresRound int              `json:"expiresRound"`
	TargetID     string           `json:"targetId,omitempty"`
}

type TradeStatus string

const (
	TradePending   TradeStatus = "pending"
	TradeAccepted  TradeStatus = "accepted"
	TradeRejected  TradeStatus = "rejected"
	TradeCancelled TradeStatus = "cancelled"
)

// Offer is what a proposer gives and asks for.
type Offer struct {
	GiveMoney      int   `json:"giveMoney"`
	GetMoney       int   `json:"getMoney"`
	GiveProperties []int `json:"giveProperties"`
	GetProperties  []int `json:"getProperties"`
}

// Holding records the custody of a listed property when an offer was made.
type Holding struct {
	SpaceID   int    `json:"spaceId"`
	Owner     string `json:"owner"`
	Mortgaged bool   `json:"mortgaged"`
	Level     int    `json:"developmentLevel"`
}

type TradeOffer struct {
	ID     string      `json:"id"`
	FromID string      `json:"fromId"`
	ToID   string      `json:"toId"`
	Status TradeStatus `json:"status"`
	Offer
	Custody []Holding `json:"custody"`
}

type LogEntry struct {
	Round   int    `json:"round"`
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

// MapInfo is the board variant metadata carried with the state.
type MapInfo struct {
	ID                       string `json:"id"`
	TotalSpaces              int    `json:"totalSpaces"`
	GridSize                 int    `json:"gridSize"`
	Corners                  [4]int `json:"corners"`
	InfrastructureMultiplier int    `json:"infrastructureMultiplier"`
}

func (m MapInfo) SanctionsIndex() int { return m.Corners[1] }

// Settings are the rule constants fixed when the game is created.
type Settings struct {
	StartingMoney  int `json:"startingMoney"`
	StartSalary    int `json:"goSalary"`
	SanctionsBail  int `json:"sanctionsBail"`
	InfluenceToWin int `json:"influenceWin"`
}

// DefaultSettings returns the standard rule constants.
func DefaultSettings() Settings {
	return Settings{
		StartingMoney:  catalog.StartingMoney,
		StartSalary:    catalog.StartSalary,
		SanctionsBail:  catalog.SanctionsBail,
		InfluenceToWin: catalog.InfluenceToWin,
	}
}

// Discount is a one-shot purchase discount on a specific space.
type Discount struct {
	PlayerID string `json:"playerId"`
	SpaceID  int    `json:"spaceId"`
	Percent  int    `json:"percent"`
}

// State is the complete, serializable game. Players and spaces refer to
// each other by id only.
type State struct {
	ID       string   `json:"id"`
	Map      MapInfo  `json:"map"`
	Settings Settings `json:"settings"`

	Players            []Player `json:"players"`
	CurrentPlayerIndex int      `json:"currentPlayerIndex"`
	Phase              Phase    `json:"phase"`
	Board              []Space  `json:"board"`

	GlobalNewsDeck    []string `json:"globalNewsDeck"`
	DiplomaticDeck    []string `json:"diplomaticDeck"`
	GlobalNewsDiscard []string `json:"globalNewsDiscard"`
	DiplomaticDiscard []string `json:"diplomaticDiscard"`

	LastDice      *Dice          `json:"lastDice"`
	TurnNumber    int            `json:"turnNumber"`
	RoundNumber   int            `json:"roundNumber"`
	Log           []LogEntry     `json:"log"`
	TradeOffers   []TradeOffer   `json:"tradeOffers"`
	ActiveEffects []ActiveEffect `json:"activeEffects"`
	Discount      *Discount      `json:"discount,omitempty"`

	Winner   string `json:"winner"`
	GameOver bool   `json:"gameOver"`
}
