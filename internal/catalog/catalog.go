// Package catalog holds the static rules data of Global Economic Wars:
// alliances, development tiers, board maps, card decks and starting
// constants. Everything here is read-only after init.
package catalog

const (
	StartingMoney  = 8000
	StartSalary    = 700
	SanctionsBail  = 1000
	InfluenceToWin = 2500

	MinPlayers = 2
	MaxPlayers = 8

	// MaxSanctionWaits is the number of sanctioned turns after which bail is forced.
	MaxSanctionWaits = 3
	MaxDoubles       = 3

	// StartInfluence is granted each time a player passes or lands on start.
	StartInfluence = 20
	// SalaryInfluenceStep adds SalaryInfluenceBonus to the salary per step of influence.
	SalaryInfluenceStep  = 50
	SalaryInfluenceBonus = 10

	FreeTradeBonus     = 100
	FreeTradeInfluence = 10
	PurchaseInfluence  = 10
	// DevelopInfluence is multiplied by the level reached.
	DevelopInfluence = 5

	LogCapacity = 200
)

// Influence action costs.
const (
	EmbargoCost          = 200
	SummitCost           = 150
	SummitPayout         = 500
	DevelopmentGrantCost = 100
)

// Resource tags a country with an economic sector.
type Resource string

const (
	ResourceOil         Resource = "oil"
	ResourceTech        Resource = "tech"
	ResourceAgriculture Resource = "agriculture"
	ResourceTourism     Resource = "tourism"
)

// Tier describes one development level. CostPercent is the build cost as a
// percentage of the country price.
type Tier struct {
	Level       int    `json:"level"`
	Name        string `json:"name"`
	CostPercent int    `json:"costPercent"`
}

const MaxDevelopmentLevel = 4

var tiers = [MaxDevelopmentLevel + 1]Tier{
	{Level: 0, Name: "Undeveloped"},
	{Level: 1, Name: "Local Markets", CostPercent: 50},
	{Level: 2, Name: "Factories", CostPercent: 75},
	{Level: 3, Name: "Tech Hubs", CostPercent: 100},
	{Level: 4, Name: "Economic Capital", CostPercent: 150},
}

// TierAt returns the tier for level, clamped to the valid range.
func TierAt(level int) Tier {
	if level < 0 {
		level = 0
	}
	if level > MaxDevelopmentLevel {
		level = MaxDevelopmentLevel
	}
	return tiers[level]
}

// BuildCost is the undiscounted cost of building level on a country of price.
func BuildCost(price, level int) int {
	return price * TierAt(level).CostPercent / 100
}

var playerColors = [MaxPlayers]string{
	"#E74C3C", "#3498DB", "#2ECC71", "#F39C12",
	"#9B59B6", "#1ABC9C", "#E67E22", "#34495E",
}

var avatars = [MaxPlayers]string{"🧳", "📋", "🎩", "👔", "🗂️", "💼", "📊", "🏆"}

// PlayerColor returns the colour assigned to a seat.
func PlayerColor(seat int) string {
	return playerColors[((seat%MaxPlayers)+MaxPlayers)%MaxPlayers]
}

// AvatarCount is the number of selectable avatars.
func AvatarCount() int { return len(avatars) }

// Avatar returns the glyph for an avatar index.
func Avatar(i int) string {
	return avatars[((i%len(avatars))+len(avatars))%len(avatars)]
}
