package catalog

// SpaceKind is the variant of a board space.
type SpaceKind string

const (
	KindCountry        SpaceKind = "country"
	KindTransport      SpaceKind = "transport"
	KindInfrastructure SpaceKind = "infrastructure"
	KindTax            SpaceKind = "tax"
	KindCard           SpaceKind = "card"
	KindSpecial        SpaceKind = "special"
)

// Ownable reports whether spaces of this kind can be bought.
func (k SpaceKind) Ownable() bool {
	return k == KindCountry || k == KindTransport || k == KindInfrastructure
}

// Special is the subtype of a special space.
type Special string

const (
	SpecialStart     Special = "go"
	SpecialSanctions Special = "sanctions"
	SpecialFreeTrade Special = "freetrade"
	SpecialIncident  Special = "incident"
)

// DeckID names one of the two card decks.
type DeckID string

const (
	DeckGlobalNews      DeckID = "globalNews"
	DeckDiplomaticCable DeckID = "diplomaticCable"
)

// SpaceTemplate is the static description of a space. Which fields are set
// depends on Kind.
type SpaceTemplate struct {
	ID        int
	Kind      SpaceKind
	Name      string
	Alliance  AllianceID
	Resource  Resource
	Price     int
	Rents     []int
	TaxAmount int
	Deck      DeckID
	Special   Special
}

// Map is one board variant.
type Map struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	GridSize    int    `json:"gridSize"`
	Corners     [4]int `json:"corners"`
	// InfrastructureMultiplier applies to the dice total when an owner holds
	// two or more infrastructure spaces.
	InfrastructureMultiplier int `json:"infrastructureMultiplier"`

	Spaces []SpaceTemplate `json:"-"`
}

// TotalSpaces is the board length.
func (m Map) TotalSpaces() int { return len(m.Spaces) }

// SanctionsIndex is the corner where sanctioned players are held.
func (m Map) SanctionsIndex() int { return m.Corners[1] }

const (
	MapClassic  = "classic"
	MapExpanded = "expanded"

	// InfrastructureBaseMultiplier applies with a single infrastructure owned.
	InfrastructureBaseMultiplier = 4
	TransportPrice               = 2000
	InfrastructurePrice          = 1500
)

var transportRents = []int{250, 500, 1000, 2000}

func country(id int, name string, a AllianceID, price int, r Resource, rents ...int) SpaceTemplate {
	return SpaceTemplate{ID: id, Kind: KindCountry, Name: name, Alliance: a, Resource: r, Price: price, Rents: rents}
}

func transport(id int, name string) SpaceTemplate {
	return SpaceTemplate{ID: id, Kind: KindTransport, Name: name, Price: TransportPrice, Rents: transportRents}
}

func infrastructure(id int, name string) SpaceTemplate {
	return SpaceTemplate{ID: id, Kind: KindInfrastructure, Name: name, Price: InfrastructurePrice}
}

func tax(id int, name string, amount int) SpaceTemplate {
	return SpaceTemplate{ID: id, Kind: KindTax, Name: name, TaxAmount: amount}
}

func cable(id int) SpaceTemplate {
	return SpaceTemplate{ID: id, Kind: KindCard, Name: "Diplomatic Cable", Deck: DeckDiplomaticCable}
}

func news(id int) SpaceTemplate {
	return SpaceTemplate{ID: id, Kind: KindCard, Name: "Global News", Deck: DeckGlobalNews}
}

func special(id int, s Special, name string) SpaceTemplate {
	return SpaceTemplate{ID: id, Kind: KindSpecial, Name: name, Special: s}
}

var classicBoard = []SpaceTemplate{
	special(0, SpecialStart, "Global Summit"),
	country(1, "Gyumri", Eastern, 600, ResourceAgriculture, 20, 40, 120, 360, 640, 900),
	cable(2),
	country(3, "Kapan", Eastern, 800, ResourceTech, 30, 60, 180, 500, 700, 1000),
	tax(4, "Import Tariff", 600),
	transport(5, "Maritime Routes"),
	country(6, "Yerevan", Eastern, 1000, ResourceAgriculture, 40, 80, 220, 600, 800, 1100),
	country(7, "Alexandria", AfricanRising, 1000, ResourceOil, 40, 80, 220, 600, 800, 1100),
	country(8, "Giza", AfricanRising, 1000, ResourceTourism, 40, 80, 220, 600, 800, 1100),
	country(9, "Cairo", AfricanRising, 1200, ResourceTourism, 50, 100, 300, 750, 950, 1300),
	special(10, SpecialSanctions, "Trade Sanctions"),

	country(11, "Mumbai", SouthAsian, 1400, ResourceAgriculture, 55, 110, 330, 800, 1050, 1400),
	infrastructure(12, "Internet Backbone"),
	country(13, "Bengaluru", SouthAsian, 1400, ResourceTech, 55, 110, 330, 800, 1050, 1400),
	country(14, "Delhi", SouthAsian, 1600, ResourceAgriculture, 65, 130, 400, 950, 1150, 1500),
	transport(15, "Rail Networks"),
	country(16, "Salvador", BRICS, 1800, ResourceTourism, 70, 140, 420, 1000, 1200, 1600),
	cable(17),
	country(18, "Rio", BRICS, 2000, ResourceTech, 80, 160, 480, 1100, 1350, 1800),
	country(19, "Sao Paulo", BRICS, 2200, ResourceAgriculture, 85, 170, 500, 1100, 1400, 1800),
	special(20, SpecialFreeTrade, "Free Trade Zone"),

	country(21, "Paris", EU, 2200, ResourceTourism, 85, 170, 500, 1100, 1400, 1800),
	news(22),
	country(23, "Toulouse", EU, 2400, ResourceTech, 90, 180, 540, 1200, 1500, 2000),
	country(24, "Lyon", EU, 2600, ResourceTech, 100, 200, 600, 1400, 1700, 2200),
	transport(25, "Air Routes"),
	country(26, "Tel Aviv", AsianTigers, 2600, ResourceTech, 100, 200, 600, 1400, 1700, 2200),
	country(27, "Haifa", AsianTigers, 2800, ResourceTech, 110, 220, 660, 1500, 1800, 2400),
	infrastructure(28, "Shipping Lanes"),
	country(29, "Jerusalem", AsianTigers, 3000, ResourceTech, 120, 240, 720, 1600, 2000, 2600),
	special(30, SpecialIncident, "International Incident"),

	country(31, "Dubai", OilNations, 3200, ResourceOil, 130, 260, 780, 1800, 2200, 2800),
	country(32, "Riyadh", OilNations, 3000, ResourceOil, 120, 240, 720, 1600, 2000, 2600),
	cable(33),
	country(34, "Abu Dhabi", OilNations, 3400, ResourceOil, 140, 280, 840, 1900, 2400, 3000),
	transport(35, "Digital Networks"),
	news(36),
	country(37, "New York", Americas, 3500, ResourceAgriculture, 140, 280, 840, 1900, 2400, 3000),
	tax(38, "Luxury Tax", 1200),
	country(39, "San Francisco", Americas, 4000, ResourceTech, 150, 300, 900, 2000, 2500, 3200),
}

var expandedBoard = []SpaceTemplate{
	special(0, SpecialStart, "Global Summit"),
	country(1, "Gyumri", Eastern, 600, ResourceAgriculture, 20, 40, 120, 360, 640, 900),
	cable(2),
	country(3, "Kapan", Eastern, 800, ResourceTech, 30, 60, 180, 500, 700, 1000),
	tax(4, "Import Tariff", 600),
	transport(5, "Maritime Routes"),
	country(6, "Yerevan", Eastern, 1000, ResourceAgriculture, 40, 80, 220, 600, 800, 1100),
	country(7, "Alexandria", AfricanRising, 1000, ResourceOil, 40, 80, 220, 600, 800, 1100),
	news(8),
	country(9, "Giza", AfricanRising, 1000, ResourceTourism, 40, 80, 220, 600, 800, 1100),
	country(10, "Cairo", AfricanRising, 1200, ResourceTourism, 50, 100, 300, 750, 950, 1300),
	news(11),
	special(12, SpecialSanctions, "Trade Sanctions"),

	country(13, "Mumbai", SouthAsian, 1400, ResourceAgriculture, 55, 110, 330, 800, 1050, 1400),
	infrastructure(14, "Internet Backbone"),
	country(15, "Bengaluru", SouthAsian, 1400, ResourceTech, 55, 110, 330, 800, 1050, 1400),
	country(16, "Delhi", SouthAsian, 1600, ResourceAgriculture, 65, 130, 400, 950, 1150, 1500),
	transport(17, "Rail Networks"),
	country(18, "Salvador", BRICS, 1800, ResourceTourism, 70, 140, 420, 1000, 1200, 1600),
	cable(19),
	country(20, "Rio", BRICS, 2000, ResourceTech, 80, 160, 480, 1100, 1350, 1800),
	country(21, "Sao Paulo", BRICS, 2200, ResourceAgriculture, 85, 170, 500, 1100, 1400, 1800),
	country(22, "Stockholm", Nordic, 1800, ResourceOil, 70, 140, 420, 1000, 1200, 1600),
	country(23, "Gothenburg", Nordic, 1800, ResourceTech, 70, 140, 420, 1000, 1200, 1600),
	special(24, SpecialFreeTrade, "Free Trade Zone"),

	country(25, "Malmo", Nordic, 2200, ResourceTech, 85, 170, 500, 1100, 1400, 1800),
	country(26, "Paris", EU, 2200, ResourceTourism, 85, 170, 500, 1100, 1400, 1800),
	news(27),
	country(28, "Toulouse", EU, 2400, ResourceTech, 90, 180, 540, 1200, 1500, 2000),
	transport(29, "Air Routes"),
	country(30, "Lyon", EU, 2600, ResourceTech, 100, 200, 600, 1400, 1700, 2200),
	country(31, "Tel Aviv", AsianTigers, 2600, ResourceTech, 100, 200, 600, 1400, 1700, 2200),
	country(32, "Haifa", AsianTigers, 2800, ResourceTech, 110, 220, 660, 1500, 1800, 2400),
	infrastructure(33, "Shipping Lanes"),
	country(34, "Jerusalem", AsianTigers, 3000, ResourceTech, 120, 240, 720, 1600, 2000, 2600),
	country(35, "Auckland", PacificIslands, 1600, ResourceTourism, 65, 130, 400, 950, 1150, 1500),
	special(36, SpecialIncident, "International Incident"),

	country(37, "Wellington", PacificIslands, 1600, ResourceAgriculture, 65, 130, 400, 950, 1150, 1500),
	country(38, "Queenstown", PacificIslands, 2400, ResourceTourism, 90, 180, 540, 1200, 1500, 2000),
	cable(39),
	country(40, "Dubai", OilNations, 3200, ResourceOil, 130, 260, 780, 1800, 2200, 2800),
	transport(41, "Digital Networks"),
	country(42, "Abu Dhabi", OilNations, 3400, ResourceOil, 140, 280, 840, 1900, 2400, 3000),
	country(43, "Riyadh", OilNations, 3000, ResourceOil, 120, 240, 720, 1600, 2000, 2600),
	country(44, "Chicago", Americas, 3200, ResourceOil, 130, 260, 780, 1800, 2200, 2800),
	country(45, "New York", Americas, 3500, ResourceAgriculture, 140, 280, 840, 1900, 2400, 3000),
	tax(46, "Luxury Tax", 1200),
	country(47, "San Francisco", Americas, 4000, ResourceTech, 150, 300, 900, 2000, 2500, 3200),
}

var maps = []Map{
	{
		ID:                       MapClassic,
		Name:                     "Classic",
		Description:              "40 spaces · 23 cities · 8 alliances",
		GridSize:                 11,
		Corners:                  [4]int{0, 10, 20, 30},
		InfrastructureMultiplier: 8,
		Spaces:                   classicBoard,
	},
	{
		ID:                       MapExpanded,
		Name:                     "World Domination",
		Description:              "48 spaces · 30 cities · 10 alliances",
		GridSize:                 13,
		Corners:                  [4]int{0, 12, 24, 36},
		InfrastructureMultiplier: 10,
		Spaces:                   expandedBoard,
	},
}

// LookupMap finds a board variant by id. The returned Spaces slice is shared
// and must not be modified.
func LookupMap(id string) (Map, bool) {
	for _, m := range maps {
		if m.ID == id {
			return m, true
		}
	}
	return Map{}, false
}

// Maps lists the board variants.
func Maps() []Map {
	out := make([]Map, len(maps))
	copy(out, maps)
	return out
}
