package catalog

// AllianceID names a group of countries.
type AllianceID string

const (
	EU             AllianceID = "EU"
	Eastern        AllianceID = "EASTERN"
	AsianTigers    AllianceID = "ASIAN_TIGERS"
	SouthAsian     AllianceID = "SOUTH_ASIAN"
	BRICS          AllianceID = "BRICS"
	OilNations     AllianceID = "OIL_NATIONS"
	Americas       AllianceID = "AMERICAS"
	AfricanRising  AllianceID = "AFRICAN_RISING"
	PacificIslands AllianceID = "PACIFIC_ISLANDS"
	Nordic         AllianceID = "NORDIC"
)

type Alliance struct {
	ID       AllianceID `json:"id"`
	Name     string     `json:"name"`
	Color    string     `json:"color"`
	Bonus    string     `json:"bonus"`
	Resource Resource   `json:"resource"`
}

// Alliance bonus amounts.
const (
	SouthAsianSurcharge  = 200
	OilRoyalty           = 300
	EasternInfluence     = 50
	AfricanTourism       = 250
	NordicInfluence      = 15
	PacificTourism       = 60
	BRICSInfluenceDivide = 10
)

var alliances = []Alliance{
	{EU, "European Union", "#003399", "Double rent on developed EU cities", ResourceTech},
	{Eastern, "Eastern Partnership", "#8B4513", "+50 influence every round", ResourceAgriculture},
	{AsianTigers, "Asian Tigers", "#DC143C", "Tech Hub costs reduced by 50%", ResourceTech},
	{SouthAsian, "South Asian Union", "#FF8C00", "+$200 on every rent collected", ResourceAgriculture},
	{BRICS, "BRICS Nations", "#228B22", "Extra influence from rent collected", ResourceOil},
	{OilNations, "Oil Nations", "#000000", "Oil royalties: $300 every round", ResourceOil},
	{Americas, "Americas", "#4169E1", "Free development upgrade every round", ResourceTourism},
	{AfricanRising, "African Rising", "#9932CC", "Tourism income: $250 every round", ResourceTourism},
	{PacificIslands, "Pacific Islands", "#00CED1", "Tourism boost: $60 every round", ResourceTourism},
	{Nordic, "Nordic Council", "#4682B4", "+15 influence every round", ResourceTech},
}

// Alliances lists every alliance in display order.
func Alliances() []Alliance {
	out := make([]Alliance, len(alliances))
	copy(out, alliances)
	return out
}

// LookupAlliance finds an alliance by id.
func LookupAlliance(id AllianceID) (Alliance, bool) {
	for _, a := range alliances {
		if a.ID == id {
			return a, true
		}
	}
	return Alliance{}, false
}
