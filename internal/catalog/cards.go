package catalog

import "encoding/json"

// Effect is the closed set of card effects. Each variant carries only the
// parameters it needs.
type Effect interface {
	Tag() string
	isEffect()
}

type (
	Collect             struct{ Amount int }
	Pay                 struct{ Amount int }
	AdvanceToStart      struct{}
	GetOutFree          struct{}
	GoToSanctions       struct{}
	GainInfluence       struct{ Amount int }
	AllGainInfluence    struct{ Amount int }
	PayAllPlayers       struct{ Amount int }
	CollectFromAll      struct{ Amount int }
	PerPropertyCollect  struct{ Amount int }
	PerCountryBonus     struct{ Amount int }
	PerDevelopmentBonus struct{ Amount int }
	OilBonus            struct{ Amount int }
	AgricultureBonus    struct{ Amount int }
	TourismPenalty      struct{ Amount int }
	LosePercentage      struct{ Percent int }
	FreeAllSanctioned   struct{}
	LoseDevelopment     struct{}
	FreeUpgrade         struct{}
	TradeWarTax         struct{ Amount int }
	TechHubBonus        struct{ Amount int }

	// TimedRent installs a rent modifier for Duration rounds.
	TimedRent struct {
		Modifier Modifier
		Duration int
	}
	// AdvanceTo moves to the space with the given name on the current map.
	AdvanceTo struct{ SpaceName string }
	// AdvanceToNearest moves forward to the first matching country.
	// DiscountPercent, when set, reduces the purchase price if it is unowned.
	AdvanceToNearest struct {
		Target          NearestTarget
		DiscountPercent int
	}
	ArmsDeal struct {
		Collect       int
		InfluenceLoss int
	}
	CulturalExchange struct {
		Amount    int
		Influence int
	}
)

// NearestTarget selects the destination of AdvanceToNearest.
type NearestTarget string

const (
	NearestTourism NearestTarget = "tourism"
	NearestUnowned NearestTarget = "unowned"
)

// Modifier is the kind of an active rent effect.
type Modifier string

const (
	ModifierEmbargo    Modifier = "embargo"
	ModifierHalfRent   Modifier = "half_rent"
	ModifierTechDouble Modifier = "tech_double_rent"
	ModifierTechHalf   Modifier = "tech_half_rent"
)

func (Collect) Tag() string             { return "collect" }
func (Pay) Tag() string                 { return "pay" }
func (AdvanceToStart) Tag() string      { return "advance_go" }
func (GetOutFree) Tag() string          { return "get_out_free" }
func (GoToSanctions) Tag() string       { return "go_sanctions" }
func (GainInfluence) Tag() string       { return "gain_influence" }
func (AllGainInfluence) Tag() string    { return "all_gain_influence" }
func (PayAllPlayers) Tag() string       { return "pay_all_players" }
func (CollectFromAll) Tag() string      { return "collect_from_all" }
func (PerPropertyCollect) Tag() string  { return "per_property_collect" }
func (PerCountryBonus) Tag() string     { return "per_country_bonus" }
func (PerDevelopmentBonus) Tag() string { return "per_development_bonus" }
func (OilBonus) Tag() string            { return "oil_bonus" }
func (AgricultureBonus) Tag() string    { return "agriculture_bonus" }
func (TourismPenalty) Tag() string      { return "tourism_penalty" }
func (LosePercentage) Tag() string      { return "lose_percentage" }
func (FreeAllSanctioned) Tag() string   { return "free_all_sanctioned" }
func (LoseDevelopment) Tag() string     { return "lose_development" }
func (FreeUpgrade) Tag() string         { return "free_upgrade" }
func (TradeWarTax) Tag() string         { return "trade_war_tax" }
func (TechHubBonus) Tag() string        { return "tech_hub_bonus" }
func (e TimedRent) Tag() string         { return string(e.Modifier) }
func (AdvanceTo) Tag() string           { return "advance_to" }
func (e AdvanceToNearest) Tag() string  { return "advance_" + string(e.Target) }
func (ArmsDeal) Tag() string            { return "arms_deal" }
func (CulturalExchange) Tag() string    { return "cultural_exchange" }

func (Collect) isEffect()             {}
func (Pay) isEffect()                 {}
func (AdvanceToStart) isEffect()      {}
func (GetOutFree) isEffect()          {}
func (GoToSanctions) isEffect()       {}
func (GainInfluence) isEffect()       {}
func (AllGainInfluence) isEffect()    {}
func (PayAllPlayers) isEffect()       {}
func (CollectFromAll) isEffect()      {}
func (PerPropertyCollect) isEffect()  {}
func (PerCountryBonus) isEffect()     {}
func (PerDevelopmentBonus) isEffect() {}
func (OilBonus) isEffect()            {}
func (AgricultureBonus) isEffect()    {}
func (TourismPenalty) isEffect()      {}
func (LosePercentage) isEffect()      {}
func (FreeAllSanctioned) isEffect()   {}
func (LoseDevelopment) isEffect()     {}
func (FreeUpgrade) isEffect()         {}
func (TradeWarTax) isEffect()         {}
func (TechHubBonus) isEffect()        {}
func (TimedRent) isEffect()           {}
func (AdvanceTo) isEffect()           {}
func (AdvanceToNearest) isEffect()    {}
func (ArmsDeal) isEffect()            {}
func (CulturalExchange) isEffect()    {}

// Card is one entry of a deck.
type Card struct {
	ID     string
	Deck   DeckID
	Title  string
	Text   string
	Effect Effect
}

// Keepable cards stay with the drawer instead of going to the discard pile.
func (c Card) Keepable() bool {
	_, ok := c.Effect.(GetOutFree)
	return ok
}

// MarshalJSON renders the card for clients with the effect as its tag.
func (c Card) MarshalJSON() ([]byte, error) {
	tag := ""
	if c.Effect != nil {
		tag = c.Effect.Tag()
	}
	return json.Marshal(struct {
		ID       string `json:"id"`
		Deck     DeckID `json:"deck"`
		Title    string `json:"title"`
		Text     string `json:"text"`
		Effect   string `json:"effect"`
		Keepable bool   `json:"keepable,omitempty"`
	}{c.ID, c.Deck, c.Title, c.Text, tag, c.Keepable()})
}

var globalNews = []Card{
	{"gn1", DeckGlobalNews, "Global Pandemic", "Tourism industry collapses. Pay $100 per development level on each of your tourism cities.", TourismPenalty{100}},
	{"gn2", DeckGlobalNews, "Oil Price Surge", "Oil prices skyrocket! Oil city owners collect $200 from the bank.", OilBonus{200}},
	{"gn3", DeckGlobalNews, "Tech Boom", "Silicon Valley effect! Tech cities earn double rent this round.", TimedRent{ModifierTechDouble, 1}},
	{"gn4", DeckGlobalNews, "Diaspora Investment", "Overseas investors back your cities. Collect $50 per country you own.", PerCountryBonus{50}},
	{"gn5", DeckGlobalNews, "Trade War", "Tariffs everywhere! Pay $100 per alliance you hold property in.", TradeWarTax{100}},
	{"gn6", DeckGlobalNews, "World Cup Hosting", "Tourism boost! Advance to the nearest tourism city. If unowned, you may buy it at half price.", AdvanceToNearest{NearestTourism, 50}},
	{"gn7", DeckGlobalNews, "Refugee Crisis", "Humanitarian costs. Pay $300 to the bank.", Pay{300}},
	{"gn8", DeckGlobalNews, "Space Race", "Technological advancement! Collect $100 for each Tech Hub or Capital you own.", TechHubBonus{100}},
	{"gn9", DeckGlobalNews, "Currency Crisis", "Markets crash! Lose 10% of your cash, rounded down to the nearest $100.", LosePercentage{10}},
	{"gn10", DeckGlobalNews, "Peace Treaty", "Diplomatic breakthrough! All players in Trade Sanctions are freed.", FreeAllSanctioned{}},
	{"gn11", DeckGlobalNews, "Agricultural Revolution", "Bumper harvest! Collect $150 for each agriculture city you own.", AgricultureBonus{150}},
	{"gn12", DeckGlobalNews, "Infrastructure Boom", "Government spending! Each development you own earns $25.", PerDevelopmentBonus{25}},
	{"gn13", DeckGlobalNews, "Economic Recession", "Markets downturn. Rent is halved for all properties this round.", TimedRent{ModifierHalfRent, 1}},
	{"gn14", DeckGlobalNews, "G20 Summit", "International cooperation! Gain 100 influence points.", GainInfluence{100}},
	{"gn15", DeckGlobalNews, "Earthquake", "Natural disaster! Your most expensive developed property loses 1 development level.", LoseDevelopment{}},
	{"gn16", DeckGlobalNews, "UN Aid Package", "Humanitarian aid! Collect $200 from the bank.", Collect{200}},
	{"gn17", DeckGlobalNews, "Crypto Crash", "Digital currencies collapse! Tech city rents halved this round.", TimedRent{ModifierTechHalf, 1}},
	{"gn18", DeckGlobalNews, "Olympic Games", "Sports brings unity! Every player gains 25 influence.", AllGainInfluence{25}},
}

var diplomaticCables = []Card{
	{"dc1", DeckDiplomaticCable, "Foreign Investment", "A wealthy investor backs your ventures. Collect $500.", Collect{500}},
	{"dc2", DeckDiplomaticCable, "Embassy Donation", "Your embassy receives a generous donation. Collect $200.", Collect{200}},
	{"dc3", DeckDiplomaticCable, "Trade Agreement", "New bilateral trade deal! Advance to Global Summit and collect salary.", AdvanceToStart{}},
	{"dc4", DeckDiplomaticCable, "Diplomatic Immunity", "Get out of Trade Sanctions free. Keep this card until used.", GetOutFree{}},
	{"dc5", DeckDiplomaticCable, "Tax Haven", "You discover an offshore account. Collect $100 per property owned.", PerPropertyCollect{100}},
	{"dc6", DeckDiplomaticCable, "Spy Scandal", "Intelligence leak! Pay each player $50.", PayAllPlayers{50}},
	{"dc7", DeckDiplomaticCable, "Summit Invitation", "VIP invitation! Gain 75 influence points.", GainInfluence{75}},
	{"dc8", DeckDiplomaticCable, "Infrastructure Grant", "Development grant! Free development upgrade on any city you own.", FreeUpgrade{}},
	{"dc9", DeckDiplomaticCable, "Border Dispute", "Territorial tensions! Go to Trade Sanctions.", GoToSanctions{}},
	{"dc10", DeckDiplomaticCable, "Peace Envoy", "Diplomatic mission! Advance to the nearest unowned city and you may buy it.", AdvanceToNearest{Target: NearestUnowned}},
	{"dc11", DeckDiplomaticCable, "Aid Package", "International aid received. Collect $300.", Collect{300}},
	{"dc12", DeckDiplomaticCable, "Election Scandal", "Political crisis at home! Pay $200 in damage control.", Pay{200}},
	{"dc13", DeckDiplomaticCable, "Trade Delegation", "Successful delegation! Collect $25 from each player.", CollectFromAll{25}},
	{"dc14", DeckDiplomaticCable, "Arms Deal", "Controversial but profitable. Collect $400 but lose 50 influence.", ArmsDeal{400, 50}},
	{"dc15", DeckDiplomaticCable, "Cultural Exchange", "Soft power initiative! Gain 50 influence and collect $100.", CulturalExchange{100, 50}},
	{"dc16", DeckDiplomaticCable, "Cyber Attack", "Your systems compromised! Pay $150 in recovery costs.", Pay{150}},
	{"dc17", DeckDiplomaticCable, "Advance to Mumbai", "Special economic summit in Mumbai! Advance to Mumbai.", AdvanceTo{"Mumbai"}},
	{"dc18", DeckDiplomaticCable, "Heritage Fund", "Cultural heritage grant! Collect $250.", Collect{250}},
}

var cardsByID = func() map[string]Card {
	m := make(map[string]Card, len(globalNews)+len(diplomaticCables))
	for _, c := range globalNews {
		m[c.ID] = c
	}
	for _, c := range diplomaticCables {
		m[c.ID] = c
	}
	return m
}()

// LookupCard finds a card by id.
func LookupCard(id string) (Card, bool) {
	c, ok := cardsByID[id]
	return c, ok
}

// DeckCardIDs returns the ids of every card in a deck, unshuffled.
func DeckCardIDs(deck DeckID) []string {
	src := globalNews
	if deck == DeckDiplomaticCable {
		src = diplomaticCables
	}
	ids := make([]string, len(src))
	for i, c := range src {
		ids[i] = c.ID
	}
	return ids
}

// ImmunityCardID is the keepable sanctions card returned to its deck on use.
const ImmunityCardID = "dc4"
