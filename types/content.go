package types

// Rarity drives weighted selection and shop pricing.
type Rarity string

const (
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
	RarityUltra    Rarity = "ultra"
)

// CardDef is the static definition of a deck card. Combat mechanics live
// in the battle module; the core only reads identity and acquisition flags.
type CardDef struct {
	ID        string
	Name      string
	Rarity    Rarity
	UpgradeID string // upgraded variant, "" if none
	Negative  bool   // permanent negative card (curse)
	EventOnly bool
}

// EnemyDef is the static definition of a battle enemy.
type EnemyDef struct {
	ID     string
	Name   string
	HP     int
	Sprite string
}

// EncounterDef groups enemies into a selectable battle.
type EncounterDef struct {
	ID        string
	EnemyIDs  []string
	MinDepth  int
	MaxDepth  int
	Challenge bool
	Boss      bool
	Weight    int
}

// SupplyDef is a passive run modifier. Behavior is data-driven: the
// reducer reads these hook fields, never switches on supply IDs.
type SupplyDef struct {
	ID        string
	Name      string
	Rarity    Rarity
	EventOnly bool
	Desc      string

	// Passive hooks.
	ShopDiscount       bool    // halves shop prices
	RestBoth           bool    // lifts heal/upgrade exclusivity at rest sites
	BlockNegativeCards bool    // negative cards are never added to the deck
	GoldMultiplier     float64 // battle gold multiplier, 0 means unset
	PostVictoryHeal    int     // flat heal after each won battle
	StartStrength      int     // start-of-battle strength bonus
	ExtraCardOffers    int     // additional post-battle card offers
	UpgradeChanceBonus float64 // added chance that offered cards are upgraded

	// One-time "on gain" effects, guarded by AppliedSupplyIDs.
	OnGainMaxHP int
	OnGainGold  int
}

// ConsumableKind tells the core what an out-of-battle use does. Battle
// usage is the battle module's business.
type ConsumableKind string

const (
	ConsumableHeal   ConsumableKind = "heal"
	ConsumableGold   ConsumableKind = "gold"
	ConsumableBattle ConsumableKind = "battle" // only usable in battle
)

// ConsumableDef is an actively-used, inventory-capped item.
type ConsumableDef struct {
	ID        string
	Name      string
	Rarity    Rarity
	EventOnly bool
	Kind      ConsumableKind
	Amount    int // heal amount or gold amount, by Kind
	GoldValue int // auto-convert value when granted with a full inventory
}

// EventDef registers a narrative event for EVENT node selection.
type EventDef struct {
	ID     string
	Name   string
	Weight int
}

// QuestionDef is one quiz question. Tier 1..3 scales with node depth.
type QuestionDef struct {
	ID      string
	Prompt  string
	Answer  string
	Choices []string
	Tier    int
}

// LoadoutDef is a selectable character setup: starting deck and supply.
type LoadoutDef struct {
	ID       string
	Name     string
	Sprite   string
	Deck     []string
	SupplyID string
}
