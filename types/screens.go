package types

// NodeScreen is the UI state for whichever node type is open. It is a
// tagged union: exactly one variant exists per node kind, with only the
// fields that variant needs.
type NodeScreen interface{ nodeScreen() }

// FightScreen is the pre-battle confirmation screen for FIGHT, CHALLENGE
// and BOSS nodes.
type FightScreen struct {
	NodeID    string `json:"node_id"`
	Challenge bool   `json:"challenge"`
	Boss      bool   `json:"boss"`
}

func (FightScreen) nodeScreen() {}

// OfferKind classifies a shop offer.
type OfferKind string

const (
	OfferCard       OfferKind = "card"
	OfferConsumable OfferKind = "consumable"
	OfferSupply     OfferKind = "supply"
)

// ShopOffer is a single priced item in a shop.
type ShopOffer struct {
	Kind   OfferKind `json:"kind"`
	ItemID string    `json:"item_id"`
	Price  int       `json:"price"`
	Bought bool      `json:"bought"`
}

// ShopScreen is the state of an open shop, base or event-only variant.
type ShopScreen struct {
	NodeID        string      `json:"node_id"`
	EventOnly     bool        `json:"event_only"` // draws only event-only content
	Gen           int         `json:"gen"`        // refresh generation index
	Offers        []ShopOffer `json:"offers"`
	RefreshesUsed int         `json:"refreshes_used"`
	RemovalsUsed  int         `json:"removals_used"` // shop-scoped (event shops only)
}

func (ShopScreen) nodeScreen() {}

// RestScreen is the state of an open rest site.
type RestScreen struct {
	NodeID   string `json:"node_id"`
	Healed   bool   `json:"healed"`
	Upgraded bool   `json:"upgraded"`
}

func (RestScreen) nodeScreen() {}

// EventStep names a step within an event's branching protocol.
type EventStep string

const (
	StepIntro          EventStep = "INTRO"
	StepGate           EventStep = "GATE" // leave-friction question
	StepResult         EventStep = "RESULT"
	StepHallway        EventStep = "HALLWAY"
	StepExamQuestion   EventStep = "EXAM_QUESTION"
	StepExamFeedback   EventStep = "EXAM_FEEDBACK"
	StepCardPick       EventStep = "CARD_PICK"
	StepConsumablePick EventStep = "CONSUMABLE_PICK"
	StepVendorShop     EventStep = "VENDOR_SHOP"
)

// EventScreen is the generic envelope every narrative event shares.
// Step tags which variant Data holds.
type EventScreen struct {
	NodeID  string    `json:"node_id"`
	EventID string    `json:"event_id"`
	Step    EventStep `json:"step"`
	Data    EventData `json:"-"`
}

func (EventScreen) nodeScreen() {}

// EventData is the per-step payload sum type.
type EventData interface{ eventData() }

// EventChoice is one selectable option on an INTRO step. Disabled choices
// carry the reason so the UI can explain; the reducer re-validates the
// precondition at dispatch time regardless.
type EventChoice struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
	Reason   string `json:"reason,omitempty"`
}

// IntroData is the opening step of an event: flavor text plus choices.
type IntroData struct {
	Text    string        `json:"text"`
	Choices []EventChoice `json:"choices"`
}

func (IntroData) eventData() {}

// GateData is a question gate: answer correctly or take Damage. Some
// gates also pay out on a correct answer.
type GateData struct {
	QuestionID string `json:"question_id"`
	Damage     int    `json:"damage"`
	PassGold   int    `json:"pass_gold,omitempty"`
	PassHeal   int    `json:"pass_heal,omitempty"`
	// PassText/FailText become the RESULT text after the answer.
	PassText string `json:"pass_text"`
	FailText string `json:"fail_text"`
}

func (GateData) eventData() {}

// ResultData is a terminal step showing outcome text.
type ResultData struct {
	Text string `json:"text"`
}

func (ResultData) eventData() {}

// LockerKind classifies a hallway locker's hidden content.
type LockerKind string

const (
	LockerGold     LockerKind = "gold"
	LockerHeal     LockerKind = "heal"
	LockerSupply   LockerKind = "supply"
	LockerLoseGold LockerKind = "lose_gold"
	LockerDamage   LockerKind = "damage"
	LockerAmbush   LockerKind = "ambush"
)

// Locker is one hallway locker.
type Locker struct {
	Kind      LockerKind `json:"kind"`
	Opened    bool       `json:"opened"`
	Collected bool       `json:"collected"`
}

// HallwayData is the press-your-luck locker state plus this visit's
// running tallies for the leave summary.
type HallwayData struct {
	Lockers []Locker `json:"lockers"`

	// PendingIdx is the locker awaiting a penalty question (-1 none).
	PendingIdx        int    `json:"pending_idx"`
	PendingQuestionID string `json:"pending_question_id,omitempty"`

	GoldGained      int      `json:"gold_gained"`
	GoldLost        int      `json:"gold_lost"`
	Healed          int      `json:"healed"`
	DamageTaken     int      `json:"damage_taken"`
	SupplyIDsGained []string `json:"supply_ids_gained"`
}

func (HallwayData) eventData() {}

// ExamData tracks the exam ladder: Rung counts questions answered
// correctly so far. OfferIDs carries pick-step offers on cash-out.
type ExamData struct {
	Rung       int      `json:"rung"`
	QuestionID string   `json:"question_id,omitempty"`
	OfferIDs   []string `json:"offer_ids,omitempty"`
}

func (ExamData) eventData() {}

// VendorData is the pop-up vendor: an embedded event-only sub-shop plus
// the one-time mystery bag guard.
type VendorData struct {
	MysteryUsed bool        `json:"mystery_used"`
	Shop        *ShopScreen `json:"shop,omitempty"` // non-nil while browsing wares
}

func (VendorData) eventData() {}

// CardPickData is an explicit confirmation step before a card (typically
// a permanent negative one) is added to the deck. Co-bundled rewards are
// granted on confirm alongside the card.
type CardPickData struct {
	Text          string `json:"text"`
	CardID        string `json:"card_id"`
	BonusGold     int    `json:"bonus_gold"`
	BonusHeal     int    `json:"bonus_heal"`
	BonusSupplyID string `json:"bonus_supply_id,omitempty"`
	ResultText    string `json:"result_text"`
}

func (CardPickData) eventData() {}

// ConsumablePickData offers a choice of consumables; GoldFallback is
// granted instead when the inventory is full.
type ConsumablePickData struct {
	Text         string   `json:"text"`
	OfferIDs     []string `json:"offer_ids"`
	GoldFallback int      `json:"gold_fallback"`
}

func (ConsumablePickData) eventData() {}
