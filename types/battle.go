package types

// EnemyState is the core-visible slice of one battle enemy.
type EnemyState struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	HP     int    `json:"hp"`
	MaxHP  int    `json:"max_hp"`
	Sprite string `json:"sprite"`
}

// BattleStartParams is everything the core hands the external battle
// module when delegating a fight.
type BattleStartParams struct {
	Seed          uint32 // derived per (runSeed, nodeID)
	Difficulty    int    // node depth
	IsBoss        bool
	PlayerHPStart int
	PlayerMaxHP   int
	DeckCardIDs   []string
	Enemies       []EnemyState
	PlayerName    string
	PlayerSprite  string
}

// BattleMeta is the bag the core writes into battle state and reads back
// after each update. The core never inspects card-level mechanics.
type BattleMeta struct {
	SupplyIDs   []string `json:"supply_ids"`
	IsChallenge bool     `json:"is_challenge"`
	RunGold     int      `json:"run_gold"`

	// SkipRewards suppresses the loot screen on victory; ReturnNodeScreen,
	// when non-nil, is restored instead of going back to the overworld
	// (used by event-launched ambush battles).
	SkipRewards      bool       `json:"skip_rewards"`
	ReturnNodeScreen NodeScreen `json:"-"`

	// DeckAdditions are cards the battle granted mid-fight.
	DeckAdditions []string `json:"deck_additions,omitempty"`

	// ProcSupplyIDs are supplies the module reports as having just
	// procced; the core translates them into a one-shot UI flash.
	ProcSupplyIDs []string `json:"proc_supply_ids,omitempty"`

	// FailedQuestion is set when the module reports a just-failed
	// question; the core appends it to the wrong-answer log.
	FailedQuestion *WrongAnswer `json:"failed_question,omitempty"`

	// StartStrength is a start-of-battle bonus from supplies.
	StartStrength int `json:"start_strength"`
}

// BattleState is the opaque battle sub-state owned by the external battle
// module. The core reads only the fields below.
type BattleState struct {
	NodeID     string       `json:"node_id"`
	Encounter  string       `json:"encounter"`
	PlayerHP   int          `json:"player_hp"`
	Enemies    []EnemyState `json:"enemies"`
	Over       bool         `json:"over"`
	Victory    bool         `json:"victory"`
	GoldEarned int          `json:"gold_earned"` // partial gold granted during the fight
	Meta       BattleMeta   `json:"meta"`
}
