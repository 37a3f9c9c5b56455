// Package types defines the shared data structures for the Corridors run
// engine. This package contains only type definitions - no logic, no methods
// beyond interface markers.
package types

// Screen identifies which top-level screen the run is on.
type Screen string

const (
	ScreenTitle     Screen = "TITLE"
	ScreenOverworld Screen = "OVERWORLD"
	ScreenSetup     Screen = "SETUP"
	ScreenNode      Screen = "NODE"
	ScreenBattle    Screen = "BATTLE"
	ScreenReward    Screen = "REWARD"
	ScreenVictory   Screen = "VICTORY"
	ScreenDefeat    Screen = "DEFEAT"
)

// NodeType classifies a map node.
type NodeType string

const (
	NodeStart     NodeType = "START"
	NodeFight     NodeType = "FIGHT"
	NodeChallenge NodeType = "CHALLENGE"
	NodeEvent     NodeType = "EVENT"
	NodeRest      NodeType = "REST"
	NodeShop      NodeType = "SHOP"
	NodeBoss      NodeType = "BOSS"
)

// Node is a single step in the run's map graph.
type Node struct {
	ID    string   `json:"id"` // "d{depth}_n{index}"
	Depth int      `json:"depth"`
	Type  NodeType `json:"type"`
	Next  []string `json:"next"` // ordered outgoing edge targets
}

// RunMap is the run's directed acyclic node graph. Immutable after
// generation for a given seed.
type RunMap struct {
	Seed      uint32           `json:"seed"`
	Nodes     map[string]*Node `json:"nodes"`
	StartID   string           `json:"start_id"`
	BossID    string           `json:"boss_id"`
	Sets      int              `json:"sets"`       // number of content layers
	BossDepth int              `json:"boss_depth"` // Sets + 1
}

// WrongAnswer is one entry in the run's append-only wrong-answer log.
type WrongAnswer struct {
	Prompt   string `json:"prompt"`
	Given    string `json:"given"`
	Expected string `json:"expected"`
	Where    string `json:"where"` // node or battle context the miss happened in
	AtMs     int64  `json:"at_ms"` // display only, never used for control flow
}

// Reward is a pending post-battle loot offer. Each component is claimed
// independently and idempotently.
type Reward struct {
	NodeID            string   `json:"node_id"`
	Gold              int      `json:"gold"`
	CardOfferIDs      []string `json:"card_offer_ids"`
	ConsumableID      string   `json:"consumable_id,omitempty"`
	SupplyID          string   `json:"supply_id,omitempty"`
	GoldClaimed       bool     `json:"gold_claimed"`
	ConsumableClaimed bool     `json:"consumable_claimed"`
	SupplyClaimed     bool     `json:"supply_claimed"`
	CardConfirmed     bool     `json:"card_confirmed"`
	ChosenCardID      string   `json:"chosen_card_id,omitempty"`
}

// RunState is the run's full mutable snapshot. It is created by NEW_RUN or
// LOAD_STATE and mutated exclusively through the reducer, which clones the
// snapshot for every effective transition.
type RunState struct {
	Screen Screen `json:"screen"`
	Seed   uint32 `json:"seed"`

	Gold  int `json:"gold"`
	HP    int `json:"hp"`
	MaxHP int `json:"max_hp"`

	Map           *RunMap         `json:"map"`
	CurrentNodeID string          `json:"current_node_id"`
	LockedNodeIDs map[string]bool `json:"locked_node_ids"`

	SetupDone  bool   `json:"setup_done"`
	LoadoutID  string `json:"loadout_id"`
	PlayerName string `json:"player_name"`

	Deck             []string        `json:"deck"`
	Consumables      []string        `json:"consumables"` // at most 3
	SupplyIDs        []string        `json:"supply_ids"`  // no duplicates
	AppliedSupplyIDs map[string]bool `json:"applied_supply_ids"`

	// Interface-typed screens cannot round-trip through plain JSON;
	// resume codes carry them via the save package's tagged envelopes.
	NodeScreen      NodeScreen            `json:"-"`
	NodeScreenCache map[string]NodeScreen `json:"-"`

	Reward       *Reward `json:"reward,omitempty"`
	RewardNodeID string  `json:"reward_node_id,omitempty"`

	WrongAnswers []WrongAnswer `json:"wrong_answers"` // capped at 200

	Battle *BattleState `json:"battle,omitempty"` // opaque, owned by the battle module

	UsedEncounterIDs map[string]bool `json:"used_encounter_ids"`
	ShopRemovalsUsed int             `json:"shop_removals_used"` // run-global counter
	HallwayPlays     map[string]int  `json:"hallway_plays"`      // nodeID → reshuffle salt

	// FlashSupplyIDs is a one-shot UI signal: supplies that just visibly
	// procced or blocked something. The UI clears it after rendering.
	FlashSupplyIDs []string `json:"-"`

	DebugMode   bool `json:"debug_mode"`
	TeacherMode bool `json:"teacher_mode"`

	RunStartMs int64 `json:"run_start_ms"` // display only
}
