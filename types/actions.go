package types

// Action is the closed set of inputs the reducer accepts. The host UI
// constructs actions; the reducer pattern-matches on the concrete type.
type Action interface{ isAction() }

// NewRun resets the entire snapshot and starts a fresh run. When HasSeed
// is false the reducer derives a seed itself.
type NewRun struct {
	Seed    uint32
	HasSeed bool
}

// LoadState replaces the snapshot with a decoded resume-code state.
// Debug/teacher flags are always forced off on load.
type LoadState struct{ State *RunState }

// OpenNode resolves a node's screen state and moves to the NODE screen.
type OpenNode struct{ NodeID string }

// CloseNode returns to the overworld, caching the node screen for resume.
type CloseNode struct{}

// SetCurrentNode advances the run position to a connected node.
type SetCurrentNode struct{ NodeID string }

// SetupOpen enters the one-time pre-run loadout screen.
type SetupOpen struct{}

// SetupChoose picks a character loadout and completes setup.
type SetupChoose struct {
	LoadoutID string
	Name      string
}

// StartBattle begins the encounter for a FIGHT/CHALLENGE/BOSS node.
type StartBattle struct{ NodeID string }

// BattleUpdate merges the battle module's new sub-state into the run.
type BattleUpdate struct{ Battle *BattleState }

// BattleEnded resolves the terminal transition out of battle.
type BattleEnded struct{ Battle *BattleState }

// EventChoose selects a choice on the current event step.
type EventChoose struct{ ChoiceID string }

// EventOpenLocker reveals a hallway locker (idempotent once opened).
type EventOpenLocker struct{ Index int }

// EventCollectLocker collects an opened hallway locker.
type EventCollectLocker struct{ Index int }

// EventHallwayAnswer answers a locker penalty question.
type EventHallwayAnswer struct{ Answer string }

// EventGateAnswer answers a question gate or an exam ladder question.
type EventGateAnswer struct{ Answer string }

// EventPickCard confirms a card on a CARD_PICK step.
type EventPickCard struct{ CardID string }

// EventPickConsumable picks a consumable on a CONSUMABLE_PICK step.
type EventPickConsumable struct{ ConsumableID string }

// RewardConfirmCard takes one offered card (idempotent once confirmed).
type RewardConfirmCard struct{ CardID string }

// RewardSkipCards declines the card offer (idempotent once confirmed).
type RewardSkipCards struct{}

// RewardClaimGold claims the reward's gold component.
type RewardClaimGold struct{}

// RewardClaimConsumable claims the reward's consumable component.
type RewardClaimConsumable struct{}

// RewardClaimSupply claims the reward's supply component.
type RewardClaimSupply struct{}

// RewardContinue leaves the reward screen, locking the node.
type RewardContinue struct{}

// ShopBuy purchases the offer at Index in the open shop.
type ShopBuy struct{ Index int }

// ShopRefresh replaces the shop's offers for an escalating fee.
type ShopRefresh struct{}

// ShopRemoveCard pays the removal service to delete a deck card.
type ShopRemoveCard struct{ CardID string }

// RestHeal takes the rest site's heal option.
type RestHeal struct{}

// RestUpgrade replaces a deck card with its upgraded variant.
type RestUpgrade struct{ CardID string }

// ConsumableUse consumes the inventory item at Index out of battle.
type ConsumableUse struct{ Index int }

// ConsumableDiscard drops the inventory item at Index.
type ConsumableDiscard struct{ Index int }

// Debug/teacher actions exist purely for content QA.
type DebugGiveGold struct{ Amount int }
type DebugGiveSupply struct{ SupplyID string }
type DebugSetHP struct{ HP int }
type SetTeacherMode struct{ On bool }

func (NewRun) isAction()                {}
func (LoadState) isAction()             {}
func (OpenNode) isAction()              {}
func (CloseNode) isAction()             {}
func (SetCurrentNode) isAction()        {}
func (SetupOpen) isAction()             {}
func (SetupChoose) isAction()           {}
func (StartBattle) isAction()           {}
func (BattleUpdate) isAction()          {}
func (BattleEnded) isAction()           {}
func (EventChoose) isAction()           {}
func (EventOpenLocker) isAction()       {}
func (EventCollectLocker) isAction()    {}
func (EventHallwayAnswer) isAction()    {}
func (EventGateAnswer) isAction()       {}
func (EventPickCard) isAction()         {}
func (EventPickConsumable) isAction()   {}
func (RewardConfirmCard) isAction()     {}
func (RewardSkipCards) isAction()       {}
func (RewardClaimGold) isAction()       {}
func (RewardClaimConsumable) isAction() {}
func (RewardClaimSupply) isAction()     {}
func (RewardContinue) isAction()        {}
func (ShopBuy) isAction()               {}
func (ShopRefresh) isAction()           {}
func (ShopRemoveCard) isAction()        {}
func (RestHeal) isAction()              {}
func (RestUpgrade) isAction()           {}
func (ConsumableUse) isAction()         {}
func (ConsumableDiscard) isAction()     {}
func (DebugGiveGold) isAction()         {}
func (DebugGiveSupply) isAction()       {}
func (DebugSetHP) isAction()            {}
func (SetTeacherMode) isAction()        {}
