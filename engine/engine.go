// Package engine implements the run state machine: a total, pure reducer
// that maps (state, action) to the next state. Every effective transition
// returns a fresh snapshot; rejected actions return the same pointer, so
// callers can detect "nothing happened" via reference equality.
package engine

import (
	"fmt"
	"time"

	"github.com/hollis/corridors/content"
	"github.com/hollis/corridors/engine/mapgen"
	"github.com/hollis/corridors/engine/rng"
	"github.com/hollis/corridors/logger"
	"github.com/hollis/corridors/types"
)

// BattleStarter is the consumed battle-module contract. The core only
// delegates fight creation; updates flow back in through BATTLE_UPDATE
// and BATTLE_ENDED actions dispatched by the host.
type BattleStarter interface {
	Start(types.BattleStartParams) *types.BattleState
}

// Engine bundles the immutable collaborators the reducer needs. It holds
// no run state of its own.
type Engine struct {
	Cat    *content.Catalog
	Battle BattleStarter
	Now    func() int64 // wall clock in ms, display/logging only
}

// New creates an engine over a catalog and battle module.
func New(cat *content.Catalog, battle BattleStarter) *Engine {
	return &Engine{
		Cat:    cat,
		Battle: battle,
		Now:    func() int64 { return time.Now().UnixMilli() },
	}
}

// InitialState is the pre-run title screen snapshot.
func InitialState() *types.RunState {
	return &types.RunState{Screen: types.ScreenTitle}
}

// Reduce applies one action. It never panics for reachable inputs; a
// panic from a collaborator (e.g. the battle module) is recovered here
// and the previous state is retained.
func (e *Engine) Reduce(s *types.RunState, a types.Action) (next *types.RunState) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.WithField("action", fmt.Sprintf("%T", a)).
				Errorf("reducer recovered from panic: %v", r)
			next = s
		}
	}()

	if s == nil {
		return s
	}

	// NEW_RUN and LOAD_STATE work from any screen, including terminal ones.
	switch act := a.(type) {
	case types.NewRun:
		return e.newRun(act)
	case types.LoadState:
		return e.loadState(act)
	case types.SetTeacherMode:
		n := e.clone(s)
		n.TeacherMode = act.On
		return n
	}

	// Terminal screens accept nothing else.
	if s.Screen == types.ScreenDefeat || s.Screen == types.ScreenVictory {
		return s
	}

	switch act := a.(type) {
	case types.SetupOpen:
		return e.setupOpen(s)
	case types.SetupChoose:
		return e.setupChoose(s, act)

	case types.OpenNode:
		return e.openNode(s, act)
	case types.CloseNode:
		return e.closeNode(s)
	case types.SetCurrentNode:
		return e.setCurrentNode(s, act)

	case types.StartBattle:
		return e.startBattle(s, act)
	case types.BattleUpdate:
		return e.battleUpdate(s, act)
	case types.BattleEnded:
		return e.battleEnded(s, act)

	case types.EventChoose:
		return e.eventChoose(s, act)
	case types.EventOpenLocker:
		return e.hallwayOpen(s, act)
	case types.EventCollectLocker:
		return e.hallwayCollect(s, act)
	case types.EventHallwayAnswer:
		return e.hallwayAnswer(s, act)
	case types.EventGateAnswer:
		return e.gateAnswer(s, act)
	case types.EventPickCard:
		return e.eventPickCard(s, act)
	case types.EventPickConsumable:
		return e.eventPickConsumable(s, act)

	case types.RewardConfirmCard:
		return e.rewardConfirmCard(s, act)
	case types.RewardSkipCards:
		return e.rewardSkipCards(s)
	case types.RewardClaimGold:
		return e.rewardClaimGold(s)
	case types.RewardClaimConsumable:
		return e.rewardClaimConsumable(s)
	case types.RewardClaimSupply:
		return e.rewardClaimSupply(s)
	case types.RewardContinue:
		return e.rewardContinue(s)

	case types.ShopBuy:
		return e.shopBuy(s, act)
	case types.ShopRefresh:
		return e.shopRefresh(s)
	case types.ShopRemoveCard:
		return e.shopRemoveCard(s, act)

	case types.RestHeal:
		return e.restHeal(s)
	case types.RestUpgrade:
		return e.restUpgrade(s, act)

	case types.ConsumableUse:
		return e.consumableUse(s, act)
	case types.ConsumableDiscard:
		return e.consumableDiscard(s, act)

	case types.DebugGiveGold:
		return e.debugGiveGold(s, act)
	case types.DebugGiveSupply:
		return e.debugGiveSupply(s, act)
	case types.DebugSetHP:
		return e.debugSetHP(s, act)
	}

	// Unrecognized actions are a no-op.
	return s
}

// newRun resets the entire snapshot.
func (e *Engine) newRun(act types.NewRun) *types.RunState {
	seed := act.Seed
	if !act.HasSeed {
		seed = uint32(e.Now())
	}

	m := mapgen.Generate(seed, rng.New(seed))

	deck := []string{}
	if len(e.Cat.LoadoutList) > 0 {
		deck = append(deck, e.Cat.LoadoutList[0].Deck...)
	}

	return &types.RunState{
		Screen:           types.ScreenOverworld,
		Seed:             seed,
		Gold:             startingGold,
		HP:               startingHP,
		MaxHP:            startingHP,
		Map:              m,
		CurrentNodeID:    m.StartID,
		LockedNodeIDs:    map[string]bool{},
		Deck:             deck,
		Consumables:      []string{},
		SupplyIDs:        []string{},
		AppliedSupplyIDs: map[string]bool{},
		NodeScreenCache:  map[string]types.NodeScreen{},
		WrongAnswers:     []types.WrongAnswer{},
		UsedEncounterIDs: map[string]bool{},
		HallwayPlays:     map[string]int{},
		RunStartMs:       e.Now(),
	}
}

// loadState accepts a decoded resume-code state. Teacher/debug bypasses
// never survive a load.
func (e *Engine) loadState(act types.LoadState) *types.RunState {
	if act.State == nil || act.State.Map == nil {
		return InitialState()
	}
	n := e.clone(act.State)
	normalize(n)
	n.DebugMode = false
	n.TeacherMode = false

	// Screens whose payload doesn't survive serialization are rebuilt
	// deterministically, or the run falls back to the overworld.
	switch {
	case n.Screen == types.ScreenNode && n.NodeScreen == nil:
		if node, ok := n.Map.Nodes[n.CurrentNodeID]; ok &&
			node.Type != types.NodeStart && !n.LockedNodeIDs[node.ID] {
			if sc := e.buildNodeScreen(n, node); sc != nil {
				n.NodeScreen = sc
				break
			}
		}
		n.Screen = types.ScreenOverworld
	case n.Screen == types.ScreenBattle && n.Battle == nil:
		n.Screen = types.ScreenOverworld
	case n.Screen == types.ScreenReward && n.Reward == nil:
		n.Screen = types.ScreenOverworld
	}
	return n
}

func (e *Engine) setupOpen(s *types.RunState) *types.RunState {
	if s.Screen != types.ScreenOverworld || s.SetupDone {
		return s
	}
	n := e.clone(s)
	n.Screen = types.ScreenSetup
	return n
}

func (e *Engine) setupChoose(s *types.RunState, act types.SetupChoose) *types.RunState {
	if s.Screen != types.ScreenSetup || s.SetupDone {
		return s
	}
	lo, ok := e.Cat.Loadouts[act.LoadoutID]
	if !ok {
		return s
	}
	n := e.clone(s)
	n.LoadoutID = lo.ID
	n.PlayerName = act.Name
	n.Deck = append([]string{}, lo.Deck...)
	if lo.SupplyID != "" {
		e.addSupply(n, lo.SupplyID)
	}
	n.SetupDone = true
	n.Screen = types.ScreenOverworld
	return n
}

func (e *Engine) debugGiveGold(s *types.RunState, act types.DebugGiveGold) *types.RunState {
	if !s.TeacherMode {
		return s
	}
	n := e.clone(s)
	e.gainGold(n, act.Amount)
	return n
}

func (e *Engine) debugGiveSupply(s *types.RunState, act types.DebugGiveSupply) *types.RunState {
	if !s.TeacherMode {
		return s
	}
	if _, ok := e.Cat.Supplies[act.SupplyID]; !ok {
		return s
	}
	n := e.clone(s)
	e.addSupply(n, act.SupplyID)
	return n
}

func (e *Engine) debugSetHP(s *types.RunState, act types.DebugSetHP) *types.RunState {
	if !s.TeacherMode {
		return s
	}
	n := e.clone(s)
	n.HP = act.HP
	e.clampAndMaybeDefeat(n)
	return n
}

func (e *Engine) consumableUse(s *types.RunState, act types.ConsumableUse) *types.RunState {
	if s.Screen != types.ScreenOverworld && s.Screen != types.ScreenNode {
		return s
	}
	if act.Index < 0 || act.Index >= len(s.Consumables) {
		return s
	}
	def, ok := e.Cat.Consumables[s.Consumables[act.Index]]
	if !ok || def.Kind == types.ConsumableBattle {
		return s
	}

	n := e.clone(s)
	switch def.Kind {
	case types.ConsumableHeal:
		e.applyHeal(n, def.Amount)
	case types.ConsumableGold:
		e.gainGold(n, def.Amount)
	}
	n.Consumables = append(n.Consumables[:act.Index], n.Consumables[act.Index+1:]...)
	return n
}

func (e *Engine) consumableDiscard(s *types.RunState, act types.ConsumableDiscard) *types.RunState {
	if act.Index < 0 || act.Index >= len(s.Consumables) {
		return s
	}
	n := e.clone(s)
	n.Consumables = append(n.Consumables[:act.Index], n.Consumables[act.Index+1:]...)
	return n
}

// normalize repairs nil collections after deserialization.
func normalize(s *types.RunState) {
	if s.LockedNodeIDs == nil {
		s.LockedNodeIDs = map[string]bool{}
	}
	if s.AppliedSupplyIDs == nil {
		s.AppliedSupplyIDs = map[string]bool{}
	}
	if s.UsedEncounterIDs == nil {
		s.UsedEncounterIDs = map[string]bool{}
	}
	if s.HallwayPlays == nil {
		s.HallwayPlays = map[string]int{}
	}
	if s.NodeScreenCache == nil {
		s.NodeScreenCache = map[string]types.NodeScreen{}
	}
	if s.Deck == nil {
		s.Deck = []string{}
	}
	if s.Consumables == nil {
		s.Consumables = []string{}
	}
	if s.SupplyIDs == nil {
		s.SupplyIDs = []string{}
	}
	if s.WrongAnswers == nil {
		s.WrongAnswers = []types.WrongAnswer{}
	}
}
