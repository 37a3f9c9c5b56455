package engine

import (
	"fmt"
	"strings"

	"github.com/hollis/corridors/engine/rng"
	"github.com/hollis/corridors/types"
)

// The hallway shortcut is a press-your-luck row of six lockers: three
// good, two bad, one ambush. Opening a bad locker poses a dodge
// question; the ambush pins the player until the fight resolves.

const (
	hallwayGold     = 40
	hallwayHeal     = 15
	hallwayGoldLoss = 40
	hallwayDamage   = 15
	hallwaySupplyID = "sup_spare_key"
)

// buildHallway shuffles a fresh locker layout. Each build consumes a
// play counter so walking out and coming back reshuffles.
func (e *Engine) buildHallway(n *types.RunState, nodeID string) types.NodeScreen {
	plays := n.HallwayPlays[nodeID]
	n.HallwayPlays[nodeID] = plays + 1

	r := rng.NewScoped(n.Seed, fmt.Sprintf("hallway:%s:%d", nodeID, plays))
	kinds := []types.LockerKind{
		types.LockerGold, types.LockerHeal, types.LockerSupply,
		types.LockerLoseGold, types.LockerDamage, types.LockerAmbush,
	}
	rng.Shuffle(r, kinds)

	lockers := make([]types.Locker, len(kinds))
	for i, k := range kinds {
		lockers[i] = types.Locker{Kind: k}
	}
	return types.EventScreen{
		NodeID:  nodeID,
		EventID: "evt_hallway",
		Step:    types.StepHallway,
		Data:    types.HallwayData{Lockers: lockers, PendingIdx: -1},
	}
}

// hallwayChoose handles the only hallway choice: leaving for the
// summary.
func (e *Engine) hallwayChoose(s *types.RunState, ev types.EventScreen, act types.EventChoose) *types.RunState {
	hd, ok := ev.Data.(types.HallwayData)
	if !ok || ev.Step != types.StepHallway || act.ChoiceID != "leave" {
		return s
	}
	if !canLeaveScreen(ev) {
		return s
	}
	n := e.clone(s)
	ev.Step = types.StepResult
	ev.Data = types.ResultData{Text: e.hallwaySummary(hd)}
	n.NodeScreen = ev
	return n
}

// hallwayOpen reveals a locker. Penalty lockers pose a dodge question
// before their effect lands; everything else waits for collection.
func (e *Engine) hallwayOpen(s *types.RunState, act types.EventOpenLocker) *types.RunState {
	hd, ev, ok := openHallway(s)
	if !ok || hd.PendingIdx >= 0 {
		return s
	}
	if act.Index < 0 || act.Index >= len(hd.Lockers) || hd.Lockers[act.Index].Opened {
		return s
	}

	n := e.clone(s)
	ev = n.NodeScreen.(types.EventScreen)
	hd = ev.Data.(types.HallwayData)

	hd.Lockers[act.Index].Opened = true
	switch hd.Lockers[act.Index].Kind {
	case types.LockerLoseGold, types.LockerDamage:
		r := rng.NewScoped(n.Seed, fmt.Sprintf("hallwayq:%s:%d", ev.NodeID, act.Index))
		depth := nodeDepth(n, ev.NodeID)
		if q, found := e.drawQuestion(r, depth); found {
			hd.PendingIdx = act.Index
			hd.PendingQuestionID = q.ID
		} else {
			// No questions loaded; the penalty just misses.
			hd.Lockers[act.Index].Collected = true
		}
	}

	ev.Data = hd
	n.NodeScreen = ev
	return n
}

// hallwayCollect takes an opened locker's contents. The ambush locker
// launches a no-loot battle that returns to this hallway afterwards.
func (e *Engine) hallwayCollect(s *types.RunState, act types.EventCollectLocker) *types.RunState {
	hd, ev, ok := openHallway(s)
	if !ok || hd.PendingIdx >= 0 {
		return s
	}
	if act.Index < 0 || act.Index >= len(hd.Lockers) {
		return s
	}
	locker := hd.Lockers[act.Index]
	if !locker.Opened || locker.Collected {
		return s
	}

	n := e.clone(s)
	ev = n.NodeScreen.(types.EventScreen)
	hd = ev.Data.(types.HallwayData)
	hd.Lockers[act.Index].Collected = true

	switch locker.Kind {
	case types.LockerGold:
		e.gainGold(n, hallwayGold)
		hd.GoldGained += hallwayGold
	case types.LockerHeal:
		hd.Healed += e.applyHeal(n, hallwayHeal)
	case types.LockerSupply:
		if hasSupply(n, hallwaySupplyID) {
			e.gainGold(n, duplicateSupplyGold)
			hd.GoldGained += duplicateSupplyGold
		} else if e.addSupply(n, hallwaySupplyID) {
			hd.SupplyIDsGained = append(hd.SupplyIDsGained, hallwaySupplyID)
			// The spare key's pickup gold counts toward the tally.
			hd.GoldGained += e.Cat.Supplies[hallwaySupplyID].OnGainGold
		}
	case types.LockerAmbush:
		ev.Data = hd
		n.NodeScreen = ev
		return e.hallwayAmbush(n, ev)
	default:
		// Penalty lockers resolve through hallwayAnswer, never here.
		return s
	}

	ev.Data = hd
	n.NodeScreen = ev
	return n
}

// hallwayAnswer resolves a penalty locker's dodge question.
func (e *Engine) hallwayAnswer(s *types.RunState, act types.EventHallwayAnswer) *types.RunState {
	hd, ev, ok := openHallway(s)
	if !ok || hd.PendingIdx < 0 {
		return s
	}
	q, ok := e.Cat.Questions[hd.PendingQuestionID]
	if !ok {
		return s
	}

	n := e.clone(s)
	ev = n.NodeScreen.(types.EventScreen)
	hd = ev.Data.(types.HallwayData)

	idx := hd.PendingIdx
	kind := hd.Lockers[idx].Kind
	hd.Lockers[idx].Collected = true
	hd.PendingIdx = -1
	hd.PendingQuestionID = ""

	if !answerMatches(act.Answer, q.Answer) {
		e.logWrongAnswer(n, types.WrongAnswer{
			Prompt: q.Prompt, Given: act.Answer, Expected: q.Answer, Where: "evt_hallway",
		})
		switch kind {
		case types.LockerLoseGold:
			hd.GoldLost += e.loseGold(n, hallwayGoldLoss)
		case types.LockerDamage:
			if e.applyDamage(n, hallwayDamage) {
				return n
			}
			hd.DamageTaken += hallwayDamage
		}
	}

	ev.Data = hd
	n.NodeScreen = ev
	return n
}

// hallwayAmbush launches the ambush fight. No loot screen follows; the
// hallway (with the ambush locker spent) is restored on the way out.
func (e *Engine) hallwayAmbush(n *types.RunState, ev types.EventScreen) *types.RunState {
	node, ok := n.Map.Nodes[ev.NodeID]
	if !ok {
		return n
	}
	r := rng.NewScoped(n.Seed, "battle:"+ev.NodeID)
	enc, ok := e.pickEncounter(n, r, node.Depth, false, false)
	if !ok {
		// No encounters defined at this depth; the locker is a dud.
		return n
	}
	meta := types.BattleMeta{
		SkipRewards:      true,
		ReturnNodeScreen: cloneScreen(ev),
	}
	e.launchBattle(n, ev.NodeID, enc, node.Depth, meta)
	return n
}

// openHallway extracts the hallway step from the current screen.
func openHallway(s *types.RunState) (types.HallwayData, types.EventScreen, bool) {
	ev, ok := s.NodeScreen.(types.EventScreen)
	if !ok || ev.Step != types.StepHallway || s.Screen != types.ScreenNode {
		return types.HallwayData{}, types.EventScreen{}, false
	}
	hd, ok := ev.Data.(types.HallwayData)
	if !ok {
		return types.HallwayData{}, types.EventScreen{}, false
	}
	return hd, ev, true
}

// nodeDepth looks up a node's depth, defaulting to 1.
func nodeDepth(s *types.RunState, nodeID string) int {
	if node, ok := s.Map.Nodes[nodeID]; ok {
		return node.Depth
	}
	return 1
}

func (e *Engine) hallwaySummary(hd types.HallwayData) string {
	var parts []string
	if hd.GoldGained > 0 {
		parts = append(parts, fmt.Sprintf("found %d gold", hd.GoldGained))
	}
	if hd.Healed > 0 {
		parts = append(parts, fmt.Sprintf("recovered %d HP", hd.Healed))
	}
	for _, id := range hd.SupplyIDsGained {
		parts = append(parts, "took the "+e.Cat.Supplies[id].Name)
	}
	if hd.GoldLost > 0 {
		parts = append(parts, fmt.Sprintf("lost %d gold", hd.GoldLost))
	}
	if hd.DamageTaken > 0 {
		parts = append(parts, fmt.Sprintf("took %d damage", hd.DamageTaken))
	}
	if len(parts) == 0 {
		return "You slip back out of the hallway empty-handed."
	}
	return "Back in the corridor, you tally it up: " + strings.Join(parts, ", ") + "."
}
