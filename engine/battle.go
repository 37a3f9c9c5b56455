package engine

import (
	"github.com/hollis/corridors/engine/rng"
	"github.com/hollis/corridors/types"
)

// startBattle launches the encounter for an open fight screen. The
// encounter roll is scoped to the node, so retreating and retrying
// faces the same enemies.
func (e *Engine) startBattle(s *types.RunState, act types.StartBattle) *types.RunState {
	if s.Screen != types.ScreenNode {
		return s
	}
	fs, ok := s.NodeScreen.(types.FightScreen)
	if !ok || fs.NodeID != act.NodeID {
		return s
	}
	if s.LockedNodeIDs[act.NodeID] {
		return s
	}
	node, ok := s.Map.Nodes[act.NodeID]
	if !ok {
		return s
	}

	n := e.clone(s)
	r := rng.NewScoped(n.Seed, "battle:"+act.NodeID)
	enc, ok := e.pickEncounter(n, r, node.Depth, fs.Challenge, fs.Boss)
	if !ok {
		return s
	}
	if !e.launchBattle(n, act.NodeID, enc, node.Depth, types.BattleMeta{IsChallenge: fs.Challenge}) {
		return s
	}
	return n
}

// pickEncounter draws a weighted encounter for the depth and fight
// class, preferring ones the run hasn't fought yet.
func (e *Engine) pickEncounter(n *types.RunState, r *rng.Rand, depth int, challenge, boss bool) (types.EncounterDef, bool) {
	pool := e.Cat.EncountersFor(depth, challenge, boss)
	var fresh []types.EncounterDef
	for _, enc := range pool {
		if !n.UsedEncounterIDs[enc.ID] {
			fresh = append(fresh, enc)
		}
	}
	if len(fresh) > 0 {
		pool = fresh
	}
	enc, ok := rng.Pick(r, pool, func(d types.EncounterDef) int { return d.Weight })
	if ok {
		n.UsedEncounterIDs[enc.ID] = true
	}
	return enc, ok
}

// launchBattle hands the fight to the battle module and moves the run
// onto the battle screen. meta carries any caller-set flags (ambush
// return screen, challenge class); the core fills in the shared fields.
func (e *Engine) launchBattle(n *types.RunState, nodeID string, enc types.EncounterDef, depth int, meta types.BattleMeta) bool {
	enemies := make([]types.EnemyState, 0, len(enc.EnemyIDs))
	for _, id := range enc.EnemyIDs {
		def, ok := e.Cat.Enemies[id]
		if !ok {
			return false
		}
		enemies = append(enemies, types.EnemyState{
			ID: def.ID, Name: def.Name, HP: def.HP, MaxHP: def.HP, Sprite: def.Sprite,
		})
	}

	hooks := e.Cat.Hooks(n.SupplyIDs)
	b := e.Battle.Start(types.BattleStartParams{
		Seed:          rng.SubSeed(n.Seed, "battle:"+nodeID),
		Difficulty:    depth,
		IsBoss:        enc.Boss,
		PlayerHPStart: n.HP,
		PlayerMaxHP:   n.MaxHP,
		DeckCardIDs:   append([]string{}, n.Deck...),
		Enemies:       enemies,
		PlayerName:    n.PlayerName,
		PlayerSprite:  e.Cat.Loadouts[n.LoadoutID].Sprite,
	})
	if b == nil {
		return false
	}

	meta.SupplyIDs = append([]string{}, n.SupplyIDs...)
	meta.RunGold = n.Gold
	meta.StartStrength = hooks.StartStrength
	b.NodeID = nodeID
	b.Encounter = enc.ID
	b.Meta = meta

	n.Battle = b
	n.NodeScreen = nil
	n.Screen = types.ScreenBattle
	return true
}

// battleUpdate merges a new battle sub-state, including the module's
// player HP, into the run. The core folds out the module's reports
// (supply procs, failed questions) and otherwise treats the state as
// opaque.
func (e *Engine) battleUpdate(s *types.RunState, act types.BattleUpdate) *types.RunState {
	if s.Screen != types.ScreenBattle || s.Battle == nil || act.Battle == nil {
		return s
	}
	if act.Battle.NodeID != s.Battle.NodeID {
		return s
	}

	n := e.clone(s)
	b := *act.Battle
	// ReturnNodeScreen is core-owned; the module never round-trips it.
	b.Meta.ReturnNodeScreen = s.Battle.Meta.ReturnNodeScreen

	for _, id := range b.Meta.ProcSupplyIDs {
		e.flash(n, id)
	}
	b.Meta.ProcSupplyIDs = nil
	if wa := b.Meta.FailedQuestion; wa != nil {
		e.logWrongAnswer(n, *wa)
		b.Meta.FailedQuestion = nil
	}

	n.HP = b.PlayerHP
	if e.clampAndMaybeDefeat(n) {
		return n
	}
	n.Battle = &b
	return n
}

// battleEnded resolves the terminal transition out of a fight: defeat,
// boss victory, an ambush return, or the reward screen.
func (e *Engine) battleEnded(s *types.RunState, act types.BattleEnded) *types.RunState {
	if s.Screen != types.ScreenBattle || s.Battle == nil || act.Battle == nil {
		return s
	}
	final := act.Battle
	if final.NodeID != s.Battle.NodeID || !final.Over {
		return s
	}

	n := e.clone(s)
	meta := final.Meta
	meta.ReturnNodeScreen = s.Battle.Meta.ReturnNodeScreen
	n.Battle = nil

	if wa := meta.FailedQuestion; wa != nil {
		e.logWrongAnswer(n, *wa)
	}

	n.HP = final.PlayerHP
	if e.clampAndMaybeDefeat(n) {
		return n
	}

	node := n.Map.Nodes[final.NodeID]
	depth := 0
	if node != nil {
		depth = node.Depth
	}
	hooks := e.Cat.Hooks(n.SupplyIDs)

	if !final.Victory {
		// Survived a lost fight: keep partial gold, node stays open.
		e.gainGold(n, final.GoldEarned)
		if meta.ReturnNodeScreen != nil {
			n.NodeScreen = cloneScreen(meta.ReturnNodeScreen)
			n.Screen = types.ScreenNode
		} else {
			n.Screen = types.ScreenOverworld
		}
		return n
	}

	for _, id := range meta.DeckAdditions {
		e.addCard(n, id)
	}
	e.applyHeal(n, hooks.PostVictoryHeal)

	if node != nil && node.Type == types.NodeBoss {
		e.gainGold(n, int(float64(final.GoldEarned)*hooks.GoldMultiplier))
		n.NodeScreen = nil
		n.Screen = types.ScreenVictory
		return n
	}

	if meta.SkipRewards {
		e.gainGold(n, int(float64(final.GoldEarned)*hooks.GoldMultiplier))
		if meta.ReturnNodeScreen != nil {
			n.NodeScreen = cloneScreen(meta.ReturnNodeScreen)
			n.Screen = types.ScreenNode
		} else {
			e.lockNode(n, final.NodeID)
			n.Screen = types.ScreenOverworld
		}
		return n
	}

	reward := e.buildReward(n, final, depth, meta.IsChallenge, hooks)
	n.Reward = &reward
	n.RewardNodeID = final.NodeID
	n.NodeScreen = nil
	n.Screen = types.ScreenReward
	return n
}
