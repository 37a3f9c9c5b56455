package engine

import (
	"testing"

	"github.com/hollis/corridors/types"
)

// battleState parks a run mid-battle on the first fight node.
func battleState(t *testing.T, e *Engine, seed uint32) *types.RunState {
	t.Helper()
	s := freshRun(t, e, seed)
	nid := firstNodeOfType(s, types.NodeFight)
	if nid == "" {
		t.Fatal("map has no fight node")
	}
	s = e.clone(s)
	s.Screen = types.ScreenNode
	s.CurrentNodeID = nid
	s.NodeScreen = types.FightScreen{NodeID: nid}
	s = e.Reduce(s, types.StartBattle{NodeID: nid})
	if s.Screen != types.ScreenBattle || s.Battle == nil {
		t.Fatalf("battle did not start: screen=%s", s.Screen)
	}
	return s
}

func TestBattleUpdate_MergesPlayerHP(t *testing.T) {
	e := testEngine(t)
	s := battleState(t, e, 31)

	b := *s.Battle
	b.PlayerHP = 7
	after := e.Reduce(s, types.BattleUpdate{Battle: &b})

	if after.HP != 7 {
		t.Errorf("run hp = %d, want 7 merged from the module", after.HP)
	}
	if after.Battle == nil || after.Battle.PlayerHP != 7 {
		t.Error("battle sub-state not merged")
	}
}

func TestBattleUpdate_ZeroHPDefeats(t *testing.T) {
	e := testEngine(t)
	s := battleState(t, e, 31)

	b := *s.Battle
	b.PlayerHP = -3
	after := e.Reduce(s, types.BattleUpdate{Battle: &b})

	if after.HP != 0 {
		t.Errorf("hp = %d, want clamp to 0", after.HP)
	}
	if after.Screen != types.ScreenDefeat {
		t.Errorf("screen = %s, want DEFEAT", after.Screen)
	}
	if after.Battle != nil {
		t.Error("defeated run kept a battle sub-state")
	}
}

func TestBattleUpdate_WrongNodeIgnored(t *testing.T) {
	e := testEngine(t)
	s := battleState(t, e, 31)

	b := *s.Battle
	b.NodeID = "d99_n0"
	b.PlayerHP = 1
	if got := e.Reduce(s, types.BattleUpdate{Battle: &b}); got != s {
		t.Error("update for a different node was applied")
	}
}
