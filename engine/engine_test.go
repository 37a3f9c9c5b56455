package engine

import (
	"testing"

	"github.com/hollis/corridors/battle"
	"github.com/hollis/corridors/content"
	"github.com/hollis/corridors/types"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	cat, err := content.LoadBase()
	if err != nil {
		t.Fatalf("load base content: %v", err)
	}
	e := New(cat, &battle.Scripted{})
	e.Now = func() int64 { return 1700000000000 }
	return e
}

func freshRun(t *testing.T, e *Engine, seed uint32) *types.RunState {
	t.Helper()
	s := e.Reduce(InitialState(), types.NewRun{Seed: seed, HasSeed: true})
	if s.Screen != types.ScreenOverworld {
		t.Fatalf("new run landed on %s, want OVERWORLD", s.Screen)
	}
	return s
}

func TestNewRun_Scenario(t *testing.T) {
	e := testEngine(t)
	s := freshRun(t, e, 42)

	if s.Gold != 100 {
		t.Errorf("gold = %d, want 100", s.Gold)
	}
	if s.HP != 40 || s.MaxHP != 40 {
		t.Errorf("hp = %d/%d, want 40/40", s.HP, s.MaxHP)
	}
	if s.CurrentNodeID != s.Map.StartID {
		t.Errorf("current node = %s, want start %s", s.CurrentNodeID, s.Map.StartID)
	}
	if s.Map.Sets != 14 || s.Map.BossDepth != 15 {
		t.Errorf("map shape %d/%d, want 14/15", s.Map.Sets, s.Map.BossDepth)
	}
	if len(s.Deck) == 0 {
		t.Error("fresh run has an empty deck")
	}
}

func TestNewRun_Deterministic(t *testing.T) {
	e := testEngine(t)
	a := freshRun(t, e, 7)
	b := freshRun(t, e, 7)

	if a.Map.StartID != b.Map.StartID || len(a.Map.Nodes) != len(b.Map.Nodes) {
		t.Fatal("identical seeds produced different maps")
	}
	for id, na := range a.Map.Nodes {
		if nb := b.Map.Nodes[id]; nb == nil || nb.Type != na.Type {
			t.Fatalf("node %s differs between identical seeds", id)
		}
	}
}

func TestHPClampAndDefeat(t *testing.T) {
	e := testEngine(t)
	s := freshRun(t, e, 1)
	s = e.Reduce(s, types.SetTeacherMode{On: true})

	over := e.Reduce(s, types.DebugSetHP{HP: 999})
	if over.HP != over.MaxHP {
		t.Errorf("hp = %d, want clamp to %d", over.HP, over.MaxHP)
	}

	dead := e.Reduce(over, types.DebugSetHP{HP: -5})
	if dead.HP != 0 {
		t.Errorf("hp = %d, want 0", dead.HP)
	}
	if dead.Screen != types.ScreenDefeat {
		t.Fatalf("screen = %s, want DEFEAT", dead.Screen)
	}

	// DEFEAT is terminal for everything except a new run or load.
	if got := e.Reduce(dead, types.OpenNode{NodeID: dead.Map.StartID}); got != dead {
		t.Error("OPEN_NODE acted on a defeated run")
	}
	if got := e.Reduce(dead, types.RestHeal{}); got != dead {
		t.Error("REST_HEAL acted on a defeated run")
	}
	revived := e.Reduce(dead, types.NewRun{Seed: 2, HasSeed: true})
	if revived.Screen != types.ScreenOverworld {
		t.Errorf("NEW_RUN from DEFEAT landed on %s", revived.Screen)
	}
}

func TestDebugActionsRequireTeacherMode(t *testing.T) {
	e := testEngine(t)
	s := freshRun(t, e, 1)

	if got := e.Reduce(s, types.DebugGiveGold{Amount: 100}); got != s {
		t.Error("debug gold granted without teacher mode")
	}
	if got := e.Reduce(s, types.DebugSetHP{HP: 1}); got != s {
		t.Error("debug hp set without teacher mode")
	}

	s = e.Reduce(s, types.SetTeacherMode{On: true})
	rich := e.Reduce(s, types.DebugGiveGold{Amount: 100})
	if rich.Gold != s.Gold+100 {
		t.Errorf("gold = %d, want %d", rich.Gold, s.Gold+100)
	}
}

func TestLoadState_ForcesBypassesOff(t *testing.T) {
	e := testEngine(t)
	s := freshRun(t, e, 3)
	s = e.Reduce(s, types.SetTeacherMode{On: true})

	loaded := e.Reduce(InitialState(), types.LoadState{State: s})
	if loaded.TeacherMode || loaded.DebugMode {
		t.Error("loaded state kept teacher/debug bypasses")
	}
	if loaded.Seed != s.Seed || loaded.Gold != s.Gold {
		t.Error("loaded state lost run fields")
	}
}

func TestLoadState_NilFallsBackToTitle(t *testing.T) {
	e := testEngine(t)
	got := e.Reduce(freshRun(t, e, 1), types.LoadState{State: nil})
	if got.Screen != types.ScreenTitle {
		t.Errorf("screen = %s, want TITLE", got.Screen)
	}
}

func TestConsumableUse(t *testing.T) {
	e := testEngine(t)
	s := freshRun(t, e, 5)
	s = e.clone(s)
	s.HP = 20
	s.Consumables = []string{"cons_energy_bar", "cons_lunch_money", "cons_eraser"}

	healed := e.Reduce(s, types.ConsumableUse{Index: 0})
	if healed.HP != 30 {
		t.Errorf("hp = %d, want 30", healed.HP)
	}
	if len(healed.Consumables) != 2 {
		t.Errorf("inventory = %v, want item consumed", healed.Consumables)
	}

	paid := e.Reduce(healed, types.ConsumableUse{Index: 0})
	if paid.Gold != healed.Gold+30 {
		t.Errorf("gold = %d, want %d", paid.Gold, healed.Gold+30)
	}

	// Battle-kind items cannot be used outside battle.
	if got := e.Reduce(paid, types.ConsumableUse{Index: 0}); got != paid {
		t.Error("battle consumable used on the overworld")
	}

	dropped := e.Reduce(paid, types.ConsumableDiscard{Index: 0})
	if len(dropped.Consumables) != 0 {
		t.Errorf("inventory = %v, want empty", dropped.Consumables)
	}
}

func TestSetupChoose(t *testing.T) {
	e := testEngine(t)
	s := freshRun(t, e, 9)

	s = e.Reduce(s, types.SetupOpen{})
	if s.Screen != types.ScreenSetup {
		t.Fatalf("screen = %s, want SETUP", s.Screen)
	}

	s = e.Reduce(s, types.SetupChoose{LoadoutID: "lo_jock", Name: "Sam"})
	if s.Screen != types.ScreenOverworld || !s.SetupDone {
		t.Fatal("setup did not complete")
	}
	if s.LoadoutID != "lo_jock" || s.PlayerName != "Sam" {
		t.Errorf("loadout %s / name %s", s.LoadoutID, s.PlayerName)
	}
	if !hasSupply(s, "sup_protein_shake") {
		t.Error("loadout supply not granted")
	}

	// Setup is a one-time gate.
	if got := e.Reduce(s, types.SetupOpen{}); got != s {
		t.Error("setup reopened after completion")
	}
}

func TestUnknownActionIsNoOp(t *testing.T) {
	e := testEngine(t)
	s := freshRun(t, e, 1)
	if got := e.Reduce(s, types.CloseNode{}); got != s {
		t.Error("CLOSE_NODE on the overworld was not a no-op")
	}
	if got := e.Reduce(s, types.ShopBuy{Index: 0}); got != s {
		t.Error("SHOP_BUY with no shop was not a no-op")
	}
}

func TestReducerRecoversFromPanic(t *testing.T) {
	e := testEngine(t)
	e.Battle = &battle.Scripted{Outcome: func(types.BattleStartParams) *types.BattleState {
		panic("module bug")
	}}
	s := freshRun(t, e, 11)
	s = e.clone(s)
	s.Screen = types.ScreenNode
	nid := firstNodeOfType(s, types.NodeFight)
	s.CurrentNodeID = nid
	s.NodeScreen = types.FightScreen{NodeID: nid}

	got := e.Reduce(s, types.StartBattle{NodeID: nid})
	if got != s {
		t.Error("panicking collaborator corrupted state")
	}
}

// firstNodeOfType finds any map node of the wanted type.
func firstNodeOfType(s *types.RunState, want types.NodeType) string {
	for depth := 1; depth <= s.Map.BossDepth; depth++ {
		for _, n := range s.Map.Nodes {
			if n.Depth == depth && n.Type == want {
				return n.ID
			}
		}
	}
	return ""
}
