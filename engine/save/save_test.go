package save

import (
	"strings"
	"testing"

	"github.com/hollis/corridors/types"
)

func sampleState() *types.RunState {
	return &types.RunState{
		Screen: types.ScreenOverworld,
		Seed:   9001,
		Gold:   120,
		HP:     33,
		MaxHP:  40,
		Map: &types.RunMap{
			Seed:    9001,
			StartID: "d0_n0",
			BossID:  "d3_n0",
			Nodes: map[string]*types.Node{
				"d0_n0": {ID: "d0_n0", Depth: 0, Type: types.NodeStart, Next: []string{"d1_n0"}},
				"d1_n0": {ID: "d1_n0", Depth: 1, Type: types.NodeFight, Next: []string{"d3_n0"}},
				"d3_n0": {ID: "d3_n0", Depth: 3, Type: types.NodeBoss},
			},
		},
		CurrentNodeID: "d1_n0",
		LockedNodeIDs: map[string]bool{"d1_n0": true},
		SetupDone:     true,
		LoadoutID:     "lo_bookworm",
		Deck:          []string{"card_pop_quiz", "card_flashback"},
		Consumables:   []string{"cons_juice_box"},
		SupplyIDs:     []string{"sup_study_notes"},
		WrongAnswers: []types.WrongAnswer{
			{Prompt: "7*6?", Given: "41", Expected: "42", Where: "d1_n0"},
		},
	}
}

func TestEncodeDecodeRoundtrip(t *testing.T) {
	code, err := Encode(sampleState())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.HasPrefix(code, "corr1.") {
		t.Fatalf("code %q missing version prefix", code)
	}

	got, err := Decode(code)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := sampleState()
	if got.Seed != want.Seed || got.Gold != want.Gold || got.HP != want.HP {
		t.Errorf("scalars: got seed=%d gold=%d hp=%d", got.Seed, got.Gold, got.HP)
	}
	if got.CurrentNodeID != "d1_n0" || !got.LockedNodeIDs["d1_n0"] {
		t.Error("position not preserved")
	}
	if len(got.Deck) != 2 || got.Deck[0] != "card_pop_quiz" {
		t.Errorf("deck = %v", got.Deck)
	}
	if len(got.WrongAnswers) != 1 || got.WrongAnswers[0].Expected != "42" {
		t.Errorf("wrong answers = %+v", got.WrongAnswers)
	}
	if len(got.Map.Nodes) != 3 || got.Map.Nodes["d0_n0"].Type != types.NodeStart {
		t.Error("map graph not preserved")
	}
}

func TestEncodeDecodePreservesNodeScreens(t *testing.T) {
	s := sampleState()
	s.Screen = types.ScreenNode
	s.NodeScreen = types.EventScreen{
		NodeID:  "d1_n0",
		EventID: "evt_hallway",
		Step:    types.StepHallway,
		Data: types.HallwayData{
			Lockers: []types.Locker{
				{Kind: types.LockerGold, Opened: true, Collected: true},
				{Kind: types.LockerAmbush},
			},
			PendingIdx: -1,
			GoldGained: 40,
		},
	}
	s.NodeScreenCache = map[string]types.NodeScreen{
		"d3_n0": types.ShopScreen{
			NodeID: "d3_n0",
			Offers: []types.ShopOffer{
				{Kind: types.OfferCard, ItemID: "card_pop_quiz", Price: 50, Bought: true},
			},
			RefreshesUsed: 1,
		},
		"d1_n0": types.EventScreen{
			NodeID:  "d1_n0",
			EventID: "evt_vendor",
			Step:    types.StepVendorShop,
			Data: types.VendorData{
				MysteryUsed: true,
				Shop:        &types.ShopScreen{NodeID: "d1_n0", EventOnly: true},
			},
		},
	}

	code, err := Encode(s)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(code)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	ev, ok := got.NodeScreen.(types.EventScreen)
	if !ok {
		t.Fatalf("node screen = %T, want EventScreen", got.NodeScreen)
	}
	hall, ok := ev.Data.(types.HallwayData)
	if !ok || ev.Step != types.StepHallway {
		t.Fatalf("event step/data = %s/%T", ev.Step, ev.Data)
	}
	if len(hall.Lockers) != 2 || !hall.Lockers[0].Collected || hall.Lockers[1].Kind != types.LockerAmbush {
		t.Errorf("lockers = %+v", hall.Lockers)
	}
	if hall.PendingIdx != -1 || hall.GoldGained != 40 {
		t.Errorf("tallies: pending=%d gold=%d", hall.PendingIdx, hall.GoldGained)
	}

	shop, ok := got.NodeScreenCache["d3_n0"].(types.ShopScreen)
	if !ok {
		t.Fatalf("cached screen = %T, want ShopScreen", got.NodeScreenCache["d3_n0"])
	}
	if shop.RefreshesUsed != 1 || len(shop.Offers) != 1 || !shop.Offers[0].Bought {
		t.Errorf("cached shop = %+v", shop)
	}

	vendor, ok := got.NodeScreenCache["d1_n0"].(types.EventScreen)
	if !ok {
		t.Fatalf("cached screen = %T, want EventScreen", got.NodeScreenCache["d1_n0"])
	}
	vd, ok := vendor.Data.(types.VendorData)
	if !ok || !vd.MysteryUsed || vd.Shop == nil || !vd.Shop.EventOnly {
		t.Errorf("cached vendor = %+v", vendor.Data)
	}
}

func TestEncodeDecodePreservesAmbushReturnScreen(t *testing.T) {
	s := sampleState()
	s.Screen = types.ScreenBattle
	s.Battle = &types.BattleState{
		NodeID:   "d1_n0",
		PlayerHP: 20,
		Meta: types.BattleMeta{
			SkipRewards: true,
			ReturnNodeScreen: types.EventScreen{
				NodeID:  "d1_n0",
				EventID: "evt_hallway",
				Step:    types.StepHallway,
				Data: types.HallwayData{
					PendingIdx: -1,
					Lockers:    []types.Locker{{Kind: types.LockerAmbush, Opened: true}},
				},
			},
		},
	}

	code, err := Encode(s)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(code)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Battle == nil {
		t.Fatal("battle sub-state lost")
	}
	ret, ok := got.Battle.Meta.ReturnNodeScreen.(types.EventScreen)
	if !ok {
		t.Fatalf("return screen = %T, want EventScreen", got.Battle.Meta.ReturnNodeScreen)
	}
	hall := ret.Data.(types.HallwayData)
	if len(hall.Lockers) != 1 || !hall.Lockers[0].Opened {
		t.Errorf("return screen lockers = %+v", hall.Lockers)
	}
}

func TestDecodeRepairsNilCollections(t *testing.T) {
	s := sampleState()
	s.LockedNodeIDs = nil
	s.Consumables = nil
	s.SupplyIDs = nil
	s.WrongAnswers = nil

	code, err := Encode(s)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(code)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.LockedNodeIDs == nil || got.AppliedSupplyIDs == nil ||
		got.UsedEncounterIDs == nil || got.HallwayPlays == nil ||
		got.NodeScreenCache == nil {
		t.Error("nil maps not repaired")
	}
	if got.Consumables == nil || got.SupplyIDs == nil || got.WrongAnswers == nil {
		t.Error("nil slices not repaired")
	}
}

func TestDecodeRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"empty":        "",
		"wrong prefix": "corr2.AAAA",
		"no prefix":    "AAAA",
		"bad base64":   "corr1.!!!!",
		"not gzip":     "corr1.aGVsbG8",
		"prefix only":  "corr1.",
	}
	for name, code := range cases {
		if _, err := Decode(code); err == nil {
			t.Errorf("%s: decode accepted %q", name, code)
		}
	}
}

func TestDecodeRejectsMaplessState(t *testing.T) {
	s := sampleState()
	s.Map = nil
	code, err := Encode(s)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := Decode(code); err == nil {
		t.Error("decoded a state with no map")
	}
}

func TestEncodeNilState(t *testing.T) {
	if _, err := Encode(nil); err == nil {
		t.Error("encoded nil state")
	}
}

func TestDecodeTrimsWhitespace(t *testing.T) {
	code, err := Encode(sampleState())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := Decode("  " + code + "\n"); err != nil {
		t.Errorf("whitespace around a valid code: %v", err)
	}
}
