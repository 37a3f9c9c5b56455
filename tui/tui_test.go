package tui

import (
	"strings"
	"testing"

	"github.com/hollis/corridors/battle"
	"github.com/hollis/corridors/content"
	"github.com/hollis/corridors/engine"
	"github.com/hollis/corridors/types"
)

func testModel(t *testing.T) Model {
	t.Helper()
	cat, err := content.LoadBase()
	if err != nil {
		t.Fatalf("load base content: %v", err)
	}
	quiz := battle.NewQuiz(cat)
	m := New(engine.New(cat, quiz), quiz, nil)
	m.saveDir = t.TempDir()
	return m
}

// startedModel runs `new 42` and picks the first loadout.
func startedModel(t *testing.T) Model {
	t.Helper()
	m := testModel(t)
	m.step("new 42")
	m.step("setup")
	m.step("pick 1 Sam")
	return m
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want lineKind
	}{
		{"== The School Map", kindHeading},
		{"  [1] browse the wares", kindChoice},
		{"  [heal]           recover some HP", kindChoice},
		{"  +40 gold comes with it", kindGain},
		{"  -15 HP", kindLoss},
		{"! Piggy Bank kicks in", kindFlash},
		{"You can't do that here. /help lists the commands.", kindError},
		{"Nothing happens.", kindError},
		{"A row of lockers. Some hold treats; some hold trouble.", kindBody},
		{"", kindBody},
	}
	for _, tt := range tests {
		got := classifyLine(tt.line)
		if got != tt.want {
			t.Errorf("classifyLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestWordWrap(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"short", 80, "short"},
		{"hello world", 5, "hello\nworld"},
		{"The hallway stretches ahead, lockers rattling as you pass.", 30,
			"The hallway stretches ahead,\nlockers rattling as you pass."},
		{"", 80, ""},
		{"a b c d e", 3, "a b\nc d\ne"},
	}
	for _, tt := range tests {
		got := wordWrap(tt.text, tt.width)
		if got != tt.want {
			t.Errorf("wordWrap(%q, %d) =\n  %q\nwant:\n  %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestHistory_PushAndPrev(t *testing.T) {
	h := NewHistory(5)
	h.Push("map")
	h.Push("go d1_n0")
	h.Push("fight")

	prev, ok := h.Prev()
	if !ok || prev != "fight" {
		t.Errorf("expected 'fight', got %q (ok=%v)", prev, ok)
	}

	prev, ok = h.Prev()
	if !ok || prev != "go d1_n0" {
		t.Errorf("expected 'go d1_n0', got %q (ok=%v)", prev, ok)
	}

	prev, ok = h.Prev()
	if !ok || prev != "map" {
		t.Errorf("expected 'map', got %q (ok=%v)", prev, ok)
	}

	// At oldest, stays there.
	prev, ok = h.Prev()
	if !ok || prev != "map" {
		t.Errorf("expected 'map' at boundary, got %q (ok=%v)", prev, ok)
	}
}

func TestHistory_Next(t *testing.T) {
	h := NewHistory(5)
	h.Push("map")
	h.Push("go d1_n0")

	h.Prev() // "go d1_n0"
	h.Prev() // "map"

	next, ok := h.Next()
	if !ok || next != "go d1_n0" {
		t.Errorf("expected 'go d1_n0', got %q (ok=%v)", next, ok)
	}

	_, ok = h.Next()
	if ok {
		t.Error("expected false when past newest entry")
	}
}

func TestHistory_MaxSize(t *testing.T) {
	h := NewHistory(2)
	h.Push("a")
	h.Push("b")
	h.Push("c") // "a" evicted

	prev, _ := h.Prev()
	if prev != "c" {
		t.Errorf("expected 'c', got %q", prev)
	}
	prev, _ = h.Prev()
	if prev != "b" {
		t.Errorf("expected 'b', got %q", prev)
	}
	prev, _ = h.Prev()
	if prev != "b" {
		t.Errorf("expected 'b' at boundary, got %q", prev)
	}
}

func TestHistory_NoDuplicates(t *testing.T) {
	h := NewHistory(5)
	h.Push("map")
	h.Push("map") // skipped

	if len(h.entries) != 1 {
		t.Errorf("expected 1 entry, got %d", len(h.entries))
	}
}

func TestParse_NewRun(t *testing.T) {
	m := testModel(t)

	act, msg := parseAction(m.eng.Cat, m.state, "new 42")
	nr, ok := act.(types.NewRun)
	if !ok || !nr.HasSeed || nr.Seed != 42 {
		t.Errorf("parsed %#v (%q), want seeded NewRun", act, msg)
	}

	act, _ = parseAction(m.eng.Cat, m.state, "new")
	if nr, ok := act.(types.NewRun); !ok || nr.HasSeed {
		t.Errorf("bare `new` should parse to an unseeded run, got %#v", act)
	}

	if act, msg := parseAction(m.eng.Cat, m.state, "new banana"); act != nil || msg == "" {
		t.Error("non-numeric seed accepted")
	}
}

func TestParse_LoadRejectsGarbage(t *testing.T) {
	m := testModel(t)
	act, msg := parseAction(m.eng.Cat, m.state, "load notacode")
	if act != nil || !strings.Contains(msg, "didn't take") {
		t.Errorf("garbage code parsed to %#v (%q)", act, msg)
	}
}

func TestStep_FullOpening(t *testing.T) {
	m := startedModel(t)
	s := m.state

	if s.Screen != types.ScreenOverworld {
		t.Fatalf("screen = %s, want OVERWORLD", s.Screen)
	}
	if !s.SetupDone || s.PlayerName != "Sam" {
		t.Errorf("setup not completed: done=%v name=%q", s.SetupDone, s.PlayerName)
	}
	if s.Seed != 42 {
		t.Errorf("seed = %d, want 42", s.Seed)
	}
}

func TestStep_GoEntersNode(t *testing.T) {
	m := startedModel(t)
	next := m.state.Map.Nodes[m.state.Map.StartID].Next[0]

	m.step("go " + next)
	if m.state.Screen != types.ScreenNode {
		t.Fatalf("screen = %s, want NODE", m.state.Screen)
	}
	if m.state.CurrentNodeID != next {
		t.Errorf("current = %s, want %s", m.state.CurrentNodeID, next)
	}

	m.step("back")
	if m.state.Screen != types.ScreenOverworld {
		t.Errorf("back did not return to the overworld")
	}
}

func TestStep_RejectedActionShrugs(t *testing.T) {
	m := startedModel(t)
	lines := m.step("go d99_n0")
	if len(lines) == 0 || lines[0] != "Nothing happens." {
		t.Errorf("unreachable node: %v", lines)
	}
}

func TestStep_UnknownCommandExplains(t *testing.T) {
	m := startedModel(t)
	lines := m.step("dance")
	if len(lines) == 0 || !strings.Contains(lines[0], "/help") {
		t.Errorf("expected a pointer to /help, got %v", lines)
	}
}

func TestRender_TitleAndOverworld(t *testing.T) {
	m := testModel(t)

	title := strings.Join(m.render(), "\n")
	if !strings.Contains(title, "Corridors") {
		t.Error("title screen missing the game name")
	}

	m.step("new 42")
	over := strings.Join(m.render(), "\n")
	if !strings.Contains(over, "== The School Map") {
		t.Error("overworld missing the map heading")
	}
	if !strings.Contains(over, "BOSS") {
		t.Error("overworld missing the boss node")
	}
}

func TestRender_InventoryListsLoadout(t *testing.T) {
	m := startedModel(t)
	inv := strings.Join(renderInventory(m.eng.Cat, m.state), "\n")
	if !strings.Contains(inv, "== Deck") || !strings.Contains(inv, "== Supplies") {
		t.Errorf("inventory output incomplete:\n%s", inv)
	}
}

func TestHandleMeta_Quit(t *testing.T) {
	m := testModel(t)

	_, quit := m.handleMeta("/quit")
	if !quit {
		t.Error("expected quit=true for /quit")
	}

	_, quit = m.handleMeta("/exit")
	if !quit {
		t.Error("expected quit=true for /exit")
	}
}

func TestHandleMeta_SaveLoadRoundtrip(t *testing.T) {
	m := startedModel(t)
	gold := m.state.Gold

	output, quit := m.handleMeta("/save test")
	if quit {
		t.Error("save should not quit")
	}
	if len(output) == 0 || !strings.Contains(output[0], "saved") {
		t.Fatalf("expected save confirmation, got %v", output)
	}

	m.step("new 7") // clobber the run
	output, _ = m.handleMeta("/load test")
	if len(output) == 0 || !strings.Contains(output[0], "loaded") {
		t.Fatalf("expected load confirmation, got %v", output)
	}
	if m.state.Seed != 42 || m.state.Gold != gold {
		t.Errorf("loaded run seed=%d gold=%d, want 42/%d", m.state.Seed, m.state.Gold, gold)
	}
}

func TestHandleMeta_LoadNonexistent(t *testing.T) {
	m := testModel(t)
	output, quit := m.handleMeta("/load nonexistent")
	if quit {
		t.Error("load should not quit")
	}
	if len(output) == 0 || !strings.Contains(output[0], "Load failed") {
		t.Errorf("expected load failure, got %v", output)
	}
}

func TestHandleMeta_CodeRoundtrip(t *testing.T) {
	m := startedModel(t)

	output, _ := m.handleMeta("/code")
	if len(output) != 2 || !strings.HasPrefix(output[1], "corr1.") {
		t.Fatalf("expected a corr1 code, got %v", output)
	}

	m2 := testModel(t)
	m2.step("load " + output[1])
	if m2.state.Seed != 42 {
		t.Errorf("pasted code loaded seed %d, want 42", m2.state.Seed)
	}
}

func TestHandleMeta_Help(t *testing.T) {
	m := testModel(t)

	output, quit := m.handleMeta("/help")
	if quit {
		t.Error("help should not quit")
	}

	joined := strings.Join(output, "\n")
	for _, expected := range []string{"/save", "/load", "/code", "new", "go <node>", "flee"} {
		if !strings.Contains(joined, expected) {
			t.Errorf("expected %q in help output", expected)
		}
	}
}

func TestHandleMeta_Teacher(t *testing.T) {
	m := testModel(t)

	m.handleMeta("/teacher")
	if !m.state.TeacherMode {
		t.Error("expected teacher mode on")
	}
	m.handleMeta("/teacher")
	if m.state.TeacherMode {
		t.Error("expected teacher mode off")
	}
}

func TestHandleMeta_Unknown(t *testing.T) {
	m := testModel(t)

	output, quit := m.handleMeta("/bogus")
	if quit {
		t.Error("unknown command should not quit")
	}
	if len(output) == 0 || !strings.Contains(output[0], "Unknown command") {
		t.Errorf("expected unknown command message, got %v", output)
	}
}

func TestStatusBar_CurrentNode(t *testing.T) {
	m := startedModel(t)
	m.width = 100
	next := m.state.Map.Nodes[m.state.Map.StartID].Next[0]
	m.step("go " + next)

	bar := m.renderStatusBar()
	if !strings.Contains(bar, next) {
		t.Errorf("status bar %q missing node id %s", bar, next)
	}
	if !strings.Contains(bar, "HP") || !strings.Contains(bar, "Gold") {
		t.Errorf("status bar %q missing vitals", bar)
	}
}
