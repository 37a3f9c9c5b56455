package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hollis/corridors/battle"
	"github.com/hollis/corridors/engine"
	"github.com/hollis/corridors/engine/rng"
	"github.com/hollis/corridors/engine/save"
	"github.com/hollis/corridors/prefs"
	"github.com/hollis/corridors/types"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for system messages
}

// Model is the Bubble Tea model for the Corridors TUI. It owns the run
// snapshot; every input becomes a reducer action (or a question answer
// routed through the battle module).
type Model struct {
	eng   *engine.Engine
	quiz  *battle.Quiz
	prefs *prefs.Prefs
	state *types.RunState

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated output (unstyled, for re-wrapping)

	width    int
	height   int
	ready    bool
	compact  bool
	quitting bool
	saveDir  string
}

// gameOutputMsg carries output into the Update loop.
type gameOutputMsg struct {
	input    string   // echoed player input (empty for intro)
	lines    []string // output lines
	isSystem bool     // true for meta-command output
}

// New creates a TUI model wired to the given engine and battle module.
func New(eng *engine.Engine, quiz *battle.Quiz, p *prefs.Prefs) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	saveDir := ""
	compact := false
	if p != nil {
		saveDir = p.SaveDir()
		compact = p.Compact()
	}
	if saveDir == "" {
		home, _ := os.UserHomeDir()
		saveDir = filepath.Join(home, ".corridors", "saves")
	}

	return Model{
		eng:     eng,
		quiz:    quiz,
		prefs:   p,
		state:   engine.InitialState(),
		input:   ti,
		history: NewHistory(100),
		compact: compact,
		saveDir: saveDir,
	}
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine, quiz *battle.Quiz, p *prefs.Prefs) error {
	return RunWith(eng, quiz, p, nil)
}

// RunWith starts the program from a prepared snapshot (a --seed or
// --resume run applied before the first frame).
func RunWith(eng *engine.Engine, quiz *battle.Quiz, p *prefs.Prefs, initial *types.RunState) error {
	m := New(eng, quiz, p)
	if initial != nil {
		m.state = initial
	}
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := prog.Run()
	return err
}

// Init returns the initial command that renders the title screen.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg {
		return gameOutputMsg{lines: m.render()}
	})
}

// Update handles messages (key presses, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case gameOutputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(gameOutputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	lines := m.step(input)
	m = m.appendOutput(gameOutputMsg{input: input, lines: lines})
	return m, nil
}

// step routes one game command: battle answers to the battle module,
// everything else through the parser and reducer.
func (m *Model) step(input string) []string {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil
	}
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	// Read-only commands that work from most screens.
	switch cmd {
	case "look", "l":
		return m.render()
	case "map":
		if m.state.Map != nil {
			return renderOverworld(m.state)
		}
	case "deck", "bag", "inv", "i":
		if m.state.Map != nil {
			return renderInventory(m.eng.Cat, m.state)
		}
	case "review":
		return renderReview(m.state)
	case "use":
		if i, ok := indexArg(args, len(m.state.Consumables)); ok {
			return m.dispatch(types.ConsumableUse{Index: i})
		}
		return []string{"Use which item? `use 1` (see `bag`)."}
	case "drop":
		if i, ok := indexArg(args, len(m.state.Consumables)); ok {
			return m.dispatch(types.ConsumableDiscard{Index: i})
		}
		return []string{"Drop which item? `drop 1` (see `bag`)."}
	}

	if m.state.Screen == types.ScreenBattle && m.state.Battle != nil {
		return m.stepBattle(cmd, args)
	}

	act, msg := parseAction(m.eng.Cat, m.state, input)
	if act == nil {
		if msg == "" {
			return nil
		}
		return []string{msg}
	}
	return m.dispatch(act)
}

// stepBattle resolves a battle turn through the module and folds the
// result back in with BATTLE_UPDATE / BATTLE_ENDED.
func (m *Model) stepBattle(cmd string, args []string) []string {
	b := m.state.Battle
	seed := rng.SubSeed(m.state.Seed, "battle:"+b.NodeID)

	switch cmd {
	case "answer":
		if len(args) == 0 {
			return []string{"Answer with something, e.g. `answer 42`."}
		}
		next := m.quiz.Answer(seed, b, strings.Join(args, " "))
		if next.Over {
			return m.dispatch(types.BattleEnded{Battle: next})
		}
		return m.dispatch(types.BattleUpdate{Battle: next})
	case "flee", "run":
		return m.dispatch(types.BattleEnded{Battle: m.quiz.Flee(b)})
	}
	return []string{"In a fight: `answer <text>` or `flee`."}
}

// dispatch applies an action and renders the outcome. Rejected actions
// come back as the same pointer and render as a shrug.
func (m *Model) dispatch(act types.Action) []string {
	prev := m.state
	next := m.eng.Reduce(prev, act)
	if next == prev {
		return []string{"Nothing happens."}
	}
	m.state = next
	m.recordMilestones(prev, next, act)

	var lines []string
	for _, id := range next.FlashSupplyIDs {
		name := id
		if sup, ok := m.eng.Cat.Supplies[id]; ok {
			name = sup.Name
		}
		lines = append(lines, "! "+name+" kicks in")
	}
	next.FlashSupplyIDs = nil

	return append(lines, m.render()...)
}

// recordMilestones keeps the lifetime prefs counters current.
func (m *Model) recordMilestones(prev, next *types.RunState, act types.Action) {
	if m.prefs == nil {
		return
	}
	if _, isNew := act.(types.NewRun); isNew {
		m.prefs.RecordRunStart()
		_ = m.prefs.Flush()
		return
	}
	if prev.Screen != types.ScreenVictory && next.Screen == types.ScreenVictory {
		elapsed := time.Now().UnixMilli() - next.RunStartMs
		m.prefs.RecordVictory(elapsed)
		_ = m.prefs.Flush()
	}
}

// render produces the current screen's output lines.
func (m *Model) render() []string {
	var q *types.QuestionDef
	if m.state.Screen == types.ScreenBattle && m.state.Battle != nil && m.quiz != nil {
		seed := rng.SubSeed(m.state.Seed, "battle:"+m.state.Battle.NodeID)
		if question, ok := m.quiz.Question(seed, m.state.Battle); ok {
			q = &question
		}
	}
	return renderScreen(m.eng.Cat, m.state, q)
}

// appendOutput adds lines to the log and refreshes the viewport.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}

	// Blank line separator between turns.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current
// width and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(word)
			lineLen = wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		return []string{"See you next period."}, true

	case "/save":
		return m.cmdSave(arg), false

	case "/load":
		return m.cmdLoad(arg), false

	case "/code":
		return m.cmdCode(), false

	case "/help":
		return m.cmdHelp(), false

	case "/stats":
		return m.cmdStats(), false

	case "/compact":
		m.compact = !m.compact
		if m.prefs != nil {
			m.prefs.SetCompact(m.compact)
			_ = m.prefs.Flush()
		}
		if m.compact {
			return []string{"Compact status bar on."}, false
		}
		return []string{"Compact status bar off."}, false

	case "/teacher":
		m.state = m.eng.Reduce(m.state, types.SetTeacherMode{On: !m.state.TeacherMode})
		if m.state.TeacherMode {
			return []string{"Teacher mode on. Content QA commands unlocked."}, false
		}
		return []string{"Teacher mode off."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdSave(name string) []string {
	if name == "" {
		name = "quicksave"
	}

	code, err := save.Encode(m.state)
	if err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	if err := os.MkdirAll(m.saveDir, 0o755); err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	path := filepath.Join(m.saveDir, name+".code")
	if err := os.WriteFile(path, []byte(code+"\n"), 0o644); err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	return []string{fmt.Sprintf("Run saved to %s.", name)}
}

func (m *Model) cmdLoad(name string) []string {
	if name == "" {
		name = "quicksave"
	}

	path := filepath.Join(m.saveDir, name+".code")
	data, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}

	st, err := save.Decode(string(data))
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}

	m.state = m.eng.Reduce(m.state, types.LoadState{State: st})
	output := []string{fmt.Sprintf("Run loaded from %s.", name)}
	return append(output, m.render()...)
}

// cmdCode prints the resume code inline for copy-paste transport.
func (m *Model) cmdCode() []string {
	code, err := save.Encode(m.state)
	if err != nil {
		return []string{fmt.Sprintf("Code failed: %v", err)}
	}
	return []string{"Resume code (use `load <code>` anywhere):", code}
}

func (m *Model) cmdStats() []string {
	if m.prefs == nil {
		return []string{"No stats available."}
	}
	lines := []string{
		fmt.Sprintf("Runs played: %d", m.prefs.RunsPlayed()),
		fmt.Sprintf("Runs won:    %d", m.prefs.RunsWon()),
	}
	if best := m.prefs.BestTimeMs(); best > 0 {
		lines = append(lines, fmt.Sprintf("Best time:   %s", time.Duration(best)*time.Millisecond))
	}
	return lines
}

func (m *Model) cmdHelp() []string {
	return []string{
		"System:",
		"  /save [name]  - save the run to a file (default: quicksave)",
		"  /load [name]  - load a saved run",
		"  /code         - print a copy-paste resume code",
		"  /stats        - lifetime record",
		"  /compact      - toggle the condensed status bar",
		"  /quit         - exit",
		"",
		"Run commands:",
		"  new [seed]        - start a run",
		"  load <code>       - resume from a pasted code",
		"  setup, pick <n>   - choose your student",
		"  go <node>         - enter a map node",
		"  map, deck, bag    - look around",
		"  use/drop <n>      - manage bag items",
		"  back              - leave a node screen",
		"",
		"In nodes: fight, buy <n>, refresh, remove <card>, heal,",
		"upgrade <card>, choose <n>, open/collect <n>, answer <text>,",
		"take <n>, continue. In battle: answer <text>, flee.",
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	}
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
