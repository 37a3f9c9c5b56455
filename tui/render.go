package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hollis/corridors/content"
	"github.com/hollis/corridors/types"
)

// renderScreen turns the current snapshot into output lines. question is
// the battle module's pending prompt, nil outside battle.
func renderScreen(cat *content.Catalog, s *types.RunState, question *types.QuestionDef) []string {
	if s == nil {
		return nil
	}
	switch s.Screen {
	case types.ScreenTitle:
		return renderTitle()
	case types.ScreenSetup:
		return renderSetup(cat)
	case types.ScreenOverworld:
		return renderOverworld(s)
	case types.ScreenNode:
		return renderNode(cat, s)
	case types.ScreenBattle:
		return renderBattle(s, question)
	case types.ScreenReward:
		return renderReward(cat, s)
	case types.ScreenVictory:
		return renderVictory(s)
	case types.ScreenDefeat:
		return renderDefeat(s)
	}
	return nil
}

func renderTitle() []string {
	return []string{
		"== Corridors",
		"A run through the halls: answer fast, spend wisely, reach the principal.",
		"",
		"  [new]         start a fresh run (new <seed> for a fixed one)",
		"  [load <code>] resume from a code",
	}
}

func renderSetup(cat *content.Catalog) []string {
	lines := []string{"== Choose your student"}
	for i, lo := range cat.LoadoutList {
		desc := fmt.Sprintf("  [%d] %s (%d cards)", i+1, lo.Name, len(lo.Deck))
		if lo.SupplyID != "" {
			if sup, ok := cat.Supplies[lo.SupplyID]; ok {
				desc += ", carries " + sup.Name
			}
		}
		lines = append(lines, desc)
	}
	lines = append(lines, "", "pick <number> [your name]")
	return lines
}

func renderOverworld(s *types.RunState) []string {
	lines := []string{"== The School Map"}
	if !s.SetupDone {
		lines = append(lines, "(type `setup` to choose your student first)")
	}

	depths := map[int][]*types.Node{}
	maxDepth := 0
	for _, n := range s.Map.Nodes {
		depths[n.Depth] = append(depths[n.Depth], n)
		if n.Depth > maxDepth {
			maxDepth = n.Depth
		}
	}

	reachable := map[string]bool{}
	if cur, ok := s.Map.Nodes[s.CurrentNodeID]; ok {
		for _, id := range cur.Next {
			reachable[id] = true
		}
	}

	for d := 0; d <= maxDepth; d++ {
		row := depths[d]
		if len(row) == 0 {
			continue
		}
		sort.Slice(row, func(i, j int) bool { return row[i].ID < row[j].ID })
		cells := make([]string, 0, len(row))
		for _, n := range row {
			mark := " "
			switch {
			case n.ID == s.CurrentNodeID:
				mark = "*"
			case s.LockedNodeIDs[n.ID]:
				mark = "x"
			case reachable[n.ID]:
				mark = ">"
			}
			cells = append(cells, fmt.Sprintf("%s%s(%s)", mark, n.ID, nodeGlyph(n.Type)))
		}
		lines = append(lines, "  "+strings.Join(cells, "  "))
	}

	lines = append(lines, "",
		"* you are here, > reachable, x cleared. `go <node>` to move on.")
	return lines
}

func nodeGlyph(t types.NodeType) string {
	switch t {
	case types.NodeStart:
		return "start"
	case types.NodeFight:
		return "fight"
	case types.NodeChallenge:
		return "challenge"
	case types.NodeEvent:
		return "event"
	case types.NodeRest:
		return "rest"
	case types.NodeShop:
		return "shop"
	case types.NodeBoss:
		return "BOSS"
	}
	return "?"
}

func renderNode(cat *content.Catalog, s *types.RunState) []string {
	switch sc := s.NodeScreen.(type) {
	case types.FightScreen:
		return renderFight(sc)
	case types.ShopScreen:
		return renderShop(cat, sc, "back")
	case types.RestScreen:
		return renderRest(sc)
	case types.EventScreen:
		return renderEvent(cat, s, sc)
	}
	return []string{"Nothing happens."}
}

func renderFight(sc types.FightScreen) []string {
	head := "== A fight waits here"
	switch {
	case sc.Boss:
		head = "== The principal's office"
	case sc.Challenge:
		head = "== A challenge match"
	}
	return []string{head, "", "  [fight] start the battle", "  [back]  return to the map"}
}

func renderShop(cat *content.Catalog, sc types.ShopScreen, leaveCmd string) []string {
	head := "== The School Store"
	if sc.EventOnly {
		head = "== Under-the-Desk Wares"
	}
	lines := []string{head}
	for i, o := range sc.Offers {
		tag := fmt.Sprintf("  [%d] %-28s %4dg", i+1, offerName(cat, o), o.Price)
		if o.Bought {
			tag += "  (sold)"
		}
		lines = append(lines, tag)
	}
	lines = append(lines, "",
		"buy <n>, refresh, remove <card>, "+leaveCmd)
	return lines
}

func offerName(cat *content.Catalog, o types.ShopOffer) string {
	switch o.Kind {
	case types.OfferCard:
		if c, ok := cat.Cards[o.ItemID]; ok {
			return c.Name + " (card)"
		}
	case types.OfferConsumable:
		if c, ok := cat.Consumables[o.ItemID]; ok {
			return c.Name + " (item)"
		}
	case types.OfferSupply:
		if sup, ok := cat.Supplies[o.ItemID]; ok {
			return sup.Name + " (supply)"
		}
	}
	return o.ItemID
}

func renderRest(sc types.RestScreen) []string {
	lines := []string{"== The Quiet Corner"}
	switch {
	case sc.Healed:
		lines = append(lines, "You already caught your breath here.")
	case sc.Upgraded:
		lines = append(lines, "You already hit the books here.")
	default:
		lines = append(lines,
			"A rare moment of peace. Rest up, or study one card into its",
			"stronger form.")
	}
	lines = append(lines, "",
		"  [heal]           recover some HP",
		"  [upgrade <card>] improve a deck card",
		"  [back]           return to the map")
	return lines
}

func renderEvent(cat *content.Catalog, s *types.RunState, sc types.EventScreen) []string {
	switch data := sc.Data.(type) {
	case types.IntroData:
		lines := []string{"== " + eventName(cat, sc.EventID), "", data.Text, ""}
		for i, ch := range data.Choices {
			line := fmt.Sprintf("  [%d] %s", i+1, ch.Label)
			if ch.Disabled {
				line += " (" + ch.Reason + ")"
			}
			lines = append(lines, line)
		}
		lines = append(lines, "", "choose <number>")
		return lines

	case types.GateData:
		lines := []string{"== " + eventName(cat, sc.EventID)}
		if q, ok := cat.Questions[data.QuestionID]; ok {
			lines = append(lines, "", q.Prompt)
			lines = append(lines, renderChoices(q.Choices)...)
		}
		lines = append(lines, "", fmt.Sprintf("answer <text> (a wrong answer costs %d HP)", data.Damage))
		return lines

	case types.ResultData:
		return []string{"== " + eventName(cat, sc.EventID), "", data.Text, "", "  [continue]"}

	case types.HallwayData:
		return renderHallway(cat, data)

	case types.ExamData:
		return renderExam(cat, sc.Step, data)

	case types.CardPickData:
		lines := []string{"== " + eventName(cat, sc.EventID), "", data.Text, ""}
		name := data.CardID
		if c, ok := cat.Cards[data.CardID]; ok {
			name = c.Name
		}
		lines = append(lines, fmt.Sprintf("  [take] accept %s", name))
		if data.BonusGold > 0 {
			lines = append(lines, fmt.Sprintf("  +%d gold comes with it", data.BonusGold))
		}
		return lines

	case types.ConsumablePickData:
		lines := []string{"== " + eventName(cat, sc.EventID), "", data.Text, ""}
		for i, id := range data.OfferIDs {
			name := id
			if c, ok := cat.Consumables[id]; ok {
				name = c.Name
			}
			lines = append(lines, fmt.Sprintf("  [%d] %s", i+1, name))
		}
		lines = append(lines, "", "take <number>")
		return lines

	case types.VendorData:
		if sc.Step == types.StepVendorShop && data.Shop != nil {
			return renderShop(cat, *data.Shop, "back")
		}
		lines := []string{"== " + eventName(cat, sc.EventID), "",
			"A folding table appears out of nowhere, stacked with contraband.", "",
			"  [1] browse the wares",
		}
		if !data.MysteryUsed {
			lines = append(lines, "  [2] mystery bag (35 gold, no refunds)")
		}
		lines = append(lines, "  [3] leave", "", "choose <number>")
		return lines
	}
	return []string{"Nothing happens."}
}

func renderHallway(cat *content.Catalog, data types.HallwayData) []string {
	lines := []string{"== The Hallway", "",
		"A row of lockers. Some hold treats; some hold trouble."}

	cells := make([]string, 0, len(data.Lockers))
	for i, l := range data.Lockers {
		switch {
		case l.Collected:
			cells = append(cells, fmt.Sprintf("[%d:--]", i+1))
		case l.Opened:
			cells = append(cells, fmt.Sprintf("[%d:%s]", i+1, l.Kind))
		default:
			cells = append(cells, fmt.Sprintf("[%d:??]", i+1))
		}
	}
	lines = append(lines, "", "  "+strings.Join(cells, " "))

	if data.PendingIdx >= 0 {
		if q, ok := cat.Questions[data.PendingQuestionID]; ok {
			lines = append(lines, "",
				fmt.Sprintf("Locker %d bites back! %s", data.PendingIdx+1, q.Prompt))
			lines = append(lines, renderChoices(q.Choices)...)
			lines = append(lines, "", "answer <text> to dodge the penalty")
			return lines
		}
	}

	lines = append(lines, "", "open <n>, collect <n>, leave")
	return lines
}

func renderExam(cat *content.Catalog, step types.EventStep, data types.ExamData) []string {
	switch step {
	case types.StepExamQuestion:
		lines := []string{"== Exam Week",
			fmt.Sprintf("Question %d of 5. Miss and you leave with nothing.", data.Rung+1)}
		if q, ok := cat.Questions[data.QuestionID]; ok {
			lines = append(lines, "", q.Prompt)
			lines = append(lines, renderChoices(q.Choices)...)
		}
		lines = append(lines, "", "answer <text>")
		return lines

	case types.StepExamFeedback:
		return []string{"== Exam Week",
			fmt.Sprintf("Correct! That's %d in a row.", data.Rung), "",
			"  [1] continue climbing",
			"  [2] cash out now",
			"", "choose <number>"}

	case types.StepCardPick:
		lines := []string{"== Exam Week", "Pick your prize card:", ""}
		for i, id := range data.OfferIDs {
			name := id
			if c, ok := cat.Cards[id]; ok {
				name = c.Name
			}
			lines = append(lines, fmt.Sprintf("  [%d] %s", i+1, name))
		}
		lines = append(lines, "", "take <number>")
		return lines
	}
	return []string{"== Exam Week"}
}

func renderChoices(choices []string) []string {
	if len(choices) == 0 {
		return nil
	}
	out := make([]string, 0, len(choices))
	for _, c := range choices {
		out = append(out, "    - "+c)
	}
	return out
}

func renderBattle(s *types.RunState, question *types.QuestionDef) []string {
	b := s.Battle
	if b == nil {
		return []string{"Nothing happens."}
	}
	lines := []string{"== Battle"}
	for _, en := range b.Enemies {
		bar := hpBar(en.HP, en.MaxHP, 12)
		status := fmt.Sprintf("  %-18s %s %d/%d", en.Name, bar, en.HP, en.MaxHP)
		if en.HP <= 0 {
			status = fmt.Sprintf("  %-18s down", en.Name)
		}
		lines = append(lines, status)
	}
	lines = append(lines, "", fmt.Sprintf("  You: %s %d", hpBar(b.PlayerHP, s.MaxHP, 12), b.PlayerHP))

	if question != nil {
		lines = append(lines, "", question.Prompt)
		lines = append(lines, renderChoices(question.Choices)...)
	}
	lines = append(lines, "", "answer <text>, or flee (you keep partial gold)")
	return lines
}

func hpBar(hp, max, width int) string {
	if max <= 0 || width <= 0 {
		return ""
	}
	filled := hp * width / max
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

func renderReward(cat *content.Catalog, s *types.RunState) []string {
	rw := s.Reward
	if rw == nil {
		return []string{"Nothing happens."}
	}
	lines := []string{"== Spoils"}

	gold := fmt.Sprintf("  [gold] +%d gold", rw.Gold)
	if rw.GoldClaimed {
		gold = "  gold claimed"
	}
	lines = append(lines, gold)

	if !rw.CardConfirmed {
		lines = append(lines, "  One card may join your deck:")
		for _, id := range rw.CardOfferIDs {
			name := id
			if c, ok := cat.Cards[id]; ok {
				name = c.Name
			}
			lines = append(lines, "    [card "+id+"] "+name)
		}
		lines = append(lines, "    [skip] take none")
	} else if rw.ChosenCardID != "" {
		lines = append(lines, "  card taken")
	}

	if rw.ConsumableID != "" && !rw.ConsumableClaimed {
		name := rw.ConsumableID
		if c, ok := cat.Consumables[rw.ConsumableID]; ok {
			name = c.Name
		}
		lines = append(lines, "  [item] "+name)
	}
	if rw.SupplyID != "" && !rw.SupplyClaimed {
		name := rw.SupplyID
		if sup, ok := cat.Supplies[rw.SupplyID]; ok {
			name = sup.Name
		}
		lines = append(lines, "  [supply] "+name)
	}

	lines = append(lines, "", "claim what you want, then continue")
	return lines
}

func renderVictory(s *types.RunState) []string {
	return []string{
		"== You made it",
		"The principal concedes. The halls are yours.",
		fmt.Sprintf("  +%d gold banked, %d questions missed along the way", s.Gold, len(s.WrongAnswers)),
		"",
		"`review` lists every miss. `new` starts another run.",
	}
}

func renderDefeat(s *types.RunState) []string {
	return []string{
		"== Sent home",
		"The run ends here.",
		fmt.Sprintf("  %d gold carried, %d questions missed", s.Gold, len(s.WrongAnswers)),
		"",
		"`review` lists every miss so it doesn't happen twice. `new` to retry.",
	}
}

// renderReview lists the run's wrong-answer log.
func renderReview(s *types.RunState) []string {
	if s == nil || len(s.WrongAnswers) == 0 {
		return []string{"No missed questions. Clean slate."}
	}
	lines := []string{fmt.Sprintf("== Missed questions (%d)", len(s.WrongAnswers))}
	for _, wa := range s.WrongAnswers {
		lines = append(lines, fmt.Sprintf("  %s", wa.Prompt))
		lines = append(lines, fmt.Sprintf("    you said %q, it was %q (%s)", wa.Given, wa.Expected, wa.Where))
	}
	return lines
}

func eventName(cat *content.Catalog, eventID string) string {
	if ev, ok := cat.Events[eventID]; ok && ev.Name != "" {
		return ev.Name
	}
	return "Something in the corridor"
}

// renderInventory lists deck, bag and supplies on demand.
func renderInventory(cat *content.Catalog, s *types.RunState) []string {
	lines := []string{fmt.Sprintf("== Deck (%d cards)", len(s.Deck))}
	counts := map[string]int{}
	order := []string{}
	for _, id := range s.Deck {
		if counts[id] == 0 {
			order = append(order, id)
		}
		counts[id]++
	}
	for _, id := range order {
		name := id
		if c, ok := cat.Cards[id]; ok {
			name = c.Name
			if c.Negative {
				name += " (curse)"
			}
		}
		if counts[id] > 1 {
			name = fmt.Sprintf("%s x%d", name, counts[id])
		}
		lines = append(lines, "  "+name)
	}

	lines = append(lines, "", fmt.Sprintf("== Bag (%d/3)", len(s.Consumables)))
	for i, id := range s.Consumables {
		name := id
		if c, ok := cat.Consumables[id]; ok {
			name = c.Name
		}
		lines = append(lines, fmt.Sprintf("  [%d] %s", i+1, name))
	}

	lines = append(lines, "", "== Supplies")
	if len(s.SupplyIDs) == 0 {
		lines = append(lines, "  none yet")
	}
	for _, id := range s.SupplyIDs {
		name, desc := id, ""
		if sup, ok := cat.Supplies[id]; ok {
			name, desc = sup.Name, sup.Desc
		}
		line := "  " + name
		if desc != "" {
			line += ": " + desc
		}
		lines = append(lines, line)
	}
	return lines
}
