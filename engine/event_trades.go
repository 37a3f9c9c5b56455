package engine

import (
	"fmt"

	"github.com/hollis/corridors/engine/rng"
	"github.com/hollis/corridors/types"
)

// The six trade events share one shape: an INTRO with a handful of
// priced, painful or risky choices, most ending in a RESULT, a few
// detouring through a gate question or a card confirmation. Disabled
// flags on the choices are advisory for the UI; every precondition is
// re-checked when the choice is dispatched.

func (e *Engine) buildTrade(n *types.RunState, nodeID, eventID string) types.NodeScreen {
	var data types.IntroData
	switch eventID {
	case "evt_vault":
		data = types.IntroData{
			Text: "Behind the gym, a disused vault door stands ajar. Something glints inside.",
			Choices: []types.EventChoice{
				{ID: "force_open", Label: "Force it open"},
				choiceNeedsGold(n, "pay_locksmith", "Pay the locksmith (45 gold)", 45),
				{ID: "leave", Label: "Walk away"},
			},
		}
	case "evt_chem_lab":
		data = types.IntroData{
			Text: "The chem lab reeks of a botched experiment. The teacher is nowhere in sight.",
			Choices: []types.EventChoice{
				{ID: "help_clean", Label: "Help clean up (take 8 damage)"},
				{ID: "grab_supplies", Label: "Grab what you can"},
				{ID: "leave", Label: "Back away slowly"},
			},
		}
	case "evt_charging_station":
		data = types.IntroData{
			Text: "A humming charging station sits unattended in an alcove.",
			Choices: []types.EventChoice{
				choiceNeedsGold(n, "quick_charge", "Quick charge (30 gold)", 30),
				choiceNeedsGold(n, "full_charge", "Full charge (60 gold)", 60),
				{ID: "jolt", Label: "Grab the live cable (take 5 damage)"},
				{ID: "leave", Label: "Move on"},
			},
		}
	case "evt_weight_room":
		data = types.IntroData{
			Text: "The weight room is open. A senior nods at the spare bench.",
			Choices: []types.EventChoice{
				{ID: "train_hard", Label: "Train until it hurts (take 12 damage)"},
				{ID: "spot_lifter", Label: "Spot the senior"},
				{ID: "leave", Label: "Head out"},
			},
		}
	case "evt_poison_extraction":
		extract := types.EventChoice{ID: "extract", Label: "Have a curse treated (20 gold)"}
		if !e.hasNegativeCard(n) {
			extract.Disabled = true
			extract.Reason = "nothing to treat"
		} else if n.Gold < 20 {
			extract.Disabled = true
			extract.Reason = "not enough gold"
		}
		data = types.IntroData{
			Text: "The nurse looks up from her charts. \"Sit. What's bothering you?\"",
			Choices: []types.EventChoice{
				extract,
				choiceNeedsGold(n, "checkup", "Get a checkup (15 gold)", 15),
				{ID: "donate_blood", Label: "Donate blood (take 6 damage)"},
				{ID: "leave", Label: "Just passing through"},
			},
		}
	case "evt_attendance_office":
		clear := types.EventChoice{ID: "clear_record", Label: "Pay to clear your record (55 gold)"}
		if !e.hasNegativeCard(n) {
			clear.Disabled = true
			clear.Reason = "record is clean"
		} else if n.Gold < 55 {
			clear.Disabled = true
			clear.Reason = "not enough gold"
		}
		data = types.IntroData{
			Text: "The attendance office is empty. The pass printer is still warm.",
			Choices: []types.EventChoice{
				{ID: "forge_pass", Label: "Forge a pass and sell it"},
				clear,
				{ID: "plead_case", Label: "Plead your case to the clerk"},
				{ID: "leave", Label: "Leave before anyone comes back"},
			},
		}
	}
	return types.EventScreen{
		NodeID:  nodeID,
		EventID: eventID,
		Step:    types.StepIntro,
		Data:    data,
	}
}

func choiceNeedsGold(n *types.RunState, id, label string, price int) types.EventChoice {
	c := types.EventChoice{ID: id, Label: label}
	if n.Gold < price {
		c.Disabled = true
		c.Reason = "not enough gold"
	}
	return c
}

func (e *Engine) tradeChoose(s *types.RunState, ev types.EventScreen, act types.EventChoose) *types.RunState {
	if ev.Step != types.StepIntro {
		return s
	}
	if _, ok := ev.Data.(types.IntroData); !ok {
		return s
	}

	switch ev.EventID {
	case "evt_vault":
		switch act.ChoiceID {
		case "force_open":
			return e.toCardPick(s, ev, types.CardPickData{
				Text:       "The hinges give. Alarms too. The take is real, but so is the writeup.",
				CardID:     "card_detention_slip",
				BonusGold:  80,
				ResultText: "You stuff your pockets and run.",
			})
		case "pay_locksmith":
			return e.tradeSpend(s, ev, 45, func(n *types.RunState) string {
				r := rng.NewScoped(n.Seed, "event:"+ev.NodeID+":vault")
				cons, ok := rng.Pick(r, e.Cat.ConsumableList, consumableWeight)
				if !ok {
					e.gainGold(n, 45)
					return "The vault is empty. The locksmith refunds you, embarrassed."
				}
				e.addConsumable(n, cons.ID)
				return fmt.Sprintf("The locksmith opens it clean. Inside: %s.", e.Cat.Consumables[cons.ID].Name)
			})
		case "leave":
			return e.toGate(s, ev, types.GateData{
				Damage:   8,
				PassText: "You talk your way past the hall monitor.",
				FailText: "The hall monitor isn't buying it. That stung.",
			})
		}

	case "evt_chem_lab":
		switch act.ChoiceID {
		case "help_clean":
			return e.tradePain(s, ev, 8, func(n *types.RunState) string {
				e.gainGold(n, 60)
				return "Eyes watering, you mop it all up. The teacher slips you 60 gold for your silence."
			})
		case "grab_supplies":
			return e.toCardPick(s, ev, types.CardPickData{
				Text:          "You could pocket the good glassware, but you'd breathe plenty of fumes doing it.",
				CardID:        "card_chem_fumes",
				BonusSupplyID: "sup_lab_goggles",
				ResultText:    "Coughing, you make off with the goggles.",
			})
		case "leave":
			return e.toGate(s, ev, types.GateData{
				Damage:   6,
				PassText: "You slip out before the fumes reach the hallway.",
				FailText: "You hesitate at the door a beat too long.",
			})
		}

	case "evt_charging_station":
		switch act.ChoiceID {
		case "quick_charge":
			return e.tradeSpend(s, ev, 30, func(n *types.RunState) string {
				healed := e.applyHeal(n, 15)
				return fmt.Sprintf("A quick boost. You recover %d HP.", healed)
			})
		case "full_charge":
			return e.tradeSpend(s, ev, 60, func(n *types.RunState) string {
				e.applyHeal(n, n.MaxHP)
				return "Fully charged. You feel brand new."
			})
		case "jolt":
			return e.tradePain(s, ev, 5, func(n *types.RunState) string {
				e.gainGold(n, 25)
				return "The shock knocks loose a fistful of refund coins. Worth it, probably."
			})
		case "leave":
			return e.eventResult(s, ev, "You leave the station humming to itself.")
		}

	case "evt_weight_room":
		switch act.ChoiceID {
		case "train_hard":
			return e.tradePain(s, ev, 12, func(n *types.RunState) string {
				if hasSupply(n, "sup_dumbbell") {
					e.gainGold(n, 50)
					return "Nothing left to learn here. The senior pays out your side bet: 50 gold."
				}
				e.addSupply(n, "sup_dumbbell")
				return "Everything aches, and the senior tosses you a pocket dumbbell of your own."
			})
		case "spot_lifter":
			return e.toGate(s, ev, types.GateData{
				Damage:   5,
				PassGold: 45,
				PassText: "You call the count perfectly. The senior pays up: 45 gold.",
				FailText: "You lose count and nearly lose a finger.",
			})
		case "leave":
			return e.toGate(s, ev, types.GateData{
				Damage:   8,
				PassText: "You duck out between sets.",
				FailText: "A stray plate finds your foot on the way out.",
			})
		}

	case "evt_poison_extraction":
		switch act.ChoiceID {
		case "extract":
			if !e.hasNegativeCard(s) {
				return s
			}
			return e.tradeSpend(s, ev, 20, func(n *types.RunState) string {
				if e.removeFirstNegative(n) {
					return "The nurse works quickly. You feel lighter already."
				}
				e.gainGold(n, 20)
				return "Nothing to treat after all. She waves the fee."
			})
		case "checkup":
			return e.tradeSpend(s, ev, 15, func(n *types.RunState) string {
				healed := e.applyHeal(n, 12)
				return fmt.Sprintf("Bandages, vitamins, a stern look. You recover %d HP.", healed)
			})
		case "donate_blood":
			return e.tradePain(s, ev, 6, func(n *types.RunState) string {
				e.gainGold(n, 40)
				return "A cookie and 40 gold for your trouble."
			})
		case "leave":
			return e.eventResult(s, ev, "The nurse nods you through.")
		}

	case "evt_attendance_office":
		switch act.ChoiceID {
		case "forge_pass":
			return e.toCardPick(s, ev, types.CardPickData{
				Text:       "The printer will do it. The guilt is yours to keep.",
				CardID:     "card_brain_fog",
				BonusGold:  70,
				ResultText: "The pass sells before lunch.",
			})
		case "clear_record":
			if !e.hasNegativeCard(s) {
				return s
			}
			return e.tradeSpend(s, ev, 55, func(n *types.RunState) string {
				if e.removeFirstNegative(n) {
					return "A few keystrokes and the mark is gone."
				}
				e.gainGold(n, 55)
				return "Your record was already clean. The clerk refunds you."
			})
		case "plead_case":
			return e.toGate(s, ev, types.GateData{
				Damage:   6,
				PassHeal: 10,
				PassText: "The clerk is impressed enough to hand you a nurse's pass. You recover 10 HP.",
				FailText: "The clerk's stare alone takes years off your life.",
			})
		case "leave":
			return e.toGate(s, ev, types.GateData{
				Damage:   6,
				PassText: "You're gone before anyone comes back.",
				FailText: "The door squeals. Of course it squeals.",
			})
		}
	}
	return s
}

// toGate draws the leave-friction question and enters the GATE step.
func (e *Engine) toGate(s *types.RunState, ev types.EventScreen, gd types.GateData) *types.RunState {
	r := rng.NewScoped(s.Seed, "event:"+ev.NodeID+":gate")
	q, ok := e.drawQuestion(r, nodeDepth(s, ev.NodeID))
	if !ok {
		// No questions loaded; the gate can't be posed.
		return e.eventResult(s, ev, gd.PassText)
	}
	gd.QuestionID = q.ID
	n := e.clone(s)
	ev.Step = types.StepGate
	ev.Data = gd
	n.NodeScreen = ev
	return n
}

// toCardPick enters a CARD_PICK confirmation step.
func (e *Engine) toCardPick(s *types.RunState, ev types.EventScreen, data types.CardPickData) *types.RunState {
	n := e.clone(s)
	ev.Step = types.StepCardPick
	ev.Data = data
	n.NodeScreen = ev
	return n
}

// tradeSpend charges a price, runs the effect, and shows its result.
func (e *Engine) tradeSpend(s *types.RunState, ev types.EventScreen, price int, effect func(n *types.RunState) string) *types.RunState {
	if s.Gold < price {
		return s
	}
	n := e.clone(s)
	e.spendGold(n, price)
	text := effect(n)
	ev.Step = types.StepResult
	ev.Data = types.ResultData{Text: text}
	n.NodeScreen = ev
	return n
}

// tradePain takes damage up front (possibly ending the run), then runs
// the effect and shows its result.
func (e *Engine) tradePain(s *types.RunState, ev types.EventScreen, damage int, effect func(n *types.RunState) string) *types.RunState {
	n := e.clone(s)
	if e.applyDamage(n, damage) {
		return n
	}
	text := effect(n)
	ev.Step = types.StepResult
	ev.Data = types.ResultData{Text: text}
	n.NodeScreen = ev
	return n
}

func (e *Engine) hasNegativeCard(s *types.RunState) bool {
	for _, id := range s.Deck {
		if e.Cat.Cards[id].Negative {
			return true
		}
	}
	return false
}

// removeFirstNegative drops the first negative card in the deck.
func (e *Engine) removeFirstNegative(n *types.RunState) bool {
	for _, id := range n.Deck {
		if e.Cat.Cards[id].Negative {
			return e.removeCard(n, id)
		}
	}
	return false
}
