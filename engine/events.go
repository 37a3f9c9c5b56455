package engine

import (
	"github.com/hollis/corridors/engine/rng"
	"github.com/hollis/corridors/types"
)

// buildEventScreen rolls which narrative event a node hosts and builds
// its opening step.
func (e *Engine) buildEventScreen(n *types.RunState, nodeID string) types.NodeScreen {
	r := rng.NewScoped(n.Seed, "event:"+nodeID)
	def, ok := rng.Pick(r, e.Cat.EventList, func(d types.EventDef) int { return d.Weight })
	if !ok {
		return nil
	}
	return e.eventOpening(n, nodeID, def.ID)
}

// eventOpening builds the first step of a specific event.
func (e *Engine) eventOpening(n *types.RunState, nodeID, eventID string) types.NodeScreen {
	switch eventID {
	case "evt_hallway":
		return e.buildHallway(n, nodeID)
	case "evt_exam_week":
		return e.buildExam(nodeID)
	case "evt_vendor":
		return e.buildVendor(nodeID)
	case "evt_vault", "evt_chem_lab", "evt_charging_station",
		"evt_weight_room", "evt_poison_extraction", "evt_attendance_office":
		return e.buildTrade(n, nodeID, eventID)
	}
	// Unknown event id from custom content: a harmless dead end.
	return types.EventScreen{
		NodeID:  nodeID,
		EventID: eventID,
		Step:    types.StepResult,
		Data:    types.ResultData{Text: "Nothing of note happens."},
	}
}

// eventChoose routes a choice to the open event's protocol.
func (e *Engine) eventChoose(s *types.RunState, act types.EventChoose) *types.RunState {
	if s.Screen != types.ScreenNode {
		return s
	}
	ev, ok := s.NodeScreen.(types.EventScreen)
	if !ok {
		return s
	}

	// Continuing past a RESULT consumes the node, whatever the event.
	if ev.Step == types.StepResult {
		if act.ChoiceID != "continue" {
			return s
		}
		return e.finishEvent(s, ev)
	}

	switch ev.EventID {
	case "evt_hallway":
		return e.hallwayChoose(s, ev, act)
	case "evt_exam_week":
		return e.examChoose(s, ev, act)
	case "evt_vendor":
		return e.vendorChoose(s, ev, act)
	default:
		return e.tradeChoose(s, ev, act)
	}
}

// finishEvent locks the node and returns to the overworld.
func (e *Engine) finishEvent(s *types.RunState, ev types.EventScreen) *types.RunState {
	n := e.clone(s)
	e.lockNode(n, ev.NodeID)
	n.NodeScreen = nil
	n.Screen = types.ScreenOverworld
	return n
}

// gateAnswer answers either a leave-friction gate or an exam ladder
// question, depending on the open step.
func (e *Engine) gateAnswer(s *types.RunState, act types.EventGateAnswer) *types.RunState {
	if s.Screen != types.ScreenNode {
		return s
	}
	ev, ok := s.NodeScreen.(types.EventScreen)
	if !ok {
		return s
	}
	switch ev.Step {
	case types.StepGate:
		return e.answerGate(s, ev, act)
	case types.StepExamQuestion:
		return e.examAnswer(s, ev, act)
	}
	return s
}

func (e *Engine) answerGate(s *types.RunState, ev types.EventScreen, act types.EventGateAnswer) *types.RunState {
	gd, ok := ev.Data.(types.GateData)
	if !ok {
		return s
	}
	q, ok := e.Cat.Questions[gd.QuestionID]
	if !ok {
		return s
	}

	n := e.clone(s)
	var text string
	if answerMatches(act.Answer, q.Answer) {
		e.gainGold(n, gd.PassGold)
		e.applyHeal(n, gd.PassHeal)
		text = gd.PassText
	} else {
		e.logWrongAnswer(n, types.WrongAnswer{
			Prompt: q.Prompt, Given: act.Answer, Expected: q.Answer, Where: ev.EventID,
		})
		if e.applyDamage(n, gd.Damage) {
			return n
		}
		text = gd.FailText
	}
	ev.Step = types.StepResult
	ev.Data = types.ResultData{Text: text}
	n.NodeScreen = ev
	return n
}

// eventPickCard resolves a CARD_PICK step: a single-card confirmation
// (trade events) or a choice among exam prize offers.
func (e *Engine) eventPickCard(s *types.RunState, act types.EventPickCard) *types.RunState {
	if s.Screen != types.ScreenNode {
		return s
	}
	ev, ok := s.NodeScreen.(types.EventScreen)
	if !ok || ev.Step != types.StepCardPick {
		return s
	}
	switch data := ev.Data.(type) {
	case types.CardPickData:
		return e.confirmCardPick(s, ev, data, act)
	case types.ExamData:
		return e.examPickCard(s, ev, data, act)
	}
	return s
}

// confirmCardPick takes the bundled deal: the card goes in the deck (or
// is blocked by a supply) and the co-bundled rewards land either way.
func (e *Engine) confirmCardPick(s *types.RunState, ev types.EventScreen, data types.CardPickData, act types.EventPickCard) *types.RunState {
	if act.CardID != data.CardID {
		return s
	}
	n := e.clone(s)
	e.addCard(n, data.CardID)
	e.gainGold(n, data.BonusGold)
	e.applyHeal(n, data.BonusHeal)
	if data.BonusSupplyID != "" {
		e.addSupply(n, data.BonusSupplyID)
	}
	ev.Step = types.StepResult
	ev.Data = types.ResultData{Text: data.ResultText}
	n.NodeScreen = ev
	return n
}

// eventPickConsumable resolves a CONSUMABLE_PICK step. A full inventory
// converts the pick into the step's gold fallback.
func (e *Engine) eventPickConsumable(s *types.RunState, act types.EventPickConsumable) *types.RunState {
	if s.Screen != types.ScreenNode {
		return s
	}
	ev, ok := s.NodeScreen.(types.EventScreen)
	if !ok || ev.Step != types.StepConsumablePick {
		return s
	}
	data, ok := ev.Data.(types.ConsumablePickData)
	if !ok || indexOf(data.OfferIDs, act.ConsumableID) < 0 {
		return s
	}

	n := e.clone(s)
	var text string
	if len(n.Consumables) >= maxConsumables {
		e.gainGold(n, data.GoldFallback)
		text = "Your bag is full; you take the cash instead."
	} else {
		e.addConsumable(n, act.ConsumableID)
		text = "You pocket your prize."
	}
	ev.Step = types.StepResult
	ev.Data = types.ResultData{Text: text}
	n.NodeScreen = ev
	return n
}
