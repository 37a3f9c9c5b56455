package engine

import (
	"fmt"

	"github.com/hollis/corridors/engine/rng"
	"github.com/hollis/corridors/types"
)

// Exam Week is a five-rung quiz ladder. After each correct answer the
// player cashes out at the current rung or risks it on the next, harder
// question. One wrong answer ends the ladder on the spot, paying out the
// rung already banked; wrong on the first question pays nothing.

const (
	examRungs         = 5
	examRung1Gold     = 30
	examRung2Gold     = 60
	examRung3Fallback = 40
	examTopPrizeID    = "sup_honor_roll"
	examTopPrizeGold  = 90
)

// examTiers maps the question index (current rung) to its tier.
var examTiers = [examRungs]int{1, 1, 2, 2, 3}

func (e *Engine) buildExam(nodeID string) types.NodeScreen {
	return types.EventScreen{
		NodeID:  nodeID,
		EventID: "evt_exam_week",
		Step:    types.StepIntro,
		Data: types.IntroData{
			Text: "A proctor waves you toward an empty desk. Five questions, rising stakes. Walk away whenever you like; answer wrong and the exam ends at the rung you've reached.",
			Choices: []types.EventChoice{
				{ID: "take", Label: "Take the exam"},
				{ID: "leave", Label: "Slip out quietly"},
			},
		},
	}
}

func (e *Engine) examChoose(s *types.RunState, ev types.EventScreen, act types.EventChoose) *types.RunState {
	switch ev.Step {
	case types.StepIntro:
		switch act.ChoiceID {
		case "take":
			return e.examAsk(s, ev, 0)
		case "leave":
			return e.eventResult(s, ev, "You slip out before the proctor notices.")
		}
	case types.StepExamFeedback:
		data, ok := ev.Data.(types.ExamData)
		if !ok {
			return s
		}
		switch act.ChoiceID {
		case "continue":
			return e.examAsk(s, ev, data.Rung)
		case "cash_out":
			return e.examCashOut(s, ev, data.Rung)
		}
	}
	return s
}

// examAsk draws the question that leads from rung to rung+1.
func (e *Engine) examAsk(s *types.RunState, ev types.EventScreen, rung int) *types.RunState {
	if rung < 0 || rung >= examRungs {
		return s
	}
	r := rng.NewScoped(s.Seed, fmt.Sprintf("event:%s:exam:%d", ev.NodeID, rung))
	q, ok := e.drawQuestionTier(r, examTiers[rung])
	if !ok {
		return s
	}
	n := e.clone(s)
	ev.Step = types.StepExamQuestion
	ev.Data = types.ExamData{Rung: rung, QuestionID: q.ID}
	n.NodeScreen = ev
	return n
}

// examAnswer resolves a ladder question: wrong ends the exam at the
// rung already banked, right climbs a rung (the fifth pays out
// immediately).
func (e *Engine) examAnswer(s *types.RunState, ev types.EventScreen, act types.EventGateAnswer) *types.RunState {
	data, ok := ev.Data.(types.ExamData)
	if !ok {
		return s
	}
	q, ok := e.Cat.Questions[data.QuestionID]
	if !ok {
		return s
	}

	if !answerMatches(act.Answer, q.Answer) {
		n := e.clone(s)
		e.logWrongAnswer(n, types.WrongAnswer{
			Prompt: q.Prompt, Given: act.Answer, Expected: q.Answer, Where: "evt_exam_week",
		})
		return e.examSettle(n, ev, data.Rung, true)
	}

	rung := data.Rung + 1
	if rung >= examRungs {
		n := e.clone(s)
		var text string
		if hasSupply(n, examTopPrizeID) {
			e.gainGold(n, examTopPrizeGold)
			text = fmt.Sprintf("A perfect score, again. The proctor shrugs and hands you %d gold.", examTopPrizeGold)
		} else {
			e.addSupply(n, examTopPrizeID)
			text = "A perfect score. The proctor pins the Honor Roll Medal on you herself."
		}
		ev.Step = types.StepResult
		ev.Data = types.ResultData{Text: text}
		n.NodeScreen = ev
		return n
	}

	n := e.clone(s)
	ev.Step = types.StepExamFeedback
	ev.Data = types.ExamData{Rung: rung}
	n.NodeScreen = ev
	return n
}

// examCashOut grants the prize for the rung the player stops at.
func (e *Engine) examCashOut(s *types.RunState, ev types.EventScreen, rung int) *types.RunState {
	return e.examSettle(e.clone(s), ev, rung, false)
}

// examSettle pays out the tier for rung on an already-cloned state.
// failed settlements come from a wrong answer; the rung still pays, only
// the result text differs. Rung 0 pays nothing.
func (e *Engine) examSettle(n *types.RunState, ev types.EventScreen, rung int, failed bool) *types.RunState {
	result := func(text string) *types.RunState {
		ev.Step = types.StepResult
		ev.Data = types.ResultData{Text: text}
		n.NodeScreen = ev
		return n
	}
	switch rung {
	case 1:
		e.gainGold(n, examRung1Gold)
		if failed {
			return result(fmt.Sprintf("A red X ends the climb; one cleared rung still pays %d gold.", examRung1Gold))
		}
		return result(fmt.Sprintf("You pocket %d gold and call it a day.", examRung1Gold))
	case 2:
		e.gainGold(n, examRung2Gold)
		if failed {
			return result(fmt.Sprintf("A red X ends the climb; two cleared rungs still pay %d gold.", examRung2Gold))
		}
		return result(fmt.Sprintf("You pocket %d gold and call it a day.", examRung2Gold))
	case 3:
		offers := e.examConsumablePrizes(n, ev.NodeID)
		if len(offers) == 0 {
			e.gainGold(n, examRung3Fallback)
			return result(fmt.Sprintf("The prize shelf is bare; you take %d gold instead.", examRung3Fallback))
		}
		text := "Pick your prize from the shelf."
		if failed {
			text = "A red X ends the climb, but the rungs you cleared still pay. Pick your prize."
		}
		ev.Step = types.StepConsumablePick
		ev.Data = types.ConsumablePickData{
			Text:         text,
			OfferIDs:     offers,
			GoldFallback: examRung3Fallback,
		}
		n.NodeScreen = ev
		return n
	case 4:
		offers := e.examCardPrizes(n, ev.NodeID)
		if len(offers) == 0 {
			e.gainGold(n, examRung3Fallback)
			return result(fmt.Sprintf("The prize drawer is empty; you take %d gold instead.", examRung3Fallback))
		}
		ev.Step = types.StepCardPick
		ev.Data = types.ExamData{Rung: rung, OfferIDs: offers}
		n.NodeScreen = ev
		return n
	}
	return result("A red X on the first question. You leave with nothing.")
}

// examPickCard takes one of the rung-4 card prizes.
func (e *Engine) examPickCard(s *types.RunState, ev types.EventScreen, data types.ExamData, act types.EventPickCard) *types.RunState {
	if indexOf(data.OfferIDs, act.CardID) < 0 {
		return s
	}
	n := e.clone(s)
	e.addCard(n, act.CardID)
	ev.Step = types.StepResult
	ev.Data = types.ResultData{Text: "The proctor slides your prize across the desk."}
	n.NodeScreen = ev
	return n
}

func (e *Engine) examConsumablePrizes(s *types.RunState, nodeID string) []string {
	var pool []types.ConsumableDef
	for _, c := range e.Cat.ConsumableList {
		if c.EventOnly {
			pool = append(pool, c)
		}
	}
	r := rng.NewScoped(s.Seed, fmt.Sprintf("event:%s:exam:prize", nodeID))
	picked := rng.PickUnique(r, pool, 2, consumableWeight)
	ids := make([]string, 0, len(picked))
	for _, c := range picked {
		ids = append(ids, c.ID)
	}
	return ids
}

func (e *Engine) examCardPrizes(s *types.RunState, nodeID string) []string {
	var pool []types.CardDef
	for _, c := range e.Cat.CardList {
		if c.EventOnly && !c.Negative {
			pool = append(pool, c)
		}
	}
	r := rng.NewScoped(s.Seed, fmt.Sprintf("event:%s:exam:prize", nodeID))
	picked := rng.PickUnique(r, pool, 3, cardWeight)
	ids := make([]string, 0, len(picked))
	for _, c := range picked {
		ids = append(ids, c.ID)
	}
	return ids
}

// eventResult is shorthand for jumping an event to a RESULT step.
func (e *Engine) eventResult(s *types.RunState, ev types.EventScreen, text string) *types.RunState {
	n := e.clone(s)
	ev.Step = types.StepResult
	ev.Data = types.ResultData{Text: text}
	n.NodeScreen = ev
	return n
}
