package engine

import (
	"testing"

	"github.com/hollis/corridors/types"
)

// examState parks a run at the exam intro.
func examState(t *testing.T, e *Engine, seed uint32) *types.RunState {
	t.Helper()
	s := freshRun(t, e, seed)
	nid := s.Map.Nodes[s.Map.StartID].Next[0]
	s = e.clone(s)
	s.CurrentNodeID = nid
	s.Screen = types.ScreenNode
	s.NodeScreen = e.buildExam(nid)
	return s
}

// answerCurrent answers the open exam question, correctly or not.
func answerCurrent(t *testing.T, e *Engine, s *types.RunState, correct bool) *types.RunState {
	t.Helper()
	ev := s.NodeScreen.(types.EventScreen)
	if ev.Step != types.StepExamQuestion {
		t.Fatalf("step = %s, want EXAM_QUESTION", ev.Step)
	}
	data := ev.Data.(types.ExamData)
	answer := "definitely wrong"
	if correct {
		answer = e.Cat.Questions[data.QuestionID].Answer
	}
	return e.Reduce(s, types.EventGateAnswer{Answer: answer})
}

// climb answers n questions correctly from the intro.
func climb(t *testing.T, e *Engine, s *types.RunState, rungs int) *types.RunState {
	t.Helper()
	s = e.Reduce(s, types.EventChoose{ChoiceID: "take"})
	for i := 0; i < rungs; i++ {
		s = answerCurrent(t, e, s, true)
		ev := s.NodeScreen.(types.EventScreen)
		if i < rungs-1 {
			if ev.Step != types.StepExamFeedback {
				t.Fatalf("after rung %d: step = %s", i+1, ev.Step)
			}
			s = e.Reduce(s, types.EventChoose{ChoiceID: "continue"})
		}
	}
	return s
}

func TestExam_FirstWrongEndsWithNothing(t *testing.T) {
	e := testEngine(t)
	s := examState(t, e, 61)
	goldBefore := s.Gold

	s = e.Reduce(s, types.EventChoose{ChoiceID: "take"})
	s = answerCurrent(t, e, s, false)

	ev := s.NodeScreen.(types.EventScreen)
	if ev.Step != types.StepResult {
		t.Fatalf("step = %s, want RESULT", ev.Step)
	}
	if s.Gold != goldBefore {
		t.Errorf("gold = %d, want unchanged %d", s.Gold, goldBefore)
	}
	if len(s.WrongAnswers) != 1 {
		t.Error("wrong answer not logged")
	}
}

func TestExam_Rung1CashOut(t *testing.T) {
	e := testEngine(t)
	s := examState(t, e, 61)
	goldBefore := s.Gold

	s = climb(t, e, s, 1)
	s = e.Reduce(s, types.EventChoose{ChoiceID: "cash_out"})
	if s.Gold != goldBefore+30 {
		t.Errorf("gold = %d, want %d", s.Gold, goldBefore+30)
	}
	if s.NodeScreen.(types.EventScreen).Step != types.StepResult {
		t.Error("cash out did not end the exam")
	}
}

func TestExam_Rung3CashOutOffersEventConsumables(t *testing.T) {
	e := testEngine(t)
	s := examState(t, e, 67)

	s = climb(t, e, s, 3)
	s = e.Reduce(s, types.EventChoose{ChoiceID: "cash_out"})

	ev := s.NodeScreen.(types.EventScreen)
	if ev.Step != types.StepConsumablePick {
		t.Fatalf("step = %s, want CONSUMABLE_PICK", ev.Step)
	}
	data := ev.Data.(types.ConsumablePickData)
	if len(data.OfferIDs) != 2 {
		t.Fatalf("offers = %v, want exactly 2", data.OfferIDs)
	}
	for _, id := range data.OfferIDs {
		if !e.Cat.Consumables[id].EventOnly {
			t.Errorf("offer %s is not event-only", id)
		}
	}

	picked := e.Reduce(s, types.EventPickConsumable{ConsumableID: data.OfferIDs[0]})
	if indexOf(picked.Consumables, data.OfferIDs[0]) < 0 {
		t.Error("picked consumable not granted")
	}
}

func TestExam_Rung3CashOutFullInventoryPaysGold(t *testing.T) {
	e := testEngine(t)
	s := examState(t, e, 67)
	s.Consumables = []string{"cons_juice_box", "cons_juice_box", "cons_juice_box"}

	s = climb(t, e, s, 3)
	goldBefore := s.Gold
	s = e.Reduce(s, types.EventChoose{ChoiceID: "cash_out"})
	data := s.NodeScreen.(types.EventScreen).Data.(types.ConsumablePickData)

	paid := e.Reduce(s, types.EventPickConsumable{ConsumableID: data.OfferIDs[0]})
	if paid.Gold != goldBefore+40 {
		t.Errorf("gold = %d, want %d fallback", paid.Gold, goldBefore+40)
	}
	if len(paid.Consumables) != 3 {
		t.Error("inventory changed despite being full")
	}
}

func TestExam_Rung4CardPick(t *testing.T) {
	e := testEngine(t)
	s := examState(t, e, 71)

	s = climb(t, e, s, 4)
	s = e.Reduce(s, types.EventChoose{ChoiceID: "cash_out"})

	ev := s.NodeScreen.(types.EventScreen)
	if ev.Step != types.StepCardPick {
		t.Fatalf("step = %s, want CARD_PICK", ev.Step)
	}
	data := ev.Data.(types.ExamData)
	if len(data.OfferIDs) != 3 {
		t.Fatalf("offers = %v, want 3", data.OfferIDs)
	}
	deckBefore := len(s.Deck)
	picked := e.Reduce(s, types.EventPickCard{CardID: data.OfferIDs[1]})
	if len(picked.Deck) != deckBefore+1 {
		t.Error("picked card not added")
	}
}

func TestExam_Rung5GrantsTopPrize(t *testing.T) {
	e := testEngine(t)
	s := examState(t, e, 73)

	s = climb(t, e, s, 5)
	if !hasSupply(s, "sup_honor_roll") {
		t.Fatal("top prize supply not granted")
	}
	if s.NodeScreen.(types.EventScreen).Step != types.StepResult {
		t.Error("exam did not end after rung 5")
	}
}

func TestExam_Rung5DuplicateConvertsToGold(t *testing.T) {
	e := testEngine(t)
	s := examState(t, e, 73)
	s.SupplyIDs = append(s.SupplyIDs, "sup_honor_roll")
	goldBefore := s.Gold

	s = climb(t, e, s, 5)
	if s.Gold != goldBefore+90 {
		t.Errorf("gold = %d, want %d", s.Gold, goldBefore+90)
	}
	if n := len(s.SupplyIDs); n != 1 {
		t.Errorf("supplies = %d, want no duplicate", n)
	}
}

func TestExam_MidLadderWrongLocksInCurrentTier(t *testing.T) {
	e := testEngine(t)
	s := examState(t, e, 79)
	goldBefore := s.Gold

	s = climb(t, e, s, 2)
	s = e.Reduce(s, types.EventChoose{ChoiceID: "continue"})
	s = answerCurrent(t, e, s, false)

	if s.NodeScreen.(types.EventScreen).Step != types.StepResult {
		t.Fatal("wrong answer did not end the ladder")
	}
	if s.Gold != goldBefore+60 {
		t.Errorf("gold = %d, want %d (rung-2 tier locked in on the wrong answer)", s.Gold, goldBefore+60)
	}
	if len(s.WrongAnswers) != 1 {
		t.Error("wrong answer not logged")
	}
}

func TestExam_WrongOnLastQuestionPaysCardPick(t *testing.T) {
	e := testEngine(t)
	s := examState(t, e, 83)

	s = climb(t, e, s, 4)
	s = e.Reduce(s, types.EventChoose{ChoiceID: "continue"})
	s = answerCurrent(t, e, s, false)

	ev := s.NodeScreen.(types.EventScreen)
	if ev.Step != types.StepCardPick {
		t.Fatalf("step = %s, want CARD_PICK (rung-4 tier on the wrong answer)", ev.Step)
	}
	if len(ev.Data.(types.ExamData).OfferIDs) != 3 {
		t.Error("card prize offers missing")
	}
	if hasSupply(s, "sup_honor_roll") {
		t.Error("failed fifth question still granted the top prize")
	}
}
