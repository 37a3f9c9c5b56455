package engine

import (
	"testing"

	"github.com/hollis/corridors/types"
)

func TestOpenNode_SuccessorAdvancesAndLocks(t *testing.T) {
	e := testEngine(t)
	s := freshRun(t, e, 21)

	next := s.Map.Nodes[s.Map.StartID].Next[0]
	opened := e.Reduce(s, types.OpenNode{NodeID: next})
	if opened == s {
		t.Fatal("opening a successor was rejected")
	}
	if opened.Screen != types.ScreenNode || opened.CurrentNodeID != next {
		t.Fatalf("screen=%s current=%s, want NODE at %s", opened.Screen, opened.CurrentNodeID, next)
	}
	if opened.NodeScreen == nil {
		t.Fatal("node opened with no screen state")
	}
}

func TestOpenNode_RejectsUnreachable(t *testing.T) {
	e := testEngine(t)
	s := freshRun(t, e, 21)

	// The boss is nobody's direct successor from the start.
	if got := e.Reduce(s, types.OpenNode{NodeID: s.Map.BossID}); got != s {
		t.Error("opened a non-successor node")
	}
	if got := e.Reduce(s, types.OpenNode{NodeID: "d99_n0"}); got != s {
		t.Error("opened a nonexistent node")
	}
}

func TestOpenNode_RejectsLocked(t *testing.T) {
	e := testEngine(t)
	s := freshRun(t, e, 21)
	next := s.Map.Nodes[s.Map.StartID].Next[0]

	s = e.clone(s)
	s.LockedNodeIDs[next] = true
	if got := e.Reduce(s, types.OpenNode{NodeID: next}); got != s {
		t.Error("opened a locked node")
	}
}

func TestSetCurrentNode_LocksNodeLeft(t *testing.T) {
	e := testEngine(t)
	s := freshRun(t, e, 33)

	first := s.Map.Nodes[s.Map.StartID].Next[0]
	s = e.Reduce(s, types.SetCurrentNode{NodeID: first})
	if s.CurrentNodeID != first {
		t.Fatalf("current = %s, want %s", s.CurrentNodeID, first)
	}

	second := s.Map.Nodes[first].Next[0]
	s = e.Reduce(s, types.SetCurrentNode{NodeID: second})
	if !s.LockedNodeIDs[first] {
		t.Error("node left behind was not locked")
	}
}

// Partial progress in a multi-step event must survive CLOSE_NODE and
// resume at the same step, not a fresh INTRO.
func TestNodeReentry_ResumesEventStep(t *testing.T) {
	e := testEngine(t)
	s := freshRun(t, e, 17)

	nid := s.Map.Nodes[s.Map.StartID].Next[0]
	s = e.clone(s)
	s.CurrentNodeID = nid
	s.Screen = types.ScreenNode
	s.NodeScreen = e.buildExam(nid)

	// Climb one rung.
	s = e.Reduce(s, types.EventChoose{ChoiceID: "take"})
	data := s.NodeScreen.(types.EventScreen).Data.(types.ExamData)
	q := e.Cat.Questions[data.QuestionID]
	s = e.Reduce(s, types.EventGateAnswer{Answer: q.Answer})

	ev := s.NodeScreen.(types.EventScreen)
	if ev.Step != types.StepExamFeedback {
		t.Fatalf("step = %s, want EXAM_FEEDBACK", ev.Step)
	}

	closed := e.Reduce(s, types.CloseNode{})
	if closed.Screen != types.ScreenOverworld {
		t.Fatalf("screen = %s, want OVERWORLD", closed.Screen)
	}

	reopened := e.Reduce(closed, types.OpenNode{NodeID: nid})
	got, ok := reopened.NodeScreen.(types.EventScreen)
	if !ok || got.Step != types.StepExamFeedback {
		t.Fatalf("resumed step = %v, want EXAM_FEEDBACK", reopened.NodeScreen)
	}
	if d := got.Data.(types.ExamData); d.Rung != 1 {
		t.Errorf("resumed rung = %d, want 1", d.Rung)
	}
}

func TestCloseNode_CachesShopState(t *testing.T) {
	e := testEngine(t)
	s := freshRun(t, e, 29)

	nid := s.Map.Nodes[s.Map.StartID].Next[0]
	s = e.clone(s)
	s.CurrentNodeID = nid
	s.Screen = types.ScreenNode
	s.Gold = 500
	s.NodeScreen = e.buildShop(s, nid, false, 0)

	bought := e.Reduce(s, types.ShopBuy{Index: 0})
	if bought == s {
		t.Fatal("buy was rejected")
	}

	closed := e.Reduce(bought, types.CloseNode{})
	reopened := e.Reduce(closed, types.OpenNode{NodeID: nid})

	shop := reopened.NodeScreen.(types.ShopScreen)
	if !shop.Offers[0].Bought {
		t.Error("bought marker lost across close/reopen")
	}
}
