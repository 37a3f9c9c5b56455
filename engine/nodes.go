package engine

import "github.com/hollis/corridors/types"

// openNode resolves a node's screen and enters it. Opening a successor
// of the current node implicitly advances the run position; the node
// being left is locked behind the player.
func (e *Engine) openNode(s *types.RunState, act types.OpenNode) *types.RunState {
	if s.Screen != types.ScreenOverworld || s.Map == nil {
		return s
	}
	node, ok := s.Map.Nodes[act.NodeID]
	if !ok || node.Type == types.NodeStart {
		return s
	}
	if s.LockedNodeIDs[act.NodeID] {
		return s
	}
	if act.NodeID != s.CurrentNodeID && !isSuccessor(s, act.NodeID) {
		return s
	}

	n := e.clone(s)
	if act.NodeID != n.CurrentNodeID {
		e.advanceTo(n, act.NodeID)
	}

	screen := e.restoreScreen(n, act.NodeID)
	if screen == nil {
		screen = e.buildNodeScreen(n, node)
	}
	if screen == nil {
		return s
	}
	n.NodeScreen = screen
	n.Screen = types.ScreenNode
	return n
}

// closeNode returns to the overworld, caching screen state so the node
// resumes where it left off.
func (e *Engine) closeNode(s *types.RunState) *types.RunState {
	if s.Screen != types.ScreenNode || s.NodeScreen == nil {
		return s
	}
	if !canLeaveScreen(s.NodeScreen) {
		return s
	}
	n := e.clone(s)
	e.cacheScreen(n)
	n.NodeScreen = nil
	n.Screen = types.ScreenOverworld
	return n
}

// setCurrentNode moves the run position to a connected node without
// opening it.
func (e *Engine) setCurrentNode(s *types.RunState, act types.SetCurrentNode) *types.RunState {
	if s.Screen != types.ScreenOverworld || s.Map == nil {
		return s
	}
	if act.NodeID == s.CurrentNodeID {
		return s
	}
	if _, ok := s.Map.Nodes[act.NodeID]; !ok {
		return s
	}
	if s.LockedNodeIDs[act.NodeID] || !isSuccessor(s, act.NodeID) {
		return s
	}
	n := e.clone(s)
	e.advanceTo(n, act.NodeID)
	return n
}

// advanceTo commits a position change: any pending reward at the node
// being left is forfeited and the node locks behind the player.
func (e *Engine) advanceTo(n *types.RunState, nodeID string) {
	if n.Reward != nil {
		e.lockNode(n, n.Reward.NodeID)
		n.Reward = nil
		n.RewardNodeID = ""
	}
	e.lockNode(n, n.CurrentNodeID)
	n.CurrentNodeID = nodeID
}

// isSuccessor reports whether nodeID is directly reachable from the
// current node.
func isSuccessor(s *types.RunState, nodeID string) bool {
	cur, ok := s.Map.Nodes[s.CurrentNodeID]
	if !ok {
		return false
	}
	for _, id := range cur.Next {
		if id == nodeID {
			return true
		}
	}
	return false
}

// buildNodeScreen creates the fresh screen state for a node type.
func (e *Engine) buildNodeScreen(n *types.RunState, node *types.Node) types.NodeScreen {
	switch node.Type {
	case types.NodeFight, types.NodeChallenge, types.NodeBoss:
		return types.FightScreen{
			NodeID:    node.ID,
			Challenge: node.Type == types.NodeChallenge,
			Boss:      node.Type == types.NodeBoss,
		}
	case types.NodeShop:
		return e.buildShop(n, node.ID, false, 0)
	case types.NodeRest:
		return types.RestScreen{NodeID: node.ID}
	case types.NodeEvent:
		return e.buildEventScreen(n, node.ID)
	}
	return nil
}

// restoreScreen pulls a cached screen for re-entry, or nil when the node
// must be built fresh.
func (e *Engine) restoreScreen(n *types.RunState, nodeID string) types.NodeScreen {
	cached, ok := n.NodeScreenCache[nodeID]
	if !ok {
		return nil
	}
	sc := cloneScreen(cached)
	if ev, isEvent := sc.(types.EventScreen); isEvent && ev.Data == nil {
		// A cached event with no step payload cannot resume; rebuild.
		delete(n.NodeScreenCache, nodeID)
		return nil
	}
	return sc
}

// cacheScreen stores the open screen so reopening the node resumes
// exactly where the player left off.
func (e *Engine) cacheScreen(n *types.RunState) {
	id := screenNodeID(n.NodeScreen)
	if id == "" || n.LockedNodeIDs[id] {
		return
	}
	n.NodeScreenCache[id] = cloneScreen(n.NodeScreen)
}

// screenNodeID extracts the owning node from any screen variant.
func screenNodeID(ns types.NodeScreen) string {
	switch sc := ns.(type) {
	case types.FightScreen:
		return sc.NodeID
	case types.ShopScreen:
		return sc.NodeID
	case types.RestScreen:
		return sc.NodeID
	case types.EventScreen:
		return sc.NodeID
	}
	return ""
}

// canLeaveScreen blocks exits the run must not allow: a revealed ambush
// or an unanswered locker question pins the player in the hallway.
func canLeaveScreen(ns types.NodeScreen) bool {
	ev, ok := ns.(types.EventScreen)
	if !ok {
		return true
	}
	hd, ok := ev.Data.(types.HallwayData)
	if !ok {
		return true
	}
	if hd.PendingIdx >= 0 {
		return false
	}
	for _, l := range hd.Lockers {
		if l.Kind == types.LockerAmbush && l.Opened && !l.Collected {
			return false
		}
	}
	return true
}

func indexOf(items []string, v string) int {
	for i, it := range items {
		if it == v {
			return i
		}
	}
	return -1
}

func hasSupply(n *types.RunState, supplyID string) bool {
	return indexOf(n.SupplyIDs, supplyID) >= 0
}
