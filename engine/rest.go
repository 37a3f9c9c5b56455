package engine

import "github.com/hollis/corridors/types"

// Rest sites heal a fraction of max HP or upgrade one card. The two are
// exclusive unless a rest-both supply is owned.

const restHealRatio = 0.3

func (e *Engine) restHeal(s *types.RunState) *types.RunState {
	if s.Screen != types.ScreenNode {
		return s
	}
	rest, ok := s.NodeScreen.(types.RestScreen)
	if !ok || rest.Healed {
		return s
	}
	if rest.Upgraded && !e.Cat.Hooks(s.SupplyIDs).RestBoth {
		return s
	}
	n := e.clone(s)
	e.applyHeal(n, int(float64(n.MaxHP)*restHealRatio))
	rest.Healed = true
	n.NodeScreen = rest
	return n
}

func (e *Engine) restUpgrade(s *types.RunState, act types.RestUpgrade) *types.RunState {
	if s.Screen != types.ScreenNode {
		return s
	}
	rest, ok := s.NodeScreen.(types.RestScreen)
	if !ok || rest.Upgraded {
		return s
	}
	if rest.Healed && !e.Cat.Hooks(s.SupplyIDs).RestBoth {
		return s
	}
	def, ok := e.Cat.Cards[act.CardID]
	if !ok || def.UpgradeID == "" {
		return s
	}
	idx := indexOf(s.Deck, act.CardID)
	if idx < 0 {
		return s
	}
	n := e.clone(s)
	n.Deck[idx] = def.UpgradeID
	rest.Upgraded = true
	n.NodeScreen = rest
	return n
}
