package battle

import "github.com/hollis/corridors/types"

// Scripted is a canned battle module for tests and content QA: Start
// returns whatever Outcome builds. With no Outcome set it produces a
// plain opening state, same as Quiz.
type Scripted struct {
	Outcome func(types.BattleStartParams) *types.BattleState
}

func (sc *Scripted) Start(p types.BattleStartParams) *types.BattleState {
	if sc.Outcome != nil {
		return sc.Outcome(p)
	}
	enemies := make([]types.EnemyState, len(p.Enemies))
	copy(enemies, p.Enemies)
	return &types.BattleState{
		PlayerHP: p.PlayerHPStart,
		Enemies:  enemies,
	}
}
