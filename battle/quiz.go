// Package battle implements the consumed battle-module contract. The
// run core delegates fight creation here and folds the results back in
// through BATTLE_UPDATE / BATTLE_ENDED; it never inspects the mechanics.
//
// Quiz is the shipped module: each turn poses a question, a correct
// answer lands a hit, a wrong one takes one. Everything is derived
// deterministically from the battle seed and the current HP totals, so
// a battle resumed from a saved state replays identically.
package battle

import (
	"fmt"
	"strings"

	"github.com/hollis/corridors/content"
	"github.com/hollis/corridors/engine/rng"
	"github.com/hollis/corridors/types"
)

// Quiz is the question-driven battle module.
type Quiz struct {
	Cat *content.Catalog
}

func NewQuiz(cat *content.Catalog) *Quiz {
	return &Quiz{Cat: cat}
}

// Start creates the opening battle state.
func (q *Quiz) Start(p types.BattleStartParams) *types.BattleState {
	if len(p.Enemies) == 0 {
		return nil
	}
	enemies := make([]types.EnemyState, len(p.Enemies))
	copy(enemies, p.Enemies)
	return &types.BattleState{
		PlayerHP: p.PlayerHPStart,
		Enemies:  enemies,
	}
}

// Question returns the question posed this turn. The draw is keyed on
// the battle's HP totals, which change every turn, so each turn gets a
// fresh-but-reproducible question.
func (q *Quiz) Question(seed uint32, b *types.BattleState) (types.QuestionDef, bool) {
	r := rng.New(rng.SubSeed(seed, turnSalt(b)))
	pool := q.Cat.QuestionsByTier(q.tierFor(b))
	return rng.Pick(r, pool, func(types.QuestionDef) int { return 1 })
}

// Answer resolves one turn and returns the next battle state. The input
// state is not modified.
func (q *Quiz) Answer(seed uint32, b *types.BattleState, answer string) *types.BattleState {
	if b == nil || b.Over {
		return b
	}
	n := cloneBattle(b)

	question, ok := q.Question(seed, b)
	if !ok {
		// No questions loaded: treat every turn as a hit.
		q.playerHits(n)
	} else if strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(question.Answer)) {
		q.playerHits(n)
	} else {
		n.Meta.FailedQuestion = &types.WrongAnswer{
			Prompt:   question.Prompt,
			Given:    answer,
			Expected: question.Answer,
			Where:    "battle:" + n.NodeID,
		}
		q.enemyHits(n)
	}

	q.settle(n)
	return n
}

// Flee ends the battle as a survived loss: the player keeps partial
// gold and walks away.
func (q *Quiz) Flee(b *types.BattleState) *types.BattleState {
	if b == nil || b.Over {
		return b
	}
	n := cloneBattle(b)
	n.Over = true
	n.Victory = false
	return n
}

func (q *Quiz) playerHits(n *types.BattleState) {
	dmg := 6 + n.Meta.StartStrength
	for i := range n.Enemies {
		if n.Enemies[i].HP <= 0 {
			continue
		}
		n.Enemies[i].HP -= dmg
		if n.Enemies[i].HP <= 0 {
			n.Enemies[i].HP = 0
			n.GoldEarned += 8 + n.Enemies[i].MaxHP/4
		}
		return
	}
}

func (q *Quiz) enemyHits(n *types.BattleState) {
	for _, en := range n.Enemies {
		if en.HP > 0 {
			n.PlayerHP -= 4 + en.MaxHP/8
			return
		}
	}
}

func (q *Quiz) settle(n *types.BattleState) {
	if n.PlayerHP <= 0 {
		n.PlayerHP = 0
		n.Over = true
		n.Victory = false
		return
	}
	for _, en := range n.Enemies {
		if en.HP > 0 {
			return
		}
	}
	n.Over = true
	n.Victory = true
}

// tierFor scales question difficulty with the opposition's size.
func (q *Quiz) tierFor(b *types.BattleState) int {
	total := 0
	for _, en := range b.Enemies {
		total += en.MaxHP
	}
	switch {
	case total <= 20:
		return 1
	case total <= 45:
		return 2
	default:
		return 3
	}
}

// turnSalt changes whenever any HP total changes, which every resolved
// turn guarantees.
func turnSalt(b *types.BattleState) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "turn:%s:%d", b.NodeID, b.PlayerHP)
	for _, en := range b.Enemies {
		fmt.Fprintf(&sb, ":%d", en.HP)
	}
	return sb.String()
}

func cloneBattle(b *types.BattleState) *types.BattleState {
	n := *b
	n.Enemies = make([]types.EnemyState, len(b.Enemies))
	copy(n.Enemies, b.Enemies)
	meta := b.Meta
	meta.SupplyIDs = append([]string{}, b.Meta.SupplyIDs...)
	meta.DeckAdditions = append([]string{}, b.Meta.DeckAdditions...)
	meta.ProcSupplyIDs = nil
	meta.FailedQuestion = nil
	n.Meta = meta
	return &n
}
