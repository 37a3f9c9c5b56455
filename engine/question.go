package engine

import (
	"strings"

	"github.com/hollis/corridors/engine/rng"
	"github.com/hollis/corridors/types"
)

// tierForDepth scales question difficulty with map depth.
func tierForDepth(depth int) int {
	switch {
	case depth <= 4:
		return 1
	case depth <= 9:
		return 2
	default:
		return 3
	}
}

// drawQuestion picks a depth-appropriate question from the stream.
func (e *Engine) drawQuestion(r *rng.Rand, depth int) (types.QuestionDef, bool) {
	pool := e.Cat.QuestionsByTier(tierForDepth(depth))
	return rng.Pick(r, pool, func(types.QuestionDef) int { return 1 })
}

// drawQuestionTier is drawQuestion with an explicit tier (exam ladder).
func (e *Engine) drawQuestionTier(r *rng.Rand, tier int) (types.QuestionDef, bool) {
	pool := e.Cat.QuestionsByTier(tier)
	return rng.Pick(r, pool, func(types.QuestionDef) int { return 1 })
}

// answerMatches compares an answer ignoring case and surrounding space.
func answerMatches(given, expected string) bool {
	return strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(expected))
}
