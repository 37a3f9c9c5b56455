package content

import (
	"fmt"
	"strings"
)

// ValidationError collects all referential-integrity errors found in a
// content set.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("content validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validate checks the compiled catalog for referential integrity.
func validate(cat *Catalog) error {
	ve := &ValidationError{}

	for _, card := range cat.CardList {
		if card.UpgradeID != "" {
			if _, ok := cat.Cards[card.UpgradeID]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"card %q upgrade target %q not defined", card.ID, card.UpgradeID))
			}
		}
	}

	for _, enc := range cat.EncounterList {
		if len(enc.EnemyIDs) == 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("encounter %q has no enemies", enc.ID))
		}
		for _, eid := range enc.EnemyIDs {
			if _, ok := cat.Enemies[eid]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"encounter %q references undefined enemy %q", enc.ID, eid))
			}
		}
	}

	for _, lo := range cat.LoadoutList {
		if len(lo.Deck) == 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("loadout %q has an empty deck", lo.ID))
		}
		for _, cid := range lo.Deck {
			if _, ok := cat.Cards[cid]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"loadout %q deck references undefined card %q", lo.ID, cid))
			}
		}
		if lo.SupplyID != "" {
			if _, ok := cat.Supplies[lo.SupplyID]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"loadout %q references undefined supply %q", lo.ID, lo.SupplyID))
			}
		}
	}

	for _, q := range cat.QuestionList {
		if q.Prompt == "" || q.Answer == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("question %q needs prompt and answer", q.ID))
		}
		if q.Tier < 1 || q.Tier > 3 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("question %q tier %d outside 1..3", q.ID, q.Tier))
		}
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}
