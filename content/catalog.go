// Package content loads Lua content tables into immutable Go catalogs.
// The Lua VM is discarded after loading; zero Lua at runtime.
package content

import (
	"sort"

	"github.com/hollis/corridors/types"
)

// Catalog is the immutable read-only content catalog. Lookup maps are
// built once at load time and passed by reference into the reducer.
type Catalog struct {
	Cards       map[string]types.CardDef
	Enemies     map[string]types.EnemyDef
	Encounters  map[string]types.EncounterDef
	Supplies    map[string]types.SupplyDef
	Consumables map[string]types.ConsumableDef
	Events      map[string]types.EventDef
	Questions   map[string]types.QuestionDef
	Loadouts    map[string]types.LoadoutDef

	// Stable-ordered lists (sorted by ID) for deterministic iteration.
	CardList       []types.CardDef
	EncounterList  []types.EncounterDef
	SupplyList     []types.SupplyDef
	ConsumableList []types.ConsumableDef
	EventList      []types.EventDef
	QuestionList   []types.QuestionDef
	LoadoutList    []types.LoadoutDef
}

// NewCatalog builds lookup maps and stable lists from flat def slices.
func NewCatalog(
	cards []types.CardDef,
	enemies []types.EnemyDef,
	encounters []types.EncounterDef,
	supplies []types.SupplyDef,
	consumables []types.ConsumableDef,
	events []types.EventDef,
	questions []types.QuestionDef,
	loadouts []types.LoadoutDef,
) *Catalog {
	c := &Catalog{
		Cards:       make(map[string]types.CardDef, len(cards)),
		Enemies:     make(map[string]types.EnemyDef, len(enemies)),
		Encounters:  make(map[string]types.EncounterDef, len(encounters)),
		Supplies:    make(map[string]types.SupplyDef, len(supplies)),
		Consumables: make(map[string]types.ConsumableDef, len(consumables)),
		Events:      make(map[string]types.EventDef, len(events)),
		Questions:   make(map[string]types.QuestionDef, len(questions)),
		Loadouts:    make(map[string]types.LoadoutDef, len(loadouts)),
	}

	for _, d := range cards {
		c.Cards[d.ID] = d
	}
	for _, d := range enemies {
		c.Enemies[d.ID] = d
	}
	for _, d := range encounters {
		c.Encounters[d.ID] = d
	}
	for _, d := range supplies {
		c.Supplies[d.ID] = d
	}
	for _, d := range consumables {
		c.Consumables[d.ID] = d
	}
	for _, d := range events {
		c.Events[d.ID] = d
	}
	for _, d := range questions {
		c.Questions[d.ID] = d
	}
	for _, d := range loadouts {
		c.Loadouts[d.ID] = d
	}

	c.CardList = sortedVals(c.Cards, func(d types.CardDef) string { return d.ID })
	c.EncounterList = sortedVals(c.Encounters, func(d types.EncounterDef) string { return d.ID })
	c.SupplyList = sortedVals(c.Supplies, func(d types.SupplyDef) string { return d.ID })
	c.ConsumableList = sortedVals(c.Consumables, func(d types.ConsumableDef) string { return d.ID })
	c.EventList = sortedVals(c.Events, func(d types.EventDef) string { return d.ID })
	c.QuestionList = sortedVals(c.Questions, func(d types.QuestionDef) string { return d.ID })
	c.LoadoutList = sortedVals(c.Loadouts, func(d types.LoadoutDef) string { return d.ID })

	return c
}

func sortedVals[T any](m map[string]T, id func(T) string) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return id(out[i]) < id(out[j]) })
	return out
}

// SupplyHooks is the aggregate of all passive hooks across a set of owned
// supplies, read by the reducer instead of switching on supply IDs.
type SupplyHooks struct {
	ShopDiscount       bool
	RestBoth           bool
	BlockNegativeCards bool
	GoldMultiplier     float64 // multiplicative, 1.0 when no modifier owned
	PostVictoryHeal    int
	StartStrength      int
	ExtraCardOffers    int
	UpgradeChanceBonus float64
}

// Hooks aggregates the passive hooks of the given owned supplies.
func (c *Catalog) Hooks(supplyIDs []string) SupplyHooks {
	h := SupplyHooks{GoldMultiplier: 1.0}
	for _, id := range supplyIDs {
		d, ok := c.Supplies[id]
		if !ok {
			continue
		}
		h.ShopDiscount = h.ShopDiscount || d.ShopDiscount
		h.RestBoth = h.RestBoth || d.RestBoth
		h.BlockNegativeCards = h.BlockNegativeCards || d.BlockNegativeCards
		if d.GoldMultiplier > 0 {
			h.GoldMultiplier *= d.GoldMultiplier
		}
		h.PostVictoryHeal += d.PostVictoryHeal
		h.StartStrength += d.StartStrength
		h.ExtraCardOffers += d.ExtraCardOffers
		h.UpgradeChanceBonus += d.UpgradeChanceBonus
	}
	return h
}

// QuestionsByTier returns the stable-ordered question pool for a tier.
// An empty tier falls back to the full pool so a sparse content set still
// produces a question.
func (c *Catalog) QuestionsByTier(tier int) []types.QuestionDef {
	var out []types.QuestionDef
	for _, q := range c.QuestionList {
		if q.Tier == tier {
			out = append(out, q)
		}
	}
	if len(out) == 0 {
		return c.QuestionList
	}
	return out
}

// EncountersFor returns the stable-ordered encounter pool for a depth and
// fight class.
func (c *Catalog) EncountersFor(depth int, challenge, boss bool) []types.EncounterDef {
	var out []types.EncounterDef
	for _, e := range c.EncounterList {
		if e.Boss != boss || e.Challenge != challenge {
			continue
		}
		if boss {
			out = append(out, e)
			continue
		}
		if depth >= e.MinDepth && (e.MaxDepth == 0 || depth <= e.MaxDepth) {
			out = append(out, e)
		}
	}
	return out
}
