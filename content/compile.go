package content

import (
	"fmt"

	"github.com/hollis/corridors/types"
	lua "github.com/yuin/gopher-lua"
)

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or false if missing.
func getBool(tbl *lua.LTable, key string) bool {
	if b, ok := tbl.RawGetString(key).(lua.LBool); ok {
		return bool(b)
	}
	return false
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// getStrings returns an array field as a string slice, or nil if missing.
func getStrings(tbl *lua.LTable, key string) []string {
	arr, ok := tbl.RawGetString(key).(*lua.LTable)
	if !ok {
		return nil
	}
	var out []string
	for i := 1; i <= arr.MaxN(); i++ {
		if s, ok := arr.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// compile converts raw Lua tables into the immutable Catalog.
func compile(coll *collector) (*Catalog, error) {
	var cards []types.CardDef
	for _, raw := range coll.cards {
		cards = append(cards, types.CardDef{
			ID:        raw.id,
			Name:      getString(raw.table, "name"),
			Rarity:    types.Rarity(getString(raw.table, "rarity")),
			UpgradeID: getString(raw.table, "upgrade"),
			Negative:  getBool(raw.table, "negative"),
			EventOnly: getBool(raw.table, "event_only"),
		})
	}

	var enemies []types.EnemyDef
	for _, raw := range coll.enemies {
		enemies = append(enemies, types.EnemyDef{
			ID:     raw.id,
			Name:   getString(raw.table, "name"),
			HP:     getInt(raw.table, "hp"),
			Sprite: getString(raw.table, "sprite"),
		})
	}

	var encounters []types.EncounterDef
	for _, raw := range coll.encounters {
		encounters = append(encounters, types.EncounterDef{
			ID:        raw.id,
			EnemyIDs:  getStrings(raw.table, "enemies"),
			MinDepth:  getInt(raw.table, "min_depth"),
			MaxDepth:  getInt(raw.table, "max_depth"),
			Challenge: getBool(raw.table, "challenge"),
			Boss:      getBool(raw.table, "boss"),
			Weight:    getInt(raw.table, "weight"),
		})
	}

	var supplies []types.SupplyDef
	for _, raw := range coll.supplies {
		supplies = append(supplies, types.SupplyDef{
			ID:                 raw.id,
			Name:               getString(raw.table, "name"),
			Rarity:             types.Rarity(getString(raw.table, "rarity")),
			EventOnly:          getBool(raw.table, "event_only"),
			Desc:               getString(raw.table, "desc"),
			ShopDiscount:       getBool(raw.table, "shop_discount"),
			RestBoth:           getBool(raw.table, "rest_both"),
			BlockNegativeCards: getBool(raw.table, "block_negative_cards"),
			GoldMultiplier:     getNumber(raw.table, "gold_multiplier"),
			PostVictoryHeal:    getInt(raw.table, "post_victory_heal"),
			StartStrength:      getInt(raw.table, "start_strength"),
			ExtraCardOffers:    getInt(raw.table, "extra_card_offers"),
			UpgradeChanceBonus: getNumber(raw.table, "upgrade_chance_bonus"),
			OnGainMaxHP:        getInt(raw.table, "on_gain_max_hp"),
			OnGainGold:         getInt(raw.table, "on_gain_gold"),
		})
	}

	var consumables []types.ConsumableDef
	for _, raw := range coll.consumables {
		kind := types.ConsumableKind(getString(raw.table, "kind"))
		if kind == "" {
			kind = types.ConsumableBattle
		}
		consumables = append(consumables, types.ConsumableDef{
			ID:        raw.id,
			Name:      getString(raw.table, "name"),
			Rarity:    types.Rarity(getString(raw.table, "rarity")),
			EventOnly: getBool(raw.table, "event_only"),
			Kind:      kind,
			Amount:    getInt(raw.table, "amount"),
			GoldValue: getInt(raw.table, "gold_value"),
		})
	}

	var events []types.EventDef
	for _, raw := range coll.events {
		events = append(events, types.EventDef{
			ID:     raw.id,
			Name:   getString(raw.table, "name"),
			Weight: getInt(raw.table, "weight"),
		})
	}

	var questions []types.QuestionDef
	for _, raw := range coll.questions {
		q := types.QuestionDef{
			ID:      raw.id,
			Prompt:  getString(raw.table, "prompt"),
			Answer:  getString(raw.table, "answer"),
			Choices: getStrings(raw.table, "choices"),
			Tier:    getInt(raw.table, "tier"),
		}
		if q.Tier == 0 {
			q.Tier = 1
		}
		questions = append(questions, q)
	}

	var loadouts []types.LoadoutDef
	for _, raw := range coll.loadouts {
		loadouts = append(loadouts, types.LoadoutDef{
			ID:       raw.id,
			Name:     getString(raw.table, "name"),
			Sprite:   getString(raw.table, "sprite"),
			Deck:     getStrings(raw.table, "deck"),
			SupplyID: getString(raw.table, "supply"),
		})
	}

	// Duplicate IDs are a content bug, not something to repair silently.
	if id, ok := firstDup(coll.cards, coll.enemies, coll.encounters,
		coll.supplies, coll.consumables, coll.events, coll.questions, coll.loadouts); ok {
		return nil, fmt.Errorf("duplicate content id %q", id)
	}

	return NewCatalog(cards, enemies, encounters, supplies, consumables, events, questions, loadouts), nil
}

// firstDup finds a duplicated id within any single definition family.
func firstDup(families ...[]rawDef) (string, bool) {
	for _, fam := range families {
		seen := map[string]bool{}
		for _, d := range fam {
			if seen[d.id] {
				return d.id, true
			}
			seen[d.id] = true
		}
	}
	return "", false
}
