package engine

import "github.com/hollis/corridors/types"

// clone produces the next snapshot. Old snapshots stay valid: every
// mutable collection is copied, node screens are deep-copied, and the
// one-shot flash signal is reset. The map is immutable and shared; the
// battle sub-state is module-owned and replaced wholesale, never edited.
func (e *Engine) clone(s *types.RunState) *types.RunState {
	n := *s

	n.LockedNodeIDs = copyBoolMap(s.LockedNodeIDs)
	n.AppliedSupplyIDs = copyBoolMap(s.AppliedSupplyIDs)
	n.UsedEncounterIDs = copyBoolMap(s.UsedEncounterIDs)
	n.HallwayPlays = copyIntMap(s.HallwayPlays)

	n.Deck = append([]string{}, s.Deck...)
	n.Consumables = append([]string{}, s.Consumables...)
	n.SupplyIDs = append([]string{}, s.SupplyIDs...)
	n.WrongAnswers = append([]types.WrongAnswer{}, s.WrongAnswers...)

	// Cache values are never mutated in place, so a shallow map copy is
	// enough to keep old snapshots intact.
	n.NodeScreenCache = make(map[string]types.NodeScreen, len(s.NodeScreenCache))
	for k, v := range s.NodeScreenCache {
		n.NodeScreenCache[k] = v
	}

	n.NodeScreen = cloneScreen(s.NodeScreen)

	if s.Reward != nil {
		r := *s.Reward
		r.CardOfferIDs = append([]string{}, s.Reward.CardOfferIDs...)
		n.Reward = &r
	}

	n.FlashSupplyIDs = nil

	return &n
}

func copyBoolMap(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyIntMap(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// cloneScreen deep-copies a node screen variant.
func cloneScreen(ns types.NodeScreen) types.NodeScreen {
	switch sc := ns.(type) {
	case nil:
		return nil
	case types.FightScreen:
		return sc
	case types.RestScreen:
		return sc
	case types.ShopScreen:
		return cloneShop(sc)
	case types.EventScreen:
		sc.Data = cloneEventData(sc.Data)
		return sc
	default:
		return ns
	}
}

func cloneShop(sc types.ShopScreen) types.ShopScreen {
	sc.Offers = append([]types.ShopOffer{}, sc.Offers...)
	return sc
}

func cloneEventData(d types.EventData) types.EventData {
	switch data := d.(type) {
	case nil:
		return nil
	case types.IntroData:
		data.Choices = append([]types.EventChoice{}, data.Choices...)
		return data
	case types.HallwayData:
		data.Lockers = append([]types.Locker{}, data.Lockers...)
		data.SupplyIDsGained = append([]string{}, data.SupplyIDsGained...)
		return data
	case types.ExamData:
		data.OfferIDs = append([]string{}, data.OfferIDs...)
		return data
	case types.VendorData:
		if data.Shop != nil {
			shop := cloneShop(*data.Shop)
			data.Shop = &shop
		}
		return data
	case types.ConsumablePickData:
		data.OfferIDs = append([]string{}, data.OfferIDs...)
		return data
	default:
		// GateData, ResultData, CardPickData are plain values.
		return d
	}
}
