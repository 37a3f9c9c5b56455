package engine

import (
	"github.com/hollis/corridors/content"
	"github.com/hollis/corridors/engine/rng"
	"github.com/hollis/corridors/types"
)

const (
	rewardGoldBase      = 20
	rewardGoldPerDepth  = 2
	challengeGoldBonus  = 25
	baseCardOffers      = 3
	baseUpgradeChance   = 0.1
	rewardConsumableOdd = 0.35
)

// buildReward rolls the post-victory loot offer. The draw is scoped to
// the node, so replaying a loaded state reproduces the same offer.
func (e *Engine) buildReward(n *types.RunState, final *types.BattleState, depth int, challenge bool, hooks content.SupplyHooks) types.Reward {
	r := rng.NewScoped(n.Seed, "reward:"+final.NodeID)

	base := rewardGoldBase + depth*rewardGoldPerDepth + final.GoldEarned
	if challenge {
		base += challengeGoldBonus
	}

	rw := types.Reward{
		NodeID:       final.NodeID,
		Gold:         int(float64(base) * hooks.GoldMultiplier),
		CardOfferIDs: e.drawCardOffers(r, challenge, hooks),
	}
	if challenge {
		if sup, ok := e.drawSupplyOffer(n, r); ok {
			rw.SupplyID = sup
		}
	}
	if r.Chance(rewardConsumableOdd) {
		if cons, ok := e.drawConsumableOffer(r); ok {
			rw.ConsumableID = cons
		}
	}
	return rw
}

// drawCardOffers picks the card choices. Challenge fights guarantee at
// least one rare-or-better offer; each offer may roll as its upgraded
// variant.
func (e *Engine) drawCardOffers(r *rng.Rand, challenge bool, hooks content.SupplyHooks) []string {
	upgraded := e.upgradeTargets()
	var pool []types.CardDef
	for _, c := range e.Cat.CardList {
		if c.Negative || c.EventOnly || upgraded[c.ID] {
			continue
		}
		pool = append(pool, c)
	}

	picked := rng.PickUnique(r, pool, baseCardOffers+hooks.ExtraCardOffers, cardWeight)

	if challenge && len(picked) > 0 && !hasRarePlus(picked) {
		var rares []types.CardDef
		for _, c := range pool {
			if (c.Rarity == types.RarityRare || c.Rarity == types.RarityUltra) && !containsCard(picked, c.ID) {
				rares = append(rares, c)
			}
		}
		if rc, ok := rng.Pick(r, rares, cardWeight); ok {
			picked[len(picked)-1] = rc
		}
	}

	upChance := baseUpgradeChance + hooks.UpgradeChanceBonus
	ids := make([]string, 0, len(picked))
	for _, c := range picked {
		id := c.ID
		if c.UpgradeID != "" && r.Chance(upChance) {
			id = c.UpgradeID
		}
		ids = append(ids, id)
	}
	return ids
}

func hasRarePlus(cards []types.CardDef) bool {
	for _, c := range cards {
		if c.Rarity == types.RarityRare || c.Rarity == types.RarityUltra {
			return true
		}
	}
	return false
}

func containsCard(cards []types.CardDef, id string) bool {
	for _, c := range cards {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (e *Engine) drawSupplyOffer(n *types.RunState, r *rng.Rand) (string, bool) {
	var pool []types.SupplyDef
	for _, sup := range e.Cat.SupplyList {
		if sup.EventOnly || hasSupply(n, sup.ID) {
			continue
		}
		pool = append(pool, sup)
	}
	sup, ok := rng.Pick(r, pool, supplyWeight)
	return sup.ID, ok
}

func (e *Engine) drawConsumableOffer(r *rng.Rand) (string, bool) {
	var pool []types.ConsumableDef
	for _, c := range e.Cat.ConsumableList {
		if c.EventOnly {
			continue
		}
		pool = append(pool, c)
	}
	cons, ok := rng.Pick(r, pool, consumableWeight)
	return cons.ID, ok
}

// pendingReward guards the reward handlers.
func pendingReward(s *types.RunState) (*types.Reward, bool) {
	if s.Screen != types.ScreenReward || s.Reward == nil {
		return nil, false
	}
	return s.Reward, true
}

func (e *Engine) rewardConfirmCard(s *types.RunState, act types.RewardConfirmCard) *types.RunState {
	rw, ok := pendingReward(s)
	if !ok || rw.CardConfirmed {
		return s
	}
	if indexOf(rw.CardOfferIDs, act.CardID) < 0 {
		return s
	}
	n := e.clone(s)
	e.addCard(n, act.CardID)
	n.Reward.CardConfirmed = true
	n.Reward.ChosenCardID = act.CardID
	return n
}

func (e *Engine) rewardSkipCards(s *types.RunState) *types.RunState {
	rw, ok := pendingReward(s)
	if !ok || rw.CardConfirmed {
		return s
	}
	n := e.clone(s)
	n.Reward.CardConfirmed = true
	return n
}

func (e *Engine) rewardClaimGold(s *types.RunState) *types.RunState {
	rw, ok := pendingReward(s)
	if !ok || rw.GoldClaimed {
		return s
	}
	n := e.clone(s)
	e.gainGold(n, rw.Gold)
	n.Reward.GoldClaimed = true
	return n
}

func (e *Engine) rewardClaimConsumable(s *types.RunState) *types.RunState {
	rw, ok := pendingReward(s)
	if !ok || rw.ConsumableID == "" || rw.ConsumableClaimed {
		return s
	}
	// A full inventory refuses the claim; discard something first.
	if len(s.Consumables) >= maxConsumables {
		return s
	}
	n := e.clone(s)
	e.addConsumable(n, rw.ConsumableID)
	n.Reward.ConsumableClaimed = true
	return n
}

func (e *Engine) rewardClaimSupply(s *types.RunState) *types.RunState {
	rw, ok := pendingReward(s)
	if !ok || rw.SupplyID == "" || rw.SupplyClaimed {
		return s
	}
	n := e.clone(s)
	e.addSupply(n, rw.SupplyID)
	n.Reward.SupplyClaimed = true
	return n
}

// rewardContinue closes the loot screen; unclaimed components are
// forfeited and the node locks.
func (e *Engine) rewardContinue(s *types.RunState) *types.RunState {
	if _, ok := pendingReward(s); !ok {
		return s
	}
	n := e.clone(s)
	e.lockNode(n, n.Reward.NodeID)
	n.Reward = nil
	n.RewardNodeID = ""
	n.Screen = types.ScreenOverworld
	return n
}
