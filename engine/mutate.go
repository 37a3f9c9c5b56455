package engine

import "github.com/hollis/corridors/types"

// Centralized state mutation. Handlers never touch HP, gold, deck,
// supplies, or the wrong-answer log directly; everything funnels through
// these helpers so the invariants hold no matter which branch mutates.

const (
	maxConsumables      = 3
	maxWrongAnswers     = 200
	startingGold        = 100
	startingHP          = 40
	duplicateSupplyGold = 15 // fallback when a granted supply is already owned
)

// clampAndMaybeDefeat enforces 0 <= hp <= maxHp and transitions to DEFEAT
// exactly once when hp hits zero outside the terminal/title screens.
// Every HP mutation routes through here.
func (e *Engine) clampAndMaybeDefeat(n *types.RunState) bool {
	if n.HP > n.MaxHP {
		n.HP = n.MaxHP
	}
	if n.HP < 0 {
		n.HP = 0
	}
	if n.HP > 0 {
		return false
	}
	switch n.Screen {
	case types.ScreenTitle, types.ScreenVictory, types.ScreenDefeat:
		return n.Screen == types.ScreenDefeat
	}
	n.Screen = types.ScreenDefeat
	n.Battle = nil
	n.NodeScreen = nil
	n.Reward = nil
	n.RewardNodeID = ""
	return true
}

// applyDamage reduces HP and returns true when the run just ended.
func (e *Engine) applyDamage(n *types.RunState, amount int) bool {
	if amount <= 0 {
		return false
	}
	n.HP -= amount
	return e.clampAndMaybeDefeat(n)
}

// applyHeal raises HP (clamped) and returns the amount actually healed.
func (e *Engine) applyHeal(n *types.RunState, amount int) int {
	if amount <= 0 {
		return 0
	}
	before := n.HP
	n.HP += amount
	e.clampAndMaybeDefeat(n)
	return n.HP - before
}

// gainGold adds gold. Negative amounts are a programming error and are
// ignored; use spendGold / loseGold for reductions.
func (e *Engine) gainGold(n *types.RunState, amount int) {
	if amount > 0 {
		n.Gold += amount
	}
}

// spendGold deducts a price and reports whether the state could afford it.
func (e *Engine) spendGold(n *types.RunState, price int) bool {
	if price < 0 || n.Gold < price {
		return false
	}
	n.Gold -= price
	return true
}

// loseGold removes up to amount gold (floors at zero) and returns the
// amount actually lost.
func (e *Engine) loseGold(n *types.RunState, amount int) int {
	if amount <= 0 {
		return 0
	}
	lost := amount
	if lost > n.Gold {
		lost = n.Gold
	}
	n.Gold -= lost
	return lost
}

// addCard appends a card to the deck. Negative cards are blocked outright
// when a blocking supply is owned; the block is surfaced as a one-shot
// flash on that supply. Returns whether the card was added.
func (e *Engine) addCard(n *types.RunState, cardID string) bool {
	def, ok := e.Cat.Cards[cardID]
	if !ok {
		return false
	}
	if def.Negative && e.Cat.Hooks(n.SupplyIDs).BlockNegativeCards {
		e.flashBlockingSupply(n)
		return false
	}
	n.Deck = append(n.Deck, cardID)
	return true
}

// removeCard removes one instance of cardID, refusing to empty the deck.
func (e *Engine) removeCard(n *types.RunState, cardID string) bool {
	if len(n.Deck) <= 1 {
		return false
	}
	for i, id := range n.Deck {
		if id == cardID {
			n.Deck = append(n.Deck[:i], n.Deck[i+1:]...)
			return true
		}
	}
	return false
}

// addSupply grants a supply, firing its one-time "on gain" effects at
// most once per run. Duplicate grants convert to a small gold refund and
// report false.
func (e *Engine) addSupply(n *types.RunState, supplyID string) bool {
	def, ok := e.Cat.Supplies[supplyID]
	if !ok {
		return false
	}
	for _, id := range n.SupplyIDs {
		if id == supplyID {
			e.gainGold(n, duplicateSupplyGold)
			return false
		}
	}
	n.SupplyIDs = append(n.SupplyIDs, supplyID)

	if !n.AppliedSupplyIDs[supplyID] {
		n.AppliedSupplyIDs[supplyID] = true
		if def.OnGainMaxHP != 0 {
			n.MaxHP += def.OnGainMaxHP
			e.applyHeal(n, def.OnGainMaxHP)
		}
		e.gainGold(n, def.OnGainGold)
	}
	return true
}

// addConsumable adds to the inventory, respecting the cap. When full, the
// item converts to its gold value instead. Returns whether it was held.
func (e *Engine) addConsumable(n *types.RunState, consID string) bool {
	def, ok := e.Cat.Consumables[consID]
	if !ok {
		return false
	}
	if len(n.Consumables) >= maxConsumables {
		e.gainGold(n, def.GoldValue)
		return false
	}
	n.Consumables = append(n.Consumables, consID)
	return true
}

// logWrongAnswer appends to the capped wrong-answer log.
func (e *Engine) logWrongAnswer(n *types.RunState, wa types.WrongAnswer) {
	if wa.AtMs == 0 {
		wa.AtMs = e.Now()
	}
	n.WrongAnswers = append(n.WrongAnswers, wa)
	if len(n.WrongAnswers) > maxWrongAnswers {
		n.WrongAnswers = n.WrongAnswers[len(n.WrongAnswers)-maxWrongAnswers:]
	}
}

// lockNode marks a node as consumed. Locks only ever grow.
func (e *Engine) lockNode(n *types.RunState, nodeID string) {
	if nodeID == "" || nodeID == n.Map.StartID {
		return
	}
	n.LockedNodeIDs[nodeID] = true
	delete(n.NodeScreenCache, nodeID)
}

// flash appends a one-shot UI proc signal for a supply.
func (e *Engine) flash(n *types.RunState, supplyID string) {
	for _, id := range n.FlashSupplyIDs {
		if id == supplyID {
			return
		}
	}
	n.FlashSupplyIDs = append(n.FlashSupplyIDs, supplyID)
}

// flashBlockingSupply flashes whichever owned supply blocks negative
// cards.
func (e *Engine) flashBlockingSupply(n *types.RunState) {
	for _, id := range n.SupplyIDs {
		if e.Cat.Supplies[id].BlockNegativeCards {
			e.flash(n, id)
			return
		}
	}
}
