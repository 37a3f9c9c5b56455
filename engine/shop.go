package engine

import (
	"fmt"

	"github.com/hollis/corridors/content"
	"github.com/hollis/corridors/engine/rng"
	"github.com/hollis/corridors/types"
)

const (
	shopCardSlots       = 4
	shopConsumableSlots = 2
	shopSupplySlots     = 2

	shopRefreshBase = 75
	shopRefreshStep = 25

	cardRemovalBase = 50
	cardRemovalStep = 25
)

// buildShop rolls a shop's stock deterministically from the run seed,
// node and refresh generation. Event-only shops draw exclusively from
// event-only content; base shops never see it.
func (e *Engine) buildShop(n *types.RunState, nodeID string, eventOnly bool, gen int) types.ShopScreen {
	r := rng.NewScoped(n.Seed, fmt.Sprintf("shop:%s:%d", nodeID, gen))

	owned := map[string]bool{}
	for _, id := range n.SupplyIDs {
		owned[id] = true
	}
	upgraded := e.upgradeTargets()
	hooks := e.Cat.Hooks(n.SupplyIDs)

	var cards []types.CardDef
	for _, c := range e.Cat.CardList {
		if c.Negative || c.EventOnly != eventOnly || upgraded[c.ID] {
			continue
		}
		cards = append(cards, c)
	}
	var consumables []types.ConsumableDef
	for _, c := range e.Cat.ConsumableList {
		if c.EventOnly != eventOnly {
			continue
		}
		consumables = append(consumables, c)
	}
	var supplies []types.SupplyDef
	for _, sup := range e.Cat.SupplyList {
		if sup.EventOnly != eventOnly || owned[sup.ID] {
			continue
		}
		supplies = append(supplies, sup)
	}

	var offers []types.ShopOffer
	for _, c := range rng.PickUnique(r, cards, shopCardSlots, cardWeight) {
		offers = append(offers, types.ShopOffer{
			Kind: types.OfferCard, ItemID: c.ID, Price: effectivePrice(hooks, priceFor(r, c.Rarity)),
		})
	}
	for _, c := range rng.PickUnique(r, consumables, shopConsumableSlots, consumableWeight) {
		offers = append(offers, types.ShopOffer{
			Kind: types.OfferConsumable, ItemID: c.ID, Price: effectivePrice(hooks, priceFor(r, c.Rarity)),
		})
	}
	for _, sup := range rng.PickUnique(r, supplies, shopSupplySlots, supplyWeight) {
		offers = append(offers, types.ShopOffer{
			Kind: types.OfferSupply, ItemID: sup.ID, Price: effectivePrice(hooks, priceFor(r, sup.Rarity)),
		})
	}

	return types.ShopScreen{
		NodeID:    nodeID,
		EventOnly: eventOnly,
		Gen:       gen,
		Offers:    offers,
	}
}

func cardWeight(c types.CardDef) int             { return rng.RarityWeight(string(c.Rarity)) }
func consumableWeight(c types.ConsumableDef) int { return rng.RarityWeight(string(c.Rarity)) }
func supplyWeight(s types.SupplyDef) int         { return rng.RarityWeight(string(s.Rarity)) }

// priceFor rolls a price within the rarity's band.
func priceFor(r *rng.Rand, rarity types.Rarity) int {
	var lo, hi int
	switch rarity {
	case types.RarityCommon:
		lo, hi = 45, 60
	case types.RarityUncommon:
		lo, hi = 65, 85
	case types.RarityRare:
		lo, hi = 95, 125
	case types.RarityUltra:
		lo, hi = 140, 180
	default:
		lo, hi = 50, 70
	}
	return r.Range(lo, hi)
}

// effectivePrice applies the shop-discount multiplier with floor and
// minimum-1 semantics. Offer prices are discounted when rolled, so the
// listed price is what gets charged; the removal service discounts at
// charge time because its fee is computed per use.
func effectivePrice(h content.SupplyHooks, price int) int {
	if !h.ShopDiscount {
		return price
	}
	p := price / 2
	if p < 1 {
		p = 1
	}
	return p
}

// upgradeTargets is the set of cards only reachable by upgrading; they
// never appear as direct offers.
func (e *Engine) upgradeTargets() map[string]bool {
	t := map[string]bool{}
	for _, c := range e.Cat.CardList {
		if c.UpgradeID != "" {
			t[c.UpgradeID] = true
		}
	}
	return t
}

// currentShop resolves the open shop, whether a plain shop node or the
// sub-shop embedded in a vendor event. The returned commit writes the
// modified shop back into the node screen.
func currentShop(n *types.RunState) (types.ShopScreen, func(types.ShopScreen), bool) {
	switch sc := n.NodeScreen.(type) {
	case types.ShopScreen:
		return sc, func(shop types.ShopScreen) { n.NodeScreen = shop }, true
	case types.EventScreen:
		if sc.Step != types.StepVendorShop {
			break
		}
		vd, ok := sc.Data.(types.VendorData)
		if !ok || vd.Shop == nil {
			break
		}
		return *vd.Shop, func(shop types.ShopScreen) {
			vd.Shop = &shop
			sc.Data = vd
			n.NodeScreen = sc
		}, true
	}
	return types.ShopScreen{}, nil, false
}

func (e *Engine) shopBuy(s *types.RunState, act types.ShopBuy) *types.RunState {
	if s.Screen != types.ScreenNode {
		return s
	}
	n := e.clone(s)
	shop, commit, ok := currentShop(n)
	if !ok || act.Index < 0 || act.Index >= len(shop.Offers) {
		return s
	}
	offer := shop.Offers[act.Index]
	if offer.Bought {
		return s
	}
	if offer.Kind == types.OfferConsumable && len(n.Consumables) >= maxConsumables {
		return s
	}
	if !e.spendGold(n, offer.Price) {
		return s
	}

	switch offer.Kind {
	case types.OfferCard:
		e.addCard(n, offer.ItemID)
	case types.OfferConsumable:
		e.addConsumable(n, offer.ItemID)
	case types.OfferSupply:
		e.addSupply(n, offer.ItemID)
	}
	shop.Offers[act.Index].Bought = true
	commit(shop)
	return n
}

// shopRefresh rerolls the stock for an escalating fee. Bought markers do
// not carry over; the new generation is a brand-new draw.
func (e *Engine) shopRefresh(s *types.RunState) *types.RunState {
	if s.Screen != types.ScreenNode {
		return s
	}
	n := e.clone(s)
	shop, commit, ok := currentShop(n)
	if !ok {
		return s
	}
	if !e.spendGold(n, shopRefreshBase+shopRefreshStep*shop.RefreshesUsed) {
		return s
	}
	fresh := e.buildShop(n, shop.NodeID, shop.EventOnly, shop.Gen+1)
	fresh.RefreshesUsed = shop.RefreshesUsed + 1
	fresh.RemovalsUsed = shop.RemovalsUsed
	commit(fresh)
	return n
}

// shopRemoveCard pays the removal service. The fee escalates per use:
// run-globally for base shops, per-shop for event vendors.
func (e *Engine) shopRemoveCard(s *types.RunState, act types.ShopRemoveCard) *types.RunState {
	if s.Screen != types.ScreenNode {
		return s
	}
	n := e.clone(s)
	shop, commit, ok := currentShop(n)
	if !ok {
		return s
	}
	if len(n.Deck) <= 1 || indexOf(n.Deck, act.CardID) < 0 {
		return s
	}
	used := n.ShopRemovalsUsed
	if shop.EventOnly {
		used = shop.RemovalsUsed
	}
	price := effectivePrice(e.Cat.Hooks(n.SupplyIDs),
		cardRemovalBase+cardRemovalStep*used)
	if !e.spendGold(n, price) {
		return s
	}
	e.removeCard(n, act.CardID)
	if shop.EventOnly {
		shop.RemovalsUsed++
	} else {
		n.ShopRemovalsUsed++
	}
	commit(shop)
	return n
}
