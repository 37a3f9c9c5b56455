package engine

import (
	"github.com/hollis/corridors/engine/rng"
	"github.com/hollis/corridors/types"
)

// The pop-up vendor wraps an event-only sub-shop plus a one-time
// mystery bag. The sub-shop is built lazily on first browse and then
// persists, so bought slots stay bought across back-and-forth.

const (
	vendorMysteryPrice    = 35
	vendorMysteryFallback = 50
)

func (e *Engine) buildVendor(nodeID string) types.NodeScreen {
	return types.EventScreen{
		NodeID:  nodeID,
		EventID: "evt_vendor",
		Step:    types.StepIntro,
		Data:    types.VendorData{},
	}
}

func (e *Engine) vendorChoose(s *types.RunState, ev types.EventScreen, act types.EventChoose) *types.RunState {
	vd, ok := ev.Data.(types.VendorData)
	if !ok {
		return s
	}

	switch ev.Step {
	case types.StepIntro:
		switch act.ChoiceID {
		case "browse":
			n := e.clone(s)
			ev = n.NodeScreen.(types.EventScreen)
			vd = ev.Data.(types.VendorData)
			if vd.Shop == nil {
				shop := e.buildShop(n, ev.NodeID, true, 0)
				vd.Shop = &shop
			}
			ev.Step = types.StepVendorShop
			ev.Data = vd
			n.NodeScreen = ev
			return n
		case "mystery":
			return e.vendorMystery(s, ev, vd)
		case "leave":
			return e.eventResult(s, ev, "The vendor snaps the case shut and wheels it away.")
		}
	case types.StepVendorShop:
		if act.ChoiceID == "back" {
			n := e.clone(s)
			ev = n.NodeScreen.(types.EventScreen)
			ev.Step = types.StepIntro
			n.NodeScreen = ev
			return n
		}
	}
	return s
}

// vendorMystery sells one blind grab from the event-only consumable
// pool. A full inventory converts the grab to its gold value via
// addConsumable.
func (e *Engine) vendorMystery(s *types.RunState, ev types.EventScreen, vd types.VendorData) *types.RunState {
	if vd.MysteryUsed || s.Gold < vendorMysteryPrice {
		return s
	}
	n := e.clone(s)
	if !e.spendGold(n, vendorMysteryPrice) {
		return s
	}
	ev = n.NodeScreen.(types.EventScreen)
	vd = ev.Data.(types.VendorData)
	vd.MysteryUsed = true
	ev.Data = vd
	n.NodeScreen = ev

	var pool []types.ConsumableDef
	for _, c := range e.Cat.ConsumableList {
		if c.EventOnly {
			pool = append(pool, c)
		}
	}
	r := rng.NewScoped(n.Seed, "event:"+ev.NodeID+":mystery")
	if c, ok := rng.Pick(r, pool, consumableWeight); ok {
		e.addConsumable(n, c.ID)
		return n
	}
	// Empty pool: the bag turns out to be stuffed with cash.
	e.gainGold(n, vendorMysteryFallback)
	return n
}
