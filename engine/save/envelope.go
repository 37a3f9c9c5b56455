package save

import "github.com/hollis/corridors/types"

// savedState wraps RunState with explicit envelopes for the
// interface-typed screen fields, which encoding/json cannot round-trip
// on its own. The envelopes carry the open node screen, the re-entry
// cache, and an ambush battle's return screen.
type savedState struct {
	*types.RunState
	NodeScreen      *screenEnvelope            `json:"node_screen,omitempty"`
	NodeScreenCache map[string]*screenEnvelope `json:"node_screen_cache,omitempty"`
	ReturnScreen    *screenEnvelope            `json:"return_screen,omitempty"`
}

func wrap(s *types.RunState) savedState {
	w := savedState{RunState: s}
	w.NodeScreen = packScreen(s.NodeScreen)
	if len(s.NodeScreenCache) > 0 {
		w.NodeScreenCache = make(map[string]*screenEnvelope, len(s.NodeScreenCache))
		for id, ns := range s.NodeScreenCache {
			if env := packScreen(ns); env != nil {
				w.NodeScreenCache[id] = env
			}
		}
	}
	if s.Battle != nil {
		w.ReturnScreen = packScreen(s.Battle.Meta.ReturnNodeScreen)
	}
	return w
}

// unwrap writes the decoded envelopes back into the wrapped state.
func (w *savedState) unwrap() {
	s := w.RunState
	s.NodeScreen = unpackScreen(w.NodeScreen)
	for id, env := range w.NodeScreenCache {
		ns := unpackScreen(env)
		if ns == nil {
			continue
		}
		if s.NodeScreenCache == nil {
			s.NodeScreenCache = map[string]types.NodeScreen{}
		}
		s.NodeScreenCache[id] = ns
	}
	if s.Battle != nil {
		s.Battle.Meta.ReturnNodeScreen = unpackScreen(w.ReturnScreen)
	}
}

// screenEnvelope tags which node-screen variant is present. Exactly one
// slot is set; an empty envelope decodes to no screen, which the
// reducer's load path rebuilds deterministically.
type screenEnvelope struct {
	Fight *types.FightScreen `json:"fight,omitempty"`
	Shop  *types.ShopScreen  `json:"shop,omitempty"`
	Rest  *types.RestScreen  `json:"rest,omitempty"`
	Event *eventEnvelope     `json:"event,omitempty"`
}

// eventEnvelope carries an event screen with its step payload in the
// matching tagged slot. The payload type is tagged separately from Step
// because CARD_PICK holds different payloads per event.
type eventEnvelope struct {
	NodeID  string          `json:"node_id"`
	EventID string          `json:"event_id"`
	Step    types.EventStep `json:"step"`

	Intro          *types.IntroData          `json:"intro,omitempty"`
	Gate           *types.GateData           `json:"gate,omitempty"`
	Result         *types.ResultData         `json:"result,omitempty"`
	Hallway        *types.HallwayData        `json:"hallway,omitempty"`
	Exam           *types.ExamData           `json:"exam,omitempty"`
	CardPick       *types.CardPickData       `json:"card_pick,omitempty"`
	ConsumablePick *types.ConsumablePickData `json:"consumable_pick,omitempty"`
	Vendor         *types.VendorData         `json:"vendor,omitempty"`
}

func packScreen(ns types.NodeScreen) *screenEnvelope {
	switch sc := ns.(type) {
	case types.FightScreen:
		return &screenEnvelope{Fight: &sc}
	case types.ShopScreen:
		return &screenEnvelope{Shop: &sc}
	case types.RestScreen:
		return &screenEnvelope{Rest: &sc}
	case types.EventScreen:
		if ev := packEvent(sc); ev != nil {
			return &screenEnvelope{Event: ev}
		}
	}
	return nil
}

func packEvent(sc types.EventScreen) *eventEnvelope {
	env := &eventEnvelope{NodeID: sc.NodeID, EventID: sc.EventID, Step: sc.Step}
	switch data := sc.Data.(type) {
	case types.IntroData:
		env.Intro = &data
	case types.GateData:
		env.Gate = &data
	case types.ResultData:
		env.Result = &data
	case types.HallwayData:
		env.Hallway = &data
	case types.ExamData:
		env.Exam = &data
	case types.CardPickData:
		env.CardPick = &data
	case types.ConsumablePickData:
		env.ConsumablePick = &data
	case types.VendorData:
		env.Vendor = &data
	default:
		return nil
	}
	return env
}

func unpackScreen(env *screenEnvelope) types.NodeScreen {
	switch {
	case env == nil:
		return nil
	case env.Fight != nil:
		return *env.Fight
	case env.Shop != nil:
		return *env.Shop
	case env.Rest != nil:
		return *env.Rest
	case env.Event != nil:
		return unpackEvent(env.Event)
	}
	return nil
}

func unpackEvent(env *eventEnvelope) types.NodeScreen {
	sc := types.EventScreen{NodeID: env.NodeID, EventID: env.EventID, Step: env.Step}
	switch {
	case env.Intro != nil:
		sc.Data = *env.Intro
	case env.Gate != nil:
		sc.Data = *env.Gate
	case env.Result != nil:
		sc.Data = *env.Result
	case env.Hallway != nil:
		sc.Data = *env.Hallway
	case env.Exam != nil:
		sc.Data = *env.Exam
	case env.CardPick != nil:
		sc.Data = *env.CardPick
	case env.ConsumablePick != nil:
		sc.Data = *env.ConsumablePick
	case env.Vendor != nil:
		sc.Data = *env.Vendor
	default:
		return nil
	}
	return sc
}
