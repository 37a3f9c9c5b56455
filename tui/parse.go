package tui

import (
	"strconv"
	"strings"

	"github.com/hollis/corridors/content"
	"github.com/hollis/corridors/engine/save"
	"github.com/hollis/corridors/types"
)

// parseAction maps a typed command to a reducer action for the current
// screen. Returns a nil action with an explanation when the input isn't
// understood; battle-screen input is the model's business, not ours.
func parseAction(cat *content.Catalog, s *types.RunState, input string) (types.Action, string) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil, ""
	}
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	// Run lifecycle works from any screen.
	switch cmd {
	case "new":
		act := types.NewRun{}
		if len(args) > 0 {
			seed, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return nil, "Seeds are plain numbers, e.g. `new 42`."
			}
			act.Seed = uint32(seed)
			act.HasSeed = true
		}
		return act, ""
	case "load":
		if len(args) == 0 {
			return nil, "Paste a resume code: `load corr1.…`"
		}
		st, err := save.Decode(args[0])
		if err != nil {
			return nil, "That code didn't take: " + err.Error()
		}
		return types.LoadState{State: st}, ""
	}

	switch s.Screen {
	case types.ScreenOverworld:
		switch cmd {
		case "setup":
			return types.SetupOpen{}, ""
		case "go", "open", "enter":
			if len(args) == 0 {
				return nil, "Go where? Name a node from the map, e.g. `go d1_n0`."
			}
			return types.OpenNode{NodeID: args[0]}, ""
		}

	case types.ScreenSetup:
		if cmd == "pick" || cmd == "choose" {
			if len(args) == 0 {
				return nil, "Pick which student? `pick 1` (add a name after)."
			}
			lo, ok := loadoutArg(cat, args[0])
			if !ok {
				return nil, "No such student."
			}
			name := strings.Join(args[1:], " ")
			return types.SetupChoose{LoadoutID: lo, Name: name}, ""
		}

	case types.ScreenNode:
		return parseNodeAction(s, cmd, args)

	case types.ScreenReward:
		return parseRewardAction(s, cmd, args)
	}

	return nil, "You can't do that here. /help lists the commands."
}

func parseNodeAction(s *types.RunState, cmd string, args []string) (types.Action, string) {
	if cmd == "back" || cmd == "leave" {
		if ev, ok := s.NodeScreen.(types.EventScreen); ok {
			switch ev.Step {
			case types.StepVendorShop:
				return types.EventChoose{ChoiceID: "back"}, ""
			case types.StepHallway:
				return types.EventChoose{ChoiceID: "leave"}, ""
			case types.StepIntro:
				if _, isVendor := ev.Data.(types.VendorData); isVendor {
					return types.EventChoose{ChoiceID: "leave"}, ""
				}
			}
		}
		return types.CloseNode{}, ""
	}

	switch sc := s.NodeScreen.(type) {
	case types.FightScreen:
		if cmd == "fight" || cmd == "start" {
			return types.StartBattle{NodeID: sc.NodeID}, ""
		}

	case types.ShopScreen:
		return parseShopAction(s, sc, cmd, args)

	case types.RestScreen:
		switch cmd {
		case "heal", "rest":
			return types.RestHeal{}, ""
		case "upgrade", "study":
			if len(args) == 0 {
				return nil, "Upgrade which card? Use its id or deck number."
			}
			id, ok := deckArg(s, args[0])
			if !ok {
				return nil, "That card isn't in your deck."
			}
			return types.RestUpgrade{CardID: id}, ""
		}

	case types.EventScreen:
		return parseEventAction(s, sc, cmd, args)
	}

	return nil, "You can't do that here. /help lists the commands."
}

func parseShopAction(s *types.RunState, sc types.ShopScreen, cmd string, args []string) (types.Action, string) {
	switch cmd {
	case "buy":
		if len(args) == 0 {
			return nil, "Buy which slot? `buy 1`."
		}
		i, err := strconv.Atoi(args[0])
		if err != nil || i < 1 || i > len(sc.Offers) {
			return nil, "No such slot."
		}
		return types.ShopBuy{Index: i - 1}, ""
	case "refresh", "reroll":
		return types.ShopRefresh{}, ""
	case "remove":
		if len(args) == 0 {
			return nil, "Remove which card? Use its id or deck number."
		}
		id, ok := deckArg(s, args[0])
		if !ok {
			return nil, "That card isn't in your deck."
		}
		return types.ShopRemoveCard{CardID: id}, ""
	}
	return nil, "You can't do that here. /help lists the commands."
}

func parseEventAction(s *types.RunState, sc types.EventScreen, cmd string, args []string) (types.Action, string) {
	switch data := sc.Data.(type) {
	case types.IntroData:
		if cmd == "choose" || cmd == "pick" {
			if len(args) == 0 {
				return nil, "Choose which option? `choose 1`."
			}
			if i, err := strconv.Atoi(args[0]); err == nil {
				if i < 1 || i > len(data.Choices) {
					return nil, "No such option."
				}
				return types.EventChoose{ChoiceID: data.Choices[i-1].ID}, ""
			}
			return types.EventChoose{ChoiceID: args[0]}, ""
		}

	case types.GateData:
		if cmd == "answer" && len(args) > 0 {
			return types.EventGateAnswer{Answer: strings.Join(args, " ")}, ""
		}

	case types.ResultData:
		if cmd == "continue" || cmd == "done" || cmd == "ok" {
			return types.EventChoose{ChoiceID: "continue"}, ""
		}

	case types.HallwayData:
		switch cmd {
		case "open":
			if i, ok := indexArg(args, len(data.Lockers)); ok {
				return types.EventOpenLocker{Index: i}, ""
			}
			return nil, "Open which locker? `open 1`."
		case "collect", "take":
			if i, ok := indexArg(args, len(data.Lockers)); ok {
				return types.EventCollectLocker{Index: i}, ""
			}
			return nil, "Collect which locker? `collect 1`."
		case "answer":
			if len(args) > 0 {
				return types.EventHallwayAnswer{Answer: strings.Join(args, " ")}, ""
			}
		}

	case types.ExamData:
		switch sc.Step {
		case types.StepExamQuestion:
			if cmd == "answer" && len(args) > 0 {
				return types.EventGateAnswer{Answer: strings.Join(args, " ")}, ""
			}
		case types.StepExamFeedback:
			if cmd == "choose" && len(args) > 0 {
				switch args[0] {
				case "1", "continue":
					return types.EventChoose{ChoiceID: "continue"}, ""
				case "2", "cash_out", "cash":
					return types.EventChoose{ChoiceID: "cash_out"}, ""
				}
				return nil, "No such option."
			}
		case types.StepCardPick:
			if cmd == "take" {
				if i, ok := indexArg(args, len(data.OfferIDs)); ok {
					return types.EventPickCard{CardID: data.OfferIDs[i]}, ""
				}
				return nil, "Take which card? `take 1`."
			}
		}

	case types.CardPickData:
		if cmd == "take" || cmd == "accept" {
			return types.EventPickCard{CardID: data.CardID}, ""
		}

	case types.ConsumablePickData:
		if cmd == "take" {
			if i, ok := indexArg(args, len(data.OfferIDs)); ok {
				return types.EventPickConsumable{ConsumableID: data.OfferIDs[i]}, ""
			}
			return nil, "Take which one? `take 1`."
		}

	case types.VendorData:
		if sc.Step == types.StepVendorShop && data.Shop != nil {
			return parseShopAction(s, *data.Shop, cmd, args)
		}
		if cmd == "choose" && len(args) > 0 {
			switch args[0] {
			case "1", "browse":
				return types.EventChoose{ChoiceID: "browse"}, ""
			case "2", "mystery":
				return types.EventChoose{ChoiceID: "mystery"}, ""
			case "3", "leave":
				return types.EventChoose{ChoiceID: "leave"}, ""
			}
			return nil, "No such option."
		}
	}
	return nil, "You can't do that here. /help lists the commands."
}

func parseRewardAction(s *types.RunState, cmd string, args []string) (types.Action, string) {
	switch cmd {
	case "gold":
		return types.RewardClaimGold{}, ""
	case "card":
		if len(args) == 0 {
			return nil, "Take which card? `card <id>` from the offer list."
		}
		id := args[0]
		if rw := s.Reward; rw != nil {
			if i, err := strconv.Atoi(id); err == nil && i >= 1 && i <= len(rw.CardOfferIDs) {
				id = rw.CardOfferIDs[i-1]
			}
		}
		return types.RewardConfirmCard{CardID: id}, ""
	case "skip":
		return types.RewardSkipCards{}, ""
	case "item":
		return types.RewardClaimConsumable{}, ""
	case "supply":
		return types.RewardClaimSupply{}, ""
	case "continue", "done":
		return types.RewardContinue{}, ""
	}
	return nil, "You can't do that here. /help lists the commands."
}

// loadoutArg resolves a 1-based index or loadout id.
func loadoutArg(cat *content.Catalog, arg string) (string, bool) {
	if i, err := strconv.Atoi(arg); err == nil {
		if i < 1 || i > len(cat.LoadoutList) {
			return "", false
		}
		return cat.LoadoutList[i-1].ID, true
	}
	if _, ok := cat.Loadouts[arg]; ok {
		return arg, true
	}
	return "", false
}

// deckArg resolves a 1-based deck index or card id to a deck card.
func deckArg(s *types.RunState, arg string) (string, bool) {
	if i, err := strconv.Atoi(arg); err == nil {
		if i < 1 || i > len(s.Deck) {
			return "", false
		}
		return s.Deck[i-1], true
	}
	for _, id := range s.Deck {
		if id == arg {
			return id, true
		}
	}
	return "", false
}

// indexArg parses a 1-based index within bounds, returning it 0-based.
func indexArg(args []string, n int) (int, bool) {
	if len(args) == 0 {
		return 0, false
	}
	i, err := strconv.Atoi(args[0])
	if err != nil || i < 1 || i > n {
		return 0, false
	}
	return i - 1, true
}
