package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hollis/corridors/types"
)

// renderStatusBar produces a full-width inverted status line showing
// the run vitals and current position.
func (m Model) renderStatusBar() string {
	s := m.state

	if s == nil || s.Screen == types.ScreenTitle {
		bar := " Corridors | type `new` to start a run, /help for commands"
		return styleStatusBar.Width(m.width).Render(bar)
	}

	where := string(s.Screen)
	if s.Screen == types.ScreenNode || s.Screen == types.ScreenBattle {
		if id := m.currentNodeID(); id != "" {
			where = fmt.Sprintf("%s %s", s.Screen, id)
		}
	}

	left := fmt.Sprintf(" HP %d/%d | Gold %d | %s", s.HP, s.MaxHP, s.Gold, where)
	right := fmt.Sprintf("Deck %d | Bag %d/3 ", len(s.Deck), len(s.Consumables))

	if !m.compact && s.PlayerName != "" {
		left = fmt.Sprintf(" %s | HP %d/%d | Gold %d | %s",
			s.PlayerName, s.HP, s.MaxHP, s.Gold, where)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}

// currentNodeID is the node the run is focused on right now.
func (m Model) currentNodeID() string {
	s := m.state
	switch {
	case s.Battle != nil:
		return s.Battle.NodeID
	case s.NodeScreen != nil:
		switch sc := s.NodeScreen.(type) {
		case types.FightScreen:
			return sc.NodeID
		case types.ShopScreen:
			return sc.NodeID
		case types.RestScreen:
			return sc.NodeID
		case types.EventScreen:
			return sc.NodeID
		}
	}
	return s.CurrentNodeID
}
