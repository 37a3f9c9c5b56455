package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleBody = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleHeading = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220"))

	styleChoice = lipgloss.NewStyle().
			Foreground(lipgloss.Color("117"))

	styleGain = lipgloss.NewStyle().
			Foreground(lipgloss.Color("120"))

	styleLoss = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleFlash = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("213"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindBody lineKind = iota
	kindHeading
	kindChoice
	kindGain
	kindLoss
	kindError
	kindFlash
)

// classifyLine determines what kind of output line this is. Renderers
// emit plain text; styling keys off a few stable prefixes.
func classifyLine(line string) lineKind {
	trimmed := strings.TrimLeft(line, " ")
	switch {
	case strings.HasPrefix(line, "== "):
		return kindHeading
	case strings.HasPrefix(trimmed, "["):
		return kindChoice
	case strings.HasPrefix(trimmed, "+"):
		return kindGain
	case strings.HasPrefix(trimmed, "-"):
		return kindLoss
	case strings.HasPrefix(line, "!"):
		return kindFlash
	case strings.HasPrefix(line, "You can't"),
		strings.HasPrefix(line, "Nothing happens"):
		return kindError
	default:
		return kindBody
	}
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindHeading:
		return styleHeading.Render(line)
	case kindChoice:
		return styleChoice.Render(line)
	case kindGain:
		return styleGain.Render(line)
	case kindLoss:
		return styleLoss.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindFlash:
		return styleFlash.Render(line)
	default:
		return styleBody.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
