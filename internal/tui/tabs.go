package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Tab identifies a TUI tab.
type Tab int

const (
	TabWindows Tab = iota
	TabWorkspaces
	TabApps
	TabSettings
	tabCount // sentinel for iteration
)

func (t Tab) String() string {
	switch t {
	case TabWindows:
		return "Windows"
	case TabWorkspaces:
		return "Workspaces"
	case TabApps:
		return "Apps"
	case TabSettings:
		return "Settings"
	default:
		return "?"
	}
}

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Background(lipgloss.Color("236")).
				Padding(0, 2)

	tabBarStyle = lipgloss.NewStyle().
			MarginBottom(1)

	tabGap = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		SetString(" ")
)

// renderTabBar renders the tab bar with the given active tab and width.
func renderTabBar(active Tab, width int) string {
	var tabs []string
	for i := Tab(0); i < tabCount; i++ {
		label := i.String()
		shortcut := ""
		switch i {
		case TabWindows:
			shortcut = "1"
		case TabWorkspaces:
			shortcut = "2"
		case TabApps:
			shortcut = "3"
		case TabSettings:
			shortcut = "4"
		}
		label = shortcut + ":" + label
		if i == active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, intersperse(tabs, tabGap.Render())...)
	bar := tabBarStyle.Width(width).Render(row)
	return bar
}

// intersperse inserts sep between each element of items.
func intersperse(items []string, sep string) []string {
	if len(items) <= 1 {
		return items
	}
	result := make([]string, 0, len(items)*2-1)
	for i, item := range items {
		if i > 0 {
			result = append(result, sep)
		}
		result = append(result, item)
	}
	return result
}

// renderStatusBar renders the session connection status bar.
func renderStatusBar(connected bool, frameSeq uint64, windowCount int, bg string, width int) string {
	var status string
	if connected {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
		parts := []string{dot + " session connected"}
		parts = append(parts, "frame:"+formatSeq(frameSeq))
		parts = append(parts, "windows:"+formatCount(windowCount))
		if bg != "" {
			parts = append(parts, "background:"+bg)
		}
		status = strings.Join(parts, "  ")
	} else {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("●")
		status = dot + " no session running"
	}

	style := lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("250")).
		Padding(0, 1)
	return style.Render(status)
}

// renderHelpBar renders the bottom help/keybinding bar.
func renderHelpBar(width int) string {
	help := "tab/shift-tab: switch tabs  1-4: jump to tab  r: refresh  q/ctrl-c: quit"
	style := lipgloss.NewStyle().
		Width(width).
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	return style.Render(help)
}

// renderPlaceholder renders centered dim text for empty tabs.
func renderPlaceholder(msg string, width, height int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Foreground(lipgloss.Color("241")).
		Align(lipgloss.Center, lipgloss.Center)
	return style.Render(msg)
}

func formatSeq(seq uint64) string {
	return strconv.FormatUint(seq, 10)
}

func formatCount(n int) string {
	return strconv.Itoa(n)
}
