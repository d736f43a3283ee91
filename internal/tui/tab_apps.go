package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/glasspane/glasspane/internal/apps"
	"github.com/glasspane/glasspane/internal/ipc"
)

// appItem implements list.Item for the app launcher.
type appItem struct {
	app apps.App
}

func (i appItem) Title() string {
	if i.app.Singleton {
		return i.app.Title + lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("  (singleton)")
	}
	return i.app.Title
}

func (i appItem) Description() string {
	return fmt.Sprintf("%s  %gx%g", i.app.ID, i.app.DefaultWidth, i.app.DefaultHeight)
}

func (i appItem) FilterValue() string { return i.app.ID }

// AppsTab is the sub-model for the app launcher tab.
type AppsTab struct {
	client *ipc.Client
	list   list.Model
	status string

	width  int
	height int
}

// NewAppsTab creates an AppsTab from the local registry. Launches go through
// the session so the supervisor decides placement.
func NewAppsTab(client *ipc.Client) AppsTab {
	items := make([]list.Item, 0)
	for _, app := range apps.All() {
		items = append(items, appItem{app: app})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Apps"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	return AppsTab{client: client, list: l}
}

// Update implements the sub-model contract.
func (a AppsTab) Update(msg tea.Msg) (AppsTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.list.SetSize(msg.Width, msg.Height)
		return a, nil
	case tea.KeyMsg:
		if msg.String() == "enter" {
			if item, ok := a.list.SelectedItem().(appItem); ok {
				if err := a.client.LaunchApp(item.app.ID, false); err != nil {
					a.status = err.Error()
				} else {
					a.status = "launch requested: " + item.app.ID
				}
			}
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.list, cmd = a.list.Update(msg)
	return a, cmd
}

// View implements the sub-model contract.
func (a AppsTab) View() string {
	view := a.list.View()
	if a.status != "" {
		note := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("  " + a.status)
		view = lipgloss.JoinVertical(lipgloss.Left, view, note)
	}
	return view
}
