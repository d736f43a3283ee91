package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/glasspane/glasspane/internal/frame"
	"github.com/glasspane/glasspane/internal/ipc"
)

// windowItem implements list.Item for the window inspector.
type windowItem struct {
	info frame.WindowInfo
}

func (i windowItem) Title() string {
	marker := "  "
	switch i.info.State {
	case frame.StateFocused:
		marker = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("▸") + " "
	case frame.StateMinimized:
		marker = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("▾") + " "
	}
	return fmt.Sprintf("%s%s #%d", marker, i.info.AppID, i.info.ID)
}

func (i windowItem) Description() string {
	return fmt.Sprintf("%s  z:%d  ws:%d  %.0fx%.0f at (%.0f, %.0f)",
		i.info.State, i.info.ZOrder, i.info.Workspace,
		i.info.Frame.Width, i.info.Frame.Height, i.info.Frame.X, i.info.Frame.Y)
}

func (i windowItem) FilterValue() string { return i.info.AppID }

// WindowsTab is the sub-model for the window inspector tab.
type WindowsTab struct {
	client *ipc.Client
	list   list.Model
	status string

	width  int
	height int
}

// NewWindowsTab creates a WindowsTab bound to an IPC client.
func NewWindowsTab(client *ipc.Client) WindowsTab {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Windows"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	return WindowsTab{client: client, list: l}
}

// Refresh reloads the window list from the session.
func (w *WindowsTab) Refresh() {
	data, err := w.client.ListWindows()
	if err != nil {
		w.status = err.Error()
		return
	}
	w.status = ""

	items := make([]list.Item, 0, len(data.Windows))
	for _, info := range data.Windows {
		items = append(items, windowItem{info: info})
	}
	w.list.SetItems(items)
}

// Update implements the sub-model contract.
func (w WindowsTab) Update(msg tea.Msg) (WindowsTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		w.list.SetSize(msg.Width, msg.Height)
		return w, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			w.Refresh()
			return w, nil
		case "enter":
			if item, ok := w.list.SelectedItem().(windowItem); ok {
				if err := w.client.FocusWindow(item.info.ID); err != nil {
					w.status = err.Error()
				} else {
					w.status = fmt.Sprintf("focus requested for %s #%d", item.info.AppID, item.info.ID)
				}
			}
			return w, nil
		}
	}

	var cmd tea.Cmd
	w.list, cmd = w.list.Update(msg)
	return w, cmd
}

// View implements the sub-model contract.
func (w WindowsTab) View() string {
	if len(w.list.Items()) == 0 {
		msg := "No windows in the last frame"
		if w.status != "" {
			msg = w.status
		}
		return renderPlaceholder(msg, w.width, w.height)
	}

	view := w.list.View()
	if w.status != "" {
		note := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("  " + w.status)
		view = lipgloss.JoinVertical(lipgloss.Left, view, note)
	}
	return view
}
