package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/glasspane/glasspane/internal/frame"
	"github.com/glasspane/glasspane/internal/ipc"
)

// workspaceItem implements list.Item for the workspace picker.
type workspaceItem struct {
	info   frame.WorkspaceInfo
	active bool
}

func (i workspaceItem) Title() string {
	prefix := "  "
	if i.active {
		prefix = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("*") + " "
	}
	label := i.info.Label
	if label == "" {
		label = fmt.Sprintf("workspace %d", i.info.Ordinal)
	}
	return prefix + label
}

func (i workspaceItem) Description() string {
	desc := fmt.Sprintf("ordinal %d", i.info.Ordinal)
	if i.info.Background != "" {
		desc += "  background:" + i.info.Background
	}
	return desc
}

func (i workspaceItem) FilterValue() string { return i.info.Label }

// WorkspacesTab is the sub-model for the workspace tab.
type WorkspacesTab struct {
	client *ipc.Client
	list   list.Model
	status string

	width  int
	height int
}

// NewWorkspacesTab creates a WorkspacesTab bound to an IPC client.
func NewWorkspacesTab(client *ipc.Client) WorkspacesTab {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Workspaces"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	return WorkspacesTab{client: client, list: l}
}

// Refresh reloads workspace metadata from the session.
func (w *WorkspacesTab) Refresh() {
	data, err := w.client.ListWorkspaces()
	if err != nil {
		w.status = err.Error()
		return
	}
	w.status = ""

	items := make([]list.Item, 0, len(data.Workspaces))
	for i, info := range data.Workspaces {
		items = append(items, workspaceItem{info: info, active: i == data.Active})
	}
	w.list.SetItems(items)
}

// Update implements the sub-model contract.
func (w WorkspacesTab) Update(msg tea.Msg) (WorkspacesTab, tea.Cmd) {
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
			index := w.list.Index()
			if err := w.client.SwitchWorkspace(index); err != nil {
				w.status = err.Error()
			} else {
				w.status = fmt.Sprintf("switch to workspace %d requested", index)
				w.Refresh()
			}
			return w, nil
		}
	}

	var cmd tea.Cmd
	w.list, cmd = w.list.Update(msg)
	return w, cmd
}

// View implements the sub-model contract.
func (w WorkspacesTab) View() string {
	if len(w.list.Items()) == 0 {
		msg := "No workspaces reported"
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
