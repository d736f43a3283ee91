package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/glasspane/glasspane/internal/config"
	"github.com/glasspane/glasspane/internal/ipc"
)

// model is the root bubbletea model for the inspector.
type model struct {
	configPath string
	cfg        *config.Config
	ipcClient  *ipc.Client

	// Tab navigation
	activeTab Tab

	// Sub-models
	windowsTab    WindowsTab
	workspacesTab WorkspacesTab
	appsTab       AppsTab
	settingsTab   SettingsTab

	// Session state
	connected bool
	status    *ipc.StatusData

	// Terminal dimensions
	width  int
	height int
}

func newModel(configPath string) model {
	m := model{
		configPath: configPath,
		activeTab:  TabWindows,
	}

	cfg, err := loadConfig(configPath)
	if err == nil {
		m.cfg = cfg
	}

	m.ipcClient = ipc.NewClient()
	m.refreshStatus()

	m.windowsTab = NewWindowsTab(m.ipcClient)
	m.workspacesTab = NewWorkspacesTab(m.ipcClient)
	m.appsTab = NewAppsTab(m.ipcClient)
	m.settingsTab = NewSettingsTab(m.cfg, configPath, m.ipcClient, m.connected)

	if m.connected {
		m.windowsTab.Refresh()
		m.workspacesTab.Refresh()
	}

	return m
}

func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		return config.Load()
	}
	return config.LoadFromPath(configPath)
}

func (m *model) refreshStatus() {
	status, err := m.ipcClient.GetStatus()
	if err != nil {
		m.connected = false
		m.status = nil
		return
	}
	m.connected = true
	m.status = status
}

// contentHeight returns the height available for tab content.
func (m model) contentHeight() int {
	// Approximate: status bar (1) + tab bar (2 with margin) + help bar (1) = 4 lines
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	return h
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// When the settings form captures input, delegate everything to it
	// (the form consumes keys; only ctrl+c escapes to quit)
	if m.activeTab == TabSettings && m.settingsTab.Editing() {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
		case tea.WindowSizeMsg:
			m.width = msg.Width
			m.height = msg.Height
			m.forwardSize()
			return m, nil
		}
		var cmd tea.Cmd
		m.settingsTab, cmd = m.settingsTab.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil

		case "shift+tab":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
			return m, nil

		case "1":
			m.activeTab = TabWindows
			return m, nil
		case "2":
			m.activeTab = TabWorkspaces
			return m, nil
		case "3":
			m.activeTab = TabApps
			return m, nil
		case "4":
			m.activeTab = TabSettings
			return m, nil

		case "r":
			m.refreshStatus()
			// Fall through to the tab so lists reload too.
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.forwardSize()
		return m, nil
	}

	// Delegate to active tab's sub-model
	switch m.activeTab {
	case TabWindows:
		var cmd tea.Cmd
		m.windowsTab, cmd = m.windowsTab.Update(msg)
		return m, cmd
	case TabWorkspaces:
		var cmd tea.Cmd
		m.workspacesTab, cmd = m.workspacesTab.Update(msg)
		return m, cmd
	case TabApps:
		var cmd tea.Cmd
		m.appsTab, cmd = m.appsTab.Update(msg)
		return m, cmd
	case TabSettings:
		var cmd tea.Cmd
		m.settingsTab, cmd = m.settingsTab.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *model) forwardSize() {
	contentHeight := m.contentHeight()
	subMsg := tea.WindowSizeMsg{Width: m.width, Height: contentHeight}
	m.windowsTab, _ = m.windowsTab.Update(subMsg)
	m.workspacesTab, _ = m.workspacesTab.Update(subMsg)
	m.appsTab, _ = m.appsTab.Update(subMsg)
	m.settingsTab, _ = m.settingsTab.Update(subMsg)
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var frameSeq uint64
	var windowCount int
	var bg string
	if m.status != nil {
		frameSeq = m.status.FrameSeq
		windowCount = m.status.WindowCount
		bg = m.status.Background
	}
	statusBar := renderStatusBar(m.connected, frameSeq, windowCount, bg, m.width)

	tabBar := renderTabBar(m.activeTab, m.width)

	helpBar := renderHelpBar(m.width)

	usedHeight := lipgloss.Height(statusBar) + lipgloss.Height(tabBar) + lipgloss.Height(helpBar)
	contentHeight := m.height - usedHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	switch m.activeTab {
	case TabWindows:
		content = m.windowsTab.View()
	case TabWorkspaces:
		content = m.workspacesTab.View()
	case TabApps:
		content = m.appsTab.View()
	case TabSettings:
		content = m.settingsTab.View()
	default:
		content = renderPlaceholder(m.activeTab.String(), m.width, contentHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		tabBar,
		content,
		helpBar,
	)
}
