package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/glasspane/glasspane/internal/background"
	"github.com/glasspane/glasspane/internal/config"
	"github.com/glasspane/glasspane/internal/ipc"
)

// SettingsTab is the sub-model for the settings tab.
type SettingsTab struct {
	cfg        *config.Config
	configPath string
	client     *ipc.Client
	connected  bool

	width  int
	height int

	// Edit mode
	editing bool
	form    *huh.Form
	status  string

	// Form-bound values (strings for huh, converted on submit)
	fRefreshRate string
	fZoomMin     string
	fZoomMax     string
	fWsCount     string
	fWsWidth     string
	fWsHeight    string
	fWsGap       string
	fBackground  string
	fLogLevel    string
}

// NewSettingsTab creates a SettingsTab from the loaded config.
func NewSettingsTab(cfg *config.Config, configPath string, client *ipc.Client, connected bool) SettingsTab {
	return SettingsTab{cfg: cfg, configPath: configPath, client: client, connected: connected}
}

// Update implements the sub-model contract.
func (s SettingsTab) Update(msg tea.Msg) (SettingsTab, tea.Cmd) {
	if s.editing {
		return s.updateEditing(msg)
	}
	return s.updateDisplay(msg)
}

func (s SettingsTab) updateDisplay(msg tea.Msg) (SettingsTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "e" {
			s.startEditing()
			return s, s.form.Init()
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}
	return s, nil
}

func (s SettingsTab) updateEditing(msg tea.Msg) (SettingsTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			s.editing = false
			s.form = nil
			return s, nil
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.applyForm()
		s.editing = false
		s.form = nil
		return s, nil
	}

	return s, cmd
}

// Editing reports whether the form is capturing input.
func (s SettingsTab) Editing() bool { return s.editing }

func (s *SettingsTab) startEditing() {
	cfg := s.cfg
	if cfg == nil {
		cfg = config.Default()
	}

	s.fRefreshRate = strconv.Itoa(cfg.RefreshRate)
	s.fZoomMin = strconv.FormatFloat(cfg.Zoom.Min, 'g', -1, 64)
	s.fZoomMax = strconv.FormatFloat(cfg.Zoom.Max, 'g', -1, 64)
	s.fWsCount = strconv.Itoa(cfg.Workspaces.Count)
	s.fWsWidth = strconv.FormatFloat(cfg.Workspaces.Width, 'f', 0, 64)
	s.fWsHeight = strconv.FormatFloat(cfg.Workspaces.Height, 'f', 0, 64)
	s.fWsGap = strconv.FormatFloat(cfg.Workspaces.Gap, 'f', 0, 64)
	s.fBackground = cfg.Background
	s.fLogLevel = cfg.LogLevel

	bgOpts := s.backgroundOptions()

	levelOpts := []huh.Option[string]{
		huh.NewOption("debug", "debug"),
		huh.NewOption("info", "info"),
		huh.NewOption("warn", "warn"),
		huh.NewOption("error", "error"),
	}

	w := s.width - 4
	if w < 40 {
		w = 40
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("refresh_rate").
				Title("Refresh Rate").
				Description("Render loop frequency in frames per second").
				Value(&s.fRefreshRate),

			huh.NewInput().
				Key("zoom_min").
				Title("Zoom Minimum").
				Description("Lower bound of the viewport scale").
				Value(&s.fZoomMin),

			huh.NewInput().
				Key("zoom_max").
				Title("Zoom Maximum").
				Description("Upper bound of the viewport scale").
				Value(&s.fZoomMax),

			huh.NewSelect[string]().
				Key("background").
				Title("Background").
				Description("Renderer backdrop").
				Options(bgOpts...).
				Value(&s.fBackground),

			huh.NewSelect[string]().
				Key("log_level").
				Title("Log Level").
				Options(levelOpts...).
				Value(&s.fLogLevel),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("ws_count").
				Title("Workspaces: Count").
				Value(&s.fWsCount),
			huh.NewInput().
				Key("ws_width").
				Title("Workspaces: Width").
				Value(&s.fWsWidth),
			huh.NewInput().
				Key("ws_height").
				Title("Workspaces: Height").
				Value(&s.fWsHeight),
			huh.NewInput().
				Key("ws_gap").
				Title("Workspaces: Gap").
				Value(&s.fWsGap),
		),
	).WithWidth(w).WithShowHelp(true).WithShowErrors(true)

	s.editing = true
}

func (s *SettingsTab) backgroundOptions() []huh.Option[string] {
	names := background.BuiltinBackgrounds()
	if s.connected {
		if data, err := s.client.ListBackgrounds(); err == nil && len(data.Backgrounds) > 0 {
			names = data.Backgrounds
		}
	}

	opts := make([]huh.Option[string], 0, len(names))
	for _, name := range names {
		opts = append(opts, huh.NewOption(name, name))
	}
	return opts
}

func (s *SettingsTab) applyForm() {
	if s.cfg == nil {
		s.cfg = config.Default()
	}

	if v, err := strconv.Atoi(s.fRefreshRate); err == nil && v > 0 {
		s.cfg.RefreshRate = v
	}
	if v, err := strconv.ParseFloat(s.fZoomMin, 64); err == nil && v > 0 {
		s.cfg.Zoom.Min = v
	}
	if v, err := strconv.ParseFloat(s.fZoomMax, 64); err == nil && v > 0 {
		s.cfg.Zoom.Max = v
	}
	if v, err := strconv.Atoi(s.fWsCount); err == nil && v >= 1 {
		s.cfg.Workspaces.Count = v
	}
	if v, err := strconv.ParseFloat(s.fWsWidth, 64); err == nil && v > 0 {
		s.cfg.Workspaces.Width = v
	}
	if v, err := strconv.ParseFloat(s.fWsHeight, 64); err == nil && v > 0 {
		s.cfg.Workspaces.Height = v
	}
	if v, err := strconv.ParseFloat(s.fWsGap, 64); err == nil && v >= 0 {
		s.cfg.Workspaces.Gap = v
	}
	if s.fBackground != "" {
		s.cfg.Background = s.fBackground
	}
	if s.fLogLevel != "" {
		s.cfg.LogLevel = s.fLogLevel
	}

	if err := s.cfg.Validate(); err != nil {
		s.status = err.Error()
		return
	}

	path := s.configPath
	if path == "" {
		defaultPath, err := config.DefaultConfigPath()
		if err != nil {
			s.status = err.Error()
			return
		}
		path = defaultPath
	}
	if err := s.cfg.Save(path); err != nil {
		s.status = err.Error()
		return
	}
	s.status = "saved to " + path

	// A running session picks up the background immediately; everything
	// else applies on the next session start.
	if s.connected {
		if err := s.client.SetBackground(s.cfg.Background); err != nil {
			s.status = "saved; live background update failed: " + err.Error()
		}
	}
}

// View implements the sub-model contract.
func (s SettingsTab) View() string {
	if s.editing && s.form != nil {
		return s.viewEditing()
	}
	return s.viewDisplay()
}

func (s SettingsTab) viewDisplay() string {
	cfg := s.cfg
	if cfg == nil {
		return renderPlaceholder("No config loaded", s.width, s.height)
	}

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Width(22).
		Align(lipgloss.Right).
		PaddingRight(2)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Bold(true)

	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}

	workspaces := fmt.Sprintf("%d of %.0fx%.0f, gap %.0f",
		cfg.Workspaces.Count, cfg.Workspaces.Width, cfg.Workspaces.Height, cfg.Workspaces.Gap)
	zoom := fmt.Sprintf("%g - %g", cfg.Zoom.Min, cfg.Zoom.Max)

	lines := []string{
		"",
		row("Refresh Rate", strconv.Itoa(cfg.RefreshRate)),
		row("Zoom Range", zoom),
		row("Workspaces", workspaces),
		"",
		row("Background", cfg.Background),
		row("Log Level", cfg.LogLevel),
		"",
		dimStyle.Render("  Press 'e' to edit settings"),
	}
	if s.status != "" {
		lines = append(lines, "", dimStyle.Render("  "+s.status))
	}

	content := strings.Join(lines, "\n")

	contentStyle := lipgloss.NewStyle().
		Width(s.width).
		Height(s.height).
		Padding(1, 2)

	return contentStyle.Render(content)
}

func (s SettingsTab) viewEditing() string {
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("62")).
		Bold(true).
		Render("Editing Settings") +
		lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Render("  (esc to cancel)")

	formView := s.form.View()

	content := header + "\n\n" + formView

	style := lipgloss.NewStyle().
		Width(s.width).
		Height(s.height).
		Padding(1, 2)

	return style.Render(content)
}
