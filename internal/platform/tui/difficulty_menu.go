package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
)

// DifficultyOption is one entry of the difficulty selector.
type DifficultyOption struct {
	Preset config.DifficultyPreset // Empty keeps the loaded configuration
	Label  string
}

// difficultyOptions lists the selector entries. The first keeps the config file as is.
func difficultyOptions(cfg config.T2048Config) []DifficultyOption {
	options := []DifficultyOption{{
		Label: fmt.Sprintf("As configured (%.0f%% fours)", cfg.Spawn.FourProbability*100),
	}}
	for _, p := range []config.DifficultyPreset{config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard} {
		options = append(options, DifficultyOption{
			Preset: p,
			Label:  fmt.Sprintf("%s (%.0f%% fours)", strings.ToUpper(string(p[:1]))+string(p[1:]), config.FourProbabilityForPreset(p)*100),
		})
	}
	return options
}

// DifficultyModel lets users pick a spawn difficulty before a game.
type DifficultyModel struct {
	title     string
	options   []DifficultyOption
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selection DifficultyOption
	choosing  bool
	quitting  bool
	back      bool
}

// NewDifficultyModel creates a difficulty selector for the given variant.
func NewDifficultyModel(title string, cfg config.T2048Config, width, height int) DifficultyModel {
	return DifficultyModel{
		title:     title,
		options:   difficultyOptions(cfg),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = m.options[m.cursor]
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the difficulty selection.
func (m DifficultyModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerStyled(menuTitleStyle, m.title, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, opt := range m.options {
		line := "  " + opt.Label
		if i == m.cursor {
			b.WriteString(centerStyled(menuSelectedStyle, "> "+opt.Label, m.width))
		} else {
			b.WriteString(centerText(line, m.width))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerStyled(menuDimStyle, "Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m DifficultyModel) Selected() *DifficultyOption {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m DifficultyModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DifficultyModel) WantsBack() bool {
	return m.back
}

// RunDifficultySelector runs the difficulty selection.
// It returns nil when the user backs out or quits.
func RunDifficultySelector(title string, t2048Cfg config.T2048Config, cfg core.RuntimeConfig) (*DifficultyOption, error) {
	model := NewDifficultyModel(title, t2048Cfg, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(DifficultyModel)
	if !ok {
		return nil, nil
	}

	if m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}

	return m.Selected(), nil
}
