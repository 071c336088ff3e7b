package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/laserhop/internal/core"
	"github.com/vovakirdan/laserhop/internal/games/laserhop"
	"github.com/vovakirdan/laserhop/internal/games/laserhop/engine"
	"github.com/vovakirdan/laserhop/internal/registry"
	"github.com/vovakirdan/laserhop/internal/storage"
)

// menuEntry is one line of the main menu.
type menuEntry int

const (
	entryCampaign menuEntry = iota
	entryEndless
	entrySelectLevel
	entryScores
	entryQuit
)

var menuEntries = []menuEntry{entryCampaign, entryEndless, entrySelectLevel, entryScores, entryQuit}

// MenuModel is the Bubble Tea model for the main menu and level picker.
type MenuModel struct {
	cursor        int
	levelCursor   int
	inLevelSelect bool
	campaign      []engine.Level
	best          map[string]int
	width         int
	height        int
	config        core.RuntimeConfig
	keyMapper     *KeyMapper
	quitting      bool
	result        *MenuResult // Set when the user picks something
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Level           int // campaign start level, 0 = from the beginning
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// NewMenuModel creates a new menu model. The store may be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, campaign []engine.Level) MenuModel {
	best := make(map[string]int)
	if store != nil {
		for _, id := range []string{laserhop.IDCampaign, laserhop.IDEndless} {
			if score, err := store.HighScore(id); err == nil && score > 0 {
				best[id] = score
			}
		}
	}

	return MenuModel{
		campaign:  campaign,
		best:      best,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelSelect(action)
		}
		return m.handleMain(action)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleMain(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuEntries)-1 {
			m.cursor++
		}

	case MenuActionScoreboard:
		return m.finish(MenuResult{WantsScoreboard: true})

	case MenuActionSelect:
		switch menuEntries[m.cursor] {
		case entryCampaign:
			return m.finish(MenuResult{GameID: laserhop.IDCampaign})
		case entryEndless:
			return m.finish(MenuResult{GameID: laserhop.IDEndless})
		case entrySelectLevel:
			if len(m.campaign) > 0 {
				m.inLevelSelect = true
				m.levelCursor = 0
			}
		case entryScores:
			return m.finish(MenuResult{WantsScoreboard: true})
		case entryQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m MenuModel) handleLevelSelect(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.campaign)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		return m.finish(MenuResult{GameID: laserhop.IDCampaign, Level: m.levelCursor + 1})
	case MenuActionBack:
		m.inLevelSelect = false
	}
	return m, nil
}

func (m MenuModel) finish(r MenuResult) (tea.Model, tea.Cmd) {
	r.Config = m.config
	m.result = &r
	return m, tea.Quit
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewMain()
}

func (m MenuModel) viewMain() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("L A S E R   H O P", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Hop across the grid, clear the green, dodge the laser", m.width))
	b.WriteString("\n\n")

	for i, e := range menuEntries {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+m.entryLabel(e), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if desc := m.entryDescription(menuEntries[m.cursor]); desc != "" {
		b.WriteString(centerText(desc, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) entryLabel(e menuEntry) string {
	switch e {
	case entryCampaign:
		return m.withBest(fmt.Sprintf("Campaign (%d levels)", len(m.campaign)), laserhop.IDCampaign)
	case entryEndless:
		return m.withBest("Endless", laserhop.IDEndless)
	case entrySelectLevel:
		return "Select Level..."
	case entryScores:
		return "High Scores"
	default:
		return "Quit"
	}
}

func (m MenuModel) withBest(label, id string) string {
	if score, ok := m.best[id]; ok {
		return fmt.Sprintf("%s  [best %d]", label, score)
	}
	return label
}

func (m MenuModel) entryDescription(e menuEntry) string {
	var id string
	switch e {
	case entryCampaign:
		id = laserhop.IDCampaign
	case entryEndless:
		id = laserhop.IDEndless
	default:
		return ""
	}
	info, _ := registry.Info(id)
	return info.Description
}

func (m MenuModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	for i, lvl := range m.campaign {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}
		name := lvl.Name
		if name == "" {
			name = "Level"
		}
		line := fmt.Sprintf("%s%2d. %-12s %2d targets", cursor, i+1, name, lvl.Board.Targets())
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Result returns what the user picked, or nil while still choosing.
func (m MenuModel) Result() *MenuResult {
	return m.result
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, campaign []engine.Level) (MenuResult, error) {
	model := NewMenuModel(store, cfg, campaign)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	if m.IsQuitting() || m.Result() == nil {
		return MenuResult{Config: m.Config(), Quit: true}, nil
	}

	return *m.Result(), nil
}
