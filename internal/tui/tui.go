// Package tui implements the root Bubble Tea model for zpin.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zpin/internal/identity"
	"github.com/zarlcorp/zpin/internal/pin"
)

type viewID int

const (
	viewMenu viewID = iota
	viewValidate
	viewGenerate
	viewRange
)

// Model is the root TUI model.
type Model struct {
	version  string
	gen      *identity.Generator
	now      func() time.Time
	pageSize int

	active   viewID
	menu     menuModel
	validate validateModel
	generate generateModel
	rng      rangeModel

	// gender used for the next generated code, empty for random
	gender pin.Gender

	// terminal dimensions
	width  int
	height int
}

// New creates the root TUI model. pageSize is the number of codes shown per
// page when browsing a range.
func New(version string, gen *identity.Generator, pageSize int) Model {
	if pageSize < 1 {
		pageSize = 20
	}
	return Model{
		version:  version,
		gen:      gen,
		now:      time.Now,
		pageSize: pageSize,
		active:   viewMenu,
		menu:     newMenuModel(version),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case navigateMsg:
		return m.navigate(msg.view)

	case regenerateMsg:
		m.gender = msg.gender
		return m.regenerate()
	}

	return m.updateActive(msg)
}

func (m Model) View() string {
	// the menu includes the logo, render directly
	if m.active == viewMenu {
		return m.menu.View()
	}

	var content string
	switch m.active {
	case viewValidate:
		content = m.validate.View()
	case viewGenerate:
		content = m.generate.View()
	case viewRange:
		content = m.rng.View()
	}

	header := zstyle.RenderHeader("zpin", viewTitle(m.active), zstyle.ZburnAccent)
	sep := zstyle.RenderSeparator(m.width)
	footer := zstyle.RenderFooter(helpFor(m.active, m.rng.browsing()))

	return "\n" + header + "\n" + sep + "\n" + content + "\n" + footer + "\n"
}

// viewTitle returns the display title for each view.
func viewTitle(id viewID) string {
	switch id {
	case viewValidate:
		return "Validate Code"
	case viewGenerate:
		return "Generate Code"
	case viewRange:
		return "Browse Range"
	}
	return ""
}

// helpFor returns keybinding pairs for each view's footer.
func helpFor(id viewID, browsing bool) []zstyle.HelpPair {
	switch id {
	case viewValidate:
		return []zstyle.HelpPair{
			{Key: "enter", Desc: "copy"},
			{Key: "esc", Desc: "back"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	case viewGenerate:
		return []zstyle.HelpPair{
			{Key: "enter", Desc: "copy field"},
			{Key: "c", Desc: "copy all"},
			{Key: "n", Desc: "new"},
			{Key: "m/f/r", Desc: "male/female/random"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewRange:
		if browsing {
			return []zstyle.HelpPair{
				{Key: "j/k", Desc: "navigate"},
				{Key: "enter", Desc: "copy"},
				{Key: "n", Desc: "next page"},
				{Key: "r", Desc: "restart"},
				{Key: "esc", Desc: "back"},
				{Key: "q", Desc: "quit"},
			}
		}
		return []zstyle.HelpPair{
			{Key: "tab", Desc: "next"},
			{Key: "enter", Desc: "browse"},
			{Key: "esc", Desc: "back"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	}
	return nil
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.active {
	case viewMenu:
		m.menu, cmd = m.menu.Update(msg)
	case viewValidate:
		m.validate, cmd = m.validate.Update(msg)
	case viewGenerate:
		m.generate, cmd = m.generate.Update(msg)
	case viewRange:
		m.rng, cmd = m.rng.Update(msg)
	}

	return m, cmd
}

func (m Model) navigate(view viewID) (tea.Model, tea.Cmd) {
	switch view {
	case viewMenu:
		m.menu = newMenuModel(m.version)
		m.active = viewMenu
		return m, tea.ClearScreen

	case viewValidate:
		m.validate = newValidateModel(m.now)
		m.active = viewValidate
		return m, tea.Batch(m.validate.Init(), tea.ClearScreen)

	case viewGenerate:
		m, cmd := m.regenerate()
		return m, tea.Batch(cmd, tea.ClearScreen)

	case viewRange:
		m.rng = newRangeModel(m.pageSize, m.now())
		m.active = viewRange
		return m, tea.Batch(m.rng.Init(), tea.ClearScreen)
	}

	return m, nil
}

// regenerate draws a new code for the current gender setting.
func (m Model) regenerate() (Model, tea.Cmd) {
	m.active = viewGenerate

	code, err := m.gen.Random(m.gender)
	if err == nil {
		var id identity.Identity
		if id, err = identity.Describe(code); err == nil {
			m.generate = newGenerateModel(id, m.gender, m.now())
			return m, nil
		}
	}

	m.generate = m.generate.setFlash("generate: " + err.Error())
	return m, clearFlashAfter()
}
