package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zpin/internal/identity"
)

type rangeField int

const (
	rangeFrom rangeField = iota
	rangeTo
	rangeFieldCount
)

var rangeLabels = [rangeFieldCount]string{
	"from",
	"to",
}

const dateLayout = "2006-01-02"

// rangeModel asks for a date range, then pages through every code issuable
// for it. Codes are pulled from the iterator one page at a time.
type rangeModel struct {
	inputs   []textinput.Model
	focus    int
	pageSize int
	flash    string

	it     *identity.RangeIterator
	total  int
	page   []string
	pageNo int
	cursor int
	done   bool
}

func newRangeModel(pageSize int, today time.Time) rangeModel {
	inputs := make([]textinput.Model, rangeFieldCount)

	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = len(dateLayout)
		ti.Width = len(dateLayout) + 2
		ti.Placeholder = "YYYY-MM-DD"
		ti.SetValue(today.Format(dateLayout))
		inputs[i] = ti
	}

	inputs[0].Focus()

	return rangeModel{inputs: inputs, pageSize: pageSize}
}

func (m rangeModel) browsing() bool {
	return m.it != nil
}

func (m rangeModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m rangeModel) Update(msg tea.Msg) (rangeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.browsing() {
			return m.handleBrowseKey(msg)
		}
		return m.handleFormKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	if m.browsing() {
		return m, nil
	}
	return m.updateInput(msg)
}

func (m rangeModel) handleFormKey(msg tea.KeyMsg) (rangeModel, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if msg.Type == tea.KeyEsc {
		return m, navigate(viewMenu)
	}

	if key.Matches(msg, zstyle.KeyTab) || msg.Type == tea.KeyDown {
		return m.nextField(), nil
	}

	if msg.Type == tea.KeyUp || msg.Type == tea.KeyShiftTab {
		return m.prevField(), nil
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		// enter on last field starts browsing; otherwise advance
		if m.focus == int(rangeFieldCount)-1 {
			return m.start()
		}
		return m.nextField(), nil
	}

	return m.updateInput(msg)
}

func (m rangeModel) start() (rangeModel, tea.Cmd) {
	from, err := time.Parse(dateLayout, strings.TrimSpace(m.inputs[rangeFrom].Value()))
	if err != nil {
		m.flash = "from: want YYYY-MM-DD"
		return m, clearFlashAfter()
	}
	to, err := time.Parse(dateLayout, strings.TrimSpace(m.inputs[rangeTo].Value()))
	if err != nil {
		m.flash = "to: want YYYY-MM-DD"
		return m, clearFlashAfter()
	}

	it, err := identity.Range(from, to)
	if err != nil {
		m.flash = err.Error()
		return m, clearFlashAfter()
	}

	m.it = it
	m.total = identity.RangeCount(from, to)
	m.pageNo = 0
	m.done = false
	m.flash = ""
	return m.nextPage(), nil
}

// nextPage pulls up to pageSize codes from the iterator.
func (m rangeModel) nextPage() rangeModel {
	page := make([]string, 0, m.pageSize)
	for len(page) < m.pageSize {
		code, ok := m.it.Next()
		if !ok {
			m.done = true
			break
		}
		page = append(page, code)
	}

	if len(page) == 0 {
		// keep showing the last page
		return m
	}

	m.page = page
	m.pageNo++
	m.cursor = 0
	return m
}

func (m rangeModel) handleBrowseKey(msg tea.KeyMsg) (rangeModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		// back to the form, keeping the dates
		m.it = nil
		m.page = nil
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(m.page)-1 {
			m.cursor++
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyEnter) && len(m.page) > 0 {
		if err := copyToClipboard(m.page[m.cursor]); err != nil {
			m.flash = "copy: " + err.Error()
			return m, clearFlashAfter()
		}
		m.flash = "copied!"
		return m, clearFlashAfter()
	}

	switch msg.String() {
	case "n":
		if m.done {
			m.flash = "end of range"
			return m, clearFlashAfter()
		}
		return m.nextPage(), nil

	case "r":
		m.it.Reset()
		m.pageNo = 0
		m.done = false
		return m.nextPage(), nil
	}

	return m, nil
}

func (m rangeModel) nextField() rangeModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % int(rangeFieldCount)
	m.inputs[m.focus].Focus()
	return m
}

func (m rangeModel) prevField() rangeModel {
	m.inputs[m.focus].Blur()
	m.focus--
	if m.focus < 0 {
		m.focus = int(rangeFieldCount) - 1
	}
	m.inputs[m.focus].Focus()
	return m
}

func (m rangeModel) updateInput(msg tea.Msg) (rangeModel, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m rangeModel) View() string {
	accentStyle := lipgloss.NewStyle().Foreground(zstyle.ZburnAccent).Bold(true)

	s := "\n"

	if !m.browsing() {
		for i, input := range m.inputs {
			label := zstyle.MutedText.Render(fmt.Sprintf("  %-6s", rangeLabels[i]))
			if i == m.focus {
				s += accentStyle.Render("▸") + " " + label + input.View() + "\n"
			} else {
				s += "  " + label + input.View() + "\n"
			}
		}
	} else {
		pages := (m.total + m.pageSize - 1) / m.pageSize
		s += "  " + zstyle.Subtitle.Render(fmt.Sprintf("%s to %s", m.inputs[rangeFrom].Value(), m.inputs[rangeTo].Value()))
		s += "  " + zstyle.MutedText.Render(fmt.Sprintf("page %d of %d, %d codes", m.pageNo, pages, m.total)) + "\n\n"

		for i, code := range m.page {
			if i == m.cursor {
				s += "  " + accentStyle.Render("▸") + " " + code + "\n"
			} else {
				s += "    " + code + "\n"
			}
		}

		if m.done {
			s += "\n  " + zstyle.MutedText.Render("end of range") + "\n"
		}
	}

	s += "\n"

	// always reserve a line for flash to prevent layout shift
	if m.flash != "" {
		s += "  " + zstyle.StatusWarn.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}

	return s
}
