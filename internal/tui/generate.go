package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zpin/internal/identity"
	"github.com/zarlcorp/zpin/internal/pin"
)

// identityField represents a labeled field for display and selection.
type identityField struct {
	label string
	value string
}

// generateModel displays a generated code with its decoded fields.
type generateModel struct {
	identity identity.Identity
	gender   pin.Gender
	fields   []identityField
	cursor   int
	flash    string
	flashAt  time.Time
}

// regenerateMsg asks the root for a new code. An empty gender is random.
type regenerateMsg struct {
	gender pin.Gender
}

// flashMsg clears the flash after a timeout.
type flashMsg struct{}

func newGenerateModel(id identity.Identity, gender pin.Gender, now time.Time) generateModel {
	return generateModel{
		identity: id,
		gender:   gender,
		fields:   identityFields(id, now),
	}
}

func identityFields(id identity.Identity, now time.Time) []identityField {
	return []identityField{
		{"pin", id.PIN},
		{"gender", id.Gender.String()},
		{"born", id.BirthDate.Format("2006-01-02")},
		{"century", strconv.Itoa(id.Century)},
		{"serial", id.Serial},
		{"age", strconv.Itoa(id.Age(now))},
	}
}

func (m generateModel) Init() tea.Cmd {
	return nil
}

func (m generateModel) Update(msg tea.Msg) (generateModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m generateModel) handleKey(msg tea.KeyMsg) (generateModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, navigate(viewMenu)
	}

	if len(m.fields) == 0 {
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		// copy selected field
		val := m.fields[m.cursor].value
		if err := copyToClipboard(val); err != nil {
			return m.setFlash("copy: " + err.Error()), clearFlashAfter()
		}
		return m.setFlash("copied!"), clearFlashAfter()
	}

	switch msg.String() {
	case "c":
		if err := copyToClipboard(m.allFieldsText()); err != nil {
			return m.setFlash("copy: " + err.Error()), clearFlashAfter()
		}
		return m.setFlash("copied all!"), clearFlashAfter()

	case "n":
		return m, regenerate(m.gender)
	case "m":
		return m, regenerate(pin.Male)
	case "f":
		return m, regenerate(pin.Female)
	case "r":
		return m, regenerate("")
	}

	return m, nil
}

func regenerate(g pin.Gender) tea.Cmd {
	return func() tea.Msg { return regenerateMsg{gender: g} }
}

func (m generateModel) setFlash(msg string) generateModel {
	m.flash = msg
	m.flashAt = time.Now()
	return m
}

func clearFlashAfter() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return flashMsg{}
	})
}

func (m generateModel) allFieldsText() string {
	var b strings.Builder
	for _, f := range m.fields {
		fmt.Fprintf(&b, "%s: %s\n", f.label, f.value)
	}
	return b.String()
}

func (m generateModel) View() string {
	title := zstyle.Title.Render("generated code")
	s := fmt.Sprintf("\n  %s  %s\n\n", title, zstyle.MutedText.Render(genderLabel(m.gender)))

	for i, f := range m.fields {
		label := zstyle.MutedText.Render(fmt.Sprintf("%-10s", f.label))
		if i == m.cursor {
			s += zstyle.ActiveBorder.Render(fmt.Sprintf("  > %s %s", label, f.value)) + "\n"
		} else {
			s += fmt.Sprintf("    %s %s\n", label, f.value)
		}
	}

	s += "\n"

	// always reserve a line for flash to prevent layout shift
	if m.flash != "" {
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}

	return s
}

func genderLabel(g pin.Gender) string {
	if g == "" {
		return "random gender"
	}
	return g.String() + " only"
}
