package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zpin/internal/identity"
	"github.com/zarlcorp/zpin/internal/pin"
)

// validateModel checks a code as it is typed.
type validateModel struct {
	input textinput.Model
	now   func() time.Time

	// result of the last complete code
	identity identity.Identity
	err      error
	flash    string
}

func newValidateModel(now func() time.Time) validateModel {
	ti := textinput.New()
	ti.Placeholder = "38610150180"
	ti.Focus()
	ti.CharLimit = pin.Length
	ti.Width = pin.Length + 2

	return validateModel{input: ti, now: now}
}

func (m validateModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m validateModel) Update(msg tea.Msg) (validateModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if msg.Type == tea.KeyEsc {
			return m, navigate(viewMenu)
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			return m.copyResult()
		}

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.check()
	return m, cmd
}

// check revalidates the input once it has the full length.
func (m *validateModel) check() {
	m.identity = identity.Identity{}
	m.err = nil

	code := strings.TrimSpace(m.input.Value())
	if len(code) < pin.Length {
		return
	}

	m.identity, m.err = identity.Describe(code)
}

func (m validateModel) complete() bool {
	return len(strings.TrimSpace(m.input.Value())) >= pin.Length
}

func (m validateModel) copyResult() (validateModel, tea.Cmd) {
	if !m.complete() || m.err != nil {
		return m, nil
	}
	if err := copyToClipboard(m.identity.PIN); err != nil {
		m.flash = "copy: " + err.Error()
		return m, clearFlashAfter()
	}
	m.flash = "copied!"
	return m, clearFlashAfter()
}

func (m validateModel) View() string {
	s := fmt.Sprintf("\n  %s\n  %s\n\n", zstyle.MutedText.Render("personal identification code:"), m.input.View())

	switch {
	case !m.complete():
		s += "  " + zstyle.MutedText.Render(fmt.Sprintf("%d/%d digits", len(m.input.Value()), pin.Length)) + "\n"
	case m.err != nil:
		s += "  " + zstyle.StatusErr.Render("invalid "+pin.Kind(m.err)) + "\n"
		s += "  " + zstyle.MutedText.Render(m.err.Error()) + "\n"
	default:
		id := m.identity
		s += "  " + zstyle.StatusOK.Render("valid") + "\n\n"
		s += fmt.Sprintf("    %s %s\n", zstyle.MutedText.Render(fmt.Sprintf("%-10s", "gender")), id.Gender)
		s += fmt.Sprintf("    %s %s\n", zstyle.MutedText.Render(fmt.Sprintf("%-10s", "born")), id.BirthDate.Format("2006-01-02"))
		s += fmt.Sprintf("    %s %s\n", zstyle.MutedText.Render(fmt.Sprintf("%-10s", "serial")), id.Serial)
		s += fmt.Sprintf("    %s %d\n", zstyle.MutedText.Render(fmt.Sprintf("%-10s", "age")), id.Age(m.now()))
	}

	s += "\n"
	if m.flash != "" {
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}
	return s
}
