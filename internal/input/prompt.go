// Package input asks the user for the path to analyze when none was given.
//
// On a terminal the prompt is a small Bubble Tea text field; anywhere else
// (pipes, redirected stdin, tests) a single line is read from the reader.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// PromptText is shown before the path is read.
const PromptText = "Absolute file/directory path that should be analyzed"

// ErrCancelled is returned when the interactive prompt is dismissed.
var ErrCancelled = errors.New("path prompt cancelled")

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// PromptPath asks for a path on out and reads the answer from in.
// The returned path is trimmed; an empty answer is not an error here.
func PromptPath(in io.Reader, out io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return promptInteractive(f, out)
	}
	return promptLine(in, out)
}

func promptLine(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprintf(out, "%s: ", PromptText)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read path: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func promptInteractive(in *os.File, out io.Writer) (string, error) {
	p := tea.NewProgram(newModel(), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("path prompt failed: %w", err)
	}

	m, ok := final.(model)
	if !ok || m.cancelled {
		return "", ErrCancelled
	}
	return m.Value(), nil
}

// model is the Bubble Tea model behind the interactive prompt.
type model struct {
	input     textinput.Model
	submitted bool
	cancelled bool
}

func newModel() model {
	ti := textinput.New()
	ti.Placeholder = "/var/log"
	ti.Prompt = "> "
	ti.CharLimit = 4096
	ti.Width = 60
	ti.Focus()

	return model{input: ti}
}

// Value returns the trimmed text entered so far.
func (m model) Value() string {
	return strings.TrimSpace(m.input.Value())
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.submitted = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.submitted || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(PromptText))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("enter to confirm, esc to cancel"))
	b.WriteString("\n")
	return b.String()
}
