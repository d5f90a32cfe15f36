package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// SpinnerFrames defines the animation frames (◐ ◓ ◑ ◒) shared by every
// long-running operation display.
var SpinnerFrames = spinner.Spinner{
	Frames: []string{"◐", "◓", "◑", "◒"},
	FPS:    time.Second / 10, // 100ms per frame
}

// doneMsg carries the wrapped operation's result back into the program.
type doneMsg struct {
	err error
}

// SpinnerModel is a Bubble Tea model that animates while a wrapped
// function runs in the background.
type SpinnerModel struct {
	spinner spinner.Model
	Label   string
	Err     error
	done    bool
}

// NewSpinnerModel creates a spinner model with the given label.
func NewSpinnerModel(label string) SpinnerModel {
	sp := spinner.New()
	sp.Spinner = SpinnerFrames
	sp.Style = lipgloss.NewStyle().Foreground(ColorSecondary)

	return SpinnerModel{spinner: sp, Label: label}
}

// Init starts the spinner ticking.
func (m SpinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update advances the animation and stops the program once the wrapped
// operation reports back.
func (m SpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.done = true
		m.Err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

// View renders the animated line; the final state line is printed by Spin
// after the program exits so it survives the screen restore.
func (m SpinnerModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.Label)
}

// Spin runs fn while animating a spinner labeled label. When stdout is
// not a terminal (CI, pipes) it runs fn directly with no decoration.
// Returns fn's error either way.
func Spin(label string, fn func() error) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fn()
	}

	p := tea.NewProgram(NewSpinnerModel(label), tea.WithOutput(os.Stderr))

	go func() {
		p.Send(doneMsg{err: fn()})
	}()

	final, err := p.Run()
	if err != nil {
		// The display failed, not the operation; the goroutine above has
		// already run fn to completion by the time Run returns.
		return fmt.Errorf("progress display failed: %w", err)
	}

	m := final.(SpinnerModel)
	if m.Err != nil {
		fmt.Printf("%s %s\n", ErrorStyle.Render(SymbolFail), label)
		return m.Err
	}
	fmt.Printf("%s %s\n", SuccessStyle.Render(SymbolSuccess), label)
	return nil
}
