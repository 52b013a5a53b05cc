package cli

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// keyWaitModel shows a prompt and quits on the first key press.
type keyWaitModel struct {
	prompt  string
	pressed bool
}

func (m keyWaitModel) Init() tea.Cmd {
	return nil
}

func (m keyWaitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		m.pressed = true
		return m, tea.Quit
	}
	return m, nil
}

func (m keyWaitModel) View() string {
	if m.pressed {
		return ""
	}
	return StyleDim.Render(m.prompt) + "\n"
}

// waitForKey blocks until a key is read from in or ctx is done, so an
// error stays on screen when the program was started from a launcher.
func waitForKey(ctx context.Context, in io.Reader, out io.Writer, prompt string) error {
	p := tea.NewProgram(keyWaitModel{prompt: prompt},
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err := p.Run()
	return err
}
