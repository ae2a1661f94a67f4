package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/mystery-game/internal/engine"
)

type sessionState int

const (
	statePlaying sessionState = iota
	// a step is being processed; input is ignored
	stateWaiting
	stateDone
)

type model struct {
	state     sessionState
	ctx       context.Context
	game      *engine.Game
	textInput textinput.Model
	viewport  viewport.Model
	gameLog   string
	prompt    string
	snap      engine.Snapshot // taken inside step commands, so View never touches the game
	width     int
	height    int
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87AFD7"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)
)

func NewModel(ctx context.Context, game *engine.Game) model {
	ti := textinput.New()
	ti.Placeholder = "Type your choice..."
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 40

	return model{
		state:     stateWaiting,
		ctx:       ctx,
		game:      game,
		textInput: ti,
		viewport:  viewport.New(80, 20),
		snap:      game.Snapshot(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.start())
}

// stepMsg carries the result of one engine step.
type stepMsg struct {
	out  engine.Output
	snap engine.Snapshot
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			if m.state == stateDone {
				return m, tea.Quit
			}
			if m.state != statePlaying {
				return m, nil
			}
			input := m.textInput.Value()
			m.textInput.Reset()

			if input == "/quit" {
				m.state = stateWaiting
				return m, m.quit()
			}

			styledInput := userStyle.Width(m.logWidth()).Render("> " + input)
			m.gameLog += "\n\n" + styledInput + "\n\n"
			m.refresh()
			m.state = stateWaiting
			return m, m.handle(input)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.logWidth()
		m.viewport.Height = max(msg.Height-8, 3)
		m.refresh()

	case stepMsg:
		if msg.out.Text != "" {
			m.gameLog += gameStyle.Width(m.logWidth()).Render(msg.out.Text) + "\n"
		}
		m.prompt = msg.out.Prompt
		m.snap = msg.snap
		if msg.out.Phase.Done() {
			m.state = stateDone
			m.textInput.Blur()
		} else {
			m.state = statePlaying
		}
		m.refresh()
		return m, nil
	}

	if m.state == statePlaying {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	logView := m.viewport.View()
	stateView := m.renderState()
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, logView, stateView)

	var footer string
	switch m.state {
	case stateDone:
		footer = helpStyle.Render("The case is closed. Press Enter or Esc to leave.")
	case stateWaiting:
		footer = helpStyle.Render("...")
	default:
		footer = lipgloss.JoinVertical(lipgloss.Left,
			m.textInput.View(),
			helpStyle.Render("Commands: /quit, or type your choice."),
		)
	}

	return "\n" + lipgloss.JoinVertical(lipgloss.Left, mainView, "\n"+footer) + "\n"
}

func (m model) renderState() string {
	snap := m.snap

	var b strings.Builder
	b.WriteString(titleStyle.Render("CASE") + "\n" + snap.Case + "\n\n")
	if snap.Player != "" {
		b.WriteString(titleStyle.Render("DETECTIVE") + "\n" + snap.Player + "\n\n")
	}
	if snap.LevelName != "" {
		b.WriteString(titleStyle.Render("LEVEL") + "\n")
		fmt.Fprintf(&b, "%d/%d %s\n\n", min(snap.Level+1, snap.Levels), snap.Levels, snap.LevelName)
	}
	if f := snap.Fight; f != nil {
		b.WriteString(titleStyle.Render("FIGHT") + "\n")
		fmt.Fprintf(&b, "%s: %d\n%s: %d\n\n", f.Player.Name, f.Player.Health, f.Opponent.Name, f.Opponent.Health)
	}
	writeList(&b, "CLUES", snap.Clues)
	writeList(&b, "INVENTORY", snap.Inventory)

	stateWidth := int(float64(m.width) * 0.23)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(b.String())
}

func writeList(b *strings.Builder, title string, items []string) {
	b.WriteString(titleStyle.Render(title) + "\n")
	if len(items) == 0 {
		b.WriteString("(empty)\n\n")
		return
	}
	for _, item := range items {
		b.WriteString("- " + item + "\n")
	}
	b.WriteString("\n")
}

func (m *model) refresh() {
	content := m.gameLog
	if m.prompt != "" {
		content += "\n" + promptStyle.Width(m.logWidth()).Render(m.prompt)
	}
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

func (m model) logWidth() int {
	if m.width == 0 {
		return 80
	}
	return int(float64(m.width) * 0.75)
}

// step runs f against the game inside a command. Only one step is in flight at a time.
func (m model) step(f func() engine.Output) tea.Cmd {
	return func() tea.Msg {
		out := f()
		return stepMsg{out: out, snap: m.game.Snapshot()}
	}
}

func (m model) start() tea.Cmd {
	return m.step(func() engine.Output { return m.game.Start(m.ctx) })
}

func (m model) handle(input string) tea.Cmd {
	return m.step(func() engine.Output { return m.game.Handle(m.ctx, input) })
}

func (m model) quit() tea.Cmd {
	return m.step(m.game.Quit)
}

func Run(ctx context.Context, game *engine.Game) error {
	p := tea.NewProgram(NewModel(ctx, game), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
