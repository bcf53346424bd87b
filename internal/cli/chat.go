package cli

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/acolumban/loftybot/internal/bot"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive chat about the converter catalog",
	Long: `Start an interactive chat session. Prior turns are kept so the
fallback LLM sees the recent conversation.

Press Ctrl+C or type /quit to leave.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

// Theme holds the color scheme for the chat display.
type Theme struct {
	User      lipgloss.Color
	Assistant lipgloss.Color
	Hint      lipgloss.Color
	Error     lipgloss.Color
}

var defaultTheme = Theme{
	User:      lipgloss.Color("#5FAFD7"), // light blue
	Assistant: lipgloss.Color("#00D787"), // green
	Hint:      lipgloss.Color("#6C6C6C"), // dim gray
	Error:     lipgloss.Color("#FF005F"), // red
}

func (t Theme) userStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.User).Bold(true)
}

func (t Theme) assistantStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Assistant)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// answerMsg carries one finished engine answer back into the UI loop.
type answerMsg struct {
	question string
	text     string
	err      error
}

// chatModel is the bubbletea model for the chat session.
type chatModel struct {
	engine  *bot.Engine
	input   textinput.Model
	history []bot.Turn
	lines   []string
	theme   Theme
	waiting bool
}

func newChatModel(engine *bot.Engine) chatModel {
	ti := textinput.New()
	ti.Placeholder = "Ask about a converter, e.g. \"price of 40025\""
	ti.Focus()

	return chatModel{
		engine: engine,
		input:  ti,
		theme:  defaultTheme,
		lines:  []string{defaultTheme.hintStyle().Render("Connected to the converter catalog. /quit to exit.")},
	}
}

// Init returns the initial command.
func (m chatModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and returns the updated model.
func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter":
			if m.waiting {
				return m, nil
			}
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				return m, nil
			}
			if question == "/quit" || question == "/exit" {
				return m, tea.Quit
			}
			m.input.SetValue("")
			m.waiting = true
			m.lines = append(m.lines, m.theme.userStyle().Render("you: ")+question)
			return m, m.ask(question)
		}

	case answerMsg:
		m.waiting = false
		if msg.err != nil {
			m.lines = append(m.lines, m.theme.hintStyle().Render("session ended: "+msg.err.Error()))
			return m, tea.Quit
		}
		m.lines = append(m.lines, m.theme.assistantStyle().Render("bot: ")+msg.text)
		m.history = append(m.history, bot.Turn{User: msg.question, Assistant: msg.text})
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the transcript and the input line.
func (m chatModel) View() tea.View {
	var b strings.Builder
	for _, line := range m.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.waiting {
		b.WriteString(m.theme.hintStyle().Render("thinking..."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	return tea.NewView(b.String())
}

// ask runs the blocking engine call as a command so Update never blocks.
func (m chatModel) ask(question string) tea.Cmd {
	history := append([]bot.Turn(nil), m.history...)
	return func() tea.Msg {
		text, err := m.engine.Answer(context.Background(), question, history)
		return answerMsg{question: question, text: text, err: err}
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	p := tea.NewProgram(newChatModel(engine))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat UI error: %w", err)
	}
	return nil
}
