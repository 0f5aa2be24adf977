package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"sentencematch/internal/catalogue"
	"sentencematch/internal/config"
	"sentencematch/sentence"
)

var (
	titleStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1).
			Bold(true)

	matchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	missStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	entryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newReplCmd(defaults config.Defaults) *cobra.Command {
	var intentsPath string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactively try utterances against an intent catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			if intentsPath == "" {
				return fmt.Errorf("no --intents given and SENTENCEMATCH_INTENTS is unset")
			}
			intents, err := catalogue.Load(intentsPath)
			if err != nil {
				return err
			}

			p := tea.NewProgram(newReplModel(intents))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&intentsPath, "intents", defaults.IntentsPath, "path to the YAML intent catalogue")
	return cmd
}

type replModel struct {
	intents *sentence.Intents
	input   textinput.Model
	lines   []string
	quitting bool
}

func newReplModel(intents *sentence.Intents) replModel {
	ti := textinput.New()
	ti.Placeholder = "turn on the kitchen lights"
	ti.Focus()

	return replModel{intents: intents, input: ti}
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			utterance := strings.TrimSpace(m.input.Value())
			if utterance != "" {
				m.lines = append(m.lines, m.evaluate(utterance))
			}
			m.input.SetValue("")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m replModel) evaluate(utterance string) string {
	result, ok, err := sentence.Recognize(utterance, m.intents)
	if err != nil {
		return missStyle.Render(fmt.Sprintf("%s -> error: %v", utterance, err))
	}
	if !ok {
		return missStyle.Render(fmt.Sprintf("%s -> no match", utterance))
	}

	var entities []string
	for _, e := range result.EntitiesList {
		entities = append(entities, fmt.Sprintf("%s=%v", e.Name, e.Value))
	}
	summary := result.Intent.Name
	if len(entities) > 0 {
		summary += " (" + strings.Join(entities, ", ") + ")"
	}
	return fmt.Sprintf("%s -> %s", utterance, matchStyle.Render(summary))
}

func (m replModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("sentencematch repl"))
	b.WriteString("\n\n")
	for _, line := range m.lines {
		b.WriteString(entryStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter to try, esc to quit"))
	return b.String()
}
