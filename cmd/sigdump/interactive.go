package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type interactiveModel struct {
	err    error
	styles palette
	output string
	input  textinput.Model
	method bool
}

func newInteractiveModel(initial string, method bool) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "15 12 05 01 08"
	ti.Prompt = "blob: "
	ti.Width = 60
	ti.SetValue(initial)
	ti.Focus()

	m := &interactiveModel{
		styles: colorPalette(),
		input:  ti,
		method: method,
	}
	m.decode()
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.method = !m.method
			m.decode()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.decode()
	return m, cmd
}

func (m *interactiveModel) decode() {
	m.output, m.err = "", nil
	if strings.TrimSpace(m.input.Value()) == "" {
		return
	}
	data, err := parseHex(m.input.Value())
	if err != nil {
		m.err = err
		return
	}
	var b strings.Builder
	if err := dump(&b, data, m.method, m.styles); err != nil {
		m.err = err
		return
	}
	m.output = b.String()
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	mode := "type signature"
	if m.method {
		mode = "method signature"
	}
	b.WriteString(m.styles.title.Render("Signature Dump"))
	b.WriteString(" ")
	b.WriteString(m.styles.kind.Render(mode))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(m.styles.bad.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case m.output != "":
		b.WriteString(m.output)
	}

	b.WriteString("\n")
	b.WriteString(m.styles.help.Render("type hex bytes • tab toggle type/method • esc quit"))
	return b.String()
}

func runInteractive(initial string, method bool) error {
	p := tea.NewProgram(newInteractiveModel(initial, method), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
