package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// selectModel picks exactly one choice.
type selectModel struct {
	prompt *Prompt
	cursor int
	done   bool
	quit   bool
}

func newSelectModel(p *Prompt) selectModel {
	m := selectModel{prompt: p}
	def, _ := p.DefaultValue().(string)
	for i, c := range p.Choices {
		if c.Value == def {
			m.cursor = i
			break
		}
	}
	return m
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc":
		m.quit = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.prompt.Choices)-1 {
			m.cursor++
		}
	case "enter":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m selectModel) View() string {
	if m.done {
		return header(m.prompt.Message, m.prompt.Choices[m.cursor].Label(), true)
	}

	var b strings.Builder
	b.WriteString(header(m.prompt.Message, "", false))
	for i, c := range m.prompt.Choices {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("❯ "+c.Name) + "\n")
		} else {
			b.WriteString("  " + c.Name + "\n")
		}
	}
	b.WriteString(hintStyle.Render("  [↑/↓] Navigate    [Enter] Select") + "\n")
	return b.String()
}

func (m selectModel) answer() any   { return m.prompt.Choices[m.cursor].Value }
func (m selectModel) aborted() bool { return m.quit }

// checkboxModel toggles any number of choices, one page at a time.
type checkboxModel struct {
	prompt   *Prompt
	cursor   int
	offset   int
	selected map[int]bool
	done     bool
	quit     bool
}

func newCheckboxModel(p *Prompt) checkboxModel {
	m := checkboxModel{prompt: p, selected: make(map[int]bool)}
	defaults, _ := p.DefaultValue().([]string)
	for i, c := range p.Choices {
		for _, v := range defaults {
			if c.Value == v {
				m.selected[i] = true
			}
		}
	}
	return m
}

func (m checkboxModel) Init() tea.Cmd { return nil }

func (m checkboxModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	size := m.prompt.pageSize()
	switch key.String() {
	case "ctrl+c", "esc":
		m.quit = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.prompt.Choices)-1 {
			m.cursor++
		}
	case " ", "space":
		if len(m.prompt.Choices) > 0 {
			m.selected[m.cursor] = !m.selected[m.cursor]
		}
	case "a":
		all := len(m.values()) == len(m.prompt.Choices)
		for i := range m.prompt.Choices {
			m.selected[i] = !all
		}
	case "enter":
		m.done = true
		return m, tea.Quit
	}

	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+size {
		m.offset = m.cursor - size + 1
	}
	return m, nil
}

func (m checkboxModel) View() string {
	if m.done {
		labels := make([]string, 0, len(m.prompt.Choices))
		for i, c := range m.prompt.Choices {
			if m.selected[i] {
				labels = append(labels, c.Label())
			}
		}
		return header(m.prompt.Message, strings.Join(labels, ", "), true)
	}

	var b strings.Builder
	b.WriteString(header(m.prompt.Message, "", false))
	end := min(m.offset+m.prompt.pageSize(), len(m.prompt.Choices))
	for i := m.offset; i < end; i++ {
		c := m.prompt.Choices[i]
		box := "◯"
		if m.selected[i] {
			box = checkStyle.Render("◉")
		}
		line := box + " " + c.Name
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("❯ ") + line + "\n")
			if c.Description != "" {
				b.WriteString(hintStyle.Render("    "+c.Description) + "\n")
			}
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString(hintStyle.Render("  [Space] Toggle    [a] All    [Enter] Confirm") + "\n")
	return b.String()
}

func (m checkboxModel) values() []string {
	values := []string{}
	for i, c := range m.prompt.Choices {
		if m.selected[i] {
			values = append(values, c.Value)
		}
	}
	return values
}

func (m checkboxModel) answer() any   { return m.values() }
func (m checkboxModel) aborted() bool { return m.quit }

// confirmModel answers yes or no.
type confirmModel struct {
	prompt *Prompt
	value  bool
	done   bool
	quit   bool
}

func newConfirmModel(p *Prompt) confirmModel {
	def, _ := p.DefaultValue().(bool)
	return confirmModel{prompt: p, value: def}
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch strings.ToLower(key.String()) {
	case "ctrl+c", "esc":
		m.quit = true
		return m, tea.Quit
	case "y":
		m.value = true
		m.done = true
		return m, tea.Quit
	case "n":
		m.value = false
		m.done = true
		return m, tea.Quit
	case "enter":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		answer := "No"
		if m.value {
			answer = "Yes"
		}
		return header(m.prompt.Message, answer, true)
	}
	hint := "(y/N)"
	if m.value {
		hint = "(Y/n)"
	}
	return promptStyle.Render("? "+m.prompt.Message) + " " + hintStyle.Render(hint) + "\n"
}

func (m confirmModel) answer() any   { return m.value }
func (m confirmModel) aborted() bool { return m.quit }

// textModel reads one line of free text.
type textModel struct {
	prompt *Prompt
	input  textinput.Model
	done   bool
	quit   bool
}

func newTextModel(p *Prompt) textModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder, _ = p.DefaultValue().(string)
	ti.Focus()
	return textModel{prompt: p, input: ti}
}

func (m textModel) Init() tea.Cmd { return textinput.Blink }

func (m textModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.quit = true
			return m, tea.Quit
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m textModel) View() string {
	if m.done {
		return header(m.prompt.Message, m.answer().(string), true)
	}
	return promptStyle.Render("? "+m.prompt.Message) + " " + m.input.View() + "\n"
}

func (m textModel) answer() any {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		def, _ := m.prompt.DefaultValue().(string)
		return def
	}
	return value
}

func (m textModel) aborted() bool { return m.quit }
