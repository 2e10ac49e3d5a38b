package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const pickerRows = 6

type option struct {
	id    int64
	label string
}

// picker is a type-to-filter single choice list. The highlighted option is
// the selection; nothing is selected until the user moves or types.
type picker struct {
	title       string
	placeholder string
	options     []option
	visible     []int
	query       string
	cursor      int
	focused     bool
}

func newPicker(title, placeholder string) *picker {
	return &picker{title: title, placeholder: placeholder, cursor: -1}
}

// setOptions replaces the choices and keeps the current selection when it is
// still offered.
func (p *picker) setOptions(opts []option) {
	prev := p.selected()
	p.options = opts
	p.refilter()
	p.cursor = -1
	if prev == 0 {
		return
	}
	for i, idx := range p.visible {
		if p.options[idx].id == prev {
			p.cursor = i
			return
		}
	}
}

func (p *picker) reset() {
	p.query = ""
	p.cursor = -1
	p.refilter()
}

func (p *picker) refilter() {
	labels := make([]string, len(p.options))
	for i, o := range p.options {
		labels[i] = o.label
	}
	p.visible = rank(p.query, labels)
	if p.cursor >= len(p.visible) {
		p.cursor = len(p.visible) - 1
	}
}

// selected returns the highlighted option id, or 0.
func (p *picker) selected() int64 {
	if p.cursor < 0 || p.cursor >= len(p.visible) {
		return 0
	}
	return p.options[p.visible[p.cursor]].id
}

func (p *picker) handleKey(m tea.KeyMsg, keys keyMap) {
	switch {
	case key.Matches(m, keys.Down):
		if p.cursor < len(p.visible)-1 {
			p.cursor++
		}
	case key.Matches(m, keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case m.Type == tea.KeyBackspace:
		if r := []rune(p.query); len(r) > 0 {
			p.query = string(r[:len(r)-1])
			p.refilter()
		}
	case m.Type == tea.KeyRunes || m.Type == tea.KeySpace:
		if m.Type == tea.KeySpace && len(m.Runes) == 0 {
			p.query += " "
		} else {
			p.query += string(m.Runes)
		}
		p.refilter()
		p.cursor = min(0, len(p.visible)-1)
	}
}

func (p *picker) view() string {
	var b strings.Builder
	head := labelStyle.Render(p.title)
	if p.focused {
		head = cursorStyle.Render("› " + p.title)
	}
	b.WriteString(head)
	if p.query != "" {
		b.WriteString(searchStyle.Render("  /" + p.query))
	}
	b.WriteString("\n")

	if p.selected() == 0 {
		b.WriteString(mutedStyle.Render("  "+p.placeholder) + "\n")
	}
	if len(p.visible) == 0 {
		if len(p.options) == 0 {
			b.WriteString(mutedStyle.Render("  nothing to choose from") + "\n")
		} else {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("  no match for %q", p.query)) + "\n")
		}
		return b.String()
	}
	if !p.focused {
		if id := p.selected(); id != 0 {
			b.WriteString(selectedStyle.Render("  ✓ "+p.options[p.visible[p.cursor]].label) + "\n")
		}
		return b.String()
	}

	start := 0
	if p.cursor >= pickerRows {
		start = p.cursor - pickerRows + 1
	}
	end := min(start+pickerRows, len(p.visible))
	for i := start; i < end; i++ {
		label := p.options[p.visible[i]].label
		if i == p.cursor {
			b.WriteString(selectedStyle.Render("  ✓ "+label) + "\n")
			continue
		}
		b.WriteString("    " + label + "\n")
	}
	if end < len(p.visible) {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("    +%d more", len(p.visible)-end)) + "\n")
	}
	return b.String()
}
