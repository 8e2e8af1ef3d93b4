// Copyright (c) 2026 Trustgen Team
// Trustgen - trust-fixture generation utility
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/qureni/trustgen/internal/fixtures"
	"github.com/qureni/trustgen/internal/i18n"
)

// statusMsg carries a fresh snapshot of the fixture directory.
type statusMsg []fixtures.ArtifactStatus

type statusModel struct {
	gen     *fixtures.Generator
	table   table.Model
	present int
	total   int
}

func newStatusModel(gen *fixtures.Generator) statusModel {
	columns := []table.Column{
		{Title: i18n.T("status.header.owner"), Width: 16},
		{Title: i18n.T("status.header.kind"), Width: 20},
		{Title: i18n.T("status.header.file"), Width: 44},
		{Title: i18n.T("status.header.state"), Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorSubtle).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(colorWhite).
		Background(colorHighlight).
		Bold(false)
	t.SetStyles(s)

	m := statusModel{gen: gen, table: t}
	m.applyStatuses(gen.Status())
	return m
}

func (m *statusModel) applyStatuses(statuses []fixtures.ArtifactStatus) {
	var rows []table.Row
	m.present = 0
	m.total = len(statuses)
	for _, s := range statuses {
		file := "-"
		if s.Artifact.Path != "" {
			file = filepath.Base(s.Artifact.Path)
		}
		state := errorStyle.Render(i18n.T("status.state_missing"))
		if s.Present {
			state = successStyle.Render(i18n.T("status.state_present"))
			if s.Modified {
				state = errorStyle.Render(i18n.T("status.state_modified"))
			}
			m.present++
		}
		rows = append(rows, table.Row{s.Artifact.Owner, string(s.Artifact.Kind), file, state})
	}
	m.table.SetRows(rows)
}

func (m statusModel) Init() tea.Cmd {
	return nil
}

func (m statusModel) refresh() tea.Msg {
	return statusMsg(m.gen.Status())
}

func (m statusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.refresh
		}
	case statusMsg:
		m.applyStatuses(msg)
		return m, nil
	case tea.WindowSizeMsg:
		h, _ := docStyle.GetFrameSize()
		m.table.SetWidth(msg.Width - h)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m statusModel) View() string {
	title := titleStyle.Render(i18n.T("status.title", m.gen.Dir))
	summary := fmt.Sprintf("%d/%d", m.present, m.total)
	if m.present == m.total {
		summary = successStyle.Render(summary)
	} else {
		summary = errorStyle.Render(summary)
	}
	help := helpStyle.Render(i18n.T("status.help"))
	return docStyle.Render(fmt.Sprintf("%s\n%s\n\n%s %s\n\n%s",
		title, m.table.View(), i18n.T("status.summary"), summary, help))
}

// Run starts the interactive status view for the given generator.
func Run(gen *fixtures.Generator) error {
	p := tea.NewProgram(newStatusModel(gen), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
