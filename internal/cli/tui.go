package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// WorkspaceListModel is the bubbletea model for interactive workspace selection.
type WorkspaceListModel struct {
	Workspaces []workspaceCandidate
	Cursor     int
	Selected   *workspaceCandidate
}

// NewWorkspaceListModel creates a new workspace list model.
func NewWorkspaceListModel(workspaces []workspaceCandidate) WorkspaceListModel {
	return WorkspaceListModel{Workspaces: workspaces}
}

func (m WorkspaceListModel) Init() tea.Cmd {
	return nil
}

func (m WorkspaceListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Workspaces)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = &m.Workspaces[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m WorkspaceListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Workspace"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("arrows: navigate  enter: select  q: quit"))
	b.WriteString("\n\n")

	for i, ws := range m.Workspaces {
		cursor := "  "
		if i == m.Cursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%s%-25s  %s", cursor, ws.Name, listDimStyle.Render(ws.Dir))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Workspaces))))

	return b.String()
}

// pickWorkspace runs the interactive workspace picker and returns the chosen
// directory, or "" when the user aborts without selecting.
func pickWorkspace(candidates []workspaceCandidate) (string, error) {
	p := tea.NewProgram(NewWorkspaceListModel(candidates))
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	fm, ok := finalModel.(WorkspaceListModel)
	if !ok || fm.Selected == nil {
		return "", nil
	}
	return fm.Selected.Dir, nil
}
