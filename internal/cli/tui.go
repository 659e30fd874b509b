package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/linebalance/pkg/heuristic"
	"github.com/matzehuels/linebalance/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	overloadStyle     = lipgloss.NewStyle().Foreground(colorRed)
	headerStyle       = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// StationListModel - Interactive station browser
// =============================================================================

// StationListModel is the bubbletea model of the inspect command.
type StationListModel struct {
	Result *pipeline.Result
	Loads  []heuristic.StationLoad
	Cursor int
	Offset int
	Height int
}

// NewStationListModel creates a station browser for a solved result.
func NewStationListModel(res *pipeline.Result) StationListModel {
	return StationListModel{
		Result: res,
		Loads:  heuristic.Loads(res.Problem, res.Solution),
		Height: 10,
	}
}

func (m StationListModel) Init() tea.Cmd {
	return nil
}

func (m StationListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Loads)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = max(len(m.Loads)-1, 0)
			m.Offset = max(m.Cursor-m.Height+1, 0)
		}
	case tea.WindowSizeMsg:
		// Title, help, summary, table borders and the detail pane.
		m.Height = max(msg.Height-18, 3)
		m.Offset = max(min(m.Offset, m.Cursor), m.Cursor-m.Height+1, 0)
	}
	return m, nil
}

func (m StationListModel) View() string {
	var b strings.Builder
	res := m.Result

	b.WriteString(StyleTitle.Render("Stations of " + res.Name()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")
	b.WriteString(summaryLine(res))
	b.WriteString("\n")

	end := min(m.Offset+m.Height, len(m.Loads))
	b.WriteString(stationTable(m.Loads[m.Offset:end], res.Instance.C, m.Cursor-m.Offset).Render())
	b.WriteString("\n")

	if len(m.Loads) > 0 {
		b.WriteString(m.detail(m.Loads[m.Cursor]))
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Loads))))
	}
	return b.String()
}

// detail lists the tasks of one station with their station estimates.
func (m StationListModel) detail(l heuristic.StationLoad) string {
	inst := m.Result.Instance
	est := m.Result.Problem.Estimates

	var b strings.Builder
	b.WriteString(listSelectedStyle.Render(fmt.Sprintf("Station %d", l.Station)))
	b.WriteString("\n")
	rows := make([][]string, len(l.Tasks))
	for i, task := range l.Tasks {
		setup := "-"
		if i > 0 {
			setup = strconv.Itoa(inst.SF.At(l.Tasks[i-1], task))
		}
		rows[i] = []string{
			strconv.Itoa(task + 1),
			strconv.Itoa(inst.T[task]),
			setup,
			strconv.Itoa(est.Earliest[task]),
			strconv.Itoa(est.Latest[task]),
		}
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Task", "Time", "Setup in", "E", "T").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle()
		})
	b.WriteString(t.Render())
	return b.String()
}

// =============================================================================
// Shared rendering
// =============================================================================

// summaryLine shows the bounds next to the station count.
func summaryLine(res *pipeline.Result) string {
	b := res.Bounds
	parts := []string{
		fmt.Sprintf("n %s", StyleNumber.Render(strconv.Itoa(res.Instance.N))),
		fmt.Sprintf("c %s", StyleNumber.Render(strconv.Itoa(res.Instance.C))),
		fmt.Sprintf("LM1 %d  LMS1 %d  LM2 %d  LM3 %d", b.LM1, b.LMS1, b.LM2, b.LM3),
		fmt.Sprintf("best %s", StyleNumber.Render(strconv.Itoa(b.Best()))),
	}
	if res.Solution != nil {
		parts = append(parts, fmt.Sprintf("stations %s", StyleHighlight.Render(strconv.Itoa(res.Solution.Stations))))
	}
	if opt := res.Instance.Optimum; opt != nil {
		parts = append(parts, fmt.Sprintf("optimum %d", *opt))
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

// stationTable renders station loads. selected is the row to highlight, -1
// for none. Overloaded stations are red.
func stationTable(loads []heuristic.StationLoad, c, selected int) *table.Table {
	rows := make([][]string, len(loads))
	for i, l := range loads {
		rows[i] = []string{
			strconv.Itoa(l.Station),
			formatTasks(l.Tasks),
			strconv.Itoa(l.TaskTime),
			strconv.Itoa(l.Forward),
			strconv.Itoa(l.Closing),
			fmt.Sprintf("%d/%d", l.Load(), c),
			strconv.Itoa(l.Idle),
		}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Station", "Tasks", "Time", "Setup", "Closing", "Load", "Idle").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row < 0 || row >= len(loads) {
				return lipgloss.NewStyle()
			}
			s := lipgloss.NewStyle()
			if loads[row].Idle < 0 {
				s = overloadStyle
			}
			if row == selected {
				s = s.Bold(true).Foreground(colorCyan)
			}
			return s
		})
}

// formatTasks lists 1-based task ids, shortened for long stations.
func formatTasks(tasks []int) string {
	const limit = 12
	parts := make([]string, 0, min(len(tasks), limit)+1)
	for i, t := range tasks {
		if i == limit {
			parts = append(parts, fmt.Sprintf("… +%d", len(tasks)-limit))
			break
		}
		parts = append(parts, strconv.Itoa(t+1))
	}
	return strings.Join(parts, " ")
}
