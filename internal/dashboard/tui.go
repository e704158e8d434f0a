package dashboard

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"manetbench/internal/analyze"
	"manetbench/internal/metrics"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 1)
	paneStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	detailTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
)

// Model is the interactive results browser: a scrollable table of per-tick
// samples with a detail pane for the selected tick and the run summary.
type Model struct {
	protocol string
	rows     []metrics.SnapshotRow
	stats    analyze.ProtocolStats

	tbl    table.Model
	detail viewport.Model
	width  int
	height int
	ready  bool
}

// NewModel builds the browser for one protocol's result rows.
func NewModel(protocol string, rows []metrics.SnapshotRow) Model {
	cols := []table.Column{
		{Title: "Time", Width: 8},
		{Title: "Kbps", Width: 10},
		{Title: "Recv", Width: 8},
		{Title: "PDR", Width: 8},
		{Title: "AvgDelay", Width: 10},
		{Title: "Overhead", Width: 10},
	}
	trows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		trows = append(trows, table.Row{
			fmt.Sprintf("%.0f", r.Time),
			fmt.Sprintf("%.4f", r.ThroughputKbps),
			strconv.FormatUint(r.PacketsReceived, 10),
			fmt.Sprintf("%.4f", r.PDR),
			fmt.Sprintf("%.4f", r.AvgDelay),
			strconv.FormatUint(r.RoutingOverhead, 10),
		})
	}

	tbl := table.New(
		table.WithColumns(cols),
		table.WithRows(trows),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	st.Selected = st.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	tbl.SetStyles(st)

	return Model{
		protocol: protocol,
		rows:     rows,
		stats:    analyze.Compute(protocol, rows),
		tbl:      tbl,
		detail:   viewport.New(0, 0),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	m.detail.SetContent(m.detailContent())
	return m, cmd
}

func (m *Model) resize() {
	tableHeight := m.height/2 - 4
	if tableHeight < 4 {
		tableHeight = 4
	}
	m.tbl.SetHeight(tableHeight)
	m.detail.Width = m.width - 4
	m.detail.Height = m.height - tableHeight - 7
	if m.detail.Height < 3 {
		m.detail.Height = 3
	}
	m.detail.SetContent(m.detailContent())
}

func (m Model) detailContent() string {
	width := m.detail.Width
	if width <= 0 {
		width = 80
	}
	var body string
	if row, ok := m.selectedRow(); ok {
		body = fmt.Sprintf("%s\ntick %.0fs  throughput %.4f kbps  received %d (cumulative)  pdr %.4f  avg delay %.6fs  routing frames %d\n\n",
			detailTitle.Render("Selected tick"),
			row.Time, row.ThroughputKbps, row.PacketsReceived, row.PDR, row.AvgDelay, row.RoutingOverhead)
	}
	body += detailTitle.Render("Run summary") + "\n" + analyze.DetailedReport([]analyze.ProtocolStats{m.stats})
	return wordwrap.String(body, width)
}

func (m Model) selectedRow() (metrics.SnapshotRow, bool) {
	i := m.tbl.Cursor()
	if i < 0 || i >= len(m.rows) {
		return metrics.SnapshotRow{}, false
	}
	return m.rows[i], true
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading results..."
	}
	title := titleStyle.Render(fmt.Sprintf("manetbench results: %s (%d ticks)", m.protocol, len(m.rows)))
	help := helpStyle.Render("up/down: select tick  q: quit")
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		paneStyle.Render(m.tbl.View()),
		paneStyle.Render(m.detail.View()),
		help,
	)
}

// RunTUI opens the interactive browser over the given result rows and blocks
// until the user quits.
func RunTUI(protocol string, rows []metrics.SnapshotRow) error {
	p := tea.NewProgram(NewModel(protocol, rows), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
