package dashboard

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"manetbench/internal/metrics"
)

func sampleRows() []metrics.SnapshotRow {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := make([]metrics.SnapshotRow, 0, 3)
	for i := 1; i <= 3; i++ {
		rows = append(rows, metrics.SnapshotRow{
			RunID:           "run-1",
			Protocol:        "AODV",
			Time:            float64(i),
			ThroughputKbps:  4.096,
			PacketsReceived: uint64(i * 8),
			Sinks:           5,
			TxPower:         7.5,
			PDR:             0.95,
			AvgDelay:        0.012,
			RoutingOverhead: uint64(i * 10),
			Timestamp:       base.Add(time.Duration(i) * time.Second),
		})
	}
	return rows
}

func TestModel_ViewAfterResize(t *testing.T) {
	m := NewModel("AODV", sampleRows())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)

	view := m.View()
	if !strings.Contains(view, "AODV") {
		t.Error("view missing protocol name")
	}
	if !strings.Contains(view, "3 ticks") {
		t.Error("view missing tick count")
	}
	if !strings.Contains(view, "4.0960") {
		t.Error("view missing throughput column")
	}
}

func TestModel_CursorSelectsTick(t *testing.T) {
	m := NewModel("OLSR", sampleRows())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)

	row, ok := m.selectedRow()
	if !ok {
		t.Fatal("no selected row")
	}
	if row.Time != 2 {
		t.Errorf("selected tick = %v, want 2", row.Time)
	}
}

func TestModel_QuitKeys(t *testing.T) {
	m := NewModel("AODV", sampleRows())
	for _, key := range []string{"q", "esc", "ctrl+c"} {
		var msg tea.KeyMsg
		switch key {
		case "q":
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		}
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Errorf("%s did not quit", key)
		}
	}
}
