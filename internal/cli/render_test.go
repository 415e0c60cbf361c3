package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Clients",
		Headers: []string{"Client", "Spent"},
		Rows: [][]string{
			{"Acme Corp", "$1,820"},
			SeparatorRow,
			{"Total", "$5,180"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("lines = %d, want 8:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "Clients") {
		t.Fatalf("title line = %q", lines[0])
	}
	if lines[4] != "│ Acme Corp │ $1,820 │" {
		t.Fatalf("row = %q", lines[4])
	}
	for _, l := range lines[1:] {
		if lipgloss.Width(l) != lipgloss.Width(lines[1]) {
			t.Fatalf("ragged table:\n%s", out)
		}
	}
}

func TestRenderTable_Empty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Fatalf("RenderTable(empty) = %q, want empty", got)
	}
}

func TestRenderBurnBar(t *testing.T) {
	tests := []struct {
		pct    float64
		filled int
	}{
		{0, 0},
		{50, 5},
		{100, 10},
		{250, 10},
		{-10, 0},
	}
	for _, tt := range tests {
		bar := RenderBurnBar(tt.pct, 10)
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("RenderBurnBar(%v) filled = %d, want %d", tt.pct, got, tt.filled)
		}
		if got := lipgloss.Width(bar); got != 10 {
			t.Errorf("RenderBurnBar(%v) width = %d, want 10", tt.pct, got)
		}
	}
}
