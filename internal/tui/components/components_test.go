package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/burnrate/internal/pipeline"
	"github.com/theirongolddev/burnrate/internal/tui/theme"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestLayoutRow(t *testing.T) {
	tests := []struct {
		total, n int
		want     []int
	}{
		{100, 4, []int{25, 25, 25, 25}},
		{10, 3, []int{4, 3, 3}},
		{7, 1, []int{7}},
		{5, 0, nil},
	}
	for _, tt := range tests {
		got := LayoutRow(tt.total, tt.n)
		if len(got) != len(tt.want) {
			t.Fatalf("LayoutRow(%d, %d) = %v, want %v", tt.total, tt.n, got, tt.want)
		}
		sum := 0
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("LayoutRow(%d, %d)[%d] = %d, want %d", tt.total, tt.n, i, got[i], tt.want[i])
			}
			sum += got[i]
		}
		if tt.n > 0 && sum != tt.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tt.total, tt.n, sum)
		}
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	row := MetricCardRow([]Metric{
		{Label: "Revenue", Value: "$15,500"},
		{Label: "Spent", Value: "$5,180", Delta: "33% of revenue"},
		{Label: "At risk", Value: "2", Color: theme.Active.Bad},
	}, 90)

	lines := strings.Split(row, "\n")
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 90 {
			t.Errorf("line %d width = %d, want 90", i, w)
		}
	}
	if !strings.Contains(row, "$15,500") || !strings.Contains(row, "33% of revenue") {
		t.Errorf("card row missing content:\n%s", row)
	}
}

func TestCardRowSkipsEmpty(t *testing.T) {
	a := ContentCard("A", "one", 20)
	if got := CardRow([]string{a, ""}); got != a {
		t.Errorf("CardRow with one empty card should equal the other card")
	}
	if got := CardRow(nil); got != "" {
		t.Errorf("CardRow(nil) = %q, want empty", got)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil, theme.Active.Accent); got != "" {
		t.Errorf("Sparkline(nil) = %q", got)
	}
	got := Sparkline([]float64{0, 5, 10, -3}, theme.Active.Accent)
	if got != "▁▄█▁" {
		t.Errorf("Sparkline = %q, want %q", got, "▁▄█▁")
	}
	if got := Sparkline([]float64{0, 0}, theme.Active.Accent); got != "▁▁" {
		t.Errorf("all-zero Sparkline = %q", got)
	}
}

func TestBandColor(t *testing.T) {
	theme.SetActive("flexoki-dark")
	if BandColor(pipeline.BandGood) != theme.Active.Good {
		t.Error("good band should be green")
	}
	if BandColor(pipeline.BandWarn) != theme.Active.Warn {
		t.Error("warn band should be yellow")
	}
	if BandColor(pipeline.BandBad) != theme.Active.Bad {
		t.Error("bad band should be red")
	}
}

func TestBurnBarLabel(t *testing.T) {
	got := BurnBar(133.3, 30)
	if !strings.HasSuffix(got, " 133%") {
		t.Errorf("BurnBar label should show the uncapped figure, got %q", got)
	}
	if w := lipgloss.Width(got); w != 30 {
		t.Errorf("BurnBar width = %d, want 30", w)
	}
}

func TestTabAtX(t *testing.T) {
	for active := range Tabs {
		pos := 0
		for i := range Tabs {
			w := TabVisualWidth(i, active)
			if got := TabAtX(pos+w/2, active); got != i {
				t.Fatalf("active=%d x=%d -> tab %d, want %d", active, pos+w/2, got, i)
			}
			pos += w
			if i < len(Tabs)-1 {
				if got := TabAtX(pos, active); got != -1 {
					t.Errorf("separator at x=%d -> tab %d, want -1", pos, got)
				}
				pos++
			}
		}
		if got := TabAtX(pos+5, active); got != -1 {
			t.Errorf("past end -> tab %d, want -1", got)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	if TabIdxByKey('c') != 1 {
		t.Error("c should select Clients")
	}
	if TabIdxByKey('z') != -1 {
		t.Error("unbound key should return -1")
	}
}

func TestRenderStatusBar(t *testing.T) {
	bar := RenderStatusBar(80, StatusInfo{Owner: "local", Month: "June 2025", DataAge: "12s"})
	if w := lipgloss.Width(bar); w != 80 {
		t.Errorf("status bar width = %d, want 80", w)
	}
	for _, want := range []string{"[q]uit", "local", "June 2025", "data 12s"} {
		if !strings.Contains(bar, want) {
			t.Errorf("status bar missing %q: %q", want, bar)
		}
	}

	refreshing := RenderStatusBar(80, StatusInfo{DataAge: "12s", Refreshing: true})
	if strings.Contains(refreshing, "data 12s") || !strings.Contains(refreshing, "refreshing") {
		t.Errorf("refreshing bar = %q", refreshing)
	}
}
