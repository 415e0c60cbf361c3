// Package tui provides the interactive Bubble Tea dashboard for burnrate.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/burnrate/internal/cli"
	"github.com/theirongolddev/burnrate/internal/config"
	"github.com/theirongolddev/burnrate/internal/model"
	"github.com/theirongolddev/burnrate/internal/pipeline"
	"github.com/theirongolddev/burnrate/internal/tui/components"
	"github.com/theirongolddev/burnrate/internal/tui/theme"
)

// DataLoadedMsg is sent when the initial load finishes.
type DataLoadedMsg struct {
	Dataset  pipeline.Dataset
	Err      error
	LoadTime time.Duration
}

// RefreshDataMsg is sent when a background reload finishes.
type RefreshDataMsg struct {
	Dataset  pipeline.Dataset
	Err      error
	LoadTime time.Duration
}

type tickMsg struct{}

// Options configures a dashboard session.
type Options struct {
	Source    pipeline.Source
	OwnerID   string
	Month     time.Time // zero follows the current month
	Now       func() time.Time
	Config    config.Config
	NeedSetup bool

	// SaveConfig persists setup answers and the auto-refresh toggle.
	// Nil uses config.Save.
	SaveConfig func(config.Config) error
}

const (
	tabOverview = iota
	tabClients
	tabEntries
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	minContentHeight = 5

	loadTimeout        = 30 * time.Second
	minRefreshInterval = 10 * time.Second
)

// App is the root Bubble Tea model.
type App struct {
	src        pipeline.Source
	ownerID    string
	month      time.Time
	fixedMonth bool
	now        func() time.Time
	cfg        config.Config
	saveConfig func(config.Config) error

	// Data
	dataset  pipeline.Dataset
	report   pipeline.Report
	sorted   []model.ClientProfitability
	clients  map[string]model.Client
	members  map[string]model.TeamMember
	loaded   bool
	loadErr  error
	loadTime time.Duration

	// Auto-refresh
	autoRefresh     bool
	refreshInterval time.Duration
	lastRefresh     time.Time
	refreshing      bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	sortKey  pipeline.SortKey
	sortDesc bool

	clientCursor int
	entryClient  string // client ID filter for the entries tab
	entryOffset  int

	// First-run setup
	setupForm *huh.Form
	setupVals SetupValues
	needSetup bool
	setupErr  error

	spinner spinner.Model
	keys    keyMap
	help    help.Model
}

// NewApp creates the dashboard model.
func NewApp(opts Options) App {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	save := opts.SaveConfig
	if save == nil {
		save = config.Save
	}

	theme.SetActive(opts.Config.Appearance.Theme)
	t := theme.Active

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(t.Accent)

	h := help.New()
	h.ShowAll = true
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(t.Info).Bold(true)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(t.TextMuted)
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(t.TextDim)

	refreshInterval := time.Duration(opts.Config.TUI.RefreshIntervalSec) * time.Second
	if refreshInterval < minRefreshInterval {
		refreshInterval = minRefreshInterval
	}

	return App{
		src:             opts.Source,
		ownerID:         opts.OwnerID,
		month:           opts.Month,
		fixedMonth:      !opts.Month.IsZero(),
		now:             now,
		cfg:             opts.Config,
		saveConfig:      save,
		autoRefresh:     opts.Config.TUI.AutoRefresh,
		refreshInterval: refreshInterval,
		sortKey:         pipeline.ParseSortKey(opts.Config.General.DefaultSort),
		sortDesc:        true,
		needSetup:       opts.NeedSetup,
		setupVals:       SetupValuesFrom(opts.Config),
		spinner:         sp,
		keys:            newKeyMap(),
		help:            h,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.src, a.ownerID, false),
		a.spinner.Tick,
		tickCmd(),
	)
}

// recompute rebuilds the report from the loaded dataset.
func (a *App) recompute() {
	today := a.now()
	month := a.month
	if !a.fixedMonth {
		month = today
	}
	a.report = pipeline.BuildReport(a.dataset, month, today)

	a.clients = make(map[string]model.Client, len(a.dataset.Clients))
	for _, c := range a.dataset.Clients {
		a.clients[c.ID] = c
	}
	a.members = make(map[string]model.TeamMember, len(a.dataset.Members))
	for _, m := range a.dataset.Members {
		a.members[m.ID] = m
	}
	if _, ok := a.clients[a.entryClient]; !ok {
		a.entryClient = ""
	}

	a.resort()
}

func (a *App) resort() {
	a.sorted = pipeline.SortProfitabilities(a.report.Profitabilities, a.sortKey, a.sortDesc)
	if a.clientCursor >= len(a.sorted) {
		a.clientCursor = len(a.sorted) - 1
	}
	if a.clientCursor < 0 {
		a.clientCursor = 0
	}
}

// applySort selects a sort key. Choosing the current key flips direction;
// a new key starts descending.
func (a *App) applySort(k pipeline.SortKey) {
	if k == a.sortKey {
		a.sortDesc = !a.sortDesc
	} else {
		a.sortKey = k
		a.sortDesc = true
	}
	a.resort()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.loaded {
			return a, nil
		}
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		return a.updateKeys(msg)

	case DataLoadedMsg:
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.lastRefresh = a.now()
		a.loadErr = msg.Err
		if msg.Err == nil {
			a.dataset = msg.Dataset
		}
		a.recompute()

		if a.needSetup {
			a.setupForm = NewSetupForm(&a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case RefreshDataMsg:
		a.refreshing = false
		a.lastRefresh = a.now()
		a.loadErr = msg.Err
		if msg.Err == nil {
			a.dataset = msg.Dataset
			a.loadTime = msg.LoadTime
		}
		a.recompute()
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if a.loaded && a.autoRefresh && !a.refreshing && a.now().Sub(a.lastRefresh) >= a.refreshInterval {
			a.refreshing = true
			cmds = append(cmds, loadDataCmd(a.src, a.ownerID, true))
		}
		return a, tea.Batch(cmds...)
	}

	// Cursor blinks and other form internals.
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := a.keys

	if key.Matches(msg, k.Help) {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch {
	case key.Matches(msg, k.Quit):
		return a, tea.Quit

	case key.Matches(msg, k.Refresh):
		if !a.refreshing {
			a.refreshing = true
			return a, loadDataCmd(a.src, a.ownerID, true)
		}

	case key.Matches(msg, k.AutoRefresh):
		a.autoRefresh = !a.autoRefresh
		a.cfg.TUI.AutoRefresh = a.autoRefresh
		_ = a.saveConfig(a.cfg)

	case key.Matches(msg, k.Overview):
		a.activeTab = tabOverview
	case key.Matches(msg, k.Clients):
		a.activeTab = tabClients
	case key.Matches(msg, k.Entries):
		a.activeTab = tabEntries
	case key.Matches(msg, k.PrevTab):
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case key.Matches(msg, k.NextTab):
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)

	case key.Matches(msg, k.SortMargin):
		a.applySort(pipeline.SortByMargin)
	case key.Matches(msg, k.SortRevenue):
		a.applySort(pipeline.SortByRevenue)
	case key.Matches(msg, k.SortSpent):
		a.applySort(pipeline.SortBySpent)

	case key.Matches(msg, k.Up):
		a.moveCursor(-1)
	case key.Matches(msg, k.Down):
		a.moveCursor(1)

	case key.Matches(msg, k.Select):
		if a.activeTab == tabClients && len(a.sorted) > 0 {
			a.entryClient = a.sorted[a.clientCursor].Client.ID
			a.entryOffset = 0
			a.activeTab = tabEntries
		}

	case key.Matches(msg, k.Back):
		if a.activeTab == tabEntries && a.entryClient != "" {
			a.entryClient = ""
			a.entryOffset = 0
		}
	}
	return a, nil
}

func (a *App) moveCursor(delta int) {
	switch a.activeTab {
	case tabClients:
		a.clientCursor = max(0, min(a.clientCursor+delta, len(a.sorted)-1))
	case tabEntries:
		a.entryOffset = max(0, a.entryOffset+delta)
	}
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.moveCursor(-1)
	case tea.MouseButtonWheelDown:
		a.moveCursor(1)
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := components.TabAtX(msg.X, a.activeTab); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.cfg = ApplySetup(a.cfg, a.setupVals)
		a.setupErr = a.saveConfig(a.cfg)
		theme.SetActive(a.cfg.Appearance.Theme)
		a.sortKey = pipeline.ParseSortKey(a.cfg.General.DefaultSort)
		a.sortDesc = true
		a.needSetup = false
		a.setupForm = nil

		// A new owner means a different dataset.
		if a.cfg.General.Owner != a.ownerID {
			a.ownerID = a.cfg.General.Owner
			a.refreshing = true
			return a, loadDataCmd(a.src, a.ownerID, true)
		}
		a.resort()
		return a, nil

	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  burnrate needs at least %d columns.\n",
		a.width, minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(2, 4).
		Render(
			lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true).Render("◈ burnrate") +
				lipgloss.NewStyle().Foreground(t.TextMuted).Render(" · client profitability") +
				"\n\n" + a.spinner.View() +
				lipgloss.NewStyle().Foreground(t.TextMuted).Render(" Loading "+a.ownerID+"..."),
		)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a App) viewHelp() string {
	t := theme.Active

	body := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true).Render("◈ Keyboard Shortcuts") +
		"\n\n" + a.help.View(a.keys) + "\n\n" +
		lipgloss.NewStyle().Foreground(t.TextDim).Render("Press any key to close")

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3).
		Render(body)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()

	pill := lipgloss.NewStyle().Foreground(t.TextDim)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	dir := "↓"
	if !a.sortDesc {
		dir = "↑"
	}
	filter := pill.Render(" ") + accent.Render(cli.FormatMonth(a.report.Month)) +
		pill.Render(" │ sort ") + accent.Render(string(a.sortKey)+dir)
	if a.entryClient != "" {
		filter += pill.Render(" │ ") + accent.Render(a.clients[a.entryClient].Name)
	}

	header := components.RenderTabBar(a.activeTab) + "\n" + filter

	info := components.StatusInfo{
		Owner:      a.ownerID,
		Month:      cli.FormatMonth(a.report.Month),
		DataAge:    formatAge(a.now().Sub(a.lastRefresh)),
		Refreshing: a.refreshing,
	}
	if !a.autoRefresh {
		info.DataAge += " (manual)"
	}
	if a.loadErr != nil {
		info.Err = "load failed"
	}
	if a.setupErr != nil {
		info.Err = "config not saved"
	}
	statusBar := components.RenderStatusBar(w, info)

	contentH := max(a.height-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabClients:
		content = a.renderClientsTab(cw)
	case tabEntries:
		content = a.renderEntriesTab(cw, contentH)
	}
	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.PlaceHorizontal(w, lipgloss.Center, content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

// ─── Commands ───────────────────────────────────────────────────

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// loadDataCmd reads the owner's dataset off the UI goroutine.
func loadDataCmd(src pipeline.Source, ownerID string, refresh bool) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		ds, err := pipeline.Load(ctx, src, ownerID)
		if refresh {
			return RefreshDataMsg{Dataset: ds, Err: err, LoadTime: time.Since(start)}
		}
		return DataLoadedMsg{Dataset: ds, Err: err, LoadTime: time.Since(start)}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}
