// Package tui provides the interactive browser for the unified mutation
// ledger.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/danukusuma/mutasi/internal/ledger"
	"github.com/danukusuma/mutasi/internal/service"
)

// buildTimeout bounds a single refresh; a timed-out fetch surfaces as a
// build failure.
const buildTimeout = 30 * time.Second

type mode int

const (
	modeNormal mode = iota
	modeSearch
)

// buildResultMsg carries the outcome of one refresh. The generation stamp
// lets the model discard results from a superseded refresh: a stale result
// must never overwrite newer state.
type buildResultMsg struct {
	led *ledger.Ledger
	err error
	gen int
}

// Model is the bubbletea model for the mutation browser.
type Model struct {
	err         error
	builder     *ledger.Builder
	rows        []ledger.Row
	filtered    []ledger.Row
	query       service.RecordQuery
	filter      ledger.Filter
	searchInput textinput.Model
	table       table.Model
	mode        mode
	gen         int
	loading     bool
	width       int
	height      int
}

// New creates a browser over the given builder and query window.
func New(builder *ledger.Builder, query service.RecordQuery) Model {
	columns := []table.Column{
		{Title: "No", Width: 5},
		{Title: "Click Time", Width: 19},
		{Title: "Category", Width: 16},
		{Title: "Bank", Width: 28},
		{Title: "Description", Width: 28},
		{Title: "Amount", Width: 14},
		{Title: "By", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#333")).
		BorderBottom(true).
		Bold(true)
	t.SetStyles(s)

	searchInput := textinput.New()
	searchInput.Placeholder = "Search description or bank..."
	searchInput.CharLimit = 50

	return Model{
		builder:     builder,
		query:       query,
		table:       t,
		searchInput: searchInput,
		mode:        modeNormal,
		loading:     true,
		width:       100,
		height:      30,
	}
}

// Init starts the first build.
func (m Model) Init() tea.Cmd {
	return m.refresh()
}

// refresh kicks off a build for the current generation.
func (m Model) refresh() tea.Cmd {
	gen := m.gen
	builder := m.builder
	query := m.query
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), buildTimeout)
		defer cancel()

		led, err := builder.Build(ctx, query)
		if err == nil {
			builder.ResolveCreators(ctx, led)
		}
		return buildResultMsg{gen: gen, led: led, err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case buildResultMsg:
		if msg.gen != m.gen {
			// Superseded refresh; drop it.
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			// Keep whatever was on screen; the ledger shown stays
			// consistent even when stale.
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.rows = msg.led.Rows
		m.applyFilter()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		default:
			return m.updateNormal(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(5, m.height-6))
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "r":
		m.gen++
		m.loading = true
		return m, m.refresh()

	case "/":
		m.mode = modeSearch
		m.searchInput.Focus()
		return m, textinput.Blink

	case "esc":
		m.filter = ledger.Filter{}
		m.searchInput.SetValue("")
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filter.Search = m.searchInput.Value()
		m.applyFilter()
		m.mode = modeNormal
		m.searchInput.Blur()
		return m, nil

	case "esc":
		m.mode = modeNormal
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// applyFilter re-runs the pure post-filter over the built rows. Sequence
// numbers are never reassigned here.
func (m *Model) applyFilter() {
	m.filtered = m.filter.Apply(m.rows)

	rows := make([]table.Row, 0, len(m.filtered))
	for _, r := range m.filtered {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", r.Seq),
			r.ClickTime.In(ledger.Zone).Format("2006-01-02 15:04:05"),
			r.Category.Label(),
			strings.Join(r.BankLines, " / "),
			r.Description,
			r.Amount.StringFixed(2),
			r.CreatorName,
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// View renders the browser.
func (m Model) View() string {
	title := lipgloss.NewStyle().Bold(true).Render("Bank Mutations")

	status := fmt.Sprintf("%d rows", len(m.filtered))
	if m.filter.Search != "" {
		status += fmt.Sprintf(" | search: %q", m.filter.Search)
	}
	if m.loading {
		status = "loading..."
	}
	if m.err != nil {
		status = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).
			Render("load failed: " + m.err.Error())
	}

	var footer string
	if m.mode == modeSearch {
		footer = m.searchInput.View()
	} else {
		footer = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).
			Render("[↑↓] Navigate  [/] Search  [esc] Clear  [r] Refresh  [q] Quit")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		lipgloss.NewStyle().Foreground(lipgloss.Color("#999999")).Render(status),
		m.table.View(),
		footer,
	)
}

// Run launches the browser and blocks until the user quits.
func Run(builder *ledger.Builder, query service.RecordQuery) error {
	p := tea.NewProgram(New(builder, query), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run browser: %w", err)
	}
	return nil
}
