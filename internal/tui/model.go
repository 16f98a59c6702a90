// Package tui provides an interactive terminal browser for a loaded dataset.
package tui

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ledgerlens/ledgerlens/internal/cli"
	"github.com/ledgerlens/ledgerlens/internal/model"
	"github.com/ledgerlens/ledgerlens/internal/query"
)

// keyMap defines the keyboard shortcuts of the browser.
type keyMap struct {
	ToggleSort key.Binding
	ToggleOpen key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ToggleSort: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "sort by amount"),
		),
		ToggleOpen: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open issues only"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Model is the bubbletea model behind the dataset browser. Toggling filters
// or sort order rebuilds the table rows; the loaded dataset itself is never
// modified.
type Model struct {
	engine       *query.Engine
	transactions []model.Transaction
	table        table.Model
	keys         keyMap
	byAmount     bool
	openOnly     bool
}

// New creates a browser over the given transactions.
func New(transactions []model.Transaction, engine *query.Engine) Model {
	columns := []table.Column{
		{Title: "Sender", Width: 24},
		{Title: "Beneficiary", Width: 24},
		{Title: "Amount", Width: 10},
		{Title: "Issue", Width: 12},
		{Title: "Message", Width: 32},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = cli.TableHeaderStyle
	s.Cell = cli.TableCellStyle
	s.Selected = cli.SelectedRowStyle
	t.SetStyles(s)

	m := Model{
		engine:       engine,
		transactions: transactions,
		table:        t,
		keys:         defaultKeyMap(),
	}
	m.refreshRows()
	return m
}

// refreshRows rebuilds the table rows from the current filter and sort
// settings. Sorting is stable so equal amounts keep their file order.
func (m *Model) refreshRows() {
	visible := make([]model.Transaction, 0, len(m.transactions))
	for _, txn := range m.transactions {
		if m.openOnly && !txn.HasOpenIssue() {
			continue
		}
		visible = append(visible, txn)
	}

	if m.byAmount {
		sort.SliceStable(visible, func(i, j int) bool {
			return visible[i].Amount > visible[j].Amount
		})
	}

	rows := make([]table.Row, len(visible))
	for i, txn := range visible {
		rows[i] = table.Row{
			partyOrUnknown(txn.SenderFullName),
			partyOrUnknown(txn.BeneficiaryFullName),
			fmt.Sprintf("%.2f", txn.Amount),
			issueCell(txn),
			txn.IssueMessage,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.ToggleSort):
			m.byAmount = !m.byAmount
			m.refreshRows()
			return m, nil
		case key.Matches(msg, m.keys.ToggleOpen):
			m.openOnly = !m.openOnly
			m.refreshRows()
			return m, nil
		}
	case tea.WindowSizeMsg:
		if h := msg.Height - 8; h > 3 {
			m.table.SetHeight(h)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	title := cli.TitleStyle.Render(cli.ChartIcon + " Transaction Browser")
	status := cli.SubtleStyle.Render(m.statusLine())
	help := cli.SubtleStyle.Render("a: sort by amount • o: open issues only • q: quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, m.table.View(), status, help)
}

// statusLine summarizes the dataset and the active view settings.
func (m Model) statusLine() string {
	filter := "all records"
	if m.openOnly {
		filter = "open issues"
	}
	order := "file order"
	if m.byAmount {
		order = "by amount"
	}

	return fmt.Sprintf("%d of %d records (%s, %s) | total %.2f | max %.2f | %d clients | %d unsolved issues",
		len(m.table.Rows()), len(m.transactions), filter, order,
		m.engine.TotalAmount(), m.engine.MaxAmount(),
		m.engine.CountUniqueClients(), len(m.engine.UnsolvedIssueIDs()))
}

func issueCell(txn model.Transaction) string {
	if txn.HasOpenIssue() {
		return fmt.Sprintf("open #%d", *txn.IssueID)
	}
	return "solved"
}

func partyOrUnknown(name string) string {
	if name == "" {
		return "(unknown)"
	}
	return name
}

// Run starts the interactive browser and blocks until the user quits.
func Run(transactions []model.Transaction, engine *query.Engine) error {
	p := tea.NewProgram(New(transactions, engine), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run browser: %w", err)
	}
	return nil
}
