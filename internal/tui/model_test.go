package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlens/ledgerlens/internal/model"
	"github.com/ledgerlens/ledgerlens/internal/query"
)

func issueID(n int64) *int64 {
	return &n
}

func testTransactions() []model.Transaction {
	return []model.Transaction{
		{
			Amount:              430.2,
			SenderFullName:      "Tom Shelby",
			BeneficiaryFullName: "Alfie Solomons",
			IssueID:             issueID(1),
			IssueSolved:         false,
			IssueMessage:        "Looks like money laundering",
		},
		{
			Amount:              150.2,
			SenderFullName:      "Aunt Polly",
			BeneficiaryFullName: "Arthur Shelby",
			IssueID:             issueID(2),
			IssueSolved:         true,
			IssueMessage:        "Never gonna give you up",
		},
		{
			Amount:              985,
			SenderFullName:      "Arthur Shelby",
			BeneficiaryFullName: "Ben Younger",
			IssueID:             issueID(3),
			IssueSolved:         false,
		},
	}
}

func newTestModel() Model {
	txns := testTransactions()
	return New(txns, query.NewEngine(txns))
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok, "Update should return the browser model")
	return next, cmd
}

func TestNew_BuildsRowsInFileOrder(t *testing.T) {
	m := newTestModel()

	rows := m.table.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "Tom Shelby", rows[0][0])
	assert.Equal(t, "Alfie Solomons", rows[0][1])
	assert.Equal(t, "430.20", rows[0][2])
	assert.Equal(t, "open #1", rows[0][3])
	assert.Equal(t, "solved", rows[1][3])
	assert.Equal(t, "open #3", rows[2][3])
}

func TestUpdate_ToggleOpenIssuesFilter(t *testing.T) {
	m := newTestModel()

	m, _ = update(t, m, keyPress('o'))
	rows := m.table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "Tom Shelby", rows[0][0])
	assert.Equal(t, "Arthur Shelby", rows[1][0])

	// Toggling again restores the full dataset.
	m, _ = update(t, m, keyPress('o'))
	assert.Len(t, m.table.Rows(), 3)
}

func TestUpdate_ToggleAmountSort(t *testing.T) {
	m := newTestModel()

	m, _ = update(t, m, keyPress('a'))
	rows := m.table.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "985.00", rows[0][2])
	assert.Equal(t, "430.20", rows[1][2])
	assert.Equal(t, "150.20", rows[2][2])

	// Toggling again restores file order.
	m, _ = update(t, m, keyPress('a'))
	assert.Equal(t, "430.20", m.table.Rows()[0][2])
}

func TestUpdate_FilterAndSortCompose(t *testing.T) {
	m := newTestModel()

	m, _ = update(t, m, keyPress('o'))
	m, _ = update(t, m, keyPress('a'))

	rows := m.table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "985.00", rows[0][2])
	assert.Equal(t, "430.20", rows[1][2])
}

func TestUpdate_Quit(t *testing.T) {
	m := newTestModel()

	_, cmd := update(t, m, keyPress('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_ShowsDatasetSummary(t *testing.T) {
	m := newTestModel()
	view := m.View()

	assert.Contains(t, view, "Transaction Browser")
	assert.Contains(t, view, "3 of 3 records")
	assert.Contains(t, view, "total 1565.40")
	assert.Contains(t, view, "max 985.00")
	assert.Contains(t, view, "5 clients")
	assert.Contains(t, view, "2 unsolved issues")
}

func TestView_ReflectsActiveFilter(t *testing.T) {
	m := newTestModel()

	m, _ = update(t, m, keyPress('o'))
	view := m.View()

	assert.Contains(t, view, "2 of 3 records")
	assert.Contains(t, view, "open issues")
}
