package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlens/ledgerlens/internal/model"
	"github.com/ledgerlens/ledgerlens/internal/query"
)

func issueID(n int64) *int64 {
	return &n
}

func defaultOptions() Options {
	return Options{Sender: "Aunt Polly", Client: "Tom Shelby"}
}

func sampleEngine() *query.Engine {
	return query.NewEngine([]model.Transaction{
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
			IssueMessage:        "Looks like money laundering",
		},
		{
			Amount:              25.5,
			SenderFullName:      "Aunt Polly",
			BeneficiaryFullName: "Alfie Solomons",
			IssueSolved:         true,
		},
	})
}

// assertOrdered checks that each label appears after the previous one.
func assertOrdered(t *testing.T, output string, labels ...string) {
	t.Helper()
	last := -1
	for _, label := range labels {
		idx := strings.Index(output, label)
		require.GreaterOrEqual(t, idx, 0, "label %q missing from report", label)
		assert.Greater(t, idx, last, "label %q out of order", label)
		last = idx
	}
}

func TestRender_FullReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleEngine(), defaultOptions()))
	output := buf.String()

	assert.Contains(t, output, "Transaction Compliance Report")
	assert.Contains(t, output, "Total Transaction Amount: 1590.90")
	assert.Contains(t, output, "Total Transaction Amount Sent by Aunt Polly: 175.70")
	assert.Contains(t, output, "Max Transaction Amount: 985.00")
	assert.Contains(t, output, "Count Unique Clients: 5")
	assert.Contains(t, output, "Has Open Compliance Issues for Tom Shelby: true")
	assert.Contains(t, output, "Alfie Solomons: 2 transactions totaling 455.70")
	assert.Contains(t, output, "Ben Younger: 1 transactions totaling 985.00")
	assert.Contains(t, output, "Unsolved Issue IDs: 1, 3")
	assert.Contains(t, output, `"Never gonna give you up"`)
	assert.Contains(t, output, "985.00 from Arthur Shelby to Ben Younger")
	assert.Contains(t, output, "430.20 from Tom Shelby to Alfie Solomons")
	assert.Contains(t, output, "150.20 from Aunt Polly to Arthur Shelby")
	assert.Contains(t, output, "Top Sender: Arthur Shelby")
}

func TestRender_SectionOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleEngine(), defaultOptions()))

	assertOrdered(t, buf.String(),
		"Total Transaction Amount:",
		"Total Transaction Amount Sent by",
		"Max Transaction Amount:",
		"Count Unique Clients:",
		"Has Open Compliance Issues for",
		"Transactions by Beneficiary Name:",
		"Unsolved Issue IDs:",
		"All Solved Issue Messages:",
		"Top 3 Transactions by Amount:",
		"Top Sender:",
	)
}

func TestRender_EmptyDataset(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, query.NewEngine(nil), defaultOptions()))
	output := buf.String()

	assert.Contains(t, output, "Total Transaction Amount: 0.00")
	assert.Contains(t, output, "Max Transaction Amount: 0.00")
	assert.Contains(t, output, "Count Unique Clients: 0")
	assert.Contains(t, output, "Unsolved Issue IDs: none")
	assert.Contains(t, output, "(none)")
	assert.Contains(t, output, "Top Sender: No top sender found.")
}

func TestRender_CustomNames(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Sender: "Michael Gray", Client: "Grace Burgess"}
	require.NoError(t, Render(&buf, sampleEngine(), opts))
	output := buf.String()

	assert.Contains(t, output, "Total Transaction Amount Sent by Michael Gray: 0.00")
	assert.Contains(t, output, "Has Open Compliance Issues for Grace Burgess: false")
}

func TestRender_UnknownPartiesInTopTransactions(t *testing.T) {
	engine := query.NewEngine([]model.Transaction{
		{Amount: 50, BeneficiaryFullName: "Alfie Solomons", IssueSolved: true},
	})

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, engine, defaultOptions()))

	assert.Contains(t, buf.String(), "50.00 from (unknown) to Alfie Solomons")
}
