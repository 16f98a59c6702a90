package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func issuesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issues",
		Short: "List compliance issues",
		Long: `List unsolved compliance issue ids in ascending order, or the messages
attached to solved issues when --solved is set.`,
		RunE: runIssues,
	}

	cmd.Flags().Bool("solved", false, "Show solved issue messages instead of unsolved ids")

	return cmd
}

func runIssues(cmd *cobra.Command, _ []string) error {
	solved, _ := cmd.Flags().GetBool("solved")

	_, engine, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if solved {
		messages := engine.AllSolvedIssueMessages()
		if len(messages) == 0 {
			_, err = fmt.Fprintln(out, "No solved issue messages.")
			return err
		}
		for _, msg := range messages {
			if _, err := fmt.Fprintf(out, "%q\n", msg); err != nil {
				return err
			}
		}
		return nil
	}

	ids := engine.UnsolvedIssueIDs()
	if len(ids) == 0 {
		_, err = fmt.Fprintln(out, "No unsolved issues.")
		return err
	}

	sorted := make([]int64, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	for _, id := range sorted {
		if _, err := fmt.Fprintf(out, "%d\n", id); err != nil {
			return err
		}
	}
	return nil
}
