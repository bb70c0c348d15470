package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subtrans/internal/subtitle"
)

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var countFlag int

	cmd := &cobra.Command{
		Use:   "preview <input.srt>",
		Short: "Show the first and last entries of a subtitle file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := subtitle.ReadFile(args[0])
			if err != nil {
				return err
			}

			preview := subtitle.NewPreview(entries, countFlag)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%d entries total\n\n", preview.TotalEntries)
			if len(preview.Head) > 0 {
				fmt.Fprintln(out, renderEntries("Beginning", entryRows(preview.Head)))
			}
			if preview.MiddleSample != nil {
				fmt.Fprintln(out, renderEntries("Middle", entryRows([]subtitle.Entry{*preview.MiddleSample})))
			}
			if len(preview.Tail) > 0 {
				fmt.Fprintln(out, renderEntries("End", entryRows(preview.Tail)))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&countFlag, "count", "n", 5, "Entries shown from each end")

	return cmd
}

func entryRows(entries []subtitle.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			fmt.Sprintf("%d", entry.Index),
			fmt.Sprintf("%s --> %s", entry.Start, entry.End),
			entry.Text,
		})
	}
	return rows
}
