package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subtrans/internal/subtitle"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var detailedFlag bool

	cmd := &cobra.Command{
		Use:   "analyze <input.srt>",
		Short: "Show statistics about a subtitle file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := subtitle.ReadFile(args[0])
			if err != nil {
				return err
			}

			analysis := subtitle.Analyze(entries, detailedFlag)

			rows := [][2]string{
				{"Entries", fmt.Sprintf("%d", analysis.EntryCount)},
				{"Characters", fmt.Sprintf("%d", analysis.TotalCharacters)},
				{"Avg chars/entry", fmt.Sprintf("%.1f", analysis.AverageCharacters)},
				{"First timestamp", analysis.FirstTimestamp},
				{"Last timestamp", analysis.LastTimestamp},
				{"Duration", fmt.Sprintf("%.1fs", analysis.TotalDuration)},
			}
			if analysis.Language != "" {
				rows = append(rows, [2]string{"Language", analysis.Language})
			}
			if analysis.Detail != nil {
				rows = append(rows,
					[2]string{"Max lines/entry", fmt.Sprintf("%d", analysis.Detail.MaxLines)},
					[2]string{"Max chars/entry", fmt.Sprintf("%d", analysis.Detail.MaxCharacters)},
					[2]string{"Min chars/entry", fmt.Sprintf("%d", analysis.Detail.MinCharacters)},
					[2]string{"Multi-line entries", fmt.Sprintf("%d", analysis.Detail.MultiLine)},
				)
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderKV(args[0], rows))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&detailedFlag, "detailed", "d", false, "Include per-entry extremes and a language guess")

	return cmd
}
