package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the translation endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := ctx.newClient()
			if err != nil {
				return err
			}

			status := client.Ping(cmd.Context())

			rows := [][2]string{
				{"Endpoint", cfg.LLM.APIURL},
				{"Model", cfg.LLM.Model},
				{"Reachable", fmt.Sprintf("%v", status.Reachable)},
				{"Model available", fmt.Sprintf("%v", status.ModelAvailable)},
			}
			if len(status.AvailableModels) > 0 {
				rows = append(rows, [2]string{"Available models", strings.Join(status.AvailableModels, ", ")})
			}
			if status.Error != "" {
				rows = append(rows, [2]string{"Error", status.Error})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderKV("Endpoint status", rows))

			if !status.Reachable {
				return fmt.Errorf("endpoint %s is not reachable", cfg.LLM.APIURL)
			}
			return nil
		},
	}
}
