package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"subtrans/internal/httpapi"
	"subtrans/pkg/log"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var addrFlag string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := ctx.newClient()
			if err != nil {
				return err
			}

			addr := cfg.Server.Addr
			if addrFlag != "" {
				addr = addrFlag
			}

			server := httpapi.NewServer(*cfg, client, client)

			errCh := make(chan error, 1)
			go func() {
				log.Info("HTTP API listening on %s", addr)
				errCh <- server.ListenAndServe(addr)
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-sigCh:
			case <-cmd.Context().Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVarP(&addrFlag, "addr", "a", "", "Listen address (default from HTTP_ADDR)")

	return cmd
}
