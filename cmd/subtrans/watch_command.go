package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"subtrans/internal/service"
	"subtrans/pkg/icron"
	"subtrans/pkg/log"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var onceFlag bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch directories and translate new subtitle files on a schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if len(cfg.Watch.Dirs) == 0 {
				return fmt.Errorf("no watch directories configured, set WATCH_DIRS")
			}

			pipeline, err := ctx.newPipeline(cfg.TranslatorOptions(), nil)
			if err != nil {
				return err
			}

			runner := cron.New()
			svc := service.NewWatchService(*cfg, pipeline, runner)

			if onceFlag {
				svc.ScanOnce(cmd.Context())
				return nil
			}

			if err := svc.Schedule(cmd.Context()); err != nil {
				return err
			}

			if info, err := icron.GetTriggerInfo(cfg.Watch.CronExpr, time.Now()); err == nil {
				log.Info("Watching %d directories, next scan at %v", len(cfg.Watch.Dirs), info.Next)
			}

			runner.Start()
			defer runner.Stop()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			select {
			case <-sigCh:
			case <-cmd.Context().Done():
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&onceFlag, "once", false, "Scan once and exit instead of running on the cron schedule")

	return cmd
}
