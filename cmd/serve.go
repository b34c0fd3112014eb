package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fleetmind/driverguide/app"
	"github.com/fleetmind/driverguide/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run both passes and expose Prometheus metrics until interrupted",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer closeService(svc)

	svc.RankDrivers(time.Now())
	if _, err := svc.OptimizeSchedules(ctx, nil); err != nil {
		return err
	}
	return svc.ServeMetrics(ctx)
}
