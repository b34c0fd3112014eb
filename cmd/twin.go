package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fleetmind/driverguide/app"
	"github.com/fleetmind/driverguide/config"
	"github.com/fleetmind/driverguide/core/twin"
	"github.com/fleetmind/driverguide/infra/logger"
	"github.com/fleetmind/driverguide/pkg/export"
)

var (
	twinDrivers []string
	twinOut     string
	twinFormat  string
)

var twinCmd = &cobra.Command{
	Use:   "twin",
	Short: "Learn behavioral profiles and optimize weekly schedules",
	RunE:  runTwin,
}

func init() {
	twinCmd.Flags().StringSliceVar(&twinDrivers, "driver", nil, "driver id to optimize (repeatable, default all)")
	twinCmd.Flags().StringVar(&twinOut, "out", "", "write results to file instead of stdout")
	twinCmd.Flags().StringVar(&twinFormat, "format", "json", "output format: json or csv")
	rootCmd.AddCommand(twinCmd)
}

func runTwin(cmd *cobra.Command, args []string) error {
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

	logg := logger.New("twin-command")
	outcomes, err := svc.OptimizeSchedules(ctx, twinDrivers)
	if err != nil {
		return err
	}
	for _, o := range outcomes {
		logg.Infof("driver %s: recommend %s", o.DriverID, o.BestScenario)
		for _, sc := range o.Scenarios {
			if sc.ScenarioName != o.BestScenario {
				continue
			}
			for _, day := range sc.Schedule.Days() {
				logg.Infof("  %s: %s", day, twin.FormatHours(sc.Schedule[day]))
			}
		}
	}
	return writeOutcomes(outcomes)
}

func writeOutcomes(outcomes []twin.OptimizationOutcome) error {
	w := os.Stdout
	if twinOut != "" {
		f, err := os.Create(twinOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	switch twinFormat {
	case "json":
		return export.WriteOutcomesJSON(w, outcomes)
	case "csv":
		return export.WriteOutcomesCSV(w, outcomes)
	default:
		return fmt.Errorf("unsupported format: %s", twinFormat)
	}
}
