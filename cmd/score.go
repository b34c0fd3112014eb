package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fleetmind/driverguide/app"
	"github.com/fleetmind/driverguide/config"
	"github.com/fleetmind/driverguide/core/priority"
	"github.com/fleetmind/driverguide/infra/logger"
	"github.com/fleetmind/driverguide/pkg/export"
)

var (
	scoreTop    int
	scoreOut    string
	scoreFormat string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Rank all drivers by priority score",
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().IntVar(&scoreTop, "top", 10, "number of drivers to report")
	scoreCmd.Flags().StringVar(&scoreOut, "out", "", "write results to file instead of stdout")
	scoreCmd.Flags().StringVar(&scoreFormat, "format", "json", "output format: json or csv")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer closeService(svc)

	logg := logger.New("score-command")
	scores := svc.RankDrivers(time.Now())
	if len(scores) > 0 {
		top := scores[0]
		logg.Infof("top driver %s score %.4f (EAR %.2f)", top.DriverID, top.OverallPriorityScore, top.ExperienceAdjustedRating)
	}

	report := scores
	if scoreTop > 0 && scoreTop < len(report) {
		report = report[:scoreTop]
	}
	return writeScores(report)
}

func writeScores(scores []priority.PriorityScore) error {
	w := os.Stdout
	if scoreOut != "" {
		f, err := os.Create(scoreOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	switch scoreFormat {
	case "json":
		return export.WriteScoresJSON(w, scores)
	case "csv":
		return export.WriteScoresCSV(w, scores)
	default:
		return fmt.Errorf("unsupported format: %s", scoreFormat)
	}
}

func closeService(svc *app.Service) {
	if err := svc.Close(); err != nil {
		logger.New("main").Errorf("service close: %v", err)
	}
}
