package analyze

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/racelogiq/strategy-engine/log"
	"github.com/racelogiq/strategy-engine/pkg/config"
	"github.com/racelogiq/strategy-engine/pkg/repository/lapseries"
	"github.com/racelogiq/strategy-engine/pkg/service"
	"github.com/racelogiq/strategy-engine/pkg/utils"
)

var (
	vehicleID   string
	currentLap  int
	totalLaps   int
	currentFuel float64
	fuelSamples []float64
	fieldMode   bool
)

//nolint:lll // readability
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <session.json>",
		Short: "compute the strategy report for one vehicle of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return analyzeSession(cmd.Context(), args[0])
		},
	}
	cmd.Flags().StringVar(&vehicleID, "vehicle", "", "vehicle id to analyze")
	cmd.Flags().IntVar(&currentLap, "current-lap", 0, "lap the analysis is anchored at")
	cmd.Flags().IntVar(&totalLaps, "total-laps", 0, "race distance in laps (defaults to the session value)")
	cmd.Flags().Float64Var(&currentFuel, "current-fuel", 0, "fuel on board (l)")
	cmd.Flags().Float64SliceVar(&fuelSamples, "fuel-samples", nil, "recent per-lap consumption samples (l)")
	cmd.Flags().BoolVar(&fieldMode, "field", false, "rank the whole field by pace instead of a single report")
	return cmd
}

func analyzeSession(ctx context.Context, fileArg string) error {
	logger := utils.SetupStdLogger()
	defer logger.Sync() //nolint:errcheck // last chance flush

	data, err := lapseries.LoadSessionFile(fileArg)
	if err != nil {
		return err
	}
	repo := lapseries.NewMemoryRepository()
	for _, series := range data.Series {
		if err := repo.AddSeries(series); err != nil {
			return err
		}
	}
	if totalLaps == 0 {
		totalLaps = data.TotalLaps
	}
	srv := service.InitStrategyService(repo, config.FromArgs())

	if fieldMode {
		field, err := srv.FieldPace(ctx, data.SessionID, currentLap)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, oj.JSON(field, 2))
		return nil
	}

	if vehicleID == "" {
		vehicles, _ := repo.Vehicles(ctx, data.SessionID)
		return fmt.Errorf("no vehicle given, session contains: %s",
			strings.Join(vehicles, ", "))
	}
	report, err := srv.Report(ctx, service.ReportParams{
		SessionID:   data.SessionID,
		VehicleID:   vehicleID,
		CurrentLap:  currentLap,
		TotalLaps:   totalLaps,
		CurrentFuel: currentFuel,
		FuelSamples: fuelSamples,
	})
	if err != nil {
		return err
	}
	log.Info("report ready",
		log.String("session", data.SessionID),
		log.String("vehicle", vehicleID),
		log.String("pitStatus", string(report.Pit.Status)))
	fmt.Fprintln(os.Stdout, oj.JSON(report, 2))
	return nil
}
