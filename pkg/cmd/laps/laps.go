package laps

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/racelogiq/strategy-engine/log"
	"github.com/racelogiq/strategy-engine/pkg/repository/lapseries"
	"github.com/racelogiq/strategy-engine/pkg/utils"
)

var vehicleID string

func NewLapsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "laps <session.json>",
		Short: "display the lap records of a vehicle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return displayLaps(cmd.Context(), args[0])
		},
	}
	cmd.Flags().StringVar(&vehicleID, "vehicle", "", "vehicle id to display")
	return cmd
}

func displayLaps(_ context.Context, fileArg string) error {
	logger := utils.SetupStdLogger()
	defer logger.Sync() //nolint:errcheck // last chance flush

	data, err := lapseries.LoadSessionFile(fileArg)
	if err != nil {
		return err
	}
	series, ok := data.Series[vehicleID]
	if !ok {
		return fmt.Errorf("session %s has no vehicle %s", data.SessionID, vehicleID)
	}
	logger.Info("got laps",
		log.String("vehicle", vehicleID),
		log.Int("count", series.Len()))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Lap\tTime\tS1\tS2\tS3\tDelta")
	for _, l := range series.Laps {
		fmt.Fprintf(w, "%d\t%.3f\t%.3f\t%.3f\t%.3f\t%+.3f\n",
			l.LapNumber, l.LapTime,
			l.SectorTimes[0], l.SectorTimes[1], l.SectorTimes[2],
			l.DeltaToBest)
	}
	return w.Flush()
}
