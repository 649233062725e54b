package compare

import (
	"context"
	"fmt"
	"os"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/racelogiq/strategy-engine/pkg/model"
	"github.com/racelogiq/strategy-engine/pkg/processing/crosstrack"
	"github.com/racelogiq/strategy-engine/pkg/utils"
)

var (
	vehicleID string
	topN      int
)

//nolint:lll // readability
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <summaries.json>",
		Short: "rank a vehicle's sessions across tracks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return compareSessions(cmd.Context(), args[0])
		},
	}
	cmd.Flags().StringVar(&vehicleID, "vehicle", "", "vehicle id the summaries belong to")
	cmd.Flags().IntVar(&topN, "top", 0, "only list the N strongest tracks")
	return cmd
}

func compareSessions(_ context.Context, fileArg string) error {
	logger := utils.SetupStdLogger()
	defer logger.Sync() //nolint:errcheck // last chance flush

	content, err := os.ReadFile(fileArg)
	if err != nil {
		return err
	}
	var summaries []model.SessionSummary
	if err := oj.Unmarshal(content, &summaries); err != nil {
		return fmt.Errorf("could not parse summaries file %s: %w", fileArg, err)
	}

	if topN > 0 {
		fmt.Fprintln(os.Stdout, oj.JSON(crosstrack.Strongest(summaries, topN), 2))
		return nil
	}
	ret, err := crosstrack.Compare(vehicleID, summaries)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, oj.JSON(ret, 2))
	return nil
}
