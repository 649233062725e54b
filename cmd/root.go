/*
	Copyright 2025 racelogiq
*/

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	analyzeCmd "github.com/racelogiq/strategy-engine/pkg/cmd/analyze"
	compareCmd "github.com/racelogiq/strategy-engine/pkg/cmd/compare"
	lapsCmd "github.com/racelogiq/strategy-engine/pkg/cmd/laps"
	"github.com/racelogiq/strategy-engine/pkg/config"
	"github.com/racelogiq/strategy-engine/version"
)

const envPrefix = "RSE"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "strategy-engine",
	Short:   "Predictive race strategy analytics for lap telemetry",
	Long:    ``,
	Version: version.FullVersion,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.strategy-engine.yml)")

	rootCmd.PersistentFlags().StringVar(&config.LogLevel, "log-level",
		"info",
		"controls the log level (debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().StringVar(&config.LogFormat, "log-format",
		"text",
		"controls the log output format (text, json)")
	rootCmd.PersistentFlags().StringVar(&config.LogConfig, "log-config",
		"",
		"path to a yaml file with zapfilter rules for named loggers")
	rootCmd.PersistentFlags().Float64Var(&config.PitThreshold, "pit-threshold",
		3.0,
		"delta to best (s) beyond which tires are no longer competitive")
	rootCmd.PersistentFlags().Float64Var(&config.DefaultConsumption, "default-consumption",
		0.08,
		"fallback fuel consumption (l/lap) when no samples exist")
	rootCmd.PersistentFlags().Float64Var(&config.TankCapacity, "tank-capacity",
		50.0,
		"fuel tank capacity (l)")
	rootCmd.PersistentFlags().Float64Var(&config.PitStopTime, "pit-stop-time",
		45.0,
		"assumed time lost for a pit stop (s)")
	rootCmd.PersistentFlags().IntVar(&config.DegradationWindow, "degradation-window",
		5,
		"number of recent laps used for the degradation fit")
	rootCmd.PersistentFlags().IntVar(&config.PaceWindow, "pace-window",
		5,
		"number of recent laps used for pace analysis")

	// add commands here
	rootCmd.AddCommand(analyzeCmd.NewAnalyzeCmd())
	rootCmd.AddCommand(compareCmd.NewCompareCmd())
	rootCmd.AddCommand(lapsCmd.NewLapsCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".strategy-engine"
		// (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".strategy-engine")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	bindFlags(rootCmd, viper.GetViper())
	for _, cmd := range rootCmd.Commands() {
		bindFlags(cmd, viper.GetViper())
	}
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their
		// equivalent keys with underscores, e.g. --pit-threshold to RSE_PIT_THRESHOLD
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name,
				fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not bind env var %s: %v", f.Name, err)
			}
		}
		// Apply the viper config value to the flag when the flag is not set and viper
		// has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				fmt.Fprintf(os.Stderr, "Could set flag value for %s: %v", f.Name, err)
			}
		}
	})
}
