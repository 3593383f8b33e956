// Package cli wires the abeba command tree: the HTTP server and the offline
// prediction tools share one config layer.
package cli

import (
	"context"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/terraincognita07/abeba/internal/config"
)

// Set by the release build.
var version = "dev"

type rootOptions struct {
	configFile string
	noColor    bool
	now        func() time.Time
}

// Execute runs the command tree against os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func NewRootCommand() *cobra.Command {
	return newRootCommand(time.Now)
}

func newRootCommand(now func() time.Time) *cobra.Command {
	options := &rootOptions{now: now}

	rootCmd := &cobra.Command{
		Use:                "abeba",
		Short:              "Predict menstrual cycles, ovulation and fertile windows.",
		Version:            version,
		SilenceErrors:      true,
		SilenceUsage:       true,
		DisableSuggestions: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if options.noColor {
				color.NoColor = true
			}
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVar(&options.configFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().BoolVar(&options.noColor, "no-color", false, "disable coloured output")

	rootCmd.AddCommand(
		newServeCommand(options),
		newPredictCommand(options),
		newCalendarCommand(options),
		newResetPasswordCommand(options),
	)
	return rootCmd
}

func (options *rootOptions) viper() (*viper.Viper, error) {
	return config.NewViper(options.configFile)
}

// locationFrom resolves TZ without failing; offline commands do not need the
// rest of the server configuration to be valid.
func locationFrom(v *viper.Viper) *time.Location {
	location, err := time.LoadLocation(strings.TrimSpace(v.GetString("TZ")))
	if err != nil {
		return time.UTC
	}
	return location
}
