package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"booking-platform/internal/app"
	"booking-platform/internal/core/config"
	"booking-platform/internal/core/logger"
)

type globals struct {
	configPath string
	verbose    bool
}

func NewRootCmd() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:   "bookingctl",
		Short: "Operate the booking platform store",
		Long: `bookingctl runs maintenance against the store configured for the booking
services: schema migration and the ranking reports served under /api/v1/stats.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "config file (default $CONFIG_PATH or ./configs/config.local.yaml)")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(newMigrateCmd(g), newStatsCmd(g))
	return root
}

// Execute runs the root command
func Execute() {
	_ = godotenv.Load()
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// open loads config and builds the app; the caller closes both.
func (g *globals) open(ctx context.Context) (*app.App, func(), error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, nil, err
	}
	level := "warn"
	if g.verbose {
		level = "debug"
	}
	l, cleanup := logger.New(level, false)
	a, err := app.New(ctx, cfg, l)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return a, func() {
		if err := a.Close(); err != nil {
			l.Warn("close", zap.Error(err))
		}
		cleanup()
	}, nil
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
