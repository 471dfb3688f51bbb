// Package main provides the therapist-finder command line: a one-shot search
// and the interactive terminal UI.
//
// Run with: go run ./cmd/cli search 90210
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fleveque/therapist-finder/internal/config"
	"github.com/fleveque/therapist-finder/internal/llm"
	"github.com/fleveque/therapist-finder/internal/service"
	"github.com/fleveque/therapist-finder/internal/tui"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootCmd builds the command tree:
// therapist-finder search 90210 [--json]
// therapist-finder tui [--log-file finder.log]
func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "therapist-finder",
		Short:        "Find licensed therapists near a US zipcode",
		SilenceUsage: true,
	}

	root.AddCommand(searchCmd())
	root.AddCommand(tuiCmd())
	return root
}

func searchCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <zipcode>",
		Short: "Run one search and print the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			finder, err := newFinder(logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runSearch(ctx, cmd.OutOrStdout(), finder, args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	return cmd
}

func tuiCmd() *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Search interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := tuiLogger(logFile)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			finder, err := newFinder(logger)
			if err != nil {
				return err
			}

			return tui.Run(cmd.Context(), finder)
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file (the terminal is busy drawing)")
	return cmd
}

func newFinder(logger *zap.Logger) (*service.TherapistService, error) {
	cfg, err := config.Load(os.Getenv("THERAPIST_CONFIG_PATH"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	client, err := llm.New(cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("creating completion client: %w", err)
	}

	return service.NewTherapistService(client, cfg.LLM.Temperature, logger), nil
}

func tuiLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}

	zcfg := zap.NewDevelopmentConfig()
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}
	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return logger, nil
}
