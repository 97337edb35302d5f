package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"crosslocale/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newRootCmd().Execute(); err != nil {
		// Catalog errors were already reported with their source excerpt.
		var cerr *catalogError
		if !errors.As(err, &cerr) {
			log.Error().Err(err).Msg("Command failed")
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "crosslocale",
		Short: "Compile gettext catalogs into Localize Me translation packs",
		Long: `Parses the PO catalogs exported from the translation server and folds
their entries into the JSON translation packs loaded by the Localize Me mod.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cfg := config.Load()
	rootCmd.AddCommand(compileCmd(cfg))
	rootCmd.AddCommand(parsePoCmd())
	rootCmd.AddCommand(pullCmd(cfg))

	return rootCmd
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
