package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/coreman2200/beatlights/internal/app"
	"github.com/coreman2200/beatlights/internal/beatmap"
	"github.com/coreman2200/beatlights/internal/config"
	"github.com/coreman2200/beatlights/internal/logging"
)

var (
	logger zerolog.Logger
	cfg    *config.Config

	configPath string
	revision   string
	groupSize  int
	workers    int
)

var rootCmd = &cobra.Command{
	Use:   "beatlights",
	Short: "Light event box offset engine",
	Long: `beatlights computes, for every light of every event group in a difficulty
file, whether the group's filter selects it and how far its beat and value
are offset.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve [difficulty.dat]",
	Short: "Start the offset server",
	Long:  "Serve /frames, /control, /diag, /health and /metrics, optionally preloading a difficulty.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runServe,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "config.yaml", "path to config.yaml")
	pf.StringVar(&revision, "revision", "", "filter revision: auto | legacy | current (overrides config)")
	pf.IntVar(&groupSize, "group-size", 0, "fixtures per light group (overrides config)")
	pf.IntVar(&workers, "workers", 0, "concurrent group workers (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads configuration (called by commands that need it).
func loadConfig() error {
	var err error
	cfg, err = config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applyFlags(cfg); err != nil {
		return err
	}
	logger = logging.SetupWithWriter(cfg.Log.Level, cfg.Log.Pretty, os.Stderr)
	return nil
}

// applyFlags lays the persistent flag overrides over c.
func applyFlags(c *config.Config) error {
	if revision != "" {
		c.Revision = revision
	}
	if groupSize > 0 {
		c.Layout.DefaultSize = groupSize
	}
	if workers > 0 {
		c.Workers = workers
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// loadDifficulty decodes path honouring the configured revision.
func loadDifficulty(path string) (*beatmap.Difficulty, error) {
	opts, err := app.DecodeOptions(cfg)
	if err != nil {
		return nil, err
	}
	return beatmap.Load(path, opts...)
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	core, err := app.InitCore(cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize core: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(args) == 1 {
		if _, err := core.State.LoadFile(ctx, args[0]); err != nil {
			return err
		}
	}

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return err
	}
	if err := core.Serve(ctx, ln); err != nil {
		return err
	}
	logger.Info().Msg("stopped")
	return nil
}
