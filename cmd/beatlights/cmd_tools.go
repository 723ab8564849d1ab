package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/coreman2200/beatlights/internal/config"
	"github.com/coreman2200/beatlights/internal/easing"
)

var (
	initForce   bool
	easingSteps int
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file to --config",
	Long: `Write the default settings, with any --revision, --group-size and --workers
overrides applied, to the --config path. An existing file is kept unless
--force is given.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var easingCmd = &cobra.Command{
	Use:   "easing <name>",
	Short: "Print samples of a value easing curve",
	Long: `Print the curve a value distribution follows under an easing, sampled
evenly over 0..1. Names are the ones shown in offsets and check output,
e.g. in_out_quad.`,
	Args: cobra.ExactArgs(1),
	RunE: runEasing,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing file")
	easingCmd.Flags().IntVar(&easingSteps, "steps", 10, "number of intervals to sample")
	rootCmd.AddCommand(initCmd, easingCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(configPath); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	c := config.Default()
	if err := applyFlags(c); err != nil {
		return err
	}
	if err := config.Save(configPath, c); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", configPath)
	return err
}

func runEasing(cmd *cobra.Command, args []string) error {
	e, ok := easing.Parse(args[0])
	if !ok {
		return fmt.Errorf("unknown easing %q", args[0])
	}
	if easingSteps < 1 {
		return fmt.Errorf("--steps must be at least 1, got %d", easingSteps)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "X\tEASED")
	for i := 0; i <= easingSteps; i++ {
		x := float32(i) / float32(easingSteps)
		fmt.Fprintf(tw, "%g\t%g\n", x, e.Ease(x))
	}
	return tw.Flush()
}
