package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/coreman2200/beatlights/internal/app"
	"github.com/coreman2200/beatlights/internal/driver/preview"
	"github.com/coreman2200/beatlights/internal/render"
)

var (
	offsetsFamily string
	offsetsBox    int
	offsetsGroup  int
	offsetsPretty bool
)

var offsetsCmd = &cobra.Command{
	Use:   "offsets <difficulty.dat>",
	Short: "Print per-light offsets as JSON",
	Long: `Print the frame of per-light offsets for every event group in a difficulty.

Examples:
  # Every group of every family
  beatlights offsets ExpertPlusStandard.dat

  # One color group, light groups of 20 fixtures
  beatlights offsets --family color --box 3 --group 0 --group-size 20 ExpertPlusStandard.dat
`,
	Args: cobra.ExactArgs(1),
	RunE: runOffsets,
}

var durationCmd = &cobra.Command{
	Use:   "duration <difficulty.dat>",
	Short: "Print each box's beat span and the last end beat",
	Args:  cobra.ExactArgs(1),
	RunE:  runDuration,
}

func init() {
	offsetsCmd.Flags().StringVar(&offsetsFamily, "family", "", "only this family: color | rotation | translation | fx")
	offsetsCmd.Flags().IntVar(&offsetsBox, "box", 0, "box index within the family (with --family)")
	offsetsCmd.Flags().IntVar(&offsetsGroup, "group", 0, "group index within the box (with --family)")
	offsetsCmd.Flags().BoolVar(&offsetsPretty, "pretty", false, "indent JSON output")
	rootCmd.AddCommand(offsetsCmd, durationCmd)
}

func newEngine(drv render.Driver) (*render.Engine, error) {
	return render.NewEngine(app.NewLayout(cfg), drv, cfg.Workers)
}

func runOffsets(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	d, err := loadDifficulty(args[0])
	if err != nil {
		return err
	}

	var opts []preview.Option
	if offsetsPretty {
		opts = append(opts, preview.Indented())
	}
	eng, err := newEngine(preview.New(cmd.OutOrStdout(), opts...))
	if err != nil {
		return err
	}

	if offsetsFamily != "" {
		fam, err := render.ParseFamily(offsetsFamily)
		if err != nil {
			return err
		}
		offs, err := eng.Offsets(d, fam, offsetsBox, offsetsGroup)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		if offsetsPretty {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(offs)
	}

	f, err := eng.RenderOnce(cmd.Context(), d)
	if err != nil {
		return err
	}
	logger.Debug().
		Str("file", args[0]).
		Str("revision", f.Revision).
		Int("lights", len(f.Lights)).
		Float64("compute_ms", eng.Last.ComputeMS).
		Msg("offsets computed")
	return nil
}

func runDuration(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	d, err := loadDifficulty(args[0])
	if err != nil {
		return err
	}
	eng, err := newEngine(nil)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FAMILY\tBOX\tGROUP ID\tSTART\tEND")
	for _, s := range eng.Timeline(d) {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%g\t%g\n", s.Family, s.Box, s.GroupID, s.Start, s.End)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "end beat: %g\n", eng.EndBeat(d))
	return err
}
