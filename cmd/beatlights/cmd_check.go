package main

import (
	"fmt"

	"github.com/spf13/cobra"

	diag "github.com/coreman2200/beatlights/internal/diagnostics"
)

var checkStrict bool

var checkCmd = &cobra.Command{
	Use:   "check <difficulty.dat>",
	Short: "Report values the engine will fall back on",
	Long: `Scan a difficulty for unknown enum ids, out of range limits and settings the
active filter revision ignores. Offsets are still computed for such files;
--strict turns warnings into a failing exit status.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "fail when any warning is found")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	d, err := loadDifficulty(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	found := d.Check()
	fmt.Fprintf(out, "%s: version %q, %s filter revision\n", args[0], d.Version, d.Revision)
	for _, dg := range found {
		fmt.Fprintln(out, dg.String())
	}
	if len(found) == 0 {
		fmt.Fprintln(out, "no issues")
	}

	worst := found.Worst()
	if worst == diag.Err || (checkStrict && worst == diag.Warn) {
		return fmt.Errorf("%d issue(s), worst %s", len(found), worst)
	}
	return nil
}
