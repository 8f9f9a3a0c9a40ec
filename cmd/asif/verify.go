package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tphakala/go-asif/internal/analysis"
)

// errLossy is returned by verify --strict when the round trip is not exact.
var errLossy = errors.New("round trip is not lossless")

func newVerifyCmd(opts *options) *cobra.Command {
	in := &inputFlags{}
	var strict bool

	cmd := &cobra.Command{
		Use:   "verify <input.wav>",
		Short: "Encode and decode in memory and report fidelity",
		Long: `Encode the input, decode the result and compare it sample by sample with
the original. Large sample-to-sample jumps are clamped by the format and may not
survive the round trip.

Examples:
  asif verify speech.wav
  asif verify --strict --raw --rate 8000 --channels 2 speech.u8`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			report, err := verifyFile(args[0], in, opts.config)
			if err != nil {
				return err
			}

			fmt.Printf("%s: %s\n", args[0], report)
			if !report.Lossless() {
				slog.Debug("fidelity",
					"mean_error", report.MeanError,
					"mean_abs_error", report.MeanAbsError,
					"max_abs_error", report.MaxAbsError)
				if strict {
					return errLossy
				}
			}
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when the round trip is lossy")

	return cmd
}

func verifyFile(path string, in *inputFlags, cfg *cliConfig) (analysis.Report, error) {
	input, err := in.open(path, cfg)
	if err != nil {
		return analysis.Report{}, err
	}

	report, err := analysis.Verify(input.planar(), cfg.parallel())
	if err != nil {
		return analysis.Report{}, fmt.Errorf("failed to verify %s: %w", path, err)
	}
	return report, nil
}
