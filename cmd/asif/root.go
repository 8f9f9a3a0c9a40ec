package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// options holds the global flags and the loaded configuration.
type options struct {
	cfgFile  string
	verbose  bool
	parallel bool

	config *cliConfig
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "asif",
		Short: "ASIF 8-bit delta audio codec",
		Long: `asif converts 8-bit PCM audio to and from the ASIF delta format.

An .asif file holds a small header (sample rate, channel count) and one block in
which every sample after the first of each channel is stored as a clamped 8-bit
delta. Streams whose sample-to-sample steps stay within [-128, 127] round-trip
exactly; use "asif verify" to check a file before relying on that.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/asif/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVar(&opts.parallel, "parallel", true, "process channels concurrently")

	cmd.AddCommand(newEncodeCmd(opts))
	cmd.AddCommand(newDecodeCmd(opts))
	cmd.AddCommand(newInfoCmd(opts))
	cmd.AddCommand(newVerifyCmd(opts))

	return cmd
}

// init loads the config file, lets explicitly set flags override it and
// installs the default slog handler.
func (o *options) init(cmd *cobra.Command) error {
	cfg, err := loadConfig(o.cfgFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") || !cfg.Verbose {
		cfg.Verbose = o.verbose
	}
	if flags.Changed("parallel") || cfg.Parallel == nil {
		p := o.parallel
		cfg.Parallel = &p
	}
	o.config = cfg

	logLevel := slog.LevelInfo
	if cfg.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	if cfg.path != "" {
		slog.Debug("loaded config", "path", cfg.path)
	}
	return nil
}
