package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	asif "github.com/tphakala/go-asif"
	"github.com/tphakala/go-asif/internal/container"
)

// inputFlags selects how input audio is read.
type inputFlags struct {
	raw      bool
	rate     int
	channels int
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.raw, "raw", false, "input is headerless interleaved unsigned 8-bit PCM")
	cmd.Flags().IntVar(&f.rate, "rate", 0, "sample rate in Hz for raw input")
	cmd.Flags().IntVar(&f.channels, "channels", 0, "channel count for raw input")
}

// open reads the input file, taking raw format defaults from the config.
func (f *inputFlags) open(path string, cfg *cliConfig) (*pcmInput, error) {
	if !f.raw {
		return openWAVInput(path)
	}

	rate, channels := f.rate, f.channels
	if rate == 0 {
		rate = cfg.Raw.SampleRate
	}
	if channels == 0 {
		channels = cfg.Raw.Channels
	}
	return openRawInput(path, rate, channels)
}

type encodeStats struct {
	rate       int
	channels   int
	samples    uint32
	bytes      int
	clamps     int
	inputBytes int64
}

func newEncodeCmd(opts *options) *cobra.Command {
	in := &inputFlags{}

	cmd := &cobra.Command{
		Use:   "encode <input.wav> <output.asif>",
		Short: "Encode 8-bit PCM into an .asif file",
		Long: `Encode an 8-bit PCM WAV file (or raw interleaved u8 PCM with --raw) into
an .asif file.

Examples:
  asif encode speech.wav speech.asif
  asif encode --raw --rate 8000 --channels 1 speech.u8 speech.asif`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			inputPath, outputPath := args[0], args[1]

			start := time.Now()
			stats, err := encodeFile(inputPath, outputPath, in, opts.config)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Printf("Encoded %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
			fmt.Printf("  %d Hz, %d channels, %d samples per channel\n", stats.rate, stats.channels, stats.samples)
			fmt.Printf("  %d bytes -> %d bytes in %.2fs\n", stats.inputBytes, stats.bytes, elapsed.Seconds())
			if stats.clamps > 0 {
				slog.Warn("stream is not lossless", "clamp_events", stats.clamps)
			}
			return nil
		},
	}
	in.register(cmd)

	return cmd
}

// encodeFile runs one encoding session over the input and writes the container.
func encodeFile(inputPath, outputPath string, in *inputFlags, cfg *cliConfig) (stats *encodeStats, err error) {
	input, err := in.open(inputPath, cfg)
	if err != nil {
		return nil, err
	}

	header, err := container.NewHeader(input.rate, input.channels)
	if err != nil {
		return nil, err
	}

	enc, err := asif.NewEncoder(&asif.Config{
		Channels:       input.channels,
		SampleRate:     input.rate,
		CapacityHint:   cfg.CapacityHint,
		EnableParallel: cfg.parallel(),
		Logger:         slog.Default(),
	})
	if err != nil {
		return nil, err
	}
	defer func() { _ = enc.Close() }()

	for _, frame := range input.frames {
		if err := enc.SendFrame(frame); err != nil {
			return nil, fmt.Errorf("failed to encode frame: %w", err)
		}
	}
	if err := enc.SendFrame(nil); err != nil {
		return nil, err
	}

	block, err := enc.TakeBlock()
	if err != nil {
		return nil, fmt.Errorf("failed to encode: %w", err)
	}

	outputFile, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := outputFile.Close(); err == nil {
			err = closeErr
		}
	}()

	if err := container.Write(outputFile, header, block); err != nil {
		return nil, err
	}

	return &encodeStats{
		rate:       input.rate,
		channels:   input.channels,
		samples:    enc.SamplesPerChannel(),
		bytes:      container.HeaderSize + len(block),
		clamps:     enc.Stats().ClampEvents,
		inputBytes: int64(input.samples) * int64(input.channels),
	}, nil
}
