package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	asif "github.com/tphakala/go-asif"
	"github.com/tphakala/go-asif/internal/container"
)

func newDecodeCmd(opts *options) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "decode <input.asif> <output.wav>",
		Short: "Decode an .asif file into 8-bit PCM",
		Long: `Decode an .asif file into an 8-bit PCM WAV file, or raw interleaved u8 PCM
with --raw.

Examples:
  asif decode speech.asif speech.wav
  asif decode --raw speech.asif speech.u8`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			inputPath, outputPath := args[0], args[1]

			header, planar, err := decodeFile(inputPath, opts.config)
			if err != nil {
				return err
			}

			if raw {
				err = writeRawOutput(outputPath, planar)
			} else {
				err = writeWAVOutput(outputPath, planar, int(header.SampleRate))
			}
			if err != nil {
				return err
			}

			fmt.Printf("Decoded %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
			fmt.Printf("  %d Hz, %d channels, %d samples per channel\n",
				header.SampleRate, header.Channels, len(planar[0]))
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "write headerless interleaved unsigned 8-bit PCM")

	return cmd
}

// readASIF reads the container header and block from path.
func readASIF(path string) (container.Header, []byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return container.Header{}, nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	header, block, err := container.Read(bufio.NewReader(f))
	if err != nil {
		return container.Header{}, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return header, block, nil
}

// decodeFile reads an .asif file and decodes its block.
func decodeFile(path string, cfg *cliConfig) (container.Header, [][]uint8, error) {
	header, block, err := readASIF(path)
	if err != nil {
		return container.Header{}, nil, err
	}

	dec, err := asif.NewDecoder(&asif.Config{
		Channels:       int(header.Channels),
		SampleRate:     int(header.SampleRate),
		EnableParallel: cfg.parallel(),
		Logger:         slog.Default(),
	})
	if err != nil {
		return container.Header{}, nil, err
	}

	planar, err := dec.Decode(block)
	if err != nil {
		return container.Header{}, nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return header, planar, nil
}
