package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	asif "github.com/tphakala/go-asif"
	"github.com/tphakala/go-asif/internal/container"
)

// fileInfo describes an .asif file without decoding it.
type fileInfo struct {
	header            container.Header
	samplesPerChannel uint32
	blockBytes        int
}

// duration returns the playback length, or 0 when the sample rate is unknown.
func (i fileInfo) duration() time.Duration {
	if i.header.SampleRate == 0 {
		return 0
	}
	return time.Duration(i.samplesPerChannel) * time.Second / time.Duration(i.header.SampleRate)
}

func newInfoCmd(_ *options) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file.asif>",
		Short: "Show header and block information",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			info, err := readInfo(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", args[0])
			fmt.Printf("  Sample rate:         %d Hz\n", info.header.SampleRate)
			fmt.Printf("  Channels:            %d\n", info.header.Channels)
			fmt.Printf("  Samples per channel: %d\n", info.samplesPerChannel)
			fmt.Printf("  Duration:            %s\n", info.duration())
			fmt.Printf("  Size:                %d bytes\n", container.HeaderSize+info.blockBytes)
			return nil
		},
	}
}

func readInfo(path string) (fileInfo, error) {
	header, block, err := readASIF(path)
	if err != nil {
		return fileInfo{}, err
	}

	n, err := asif.Block(block).Validate(int(header.Channels))
	if err != nil {
		return fileInfo{}, err
	}

	return fileInfo{
		header:            header,
		samplesPerChannel: uint32(n),
		blockBytes:        len(block),
	}, nil
}
