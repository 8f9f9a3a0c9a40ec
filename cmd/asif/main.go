// Command asif encodes and decodes 8-bit PCM audio in the ASIF delta format.
//
// Usage:
//
//	asif encode input.wav output.asif
//	asif encode --raw --rate 8000 --channels 2 input.u8 output.asif
//	asif decode input.asif output.wav
//	asif info input.asif
//	asif verify --strict input.wav
//
// Defaults for --parallel, --verbose and the raw input format can be kept in a
// YAML file passed with --config (default $XDG_CONFIG_HOME/asif/config.yaml).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
