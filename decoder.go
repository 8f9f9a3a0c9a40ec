package asif

import (
	"fmt"
	"log/slog"

	"github.com/tphakala/go-asif/internal/delta"
)

// Decoder reverses the delta coding of blocks for a fixed channel count.
// It holds no per-block state and may be reused; concurrent calls to Decode
// are safe.
type Decoder struct {
	config Config
	logger *slog.Logger
}

// NewDecoder creates a decoder for blocks with config.Channels channels.
func NewDecoder(config *Config) (*Decoder, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Decoder{
		config: *config,
		logger: config.logger(),
	}, nil
}

// Decode reconstructs one planar buffer per channel from block. On error no
// partial output is returned.
func (d *Decoder) Decode(block []byte) ([][]uint8, error) {
	out, err := decodeBlock(Block(block), d.config.Channels, d.config.EnableParallel)
	if err != nil {
		return nil, err
	}

	d.logger.Debug("block decoded", "channels", len(out), "bytes", len(block))
	return out, nil
}

// Decode reconstructs one planar buffer per channel from block using the
// given channel count.
func Decode(block []byte, channels int) ([][]uint8, error) {
	return decodeBlock(Block(block), channels, false)
}

func decodeBlock(block Block, channels int, parallel bool) ([][]uint8, error) {
	n, err := block.Validate(channels)
	if err != nil {
		return nil, err
	}

	// One backing array, sliced densely per channel.
	backing := make([]uint8, channels*n)
	out := make([][]uint8, channels)
	for ch := range out {
		out[ch] = backing[ch*n : (ch+1)*n : (ch+1)*n]
	}

	forEachChannel(channels, parallel, func(ch int) {
		start := countPrefixSize + ch*n
		delta.DecodeChannel(out[ch], block[start:start+n])
	})

	return out, nil
}
