package asif

import (
	"encoding/binary"
	"fmt"
)

// Block is one encoded ASIF payload: a little-endian u32 samples-per-channel
// count followed by one group of that many bytes per channel. Each group starts
// with the channel's first raw sample; the remaining bytes are clamped deltas.
//
// A Block carries no channel count or sample rate. Those travel out of band,
// usually in the container header.
type Block []byte

// SamplesPerChannel returns the count stored in the block prefix.
func (b Block) SamplesPerChannel() (uint32, error) {
	if len(b) < countPrefixSize {
		return 0, fmt.Errorf("%w: %d bytes is shorter than the count prefix", ErrMalformedBlock, len(b))
	}
	return binary.LittleEndian.Uint32(b[:countPrefixSize]), nil
}

// Validate checks that the block length matches its prefix for the given
// channel count and returns the number of samples per channel.
func (b Block) Validate(channels int) (int, error) {
	if channels < 1 {
		return 0, fmt.Errorf("%w: channel count must be positive, got %d", ErrMalformedBlock, channels)
	}

	n, err := b.SamplesPerChannel()
	if err != nil {
		return 0, err
	}

	expected := uint64(countPrefixSize) + uint64(channels)*uint64(n)
	if uint64(len(b)) != expected {
		return 0, fmt.Errorf("%w: length %d, want %d for %d channels of %d samples",
			ErrMalformedBlock, len(b), expected, channels, n)
	}

	return int(n), nil
}

// ChannelData returns the encoded group for channel k without copying.
func (b Block) ChannelData(k, channels int) ([]byte, error) {
	n, err := b.Validate(channels)
	if err != nil {
		return nil, err
	}
	if k < 0 || k >= channels {
		return nil, fmt.Errorf("%w: channel %d out of range [0, %d)", ErrInvalidConfig, k, channels)
	}

	start := countPrefixSize + k*n
	return b[start : start+n], nil
}

// newBlock allocates a block for channels groups of n samples and writes the prefix.
func newBlock(channels int, n uint64) (Block, error) {
	if n > maxBlockSamples {
		return nil, fmt.Errorf("%w: %d samples per channel exceeds the u32 prefix", ErrBlockTooLarge, n)
	}

	maxInt := uint64(int(^uint(0) >> 1))
	if n > 0 && uint64(channels) > (maxInt-countPrefixSize)/n {
		return nil, fmt.Errorf("%w: %d channels of %d samples", ErrBlockTooLarge, channels, n)
	}

	b := make(Block, countPrefixSize+uint64(channels)*n)
	binary.LittleEndian.PutUint32(b[:countPrefixSize], uint32(n))
	return b, nil
}
