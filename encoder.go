package asif

import (
	"fmt"
	"log/slog"

	"github.com/tphakala/go-asif/internal/accum"
	"github.com/tphakala/go-asif/internal/delta"
)

// State is the lifecycle state of an Encoder.
type State int

const (
	// StateAccumulating accepts frames. TakeBlock reports ErrNotReady.
	StateAccumulating State = iota

	// StateFinalized rejects frames. The next TakeBlock produces the block.
	StateFinalized

	// StateEmitted is terminal. TakeBlock reports ErrAlreadyEmitted.
	StateEmitted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateAccumulating:
		return "accumulating"
	case StateFinalized:
		return "finalized"
	case StateEmitted:
		return "emitted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Stats describes the delta pass of an emitted block.
type Stats struct {
	// ChannelClamps holds the number of clamped steps per channel.
	ChannelClamps []int

	// ClampEvents is the total number of clamped steps across channels.
	ClampEvents int
}

// Lossless reports whether no step was clamped. Only then does decoding
// reproduce the input exactly.
func (s Stats) Lossless() bool {
	return s.ClampEvents == 0
}

// Encoder buffers planar 8-bit frames and emits them as a single Block.
//
// The session moves Accumulating -> Finalized -> Emitted. Frames are accepted
// only while accumulating, and the block is produced exactly once. An Encoder
// is not safe for concurrent use.
type Encoder struct {
	config            Config
	state             State
	channels          []*accum.Accumulator
	samplesPerChannel uint64
	stats             Stats
	logger            *slog.Logger
}

// NewEncoder creates an encoding session with one empty accumulator per channel.
func NewEncoder(config *Config) (*Encoder, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	e := &Encoder{
		config:   *config,
		state:    StateAccumulating,
		channels: make([]*accum.Accumulator, config.Channels),
		logger:   config.logger(),
	}
	for ch := range e.channels {
		e.channels[ch] = accum.New(config.CapacityHint)
	}

	e.logger.Debug("encoder created", "channels", config.Channels, "sample_rate", config.SampleRate)
	return e, nil
}

// SubmitFrame appends one frame to the session. The frame holds one sample
// batch per channel and every batch must have the same length. A rejected
// frame leaves the session unchanged.
func (e *Encoder) SubmitFrame(frame [][]uint8) error {
	if e.state != StateAccumulating {
		return fmt.Errorf("%w: cannot submit frame while %s", ErrInvalidState, e.state)
	}

	if len(frame) != len(e.channels) {
		return fmt.Errorf("%w: expected %d channels, got %d", ErrChannelMismatch, len(e.channels), len(frame))
	}

	n := len(frame[0])
	for ch, batch := range frame {
		if len(batch) != n {
			return fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d",
				ErrFrameLengthMismatch, ch, len(batch), n)
		}
	}

	if e.samplesPerChannel+uint64(n) > maxBlockSamples {
		return fmt.Errorf("%w: %d samples per channel exceeds the u32 prefix",
			ErrBlockTooLarge, e.samplesPerChannel+uint64(n))
	}

	for ch, batch := range frame {
		if err := e.channels[ch].Append(batch); err != nil {
			return fmt.Errorf("%w: channel %d: %w", ErrInvalidState, ch, err)
		}
	}
	e.samplesPerChannel += uint64(n)

	return nil
}

// SendFrame submits frame, or finalizes the session when frame is nil.
// A nil frame is the end-of-input marker.
func (e *Encoder) SendFrame(frame [][]uint8) error {
	if frame == nil {
		return e.Finalize()
	}
	return e.SubmitFrame(frame)
}

// Finalize signals that no more frames will be submitted.
func (e *Encoder) Finalize() error {
	if e.state != StateAccumulating {
		return fmt.Errorf("%w: cannot finalize while %s", ErrInvalidState, e.state)
	}

	e.state = StateFinalized
	e.logger.Debug("encoder finalized", "samples_per_channel", e.samplesPerChannel)
	return nil
}

// TakeBlock delta-codes every channel and returns the block. It fails with
// ErrNotReady before Finalize and with ErrAlreadyEmitted after the block has
// been taken. Accumulated samples are released once the block is built.
func (e *Encoder) TakeBlock() (Block, error) {
	switch e.state {
	case StateAccumulating:
		return nil, ErrNotReady
	case StateEmitted:
		return nil, ErrAlreadyEmitted
	}

	n := e.samplesPerChannel
	block, err := newBlock(len(e.channels), n)
	if err != nil {
		return nil, err
	}

	samples := make([][]uint8, len(e.channels))
	for ch, acc := range e.channels {
		s, err := acc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: channel %d: %w", ErrInvalidState, ch, err)
		}
		samples[ch] = s
	}

	clamps := make([]int, len(e.channels))
	stride := int(n)
	forEachChannel(len(e.channels), e.config.EnableParallel, func(ch int) {
		start := countPrefixSize + ch*stride
		clamps[ch] = delta.EncodeChannel(block[start:start+stride], samples[ch])
	})

	e.stats = Stats{ChannelClamps: clamps}
	for _, c := range clamps {
		e.stats.ClampEvents += c
	}

	e.release()
	e.state = StateEmitted

	e.logger.Debug("block emitted",
		"samples_per_channel", n,
		"channels", len(clamps),
		"bytes", len(block),
		"clamp_events", e.stats.ClampEvents)

	return block, nil
}

// Close discards the session and releases buffered samples. After Close the
// encoder behaves as if its block had already been emitted.
func (e *Encoder) Close() error {
	e.release()
	e.state = StateEmitted
	return nil
}

// State returns the current lifecycle state.
func (e *Encoder) State() State {
	return e.state
}

// Channels returns the session's channel count.
func (e *Encoder) Channels() int {
	return len(e.channels)
}

// SampleRate returns the configured sample rate.
func (e *Encoder) SampleRate() int {
	return e.config.SampleRate
}

// SamplesPerChannel returns the number of samples accumulated per channel.
func (e *Encoder) SamplesPerChannel() uint32 {
	return uint32(e.samplesPerChannel)
}

// Stats returns statistics for the emitted block. It is zero until TakeBlock succeeds.
func (e *Encoder) Stats() Stats {
	return e.stats
}

func (e *Encoder) release() {
	for _, acc := range e.channels {
		acc.Release()
	}
}
