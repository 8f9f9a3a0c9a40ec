package asif

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
)

// Config holds codec session configuration.
type Config struct {
	// Channels is the number of planar channels in the stream.
	Channels int

	// SampleRate is the stream's sample rate in Hz. The block format does not
	// carry it; it is passed through to the container layer. Zero means unknown.
	SampleRate int

	// CapacityHint is the initial per-channel buffer capacity in samples.
	// Set to 0 to use the default.
	CapacityHint int

	// EnableParallel runs the per-channel delta passes concurrently.
	// Channels never share state, so the output is identical to the sequential path.
	// Has no effect on mono audio.
	EnableParallel bool

	// Logger receives debug records about session progress. Nil disables logging.
	Logger *slog.Logger
}

// Common errors returned by the codec.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid codec configuration")

	// ErrInvalidState indicates an operation that the session's current state does not accept.
	ErrInvalidState = errors.New("invalid session state")

	// ErrNotReady is returned by TakeBlock before the session has been finalized.
	// Callers should submit more frames or call Finalize.
	ErrNotReady = errors.New("block not ready: session still accumulating")

	// ErrAlreadyEmitted is returned by TakeBlock once the block has been taken.
	// It wraps io.EOF.
	ErrAlreadyEmitted = fmt.Errorf("block already emitted: %w", io.EOF)

	// ErrChannelMismatch indicates a frame whose batch count differs from the session's channel count.
	ErrChannelMismatch = errors.New("frame channel count mismatch")

	// ErrFrameLengthMismatch indicates a frame whose per-channel batches differ in length.
	ErrFrameLengthMismatch = errors.New("frame length mismatch")

	// ErrMalformedBlock indicates a block that cannot be decoded with the given channel count.
	ErrMalformedBlock = errors.New("malformed block")

	// ErrBlockTooLarge indicates the accumulated stream cannot be represented in one block.
	ErrBlockTooLarge = errors.New("block too large")
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Channels < 1 {
		return fmt.Errorf("%w: channels must be at least 1", ErrInvalidConfig)
	}

	if c.SampleRate < 0 || int64(c.SampleRate) > math.MaxUint32 {
		return fmt.Errorf("%w: sample rate out of range", ErrInvalidConfig)
	}

	if c.CapacityHint < 0 {
		return fmt.Errorf("%w: capacity hint must not be negative", ErrInvalidConfig)
	}

	return nil
}

// logger returns the configured logger or one that discards everything.
func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}
