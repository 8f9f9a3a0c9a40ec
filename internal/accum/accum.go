// Package accum provides the per-channel sample accumulator used by the encoder.
// Samples are appended across many frames before the final length is known and
// handed out once, in order, when the accumulator is closed.
package accum

import (
	"errors"
	"fmt"
)

const (
	defaultCapacity = 4096 // capacity of the first growth when no hint is given
	growthFactor    = 2    // capacity multiplier on growth
)

// ErrClosed is returned when an accumulator is used after Close.
var ErrClosed = errors.New("accumulator closed")

// Accumulator is an append-only ordered buffer of 8-bit samples for one channel.
// It is not safe for concurrent use.
type Accumulator struct {
	data   []uint8
	closed bool
}

// New creates an accumulator with the given initial capacity.
// A non-positive hint allocates nothing until the first Append, which then
// reserves the default capacity.
func New(capacityHint int) *Accumulator {
	if capacityHint < 1 {
		return &Accumulator{}
	}

	return &Accumulator{
		data: make([]uint8, 0, capacityHint),
	}
}

// Append adds samples to the end of the channel.
func (a *Accumulator) Append(samples []uint8) error {
	if a.closed {
		return fmt.Errorf("append: %w", ErrClosed)
	}
	if len(samples) == 0 {
		return nil
	}

	needed := len(a.data) + len(samples)
	if needed > cap(a.data) {
		a.grow(needed)
	}
	a.data = append(a.data, samples...)
	return nil
}

// Len returns the number of samples appended so far.
func (a *Accumulator) Len() int {
	return len(a.data)
}

// Closed reports whether Close has been called.
func (a *Accumulator) Closed() bool {
	return a.closed
}

// Close finalizes the channel and returns its samples in append order.
// The accumulator drops its reference to the storage; the returned slice is
// owned by the caller.
func (a *Accumulator) Close() ([]uint8, error) {
	if a.closed {
		return nil, fmt.Errorf("close: %w", ErrClosed)
	}

	samples := a.data
	a.data = nil
	a.closed = true
	return samples, nil
}

// Release drops the buffered samples without returning them.
func (a *Accumulator) Release() {
	a.data = nil
	a.closed = true
}

// grow increases capacity to at least minCapacity, preserving contents.
func (a *Accumulator) grow(minCapacity int) {
	newCapacity := cap(a.data)
	if newCapacity == 0 {
		newCapacity = defaultCapacity
	}
	for newCapacity < minCapacity {
		newCapacity *= growthFactor
	}

	newData := make([]uint8, len(a.data), newCapacity)
	copy(newData, a.data)
	a.data = newData
}
