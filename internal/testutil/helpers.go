// Package testutil provides reusable test helpers and sample generators for codec tests.
package testutil

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Midpoint is the silence level of unsigned 8-bit PCM.
const Midpoint = 128

// maxSafeStep is the largest step magnitude that never triggers a clamp.
const maxSafeStep = 127

// NewRand returns a deterministic random source for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// SmoothWalk returns n samples whose successive differences stay within
// [-maxStep, maxStep] without wrapping. With maxStep <= 127 the result never
// triggers a clamp.
func SmoothWalk(rng *rand.Rand, n, maxStep int) []uint8 {
	if n == 0 {
		return []uint8{}
	}
	maxStep = min(max(maxStep, 0), maxSafeStep)

	out := make([]uint8, n)
	cur := rng.IntN(256)
	out[0] = uint8(cur)
	for i := 1; i < n; i++ {
		step := rng.IntN(2*maxStep+1) - maxStep
		cur = min(max(cur+step, 0), math.MaxUint8)
		out[i] = uint8(cur)
	}
	return out
}

// RandomSamples returns n uniformly random samples. Large jumps are frequent,
// so the result usually triggers clamps.
func RandomSamples(rng *rand.Rand, n int) []uint8 {
	out := make([]uint8, n)
	for i := range out {
		out[i] = uint8(rng.IntN(256))
	}
	return out
}

// Tone returns n samples of an unsigned 8-bit sine at the given frequency.
// Amplitude is in [0, 127].
func Tone(n int, freq, sampleRate float64, amplitude float64) []uint8 {
	out := make([]uint8, n)
	for i := range out {
		v := Midpoint + amplitude*math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
		out[i] = uint8(math.Round(min(max(v, 0), math.MaxUint8)))
	}
	return out
}

// Planar builds a channels x n planar buffer using gen for each channel.
func Planar(channels int, gen func(ch int) []uint8) [][]uint8 {
	out := make([][]uint8, channels)
	for ch := range out {
		out[ch] = gen(ch)
	}
	return out
}

// Split cuts every channel of planar into consecutive frames of at most size samples.
func Split(planar [][]uint8, size int) [][][]uint8 {
	if len(planar) == 0 || size < 1 {
		return nil
	}

	n := len(planar[0])
	var frames [][][]uint8
	for start := 0; start < n; start += size {
		end := min(start+size, n)
		frame := make([][]uint8, len(planar))
		for ch := range planar {
			frame[ch] = planar[ch][start:end]
		}
		frames = append(frames, frame)
	}
	return frames
}

// AssertPlanarEqual verifies that two planar buffers match sample for sample.
// It reports the first mismatching position per channel.
func AssertPlanarEqual(t *testing.T, expected, actual [][]uint8, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	ok := true
	for ch := range expected {
		if !assert.Len(t, actual[ch], len(expected[ch]), "channel %d length", ch) {
			ok = false
			continue
		}
		for i := range expected[ch] {
			if expected[ch][i] != actual[ch][i] {
				assert.Fail(t, "sample mismatch",
					"channel %d sample %d: want %d, got %d", ch, i, expected[ch][i], actual[ch][i])
				ok = false
				break
			}
		}
	}
	return ok
}
