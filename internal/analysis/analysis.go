// Package analysis measures how faithfully an ASIF block reproduces its input.
//
// Decoding is exact only for streams without clamp events. Report quantifies the
// damage otherwise: how many samples differ, by how much, and the resulting
// signal-to-error ratio.
package analysis

import (
	"fmt"
	"math"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	asif "github.com/tphakala/go-asif"
)

// silence is the zero level of unsigned 8-bit PCM.
const silence = 128

// Report summarizes the difference between original and decoded samples.
type Report struct {
	Channels          int
	SamplesPerChannel int

	// ClampEvents is the number of clamped delta steps. Zero when unknown.
	ClampEvents int

	// MismatchedSamples counts decoded samples that differ from the original.
	MismatchedSamples int

	MaxAbsError  float64
	MeanError    float64 // signed; positive means decoded runs high
	MeanAbsError float64
	RMSError     float64

	// SNR is the signal-to-error ratio in dB, with the signal measured around
	// the 8-bit midpoint. +Inf when the reconstruction is exact.
	SNR float64
}

// Lossless reports whether every decoded sample matches the original.
func (r Report) Lossless() bool {
	return r.MismatchedSamples == 0
}

// String returns a one-line summary.
func (r Report) String() string {
	if r.Lossless() {
		return fmt.Sprintf("lossless: %d channels x %d samples, %d clamp events",
			r.Channels, r.SamplesPerChannel, r.ClampEvents)
	}
	return fmt.Sprintf("lossy: %d/%d samples differ, max error %.0f, RMS %.3f, SNR %.2f dB, %d clamp events",
		r.MismatchedSamples, r.Channels*r.SamplesPerChannel, r.MaxAbsError, r.RMSError, r.SNR, r.ClampEvents)
}

// Compare measures decoded against original. Both must have the same shape.
func Compare(original, decoded [][]uint8) (Report, error) {
	if len(original) != len(decoded) {
		return Report{}, fmt.Errorf("channel count mismatch: %d vs %d", len(original), len(decoded))
	}

	report := Report{Channels: len(original)}
	if len(original) == 0 {
		report.SNR = math.Inf(1)
		return report, nil
	}

	n := len(original[0])
	for ch := range original {
		if len(original[ch]) != n || len(decoded[ch]) != n {
			return Report{}, fmt.Errorf("channel %d length mismatch: want %d, got %d and %d",
				ch, n, len(original[ch]), len(decoded[ch]))
		}
	}
	report.SamplesPerChannel = n

	total := len(original) * n
	if total == 0 {
		report.SNR = math.Inf(1)
		return report, nil
	}

	errs := make([]float64, 0, total)
	absErrs := make([]float64, 0, total)
	signal := make([]float64, 0, total)
	for ch := range original {
		for i, want := range original[ch] {
			e := float64(decoded[ch][i]) - float64(want)
			if e != 0 {
				report.MismatchedSamples++
			}
			errs = append(errs, e)
			absErrs = append(absErrs, math.Abs(e))
			signal = append(signal, float64(want)-silence)
		}
	}

	errEnergy := f64.DotProductUnsafe(errs, errs)
	sigEnergy := f64.DotProductUnsafe(signal, signal)

	report.MaxAbsError = floats.Max(absErrs)
	report.MeanError = stat.Mean(errs, nil)
	report.MeanAbsError = f64.Sum(absErrs) / float64(total)
	report.RMSError = math.Sqrt(errEnergy / float64(total))

	switch {
	case errEnergy == 0:
		report.SNR = math.Inf(1)
	case sigEnergy == 0:
		report.SNR = math.Inf(-1)
	default:
		report.SNR = 10 * math.Log10(sigEnergy/errEnergy)
	}

	return report, nil
}

// Verify encodes planar through a complete session, decodes the block and
// compares the result with the input.
func Verify(planar [][]uint8, parallel bool) (Report, error) {
	enc, err := asif.NewEncoder(&asif.Config{
		Channels:       len(planar),
		EnableParallel: parallel,
	})
	if err != nil {
		return Report{}, err
	}

	if err := enc.SubmitFrame(planar); err != nil {
		return Report{}, fmt.Errorf("failed to encode: %w", err)
	}
	if err := enc.Finalize(); err != nil {
		return Report{}, err
	}
	block, err := enc.TakeBlock()
	if err != nil {
		return Report{}, fmt.Errorf("failed to encode: %w", err)
	}

	decoded, err := asif.Decode(block, len(planar))
	if err != nil {
		return Report{}, fmt.Errorf("failed to decode: %w", err)
	}

	report, err := Compare(planar, decoded)
	if err != nil {
		return Report{}, err
	}
	report.ClampEvents = enc.Stats().ClampEvents
	return report, nil
}
