// Package delta implements the clamped 8-bit delta transform used by the ASIF block format.
//
// Each sample after the first is stored as a wrapping difference from its predecessor.
// Differences that do not fit the signed 8-bit range are saturated at 127 (rising) or
// 128 (falling) and the remainder is returned as a carry that the caller folds into
// the next difference of the same channel.
package delta

const (
	maxRising  = 127 // largest delta for a non-decreasing step
	minFalling = 128 // smallest delta for a decreasing step
)

// Encode computes the delta byte for sample given its predecessor and the carry
// left over from the previous step. It returns the delta and the carry to thread
// into the next call for the same channel.
//
// The carry is folded with 8-bit wrapping arithmetic: added when non-negative,
// subtracted otherwise. The clamp direction is taken from the unwrapped comparison
// of sample and previous, not from the folded delta.
func Encode(sample, previous uint8, carry int) (uint8, int) {
	raw := sample - previous
	if carry >= 0 {
		raw = uint8(int(raw) + carry)
	} else {
		raw = uint8(int(raw) - carry)
	}

	if sample >= previous {
		if raw > maxRising {
			return maxRising, int(raw) - maxRising
		}
		return raw, 0
	}

	if raw < minFalling {
		return minFalling, minFalling - int(raw)
	}
	return raw, 0
}

// Decode reconstructs a sample from its delta and the previously decoded sample.
func Decode(d, previous uint8) uint8 {
	return previous + d
}

// EncodeChannel delta-codes samples into dst, which must hold at least
// len(samples) bytes. The first sample is copied raw and the carry starts at zero.
// It returns the number of steps that had to be clamped.
func EncodeChannel(dst, samples []uint8) int {
	if len(samples) == 0 {
		return 0
	}
	dst = dst[:len(samples)]

	dst[0] = samples[0]
	carry := 0
	clamps := 0
	for i := 1; i < len(samples); i++ {
		var d uint8
		d, carry = Encode(samples[i], samples[i-1], carry)
		if carry != 0 {
			clamps++
		}
		dst[i] = d
	}
	return clamps
}

// DecodeChannel reverses EncodeChannel by prefix-summing src into dst with
// wraparound. dst must hold at least len(src) bytes.
func DecodeChannel(dst, src []uint8) {
	if len(src) == 0 {
		return
	}
	dst = dst[:len(src)]

	prev := src[0]
	dst[0] = prev
	for i := 1; i < len(src); i++ {
		prev = Decode(src[i], prev)
		dst[i] = prev
	}
}

// Clamped reports whether a step from previous to sample with a zero incoming
// carry would be saturated.
func Clamped(sample, previous uint8) bool {
	_, carry := Encode(sample, previous, 0)
	return carry != 0
}
