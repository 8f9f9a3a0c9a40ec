package asif

import "fmt"

// Common sample rates for 8-bit audio.
const (
	// RateTelephony is the telephony (PSTN narrowband) sample rate.
	RateTelephony = 8000

	// RateVoIP is the VoIP wideband sample rate.
	RateVoIP = 16000

	// RateSpeech is the common speech recognition sample rate.
	RateSpeech = 22050

	// RateCD is the CD quality sample rate.
	RateCD = 44100
)

// EncodeChannels encodes complete planar channels as a single block.
// All channels must have the same length.
func EncodeChannels(channels [][]uint8) (Block, error) {
	enc, err := NewEncoder(&Config{Channels: len(channels)})
	if err != nil {
		return nil, err
	}

	if err := enc.SubmitFrame(channels); err != nil {
		return nil, err
	}
	if err := enc.Finalize(); err != nil {
		return nil, err
	}
	return enc.TakeBlock()
}

// EncodeMono encodes a single channel.
func EncodeMono(samples []uint8) (Block, error) {
	return EncodeChannels([][]uint8{samples})
}

// EncodeStereo encodes a left/right pair.
func EncodeStereo(left, right []uint8) (Block, error) {
	return EncodeChannels([][]uint8{left, right})
}

// EncodeInterleaved encodes interleaved samples with the given channel count.
func EncodeInterleaved(data []uint8, channels int) (Block, error) {
	planar, err := Deinterleave(data, channels)
	if err != nil {
		return nil, err
	}
	return EncodeChannels(planar)
}

// DecodeMono decodes a single-channel block.
func DecodeMono(block []byte) ([]uint8, error) {
	out, err := Decode(block, monoChannels)
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// DecodeStereo decodes a two-channel block.
func DecodeStereo(block []byte) (left, right []uint8, err error) {
	out, err := Decode(block, stereoChannels)
	if err != nil {
		return nil, nil, err
	}
	return out[0], out[1], nil
}

// DecodeInterleaved decodes a block and interleaves its channels.
func DecodeInterleaved(block []byte, channels int) ([]uint8, error) {
	out, err := Decode(block, channels)
	if err != nil {
		return nil, err
	}
	return Interleave(out)
}

// Deinterleave splits interleaved samples into planar channels.
// len(data) must be a multiple of channels.
func Deinterleave(data []uint8, channels int) ([][]uint8, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: channels must be at least 1", ErrInvalidConfig)
	}
	if len(data)%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples do not divide into %d channels",
			ErrFrameLengthMismatch, len(data), channels)
	}

	numSamples := len(data) / channels
	result := make([][]uint8, channels)
	for ch := range channels {
		result[ch] = make([]uint8, numSamples)
	}

	if channels == monoChannels {
		copy(result[0], data)
		return result, nil
	}

	for i := range numSamples {
		base := i * channels
		for ch := range channels {
			result[ch][i] = data[base+ch]
		}
	}
	return result, nil
}

// Interleave merges planar channels of equal length into one interleaved slice.
func Interleave(channels [][]uint8) ([]uint8, error) {
	if len(channels) == 0 {
		return nil, nil
	}

	numSamples := len(channels[0])
	for ch, c := range channels {
		if len(c) != numSamples {
			return nil, fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d",
				ErrFrameLengthMismatch, ch, len(c), numSamples)
		}
	}

	numChannels := len(channels)
	result := make([]uint8, numSamples*numChannels)
	for i := range numSamples {
		base := i * numChannels
		for ch := range numChannels {
			result[base+ch] = channels[ch][i]
		}
	}
	return result, nil
}
