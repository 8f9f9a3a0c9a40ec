package asif

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-asif/internal/testutil"
)

func TestEncodeMono_RoundTrip(t *testing.T) {
	input := testutil.Tone(RateTelephony/10, 440, RateTelephony, 100)

	block, err := EncodeMono(input)
	require.NoError(t, err)

	out, err := DecodeMono(block)
	require.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestEncodeStereo_RoundTrip(t *testing.T) {
	left := testutil.Tone(2205, 440, RateSpeech, 90)
	right := testutil.Tone(2205, 660, RateSpeech, 60)

	block, err := EncodeStereo(left, right)
	require.NoError(t, err)

	l, r, err := DecodeStereo(block)
	require.NoError(t, err)
	assert.Equal(t, left, l)
	assert.Equal(t, right, r)
}

func TestEncodeStereo_UnequalLengths(t *testing.T) {
	_, err := EncodeStereo([]uint8{1, 2, 3}, []uint8{1, 2})
	assert.ErrorIs(t, err, ErrFrameLengthMismatch)
}

func TestEncodeChannels_NoChannels(t *testing.T) {
	_, err := EncodeChannels(nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestEncodeInterleaved_RoundTrip(t *testing.T) {
	interleaved := []uint8{10, 200, 12, 201, 9, 199, 9, 198}

	block, err := EncodeInterleaved(interleaved, 2)
	require.NoError(t, err)
	assert.Equal(t, Block{4, 0, 0, 0, 10, 2, 253, 0, 200, 1, 254, 255}, block)

	out, err := DecodeInterleaved(block, 2)
	require.NoError(t, err)
	assert.Equal(t, interleaved, out)
}

func TestDeinterleave(t *testing.T) {
	planar, err := Deinterleave([]uint8{1, 2, 3, 4, 5, 6}, 3)
	require.NoError(t, err)
	assert.Equal(t, [][]uint8{{1, 4}, {2, 5}, {3, 6}}, planar)

	mono, err := Deinterleave([]uint8{1, 2, 3}, 1)
	require.NoError(t, err)
	assert.Equal(t, [][]uint8{{1, 2, 3}}, mono)

	_, err = Deinterleave([]uint8{1, 2, 3}, 2)
	assert.ErrorIs(t, err, ErrFrameLengthMismatch)

	_, err = Deinterleave([]uint8{1}, 0)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestInterleave(t *testing.T) {
	out, err := Interleave([][]uint8{{1, 4}, {2, 5}, {3, 6}})
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 2, 3, 4, 5, 6}, out)

	_, err = Interleave([][]uint8{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrFrameLengthMismatch)

	out, err = Interleave(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
