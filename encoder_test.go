package asif

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-asif/internal/testutil"
)

func newTestEncoder(t *testing.T, channels int) *Encoder {
	t.Helper()
	enc, err := NewEncoder(&Config{Channels: channels})
	require.NoError(t, err)
	return enc
}

func TestNewEncoder_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
	}{
		{"nil config", nil},
		{"zero channels", &Config{Channels: 0}},
		{"negative channels", &Config{Channels: -1}},
		{"negative sample rate", &Config{Channels: 1, SampleRate: -1}},
		{"negative capacity", &Config{Channels: 1, CapacityHint: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEncoder(tt.config)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestEncoder_ScenarioA(t *testing.T) {
	enc := newTestEncoder(t, 1)
	require.NoError(t, enc.SubmitFrame([][]uint8{{10, 12, 9}}))
	require.NoError(t, enc.Finalize())

	block, err := enc.TakeBlock()
	require.NoError(t, err)
	assert.Equal(t, Block{0x03, 0x00, 0x00, 0x00, 10, 2, 253}, block)
	assert.True(t, enc.Stats().Lossless())

	out, err := Decode(block, 1)
	require.NoError(t, err)
	assert.Equal(t, [][]uint8{{10, 12, 9}}, out)
}

func TestEncoder_ScenarioB(t *testing.T) {
	enc := newTestEncoder(t, 1)
	require.NoError(t, enc.SubmitFrame([][]uint8{{0, 200}}))
	require.NoError(t, enc.Finalize())

	block, err := enc.TakeBlock()
	require.NoError(t, err)
	assert.Equal(t, Block{0x02, 0x00, 0x00, 0x00, 0, 127}, block)

	stats := enc.Stats()
	assert.Equal(t, 1, stats.ClampEvents)
	assert.Equal(t, []int{1}, stats.ChannelClamps)
	assert.False(t, stats.Lossless())

	out, err := Decode(block, 1)
	require.NoError(t, err)
	assert.Equal(t, [][]uint8{{0, 127}}, out)
}

func TestEncoder_StateTransitions(t *testing.T) {
	enc := newTestEncoder(t, 2)
	assert.Equal(t, StateAccumulating, enc.State())

	_, err := enc.TakeBlock()
	require.ErrorIs(t, err, ErrNotReady)
	assert.Equal(t, StateAccumulating, enc.State(), "NotReady must not change state")

	require.NoError(t, enc.SubmitFrame([][]uint8{{1, 2}, {3, 4}}))
	require.NoError(t, enc.Finalize())
	assert.Equal(t, StateFinalized, enc.State())

	err = enc.SubmitFrame([][]uint8{{5}, {6}})
	require.ErrorIs(t, err, ErrInvalidState)
	assert.ErrorIs(t, enc.Finalize(), ErrInvalidState)

	block, err := enc.TakeBlock()
	require.NoError(t, err)
	require.NotEmpty(t, block)
	assert.Equal(t, StateEmitted, enc.State())

	_, err = enc.TakeBlock()
	require.ErrorIs(t, err, ErrAlreadyEmitted)
	assert.True(t, errors.Is(err, io.EOF), "second TakeBlock must be end-of-stream")

	assert.ErrorIs(t, enc.SubmitFrame([][]uint8{{1}, {1}}), ErrInvalidState)
}

func TestEncoder_NotReadyNeverReturnsPartialBlock(t *testing.T) {
	enc := newTestEncoder(t, 1)
	for i := range 5 {
		require.NoError(t, enc.SubmitFrame([][]uint8{{uint8(i), uint8(i + 1)}}))
		block, err := enc.TakeBlock()
		require.ErrorIs(t, err, ErrNotReady)
		assert.Nil(t, block)
	}
	assert.Equal(t, uint32(10), enc.SamplesPerChannel())
}

func TestEncoder_FrameLengthMismatch(t *testing.T) {
	enc := newTestEncoder(t, 2)
	require.NoError(t, enc.SubmitFrame([][]uint8{{1, 2}, {3, 4}}))

	err := enc.SubmitFrame([][]uint8{{1, 2, 3, 4, 5}, {1, 2, 3, 4}})
	require.ErrorIs(t, err, ErrFrameLengthMismatch)
	assert.Equal(t, StateAccumulating, enc.State())
	assert.Equal(t, uint32(2), enc.SamplesPerChannel(), "rejected frame must not be appended")

	// Corrected resubmission is accepted.
	require.NoError(t, enc.SubmitFrame([][]uint8{{10, 11, 12, 13, 14}, {20, 21, 22, 23, 24}}))
	require.NoError(t, enc.Finalize())

	block, err := enc.TakeBlock()
	require.NoError(t, err)

	out, err := Decode(block, 2)
	require.NoError(t, err)
	assert.Equal(t, [][]uint8{{1, 2, 10, 11, 12, 13, 14}, {3, 4, 20, 21, 22, 23, 24}}, out)
}

func TestEncoder_ChannelMismatch(t *testing.T) {
	enc := newTestEncoder(t, 2)
	assert.ErrorIs(t, enc.SubmitFrame([][]uint8{{1, 2}}), ErrChannelMismatch)
	assert.ErrorIs(t, enc.SubmitFrame([][]uint8{{1}, {2}, {3}}), ErrChannelMismatch)
	assert.ErrorIs(t, enc.SubmitFrame(nil), ErrChannelMismatch)
	assert.Equal(t, uint32(0), enc.SamplesPerChannel())
}

func TestEncoder_SendFrameNilFinalizes(t *testing.T) {
	enc := newTestEncoder(t, 1)
	require.NoError(t, enc.SendFrame([][]uint8{{7, 8, 9}}))
	require.NoError(t, enc.SendFrame(nil))
	assert.Equal(t, StateFinalized, enc.State())

	block, err := enc.TakeBlock()
	require.NoError(t, err)
	assert.Equal(t, Block{3, 0, 0, 0, 7, 1, 1}, block)
}

func TestEncoder_FirstSampleIdentity(t *testing.T) {
	rng := testutil.NewRand(7)
	const channels = 4
	input := testutil.Planar(channels, func(int) []uint8 {
		return testutil.RandomSamples(rng, 300)
	})

	enc := newTestEncoder(t, channels)
	for _, frame := range testutil.Split(input, 64) {
		require.NoError(t, enc.SubmitFrame(frame))
	}
	require.NoError(t, enc.Finalize())
	block, err := enc.TakeBlock()
	require.NoError(t, err)

	for ch := range channels {
		data, err := block.ChannelData(ch, channels)
		require.NoError(t, err)
		require.Len(t, data, 300)
		assert.Equal(t, input[ch][0], data[0], "channel %d", ch)
	}
}

func TestEncoder_EmptySession(t *testing.T) {
	enc := newTestEncoder(t, 3)
	require.NoError(t, enc.SubmitFrame([][]uint8{{}, {}, {}}))
	require.NoError(t, enc.Finalize())

	block, err := enc.TakeBlock()
	require.NoError(t, err)
	assert.Equal(t, Block{0, 0, 0, 0}, block)

	out, err := Decode(block, 3)
	require.NoError(t, err)
	require.Len(t, out, 3)
	for _, ch := range out {
		assert.Empty(t, ch)
	}
}

func TestEncoder_CloseDiscardsSession(t *testing.T) {
	enc := newTestEncoder(t, 1)
	require.NoError(t, enc.SubmitFrame([][]uint8{{1, 2, 3}}))
	require.NoError(t, enc.Close())

	assert.Equal(t, StateEmitted, enc.State())
	assert.ErrorIs(t, enc.SubmitFrame([][]uint8{{1}}), ErrInvalidState)
	_, err := enc.TakeBlock()
	assert.ErrorIs(t, err, ErrAlreadyEmitted)
}

func TestEncoder_RoundTripClampFree(t *testing.T) {
	rng := testutil.NewRand(42)
	for _, channels := range []int{1, 2, 3, 8} {
		for _, n := range []int{1, 2, 17, 1000, 4097} {
			input := testutil.Planar(channels, func(int) []uint8 {
				return testutil.SmoothWalk(rng, n, 127)
			})

			enc := newTestEncoder(t, channels)
			for _, frame := range testutil.Split(input, 333) {
				require.NoError(t, enc.SubmitFrame(frame))
			}
			require.NoError(t, enc.Finalize())
			block, err := enc.TakeBlock()
			require.NoError(t, err)
			require.Len(t, block, 4+channels*n)
			assert.True(t, enc.Stats().Lossless(), "channels=%d n=%d", channels, n)

			out, err := Decode(block, channels)
			require.NoError(t, err)
			testutil.AssertPlanarEqual(t, input, out, "channels=%d n=%d", channels, n)
		}
	}
}

func TestEncoder_AdversarialStreamsReportClamps(t *testing.T) {
	rng := testutil.NewRand(99)
	const channels = 2
	input := testutil.Planar(channels, func(int) []uint8 {
		return testutil.RandomSamples(rng, 2000)
	})

	enc := newTestEncoder(t, channels)
	require.NoError(t, enc.SubmitFrame(input))
	require.NoError(t, enc.Finalize())
	block, err := enc.TakeBlock()
	require.NoError(t, err)

	stats := enc.Stats()
	require.Greater(t, stats.ClampEvents, 0)
	assert.Equal(t, stats.ChannelClamps[0]+stats.ChannelClamps[1], stats.ClampEvents)

	out, err := Decode(block, channels)
	require.NoError(t, err)
	assert.NotEqual(t, input, out, "uniform noise cannot survive clamping")

	// Every emitted delta respects the clamp bounds for its direction.
	for ch := range channels {
		data, err := block.ChannelData(ch, channels)
		require.NoError(t, err)
		for i := 1; i < len(data); i++ {
			if input[ch][i] >= input[ch][i-1] {
				assert.LessOrEqual(t, data[i], uint8(127))
			} else {
				assert.GreaterOrEqual(t, data[i], uint8(128))
			}
		}
	}
}

func TestEncoder_CarryResetsPerChannel(t *testing.T) {
	// Channel 0 ends on a clamp; channel 1 must start with a zero carry.
	enc := newTestEncoder(t, 2)
	require.NoError(t, enc.SubmitFrame([][]uint8{{0, 200}, {10, 12}}))
	require.NoError(t, enc.Finalize())

	block, err := enc.TakeBlock()
	require.NoError(t, err)
	assert.Equal(t, Block{2, 0, 0, 0, 0, 127, 10, 2}, block)
	assert.Equal(t, []int{1, 0}, enc.Stats().ChannelClamps)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "accumulating", StateAccumulating.String())
	assert.Equal(t, "finalized", StateFinalized.String())
	assert.Equal(t, "emitted", StateEmitted.String())
	assert.Equal(t, "State(9)", State(9).String())
}
