package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	asif "github.com/tphakala/go-asif"
)

const (
	// frameSize is the number of samples per channel submitted per frame.
	frameSize = 65536

	bitsPerSample8 = 8
	wavPCMFormat   = 1

	rawReaderBufferSize = 256 * 1024
)

// pcmInput is decoded planar 8-bit input, split into frames.
type pcmInput struct {
	rate     int
	channels int
	frames   [][][]uint8
	samples  int
}

// openWAVInput reads an 8-bit PCM WAV file into planar frames.
func openWAVInput(path string) (*pcmInput, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = inputFile.Close() }()

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	bitDepth := int(decoder.BitDepth)
	slog.Debug("input format", "rate", format.SampleRate, "channels", format.NumChannels, "bits", bitDepth)

	if bitDepth != bitsPerSample8 {
		return nil, fmt.Errorf("unsupported bit depth %d: only 8-bit PCM can be encoded", bitDepth)
	}
	if format.NumChannels < 1 {
		return nil, fmt.Errorf("invalid WAV file: %d channels", format.NumChannels)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}

	// 8-bit WAV data is unsigned; uint8 conversion keeps the raw byte whether
	// the decoder reports it signed or unsigned.
	data := make([]uint8, len(buf.Data))
	for i, v := range buf.Data {
		data[i] = uint8(v)
	}

	return newPCMInput(data, format.SampleRate, format.NumChannels)
}

// openRawInput reads headerless interleaved u8 PCM.
func openRawInput(path string, rate, channels int) (*pcmInput, error) {
	if channels < 1 {
		return nil, fmt.Errorf("raw input needs a channel count (--channels or raw.channels in config)")
	}

	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = inputFile.Close() }()

	data, err := io.ReadAll(bufio.NewReaderSize(inputFile, rawReaderBufferSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}

	return newPCMInput(data, rate, channels)
}

func newPCMInput(interleaved []uint8, rate, channels int) (*pcmInput, error) {
	planar, err := asif.Deinterleave(interleaved, channels)
	if err != nil {
		return nil, fmt.Errorf("failed to split channels: %w", err)
	}

	return &pcmInput{
		rate:     rate,
		channels: channels,
		frames:   splitFrames(planar, frameSize),
		samples:  len(planar[0]),
	}, nil
}

// planar reassembles the frames into one buffer per channel.
func (p *pcmInput) planar() [][]uint8 {
	out := make([][]uint8, p.channels)
	for ch := range out {
		out[ch] = make([]uint8, 0, p.samples)
		for _, frame := range p.frames {
			out[ch] = append(out[ch], frame[ch]...)
		}
	}
	return out
}

// splitFrames cuts planar channels into frames of at most size samples.
func splitFrames(planar [][]uint8, size int) [][][]uint8 {
	n := len(planar[0])
	frames := make([][][]uint8, 0, (n+size-1)/size)
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

// writeWAVOutput writes planar samples as an 8-bit PCM WAV file.
func writeWAVOutput(path string, planar [][]uint8, rate int) (err error) {
	interleaved, err := asif.Interleave(planar)
	if err != nil {
		return err
	}

	outputFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := outputFile.Close(); err == nil {
			err = closeErr
		}
	}()

	encoder := wav.NewEncoder(outputFile, rate, bitsPerSample8, len(planar), wavPCMFormat)

	data := make([]int, len(interleaved))
	for i, v := range interleaved {
		data[i] = int(v)
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: len(planar), SampleRate: rate},
		Data:           data,
		SourceBitDepth: bitsPerSample8,
	}

	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	// Close finalizes the RIFF sizes in the header.
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	return nil
}

// writeRawOutput writes planar samples as headerless interleaved u8 PCM.
func writeRawOutput(path string, planar [][]uint8) error {
	interleaved, err := asif.Interleave(planar)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, interleaved, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
