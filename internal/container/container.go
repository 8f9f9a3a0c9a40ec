// Package container reads and writes the .asif file container.
//
// A file is a 10-byte header followed by one encoded block:
//
//	offset 0   "asif" magic
//	offset 4   u32 sample rate
//	offset 8   u16 channel count
//	offset 10  block (u32 samples per channel, then channel data)
//
// All values are little endian. The block's count prefix doubles as the
// header's samples-per-channel field.
package container

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

const (
	// Magic is the four-byte tag at the start of every file.
	Magic = "asif"

	// HeaderSize is the size of the fixed header in bytes.
	HeaderSize = 10

	countSize = 4 // u32 samples-per-channel prefix of the block
)

// Header field offsets
const (
	sampleRateOffset = 4
	channelsOffset   = 8
)

var (
	// ErrInvalidMagic indicates the file does not start with the asif tag.
	ErrInvalidMagic = errors.New("invalid format in ASIF header")

	// ErrTruncated indicates the file ended before the block was complete.
	ErrTruncated = errors.New("truncated ASIF data")

	// ErrInvalidHeader indicates header fields that cannot describe a stream.
	ErrInvalidHeader = errors.New("invalid ASIF header")
)

// Header is the container metadata that travels alongside a block.
type Header struct {
	SampleRate uint32
	Channels   uint16
}

// NewHeader validates and converts stream parameters into a header.
func NewHeader(sampleRate, channels int) (Header, error) {
	if sampleRate < 0 || int64(sampleRate) > math.MaxUint32 {
		return Header{}, fmt.Errorf("%w: sample rate %d out of range", ErrInvalidHeader, sampleRate)
	}
	if channels < 1 || channels > math.MaxUint16 {
		return Header{}, fmt.Errorf("%w: channel count %d out of range", ErrInvalidHeader, channels)
	}
	return Header{SampleRate: uint32(sampleRate), Channels: uint16(channels)}, nil
}

// MarshalBinary encodes the header.
func (h Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	copy(buf[:sampleRateOffset], Magic)
	binary.LittleEndian.PutUint32(buf[sampleRateOffset:channelsOffset], h.SampleRate)
	binary.LittleEndian.PutUint16(buf[channelsOffset:HeaderSize], h.Channels)
	return buf, nil
}

// UnmarshalBinary decodes a header, checking the magic tag.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: header is %d bytes, want %d", ErrTruncated, len(data), HeaderSize)
	}
	if string(data[:sampleRateOffset]) != Magic {
		return ErrInvalidMagic
	}

	h.SampleRate = binary.LittleEndian.Uint32(data[sampleRateOffset:channelsOffset])
	h.Channels = binary.LittleEndian.Uint16(data[channelsOffset:HeaderSize])
	if h.Channels == 0 {
		return fmt.Errorf("%w: zero channels", ErrInvalidHeader)
	}
	return nil
}

// WriteHeader writes the container header to w.
func WriteHeader(w io.Writer, h Header) error {
	buf, err := h.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	return nil
}

// ReadHeader reads and validates the container header from r.
func ReadHeader(r io.Reader) (Header, error) {
	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Header{}, fmt.Errorf("%w: %w", ErrTruncated, err)
		}
		return Header{}, fmt.Errorf("failed to read header: %w", err)
	}

	var h Header
	if err := h.UnmarshalBinary(buf); err != nil {
		return Header{}, err
	}
	return h, nil
}

// Write writes a complete file: header followed by block, verbatim.
func Write(w io.Writer, h Header, block []byte) error {
	bw := bufio.NewWriter(w)
	if err := WriteHeader(bw, h); err != nil {
		return err
	}
	if _, err := bw.Write(block); err != nil {
		return fmt.Errorf("failed to write block: %w", err)
	}
	return bw.Flush()
}

// ReadBlock reads one block for the given channel count, sized by its own
// count prefix. The returned slice includes the prefix.
func ReadBlock(r io.Reader, channels int) ([]byte, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: zero channels", ErrInvalidHeader)
	}

	prefix := make([]byte, countSize)
	if _, err := io.ReadFull(r, prefix); err != nil {
		return nil, fmt.Errorf("%w: sample count: %w", ErrTruncated, err)
	}

	n := uint64(binary.LittleEndian.Uint32(prefix))
	size := n * uint64(channels)
	if size > uint64(math.MaxInt-countSize) {
		return nil, fmt.Errorf("%w: block of %d bytes is too large", ErrInvalidHeader, size)
	}

	data, err := io.ReadAll(io.LimitReader(r, int64(size)))
	if err != nil {
		return nil, fmt.Errorf("failed to read block: %w", err)
	}
	if uint64(len(data)) != size {
		return nil, fmt.Errorf("%w: got %d of %d data bytes", ErrTruncated, len(data), size)
	}

	block := make([]byte, 0, countSize+len(data))
	block = append(block, prefix...)
	return append(block, data...), nil
}

// Read reads a complete file and returns its header and block.
func Read(r io.Reader) (Header, []byte, error) {
	br := bufio.NewReader(r)
	h, err := ReadHeader(br)
	if err != nil {
		return Header{}, nil, err
	}

	block, err := ReadBlock(br, int(h.Channels))
	if err != nil {
		return Header{}, nil, err
	}
	return h, block, nil
}
