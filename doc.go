// Package asif implements the ASIF delta codec for 8-bit planar audio in pure Go.
//
// An encoding session buffers every frame it is given, one growable buffer per
// channel, and emits the whole stream as one self-describing block once the
// caller signals the end of input. Every sample after the first in a channel is
// replaced by an 8-bit wrapping delta from its predecessor. Deltas outside the
// signed 8-bit range are clamped and the remainder is carried into the next
// delta of the same channel.
//
// # Block Layout
//
// All multi-byte values are little endian:
//
//	offset 0                 u32 samples per channel (n)
//	offset 4 + k*n           channel k: first raw sample, then n-1 deltas
//
// The block does not record the channel count or sample rate; those live in the
// container header and must be supplied to the decoder.
//
// # Quick Start
//
// For one-shot encoding of complete channels:
//
//	block, err := asif.EncodeStereo(left, right)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	l, r, err := asif.DecodeStereo(block)
//
// For streaming input:
//
//	enc, err := asif.NewEncoder(&asif.Config{Channels: 2, SampleRate: 22050})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for frame := range frames {
//	    if err := enc.SubmitFrame(frame); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//	if err := enc.Finalize(); err != nil {
//	    log.Fatal(err)
//	}
//	block, err := enc.TakeBlock()
//
// # Session States
//
// An [Encoder] moves through [StateAccumulating], [StateFinalized] and
// [StateEmitted]. [Encoder.TakeBlock] returns [ErrNotReady] until
// [Encoder.Finalize] is called, and [ErrAlreadyEmitted] (which wraps io.EOF)
// after the block has been taken once.
//
// # Fidelity
//
// Decoding re-adds the stored deltas and never sees the carry. A stream whose
// every step stays within [-128, 127] decodes exactly. Larger steps are
// clamped and the clamped sample never decodes to its input. After a rising
// clamp the carry lets later rising samples re-align; falling clamps and clamps
// followed by a change of direction leave a permanent offset. Any clamp makes
// the block lossy, and [Encoder.Stats] reports the clamp count so callers can
// tell whether a block is exact.
//
// # Thread Safety
//
// An [Encoder] must be used from one goroutine at a time. A [Decoder] holds no
// mutable state and can be shared. Setting [Config.EnableParallel] runs the
// per-channel delta passes concurrently inside a single call.
package asif
