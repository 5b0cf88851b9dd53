package resp

import (
	"context"
	"errors"
	"io"

	"github.com/marmos91/respkv/pkg/bufpool"
)

// Reader decodes RESP frames out of an underlying byte stream. It buffers
// bytes read but not yet decoded in a pooled, growable slice and never
// re-scans bytes already returned as part of a frame.
type Reader struct {
	r   io.Reader
	buf []byte
}

// NewReader wraps r for frame-at-a-time reads.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, buf: bufpool.Get(bufpool.DefaultSmallSize)[:0]}
}

// ReadFrame blocks on the underlying reader until a complete frame is
// available, then decodes and returns it. io.EOF is returned only when the
// stream ends with no buffered bytes left over; a partial frame at EOF is
// reported as io.ErrUnexpectedEOF so the caller can distinguish a clean
// disconnect from a truncated one.
func (s *Reader) ReadFrame(ctx context.Context) (*Frame, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		frame, consumed, err := Decode(s.buf)
		if err == nil {
			s.buf = s.buf[consumed:]
			return frame, nil
		}
		if !errors.Is(err, ErrIncomplete) {
			return nil, err
		}

		n, readErr := s.r.Read(s.grow())
		if n > 0 {
			s.buf = s.buf[:len(s.buf)+n]
		}
		if readErr != nil {
			if readErr == io.EOF {
				if len(s.buf) == 0 {
					return nil, io.EOF
				}
				return nil, io.ErrUnexpectedEOF
			}
			return nil, readErr
		}
	}
}

// grow ensures the buffer has room for at least one more byte past its
// current content, moving to the next bufpool tier if the current backing
// array is full, and returns the free tail slice to read into.
func (s *Reader) grow() []byte {
	if len(s.buf) == cap(s.buf) {
		nextCap := nextTierSize(cap(s.buf))
		next := bufpool.Get(nextCap)[:len(s.buf)]
		copy(next, s.buf)
		bufpool.Put(s.buf[:cap(s.buf)])
		s.buf = next
	}
	return s.buf[len(s.buf):cap(s.buf)]
}

func nextTierSize(current int) int {
	switch {
	case current < bufpool.DefaultMediumSize:
		return bufpool.DefaultMediumSize
	case current < bufpool.DefaultLargeSize:
		return bufpool.DefaultLargeSize
	default:
		return current * 2
	}
}

// Close returns the reader's pooled buffer. The Reader must not be used
// again afterward.
func (s *Reader) Close() {
	if s.buf != nil {
		bufpool.Put(s.buf[:cap(s.buf)])
		s.buf = nil
	}
}

// Writer encodes and writes RESP frames to an underlying byte stream, one
// reply per Write call so a single connection's replies cannot interleave
// on the wire.
type Writer struct {
	w io.Writer
}

// NewWriter wraps w for frame-at-a-time writes.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteFrame encodes frame and writes it in one Write call.
func (s *Writer) WriteFrame(frame Frame) error {
	return Encode(s.w, frame)
}
