package resp

import (
	"errors"
	"fmt"
	"io"
)

const (
	// DefaultReadSize is the minimum free space reserved in the receive buffer
	// before each read from the underlying connection.
	DefaultReadSize = 4096

	// maxRetainedWriteBuf bounds the encode buffer kept between writes.
	maxRetainedWriteBuf = 64 << 10

	maxConsecutiveEmptyReads = 100
)

// Codec reads and writes frames over a byte stream.
//
// Incoming bytes are accumulated in a growable receive buffer and offered to
// the Decoder until a whole frame is available; leftover bytes are kept for
// the next call. Outgoing frames are encoded and written immediately.
//
// One goroutine may call ReadFrame while another calls WriteFrame, provided
// the underlying io.ReadWriter allows concurrent Read and Write.
type Codec struct {
	rw       io.ReadWriter
	dec      *Decoder
	readSize int

	rbuf []byte
	r    int // start of unconsumed bytes in rbuf

	wbuf []byte
}

// CodecOption configures a Codec.
type CodecOption func(*Codec)

// WithDecoder sets the decoder (and thereby its limits) used by the codec.
func WithDecoder(d *Decoder) CodecOption {
	return func(c *Codec) {
		if d != nil {
			c.dec = d
		}
	}
}

// WithReadSize sets the minimum read size.
func WithReadSize(n int) CodecOption {
	return func(c *Codec) {
		if n > 0 {
			c.readSize = n
		}
	}
}

// NewCodec returns a Codec over rw.
func NewCodec(rw io.ReadWriter, opts ...CodecOption) *Codec {
	c := &Codec{
		rw:       rw,
		dec:      &defaultDecoder,
		readSize: DefaultReadSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Buffered returns the number of received bytes not yet consumed by a frame.
func (c *Codec) Buffered() int {
	return len(c.rbuf) - c.r
}

// ReadFrame returns the next complete frame from the stream.
//
// It returns io.EOF when the stream ends cleanly between frames, and an error
// wrapping both ErrTruncated and io.ErrUnexpectedEOF when it ends inside one.
// Decoder errors (ErrInvalidFrame, ErrLimitExceeded) are returned unchanged;
// the stream cannot be resumed after any error.
func (c *Codec) ReadFrame() (Frame, error) {
	for {
		if c.Buffered() > 0 {
			f, n, err := c.dec.Decode(c.rbuf[c.r:])
			if err == nil {
				c.consume(n)
				return f, nil
			}
			if !errors.Is(err, ErrIncomplete) {
				return nil, err
			}
		}

		if err := c.fill(); err != nil {
			if errors.Is(err, io.EOF) {
				if c.Buffered() == 0 {
					return nil, io.EOF
				}
				return nil, fmt.Errorf("%w (%d bytes buffered): %w", ErrTruncated, c.Buffered(), io.ErrUnexpectedEOF)
			}
			return nil, err
		}
	}
}

// WriteFrame encodes f and writes it to the stream.
func (c *Codec) WriteFrame(f Frame) error {
	c.wbuf = AppendFrame(c.wbuf[:0], f)
	_, err := c.rw.Write(c.wbuf)
	if cap(c.wbuf) > maxRetainedWriteBuf {
		c.wbuf = nil
	}
	return err
}

func (c *Codec) consume(n int) {
	c.r += n
	if c.r == len(c.rbuf) {
		c.rbuf = c.rbuf[:0]
		c.r = 0
	}
}

// fill reads at least one byte into the receive buffer, compacting and
// growing it as needed.
func (c *Codec) fill() error {
	if c.r > 0 {
		n := copy(c.rbuf, c.rbuf[c.r:])
		c.rbuf = c.rbuf[:n]
		c.r = 0
	}
	if cap(c.rbuf)-len(c.rbuf) < c.readSize {
		grown := make([]byte, len(c.rbuf), 2*cap(c.rbuf)+c.readSize)
		copy(grown, c.rbuf)
		c.rbuf = grown
	}

	for i := 0; i < maxConsecutiveEmptyReads; i++ {
		n, err := c.rw.Read(c.rbuf[len(c.rbuf):cap(c.rbuf)])
		if n < 0 {
			return fmt.Errorf("resp: reader returned negative count %d", n)
		}
		c.rbuf = c.rbuf[:len(c.rbuf)+n]
		if n > 0 {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return io.ErrNoProgress
}
