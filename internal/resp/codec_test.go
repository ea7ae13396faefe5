package resp

import (
	"bytes"
	"errors"
	"io"
	"net"
	"testing"
	"time"
)

// chunkReader returns at most n bytes per Read.
type chunkReader struct {
	data []byte
	n    int
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := min(r.n, len(p), len(r.data))
	copy(p, r.data[:n])
	r.data = r.data[n:]
	return n, nil
}

type readWriter struct {
	io.Reader
	io.Writer
}

func newTestCodec(input []byte, chunk int, opts ...CodecOption) (*Codec, *bytes.Buffer) {
	var out bytes.Buffer
	rw := readWriter{Reader: &chunkReader{data: input, n: chunk}, Writer: &out}
	return NewCodec(rw, opts...), &out
}

// ============================================================
// ReadFrame Tests
// ============================================================

func TestCodec_ReadFramesAcrossChunks(t *testing.T) {
	frames := []Frame{
		Array{BulkString("SET"), BulkString("key"), BulkString("value")},
		Array{BulkString("GET"), BulkString("key")},
		NewMap(MapEntry{Key: "a", Value: Set{Integer(1), Double(2.5)}}),
		NullBulkString{},
	}
	var input []byte
	for _, f := range frames {
		input = AppendFrame(input, f)
	}

	for _, chunk := range []int{1, 3, 7, 64, 4096} {
		codec, _ := newTestCodec(input, chunk, WithReadSize(16))
		for i, want := range frames {
			got, err := codec.ReadFrame()
			if err != nil {
				t.Fatalf("chunk %d: frame %d: ReadFrame() error = %v", chunk, i, err)
			}
			if !Equal(got, want) {
				t.Errorf("chunk %d: frame %d = %#v, want %#v", chunk, i, got, want)
			}
		}
		if _, err := codec.ReadFrame(); err != io.EOF {
			t.Errorf("chunk %d: final ReadFrame() err = %v, want io.EOF", chunk, err)
		}
		if codec.Buffered() != 0 {
			t.Errorf("chunk %d: Buffered() = %d, want 0", chunk, codec.Buffered())
		}
	}
}

func TestCodec_CleanEOF(t *testing.T) {
	codec, _ := newTestCodec(nil, 16)
	if _, err := codec.ReadFrame(); err != io.EOF {
		t.Errorf("ReadFrame() err = %v, want io.EOF", err)
	}
}

func TestCodec_TruncatedStream(t *testing.T) {
	codec, _ := newTestCodec([]byte("+OK\r\n$10\r\nhello"), 4)

	if _, err := codec.ReadFrame(); err != nil {
		t.Fatalf("first ReadFrame() error = %v", err)
	}
	_, err := codec.ReadFrame()
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("ReadFrame() err = %v, want ErrTruncated", err)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadFrame() err = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestCodec_InvalidFrame(t *testing.T) {
	codec, _ := newTestCodec([]byte("+OK\r\n?garbage\r\n"), 64)

	if _, err := codec.ReadFrame(); err != nil {
		t.Fatalf("first ReadFrame() error = %v", err)
	}
	if _, err := codec.ReadFrame(); !errors.Is(err, ErrInvalidFrame) {
		t.Errorf("ReadFrame() err = %v, want ErrInvalidFrame", err)
	}
}

func TestCodec_DecoderLimits(t *testing.T) {
	codec, _ := newTestCodec([]byte("$100\r\n"), 64, WithDecoder(&Decoder{MaxBulkLen: 10}))
	if _, err := codec.ReadFrame(); !errors.Is(err, ErrLimitExceeded) {
		t.Errorf("ReadFrame() err = %v, want ErrLimitExceeded", err)
	}
}

func TestCodec_LargeBulkGrowsBuffer(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 100_000)
	input := Encode(BulkString(payload))

	codec, _ := newTestCodec(input, 1500, WithReadSize(512))
	f, err := codec.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	if !Equal(f, BulkString(payload)) {
		t.Error("large bulk string mismatch")
	}
}

// ============================================================
// WriteFrame Tests
// ============================================================

func TestCodec_WriteFrame(t *testing.T) {
	codec, out := newTestCodec(nil, 1)

	if err := codec.WriteFrame(SimpleString("OK")); err != nil {
		t.Fatalf("WriteFrame() error = %v", err)
	}
	if err := codec.WriteFrame(Integer(-7)); err != nil {
		t.Fatalf("WriteFrame() error = %v", err)
	}
	if got := out.String(); got != "+OK\r\n:-7\r\n" {
		t.Errorf("written = %q, want %q", got, "+OK\r\n:-7\r\n")
	}
}

func TestCodec_EncodeDecodeOverPipe(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	sc := NewCodec(server)
	cc := NewCodec(client)

	want := Array{BulkString("PING")}
	errCh := make(chan error, 1)
	go func() {
		errCh <- cc.WriteFrame(want)
	}()

	_ = server.SetReadDeadline(time.Now().Add(2 * time.Second))
	got, err := sc.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	if !Equal(got, want) {
		t.Errorf("ReadFrame() = %#v, want %#v", got, want)
	}
	if err := <-errCh; err != nil {
		t.Errorf("WriteFrame() error = %v", err)
	}
}
