package resp

import (
	"bytes"
	"fmt"
	"strconv"
)

// Decoder limits. A zero value in Decoder selects the default; a negative
// value disables the limit.
const (
	// DefaultMaxBulkLen limits the payload of a single bulk string, bulk error
	// or big number, and the length of a simple line (512MiB, as in Redis).
	DefaultMaxBulkLen = 512 << 20

	// DefaultMaxAggregateLen limits the element count of arrays, sets and maps.
	DefaultMaxAggregateLen = 1 << 20

	// DefaultMaxDepth limits how deeply aggregates may nest.
	DefaultMaxDepth = 128
)

// Decoder decodes frames from a byte buffer.
//
// The zero value is ready to use with default limits. A Decoder holds no
// state between calls and is safe for concurrent use.
type Decoder struct {
	MaxBulkLen      int
	MaxAggregateLen int
	MaxDepth        int
}

var defaultDecoder Decoder

// Decode decodes one frame from buf using default limits. See Decoder.Decode.
func Decode(buf []byte) (Frame, int, error) {
	return defaultDecoder.Decode(buf)
}

// Decode attempts to decode exactly one frame from the start of buf.
//
// On success it returns the frame and the number of bytes it occupied; bytes
// after it are not examined. If buf holds only a prefix of a frame, Decode
// returns ErrIncomplete and n is 0. Grammar violations return an error
// wrapping ErrInvalidFrame and limit violations one wrapping ErrLimitExceeded.
//
// The returned frame never aliases buf.
func (d *Decoder) Decode(buf []byte) (Frame, int, error) {
	f, n, err := d.decode(buf, 0)
	if err != nil {
		return nil, 0, err
	}
	return f, n, nil
}

func limit(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func (d *Decoder) maxBulkLen() int      { return limit(d.MaxBulkLen, DefaultMaxBulkLen) }
func (d *Decoder) maxAggregateLen() int { return limit(d.MaxAggregateLen, DefaultMaxAggregateLen) }
func (d *Decoder) maxDepth() int        { return limit(d.MaxDepth, DefaultMaxDepth) }

func (d *Decoder) decode(buf []byte, depth int) (Frame, int, error) {
	if len(buf) == 0 {
		return nil, 0, ErrIncomplete
	}

	t := Type(buf[0])
	switch t {
	case TypeSimpleString, TypeSimpleError:
		line, n, err := d.readLine(buf[1:])
		if err != nil {
			return nil, 0, err
		}
		if t == TypeSimpleError {
			return SimpleError(line), n + 1, nil
		}
		return SimpleString(line), n + 1, nil

	case TypeInteger:
		line, n, err := d.readLine(buf[1:])
		if err != nil {
			return nil, 0, err
		}
		v, err := strconv.ParseInt(string(line), 10, 64)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: invalid integer %q", ErrInvalidFrame, line)
		}
		return Integer(v), n + 1, nil

	case TypeBulkString, TypeBulkError, TypeBigNumber:
		return d.decodeBlob(t, buf)

	case TypeNull:
		line, n, err := d.readLine(buf[1:])
		if err != nil {
			return nil, 0, err
		}
		if len(line) != 0 {
			return nil, 0, fmt.Errorf("%w: unexpected null payload %q", ErrInvalidFrame, line)
		}
		return Null{}, n + 1, nil

	case TypeBoolean:
		line, n, err := d.readLine(buf[1:])
		if err != nil {
			return nil, 0, err
		}
		switch string(line) {
		case "t":
			return Boolean(true), n + 1, nil
		case "f":
			return Boolean(false), n + 1, nil
		default:
			return nil, 0, fmt.Errorf("%w: invalid boolean %q", ErrInvalidFrame, line)
		}

	case TypeDouble:
		line, n, err := d.readLine(buf[1:])
		if err != nil {
			return nil, 0, err
		}
		if !validDouble(line) {
			return nil, 0, fmt.Errorf("%w: invalid double %q", ErrInvalidFrame, line)
		}
		v, err := strconv.ParseFloat(string(line), 64)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: invalid double %q", ErrInvalidFrame, line)
		}
		return Double(v), n + 1, nil

	case TypeArray, TypeSet, TypeMap:
		return d.decodeAggregate(t, buf, depth)

	default:
		return nil, 0, fmt.Errorf("%w: unknown type byte %q", ErrInvalidFrame, buf[0])
	}
}

// decodeBlob decodes "<tag><len>\r\n<payload>\r\n".
func (d *Decoder) decodeBlob(t Type, buf []byte) (Frame, int, error) {
	size, hdr, err := d.readLength(buf[1:])
	if err != nil {
		return nil, 0, err
	}
	hdr++

	if size == -1 {
		if t == TypeBulkString {
			return NullBulkString{}, hdr, nil
		}
		return nil, 0, fmt.Errorf("%w: negative length for %q", ErrInvalidFrame, t)
	}
	if lim := d.maxBulkLen(); lim > 0 && size > int64(lim) {
		return nil, 0, fmt.Errorf("%w: %q length %d exceeds %d", ErrLimitExceeded, t, size, lim)
	}

	if size > int64(len(buf)-hdr-2) {
		return nil, 0, ErrIncomplete
	}
	end := hdr + int(size)
	if buf[end] != '\r' || buf[end+1] != '\n' {
		return nil, 0, fmt.Errorf("%w: missing CRLF after %d byte payload", ErrInvalidFrame, size)
	}

	payload := bytes.Clone(buf[hdr:end])
	if payload == nil {
		payload = []byte{}
	}
	switch t {
	case TypeBulkError:
		return BulkError(payload), end + 2, nil
	case TypeBigNumber:
		return BigNumber(payload), end + 2, nil
	default:
		return BulkString(payload), end + 2, nil
	}
}

// decodeAggregate decodes arrays, sets and maps. Elements go through decode
// again; any incomplete element makes the whole aggregate incomplete.
func (d *Decoder) decodeAggregate(t Type, buf []byte, depth int) (Frame, int, error) {
	count, pos, err := d.readLength(buf[1:])
	if err != nil {
		return nil, 0, err
	}
	pos++

	if count == -1 {
		if t == TypeArray {
			return NullArray{}, pos, nil
		}
		return nil, 0, fmt.Errorf("%w: negative length for %q", ErrInvalidFrame, t)
	}
	if lim := d.maxAggregateLen(); lim > 0 && count > int64(lim) {
		return nil, 0, fmt.Errorf("%w: %q with %d elements exceeds %d", ErrLimitExceeded, t, count, lim)
	}
	if lim := d.maxDepth(); lim > 0 && depth >= lim {
		return nil, 0, fmt.Errorf("%w: nesting deeper than %d", ErrLimitExceeded, lim)
	}

	n := int(count)
	if t == TypeMap {
		m := NewMap()
		for i := 0; i < n; i++ {
			kf, kn, err := d.decode(buf[pos:], depth+1)
			if err != nil {
				return nil, 0, err
			}
			var key string
			switch k := kf.(type) {
			case SimpleString:
				key = string(k)
			case BulkString:
				if bytes.ContainsAny(k, "\r\n") {
					return nil, 0, fmt.Errorf("%w: map key contains CR or LF", ErrInvalidFrame)
				}
				key = string(k)
			default:
				return nil, 0, fmt.Errorf("%w: map key of type %q", ErrInvalidFrame, kf.Type())
			}
			pos += kn

			vf, vn, err := d.decode(buf[pos:], depth+1)
			if err != nil {
				return nil, 0, err
			}
			pos += vn
			m.Insert(key, vf)
		}
		return m, pos, nil
	}

	elems := make([]Frame, 0, min(n, 1024))
	for i := 0; i < n; i++ {
		f, fn, err := d.decode(buf[pos:], depth+1)
		if err != nil {
			return nil, 0, err
		}
		pos += fn
		elems = append(elems, f)
	}
	if t == TypeSet {
		return Set(elems), pos, nil
	}
	return Array(elems), pos, nil
}

// readLine returns the bytes before the first CRLF in b and the number of
// bytes consumed including the CRLF. A bare LF, or CR followed by anything
// other than LF, is invalid.
func (d *Decoder) readLine(b []byte) ([]byte, int, error) {
	i := bytes.IndexByte(b, '\r')
	if i < 0 {
		if bytes.IndexByte(b, '\n') >= 0 {
			return nil, 0, fmt.Errorf("%w: bare LF in line", ErrInvalidFrame)
		}
		if lim := d.maxBulkLen(); lim > 0 && len(b) > lim {
			return nil, 0, fmt.Errorf("%w: line longer than %d", ErrLimitExceeded, lim)
		}
		return nil, 0, ErrIncomplete
	}
	if bytes.IndexByte(b[:i], '\n') >= 0 {
		return nil, 0, fmt.Errorf("%w: bare LF in line", ErrInvalidFrame)
	}
	if i+1 == len(b) {
		return nil, 0, ErrIncomplete
	}
	if b[i+1] != '\n' {
		return nil, 0, fmt.Errorf("%w: CR not followed by LF", ErrInvalidFrame)
	}
	return b[:i], i + 2, nil
}

// readLength parses a length line: decimal digits, or the literal -1.
func (d *Decoder) readLength(b []byte) (int64, int, error) {
	line, n, err := d.readLine(b)
	if err != nil {
		return 0, 0, err
	}
	if string(line) == "-1" {
		return -1, n, nil
	}
	if len(line) == 0 || len(line) > 19 {
		return 0, 0, fmt.Errorf("%w: invalid length %q", ErrInvalidFrame, line)
	}
	var v int64
	for _, c := range line {
		if c < '0' || c > '9' {
			return 0, 0, fmt.Errorf("%w: invalid length %q", ErrInvalidFrame, line)
		}
		v = v*10 + int64(c-'0')
	}
	if v < 0 {
		return 0, 0, fmt.Errorf("%w: invalid length %q", ErrInvalidFrame, line)
	}
	return v, n, nil
}

// validDouble reports whether b is [+-]digits[.digits][e[+-]digits],
// [+-]inf or nan. strconv.ParseFloat alone also takes hex floats,
// underscores and "Infinity".
func validDouble(b []byte) bool {
	switch string(b) {
	case "inf", "+inf", "-inf", "nan":
		return true
	}
	i := 0
	if i < len(b) && (b[i] == '+' || b[i] == '-') {
		i++
	}
	digits := func() int {
		start := i
		for i < len(b) && b[i] >= '0' && b[i] <= '9' {
			i++
		}
		return i - start
	}
	if digits() == 0 {
		return false
	}
	if i < len(b) && b[i] == '.' {
		i++
		if digits() == 0 {
			return false
		}
	}
	if i < len(b) && (b[i] == 'e' || b[i] == 'E') {
		i++
		if i < len(b) && (b[i] == '+' || b[i] == '-') {
			i++
		}
		if digits() == 0 {
			return false
		}
	}
	return i == len(b)
}
