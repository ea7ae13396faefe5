package resp

import (
	"bytes"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrIncomplete is returned by the decoder when the buffer holds a valid
	// prefix of a frame but not the whole frame. It is not a protocol error.
	ErrIncomplete = errors.New("resp: incomplete frame")

	// ErrInvalidFrame is returned when the input violates the RESP3 grammar.
	ErrInvalidFrame = errors.New("resp: invalid frame")

	// ErrLimitExceeded is returned when a frame exceeds a configured decoder limit.
	ErrLimitExceeded = errors.New("resp: limit exceeded")

	// ErrTruncated is returned by Codec.ReadFrame when the stream ends inside a frame.
	ErrTruncated = errors.New("resp: stream ended inside a frame")

	// ErrUnsupportedValue is returned by FromValue for Go values with no Frame form.
	ErrUnsupportedValue = errors.New("resp: unsupported value")
)

// Type is the single-byte prefix that introduces a frame on the wire.
type Type byte

const (
	TypeSimpleString Type = '+'
	TypeSimpleError  Type = '-'
	TypeBulkError    Type = '!'
	TypeInteger      Type = ':'
	TypeBulkString   Type = '$'
	TypeArray        Type = '*'
	TypeNull         Type = '_'
	TypeBoolean      Type = '#'
	TypeDouble       Type = ','
	TypeBigNumber    Type = 'b'
	TypeMap          Type = '%'
	TypeSet          Type = '~'
)

// String implements the fmt.Stringer interface.
func (t Type) String() string {
	return string(t)
}

// Frame is one RESP3 value.
//
// The set of implementations is closed: only the types declared in this
// package satisfy Frame.
type Frame interface {
	// Type returns the wire prefix of the frame. The null sentinels report the
	// prefix of the type they stand in for ('$' and '*').
	Type() Type

	frame()
}

// SimpleString is a line of text without CR or LF.
type SimpleString string

// SimpleError is a line of error text without CR or LF.
type SimpleError string

// BulkError is a length-prefixed error payload.
type BulkError []byte

// Integer is a signed 64-bit number.
type Integer int64

// BulkString is a length-prefixed binary-safe payload.
type BulkString []byte

// NullBulkString is the RESP2 null bulk string, "$-1\r\n".
type NullBulkString struct{}

// Array is an ordered sequence of frames.
type Array []Frame

// NullArray is the RESP2 null array, "*-1\r\n".
type NullArray struct{}

// Null is the RESP3 null, "_\r\n".
type Null struct{}

// Boolean is a RESP3 boolean.
type Boolean bool

// Double is a RESP3 floating point number.
type Double float64

// BigNumber is a length-prefixed decimal payload.
type BigNumber []byte

// Set is an ordered sequence of frames sent with the set prefix.
type Set []Frame

func (SimpleString) Type() Type   { return TypeSimpleString }
func (SimpleError) Type() Type    { return TypeSimpleError }
func (BulkError) Type() Type      { return TypeBulkError }
func (Integer) Type() Type        { return TypeInteger }
func (BulkString) Type() Type     { return TypeBulkString }
func (NullBulkString) Type() Type { return TypeBulkString }
func (Array) Type() Type          { return TypeArray }
func (NullArray) Type() Type      { return TypeArray }
func (Null) Type() Type           { return TypeNull }
func (Boolean) Type() Type        { return TypeBoolean }
func (Double) Type() Type         { return TypeDouble }
func (BigNumber) Type() Type      { return TypeBigNumber }
func (*Map) Type() Type           { return TypeMap }
func (Set) Type() Type            { return TypeSet }

func (SimpleString) frame()   {}
func (SimpleError) frame()    {}
func (BulkError) frame()      {}
func (Integer) frame()        {}
func (BulkString) frame()     {}
func (NullBulkString) frame() {}
func (Array) frame()          {}
func (NullArray) frame()      {}
func (Null) frame()           {}
func (Boolean) frame()        {}
func (Double) frame()         {}
func (BigNumber) frame()      {}
func (*Map) frame()           {}
func (Set) frame()            {}

// Error implements the error interface so a SimpleError can be returned directly.
func (e SimpleError) Error() string {
	return string(e)
}

// Errorf builds a SimpleError from a format string.
func Errorf(format string, args ...any) SimpleError {
	return SimpleError(fmt.Sprintf(format, args...))
}

// OK is the canonical "+OK" reply.
const OK = SimpleString("OK")

// FromValue converts a native Go value into a Frame.
//
// Strings and byte slices become bulk strings, integers become Integer, floats
// become Double, bools become Boolean and nil becomes Null. Unsigned values
// that do not fit in an int64 are rejected.
func FromValue(v any) (Frame, error) {
	switch x := v.(type) {
	case nil:
		return Null{}, nil
	case Frame:
		return x, nil
	case string:
		return BulkString(x), nil
	case []byte:
		return BulkString(bytes.Clone(x)), nil
	case bool:
		return Boolean(x), nil
	case int:
		return Integer(x), nil
	case int8:
		return Integer(x), nil
	case int16:
		return Integer(x), nil
	case int32:
		return Integer(x), nil
	case int64:
		return Integer(x), nil
	case uint:
		return fromUint(uint64(x))
	case uint8:
		return Integer(x), nil
	case uint16:
		return Integer(x), nil
	case uint32:
		return Integer(x), nil
	case uint64:
		return fromUint(x)
	case float32:
		return Double(x), nil
	case float64:
		return Double(x), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

func fromUint(u uint64) (Frame, error) {
	if u > math.MaxInt64 {
		return nil, fmt.Errorf("%w: %d overflows int64", ErrUnsupportedValue, u)
	}
	return Integer(u), nil
}

// Equal reports whether two frames have the same variant and payload,
// comparing aggregates element by element. Two NaN doubles are equal.
func Equal(a, b Frame) bool {
	switch x := a.(type) {
	case SimpleString:
		y, ok := b.(SimpleString)
		return ok && x == y
	case SimpleError:
		y, ok := b.(SimpleError)
		return ok && x == y
	case BulkError:
		y, ok := b.(BulkError)
		return ok && bytes.Equal(x, y)
	case Integer:
		y, ok := b.(Integer)
		return ok && x == y
	case BulkString:
		y, ok := b.(BulkString)
		return ok && bytes.Equal(x, y)
	case NullBulkString:
		_, ok := b.(NullBulkString)
		return ok
	case Array:
		y, ok := b.(Array)
		return ok && equalFrames(x, y)
	case NullArray:
		_, ok := b.(NullArray)
		return ok
	case Null:
		_, ok := b.(Null)
		return ok
	case Boolean:
		y, ok := b.(Boolean)
		return ok && x == y
	case Double:
		y, ok := b.(Double)
		if !ok {
			return false
		}
		if math.IsNaN(float64(x)) || math.IsNaN(float64(y)) {
			return math.IsNaN(float64(x)) && math.IsNaN(float64(y))
		}
		return x == y
	case BigNumber:
		y, ok := b.(BigNumber)
		return ok && bytes.Equal(x, y)
	case *Map:
		y, ok := b.(*Map)
		return ok && x.equal(y)
	case Set:
		y, ok := b.(Set)
		return ok && equalFrames(x, y)
	case nil:
		return b == nil
	default:
		return false
	}
}

func equalFrames(a, b []Frame) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
