package resp

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
)

// Doubles with a magnitude outside [scientificLow, scientificHigh) are written
// in scientific notation.
const (
	scientificHigh = 1e8
	scientificLow  = 1e-8
)

// Encode returns the canonical encoding of f. A nil Frame encodes as Null.
func Encode(f Frame) []byte {
	return AppendFrame(make([]byte, 0, 64), f)
}

// AppendFrame appends the canonical encoding of f to dst and returns the
// extended slice.
func AppendFrame(dst []byte, f Frame) []byte {
	switch v := f.(type) {
	case SimpleString:
		return appendSimple(dst, TypeSimpleString, string(v))
	case SimpleError:
		return appendSimple(dst, TypeSimpleError, string(v))
	case BulkError:
		return appendBlob(dst, TypeBulkError, v)
	case Integer:
		dst = append(dst, byte(TypeInteger))
		if v >= 0 {
			dst = append(dst, '+')
		}
		dst = strconv.AppendInt(dst, int64(v), 10)
		return append(dst, '\r', '\n')
	case BulkString:
		return appendBlob(dst, TypeBulkString, v)
	case NullBulkString:
		return append(dst, "$-1\r\n"...)
	case Array:
		return appendAggregate(dst, TypeArray, v)
	case NullArray:
		return append(dst, "*-1\r\n"...)
	case Null, nil:
		return append(dst, "_\r\n"...)
	case Boolean:
		if v {
			return append(dst, "#t\r\n"...)
		}
		return append(dst, "#f\r\n"...)
	case Double:
		dst = append(dst, byte(TypeDouble))
		dst = appendDouble(dst, float64(v))
		return append(dst, '\r', '\n')
	case BigNumber:
		return appendBlob(dst, TypeBigNumber, v)
	case *Map:
		dst = appendHeader(dst, TypeMap, v.Len())
		v.Ascend(func(key string, value Frame) bool {
			dst = appendSimple(dst, TypeSimpleString, key)
			dst = AppendFrame(dst, value)
			return true
		})
		return dst
	case Set:
		return appendAggregate(dst, TypeSet, v)
	default:
		panic(fmt.Sprintf("resp: unknown frame type %T", f))
	}
}

func appendHeader(dst []byte, t Type, n int) []byte {
	dst = append(dst, byte(t))
	dst = strconv.AppendInt(dst, int64(n), 10)
	return append(dst, '\r', '\n')
}

// appendSimple writes a line-oriented value. CR and LF cannot be represented
// inside a simple value and are replaced by spaces.
func appendSimple(dst []byte, t Type, s string) []byte {
	dst = append(dst, byte(t))
	start := len(dst)
	dst = append(dst, s...)
	if bytes.ContainsAny(dst[start:], "\r\n") {
		for i := start; i < len(dst); i++ {
			if dst[i] == '\r' || dst[i] == '\n' {
				dst[i] = ' '
			}
		}
	}
	return append(dst, '\r', '\n')
}

func appendBlob(dst []byte, t Type, b []byte) []byte {
	dst = appendHeader(dst, t, len(b))
	dst = append(dst, b...)
	return append(dst, '\r', '\n')
}

func appendAggregate(dst []byte, t Type, elems []Frame) []byte {
	dst = appendHeader(dst, t, len(elems))
	for _, e := range elems {
		dst = AppendFrame(dst, e)
	}
	return dst
}

// appendDouble writes f with an explicit sign. Large and tiny magnitudes use
// scientific notation with an unpadded exponent ("+1.23456e8"), everything
// else the shortest fixed form ("+3.15").
func appendDouble(dst []byte, f float64) []byte {
	switch {
	case math.IsNaN(f):
		return append(dst, "nan"...)
	case math.IsInf(f, 1):
		return append(dst, "+inf"...)
	case math.IsInf(f, -1):
		return append(dst, "-inf"...)
	}

	if !math.Signbit(f) {
		dst = append(dst, '+')
	}

	abs := math.Abs(f)
	if abs < scientificHigh && (abs == 0 || abs >= scientificLow) {
		return strconv.AppendFloat(dst, f, 'f', -1, 64)
	}

	start := len(dst)
	dst = strconv.AppendFloat(dst, f, 'e', -1, 64)
	e := bytes.IndexByte(dst[start:], 'e')
	if e < 0 {
		return dst
	}
	e += start
	exp, err := strconv.Atoi(string(dst[e+1:]))
	if err != nil {
		return dst
	}
	return strconv.AppendInt(dst[:e+1], int64(exp), 10)
}
