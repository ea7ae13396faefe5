// Package resp implements the RESP3 wire protocol used by simple-redis.
//
// The package is split into four parts:
//
//   - frame.go, map.go: the closed set of Frame variants
//   - decode.go: incremental decoding from a byte buffer
//   - encode.go: canonical, deterministic encoding
//   - codec.go: the stream adapter that pairs both with an io.ReadWriter
//
// Decoding never consumes input on failure. When the buffer does not yet hold a
// complete frame, Decode returns ErrIncomplete and the caller re-offers the same
// bytes once more data has arrived:
//
//	f, n, err := resp.Decode(buf)
//	switch {
//	case errors.Is(err, resp.ErrIncomplete):
//		// read more, keep buf
//	case err != nil:
//		// connection is unrecoverable
//	default:
//		buf = buf[n:]
//	}
//
// Encoding is total: every Frame has exactly one byte representation. Map
// pairs are always written in ascending key order.
package resp
