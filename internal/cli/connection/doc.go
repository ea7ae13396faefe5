// Package connection provides the clients used by simple-redis-cli.
//
// A Client owns one TCP connection, dialed lazily on first use. Requests
// are sent as arrays of bulk strings and replies are returned as decoded
// frames; server-side errors arrive as resp.SimpleError values, not as Go
// errors.
//
// AdminClient reads the JSON admin endpoint (/healthz, /version).
package connection
