// Package redisserver provides the RESP3 server for simple-redis.
//
// Requests are decoded by internal/resp, turned into typed commands by
// ParseCommand and executed against a shared memory.Store. Each connection
// runs in its own goroutine and replies in request order.
//
// Supported commands:
//   - PING, ECHO, QUIT
//   - GET, SET, DEL, EXISTS, TYPE, INCR, DECR, INCRBY, DECRBY
//   - HSET, HGET, HMGET, HGETALL, HDEL, HLEN
//   - SADD, SREM, SISMEMBER, SMEMBERS, SCARD
//   - DBSIZE, FLUSHDB
//
// Malformed frames and protocol limit violations close the connection.
// Command errors (unknown name, arity, wrong type) are replied as simple
// errors and the connection stays open.
package redisserver
