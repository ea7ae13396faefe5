// Package main provides the entry point for simple-redis-cli.
//
// simple-redis-cli sends single commands or runs an interactive session
// against a simple-redis server:
//
//	simple-redis-cli -s 127.0.0.1:7890 SET greeting hello
//	simple-redis-cli -o json HGETALL user:1
//	simple-redis-cli
package main
