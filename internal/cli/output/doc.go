// Package output renders RESP reply frames for simple-redis-cli.
//
//   - formatter.go: Formatter interface and factory
//   - text.go: redis-cli style text
//   - table.go: two-column tables for maps and collections
//   - json.go / yaml.go: machine-readable output
//   - value.go: frame to plain Go value conversion shared by json and yaml
package output
