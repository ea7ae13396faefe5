// Package buildinfo exposes build information for simple-redis.
//
// Values are injected at build time via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/simple-redis/internal/infra/buildinfo.Version=v1.0.0 \
//	  -X github.com/yndnr/simple-redis/internal/infra/buildinfo.Commit=abc123"
//
// GoVersion falls back to the running toolchain when not injected.
package buildinfo
