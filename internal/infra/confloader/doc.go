// Package confloader provides the configuration loading mechanism.
//
// It wraps koanf and layers several sources into one typed struct:
//
//   - Configuration file (YAML)
//   - Environment variables (SIMPLE_REDIS_ prefix by default)
//   - Flag values supplied as a map
//
// Later sources override earlier ones: Flag > Env > File > Default.
// Defaults are whatever the target struct already holds before Load.
//
// Watcher reports changes to the configuration file so callers can apply
// settings that are safe to change at runtime, such as the log level.
package confloader
