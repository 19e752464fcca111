// Package config manages user-level settings stored at ~/.reffix/config.yaml.
// Settings can also come from REFFIX_* environment variables or command-line
// flags bound by the cli package; the mapping table itself is never
// configurable.
package config
