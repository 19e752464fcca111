// Package mapping holds the table of old → new component filenames that the
// fixer applies to profile description files. The default table is embedded
// from mapping.yaml at build time; Parse validates a table document against
// the embedded JSON schema before building an ordered Table from it.
package mapping
