// Package fixer rewrites component filename references in profile description
// files. A Fixer walks a target directory for files with the description
// extension, applies a mapping.Table to each file in turn and writes back only
// the files whose content changed. Per-file failures are recorded in the
// returned Summary and never stop the run.
package fixer
