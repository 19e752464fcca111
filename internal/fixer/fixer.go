package fixer

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/energyprofiles/reffix/internal/mapping"
	"github.com/energyprofiles/reffix/internal/textenc"
	"github.com/spf13/afero"
)

// DisplayFunc turns a discovered path into the form printed to the user.
type DisplayFunc func(path string) string

// RelativeTo returns a DisplayFunc that prints paths relative to base,
// falling back to the path itself when no relative form exists.
func RelativeTo(base string) DisplayFunc {
	return func(path string) string {
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return path
		}
		return rel
	}
}

// Option configures a Fixer.
type Option func(*Fixer)

// WithExtension sets the description-file suffix (default ".yaml").
func WithExtension(ext string) Option {
	return func(f *Fixer) { f.ext = ext }
}

// WithDisplay sets how paths are rendered in output.
func WithDisplay(fn DisplayFunc) Option {
	return func(f *Fixer) { f.display = fn }
}

// WithDryRun computes changes without writing them.
func WithDryRun(dryRun bool) Option {
	return func(f *Fixer) { f.dryRun = dryRun }
}

// WithReporter sets where progress and the summary are printed.
func WithReporter(r *Reporter) Option {
	return func(f *Fixer) { f.report = r }
}

// Fixer applies a mapping table to every description file under a directory.
type Fixer struct {
	fs      afero.Fs
	dir     string
	table   mapping.Table
	ext     string
	display DisplayFunc
	dryRun  bool
	report  *Reporter
}

// New creates a Fixer over dir on fsys. Output is discarded unless a
// Reporter is supplied with WithReporter.
func New(fsys afero.Fs, dir string, table mapping.Table, opts ...Option) *Fixer {
	f := &Fixer{
		fs:      fsys,
		dir:     dir,
		table:   table,
		ext:     DefaultExtension,
		display: func(path string) string { return path },
		report:  NewReporter(io.Discard, false),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Run performs one pass over the target directory. It never returns an
// error: a missing directory or an empty candidate set yields an empty
// Summary, and per-file failures are recorded in Summary.Results.
func (f *Fixer) Run(ctx context.Context) Summary {
	summary := Summary{Dir: f.dir, DryRun: f.dryRun}

	if err := CheckDir(f.fs, f.dir); err != nil {
		summary.Exit = ExitMissingDirectory
		f.report.MissingDirectory(f.dir, err)
		return summary
	}

	files, err := Discover(f.fs, f.dir, f.ext)
	if err != nil {
		// The directory passed CheckDir but could not be listed.
		summary.Exit = ExitUnreadable
		f.report.UnreadableDirectory(f.dir, err)
		return summary
	}
	if len(files) == 0 {
		summary.Exit = ExitNoCandidates
		f.report.NoCandidates(f.dir, f.ext)
		return summary
	}

	summary.Discovered = len(files)
	f.report.Discovered(f.dir, len(files))

	for _, path := range files {
		if ctx.Err() != nil {
			summary.Interrupted = true
			break
		}
		r := f.processFile(path)
		summary.add(r)
		f.report.FileResult(r, f.dryRun)
	}

	f.report.Summary(summary)
	return summary
}

// processFile reads, rewrites and conditionally writes back one file.
func (f *Fixer) processFile(path string) Result {
	r := Result{Path: path, Display: f.display(path), Status: StatusUnchanged}

	fail := func(err error) Result {
		r.Status = StatusFailed
		r.Err = err
		return r
	}

	info, err := f.fs.Stat(path)
	if err != nil {
		return fail(fmt.Errorf("stat %s: %w", path, err))
	}

	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		return fail(fmt.Errorf("reading %s: %w", path, err))
	}

	original, err := textenc.Decode(data)
	if err != nil {
		return fail(fmt.Errorf("decoding %s: %w", path, err))
	}

	updated, n := f.table.Apply(original)
	if updated == original {
		return r
	}

	if !f.dryRun {
		out, err := textenc.Encode(updated)
		if err != nil {
			return fail(fmt.Errorf("encoding %s: %w", path, err))
		}
		if err := afero.WriteFile(f.fs, path, out, info.Mode().Perm()); err != nil {
			return fail(fmt.Errorf("writing %s: %w", path, err))
		}
	}

	r.Status = StatusChanged
	r.Replacements = n
	return r
}
