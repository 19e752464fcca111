package fixer

import (
	"errors"
	"io"
	"io/fs"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	ansiRed    = "\033[1;91m"
	ansiGreen  = "\033[1;92m"
	ansiYellow = "\033[1;93m"
	ansiReset  = "\033[0m"
)

// Message keys with English plural forms.
const (
	msgDiscovered  = "Found %d description files in %s\n"
	msgChanged     = "  %s %s: %s (%d references)\n"
	msgInterrupted = "%s interrupted after %d of %d files\n"
	msgScanned     = "\nDone: %d files scanned"
	msgUpdated     = ", %d files updated"
	msgWouldUpdate = ", %d files would be updated"
)

var messages = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder()
	set := func(key string, arg int, one, other string) {
		msg := plural.Selectf(arg, "%d", "one", one, "other", other)
		if err := b.Set(language.English, key, msg); err != nil {
			panic(err)
		}
	}
	set(msgDiscovered, 1, "Found %[1]d description file in %[2]s\n", "Found %[1]d description files in %[2]s\n")
	set(msgChanged, 4, "  %[1]s %[2]s: %[3]s (%[4]d reference)\n", "  %[1]s %[2]s: %[3]s (%[4]d references)\n")
	set(msgInterrupted, 3, "%[1]s interrupted after %[2]d of %[3]d file\n", "%[1]s interrupted after %[2]d of %[3]d files\n")
	set(msgScanned, 1, "\nDone: %[1]d file scanned", "\nDone: %[1]d files scanned")
	set(msgUpdated, 1, ", %[1]d file updated", ", %[1]d files updated")
	set(msgWouldUpdate, 1, ", %[1]d file would be updated", ", %[1]d files would be updated")
	return b
}

// Reporter prints line-oriented progress and summary text.
type Reporter struct {
	w     io.Writer
	p     *message.Printer
	color bool
}

// NewReporter returns a Reporter writing to w. When color is true, status
// markers are wrapped in ANSI escapes.
func NewReporter(w io.Writer, color bool) *Reporter {
	return &Reporter{
		w:     w,
		p:     message.NewPrinter(language.English, message.Catalog(messages)),
		color: color,
	}
}

func (r *Reporter) paint(code, s string) string {
	if !r.color {
		return s
	}
	return code + s + ansiReset
}

// UnreadableDirectory reports a target directory that exists but cannot be listed.
func (r *Reporter) UnreadableDirectory(dir string, err error) {
	r.p.Fprintf(r.w, "%s cannot read directory %s: %v\n", r.paint(ansiYellow, "!"), dir, err)
}

// MissingDirectory reports a target directory that is absent or not a directory.
func (r *Reporter) MissingDirectory(dir string, err error) {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		r.p.Fprintf(r.w, "%s directory %s does not exist, nothing to do\n", r.paint(ansiYellow, "!"), dir)
	case errors.Is(err, ErrNotDirectory):
		r.p.Fprintf(r.w, "%s %s is not a directory, nothing to do\n", r.paint(ansiYellow, "!"), dir)
	default:
		r.p.Fprintf(r.w, "%s cannot read directory %s: %v\n", r.paint(ansiYellow, "!"), dir, err)
	}
}

// NoCandidates reports a directory without any description files.
func (r *Reporter) NoCandidates(dir, ext string) {
	r.p.Fprintf(r.w, "No *%s files found in %s\n", ext, dir)
}

// Discovered reports how many candidates were found.
func (r *Reporter) Discovered(dir string, n int) {
	r.p.Fprintf(r.w, msgDiscovered, n, dir)
}

// FileResult prints one line for a changed or failed file. Unchanged files
// are silent.
func (r *Reporter) FileResult(res Result, dryRun bool) {
	switch res.Status {
	case StatusChanged:
		verb := "Updated"
		if dryRun {
			verb = "Would update"
		}
		r.p.Fprintf(r.w, msgChanged, r.paint(ansiGreen, "✓"), verb, res.Display, res.Replacements)
	case StatusFailed:
		r.p.Fprintf(r.w, "  %s Error processing %s: %v\n", r.paint(ansiRed, "✗"), res.Display, res.Err)
	}
}

// Summary prints the final counts.
func (r *Reporter) Summary(s Summary) {
	if s.Interrupted {
		r.p.Fprintf(r.w, msgInterrupted, r.paint(ansiYellow, "!"), len(s.Results), s.Discovered)
	}
	r.p.Fprintf(r.w, msgScanned, s.Discovered)
	if s.DryRun {
		r.p.Fprintf(r.w, msgWouldUpdate, s.Changed)
	} else {
		r.p.Fprintf(r.w, msgUpdated, s.Changed)
	}
	if s.Failed > 0 {
		r.p.Fprintf(r.w, ", %s", r.paint(ansiRed, r.p.Sprintf("%d failed", s.Failed)))
	}
	r.p.Fprintf(r.w, "\n")
}
