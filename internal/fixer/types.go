package fixer

import "errors"

// ErrNotDirectory is returned by CheckDir when the target path exists but is
// not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Status is the outcome of processing a single candidate file.
type Status string

const (
	StatusUnchanged Status = "unchanged"
	StatusChanged   Status = "changed"
	StatusFailed    Status = "failed"
)

// EarlyExit explains why a run ended before processing any file.
type EarlyExit string

const (
	ExitNone             EarlyExit = ""
	ExitMissingDirectory EarlyExit = "missing-directory"
	ExitNoCandidates     EarlyExit = "no-candidates"
	ExitUnreadable       EarlyExit = "unreadable-directory"
)

// Result is the per-file record a run produces.
type Result struct {
	Path         string // path as discovered
	Display      string // path as shown to the user
	Status       Status
	Replacements int   // occurrences replaced, 0 unless Status is StatusChanged
	Err          error // set when Status is StatusFailed
}

// Summary aggregates the results of one run.
type Summary struct {
	Dir         string
	Discovered  int
	Changed     int
	Failed      int
	DryRun      bool
	Interrupted bool // context was cancelled before every candidate was processed
	Exit        EarlyExit
	Results     []Result
}

// add records r and updates the counters.
func (s *Summary) add(r Result) {
	s.Results = append(s.Results, r)
	switch r.Status {
	case StatusChanged:
		s.Changed++
	case StatusFailed:
		s.Failed++
	}
}

// Replacements returns the total number of replaced occurrences.
func (s Summary) Replacements() int {
	total := 0
	for _, r := range s.Results {
		total += r.Replacements
	}
	return total
}

// FailedResults returns only the results that failed.
func (s Summary) FailedResults() []Result {
	var out []Result
	for _, r := range s.Results {
		if r.Status == StatusFailed {
			out = append(out, r)
		}
	}
	return out
}
