package mapping

import (
	"errors"
	"fmt"
	"strings"
)

// SupportedFormatMajor is the only mapping document major version this build understands.
const SupportedFormatMajor = 1

var (
	// ErrDuplicateKey is returned when two pairs share the same old name.
	ErrDuplicateKey = errors.New("duplicate old name")
	// ErrIdentityPair is returned when a pair maps a name onto itself.
	ErrIdentityPair = errors.New("old and new names are identical")
	// ErrUnsupportedFormat is returned for a format version with an unknown major.
	ErrUnsupportedFormat = errors.New("unsupported mapping format")
	// ErrInvalidDocument is returned when the document fails schema validation.
	ErrInvalidDocument = errors.New("invalid mapping document")
)

// Pair is a single literal substitution.
type Pair struct {
	Old string `yaml:"old" json:"old"`
	New string `yaml:"new" json:"new"`
}

// Document is the on-disk shape of a mapping table.
type Document struct {
	Format      string `yaml:"format"`
	Description string `yaml:"description,omitempty"`
	Pairs       []Pair `yaml:"pairs"`
}

// Table is an immutable, ordered list of pairs. Order matters: each pair is
// applied to the output of the previous one.
type Table struct {
	pairs  []Pair
	format string
}

// NewTable builds a Table from pairs, rejecting empty names, identity pairs
// and duplicate old names.
func NewTable(pairs ...Pair) (Table, error) {
	seen := make(map[string]bool, len(pairs))
	cp := make([]Pair, 0, len(pairs))
	for i, p := range pairs {
		if p.Old == "" || p.New == "" {
			return Table{}, fmt.Errorf("pair %d: %w: names must not be empty", i, ErrInvalidDocument)
		}
		if p.Old == p.New {
			return Table{}, fmt.Errorf("pair %d (%s): %w", i, p.Old, ErrIdentityPair)
		}
		if seen[p.Old] {
			return Table{}, fmt.Errorf("pair %d (%s): %w", i, p.Old, ErrDuplicateKey)
		}
		seen[p.Old] = true
		cp = append(cp, p)
	}
	return Table{pairs: cp}, nil
}

// MustTable is like NewTable but panics on error. Intended for tests and
// package-level tables known to be valid.
func MustTable(pairs ...Pair) Table {
	t, err := NewTable(pairs...)
	if err != nil {
		panic(err)
	}
	return t
}

// Pairs returns a copy of the pairs in application order.
func (t Table) Pairs() []Pair {
	out := make([]Pair, len(t.pairs))
	copy(out, t.pairs)
	return out
}

// Format returns the document format version the table was parsed from,
// or "" for tables built in code.
func (t Table) Format() string { return t.format }

// Len returns the number of pairs.
func (t Table) Len() int { return len(t.pairs) }

// Apply runs every pair against content in order and returns the rewritten
// content together with the number of occurrences replaced. Replacement is
// literal, global and non-overlapping.
func (t Table) Apply(content string) (string, int) {
	replaced := 0
	for _, p := range t.pairs {
		n := strings.Count(content, p.Old)
		if n == 0 {
			continue
		}
		replaced += n
		content = strings.ReplaceAll(content, p.Old, p.New)
	}
	return content, replaced
}

// OverlapKind describes how two pairs interact.
type OverlapKind string

const (
	// OverlapSubstring means one old name is contained in another old name,
	// so the result depends on which pair runs first.
	OverlapSubstring OverlapKind = "substring"
	// OverlapChain means a new name contains a later pair's old name, so the
	// later pair rewrites the earlier pair's output.
	OverlapChain OverlapKind = "chain"
)

// Overlap records an order-sensitive interaction between two pairs.
type Overlap struct {
	Kind   OverlapKind
	First  Pair
	Second Pair
}

// Overlaps reports pairs whose results depend on application order.
func (t Table) Overlaps() []Overlap {
	var out []Overlap
	for i, a := range t.pairs {
		for j, b := range t.pairs {
			if i == j {
				continue
			}
			if strings.Contains(b.Old, a.Old) {
				out = append(out, Overlap{Kind: OverlapSubstring, First: a, Second: b})
			}
			if j > i && strings.Contains(a.New, b.Old) {
				out = append(out, Overlap{Kind: OverlapChain, First: a, Second: b})
			}
		}
	}
	return out
}
