package mapping

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"
)

//go:embed mapping.yaml
var defaultDocument []byte

var (
	defaultOnce  sync.Once
	defaultTable Table
	defaultErr   error
)

// Default returns the table embedded at build time.
func Default() (Table, error) {
	defaultOnce.Do(func() {
		defaultTable, defaultErr = Parse(defaultDocument)
		if defaultErr != nil {
			defaultErr = fmt.Errorf("embedded mapping table: %w", defaultErr)
		}
	})
	return defaultTable, defaultErr
}

// DefaultDocument returns the raw embedded mapping document.
func DefaultDocument() []byte {
	out := make([]byte, len(defaultDocument))
	copy(out, defaultDocument)
	return out
}

// Parse validates a YAML mapping document against the schema, checks its
// format version and builds the ordered Table.
func Parse(data []byte) (Table, error) {
	result, err := Validate(data)
	if err != nil {
		return Table{}, err
	}
	if !result.Valid {
		return Table{}, fmt.Errorf("%w: %s", ErrInvalidDocument, result.Summary())
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Table{}, fmt.Errorf("parsing mapping document: %w", err)
	}

	if err := checkFormat(doc.Format); err != nil {
		return Table{}, err
	}

	table, err := NewTable(doc.Pairs...)
	if err != nil {
		return Table{}, err
	}
	table.format = doc.Format
	return table, nil
}

// checkFormat parses the document format as a semantic version and rejects
// majors this build does not understand.
func checkFormat(format string) error {
	v, err := semver.NewVersion(strings.TrimPrefix(format, "v"))
	if err != nil {
		return fmt.Errorf("parsing format version %q: %w", format, err)
	}
	if v.Major() != SupportedFormatMajor {
		return fmt.Errorf("%w: %s (want %d.x)", ErrUnsupportedFormat, v.String(), SupportedFormatMajor)
	}
	return nil
}
