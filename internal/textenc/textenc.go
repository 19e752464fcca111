// Package textenc decodes and encodes description files with the single text
// encoding the fixer supports: strict UTF-8. Invalid byte sequences are an
// error rather than being replaced with U+FFFD, so a file is never rewritten
// with mangled content.
package textenc

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Name is the encoding used for every read and write.
const Name = "utf-8"

// ErrInvalidEncoding is returned when content is not valid in the fixed encoding.
var ErrInvalidEncoding = errors.New("invalid " + Name + " content")

// Decode validates data and returns it as a string.
func Decode(data []byte) (string, error) {
	out, _, err := transform.Bytes(encoding.UTF8Validator, data)
	if err != nil {
		return "", wrap(err)
	}
	return string(out), nil
}

// Encode validates s and returns its bytes.
func Encode(s string) ([]byte, error) {
	out, _, err := transform.String(encoding.UTF8Validator, s)
	if err != nil {
		return nil, wrap(err)
	}
	return []byte(out), nil
}

func wrap(err error) error {
	if errors.Is(err, encoding.ErrInvalidUTF8) {
		return fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return err
}
