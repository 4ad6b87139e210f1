// Package dialstring decodes the two input shapes a USSD gateway may
// send: the full dial string opening a dialog, and the single keypress
// of a continuing one.
package dialstring

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed is returned when a dial string does not have the
// *<shortcode>*<extension>...# shape at all.
var ErrMalformed = errors.New("malformed dial string")

// ErrServiceMismatch is returned when the dial string is well-formed but
// addresses a different short code or extension.
var ErrServiceMismatch = errors.New("dial string does not match service address")

// Parser decodes raw gateway input into an ordered sequence of pending
// menu selections.
type Parser struct {
	shortCode string
	extension string
}

// NewParser creates a parser bound to the service's short code and
// extension, e.g. "920" and "1802" for *920*1802#.
func NewParser(shortCode, extension string) *Parser {
	return &Parser{shortCode: shortCode, extension: extension}
}

// Parse decodes raw input into pending selections, in the order the
// subscriber entered them.
//
// On a new dialog the input is the full dial string
// *<shortcode>*<extension>*<sel1>*<sel2>...#. The leading * is
// mandatory; the trailing # is stripped when present. The first two
// segments must match the configured short code and extension. The
// remaining segments are the selections; none at all is valid and means
// "just show the first screen".
//
// On a continuation the input is exactly the latest keypress and is
// passed through as a single selection.
func (p *Parser) Parse(raw string, newDialog bool) ([]string, error) {
	if !newDialog {
		return []string{raw}, nil
	}

	if !strings.HasPrefix(raw, "*") {
		return nil, fmt.Errorf("%w: missing leading *", ErrMalformed)
	}
	body := strings.TrimPrefix(raw, "*")
	body = strings.TrimSuffix(body, "#")

	segments := strings.Split(body, "*")
	if len(segments) < 2 {
		return nil, fmt.Errorf("%w: expected short code and extension", ErrMalformed)
	}
	if segments[0] != p.shortCode || segments[1] != p.extension {
		return nil, fmt.Errorf("%w: got *%s*%s", ErrServiceMismatch, segments[0], segments[1])
	}

	return segments[2:], nil
}
