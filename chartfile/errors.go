// Package chartfile reads and writes charts in the line-oriented text format,
// the JSON interchange format and a compact CBOR encoding.
//
// Decoders are lenient by default: a line or note that cannot be used is
// skipped and reported as a Diagnostic. In strict mode the first diagnostic
// aborts decoding.
package chartfile

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/orbit/config"
)

var (
	// ErrMalformedLine is reported for a line with the wrong field count or
	// an unknown section header.
	ErrMalformedLine = errors.New("chartfile: malformed line")
	// ErrUnknownNoteType is reported for a note type code outside the known set.
	ErrUnknownNoteType = errors.New("chartfile: unknown note type")
	// ErrBadScalar is reported for a field that does not parse as a number.
	ErrBadScalar = errors.New("chartfile: unparseable value")
	// ErrUnknownFormat is returned by Load and Save for an unsupported extension.
	ErrUnknownFormat = errors.New("chartfile: unknown chart format")
)

// Diagnostic describes one skipped line or note. Line is 1-based; for JSON it
// is the position of the note in the note array.
type Diagnostic struct {
	Line int
	Text string
	Err  error
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("line %d: %v: %q", d.Line, d.Err, d.Text)
}

func (d Diagnostic) Unwrap() error { return d.Err }

// Option configures a decoder.
type Option func(*options)

type options struct {
	strict bool
	cfg    *config.Config
}

// Strict makes the first diagnostic fatal.
func Strict() Option {
	return func(o *options) { o.strict = true }
}

// WithConfig sets the configuration of the decoded chart. Its decode.strict
// setting also enables strict mode.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.cfg == nil {
		o.cfg = config.Default()
	}
	if o.cfg.Decode.Strict {
		o.strict = true
	}
	return o
}

// collector accumulates diagnostics and reports when decoding must stop.
type collector struct {
	strict bool
	diags  []Diagnostic
}

func (c *collector) add(line int, text string, err error) error {
	d := Diagnostic{Line: line, Text: text, Err: err}
	c.diags = append(c.diags, d)
	if c.strict {
		return d
	}
	return nil
}
