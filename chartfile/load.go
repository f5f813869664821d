package chartfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/orbit/chart"
)

type decodeFunc func(io.Reader, ...Option) (*chart.Chart, []Diagnostic, error)

type encodeFunc func(io.Writer, *chart.Chart) error

func codecFor(path string) (decodeFunc, encodeFunc, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return DecodeText, EncodeText, nil
	case ".json":
		return DecodeJSON, EncodeJSON, nil
	case ".cbor":
		return DecodeBinary, EncodeBinary, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Load reads a chart file, choosing the format by extension (.txt, .json or
// .cbor). The returned chart is already rebuilt.
func Load(path string, opts ...Option) (*chart.Chart, []Diagnostic, error) {
	decode, _, err := codecFor(path)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening chart: %w", err)
	}
	defer f.Close()

	c, diags, err := decode(f, opts...)
	if err != nil {
		return nil, diags, fmt.Errorf("loading %s: %w", path, err)
	}
	return c, diags, nil
}

// Save writes the chart's last built snapshot, choosing the format by
// extension.
func Save(path string, c *chart.Chart) error {
	_, encode, err := codecFor(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	if err := encode(f, c); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing chart file: %w", err)
	}
	return nil
}
