package chartfile

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/pthm-cable/orbit/chart"
	"github.com/pthm-cable/orbit/model"
)

// binaryChart is the CBOR document: the data model only, integer-keyed.
type binaryChart struct {
	Version int                `cbor:"1,keyasint"`
	Offset  float64            `cbor:"2,keyasint"`
	Tempo   []model.TempoPoint `cbor:"3,keyasint"`
	Speed   []model.SpeedPoint `cbor:"4,keyasint"`
	Notes   []wireNote         `cbor:"5,keyasint"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	if encMode, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic(err)
	}
	if decMode, err = (cbor.DecOptions{}).DecMode(); err != nil {
		panic(err)
	}
}

// EncodeBinary writes the chart's last built data model as deterministic CBOR.
func EncodeBinary(w io.Writer, c *chart.Chart) error {
	s := c.Snapshot()
	doc := binaryChart{
		Version: s.Version,
		Offset:  s.Offset,
		Tempo:   s.TempoPoints(),
		Speed:   s.SpeedPoints(),
	}
	for _, n := range s.Notes() {
		doc.Notes = append(doc.Notes, toWire(n))
	}

	data, err := encMode.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal chart: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing chart: %w", err)
	}
	return nil
}

// DecodeBinary reads a CBOR chart. Notes with an unknown type are reported as
// diagnostics like the other decoders.
func DecodeBinary(r io.Reader, opts ...Option) (*chart.Chart, []Diagnostic, error) {
	o := newOptions(opts)
	col := &collector{strict: o.strict}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("reading chart: %w", err)
	}
	var doc binaryChart
	if err := decMode.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parsing chart cbor: %w", err)
	}

	c := chart.New(o.cfg)
	c.Version = doc.Version
	c.Offset = doc.Offset
	c.Tempo = doc.Tempo
	c.Speed = doc.Speed
	for i, wn := range doc.Notes {
		n, err := wn.note()
		if err != nil {
			if ferr := col.add(i+1, fmt.Sprintf("type %d at %v", wn.Type, wn.Time), err); ferr != nil {
				return nil, col.diags, ferr
			}
			continue
		}
		c.AddNote(n)
	}

	c.Rebuild()
	return c, col.diags, nil
}
