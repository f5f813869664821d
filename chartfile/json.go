package chartfile

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pthm-cable/orbit/chart"
	"github.com/pthm-cable/orbit/model"
)

type jsonSpeed struct {
	Time   float64 `json:"time"`
	Speed  float64 `json:"speed"`
	Smooth int     `json:"smooth"`
}

type jsonSpeedSample struct {
	Time     float64 `json:"time"`
	Speed    float64 `json:"speed"`
	Smooth   int     `json:"smooth"`
	Distance float64 `json:"distance"`
}

// jsonInput is the accepted JSON document. Notes are decoded one by one so a
// bad note only skips itself.
type jsonInput struct {
	Version int                `json:"version"`
	Offset  float64            `json:"offset"`
	BPM     []model.TempoPoint `json:"bpm"`
	Speed   []jsonSpeed        `json:"speed"`
	Note    []json.RawMessage  `json:"note"`
}

// jsonOutput is the exported JSON document. Derived tables are included for
// external tooling and ignored on input.
type jsonOutput struct {
	Version       int                 `json:"version"`
	Offset        float64             `json:"offset"`
	BPM           []model.TempoPoint  `json:"bpm"`
	Speed         []jsonSpeed         `json:"speed"`
	SpeedDistance []jsonSpeedSample   `json:"speeddistance"`
	TrailDistance []model.TrailSample `json:"traildistance"`
	PhoneDistance []model.TrailSample `json:"phonedistance"`
	Note          []wireNote          `json:"note"`
}

// DecodeJSON reads a JSON chart. The speed array is optional. The returned
// chart is already rebuilt.
func DecodeJSON(r io.Reader, opts ...Option) (*chart.Chart, []Diagnostic, error) {
	o := newOptions(opts)
	col := &collector{strict: o.strict}

	var in jsonInput
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, nil, fmt.Errorf("parsing chart json: %w", err)
	}

	c := chart.New(o.cfg)
	c.Version = in.Version
	c.Offset = in.Offset
	for _, p := range in.BPM {
		c.AddTempo(p)
	}
	for _, p := range in.Speed {
		c.AddSpeed(model.SpeedPoint{Time: p.Time, Speed: p.Speed, Smooth: p.Smooth == 1})
	}
	for i, raw := range in.Note {
		n, err := decodeJSONNote(raw)
		if err != nil {
			if ferr := col.add(i+1, string(raw), err); ferr != nil {
				return nil, col.diags, ferr
			}
			continue
		}
		c.AddNote(n)
	}

	c.Rebuild()
	return c, col.diags, nil
}

func decodeJSONNote(raw json.RawMessage) (model.Note, error) {
	var w wireNote
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadScalar, err)
	}
	return w.note()
}

// EncodeJSON writes the chart's last built snapshot as indented JSON,
// including the derived distance tables and the resolved trail angle of
// every Catch.
func EncodeJSON(w io.Writer, c *chart.Chart) error {
	s := c.Snapshot()

	out := jsonOutput{
		Version:       s.Version,
		Offset:        s.Offset,
		BPM:           s.TempoPoints(),
		Speed:         make([]jsonSpeed, 0),
		SpeedDistance: make([]jsonSpeedSample, 0),
		TrailDistance: s.TrailSamples(),
		PhoneDistance: s.PhoneSamples(),
		Note:          make([]wireNote, 0),
	}
	if out.BPM == nil {
		out.BPM = make([]model.TempoPoint, 0)
	}
	for _, p := range s.SpeedPoints() {
		out.Speed = append(out.Speed, jsonSpeed{Time: p.Time, Speed: p.Speed, Smooth: boolInt(p.Smooth)})
	}
	for _, p := range s.SpeedSamples() {
		out.SpeedDistance = append(out.SpeedDistance, jsonSpeedSample{Time: p.Time, Speed: p.Speed, Smooth: boolInt(p.Smooth), Distance: p.Distance})
	}
	for _, n := range s.Notes() {
		wn := toWire(n)
		if _, ok := n.(model.Catch); ok {
			wn.TrueDegree = ptr(s.Angle(n.TimeKey()))
		}
		out.Note = append(out.Note, wn)
	}

	data, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal chart: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing chart: %w", err)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
