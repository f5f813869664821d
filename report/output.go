// Package report writes derived chart tables and statistics to an output
// directory for inspection and external tooling.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/orbit/chart"
	"github.com/pthm-cable/orbit/config"
	"github.com/pthm-cable/orbit/trail"
)

// PathRow is one sampled vertex of the trail path. Arm 0 is the trail itself,
// arm 1 its mirror across the centre.
type PathRow struct {
	Arm      int     `csv:"arm"`
	Distance float64 `csv:"distance"`
	Degree   float64 `csv:"degree"`
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
	Rotation float64 `csv:"rotation"`
}

// ProbeRow is the state of the chart at one queried time.
type ProbeRow struct {
	Time       float64 `csv:"time"`
	Distance   float64 `csv:"distance"`
	Speed      float64 `csv:"speed"`
	Angle      float64 `csv:"angle"`
	PhoneAngle float64 `csv:"phone_angle"`
	Beat       float64 `csv:"beat"`
	DueHits    int     `csv:"due_hits"`
}

// Probe evaluates the snapshot at chart time t and fires the hit events due
// by then.
func Probe(s *chart.Snapshot, t float64) ProbeRow {
	return ProbeRow{
		Time:       t,
		Distance:   s.Distance(t),
		Speed:      s.SpeedAt(t),
		Angle:      s.Angle(t),
		PhoneAngle: s.PhoneAngle(t),
		Beat:       s.BeatAt(t),
		DueHits:    len(s.Hits().Due(t)),
	}
}

// OutputManager writes chart reports into a directory.
type OutputManager struct {
	dir       string
	probeFile *os.File

	probeHeaderWritten bool
}

// NewOutputManager creates the output directory and opens probe.csv.
// Returns nil if dir is empty (output disabled); every method of a nil
// manager is a no-op.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "probe.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating probe.csv: %w", err)
	}
	return &OutputManager{dir: dir, probeFile: f}, nil
}

// WriteConfig saves the configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTables dumps the derived tables of a snapshot: speed.csv, trail.csv,
// phone.csv and hits.csv.
func (om *OutputManager) WriteTables(s *chart.Snapshot) error {
	if om == nil {
		return nil
	}
	tables := []struct {
		name string
		rows any
	}{
		{"speed.csv", s.SpeedSamples()},
		{"trail.csv", s.TrailSamples()},
		{"phone.csv", s.PhoneSamples()},
		{"hits.csv", s.Hits().Events()},
	}
	for _, tbl := range tables {
		if err := om.writeCSV(tbl.name, tbl.rows); err != nil {
			return err
		}
	}
	return nil
}

// WritePath samples both trail arms inside the view into path.csv.
func (om *OutputManager) WritePath(s *chart.Snapshot, v trail.View, steps int) error {
	if om == nil {
		return nil
	}
	arm, mirror := s.TrailPath(v, steps)
	rows := make([]PathRow, 0, len(arm)+len(mirror))
	for i, side := range [][]trail.Vertex{arm, mirror} {
		for _, p := range side {
			rows = append(rows, PathRow{Arm: i, Distance: p.Distance, Degree: p.Degree, X: p.X, Y: p.Y, Rotation: p.Rotation})
		}
	}
	return om.writeCSV("path.csv", rows)
}

// WriteProbe appends a probe record to probe.csv.
func (om *OutputManager) WriteProbe(row ProbeRow) error {
	if om == nil {
		return nil
	}

	records := []ProbeRow{row}

	if !om.probeHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.probeFile); err != nil {
			return fmt.Errorf("writing probe: %w", err)
		}
		om.probeHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.probeFile); err != nil {
			return fmt.Errorf("writing probe: %w", err)
		}
	}

	return nil
}

// WriteSummary saves the summary as JSON.
func (om *OutputManager) WriteSummary(sum Summary) error {
	if om == nil {
		return nil
	}

	data, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	if err := os.WriteFile(filepath.Join(om.dir, "summary.json"), data, 0644); err != nil {
		return fmt.Errorf("writing summary.json: %w", err)
	}
	return nil
}

func (om *OutputManager) writeCSV(name string, rows any) error {
	f, err := os.Create(filepath.Join(om.dir, name))
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	if err := gocsv.Marshal(rows, f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return f.Close()
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes probe.csv.
func (om *OutputManager) Close() error {
	if om == nil || om.probeFile == nil {
		return nil
	}
	return om.probeFile.Close()
}
