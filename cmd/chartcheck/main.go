// Package main checks a chart file: derived-table invariants, the
// time/distance round trip and lossless re-ingestion of every export format.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/pthm-cable/orbit/chart"
	"github.com/pthm-cable/orbit/chartfile"
	"github.com/pthm-cable/orbit/config"
)

// ErrRoundTrip is wrapped by every time/distance inversion failure.
var ErrRoundTrip = errors.New("chartcheck: time/distance round trip")

type codec struct {
	name   string
	encode func(io.Writer, *chart.Chart) error
	decode func(io.Reader, ...chartfile.Option) (*chart.Chart, []chartfile.Diagnostic, error)
	tol    float64
}

var codecs = []codec{
	{"text", chartfile.EncodeText, chartfile.DecodeText, 1e-9},
	{"json", chartfile.EncodeJSON, chartfile.DecodeJSON, 1e-9},
	{"cbor", chartfile.EncodeBinary, chartfile.DecodeBinary, 0},
}

func main() {
	chartPath := flag.String("chart", "", "Chart file to check")
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	step := flag.Float64("step", 10, "Sampling step of the round-trip check (ms)")
	tol := flag.Float64("tol", 1e-6, "Round-trip tolerance (ms)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *chartPath == "" {
		slog.Error("-chart is required")
		os.Exit(2)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	c, diags, err := chartfile.Load(*chartPath, chartfile.WithConfig(cfg))
	if err != nil {
		slog.Error("failed to load chart", "path", *chartPath, "error", err)
		os.Exit(1)
	}
	for _, d := range diags {
		slog.Warn("skipped chart line", "line", d.Line, "text", d.Text, "error", d.Err)
	}

	errs := check(c, *step, *tol)
	for _, err := range errs {
		slog.Error("check failed", "error", err)
	}
	if len(errs) > 0 {
		os.Exit(1)
	}
	slog.Info("chart ok", "path", *chartPath, "notes", len(c.Notes))
}

// check runs every check and returns all failures.
func check(c *chart.Chart, step, tol float64) []error {
	var errs []error
	s := c.Snapshot()

	if err := chart.Validate(s); err != nil {
		errs = append(errs, err)
	}
	if err := checkRoundTrip(s, step, tol); err != nil {
		errs = append(errs, err)
	}
	for _, cd := range codecs {
		if err := checkCodec(c, cd); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// checkRoundTrip samples Time(Distance(t)) from 0 to one second past the last
// note. Stalled stretches are skipped since distance does not identify a time
// there.
func checkRoundTrip(s *chart.Snapshot, step, tol float64) error {
	if step <= 0 {
		return fmt.Errorf("%w: step must be positive", ErrRoundTrip)
	}
	end := 1000.0
	if notes := s.Notes(); len(notes) > 0 {
		end += notes[len(notes)-1].TimeKey()
	}
	for t := 0.0; t <= end; t += step {
		if s.SpeedAt(t) <= 0 {
			continue
		}
		if got := s.Time(s.Distance(t)); math.Abs(got-t) > tol {
			return fmt.Errorf("%w: t=%v maps back to %v", ErrRoundTrip, t, got)
		}
	}
	return nil
}

func checkCodec(c *chart.Chart, cd codec) error {
	var buf bytes.Buffer
	if err := cd.encode(&buf, c); err != nil {
		return fmt.Errorf("%s export: %w", cd.name, err)
	}
	got, _, err := cd.decode(&buf, chartfile.Strict(), chartfile.WithConfig(c.Config()))
	if err != nil {
		return fmt.Errorf("%s re-ingest: %w", cd.name, err)
	}
	if cd.name == "text" {
		// the text format has no offset
		got.Offset = c.Offset
	}
	if err := chart.Equivalent(c, got, cd.tol); err != nil {
		return fmt.Errorf("%s re-ingest: %w", cd.name, err)
	}
	return nil
}
