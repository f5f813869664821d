package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/orbit/chartfile"
	"github.com/pthm-cable/orbit/report"
)

const cliChart = `# Version 1
# BPM
0,120
# Note
0,500,45
2,1000,10,0,40,4,2,0,0
5,1500,0
`

func TestParseProbeTimes(t *testing.T) {
	got, err := parseProbeTimes(" 0, 250.5 ,1000")
	if err != nil {
		t.Fatalf("parseProbeTimes: %v", err)
	}
	want := []float64{0, 250.5, 1000}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("time %d = %v, want %v", i, got[i], want[i])
		}
	}

	if got, err := parseProbeTimes(""); err != nil || got != nil {
		t.Errorf("empty list = %v, %v", got, err)
	}
	if _, err := parseProbeTimes("1,x"); err == nil {
		t.Error("expected error for non-numeric probe time")
	}
}

func TestRunWritesEverything(t *testing.T) {
	dir := t.TempDir()
	c, _, err := chartfile.DecodeText(strings.NewReader(cliChart))
	if err != nil {
		t.Fatal(err)
	}

	o := runOptions{
		outputDir:    filepath.Join(dir, "out"),
		exportText:   filepath.Join(dir, "chart.txt"),
		exportJSON:   filepath.Join(dir, "chart.json"),
		exportBinary: filepath.Join(dir, "chart.cbor"),
		clickTrack:   filepath.Join(dir, "hits.wav"),
		probe:        "0,1200",
	}
	if err := run(c, report.Summarize(c.Snapshot(), 1000), o); err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, path := range []string{
		o.exportText, o.exportJSON, o.exportBinary, o.clickTrack,
		filepath.Join(o.outputDir, "summary.json"),
		filepath.Join(o.outputDir, "probe.csv"),
		filepath.Join(o.outputDir, "path.csv"),
	} {
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("missing %s: %v", path, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", path)
		}
	}

	for _, path := range []string{o.exportText, o.exportJSON, o.exportBinary} {
		if _, diags, err := chartfile.Load(path, chartfile.Strict()); err != nil || len(diags) != 0 {
			t.Errorf("reloading %s: %v %v", path, diags, err)
		}
	}
}

func TestRunWithoutOutputs(t *testing.T) {
	c, _, err := chartfile.DecodeText(strings.NewReader(cliChart))
	if err != nil {
		t.Fatal(err)
	}
	if err := run(c, report.Summary{}, runOptions{probe: "bad"}); err == nil {
		t.Error("expected error for bad probe list")
	}
	if err := run(c, report.Summary{}, runOptions{}); err != nil {
		t.Errorf("run with no outputs: %v", err)
	}
}

func TestRunClosesProbeFile(t *testing.T) {
	c, _, err := chartfile.DecodeText(strings.NewReader(cliChart))
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "out")
	if err := run(c, report.Summary{}, runOptions{outputDir: out, probe: "0,600,1200"}); err != nil {
		t.Fatalf("run: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(out, "probe.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 4 {
		t.Errorf("probe.csv has %d lines, want header and 3 rows:\n%s", len(lines), raw)
	}
}
