package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pthm-cable/orbit/chart"
	"github.com/pthm-cable/orbit/chartfile"
	"github.com/pthm-cable/orbit/config"
	"github.com/pthm-cable/orbit/hitsound"
	"github.com/pthm-cable/orbit/report"
)

func main() {
	// CLI flags
	chartPath := flag.String("chart", "", "Chart file to load (.txt, .json or .cbor)")
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	strict := flag.Bool("strict", false, "Fail on the first malformed chart line")
	outputDir := flag.String("output-dir", "", "Output directory for CSV tables, summary and config snapshot")
	exportText := flag.String("export-text", "", "Write the chart in the text format")
	exportJSON := flag.String("export-json", "", "Write the chart as JSON with derived tables")
	exportBinary := flag.String("export-binary", "", "Write the chart as CBOR")
	clickTrack := flag.String("click-track", "", "Render the hit schedule to a WAV file")
	probe := flag.String("probe", "", "Comma-separated chart times to evaluate (ms)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q: %v\n", *logLevel, err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *chartPath == "" {
		slog.Error("-chart is required")
		os.Exit(2)
	}

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	opts := []chartfile.Option{chartfile.WithConfig(cfg)}
	if *strict {
		opts = append(opts, chartfile.Strict())
	}
	c, diags, err := chartfile.Load(*chartPath, opts...)
	for _, d := range diags {
		slog.Warn("skipped chart line", "line", d.Line, "text", d.Text, "error", d.Err)
	}
	if err != nil {
		slog.Error("failed to load chart", "path", *chartPath, "error", err)
		os.Exit(1)
	}
	s := c.Snapshot()
	sum := report.Summarize(s, cfg.Report.DensityWindowMS)
	slog.Info("chart loaded", "path", *chartPath, "skipped", len(diags), "summary", sum)

	if err := run(c, sum, runOptions{
		outputDir:    *outputDir,
		exportText:   *exportText,
		exportJSON:   *exportJSON,
		exportBinary: *exportBinary,
		clickTrack:   *clickTrack,
		probe:        *probe,
	}); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

type runOptions struct {
	outputDir    string
	exportText   string
	exportJSON   string
	exportBinary string
	clickTrack   string
	probe        string
}

func run(c *chart.Chart, sum report.Summary, o runOptions) error {
	s := c.Snapshot()
	cfg := c.Config()

	for _, path := range []string{o.exportText, o.exportJSON, o.exportBinary} {
		if path == "" {
			continue
		}
		if err := chartfile.Save(path, c); err != nil {
			return fmt.Errorf("exporting %s: %w", path, err)
		}
		slog.Info("chart exported", "path", path)
	}

	if o.clickTrack != "" {
		if err := writeClickTrack(o.clickTrack, s, hitsound.ClickParamsFrom(cfg)); err != nil {
			return err
		}
		slog.Info("click track written", "path", o.clickTrack, "events", s.Hits().Len())
	}

	om, err := report.NewOutputManager(o.outputDir)
	if err != nil {
		return err
	}
	if err := writeReports(om, s, cfg, sum, o.probe); err != nil {
		om.Close()
		return err
	}
	if err := om.Close(); err != nil {
		return fmt.Errorf("closing reports: %w", err)
	}

	if om != nil {
		slog.Info("reports written", "dir", om.Dir())
	}
	return nil
}

func writeReports(om *report.OutputManager, s *chart.Snapshot, cfg *config.Config, sum report.Summary, probe string) error {
	if err := om.WriteConfig(cfg); err != nil {
		return err
	}
	if err := om.WriteTables(s); err != nil {
		return err
	}
	if err := om.WritePath(s, s.ViewAt(cfg.Report.PathTimeMS), cfg.View.PathSteps); err != nil {
		return err
	}
	if err := om.WriteSummary(sum); err != nil {
		return err
	}

	times, err := parseProbeTimes(probe)
	if err != nil {
		return err
	}
	if len(times) > 0 {
		s.Hits().ResetBefore(times[0])
	}
	for _, t := range times {
		row := report.Probe(s, t)
		slog.Info("probe",
			"time", row.Time,
			"distance", row.Distance,
			"speed", row.Speed,
			"angle", row.Angle,
			"phone_angle", row.PhoneAngle,
			"beat", row.Beat,
			"due_hits", row.DueHits,
		)
		if err := om.WriteProbe(row); err != nil {
			return err
		}
	}
	return nil
}

func writeClickTrack(path string, s *chart.Snapshot, p hitsound.ClickParams) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating click track: %w", err)
	}
	if err := hitsound.WriteWAV(f, s.Hits().Events(), p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func parseProbeTimes(list string) ([]float64, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	var times []float64
	for _, field := range strings.Split(list, ",") {
		t, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid probe time %q: %w", field, err)
		}
		times = append(times, t)
	}
	return times, nil
}
