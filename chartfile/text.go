package chartfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pthm-cable/orbit/chart"
	"github.com/pthm-cable/orbit/model"
)

type section int

const (
	secNone section = iota
	secBPM
	secSpeed
	secNote
)

// noteFieldCount is the number of comma-separated fields per note type,
// including the type code.
var noteFieldCount = map[model.Kind]int{
	model.KindTap:    3,
	model.KindFlick:  3,
	model.KindCatch:  3,
	model.KindBomb:   3,
	model.KindRotate: 6,
	model.KindTrail:  6,
	model.KindSlide:  9,
}

// DecodeText reads the text chart format:
//
//	# Version 3
//	# BPM
//	time,bpm
//	# Speed
//	time,speed,smooth
//	# Note
//	type,time,degree[,...]
//
// Blank lines are ignored. The returned chart is already rebuilt.
func DecodeText(r io.Reader, opts ...Option) (*chart.Chart, []Diagnostic, error) {
	o := newOptions(opts)
	c := chart.New(o.cfg)
	col := &collector{strict: o.strict}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	sec := secNone
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			next, err := parseHeader(c, line, sec)
			if err != nil {
				if ferr := col.add(lineNo, line, err); ferr != nil {
					return nil, col.diags, ferr
				}
			}
			sec = next
			continue
		}

		var err error
		switch sec {
		case secBPM:
			err = parseTempo(c, line)
		case secSpeed:
			err = parseSpeed(c, line)
		case secNote:
			err = parseNote(c, line)
		case secNone:
			// Preamble before the first section is ignored.
		}
		if err != nil {
			if ferr := col.add(lineNo, line, err); ferr != nil {
				return nil, col.diags, ferr
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, col.diags, fmt.Errorf("reading chart: %w", err)
	}

	c.Rebuild()
	return c, col.diags, nil
}

// parseHeader returns the section a header line opens. A header that is not
// a known section leaves cur in effect.
func parseHeader(c *chart.Chart, line string, cur section) (section, error) {
	fields := strings.Fields(strings.TrimPrefix(line, "#"))
	if len(fields) == 0 {
		return cur, fmt.Errorf("%w: empty section header", ErrMalformedLine)
	}
	switch fields[0] {
	case "Version":
		v, err := strconv.Atoi(fields[len(fields)-1])
		if err != nil || len(fields) != 2 {
			return secNone, fmt.Errorf("%w: version %q", ErrBadScalar, fields[len(fields)-1])
		}
		c.Version = v
		return secNone, nil
	case "BPM":
		return secBPM, nil
	case "Speed":
		return secSpeed, nil
	case "Note":
		return secNote, nil
	}
	return cur, fmt.Errorf("%w: unknown section %q", ErrMalformedLine, fields[0])
}

func parseTempo(c *chart.Chart, line string) error {
	f, err := splitFields(line, 2)
	if err != nil {
		return err
	}
	var p fieldParser
	t, bpm := p.float(f[0]), p.float(f[1])
	if p.err != nil {
		return p.err
	}
	c.AddTempo(model.TempoPoint{Time: t, BPM: bpm})
	return nil
}

func parseSpeed(c *chart.Chart, line string) error {
	f, err := splitFields(line, 3)
	if err != nil {
		return err
	}
	var p fieldParser
	t, v, smooth := p.float(f[0]), p.float(f[1]), p.int(f[2])
	if p.err != nil {
		return p.err
	}
	c.AddSpeed(model.SpeedPoint{Time: t, Speed: v, Smooth: smooth == 1})
	return nil
}

func parseNote(c *chart.Chart, line string) error {
	f := strings.Split(line, ",")
	if len(f) < 3 {
		return fmt.Errorf("%w: note needs at least 3 fields, got %d", ErrMalformedLine, len(f))
	}
	var p fieldParser
	code := p.int(f[0])
	if p.err != nil {
		return p.err
	}
	kind, ok := model.ParseKind(code)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNoteType, code)
	}
	if want := noteFieldCount[kind]; len(f) != want {
		return fmt.Errorf("%w: %s note needs %d fields, got %d", ErrMalformedLine, kind, want, len(f))
	}

	t, deg := p.float(f[1]), p.float(f[2])
	var n model.Note
	switch kind {
	case model.KindTap:
		n = model.Tap{Time: t, Degree: deg}
	case model.KindFlick:
		n = model.Flick{Time: t, Degree: deg}
	case model.KindCatch:
		n = model.Catch{Time: t, Degree: deg}
	case model.KindBomb:
		n = model.Bomb{Time: t, Degree: deg}
	case model.KindRotate:
		n = model.Rotate{Time: t, Degree: deg, Delta: p.float(f[3]), PrevCurve: p.float(f[4]), NextCurve: p.float(f[5])}
	case model.KindTrail:
		n = model.Trail{Time: t, Degree: deg, Delta: p.float(f[3]), PrevCurve: p.float(f[4]), NextCurve: p.float(f[5])}
	case model.KindSlide:
		n = model.Slide{
			Time:      t,
			Degree:    deg,
			SlideKind: p.int(f[3]),
			EndDegree: p.float(f[4]),
			Snap:      p.int(f[5]),
			Amount:    p.int(f[6]),
			PrevCurve: p.float(f[7]),
			NextCurve: p.float(f[8]),
		}
	}
	if p.err != nil {
		return p.err
	}
	c.AddNote(n)
	return nil
}

func splitFields(line string, want int) ([]string, error) {
	f := strings.Split(line, ",")
	if len(f) != want {
		return nil, fmt.Errorf("%w: want %d fields, got %d", ErrMalformedLine, want, len(f))
	}
	return f, nil
}

// fieldParser parses scalars and keeps the first failure.
type fieldParser struct {
	err error
}

func (p *fieldParser) float(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%w: %q", ErrBadScalar, s)
	}
	return v
}

func (p *fieldParser) int(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%w: %q", ErrBadScalar, s)
	}
	return v
}

// EncodeText writes the chart's last built data model in the text format.
// Offset is not part of the text format.
func EncodeText(w io.Writer, c *chart.Chart) error {
	s := c.Snapshot()
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# Version %d\n", s.Version)
	fmt.Fprint(bw, "\n# BPM\n")
	for _, p := range s.TempoPoints() {
		fmt.Fprintf(bw, "%s,%s\n", num(p.Time), num(p.BPM))
	}
	fmt.Fprint(bw, "\n# Speed\n")
	for _, p := range s.SpeedPoints() {
		smooth := 0
		if p.Smooth {
			smooth = 1
		}
		fmt.Fprintf(bw, "%s,%s,%d\n", num(p.Time), num(p.Speed), smooth)
	}
	fmt.Fprint(bw, "\n# Note\n")
	for _, n := range s.Notes() {
		fmt.Fprintln(bw, noteLine(n))
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing chart: %w", err)
	}
	return nil
}

func noteLine(n model.Note) string {
	head := fmt.Sprintf("%d,%s,%s", int(n.Kind()), num(n.TimeKey()), num(n.NoteDegree()))
	switch n := n.(type) {
	case model.Slide:
		return fmt.Sprintf("%s,%d,%s,%d,%d,%s,%s", head, n.SlideKind, num(n.EndDegree), n.Snap, n.Amount, num(n.PrevCurve), num(n.NextCurve))
	case model.Rotate:
		return fmt.Sprintf("%s,%s,%s,%s", head, num(n.Delta), num(n.PrevCurve), num(n.NextCurve))
	case model.Trail:
		return fmt.Sprintf("%s,%s,%s,%s", head, num(n.Delta), num(n.PrevCurve), num(n.NextCurve))
	}
	return head
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
