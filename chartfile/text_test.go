package chartfile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/orbit/chart"
	"github.com/pthm-cable/orbit/config"
	"github.com/pthm-cable/orbit/model"
)

const sampleText = `# Version 3

# BPM
0,120
2000,60

# Speed
0,1,0
1000,2,1

# Note
0,500,45
1,600,90
2,1000,10,0,40,4,4,0,0
4,1200,30,60,20,80
5,1300,0
6,1400,170
11,2000,120,0,0,0
`

func TestDecodeText(t *testing.T) {
	c, diags, err := DecodeText(strings.NewReader(sampleText))
	require.NoError(t, err)
	require.Empty(t, diags)

	require.Equal(t, 3, c.Version)
	require.Equal(t, []model.TempoPoint{{Time: 0, BPM: 120}, {Time: 2000, BPM: 60}}, c.Tempo)
	require.Equal(t, []model.SpeedPoint{{Time: 0, Speed: 1}, {Time: 1000, Speed: 2, Smooth: true}}, c.Speed)
	require.Len(t, c.Notes, 7)
	require.Equal(t, model.Slide{Time: 1000, Degree: 10, EndDegree: 40, Snap: 4, Amount: 4}, c.Notes[2])
	require.Equal(t, model.Rotate{Time: 1200, Degree: 30, Delta: 60, PrevCurve: 20, NextCurve: 80}, c.Notes[3])

	// decoded charts are rebuilt and queryable
	require.InDelta(t, 2, c.BeatAt(1000), 1e-9)
	require.InDelta(t, 2500, c.Distance(1500), 1e-9)
	require.NoError(t, chart.Validate(c.Snapshot()))
}

const brokenText = `preamble is ignored
# Version 2
# Note
0,500
7,100,0
0,abc,10
4,100,0,0,0
# Junk
0,600,10
# Note
0,700,10
`

func TestDecodeTextLenient(t *testing.T) {
	c, diags, err := DecodeText(strings.NewReader(brokenText))
	require.NoError(t, err)
	require.Equal(t, 2, c.Version)
	// the unknown header is reported but the note section stays open
	require.Equal(t, []model.Note{model.Tap{Time: 600, Degree: 10}, model.Tap{Time: 700, Degree: 10}}, c.Notes)

	require.Len(t, diags, 5)
	want := []struct {
		line int
		err  error
	}{
		{4, ErrMalformedLine},
		{5, ErrUnknownNoteType},
		{6, ErrBadScalar},
		{7, ErrMalformedLine},
		{8, ErrMalformedLine},
	}
	for i, w := range want {
		require.Equal(t, w.line, diags[i].Line)
		require.ErrorIs(t, diags[i], w.err)
	}
	require.Contains(t, diags[2].Error(), "line 6")
}

func TestDecodeTextKeepsSectionAfterStrayHeader(t *testing.T) {
	src := "# BPM\n0,120\n# Note\n# hand-placed section\n0,1000,90\n1,1500,45\n5,2000,10\n"
	c, diags, err := DecodeText(strings.NewReader(src))
	require.NoError(t, err)

	require.Len(t, diags, 1)
	require.Equal(t, 4, diags[0].Line)
	require.ErrorIs(t, diags[0], ErrMalformedLine)
	require.Equal(t, []model.Note{
		model.Tap{Time: 1000, Degree: 90},
		model.Flick{Time: 1500, Degree: 45},
		model.Catch{Time: 2000, Degree: 10},
	}, c.Notes)
	require.Len(t, c.Tempo, 1)
}

func TestDecodeTextStrict(t *testing.T) {
	c, diags, err := DecodeText(strings.NewReader(brokenText), Strict())
	require.Nil(t, c)
	require.ErrorIs(t, err, ErrMalformedLine)
	require.Len(t, diags, 1)

	var d Diagnostic
	require.ErrorAs(t, err, &d)
	require.Equal(t, 4, d.Line)
}

func TestDecodeTextStrictFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Decode.Strict = true

	_, _, err := DecodeText(strings.NewReader("# Version x\n"), WithConfig(cfg))
	require.ErrorIs(t, err, ErrBadScalar)
}

func TestEncodeTextFormat(t *testing.T) {
	c := chart.New(nil)
	c.Version = 1
	c.AddTempo(model.TempoPoint{Time: 0, BPM: 120})
	c.AddSpeed(model.SpeedPoint{Time: 0, Speed: 1.5, Smooth: true})
	c.AddNote(model.Slide{Time: 500, Degree: 10, SlideKind: 1, EndDegree: 40, Snap: 4, Amount: 2, NextCurve: 25.5})
	c.AddNote(model.Tap{Time: 250, Degree: 45})
	c.Rebuild()

	var buf bytes.Buffer
	require.NoError(t, EncodeText(&buf, c))
	require.Equal(t, `# Version 1

# BPM
0,120

# Speed
0,1.5,1

# Note
0,250,45
2,500,10,1,40,4,2,0,25.5
`, buf.String())
}

func TestTextRoundTrip(t *testing.T) {
	a, _, err := DecodeText(strings.NewReader(sampleText))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeText(&buf, a))

	b, diags, err := DecodeText(&buf, Strict())
	require.NoError(t, err)
	require.Empty(t, diags)
	require.NoError(t, chart.Equivalent(a, b, 1e-9))
}
