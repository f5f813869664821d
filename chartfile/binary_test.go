package chartfile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/orbit/chart"
)

func TestBinaryRoundTrip(t *testing.T) {
	a, _, err := DecodeText(strings.NewReader(sampleText))
	require.NoError(t, err)
	a.Offset = -12.5
	a.Rebuild()

	var buf bytes.Buffer
	require.NoError(t, EncodeBinary(&buf, a))

	b, diags, err := DecodeBinary(&buf)
	require.NoError(t, err)
	require.Empty(t, diags)
	require.NoError(t, chart.Equivalent(a, b, 0))
	require.InDelta(t, a.Distance(1500), b.Distance(1500), 1e-12)
}

func TestBinaryDeterministic(t *testing.T) {
	a, _, err := DecodeText(strings.NewReader(sampleText))
	require.NoError(t, err)

	var x, y bytes.Buffer
	require.NoError(t, EncodeBinary(&x, a))
	require.NoError(t, EncodeBinary(&y, a))
	require.Equal(t, x.Bytes(), y.Bytes())
}

func TestDecodeBinaryRejectsGarbage(t *testing.T) {
	_, _, err := DecodeBinary(bytes.NewReader([]byte{0xff, 0x00, 0x13}))
	require.Error(t, err)
}
