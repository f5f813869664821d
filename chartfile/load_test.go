package chartfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/orbit/chart"
)

func TestSaveLoadByExtension(t *testing.T) {
	src, _, err := DecodeText(strings.NewReader(sampleText))
	require.NoError(t, err)
	dir := t.TempDir()

	for _, name := range []string{"chart.txt", "chart.json", "chart.cbor", "CHART.JSON"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(path, src))

			got, diags, err := Load(path)
			require.NoError(t, err)
			require.Empty(t, diags)
			require.NoError(t, chart.Equivalent(src, got, 1e-9))
			require.NoError(t, chart.Validate(got.Snapshot()))
		})
	}
}

func TestUnknownExtension(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "chart.osu"))
	require.ErrorIs(t, err, ErrUnknownFormat)
	require.ErrorIs(t, Save(filepath.Join(t.TempDir(), "chart.xml"), chart.New(nil)), ErrUnknownFormat)
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
