package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/cmplxs/cscalar"

	"github.com/edp1096/nport/pkg/touchstone"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func synthLine(t *testing.T, dir string) string {
	t.Helper()

	out, err := run(t, "synth",
		"--r", "5", "--l", "300n", "--g", "100u", "--c", "120p",
		"--length", "0.05",
		"--fstart", "1meg", "--fstop", "1g", "--points", "11", "--sweep", "LIN",
		"--z0", "50", "--format", "RI", "--precision", "0",
		"--out", filepath.Join(dir, "line"))
	require.NoError(t, err)

	path := filepath.Join(dir, "line.s2p")
	assert.Contains(t, out, path+" (11 points)")
	return path
}

func TestSynthAndInfo(t *testing.T) {
	path := synthLine(t, t.TempDir())

	out, err := run(t, "info", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Ports:   2\n")
	assert.Contains(t, out, "Points:  11\n")
	assert.Contains(t, out, "Sweep:   1.000 MHz .. 1.000 GHz\n")
	assert.Contains(t, out, "Options: # HZ S RI R 50\n")
}

func TestExtract(t *testing.T) {
	path := synthLine(t, t.TempDir())

	out, err := run(t, "extract", "--length", "0.05", "--branch", "forward", "--formula", "c", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2+11)
	for _, line := range lines[2:] {
		assert.Contains(t, line, "300.000 nH/m")
		assert.Contains(t, line, "120.000 pF/m")
	}

	out, err = run(t, "extract", "--length", "0.05", "--branch", "backward", "--formula", "b", path)
	require.NoError(t, err)
	assert.Contains(t, out, "300.000 nH/m")

	_, err = run(t, "extract", "--length", "0.05", "--branch", "sideways", "--formula", "c", path)
	assert.ErrorContains(t, err, "sideways")

	_, err = run(t, "extract", "--length", "0.05", "--branch", "forward", "--formula", "x", path)
	assert.ErrorContains(t, err, "formula")
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	path := synthLine(t, dir)
	outDir := filepath.Join(dir, "db")
	require.NoError(t, os.Mkdir(outDir, 0o755))

	out, err := run(t, "convert", "--format", "db", "--precision", "0", "--out", outDir, path)
	require.NoError(t, err)
	converted := filepath.Join(outDir, "line_db.s2p")
	assert.Contains(t, out, converted)

	original, _, err := touchstone.ReadFile(path)
	require.NoError(t, err)
	n, opts, err := touchstone.ReadFile(converted)
	require.NoError(t, err)
	assert.Equal(t, touchstone.DBAngle, opts.Format)
	assert.Equal(t, original.Frequencies(), n.Frequencies())

	_, err = run(t, "convert", "--format", "XY", "--out", outDir, path)
	assert.ErrorIs(t, err, touchstone.ErrUnknownFormat)
}

func TestSim(t *testing.T) {
	dir := t.TempDir()
	netlistPath := filepath.Join(dir, "series.cir")
	require.NoError(t, os.WriteFile(netlistPath, []byte(`series resistor
R1 in out 100
.port in 0
.port out 0
.ac LIN 3 0 1g
`), 0o644))

	out, err := run(t, "sim", "--format", "RI", "--precision", "0", "--out", "", netlistPath)
	require.NoError(t, err)
	assert.Contains(t, out, "(2 ports, 3 points)")

	n, _, err := touchstone.ReadFile(filepath.Join(dir, "series.s2p"))
	require.NoError(t, err)
	s11, err := n.Parameter(1, 1)
	require.NoError(t, err)
	for _, v := range s11 {
		assert.True(t, cscalar.EqualWithinAbs(v, 0.5, 1e-9))
	}

	bad := filepath.Join(dir, "bad.cir")
	require.NoError(t, os.WriteFile(bad, []byte("bad\nQ1 c b e\n"), 0o644))
	_, err = run(t, "sim", "--format", "RI", "--out", "", bad)
	assert.ErrorContains(t, err, "Q1")
}

func TestPlot(t *testing.T) {
	dir := t.TempDir()
	path := synthLine(t, dir)
	image := filepath.Join(dir, "rlgc.svg")

	out, err := run(t, "plot", "--length", "0.05", "--branch", "forward", "--formula", "c",
		"--out", image, "--width", "20", "--height", "15", path)
	require.NoError(t, err)
	assert.Contains(t, out, image)

	content, err := os.ReadFile(image)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<svg")

	_, err = run(t, "plot", "--length", "0.05", "--branch", "forward", "--formula", "c",
		"--out", filepath.Join(dir, "rlgc.bmp"), path)
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "rlgc.bmp"))
}

func TestInfoMissingFile(t *testing.T) {
	_, err := run(t, "info", filepath.Join(t.TempDir(), "missing.s2p"))
	assert.Error(t, err)
}

func TestView(t *testing.T) {
	dir := t.TempDir()
	path := synthLine(t, dir)
	page := filepath.Join(dir, "line.html")

	out, err := run(t, "view", "--out", page, path)
	require.NoError(t, err)
	assert.Contains(t, out, page)

	content, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.Contains(t, string(content), "S21")
	assert.Contains(t, string(content), "line.s2p")
}
