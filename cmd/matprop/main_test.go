package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDoc = `
density: !constant
  name: density
  unit: g/cm^3
  symbol: rho
  value: 7.99
conductivity: !table
  name: thermal conductivity
  arguments: [T]
  units: [K, W/m/K]
  symbols: [T, k]
  defaults: [300]
  values:
    - !array [200, 400]
    - !array [8, 12]
`

// writeDoc writes a property document into a temp dir and returns its path.
func writeDoc(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "props.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

// parseEvalLine splits one "value unit" line of eval output. The value is
// parsed rather than string-compared so unit factors that are inexact in
// floating point (g/cm^3) do not leak into assertions.
func parseEvalLine(t *testing.T, line string) (float64, string) {
	t.Helper()
	raw, unit, found := strings.Cut(strings.TrimSpace(line), " ")
	require.True(t, found, "eval output should be one value and one unit: %q", line)
	value, err := strconv.ParseFloat(raw, 64)
	require.NoError(t, err)
	return value, unit
}

func TestRun_List(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeDoc(t, testDoc)
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, []string{"list", path})

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out.String(), "density\tconstant\tkg/m^3")
	assert.Contains(t, out.String(), "conductivity\ttable\tkg m/s^3/K")
}

func TestRun_EvalConstant(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeDoc(t, testDoc)
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, []string{"eval", path, "density"})

	// --- Assert ---
	require.NoError(t, err)
	value, unit := parseEvalLine(t, out.String())
	assert.InDelta(t, 7990.0, value, 1e-6)
	assert.Equal(t, "kg/m^3", unit)
}

func TestRun_EvalTable(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeDoc(t, testDoc)
	out := &bytes.Buffer{}

	// --- Act ---
	// Linear interpolation between the two table nodes.
	err := run(out, &bytes.Buffer{}, []string{"eval", path, "conductivity", "T=350"})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "11 kg m/s^3/K\n", out.String())
}

func TestRun_EvalVectorQuery(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeDoc(t, testDoc)
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, []string{"eval", path, "conductivity", "T=200,400"})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "8 kg m/s^3/K\n12 kg m/s^3/K\n", out.String())
}

func TestRun_EvalUnknownProperty(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeDoc(t, testDoc)

	// --- Act ---
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"eval", path, "viscosity"})

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no property "viscosity"`)
}

func TestRun_EvalBadQueryArgument(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeDoc(t, testDoc)

	// --- Act ---
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"eval", path, "conductivity", "T=warm"})

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a number")
}

func TestRun_Convert(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, []string{"convert", "25", "degC", "K"})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "298.15 K\n", out.String())
}

func TestRun_ConvertIncompatible(t *testing.T) {
	t.Parallel()

	// --- Act ---
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"convert", "1", "kg", "m"})

	// --- Assert ---
	require.Error(t, err)
}

func TestRun_Fmt(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeDoc(t, testDoc)
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, []string{"fmt", path})

	// --- Assert ---
	require.NoError(t, err)
	// Values come back normalized to base units.
	assert.Contains(t, out.String(), "kg/m^3")
	assert.Contains(t, out.String(), "!constant")
	assert.Contains(t, out.String(), "!table")

	// The reformatted document must load again; evaluating it recovers
	// the normalized density.
	dumped := filepath.Join(t.TempDir(), "dumped.yaml")
	require.NoError(t, os.WriteFile(dumped, out.Bytes(), 0600))
	evalOut := &bytes.Buffer{}
	require.NoError(t, run(evalOut, &bytes.Buffer{}, []string{"eval", dumped, "density"}))
	value, unit := parseEvalLine(t, evalOut.String())
	assert.InDelta(t, 7990.0, value, 1e-6)
	assert.Equal(t, "kg/m^3", unit)
}

func TestRun_MissingDocument(t *testing.T) {
	t.Parallel()

	// --- Act ---
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"list", filepath.Join(t.TempDir(), "absent.yaml")})

	// --- Assert ---
	require.Error(t, err)
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, []string{"--help"})

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Usage:")
}
