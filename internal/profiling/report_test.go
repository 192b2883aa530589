package profiling

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Testing the report is created, non-empty and replaced on rerun
func TestGenerateReport(t *testing.T) {
	input := writeWorkbook(t, "listado_activos", [][]any{
		{"id", "hostname", "cpu", "memory"},
		{1, "web-01", 4, 16},
		{2, "web-02", 8, 32},
		{3, "db-01", 16, 64},
	})
	output := filepath.Join(t.TempDir(), "reporte_listado_activos.html")

	report, err := GenerateReport(input, "", output, DefaultSettings("listado_activos"))
	require.NoError(t, err)
	assert.Equal(t, "Scan Inicial listado_activos", report.Title)

	first, err := os.ReadFile(output)
	require.NoError(t, err)
	require.NotEmpty(t, first)
	html := string(first)
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>Scan Inicial listado_activos</title>")
	for _, col := range []string{"id", "hostname", "cpu", "memory"} {
		assert.Contains(t, html, col)
	}
	assert.NotContains(t, html, `id="correlations"`)

	settings := DefaultSettings("listado_activos")
	settings.Title = "Second run"
	settings.Correlations = true
	_, err = GenerateReport(input, "", output, settings)
	require.NoError(t, err)

	second, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(second), "<title>Second run</title>")
	assert.NotContains(t, string(second), "Scan Inicial listado_activos")
	assert.Contains(t, string(second), `id="correlations"`)
}

// Testing a missing workbook surfaces an error and writes nothing
func TestGenerateReport_MissingInput(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.html")

	_, err := GenerateReport(filepath.Join(dir, "missing.xlsx"), "", output, DefaultSettings("missing"))
	require.Error(t, err)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

// Testing values are escaped in the rendered HTML
func TestWriteHTML_Escapes(t *testing.T) {
	ds := NewDataset("xss", [][]string{
		{"<b>col</b>"},
		{"<script>alert(1)</script>"},
	})

	var buf bytes.Buffer
	require.NoError(t, Describe(ds, DefaultSettings("xss")).WriteHTML(&buf))

	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
	assert.Contains(t, buf.String(), "&lt;b&gt;col&lt;/b&gt;")
}

// Testing number formatting helpers
func TestFormatters(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"integral", formatNumber(42), "42"},
		{"fraction", formatNumber(2.5), "2.5000"},
		{"nan", formatNumber(math.NaN()), "n/a"},
		{"percent", formatPct(0.125), "12.5%"},
		{"correlation", formatCorrelation(-0.5), "-0.500"},
		{"undefined correlation", formatCorrelation(math.NaN()), "n/a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}
