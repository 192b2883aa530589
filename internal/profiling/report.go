package profiling

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"math"
	"os"
	"strconv"
	"time"
)

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"num":    formatNumber,
	"pct":    formatPct,
	"date":   func(t time.Time) string { return t.Format("2006-01-02 15:04:05") },
	"corr":   formatCorrelation,
	"add":    func(a, b int) int { return a + b },
	"mul100": func(f float64) float64 { return f * 100 },
}).Parse(reportHTML))

// WriteHTML renders the report as one self-contained HTML document
func (r *Report) WriteHTML(w io.Writer) error {
	return reportTemplate.Execute(w, r)
}

// ToFile renders the report and writes it to path, replacing any previous report
func (r *Report) ToFile(path string) error {
	var buf bytes.Buffer
	if err := r.WriteHTML(&buf); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

// GenerateReport loads the workbook at input, profiles it and writes the HTML report to output
func GenerateReport(input, sheet, output string, settings Settings) (*Report, error) {
	ds, err := LoadExcel(input, sheet)
	if err != nil {
		return nil, err
	}
	report := Describe(ds, settings)
	if err := report.ToFile(output); err != nil {
		return nil, err
	}
	return report, nil
}

func formatNumber(f float64) string {
	if math.IsNaN(f) {
		return "n/a"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'f', 4, 64)
}

func formatPct(f float64) string {
	return strconv.FormatFloat(f*100, 'f', 1, 64) + "%"
}

func formatCorrelation(f float64) string {
	if math.IsNaN(f) {
		return "n/a"
	}
	return strconv.FormatFloat(f, 'f', 3, 64)
}

const reportHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body{font-family:-apple-system,Segoe UI,Helvetica,Arial,sans-serif;margin:0;color:#222;background:#f6f7f9}
header{background:#2b3a55;color:#fff;padding:18px 32px}
header small{opacity:.75}
main{padding:16px 32px}
section{background:#fff;border:1px solid #dde1e6;border-radius:6px;margin:16px 0;padding:12px 20px}
h2{font-size:1.2em;border-bottom:1px solid #eee;padding-bottom:6px}
h3{font-size:1.05em;margin-bottom:4px}
table{border-collapse:collapse;font-size:.9em}
td,th{border:1px solid #e3e6ea;padding:4px 8px;text-align:left}
th{background:#f0f2f5}
.grid{display:flex;flex-wrap:wrap;gap:24px}
.tag{display:inline-block;font-size:.75em;padding:2px 6px;border-radius:3px;background:#e8eefc;color:#2b3a55}
.alert{color:#9a3412}
.bar{background:#5b7bd5;height:10px;display:inline-block}
</style>
</head>
<body>
<header>
<h1>{{.Title}}</h1>
<small>Dataset {{.Dataset}} · generated {{date .GeneratedAt}} UTC</small>
</header>
<main>
<section id="overview">
<h2>Overview</h2>
<div class="grid">
<table>
<tr><th colspan="2">Dataset statistics</th></tr>
<tr><td>Number of variables</td><td>{{.Overview.Columns}}</td></tr>
<tr><td>Number of observations</td><td>{{.Overview.Rows}}</td></tr>
<tr><td>Missing cells</td><td>{{.Overview.MissingCells}}</td></tr>
<tr><td>Missing cells (%)</td><td>{{pct .Overview.MissingCellsPct}}</td></tr>
<tr><td>Duplicate rows</td><td>{{.Overview.DuplicateRows}}</td></tr>
<tr><td>Duplicate rows (%)</td><td>{{pct .Overview.DuplicateRowsPct}}</td></tr>
</table>
<table>
<tr><th colspan="2">Variable types</th></tr>
{{range .Overview.TypeCounts}}<tr><td>{{.Type}}</td><td>{{.Count}}</td></tr>
{{end}}</table>
</div>
</section>
{{if .Alerts}}
<section id="alerts">
<h2>Alerts</h2>
<table>
{{range .Alerts}}<tr><td>{{.Column}}</td><td class="alert">{{.Kind}}</td><td>{{.Detail}}</td></tr>
{{end}}</table>
</section>
{{end}}
<section id="variables">
<h2>Variables</h2>
{{range .Variables}}
<h3>{{.Name}} <span class="tag">{{.Type}}</span></h3>
<div class="grid">
<table>
<tr><td>Distinct</td><td>{{.Distinct}}</td></tr>
<tr><td>Distinct (%)</td><td>{{pct .DistinctPct}}</td></tr>
<tr><td>Missing</td><td>{{.Missing}}</td></tr>
<tr><td>Missing (%)</td><td>{{pct .MissingPct}}</td></tr>
<tr><td>Count</td><td>{{.Count}}</td></tr>
</table>
{{with .Numeric}}
<table>
<tr><td>Mean</td><td>{{num .Mean}}</td></tr>
<tr><td>Std</td><td>{{num .Std}}</td></tr>
<tr><td>Minimum</td><td>{{num .Min}}</td></tr>
<tr><td>Q1</td><td>{{num .Q1}}</td></tr>
<tr><td>Median</td><td>{{num .Median}}</td></tr>
<tr><td>Q3</td><td>{{num .Q3}}</td></tr>
<tr><td>Maximum</td><td>{{num .Max}}</td></tr>
<tr><td>Sum</td><td>{{num .Sum}}</td></tr>
<tr><td>Zeros</td><td>{{.Zeros}} ({{pct .ZerosPct}})</td></tr>
<tr><td>Negative</td><td>{{.Negatives}}</td></tr>
</table>
<table>
<tr><th>Range</th><th>Count</th></tr>
{{range .Histogram}}<tr><td>{{num .Low}} – {{num .High}}</td><td>{{.Count}}</td></tr>
{{end}}</table>
{{end}}
{{with .Categorical}}
<table>
<tr><th>Value</th><th>Count</th><th>Frequency</th></tr>
{{range .Top}}<tr><td>{{.Value}}</td><td>{{.Count}}</td><td><span class="bar" style="width:{{printf "%.0f" (mul100 .Pct)}}px"></span> {{pct .Pct}}</td></tr>
{{end}}</table>
<table>
<tr><td>Min length</td><td>{{.MinLength}}</td></tr>
<tr><td>Max length</td><td>{{.MaxLength}}</td></tr>
<tr><td>Mean length</td><td>{{num .MeanLength}}</td></tr>
</table>
{{end}}
{{with .DateTime}}
<table>
<tr><td>Minimum</td><td>{{date .Min}}</td></tr>
<tr><td>Maximum</td><td>{{date .Max}}</td></tr>
</table>
{{end}}
</div>
{{end}}
</section>
{{with .Correlations}}
<section id="correlations">
<h2>Correlations (Pearson)</h2>
<table>
<tr><th></th>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{range $i, $row := .Matrix}}<tr><th>{{index $.Correlations.Columns $i}}</th>{{range $row}}<td>{{corr .}}</td>{{end}}</tr>
{{end}}</table>
</section>
{{end}}
<section id="sample">
<h2>Sample</h2>
<table>
<tr><th>#</th>{{range .Sample.Columns}}<th>{{.}}</th>{{end}}</tr>
{{range $i, $row := .Sample.Rows}}<tr><td>{{add $i 1}}</td>{{range $row}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
</section>
</main>
</body>
</html>
`
