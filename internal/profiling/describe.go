package profiling

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"
)

// VariableType is the inferred type of a column
type VariableType string

const (
	TypeNumeric     VariableType = "Numeric"
	TypeBoolean     VariableType = "Boolean"
	TypeDateTime    VariableType = "DateTime"
	TypeCategorical VariableType = "Categorical"
	TypeUnsupported VariableType = "Unsupported"
)

const (
	histogramBins        = 10
	topValues            = 10
	highMissingRatio     = 0.2
	highZerosRatio       = 0.1
	highCardinalityLimit = 50
	defaultSampleRows    = 10
)

var thousandsPattern = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+(\.\d+)?$`)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01-02-06",
	"1/2/06 15:04",
	"1/2/2006",
}

// Settings controls what the report contains
type Settings struct {
	Title string
	// Interactions is accepted but never rendered.
	Interactions bool
	Correlations bool
	SampleRows   int
}

// DefaultSettings titles the report "Scan Inicial <name>" with interactions and correlations disabled
func DefaultSettings(name string) Settings {
	return Settings{
		Title:      "Scan Inicial " + name,
		SampleRows: defaultSampleRows,
	}
}

// Overview summarises the whole dataset
type Overview struct {
	Rows             int
	Columns          int
	Cells            int
	MissingCells     int
	MissingCellsPct  float64
	DuplicateRows    int
	DuplicateRowsPct float64
	TypeCounts       []TypeCount
}

type TypeCount struct {
	Type  VariableType
	Count int
}

// ValueCount is one entry of a frequency table
type ValueCount struct {
	Value string
	Count int
	Pct   float64
}

type Bin struct {
	Low   float64
	High  float64
	Count int
}

type NumericStats struct {
	Min       float64
	Max       float64
	Mean      float64
	Std       float64
	Median    float64
	Q1        float64
	Q3        float64
	Sum       float64
	Zeros     int
	ZerosPct  float64
	Negatives int
	Histogram []Bin
}

type CategoricalStats struct {
	Top        []ValueCount
	MinLength  int
	MaxLength  int
	MeanLength float64
}

type DateTimeStats struct {
	Min time.Time
	Max time.Time
}

// Variable is the profile of a single column
type Variable struct {
	Name        string
	Type        VariableType
	Count       int
	Missing     int
	MissingPct  float64
	Distinct    int
	DistinctPct float64
	Unique      bool

	Numeric     *NumericStats
	Categorical *CategoricalStats
	DateTime    *DateTimeStats
}

// Alert flags a noteworthy property of a column
type Alert struct {
	Column string
	Kind   string
	Detail string
}

// Correlation is a Pearson matrix over the numeric columns. Undefined cells are NaN.
type Correlation struct {
	Columns []string
	Matrix  [][]float64
}

type Sample struct {
	Columns []string
	Rows    [][]string
}

// Report is the full descriptive summary of a dataset
type Report struct {
	Title        string
	Dataset      string
	GeneratedAt  time.Time
	Settings     Settings
	Overview     Overview
	Variables    []Variable
	Alerts       []Alert
	Sample       Sample
	Correlations *Correlation
}

// Describe profiles every column of ds
func Describe(ds *Dataset, settings Settings) *Report {
	if settings.SampleRows <= 0 {
		settings.SampleRows = defaultSampleRows
	}
	if settings.Title == "" {
		settings.Title = DefaultSettings(ds.Name).Title
	}

	report := &Report{
		Title:       settings.Title,
		Dataset:     ds.Name,
		GeneratedAt: time.Now().UTC(),
		Settings:    settings,
	}

	for i, name := range ds.Columns {
		v := describeColumn(name, ds.Column(i))
		report.Variables = append(report.Variables, v)
		report.Alerts = append(report.Alerts, alertsFor(v)...)
	}

	report.Overview = overview(ds, report.Variables)
	report.Sample = sample(ds, settings.SampleRows)
	if settings.Correlations {
		report.Correlations = correlate(ds, report.Variables)
	}
	return report
}

func overview(ds *Dataset, vars []Variable) Overview {
	o := Overview{
		Rows:    len(ds.Rows),
		Columns: len(ds.Columns),
		Cells:   len(ds.Rows) * len(ds.Columns),
	}

	counts := make(map[VariableType]int)
	for _, v := range vars {
		o.MissingCells += v.Missing
		counts[v.Type]++
	}
	for t, c := range counts {
		o.TypeCounts = append(o.TypeCounts, TypeCount{Type: t, Count: c})
	}
	sort.Slice(o.TypeCounts, func(i, j int) bool { return o.TypeCounts[i].Type < o.TypeCounts[j].Type })

	seen := make(map[string]struct{}, len(ds.Rows))
	for _, row := range ds.Rows {
		key := strings.Join(row, "\x1f")
		if _, dup := seen[key]; dup {
			o.DuplicateRows++
			continue
		}
		seen[key] = struct{}{}
	}

	o.MissingCellsPct = ratio(o.MissingCells, o.Cells)
	o.DuplicateRowsPct = ratio(o.DuplicateRows, o.Rows)
	return o
}

func describeColumn(name string, values []string) Variable {
	v := Variable{Name: name}

	present := make([]string, 0, len(values))
	for _, raw := range values {
		s := strings.TrimSpace(raw)
		if s == "" {
			v.Missing++
			continue
		}
		present = append(present, s)
	}
	v.Count = len(present)
	v.MissingPct = ratio(v.Missing, len(values))

	freq := frequencies(present)
	v.Distinct = len(freq)
	v.DistinctPct = ratio(v.Distinct, v.Count)
	v.Unique = v.Count > 0 && v.Distinct == v.Count

	if v.Count == 0 {
		v.Type = TypeUnsupported
		return v
	}

	if allBool(present) {
		v.Type = TypeBoolean
		v.Categorical = categorical(present, freq)
		return v
	}
	if nums, ok := parseNumbers(present); ok {
		v.Type = TypeNumeric
		v.Numeric = numeric(nums)
		return v
	}
	if times, ok := parseTimes(present); ok {
		v.Type = TypeDateTime
		v.DateTime = dateRange(times)
		return v
	}

	v.Type = TypeCategorical
	v.Categorical = categorical(present, freq)
	return v
}

func alertsFor(v Variable) []Alert {
	var alerts []Alert
	add := func(kind, detail string) {
		alerts = append(alerts, Alert{Column: v.Name, Kind: kind, Detail: detail})
	}

	if v.Type == TypeUnsupported {
		add("EMPTY", "all values are missing")
		return alerts
	}
	if v.Distinct == 1 {
		add("CONSTANT", "has a single distinct value")
	}
	if v.Unique && v.Count > 1 {
		add("UNIQUE", "every value is distinct")
	}
	if v.MissingPct > highMissingRatio {
		add("MISSING", formatPct(v.MissingPct)+" missing values")
	}
	if v.Numeric != nil && v.Numeric.ZerosPct > highZerosRatio {
		add("ZEROS", formatPct(v.Numeric.ZerosPct)+" zeros")
	}
	if v.Type == TypeCategorical && !v.Unique && v.Distinct > highCardinalityLimit {
		add("HIGH CARDINALITY", strconv.Itoa(v.Distinct)+" distinct values")
	}
	return alerts
}

func frequencies(values []string) map[string]int {
	freq := make(map[string]int)
	for _, s := range values {
		freq[s]++
	}
	return freq
}

func allBool(values []string) bool {
	for _, s := range values {
		switch strings.ToLower(s) {
		case "true", "false":
		default:
			return false
		}
	}
	return true
}

func parseNumber(s string) (float64, bool) {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}
	if thousandsPattern.MatchString(s) {
		if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func parseNumbers(values []string) ([]float64, bool) {
	out := make([]float64, 0, len(values))
	for _, s := range values {
		f, ok := parseNumber(s)
		if !ok || math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, false
		}
		out = append(out, f)
	}
	return out, true
}

func parseTimes(values []string) ([]time.Time, bool) {
	out := make([]time.Time, 0, len(values))
	for _, s := range values {
		t, ok := parseTime(s)
		if !ok {
			return nil, false
		}
		out = append(out, t)
	}
	return out, true
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func numeric(nums []float64) *NumericStats {
	sorted := append([]float64(nil), nums...)
	sort.Float64s(sorted)

	st := &NumericStats{
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Median: quantile(sorted, 0.5),
		Q1:     quantile(sorted, 0.25),
		Q3:     quantile(sorted, 0.75),
	}
	for _, f := range nums {
		st.Sum += f
		if f == 0 {
			st.Zeros++
		}
		if f < 0 {
			st.Negatives++
		}
	}
	st.Mean = stat.Mean(nums, nil)
	st.Std = stddev(nums)
	st.ZerosPct = ratio(st.Zeros, len(nums))
	st.Histogram = histogram(sorted)
	return st
}

// quantile interpolates linearly between closest ranks of a sorted slice.
// stat.LinInterp interpolates the empirical CDF, so q is shifted onto the rank scale.
func quantile(sorted []float64, q float64) float64 {
	n := float64(len(sorted))
	rank := q * (n - 1)
	if rank == math.Trunc(rank) {
		return sorted[int(rank)]
	}
	p := math.Min((rank+1)/n, 1)
	return stat.Quantile(p, stat.LinInterp, sorted, nil)
}

// stddev is the sample standard deviation; NaN for fewer than two values
func stddev(nums []float64) float64 {
	if len(nums) < 2 {
		return math.NaN()
	}
	return stat.StdDev(nums, nil)
}

// histogram splits [min, max] into equal-width bins. The step is taken from
// max/bins - min/bins so ranges wider than MaxFloat64 stay finite.
func histogram(sorted []float64) []Bin {
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		return []Bin{{Low: lo, High: hi, Count: len(sorted)}}
	}

	step := hi/histogramBins - lo/histogramBins
	dividers := make([]float64, histogramBins+1)
	for i := range dividers {
		dividers[i] = math.Min(lo+float64(i)*step, hi)
	}
	dividers[0] = lo
	// stat.Histogram bins are half-open, so the maximum needs room in the last one
	dividers[histogramBins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)
	bins := make([]Bin, histogramBins)
	for i := range bins {
		bins[i] = Bin{Low: dividers[i], High: dividers[i+1], Count: int(counts[i])}
	}
	bins[histogramBins-1].High = hi
	return bins
}

func categorical(values []string, freq map[string]int) *CategoricalStats {
	st := &CategoricalStats{MinLength: math.MaxInt}
	var total int
	for _, s := range values {
		n := len([]rune(s))
		st.MinLength = min(st.MinLength, n)
		st.MaxLength = max(st.MaxLength, n)
		total += n
	}
	st.MeanLength = float64(total) / float64(len(values))

	for value, count := range freq {
		st.Top = append(st.Top, ValueCount{Value: value, Count: count, Pct: ratio(count, len(values))})
	}
	sort.Slice(st.Top, func(i, j int) bool {
		if st.Top[i].Count != st.Top[j].Count {
			return st.Top[i].Count > st.Top[j].Count
		}
		return st.Top[i].Value < st.Top[j].Value
	})
	if len(st.Top) > topValues {
		st.Top = st.Top[:topValues]
	}
	return st
}

func dateRange(times []time.Time) *DateTimeStats {
	st := &DateTimeStats{Min: times[0], Max: times[0]}
	for _, t := range times[1:] {
		if t.Before(st.Min) {
			st.Min = t
		}
		if t.After(st.Max) {
			st.Max = t
		}
	}
	return st
}

func sample(ds *Dataset, n int) Sample {
	rows := ds.Rows
	if len(rows) > n {
		rows = rows[:n]
	}
	return Sample{Columns: ds.Columns, Rows: rows}
}

// correlate computes pairwise Pearson coefficients over rows where both columns are numeric
func correlate(ds *Dataset, vars []Variable) *Correlation {
	var idx []int
	c := &Correlation{}
	for i, v := range vars {
		if v.Type == TypeNumeric {
			idx = append(idx, i)
			c.Columns = append(c.Columns, v.Name)
		}
	}

	c.Matrix = make([][]float64, len(idx))
	for a := range idx {
		c.Matrix[a] = make([]float64, len(idx))
		for b := range idx {
			if a == b {
				c.Matrix[a][b] = 1
				continue
			}
			c.Matrix[a][b] = pearson(ds, idx[a], idx[b])
		}
	}
	return c
}

func pearson(ds *Dataset, x, y int) float64 {
	var xs, ys []float64
	for _, row := range ds.Rows {
		fx, okx := parseNumber(strings.TrimSpace(row[x]))
		fy, oky := parseNumber(strings.TrimSpace(row[y]))
		if okx && oky {
			xs = append(xs, fx)
			ys = append(ys, fy)
		}
	}
	if len(xs) < 2 || stat.Variance(xs, nil) == 0 || stat.Variance(ys, nil) == 0 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}

func ratio(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}
