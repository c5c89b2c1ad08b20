package dataset

import (
	"sort"

	"github.com/sandevgo/finbot/internal/core"
)

// Record is one row of the loaded table. Values holds only the cells
// that parsed; an unavailable cell is simply absent.
type Record struct {
	Company string
	Year    int
	Values  map[string]float64
}

type key struct {
	company string
	metric  string
	year    int
}

// Dataset is the immutable in-memory table plus a (company, metric,
// year) index built once at load. Safe for unsynchronized concurrent
// reads; there is no mutation path after Load returns.
type Dataset struct {
	records   []Record
	index     map[key]float64
	metrics   []string
	companies []string
	multi     bool
}

// Value looks up a single cell. company is ignored for single-entity
// datasets.
func (d *Dataset) Value(company, metric string, year int) (float64, bool) {
	if !d.multi {
		company = ""
	}
	v, ok := d.index[key{company: company, metric: metric, year: year}]
	return v, ok
}

// Series collects every available (year, value) pair for a metric,
// ascending by year. Years with no parsed value are omitted.
func (d *Dataset) Series(company, metric string) []core.Point {
	if !d.multi {
		company = ""
	}
	var points []core.Point
	for _, r := range d.records {
		if r.Company != company {
			continue
		}
		if v, ok := r.Values[metric]; ok {
			points = append(points, core.Point{Year: r.Year, Value: v})
		}
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })
	return points
}

// YearRange reports the span of years present for a company.
func (d *Dataset) YearRange(company string) (min, max int, ok bool) {
	if !d.multi {
		company = ""
	}
	for _, r := range d.records {
		if r.Company != company {
			continue
		}
		if !ok || r.Year < min {
			min = r.Year
		}
		if !ok || r.Year > max {
			max = r.Year
		}
		ok = true
	}
	return min, max, ok
}

// Metrics returns the canonical metric names present, sorted.
func (d *Dataset) Metrics() []string {
	return d.metrics
}

func (d *Dataset) HasMetric(metric string) bool {
	for _, m := range d.metrics {
		if m == metric {
			return true
		}
	}
	return false
}

// Companies returns the known company names, sorted. Empty for a
// single-entity dataset.
func (d *Dataset) Companies() []string {
	return d.companies
}

// MultiCompany reports whether the source file carried a company
// column, which switches company extraction and lookup scoping on.
func (d *Dataset) MultiCompany() bool {
	return d.multi
}

// HasCompany reports whether a company name is known to the dataset.
func (d *Dataset) HasCompany(company string) bool {
	for _, c := range d.companies {
		if c == company {
			return true
		}
	}
	return false
}
