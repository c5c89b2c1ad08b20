package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/sandevgo/finbot/internal/core"
	"github.com/sandevgo/finbot/internal/service/nlu"
	"github.com/sandevgo/finbot/pkg/log"
)

// Load reads a CSV whose header row names a year column, optionally a
// company column, and any number of metric columns. Metric headers are
// matched case-insensitively against the dictionary; unrecognized
// columns are skipped so new columns never break old deployments. A
// cell that fails numeric parsing is dropped from its record instead of
// failing the load.
func Load(ctx context.Context, path string, dict *nlu.Dictionary) (*Dataset, error) {
	logger := log.FromCtx(ctx)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", core.ErrDataLoad, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header of %s: %v", core.ErrDataLoad, path, err)
	}

	yearCol, companyCol := -1, -1
	metricCols := make(map[int]string)
	for i, h := range header {
		name := normalizeHeader(h)
		switch {
		case name == "year":
			yearCol = i
		case name == "company" || name == "entity":
			companyCol = i
		default:
			if canonical, ok := dict.ResolveColumn(name); ok {
				metricCols[i] = canonical
			} else {
				logger.Debug().Str("column", h).Msg("ignoring unrecognized column")
			}
		}
	}
	if yearCol < 0 {
		return nil, fmt.Errorf("%w: %s has no year column", core.ErrDataLoad, path)
	}
	if len(metricCols) == 0 {
		return nil, fmt.Errorf("%w: %s has no recognized metric columns", core.ErrDataLoad, path)
	}

	ds := &Dataset{
		index: make(map[key]float64),
		multi: companyCol >= 0,
	}
	metricSet := make(map[string]bool)
	companySet := make(map[string]bool)

	type rowKey struct {
		company string
		year    int
	}
	seen := make(map[rowKey]bool)

	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read %s line %d: %v", core.ErrDataLoad, path, line, err)
		}

		year, err := strconv.Atoi(strings.TrimSpace(row[yearCol]))
		if err != nil {
			logger.Warn().Int("line", line).Str("value", row[yearCol]).Msg("skipping row with unparsable year")
			continue
		}

		rec := Record{Year: year, Values: make(map[string]float64)}
		if companyCol >= 0 {
			rec.Company = strings.TrimSpace(row[companyCol])
			if rec.Company != "" {
				companySet[rec.Company] = true
			}
		}

		if seen[rowKey{company: rec.Company, year: year}] {
			logger.Warn().Int("line", line).Int("year", year).Str("company", rec.Company).Msg("duplicate (company, year) row, keeping first")
			continue
		}
		seen[rowKey{company: rec.Company, year: year}] = true

		for col, canonical := range metricCols {
			cell := strings.TrimSpace(row[col])
			v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
			if err != nil {
				logger.Debug().Int("line", line).Str("metric", canonical).Msg("cell unavailable")
				continue
			}
			rec.Values[canonical] = v
			ds.index[key{company: rec.Company, metric: canonical, year: year}] = v
			metricSet[canonical] = true
		}
		ds.records = append(ds.records, rec)
	}

	if len(ds.records) == 0 {
		return nil, fmt.Errorf("%w: %s has no data rows", core.ErrDataLoad, path)
	}

	for m := range metricSet {
		ds.metrics = append(ds.metrics, m)
	}
	sort.Strings(ds.metrics)
	for c := range companySet {
		ds.companies = append(ds.companies, c)
	}
	sort.Strings(ds.companies)

	logger.Info().
		Int("rows", len(ds.records)).
		Int("metrics", len(ds.metrics)).
		Int("companies", len(ds.companies)).
		Str("path", path).
		Msg("dataset loaded")
	return ds, nil
}

// normalizeHeader folds case, underscores and repeated spaces so
// "Total_Revenue " and "total revenue" resolve the same way.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, "_", " ")
	return strings.Join(strings.Fields(h), " ")
}
