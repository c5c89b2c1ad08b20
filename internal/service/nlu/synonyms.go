package nlu

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// MetricEntry maps a canonical metric name to the aliases that resolve
// to it, in both user messages and dataset column headers.
type MetricEntry struct {
	Canonical string   `yaml:"canonical"`
	Aliases   []string `yaml:"aliases"`
}

// Dictionary is an ordered alias table. Order matters: when a message
// mentions several metrics, the first entry whose alias appears wins.
type Dictionary struct {
	entries []MetricEntry
}

// DefaultDictionary covers the metrics of a typical financial statement
// CSV (Total Revenue, Net Income, Total Assets, ...). Longer aliases
// come first within an entry so column headers resolve before their
// substrings.
func DefaultDictionary() *Dictionary {
	return &Dictionary{entries: []MetricEntry{
		{Canonical: "revenue", Aliases: []string{"total revenue", "revenue", "sales", "turnover"}},
		{Canonical: "profit", Aliases: []string{"net income", "profit", "earnings", "income"}},
		{Canonical: "assets", Aliases: []string{"total assets", "assets"}},
		{Canonical: "liabilities", Aliases: []string{"total liabilities", "liabilities", "debt"}},
		{Canonical: "operating cash flow", Aliases: []string{"cash flow from operating activities", "operating cash flow", "cash flow"}},
	}}
}

// LoadDictionary reads a YAML override file:
//
//	metrics:
//	  - canonical: revenue
//	    aliases: ["total revenue", "sales"]
func LoadDictionary(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read synonyms file: %w", err)
	}

	var file struct {
		Metrics []MetricEntry `yaml:"metrics"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse synonyms file: %w", err)
	}
	if len(file.Metrics) == 0 {
		return nil, fmt.Errorf("synonyms file %s defines no metrics", path)
	}
	return &Dictionary{entries: file.Metrics}, nil
}

// Resolve finds the canonical metric mentioned in a message. The text
// must already be lowercased. First entry with a matching alias wins;
// ok is false when nothing matches.
func (d *Dictionary) Resolve(lower string) (string, bool) {
	for _, e := range d.entries {
		for _, alias := range e.Aliases {
			if strings.Contains(lower, alias) {
				return e.Canonical, true
			}
		}
		if strings.Contains(lower, e.Canonical) {
			return e.Canonical, true
		}
	}
	return "", false
}

// ResolveColumn maps a normalized dataset column header to its
// canonical metric. Unlike Resolve this requires an exact match, so an
// unrecognized column never piggybacks on a substring.
func (d *Dictionary) ResolveColumn(header string) (string, bool) {
	for _, e := range d.entries {
		if header == e.Canonical {
			return e.Canonical, true
		}
		for _, alias := range e.Aliases {
			if header == alias {
				return e.Canonical, true
			}
		}
	}
	return "", false
}

// Canonical returns the canonical names in dictionary order.
func (d *Dictionary) Canonical() []string {
	out := make([]string, 0, len(d.entries))
	for _, e := range d.entries {
		out = append(out, e.Canonical)
	}
	return out
}
