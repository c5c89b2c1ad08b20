package nlu

import (
	"reflect"
	"testing"

	"github.com/sandevgo/finbot/internal/core"
)

func TestParseYears(t *testing.T) {
	x := NewExtractor(DefaultDictionary(), nil)

	tests := []struct {
		name     string
		message  string
		expected []int
	}{
		{
			name:     "single year",
			message:  "what was revenue in 2022?",
			expected: []int{2022},
		},
		{
			name:     "two years in message order",
			message:  "compare profit 2023 vs 2020",
			expected: []int{2023, 2020},
		},
		{
			name:     "more than two years keeps first two",
			message:  "2020 2021 2022",
			expected: []int{2020, 2021},
		},
		{
			name:     "four digit numbers outside the window are not years",
			message:  "order 1850 cost 2150 units",
			expected: nil,
		},
		{
			name:     "years embedded in longer numbers are ignored",
			message:  "invoice 120226",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := x.parseYears(tt.message)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("parseYears(%q) = %v, want %v", tt.message, got, tt.expected)
			}
		})
	}
}

func TestExtractMetric(t *testing.T) {
	x := NewExtractor(DefaultDictionary(), nil)

	tests := []struct {
		message string
		metric  string
	}{
		{"what was revenue in 2022?", "revenue"},
		{"show me the earnings", "profit"},
		{"net income change", "profit"},
		{"how big were total assets", "assets"},
		{"SALES in 2021", "revenue"},
		{"how is the weather", ""},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			e := x.Extract(tt.message, nil)
			if e.Metric != tt.metric {
				t.Errorf("metric = %q, want %q", e.Metric, tt.metric)
			}
		})
	}
}

func TestExtractCompany(t *testing.T) {
	companies := []string{"Apple", "Microsoft", "Tesla"}
	x := NewExtractor(DefaultDictionary(), companies)

	tests := []struct {
		name    string
		message string
		company string
	}{
		{
			name:    "exact name, any case",
			message: "revenue for apple in 2023",
			company: "Apple",
		},
		{
			name:    "fuzzy after for",
			message: "total revenue for Microsft in 2023",
			company: "Microsoft",
		},
		{
			name:    "fuzzy capture stops at year",
			message: "profit for Tesl 2022",
			company: "Tesla",
		},
		{
			name:    "no company mentioned",
			message: "revenue in 2023",
			company: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := x.Extract(tt.message, nil)
			if e.Company != tt.company {
				t.Errorf("company = %q, want %q", e.Company, tt.company)
			}
		})
	}
}

func TestExtractFollowUp(t *testing.T) {
	x := NewExtractor(DefaultDictionary(), []string{"Apple"})
	prev := &core.Entities{Metric: "revenue", Company: "Apple", Years: []int{2020}}

	tests := []struct {
		name     string
		message  string
		prev     *core.Entities
		expected core.Entities
	}{
		{
			name:     "partial message inherits metric and company",
			message:  "and 2021?",
			prev:     prev,
			expected: core.Entities{Metric: "revenue", Company: "Apple", Years: []int{2021}},
		},
		{
			name:     "partial message inherits year",
			message:  "what about profit?",
			prev:     prev,
			expected: core.Entities{Metric: "profit", Company: "Apple", Years: []int{2020}},
		},
		{
			name:     "fully specified message keeps its own entities",
			message:  "profit for apple in 2021",
			prev:     prev,
			expected: core.Entities{Metric: "profit", Company: "Apple", Years: []int{2021}},
		},
		{
			name:     "no recognizable tokens is not a follow-up",
			message:  "thanks a lot",
			prev:     prev,
			expected: core.Entities{},
		},
		{
			name:     "no previous turn",
			message:  "and 2021?",
			prev:     nil,
			expected: core.Entities{Years: []int{2021}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := x.Extract(tt.message, tt.prev)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Extract(%q) = %+v, want %+v", tt.message, got, tt.expected)
			}
		})
	}
}

func TestExtractIdempotent(t *testing.T) {
	x := NewExtractor(DefaultDictionary(), []string{"Apple"})
	msg := "revenue for Apple in 2020"

	first := x.Extract(msg, nil)
	second := x.Extract(msg, &first)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-asking a fully-specified question changed entities: %+v vs %+v", first, second)
	}
}
