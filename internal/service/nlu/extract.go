package nlu

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/sandevgo/finbot/internal/core"
)

// Years outside this window are treated as plain numbers, not years.
const (
	minYear = 1900
	maxYear = 2100
)

var (
	yearRe = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	// "for Apple", "for Berkshire Hathaway in 2023", ...
	companyRe = regexp.MustCompile(`(?i)\bfor\s+([a-z0-9 &._-]+)`)
)

// Words that end a company phrase captured after "for".
var companyStopwords = map[string]bool{
	"in": true, "between": true, "from": true, "during": true,
	"over": true, "vs": true, "versus": true, "and": true,
}

// Extractor scans raw message text for years, metric names and company
// names. It is stateless; follow-up context comes in as the previous
// turn's resolved entities.
type Extractor struct {
	dict           *Dictionary
	companies      []string
	companiesLower []string
}

// NewExtractor builds an extractor over the dictionary and the set of
// company names present in the dataset. An empty company list disables
// company extraction (single-entity dataset).
func NewExtractor(dict *Dictionary, companies []string) *Extractor {
	lower := make([]string, len(companies))
	for i, c := range companies {
		lower[i] = strings.ToLower(c)
	}
	return &Extractor{dict: dict, companies: companies, companiesLower: lower}
}

// Extract resolves the entities of one message. When the message is a
// partial follow-up ("and 2021?"), unset fields inherit from prev. A
// fully-specified message never consults prev, and a message with no
// recognizable tokens at all is not treated as a follow-up.
func (x *Extractor) Extract(message string, prev *core.Entities) core.Entities {
	lower := strings.ToLower(message)

	e := core.Entities{
		Years:   x.parseYears(message),
		Company: x.matchCompany(message, lower),
	}
	if canonical, ok := x.dict.Resolve(lower); ok {
		e.Metric = canonical
	}

	if prev == nil || e.Empty() {
		return e
	}
	if e.Metric == "" {
		e.Metric = prev.Metric
	}
	if len(e.Years) == 0 {
		e.Years = append(e.Years, prev.Years...)
	}
	if e.Company == "" {
		e.Company = prev.Company
	}
	return e
}

// parseYears keeps the first two plausible 4-digit years, in message
// order, so comparisons read left to right.
func (x *Extractor) parseYears(message string) []int {
	var years []int
	for _, tok := range yearRe.FindAllString(message, -1) {
		y, err := strconv.Atoi(tok)
		if err != nil || y < minYear || y > maxYear {
			continue
		}
		years = append(years, y)
		if len(years) == 2 {
			break
		}
	}
	return years
}

// matchCompany tries exact containment of a known company name first,
// then a fuzzy match on the phrase following "for".
func (x *Extractor) matchCompany(message, lower string) string {
	for i, c := range x.companiesLower {
		if strings.Contains(lower, c) {
			return x.companies[i]
		}
	}

	m := companyRe.FindStringSubmatch(message)
	if m == nil {
		return ""
	}
	candidate := companyPhrase(m[1])
	if candidate == "" {
		return ""
	}

	matches := fuzzy.Find(strings.ToLower(candidate), x.companiesLower)
	if len(matches) == 0 {
		return ""
	}
	return x.companies[matches[0].Index]
}

// companyPhrase trims a "for ..." capture down to the words that can
// name a company, stopping at the first year or connective.
func companyPhrase(capture string) string {
	var words []string
	for _, w := range strings.Fields(capture) {
		if companyStopwords[strings.ToLower(w)] || yearRe.MatchString(w) {
			break
		}
		words = append(words, w)
	}
	return strings.Join(words, " ")
}
