package chatbot

import (
	"fmt"
	"strings"

	"github.com/sandevgo/finbot/internal/core"
	"github.com/sandevgo/finbot/internal/providers/dataset"
)

// execute runs one intent against the dataset. Pure computation: no
// state, no side effects; recoverable problems come back as the Error
// variant, never as a Go error.
func execute(ds *dataset.Dataset, intent core.Intent, e core.Entities) core.Result {
	switch intent {
	case core.IntentGreeting:
		return core.Result{Kind: core.ResultGreeting}
	case core.IntentListMetrics:
		return core.Result{Kind: core.ResultMetricList, Metrics: ds.Metrics()}
	case core.IntentLookupValue:
		return executeLookup(ds, e)
	case core.IntentCompareYears:
		return executeCompare(ds, e)
	case core.IntentTrendOverTime:
		return executeTrend(ds, e)
	default:
		return core.Result{Kind: core.ResultError, Reason: clarify(e)}
	}
}

func executeLookup(ds *dataset.Dataset, e core.Entities) core.Result {
	company, res := resolveCompany(ds, e)
	if res != nil {
		return *res
	}
	year, ok := e.Year()
	if !ok {
		return errorResult("which year should I look up %s for?", e.Metric)
	}
	if !ds.HasMetric(e.Metric) {
		return errorResult("I have no %s data in this dataset", e.Metric)
	}
	v, ok := ds.Value(company, e.Metric, year)
	if !ok {
		return errorResult("no data for %s in %d%s", e.Metric, year, yearHint(ds, company))
	}
	return core.Result{
		Kind:    core.ResultScalar,
		Metric:  e.Metric,
		Company: company,
		Year:    year,
		Value:   v,
	}
}

func executeCompare(ds *dataset.Dataset, e core.Entities) core.Result {
	company, res := resolveCompany(ds, e)
	if res != nil {
		return *res
	}
	yearA, yearB, ok := e.YearPair()
	if !ok {
		return errorResult("I need two years to compare %s", e.Metric)
	}
	if !ds.HasMetric(e.Metric) {
		return errorResult("I have no %s data in this dataset", e.Metric)
	}
	valueA, okA := ds.Value(company, e.Metric, yearA)
	valueB, okB := ds.Value(company, e.Metric, yearB)
	if !okA {
		return errorResult("no data for %s in %d%s", e.Metric, yearA, yearHint(ds, company))
	}
	if !okB {
		return errorResult("no data for %s in %d%s", e.Metric, yearB, yearHint(ds, company))
	}

	cmp := &core.Comparison{
		YearA:  yearA,
		YearB:  yearB,
		ValueA: valueA,
		ValueB: valueB,
		Delta:  valueB - valueA,
	}
	if valueA != 0 {
		cmp.Percent = cmp.Delta / valueA * 100
		cmp.PercentDefined = true
	}
	return core.Result{
		Kind:    core.ResultComparison,
		Metric:  e.Metric,
		Company: company,
		Compare: cmp,
	}
}

func executeTrend(ds *dataset.Dataset, e core.Entities) core.Result {
	company, res := resolveCompany(ds, e)
	if res != nil {
		return *res
	}
	if !ds.HasMetric(e.Metric) {
		return errorResult("I have no %s data in this dataset", e.Metric)
	}
	points := ds.Series(company, e.Metric)
	if len(points) == 0 {
		return errorResult("no %s data to chart%s", e.Metric, companyHint(company))
	}
	return core.Result{
		Kind:    core.ResultSeries,
		Metric:  e.Metric,
		Company: company,
		Points:  points,
	}
}

// resolveCompany scopes a query to a company. For a multi-company
// dataset a company is required; for a single-entity dataset the field
// is ignored entirely.
func resolveCompany(ds *dataset.Dataset, e core.Entities) (string, *core.Result) {
	if !ds.MultiCompany() {
		return "", nil
	}
	if e.Company == "" {
		res := errorResult("which company do you mean? I know: %s", strings.Join(ds.Companies(), ", "))
		return "", &res
	}
	if !ds.HasCompany(e.Company) {
		res := errorResult("I have no data for %s; I know: %s", e.Company, strings.Join(ds.Companies(), ", "))
		return "", &res
	}
	return e.Company, nil
}

// clarify names exactly what the Unknown path is missing so the user
// knows how to rephrase.
func clarify(e core.Entities) string {
	var missing []string
	if e.Metric == "" {
		missing = append(missing, "a metric (revenue, profit, ...)")
	}
	if len(e.Years) == 0 {
		missing = append(missing, "a year")
	}
	if len(missing) == 0 {
		return "I didn't understand that. Try something like 'revenue in 2023' or 'compare profit 2022 vs 2023'."
	}
	return fmt.Sprintf("I didn't catch %s. Try something like 'revenue in 2023'.", strings.Join(missing, " and "))
}

func yearHint(ds *dataset.Dataset, company string) string {
	min, max, ok := ds.YearRange(company)
	if !ok {
		return ""
	}
	return fmt.Sprintf(" (I have %d to %d)", min, max)
}

func companyHint(company string) string {
	if company == "" {
		return ""
	}
	return " for " + company
}

func errorResult(format string, args ...any) core.Result {
	return core.Result{Kind: core.ResultError, Reason: fmt.Sprintf(format, args...)}
}
