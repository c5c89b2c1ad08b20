package chatbot

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/sandevgo/finbot/internal/core"
)

const greetingReply = "Hello! Ask me about the financials, e.g. 'revenue for Apple in 2023', " +
	"'compare profit 2022 vs 2023' or 'show the revenue trend'."

// formatResult maps every result variant to its fixed reply template.
// Deterministic on purpose: the same result always reads the same way.
func formatResult(res core.Result) string {
	switch res.Kind {
	case core.ResultGreeting:
		return greetingReply

	case core.ResultScalar:
		return fmt.Sprintf("%s in %d was %s.",
			subject(res.Company, res.Metric), res.Year, money(res.Value))

	case core.ResultComparison:
		return formatComparison(res)

	case core.ResultSeries:
		if len(res.Points) < 2 {
			return fmt.Sprintf("I only have a single year of %s data%s (%d), not enough to chart a trend.",
				res.Metric, companyHint(res.Company), res.Points[0].Year)
		}
		return fmt.Sprintf("Here's the %s trend%s, %d to %d.",
			res.Metric, companyHint(res.Company),
			res.Points[0].Year, res.Points[len(res.Points)-1].Year)

	case core.ResultMetricList:
		return fmt.Sprintf("I can tell you about: %s. Ask e.g. 'revenue in 2023'.",
			strings.Join(res.Metrics, ", "))

	default:
		return "Sorry, " + res.Reason + "."
	}
}

func formatComparison(res core.Result) string {
	c := res.Compare
	direction := "went from"
	switch {
	case c.Delta > 0:
		direction = "increased from"
	case c.Delta < 0:
		direction = "decreased from"
	}

	pct := "n/a"
	if c.PercentDefined {
		pct = fmt.Sprintf("%+.2f%%", c.Percent)
	}

	return fmt.Sprintf("%s %s %s in %d to %s in %d, a change of %s (%s).",
		subject(res.Company, res.Metric), direction,
		money(c.ValueA), c.YearA, money(c.ValueB), c.YearB,
		money(c.Delta), pct)
}

// subject is "Apple's revenue" or just "Revenue" for a single-entity
// dataset.
func subject(company, metric string) string {
	if company != "" {
		return fmt.Sprintf("%s's %s", company, metric)
	}
	return strings.ToUpper(metric[:1]) + metric[1:]
}

// money renders a dollar amount with thousands separators, keeping the
// sign in front of the currency symbol.
func money(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
	}
	return sign + "$" + humanize.Commaf(math.Abs(v))
}
