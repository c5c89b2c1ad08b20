package core

const (
	AppName    = "FinBot"
	AppVersion = "0.1.0"
)

// Intent is the closed set of question classes the engine answers.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentGreeting
	IntentLookupValue
	IntentCompareYears
	IntentTrendOverTime
	IntentListMetrics
)

func (i Intent) String() string {
	switch i {
	case IntentGreeting:
		return "greeting"
	case IntentLookupValue:
		return "lookup-value"
	case IntentCompareYears:
		return "compare-years"
	case IntentTrendOverTime:
		return "trend-over-time"
	case IntentListMetrics:
		return "list-metrics"
	default:
		return "unknown"
	}
}

// Entities holds whatever the extractor recognized in a message.
// Every field is optional; Years keeps message order and holds at most two.
type Entities struct {
	Metric  string `json:"metric,omitempty"`
	Company string `json:"company,omitempty"`
	Years   []int  `json:"years,omitempty"`
}

func (e Entities) Year() (int, bool) {
	if len(e.Years) == 0 {
		return 0, false
	}
	return e.Years[0], true
}

func (e Entities) YearPair() (int, int, bool) {
	if len(e.Years) < 2 {
		return 0, 0, false
	}
	return e.Years[0], e.Years[1], true
}

// Empty reports whether nothing at all was recognized.
func (e Entities) Empty() bool {
	return e.Metric == "" && e.Company == "" && len(e.Years) == 0
}

// ResultKind tags the variants of Result.
type ResultKind int

const (
	ResultError ResultKind = iota
	ResultScalar
	ResultComparison
	ResultSeries
	ResultMetricList
	ResultGreeting
)

// Point is one (year, value) observation of a metric.
type Point struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// Comparison holds a metric compared across two years.
// Percent is delta relative to ValueA, in percent; PercentDefined is
// false when ValueA is zero.
type Comparison struct {
	YearA          int
	YearB          int
	ValueA         float64
	ValueB         float64
	Delta          float64
	Percent        float64
	PercentDefined bool
}

// Result is the outcome of executing one intent against the dataset.
// Only the fields relevant to Kind are populated.
type Result struct {
	Kind    ResultKind
	Metric  string
	Company string
	Year    int
	Value   float64
	Points  []Point
	Compare *Comparison
	Metrics []string
	Reason  string
}

// Turn is one completed exchange, as stored in session history.
// Entities are the resolved ones, after follow-up inheritance, so the
// next turn can inherit from them in its own right.
type Turn struct {
	Message  string
	Intent   Intent
	Entities Entities
	Reply    string
}

// Reply is what a transport hands back to its caller.
type Reply struct {
	SessionID string `json:"session_id"`
	Text      string `json:"reply"`
	Image     string `json:"image,omitempty"`
}
