package plot

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/sandevgo/finbot/internal/core"
	"github.com/sandevgo/finbot/pkg/log"
)

// PublicPrefix is the URL prefix under which the HTTP transport serves
// rendered charts. The renderer returns references below it.
const PublicPrefix = "/static/plots"

// Renderer writes line-chart PNGs of a metric's year series. The
// engine calls it only for series of two or more points.
type Renderer struct {
	dir string
}

// NewRenderer ensures the target directory exists.
func NewRenderer(dir string) (*Renderer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create plots directory: %w", err)
	}
	return &Renderer{dir: dir}, nil
}

// RenderSeries renders x = year, y = value and returns the public
// reference path of the written file.
func (r *Renderer) RenderSeries(ctx context.Context, company, metric string, points []core.Point) (string, error) {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	ticks := make([]chart.Tick, len(points))
	for i, p := range points {
		xs[i] = float64(p.Year)
		ys[i] = p.Value
		ticks[i] = chart.Tick{Value: float64(p.Year), Label: strconv.Itoa(p.Year)}
	}

	graph := chart.Chart{
		Title:  chartTitle(company, metric),
		Width:  720,
		Height: 360,
		XAxis: chart.XAxis{
			Ticks: ticks,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
					DotColor:    chart.ColorBlue,
					DotWidth:    3,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}

	name := fmt.Sprintf("%s_%d.png", slug(company, metric), time.Now().UTC().Unix())
	full := filepath.Join(r.dir, name)

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("%w: create %s: %v", core.ErrPlotRender, full, err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		// Don't leave a truncated image behind
		os.Remove(full)
		return "", fmt.Errorf("%w: %v", core.ErrPlotRender, err)
	}

	log.FromCtx(ctx).Debug().Str("file", full).Msg("chart rendered")
	return path.Join(PublicPrefix, name), nil
}

func chartTitle(company, metric string) string {
	words := strings.Fields(metric)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	title := strings.Join(words, " ") + " Trend"
	if company != "" {
		title = company + " " + title
	}
	return title
}

func slug(parts ...string) string {
	var words []string
	for _, p := range parts {
		if p == "" {
			continue
		}
		words = append(words, strings.Fields(strings.ToLower(p))...)
	}
	if len(words) == 0 {
		words = []string{"chart"}
	}
	return strings.Join(words, "_")
}
