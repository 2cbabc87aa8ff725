package timeline

import (
	"math"
	"time"

	"github.com/riskibarqy/team-growth/internal/domain/growth"
)

// Series keys, in render order.
const (
	SeriesShooting  = "shooting"
	SeriesPassing   = "passing"
	SeriesDribbling = "dribbling"
	SeriesDefense   = "defense"
	SeriesPhysical  = "physical"
	SeriesOverall   = "overall_rating"
)

const (
	DefaultHeight         = 200.0
	DefaultPadding        = 20.0
	DefaultMinSpacing     = 40.0
	DefaultAvailableWidth = 300.0

	scaleMargin   = 5.0
	minScaleRange = 10.0
)

// UnsetPadding asks for DefaultPadding. Zero is a valid padding.
const UnsetPadding = -1.0

type Options struct {
	Height         float64
	Padding        float64
	MinSpacing     float64
	AvailableWidth float64
}

func DefaultOptions() Options {
	return Options{
		Height:         DefaultHeight,
		Padding:        DefaultPadding,
		MinSpacing:     DefaultMinSpacing,
		AvailableWidth: DefaultAvailableWidth,
	}
}

func (o Options) normalize() Options {
	d := DefaultOptions()
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.Padding < 0 {
		o.Padding = d.Padding
	}
	if o.MinSpacing <= 0 {
		o.MinSpacing = d.MinSpacing
	}
	if o.AvailableWidth <= 0 {
		o.AvailableWidth = d.AvailableWidth
	}
	return o
}

type Point struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Value   float64 `json:"value"`
	MatchID string  `json:"match_id"`
}

type Series struct {
	Key    string  `json:"key"`
	Points []Point `json:"points"`
}

// Label marks the first snapshot of a calendar month on the x axis.
type Label struct {
	Month time.Month `json:"month"`
	Year  int        `json:"year"`
	Label string     `json:"label"`
	X     float64    `json:"x"`
}

// Chart is render-ready: every coordinate is already in pixels.
type Chart struct {
	Series   []Series `json:"series"`
	Timeline []Label  `json:"timeline"`
	MinValue float64  `json:"min_value"`
	MaxValue float64  `json:"max_value"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
}

func (c Chart) Empty() bool {
	return len(c.Timeline) == 0
}

type seriesDef struct {
	key   string
	value func(growth.Attributes) float64
}

var seriesDefs = []seriesDef{
	{SeriesShooting, func(a growth.Attributes) float64 { return a.Shooting }},
	{SeriesPassing, func(a growth.Attributes) float64 { return a.Passing }},
	{SeriesDribbling, func(a growth.Attributes) float64 { return a.Dribbling }},
	{SeriesDefense, func(a growth.Attributes) float64 { return a.Defense }},
	{SeriesPhysical, func(a growth.Attributes) float64 { return a.Physical }},
	{SeriesOverall, func(a growth.Attributes) float64 { return a.OverallRating }},
}

// SeriesKeys lists the projected series in render order.
func SeriesKeys() []string {
	out := make([]string, 0, len(seriesDefs))
	for _, def := range seriesDefs {
		out = append(out, def.key)
	}
	return out
}

// Project maps chronologically ordered snapshots onto a shared vertical
// scale. Points are spaced by index, not by date. An empty input yields
// six empty series and no labels.
func Project(snapshots []growth.Snapshot, opts Options) Chart {
	opts = opts.normalize()

	chart := Chart{
		Series:   make([]Series, 0, len(seriesDefs)),
		Timeline: []Label{},
		Height:   opts.Height,
	}
	if len(snapshots) == 0 {
		for _, def := range seriesDefs {
			chart.Series = append(chart.Series, Series{Key: def.key, Points: []Point{}})
		}
		return chart
	}

	minValue, maxValue := valueRange(snapshots)
	if maxValue-minValue <= 0 {
		maxValue = minValue + minScaleRange
	}
	chart.MinValue = minValue
	chart.MaxValue = maxValue

	spacing := pointSpacing(len(snapshots), opts)
	xAt := func(i int) float64 { return float64(i)*spacing + opts.Padding }
	scaleY := func(v float64) float64 {
		return opts.Height - ((v-minValue)/(maxValue-minValue))*(opts.Height-2*opts.Padding) - opts.Padding
	}

	for _, def := range seriesDefs {
		points := make([]Point, 0, len(snapshots))
		for i, snap := range snapshots {
			v := def.value(snap.Attributes)
			points = append(points, Point{X: xAt(i), Y: scaleY(v), Value: v, MatchID: snap.MatchID})
		}
		chart.Series = append(chart.Series, Series{Key: def.key, Points: points})
	}

	type monthKey struct {
		year  int
		month time.Month
	}
	seen := make(map[monthKey]struct{})
	for i, snap := range snapshots {
		key := monthKey{year: snap.MatchDate.Year(), month: snap.MatchDate.Month()}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		chart.Timeline = append(chart.Timeline, Label{
			Month: key.month,
			Year:  key.year,
			Label: snap.MatchDate.Format("Jan 2006"),
			X:     xAt(i),
		})
	}

	chart.Width = xAt(len(snapshots)-1) + opts.Padding
	return chart
}

func valueRange(snapshots []growth.Snapshot) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, snap := range snapshots {
		for _, def := range seriesDefs {
			v := def.value(snap.Attributes)
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return math.Max(0, lo-scaleMargin), math.Min(100, hi+scaleMargin)
}

func pointSpacing(n int, opts Options) float64 {
	return math.Max(opts.MinSpacing, opts.AvailableWidth/float64(max(1, n-1)))
}
