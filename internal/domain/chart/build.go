package chart

import (
	"time"

	"prdashboard/internal/domain/assignment"
)

const (
	SeriesAssigned   = "Assigned"
	SeriesUnassigned = "Unassigned"

	noDataText = "No data available"
)

// Build renders buckets as a line chart for daily granularity and as a grouped
// bar chart otherwise. An empty bucket slice yields NoData.
func Build(buckets []assignment.Bucket, g assignment.Granularity, now time.Time) Spec {
	if len(buckets) == 0 {
		return NoData()
	}

	x := make([]string, 0, len(buckets))
	assigned := make([]int, 0, len(buckets))
	unassigned := make([]int, 0, len(buckets))
	for _, b := range buckets {
		x = append(x, label(b.Start, g))
		assigned = append(assigned, b.Assigned)
		unassigned = append(unassigned, b.Unassigned)
	}

	spec := Spec{Layout: baseLayout()}

	if g == assignment.Day {
		spec.Data = []Trace{
			{
				Type:          "scatter",
				Name:          SeriesAssigned,
				Mode:          "lines",
				X:             x,
				Y:             assigned,
				ShowLegend:    true,
				HoverTemplate: "PRs Assigned: %{y}<br>%{x|%b %d, %Y} <extra></extra>",
				Marker:        Marker{Color: Palette[0]},
			},
			{
				Type:          "scatter",
				Name:          SeriesUnassigned,
				Mode:          "lines",
				X:             x,
				Y:             unassigned,
				ShowLegend:    true,
				HoverTemplate: "PRs Unassigned: %{y}<br>%{x|%b %d, %Y}<extra></extra>",
				Marker:        Marker{Color: Palette[3]},
			},
		}
		return spec
	}

	tv := GraphTimeValues(g, now)
	hover := tv.Hover + "<br>PRs: %{y}<br><extra></extra>"
	spec.Data = []Trace{
		{Type: "bar", Name: SeriesAssigned, X: x, Y: assigned, ShowLegend: true, HoverTemplate: hover, Marker: Marker{Color: Palette[0]}},
		{Type: "bar", Name: SeriesUnassigned, X: x, Y: unassigned, ShowLegend: true, HoverTemplate: hover, Marker: Marker{Color: Palette[3]}},
	}
	spec.Layout.BarMode = "group"
	spec.Layout.XAxis.ShowGrid = true
	spec.Layout.XAxis.TickLabelMode = "period"
	spec.Layout.XAxis.DTick = tv.Period
	spec.Layout.XAxis.Range = tv.Range
	return spec
}

// NoData is the placeholder figure rendered instead of an empty plot.
func NoData() Spec {
	hidden := false
	return Spec{
		Data: []Trace{},
		Layout: Layout{
			XAxis: Axis{Visible: &hidden},
			YAxis: Axis{Visible: &hidden},
			Font:  Font{Size: 14},
			Annotations: []Annotation{{
				Text:      noDataText,
				XRef:      "paper",
				YRef:      "paper",
				ShowArrow: false,
				Font:      Font{Size: 28},
			}},
		},
		NoData: true,
	}
}

func baseLayout() Layout {
	return Layout{
		XAxis:  Axis{Title: Title{Text: "Time"}},
		YAxis:  Axis{Title: Title{Text: "Pull Requests"}},
		Legend: Legend{Title: Title{Text: "Types"}},
		Font:   Font{Size: 14},
	}
}

func label(start time.Time, g assignment.Granularity) string {
	switch g {
	case assignment.Month:
		return start.Format("2006-01")
	case assignment.Year:
		return start.Format("2006")
	}
	return start.Format(time.DateOnly)
}
