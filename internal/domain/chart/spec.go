package chart

// Spec is a plotly-compatible figure: the dashboard front end passes Data and
// Layout straight to the renderer.
type Spec struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
	NoData bool    `json:"no_data,omitempty"`
}

type Trace struct {
	Type          string   `json:"type"`
	Name          string   `json:"name"`
	Mode          string   `json:"mode,omitempty"`
	X             []string `json:"x"`
	Y             []int    `json:"y"`
	ShowLegend    bool     `json:"showlegend"`
	HoverTemplate string   `json:"hovertemplate,omitempty"`
	Marker        Marker   `json:"marker"`
}

type Marker struct {
	Color string `json:"color"`
}

type Layout struct {
	XAxis       Axis         `json:"xaxis"`
	YAxis       Axis         `json:"yaxis"`
	Legend      Legend       `json:"legend"`
	Font        Font         `json:"font"`
	BarMode     string       `json:"barmode,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

type Axis struct {
	Title         Title    `json:"title"`
	ShowGrid      bool     `json:"showgrid,omitempty"`
	TickLabelMode string   `json:"ticklabelmode,omitempty"`
	DTick         any      `json:"dtick,omitempty"`
	Range         []string `json:"range,omitempty"`
	Visible       *bool    `json:"visible,omitempty"`
}

type Title struct {
	Text string `json:"text,omitempty"`
}

type Legend struct {
	Title Title `json:"title"`
}

type Font struct {
	Size int `json:"size"`
}

type Annotation struct {
	Text      string `json:"text"`
	XRef      string `json:"xref"`
	YRef      string `json:"yref"`
	ShowArrow bool   `json:"showarrow"`
	Font      Font   `json:"font"`
}

// Palette is the colour sequence shared by the overview widgets.
var Palette = []string{
	"#B5B682",
	"#c0bc5d",
	"#6C8975",
	"#D9AE8E",
	"#FFBF00",
	"#D8D78F",
}
