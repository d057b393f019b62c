// Package render turns dataset views into render-ready artifacts.
// Artifacts are data only; layout, colors, and styling belong to the
// frontend and are out of scope here.
package render

import (
	"github.com/gjrich/cintel-04-local/internal/domain"
)

// View is the input pushed to every renderer on each recomputation:
// the full dataset, the current filtered dataset, and the selection
// and display snapshots they were derived from.
type View struct {
	Full      domain.Dataset
	Filtered  domain.Dataset
	Selection domain.Selection
	Display   domain.Display
}

// Renderer produces one named artifact from a view.
type Renderer interface {
	Name() string
	Render(view View) Artifact
}

// Artifact is a single render-ready output. Exactly one of the typed
// fields is populated based on Kind.
type Artifact struct {
	Kind      string     `json:"kind"` // "table", "histogram", "scatter"
	Table     *TableData `json:"table,omitempty"`
	Histogram *Histogram `json:"histogram,omitempty"`
	Scatter   *Scatter   `json:"scatter,omitempty"`
}

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Total   int        `json:"total"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "right"
}

// Histogram is a binned distribution of one attribute.
type Histogram struct {
	Title     string `json:"title"`
	Attribute string `json:"attribute"`
	XAxis     string `json:"xAxis"`
	YAxis     string `json:"yAxis"`
	Bins      []Bin  `json:"bins"`
	Total     int    `json:"total"` // records with a non-null value
}

// Bin is one histogram bucket. Min is inclusive; Max is exclusive
// except for the final bin, which includes the maximum value.
type Bin struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// Scatter is a two-attribute scatterplot grouped into series.
type Scatter struct {
	Title  string          `json:"title"`
	XAxis  string          `json:"xAxis"`
	YAxis  string          `json:"yAxis"`
	Series []ScatterSeries `json:"series"`
}

// ScatterSeries groups points sharing an island and species, matching
// the source dashboard's color/symbol encoding.
type ScatterSeries struct {
	Island  string         `json:"island"`
	Species string         `json:"species"`
	Points  []ScatterPoint `json:"points"`
}

// ScatterPoint is a single observation.
type ScatterPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LabelForAttribute returns the display label for a measurement name.
func LabelForAttribute(name string) string {
	switch name {
	case domain.AttrBillLength:
		return "Bill Length (mm)"
	case domain.AttrBillDepth:
		return "Bill Depth (mm)"
	case domain.AttrFlipperLength:
		return "Flipper Length (mm)"
	case domain.AttrBodyMass:
		return "Mass (g)"
	default:
		return name
	}
}
