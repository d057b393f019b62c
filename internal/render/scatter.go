package render

import (
	"sort"

	"github.com/gjrich/cintel-04-local/internal/domain"
)

// ScatterRenderer plots bill length against bill depth for the
// filtered dataset, one series per island/species pair to match the
// source dashboard's color and symbol encoding.
type ScatterRenderer struct {
	name  string
	title string
}

// NewScatterRenderer builds the bill-dimensions scatter renderer.
func NewScatterRenderer(name, title string) *ScatterRenderer {
	return &ScatterRenderer{name: name, title: title}
}

func (r *ScatterRenderer) Name() string { return r.name }

func (r *ScatterRenderer) Render(view View) Artifact {
	return Artifact{Kind: "scatter", Scatter: BuildScatter(r.title, view.Filtered)}
}

// BuildScatter produces the scatter artifact. Records missing either
// coordinate are omitted.
func BuildScatter(title string, dataset domain.Dataset) *Scatter {
	type seriesKey struct {
		island  domain.Island
		species domain.Species
	}

	grouped := make(map[seriesKey][]ScatterPoint)
	for _, record := range dataset.Records() {
		if record.BillLengthMM == nil || record.BillDepthMM == nil {
			continue
		}
		key := seriesKey{island: record.Island, species: record.Species}
		grouped[key] = append(grouped[key], ScatterPoint{
			X: *record.BillLengthMM,
			Y: *record.BillDepthMM,
		})
	}

	keys := make([]seriesKey, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].island != keys[j].island {
			return keys[i].island < keys[j].island
		}
		return keys[i].species < keys[j].species
	})

	series := make([]ScatterSeries, 0, len(keys))
	for _, key := range keys {
		series = append(series, ScatterSeries{
			Island:  string(key.island),
			Species: string(key.species),
			Points:  grouped[key],
		})
	}

	return &Scatter{
		Title:  title,
		XAxis:  LabelForAttribute(domain.AttrBillLength),
		YAxis:  LabelForAttribute(domain.AttrBillDepth),
		Series: series,
	}
}

// DefaultRenderers wires the card set of the source dashboard: raw
// data table and grid, the full-dataset attribute histogram, the
// filtered attribute histogram, the filtered mass histogram, and the
// bill-dimensions scatterplot.
func DefaultRenderers() []Renderer {
	return []Renderer{
		NewTableRenderer("penguin_table", "Penguin Data Table"),
		NewTableRenderer("penguin_grid", "Penguin Data Grid"),
		NewHistogramRenderer("plotly_histogram", "Penguins", SourceFull, PlotlyBins),
		NewHistogramRenderer("seaborn_histogram", "Penguins", SourceFiltered, SeabornBins),
		NewMassHistogramRenderer("mass_histogram", "Palmer Penguins"),
		NewScatterRenderer("scatterplot", "Plotly Scatterplot: Species"),
	}
}
