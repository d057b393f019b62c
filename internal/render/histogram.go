package render

import (
	"github.com/gjrich/cintel-04-local/internal/domain"
)

// HistogramSource selects which dataset a histogram renders.
type HistogramSource int

const (
	// SourceFull renders the unfiltered dataset, like the source
	// dashboard's plotly histogram.
	SourceFull HistogramSource = iota
	// SourceFiltered renders the filtered dataset, like the seaborn
	// histograms.
	SourceFiltered
)

// BinCountParam selects which display parameter supplies the bin count.
type BinCountParam int

const (
	PlotlyBins BinCountParam = iota
	SeabornBins
)

// HistogramRenderer bins one attribute of a dataset view. When
// FixedAttribute is empty the display's selected attribute is used.
type HistogramRenderer struct {
	name           string
	title          string
	source         HistogramSource
	binParam       BinCountParam
	FixedAttribute string
}

// NewHistogramRenderer builds a histogram renderer over the selected
// display attribute.
func NewHistogramRenderer(name, title string, source HistogramSource, binParam BinCountParam) *HistogramRenderer {
	return &HistogramRenderer{name: name, title: title, source: source, binParam: binParam}
}

// NewMassHistogramRenderer builds the body-mass histogram, which
// ignores the selected attribute.
func NewMassHistogramRenderer(name, title string) *HistogramRenderer {
	return &HistogramRenderer{
		name:           name,
		title:          title,
		source:         SourceFiltered,
		binParam:       SeabornBins,
		FixedAttribute: domain.AttrBodyMass,
	}
}

func (r *HistogramRenderer) Name() string { return r.name }

func (r *HistogramRenderer) Render(view View) Artifact {
	dataset := view.Full
	if r.source == SourceFiltered {
		dataset = view.Filtered
	}

	display := view.Display.Normalized()
	attribute := r.FixedAttribute
	if attribute == "" {
		attribute = display.Attribute
	}
	bins := display.PlotlyBinCount
	if r.binParam == SeabornBins {
		bins = display.SeabornBinCount
	}

	return Artifact{Kind: "histogram", Histogram: BuildHistogram(r.title, dataset, attribute, bins)}
}

// BuildHistogram bins the non-null values of one attribute into
// equal-width buckets across the observed value range. An empty or
// all-null dataset yields a histogram with no bins.
func BuildHistogram(title string, dataset domain.Dataset, attribute string, binCount int) *Histogram {
	hist := &Histogram{
		Title:     title,
		Attribute: attribute,
		XAxis:     LabelForAttribute(attribute),
		YAxis:     "Count",
		Bins:      []Bin{},
	}
	if binCount < 1 {
		binCount = 1
	}

	values := make([]float64, 0, dataset.Len())
	for _, record := range dataset.Records() {
		if v := record.AttributeValue(attribute); v != nil {
			values = append(values, *v)
		}
	}
	hist.Total = len(values)
	if len(values) == 0 {
		return hist
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if min == max {
		// All values identical; a single bucket holds everything.
		hist.Bins = []Bin{{Min: min, Max: max, Count: len(values)}}
		return hist
	}

	width := (max - min) / float64(binCount)
	bins := make([]Bin, binCount)
	for i := range bins {
		bins[i].Min = min + float64(i)*width
		bins[i].Max = min + float64(i+1)*width
	}
	bins[binCount-1].Max = max

	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= binCount {
			// The maximum lands in the last, inclusive bucket.
			idx = binCount - 1
		}
		bins[idx].Count++
	}

	hist.Bins = bins
	return hist
}
