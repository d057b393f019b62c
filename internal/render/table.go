package render

import (
	"fmt"

	"github.com/gjrich/cintel-04-local/internal/domain"
)

// TableRenderer renders a dataset as a row-per-record table. The
// source dashboard shows both a table and a grid over the raw,
// unfiltered dataset; Filtered selects the comparison variant instead.
type TableRenderer struct {
	name     string
	title    string
	Filtered bool
}

// NewTableRenderer builds a renderer over the full dataset.
func NewTableRenderer(name, title string) *TableRenderer {
	return &TableRenderer{name: name, title: title}
}

// NewFilteredTableRenderer builds a renderer over the filtered dataset.
func NewFilteredTableRenderer(name, title string) *TableRenderer {
	return &TableRenderer{name: name, title: title, Filtered: true}
}

func (r *TableRenderer) Name() string { return r.name }

func (r *TableRenderer) Render(view View) Artifact {
	source := view.Full
	if r.Filtered {
		source = view.Filtered
	}
	return Artifact{Kind: "table", Table: BuildTable(r.title, source)}
}

// BuildTable produces TableData for the fixed penguin schema.
func BuildTable(title string, dataset domain.Dataset) *TableData {
	columns := []Column{
		{Key: "species", Label: "Species", Type: "text", Align: "left"},
		{Key: "island", Label: "Island", Type: "text", Align: "left"},
		{Key: domain.AttrBillLength, Label: LabelForAttribute(domain.AttrBillLength), Type: "number", Align: "right"},
		{Key: domain.AttrBillDepth, Label: LabelForAttribute(domain.AttrBillDepth), Type: "number", Align: "right"},
		{Key: domain.AttrFlipperLength, Label: LabelForAttribute(domain.AttrFlipperLength), Type: "number", Align: "right"},
		{Key: domain.AttrBodyMass, Label: LabelForAttribute(domain.AttrBodyMass), Type: "number", Align: "right"},
		{Key: "sex", Label: "Sex", Type: "text", Align: "left"},
	}

	rows := make([][]string, 0, dataset.Len())
	for _, record := range dataset.Records() {
		rows = append(rows, []string{
			string(record.Species),
			string(record.Island),
			formatMeasurement(record.BillLengthMM),
			formatMeasurement(record.BillDepthMM),
			formatMeasurement(record.FlipperLengthMM),
			formatMeasurement(record.BodyMassG),
			formatSex(record.Sex),
		})
	}

	return &TableData{
		Title:   title,
		Columns: columns,
		Rows:    rows,
		Total:   dataset.Len(),
	}
}

func formatMeasurement(value *float64) string {
	if value == nil {
		return ""
	}
	return fmt.Sprintf("%.1f", *value)
}

func formatSex(sex *domain.Sex) string {
	if sex == nil {
		return ""
	}
	return string(*sex)
}
