// Package export writes the current filtered dataset as a downloadable
// CSV or XLSX file.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/gjrich/cintel-04-local/internal/domain"
)

// Format identifies a supported export format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrUnsupportedFormat is returned for unknown export formats.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ParseFormat resolves a format name case-insensitively, defaulting to
// CSV when blank.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, raw)
	}
}

// MimeType returns the content type for the format.
func (f Format) MimeType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

var headers = []string{
	"species", "island",
	domain.AttrBillLength, domain.AttrBillDepth, domain.AttrFlipperLength, domain.AttrBodyMass,
	"sex",
}

// Write streams the dataset to w in the requested format.
func Write(w io.Writer, dataset domain.Dataset, format Format) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, dataset)
	case FormatXLSX:
		return writeXLSX(w, dataset)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// FileName builds a unique download name like penguins-<uuid>.csv.
func FileName(base string, format Format) string {
	component := sanitizeFileComponent(base)
	if component == "" {
		component = "export"
	}
	return fmt.Sprintf("%s-%s.%s", component, uuid.New().String(), format)
}

func writeCSV(w io.Writer, dataset domain.Dataset) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, record := range dataset.Records() {
		if err := csvWriter.Write(recordRow(record)); err != nil {
			return fmt.Errorf("write record row: %w", err)
		}
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("flush rows: %w", err)
	}
	return nil
}

func writeXLSX(w io.Writer, dataset domain.Dataset) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("resolve header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("write header cell: %w", err)
		}
	}

	for rowIdx, record := range dataset.Records() {
		for col, value := range recordRow(record) {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("resolve cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("write cell: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func recordRow(record domain.Record) []string {
	return []string{
		string(record.Species),
		string(record.Island),
		formatFloat(record.BillLengthMM),
		formatFloat(record.BillDepthMM),
		formatFloat(record.FlipperLengthMM),
		formatFloat(record.BodyMassG),
		formatSex(record.Sex),
	}
}

func formatFloat(value *float64) string {
	if value == nil {
		return ""
	}
	return fmt.Sprintf("%g", *value)
}

func formatSex(sex *domain.Sex) string {
	if sex == nil {
		return ""
	}
	return string(*sex)
}

func sanitizeFileComponent(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return ""
	}
	builder := strings.Builder{}
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z':
			builder.WriteRune(r)
		case r >= '0' && r <= '9':
			builder.WriteRune(r)
		case r == '-' || r == '_':
			builder.WriteRune(r)
		default:
			builder.WriteRune('-')
		}
	}
	return strings.Trim(builder.String(), "-")
}
