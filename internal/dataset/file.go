package dataset

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/gjrich/cintel-04-local/internal/domain"
)

// ErrUnsupportedFormat is returned when the dataset file extension is
// not recognized.
var ErrUnsupportedFormat = errors.New("unsupported file format")

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// FileProvider loads the dataset from a CSV or XLSX file.
type FileProvider struct {
	path string
}

// NewFileProvider creates a provider for the given file path.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

// Load reads and parses the dataset file. Rows with an unknown species
// or island are skipped with a log line rather than failing the load;
// blank or NA measurement cells become null values.
func (p *FileProvider) Load(ctx context.Context) (domain.Dataset, error) {
	if ctx.Err() != nil {
		return domain.Dataset{}, ctx.Err()
	}

	payload, err := os.ReadFile(p.path)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("read dataset file: %w", err)
	}
	if len(payload) == 0 {
		return domain.Dataset{}, errors.New("dataset file is empty")
	}

	var rows [][]string
	switch ext := strings.ToLower(filepath.Ext(p.path)); ext {
	case ".csv":
		rows, err = parseCSV(payload)
	case ".xlsx":
		rows, err = parseExcel(payload)
	default:
		return domain.Dataset{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return domain.Dataset{}, err
	}

	return buildDataset(rows)
}

func parseCSV(payload []byte) ([][]string, error) {
	reader := bufio.NewReader(bytes.NewReader(payload))
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return records, nil
}

func parseExcel(payload []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows from xlsx: %w", err)
	}
	return rows, nil
}

func buildDataset(rows [][]string) (domain.Dataset, error) {
	if len(rows) == 0 {
		return domain.Dataset{}, errors.New("no rows found in dataset file")
	}

	columns, err := resolveColumns(rows[0])
	if err != nil {
		return domain.Dataset{}, err
	}

	records := make([]domain.Record, 0, len(rows)-1)
	for idx, row := range rows[1:] {
		rowNumber := idx + 2 // 1-based, counting the header row
		if isBlankRow(row) {
			continue
		}
		record, err := buildRecord(row, columns)
		if err != nil {
			log.Printf("[dataset] skipping row %d: %v", rowNumber, err)
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return domain.Dataset{}, errors.New("dataset file contained no valid rows")
	}
	return domain.NewDataset(records), nil
}

// columnIndexes maps the fixed schema onto whatever column order the
// file uses.
type columnIndexes struct {
	species, island, billLength, billDepth, flipperLength, bodyMass, sex int
}

func resolveColumns(header []string) (columnIndexes, error) {
	idx := columnIndexes{species: -1, island: -1, billLength: -1, billDepth: -1, flipperLength: -1, bodyMass: -1, sex: -1}
	for i, raw := range header {
		switch sanitizeHeader(raw) {
		case "species":
			idx.species = i
		case "island":
			idx.island = i
		case "bill_length_mm":
			idx.billLength = i
		case "bill_depth_mm":
			idx.billDepth = i
		case "flipper_length_mm":
			idx.flipperLength = i
		case "body_mass_g":
			idx.bodyMass = i
		case "sex":
			idx.sex = i
		}
	}
	if idx.species == -1 || idx.island == -1 {
		return columnIndexes{}, errors.New("dataset header is missing species or island column")
	}
	return idx, nil
}

func sanitizeHeader(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, ".", "_")
	name = strings.ReplaceAll(name, "-", "_")
	return strings.Trim(name, "_")
}

func buildRecord(row []string, columns columnIndexes) (domain.Record, error) {
	species, err := domain.ParseSpecies(cell(row, columns.species))
	if err != nil {
		return domain.Record{}, err
	}
	island, err := domain.ParseIsland(cell(row, columns.island))
	if err != nil {
		return domain.Record{}, err
	}
	sex, err := domain.ParseSex(cell(row, columns.sex))
	if err != nil {
		return domain.Record{}, err
	}

	record := domain.Record{Species: species, Island: island, Sex: sex}
	if record.BillLengthMM, err = parseMeasurement("bill_length_mm", cell(row, columns.billLength)); err != nil {
		return domain.Record{}, err
	}
	if record.BillDepthMM, err = parseMeasurement("bill_depth_mm", cell(row, columns.billDepth)); err != nil {
		return domain.Record{}, err
	}
	if record.FlipperLengthMM, err = parseMeasurement("flipper_length_mm", cell(row, columns.flipperLength)); err != nil {
		return domain.Record{}, err
	}
	if record.BodyMassG, err = parseMeasurement("body_mass_g", cell(row, columns.bodyMass)); err != nil {
		return domain.Record{}, err
	}
	return record, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseMeasurement(field, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	switch strings.ToLower(raw) {
	case "", "na", "nan", "null":
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("field %s: unable to coerce %q to float", field, raw)
	}
	return &value, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
