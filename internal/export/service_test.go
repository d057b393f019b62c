package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gjrich/cintel-04-local/internal/domain"
)

func fptr(v float64) *float64 { return &v }

func sptr(s domain.Sex) *domain.Sex { return &s }

func testDataset() domain.Dataset {
	return domain.NewDataset([]domain.Record{
		{Species: domain.SpeciesAdelie, Island: domain.IslandBiscoe, BillLengthMM: fptr(39.1), BillDepthMM: fptr(18.7), FlipperLengthMM: fptr(181), BodyMassG: fptr(3750), Sex: sptr(domain.SexMale)},
		{Species: domain.SpeciesGentoo, Island: domain.IslandDream, BillLengthMM: nil, BillDepthMM: fptr(13.2), FlipperLengthMM: fptr(211), BodyMassG: nil, Sex: nil},
	})
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(""); err != nil || f != FormatCSV {
		t.Errorf("blank format should default to csv: %v %v", f, err)
	}
	if f, err := ParseFormat("XLSX"); err != nil || f != FormatXLSX {
		t.Errorf("format should parse case-insensitively: %v %v", f, err)
	}
	if _, err := ParseFormat("pdf"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testDataset(), FormatCSV); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "species,island,bill_length_mm,bill_depth_mm,flipper_length_mm,body_mass_g,sex" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Adelie,Biscoe,39.1,") {
		t.Errorf("unexpected first row %q", lines[1])
	}
	// Null fields render as empty cells.
	if lines[2] != "Gentoo,Dream,,13.2,211,," {
		t.Errorf("unexpected second row %q", lines[2])
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testDataset(), FormatXLSX); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("xlsx writer produced no output")
	}
	// XLSX files are zip archives.
	if !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Error("output does not look like an xlsx workbook")
	}
}

func TestFileName(t *testing.T) {
	name := FileName("Palmer Penguins!", FormatCSV)
	if !strings.HasPrefix(name, "palmer-penguins-") || !strings.HasSuffix(name, ".csv") {
		t.Errorf("unexpected file name %q", name)
	}
	if FileName("", FormatXLSX) == FileName("", FormatXLSX) {
		t.Error("file names should be unique per call")
	}
}
