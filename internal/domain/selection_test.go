package domain

import (
	"reflect"
	"testing"
)

func TestSelectionNormalized(t *testing.T) {
	sel := Selection{
		Species: []string{" Gentoo ", "adelie", "ADELIE"},
		Islands: []string{"Dream", "biscoe"},
		Sexes:   []string{"MALE"},
		MassMin: 6000,
		MassMax: 2500,
	}
	got := sel.Normalized()

	if !reflect.DeepEqual(got.Species, []string{"adelie", "gentoo"}) {
		t.Errorf("species not normalized: %v", got.Species)
	}
	if !reflect.DeepEqual(got.Islands, []string{"biscoe", "dream"}) {
		t.Errorf("islands not normalized: %v", got.Islands)
	}
	if got.MassMin != 2500 || got.MassMax != 6000 {
		t.Errorf("reversed mass range not swapped: %g..%g", got.MassMin, got.MassMax)
	}
}

func TestSelectionFingerprintIgnoresCaseAndOrder(t *testing.T) {
	a := Selection{
		Species: []string{"Adelie", "Gentoo"},
		Islands: []string{"Biscoe"},
		Sexes:   []string{"Male", "Female"},
		MassMin: 2500,
		MassMax: 6000,
	}
	b := Selection{
		Species: []string{"gentoo", "ADELIE"},
		Islands: []string{"biscoe"},
		Sexes:   []string{"female", "male"},
		MassMin: 2500,
		MassMax: 6000,
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Errorf("equivalent selections have different fingerprints:\n%s\n%s", a.Fingerprint(), b.Fingerprint())
	}

	c := a
	c.MassMax = 6500
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("different mass ranges share a fingerprint")
	}
}

func TestDisplayNormalized(t *testing.T) {
	d := Display{Attribute: "not_a_column", PlotlyBinCount: 500, SeabornBinCount: 1}
	got := d.Normalized()
	if got.Attribute != AttrBillLength {
		t.Errorf("unknown attribute not defaulted: %s", got.Attribute)
	}
	if got.PlotlyBinCount != 50 {
		t.Errorf("bin count not clamped high: %d", got.PlotlyBinCount)
	}
	if got.SeabornBinCount != 2 {
		t.Errorf("bin count not clamped low: %d", got.SeabornBinCount)
	}
	if zero := (Display{}).Normalized(); zero.PlotlyBinCount != 10 {
		t.Errorf("zero bin count should fall back to the default, got %d", zero.PlotlyBinCount)
	}
}

func TestDatasetImmutability(t *testing.T) {
	source := []Record{{Species: SpeciesAdelie, Island: IslandBiscoe}}
	ds := NewDataset(source)

	source[0].Species = SpeciesGentoo
	if ds.At(0).Species != SpeciesAdelie {
		t.Error("dataset shares memory with the source slice")
	}

	records := ds.Records()
	records[0].Species = SpeciesChinstrap
	if ds.At(0).Species != SpeciesAdelie {
		t.Error("Records() exposes internal storage")
	}
}

func TestParseEnums(t *testing.T) {
	if s, err := ParseSpecies("  chinstrap "); err != nil || s != SpeciesChinstrap {
		t.Errorf("ParseSpecies: %v %v", s, err)
	}
	if _, err := ParseSpecies("emperor"); err == nil {
		t.Error("expected error for unknown species")
	}
	if i, err := ParseIsland("TORGERSEN"); err != nil || i != IslandTorgersen {
		t.Errorf("ParseIsland: %v %v", i, err)
	}
	if sex, err := ParseSex("NA"); err != nil || sex != nil {
		t.Errorf("ParseSex NA should be null: %v %v", sex, err)
	}
	if sex, err := ParseSex("female"); err != nil || sex == nil || *sex != SexFemale {
		t.Errorf("ParseSex female: %v %v", sex, err)
	}
}
