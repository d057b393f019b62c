package domain

import (
	"fmt"
	"strings"
)

// Species identifies one of the three penguin species in the dataset.
type Species string

const (
	SpeciesAdelie    Species = "Adelie"
	SpeciesChinstrap Species = "Chinstrap"
	SpeciesGentoo    Species = "Gentoo"
)

// Island identifies one of the three islands in the Palmer Archipelago.
type Island string

const (
	IslandBiscoe    Island = "Biscoe"
	IslandDream     Island = "Dream"
	IslandTorgersen Island = "Torgersen"
)

// Sex is the recorded sex of a penguin. It is nullable on Record.
type Sex string

const (
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
)

// Record is a single observation. Measurement fields and sex are
// nullable; a nil pointer means the value was missing in the source.
type Record struct {
	Species         Species  `json:"species"`
	Island          Island   `json:"island"`
	BillLengthMM    *float64 `json:"bill_length_mm"`
	BillDepthMM     *float64 `json:"bill_depth_mm"`
	FlipperLengthMM *float64 `json:"flipper_length_mm"`
	BodyMassG       *float64 `json:"body_mass_g"`
	Sex             *Sex     `json:"sex"`
}

// ParseSpecies resolves a species name case-insensitively.
func ParseSpecies(raw string) (Species, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "adelie":
		return SpeciesAdelie, nil
	case "chinstrap":
		return SpeciesChinstrap, nil
	case "gentoo":
		return SpeciesGentoo, nil
	default:
		return "", fmt.Errorf("unknown species %q", raw)
	}
}

// ParseIsland resolves an island name case-insensitively.
func ParseIsland(raw string) (Island, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "biscoe":
		return IslandBiscoe, nil
	case "dream":
		return IslandDream, nil
	case "torgersen":
		return IslandTorgersen, nil
	default:
		return "", fmt.Errorf("unknown island %q", raw)
	}
}

// ParseSex resolves a sex value case-insensitively. Blank and NA
// values map to nil rather than an error since the column is nullable.
func ParseSex(raw string) (*Sex, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "na", "null":
		return nil, nil
	case "male":
		sex := SexMale
		return &sex, nil
	case "female":
		sex := SexFemale
		return &sex, nil
	default:
		return nil, fmt.Errorf("unknown sex %q", raw)
	}
}

// Attribute names accepted by histogram renderers.
const (
	AttrBillLength    = "bill_length_mm"
	AttrBillDepth     = "bill_depth_mm"
	AttrFlipperLength = "flipper_length_mm"
	AttrBodyMass      = "body_mass_g"
)

// AttributeValue returns the named measurement, or nil when the
// attribute is unknown or the value is missing.
func (r Record) AttributeValue(name string) *float64 {
	switch name {
	case AttrBillLength:
		return r.BillLengthMM
	case AttrBillDepth:
		return r.BillDepthMM
	case AttrFlipperLength:
		return r.FlipperLengthMM
	case AttrBodyMass:
		return r.BodyMassG
	default:
		return nil
	}
}
