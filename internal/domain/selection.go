package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Selection is the transient snapshot of the four filter dimensions
// supplied by the presentation layer. It has no lifecycle of its own;
// a fresh value is constructed for every recomputation pass.
type Selection struct {
	Species []string `json:"species"`
	Islands []string `json:"islands"`
	Sexes   []string `json:"sexes"`
	MassMin float64  `json:"mass_min"`
	MassMax float64  `json:"mass_max"`
}

// DefaultSelection mirrors the dashboard's initial widget state.
func DefaultSelection() Selection {
	return Selection{
		Species: []string{string(SpeciesAdelie)},
		Islands: []string{string(IslandBiscoe)},
		Sexes:   []string{string(SexMale), string(SexFemale)},
		MassMin: 2500,
		MassMax: 6000,
	}
}

// Normalized returns a canonical copy: set members trimmed, lowercased,
// deduplicated and sorted, and a reversed mass range swapped so that
// MassMin <= MassMax always holds. Selection values reachable through
// the UI are treated as already validated, so normalization never fails.
func (s Selection) Normalized() Selection {
	min, max := s.MassMin, s.MassMax
	if min > max {
		min, max = max, min
	}
	return Selection{
		Species: normalizeSet(s.Species),
		Islands: normalizeSet(s.Islands),
		Sexes:   normalizeSet(s.Sexes),
		MassMin: min,
		MassMax: max,
	}
}

// Fingerprint returns a canonical key for the selection, used for
// change detection and result caching. Two selections that filter
// identically share a fingerprint.
func (s Selection) Fingerprint() string {
	n := s.Normalized()
	return fmt.Sprintf("species=%s|islands=%s|sexes=%s|mass=%g:%g",
		strings.Join(n.Species, ","),
		strings.Join(n.Islands, ","),
		strings.Join(n.Sexes, ","),
		n.MassMin, n.MassMax,
	)
}

// SpeciesSet returns a lowercase membership set for the species filter.
func (s Selection) SpeciesSet() map[string]bool { return toLowerSet(s.Species) }

// IslandSet returns a lowercase membership set for the island filter.
func (s Selection) IslandSet() map[string]bool { return toLowerSet(s.Islands) }

// SexSet returns a lowercase membership set for the sex filter.
func (s Selection) SexSet() map[string]bool { return toLowerSet(s.Sexes) }

func normalizeSet(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func toLowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			set[v] = true
		}
	}
	return set
}

// Display holds chart-only parameters. Changing them never triggers a
// filter recomputation, only a re-render.
type Display struct {
	Attribute       string `json:"attribute"`
	PlotlyBinCount  int    `json:"plotly_bin_count"`
	SeabornBinCount int    `json:"seaborn_bin_count"`
}

// DefaultDisplay mirrors the dashboard's initial chart parameters.
func DefaultDisplay() Display {
	return Display{
		Attribute:       AttrBillLength,
		PlotlyBinCount:  10,
		SeabornBinCount: 10,
	}
}

// Normalized clamps bin counts to the widget range and falls back to
// the default attribute when the requested one is unknown.
func (d Display) Normalized() Display {
	out := d
	switch out.Attribute {
	case AttrBillLength, AttrBillDepth, AttrFlipperLength, AttrBodyMass:
	default:
		out.Attribute = AttrBillLength
	}
	out.PlotlyBinCount = clampBins(out.PlotlyBinCount)
	out.SeabornBinCount = clampBins(out.SeabornBinCount)
	return out
}

func clampBins(n int) int {
	const minBins, maxBins = 2, 50
	if n < minBins {
		if n == 0 {
			return 10
		}
		return minBins
	}
	if n > maxBins {
		return maxBins
	}
	return n
}
