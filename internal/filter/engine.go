// Package filter derives a filtered view of the penguin dataset from a
// selection snapshot. Apply is a pure function: it holds no state, is
// safe to call concurrently, and never mutates its inputs.
package filter

import (
	"log"
	"strings"

	"github.com/gjrich/cintel-04-local/internal/domain"
)

// Apply returns the subsequence of dataset records satisfying every
// selection predicate, preserving original record order. The four
// predicates are AND-combined; set membership is case-insensitive and
// the mass range is inclusive at both ends. Records with a null sex or
// null mass fail their predicate.
//
// When no record matches, the result is an explicitly empty dataset;
// renderers are expected to produce empty-state artifacts.
//
// A panic during predicate evaluation is recovered and the full
// dataset is returned so one bad value cannot blank the dashboard.
func Apply(dataset domain.Dataset, selection domain.Selection) (result domain.Dataset) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[filter] recovered from predicate evaluation panic, returning unfiltered dataset: %v", rec)
			result = dataset
		}
	}()

	sel := selection.Normalized()
	speciesSet := sel.SpeciesSet()
	islandSet := sel.IslandSet()
	sexSet := sel.SexSet()

	matched := make([]domain.Record, 0, dataset.Len())
	for _, record := range dataset.Records() {
		if !speciesSet[strings.ToLower(string(record.Species))] {
			continue
		}
		if !islandSet[strings.ToLower(string(record.Island))] {
			continue
		}
		if record.Sex == nil || !sexSet[strings.ToLower(string(*record.Sex))] {
			continue
		}
		if record.BodyMassG == nil {
			continue
		}
		if mass := *record.BodyMassG; mass < sel.MassMin || mass > sel.MassMax {
			continue
		}
		matched = append(matched, record)
	}

	return domain.NewDataset(matched)
}
