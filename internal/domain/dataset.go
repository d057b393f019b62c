package domain

// Dataset is an ordered, immutable sequence of records. It is built
// once by a dataset provider and shared by reference; every accessor
// copies so callers can never mutate the underlying slice.
type Dataset struct {
	records []Record
}

// NewDataset copies records into a new immutable dataset.
func NewDataset(records []Record) Dataset {
	copied := make([]Record, len(records))
	copy(copied, records)
	return Dataset{records: copied}
}

// EmptyDataset returns a dataset with no records.
func EmptyDataset() Dataset {
	return Dataset{records: []Record{}}
}

// Len returns the number of records.
func (d Dataset) Len() int {
	return len(d.records)
}

// IsEmpty reports whether the dataset holds no records.
func (d Dataset) IsEmpty() bool {
	return len(d.records) == 0
}

// Records returns a copy of the underlying records in original order.
func (d Dataset) Records() []Record {
	copied := make([]Record, len(d.records))
	copy(copied, d.records)
	return copied
}

// At returns the record at index i.
func (d Dataset) At(i int) Record {
	return d.records[i]
}

// MassBounds returns the minimum and maximum non-null body mass in the
// dataset. ok is false when no record carries a mass value.
func (d Dataset) MassBounds() (min, max float64, ok bool) {
	for _, r := range d.records {
		if r.BodyMassG == nil {
			continue
		}
		v := *r.BodyMassG
		if !ok {
			min, max, ok = v, v, true
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, ok
}
