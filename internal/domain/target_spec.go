package domain

import "fmt"

// TargetDimension names one measurable dimension of an exercise prescription.
type TargetDimension string

const (
	DimensionReps        TargetDimension = "reps"
	DimensionWeight      TargetDimension = "weight"
	DimensionTimeSeconds TargetDimension = "time_seconds"
	DimensionRPE         TargetDimension = "rpe"
)

func (d TargetDimension) Valid() bool {
	switch d {
	case DimensionReps, DimensionWeight, DimensionTimeSeconds, DimensionRPE:
		return true
	default:
		return false
	}
}

// TargetEntry is one prescribed dimension. Values are kept as strings so
// semantic prescriptions like "8-12" survive alongside plain numbers.
type TargetEntry struct {
	Dimension TargetDimension `bson:"dimension" json:"dimension"`
	Value     string          `bson:"value" json:"value"`
}

// TargetSpec is an ordered mapping of dimension to prescribed value.
// Being a mapping (rather than two parallel lists) makes a length mismatch
// between dimensions and values unrepresentable.
type TargetSpec []TargetEntry

// NewTargetSpec builds a spec from parallel dimension/value lists, the shape
// external callers supply. It rejects length mismatches, unrecognized
// dimensions and duplicate dimensions with ErrInvalidSpecification.
func NewTargetSpec(dimensions []string, values []string) (TargetSpec, error) {
	if len(dimensions) != len(values) {
		return nil, fmt.Errorf("%w: %d dimensions vs %d values", ErrInvalidSpecification, len(dimensions), len(values))
	}
	if len(dimensions) == 0 {
		return nil, fmt.Errorf("%w: at least one dimension is required", ErrInvalidSpecification)
	}
	spec := make(TargetSpec, 0, len(dimensions))
	seen := make(map[TargetDimension]bool, len(dimensions))
	for i, name := range dimensions {
		dim := TargetDimension(name)
		if !dim.Valid() {
			return nil, fmt.Errorf("%w: unrecognized dimension %q", ErrInvalidSpecification, name)
		}
		if seen[dim] {
			return nil, fmt.Errorf("%w: duplicate dimension %q", ErrInvalidSpecification, name)
		}
		seen[dim] = true
		spec = append(spec, TargetEntry{Dimension: dim, Value: values[i]})
	}
	return spec, nil
}

// Value returns the prescribed value for dim, and whether dim is specified.
func (s TargetSpec) Value(dim TargetDimension) (string, bool) {
	for _, e := range s {
		if e.Dimension == dim {
			return e.Value, true
		}
	}
	return "", false
}

// Dimensions returns the specified dimensions in prescription order.
func (s TargetSpec) Dimensions() []TargetDimension {
	dims := make([]TargetDimension, len(s))
	for i, e := range s {
		dims[i] = e.Dimension
	}
	return dims
}
