package fit

import (
	"math"
	"sort"

	"distfit/domain/core"
)

// Support classifies a dataset by the sign of its values
type Support string

const (
	// SupportPositive means every value is strictly greater than zero.
	SupportPositive Support = "positive"
	// SupportReal means at least one value is zero or negative.
	SupportReal Support = "real"
)

// Dataset is an immutable, non-empty sequence of finite observations
type Dataset struct {
	values  []float64
	sorted  []float64
	support Support
}

// NewDataset copies and validates values
func NewDataset(values []float64) (*Dataset, error) {
	if len(values) == 0 {
		return nil, core.ErrEmptyDataset
	}

	v := make([]float64, len(values))
	support := SupportPositive
	for i, x := range values {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, core.NewInvalidDatasetError(i, x)
		}
		if x <= 0 {
			support = SupportReal
		}
		v[i] = x
	}

	s := make([]float64, len(v))
	copy(s, v)
	sort.Float64s(s)

	return &Dataset{values: v, sorted: s, support: support}, nil
}

// Len returns the number of observations
func (d *Dataset) Len() int {
	return len(d.values)
}

// Values returns a copy of the observations in input order
func (d *Dataset) Values() []float64 {
	out := make([]float64, len(d.values))
	copy(out, d.values)
	return out
}

// Sorted returns a copy of the observations in ascending order
func (d *Dataset) Sorted() []float64 {
	out := make([]float64, len(d.sorted))
	copy(out, d.sorted)
	return out
}

// Min returns the smallest observation
func (d *Dataset) Min() float64 {
	return d.sorted[0]
}

// Max returns the largest observation
func (d *Dataset) Max() float64 {
	return d.sorted[len(d.sorted)-1]
}

// Support reports whether all values are strictly positive
func (d *Dataset) Support() Support {
	return d.support
}

// IsPositive is shorthand for Support() == SupportPositive
func (d *Dataset) IsPositive() bool {
	return d.support == SupportPositive
}

// Admits reports whether the family's support is compatible with the dataset
func (d *Dataset) Admits(spec DistributionSpec) bool {
	return spec.SupportsAllReals || d.IsPositive()
}
