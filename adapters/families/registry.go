package families

import (
	"strings"

	"distfit/domain/core"
	"distfit/domain/fit"
	"distfit/ports"
)

var _ ports.RegistryPort = (*Registry)(nil)

// Registry holds the fixed distribution catalog in a stable order
type Registry struct {
	families []fit.Family
}

// NewRegistry creates the catalog. Families that accept the whole real line
// come first.
func NewRegistry() *Registry {
	return &Registry{
		families: []fit.Family{
			NewExtremeValue(),
			NewGeneralizedExtremeValue(),
			NewLogistic(),
			NewNormal(),
			NewExponential(),
			NewGamma(),
			NewInverseGaussian(),
			NewLogLogistic(),
			NewLogNormal(),
			NewWeibull(),
		},
	}
}

// List returns every family in catalog order
func (r *Registry) List() []fit.Family {
	out := make([]fit.Family, len(r.families))
	copy(out, r.families)
	return out
}

// Specs returns the static descriptors in catalog order
func (r *Registry) Specs() []fit.DistributionSpec {
	specs := make([]fit.DistributionSpec, len(r.families))
	for i, f := range r.families {
		specs[i] = f.Spec()
	}
	return specs
}

// Lookup finds a family by name, ignoring case
func (r *Registry) Lookup(name string) (fit.Family, error) {
	for _, f := range r.families {
		if strings.EqualFold(f.Spec().Name, name) {
			return f, nil
		}
	}
	return nil, core.NewUnknownFamilyError(name)
}

// Compatible returns the families usable for data with the given support.
// Positive-only families are dropped as soon as any value is <= 0.
func (r *Registry) Compatible(support fit.Support) []fit.Family {
	if support == fit.SupportPositive {
		return r.List()
	}
	var out []fit.Family
	for _, f := range r.families {
		if f.Spec().SupportsAllReals {
			out = append(out, f)
		}
	}
	return out
}
