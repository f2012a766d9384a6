package ports

import (
	"distfit/domain/fit"
)

// RegistryPort enumerates the distribution catalog
type RegistryPort interface {
	// List returns every family in catalog order
	List() []fit.Family

	// Lookup finds a family by name (case-insensitive)
	Lookup(name string) (fit.Family, error)

	// Compatible returns the families admitted by the dataset's support, in catalog order
	Compatible(support fit.Support) []fit.Family
}
