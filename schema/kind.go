// Package schema holds the static catalog of data products a cluster file
// may contain: which key groups exist, which variables each product
// requires, which uncertainties and units those variables must carry, and
// which root attributes each product depends on.
//
// The tables are fixed data loaded once into read-only package state. They
// are not configuration; the set of physical observation types is closed.
package schema

// ProductKind identifies one physical observation type stored in a cluster
// file. Each kind owns exactly one key group directly under the file root.
type ProductKind string

const (
	// Pulsar holds pulsar timing observations.
	Pulsar ProductKind = "pulsar"
	// NumberDensity holds projected number density profiles.
	NumberDensity ProductKind = "number_density"
	// ProperMotion holds proper motion dispersion profiles.
	ProperMotion ProductKind = "proper_motion"
	// VelocityDispersion holds line-of-sight velocity dispersion profiles.
	VelocityDispersion ProductKind = "velocity_dispersion"
	// MassFunction holds stellar mass function counts.
	MassFunction ProductKind = "mass_function"
)

var kinds = []ProductKind{
	Pulsar,
	NumberDensity,
	ProperMotion,
	VelocityDispersion,
	MassFunction,
}

// Kinds returns all product kinds in their canonical order.
func Kinds() []ProductKind {
	out := make([]ProductKind, len(kinds))
	copy(out, kinds)
	return out
}

// ParseKind maps a key-group name onto its product kind.
func ParseKind(name string) (ProductKind, bool) {
	for _, k := range kinds {
		if string(k) == name {
			return k, true
		}
	}
	return "", false
}
