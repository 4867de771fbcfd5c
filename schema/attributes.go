package schema

import "clusterfile/units"

// RootAttribute describes one cluster-wide attribute stored on the file
// root: which products need it, whether a default substitutes for a missing
// value, and the unit the value is declared in.
type RootAttribute struct {
	Name        string
	RequiredFor []ProductKind
	// Default substitutes for a missing value. Nil means no default: a
	// product that requires the attribute fails the load when it is absent.
	Default *float64
	Unit    units.Unit
}

func def(v float64) *float64 { return &v }

// rootAttributes is the fixed cluster attribute table. Names, defaults and
// units match the catalog definition exactly.
var rootAttributes = []RootAttribute{
	{Name: "l", RequiredFor: []ProductKind{Pulsar}, Unit: units.Degree},
	{Name: "b", RequiredFor: []ProductKind{Pulsar}, Unit: units.Degree},
	{Name: "RA", RequiredFor: []ProductKind{MassFunction}, Unit: units.Degree},
	{Name: "DEC", RequiredFor: []ProductKind{MassFunction}, Unit: units.Degree},
	{Name: "FeH", RequiredFor: []ProductKind{MassFunction}, Default: def(-1.00), Unit: units.Dex},
	{Name: "age", RequiredFor: []ProductKind{MassFunction}, Default: def(12), Unit: units.Gyr},
	{Name: "mu", RequiredFor: []ProductKind{Pulsar}, Unit: units.MasPerYear},
	{Name: "Ndot", RequiredFor: []ProductKind{MassFunction}, Default: def(0), Unit: units.Dimensionless},
}

// RootAttributes returns the cluster attribute table in declaration order.
func RootAttributes() []RootAttribute {
	out := make([]RootAttribute, len(rootAttributes))
	copy(out, rootAttributes)
	return out
}

// RootAttributeByName looks up a table entry by attribute name.
func RootAttributeByName(name string) (RootAttribute, bool) {
	for _, a := range rootAttributes {
		if a.Name == name {
			return a, true
		}
	}
	return RootAttribute{}, false
}

// RequiredFor reports whether the attribute is required by the given kind.
func (a RootAttribute) IsRequiredFor(kind ProductKind) bool {
	for _, k := range a.RequiredFor {
		if k == kind {
			return true
		}
	}
	return false
}
