// Package catalog implements the validation and typed-loading engine for
// globular-cluster observation files. It resolves cluster-wide attributes
// against the schema defaults, enforces the uniform-nesting rule on product
// key groups, loads every variable together with its required uncertainties
// and unit metadata, and assembles the result into an immutable Catalog.
//
// Loading is fail-fast: the first schema violation aborts the whole load and
// no partial catalog is ever handed to the caller.
package catalog

import (
	"clusterfile/schema"
	"clusterfile/units"
)

// Role names a supplementary array attached to a primary variable.
type Role string

const (
	// RoleUncertainty is a symmetric measurement uncertainty.
	RoleUncertainty Role = "uncertainty"
	// RoleUncertaintyLo is the downward half of an asymmetric uncertainty.
	RoleUncertaintyLo Role = "uncertainty_lo"
	// RoleUncertaintyHi is the upward half of an asymmetric uncertainty.
	RoleUncertaintyHi Role = "uncertainty_hi"
)

// Attribute is a resolved metadata value from the file root, a group or a
// variable.
type Attribute struct {
	Name  string
	Value any
	// Unit is empty when the attribute carries no unit.
	Unit units.Unit
	// Defaulted marks values synthesized from the schema default table
	// rather than read from the file.
	Defaulted bool
}

// Variable is a loaded rectangular array with its metadata and any
// supplementary arrays.
type Variable struct {
	Name   string
	Values []float64
	// Shape has rank >= 1 and multiplies out to len(Values).
	Shape []int
	// Unit is the resolved unit, or empty for unitless variables.
	Unit          units.Unit
	Attrs         map[string]Attribute
	Supplementary map[Role]*Variable
}

// DataGroup is one validated product key group or source subgroup. Exactly
// one of Subgroups and Variables is populated; the uniform-nesting rule
// forbids both at the same level.
type DataGroup struct {
	Kind      schema.ProductKind
	Path      string
	Subgroups map[string]*DataGroup
	Variables map[string]*Variable
}

// Catalog is the fully validated content of one cluster file. It is
// immutable once returned and safe to share across goroutines.
type Catalog struct {
	RootAttributes map[string]Attribute
	// Groups holds one entry per product kind present in the file.
	Groups map[schema.ProductKind]*DataGroup
}
