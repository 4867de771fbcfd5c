package schema

import "clusterfile/units"

// UncertaintyRule states what uncertainty data a variable must carry.
type UncertaintyRule int

const (
	// UncertaintyNone requires no uncertainty sibling.
	UncertaintyNone UncertaintyRule = iota
	// UncertaintyRequired is satisfied by a symmetric sibling "Δ<name>" or
	// by the asymmetric pair "Δ<name>,up" and "Δ<name>,down".
	UncertaintyRequired
)

// VariableSpec declares one variable of a product group.
type VariableSpec struct {
	Name        string
	Uncertainty UncertaintyRule
	// RequireUnit demands a resolvable "unit" attribute on the variable.
	RequireUnit bool
	// Unit pins the expected canonical unit. Empty means any resolvable
	// unit is accepted.
	Unit units.Unit
}

// ChoiceSpec requires at least one of Options to be present. Each present
// option additionally pulls in its implied variable specs.
type ChoiceSpec struct {
	Options []VariableSpec
	Implies map[string][]VariableSpec
}

// AttrSpec declares an attribute on a product group itself, e.g. the tracer
// mass a dispersion profile was measured for.
type AttrSpec struct {
	Name     string
	Required bool
}

// ProductSchema declares the full requirements for one product kind.
type ProductSchema struct {
	Kind     ProductKind
	Required []VariableSpec
	Optional []VariableSpec
	Choices  []ChoiceSpec
	// AllowSources permits the key group to contain named source subgroups
	// instead of variables.
	AllowSources bool
	// RootAttrs lists root attribute names the product depends on. The
	// loader cross-checks them against the resolved root attributes.
	RootAttrs []string
	// GroupAttrs are attributes expected on each leaf group.
	GroupAttrs []AttrSpec
}

var radial = VariableSpec{Name: "r", RequireUnit: true}

// tracerMass is carried by dispersion-style products so model fitting can
// match the observation to a mass bin.
var tracerMass = AttrSpec{Name: "m"}

var products = map[ProductKind]ProductSchema{
	Pulsar: {
		Kind:     Pulsar,
		Required: []VariableSpec{radial},
		Choices: []ChoiceSpec{{
			Options: []VariableSpec{
				{Name: "P", RequireUnit: true},
				{Name: "Pb", RequireUnit: true},
			},
			Implies: map[string][]VariableSpec{
				"P":  {{Name: "Pdot", Uncertainty: UncertaintyRequired, RequireUnit: true}},
				"Pb": {{Name: "Pbdot", Uncertainty: UncertaintyRequired, RequireUnit: true}},
			},
		}},
		Optional:     []VariableSpec{{Name: "id"}},
		AllowSources: true,
		RootAttrs:    []string{"l", "b", "mu"},
	},
	NumberDensity: {
		Kind: NumberDensity,
		Required: []VariableSpec{
			radial,
			{Name: "Σ", Uncertainty: UncertaintyRequired, RequireUnit: true},
		},
		AllowSources: true,
		GroupAttrs:   []AttrSpec{tracerMass},
	},
	ProperMotion: {
		Kind:     ProperMotion,
		Required: []VariableSpec{radial},
		Choices: []ChoiceSpec{{
			Options: []VariableSpec{
				{Name: "PM_tot", Uncertainty: UncertaintyRequired, RequireUnit: true},
				// PM_ratio is a dimensionless ratio; a unit attribute is
				// accepted but not demanded.
				{Name: "PM_ratio", Uncertainty: UncertaintyRequired},
				{Name: "PM_R", Uncertainty: UncertaintyRequired, RequireUnit: true},
				{Name: "PM_T", Uncertainty: UncertaintyRequired, RequireUnit: true},
			},
		}},
		AllowSources: true,
		GroupAttrs:   []AttrSpec{tracerMass},
	},
	VelocityDispersion: {
		Kind: VelocityDispersion,
		Required: []VariableSpec{
			radial,
			{Name: "σ", Uncertainty: UncertaintyRequired, RequireUnit: true},
		},
		AllowSources: true,
		GroupAttrs:   []AttrSpec{tracerMass},
	},
	MassFunction: {
		Kind: MassFunction,
		Required: []VariableSpec{
			{Name: "N", Uncertainty: UncertaintyRequired},
			{Name: "r1", RequireUnit: true},
			{Name: "r2", RequireUnit: true},
			{Name: "m1", RequireUnit: true},
			{Name: "m2", RequireUnit: true},
		},
		Optional:     []VariableSpec{{Name: "fields"}},
		AllowSources: true,
		RootAttrs:    []string{"RA", "DEC", "FeH", "age", "Ndot"},
		GroupAttrs:   []AttrSpec{{Name: "field_unit", Required: true}},
	},
}

// Product returns the schema for the given kind.
func Product(kind ProductKind) (ProductSchema, bool) {
	p, ok := products[kind]
	return p, ok
}
