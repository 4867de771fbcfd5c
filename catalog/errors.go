package catalog

import (
	"errors"

	"clusterfile/units"
)

// Validation errors. Every failure surfaced by a load wraps exactly one of
// these sentinels, with the offending product kind, group path, variable or
// attribute name carried in the wrapping message. All of them are terminal:
// the engine never returns a partially validated catalog.
var (
	// ErrUnknownUnit mirrors units.ErrUnknownUnit for callers that only
	// import this package; the loaders wrap the units error directly.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrMissingRequiredAttribute marks a required attribute with no file
	// value and no schema default.
	ErrMissingRequiredAttribute = errors.New("missing required attribute")
	// ErrMissingVariable marks a required variable (or an unsatisfied
	// variable choice) absent from a leaf group.
	ErrMissingVariable = errors.New("missing required variable")
	// ErrMixedNesting marks a group holding both variables and subgroups.
	ErrMixedNesting = errors.New("mixed nesting")
	// ErrUnequalNesting marks sibling subgroups at differing depths.
	ErrUnequalNesting = errors.New("unequal nesting")
	// ErrEmptyVariable marks a zero-length data array.
	ErrEmptyVariable = errors.New("empty variable")
	// ErrMissingSupplementary marks a required uncertainty sibling absent.
	ErrMissingSupplementary = errors.New("missing supplementary variable")
	// ErrShapeMismatch marks a supplementary array whose shape differs from
	// its primary.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrMissingVariableAttribute marks a required attribute absent from a
	// variable or leaf group.
	ErrMissingVariableAttribute = errors.New("missing variable attribute")
	// ErrUnitMismatch marks a resolvable unit that differs from the one the
	// schema expects. The engine never converts.
	ErrUnitMismatch = errors.New("unit mismatch")
	// ErrUnknownGroup marks a root child matching no product kind, under
	// the "error" unknown-group policy.
	ErrUnknownGroup = errors.New("unknown key group")
)

// ViolationKind names the taxonomy entry a load error belongs to. The name
// is stable and suitable as a metrics label. Unrecognized errors map to
// "internal".
func ViolationKind(err error) string {
	switch {
	case isUnknownUnit(err):
		return "unknown_unit"
	case errors.Is(err, ErrMissingRequiredAttribute):
		return "missing_required_attribute"
	case errors.Is(err, ErrMissingVariable):
		return "missing_variable"
	case errors.Is(err, ErrMixedNesting):
		return "mixed_nesting"
	case errors.Is(err, ErrUnequalNesting):
		return "unequal_nesting"
	case errors.Is(err, ErrEmptyVariable):
		return "empty_variable"
	case errors.Is(err, ErrMissingSupplementary):
		return "missing_supplementary_variable"
	case errors.Is(err, ErrShapeMismatch):
		return "shape_mismatch"
	case errors.Is(err, ErrMissingVariableAttribute):
		return "missing_variable_attribute"
	case errors.Is(err, ErrUnitMismatch):
		return "unit_mismatch"
	case errors.Is(err, ErrUnknownGroup):
		return "unknown_group"
	default:
		return "internal"
	}
}

// isUnknownUnit matches both this package's sentinel and the registry's own,
// since unit resolution errors bubble up from the units package unwrapped.
func isUnknownUnit(err error) bool {
	return errors.Is(err, ErrUnknownUnit) || errors.Is(err, units.ErrUnknownUnit)
}
