package catalog

import (
	"errors"
	"fmt"

	"clusterfile/schema"
	"clusterfile/storage"
	"clusterfile/units"
)

// Uncertainty siblings follow the catalog naming convention: "Δr" is the
// symmetric uncertainty on "r", "Δr,up" and "Δr,down" the asymmetric pair.
func uncertaintyName(name string) string   { return "Δ" + name }
func uncertaintyUpName(name string) string { return "Δ" + name + ",up" }
func uncertaintyLoName(name string) string { return "Δ" + name + ",down" }

// hasVariable reports whether the group holds a variable with the name.
func hasVariable(g storage.Group, name string) (bool, error) {
	_, err := g.Variable(name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, storage.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// loadVariable loads one declared variable from a leaf group: the primary
// array, the uncertainty siblings its schema entry demands, and its unit
// attribute.
func loadVariable(reg *units.Registry, g storage.Group, spec schema.VariableSpec) (*Variable, error) {
	raw, err := g.Variable(spec.Name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("group %s: variable %q: %w", g.Path(), spec.Name, ErrMissingVariable)
		}
		return nil, fmt.Errorf("group %s: variable %q: %w", g.Path(), spec.Name, err)
	}

	v, err := readArray(raw)
	if err != nil {
		return nil, err
	}

	if err := loadVariableAttrs(reg, raw, spec, v); err != nil {
		return nil, err
	}

	if err := loadUncertainties(reg, g, spec, v); err != nil {
		return nil, err
	}

	return v, nil
}

// readArray reads the data array and rejects empty variables.
func readArray(raw storage.Variable) (*Variable, error) {
	values, err := raw.Read()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", raw.Path(), err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("variable %s: %w", raw.Path(), ErrEmptyVariable)
	}
	return &Variable{
		Name:   raw.Name(),
		Values: values,
		Shape:  raw.Shape(),
	}, nil
}

// loadVariableAttrs reads the variable's attributes, resolving the unit
// attribute against the registry and the schema expectation.
func loadVariableAttrs(reg *units.Registry, raw storage.Variable, spec schema.VariableSpec, v *Variable) error {
	attrs, err := raw.Attributes()
	if err != nil {
		return fmt.Errorf("attributes of %s: %w", raw.Path(), err)
	}

	unitRaw, hasUnit := attrs["unit"]
	if !hasUnit && spec.RequireUnit {
		return fmt.Errorf("variable %s: attribute %q: %w", raw.Path(), "unit", ErrMissingVariableAttribute)
	}
	if hasUnit {
		str, ok := unitRaw.Value.(string)
		if !ok {
			return fmt.Errorf("variable %s: unit attribute is not a string (%T)", raw.Path(), unitRaw.Value)
		}
		unit, err := reg.Resolve(str)
		if err != nil {
			return fmt.Errorf("variable %s: %w", raw.Path(), err)
		}
		if spec.Unit != "" && unit != spec.Unit {
			return unitMismatch(reg, fmt.Sprintf("variable %s", raw.Path()), unit, spec.Unit)
		}
		v.Unit = unit
	}

	v.Attrs = make(map[string]Attribute, len(attrs))
	for name, a := range attrs {
		if name == "unit" {
			continue
		}
		attr := Attribute{Name: name, Value: a.Value}
		if a.Unit != "" {
			u, err := reg.Resolve(a.Unit)
			if err != nil {
				return fmt.Errorf("variable %s: attribute %q: %w", raw.Path(), name, err)
			}
			attr.Unit = u
		}
		v.Attrs[name] = attr
	}
	return nil
}

// loadUncertainties attaches the uncertainty siblings declared for the
// variable. A required rule accepts a symmetric sibling or the complete
// up/down pair; present siblings always load, whatever the rule.
func loadUncertainties(reg *units.Registry, g storage.Group, spec schema.VariableSpec, v *Variable) error {
	siblings := []struct {
		role Role
		name string
	}{
		{RoleUncertainty, uncertaintyName(spec.Name)},
		{RoleUncertaintyLo, uncertaintyLoName(spec.Name)},
		{RoleUncertaintyHi, uncertaintyUpName(spec.Name)},
	}

	loaded := make(map[Role]*Variable)
	for _, s := range siblings {
		present, err := hasVariable(g, s.name)
		if err != nil {
			return fmt.Errorf("group %s: %w", g.Path(), err)
		}
		if !present {
			continue
		}
		sup, err := loadSupplementary(reg, g, s.name, v)
		if err != nil {
			return err
		}
		loaded[s.role] = sup
	}

	if spec.Uncertainty == schema.UncertaintyRequired {
		_, symmetric := loaded[RoleUncertainty]
		_, lo := loaded[RoleUncertaintyLo]
		_, hi := loaded[RoleUncertaintyHi]
		if !symmetric && !(lo && hi) {
			return fmt.Errorf("group %s: variable %q needs %q or the %q/%q pair: %w",
				g.Path(), spec.Name,
				uncertaintyName(spec.Name), uncertaintyUpName(spec.Name), uncertaintyLoName(spec.Name),
				ErrMissingSupplementary)
		}
	}

	if len(loaded) > 0 {
		v.Supplementary = loaded
	}
	return nil
}

// loadSupplementary reads one uncertainty sibling and checks it against the
// primary array's shape.
func loadSupplementary(reg *units.Registry, g storage.Group, name string, primary *Variable) (*Variable, error) {
	raw, err := g.Variable(name)
	if err != nil {
		return nil, fmt.Errorf("group %s: variable %q: %w", g.Path(), name, err)
	}
	sup, err := readArray(raw)
	if err != nil {
		return nil, err
	}
	if !shapeEqual(sup.Shape, primary.Shape) {
		return nil, fmt.Errorf("variable %s: shape %v does not match %q shape %v: %w",
			raw.Path(), sup.Shape, primary.Name, primary.Shape, ErrShapeMismatch)
	}
	// Uncertainties inherit no schema entry of their own; their unit loads
	// when present and resolvable.
	if err := loadVariableAttrs(reg, raw, schema.VariableSpec{Name: name}, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func shapeEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
