package catalog

import (
	"fmt"

	"clusterfile/schema"
	"clusterfile/storage"
	"clusterfile/units"
)

// ResolveAttributes resolves the root attributes of a file against the
// cluster attribute table for the requested products. It is a pure function
// of its inputs.
//
// For every table entry required by a requested product: a file-provided
// value is kept after its unit is checked, a missing value is substituted
// from the table default, and a missing value with no default fails with
// ErrMissingRequiredAttribute naming the attribute and product. Attributes
// the table does not require for any requested product pass through
// unchanged when present.
//
// Cluster files routinely omit the unit string on root attributes; an empty
// unit is taken to mean the declared table unit. A provided unit must
// resolve and match the table exactly.
func ResolveAttributes(reg *units.Registry, present map[string]storage.AttrValue, requested []schema.ProductKind) (map[string]Attribute, error) {
	resolved := make(map[string]Attribute, len(present))

	for _, entry := range schema.RootAttributes() {
		raw, inFile := present[entry.Name]

		required := false
		var requiredBy schema.ProductKind
		for _, kind := range requested {
			if entry.IsRequiredFor(kind) {
				required = true
				requiredBy = kind
				break
			}
		}

		switch {
		case inFile:
			unit := entry.Unit
			if raw.Unit != "" {
				got, err := reg.Resolve(raw.Unit)
				if err != nil {
					return nil, fmt.Errorf("root attribute %q: %w", entry.Name, err)
				}
				if got != entry.Unit {
					return nil, unitMismatch(reg, fmt.Sprintf("root attribute %q", entry.Name), got, entry.Unit)
				}
				unit = got
			}
			resolved[entry.Name] = Attribute{Name: entry.Name, Value: raw.Value, Unit: unit}
		case required && entry.Default != nil:
			resolved[entry.Name] = Attribute{
				Name:      entry.Name,
				Value:     *entry.Default,
				Unit:      entry.Unit,
				Defaulted: true,
			}
		case required:
			return nil, fmt.Errorf("attribute %q required for product %s: %w",
				entry.Name, requiredBy, ErrMissingRequiredAttribute)
		}
	}

	// Pass through attributes outside the table, e.g. free-form cluster
	// metadata. Their units must still resolve when provided.
	for name, raw := range present {
		if _, done := resolved[name]; done {
			continue
		}
		if _, known := schema.RootAttributeByName(name); known {
			continue
		}
		attr := Attribute{Name: name, Value: raw.Value}
		if raw.Unit != "" {
			unit, err := reg.Resolve(raw.Unit)
			if err != nil {
				return nil, fmt.Errorf("root attribute %q: %w", name, err)
			}
			attr.Unit = unit
		}
		resolved[name] = attr
	}

	return resolved, nil
}

// unitMismatch phrases an ErrUnitMismatch, noting whether the two units are
// at least dimensionally convertible.
func unitMismatch(reg *units.Registry, subject string, got, want units.Unit) error {
	relation := "incompatible with"
	if reg.Equivalent(got, want) {
		relation = "convertible to, but not"
	}
	return fmt.Errorf("%s: unit %q is %s expected %q: %w", subject, got, relation, want, ErrUnitMismatch)
}
