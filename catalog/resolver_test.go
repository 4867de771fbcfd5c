package catalog

import (
	"errors"
	"strings"
	"testing"

	"clusterfile/schema"
	"clusterfile/storage"
	"clusterfile/units"
)

func TestResolveAppliesDefaults(t *testing.T) {
	present := map[string]storage.AttrValue{
		"RA":  {Value: 6.02, Unit: "degree"},
		"DEC": {Value: -72.08, Unit: "degree"},
	}
	resolved, err := ResolveAttributes(units.Default(), present, []schema.ProductKind{schema.MassFunction})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	cases := map[string]struct {
		value float64
		unit  units.Unit
	}{
		"FeH":  {-1.00, units.Dex},
		"age":  {12, units.Gyr},
		"Ndot": {0, units.Dimensionless},
	}
	for name, want := range cases {
		attr, ok := resolved[name]
		if !ok {
			t.Fatalf("expected default for %q", name)
		}
		if !attr.Defaulted {
			t.Fatalf("%q must be marked defaulted", name)
		}
		if attr.Value != want.value || attr.Unit != want.unit {
			t.Fatalf("%q: got %v %q, want %v %q", name, attr.Value, attr.Unit, want.value, want.unit)
		}
	}
}

func TestResolveMissingRequiredWithoutDefault(t *testing.T) {
	present := map[string]storage.AttrValue{
		"l": {Value: 10.5},
		"b": {Value: -7.2},
	}
	_, err := ResolveAttributes(units.Default(), present, []schema.ProductKind{schema.Pulsar})
	if !errors.Is(err, ErrMissingRequiredAttribute) {
		t.Fatalf("expected ErrMissingRequiredAttribute, got %v", err)
	}
	if !strings.Contains(err.Error(), `"mu"`) || !strings.Contains(err.Error(), "pulsar") {
		t.Fatalf("error must name attribute and product: %v", err)
	}
}

func TestResolveKeepsFileValues(t *testing.T) {
	present := map[string]storage.AttrValue{
		"l":  {Value: 10.5, Unit: "deg"},
		"b":  {Value: -7.2},
		"mu": {Value: 5.14, Unit: "mas/yr"},
	}
	resolved, err := ResolveAttributes(units.Default(), present, []schema.ProductKind{schema.Pulsar})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	l := resolved["l"]
	if l.Value != 10.5 || l.Unit != units.Degree || l.Defaulted {
		t.Fatalf("unexpected l: %+v", l)
	}
	// missing unit string assumes the declared table unit
	if resolved["b"].Unit != units.Degree {
		t.Fatalf("b should carry the table unit, got %q", resolved["b"].Unit)
	}
}

func TestResolveUnitMismatch(t *testing.T) {
	present := map[string]storage.AttrValue{
		"l":  {Value: 10.5, Unit: "arcmin"},
		"b":  {Value: -7.2},
		"mu": {Value: 5.14},
	}
	_, err := ResolveAttributes(units.Default(), present, []schema.ProductKind{schema.Pulsar})
	if !errors.Is(err, ErrUnitMismatch) {
		t.Fatalf("expected ErrUnitMismatch, got %v", err)
	}
	// arcmin is convertible to degree; the message should say so
	if !strings.Contains(err.Error(), "convertible") {
		t.Fatalf("expected convertibility note in %v", err)
	}
}

func TestResolveUnknownUnit(t *testing.T) {
	present := map[string]storage.AttrValue{
		"l":  {Value: 10.5, Unit: "furlongs"},
		"b":  {Value: -7.2},
		"mu": {Value: 5.14},
	}
	_, err := ResolveAttributes(units.Default(), present, []schema.ProductKind{schema.Pulsar})
	if !errors.Is(err, units.ErrUnknownUnit) {
		t.Fatalf("expected ErrUnknownUnit, got %v", err)
	}
}

func TestResolvePassesThroughExtras(t *testing.T) {
	present := map[string]storage.AttrValue{
		"cluster": {Value: "NGC104"},
		"FeH":     {Value: -0.72},
	}
	resolved, err := ResolveAttributes(units.Default(), present, nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved["cluster"].Value != "NGC104" {
		t.Fatalf("extra attribute lost: %+v", resolved)
	}
	// FeH is in the table but required by nothing requested: file value kept,
	// not defaulted.
	if resolved["FeH"].Value != -0.72 || resolved["FeH"].Defaulted {
		t.Fatalf("unexpected FeH: %+v", resolved["FeH"])
	}
	// attributes absent and not required stay absent
	if _, ok := resolved["age"]; ok {
		t.Fatal("age must not be synthesized when nothing requires it")
	}
}

func TestResolveIsPure(t *testing.T) {
	present := map[string]storage.AttrValue{
		"RA":  {Value: 6.02},
		"DEC": {Value: -72.08},
	}
	a, err := ResolveAttributes(units.Default(), present, []schema.ProductKind{schema.MassFunction})
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	b, err := ResolveAttributes(units.Default(), present, []schema.ProductKind{schema.MassFunction})
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("resolve not deterministic: %d vs %d entries", len(a), len(b))
	}
	for name, attr := range a {
		if b[name] != attr {
			t.Fatalf("resolve not deterministic for %q: %+v vs %+v", name, attr, b[name])
		}
	}
}
