package memory

import (
	"errors"
	"testing"

	"clusterfile/storage"
)

func TestChildOrderIsInsertionOrder(t *testing.T) {
	f := NewFile()
	root := f.Root()
	root.MustAddVariable("b", []float64{1})
	root.AddGroup("a")
	root.MustAddVariable("c", []float64{2})

	children, err := root.Children()
	if err != nil {
		t.Fatalf("children: %v", err)
	}
	want := []storage.Entry{
		{Name: "b", Kind: storage.KindVariable},
		{Name: "a", Kind: storage.KindGroup},
		{Name: "c", Kind: storage.KindVariable},
	}
	if len(children) != len(want) {
		t.Fatalf("expected %d children, got %d", len(want), len(children))
	}
	for i := range want {
		if children[i] != want[i] {
			t.Fatalf("child %d: expected %+v, got %+v", i, want[i], children[i])
		}
	}
}

func TestAddVariableRejectsRaggedShape(t *testing.T) {
	f := NewFile()
	if _, err := f.Root().AddVariable("x", []float64{1, 2, 3}, 2, 2); err == nil {
		t.Fatal("expected shape error for 3 values in a 2x2 shape")
	}
}

func TestVariableDefaultsToRankOne(t *testing.T) {
	f := NewFile()
	v := f.Root().MustAddVariable("x", []float64{1, 2, 3})
	shape := v.Shape()
	if len(shape) != 1 || shape[0] != 3 {
		t.Fatalf("expected shape [3], got %v", shape)
	}
}

func TestLookupErrors(t *testing.T) {
	f := NewFile()
	root := f.Root()
	root.AddGroup("grp")
	root.MustAddVariable("var", []float64{1})

	if _, err := root.Group("missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := root.Group("var"); !errors.Is(err, storage.ErrNotGroup) {
		t.Fatalf("expected ErrNotGroup, got %v", err)
	}
	if _, err := root.Variable("grp"); !errors.Is(err, storage.ErrNotVariable) {
		t.Fatalf("expected ErrNotVariable, got %v", err)
	}
}

func TestAttributesCopied(t *testing.T) {
	f := NewFile()
	root := f.Root()
	root.SetAttrUnit("l", 10.5, "degree")

	attrs, err := root.Attributes()
	if err != nil {
		t.Fatalf("attributes: %v", err)
	}
	attrs["l"] = storage.AttrValue{Value: 0.0}

	again, _ := root.Attributes()
	if again["l"].Value != 10.5 || again["l"].Unit != "degree" {
		t.Fatal("attribute map must be a copy")
	}
}

func TestPaths(t *testing.T) {
	f := NewFile()
	sub := f.Root().AddGroup("pulsar").AddGroup("sourceA")
	v := sub.MustAddVariable("r", []float64{1, 2})
	if sub.Path() != "/pulsar/sourceA" {
		t.Fatalf("unexpected group path %q", sub.Path())
	}
	if v.Path() != "/pulsar/sourceA/r" {
		t.Fatalf("unexpected variable path %q", v.Path())
	}
}
