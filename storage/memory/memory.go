// Package memory provides an in-memory storage backend. It backs the engine
// tests and lets embedders assemble synthetic catalogs programmatically
// before a container file exists.
package memory

import (
	"fmt"
	"path"

	"clusterfile/storage"
)

// File is an in-memory container. Its root group doubles as the Backend.
type File struct {
	root *Group
}

// NewFile creates an empty in-memory container.
func NewFile() *File {
	return &File{root: newGroup("/", "/")}
}

// Root returns the root group for population.
func (f *File) Root() *Group {
	return f.root
}

// Open implements storage.Backend. The path is ignored; an in-memory file
// is always already "open".
func (f *File) Open(string) (storage.Group, error) {
	return f.root, nil
}

// Group is a mutable in-memory group. Mutation must finish before the group
// is handed to a loader.
type Group struct {
	name     string
	path     string
	order    []storage.Entry
	groups   map[string]*Group
	vars     map[string]*Variable
	attrs    map[string]storage.AttrValue
}

func newGroup(name, p string) *Group {
	return &Group{
		name:   name,
		path:   p,
		groups: make(map[string]*Group),
		vars:   make(map[string]*Variable),
		attrs:  make(map[string]storage.AttrValue),
	}
}

// Name implements storage.Group.
func (g *Group) Name() string { return g.name }

// Path implements storage.Group.
func (g *Group) Path() string { return g.path }

// Children implements storage.Group. Order is insertion order.
func (g *Group) Children() ([]storage.Entry, error) {
	out := make([]storage.Entry, len(g.order))
	copy(out, g.order)
	return out, nil
}

// Group implements storage.Group.
func (g *Group) Group(name string) (storage.Group, error) {
	child, ok := g.groups[name]
	if !ok {
		if _, isVar := g.vars[name]; isVar {
			return nil, fmt.Errorf("%s/%s: %w", g.path, name, storage.ErrNotGroup)
		}
		return nil, fmt.Errorf("%s/%s: %w", g.path, name, storage.ErrNotFound)
	}
	return child, nil
}

// Variable implements storage.Group.
func (g *Group) Variable(name string) (storage.Variable, error) {
	v, ok := g.vars[name]
	if !ok {
		if _, isGroup := g.groups[name]; isGroup {
			return nil, fmt.Errorf("%s/%s: %w", g.path, name, storage.ErrNotVariable)
		}
		return nil, fmt.Errorf("%s/%s: %w", g.path, name, storage.ErrNotFound)
	}
	return v, nil
}

// Attributes implements storage.Group.
func (g *Group) Attributes() (map[string]storage.AttrValue, error) {
	out := make(map[string]storage.AttrValue, len(g.attrs))
	for k, v := range g.attrs {
		out[k] = v
	}
	return out, nil
}

// AddGroup creates and returns a nested group.
func (g *Group) AddGroup(name string) *Group {
	if existing, ok := g.groups[name]; ok {
		return existing
	}
	child := newGroup(name, path.Join(g.path, name))
	g.groups[name] = child
	g.order = append(g.order, storage.Entry{Name: name, Kind: storage.KindGroup})
	return child
}

// AddVariable stores a rectangular array under the group.
func (g *Group) AddVariable(name string, values []float64, shape ...int) (*Variable, error) {
	if len(shape) == 0 {
		shape = []int{len(values)}
	}
	count := 1
	for _, dim := range shape {
		if dim < 0 {
			return nil, fmt.Errorf("variable %s/%s: negative dimension %d", g.path, name, dim)
		}
		count *= dim
	}
	if count != len(values) {
		return nil, fmt.Errorf("variable %s/%s: %d values do not fill shape %v", g.path, name, len(values), shape)
	}
	v := &Variable{
		name:   name,
		path:   path.Join(g.path, name),
		values: append([]float64(nil), values...),
		shape:  append([]int(nil), shape...),
		attrs:  make(map[string]storage.AttrValue),
	}
	if _, exists := g.vars[name]; !exists {
		g.order = append(g.order, storage.Entry{Name: name, Kind: storage.KindVariable})
	}
	g.vars[name] = v
	return v, nil
}

// MustAddVariable is AddVariable for test fixtures; it panics on shape errors.
func (g *Group) MustAddVariable(name string, values []float64, shape ...int) *Variable {
	v, err := g.AddVariable(name, values, shape...)
	if err != nil {
		panic(err)
	}
	return v
}

// SetAttr stores an attribute without a unit.
func (g *Group) SetAttr(name string, value any) *Group {
	g.attrs[name] = storage.AttrValue{Value: value}
	return g
}

// SetAttrUnit stores an attribute with a raw unit string.
func (g *Group) SetAttrUnit(name string, value any, unit string) *Group {
	g.attrs[name] = storage.AttrValue{Value: value, Unit: unit}
	return g
}

// Variable is an in-memory rectangular array.
type Variable struct {
	name   string
	path   string
	values []float64
	shape  []int
	attrs  map[string]storage.AttrValue
}

// Name implements storage.Variable.
func (v *Variable) Name() string { return v.name }

// Path implements storage.Variable.
func (v *Variable) Path() string { return v.path }

// Shape implements storage.Variable.
func (v *Variable) Shape() []int {
	out := make([]int, len(v.shape))
	copy(out, v.shape)
	return out
}

// Read implements storage.Variable.
func (v *Variable) Read() ([]float64, error) {
	out := make([]float64, len(v.values))
	copy(out, v.values)
	return out, nil
}

// Attributes implements storage.Variable.
func (v *Variable) Attributes() (map[string]storage.AttrValue, error) {
	out := make(map[string]storage.AttrValue, len(v.attrs))
	for k, a := range v.attrs {
		out[k] = a
	}
	return out, nil
}

// SetAttr stores an attribute without a unit.
func (v *Variable) SetAttr(name string, value any) *Variable {
	v.attrs[name] = storage.AttrValue{Value: value}
	return v
}

// SetAttrUnit stores an attribute with a raw unit string.
func (v *Variable) SetAttrUnit(name string, value any, unit string) *Variable {
	v.attrs[name] = storage.AttrValue{Value: value, Unit: unit}
	return v
}
