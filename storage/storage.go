// Package storage defines the contract between the catalog engine and the
// container format holding the observational data. The engine never touches
// the binary encoding; it consumes named groups, named variables and typed
// attributes through these interfaces and nothing else.
package storage

import "errors"

// Backend errors.
var (
	ErrNotFound    = errors.New("object not found")
	ErrNotGroup    = errors.New("object is not a group")
	ErrNotVariable = errors.New("object is not a variable")
)

// ChildKind classifies an entry inside a group.
type ChildKind int

const (
	// KindGroup marks a nested group.
	KindGroup ChildKind = iota
	// KindVariable marks a named array of values.
	KindVariable
)

// Entry is one immediate child of a group.
type Entry struct {
	Name string
	Kind ChildKind
}

// AttrValue is an attribute value with its optional raw unit string.
type AttrValue struct {
	Value any
	Unit  string
}

// Backend opens container files.
type Backend interface {
	Open(path string) (Group, error)
}

// Group is a named collection of subgroups, variables and attributes.
type Group interface {
	Name() string
	// Path is the slash-joined location from the file root.
	Path() string
	// Children lists immediate children in a deterministic order.
	Children() ([]Entry, error)
	Group(name string) (Group, error)
	Variable(name string) (Variable, error)
	Attributes() (map[string]AttrValue, error)
}

// Variable is a named rectangular numeric array.
type Variable interface {
	Name() string
	Path() string
	// Shape has rank >= 1; the product of its entries is the value count.
	Shape() []int
	// Read returns the values in row-major order.
	Read() ([]float64, error)
	Attributes() (map[string]AttrValue, error)
}
