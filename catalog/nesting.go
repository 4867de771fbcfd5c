package catalog

import (
	"fmt"

	"clusterfile/storage"
)

// leafSet is the outcome of nesting validation: the groups that directly
// hold variables, and the depth they sit at relative to the key group
// (1 = the key group itself, 2 = named source subgroups).
type leafSet struct {
	depth  int
	leaves []storage.Group
	// names holds the source subgroup name per leaf; empty at depth 1.
	names []string
}

// validateNesting enforces the uniform-nesting rule on a key group: either
// the group holds variables directly and nothing else, or it holds only
// source subgroups which in turn hold only variables. Mixing variables and
// subgroups at one level is ErrMixedNesting; subgroups sitting at unequal
// depths (including anything deeper than one source level) is
// ErrUnequalNesting.
func validateNesting(g storage.Group) (leafSet, error) {
	children, err := g.Children()
	if err != nil {
		return leafSet{}, fmt.Errorf("list %s: %w", g.Path(), err)
	}

	var groups, vars int
	for _, c := range children {
		switch c.Kind {
		case storage.KindGroup:
			groups++
		case storage.KindVariable:
			vars++
		}
	}

	if groups > 0 && vars > 0 {
		return leafSet{}, fmt.Errorf("group %s holds both variables and subgroups: %w", g.Path(), ErrMixedNesting)
	}

	if groups == 0 {
		// Leaf product group at depth 1, possibly empty; missing required
		// variables are reported by the variable loader.
		return leafSet{depth: 1, leaves: []storage.Group{g}}, nil
	}

	set := leafSet{depth: 2}
	for _, c := range children {
		sub, err := g.Group(c.Name)
		if err != nil {
			return leafSet{}, fmt.Errorf("open %s/%s: %w", g.Path(), c.Name, err)
		}
		subChildren, err := sub.Children()
		if err != nil {
			return leafSet{}, fmt.Errorf("list %s: %w", sub.Path(), err)
		}
		var subGroups, subVars int
		for _, sc := range subChildren {
			switch sc.Kind {
			case storage.KindGroup:
				subGroups++
			case storage.KindVariable:
				subVars++
			}
		}
		if subGroups > 0 && subVars > 0 {
			return leafSet{}, fmt.Errorf("group %s holds both variables and subgroups: %w", sub.Path(), ErrMixedNesting)
		}
		if subGroups > 0 {
			return leafSet{}, fmt.Errorf("group %s nests deeper than one source level: %w", sub.Path(), ErrUnequalNesting)
		}
		set.leaves = append(set.leaves, sub)
		set.names = append(set.names, c.Name)
	}
	return set, nil
}
