package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"clusterfile/schema"
	"clusterfile/storage"
	"clusterfile/telemetry"
	"clusterfile/units"
)

// builtinSkip lists root children that are part of the file format but not
// observational data. "initials" stores fitting start values.
var builtinSkip = map[string]struct{}{
	"initials": {},
}

// Loader validates and loads cluster files from a storage backend.
type Loader struct {
	backend       storage.Backend
	registry      *units.Registry
	logger        zerolog.Logger
	collector     telemetry.Collector
	unknownPolicy UnknownGroupPolicy
	skip          map[string]struct{}
	parallel      int
}

// New builds a loader over the given backend.
func New(backend storage.Backend, opts ...Option) *Loader {
	l := &Loader{
		backend:       backend,
		registry:      units.Default(),
		logger:        zerolog.Nop(),
		collector:     telemetry.Noop(),
		unknownPolicy: UnknownWarn,
		skip:          make(map[string]struct{}),
		parallel:      1,
	}
	for name := range builtinSkip {
		l.skip[name] = struct{}{}
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load opens the file at path, validates it against the product schemas and
// returns the assembled catalog. The first violation aborts the load; no
// partial catalog is ever returned. Distinct product groups are validated
// concurrently when the loader was built with parallelism above one, with
// the first failure cancelling the rest.
func (l *Loader) Load(ctx context.Context, path string) (*Catalog, error) {
	start := time.Now()
	cat, err := l.load(ctx, path)
	l.collector.ObserveLoadSeconds(time.Since(start).Seconds())
	if err != nil {
		l.collector.IncFailure(ViolationKind(err))
		l.logger.Error().Err(err).Str("file", path).Msg("load failed")
		return nil, err
	}
	l.collector.IncLoad()
	l.logger.Info().Str("file", path).Int("products", len(cat.Groups)).Msg("catalog loaded")
	return cat, nil
}

func (l *Loader) load(ctx context.Context, path string) (*Catalog, error) {
	root, err := l.backend.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	present, err := l.presentProducts(root)
	if err != nil {
		return nil, err
	}

	kinds := make([]schema.ProductKind, 0, len(present))
	for _, p := range present {
		kinds = append(kinds, p.kind)
	}

	rawAttrs, err := root.Attributes()
	if err != nil {
		return nil, fmt.Errorf("root attributes: %w", err)
	}
	resolved, err := ResolveAttributes(l.registry, rawAttrs, kinds)
	if err != nil {
		return nil, err
	}

	if err := l.crossCheckRootAttrs(resolved, kinds); err != nil {
		return nil, err
	}

	results := make([]*DataGroup, len(present))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(1, l.parallel))
	for i, p := range present {
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			dg, err := l.loadProduct(p.kind, p.group)
			if err != nil {
				return err
			}
			results[i] = dg
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	groups := make(map[schema.ProductKind]*DataGroup, len(results))
	for _, dg := range results {
		groups[dg.Kind] = dg
	}
	return &Catalog{RootAttributes: resolved, Groups: groups}, nil
}

type presentProduct struct {
	kind  schema.ProductKind
	group storage.Group
}

// presentProducts enumerates the key groups physically present under the
// root, applying the skip list and the unknown-group policy to everything
// else.
func (l *Loader) presentProducts(root storage.Group) ([]presentProduct, error) {
	children, err := root.Children()
	if err != nil {
		return nil, fmt.Errorf("list root: %w", err)
	}

	var present []presentProduct
	for _, c := range children {
		if _, skip := l.skip[c.Name]; skip {
			continue
		}
		kind, known := schema.ParseKind(c.Name)
		if !known || c.Kind != storage.KindGroup {
			switch l.unknownPolicy {
			case UnknownError:
				return nil, fmt.Errorf("root child %q: %w", c.Name, ErrUnknownGroup)
			case UnknownWarn:
				l.logger.Warn().Str("name", c.Name).Msg("skipping unknown root child")
			}
			continue
		}
		g, err := root.Group(c.Name)
		if err != nil {
			return nil, fmt.Errorf("open key group %q: %w", c.Name, err)
		}
		present = append(present, presentProduct{kind: kind, group: g})
	}
	return present, nil
}

// crossCheckRootAttrs verifies the per-product root attribute dependencies
// declared in the product schemas against the resolver's output.
func (l *Loader) crossCheckRootAttrs(resolved map[string]Attribute, kinds []schema.ProductKind) error {
	for _, kind := range kinds {
		spec, ok := schema.Product(kind)
		if !ok {
			return fmt.Errorf("no schema for product %q", kind)
		}
		for _, name := range spec.RootAttrs {
			if _, ok := resolved[name]; !ok {
				return fmt.Errorf("attribute %q required for product %s: %w",
					name, kind, ErrMissingRequiredAttribute)
			}
		}
	}
	return nil
}

// loadProduct validates one key group's nesting and loads every leaf group
// against the product schema.
func (l *Loader) loadProduct(kind schema.ProductKind, g storage.Group) (*DataGroup, error) {
	spec, ok := schema.Product(kind)
	if !ok {
		return nil, fmt.Errorf("no schema for product %q", kind)
	}

	set, err := validateNesting(g)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", kind, err)
	}
	if set.depth == 2 && !spec.AllowSources {
		return nil, fmt.Errorf("product %s: group %s: source subgroups not permitted: %w",
			kind, g.Path(), ErrUnequalNesting)
	}

	l.logger.Debug().
		Str("product", string(kind)).
		Int("depth", set.depth).
		Int("leaves", len(set.leaves)).
		Msg("validating product group")

	if set.depth == 1 {
		return l.loadLeaf(spec, set.leaves[0])
	}

	dg := &DataGroup{
		Kind:      kind,
		Path:      g.Path(),
		Subgroups: make(map[string]*DataGroup, len(set.leaves)),
	}
	for i, leaf := range set.leaves {
		sub, err := l.loadLeaf(spec, leaf)
		if err != nil {
			return nil, err
		}
		dg.Subgroups[set.names[i]] = sub
	}
	return dg, nil
}

// loadLeaf loads one variables-holding group: its group attributes, the
// required variables, the choice groups and any optional variables present.
func (l *Loader) loadLeaf(spec schema.ProductSchema, g storage.Group) (*DataGroup, error) {
	dg := &DataGroup{
		Kind:      spec.Kind,
		Path:      g.Path(),
		Variables: make(map[string]*Variable),
	}

	if err := l.checkGroupAttrs(spec, g); err != nil {
		return nil, err
	}

	for _, vs := range spec.Required {
		v, err := loadVariable(l.registry, g, vs)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", spec.Kind, err)
		}
		dg.Variables[vs.Name] = v
	}

	for _, choice := range spec.Choices {
		if err := l.loadChoice(spec.Kind, choice, g, dg); err != nil {
			return nil, err
		}
	}

	for _, vs := range spec.Optional {
		present, err := hasVariable(g, vs.Name)
		if err != nil {
			return nil, fmt.Errorf("product %s: group %s: %w", spec.Kind, g.Path(), err)
		}
		if !present {
			continue
		}
		v, err := loadVariable(l.registry, g, vs)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", spec.Kind, err)
		}
		dg.Variables[vs.Name] = v
	}

	return dg, nil
}

// loadChoice loads a one-of variable group: at least one option must be
// present, and every present option brings in its implied variables.
func (l *Loader) loadChoice(kind schema.ProductKind, choice schema.ChoiceSpec, g storage.Group, dg *DataGroup) error {
	var any bool
	for _, opt := range choice.Options {
		present, err := hasVariable(g, opt.Name)
		if err != nil {
			return fmt.Errorf("product %s: group %s: %w", kind, g.Path(), err)
		}
		if !present {
			continue
		}
		any = true

		v, err := loadVariable(l.registry, g, opt)
		if err != nil {
			return fmt.Errorf("product %s: %w", kind, err)
		}
		dg.Variables[opt.Name] = v

		for _, implied := range choice.Implies[opt.Name] {
			iv, err := loadVariable(l.registry, g, implied)
			if err != nil {
				return fmt.Errorf("product %s: %w", kind, err)
			}
			dg.Variables[implied.Name] = iv
		}
	}
	if !any {
		names := make([]string, len(choice.Options))
		for i, opt := range choice.Options {
			names[i] = opt.Name
		}
		return fmt.Errorf("product %s: group %s: none of %v present: %w",
			kind, g.Path(), names, ErrMissingVariable)
	}
	return nil
}

// checkGroupAttrs enforces the attributes a product expects on each leaf
// group, e.g. mass_function's field_unit.
func (l *Loader) checkGroupAttrs(spec schema.ProductSchema, g storage.Group) error {
	if len(spec.GroupAttrs) == 0 {
		return nil
	}
	attrs, err := g.Attributes()
	if err != nil {
		return fmt.Errorf("product %s: attributes of %s: %w", spec.Kind, g.Path(), err)
	}
	for _, as := range spec.GroupAttrs {
		if _, ok := attrs[as.Name]; !ok && as.Required {
			return fmt.Errorf("product %s: group %s: attribute %q: %w",
				spec.Kind, g.Path(), as.Name, ErrMissingVariableAttribute)
		}
	}
	return nil
}
