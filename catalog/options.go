package catalog

import (
	"fmt"

	"github.com/rs/zerolog"

	"clusterfile/telemetry"
	"clusterfile/units"
)

// UnknownGroupPolicy decides what happens when the file root contains a
// child matching no product kind.
type UnknownGroupPolicy string

const (
	// UnknownIgnore skips unknown children silently.
	UnknownIgnore UnknownGroupPolicy = "ignore"
	// UnknownWarn skips unknown children with a warning log.
	UnknownWarn UnknownGroupPolicy = "warn"
	// UnknownError aborts the load on the first unknown child.
	UnknownError UnknownGroupPolicy = "error"
)

// ParseUnknownGroupPolicy validates a policy name from configuration.
func ParseUnknownGroupPolicy(s string) (UnknownGroupPolicy, error) {
	switch UnknownGroupPolicy(s) {
	case UnknownIgnore, UnknownWarn, UnknownError:
		return UnknownGroupPolicy(s), nil
	case "":
		return UnknownWarn, nil
	default:
		return "", fmt.Errorf("unknown group policy %q (want ignore, warn or error)", s)
	}
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger attaches a logger; the default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// WithCollector attaches a telemetry collector; the default is a no-op.
func WithCollector(c telemetry.Collector) Option {
	return func(l *Loader) {
		if c != nil {
			l.collector = c
		}
	}
}

// WithRegistry replaces the default unit registry, e.g. one extended with
// survey-specific aliases.
func WithRegistry(reg *units.Registry) Option {
	return func(l *Loader) {
		if reg != nil {
			l.registry = reg
		}
	}
}

// WithUnknownGroupPolicy sets the handling of root children that match no
// product kind. The default is UnknownWarn.
func WithUnknownGroupPolicy(p UnknownGroupPolicy) Option {
	return func(l *Loader) { l.unknownPolicy = p }
}

// WithSkipGroups adds root children to skip without reporting, on top of the
// built-in skip list.
func WithSkipGroups(names ...string) Option {
	return func(l *Loader) {
		for _, n := range names {
			l.skip[n] = struct{}{}
		}
	}
}

// WithParallelism caps the number of product groups validated concurrently.
// Values below two keep the load sequential.
func WithParallelism(n int) Option {
	return func(l *Loader) {
		if n > 1 {
			l.parallel = n
		}
	}
}
