package deps

import "context"

const (
	DefaultMaxDepth = 50   // Default maximum dependency depth
	DefaultMaxNodes = 5000 // Default maximum packages to expand
)

// Options configures dependency resolution behavior.
type Options struct {
	MaxDepth int                  // Maximum depth to traverse (default: 50)
	MaxNodes int                  // Maximum packages to expand (default: 5000)
	Logger   func(string, ...any) // Warning callback for degraded lookups (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.MaxNodes <= 0 {
		opts.MaxNodes = DefaultMaxNodes
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Source answers "what are the immediate dependencies of package X?".
//
// Lookup returns the raw dependency specifiers for the named package, in the
// order the underlying source declares them. Specifiers may carry version
// constraints (e.g. "musl>=1.2.4") and are normalized by the resolver.
//
// Lookup must be idempotent within one resolution run: repeated calls with
// the same name return the same answer. Implementations return an error
// carrying code PACKAGE_NOT_FOUND when the package has no record, or
// LOOKUP_FAILED when the underlying source could not answer (I/O failure,
// non-zero exit status of an external tool).
type Source interface {
	Lookup(ctx context.Context, name string) ([]string, error)
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func(ctx context.Context, name string) ([]string, error)

// Lookup calls f(ctx, name).
func (f SourceFunc) Lookup(ctx context.Context, name string) ([]string, error) {
	return f(ctx, name)
}
