package vtc

import "github.com/vtc-lang/vtc/internal/registry"

// config accumulates Option effects before a Store's Registry is built.
type config struct {
	withStdlib bool
	intrinsics map[string]registry.Handler
}

// Option configures a Store at construction, mirroring the teacher's
// pkg/losp functional options (WithMemoryStore, WithMockProvider, ...).
type Option func(*config)

// WithoutStdlib skips installing the standard intrinsic library, leaving
// the Registry empty except for whatever WithIntrinsic options follow.
func WithoutStdlib() Option {
	return func(c *config) { c.withStdlib = false }
}

// WithIntrinsic registers a host-provided intrinsic under name, layered
// on top of (and able to shadow) the standard library (spec §4.4
// "may be extended by the host before queries begin").
func WithIntrinsic(name string, h registry.Handler) Option {
	return func(c *config) {
		if c.intrinsics == nil {
			c.intrinsics = make(map[string]registry.Handler)
		}
		c.intrinsics[name] = h
	}
}
