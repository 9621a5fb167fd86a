//  Copyright (c) 2015 Couchbase, Inc.

package cbor

import "fmt"

// Options configures a single Encode or Decode call, replacing the
// teacher's Config type (the chainable-setter shape is identical: build
// with NewOptions/DefaultOptions, narrow with With* setters).
type Options struct {
	// Canonical selects the deterministic output form of spec.md §4.2:
	// shortest argument widths, sorted map keys, and exact-only float
	// narrowing. Widths and float narrowing are the same regardless of this
	// flag (the encoder never has a reason to pad); turning it off only
	// keeps map keys in insertion order.
	Canonical bool

	// StrictKeys makes a duplicate key in a decoded map invoke
	// ErrorHandler with KindDuplicateMapKey (the default AbortHandler then
	// fails the call). When false, the later value silently replaces the
	// earlier one. Default true.
	StrictKeys bool

	// HasEOF and EOF implement the top-level empty-source sentinel of
	// spec.md §6/§7: if HasEOF, Decode on an empty source returns (EOF,
	// nil) instead of aborting with KindUnderflow.
	HasEOF bool
	EOF    Value

	// ErrorHandler receives every Kind the decoder or encoder raises and
	// decides whether to substitute a replacement value or abort. Defaults
	// to AbortHandler.
	ErrorHandler Handler

	// Registry supplies the tag read/write handlers consulted by the
	// decoder and encoder (§4.5/C6). Defaults to DefaultRegistry().
	Registry *TagRegistry

	// Logger receives diagnostic Tracef/Errorf calls during decode/encode.
	// Defaults to the package-level fallback logger (log.go).
	Logger Logger

	// MaxDepth bounds container nesting so a hostile stream cannot force
	// unbounded recursion (spec.md §5, missing from the source). 0 means
	// unlimited.
	MaxDepth int

	// MaxLength bounds the size of a single length-prefixed allocation
	// (byte string, text string, array or map length) the decoder will
	// honor before erroring out, guarding against a hostile declared
	// length forcing a huge allocation (spec.md §5). 0 means unlimited.
	MaxLength int64
}

// NewOptions returns an Options with the zero-value-unsafe fields filled in
// (ErrorHandler, Registry, Logger) and everything else zeroed, mirroring the
// teacher's NewDefaultConfig() baseline before any With* call narrows it.
func NewOptions() *Options {
	return &Options{
		ErrorHandler: AbortHandler,
		Registry:     DefaultRegistry(),
		Logger:       log,
	}
}

// DefaultOptions returns the configuration this codec round-trips under by
// default: canonical output, strict unique map keys, no EOF sentinel (an
// empty source aborts), a 1000-level depth ceiling and a 64MiB length
// ceiling.
func DefaultOptions() *Options {
	opts := NewOptions()
	opts.Canonical = true
	opts.StrictKeys = true
	opts.MaxDepth = 1000
	opts.MaxLength = 64 << 20
	return opts
}

// WithCanonical narrows Canonical, chainable like the teacher's
// Config.ContainerEncoding.
func (o Options) WithCanonical(b bool) *Options {
	o.Canonical = b
	return &o
}

// WithStrictKeys narrows StrictKeys.
func (o Options) WithStrictKeys(b bool) *Options {
	o.StrictKeys = b
	return &o
}

// WithEOF sets the top-level empty-source sentinel.
func (o Options) WithEOF(v Value) *Options {
	o.HasEOF = true
	o.EOF = v
	return &o
}

// WithErrorHandler replaces the injectable error handler.
func (o Options) WithErrorHandler(h Handler) *Options {
	if h == nil {
		h = AbortHandler
	}
	o.ErrorHandler = h
	return &o
}

// WithRegistry replaces the tag registry.
func (o Options) WithRegistry(r *TagRegistry) *Options {
	if r == nil {
		r = DefaultRegistry()
	}
	o.Registry = r
	return &o
}

// WithLogger replaces the diagnostic logger.
func (o Options) WithLogger(l Logger) *Options {
	o.Logger = l
	return &o
}

// WithMaxDepth replaces the nesting ceiling.
func (o Options) WithMaxDepth(n int) *Options {
	o.MaxDepth = n
	return &o
}

// WithMaxLength replaces the per-item allocation ceiling.
func (o Options) WithMaxLength(n int64) *Options {
	o.MaxLength = n
	return &o
}

func (o *Options) String() string {
	return fmt.Sprintf(
		"canonical:%v strict-keys:%v max-depth:%d max-length:%d",
		o.Canonical, o.StrictKeys, o.MaxDepth, o.MaxLength,
	)
}

func (o *Options) errorHandler() Handler {
	if o.ErrorHandler != nil {
		return o.ErrorHandler
	}
	return AbortHandler
}

func (o *Options) registry() *TagRegistry {
	if o.Registry != nil {
		return o.Registry
	}
	return DefaultRegistry()
}

func (o *Options) logger() Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log
}
