// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Options shared by the Load and Dump pipelines.

package libyaml

// Options controls the behavior of Load, Dump, and their streaming
// counterparts Loader and Dumper.
type Options struct {
	// Indent is the number of spaces used per indentation level when
	// dumping. Zero selects the implementation default.
	Indent int

	// CompactSeqIndent, when true, renders block sequence items without
	// indenting them an extra level under their parent mapping key.
	CompactSeqIndent bool

	// KnownFields, when true, makes Load reject mapping keys that don't
	// correspond to any field of the destination struct.
	KnownFields bool

	// SingleDocument restricts a Loader to reading a single document,
	// returning io.EOF for every subsequent call to Load.
	SingleDocument bool

	// StreamNodes enables emission of a StreamNode before each composed
	// document and at the end of the stream, carrying the stream's encoding
	// and directives.
	StreamNodes bool

	// AllDocuments, when set on Load, decodes every document in the input
	// into a slice rather than requiring exactly one.
	AllDocuments bool

	// LineWidth is the preferred maximum line length used by the emitter
	// when deciding how to wrap long scalars and flow collections. Zero
	// selects the implementation default (80).
	LineWidth int

	// Unicode enables unescaped output of non-ASCII characters.
	Unicode bool

	// UniqueKeys, when true, makes Load reject a mapping that repeats a key.
	UniqueKeys bool

	// Canonical emits YAML in its canonical, maximally explicit form.
	Canonical bool

	// LineBreak selects the line break style used by the emitter.
	LineBreak LineBreak

	// ExplicitStart emits a leading "---" document start marker.
	ExplicitStart bool

	// ExplicitEnd emits a trailing "..." document end marker.
	ExplicitEnd bool

	// FlowSimpleCollections renders sequences and mappings that contain
	// only scalars in flow style when they fit within LineWidth.
	FlowSimpleCollections bool

	// QuotePreference selects which quote character the emitter and
	// representer prefer when a scalar must be quoted.
	QuotePreference QuoteStyle

	// AliasingRestrictionFunction bounds the amount of node expansion an
	// alias may cause while constructing Go values, guarding against
	// maliciously crafted documents ("billion laughs" attacks). It
	// receives the number of aliases and constructed nodes seen so far
	// and returns false to abort decoding.
	AliasingRestrictionFunction AliasingRestrictionFunction

	// FromLegacy marks options derived from the deprecated Unmarshal/Decoder
	// API, relaxing the single-document trailing-content check that Load
	// otherwise performs.
	FromLegacy bool
}

// AliasingRestrictionFunction reports whether decoding should continue given
// the number of aliases and constructed nodes seen so far.
type AliasingRestrictionFunction func(aliasCount, constructCount int) bool

// DefaultAliasingRestrictions limits alias expansion to a ratio that makes
// "billion laughs" style documents fail quickly while leaving reasonable
// legitimate use of anchors untouched.
func DefaultAliasingRestrictions(aliasCount, constructCount int) bool {
	if aliasCount < alias_ratio_range_low {
		return true
	}
	requiredConstructs := aliasCount
	if aliasCount > alias_ratio_range_high {
		requiredConstructs = alias_ratio_range_high
	}
	return constructCount >= requiredConstructs/10
}

// Option configures an Options value. Options are applied in order, so a
// later option overrides an earlier one touching the same field.
type Option func(*Options) error

// ApplyOptions builds an Options value with package defaults, then applies
// opts in order.
func ApplyOptions(opts ...Option) (*Options, error) {
	o := &Options{
		Indent:                     2,
		CompactSeqIndent:           true,
		LineWidth:                  80,
		Unicode:                    true,
		UniqueKeys:                 true,
		AliasingRestrictionFunction: DefaultAliasingRestrictions,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// CombineOptions bundles several options into one, applying them in order.
// It is useful for building named presets such as V2/V3/V4.
func CombineOptions(opts ...Option) Option {
	return func(o *Options) error {
		for _, opt := range opts {
			if opt == nil {
				continue
			}
			if err := opt(o); err != nil {
				return err
			}
		}
		return nil
	}
}

func WithIndent(spaces int) Option {
	return func(o *Options) error {
		o.Indent = spaces
		return nil
	}
}

func withBool(set func(*Options, bool)) func(...bool) Option {
	return func(args ...bool) Option {
		v := true
		if len(args) > 0 {
			v = args[0]
		}
		return func(o *Options) error {
			set(o, v)
			return nil
		}
	}
}

var WithCompactSeqIndent = withBool(func(o *Options, v bool) { o.CompactSeqIndent = v })
var WithKnownFields = withBool(func(o *Options, v bool) { o.KnownFields = v })
var WithSingleDocument = withBool(func(o *Options, v bool) { o.SingleDocument = v })
var WithStreamNodes = withBool(func(o *Options, v bool) { o.StreamNodes = v })
var WithAllDocuments = withBool(func(o *Options, v bool) { o.AllDocuments = v })
var WithUnicode = withBool(func(o *Options, v bool) { o.Unicode = v })
var WithUniqueKeys = withBool(func(o *Options, v bool) { o.UniqueKeys = v })
var WithCanonical = withBool(func(o *Options, v bool) { o.Canonical = v })
var WithExplicitStart = withBool(func(o *Options, v bool) { o.ExplicitStart = v })
var WithExplicitEnd = withBool(func(o *Options, v bool) { o.ExplicitEnd = v })
var WithFlowSimpleCollections = withBool(func(o *Options, v bool) { o.FlowSimpleCollections = v })

func WithLineWidth(width int) Option {
	return func(o *Options) error {
		o.LineWidth = width
		return nil
	}
}

func WithLineBreak(lb LineBreak) Option {
	return func(o *Options) error {
		o.LineBreak = lb
		return nil
	}
}

func WithQuotePreference(q QuoteStyle) Option {
	return func(o *Options) error {
		o.QuotePreference = q
		return nil
	}
}

func WithAliasingRestrictionFunction(f AliasingRestrictionFunction) Option {
	return func(o *Options) error {
		o.AliasingRestrictionFunction = f
		return nil
	}
}

// LegacyOptions holds the resolved options used by the deprecated
// Decoder/Encoder/Marshal API: 4-space indentation, as in go-yaml v3.
var LegacyOptions = mustApply(
	WithIndent(4),
	WithCompactSeqIndent(false),
	WithLineWidth(80),
	WithUnicode(true),
	WithUniqueKeys(false),
	func(o *Options) error { o.FromLegacy = true; return nil },
)

func mustApply(opts ...Option) *Options {
	o, err := ApplyOptions(opts...)
	if err != nil {
		panic(err)
	}
	return o
}
