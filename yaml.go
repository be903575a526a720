//
// Copyright (c) 2011-2019 Canonical Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package yaml implements YAML support for the Go language.
//
// Source code and other details for the project are available at GitHub:
//
//	https://github.com/yaml/go-yaml
package yaml

import (
	"bytes"
	"io"
	"reflect"

	"github.com/outflux-dev/goyaml/internal/libyaml"
)

var noWriter io.Writer

// Re-export types from internal/libyaml
type (
	Node      = libyaml.Node
	Kind      = libyaml.Kind
	Style     = libyaml.Style
	Marshaler = libyaml.Marshaler
	IsZeroer  = libyaml.IsZeroer
)

// Unmarshaler is the interface implemented by types
// that can unmarshal a YAML description of themselves.
type Unmarshaler interface {
	UnmarshalYAML(node *Node) error
}

// Re-export error types
type (
	UnmarshalError = libyaml.UnmarshalError
	TypeError      = libyaml.TypeError
	LoadErrors     = libyaml.LoadErrors
	ConstructError = libyaml.ConstructError
)

// Re-export Kind constants
const (
	DocumentNode = libyaml.DocumentNode
	SequenceNode = libyaml.SequenceNode
	MappingNode  = libyaml.MappingNode
	ScalarNode   = libyaml.ScalarNode
	AliasNode    = libyaml.AliasNode
)

// Re-export Style constants
const (
	TaggedStyle       = libyaml.TaggedStyle
	DoubleQuotedStyle = libyaml.DoubleQuotedStyle
	SingleQuotedStyle = libyaml.SingleQuotedStyle
	LiteralStyle      = libyaml.LiteralStyle
	FoldedStyle       = libyaml.FoldedStyle
	FlowStyle         = libyaml.FlowStyle
)

// LineBreak represents the line ending style for YAML output.
type LineBreak = libyaml.LineBreak

// Line break constants for different platforms.
const (
	LineBreakLN   = libyaml.LN_BREAK   // Unix-style \n (default)
	LineBreakCR   = libyaml.CR_BREAK   // Old Mac-style \r
	LineBreakCRLN = libyaml.CRLN_BREAK // Windows-style \r\n
)

//-----------------------------------------------------------------------------
// Load / Dump API
//-----------------------------------------------------------------------------

// Load decodes the first YAML document with the given options.
//
// Maps and pointers (to a struct, string, int, etc) are accepted as out
// values. If an internal pointer within a struct is not initialized,
// the yaml package will initialize it if necessary. The out parameter
// must not be nil.
//
// The type of the decoded values should be compatible with the respective
// values in out. If one or more values cannot be decoded due to type
// mismatches, decoding continues partially until the end of the YAML
// content, and a *yaml.TypeError is returned with details for all
// missed values.
//
// Struct fields are only loaded if they are exported (have an upper case
// first letter), and are loaded using the field name lowercased as the
// default key. Custom keys may be defined via the "yaml" name in the field
// tag: the content preceding the first comma is used as the key, and the
// following comma-separated options control the loading and dumping behavior.
//
// For example:
//
//	type T struct {
//	    F int `yaml:"a,omitempty"`
//	    B int
//	}
//	var t T
//	yaml.Load([]byte("a: 1\nb: 2"), &t)
//
// See the documentation of Dump for the format of tags and a list of
// supported tag options.
func Load(in []byte, out any, opts ...Option) error {
	return unmarshal(in, out, opts...)
}

// LoadAll decodes all YAML documents from the input.
//
// Returns a slice containing all decoded documents. Each document is
// decoded into an any value (typically map[string]any or []any).
//
// See [Unmarshal] for details about the conversion of YAML into Go values.
func LoadAll(in []byte, opts ...Option) ([]any, error) {
	l, err := NewLoader(bytes.NewReader(in), opts...)
	if err != nil {
		return nil, err
	}
	var docs []any
	for {
		var doc any
		err := l.Load(&doc)
		if err == io.EOF {
			break
		}
		if err != nil {
			return docs, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// A Loader reads and decodes YAML values from an input stream with configurable
// options.
type Loader struct {
	inner *libyaml.Loader
}

// NewLoader returns a new Loader that reads from r with the given options.
//
// The Loader introduces its own buffering and may read data from r beyond the
// YAML values requested.
func NewLoader(r io.Reader, opts ...Option) (*Loader, error) {
	inner, err := libyaml.NewLoader(r, opts...)
	if err != nil {
		return nil, err
	}
	return &Loader{inner: inner}, nil
}

// Load reads the next YAML-encoded document from its input and stores it
// in the value pointed to by v.
//
// Returns io.EOF when there are no more documents to read.
// If WithSingleDocument option was set and a document was already read,
// subsequent calls return io.EOF.
//
// Maps and pointers (to a struct, string, int, etc) are accepted as v
// values. If an internal pointer within a struct is not initialized,
// the yaml package will initialize it if necessary. The v parameter
// must not be nil.
//
// Struct fields are only loaded if they are exported (have an upper case
// first letter), and are loaded using the field name lowercased as the
// default key. Custom keys may be defined via the "yaml" name in the field
// tag: the content preceding the first comma is used as the key, and the
// following comma-separated options control the loading and dumping behavior.
//
// See the documentation of the package-level Load function for more details
// about YAML to Go conversion and tag options.
func (l *Loader) Load(v any) error {
	return l.inner.Load(v)
}

// Dump encodes a value to YAML with the given options.
//
// See [Marshal] for details about the conversion of Go values to YAML.
func Dump(in any, opts ...Option) (out []byte, err error) {
	return libyaml.Dump(in, opts...)
}

// ParserGetEvents parses in and renders its low-level event stream, one
// event per line, using the compact notation of the YAML test suite.
// It's a diagnostic hook for comparing this package's parsing against
// the reference event traces, not part of the Load/Dump data path.
func ParserGetEvents(in []byte) (string, error) {
	return libyaml.ParserGetEvents(in)
}

// DumpAll encodes multiple values as a multi-document YAML stream.
//
// Each value becomes a separate YAML document, separated by "---".
// See [Marshal] for details about the conversion of Go values to YAML.
func DumpAll(in []any, opts ...Option) (out []byte, err error) {
	defer handleErr(&err)
	var buf bytes.Buffer
	d, err := NewDumper(&buf, opts...)
	if err != nil {
		return nil, err
	}
	for _, v := range in {
		if err := d.Dump(v); err != nil {
			return nil, err
		}
	}
	if err := d.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// A Dumper writes YAML values to an output stream with configurable options.
type Dumper struct {
	inner *libyaml.Dumper
}

// NewDumper returns a new Dumper that writes to w with the given options.
//
// The Dumper should be closed after use to flush all data to w.
func NewDumper(w io.Writer, opts ...Option) (*Dumper, error) {
	inner, err := libyaml.NewDumper(w, opts...)
	if err != nil {
		return nil, err
	}
	return &Dumper{inner: inner}, nil
}

// Dump writes the YAML encoding of v to the stream.
//
// If multiple values are dumped to the stream, the second and subsequent
// documents will be preceded with a "---" document separator.
//
// See the documentation for [Marshal] for details about the conversion of Go
// values to YAML.
func (d *Dumper) Dump(v any) error {
	return d.inner.Dump(v)
}

// Close closes the Dumper by writing any remaining data.
// It does not write a stream terminating string "...".
func (d *Dumper) Close() error {
	return d.inner.Close()
}

//-----------------------------------------------------------------------------
// Decode / Encode API
//-----------------------------------------------------------------------------

// A Decoder reads and decodes YAML values from an input stream.
//
// Deprecated: Use Loader instead. Will be removed in v5.
type Decoder struct {
	composer    *libyaml.Composer
	knownFields bool
}

// NewDecoder returns a new decoder that reads from r.
//
// The decoder introduces its own buffering and may read
// data from r beyond the YAML values requested.
//
// Deprecated: Use NewLoader instead. Will be removed in v5.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		composer: libyaml.NewComposerFromReader(r),
	}
}

// KnownFields ensures that the keys in decoded mappings to
// exist as fields in the struct being decoded into.
//
// Deprecated: Use NewLoader with WithKnownFields option instead.
// Will be removed in v5.
func (dec *Decoder) KnownFields(enable bool) {
	dec.knownFields = enable
}

// Decode reads the next YAML-encoded value from its input
// and stores it in the value pointed to by v.
//
// See the documentation for Unmarshal for details about the
// conversion of YAML into a Go value.
//
// Deprecated: Use Loader.Load instead. Will be removed in v5.
func (dec *Decoder) Decode(v any) (err error) {
	defer handleErr(&err)
	node := dec.composer.Parse()
	if node == nil {
		return io.EOF
	}

	libyaml.NewResolver(libyaml.LegacyOptions).Resolve(node)

	c := libyaml.NewConstructor(libyaml.LegacyOptions)
	c.KnownFields = dec.knownFields
	out := reflect.ValueOf(v)
	if out.Kind() == reflect.Pointer && !out.IsNil() {
		out = out.Elem()
	}
	c.Construct(node, out)
	if len(c.TypeErrors) > 0 {
		return &LoadErrors{Errors: c.TypeErrors}
	}
	return nil
}

// An Encoder writes YAML values to an output stream.
//
// Deprecated: Use Dumper instead. Will be removed in v5.
type Encoder struct {
	encoder *libyaml.Encoder
}

// NewEncoder returns a new encoder that writes to w.
// The Encoder should be closed after use to flush all data
// to w.
//
// Deprecated: Use NewDumper instead. Will be removed in v5.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		encoder: libyaml.NewEncoder(w, libyaml.LegacyOptions),
	}
}

// Encode writes the YAML encoding of v to the stream.
// If multiple items are encoded to the stream, the
// second and subsequent document will be preceded
// with a "---" document separator, but the first will not.
//
// See the documentation for Marshal for details about the conversion of Go
// values to YAML.
//
// Deprecated: Use Dumper.Dump instead. Will be removed in v5.
func (e *Encoder) Encode(v any) (err error) {
	defer handleErr(&err)
	e.encoder.MarshalDoc("", reflect.ValueOf(v))
	return nil
}

// SetIndent changes the used indentation used when encoding.
//
// Deprecated: Use NewDumper with WithIndent option instead. Will be removed in v5.
func (e *Encoder) SetIndent(spaces int) {
	if spaces < 0 {
		panic("yaml: cannot indent to a negative number of spaces")
	}
	e.encoder.Indent = spaces
}

// CompactSeqIndent makes it so that '- ' is considered part of the indentation.
//
// Deprecated: Use NewDumper with WithCompactSeqIndent option instead. Will be removed in v5.
func (e *Encoder) CompactSeqIndent() {
	e.encoder.Emitter.CompactSequenceIndent = true
}

// DefaultSeqIndent makes it so that '- ' is not considered part of the indentation.
//
// Deprecated: This is the default behavior for Dumper. Will be removed in v5.
func (e *Encoder) DefaultSeqIndent() {
	e.encoder.Emitter.CompactSequenceIndent = false
}

// Close closes the encoder by writing any remaining data.
// It does not write a stream terminating string "...".
//
// Deprecated: Use Dumper.Close instead. Will be removed in v5.
func (e *Encoder) Close() (err error) {
	defer handleErr(&err)
	e.encoder.Finish()
	return nil
}

//-----------------------------------------------------------------------------
// Unmarshal / Marshal API
//-----------------------------------------------------------------------------

// Unmarshal decodes the first document found within the in byte slice
// and assigns decoded values into the out value.
//
// Maps and pointers (to a struct, string, int, etc) are accepted as out
// values. If an internal pointer within a struct is not initialized,
// the yaml package will initialize it if necessary for unmarshalling
// the provided data. The out parameter must not be nil.
//
// The type of the decoded values should be compatible with the respective
// values in out. If one or more values cannot be decoded due to a type
// mismatches, decoding continues partially until the end of the YAML
// content, and a *yaml.TypeError is returned with details for all
// missed values.
//
// Struct fields are only unmarshalled if they are exported (have an
// upper case first letter), and are unmarshalled using the field name
// lowercased as the default key. Custom keys may be defined via the
// "yaml" name in the field tag: the content preceding the first comma
// is used as the key, and the following comma-separated options are
// used to tweak the marshaling process (see Marshal).
// Conflicting names result in a runtime error.
//
// For example:
//
//	type T struct {
//	    F int `yaml:"a,omitempty"`
//	    B int
//	}
//	var t T
//	yaml.Unmarshal([]byte("a: 1\nb: 2"), &t)
//
// See the documentation of Marshal for the format of tags and a list of
// supported tag options.
//
// Deprecated: Use Load instead. Will be removed in v5.
func Unmarshal(in []byte, out any) (err error) {
	return unmarshal(in, out, V3)
}

func unmarshal(in []byte, out any, opts ...Option) (err error) {
	defer handleErr(&err)
	o, err := libyaml.ApplyOptions(opts...)
	if err != nil {
		return err
	}

	// Check if out implements yaml.Unmarshaler
	if u, ok := out.(Unmarshaler); ok {
		p := libyaml.NewComposer(in)
		defer p.Destroy()
		node := p.Parse()
		if node != nil {
			return u.UnmarshalYAML(node)
		}
		return nil
	}

	c := libyaml.NewConstructor(o)
	p := libyaml.NewComposer(in)
	defer p.Destroy()
	node := p.Parse()
	if node != nil {
		libyaml.NewResolver(o).Resolve(node)
		v := reflect.ValueOf(out)
		if v.Kind() == reflect.Pointer && !v.IsNil() {
			v = v.Elem()
		}
		c.Construct(node, v)
	}
	if len(c.TypeErrors) > 0 {
		return &LoadErrors{Errors: c.TypeErrors}
	}
	return nil
}

// Marshal serializes the value provided into a YAML document. The structure
// of the generated document will reflect the structure of the value itself.
// Maps and pointers (to struct, string, int, etc) are accepted as the in value.
//
// Struct fields are only marshaled if they are exported (have an upper case
// first letter), and are marshaled using the field name lowercased as the
// default key. Custom keys may be defined via the "yaml" name in the field
// tag: the content preceding the first comma is used as the key, and the
// following comma-separated options are used to tweak the marshaling process.
// Conflicting names result in a runtime error.
//
// The field tag format accepted is:
//
//	`(...) yaml:"[<key>][,<flag1>[,<flag2>]]" (...)`
//
// The following flags are currently supported:
//
//	omitempty    Only include the field if it's not set to the zero
//	             value for the type or to empty slices or maps.
//	             Zero valued structs will be omitted if all their public
//	             fields are zero, unless they implement an IsZero
//	             method (see the IsZeroer interface type), in which
//	             case the field will be excluded if IsZero returns true.
//
//	flow         Marshal using a flow style (useful for structs,
//	             sequences and maps).
//
//	inline       Inline the field, which must be a struct or a map,
//	             causing all of its fields or keys to be processed as if
//	             they were part of the outer struct. For maps, keys must
//	             not conflict with the yaml keys of other struct fields.
//	             See doc/inline-tags.md for detailed examples and use cases.
//
// In addition, if the key is "-", the field is ignored.
//
// For example:
//
//	type T struct {
//	    F int `yaml:"a,omitempty"`
//	    B int
//	}
//	yaml.Marshal(&T{B: 2}) // Returns "b: 2\n"
//	yaml.Marshal(&T{F: 1}} // Returns "a: 1\nb: 0\n"
//
// Deprecated: Use Dump instead. Will be removed in v5.
func Marshal(in any) (out []byte, err error) {
	defer handleErr(&err)
	e := libyaml.NewEncoder(noWriter, libyaml.LegacyOptions)
	defer e.Destroy()
	e.MarshalDoc("", reflect.ValueOf(in))
	e.Finish()
	out = e.Out
	return out, err
}

//-----------------------------------------------------------------------------
// Error function
//-----------------------------------------------------------------------------

func handleErr(err *error) {
	if v := recover(); v != nil {
		if e, ok := v.(*libyaml.YAMLError); ok {
			*err = e.Err
		} else {
			panic(v)
		}
	}
}
