// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"strconv"
	"strings"
)

// Kind identifies the shape of a [Node]: scalar, sequence, mapping, a
// document wrapper, an alias back-reference, or the root of a multi-document
// stream.
type Kind uint32

const (
	DocumentNode Kind = 1 << iota
	SequenceNode
	MappingNode
	ScalarNode
	AliasNode
	// StreamNode marks a stream boundary when stream-level composition is
	// requested: one is returned before each document and one at the end of
	// the stream. It has no Content; it carries the stream's encoding and the
	// version/tag directives of the document that follows it.
	StreamNode
)

// Style holds presentation hints for a [Node]. The bits are independent of
// the lower-level [ScalarStyle]/[SequenceStyle]/[MappingStyle] used by the
// event stream; the composer translates from one space to the other.
type Style uint32

const (
	TaggedStyle Style = 1 << iota
	DoubleQuotedStyle
	SingleQuotedStyle
	LiteralStyle
	FoldedStyle
	FlowStyle
)

// StreamVersionDirective captures a stream's %YAML directive, recorded on
// the StreamNode that precedes the document carrying it.
type StreamVersionDirective struct {
	Major, Minor int
}

// StreamTagDirective captures one %TAG directive.
type StreamTagDirective struct {
	Handle, Prefix string
}

// Unmarshaler is implemented by types that can decode a [Node]
// representation of themselves. Analogous to the root package's Unmarshaler,
// duplicated here because internal/libyaml cannot import the root package.
type Unmarshaler interface {
	UnmarshalYAML(node *Node) error
}

// Node represents an element in a YAML document. Nodes originate from the
// Composer while decoding, and are built by the Representer while encoding.
//
// Values that make use of the yaml.Node type interact with the rest of the
// API the same way any other type would do, by encoding and decoding yaml
// data directly via its dynamic top-level content.
type Node struct {
	// Kind defines whether the node is a document, a mapping, a sequence,
	// a scalar value, or an alias to another node. The specific data type
	// of scalar nodes may be obtained via the ShortTag method.
	Kind Kind

	// Style allows customizing the apperance of the node in the tree.
	Style Style

	// Tag holds the YAML tag identifying the data type of the value.
	// When decoding, this field will always be present in full form, with
	// the short !!name form resolved with knowledge of the default tags.
	Tag string

	// Value holds the unescaped scalar value, for scalar nodes.
	Value string

	// Anchor holds the anchor name for this node, which allows aliases
	// to point to it.
	Anchor string

	// Alias holds the node that this alias points to.
	Alias *Node

	// Content holds contained nodes for documents, mappings, and sequences.
	Content []*Node

	// HeadComment, LineComment, and FootComment contain comments
	// associated with the node. HeadComment are associated with the
	// preceding node, LineComment with the following node, and FootComment
	// are foot comments that are processed at the end of a block.
	HeadComment string
	LineComment string
	FootComment string

	// tailComment is not exported since it's not generally useful to
	// know the position of a comment relative to its node; it exists
	// purely to round-trip comment placement through the emitter.

	Line   int
	Column int

	// Encoding holds the stream's byte encoding. It is set only on a
	// StreamNode.
	Encoding Encoding

	// Version holds the stream's %YAML directive, if any.
	Version *StreamVersionDirective

	// TagDirectives holds the stream's %TAG directives, if any.
	TagDirectives []StreamTagDirective
}

// IsZero returns whether the node has all the zero values for all fields
// and methods. It is useful for checking if a struct member that has a
// Node type was filled with a value at all.
func (n *Node) IsZero() bool {
	return n.Kind == 0 && n.Style == 0 && n.Tag == "" && n.Value == "" &&
		n.Anchor == "" && n.Alias == nil && n.Content == nil &&
		n.HeadComment == "" && n.LineComment == "" && n.FootComment == "" &&
		n.Line == 0 && n.Column == 0
}

// ShortTag returns the short form of the Node's tag, suitable for comparisons
// against the well-known tag constants, with any resolution of implicit
// tags already having taken place when the node was composed.
func (n *Node) ShortTag() string {
	if n.indicatedString() {
		return strTag
	}
	if n.Tag == "" {
		if n.Kind == ScalarNode {
			tag, _ := resolve("", n.Value)
			return tag
		}
		return ""
	}
	return shortTag(n.Tag)
}

// indicatedString reports whether the scalar's explicit style forces it to
// be treated as a string regardless of what its content would otherwise
// resolve to (e.g. a quoted "123" must stay a string, not become an int).
func (n *Node) indicatedString() bool {
	return n.Kind == ScalarNode &&
		(shortTag(n.Tag) == strTag) &&
		(n.Style&(SingleQuotedStyle|DoubleQuotedStyle|LiteralStyle|FoldedStyle) != 0)
}

// String returns a readable textual representation of the node, merely for
// debugging purposes; it is not related to the node's YAML content.
func (n *Node) String() string {
	var b strings.Builder
	b.WriteString("Node{Kind: ")
	switch n.Kind {
	case DocumentNode:
		b.WriteString("Document")
	case SequenceNode:
		b.WriteString("Sequence")
	case MappingNode:
		b.WriteString("Mapping")
	case ScalarNode:
		b.WriteString("Scalar")
	case AliasNode:
		b.WriteString("Alias")
	case StreamNode:
		b.WriteString("Stream")
	default:
		b.WriteString(strconv.Itoa(int(n.Kind)))
	}
	if n.Value != "" {
		b.WriteString(", Value: ")
		b.WriteString(strconv.Quote(n.Value))
	}
	b.WriteString("}")
	return b.String()
}
