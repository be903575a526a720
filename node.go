package yaml

import "github.com/outflux-dev/goyaml/internal/libyaml"

// Node is the intermediate tree representation of a YAML document: one
// node per scalar, sequence, mapping, alias, or document root. Decoding
// into a Node instead of a concrete Go type preserves structure that a
// plain struct/map target would otherwise discard — tags, anchors,
// per-node style, and source positions — at the cost of one extra
// conversion step before the data is usable as ordinary Go values.
//
// Re-encoding a Node does not reproduce the original bytes; it reflows
// the document using the style hints the Node carries and keeps
// comments attached to the node they were read next to.
//
// A Node target is driven through Unmarshal/Marshal exactly like any
// other Go value:
//
//	var doc struct {
//		Name    string
//		Address yaml.Node
//	}
//	err := yaml.Unmarshal(data, &doc)
//
// or stands alone as the whole decode target:
//
//	var doc Node
//	err := yaml.Unmarshal(data, &doc)
type Node = libyaml.Node

// Kind discriminates the node variants a Node can hold.
type Kind = libyaml.Kind

const (
	DocumentNode = libyaml.DocumentNode // root of one YAML document
	SequenceNode = libyaml.SequenceNode // ordered list
	MappingNode  = libyaml.MappingNode  // ordered key/value pairs
	ScalarNode   = libyaml.ScalarNode   // a leaf value
	AliasNode    = libyaml.AliasNode    // reference to an anchored node
	StreamNode   = libyaml.StreamNode   // stream boundary returned before and after documents
)

// Style records how a node's value was (or should be) written out;
// bits combine for scalars that are both tagged and quoted, etc.
type Style = libyaml.Style

const (
	TaggedStyle       = libyaml.TaggedStyle       // tag shown explicitly rather than inferred
	DoubleQuotedStyle = libyaml.DoubleQuotedStyle
	SingleQuotedStyle = libyaml.SingleQuotedStyle
	LiteralStyle      = libyaml.LiteralStyle // block scalar, "|"
	FoldedStyle       = libyaml.FoldedStyle  // block scalar, ">"
	FlowStyle         = libyaml.FlowStyle    // inline "[...]"/"{...}" rather than block
)

// Marshaler lets a type take over how it's rendered into a Node/YAML
// text during encoding.
type Marshaler = libyaml.Marshaler

// Unmarshaler lets a type take over how it's populated from a decoded
// Node during decoding.
type Unmarshaler = libyaml.Unmarshaler

// IsZeroer reports whether a value should be treated as absent for the
// purpose of the ",omitempty" struct tag. time.Time is the motivating
// implementer: its zero value isn't the same as Go's struct zero value
// check would assume.
type IsZeroer = libyaml.IsZeroer
