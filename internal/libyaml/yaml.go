// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0 AND MIT

package libyaml

import (
	"fmt"
	"strings"
)

// Mark is a position in the source: a byte index plus the (line,
// column) it corresponds to, used throughout the pipeline to attach a
// location to tokens, events, and errors.
type Mark struct {
	Index  int
	Line   int // 1-indexed; zero means "no position recorded"
	Column int // stored 0-indexed, rendered 1-indexed by String
}

func (m Mark) String() string {
	if m.Line == 0 {
		return "<unknown position>"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "line %d", m.Line)
	if m.Column != 0 {
		fmt.Fprintf(&b, ", column %d", m.Column+1)
	}
	return b.String()
}

// VersionDirective is the parsed form of a "%YAML major.minor" directive.
type VersionDirective struct {
	major int8
	minor int8
}

func (v *VersionDirective) Major() int { return int(v.major) }
func (v *VersionDirective) Minor() int { return int(v.minor) }

// TagDirective is the parsed form of a "%TAG !handle! prefix" directive.
type TagDirective struct {
	handle []byte
	prefix []byte
}

func (t *TagDirective) GetHandle() string { return string(t.handle) }
func (t *TagDirective) GetPrefix() string { return string(t.prefix) }

// Encoding identifies the byte-level encoding of a YAML stream, as
// determined from (or forced over) its byte-order mark.
type Encoding int

const (
	ANY_ENCODING     Encoding = iota // auto-detect from BOM
	UTF8_ENCODING                    // UTF-8, with or without BOM
	UTF16LE_ENCODING                 // UTF-16, little-endian, BOM required
	UTF16BE_ENCODING                 // UTF-16, big-endian, BOM required
)

// LineBreak selects the line terminator the emitter writes.
type LineBreak int

const (
	ANY_BREAK  LineBreak = iota // emitter's own default (LN)
	CR_BREAK                    // classic Mac: "\r"
	LN_BREAK                    // Unix: "\n"
	CRLN_BREAK                  // DOS/Windows: "\r\n"
)

// QuoteStyle is the caller-facing preference for which quote character
// to use when a scalar's style forces quoting; ScalarStyle resolves it
// to the concrete style the representer/serializer actually emits.
type QuoteStyle int

const (
	QuoteSingle QuoteStyle = iota // prefer '...'
	QuoteDouble                   // prefer "..."
	QuoteLegacy                   // double-quote from the representer path, single-quote from the emitter path
)

// ScalarStyle resolves a QuoteStyle down to the scalar style constant
// the representer/serializer path uses to force quoting.
func (q QuoteStyle) ScalarStyle() ScalarStyle {
	if q == QuoteDouble || q == QuoteLegacy {
		return DOUBLE_QUOTED_SCALAR_STYLE
	}
	return SINGLE_QUOTED_SCALAR_STYLE
}

// ErrorType classifies which pipeline stage raised a libyaml-level error.
type ErrorType int

const (
	NO_ERROR       ErrorType = iota
	MEMORY_ERROR             // allocation failure
	READER_ERROR             // bad encoding or undecodable input
	SCANNER_ERROR            // lexical error while tokenizing
	PARSER_ERROR             // grammar error while building events
	COMPOSER_ERROR           // error while building the node tree
	WRITER_ERROR             // output sink rejected a write
	EMITTER_ERROR            // error while rendering events to text
)

// --------------------------------------------------------------------------
// Node/event/token styles
//
// styleInt is the common underlying width for the three style enums
// below (scalar/sequence/mapping); Event.Style and Node.Style instead
// use the wider Style bitmask so one field can hold whichever kind
// of style applies to that event/node, converting back via the
// ScalarStyle/SequenceStyle/MappingStyle accessor methods.

type styleInt int8

type ScalarStyle styleInt

const (
	ANY_SCALAR_STYLE ScalarStyle = 0

	PLAIN_SCALAR_STYLE         ScalarStyle = 1 << iota
	SINGLE_QUOTED_SCALAR_STYLE
	DOUBLE_QUOTED_SCALAR_STYLE
	LITERAL_SCALAR_STYLE
	FOLDED_SCALAR_STYLE
)

func (style ScalarStyle) String() string {
	switch style {
	case PLAIN_SCALAR_STYLE:
		return "Plain"
	case SINGLE_QUOTED_SCALAR_STYLE:
		return "Single"
	case DOUBLE_QUOTED_SCALAR_STYLE:
		return "Double"
	case LITERAL_SCALAR_STYLE:
		return "Literal"
	case FOLDED_SCALAR_STYLE:
		return "Folded"
	default:
		return ""
	}
}

type SequenceStyle styleInt

const (
	ANY_SEQUENCE_STYLE SequenceStyle = iota
	BLOCK_SEQUENCE_STYLE
	FLOW_SEQUENCE_STYLE
)

type MappingStyle styleInt

const (
	ANY_MAPPING_STYLE MappingStyle = iota
	BLOCK_MAPPING_STYLE
	FLOW_MAPPING_STYLE
)

// --------------------------------------------------------------------------
// Tokens — the Scanner's output, consumed by the Parser

type TokenType int

const (
	NO_TOKEN TokenType = iota

	STREAM_START_TOKEN
	STREAM_END_TOKEN

	VERSION_DIRECTIVE_TOKEN
	TAG_DIRECTIVE_TOKEN
	DOCUMENT_START_TOKEN
	DOCUMENT_END_TOKEN

	BLOCK_SEQUENCE_START_TOKEN
	BLOCK_MAPPING_START_TOKEN
	BLOCK_END_TOKEN

	FLOW_SEQUENCE_START_TOKEN
	FLOW_SEQUENCE_END_TOKEN
	FLOW_MAPPING_START_TOKEN
	FLOW_MAPPING_END_TOKEN

	BLOCK_ENTRY_TOKEN
	FLOW_ENTRY_TOKEN
	KEY_TOKEN
	VALUE_TOKEN

	ALIAS_TOKEN
	ANCHOR_TOKEN
	TAG_TOKEN
	SCALAR_TOKEN
	COMMENT_TOKEN
)

// tokenTypeNames is indexed by TokenType; String() below falls back to
// a generic label for anything out of range rather than panicking.
var tokenTypeNames = [...]string{
	NO_TOKEN:                   "NO_TOKEN",
	STREAM_START_TOKEN:         "STREAM_START_TOKEN",
	STREAM_END_TOKEN:           "STREAM_END_TOKEN",
	VERSION_DIRECTIVE_TOKEN:    "VERSION_DIRECTIVE_TOKEN",
	TAG_DIRECTIVE_TOKEN:        "TAG_DIRECTIVE_TOKEN",
	DOCUMENT_START_TOKEN:       "DOCUMENT_START_TOKEN",
	DOCUMENT_END_TOKEN:         "DOCUMENT_END_TOKEN",
	BLOCK_SEQUENCE_START_TOKEN: "BLOCK_SEQUENCE_START_TOKEN",
	BLOCK_MAPPING_START_TOKEN:  "BLOCK_MAPPING_START_TOKEN",
	BLOCK_END_TOKEN:            "BLOCK_END_TOKEN",
	FLOW_SEQUENCE_START_TOKEN:  "FLOW_SEQUENCE_START_TOKEN",
	FLOW_SEQUENCE_END_TOKEN:    "FLOW_SEQUENCE_END_TOKEN",
	FLOW_MAPPING_START_TOKEN:   "FLOW_MAPPING_START_TOKEN",
	FLOW_MAPPING_END_TOKEN:     "FLOW_MAPPING_END_TOKEN",
	BLOCK_ENTRY_TOKEN:          "BLOCK_ENTRY_TOKEN",
	FLOW_ENTRY_TOKEN:           "FLOW_ENTRY_TOKEN",
	KEY_TOKEN:                  "KEY_TOKEN",
	VALUE_TOKEN:                "VALUE_TOKEN",
	ALIAS_TOKEN:                "ALIAS_TOKEN",
	ANCHOR_TOKEN:               "ANCHOR_TOKEN",
	TAG_TOKEN:                  "TAG_TOKEN",
	SCALAR_TOKEN:               "SCALAR_TOKEN",
	COMMENT_TOKEN:              "COMMENT_TOKEN",
}

func (tt TokenType) String() string {
	if tt < 0 || int(tt) >= len(tokenTypeNames) || tokenTypeNames[tt] == "" {
		return "<unknown token>"
	}
	return tokenTypeNames[tt]
}

// Token is one lexical unit produced by the Scanner. Only the fields
// relevant to Type are populated; the rest are left zero.
type Token struct {
	Type TokenType

	StartMark, EndMark Mark

	// encoding is set only on STREAM_START_TOKEN.
	encoding Encoding

	// Value carries the alias/anchor/scalar text, or a tag/tag-directive
	// handle, depending on Type.
	Value []byte

	// suffix is the tag suffix, set only on TAG_TOKEN.
	suffix []byte

	// prefix is the tag-directive prefix, set only on TAG_DIRECTIVE_TOKEN.
	prefix []byte

	// Style is set only on SCALAR_TOKEN.
	Style ScalarStyle

	// major/minor are set only on VERSION_DIRECTIVE_TOKEN.
	major, minor int8
}

// --------------------------------------------------------------------------
// Events — the Parser's output, consumed by the Composer (or, on the
// write side, produced by the Serializer and consumed by the Emitter)

type EventType int8

const (
	NO_EVENT EventType = iota

	STREAM_START_EVENT
	STREAM_END_EVENT
	DOCUMENT_START_EVENT
	DOCUMENT_END_EVENT
	ALIAS_EVENT
	SCALAR_EVENT
	SEQUENCE_START_EVENT
	SEQUENCE_END_EVENT
	MAPPING_START_EVENT
	MAPPING_END_EVENT
	TAIL_COMMENT_EVENT
)

var eventTypeNames = [...]string{
	NO_EVENT:             "none",
	STREAM_START_EVENT:   "stream start",
	STREAM_END_EVENT:     "stream end",
	DOCUMENT_START_EVENT: "document start",
	DOCUMENT_END_EVENT:   "document end",
	ALIAS_EVENT:          "alias",
	SCALAR_EVENT:         "scalar",
	SEQUENCE_START_EVENT: "sequence start",
	SEQUENCE_END_EVENT:   "sequence end",
	MAPPING_START_EVENT:  "mapping start",
	MAPPING_END_EVENT:    "mapping end",
	TAIL_COMMENT_EVENT:   "tail comment",
}

func (e EventType) String() string {
	if e < 0 || int(e) >= len(eventTypeNames) {
		return fmt.Sprintf("unknown event %d", e)
	}
	return eventTypeNames[e]
}

// Event is one step of the parse/emit event stream: a document
// boundary, a scalar, or the start/end of a sequence or mapping. As
// with Token, only the fields relevant to Type are populated.
type Event struct {
	Type EventType

	StartMark, EndMark Mark

	// encoding is set only on STREAM_START_EVENT.
	encoding Encoding

	// versionDirective/tagDirectives are set only on DOCUMENT_START_EVENT.
	versionDirective *VersionDirective
	tagDirectives    []TagDirective

	HeadComment []byte
	LineComment []byte
	FootComment []byte
	TailComment []byte

	// Anchor is set on SCALAR_EVENT, SEQUENCE_START_EVENT,
	// MAPPING_START_EVENT, and ALIAS_EVENT.
	Anchor []byte

	// Tag is set on SCALAR_EVENT, SEQUENCE_START_EVENT, and
	// MAPPING_START_EVENT.
	Tag []byte

	// Value is set only on SCALAR_EVENT.
	Value []byte

	// Implicit means the document start/end marker was omitted, or
	// (for collection/scalar start events) that the tag was inferred
	// rather than written explicitly.
	Implicit bool

	// quoted_implicit additionally allows tag omission for a quoted
	// (not just plain) scalar; set only on SCALAR_EVENT.
	quoted_implicit bool

	// Style holds whichever style enum applies to Type; read it back
	// through ScalarStyle/SequenceStyle/MappingStyle below.
	Style Style
}

func (e *Event) ScalarStyle() ScalarStyle     { return ScalarStyle(e.Style) }
func (e *Event) SequenceStyle() SequenceStyle { return SequenceStyle(e.Style) }
func (e *Event) MappingStyle() MappingStyle   { return MappingStyle(e.Style) }

func (e *Event) GetEncoding() Encoding                   { return e.encoding }
func (e *Event) GetVersionDirective() *VersionDirective  { return e.versionDirective }
func (e *Event) GetTagDirectives() []TagDirective        { return e.tagDirectives }

// --------------------------------------------------------------------------
// Standard tag URIs (YAML 1.1 core schema, tag:yaml.org,2002:*)

const (
	NULL_TAG      = "tag:yaml.org,2002:null"
	BOOL_TAG      = "tag:yaml.org,2002:bool"
	STR_TAG       = "tag:yaml.org,2002:str"
	INT_TAG       = "tag:yaml.org,2002:int"
	FLOAT_TAG     = "tag:yaml.org,2002:float"
	TIMESTAMP_TAG = "tag:yaml.org,2002:timestamp"

	SEQ_TAG = "tag:yaml.org,2002:seq"
	MAP_TAG = "tag:yaml.org,2002:map"

	// BINARY_TAG and MERGE_TAG aren't part of the C libyaml this
	// package's low-level layer otherwise mirrors; they're needed here
	// for the !!binary and merge-key (<<) schema rules.
	BINARY_TAG = "tag:yaml.org,2002:binary"
	MERGE_TAG  = "tag:yaml.org,2002:merge"

	DEFAULT_SCALAR_TAG   = STR_TAG
	DEFAULT_SEQUENCE_TAG = SEQ_TAG
	DEFAULT_MAPPING_TAG  = MAP_TAG
)
