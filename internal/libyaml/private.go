// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Internal Parser and Emitter state machines shared by the scanner, parser,
// and emitter stages: buffer sizes, production states, and the scratch data
// the emitter accumulates while analyzing a scalar, tag, or anchor before
// writing it out.

package libyaml

import "io"

const (
	// The size of the input raw buffer.
	input_raw_buffer_size = 512

	// The size of the input buffer.
	// It should be possible to decode the whole raw buffer.
	input_buffer_size = input_raw_buffer_size * 3

	// The size of the output buffer.
	output_raw_buffer_size = 512

	// The size of the output buffer.
	// It should be possible to encode the whole raw buffer.
	output_buffer_size = output_raw_buffer_size * 2

	// The size of other stacks and queues.
	initial_stack_size = 16
	initial_queue_size  = 16
	initial_string_size = 16
)

// simple_key tracks a candidate position for a YAML simple key, so the
// scanner can retroactively turn it into a KEY token once a ':' is seen.
type simple_key struct {
	possible     bool
	required     bool
	token_number int
	mark         Mark
}

// ParserState identifies a production in the parser's state machine.
type ParserState int

const (
	PARSE_STREAM_START_STATE ParserState = iota
	PARSE_IMPLICIT_DOCUMENT_START_STATE
	PARSE_DOCUMENT_START_STATE
	PARSE_DOCUMENT_CONTENT_STATE
	PARSE_DOCUMENT_END_STATE
	PARSE_BLOCK_NODE_STATE
	PARSE_BLOCK_NODE_OR_INDENTLESS_SEQUENCE_STATE
	PARSE_FLOW_NODE_STATE
	PARSE_BLOCK_SEQUENCE_FIRST_ENTRY_STATE
	PARSE_BLOCK_SEQUENCE_ENTRY_STATE
	PARSE_INDENTLESS_SEQUENCE_ENTRY_STATE
	PARSE_BLOCK_MAPPING_FIRST_KEY_STATE
	PARSE_BLOCK_MAPPING_KEY_STATE
	PARSE_BLOCK_MAPPING_VALUE_STATE
	PARSE_FLOW_SEQUENCE_FIRST_ENTRY_STATE
	PARSE_FLOW_SEQUENCE_ENTRY_STATE
	PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_KEY_STATE
	PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_VALUE_STATE
	PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_END_STATE
	PARSE_FLOW_MAPPING_FIRST_KEY_STATE
	PARSE_FLOW_MAPPING_KEY_STATE
	PARSE_FLOW_MAPPING_VALUE_STATE
	PARSE_FLOW_MAPPING_EMPTY_VALUE_STATE
	PARSE_END_STATE
)

func (s ParserState) String() string {
	switch s {
	case PARSE_STREAM_START_STATE:
		return "PARSE_STREAM_START_STATE"
	case PARSE_IMPLICIT_DOCUMENT_START_STATE:
		return "PARSE_IMPLICIT_DOCUMENT_START_STATE"
	case PARSE_DOCUMENT_START_STATE:
		return "PARSE_DOCUMENT_START_STATE"
	case PARSE_DOCUMENT_CONTENT_STATE:
		return "PARSE_DOCUMENT_CONTENT_STATE"
	case PARSE_DOCUMENT_END_STATE:
		return "PARSE_DOCUMENT_END_STATE"
	case PARSE_BLOCK_NODE_STATE:
		return "PARSE_BLOCK_NODE_STATE"
	case PARSE_BLOCK_NODE_OR_INDENTLESS_SEQUENCE_STATE:
		return "PARSE_BLOCK_NODE_OR_INDENTLESS_SEQUENCE_STATE"
	case PARSE_FLOW_NODE_STATE:
		return "PARSE_FLOW_NODE_STATE"
	case PARSE_BLOCK_SEQUENCE_FIRST_ENTRY_STATE:
		return "PARSE_BLOCK_SEQUENCE_FIRST_ENTRY_STATE"
	case PARSE_BLOCK_SEQUENCE_ENTRY_STATE:
		return "PARSE_BLOCK_SEQUENCE_ENTRY_STATE"
	case PARSE_INDENTLESS_SEQUENCE_ENTRY_STATE:
		return "PARSE_INDENTLESS_SEQUENCE_ENTRY_STATE"
	case PARSE_BLOCK_MAPPING_FIRST_KEY_STATE:
		return "PARSE_BLOCK_MAPPING_FIRST_KEY_STATE"
	case PARSE_BLOCK_MAPPING_KEY_STATE:
		return "PARSE_BLOCK_MAPPING_KEY_STATE"
	case PARSE_BLOCK_MAPPING_VALUE_STATE:
		return "PARSE_BLOCK_MAPPING_VALUE_STATE"
	case PARSE_FLOW_SEQUENCE_FIRST_ENTRY_STATE:
		return "PARSE_FLOW_SEQUENCE_FIRST_ENTRY_STATE"
	case PARSE_FLOW_SEQUENCE_ENTRY_STATE:
		return "PARSE_FLOW_SEQUENCE_ENTRY_STATE"
	case PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_KEY_STATE:
		return "PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_KEY_STATE"
	case PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_VALUE_STATE:
		return "PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_VALUE_STATE"
	case PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_END_STATE:
		return "PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_END_STATE"
	case PARSE_FLOW_MAPPING_FIRST_KEY_STATE:
		return "PARSE_FLOW_MAPPING_FIRST_KEY_STATE"
	case PARSE_FLOW_MAPPING_KEY_STATE:
		return "PARSE_FLOW_MAPPING_KEY_STATE"
	case PARSE_FLOW_MAPPING_VALUE_STATE:
		return "PARSE_FLOW_MAPPING_VALUE_STATE"
	case PARSE_FLOW_MAPPING_EMPTY_VALUE_STATE:
		return "PARSE_FLOW_MAPPING_EMPTY_VALUE_STATE"
	case PARSE_END_STATE:
		return "PARSE_END_STATE"
	}
	return "<unknown parser state>"
}

// Comment holds a comment captured by the scanner but not yet attached to
// any token; the parser folds these into head/line/foot comments on the
// tokens and events that surround them.
type Comment struct {
	token_mark Mark
	start_mark Mark
	end_mark   Mark
	head       []byte
	line       []byte
	foot       []byte
}

// Parser holds the state of the scanning and parsing stages: the byte
// reader, the token queue the scanner feeds and the parser drains, and the
// production stack that drives the parser's state machine.
type Parser struct {
	ErrorType   ErrorType
	Problem     string
	ProblemMark Mark

	// Reader stuff

	read_handler func(parser *Parser, buffer []byte) (n int, err error)

	input_reader io.Reader
	input        []byte
	input_pos    int

	eof bool

	buffer     []byte
	buffer_pos int

	unread int

	raw_buffer     []byte
	raw_buffer_pos int

	encoding Encoding
	offset   int
	mark     Mark

	// Scanner stuff

	stream_start_produced bool
	stream_end_produced   bool

	flow_level int

	tokens          []Token
	tokens_head     int
	tokens_parsed   int
	token_available bool

	indent  int
	indents []int

	simple_key_allowed bool
	simple_keys        []simple_key

	// Comments

	comments      []Comment
	comments_head int

	head_comment []byte
	line_comment []byte
	foot_comment []byte
	tail_comment []byte
	stem_comment []byte

	newlines int

	// Parser stuff

	state  ParserState
	states []ParserState
	marks  []Mark

	tag_directives []TagDirective

	hadError bool
}

// EmitterState identifies a production in the emitter's state machine.
type EmitterState int

const (
	EMIT_STREAM_START_STATE EmitterState = iota
	EMIT_FIRST_DOCUMENT_START_STATE
	EMIT_DOCUMENT_START_STATE
	EMIT_DOCUMENT_CONTENT_STATE
	EMIT_DOCUMENT_END_STATE
	EMIT_FLOW_SEQUENCE_FIRST_ITEM_STATE
	EMIT_FLOW_SEQUENCE_TRAIL_ITEM_STATE
	EMIT_FLOW_SEQUENCE_ITEM_STATE
	EMIT_FLOW_MAPPING_FIRST_KEY_STATE
	EMIT_FLOW_MAPPING_TRAIL_KEY_STATE
	EMIT_FLOW_MAPPING_KEY_STATE
	EMIT_FLOW_MAPPING_SIMPLE_VALUE_STATE
	EMIT_FLOW_MAPPING_VALUE_STATE
	EMIT_BLOCK_SEQUENCE_FIRST_ITEM_STATE
	EMIT_BLOCK_SEQUENCE_ITEM_STATE
	EMIT_BLOCK_MAPPING_FIRST_KEY_STATE
	EMIT_BLOCK_MAPPING_KEY_STATE
	EMIT_BLOCK_MAPPING_SIMPLE_VALUE_STATE
	EMIT_BLOCK_MAPPING_VALUE_STATE
	EMIT_END_STATE
)

func (s EmitterState) String() string {
	switch s {
	case EMIT_STREAM_START_STATE:
		return "EMIT_STREAM_START_STATE"
	case EMIT_FIRST_DOCUMENT_START_STATE:
		return "EMIT_FIRST_DOCUMENT_START_STATE"
	case EMIT_DOCUMENT_START_STATE:
		return "EMIT_DOCUMENT_START_STATE"
	case EMIT_DOCUMENT_CONTENT_STATE:
		return "EMIT_DOCUMENT_CONTENT_STATE"
	case EMIT_DOCUMENT_END_STATE:
		return "EMIT_DOCUMENT_END_STATE"
	case EMIT_FLOW_SEQUENCE_FIRST_ITEM_STATE:
		return "EMIT_FLOW_SEQUENCE_FIRST_ITEM_STATE"
	case EMIT_FLOW_SEQUENCE_TRAIL_ITEM_STATE:
		return "EMIT_FLOW_SEQUENCE_TRAIL_ITEM_STATE"
	case EMIT_FLOW_SEQUENCE_ITEM_STATE:
		return "EMIT_FLOW_SEQUENCE_ITEM_STATE"
	case EMIT_FLOW_MAPPING_FIRST_KEY_STATE:
		return "EMIT_FLOW_MAPPING_FIRST_KEY_STATE"
	case EMIT_FLOW_MAPPING_TRAIL_KEY_STATE:
		return "EMIT_FLOW_MAPPING_TRAIL_KEY_STATE"
	case EMIT_FLOW_MAPPING_KEY_STATE:
		return "EMIT_FLOW_MAPPING_KEY_STATE"
	case EMIT_FLOW_MAPPING_SIMPLE_VALUE_STATE:
		return "EMIT_FLOW_MAPPING_SIMPLE_VALUE_STATE"
	case EMIT_FLOW_MAPPING_VALUE_STATE:
		return "EMIT_FLOW_MAPPING_VALUE_STATE"
	case EMIT_BLOCK_SEQUENCE_FIRST_ITEM_STATE:
		return "EMIT_BLOCK_SEQUENCE_FIRST_ITEM_STATE"
	case EMIT_BLOCK_SEQUENCE_ITEM_STATE:
		return "EMIT_BLOCK_SEQUENCE_ITEM_STATE"
	case EMIT_BLOCK_MAPPING_FIRST_KEY_STATE:
		return "EMIT_BLOCK_MAPPING_FIRST_KEY_STATE"
	case EMIT_BLOCK_MAPPING_KEY_STATE:
		return "EMIT_BLOCK_MAPPING_KEY_STATE"
	case EMIT_BLOCK_MAPPING_SIMPLE_VALUE_STATE:
		return "EMIT_BLOCK_MAPPING_SIMPLE_VALUE_STATE"
	case EMIT_BLOCK_MAPPING_VALUE_STATE:
		return "EMIT_BLOCK_MAPPING_VALUE_STATE"
	case EMIT_END_STATE:
		return "EMIT_END_STATE"
	}
	return "<unknown emitter state>"
}

// anchor_data holds the anchor or alias name the emitter is about to write
// for the current node, computed by processAnchor.
type anchor_data struct {
	anchor []byte
	alias  bool
}

// tag_data holds the handle/suffix split of the tag the emitter is about to
// write for the current node, computed by processTag.
type tag_data struct {
	handle []byte
	suffix []byte
}

// scalar_data holds the value and allowed styles for the scalar the emitter
// is about to write, computed by analyzeScalar.
type scalar_data struct {
	value []byte

	multiline bool

	flow_plain_allowed  bool
	block_plain_allowed bool

	single_quoted_allowed bool
	block_allowed         bool

	style ScalarStyle
}

// Emitter holds the state of the emitting stage: the output writer, the
// event queue the serializer feeds and the emitter drains, and the
// production stack that drives the emitter's state machine.
type Emitter struct {
	ErrorType ErrorType
	Problem   string

	write_handler func(emitter *Emitter, buffer []byte) error

	output_buffer *[]byte
	output_writer io.Writer

	buffer     []byte
	buffer_pos int

	raw_buffer     []byte
	raw_buffer_pos int

	encoding Encoding

	canonical               bool
	BestIndent              int
	best_width              int
	unicode                 bool
	line_break              LineBreak
	CompactSequenceIndent   bool

	state  EmitterState
	states []EmitterState

	events     []Event
	events_head int

	indents []int
	indent  int

	flow_level int

	root_context        bool
	mapping_context     bool
	sequence_context    bool
	simple_key_context  bool

	line       int
	column     int
	whitespace bool
	indention  bool
	OpenEnded  bool

	space_above bool
	foot_indent int

	HeadComment     []byte
	LineComment     []byte
	FootComment     []byte
	TailComment     []byte
	key_line_comment []byte

	tag_directives []TagDirective

	anchor_data anchor_data
	tag_data    tag_data
	scalar_data scalar_data

	opened bool
	closed bool
}
