// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0 AND MIT

package libyaml

import (
	"io"
)

// --------------------------------------------------------------------------
// Parser construction and input wiring

// NewParser allocates a Parser with its token/byte buffers pre-sized;
// it still needs SetInputString or SetInputReader before Parse/Scan.
func NewParser() Parser {
	return Parser{
		raw_buffer: make([]byte, 0, input_raw_buffer_size),
		buffer:     make([]byte, 0, input_buffer_size),
	}
}

// Delete resets a Parser to its zero value, releasing its buffers.
func (parser *Parser) Delete() {
	*parser = Parser{}
}

// readFromString is the read_handler installed by SetInputString: it
// serves bytes out of the in-memory input slice rather than an
// io.Reader.
func readFromString(parser *Parser, buffer []byte) (n int, err error) {
	if parser.input_pos == len(parser.input) {
		return 0, io.EOF
	}
	n = copy(buffer, parser.input[parser.input_pos:])
	parser.input_pos += n
	return n, nil
}

// readFromReader is the read_handler installed by SetInputReader: it
// forwards directly to the caller-supplied io.Reader.
func readFromReader(parser *Parser, buffer []byte) (n int, err error) {
	return parser.input_reader.Read(buffer)
}

// SetInputString points the parser at an in-memory byte slice. Mutually
// exclusive with SetInputReader; calling either twice panics.
func (parser *Parser) SetInputString(input []byte) {
	if parser.read_handler != nil {
		panic("must set the input source only once")
	}
	parser.read_handler = readFromString
	parser.input = input
	parser.input_pos = 0
}

// SetInputReader points the parser at a streaming io.Reader.
func (parser *Parser) SetInputReader(r io.Reader) {
	if parser.read_handler != nil {
		panic("must set the input source only once")
	}
	parser.read_handler = readFromReader
	parser.input_reader = r
}

// SetEncoding pins the source encoding instead of letting the reader
// auto-detect it from a BOM.
func (parser *Parser) SetEncoding(encoding Encoding) {
	if parser.encoding != ANY_ENCODING {
		panic("must set the encoding only once")
	}
	parser.encoding = encoding
}

// GetPendingComments exposes the parser's folded-comment queue so a
// caller walking tokens directly (cmd/go-yaml's token dump, notably)
// can attach comments itself.
func (parser *Parser) GetPendingComments() []Comment {
	return parser.comments
}

// GetCommentsHead reports how far into the comment queue GetPendingComments'
// caller has already consumed.
func (parser *Parser) GetCommentsHead() int {
	return parser.comments_head
}

// --------------------------------------------------------------------------
// Parser token queue management

// insertToken inserts token at queue position pos (or appends it when
// pos < 0), compacting the queue's already-dequeued prefix out of the
// backing array first if the array is full.
func (parser *Parser) insertToken(pos int, token *Token) {
	if parser.tokens_head > 0 && len(parser.tokens) == cap(parser.tokens) {
		if parser.tokens_head != len(parser.tokens) {
			copy(parser.tokens, parser.tokens[parser.tokens_head:])
		}
		parser.tokens = parser.tokens[:len(parser.tokens)-parser.tokens_head]
		parser.tokens_head = 0
	}
	parser.tokens = append(parser.tokens, *token)
	if pos < 0 {
		return
	}
	copy(parser.tokens[parser.tokens_head+pos+1:], parser.tokens[parser.tokens_head+pos:])
	parser.tokens[parser.tokens_head+pos] = *token
}

// --------------------------------------------------------------------------
// Emitter construction and output wiring

// NewEmitter allocates an Emitter with its buffers and stacks pre-sized
// and best_width set to "unset"; it still needs SetOutputString or
// SetOutputWriter before Emit.
func NewEmitter() Emitter {
	return Emitter{
		buffer:     make([]byte, output_buffer_size),
		raw_buffer: make([]byte, 0, output_raw_buffer_size),
		states:     make([]EmitterState, 0, initial_stack_size),
		events:     make([]Event, 0, initial_queue_size),
		best_width: -1,
	}
}

// Delete resets an Emitter to its zero value, releasing its buffers.
func (emitter *Emitter) Delete() {
	*emitter = Emitter{}
}

// writeToString is the write_handler installed by SetOutputString: it
// appends emitted bytes onto the caller's output slice.
func writeToString(emitter *Emitter, buffer []byte) error {
	*emitter.output_buffer = append(*emitter.output_buffer, buffer...)
	return nil
}

// writeToWriter is the write_handler installed by SetOutputWriter: it
// forwards emitted bytes to the caller-supplied io.Writer.
func writeToWriter(emitter *Emitter, buffer []byte) error {
	_, err := emitter.output_writer.Write(buffer)
	return err
}

// SetOutputString points the emitter at an in-memory byte slice it will
// append to. Mutually exclusive with SetOutputWriter.
func (emitter *Emitter) SetOutputString(output_buffer *[]byte) {
	if emitter.write_handler != nil {
		panic("must set the output target only once")
	}
	emitter.write_handler = writeToString
	emitter.output_buffer = output_buffer
}

// SetOutputWriter points the emitter at a streaming io.Writer.
func (emitter *Emitter) SetOutputWriter(w io.Writer) {
	if emitter.write_handler != nil {
		panic("must set the output target only once")
	}
	emitter.write_handler = writeToWriter
	emitter.output_writer = w
}

// SetEncoding pins the output encoding.
func (emitter *Emitter) SetEncoding(encoding Encoding) {
	if emitter.encoding != ANY_ENCODING {
		panic("must set the output encoding only once")
	}
	emitter.encoding = encoding
}

// SetCanonical forces tags, explicit document markers, and block style
// on for every node, regardless of what would otherwise be implicit.
func (emitter *Emitter) SetCanonical(canonical bool) {
	emitter.canonical = canonical
}

// SetIndent sets the per-level indentation width, clamped to [2, 9];
// anything outside that range falls back to the default of 2.
func (emitter *Emitter) SetIndent(indent int) {
	if indent < 2 || indent > 9 {
		indent = 2
	}
	emitter.BestIndent = indent
}

// SetWidth sets the preferred output line width; negative values mean
// "no preferred width".
func (emitter *Emitter) SetWidth(width int) {
	if width < 0 {
		width = -1
	}
	emitter.best_width = width
}

// SetUnicode controls whether non-ASCII characters are written directly
// (true) or escaped (false) in quoted scalars.
func (emitter *Emitter) SetUnicode(unicode bool) {
	emitter.unicode = unicode
}

// SetLineBreak sets the line terminator the emitter writes.
func (emitter *Emitter) SetLineBreak(line_break LineBreak) {
	emitter.line_break = line_break
}

// --------------------------------------------------------------------------
// Event constructors
//
// Each event carries only the fields meaningful for its Type; the rest
// are left zero. Scalar/sequence/mapping constructors cast their style
// argument's concrete type down to the shared Style bitmask so Event
// can stay a single flat struct instead of a tagged union per event kind.

func NewStreamStartEvent(encoding Encoding) Event {
	return Event{Type: STREAM_START_EVENT, encoding: encoding}
}

func NewStreamEndEvent() Event {
	return Event{Type: STREAM_END_EVENT}
}

func NewDocumentStartEvent(version_directive *VersionDirective, tag_directives []TagDirective, implicit bool) Event {
	return Event{
		Type:             DOCUMENT_START_EVENT,
		versionDirective: version_directive,
		tagDirectives:    tag_directives,
		Implicit:         implicit,
	}
}

func NewDocumentEndEvent(implicit bool) Event {
	return Event{Type: DOCUMENT_END_EVENT, Implicit: implicit}
}

func NewAliasEvent(anchor []byte) Event {
	return Event{Type: ALIAS_EVENT, Anchor: anchor}
}

func NewScalarEvent(anchor, tag, value []byte, plain_implicit, quoted_implicit bool, style ScalarStyle) Event {
	return Event{
		Type:            SCALAR_EVENT,
		Anchor:          anchor,
		Tag:             tag,
		Value:           value,
		Implicit:        plain_implicit,
		quoted_implicit: quoted_implicit,
		Style:           Style(style),
	}
}

func NewSequenceStartEvent(anchor, tag []byte, implicit bool, style SequenceStyle) Event {
	return Event{
		Type:     SEQUENCE_START_EVENT,
		Anchor:   anchor,
		Tag:      tag,
		Implicit: implicit,
		Style:    Style(style),
	}
}

func NewSequenceEndEvent() Event {
	return Event{Type: SEQUENCE_END_EVENT}
}

func NewMappingStartEvent(anchor, tag []byte, implicit bool, style MappingStyle) Event {
	return Event{
		Type:     MAPPING_START_EVENT,
		Anchor:   anchor,
		Tag:      tag,
		Implicit: implicit,
		Style:    Style(style),
	}
}

func NewMappingEndEvent() Event {
	return Event{Type: MAPPING_END_EVENT}
}

// Delete resets an Event to its zero value.
func (e *Event) Delete() {
	*e = Event{}
}
