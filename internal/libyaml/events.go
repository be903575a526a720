// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// ParserGetEvents drives the low-level Parser directly, bypassing the
// Composer's node-tree construction, and renders the resulting event
// stream in the compact notation used by the YAML test suite's
// test.event fixtures (https://github.com/yaml/yaml-test-suite).

package libyaml

import (
	"fmt"
	"strconv"
	"strings"
)

// ParserGetEvents parses in and returns its event stream rendered one
// event per line, e.g.:
//
//	+STR
//	+DOC
//	+MAP
//	=VAL :a
//	=VAL :b
//	-MAP
//	-DOC
//	-STR
func ParserGetEvents(in []byte) (string, error) {
	parser := NewParser()
	defer parser.Delete()
	parser.SetInputString(in)

	var lines []string
	var event Event
	for {
		if err := parser.Parse(&event); err != nil {
			return "", err
		}
		lines = append(lines, formatEvent(&event))
		if event.Type == STREAM_END_EVENT {
			break
		}
	}
	return strings.Join(lines, "\n"), nil
}

func formatEvent(event *Event) string {
	switch event.Type {
	case STREAM_START_EVENT:
		return "+STR"
	case STREAM_END_EVENT:
		return "-STR"
	case DOCUMENT_START_EVENT:
		if !event.Implicit {
			return "+DOC ---"
		}
		return "+DOC"
	case DOCUMENT_END_EVENT:
		if !event.Implicit {
			return "-DOC ..."
		}
		return "-DOC"
	case MAPPING_START_EVENT:
		return "+MAP" + collectionProps(event)
	case MAPPING_END_EVENT:
		return "-MAP"
	case SEQUENCE_START_EVENT:
		return "+SEQ" + collectionProps(event)
	case SEQUENCE_END_EVENT:
		return "-SEQ"
	case SCALAR_EVENT:
		return "=VAL" + scalarProps(event)
	case ALIAS_EVENT:
		return "=ALI *" + string(event.Anchor)
	default:
		return "???"
	}
}

func collectionProps(event *Event) string {
	var b strings.Builder
	if len(event.Anchor) > 0 {
		fmt.Fprintf(&b, " &%s", event.Anchor)
	}
	if len(event.Tag) > 0 {
		fmt.Fprintf(&b, " <%s>", event.Tag)
	}
	return b.String()
}

func scalarProps(event *Event) string {
	var b strings.Builder
	if len(event.Anchor) > 0 {
		fmt.Fprintf(&b, " &%s", event.Anchor)
	}
	if len(event.Tag) > 0 {
		fmt.Fprintf(&b, " <%s>", event.Tag)
	}
	b.WriteByte(' ')
	b.WriteByte(scalarStyleIndicator(event.Style))
	b.WriteString(escapeScalarValue(string(event.Value)))
	return b.String()
}

// scalarStyleIndicator maps a scalar's emitted style to the single-byte
// prefix the test suite notation uses to distinguish them: ':' plain,
// '\'' single-quoted, '"' double-quoted, '|' literal, '>' folded.
func scalarStyleIndicator(style Style) byte {
	switch ScalarStyle(style) {
	case SINGLE_QUOTED_SCALAR_STYLE:
		return '\''
	case DOUBLE_QUOTED_SCALAR_STYLE:
		return '"'
	case LITERAL_SCALAR_STYLE:
		return '|'
	case FOLDED_SCALAR_STYLE:
		return '>'
	default:
		return ':'
	}
}

// escapeScalarValue backslash-escapes backslash, line feed, tab, carriage
// return and other control characters below 0x20 (as \xN) so a multi-line
// scalar's value still renders on a single notation line.
func escapeScalarValue(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\x%s`, strconv.FormatInt(int64(r), 16))
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}
