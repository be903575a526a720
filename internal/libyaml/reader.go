// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Reader stage: turns the raw byte stream from the configured read handler
// into a validated UTF-8 buffer, detecting BOM-declared encodings and
// rejecting invalid byte sequences and control characters the YAML
// character set forbids.

package libyaml

import (
	"errors"
	"fmt"
)

// formatReaderError builds the error returned when the reader encounters
// invalid input: a malformed byte sequence, or a character the YAML stream
// character set disallows.
func formatReaderError(problem string, offset int, value int) error {
	return &ReaderError{
		Err:    errors.New(problem),
		Offset: offset,
		Value:  value,
	}
}

// determineEncoding reads enough of the raw buffer to detect a byte order
// mark and sets the parser's encoding accordingly. If no BOM is present,
// UTF-8 is assumed, per the YAML specification.
func (parser *Parser) determineEncoding() error {
	for !parser.eof && len(parser.raw_buffer)-parser.raw_buffer_pos < 3 {
		if err := parser.updateRawBuffer(); err != nil {
			return err
		}
	}

	raw := parser.raw_buffer[parser.raw_buffer_pos:]

	switch {
	case len(raw) >= 2 && raw[0] == 0xFF && raw[1] == 0xFE:
		parser.encoding = UTF16LE_ENCODING
		parser.raw_buffer_pos += 2
		parser.offset += 2
	case len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF:
		parser.encoding = UTF16BE_ENCODING
		parser.raw_buffer_pos += 2
		parser.offset += 2
	case len(raw) >= 3 && raw[0] == 0xEF && raw[1] == 0xBB && raw[2] == 0xBF:
		parser.encoding = UTF8_ENCODING
		parser.raw_buffer_pos += 3
		parser.offset += 3
	default:
		parser.encoding = UTF8_ENCODING
	}

	return parser.updateBuffer(1)
}

// updateRawBuffer refills the raw input buffer from the configured read
// handler, sliding any unconsumed bytes to the front first.
func (parser *Parser) updateRawBuffer() error {
	if parser.eof {
		return nil
	}

	if parser.raw_buffer_pos > 0 && parser.raw_buffer_pos < len(parser.raw_buffer) {
		copy(parser.raw_buffer, parser.raw_buffer[parser.raw_buffer_pos:])
	}
	parser.raw_buffer = parser.raw_buffer[:len(parser.raw_buffer)-parser.raw_buffer_pos]
	parser.raw_buffer_pos = 0

	if parser.read_handler == nil {
		panic("read handler not set")
	}

	for len(parser.raw_buffer) < input_raw_buffer_size {
		size := cap(parser.raw_buffer) - len(parser.raw_buffer)
		if size == 0 {
			grown := make([]byte, len(parser.raw_buffer), cap(parser.raw_buffer)+input_raw_buffer_size)
			copy(grown, parser.raw_buffer)
			parser.raw_buffer = grown
			size = cap(parser.raw_buffer) - len(parser.raw_buffer)
		}
		n, err := parser.read_handler(parser, parser.raw_buffer[len(parser.raw_buffer):cap(parser.raw_buffer)])
		parser.raw_buffer = parser.raw_buffer[:len(parser.raw_buffer)+n]
		if n == 0 || err != nil {
			if err != nil {
				parser.eof = true
				if err.Error() != "EOF" {
					return formatReaderError(fmt.Sprintf("input error: %s", err), parser.offset, 0)
				}
			} else {
				parser.eof = true
			}
			break
		}
	}
	return nil
}

// updateBuffer decodes at least length runes of raw input into the UTF-8
// buffer the scanner reads from, translating UTF-16 input and validating
// UTF-8 input as it goes.
func (parser *Parser) updateBuffer(length int) error {
	if parser.read_handler == nil {
		panic("read handler not set")
	}

	if parser.buffer_pos > 0 && parser.buffer_pos == len(parser.buffer) {
		parser.buffer = parser.buffer[:0]
		parser.buffer_pos = 0
	} else if parser.buffer_pos > 0 {
		copy(parser.buffer, parser.buffer[parser.buffer_pos:])
		parser.buffer = parser.buffer[:len(parser.buffer)-parser.buffer_pos]
		parser.buffer_pos = 0
	}

	for parser.unread < length {
		if !parser.eof && len(parser.raw_buffer)-parser.raw_buffer_pos < 4 {
			if err := parser.updateRawBuffer(); err != nil {
				return err
			}
		}

		switch parser.encoding {
		case UTF8_ENCODING:
			if !parser.decodeUTF8() {
				return nil
			}
		case UTF16LE_ENCODING, UTF16BE_ENCODING:
			if !parser.decodeUTF16() {
				return nil
			}
		}

		if parser.eof && parser.raw_buffer_pos >= len(parser.raw_buffer) {
			parser.buffer = append(parser.buffer, 0)
			parser.unread++
			break
		}
	}

	return nil
}

// decodeUTF8 consumes one UTF-8 rune's worth of bytes from the raw buffer
// and appends it to the decoded buffer, returning false when more raw
// input is needed or an invalid sequence is found.
func (parser *Parser) decodeUTF8() bool {
	raw := parser.raw_buffer[parser.raw_buffer_pos:]
	if len(raw) == 0 {
		if parser.eof {
			return false
		}
		return false
	}

	octet := raw[0]
	var width int
	switch {
	case octet&0x80 == 0x00:
		width = 1
	case octet&0xE0 == 0xC0:
		width = 2
	case octet&0xF0 == 0xE0:
		width = 3
	case octet&0xF8 == 0xF0:
		width = 4
	default:
		return false
	}

	if len(raw) < width {
		if parser.eof {
			return false
		}
		return false
	}

	for i := 1; i < width; i++ {
		if raw[i]&0xC0 != 0x80 {
			return false
		}
	}

	parser.buffer = append(parser.buffer, raw[:width]...)
	parser.raw_buffer_pos += width
	parser.offset += width
	parser.unread++
	return true
}

// decodeUTF16 consumes one UTF-16 code unit pair's worth of bytes (handling
// surrogate pairs) from the raw buffer, re-encodes it as UTF-8, and appends
// it to the decoded buffer.
func (parser *Parser) decodeUTF16() bool {
	low, high := 0, 1
	if parser.encoding == UTF16BE_ENCODING {
		low, high = 1, 0
	}

	raw := parser.raw_buffer[parser.raw_buffer_pos:]
	if len(raw) < 2 {
		return false
	}

	value := rune(raw[low]) + rune(raw[high])<<8
	width := 2

	if value&0xFC00 == 0xD800 {
		if len(raw) < 4 {
			return false
		}
		value2 := rune(raw[2+low]) + rune(raw[2+high])<<8
		if value2&0xFC00 != 0xDC00 {
			return false
		}
		value = 0x10000 + (value-0xD800)<<10 + (value2 - 0xDC00)
		width = 4
	}

	parser.buffer = appendUTF8(parser.buffer, value)
	parser.raw_buffer_pos += width
	parser.offset += width
	parser.unread++
	return true
}

func appendUTF8(buf []byte, r rune) []byte {
	switch {
	case r <= 0x7F:
		return append(buf, byte(r))
	case r <= 0x7FF:
		return append(buf, byte(0xC0|r>>6), byte(0x80|r&0x3F))
	case r <= 0xFFFF:
		return append(buf, byte(0xE0|r>>12), byte(0x80|(r>>6)&0x3F), byte(0x80|r&0x3F))
	default:
		return append(buf, byte(0xF0|r>>18), byte(0x80|(r>>12)&0x3F), byte(0x80|(r>>6)&0x3F), byte(0x80|r&0x3F))
	}
}
