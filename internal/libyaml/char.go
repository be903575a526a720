// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Character classification and conversion helpers shared by the scanner.
// Each predicate takes the buffer and an index rather than a single byte
// so that callers can look ahead or behind the current position without
// slicing.

package libyaml

func isZeroChar(b []byte, i int) bool {
	return i >= len(b) || b[i] == 0
}

func isBOM(b []byte, i int) bool {
	return i+2 < len(b) && b[i] == 0xEF && b[i+1] == 0xBB && b[i+2] == 0xBF
}

func isASCII(b []byte, i int) bool {
	return i < len(b) && b[i] <= 0x7F
}

func isDigit(b []byte, i int) bool {
	return i < len(b) && b[i] >= '0' && b[i] <= '9'
}

func asDigit(b []byte, i int) int {
	return int(b[i]) - '0'
}

func isHex(b []byte, i int) bool {
	if i >= len(b) {
		return false
	}
	c := b[i]
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
}

func asHex(b []byte, i int) int {
	c := b[i]
	switch {
	case c >= '0' && c <= '9':
		return int(c) - '0'
	case c >= 'A' && c <= 'F':
		return int(c) - 'A' + 10
	default:
		return int(c) - 'a' + 10
	}
}

// isAlpha reports whether the byte at i is a YAML "word" character: an
// ASCII letter, digit, underscore, or hyphen. Anchor, alias, and (outside
// verbatim tags) tag handle characters are all drawn from this set.
func isAlpha(b []byte, i int) bool {
	if i >= len(b) {
		return false
	}
	c := b[i]
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_' || c == '-'
}

func isAnchorChar(b []byte, i int) bool {
	return isAlpha(b, i)
}

func isFlowIndicator(b []byte, i int) bool {
	if i >= len(b) {
		return false
	}
	switch b[i] {
	case ',', '[', ']', '{', '}':
		return true
	}
	return false
}

func isColon(b []byte, i int) bool {
	return i < len(b) && b[i] == ':'
}

// isTagURIChar reports whether the byte at i may appear in a tag URI.
// Outside a verbatim (!<...>) tag, flow indicators terminate the tag
// early, since they also delimit flow collections.
func isTagURIChar(b []byte, i int, verbatim bool) bool {
	if i >= len(b) {
		return false
	}
	if !verbatim && isFlowIndicator(b, i) {
		return false
	}
	c := b[i]
	switch {
	case isAlpha(b, i):
		return true
	case c == ';' || c == '/' || c == '?' || c == ':' || c == '@' || c == '&' ||
		c == '=' || c == '+' || c == '$' || c == ',' || c == '.' || c == '!' ||
		c == '~' || c == '*' || c == '\'' || c == '(' || c == ')' || c == '%':
		return true
	}
	return false
}

func isSpace(b []byte, i int) bool {
	return i < len(b) && b[i] == ' '
}

func isTab(b []byte, i int) bool {
	return i < len(b) && b[i] == '\t'
}

func isBlank(b []byte, i int) bool {
	return isSpace(b, i) || isTab(b, i)
}

// isLineBreak recognizes LF, CR, and the Unicode NEL/LS/PS line breaks that
// YAML 1.1 treats as line breaks when the stream carries them literally.
func isLineBreak(b []byte, i int) bool {
	if i >= len(b) {
		return false
	}
	switch b[i] {
	case '\r', '\n':
		return true
	case 0xC2:
		return i+1 < len(b) && b[i+1] == 0x85 // NEL
	case 0xE2:
		return i+2 < len(b) && b[i+1] == 0x80 && (b[i+2] == 0xA8 || b[i+2] == 0xA9) // LS, PS
	}
	return false
}

func isCRLF(b []byte, i int) bool {
	return i+1 < len(b) && b[i] == '\r' && b[i+1] == '\n'
}

func isBreakOrZero(b []byte, i int) bool {
	return isLineBreak(b, i) || isZeroChar(b, i)
}

func isSpaceOrZero(b []byte, i int) bool {
	return isSpace(b, i) || isBreakOrZero(b, i)
}

func isBlankOrZero(b []byte, i int) bool {
	return isBlank(b, i) || isBreakOrZero(b, i)
}

func isPrintable(b []byte, i int) bool {
	if i >= len(b) {
		return false
	}
	c := b[i]
	switch {
	case c == 0x09 || c == 0x0A || c == 0x0D:
		return true
	case c >= 0x20 && c <= 0x7E:
		return true
	case c == 0xC2:
		return i+1 < len(b) && b[i+1] >= 0xA0
	case c >= 0xC3 && c < 0xED:
		return true
	case c == 0xED:
		return i+1 < len(b) && b[i+1] < 0xA0
	case c >= 0xEE && c <= 0xEF:
		return true
	case c == 0xF0:
		return true
	}
	return false
}

// width reports how many bytes the UTF-8 character starting with lead byte
// b occupies, or 0 if b cannot start a valid encoding.
func width(b byte) int {
	switch {
	case b&0x80 == 0x00:
		return 1
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	}
	return 0
}
