// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"encoding/base64"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	strTag       = "!!str"
	seqTag       = "!!seq"
	mapTag       = "!!map"
	nullTag      = "!!null"
	boolTag      = "!!bool"
	intTag       = "!!int"
	floatTag     = "!!float"
	timestampTag = "!!timestamp"
	binaryTag    = "!!binary"
	mergeTag     = "!!merge"

	yamlStyleTag = "!"
)

var longTags = map[string]string{
	"!":  "!",
	"!!": "tag:yaml.org,2002:",
}

// shortTag turns a long YAML 1.1 tag such as tag:yaml.org,2002:int into its
// short !!int form. Tags outside the well-known yaml.org namespace, or tags
// that are already short, are returned unchanged.
func shortTag(tag string) string {
	if strings.HasPrefix(tag, longTags["!!"]) {
		return "!!" + tag[len(longTags["!!"]):]
	}
	return tag
}

// longTag turns a short !!int style tag into its long form, for use in
// emitted output where the full namespace is expected.
func longTag(tag string) string {
	if strings.HasPrefix(tag, "!!") {
		return longTags["!!"] + tag[2:]
	}
	return tag
}

func isOldBool(s string) (bool, bool) {
	switch s {
	case "y", "Y", "yes", "Yes", "YES", "on", "On", "ON":
		return true, true
	case "n", "N", "no", "No", "NO", "off", "Off", "OFF":
		return false, true
	}
	return false, false
}

// resolve assigns a tag to a plain scalar value, following the YAML 1.1
// core schema resolution rules (§4.6 of the companion specification): null,
// bool, int, float, timestamp, or else str. When tag is already an explicit
// concrete tag (e.g. !!int), resolve still runs the same inference and then
// validates the inferred tag against the one requested, so that a value
// which doesn't actually parse as the explicit tag surfaces an error
// instead of being silently accepted or silently re-typed.
func resolve(tag string, in string) (rtag string, out any) {
	if !resolvableTag(tag) {
		return tag, in
	}

	switch tag {
	case binaryTag, mergeTag:
		// Neither resolves further: !!binary carries raw (base64) text the
		// caller decodes itself, and !!merge is handled at the mapping
		// level before a scalar value ever reaches here.
		return tag, in
	}

	defer func() {
		switch tag {
		case "", rtag, yamlStyleTag:
			return
		case strTag:
			// An explicit !!str always wins: take the scalar at face value
			// rather than whatever type it would otherwise infer as.
			out = in
			rtag = strTag
			return
		}
		failf("cannot decode %s `%s` as a %s", shortTag(rtag), in, shortTag(tag))
	}()

	// Null.
	switch in {
	case "", "~", "null", "Null", "NULL":
		return nullTag, nil
	}

	if b, ok := isOldBool(in); ok {
		return boolTag, b
	}
	switch in {
	case "true", "True", "TRUE":
		return boolTag, true
	case "false", "False", "FALSE":
		return boolTag, false
	}

	// Int, Float.
	plain := strings.Replace(in, "_", "", -1)
	if intv, err := strconv.ParseInt(plain, 0, 64); err == nil {
		return intTag, intv
	}
	if uintv, err := strconv.ParseUint(plain, 0, 64); err == nil {
		return intTag, uintv
	}
	if sintv, ok := parseSexagesimalInt(plain); ok {
		return intTag, sintv
	}
	if floatv, ok := parseYAML11Float(plain); ok {
		return floatTag, floatv
	}

	if t, ok := parseTimestamp(in); ok {
		return timestampTag, t
	}

	return strTag, in
}

// resolvableTag reports whether resolve should attempt tag resolution for a
// plain scalar carrying the given (possibly empty) tag. Unknown tags (custom
// or application-specific) are returned unchanged without resolution.
func resolvableTag(tag string) bool {
	switch tag {
	case "", yamlStyleTag, strTag, intTag, boolTag, floatTag, timestampTag, nullTag, binaryTag, mergeTag:
		return true
	}
	return false
}

// base60Sign splits an optional leading sign off a legacy YAML 1.1
// sexagesimal (base 60) number such as -1:20:00.
var base60Sign = func(s string) (neg bool, rest string) {
	if strings.HasPrefix(s, "-") {
		return true, s[1:]
	}
	if strings.HasPrefix(s, "+") {
		return false, s[1:]
	}
	return false, s
}

func parseSexagesimalInt(s string) (int64, bool) {
	if !strings.Contains(s, ":") {
		return 0, false
	}
	neg, rest := base60Sign(s)
	parts := strings.Split(rest, ":")
	if len(parts) < 2 {
		return 0, false
	}
	var total int64
	for _, part := range parts {
		if part == "" {
			return 0, false
		}
		for _, c := range part {
			if c < '0' || c > '9' {
				return 0, false
			}
		}
		v, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return 0, false
		}
		total = total*60 + v
	}
	if neg {
		total = -total
	}
	return total, true
}

func parseYAML11Float(s string) (float64, bool) {
	switch s {
	case ".inf", ".Inf", ".INF", "+.inf", "+.Inf", "+.INF":
		return math.Inf(1), true
	case "-.inf", "-.Inf", "-.INF":
		return math.Inf(-1), true
	case ".nan", ".NaN", ".NAN":
		return math.NaN(), true
	}
	if strings.Contains(s, ":") {
		neg, rest := base60Sign(s)
		parts := strings.Split(rest, ":")
		if len(parts) < 2 {
			return 0, false
		}
		var total float64
		for _, part := range parts {
			v, err := strconv.ParseFloat(part, 64)
			if err != nil {
				return 0, false
			}
			total = total*60 + v
		}
		if neg {
			total = -total
		}
		return total, true
	}
	if !looksLikeFloat(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func looksLikeFloat(s string) bool {
	if s == "" {
		return false
	}
	seenDigit := false
	seenDot := false
	seenExp := false
	for i, c := range s {
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
		case c == '.' && !seenDot && !seenExp:
			seenDot = true
		case (c == '+' || c == '-') && (i == 0 || s[i-1] == 'e' || s[i-1] == 'E'):
			// sign allowed at start or right after exponent marker
		case (c == 'e' || c == 'E') && seenDigit && !seenExp:
			seenExp = true
		default:
			return false
		}
	}
	return seenDigit && (seenDot || seenExp)
}

var timestampFormats = []string{
	"2006-1-2T15:4:5.999999999Z07:00", // YAML 1.1, ISO8601-ish with dashes and no leading zeroes.
	"2006-1-2t15:4:5.999999999Z07:00",
	"2006-1-2 15:4:5.999999999",
	"2006-1-2",
}

func parseTimestamp(s string) (t time.Time, ok bool) {
	// Quick length/shape filters avoid paying time-parsing costs for the
	// overwhelming majority of scalars that are not timestamps.
	if len(s) < 8 {
		return time.Time{}, false
	}
	if s[4] != '-' || s[7] != '-' {
		return time.Time{}, false
	}
	for _, format := range timestampFormats {
		if tm, err := time.Parse(format, s); err == nil {
			return tm, true
		}
	}
	return time.Time{}, false
}

// encodeBase64 encodes s using standard base64, folded across lines the way
// the emitter expects for !!binary scalars so a literal block style reads
// cleanly.
func encodeBase64(s string) string {
	const lineLen = 70
	encLen := base64.StdEncoding.EncodedLen(len(s))
	lines := encLen/lineLen + 1
	buf := make([]byte, encLen*2+lines)
	in := buf[:encLen]
	out := buf[encLen:]
	base64.StdEncoding.Encode(in, []byte(s))
	k := 0
	for i := 0; i < len(in); i += lineLen {
		j := i + lineLen
		if j > len(in) {
			j = len(in)
		}
		k += copy(out[k:], in[i:j])
		if lines > 1 {
			out[k] = '\n'
			k++
		}
	}
	return string(out[:k])
}
