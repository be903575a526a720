// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Constructor walks a decoded Node tree and fills in a caller-provided
// Go value, resolving YAML 1.1 core-schema tags along the way and
// giving custom (un)marshalers first refusal on any given node.

package libyaml

import (
	"encoding"
	"encoding/base64"
	"fmt"
	"math"
	"reflect"
	"time"
)

// --------------------------------------------------------------------------
// Self-decoding hooks
//
// A type can take over its own construction three different ways, in
// priority order: the root package's yaml.Unmarshaler (detected by
// method shape in tryCallYAMLConstructor, since libyaml can't import
// that interface directly), this package's own selfConstructor
// (structmeta.go), or the pre-Node funcUnmarshaler shape kept for
// callers still on the old API.

// funcUnmarshaler is the original, pre-Node unmarshal hook: instead of
// receiving a *Node, it receives a callback it can invoke with any Go
// value to have the corresponding node constructed into it.
type funcUnmarshaler interface {
	UnmarshalYAML(construct func(any) error) error
}

// scalarTagFunc builds a Go value of kind out.Kind() from a scalar
// already resolved to one of Go's core-schema types (bool, int64,
// uint64, float64, string, time.Time, or nil); it reports whether the
// conversion for that particular tag/target pairing exists.
type scalarTagFunc func(c *Constructor, n *Node, resolved any, out reflect.Value) bool

// Constructor holds the running state of one Construct call tree: the
// document root (for alias resolution), the set of anchors currently
// being expanded (to catch self-referential aliases), accumulated
// field errors, and the decode-wide options that affect every node.
type Constructor struct {
	doc        *Node
	aliases    map[*Node]bool
	TypeErrors []*ConstructError

	stringMapType  reflect.Type
	generalMapType reflect.Type

	KnownFields          bool
	UniqueKeys           bool
	AliasingExceededFunc AliasingRestrictionFunction
	constructCount       int
	aliasCount           int
	aliasDepth           int

	mergedFields map[any]bool
}

// NewConstructor prepares a Constructor for one decode, applying
// DefaultAliasingRestrictions when the caller didn't supply its own
// alias-bomb guard.
func NewConstructor(opts *Options) *Constructor {
	restrict := opts.AliasingRestrictionFunction
	if restrict == nil {
		restrict = DefaultAliasingRestrictions
	}

	return &Constructor{
		stringMapType:        stringMapType,
		generalMapType:       generalMapType,
		KnownFields:          opts.KnownFields,
		UniqueKeys:           opts.UniqueKeys,
		AliasingExceededFunc: restrict,
		aliases:              make(map[*Node]bool),
	}
}

// --------------------------------------------------------------------------
// Entry point

// Construct fills out from n, recursing through aliases and nested
// collections as needed, and reports whether it produced a usable
// value (a failed scalar conversion records a *ConstructError and
// returns false rather than panicking, so one bad field doesn't abort
// decoding the rest of the document).
func (c *Constructor) Construct(n *Node, out reflect.Value) (good bool) {
	c.constructCount++
	if c.aliasDepth > 0 {
		c.aliasCount++
	}
	if c.AliasingExceededFunc(c.aliasCount, c.constructCount) {
		failf("document contains excessive aliasing")
	}
	if out.Type() == nodeType {
		out.Set(reflect.ValueOf(n).Elem())
		return true
	}

	switch n.Kind {
	case DocumentNode:
		return c.document(n, out)
	case AliasNode:
		return c.alias(n, out)
	}

	out, constructed, good := c.prepare(n, out)
	if constructed {
		return good
	}

	// A TextUnmarshaler target needs a scalar source; without this
	// check, decoding a mapping into a type that only implements
	// TextUnmarshaler (and exports nothing else) would quietly do
	// nothing instead of reporting a mismatch, matching how
	// encoding/json treats the same situation.
	if n.Kind != ScalarNode && isTextUnmarshaler(out) {
		err := fmt.Errorf("cannot construct %s into %s (TextUnmarshaler)", shortTag(n.Tag), out.Type())
		c.TypeErrors = append(c.TypeErrors, &ConstructError{
			Err:    err,
			Line:   n.Line,
			Column: n.Column,
		})
		return false
	}

	switch n.Kind {
	case ScalarNode:
		good = c.scalar(n, out)
	case MappingNode:
		good = c.mapping(n, out)
	case SequenceNode:
		good = c.sequence(n, out)
	case 0:
		if n.IsZero() {
			return c.null(out)
		}
		fallthrough
	default:
		failf("cannot construct node with unknown kind %d", n.Kind)
	}
	return good
}

var (
	nodeType       = reflect.TypeOf(Node{})
	durationType   = reflect.TypeOf(time.Duration(0))
	stringMapType  = reflect.TypeOf(map[string]any{})
	generalMapType = reflect.TypeOf(map[any]any{})
	ifaceType      = generalMapType.Elem()
)

// tagConstructors dispatches a resolved scalar to the conversion
// logic for its core-schema tag.
var tagConstructors = map[string]scalarTagFunc{
	strTag:       (*Constructor).constructStr,
	intTag:       (*Constructor).constructInt,
	boolTag:      (*Constructor).constructBool,
	floatTag:     (*Constructor).constructFloat,
	nullTag:      (*Constructor).constructNull,
	timestampTag: (*Constructor).constructTimestamp,
	binaryTag:    (*Constructor).constructBinary,
	mergeTag:     (*Constructor).constructMerge,
}

// Bounds on how many Construct calls an alias expansion may trigger,
// to keep a crafted document with a small byte count but exponential
// anchor fan-out (a "billion laughs" style attack) from blowing up
// decode time/memory. See DefaultAliasingRestrictions.
const (
	// Below this many total Construct calls, aliasing is unrestricted:
	// ~500KB of dense literal document, or ~5KB expanded 10000x.
	alias_ratio_range_low = 400000

	// Above this many total Construct calls, aliasing is rejected
	// outright: ~5MB of dense literal document, or ~4.5MB expanded 10%.
	alias_ratio_range_high = 4000000
)

// --------------------------------------------------------------------------
// Per-tag scalar conversions
//
// Each of these receives a value already resolved to one of Go's
// core-schema types by resolve() (see resolve.go) and attempts to
// land it in out; a case that doesn't fit out's kind falls through to
// tagError at the bottom.

func (c *Constructor) constructStr(n *Node, resolved any, out reflect.Value) bool {
	switch out.Kind() {
	case reflect.String:
		out.SetString(n.Value)
		return true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// time.Duration is backed by int64 but round-trips through its
		// own textual syntax ("3s", "1m30s"), not a bare integer.
		if out.Type() == durationType {
			if d, err := time.ParseDuration(n.Value); err == nil {
				out.SetInt(int64(d))
				return true
			}
		}
	case reflect.Bool:
		// YAML 1.1's broader bool vocabulary, accepted here only when
		// the target is explicitly typed bool.
		switch n.Value {
		case "y", "Y", "yes", "Yes", "YES", "on", "On", "ON":
			out.SetBool(true)
			return true
		case "n", "N", "no", "No", "NO", "off", "Off", "OFF":
			out.SetBool(false)
			return true
		}
	case reflect.Interface:
		out.Set(reflect.ValueOf(resolved))
		return true
	}
	c.tagError(n, strTag, out)
	return false
}

func (c *Constructor) constructInt(n *Node, resolved any, out reflect.Value) bool {
	switch out.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		isDuration := out.Type() == durationType

		switch resolved := resolved.(type) {
		case int:
			if !isDuration && !out.OverflowInt(int64(resolved)) {
				out.SetInt(int64(resolved))
				return true
			} else if isDuration && resolved == 0 {
				out.SetInt(0)
				return true
			}
		case int64:
			if !isDuration && !out.OverflowInt(resolved) {
				out.SetInt(resolved)
				return true
			}
		case uint64:
			if !isDuration && resolved <= math.MaxInt64 {
				iv := int64(resolved)
				if !out.OverflowInt(iv) {
					out.SetInt(iv)
					return true
				}
			}
		case float64:
			if !isDuration && resolved >= math.MinInt64 && resolved <= math.MaxInt64 {
				iv := int64(resolved)
				if float64(iv) == resolved && !out.OverflowInt(iv) {
					out.SetInt(iv)
					return true
				}
			}
		case string:
			if out.Type() == durationType {
				if d, err := time.ParseDuration(resolved); err == nil {
					out.SetInt(int64(d))
					return true
				}
			}
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		switch resolved := resolved.(type) {
		case int:
			if resolved >= 0 && !out.OverflowUint(uint64(resolved)) {
				out.SetUint(uint64(resolved))
				return true
			}
		case int64:
			if resolved >= 0 && !out.OverflowUint(uint64(resolved)) {
				out.SetUint(uint64(resolved))
				return true
			}
		case uint64:
			if !out.OverflowUint(resolved) {
				out.SetUint(resolved)
				return true
			}
		case float64:
			if resolved >= 0 && resolved <= math.MaxUint64 {
				uv := uint64(resolved)
				if float64(uv) == resolved && !out.OverflowUint(uv) {
					out.SetUint(uv)
					return true
				}
			}
		}
	case reflect.Float32, reflect.Float64:
		switch resolved := resolved.(type) {
		case int:
			out.SetFloat(float64(resolved))
			return true
		case int64:
			out.SetFloat(float64(resolved))
			return true
		case uint64:
			out.SetFloat(float64(resolved))
			return true
		}
	case reflect.String:
		out.SetString(n.Value)
		return true
	case reflect.Interface:
		out.Set(reflect.ValueOf(resolved))
		return true
	}
	c.tagError(n, intTag, out)
	return false
}

func (c *Constructor) constructBool(n *Node, resolved any, out reflect.Value) bool {
	switch out.Kind() {
	case reflect.Bool:
		switch resolved := resolved.(type) {
		case bool:
			out.SetBool(resolved)
			return true
		case string:
			// YAML 1.1's extended bool spellings
			// (https://yaml.org/type/bool.html); only honored when
			// decoding straight into a typed bool field.
			switch resolved {
			case "y", "Y", "yes", "Yes", "YES", "on", "On", "ON":
				out.SetBool(true)
				return true
			case "n", "N", "no", "No", "NO", "off", "Off", "OFF":
				out.SetBool(false)
				return true
			}
		}
	case reflect.String:
		out.SetString(n.Value)
		return true
	case reflect.Interface:
		out.Set(reflect.ValueOf(resolved))
		return true
	}
	c.tagError(n, boolTag, out)
	return false
}

func (c *Constructor) constructFloat(n *Node, resolved any, out reflect.Value) bool {
	switch out.Kind() {
	case reflect.Float32, reflect.Float64:
		switch resolved := resolved.(type) {
		case int:
			out.SetFloat(float64(resolved))
			return true
		case int64:
			out.SetFloat(float64(resolved))
			return true
		case uint64:
			out.SetFloat(float64(resolved))
			return true
		case float64:
			out.SetFloat(resolved)
			return true
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if fv, ok := resolved.(float64); ok && fv >= math.MinInt64 && fv <= math.MaxInt64 {
			iv := int64(fv)
			if float64(iv) == fv && !out.OverflowInt(iv) {
				out.SetInt(iv)
				return true
			}
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if fv, ok := resolved.(float64); ok && fv >= 0 && fv <= math.MaxUint64 {
			uv := uint64(fv)
			if float64(uv) == fv && !out.OverflowUint(uv) {
				out.SetUint(uv)
				return true
			}
		}
	case reflect.Interface:
		out.Set(reflect.ValueOf(resolved))
		return true
	}
	c.tagError(n, floatTag, out)
	return false
}

func (c *Constructor) constructTimestamp(n *Node, resolved any, out reflect.Value) bool {
	switch out.Kind() {
	case reflect.Struct:
		if rv := reflect.ValueOf(resolved); out.Type() == rv.Type() {
			out.Set(rv)
			return true
		}
	case reflect.Interface:
		out.Set(reflect.ValueOf(resolved))
		return true
	}
	c.tagError(n, timestampTag, out)
	return false
}

func (c *Constructor) constructBinary(n *Node, resolved any, out reflect.Value) bool {
	switch out.Kind() {
	case reflect.String:
		out.SetString(resolved.(string))
		return true
	case reflect.Slice:
		if out.Type().Elem().Kind() == reflect.Uint8 {
			out.SetBytes([]byte(resolved.(string)))
			return true
		}
	case reflect.Interface:
		out.Set(reflect.ValueOf(resolved))
		return true
	}
	c.tagError(n, binaryTag, out)
	return false
}

func (c *Constructor) constructNull(n *Node, resolved any, out reflect.Value) bool {
	return c.null(out)
}

// constructMerge never succeeds: a !!merge-tagged scalar is a
// directive handled specially by mapping(), not a value in its own
// right, so reaching this function at all means something tried to
// construct a merge key as if it were an ordinary field.
func (c *Constructor) constructMerge(n *Node, resolved any, out reflect.Value) bool {
	return false
}

// --------------------------------------------------------------------------
// Per-kind node handlers

func (c *Constructor) document(n *Node, out reflect.Value) (good bool) {
	if len(n.Content) == 1 {
		c.doc = n
		c.Construct(n.Content[0], out)
		return true
	}
	return false
}

// alias follows an AliasNode to its anchor and constructs that,
// tracking the anchors currently being expanded so a self-referential
// anchor ("a: &x *x") fails instead of recursing forever.
func (c *Constructor) alias(n *Node, out reflect.Value) (good bool) {
	if c.aliases[n] {
		// TODO: some shapes of self-reference (e.g. into a lazily
		// constructed interface{} slot) could be made to work instead
		// of always failing here.
		failf("anchor '%s' value contains itself", n.Value)
	}
	c.aliases[n] = true
	c.aliasDepth++
	good = c.Construct(n.Alias, out)
	c.aliasDepth--
	delete(c.aliases, n)
	return good
}

// scalar resolves n's tag/value pair to one of Go's core-schema types
// and lands it in out, preferring an exact type match, then
// TextUnmarshaler, then the tag-specific converters in
// tagConstructors.
func (c *Constructor) scalar(n *Node, out reflect.Value) bool {
	var tag string
	var resolved any
	if n.indicatedString() {
		tag = strTag
		resolved = n.Value
	} else {
		tag, resolved = resolve(n.Tag, n.Value)
		if tag == binaryTag {
			data, err := base64.StdEncoding.DecodeString(resolved.(string))
			if err != nil {
				failf("!!binary value contains invalid base64 data")
			}
			resolved = string(data)
		}
	}

	if resolved == nil {
		return c.null(out)
	}

	if rv := reflect.ValueOf(resolved); out.Type() == rv.Type() {
		out.Set(rv)
		return true
	}

	if out.CanAddr() {
		if u, ok := out.Addr().Interface().(encoding.TextUnmarshaler); ok {
			var text []byte
			if tag == binaryTag {
				text = []byte(resolved.(string))
			} else {
				text = []byte(n.Value)
			}
			if err := u.UnmarshalText(text); err != nil {
				c.TypeErrors = append(c.TypeErrors, &ConstructError{
					Err:    err,
					Line:   n.Line,
					Column: n.Column,
				})
				return false
			}
			return true
		}
	}

	if convert, ok := tagConstructors[tag]; ok {
		return convert(c, n, resolved, out)
	}

	// An unrecognized tag (a custom !!application tag with no
	// registered converter) still has two reasonable fallbacks.
	switch out.Kind() {
	case reflect.Interface:
		out.Set(reflect.ValueOf(resolved))
		return true
	case reflect.Struct:
		if rv := reflect.ValueOf(resolved); out.Type() == rv.Type() {
			out.Set(rv)
			return true
		}
	}

	c.tagError(n, tag, out)
	return false
}

// sequence constructs a SequenceNode into a slice, a fixed-size array
// (length must match exactly), or, for an interface{} target, a
// freshly built []any.
func (c *Constructor) sequence(n *Node, out reflect.Value) (good bool) {
	l := len(n.Content)

	var iface reflect.Value
	switch out.Kind() {
	case reflect.Slice:
		out.Set(reflect.MakeSlice(out.Type(), l, l))
	case reflect.Array:
		if l != out.Len() {
			failf("invalid array: want %d elements but got %d", out.Len(), l)
		}
	case reflect.Interface:
		iface = out
		out = settableValueOf(make([]any, l))
	default:
		c.tagError(n, seqTag, out)
		return false
	}
	et := out.Type().Elem()

	// Elements that fail to construct are dropped rather than left
	// zero-valued, so the result's length reflects only what actually
	// decoded (arrays are the exception: their length is fixed).
	j := 0
	for i := 0; i < l; i++ {
		e := reflect.New(et).Elem()
		if ok := c.Construct(n.Content[i], e); ok {
			out.Index(j).Set(e)
			j++
		}
	}
	if out.Kind() != reflect.Array {
		out.Set(out.Slice(0, j))
	}
	if iface.IsValid() {
		iface.Set(out)
	}
	return true
}

// mapping constructs a MappingNode into a struct, a map, or (for an
// interface{} target) a map[string]any/map[any]any chosen by whether
// every key in n is a plain string.
func (c *Constructor) mapping(n *Node, out reflect.Value) (good bool) {
	l := len(n.Content)
	if c.UniqueKeys {
		before := len(c.TypeErrors)
		for i := 0; i < l; i += 2 {
			ki := n.Content[i]
			for j := i + 2; j < l; j += 2 {
				kj := n.Content[j]
				if ki.Kind == kj.Kind && ki.Value == kj.Value {
					c.TypeErrors = append(c.TypeErrors, &ConstructError{
						Err:    fmt.Errorf("mapping key %#v already defined at line %d", kj.Value, ki.Line),
						Line:   kj.Line,
						Column: kj.Column,
					})
				}
			}
		}
		if len(c.TypeErrors) > before {
			return false
		}
	}
	switch out.Kind() {
	case reflect.Struct:
		return c.mappingStruct(n, out)
	case reflect.Map:
	case reflect.Interface:
		iface := out
		if isStringMap(n) {
			out = reflect.MakeMap(c.stringMapType)
		} else {
			out = reflect.MakeMap(c.generalMapType)
		}
		iface.Set(out)
	default:
		c.tagError(n, mapTag, out)
		return false
	}

	outt := out.Type()
	kt := outt.Key()
	et := outt.Elem()

	// A map[string]any or map[any]any field on a struct picks its own
	// concrete type for nested interface{} values decoded below it,
	// rather than always falling back to the package-wide default;
	// restored once this mapping is done.
	savedStringMapType := c.stringMapType
	savedGeneralMapType := c.generalMapType
	if outt.Elem() == ifaceType {
		if outt.Key().Kind() == reflect.String {
			c.stringMapType = outt
		} else if outt.Key() == ifaceType {
			c.generalMapType = outt
		}
	}

	mergedFields := c.mergedFields
	c.mergedFields = nil

	var mergeNode *Node

	mapIsNew := false
	if out.IsNil() {
		out.Set(reflect.MakeMap(outt))
		mapIsNew = true
	}
	for i := 0; i < l; i += 2 {
		if isMerge(n.Content[i]) {
			mergeNode = n.Content[i+1]
			continue
		}
		k := reflect.New(kt).Elem()
		if !c.Construct(n.Content[i], k) {
			continue
		}
		if mergedFields != nil {
			ki := k.Interface()
			if c.getPossiblyUnhashableKey(mergedFields, ki) {
				continue
			}
			c.setPossiblyUnhashableKey(mergedFields, ki, true)
		}
		kkind := k.Kind()
		if kkind == reflect.Interface {
			kkind = k.Elem().Kind()
		}
		if kkind == reflect.Map || kkind == reflect.Slice {
			failf("cannot use '%#v' as a map key; try decoding into yaml.Node", k.Interface())
		}
		e := reflect.New(et).Elem()
		if c.Construct(n.Content[i+1], e) || n.Content[i+1].ShortTag() == nullTag && (mapIsNew || !out.MapIndex(k).IsValid()) {
			out.SetMapIndex(k, e)
		}
	}

	c.mergedFields = mergedFields
	if mergeNode != nil {
		c.merge(n, mergeNode, out)
	}

	c.stringMapType = savedStringMapType
	c.generalMapType = savedGeneralMapType
	return true
}

// --------------------------------------------------------------------------
// Struct fields

// mappingStruct constructs a MappingNode into a struct, matching keys
// against the cached field metadata from structMetadata, routing
// unmatched keys into an ",inline" map when the struct has one, and
// otherwise honoring KnownFields/UniqueKeys.
func (c *Constructor) mappingStruct(n *Node, out reflect.Value) (good bool) {
	meta, err := structMetadata(out.Type())
	if err != nil {
		panic(err)
	}

	var inlineMap reflect.Value
	var elemType reflect.Type
	if meta.InlineMap != -1 {
		inlineMap = out.Field(meta.InlineMap)
		elemType = inlineMap.Type().Elem()
	}

	for _, index := range meta.InlineConstructors {
		field := c.fieldByIndex(n, out, index)
		c.prepare(n, field)
	}

	mergedFields := c.mergedFields
	c.mergedFields = nil
	var mergeNode *Node
	var doneFields []bool
	if c.UniqueKeys {
		doneFields = make([]bool, len(meta.FieldsList))
	}
	name := settableValueOf("")
	l := len(n.Content)
	for i := 0; i < l; i += 2 {
		ni := n.Content[i]
		if isMerge(ni) {
			mergeNode = n.Content[i+1]
			continue
		}
		if !c.Construct(ni, name) {
			continue
		}
		sname := name.String()
		if mergedFields != nil {
			if mergedFields[sname] {
				continue
			}
			mergedFields[sname] = true
		}
		if info, ok := meta.FieldsMap[sname]; ok {
			if c.UniqueKeys {
				if doneFields[info.Id] {
					c.TypeErrors = append(c.TypeErrors, &ConstructError{
						Err:    fmt.Errorf("field %s already set in type %s", name.String(), out.Type()),
						Line:   ni.Line,
						Column: ni.Column,
					})
					continue
				}
				doneFields[info.Id] = true
			}
			var field reflect.Value
			if info.Inline == nil {
				field = out.Field(info.Num)
			} else {
				field = c.fieldByIndex(n, out, info.Inline)
			}
			c.Construct(n.Content[i+1], field)
		} else if meta.InlineMap != -1 {
			if inlineMap.IsNil() {
				inlineMap.Set(reflect.MakeMap(inlineMap.Type()))
			}
			value := reflect.New(elemType).Elem()
			c.Construct(n.Content[i+1], value)
			inlineMap.SetMapIndex(name, value)
		} else if c.KnownFields {
			c.TypeErrors = append(c.TypeErrors, &ConstructError{
				Err:    fmt.Errorf("field %s not found in type %s", name.String(), out.Type()),
				Line:   ni.Line,
				Column: ni.Column,
			})
		}
	}

	c.mergedFields = mergedFields
	if mergeNode != nil {
		c.merge(n, mergeNode, out)
	}
	return true
}

// merge applies a "<<" merge key: merge can be a single mapping, an
// alias to one, or a sequence of either, and in every case fields
// already present on the parent mapping win over merged ones.
func (c *Constructor) merge(parent *Node, merge *Node, out reflect.Value) {
	mergedFields := c.mergedFields
	if mergedFields == nil {
		c.mergedFields = make(map[any]bool)
		for i := 0; i < len(parent.Content); i += 2 {
			k := reflect.New(ifaceType).Elem()
			if c.Construct(parent.Content[i], k) {
				c.setPossiblyUnhashableKey(c.mergedFields, k.Interface(), true)
			}
		}
	}

	switch merge.Kind {
	case MappingNode:
		c.Construct(merge, out)
	case AliasNode:
		if merge.Alias != nil && merge.Alias.Kind != MappingNode {
			failWantMap()
		}
		c.Construct(merge, out)
	case SequenceNode:
		for i := 0; i < len(merge.Content); i++ {
			ni := merge.Content[i]
			if ni.Kind == AliasNode {
				if ni.Alias != nil && ni.Alias.Kind != MappingNode {
					failWantMap()
				}
			} else if ni.Kind != MappingNode {
				failWantMap()
			}
			c.Construct(ni, out)
		}
	default:
		failWantMap()
	}

	c.mergedFields = mergedFields
}

// isStringMap reports whether every key in a MappingNode is a plain
// string (or a merge key), which decides whether decoding it into an
// interface{} target produces a map[string]any or a map[any]any.
func isStringMap(n *Node) bool {
	if n.Kind != MappingNode {
		return false
	}
	l := len(n.Content)
	for i := 0; i < l; i += 2 {
		tag := n.Content[i].ShortTag()
		if tag != strTag && tag != mergeTag {
			return false
		}
	}
	return true
}

func isMerge(n *Node) bool {
	return n.Kind == ScalarNode && shortTag(n.Tag) == mergeTag
}

func failWantMap() {
	failf("map merge requires map or sequence of maps as the value")
}

// --------------------------------------------------------------------------
// Pointer/unmarshaler dispatch and shared helpers

// prepare dereferences out through any pointers (allocating as it
// goes) and, once it finds an addressable value, gives a custom
// unmarshaler first refusal: the root package's yaml.Unmarshaler,
// then selfConstructor, then the legacy funcUnmarshaler. constructed
// is true whenever one of those fired, in which case good is its
// result and the caller should not also run the generic scalar/
// mapping/sequence path.
//
// A null source node is left entirely alone here — even a type with
// an unmarshaler still goes through c.null via the Construct switch,
// not through this method.
func (c *Constructor) prepare(n *Node, out reflect.Value) (newout reflect.Value, constructed, good bool) {
	if n.ShortTag() == nullTag {
		return out, false, false
	}
	for {
		if out.Kind() == reflect.Pointer {
			if out.IsNil() {
				out.Set(reflect.New(out.Type().Elem()))
			}
			out = out.Elem()
			continue
		}
		break
	}
	if out.CanAddr() {
		if called, good := c.tryCallYAMLConstructor(n, out); called {
			return out, true, good
		}

		outi := out.Addr().Interface()
		if u, ok := outi.(selfConstructor); ok {
			return out, true, c.callConstructor(n, u)
		}
		if u, ok := outi.(funcUnmarshaler); ok {
			return out, true, c.callFuncUnmarshaler(n, u)
		}
	}
	return out, false, false
}

// fieldByIndex walks a struct field path produced for a promoted
// ",inline" field, allocating any nil pointer it passes through.
func (c *Constructor) fieldByIndex(n *Node, v reflect.Value, index []int) (field reflect.Value) {
	if n.ShortTag() == nullTag {
		return reflect.Value{}
	}
	for _, num := range index {
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(num)
	}
	return v
}

// tryCallYAMLConstructor recognizes the root package's yaml.Unmarshaler
// by method shape (func(*yaml.Node) error) rather than by interface
// satisfaction, since libyaml importing that interface directly would
// create an import cycle (the root package imports libyaml). Node and
// yaml.Node share the same memory layout, so the call goes through an
// unsafe pointer conversion rather than a copy.
func (c *Constructor) tryCallYAMLConstructor(n *Node, out reflect.Value) (called bool, good bool) {
	if !out.CanAddr() {
		return false, false
	}

	method := out.Addr().MethodByName("UnmarshalYAML")
	if !method.IsValid() {
		return false, false
	}

	mtype := method.Type()
	if mtype.NumIn() != 1 || mtype.NumOut() != 1 {
		return false, false
	}

	paramType := mtype.In(0)
	if paramType.Kind() != reflect.Ptr {
		return false, false
	}
	elemType := paramType.Elem()
	if elemType.Kind() != reflect.Struct || elemType.Name() != "Node" {
		return false, false
	}

	nodeValue := reflect.NewAt(elemType, reflect.ValueOf(n).UnsafePointer())
	results := method.Call([]reflect.Value{nodeValue})
	err := results[0].Interface()
	if err == nil {
		return true, true
	}

	switch e := err.(type) {
	case *LoadErrors:
		c.TypeErrors = append(c.TypeErrors, e.Errors...)
		return true, false
	default:
		c.TypeErrors = append(c.TypeErrors, &ConstructError{
			Err:    e.(error),
			Line:   n.Line,
			Column: n.Column,
		})
		return true, false
	}
}

func (c *Constructor) callConstructor(n *Node, u selfConstructor) (good bool) {
	switch e := u.UnmarshalYAML(n).(type) {
	case nil:
		return true
	case *LoadErrors:
		c.TypeErrors = append(c.TypeErrors, e.Errors...)
		return false
	default:
		c.TypeErrors = append(c.TypeErrors, &ConstructError{Err: e, Line: n.Line, Column: n.Column})
		return false
	}
}

// callFuncUnmarshaler drives the legacy funcUnmarshaler shape,
// collecting field errors raised inside the caller's callback into a
// *LoadErrors so they surface the same way a selfConstructor's would.
func (c *Constructor) callFuncUnmarshaler(n *Node, u funcUnmarshaler) (good bool) {
	before := len(c.TypeErrors)
	err := u.UnmarshalYAML(func(v any) (err error) {
		defer handleErr(&err)
		c.Construct(n, reflect.ValueOf(v))
		if len(c.TypeErrors) > before {
			issues := c.TypeErrors[before:]
			c.TypeErrors = c.TypeErrors[:before]
			return &LoadErrors{issues}
		}
		return nil
	})
	switch e := err.(type) {
	case nil:
		return true
	case *LoadErrors:
		c.TypeErrors = append(c.TypeErrors, e.Errors...)
		return false
	default:
		c.TypeErrors = append(c.TypeErrors, &ConstructError{Err: err, Line: n.Line, Column: n.Column})
		return false
	}
}

// tagError records that n's tag can't be constructed into out's type,
// truncating long scalar values so the message stays readable.
func (c *Constructor) tagError(n *Node, tag string, out reflect.Value) {
	if n.Tag != "" {
		tag = n.Tag
	}
	value := n.Value
	if tag != seqTag && tag != mapTag {
		if len(value) > 10 {
			value = " `" + value[:7] + "...`"
		} else {
			value = " `" + value + "`"
		}
	}
	c.TypeErrors = append(c.TypeErrors, &ConstructError{
		Err:    fmt.Errorf("cannot construct %s%s into %s", shortTag(tag), value, out.Type()),
		Line:   n.Line,
		Column: n.Column,
	})
}

// null zeroes out, succeeding only for kinds that have a meaningful
// zero value to represent "absent" (interface, pointer, map, slice);
// a null scalar decoded into, say, an int is left untouched and
// reported as a tag error by the caller.
func (c *Constructor) null(out reflect.Value) bool {
	if out.CanAddr() {
		switch out.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice:
			out.Set(reflect.Zero(out.Type()))
			return true
		}
	}
	return false
}

// isTextUnmarshaler reports whether out (or, for a nil pointer, the
// type it points to) implements encoding.TextUnmarshaler.
func isTextUnmarshaler(out reflect.Value) bool {
	for out.Kind() == reflect.Pointer {
		if out.IsNil() {
			out = reflect.New(out.Type().Elem()).Elem()
		} else {
			out = out.Elem()
		}
	}
	if !out.CanAddr() {
		return false
	}
	_, ok := out.Addr().Interface().(encoding.TextUnmarshaler)
	return ok
}

// settableValueOf wraps i in a fresh, addressable reflect.Value of
// its own type, for cases (a map-key scratch variable, a generic
// []any being built up) where Construct needs somewhere settable to
// write into that isn't already a struct/slice field.
func settableValueOf(i any) reflect.Value {
	v := reflect.ValueOf(i)
	sv := reflect.New(v.Type()).Elem()
	sv.Set(v)
	return sv
}

// setPossiblyUnhashableKey and getPossiblyUnhashableKey guard map-key
// operations against panicking on a key type reflect considers
// unhashable (a slice or map smuggled in through an interface{} key),
// converting that panic into an ordinary failf error instead.
func (c *Constructor) setPossiblyUnhashableKey(m map[any]bool, key any, value bool) {
	defer func() {
		if err := recover(); err != nil {
			failf("%v", err)
		}
	}()
	m[key] = value
}

func (c *Constructor) getPossiblyUnhashableKey(m map[any]bool, key any) bool {
	defer func() {
		if err := recover(); err != nil {
			failf("%v", err)
		}
	}()
	return m[key]
}
