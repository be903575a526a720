// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Struct reflection is the bridge between a Go struct type and a YAML
// mapping: the Constructor consults it to find which struct field a
// decoded key lands in, and the Representer consults the same cache to
// go the other way when encoding. Tags look like
// `yaml:"name,omitempty,flow,inline"`; results are cached per type so
// repeated (de)serialization of the same struct type doesn't re-walk
// its reflect.Type every time.

// yamlFieldMeta describes one YAML-relevant struct field.
type yamlFieldMeta struct {
	Key       string
	Num       int
	OmitEmpty bool
	Flow      bool

	// Id is a dense, zero-based index into the owning yamlStructMeta's
	// FieldsList, used to spot duplicate fields cheaply without a
	// second map.
	Id int

	// Inline holds the path of field indices leading to this field
	// when it was promoted out of an ",inline" struct; nil otherwise.
	Inline []int
}

// yamlStructMeta is the cached, per-type result of walking a struct's
// fields once.
type yamlStructMeta struct {
	FieldsMap  map[string]yamlFieldMeta
	FieldsList []yamlFieldMeta

	// InlineMap is the field index of an ",inline" map, or -1 if the
	// struct has none.
	InlineMap int

	// InlineConstructors holds the field-index paths of inlined fields
	// whose type takes over its own decoding (selfConstructor or
	// yaml.Unmarshaler), rather than being walked field by field.
	InlineConstructors [][]int
}

var (
	structMetaCache      = make(map[reflect.Type]*yamlStructMeta)
	structMetaMu         sync.RWMutex
	selfConstructorIface reflect.Type
)

// selfConstructor mirrors the root package's Unmarshaler by method
// name: libyaml cannot import the root yaml package (which imports
// libyaml), so a type is recognized as self-decoding either by
// satisfying this interface directly or, for the root package's own
// exported Unmarshaler, by the method-shape check in
// implementsUnmarshalYAML below.
type selfConstructor interface {
	UnmarshalYAML(value *Node) error
}

func init() {
	var v selfConstructor
	selfConstructorIface = reflect.ValueOf(&v).Elem().Type()
}

// implementsUnmarshalYAML reports whether t has a method matching
// func (*T) UnmarshalYAML(*Node) error by shape — used to recognize
// the root package's yaml.Unmarshaler, whose interface type lives in a
// package libyaml can't import without a cycle.
func implementsUnmarshalYAML(t reflect.Type) bool {
	method, found := t.MethodByName("UnmarshalYAML")
	if !found {
		return false
	}

	mtype := method.Type
	if mtype.NumIn() != 2 || mtype.NumOut() != 1 {
		return false
	}

	argType := mtype.In(1)
	if argType.Kind() != reflect.Ptr {
		return false
	}
	if elem := argType.Elem(); elem.Kind() != reflect.Struct || elem.Name() != "Node" {
		return false
	}

	retType := mtype.Out(0)
	return retType.Kind() == reflect.Interface && retType.Name() == "error"
}

// structMetadata returns the cached field metadata for a struct type,
// computing and caching it on first use.
func structMetadata(st reflect.Type) (*yamlStructMeta, error) {
	structMetaMu.RLock()
	meta, found := structMetaCache[st]
	structMetaMu.RUnlock()
	if found {
		return meta, nil
	}

	fieldCount := st.NumField()
	fieldsMap := make(map[string]yamlFieldMeta)
	fieldsList := make([]yamlFieldMeta, 0, fieldCount)
	inlineMap := -1
	var inlineConstructors [][]int

	for i := 0; i != fieldCount; i++ {
		field := st.Field(i)
		if field.PkgPath != "" && !field.Anonymous {
			continue // unexported, not embedded
		}

		info := yamlFieldMeta{Num: i}

		tag := field.Tag.Get("yaml")
		if tag == "" && !strings.Contains(string(field.Tag), ":") {
			tag = string(field.Tag)
		}
		if tag == "-" {
			continue
		}

		inline := false
		parts := strings.Split(tag, ",")
		if len(parts) > 1 {
			for _, flag := range parts[1:] {
				switch flag {
				case "omitempty":
					info.OmitEmpty = true
				case "flow":
					info.Flow = true
				case "inline":
					inline = true
				default:
					return nil, fmt.Errorf("unsupported flag %q in tag %q of type %s", flag, tag, st)
				}
			}
			tag = parts[0]
		}

		if inline {
			switch field.Type.Kind() {
			case reflect.Map:
				if inlineMap >= 0 {
					return nil, errors.New("multiple ,inline maps in struct " + st.String())
				}
				if field.Type.Key() != reflect.TypeOf("") {
					return nil, errors.New("option ,inline needs a map with string keys in struct " + st.String())
				}
				inlineMap = info.Num
			case reflect.Struct, reflect.Pointer:
				elemType := field.Type
				for elemType.Kind() == reflect.Pointer {
					elemType = elemType.Elem()
				}
				if elemType.Kind() != reflect.Struct {
					return nil, errors.New("option ,inline may only be used on a struct or map field")
				}
				ptrType := reflect.PointerTo(elemType)
				if ptrType.Implements(selfConstructorIface) || implementsUnmarshalYAML(ptrType) {
					inlineConstructors = append(inlineConstructors, []int{i})
					continue
				}
				nested, err := structMetadata(elemType)
				if err != nil {
					return nil, err
				}
				for _, path := range nested.InlineConstructors {
					inlineConstructors = append(inlineConstructors, append([]int{i}, path...))
				}
				for _, nf := range nested.FieldsList {
					if _, dup := fieldsMap[nf.Key]; dup {
						return nil, errors.New("duplicated key '" + nf.Key + "' in struct " + st.String())
					}
					if nf.Inline == nil {
						nf.Inline = []int{i, nf.Num}
					} else {
						nf.Inline = append([]int{i}, nf.Inline...)
					}
					nf.Id = len(fieldsList)
					fieldsMap[nf.Key] = nf
					fieldsList = append(fieldsList, nf)
				}
			default:
				return nil, errors.New("option ,inline may only be used on a struct or map field")
			}
			continue
		}

		if tag != "" {
			info.Key = tag
		} else {
			info.Key = strings.ToLower(field.Name)
		}

		if _, dup := fieldsMap[info.Key]; dup {
			return nil, errors.New("duplicated key '" + info.Key + "' in struct " + st.String())
		}

		info.Id = len(fieldsList)
		fieldsList = append(fieldsList, info)
		fieldsMap[info.Key] = info
	}

	meta = &yamlStructMeta{
		FieldsMap:          fieldsMap,
		FieldsList:         fieldsList,
		InlineMap:          inlineMap,
		InlineConstructors: inlineConstructors,
	}

	structMetaMu.Lock()
	structMetaCache[st] = meta
	structMetaMu.Unlock()
	return meta, nil
}
