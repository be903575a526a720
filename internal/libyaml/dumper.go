// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Dump and Dumper are the write-side mirror of Load/Loader: Dump runs
// the pipeline once over an in-memory buffer, Dumper exposes it over
// a streaming io.Writer for callers emitting more than one value.

package libyaml

import (
	"bytes"
	"errors"
	"io"
	"reflect"
)

// Dumper drives a Go value through the three stages that turn it into
// YAML text:
//  1. Representer turns the value into a tagged Node tree.
//  2. Desolver strips tags that implicit resolution would re-derive.
//  3. Serializer turns the Node tree into events and emits them.
type Dumper struct {
	representer *Representer
	desolver    *Desolver
	serializer  *Serializer
	options     *Options
}

// NewDumper builds a Dumper that streams encoded output to w. Close it
// once done to flush whatever the serializer is still holding.
func NewDumper(w io.Writer, opts ...Option) (*Dumper, error) {
	o, err := ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Dumper{
		representer: NewRepresenter(o),
		desolver:    NewDesolver(o),
		serializer:  NewSerializer(w, o),
		options:     o,
	}, nil
}

// Dump encodes in to a YAML byte slice.
//
// WithAllDocuments() switches to multi-document mode, requiring in to
// be a slice; each element becomes its own document, separated by
// "---":
//
//	docs := []Config{config1, config2, config3}
//	yaml.Dump(docs, yaml.WithAllDocuments())
//
// See [Marshal] for how Go values map onto YAML.
func Dump(in any, opts ...Option) (out []byte, err error) {
	defer handleErr(&err)

	o, err := ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	d, err := NewDumper(&buf, func(target *Options) error {
		*target = *o
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !o.AllDocuments {
		if err := d.Dump(in); err != nil {
			return nil, err
		}
	} else {
		items := reflect.ValueOf(in)
		if items.Kind() != reflect.Slice {
			return nil, &LoadErrors{Errors: []*ConstructError{{
				Err: errors.New("yaml: WithAllDocuments requires a slice input"),
			}}}
		}
		for i := 0; i < items.Len(); i++ {
			if err := d.Dump(items.Index(i).Interface()); err != nil {
				return nil, err
			}
		}
	}

	if err := d.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Dump writes one YAML document for v. A second and later call on the
// same Dumper emits its document preceded by a "---" separator.
//
// See [Marshal] for how Go values map onto YAML.
func (d *Dumper) Dump(v any) (err error) {
	defer handleErr(&err)

	node := d.representer.Represent("", reflect.ValueOf(v))
	d.desolver.Desolve(node)
	d.serializer.Serialize(node)
	return nil
}

// Close flushes whatever output the Dumper is still holding. It does
// not write a stream-terminating "...".
func (d *Dumper) Close() (err error) {
	defer handleErr(&err)
	d.serializer.Finish()
	return nil
}

// SetIndent sets the per-level indent width used by subsequent Dump
// calls; wired through from the legacy Encoder.SetIndent.
func (d *Dumper) SetIndent(spaces int) {
	if spaces < 0 {
		panic("yaml: cannot indent to a negative number of spaces")
	}
	d.serializer.Emitter.BestIndent = spaces
}

// SetCompactSeqIndent controls whether a block sequence item's "- "
// counts toward its own indentation column; wired through from the
// legacy Encoder.
func (d *Dumper) SetCompactSeqIndent(compact bool) {
	d.serializer.Emitter.CompactSequenceIndent = compact
}
