// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Resolver walks a composed node tree assigning long-form tags to untagged
// scalars, following the YAML 1.1 core schema (§4.6 of the companion
// specification).

package libyaml

// Resolver assigns tags to the scalar nodes of a document tree composed by
// Composer, before Constructor turns the tree into Go values.
type Resolver struct {
	opts *Options
}

// NewResolver returns a Resolver configured by opts. A nil opts selects
// package defaults.
func NewResolver(opts *Options) *Resolver {
	return &Resolver{opts: opts}
}

// Resolve assigns a tag to node and, recursively, to every node it
// contains. Scalars carrying no tag, or the generic "!" tag, have their
// tag inferred from their value; scalars with an explicit tag have that
// tag validated and normalized to its long form. Sequence and mapping
// nodes receive the default !!seq/!!map tag when untagged.
func (r *Resolver) Resolve(node *Node) {
	if node == nil {
		return
	}

	switch node.Kind {
	case ScalarNode:
		r.resolveScalar(node)
	case SequenceNode:
		if node.Tag == "" {
			node.Tag = seqTag
		} else {
			node.Tag = longTag(shortTag(node.Tag))
		}
		for _, c := range node.Content {
			r.Resolve(c)
		}
	case MappingNode:
		if node.Tag == "" {
			node.Tag = mapTag
		} else {
			node.Tag = longTag(shortTag(node.Tag))
		}
		for _, c := range node.Content {
			r.Resolve(c)
		}
	case DocumentNode, StreamNode:
		for _, c := range node.Content {
			r.Resolve(c)
		}
	case AliasNode:
		// An alias carries no tag of its own to resolve; its target was
		// (or will be) resolved wherever it is anchored.
	}
}

func (r *Resolver) resolveScalar(node *Node) {
	if node.indicatedString() {
		node.Tag = strTag
		return
	}

	tag, _ := resolve(shortTag(node.Tag), node.Value)
	node.Tag = longTag(tag)
}
