// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Desolver is the Resolver run backwards: given a tagged Node, it
// would strip any tag that implicit resolution would reconstruct
// anyway, so the serializer only writes tags a reader actually needs.

package libyaml

// Desolver holds whatever options a future tag-stripping pass would
// need to consult (custom resolvers, strict-tag settings, ...).
type Desolver struct {
	opts *Options
}

// NewDesolver builds a Desolver bound to opts.
func NewDesolver(opts *Options) *Desolver {
	return &Desolver{opts: opts}
}

// Desolve is a placeholder: tag omission is still decided inline by
// the serializer's own resolution pass, not here.
//
// TODO: once represent() builds full Node trees up front instead of
// emitting events directly, move that inline tag-omission logic into
// this method so Dumper's three stages (represent/desolve/serialize)
// are each self-contained.
func (d *Desolver) Desolve(n *Node) {}
