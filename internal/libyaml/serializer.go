//
// Copyright (c) 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package libyaml

import "io"

// Serializer is the third stage of the Dumper's pipeline: it walks a Node
// tree already stripped of inferable tags by Desolver and turns it into an
// event stream via Emitter. It shares its machinery with Encoder, which
// drives the same node-walking logic directly off reflect.Value for the
// legacy single-pass Marshal path.
type Serializer = Encoder

// NewSerializer returns a Serializer that writes to w with the given
// options.
func NewSerializer(w io.Writer, o *Options) *Serializer {
	return NewEncoder(w, o)
}

// Serialize walks node and emits the corresponding event stream. node is
// expected to be a DocumentNode, as produced by Representer.Represent.
func (e *Encoder) Serialize(node *Node) {
	e.init()
	e.node(node, "")
}
