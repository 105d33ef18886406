/*
Copyright 2024 The tensorflow-core Authors. All Rights Reserved.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package tensorflow implements a self-contained, pure-Go deferred
// computation graph runtime.
//
// A Graph is an append-only collection of Operations. Building the graph
// performs no numeric work; each Operation only records its inputs and
// returns Output handles. A Session evaluates requested Outputs by walking
// the transitive dependencies of the request, executing exactly the
// operations required, in construction order.
//
//	g := tensorflow.NewGraph()
//	a, _ := g.AddOperation(tensorflow.OpSpec{Type: "Const", Attrs: ...})
//	...
//	s, _ := tensorflow.NewSession(g, nil)
//	out, err := s.Run(nil, []tensorflow.Output{sum}, nil)
//
// Most callers should build graphs through the op subpackage, which wraps
// AddOperation in typed constructor functions and a Scope that accumulates
// construction errors.
package tensorflow
