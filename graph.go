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

package tensorflow

import "fmt"

// Graph represents a computation graph: an append-only arena of operations.
//
// Building a graph computes nothing. Operations are appended one at a time
// and may only take inputs from operations that are already in the graph,
// so the graph is acyclic by construction and the arena order is always a
// valid evaluation order.
//
// A Graph is not safe for concurrent construction, but once the last
// operation has been added it is never mutated again and may be evaluated
// from any number of concurrent Session.Run calls.
type Graph struct {
	ops    []*Operation
	byName map[string]*Operation
}

// NewGraph returns a new, empty Graph.
func NewGraph() *Graph {
	return &Graph{byName: make(map[string]*Operation)}
}

// OpSpec is the specification of an Operation to be added to a Graph
// (using Graph.AddOperation).
type OpSpec struct {
	// Type of the operation (e.g. "Const", "Add", "Placeholder").
	Type string

	// Name by which the added operation will be referred to in the Graph.
	// If omitted, it defaults to the operation type suffixed with the
	// operation's position in the graph, so a name never depends on which
	// variable the caller binds the result to.
	Name string

	// Inputs to this operation, which in turn must be outputs
	// of other operations already added to the Graph.
	Input []Input

	// Map from attribute name to its value that will be attached to this
	// operation.
	Attrs map[string]any
}

// AddOperation adds an operation to g.
//
// The operation type must name a registered op, the number of inputs must
// match the op's arity, all inputs must come from g itself, and the op's
// attribute and shape constraints must hold. On any violation the returned
// error describes the problem and g is left unchanged.
func (g *Graph) AddOperation(args OpSpec) (*Operation, error) {
	def, ok := opDefs[args.Type]
	if !ok {
		return nil, &ErrOperationNotFound{OpType: args.Type}
	}

	inputs, err := flattenInputs(args.Input)
	if err != nil {
		return nil, err
	}
	if len(inputs) != def.numInputs {
		return nil, &ErrInvalidInputCount{OpType: args.Type, Want: def.numInputs, Got: len(inputs)}
	}
	for _, in := range inputs {
		if in.Op == nil || in.Op.g != g {
			return nil, &ErrCrossGraphInput{OpType: args.Type, Input: inputName(in)}
		}
	}

	op := &Operation{
		g:      g,
		def:    def,
		id:     len(g.ops),
		opType: args.Type,
		name:   args.Name,
		inputs: inputs,
		attrs:  args.Attrs,
	}
	if op.attrs == nil {
		op.attrs = make(map[string]any)
	}
	if op.name == "" {
		op.name = fmt.Sprintf("%s_%d", args.Type, op.id)
	}
	if _, taken := g.byName[op.name]; taken {
		return nil, &ErrDuplicateName{Name: op.name}
	}

	// Static type and shape inference; construction-time validation of
	// dtypes, attrs and broadcast compatibility lives in the op registry.
	if err := def.infer(op); err != nil {
		return nil, err
	}

	g.ops = append(g.ops, op)
	g.byName[op.name] = op
	return op, nil
}

// Operation returns the Operation named name in the Graph, or nil if no such
// operation is present.
func (g *Graph) Operation(name string) *Operation {
	return g.byName[name]
}

// Operations returns a list of all operations in the graph, in the order
// they were added.
func (g *Graph) Operations() []*Operation {
	ops := make([]*Operation, len(g.ops))
	copy(ops, g.ops)
	return ops
}

// NumOperations returns the number of operations in the graph.
func (g *Graph) NumOperations() int { return len(g.ops) }

func flattenInputs(in []Input) ([]Output, error) {
	var out []Output
	for _, i := range in {
		switch v := i.(type) {
		case Output:
			out = append(out, v)
		case OutputList:
			out = append(out, v...)
		default:
			return nil, fmt.Errorf("tensorflow: unsupported input type %T", i)
		}
	}
	return out, nil
}

func inputName(o Output) string {
	if o.Op == nil {
		return "<nil>"
	}
	if o.Index == 0 {
		return o.Op.name
	}
	return fmt.Sprintf("%s:%d", o.Op.name, o.Index)
}
