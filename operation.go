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

// Operation that has been added to the graph. An Operation is immutable
// once created: it records its kind, its inputs and the static type and
// shape of each output, and performs no computation until a Session
// evaluates it.
type Operation struct {
	// A reference to the owning Graph; an Operation never outlives it.
	g   *Graph
	def *opDef

	// id is the operation's index in the graph's arena. Inputs always
	// reference operations with a strictly smaller id, so arena order is a
	// valid evaluation order.
	id     int
	opType string
	name   string
	inputs []Output
	attrs  map[string]any

	outputTypes  []DataType
	outputShapes []Shape
}

// Name returns the name of the operation.
func (op *Operation) Name() string { return op.name }

// Type returns the name of the operator used by this operation.
func (op *Operation) Type() string { return op.opType }

// NumInputs returns the number of inputs of op.
func (op *Operation) NumInputs() int { return len(op.inputs) }

// NumOutputs returns the number of outputs of op.
func (op *Operation) NumOutputs() int { return len(op.outputTypes) }

// Output returns the i-th output of op.
func (op *Operation) Output(i int) Output {
	return Output{op, i}
}

// Stateful reports whether op produces a fresh value on every evaluation
// call rather than a pure function of its inputs.
func (op *Operation) Stateful() bool { return op.def.stateful }

// attr returns the named attribute, which AddOperation has already
// validated to exist and hold the expected type.
func (op *Operation) attr(name string) any { return op.attrs[name] }

// Output represents one of the outputs of an operation in the graph. Has a
// DataType and Shape. May be passed as an input argument to a function for
// adding operations to a graph, or to a Session's Run() method to fetch
// that output as a tensor.
type Output struct {
	// Op is the Operation that produces this Output.
	Op *Operation

	// Index specifies the index of the output within the Operation.
	Index int
}

// DataType returns the type of elements in the tensor produced by p.
func (p Output) DataType() DataType {
	p.mustBeValid()
	return p.Op.outputTypes[p.Index]
}

// Shape returns the (possibly incomplete) shape of the tensor produced by p,
// as known at graph construction time.
func (p Output) Shape() Shape {
	p.mustBeValid()
	return p.Op.outputShapes[p.Index]
}

func (p Output) mustBeValid() {
	if p.Op == nil {
		panic("Output has no associated Operation; the call that created it failed, see Scope.Err() for details")
	}
}

func (p Output) canBeAnInput() {}

// Input is the interface for specifying inputs to an operation being added
// to a Graph.
//
// Operations can have multiple inputs, each of which could be either a
// tensor produced by another operation (an Output object), or a list of
// tensors produced by other operations (an OutputList). Thus, this
// interface is implemented by both Output and OutputList.
type Input interface {
	// Unexported to preclude implementations outside this package.
	canBeAnInput()
}

// OutputList represents a list of Outputs that can be provided as input to
// another operation.
type OutputList []Output

func (l OutputList) canBeAnInput() {}
