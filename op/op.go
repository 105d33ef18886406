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

// Package op defines functions for adding operations to a Graph.
//
// Functions for adding an operation to a graph take a Scope object as the
// first argument. The Scope object encapsulates a graph and a set of
// properties (such as a name prefix) for all operations being added
// to the graph.
package op

import (
	tf "github.com/IvanHalim/tensorflow-core"
)

// Const adds an operation to graph that produces value as output.
//
// value may be a *tf.Tensor or any Go value accepted by tf.NewTensor.
func Const(scope *Scope, value any) (output tf.Output) {
	if scope.Err() != nil {
		return
	}
	t, ok := value.(*tf.Tensor)
	if !ok {
		var err error
		if t, err = tf.NewTensor(value); err != nil {
			scope.UpdateErr("Const", err)
			return
		}
	}
	return scope.AddOperation(tf.OpSpec{
		Type: "Const",
		Attrs: map[string]any{
			"dtype": t.DataType(),
			"value": t,
		}}).Output(0)
}

// PlaceholderAttr is an optional argument to Placeholder.
type PlaceholderAttr func(map[string]any)

// PlaceholderShape sets the optional shape attribute to value.
//
// value: (Optional) The shape of the tensor. The shape can be any
// partially-specified shape. To be unconstrained, pass in a shape with
// unknown rank.
// If not specified, defaults to unknown rank.
func PlaceholderShape(value tf.Shape) PlaceholderAttr {
	return func(m map[string]any) {
		m["shape"] = value
	}
}

// Placeholder adds a placeholder operation: a value that must be fed when
// the graph is evaluated. Evaluating a placeholder that was not fed is an
// error reported before any computation runs.
func Placeholder(scope *Scope, dtype tf.DataType, optional ...PlaceholderAttr) (output tf.Output) {
	if scope.Err() != nil {
		return
	}
	attrs := map[string]any{"dtype": dtype}
	for _, a := range optional {
		a(attrs)
	}
	return scope.AddOperation(tf.OpSpec{
		Type:  "Placeholder",
		Attrs: attrs,
	}).Output(0)
}

// Add returns x + y element-wise.
//
// Supports broadcasting: the shapes of x and y are aligned from the right
// and each pair of dimensions must be equal or 1.
func Add(scope *Scope, x, y tf.Output) (z tf.Output) {
	return binaryOp(scope, "Add", x, y)
}

// Sub returns x - y element-wise, with broadcasting.
func Sub(scope *Scope, x, y tf.Output) (z tf.Output) {
	return binaryOp(scope, "Sub", x, y)
}

// Mul returns x * y element-wise, with broadcasting.
func Mul(scope *Scope, x, y tf.Output) (z tf.Output) {
	return binaryOp(scope, "Mul", x, y)
}

// Div returns x / y element-wise, with broadcasting. Integer division by
// zero fails the evaluation call.
func Div(scope *Scope, x, y tf.Output) (z tf.Output) {
	return binaryOp(scope, "Div", x, y)
}

func binaryOp(scope *Scope, opType string, x, y tf.Output) tf.Output {
	if scope.Err() != nil {
		return tf.Output{}
	}
	return scope.AddOperation(tf.OpSpec{
		Type:  opType,
		Input: []tf.Input{x, y},
	}).Output(0)
}

// RandomUniformAttr is an optional argument to RandomUniform.
type RandomUniformAttr func(map[string]any)

// RandomUniformSeed pins the operation to its own random stream derived
// from seed, independent of the session seed. A zero seed is ignored.
func RandomUniformSeed(seed int64) RandomUniformAttr {
	return func(m map[string]any) {
		m["seed"] = seed
	}
}

// RandomUniform adds a stateful operation producing a tensor of the given
// shape filled with uniform samples from [0, 1).
//
// The operation draws once per Session.Run call: every consumer within one
// call observes the same sample, and separate calls draw independently.
func RandomUniform(scope *Scope, shape tf.Shape, dtype tf.DataType, optional ...RandomUniformAttr) (output tf.Output) {
	fns := make([]func(map[string]any), len(optional))
	for i, a := range optional {
		fns[i] = a
	}
	return randomOp(scope, "RandomUniform", shape, dtype, fns)
}

// RandomNormalAttr is an optional argument to RandomNormal.
type RandomNormalAttr func(map[string]any)

// RandomNormalSeed pins the operation to its own random stream derived
// from seed, independent of the session seed. A zero seed is ignored.
func RandomNormalSeed(seed int64) RandomNormalAttr {
	return func(m map[string]any) {
		m["seed"] = seed
	}
}

// RandomNormal adds a stateful operation producing a tensor of the given
// shape filled with standard normal samples. Sampling behaves as for
// RandomUniform: once per Run call, memoized within the call.
func RandomNormal(scope *Scope, shape tf.Shape, dtype tf.DataType, optional ...RandomNormalAttr) (output tf.Output) {
	fns := make([]func(map[string]any), len(optional))
	for i, a := range optional {
		fns[i] = a
	}
	return randomOp(scope, "RandomNormal", shape, dtype, fns)
}

func randomOp(scope *Scope, opType string, shape tf.Shape, dtype tf.DataType, optional []func(map[string]any)) tf.Output {
	if scope.Err() != nil {
		return tf.Output{}
	}
	attrs := map[string]any{"shape": shape, "dtype": dtype}
	for _, a := range optional {
		a(attrs)
	}
	return scope.AddOperation(tf.OpSpec{
		Type:  opType,
		Attrs: attrs,
	}).Output(0)
}
