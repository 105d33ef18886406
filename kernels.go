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

import (
	"fmt"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/stat/distuv"
)

func constKernel(rs *runState, op *Operation) (*Tensor, error) {
	return op.attr("value").(*Tensor), nil
}

// placeholderKernel only runs when a placeholder is requested as a target;
// ordinary fetches of an unfed placeholder fail before execution starts.
func placeholderKernel(rs *runState, op *Operation) (*Tensor, error) {
	if v, ok := rs.values[op.Output(0)]; ok {
		return v, nil
	}
	return nil, &ErrMissingFeed{Placeholders: []string{op.name}}
}

func randomUniformKernel(rs *runState, op *Operation) (*Tensor, error) {
	dist := distuv.Uniform{Min: 0, Max: 1, Src: rs.sourceFor(op)}
	return drawTensor(op, dist.Rand), nil
}

func randomNormalKernel(rs *runState, op *Operation) (*Tensor, error) {
	dist := distuv.Normal{Mu: 0, Sigma: 1, Src: rs.sourceFor(op)}
	return drawTensor(op, dist.Rand), nil
}

// drawTensor fills a tensor of the op's declared shape with samples from
// draw. The shape is fully specified; inferRandom enforced that.
func drawTensor(op *Operation, draw func() float64) *Tensor {
	shape, _ := op.attr("shape").(Shape).ToSlice()
	n := numElements(shape)
	switch op.outputTypes[0] {
	case Double:
		data := make([]float64, n)
		for i := range data {
			data[i] = draw()
		}
		return &Tensor{dtype: Double, shape: shape, data: data}
	default:
		data := make([]float32, n)
		for i := range data {
			data[i] = float32(draw())
		}
		return &Tensor{dtype: Float, shape: shape, data: data}
	}
}

// elementwise applies a binary arithmetic operation to two tensors of the
// same data type, broadcasting their shapes against each other.
//
// Shapes known at construction time were already validated; this re-derives
// the concrete result shape because placeholders may have been declared with
// unknown dimensions, in which case incompatibility can only show up here.
func elementwise(opType string, a, b *Tensor) (*Tensor, error) {
	shape, ok := broadcastConcrete(a.shape, b.shape)
	if !ok {
		return nil, fmt.Errorf("cannot broadcast shape %v against %v", a.shape, b.shape)
	}
	var (
		data any
		err  error
	)
	switch a.dtype {
	case Float:
		data, err = mapFloat(opType, a.data.([]float32), b.data.([]float32), a.shape, b.shape, shape)
	case Double:
		data, err = mapFloat(opType, a.data.([]float64), b.data.([]float64), a.shape, b.shape, shape)
	case Int32:
		data, err = mapInt(opType, a.data.([]int32), b.data.([]int32), a.shape, b.shape, shape)
	case Int64:
		data, err = mapInt(opType, a.data.([]int64), b.data.([]int64), a.shape, b.shape, shape)
	case Half:
		var f32s []float32
		f32s, err = mapFloat(opType, a.flatValues().([]float32), b.flatValues().([]float32), a.shape, b.shape, shape)
		if err == nil {
			data = halfFromFloats(f32s)
		}
	default:
		err = fmt.Errorf("no %s kernel for data type %v", opType, a.dtype)
	}
	if err != nil {
		return nil, err
	}
	return &Tensor{dtype: a.dtype, shape: shape, data: data}, nil
}

// broadcastConcrete is the run-time counterpart of broadcastShapes: all
// dimensions are known, so a pair of dimensions is compatible only when
// equal or when one of them is 1.
func broadcastConcrete(a, b []int64) ([]int64, bool) {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]int64, n)
	for i := 1; i <= n; i++ {
		da, db := int64(1), int64(1)
		if i <= len(a) {
			da = a[len(a)-i]
		}
		if i <= len(b) {
			db = b[len(b)-i]
		}
		switch {
		case da == db:
			out[n-i] = da
		case da == 1:
			out[n-i] = db
		case db == 1:
			out[n-i] = da
		default:
			return nil, false
		}
	}
	return out, true
}

func mapFloat[T constraints.Float](opType string, a, b []T, ashape, bshape, out []int64) ([]T, error) {
	switch opType {
	case "Add":
		return mapBinary(func(x, y T) T { return x + y }, a, b, ashape, bshape, out), nil
	case "Sub":
		return mapBinary(func(x, y T) T { return x - y }, a, b, ashape, bshape, out), nil
	case "Mul":
		return mapBinary(func(x, y T) T { return x * y }, a, b, ashape, bshape, out), nil
	case "Div":
		// IEEE semantics: x/0 is Inf or NaN, not an error.
		return mapBinary(func(x, y T) T { return x / y }, a, b, ashape, bshape, out), nil
	}
	return nil, fmt.Errorf("unknown elementwise operation %q", opType)
}

func mapInt[T constraints.Integer](opType string, a, b []T, ashape, bshape, out []int64) ([]T, error) {
	switch opType {
	case "Add":
		return mapBinary(func(x, y T) T { return x + y }, a, b, ashape, bshape, out), nil
	case "Sub":
		return mapBinary(func(x, y T) T { return x - y }, a, b, ashape, bshape, out), nil
	case "Mul":
		return mapBinary(func(x, y T) T { return x * y }, a, b, ashape, bshape, out), nil
	case "Div":
		bi := broadcastIndexer(bshape, out)
		for i := int64(0); i < numElements(out); i++ {
			if b[bi(i)] == 0 {
				return nil, fmt.Errorf("integer division by zero")
			}
		}
		return mapBinary(func(x, y T) T { return x / y }, a, b, ashape, bshape, out), nil
	}
	return nil, fmt.Errorf("unknown elementwise operation %q", opType)
}

func mapBinary[T constraints.Integer | constraints.Float](f func(T, T) T, a, b []T, ashape, bshape, out []int64) []T {
	n := numElements(out)
	res := make([]T, n)
	ai := broadcastIndexer(ashape, out)
	bi := broadcastIndexer(bshape, out)
	for i := int64(0); i < n; i++ {
		res[i] = f(a[ai(i)], b[bi(i)])
	}
	return res
}

// broadcastIndexer maps a flat index into the result shape to the flat
// index of the corresponding element in a source operand, using stride 0
// for dimensions the operand is broadcast along.
func broadcastIndexer(src, out []int64) func(int64) int64 {
	if len(src) == len(out) {
		same := true
		for i := range src {
			if src[i] != out[i] {
				same = false
				break
			}
		}
		if same {
			return func(i int64) int64 { return i }
		}
	}
	srcStrides := make([]int64, len(out))
	stride := int64(1)
	off := len(out) - len(src)
	for i := len(src) - 1; i >= 0; i-- {
		if src[i] != 1 {
			srcStrides[off+i] = stride
		}
		stride *= src[i]
	}
	outStrides := make([]int64, len(out))
	stride = 1
	for i := len(out) - 1; i >= 0; i-- {
		outStrides[i] = stride
		stride *= out[i]
	}
	return func(flat int64) int64 {
		var idx int64
		for d := range out {
			idx += ((flat / outStrides[d]) % out[d]) * srcStrides[d]
		}
		return idx
	}
}
