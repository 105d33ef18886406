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
	"reflect"

	"github.com/x448/float16"
)

// DataType holds the type for a scalar value. E.g., one slot in a tensor.
//
// The numeric values match the TensorFlow DataType enum so that graphs
// described elsewhere read the same.
type DataType int32

// Types of scalar values in the tensor type system.
const (
	Float  DataType = 1
	Double DataType = 2
	Int32  DataType = 3
	Int64  DataType = 9
	Bool   DataType = 10
	Half   DataType = 19
)

func (dt DataType) String() string {
	switch dt {
	case Float:
		return "Float"
	case Double:
		return "Double"
	case Int32:
		return "Int32"
	case Int64:
		return "Int64"
	case Bool:
		return "Bool"
	case Half:
		return "Half"
	}
	return fmt.Sprintf("DataType(%d)", int32(dt))
}

// isNumeric reports whether arithmetic operations are defined for dt.
func (dt DataType) isNumeric() bool {
	switch dt {
	case Float, Double, Int32, Int64, Half:
		return true
	}
	return false
}

// Tensor holds a multi-dimensional array of elements of a single data type.
// A Tensor is immutable: it is written once by NewTensor or by an executing
// operation and only read afterwards.
type Tensor struct {
	dtype DataType
	shape []int64

	// data is the flattened backing slice in row-major order: []float32,
	// []float64, []int32, []int64 or []bool. Half tensors store raw IEEE
	// 754 binary16 bits as []uint16.
	data any
}

// NewTensor converts from a Go value to a Tensor. Valid values are scalars,
// slices, and arrays. Every element of a slice must have the same length so
// that the resulting Tensor has a valid shape. The element type must be one
// of float32, float64, int32, int64 or bool.
func NewTensor(value any) (*Tensor, error) {
	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return nil, fmt.Errorf("tensorflow: cannot create a Tensor from a nil value")
	}
	shape, dtype, err := shapeAndDataTypeOf(val)
	if err != nil {
		return nil, err
	}
	n := numElements(shape)
	flat := reflect.MakeSlice(reflect.SliceOf(goTypeOf(dtype)), 0, int(n))
	flat, err = flattenInto(flat, val, shape, 0)
	if err != nil {
		return nil, err
	}
	return &Tensor{dtype: dtype, shape: shape, data: flat.Interface()}, nil
}

// DataType returns the scalar datatype of the Tensor.
func (t *Tensor) DataType() DataType { return t.dtype }

// Shape returns the shape of the Tensor.
func (t *Tensor) Shape() []int64 {
	cpy := make([]int64, len(t.shape))
	copy(cpy, t.shape)
	return cpy
}

// NumElements returns the total number of scalar elements held by t.
func (t *Tensor) NumElements() int64 { return numElements(t.shape) }

// Value converts the Tensor back to a Go value: a scalar for rank-0 tensors,
// nested slices otherwise. Half tensors are returned as float32 values.
func (t *Tensor) Value() any {
	flat := reflect.ValueOf(t.flatValues())
	if len(t.shape) == 0 {
		return flat.Index(0).Interface()
	}
	return nestedValue(flat, t.shape).Interface()
}

// ToHalf returns a copy of t with elements converted to the Half data type.
// Only Float tensors can be converted.
func (t *Tensor) ToHalf() (*Tensor, error) {
	if t.dtype != Float {
		return nil, fmt.Errorf("tensorflow: cannot convert a %v tensor to Half", t.dtype)
	}
	return &Tensor{dtype: Half, shape: t.Shape(), data: halfFromFloats(t.data.([]float32))}, nil
}

// flatValues returns the flattened backing data with Half bits widened to
// float32, which is the only representation callers observe.
func (t *Tensor) flatValues() any {
	if t.dtype != Half {
		return t.data
	}
	bits := t.data.([]uint16)
	f32s := make([]float32, len(bits))
	for i, u := range bits {
		f32s[i] = float16.Frombits(u).Float32()
	}
	return f32s
}

// halfFromFloats packs a []float32 into Half backing bits.
func halfFromFloats(src []float32) []uint16 {
	bits := make([]uint16, len(src))
	for i, f := range src {
		bits[i] = uint16(float16.Fromfloat32(f))
	}
	return bits
}

func goTypeOf(dt DataType) reflect.Type {
	switch dt {
	case Float:
		return reflect.TypeOf(float32(0))
	case Double:
		return reflect.TypeOf(float64(0))
	case Int32:
		return reflect.TypeOf(int32(0))
	case Int64:
		return reflect.TypeOf(int64(0))
	case Bool:
		return reflect.TypeOf(false)
	case Half:
		return reflect.TypeOf(uint16(0))
	}
	panic(fmt.Sprintf("tensorflow: no Go type for %v", dt))
}

func dataTypeOf(typ reflect.Type) (DataType, error) {
	switch typ.Kind() {
	case reflect.Float32:
		return Float, nil
	case reflect.Float64:
		return Double, nil
	case reflect.Int32:
		return Int32, nil
	case reflect.Int64:
		return Int64, nil
	case reflect.Bool:
		return Bool, nil
	}
	return 0, fmt.Errorf("tensorflow: unsupported type %v", typ)
}

// shapeAndDataTypeOf returns the data type and shape of the Tensor
// corresponding to a Go value.
func shapeAndDataTypeOf(val reflect.Value) ([]int64, DataType, error) {
	typ := val.Type()
	for typ.Kind() == reflect.Slice || typ.Kind() == reflect.Array {
		typ = typ.Elem()
	}
	dt, err := dataTypeOf(typ)
	if err != nil {
		return nil, 0, err
	}

	var shape []int64
	for v := val; v.Kind() == reflect.Slice || v.Kind() == reflect.Array; {
		shape = append(shape, int64(v.Len()))
		if v.Len() == 0 {
			k := v.Type().Elem().Kind()
			if k == reflect.Slice || k == reflect.Array {
				return nil, 0, fmt.Errorf("tensorflow: cannot infer the shape of an empty nested slice")
			}
			break
		}
		v = v.Index(0)
	}
	return shape, dt, nil
}

// flattenInto appends the scalar elements of v to flat in row-major order,
// verifying along the way that every slice at depth dim has length
// shape[dim] (i.e. that v is not ragged).
func flattenInto(flat, v reflect.Value, shape []int64, dim int) (reflect.Value, error) {
	if dim == len(shape) {
		return reflect.Append(flat, v.Convert(flat.Type().Elem())), nil
	}
	if int64(v.Len()) != shape[dim] {
		return flat, fmt.Errorf("tensorflow: mismatched slice lengths: dimension %d has length %d, want %d", dim, v.Len(), shape[dim])
	}
	var err error
	for i := 0; i < v.Len(); i++ {
		if flat, err = flattenInto(flat, v.Index(i), shape, dim+1); err != nil {
			return flat, err
		}
	}
	return flat, nil
}

// nestedValue rebuilds nested slices of the given shape from a flat slice.
func nestedValue(flat reflect.Value, shape []int64) reflect.Value {
	if len(shape) == 1 {
		return flat
	}
	inner := flat.Type().Elem()
	for range shape[1:] {
		inner = reflect.SliceOf(inner)
	}
	n := int(shape[0])
	out := reflect.MakeSlice(reflect.SliceOf(inner), n, n)
	stride := int(numElements(shape[1:]))
	for i := 0; i < n; i++ {
		out.Index(i).Set(nestedValue(flat.Slice(i*stride, (i+1)*stride), shape[1:]))
	}
	return out
}

func numElements(shape []int64) int64 {
	n := int64(1)
	for _, d := range shape {
		n *= d
	}
	return n
}
