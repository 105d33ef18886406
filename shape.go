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
	"strings"
)

// Shape represents the (possibly partially known) shape of a tensor that will
// be produced by an operation.
//
// The zero-value of a Shape represents a shape with an unknown number of
// dimensions.
type Shape struct {
	dims []int64
}

// ScalarShape returns a Shape representing a scalar.
func ScalarShape() Shape {
	return Shape{dims: make([]int64, 0)}
}

// MakeShape returns a Shape with the provided size of each dimension.
//
// A value of -1 implies that the size of the corresponding dimension is not
// known.
func MakeShape(shape ...int64) Shape {
	cpy := make([]int64, len(shape))
	copy(cpy, shape)
	return Shape{dims: cpy}
}

// NumDimensions returns the number of dimensions represented by s, or -1 if
// unknown.
func (s Shape) NumDimensions() int {
	if s.dims == nil {
		return -1
	}
	return len(s.dims)
}

// Size returns the size of the dim-th dimension of the shape, or -1 if it
// is unknown.
//
// REQUIRES: 0 <= dim < s.NumDimensions()
func (s Shape) Size(dim int) int64 {
	if dim < 0 || dim >= s.NumDimensions() {
		return -1
	}
	return s.dims[dim]
}

// IsFullySpecified returns true iff the size of all the dimensions of s are
// known.
func (s Shape) IsFullySpecified() bool {
	if s.dims == nil {
		return false
	}
	for _, size := range s.dims {
		if size < 0 {
			return false
		}
	}
	return true
}

// ToSlice returns the (possibly partially known) shape represented by s as a
// slice, or an error if the number of dimensions is not known.
func (s Shape) ToSlice() ([]int64, error) {
	if s.dims == nil {
		return nil, fmt.Errorf("cannot create a slice for a Shape with an unknown number of dimensions")
	}
	cpy := make([]int64, len(s.dims))
	copy(cpy, s.dims)
	return cpy, nil
}

func (s Shape) String() string {
	if s.dims == nil {
		return "?"
	}
	ret := fmt.Sprint(s.dims)
	for _, size := range s.dims {
		if size < 0 {
			ret = strings.Replace(ret, fmt.Sprint(size), "?", 1)
		}
	}
	return strings.Replace(ret, " ", ", ", -1)
}

// broadcastShapes returns the static shape of an elementwise operation
// applied to operands of shapes a and b under standard broadcasting rules:
// dimensions are aligned from the right, and each pair of dimensions must be
// equal or one of them must be 1.
//
// Unknown ranks and unknown dimension sizes are deferred: the result carries
// the unknown, and compatibility is settled at run time once concrete values
// exist. A pair of known, unequal, non-1 dimensions is rejected here so the
// error surfaces while the graph is being built.
func broadcastShapes(a, b Shape) (Shape, bool) {
	if a.dims == nil || b.dims == nil {
		return Shape{}, true
	}
	n := len(a.dims)
	if len(b.dims) > n {
		n = len(b.dims)
	}
	dims := make([]int64, n)
	for i := 1; i <= n; i++ {
		da, db := int64(1), int64(1)
		if i <= len(a.dims) {
			da = a.dims[len(a.dims)-i]
		}
		if i <= len(b.dims) {
			db = b.dims[len(b.dims)-i]
		}
		d, ok := broadcastDim(da, db)
		if !ok {
			return Shape{}, false
		}
		dims[n-i] = d
	}
	return Shape{dims: dims}, true
}

func broadcastDim(da, db int64) (int64, bool) {
	switch {
	case da == db:
		return da, true
	case da == 1:
		return db, true
	case db == 1:
		return da, true
	case da < 0:
		if db < 0 {
			return -1, true
		}
		return db, true
	case db < 0:
		return da, true
	}
	return 0, false
}

// shapeCompatible reports whether a concrete tensor shape satisfies a static
// (possibly partially known) shape.
func shapeCompatible(static Shape, concrete []int64) bool {
	if static.dims == nil {
		return true
	}
	if len(static.dims) != len(concrete) {
		return false
	}
	for i, d := range static.dims {
		if d >= 0 && d != concrete[i] {
			return false
		}
	}
	return true
}
