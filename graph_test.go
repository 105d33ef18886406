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
	"errors"
	"fmt"
	"testing"
)

func mustConst(t *testing.T, g *Graph, name string, value any) Output {
	t.Helper()
	tensor, ok := value.(*Tensor)
	if !ok {
		var err error
		if tensor, err = NewTensor(value); err != nil {
			t.Fatalf("NewTensor(%v): %v", value, err)
		}
	}
	op, err := g.AddOperation(OpSpec{
		Type: "Const",
		Name: name,
		Attrs: map[string]any{
			"dtype": tensor.DataType(),
			"value": tensor,
		},
	})
	if err != nil {
		t.Fatalf("AddOperation(Const): %v", err)
	}
	return op.Output(0)
}

func mustPlaceholder(t *testing.T, g *Graph, name string, dt DataType, shape Shape) Output {
	t.Helper()
	op, err := g.AddOperation(OpSpec{
		Type:  "Placeholder",
		Name:  name,
		Attrs: map[string]any{"dtype": dt, "shape": shape},
	})
	if err != nil {
		t.Fatalf("AddOperation(Placeholder): %v", err)
	}
	return op.Output(0)
}

func mustBinary(t *testing.T, g *Graph, opType, name string, x, y Output) Output {
	t.Helper()
	op, err := g.AddOperation(OpSpec{
		Type:  opType,
		Name:  name,
		Input: []Input{x, y},
	})
	if err != nil {
		t.Fatalf("AddOperation(%s): %v", opType, err)
	}
	return op.Output(0)
}

func hasOperations(g *Graph, ops ...string) error {
	var missing []string
	for _, op := range ops {
		if g.Operation(op) == nil {
			missing = append(missing, op)
		}
	}
	if len(missing) != 0 {
		return fmt.Errorf("Graph does not have the operations %v", missing)
	}

	inList := map[string]bool{}
	for _, op := range g.Operations() {
		inList[op.Name()] = true
	}

	for _, op := range ops {
		if !inList[op] {
			missing = append(missing, op)
		}
	}

	if len(missing) != 0 {
		return fmt.Errorf("Operations %v are missing from graph.Operations()", missing)
	}

	return nil
}

func TestGraphConstruction(t *testing.T) {
	g := NewGraph()
	a := mustConst(t, g, "a", float32(3))
	b := mustConst(t, g, "b", float32(4))
	sum := mustBinary(t, g, "Add", "sum", a, b)

	if err := hasOperations(g, "a", "b", "sum"); err != nil {
		t.Error(err)
	}
	if got, want := g.NumOperations(), 3; got != want {
		t.Errorf("NumOperations(): got %d, want %d", got, want)
	}
	if got, want := sum.DataType(), Float; got != want {
		t.Errorf("sum.DataType(): got %v, want %v", got, want)
	}
	if got, want := sum.Shape().String(), "[]"; got != want {
		t.Errorf("sum.Shape(): got %v, want %v", got, want)
	}
	if op := g.Operation("nonexistent"); op != nil {
		t.Errorf("Operation(%q): got %v, want nil", "nonexistent", op)
	}
}

func TestGraphAutoNames(t *testing.T) {
	g := NewGraph()
	tensor, _ := NewTensor(int32(1))
	op1, err := g.AddOperation(OpSpec{Type: "Const", Attrs: map[string]any{"value": tensor}})
	if err != nil {
		t.Fatal(err)
	}
	op2, err := g.AddOperation(OpSpec{Type: "Const", Attrs: map[string]any{"value": tensor}})
	if err != nil {
		t.Fatal(err)
	}
	// Auto-generated names come from the position in the graph, never
	// from the variable the result happens to be assigned to.
	if got, want := op1.Name(), "Const_0"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := op2.Name(), "Const_1"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestGraphConstructionErrors(t *testing.T) {
	g := NewGraph()
	f := mustConst(t, g, "f", float32(1))
	i := mustConst(t, g, "i", int32(1))
	v2 := mustConst(t, g, "v2", []float32{1, 2})
	v3 := mustConst(t, g, "v3", []float32{1, 2, 3})
	bools := mustConst(t, g, "bools", []bool{true, false})
	before := g.NumOperations()

	tests := []struct {
		name string
		spec OpSpec
		want any
	}{
		{
			name: "unknown op type",
			spec: OpSpec{Type: "Frobnicate"},
			want: new(*ErrOperationNotFound),
		},
		{
			name: "wrong input count",
			spec: OpSpec{Type: "Add", Input: []Input{f}},
			want: new(*ErrInvalidInputCount),
		},
		{
			name: "mismatched dtypes",
			spec: OpSpec{Type: "Add", Input: []Input{f, i}},
			want: new(*ErrDataTypeMismatch),
		},
		{
			name: "non-numeric dtype",
			spec: OpSpec{Type: "Mul", Input: []Input{bools, bools}},
			want: new(*ErrUnsupportedDataType),
		},
		{
			name: "incompatible shapes",
			spec: OpSpec{Type: "Add", Input: []Input{v2, v3}},
			want: new(*ErrIncompatibleShapes),
		},
		{
			name: "duplicate name",
			spec: OpSpec{Type: "Add", Name: "f", Input: []Input{f, f}},
			want: new(*ErrDuplicateName),
		},
		{
			name: "const without value",
			spec: OpSpec{Type: "Const"},
			want: new(*ErrMissingAttr),
		},
		{
			name: "placeholder without dtype",
			spec: OpSpec{Type: "Placeholder"},
			want: new(*ErrMissingAttr),
		},
		{
			name: "random with partial shape",
			spec: OpSpec{Type: "RandomUniform", Attrs: map[string]any{"shape": MakeShape(-1, 2)}},
			want: new(*ErrInvalidAttr),
		},
		{
			name: "random with bool dtype",
			spec: OpSpec{Type: "RandomNormal", Attrs: map[string]any{"shape": MakeShape(2), "dtype": Bool}},
			want: new(*ErrUnsupportedDataType),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			op, err := g.AddOperation(test.spec)
			if err == nil {
				t.Fatalf("AddOperation(%v) unexpectedly succeeded as %q", test.spec.Type, op.Name())
			}
			if !errors.As(err, test.want) {
				t.Errorf("got error %v (%T), want %T", err, err, test.want)
			}
		})
	}

	// Failed additions must leave the graph in its last valid state.
	if got := g.NumOperations(); got != before {
		t.Errorf("graph grew from %d to %d operations despite errors", before, got)
	}
}

func TestGraphCrossGraphInput(t *testing.T) {
	g1 := NewGraph()
	g2 := NewGraph()
	x := mustConst(t, g1, "x", float32(1))
	y := mustConst(t, g2, "y", float32(2))

	_, err := g2.AddOperation(OpSpec{Type: "Add", Input: []Input{x, y}})
	var want *ErrCrossGraphInput
	if !errors.As(err, &want) {
		t.Fatalf("got %v, want ErrCrossGraphInput", err)
	}
}

func TestGraphBroadcastInference(t *testing.T) {
	g := NewGraph()
	col := mustConst(t, g, "col", [][]float32{{1}, {2}})
	row := mustConst(t, g, "row", []float32{10, 20, 30})
	out := mustBinary(t, g, "Mul", "outer", col, row)

	if got, want := out.Shape().String(), "[2, 3]"; got != want {
		t.Errorf("broadcast shape: got %v, want %v", got, want)
	}

	p := mustPlaceholder(t, g, "p", Float, Shape{})
	sum := mustBinary(t, g, "Add", "sum", p, row)
	if got := sum.Shape().NumDimensions(); got != -1 {
		t.Errorf("shape with unknown-rank operand: got %d dims, want unknown", got)
	}
}

func TestOutputListInput(t *testing.T) {
	g := NewGraph()
	x := mustConst(t, g, "x", float32(1))
	y := mustConst(t, g, "y", float32(2))
	op, err := g.AddOperation(OpSpec{
		Type:  "Add",
		Name:  "sum",
		Input: []Input{OutputList{x, y}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := op.NumInputs(), 2; got != want {
		t.Errorf("NumInputs(): got %d, want %d", got, want)
	}
}

func TestOperationIntrospection(t *testing.T) {
	g := NewGraph()
	op, err := g.AddOperation(OpSpec{
		Type:  "RandomUniform",
		Name:  "noise",
		Attrs: map[string]any{"shape": MakeShape(3), "dtype": Double},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !op.Stateful() {
		t.Error("RandomUniform should be stateful")
	}
	if got, want := op.Type(), "RandomUniform"; got != want {
		t.Errorf("Type(): got %q, want %q", got, want)
	}
	if got, want := op.NumOutputs(), 1; got != want {
		t.Errorf("NumOutputs(): got %d, want %d", got, want)
	}
	if got, want := op.Output(0).DataType(), Double; got != want {
		t.Errorf("DataType(): got %v, want %v", got, want)
	}

	c := mustConst(t, g, "c", float32(1))
	if c.Op.Stateful() {
		t.Error("Const should not be stateful")
	}
}
