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

// opDef describes one registered operation type: its arity, whether it is
// stateful (re-sampled on every Session.Run call), the construction-time
// validation and static type/shape inference, and the kernel that a run
// invokes to produce its output value.
type opDef struct {
	numInputs int
	stateful  bool

	// infer validates op's attributes and inputs and fills in
	// op.outputTypes and op.outputShapes. It runs once, while the graph is
	// being built; the constraints it establishes are not re-checked at
	// evaluation time.
	infer func(op *Operation) error

	// kernel computes the single output value of op. Input values are
	// resolved through the runState, which the session populates in arena
	// order, so inputs are always available by the time a kernel runs.
	kernel func(rs *runState, op *Operation) (*Tensor, error)
}

// opDefs is the registry of operation types available to Graph.AddOperation.
var opDefs = map[string]*opDef{
	"Const": {
		numInputs: 0,
		infer:     inferConst,
		kernel:    constKernel,
	},
	"Placeholder": {
		numInputs: 0,
		infer:     inferPlaceholder,
		kernel:    placeholderKernel,
	},
	"Add": binaryDef(),
	"Sub": binaryDef(),
	"Mul": binaryDef(),
	"Div": binaryDef(),
	"RandomUniform": {
		numInputs: 0,
		stateful:  true,
		infer:     inferRandom,
		kernel:    randomUniformKernel,
	},
	"RandomNormal": {
		numInputs: 0,
		stateful:  true,
		infer:     inferRandom,
		kernel:    randomNormalKernel,
	},
}

func binaryDef() *opDef {
	return &opDef{
		numInputs: 2,
		infer:     inferBinary,
		kernel: func(rs *runState, op *Operation) (*Tensor, error) {
			return elementwise(op.opType, rs.input(op, 0), rs.input(op, 1))
		},
	}
}

func inferConst(op *Operation) error {
	v, ok := op.attrs["value"]
	if !ok {
		return &ErrMissingAttr{OpType: op.opType, Attr: "value"}
	}
	t, ok := v.(*Tensor)
	if !ok {
		return &ErrInvalidAttr{OpType: op.opType, Attr: "value", Reason: "must be a *Tensor"}
	}
	if dt, ok := op.attrs["dtype"]; ok {
		want, ok := dt.(DataType)
		if !ok {
			return &ErrInvalidAttr{OpType: op.opType, Attr: "dtype", Reason: "must be a DataType"}
		}
		if want != t.DataType() {
			return &ErrInvalidAttr{OpType: op.opType, Attr: "dtype", Reason: "does not match the value tensor"}
		}
	}
	op.outputTypes = []DataType{t.DataType()}
	op.outputShapes = []Shape{MakeShape(t.Shape()...)}
	return nil
}

func inferPlaceholder(op *Operation) error {
	v, ok := op.attrs["dtype"]
	if !ok {
		return &ErrMissingAttr{OpType: op.opType, Attr: "dtype"}
	}
	dt, ok := v.(DataType)
	if !ok {
		return &ErrInvalidAttr{OpType: op.opType, Attr: "dtype", Reason: "must be a DataType"}
	}
	shape := Shape{} // unknown rank unless declared
	if v, ok := op.attrs["shape"]; ok {
		if shape, ok = v.(Shape); !ok {
			return &ErrInvalidAttr{OpType: op.opType, Attr: "shape", Reason: "must be a Shape"}
		}
	}
	op.outputTypes = []DataType{dt}
	op.outputShapes = []Shape{shape}
	return nil
}

func inferBinary(op *Operation) error {
	x, y := op.inputs[0], op.inputs[1]
	if x.DataType() != y.DataType() {
		return &ErrDataTypeMismatch{OpType: op.opType, Left: x.DataType(), Right: y.DataType()}
	}
	if !x.DataType().isNumeric() {
		return &ErrUnsupportedDataType{OpType: op.opType, DataType: x.DataType()}
	}
	shape, ok := broadcastShapes(x.Shape(), y.Shape())
	if !ok {
		return &ErrIncompatibleShapes{OpType: op.opType, Left: x.Shape(), Right: y.Shape()}
	}
	op.outputTypes = []DataType{x.DataType()}
	op.outputShapes = []Shape{shape}
	return nil
}

func inferRandom(op *Operation) error {
	v, ok := op.attrs["shape"]
	if !ok {
		return &ErrMissingAttr{OpType: op.opType, Attr: "shape"}
	}
	shape, ok := v.(Shape)
	if !ok {
		return &ErrInvalidAttr{OpType: op.opType, Attr: "shape", Reason: "must be a Shape"}
	}
	if !shape.IsFullySpecified() {
		return &ErrInvalidAttr{OpType: op.opType, Attr: "shape", Reason: "must be fully specified"}
	}
	dt := Float
	if v, ok := op.attrs["dtype"]; ok {
		if dt, ok = v.(DataType); !ok {
			return &ErrInvalidAttr{OpType: op.opType, Attr: "dtype", Reason: "must be a DataType"}
		}
	}
	if dt != Float && dt != Double {
		return &ErrUnsupportedDataType{OpType: op.opType, DataType: dt}
	}
	if v, ok := op.attrs["seed"]; ok {
		if _, ok := v.(int64); !ok {
			return &ErrInvalidAttr{OpType: op.opType, Attr: "seed", Reason: "must be an int64"}
		}
	}
	op.outputTypes = []DataType{dt}
	op.outputShapes = []Shape{shape}
	return nil
}
