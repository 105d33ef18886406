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

// Errors returned while a graph is being built. A failed AddOperation call
// admits nothing to the graph: the graph is left exactly as it was before
// the call.

// ErrOperationNotFound The specified operation type is not defined.
type ErrOperationNotFound struct {
	OpType string
}

func (e *ErrOperationNotFound) Error() string {
	return fmt.Sprintf("operation %q not defined", e.OpType)
}

// ErrInvalidInputCount The number of inputs doesn't correspond with the
// number expected by the operation.
type ErrInvalidInputCount struct {
	OpType string
	Want   int
	Got    int
}

func (e *ErrInvalidInputCount) Error() string {
	return fmt.Sprintf("inputs required for operation %q: %d, but %d provided", e.OpType, e.Want, e.Got)
}

// ErrMissingAttr A mandatory attribute for the operation was not specified.
type ErrMissingAttr struct {
	OpType string
	Attr   string
}

func (e *ErrMissingAttr) Error() string {
	return fmt.Sprintf("the attribute %q is mandatory for operation %q", e.Attr, e.OpType)
}

// ErrInvalidAttr The value provided for an attribute is not valid.
type ErrInvalidAttr struct {
	OpType string
	Attr   string
	Reason string
}

func (e *ErrInvalidAttr) Error() string {
	return fmt.Sprintf("invalid value for attribute %q of operation %q: %s", e.Attr, e.OpType, e.Reason)
}

// ErrDataTypeMismatch The operands of a binary operation have different
// data types.
type ErrDataTypeMismatch struct {
	OpType string
	Left   DataType
	Right  DataType
}

func (e *ErrDataTypeMismatch) Error() string {
	return fmt.Sprintf("operation %q requires operands of one data type, got %v and %v", e.OpType, e.Left, e.Right)
}

// ErrUnsupportedDataType The operation is not defined for the data type of
// its operands.
type ErrUnsupportedDataType struct {
	OpType   string
	DataType DataType
}

func (e *ErrUnsupportedDataType) Error() string {
	return fmt.Sprintf("operation %q is not defined for data type %v", e.OpType, e.DataType)
}

// ErrIncompatibleShapes The operand shapes of an elementwise operation
// cannot be broadcast against each other.
type ErrIncompatibleShapes struct {
	OpType string
	Left   Shape
	Right  Shape
}

func (e *ErrIncompatibleShapes) Error() string {
	return fmt.Sprintf("operation %q cannot broadcast shape %v against %v", e.OpType, e.Left, e.Right)
}

// ErrDuplicateName An operation with the same name already exists in the
// graph.
type ErrDuplicateName struct {
	Name string
}

func (e *ErrDuplicateName) Error() string {
	return fmt.Sprintf("an operation named %q already exists in the graph", e.Name)
}

// ErrCrossGraphInput An input references an operation that belongs to a
// different graph.
type ErrCrossGraphInput struct {
	OpType string
	Input  string
}

func (e *ErrCrossGraphInput) Error() string {
	return fmt.Sprintf("operation %q: input %q belongs to a different graph", e.OpType, e.Input)
}

// Errors returned by Session.Run. Run calls are atomic: when any of these is
// returned, no results are returned for any fetched output.

// ErrMissingFeed One or more placeholders reachable from the requested
// outputs were not fed. Detected before any operation executes.
type ErrMissingFeed struct {
	// Placeholders holds the names of every unfed placeholder the request
	// depends on, in graph construction order.
	Placeholders []string
}

func (e *ErrMissingFeed) Error() string {
	return fmt.Sprintf("no value fed for placeholder(s) %s", strings.Join(e.Placeholders, ", "))
}

// ErrInvalidFeed A fed value does not match the output it is fed for.
type ErrInvalidFeed struct {
	Name   string
	Reason string
}

func (e *ErrInvalidFeed) Error() string {
	return fmt.Sprintf("invalid feed for %q: %s", e.Name, e.Reason)
}

// opError wraps a failure raised while executing one operation, naming the
// operation so the caller can tell where the evaluation aborted.
type opError struct {
	name   string
	opType string
	err    error
}

func (e *opError) Error() string {
	return fmt.Sprintf("operation %q (%s) failed: %v", e.name, e.opType, e.err)
}

func (e *opError) Unwrap() error { return e.err }
