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
	"sync"
	"sync/atomic"

	"golang.org/x/exp/rand"
)

// Session drives a Graph computation.
//
// A Session owns no graph state: it is handed a finished Graph and keeps
// only transient, call-local state for the duration of each Run call, so a
// single Session may serve concurrent Run calls.
//
// When a Session is no longer needed, Close() must be called to release
// it.
type Session struct {
	graph *Graph

	// baseSeed and calls derive one independent random stream per Run
	// call: stateful operations draw fresh samples on every call but a
	// single consistent sample within one call.
	baseSeed uint64
	calls    atomic.Uint64

	mu     sync.Mutex
	closed bool

	// onExec, when set, observes every operation the session executes.
	// Used by tests to assert that unreachable operations never run.
	onExec func(*Operation)
}

// SessionOptions contains configuration information for a session.
type SessionOptions struct {
	// Seed pins the session's random stream so that stateful operations
	// draw reproducibly: two sessions created with the same non-zero Seed
	// over the same graph produce identical sequences of Run results. A
	// zero Seed picks an unpredictable stream.
	Seed int64
}

// NewSession creates a new execution session with the associated graph.
// The graph must be fully constructed before a session evaluates it; the
// session never modifies the graph.
func NewSession(graph *Graph, options *SessionOptions) (*Session, error) {
	if graph == nil {
		return nil, errors.New("tensorflow: cannot create a Session without a Graph")
	}
	s := &Session{graph: graph}
	if options != nil && options.Seed != 0 {
		s.baseSeed = uint64(options.Seed)
	} else {
		s.baseSeed = rand.Uint64()
	}
	return s, nil
}

// Run executes the graph computation, feeding values to the operation
// outputs in feeds, computing the outputs in fetches and running (but not
// fetching) the operations in targets.
//
// Only the transitive dependencies of the request execute; a fed output
// pre-empts its operation's own computation for this call, and the override
// does not persist to later calls. On success the returned tensors
// correspond 1:1 to fetches. On any failure no results are returned, even
// for fetches whose value had already been computed.
func (s *Session) Run(feeds map[Output]*Tensor, fetches []Output, targets []*Operation) ([]*Tensor, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, errors.New("tensorflow: the Session has been closed")
	}
	s.mu.Unlock()

	rs, err := s.newRunState(feeds)
	if err != nil {
		return nil, err
	}

	needed, err := s.reachable(rs, fetches, targets)
	if err != nil {
		return nil, err
	}

	// Fail before any execution if the request depends on unfed
	// placeholders, reporting all of them at once.
	var missing []string
	for _, op := range s.graph.ops {
		if needed[op] && op.opType == "Placeholder" {
			if _, fed := rs.values[op.Output(0)]; !fed {
				missing = append(missing, op.name)
			}
		}
	}
	if len(missing) > 0 {
		return nil, &ErrMissingFeed{Placeholders: missing}
	}

	// Arena order is a topological order; restricting it to the needed set
	// evaluates every operation after all of its inputs.
	for _, op := range s.graph.ops {
		if !needed[op] {
			continue
		}
		if s.onExec != nil {
			s.onExec(op)
		}
		out, err := op.def.kernel(rs, op)
		if err != nil {
			return nil, &opError{name: op.name, opType: op.opType, err: err}
		}
		handle := op.Output(0)
		if _, fed := rs.values[handle]; !fed {
			rs.values[handle] = out
		}
	}

	results := make([]*Tensor, len(fetches))
	for i, f := range fetches {
		results[i] = rs.values[f]
	}
	return results, nil
}

// Close releases the resources associated with the Session. Subsequent Run
// calls fail.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// reachable computes the set of operations the request transitively depends
// on: backward reachability from fetches and targets, stopping at fed
// outputs since those never recompute.
func (s *Session) reachable(rs *runState, fetches []Output, targets []*Operation) (map[*Operation]bool, error) {
	needed := make(map[*Operation]bool)
	var visit func(Output)
	visit = func(o Output) {
		if _, fed := rs.values[o]; fed {
			return
		}
		if needed[o.Op] {
			return
		}
		needed[o.Op] = true
		for _, in := range o.Op.inputs {
			visit(in)
		}
	}
	for _, f := range fetches {
		if f.Op == nil || f.Op.g != s.graph {
			return nil, fmt.Errorf("tensorflow: fetched output %v is not from the session's graph", f)
		}
		visit(f)
	}
	for _, t := range targets {
		if t == nil || t.g != s.graph {
			return nil, errors.New("tensorflow: target operation is not from the session's graph")
		}
		// A target runs for effect even when its output is fed.
		if !needed[t] {
			needed[t] = true
			for _, in := range t.inputs {
				visit(in)
			}
		}
	}
	return needed, nil
}

// runState holds the transient state of a single Run call: fed and computed
// values keyed by output handle, and the call's random stream. It is
// discarded when the call returns.
type runState struct {
	values map[Output]*Tensor
	rng    *rand.Rand
	nonce  uint64
}

func (s *Session) newRunState(feeds map[Output]*Tensor) (*runState, error) {
	nonce := s.calls.Add(1)
	rs := &runState{
		values: make(map[Output]*Tensor, len(feeds)),
		rng:    rand.New(rand.NewSource(mixSeed(s.baseSeed, nonce))),
		nonce:  nonce,
	}
	for o, t := range feeds {
		if o.Op == nil || o.Op.g != s.graph {
			return nil, &ErrInvalidFeed{Name: inputName(o), Reason: "output is not from the session's graph"}
		}
		if t == nil {
			return nil, &ErrInvalidFeed{Name: inputName(o), Reason: "fed tensor is nil"}
		}
		if t.DataType() != o.DataType() {
			return nil, &ErrInvalidFeed{
				Name:   inputName(o),
				Reason: fmt.Sprintf("fed a %v tensor for a %v output", t.DataType(), o.DataType()),
			}
		}
		if !shapeCompatible(o.Shape(), t.shape) {
			return nil, &ErrInvalidFeed{
				Name:   inputName(o),
				Reason: fmt.Sprintf("fed shape %v does not satisfy the declared shape %v", t.shape, o.Shape()),
			}
		}
		rs.values[o] = t
	}
	return rs, nil
}

// input resolves the value of the i-th input of op for this call.
func (rs *runState) input(op *Operation, i int) *Tensor {
	return rs.values[op.inputs[i]]
}

// sourceFor picks the random source a stateful op draws from: the call's
// stream, or a stream derived from the op's own seed attribute so a single
// op can be pinned without seeding the whole session. Either way the draw
// happens once per call; dependents all observe the same sample.
func (rs *runState) sourceFor(op *Operation) rand.Source {
	if v, ok := op.attrs["seed"]; ok {
		if seed := v.(int64); seed != 0 {
			return rand.NewSource(mixSeed(uint64(seed), rs.nonce))
		}
	}
	return rs.rng
}

// mixSeed combines a base seed with a per-call nonce (splitmix64 finalizer)
// so successive calls draw from independent streams.
func mixSeed(seed, nonce uint64) uint64 {
	z := seed + nonce*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
