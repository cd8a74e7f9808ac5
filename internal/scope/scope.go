// Package scope implements the name resolution model: an ordered stack of
// flat name->value scopes, looked up top-to-bottom, inserted into only at
// the top, and truncated back to a saved depth on block/loop/function
// exit (including early exit via break/continue/return).
package scope

import "las/internal/lasvalue"

// Scope is one flat binding frame.
type Scope map[string]*lasvalue.Value

// Stack is the ordered sequence of scopes; index 0 is the global scope.
type Stack struct {
	frames []Scope
}

// New returns a stack with a single global scope, pre-populated by the
// caller with built-ins.
func New() *Stack {
	return &Stack{frames: []Scope{make(Scope)}}
}

// Depth returns the current stack height, to be restored later via
// Truncate.
func (s *Stack) Depth() int { return len(s.frames) }

// Push opens a new, empty scope on top of the stack.
func (s *Stack) Push() { s.frames = append(s.frames, make(Scope)) }

// Truncate restores the stack to the given depth, discarding every scope
// above it. Safe to call unconditionally on every exit path (normal
// completion or an unwinding control-flow signal).
func (s *Stack) Truncate(depth int) {
	s.frames = s.frames[:depth]
}

// Lookup walks the stack from top to bottom and returns the first binding
// found.
func (s *Stack) Lookup(name string) (*lasvalue.Value, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i][name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Define inserts name into the top scope. The wildcard name "_" is
// silently discarded rather than bound, per the language's "never binds
// _" rule.
func (s *Stack) Define(name string, v *lasvalue.Value) (redefined bool) {
	if name == "_" {
		return false
	}
	top := s.frames[len(s.frames)-1]
	if _, exists := top[name]; exists {
		return true
	}
	top[name] = v
	return false
}

// DefineGlobal inserts directly into the bottom (global) scope,
// regardless of current depth. Used once at startup to install
// built-ins.
func (s *Stack) DefineGlobal(name string, v *lasvalue.Value) {
	s.frames[0][name] = v
}
