package lisp

import (
	"fmt"
	"io"
)

// DefaultMaximumStackHeight bounds non-tail recursion depth.  Tail calls do
// not grow the stack and are unaffected by the limit.
const DefaultMaximumStackHeight = 10000

// CallStack records in-flight procedure applications.  Its height tracks
// genuine recursion: a driving loop truncates back to its entry height after
// each deferred step, so an unbounded tail loop holds the stack at constant
// height while nested calls grow it one frame per level.
type CallStack struct {
	Frames    []CallFrame
	MaxHeight int
}

// CallFrame is one frame in the CallStack
type CallFrame struct {
	Name string
}

// Push adds a frame for a procedure invocation.  Push fails with
// ErrRecursion when the stack has reached its maximum height.
func (s *CallStack) Push(name string) error {
	if s.MaxHeight > 0 && len(s.Frames) >= s.MaxHeight {
		return Errorf(ErrRecursion, "maximum recursion depth exceeded")
	}
	s.Frames = append(s.Frames, CallFrame{Name: name})
	return nil
}

// Pop removes the top frame from the stack.
func (s *CallStack) Pop() {
	if len(s.Frames) == 0 {
		panic("pop called on an empty stack")
	}
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
}

// Height returns the number of frames on the stack.
func (s *CallStack) Height() int {
	return len(s.Frames)
}

// Truncate pops frames until the stack height is at most h.
func (s *CallStack) Truncate(h int) {
	for len(s.Frames) > h {
		s.Pop()
	}
}

// Reset discards all frames.  Recovery boundaries call Reset after reporting
// an evaluation error so the environment remains usable.
func (s *CallStack) Reset() {
	s.Truncate(0)
}

// Top returns the frame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// Copy creates a copy of the current stack so that it can be reported after
// the frames unwind.
func (s *CallStack) Copy() *CallStack {
	frames := make([]CallFrame, len(s.Frames))
	copy(frames, s.Frames)
	return &CallStack{Frames: frames, MaxHeight: s.MaxHeight}
}

// DebugPrint prints s
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", len(s.Frames))
	if err != nil {
		return n, err
	}
	for i := len(s.Frames) - 1; i >= 0; i-- {
		_n, err := fmt.Fprintf(w, "  height %d: %s\n", i, s.Frames[i].Name)
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
