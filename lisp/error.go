package lisp

import "fmt"

// Condition classifies evaluation failures.  The set is closed; every error
// produced by the evaluator carries exactly one Condition.
type Condition uint

// Possible Condition values
const (
	// ErrEval is the generic evaluation failure, including any panic that
	// escapes a builtin.
	ErrEval Condition = iota
	// ErrMalformed reports a non-list where a proper list was required.
	ErrMalformed
	// ErrUnbound reports a symbol lookup that exhausted the frame chain.
	ErrUnbound
	// ErrBadFormals reports a formal parameter list that is not a proper
	// list of distinct, unreserved symbols.
	ErrBadFormals
	// ErrArity reports a call frame binding count mismatch.
	ErrArity
	// ErrNotCallable reports application of a non-procedure.
	ErrNotCallable
	// ErrSyntax reports misuse of a special form, such as a misplaced else
	// clause or an unquote outside quasiquote.
	ErrSyntax
	// ErrRecursion reports that non-tail recursion exceeded the maximum
	// stack height.  ErrRecursion passes through every boundary that wraps
	// other failures as ErrEval.
	ErrRecursion
)

var conditionStrings = []string{
	ErrEval:        "evaluation error",
	ErrMalformed:   "malformed expression",
	ErrUnbound:     "unbound identifier",
	ErrBadFormals:  "invalid formals",
	ErrArity:       "argument count mismatch",
	ErrNotCallable: "not callable",
	ErrSyntax:      "invalid syntax",
	ErrRecursion:   "recursion too deep",
}

func (c Condition) String() string {
	if int(c) >= len(conditionStrings) {
		return conditionStrings[ErrEval]
	}
	return conditionStrings[c]
}

// Error is an evaluation failure.  It aborts the current evaluation
// immediately; the driving loop (REPL or file loader) is the recovery
// boundary.
type Error struct {
	Cond Condition
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Cond.String()
	}
	return e.Msg
}

// Errorf returns an Error with the given condition and a formatted message.
func Errorf(cond Condition, format string, v ...interface{}) *Error {
	return &Error{Cond: cond, Msg: fmt.Sprintf(format, v...)}
}

// ConditionOf returns the Condition carried by err, or ErrEval if err is not
// an evaluator error.
func ConditionOf(err error) Condition {
	if lerr, ok := err.(*Error); ok {
		return lerr.Cond
	}
	return ErrEval
}

// IsRecursionError returns true if err reports exhausted recursion depth.
// Drivers use this to surface stack exhaustion distinctly from generic
// evaluation failures.
func IsRecursionError(err error) bool {
	lerr, ok := err.(*Error)
	return ok && lerr.Cond == ErrRecursion
}
