package lisp

// Promise is a memoizing deferred-evaluation cell, the basis for lazy
// streams.  A promise is either unforced, holding an expression and the
// environment to evaluate it in, or forced, holding the cached value.  The
// transition happens exactly once; side effects inside the expression are
// observed at most once.
type Promise struct {
	expr  *LVal
	env   *LEnv
	value *LVal
}

// Forced returns true if the promise has been forced.
func (p *Promise) Forced() bool {
	return p.expr == nil
}

// Force evaluates the captured expression in the captured environment and
// caches the result, which must be a pair or the empty list.  Forcing an
// already forced promise returns the cached value without re-evaluation.
// The expression and environment references are dropped after forcing so
// captured frames become collectable.
func (p *Promise) Force() (*LVal, error) {
	if p.expr == nil {
		return p.value, nil
	}
	v, err := p.env.Eval(p.expr)
	if err != nil {
		return nil, err
	}
	if v.Type != LPair && v.Type != LNil {
		return nil, Errorf(ErrEval, "result of forcing a promise should be a pair or nil, but was %s", v)
	}
	p.value = v
	p.expr = nil
	p.env = nil
	return v, nil
}
