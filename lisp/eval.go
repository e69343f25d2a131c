package lisp

// tailExpr is a pending evaluation step: an expression to evaluate in an
// environment, in place of a completed call.  Returning a tailExpr instead
// of recursing keeps host stack depth constant in the number of lisp tail
// calls; only the driving loops in Eval and Apply resolve them.
type tailExpr struct {
	expr *LVal
	env  *LEnv
}

// Eval evaluates v in the scope of env and returns the resulting value,
// driving any deferred tail steps to completion.
func (env *LEnv) Eval(v *LVal) (*LVal, error) {
	s := env.Runtime.Stack
	h := s.Height()
	val, tail, err := env.evalStep(v)
	for err == nil && tail != nil {
		// A chain of deferred steps contributes at most one frame beyond
		// the entry height, so tail loops run at constant stack height.
		s.Truncate(h + 1)
		val, tail, err = tail.env.evalStep(tail.expr)
	}
	if err == nil {
		s.Truncate(h)
	}
	return val, err
}

// Apply applies procedure f to the argument list args and drives any
// resulting tail step to a final value.  Callers that need a concrete value
// rather than a deferred step use Apply: macro expansion and higher-order
// builtins like map, filter, and reduce.
func (env *LEnv) Apply(f, args *LVal) (*LVal, error) {
	s := env.Runtime.Stack
	h := s.Height()
	val, tail, err := env.apply(f, args)
	for err == nil && tail != nil {
		s.Truncate(h + 1)
		val, tail, err = tail.env.evalStep(tail.expr)
	}
	if err == nil {
		s.Truncate(h)
	}
	return val, err
}

// evalStep performs a single evaluation step.  It returns either a final
// value or a pending tail step, never both.
func (env *LEnv) evalStep(v *LVal) (*LVal, *tailExpr, error) {
	for {
		if v.Type == LSymbol {
			val, err := env.Get(v)
			return val, nil, err
		}
		if v.SelfEvaluating() {
			return v, nil, nil
		}
		if !v.IsList() {
			return nil, nil, Errorf(ErrMalformed, "malformed list: %s", v)
		}
		first, rest := v.Head, v.Tail

		// Special forms are reserved and dispatched before the operator
		// position is ever looked up as a procedure.
		if first.Type == LSymbol {
			if fn, ok := env.Runtime.Special(first.Str); ok {
				return fn(env, rest)
			}
		}

		f, err := env.Eval(first)
		if err != nil {
			return nil, nil, err
		}
		if f.Type != LFun {
			return nil, nil, Errorf(ErrNotCallable, "%s is not callable: %s", f.Type, f)
		}
		if f.IsMacro() {
			// Macros receive the unevaluated operand list and their result
			// re-enters evaluation in the same environment.
			v, err = env.Apply(f, rest)
			if err != nil {
				return nil, nil, err
			}
			continue
		}
		args, err := env.evalList(rest)
		if err != nil {
			return nil, nil, err
		}
		return env.apply(f, args)
	}
}

// evalTail evaluates v in tail position.  Symbols and self-evaluating atoms
// resolve immediately; anything else is deferred for the driving loop.
func (env *LEnv) evalTail(v *LVal) (*LVal, *tailExpr, error) {
	if v.Type == LSymbol || v.SelfEvaluating() {
		return env.evalStep(v)
	}
	return nil, &tailExpr{expr: v, env: env}, nil
}

// evalSeq evaluates a body sequence.  Every expression but the last is
// evaluated strictly for effect; the last is evaluated in tail position.
// An empty sequence yields the unspecified sentinel.
func (env *LEnv) evalSeq(body *LVal) (*LVal, *tailExpr, error) {
	if body.IsNil() {
		return Undefined(), nil, nil
	}
	for ; !body.Tail.IsNil(); body = body.Tail {
		if _, err := env.Eval(body.Head); err != nil {
			return nil, nil, err
		}
	}
	return env.evalTail(body.Head)
}

// evalList evaluates the elements of a proper list left to right and returns
// the list of results.
func (env *LEnv) evalList(v *LVal) (*LVal, error) {
	head := Nil()
	var last *LVal
	for ; v.Type == LPair; v = v.Tail {
		val, err := env.Eval(v.Head)
		if err != nil {
			return nil, err
		}
		cell := Cons(val, Nil())
		if last == nil {
			head = cell
		} else {
			last.Tail = cell
		}
		last = cell
	}
	return head, nil
}

func (env *LEnv) apply(f, args *LVal) (*LVal, *tailExpr, error) {
	if f.Type != LFun {
		return nil, nil, Errorf(ErrNotCallable, "%s is not callable: %s", f.Type, f)
	}
	if f.FunType == FunBuiltin {
		v, err := env.applyBuiltin(f, args)
		return v, nil, err
	}

	// A lambda or macro call frame chains to the definition environment; a
	// mu call frame chains to the caller's current environment.
	parent := f.Env
	if f.FunType == FunMu {
		parent = env
	}
	frame, err := parent.MakeChildFrame(f.Formals, args)
	if err != nil {
		return nil, nil, err
	}

	// The frame remains on the stack after apply returns; the driving loop
	// that owns this call truncates back to its entry height.  Errors leave
	// the frames in place so a recovery boundary can print the trace.
	if err := env.Runtime.Stack.Push(funName(f)); err != nil {
		return nil, nil, err
	}
	return frame.evalSeq(f.Body)
}

// applyBuiltin invokes a host function.  A panic escaping the builtin is
// reported as a generic evaluation error; returned errors pass through only
// when already typed, and recursion exhaustion is never rewrapped.
func (env *LEnv) applyBuiltin(f, args *LVal) (v *LVal, err error) {
	defer func() {
		if r := recover(); r != nil {
			v = nil
			err = Errorf(ErrEval, "%s: %v", f.FName, r)
		}
	}()
	v, err = f.Builtin(env, args)
	if err != nil && !IsRecursionError(err) {
		if _, ok := err.(*Error); !ok {
			err = Errorf(ErrEval, "%s: %v", f.FName, err)
		}
	}
	return v, err
}

func funName(f *LVal) string {
	switch f.FunType {
	case FunBuiltin:
		return f.FName
	case FunMu:
		return "mu"
	case FunMacro:
		return "macro"
	default:
		return "lambda"
	}
}
