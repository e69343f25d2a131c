package lisp

// specialForm handles a reserved keyword form.  It receives the operand list
// unevaluated and may return a deferred tail step for its tail-position
// subexpression.
type specialForm func(env *LEnv, args *LVal) (*LVal, *tailExpr, error)

// defaultSpecialForms builds the keyword dispatch table.  The table is
// constructed once per runtime and never mutated afterwards.
func defaultSpecialForms() map[string]specialForm {
	return map[string]specialForm{
		"define":       formDefine,
		"quote":        formQuote,
		"begin":        formBegin,
		"lambda":       formLambda,
		"mu":           formMu,
		"if":           formIf,
		"and":          formAnd,
		"or":           formOr,
		"cond":         formCond,
		"let":          formLet,
		"define-macro": formDefineMacro,
		"quasiquote":   formQuasiquote,
		"unquote":      formUnquote,
		"delay":        formDelay,
		"cons-stream":  formConsStream,
	}
}

// checkForm verifies that args is a proper list of at least min and at most
// max elements.  A negative max means no maximum.
func checkForm(name string, args *LVal, min, max int) (int, error) {
	n, ok := args.Len()
	if !ok {
		return 0, Errorf(ErrMalformed, "%s: badly formed expression: %s", name, args)
	}
	if n < min {
		return n, Errorf(ErrSyntax, "%s: too few operands in form", name)
	}
	if max >= 0 && n > max {
		return n, Errorf(ErrSyntax, "%s: too many operands in form", name)
	}
	return n, nil
}

// checkFormals verifies that formals is a proper list of pairwise-distinct,
// unreserved symbols.  There is no rest-parameter syntax; a dotted tail is
// invalid.
func checkFormals(env *LEnv, formals *LVal) error {
	seen := make(map[string]bool)
	for v := formals; !v.IsNil(); v = v.Tail {
		if v.Type != LPair {
			return Errorf(ErrBadFormals, "formal parameters are not a list: %s", formals)
		}
		sym := v.Head
		if sym.Type != LSymbol {
			return Errorf(ErrBadFormals, "non-symbol: %s", sym)
		}
		if env.Runtime.Reserved(sym.Str) {
			return Errorf(ErrBadFormals, "reserved word: %s", sym.Str)
		}
		if seen[sym.Str] {
			return Errorf(ErrBadFormals, "duplicate symbol: %s", sym.Str)
		}
		seen[sym.Str] = true
	}
	return nil
}

func checkBindTarget(env *LEnv, sym *LVal) error {
	if sym.Type != LSymbol {
		return Errorf(ErrSyntax, "non-symbol: %s", sym)
	}
	if env.Runtime.Reserved(sym.Str) {
		return Errorf(ErrSyntax, "reserved word: %s", sym.Str)
	}
	return nil
}

// (define name expr)
// (define (name formals...) body...)
func formDefine(env *LEnv, args *LVal) (*LVal, *tailExpr, error) {
	n, err := checkForm("define", args, 2, -1)
	if err != nil {
		return nil, nil, err
	}
	target := args.Head
	if target.Type == LSymbol {
		if n != 2 {
			return nil, nil, Errorf(ErrSyntax, "define: too many operands in form")
		}
		if err := checkBindTarget(env, target); err != nil {
			return nil, nil, err
		}
		val, err := env.Eval(args.Tail.Head)
		if err != nil {
			return nil, nil, err
		}
		env.Put(target, val)
		return target, nil, nil
	}
	if target.Type == LPair && target.Head.Type == LSymbol {
		name := target.Head
		if err := checkBindTarget(env, name); err != nil {
			return nil, nil, err
		}
		fun, _, err := formLambda(env, Cons(target.Tail, args.Tail))
		if err != nil {
			return nil, nil, err
		}
		env.Put(name, fun)
		return name, nil, nil
	}
	bad := target
	if target.Type == LPair {
		bad = target.Head
	}
	return nil, nil, Errorf(ErrSyntax, "non-symbol: %s", bad)
}

// (quote expr)
func formQuote(env *LEnv, args *LVal) (*LVal, *tailExpr, error) {
	if _, err := checkForm("quote", args, 1, 1); err != nil {
		return nil, nil, err
	}
	return args.Head, nil, nil
}

// (begin expr...)
func formBegin(env *LEnv, args *LVal) (*LVal, *tailExpr, error) {
	if _, err := checkForm("begin", args, 1, -1); err != nil {
		return nil, nil, err
	}
	return env.evalSeq(args)
}

// (lambda (formals...) body...)
func formLambda(env *LEnv, args *LVal) (*LVal, *tailExpr, error) {
	if _, err := checkForm("lambda", args, 2, -1); err != nil {
		return nil, nil, err
	}
	if err := checkFormals(env, args.Head); err != nil {
		return nil, nil, err
	}
	return Lambda(args.Head, args.Tail, env), nil, nil
}

// (mu (formals...) body...)
func formMu(env *LEnv, args *LVal) (*LVal, *tailExpr, error) {
	if _, err := checkForm("mu", args, 2, -1); err != nil {
		return nil, nil, err
	}
	if err := checkFormals(env, args.Head); err != nil {
		return nil, nil, err
	}
	return Mu(args.Head, args.Tail), nil, nil
}

// (if test then else?)
func formIf(env *LEnv, args *LVal) (*LVal, *tailExpr, error) {
	n, err := checkForm("if", args, 2, 3)
	if err != nil {
		return nil, nil, err
	}
	test, err := env.Eval(args.Head)
	if err != nil {
		return nil, nil, err
	}
	if test.IsTrue() {
		return env.evalTail(args.Tail.Head)
	}
	if n == 3 {
		return env.evalTail(args.Tail.Tail.Head)
	}
	return Undefined(), nil, nil
}

// (and expr...)
func formAnd(env *LEnv, args *LVal) (*LVal, *tailExpr, error) {
	if _, err := checkForm("and", args, 0, -1); err != nil {
		return nil, nil, err
	}
	if args.IsNil() {
		return Bool(true), nil, nil
	}
	for ; !args.Tail.IsNil(); args = args.Tail {
		v, err := env.Eval(args.Head)
		if err != nil {
			return nil, nil, err
		}
		if !v.IsTrue() {
			return v, nil, nil
		}
	}
	return env.evalTail(args.Head)
}

// (or expr...)
func formOr(env *LEnv, args *LVal) (*LVal, *tailExpr, error) {
	if _, err := checkForm("or", args, 0, -1); err != nil {
		return nil, nil, err
	}
	if args.IsNil() {
		return Bool(false), nil, nil
	}
	for ; !args.Tail.IsNil(); args = args.Tail {
		v, err := env.Eval(args.Head)
		if err != nil {
			return nil, nil, err
		}
		if v.IsTrue() {
			return v, nil, nil
		}
	}
	return env.evalTail(args.Head)
}

// (cond (test body...)...)
func formCond(env *LEnv, args *LVal) (*LVal, *tailExpr, error) {
	if _, err := checkForm("cond", args, 0, -1); err != nil {
		return nil, nil, err
	}
	for clauses := args; !clauses.IsNil(); clauses = clauses.Tail {
		clause := clauses.Head
		if _, err := checkForm("cond", clause, 1, -1); err != nil {
			return nil, nil, err
		}
		var test *LVal
		if clause.Head.Type == LSymbol && clause.Head.Str == "else" {
			if !clauses.Tail.IsNil() {
				return nil, nil, Errorf(ErrSyntax, "else must be last")
			}
			test = Bool(true)
		} else {
			var err error
			test, err = env.Eval(clause.Head)
			if err != nil {
				return nil, nil, err
			}
		}
		if !test.IsTrue() {
			continue
		}
		if clause.Tail.IsNil() {
			// A clause with no body yields the test's own value.
			return test, nil, nil
		}
		return env.evalSeq(clause.Tail)
	}
	return Undefined(), nil, nil
}

// (let ((name expr)...) body...)
func formLet(env *LEnv, args *LVal) (*LVal, *tailExpr, error) {
	if _, err := checkForm("let", args, 2, -1); err != nil {
		return nil, nil, err
	}
	bindings := args.Head
	if !bindings.IsList() {
		return nil, nil, Errorf(ErrSyntax, "bad bindings list in let form")
	}
	formals := Nil()
	vals := Nil()
	for b := bindings; !b.IsNil(); b = b.Tail {
		if _, err := checkForm("let", b.Head, 2, 2); err != nil {
			return nil, nil, err
		}
		// Binding expressions are evaluated in the enclosing environment,
		// not the new frame.
		val, err := env.Eval(b.Head.Tail.Head)
		if err != nil {
			return nil, nil, err
		}
		formals = Cons(b.Head.Head, formals)
		vals = Cons(val, vals)
	}
	if err := checkFormals(env, formals); err != nil {
		return nil, nil, err
	}
	letenv, err := env.MakeChildFrame(formals, vals)
	if err != nil {
		return nil, nil, err
	}
	return letenv.evalSeq(args.Tail)
}

// (define-macro (name formals...) body...)
func formDefineMacro(env *LEnv, args *LVal) (*LVal, *tailExpr, error) {
	if _, err := checkForm("define-macro", args, 2, -1); err != nil {
		return nil, nil, err
	}
	target := args.Head
	if target.Type != LPair || target.Head.Type != LSymbol {
		return nil, nil, Errorf(ErrSyntax, "define-macro: non-symbol: %s", target)
	}
	name := target.Head
	if err := checkBindTarget(env, name); err != nil {
		return nil, nil, err
	}
	if err := checkFormals(env, target.Tail); err != nil {
		return nil, nil, err
	}
	env.Put(name, Macro(target.Tail, args.Tail, env))
	return name, nil, nil
}

// (quasiquote expr)
func formQuasiquote(env *LEnv, args *LVal) (*LVal, *tailExpr, error) {
	if _, err := checkForm("quasiquote", args, 1, 1); err != nil {
		return nil, nil, err
	}
	v, err := quasiquoteItem(env, args.Head, 1)
	return v, nil, err
}

// quasiquoteItem expands a template nested at the given quasiquote depth.
// Each nested quasiquote increments the depth and each unquote decrements
// it; an unquote is evaluated only when it brings the depth to zero.
func quasiquoteItem(env *LEnv, v *LVal, depth int) (*LVal, error) {
	if v.Type != LPair {
		return v, nil
	}
	if v.Head.Type == LSymbol {
		switch v.Head.Str {
		case "unquote":
			if depth == 1 {
				if _, err := checkForm("unquote", v.Tail, 1, 1); err != nil {
					return nil, err
				}
				return env.Eval(v.Tail.Head)
			}
			depth--
		case "quasiquote":
			depth++
		}
	}
	head, err := quasiquoteItem(env, v.Head, depth)
	if err != nil {
		return nil, err
	}
	tail, err := quasiquoteItem(env, v.Tail, depth)
	if err != nil {
		return nil, err
	}
	return Cons(head, tail), nil
}

func formUnquote(env *LEnv, args *LVal) (*LVal, *tailExpr, error) {
	return nil, nil, Errorf(ErrSyntax, "unquote outside of quasiquote")
}

// (delay expr)
func formDelay(env *LEnv, args *LVal) (*LVal, *tailExpr, error) {
	if _, err := checkForm("delay", args, 1, 1); err != nil {
		return nil, nil, err
	}
	return NewPromise(args.Head, env), nil, nil
}

// (cons-stream head tail)
func formConsStream(env *LEnv, args *LVal) (*LVal, *tailExpr, error) {
	if _, err := checkForm("cons-stream", args, 2, 2); err != nil {
		return nil, nil, err
	}
	head, err := env.Eval(args.Head)
	if err != nil {
		return nil, nil, err
	}
	return Cons(head, NewPromise(args.Tail.Head, env)), nil, nil
}
