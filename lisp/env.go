package lisp

import (
	"io"
	"os"
	"strings"
)

// Runtime holds state shared by every frame reachable from one global
// environment.  The special-form table and builtin registry are fixed when
// the runtime is constructed; nothing mutates them afterwards.
type Runtime struct {
	Reader Reader
	Stderr io.Writer
	Stack  *CallStack

	specials map[string]specialForm
}

// Special returns the handler for a reserved special-form name.
func (r *Runtime) Special(name string) (specialForm, bool) {
	fn, ok := r.specials[name]
	return fn, ok
}

// Reserved returns true if name is a special-form keyword.  Reserved names
// cannot be bound by define, define-macro, or a formal parameter list.
func (r *Runtime) Reserved(name string) bool {
	_, ok := r.specials[name]
	return ok
}

// LEnv is a lisp environment frame.  It binds symbols in its own scope and
// chains lookups through its parent.  The parent is fixed at construction
// and only the local scope mutates, so a frame is structurally append-only.
type LEnv struct {
	Scope   map[string]*LVal
	Parent  *LEnv
	Runtime *Runtime
}

// NewEnv initializes and returns a new LEnv with the given parent.  The
// runtime is inherited from the parent; a root frame created this way has no
// runtime and is only useful for tests that never evaluate.
func NewEnv(parent *LEnv) *LEnv {
	env := &LEnv{
		Scope:  make(map[string]*LVal),
		Parent: parent,
	}
	if parent != nil {
		env.Runtime = parent.Runtime
	}
	return env
}

// NewGlobalEnv returns a global frame with the special-form table built, all
// default builtins bound, and any supplied configuration applied.
func NewGlobalEnv(cfgs ...Config) (*LEnv, error) {
	env := NewEnv(nil)
	env.Runtime = &Runtime{
		Stderr:   os.Stderr,
		Stack:    &CallStack{MaxHeight: DefaultMaximumStackHeight},
		specials: defaultSpecialForms(),
	}
	env.AddBuiltins(DefaultBuiltins()...)
	env.Put(Symbol("undefined"), Undefined())
	for _, cfg := range cfgs {
		if err := cfg(env); err != nil {
			return nil, err
		}
	}
	return env, nil
}

// Get returns the value bound to symbol k, climbing the parent chain.  Get
// fails with an unbound-identifier error after exhausting the chain.
func (env *LEnv) Get(k *LVal) (*LVal, error) {
	for e := env; e != nil; e = e.Parent {
		if v, ok := e.Scope[k.Str]; ok {
			return v, nil
		}
	}
	return nil, Errorf(ErrUnbound, "unknown identifier: %s", k.Str)
}

// Put binds symbol k to v in env's own scope, overwriting any existing local
// binding.
func (env *LEnv) Put(k, v *LVal) {
	env.Scope[k.Str] = v
}

// MakeChildFrame returns a new frame whose parent is env, binding each
// formal to the correspondingly positioned value.  The two lists must have
// exactly equal length; there are no rest parameters.
func (env *LEnv) MakeChildFrame(formals, vals *LVal) (*LEnv, error) {
	child := NewEnv(env)
	for {
		switch {
		case formals.IsNil() && vals.IsNil():
			return child, nil
		case formals.IsNil() || vals.IsNil():
			return nil, Errorf(ErrArity, "too many or too few values for formals")
		}
		child.Put(formals.Head, vals.Head)
		formals = formals.Tail
		vals = vals.Tail
	}
}

func (env *LEnv) root() *LEnv {
	for env.Parent != nil {
		env = env.Parent
	}
	return env
}

// AddBuiltins binds the given builtin definitions in env.
func (env *LEnv) AddBuiltins(funs ...LBuiltinDef) {
	for _, f := range funs {
		env.Put(Symbol(f.Name()), Fun(f.Name(), f.Eval))
	}
}

// Load reads lisp source from r using the environment's Reader and evaluates
// each top-level form in order.  Load returns the value of the last form, or
// the first evaluation error.
func (env *LEnv) Load(name string, r io.Reader) (*LVal, error) {
	if env.Runtime.Reader == nil {
		return nil, Errorf(ErrEval, "no reader configured")
	}
	exprs, err := env.Runtime.Reader.Read(name, r)
	if err != nil {
		return nil, err
	}
	val := Undefined()
	for _, expr := range exprs {
		val, err = env.Eval(expr)
		if err != nil {
			return nil, err
		}
	}
	return val, nil
}

// LoadFile evaluates the named file.  If path does not exist LoadFile also
// tries path with a ".lisp" suffix before failing.
func (env *LEnv) LoadFile(path string) (*LVal, error) {
	f, err := os.Open(path)
	if err != nil {
		f, err = os.Open(path + ".lisp")
	}
	if err != nil {
		return nil, Errorf(ErrEval, "%v", err)
	}
	defer f.Close()
	return env.Load(path, f)
}

// LoadString evaluates lisp source given as a string.
func (env *LEnv) LoadString(name, source string) (*LVal, error) {
	return env.Load(name, strings.NewReader(source))
}
