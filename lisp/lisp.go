package lisp

import (
	"bytes"
	"strconv"
	"strings"
)

// LType is the type of an LVal
type LType uint

// Possible LType values
const (
	LInvalid LType = iota
	LInt
	LFloat
	LString
	LSymbol
	LBool
	LNil
	LPair
	LFun
	LPromise
	LUndefined
)

var ltypeStrings = []string{
	LInvalid:   "INVALID",
	LInt:       "int",
	LFloat:     "float",
	LString:    "string",
	LSymbol:    "symbol",
	LBool:      "boolean",
	LNil:       "nil",
	LPair:      "pair",
	LFun:       "function",
	LPromise:   "promise",
	LUndefined: "undefined",
}

func (t LType) String() string {
	if int(t) >= len(ltypeStrings) {
		return ltypeStrings[LInvalid]
	}
	return ltypeStrings[t]
}

// FunType distinguishes the callable variants of an LFun value.
type FunType uint

// Possible FunType values.  FunLambda closures capture their definition
// environment while FunMu procedures bind their call frame to the caller's
// environment at call time.  FunMacro procedures are applied to unevaluated
// operand syntax.
const (
	FunBuiltin FunType = iota
	FunLambda
	FunMu
	FunMacro
)

// LBuiltin is a host function that implements a lisp builtin.
type LBuiltin func(env *LEnv, args *LVal) (*LVal, error)

// LVal is a lisp value
type LVal struct {
	Type  LType
	Int   int
	Float float64
	Str   string
	Bool  bool

	// Pair cells
	Head *LVal
	Tail *LVal

	// Variables needed for function values
	FunType FunType
	FName   string
	Builtin LBuiltin
	Formals *LVal
	Body    *LVal
	Env     *LEnv

	// Promise cell for LPromise values
	Promise *Promise
}

// Int returns an LVal representing the integer x.
func Int(x int) *LVal {
	return &LVal{
		Type: LInt,
		Int:  x,
	}
}

// Float returns an LVal representing the real number x.
func Float(x float64) *LVal {
	return &LVal{
		Type:  LFloat,
		Float: x,
	}
}

// String returns an LVal representing the string s.
func String(s string) *LVal {
	return &LVal{
		Type: LString,
		Str:  s,
	}
}

// Symbol returns an LVal representing the symbol s.
func Symbol(s string) *LVal {
	return &LVal{
		Type: LSymbol,
		Str:  s,
	}
}

// Bool returns an LVal representing the boolean b.
func Bool(b bool) *LVal {
	return &LVal{
		Type: LBool,
		Bool: b,
	}
}

// Nil returns an LVal representing the empty list.
func Nil() *LVal {
	return &LVal{
		Type: LNil,
	}
}

// Undefined returns the unspecified sentinel value produced by forms like a
// one-armed if.  The REPL does not print undefined results.
func Undefined() *LVal {
	return &LVal{
		Type: LUndefined,
	}
}

// Cons returns a pair with the given head and tail.
func Cons(head, tail *LVal) *LVal {
	return &LVal{
		Type: LPair,
		Head: head,
		Tail: tail,
	}
}

// List returns a proper list containing the given values in order.
func List(vals ...*LVal) *LVal {
	lis := Nil()
	for i := len(vals) - 1; i >= 0; i-- {
		lis = Cons(vals[i], lis)
	}
	return lis
}

// Fun returns an LVal wrapping the builtin fn.
func Fun(name string, fn LBuiltin) *LVal {
	return &LVal{
		Type:    LFun,
		FunType: FunBuiltin,
		FName:   name,
		Builtin: fn,
	}
}

// Lambda returns a lexically scoped procedure with the given formals and body
// which captures env as the parent of its future call frames.
func Lambda(formals, body *LVal, env *LEnv) *LVal {
	return &LVal{
		Type:    LFun,
		FunType: FunLambda,
		Formals: formals,
		Body:    body,
		Env:     env,
	}
}

// Mu returns a dynamically scoped procedure.  A mu procedure captures no
// environment -- its call frames chain to the caller's current environment.
func Mu(formals, body *LVal) *LVal {
	return &LVal{
		Type:    LFun,
		FunType: FunMu,
		Formals: formals,
		Body:    body,
	}
}

// Macro returns a syntax transformer with the given formals and body.  Macros
// are applied to unevaluated operand expressions and their results are
// evaluated again in the caller's environment.
func Macro(formals, body *LVal, env *LEnv) *LVal {
	return &LVal{
		Type:    LFun,
		FunType: FunMacro,
		Formals: formals,
		Body:    body,
		Env:     env,
	}
}

// NewPromise returns an unforced promise capturing expr and env.
func NewPromise(expr *LVal, env *LEnv) *LVal {
	return &LVal{
		Type:    LPromise,
		Promise: &Promise{expr: expr, env: env},
	}
}

// IsNil returns true if v is the empty list.
func (v *LVal) IsNil() bool {
	return v.Type == LNil
}

// IsTrue returns the truthiness of v.  Every lisp value other than #f is
// true, including 0 and the empty list.
func (v *LVal) IsTrue() bool {
	return !(v.Type == LBool && !v.Bool)
}

// IsNumber returns true if v is an integer or a float.
func (v *LVal) IsNumber() bool {
	return v.Type == LInt || v.Type == LFloat
}

// IsProc returns true if v is callable.
func (v *LVal) IsProc() bool {
	return v.Type == LFun
}

// IsMacro returns true if v is a macro procedure.
func (v *LVal) IsMacro() bool {
	return v.Type == LFun && v.FunType == FunMacro
}

// SelfEvaluating returns true if v evaluates to itself.  Symbols evaluate by
// lookup and pairs are combinations; everything else is a constant.
func (v *LVal) SelfEvaluating() bool {
	switch v.Type {
	case LSymbol, LPair:
		return false
	}
	return true
}

// IsList returns true if v is a proper list, a chain of pairs terminated by
// the empty list.  Cycles are not detected.
func (v *LVal) IsList() bool {
	for !v.IsNil() {
		if v.Type != LPair {
			return false
		}
		v = v.Tail
	}
	return true
}

// Len returns the number of elements in a proper list.  Len returns false if
// v is not a proper list.
func (v *LVal) Len() (int, bool) {
	n := 0
	for !v.IsNil() {
		if v.Type != LPair {
			return 0, false
		}
		n++
		v = v.Tail
	}
	return n, true
}

// Slice returns the elements of a proper list.  Slice returns false if v is
// not a proper list.
func (v *LVal) Slice() ([]*LVal, bool) {
	var cells []*LVal
	for !v.IsNil() {
		if v.Type != LPair {
			return nil, false
		}
		cells = append(cells, v.Head)
		v = v.Tail
	}
	return cells, true
}

// Float64 returns the numeric value of v as a float64.
func (v *LVal) Float64() float64 {
	if v.Type == LInt {
		return float64(v.Int)
	}
	return v.Float
}

func (v *LVal) String() string {
	switch v.Type {
	case LInt:
		return strconv.Itoa(v.Int)
	case LFloat:
		return formatFloat(v.Float)
	case LString:
		return strconv.Quote(v.Str)
	case LSymbol:
		return v.Str
	case LBool:
		if v.Bool {
			return "#t"
		}
		return "#f"
	case LNil:
		return "()"
	case LPair:
		return pairString(v)
	case LFun:
		return funString(v)
	case LPromise:
		if v.Promise.Forced() {
			return "#[promise (forced)]"
		}
		return "#[promise (not forced)]"
	case LUndefined:
		return "undefined"
	default:
		return "#[invalid]"
	}
}

// Display returns the display representation of v, which differs from the
// printed representation only for strings, whose contents are written without
// quotes.
func (v *LVal) Display() string {
	if v.Type == LString {
		return v.Str
	}
	return v.String()
}

func formatFloat(x float64) string {
	s := strconv.FormatFloat(x, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEnI") {
		return s
	}
	return s + ".0"
}

func pairString(v *LVal) string {
	var buf bytes.Buffer
	buf.WriteString("(")
	buf.WriteString(v.Head.String())
	for v = v.Tail; ; v = v.Tail {
		switch v.Type {
		case LNil:
			buf.WriteString(")")
			return buf.String()
		case LPair:
			buf.WriteString(" ")
			buf.WriteString(v.Head.String())
		default:
			buf.WriteString(" . ")
			buf.WriteString(v.String())
			buf.WriteString(")")
			return buf.String()
		}
	}
}

func funString(v *LVal) string {
	if v.FunType == FunBuiltin {
		return "#[" + v.FName + "]"
	}
	tag := "lambda"
	switch v.FunType {
	case FunMu:
		tag = "mu"
	case FunMacro:
		tag = "macro"
	}
	var buf bytes.Buffer
	buf.WriteString("(")
	buf.WriteString(tag)
	buf.WriteString(" ")
	buf.WriteString(v.Formals.String())
	for body := v.Body; body.Type == LPair; body = body.Tail {
		buf.WriteString(" ")
		buf.WriteString(body.Head.String())
	}
	buf.WriteString(")")
	return buf.String()
}
