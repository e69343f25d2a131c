package lisp

import (
	"fmt"
	"math"
)

// ErrExit is returned by the exit builtin.  Drivers treat it as a request to
// end the session rather than a failure.
var ErrExit = &Error{Cond: ErrEval, Msg: "exit"}

// LBuiltinDef is a built-in function definition.
type LBuiltinDef interface {
	Name() string
	Eval(env *LEnv, args *LVal) (*LVal, error)
}

type langBuiltin struct {
	name string
	fun  LBuiltin
}

func (fun *langBuiltin) Name() string {
	return fun.name
}

func (fun *langBuiltin) Eval(env *LEnv, args *LVal) (*LVal, error) {
	return fun.fun(env, args)
}

var langBuiltins = []*langBuiltin{
	{"eval", builtinEval},
	{"apply", builtinApply},
	{"load", builtinLoad},
	{"map", builtinMap},
	{"filter", builtinFilter},
	{"reduce", builtinReduce},
	{"procedure?", builtinIsProcedure},
	{"boolean?", builtinIsBoolean},
	{"not", builtinNot},
	{"equal?", builtinIsEqual},
	{"eq?", builtinIsEq},
	{"pair?", builtinIsPair},
	{"null?", builtinIsNull},
	{"list?", builtinIsList},
	{"promise?", builtinIsPromise},
	{"force", builtinForce},
	{"cdr-stream", builtinCDRStream},
	{"length", builtinLength},
	{"cons", builtinCons},
	{"car", builtinCAR},
	{"cdr", builtinCDR},
	{"set-car!", builtinSetCAR},
	{"set-cdr!", builtinSetCDR},
	{"list", builtinList},
	{"append", builtinAppend},
	{"string?", builtinIsString},
	{"symbol?", builtinIsSymbol},
	{"number?", builtinIsNumber},
	{"integer?", builtinIsInteger},
	{"+", builtinAdd},
	{"-", builtinSub},
	{"*", builtinMul},
	{"/", builtinDiv},
	{"expt", builtinExpt},
	{"abs", builtinAbs},
	{"quotient", builtinQuotient},
	{"modulo", builtinModulo},
	{"remainder", builtinRemainder},
	{"=", builtinEqNum},
	{"<", builtinLT},
	{">", builtinGT},
	{"<=", builtinLEq},
	{">=", builtinGEq},
	{"even?", builtinIsEven},
	{"odd?", builtinIsOdd},
	{"zero?", builtinIsZero},
	{"atom?", builtinIsAtom},
	{"display", builtinDisplay},
	{"print", builtinPrint},
	{"newline", builtinNewline},
	{"error", builtinError},
	{"exit", builtinExit},
	{"print-then-return", builtinPrintThenReturn},
	{"floor", numberFun("floor", math.Floor)},
	{"ceil", numberFun("ceil", math.Ceil)},
	{"sqrt", numberFun("sqrt", math.Sqrt)},
	{"log", numberFun("log", math.Log)},
	{"sin", numberFun("sin", math.Sin)},
	{"cos", numberFun("cos", math.Cos)},
	{"tan", numberFun("tan", math.Tan)},
	{"atan", numberFun("atan", math.Atan)},
}

// DefaultBuiltins returns the set of LBuiltinDefs installed into global
// environments by NewGlobalEnv.
func DefaultBuiltins() []LBuiltinDef {
	funs := make([]LBuiltinDef, len(langBuiltins))
	for i := range langBuiltins {
		funs[i] = langBuiltins[i]
	}
	return funs
}

// checkArgs converts the argument list of a builtin invocation into a slice
// with between min and max elements.  A negative max means no maximum.
func checkArgs(name string, args *LVal, min, max int) ([]*LVal, error) {
	cells, ok := args.Slice()
	if !ok {
		return nil, Errorf(ErrMalformed, "arguments are not in a list: %s", args)
	}
	if len(cells) < min || (max >= 0 && len(cells) > max) {
		return nil, Errorf(ErrEval, "%s: wrong number of arguments (got %d)", name, len(cells))
	}
	return cells, nil
}

func typeErr(name string, k int, v *LVal) error {
	return Errorf(ErrEval, "argument %d of %s has wrong type (%s)", k, name, v.Type)
}

func checkNums(name string, vals ...*LVal) error {
	for i, v := range vals {
		if !v.IsNumber() {
			return Errorf(ErrEval, "operand %d (%s) of %s is not a number", i, v, name)
		}
	}
	return nil
}

// foldNum returns x as an integer value when it is integral, matching the
// numeric folding of the source dialect.
func foldNum(x float64) *LVal {
	if x == math.Trunc(x) && !math.IsInf(x, 0) && math.Abs(x) < 1<<53 {
		return Int(int(x))
	}
	return Float(x)
}

func builtinEval(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("eval", args, 1, 1)
	if err != nil {
		return nil, err
	}
	return env.Eval(cells[0])
}

func builtinApply(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("apply", args, 2, 2)
	if err != nil {
		return nil, err
	}
	if !cells[1].IsList() {
		return nil, typeErr("apply", 1, cells[1])
	}
	return env.Apply(cells[0], cells[1])
}

func builtinLoad(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("load", args, 1, 2)
	if err != nil {
		return nil, err
	}
	name := cells[0]
	if name.Type != LSymbol && name.Type != LString {
		return nil, typeErr("load", 0, name)
	}
	if _, err := env.root().LoadFile(name.Str); err != nil {
		return nil, err
	}
	return Undefined(), nil
}

func builtinMap(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("map", args, 2, 2)
	if err != nil {
		return nil, err
	}
	fn, lis := cells[0], cells[1]
	if !fn.IsProc() {
		return nil, typeErr("map", 0, fn)
	}
	if !lis.IsList() {
		return nil, typeErr("map", 1, lis)
	}
	head := Nil()
	var last *LVal
	for ; !lis.IsNil(); lis = lis.Tail {
		v, err := env.Apply(fn, List(lis.Head))
		if err != nil {
			return nil, err
		}
		cell := Cons(v, Nil())
		if last == nil {
			head = cell
		} else {
			last.Tail = cell
		}
		last = cell
	}
	return head, nil
}

func builtinFilter(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("filter", args, 2, 2)
	if err != nil {
		return nil, err
	}
	fn, lis := cells[0], cells[1]
	if !fn.IsProc() {
		return nil, typeErr("filter", 0, fn)
	}
	if !lis.IsList() {
		return nil, typeErr("filter", 1, lis)
	}
	head := Nil()
	var last *LVal
	for ; !lis.IsNil(); lis = lis.Tail {
		keep, err := env.Apply(fn, List(lis.Head))
		if err != nil {
			return nil, err
		}
		if !keep.IsTrue() {
			continue
		}
		cell := Cons(lis.Head, Nil())
		if last == nil {
			head = cell
		} else {
			last.Tail = cell
		}
		last = cell
	}
	return head, nil
}

func builtinReduce(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("reduce", args, 2, 2)
	if err != nil {
		return nil, err
	}
	fn, lis := cells[0], cells[1]
	if !fn.IsProc() {
		return nil, typeErr("reduce", 0, fn)
	}
	if lis.IsNil() || !lis.IsList() {
		return nil, typeErr("reduce", 1, lis)
	}
	value := lis.Head
	for lis = lis.Tail; !lis.IsNil(); lis = lis.Tail {
		value, err = env.Apply(fn, List(value, lis.Head))
		if err != nil {
			return nil, err
		}
	}
	return value, nil
}

func builtinIsProcedure(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("procedure?", args, 1, 1)
	if err != nil {
		return nil, err
	}
	return Bool(cells[0].IsProc()), nil
}

func builtinIsBoolean(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("boolean?", args, 1, 1)
	if err != nil {
		return nil, err
	}
	return Bool(cells[0].Type == LBool), nil
}

func builtinNot(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("not", args, 1, 1)
	if err != nil {
		return nil, err
	}
	return Bool(!cells[0].IsTrue()), nil
}

func builtinIsEqual(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("equal?", args, 2, 2)
	if err != nil {
		return nil, err
	}
	return Bool(equalVal(cells[0], cells[1])), nil
}

func equalVal(x, y *LVal) bool {
	if x.Type == LPair && y.Type == LPair {
		return equalVal(x.Head, y.Head) && equalVal(x.Tail, y.Tail)
	}
	if x.IsNumber() && y.IsNumber() {
		return x.Float64() == y.Float64()
	}
	if x.Type != y.Type {
		return false
	}
	switch x.Type {
	case LString, LSymbol:
		return x.Str == y.Str
	case LBool:
		return x.Bool == y.Bool
	case LNil, LUndefined:
		return true
	default:
		return x == y
	}
}

func builtinIsEq(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("eq?", args, 2, 2)
	if err != nil {
		return nil, err
	}
	x, y := cells[0], cells[1]
	switch {
	case x.IsNumber() && y.IsNumber():
		return Bool(x.Float64() == y.Float64()), nil
	case x.Type == LSymbol && y.Type == LSymbol:
		return Bool(x.Str == y.Str), nil
	case x.Type == LBool && y.Type == LBool:
		return Bool(x.Bool == y.Bool), nil
	case x.Type == LNil && y.Type == LNil:
		return Bool(true), nil
	default:
		return Bool(x == y), nil
	}
}

func builtinIsPair(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("pair?", args, 1, 1)
	if err != nil {
		return nil, err
	}
	return Bool(cells[0].Type == LPair), nil
}

func builtinIsNull(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("null?", args, 1, 1)
	if err != nil {
		return nil, err
	}
	return Bool(cells[0].IsNil()), nil
}

func builtinIsList(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("list?", args, 1, 1)
	if err != nil {
		return nil, err
	}
	return Bool(cells[0].IsList()), nil
}

func builtinIsPromise(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("promise?", args, 1, 1)
	if err != nil {
		return nil, err
	}
	return Bool(cells[0].Type == LPromise), nil
}

func builtinForce(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("force", args, 1, 1)
	if err != nil {
		return nil, err
	}
	if cells[0].Type != LPromise {
		return nil, typeErr("force", 0, cells[0])
	}
	return cells[0].Promise.Force()
}

func builtinCDRStream(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("cdr-stream", args, 1, 1)
	if err != nil {
		return nil, err
	}
	v := cells[0]
	if v.Type != LPair || v.Tail.Type != LPromise {
		return nil, typeErr("cdr-stream", 0, v)
	}
	return v.Tail.Promise.Force()
}

func builtinLength(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("length", args, 1, 1)
	if err != nil {
		return nil, err
	}
	n, ok := cells[0].Len()
	if !ok {
		return nil, typeErr("length", 0, cells[0])
	}
	return Int(n), nil
}

func builtinCons(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("cons", args, 2, 2)
	if err != nil {
		return nil, err
	}
	return Cons(cells[0], cells[1]), nil
}

func builtinCAR(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("car", args, 1, 1)
	if err != nil {
		return nil, err
	}
	if cells[0].Type != LPair {
		return nil, typeErr("car", 0, cells[0])
	}
	return cells[0].Head, nil
}

func builtinCDR(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("cdr", args, 1, 1)
	if err != nil {
		return nil, err
	}
	if cells[0].Type != LPair {
		return nil, typeErr("cdr", 0, cells[0])
	}
	return cells[0].Tail, nil
}

func builtinSetCAR(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("set-car!", args, 2, 2)
	if err != nil {
		return nil, err
	}
	if cells[0].Type != LPair {
		return nil, typeErr("set-car!", 0, cells[0])
	}
	cells[0].Head = cells[1]
	return Undefined(), nil
}

func builtinSetCDR(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("set-cdr!", args, 2, 2)
	if err != nil {
		return nil, err
	}
	if cells[0].Type != LPair {
		return nil, typeErr("set-cdr!", 0, cells[0])
	}
	switch cells[1].Type {
	case LPair, LNil, LPromise:
	default:
		return nil, typeErr("set-cdr!", 1, cells[1])
	}
	cells[0].Tail = cells[1]
	return Undefined(), nil
}

func builtinList(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("list", args, 0, -1)
	if err != nil {
		return nil, err
	}
	return List(cells...), nil
}

func builtinAppend(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("append", args, 0, -1)
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return Nil(), nil
	}
	// Every list but the last is copied; the last is shared.
	result := cells[len(cells)-1]
	for i := len(cells) - 2; i >= 0; i-- {
		v := cells[i]
		if v.IsNil() {
			continue
		}
		elems, ok := v.Slice()
		if !ok {
			return nil, typeErr("append", i, v)
		}
		for j := len(elems) - 1; j >= 0; j-- {
			result = Cons(elems[j], result)
		}
	}
	return result, nil
}

func builtinIsString(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("string?", args, 1, 1)
	if err != nil {
		return nil, err
	}
	return Bool(cells[0].Type == LString), nil
}

func builtinIsSymbol(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("symbol?", args, 1, 1)
	if err != nil {
		return nil, err
	}
	return Bool(cells[0].Type == LSymbol), nil
}

func builtinIsNumber(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("number?", args, 1, 1)
	if err != nil {
		return nil, err
	}
	return Bool(cells[0].IsNumber()), nil
}

func builtinIsInteger(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("integer?", args, 1, 1)
	if err != nil {
		return nil, err
	}
	v := cells[0]
	ok := v.Type == LInt || (v.Type == LFloat && v.Float == math.Trunc(v.Float))
	return Bool(ok), nil
}

func builtinAdd(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("+", args, 0, -1)
	if err != nil {
		return nil, err
	}
	if err := checkNums("+", cells...); err != nil {
		return nil, err
	}
	sum := 0.0
	for _, v := range cells {
		sum += v.Float64()
	}
	return foldNum(sum), nil
}

func builtinSub(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("-", args, 1, -1)
	if err != nil {
		return nil, err
	}
	if err := checkNums("-", cells...); err != nil {
		return nil, err
	}
	if len(cells) == 1 {
		return foldNum(-cells[0].Float64()), nil
	}
	diff := cells[0].Float64()
	for _, v := range cells[1:] {
		diff -= v.Float64()
	}
	return foldNum(diff), nil
}

func builtinMul(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("*", args, 0, -1)
	if err != nil {
		return nil, err
	}
	if err := checkNums("*", cells...); err != nil {
		return nil, err
	}
	prod := 1.0
	for _, v := range cells {
		prod *= v.Float64()
	}
	return foldNum(prod), nil
}

func builtinDiv(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("/", args, 1, -1)
	if err != nil {
		return nil, err
	}
	if err := checkNums("/", cells...); err != nil {
		return nil, err
	}
	if len(cells) == 1 {
		if cells[0].Float64() == 0 {
			return nil, Errorf(ErrEval, "division by zero")
		}
		return foldNum(1 / cells[0].Float64()), nil
	}
	quo := cells[0].Float64()
	for _, v := range cells[1:] {
		if v.Float64() == 0 {
			return nil, Errorf(ErrEval, "division by zero")
		}
		quo /= v.Float64()
	}
	return foldNum(quo), nil
}

func builtinExpt(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("expt", args, 2, 2)
	if err != nil {
		return nil, err
	}
	if err := checkNums("expt", cells...); err != nil {
		return nil, err
	}
	return foldNum(math.Pow(cells[0].Float64(), cells[1].Float64())), nil
}

func builtinAbs(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("abs", args, 1, 1)
	if err != nil {
		return nil, err
	}
	if err := checkNums("abs", cells...); err != nil {
		return nil, err
	}
	return foldNum(math.Abs(cells[0].Float64())), nil
}

func builtinQuotient(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("quotient", args, 2, 2)
	if err != nil {
		return nil, err
	}
	if err := checkNums("quotient", cells...); err != nil {
		return nil, err
	}
	if cells[1].Float64() == 0 {
		return nil, Errorf(ErrEval, "division by zero")
	}
	// Truncate toward zero.
	return foldNum(math.Trunc(cells[0].Float64() / cells[1].Float64())), nil
}

func builtinModulo(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("modulo", args, 2, 2)
	if err != nil {
		return nil, err
	}
	if err := checkNums("modulo", cells...); err != nil {
		return nil, err
	}
	a, b := cells[0].Float64(), cells[1].Float64()
	if b == 0 {
		return nil, Errorf(ErrEval, "division by zero")
	}
	// Result takes the sign of the divisor.
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return foldNum(r), nil
}

func builtinRemainder(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("remainder", args, 2, 2)
	if err != nil {
		return nil, err
	}
	if err := checkNums("remainder", cells...); err != nil {
		return nil, err
	}
	a, b := cells[0].Float64(), cells[1].Float64()
	if b == 0 {
		return nil, Errorf(ErrEval, "division by zero")
	}
	// Result takes the sign of the dividend.
	return foldNum(math.Mod(a, b)), nil
}

func numCompare(name string, cmp func(x, y float64) bool) LBuiltin {
	return func(env *LEnv, args *LVal) (*LVal, error) {
		cells, err := checkArgs(name, args, 2, 2)
		if err != nil {
			return nil, err
		}
		if err := checkNums(name, cells...); err != nil {
			return nil, err
		}
		return Bool(cmp(cells[0].Float64(), cells[1].Float64())), nil
	}
}

var (
	builtinEqNum = numCompare("=", func(x, y float64) bool { return x == y })
	builtinLT    = numCompare("<", func(x, y float64) bool { return x < y })
	builtinGT    = numCompare(">", func(x, y float64) bool { return x > y })
	builtinLEq   = numCompare("<=", func(x, y float64) bool { return x <= y })
	builtinGEq   = numCompare(">=", func(x, y float64) bool { return x >= y })
)

func builtinIsEven(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("even?", args, 1, 1)
	if err != nil {
		return nil, err
	}
	if err := checkNums("even?", cells...); err != nil {
		return nil, err
	}
	return Bool(math.Mod(cells[0].Float64(), 2) == 0), nil
}

func builtinIsOdd(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("odd?", args, 1, 1)
	if err != nil {
		return nil, err
	}
	if err := checkNums("odd?", cells...); err != nil {
		return nil, err
	}
	return Bool(math.Mod(cells[0].Float64(), 2) != 0), nil
}

func builtinIsZero(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("zero?", args, 1, 1)
	if err != nil {
		return nil, err
	}
	if err := checkNums("zero?", cells...); err != nil {
		return nil, err
	}
	return Bool(cells[0].Float64() == 0), nil
}

func builtinIsAtom(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("atom?", args, 1, 1)
	if err != nil {
		return nil, err
	}
	switch cells[0].Type {
	case LBool, LInt, LFloat, LSymbol, LNil, LString:
		return Bool(true), nil
	}
	return Bool(false), nil
}

func builtinDisplay(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("display", args, 1, 1)
	if err != nil {
		return nil, err
	}
	fmt.Print(cells[0].Display())
	return Undefined(), nil
}

func builtinPrint(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("print", args, 1, 1)
	if err != nil {
		return nil, err
	}
	fmt.Println(cells[0].String())
	return Undefined(), nil
}

func builtinNewline(env *LEnv, args *LVal) (*LVal, error) {
	if _, err := checkArgs("newline", args, 0, 0); err != nil {
		return nil, err
	}
	fmt.Println()
	return Undefined(), nil
}

func builtinError(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("error", args, 0, 1)
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return nil, Errorf(ErrEval, "")
	}
	return nil, Errorf(ErrEval, "%s", cells[0].String())
}

func builtinExit(env *LEnv, args *LVal) (*LVal, error) {
	if _, err := checkArgs("exit", args, 0, 0); err != nil {
		return nil, err
	}
	return nil, ErrExit
}

func builtinPrintThenReturn(env *LEnv, args *LVal) (*LVal, error) {
	cells, err := checkArgs("print-then-return", args, 2, 2)
	if err != nil {
		return nil, err
	}
	fmt.Println(cells[0].String())
	return cells[1], nil
}

func numberFun(name string, fn func(float64) float64) LBuiltin {
	return func(env *LEnv, args *LVal) (*LVal, error) {
		cells, err := checkArgs(name, args, 1, 1)
		if err != nil {
			return nil, err
		}
		if err := checkNums(name, cells...); err != nil {
			return nil, err
		}
		return foldNum(fn(cells[0].Float64())), nil
	}
}
