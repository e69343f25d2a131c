// Package lisptest runs interpreter tests written as sequences of source
// expressions paired with their expected printed results.
package lisptest

import (
	"fmt"
	"testing"

	"github.com/bmatsuo/minilisp/lisp"
	"github.com/bmatsuo/minilisp/parser"
)

// TestSequence is a sequence of lisp expressions which are evaluated
// sequentially by a lisp.LEnv.  Result is the printed form of the value, or
// "error: <message>" when evaluation must fail.  An expression producing an
// undefined value prints as "undefined".
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the evaluated result
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests on isolated lisp.LEnvs.
func RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		env, err := lisp.NewGlobalEnv(lisp.WithReader(parser.NewReader()))
		if err != nil {
			t.Fatalf("test %d %q: env: %v", i, test.Name, err)
		}
		for j, expr := range test.TestSequence {
			v, _, err := parser.ParseLVal([]byte(expr.Expr))
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			if len(v) != 1 {
				t.Errorf("test %d %q: expr %d: expected one expression (got %d)", i, test.Name, j, len(v))
				continue
			}
			result := evalString(env, v[0])
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
		}
	}
}

func evalString(env *lisp.LEnv, expr *lisp.LVal) string {
	v, err := env.Eval(expr)
	if err != nil {
		env.Runtime.Stack.Reset()
		return fmt.Sprintf("error: %v", err)
	}
	return v.String()
}
