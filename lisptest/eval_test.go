package lisptest

import "testing"

func TestEval(t *testing.T) {
	tests := TestSuite{
		{"self-evaluating", TestSequence{
			{"3", "3"},
			{"-4", "-4"},
			{"1.5", "1.5"},
			{`"hello"`, `"hello"`},
			{"#t", "#t"},
			{"#f", "#f"},
			{"()", "()"},
		}},
		{"quotes", TestSequence{
			{"'x", "x"},
			{"'(1 2 3)", "(1 2 3)"},
			{"''x", "(quote x)"},
			{"(quote (a . b))", "(a . b)"},
		}},
		{"arithmetic", TestSequence{
			{"(+ 1 2 3)", "6"},
			{"(+)", "0"},
			{"(- 5)", "-5"},
			{"(- 10 1 2)", "7"},
			{"(*)", "1"},
			{"(* 2 3 4)", "24"},
			{"(/ 6 2)", "3"},
			{"(/ 7 2)", "3.5"},
			{"(* 2.5 2)", "5"},
			{"(expt 2 10)", "1024"},
			{"(abs -3)", "3"},
			{"(quotient 7 2)", "3"},
			{"(quotient -7 2)", "-3"},
			{"(modulo 7 -2)", "-1"},
			{"(modulo -7 2)", "1"},
			{"(remainder -7 2)", "-1"},
			{"(remainder 7 -2)", "1"},
		}},
		{"comparisons", TestSequence{
			{"(= 1 1)", "#t"},
			{"(= 1 1.0)", "#t"},
			{"(< 1 2)", "#t"},
			{"(> 1 2)", "#f"},
			{"(<= 2 2)", "#t"},
			{"(>= 1 2)", "#f"},
			{"(even? -2)", "#t"},
			{"(odd? -3)", "#t"},
			{"(zero? 0.0)", "#t"},
		}},
		{"lists", TestSequence{
			{"(cons 1 (cons 2 (cons 3 ())))", "(1 2 3)"},
			{"(cons 1 2)", "(1 . 2)"},
			{"(list 1 2 3)", "(1 2 3)"},
			{"(car '(1 2 3))", "1"},
			{"(cdr '(1 2 3))", "(2 3)"},
			{"(length '(1 2 3))", "3"},
			{"(length ())", "0"},
			{"(append '(1 2) '(3) ())", "(1 2 3)"},
			{"(append)", "()"},
			{"(define x '(1 2))", "x"},
			{"(set-car! x 10)", "undefined"},
			{"x", "(10 2)"},
			{"(set-cdr! x ())", "undefined"},
			{"x", "(10)"},
		}},
		{"predicates", TestSequence{
			{"(null? ())", "#t"},
			{"(null? '(1))", "#f"},
			{"(pair? '(1))", "#t"},
			{"(pair? ())", "#f"},
			{"(list? '(1 2))", "#t"},
			{"(list? (cons 1 2))", "#f"},
			{"(atom? 'a)", "#t"},
			{"(atom? '(a))", "#f"},
			{"(number? 1.5)", "#t"},
			{"(integer? 2.0)", "#t"},
			{"(integer? 2.5)", "#f"},
			{"(string? \"a\")", "#t"},
			{"(symbol? 'a)", "#t"},
			{"(boolean? #f)", "#t"},
			{"(procedure? car)", "#t"},
			{"(procedure? 'car)", "#f"},
		}},
		{"equality", TestSequence{
			{"(equal? '(1 (2 3)) '(1 (2 3)))", "#t"},
			{"(equal? 1 1.0)", "#t"},
			{"(equal? \"a\" \"a\")", "#t"},
			{"(eq? 'a 'a)", "#t"},
			{"(eq? 2 2)", "#t"},
			{"(eq? '(1) '(1))", "#f"},
			{"(not #f)", "#t"},
			{"(not 0)", "#f"},
		}},
		{"higher order", TestSequence{
			{"(map (lambda (x) (* x x)) '(1 2 3))", "(1 4 9)"},
			{"(map car '())", "()"},
			{"(filter odd? '(1 2 3 4 5))", "(1 3 5)"},
			{"(reduce + '(1 2 3 4))", "10"},
			{"(apply + '(1 2 3))", "6"},
			{"(eval '(+ 1 2))", "3"},
			{"(eval ''x)", "x"},
		}},
	}
	RunTestSuite(t, tests)
}
