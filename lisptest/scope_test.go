package lisptest

import "testing"

func TestScope(t *testing.T) {
	tests := TestSuite{
		{"lexical capture", TestSequence{
			{"(define a 1)", "a"},
			{"(define (g b) (+ a b))", "g"},
			{"(define (h a) (g 2))", "h"},
			// g sees the global a, not h's parameter.
			{"(h 100)", "3"},
		}},
		{"closures", TestSequence{
			{"(define (adder n) (lambda (x) (+ x n)))", "adder"},
			{"(define add3 (adder 3))", "add3"},
			{"(add3 4)", "7"},
			{"(define n 100)", "n"},
			// the captured n is unaffected by the global binding.
			{"(add3 4)", "7"},
		}},
		{"dynamic scope", TestSequence{
			{"(define f (mu (b) (+ a b)))", "f"},
			{"(define (h2 a) (f 2))", "h2"},
			// the mu body resolves a in its caller's frame.
			{"(h2 100)", "102"},
			{"(mu (x) x)", "(mu (x) x)"},
		}},
		{"lexical to dynamic divergence", TestSequence{
			{"(define x 1)", "x"},
			{"(define (f) x)", "f"},
			{"(define (g x) (f))", "g"},
			{"(g 2)", "1"},
			// the same call resolves dynamically once f is a mu
			{"(define f (mu () x))", "f"},
			{"(g 2)", "2"},
		}},
		{"shadowing", TestSequence{
			{"(define x 1)", "x"},
			{"((lambda (x) x) 2)", "2"},
			{"x", "1"},
			{"(let ((x 3)) x)", "3"},
			{"x", "1"},
		}},
		{"inner define", TestSequence{
			{"(define (counter) (begin (define c 0) c))", "counter"},
			{"(counter)", "0"},
			// the inner define does not leak into the global frame.
			{"c", "error: unknown identifier: c"},
		}},
	}
	RunTestSuite(t, tests)
}
