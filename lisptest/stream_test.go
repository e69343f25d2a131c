package lisptest

import "testing"

func TestStreams(t *testing.T) {
	tests := TestSuite{
		{"delay and force", TestSequence{
			{"(define p (delay (cons 1 ())))", "p"},
			{"p", "#[promise (not forced)]"},
			{"(promise? p)", "#t"},
			{"(force p)", "(1)"},
			{"p", "#[promise (forced)]"},
			{"(force p)", "(1)"},
			{"(force (delay ()))", "()"},
			{"(force (delay 3))", "error: result of forcing a promise should be a pair or nil, but was 3"},
		}},
		{"memoization", TestSequence{
			{"(define cell (cons 0 ()))", "cell"},
			{"(define p (delay (begin (set-car! cell (+ (car cell) 1)) cell)))", "p"},
			{"(force p)", "(1)"},
			{"(force p)", "(1)"},
			// the delayed body ran exactly once.
			{"(car cell)", "1"},
		}},
		{"cons-stream", TestSequence{
			{"(define s (cons-stream 1 (quotient 1 0)))", "s"},
			// the tail is not evaluated until demanded.
			{"(car s)", "1"},
			{"(cdr-stream s)", "error: division by zero"},
		}},
		{"infinite streams", TestSequence{
			{"(define (ints n) (cons-stream n (ints (+ n 1))))", "ints"},
			{"(define nat (ints 0))", "nat"},
			{"(car nat)", "0"},
			{"(car (cdr-stream nat))", "1"},
			{"(car (cdr-stream (cdr-stream nat)))", "2"},
		}},
		{"stream errors", TestSequence{
			{"(cdr-stream '(1 2))", "error: argument 0 of cdr-stream has wrong type (pair)"},
			{"(force 1)", "error: argument 0 of force has wrong type (int)"},
		}},
	}
	RunTestSuite(t, tests)
}
