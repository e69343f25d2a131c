package lisptest

import "testing"

func TestTailCalls(t *testing.T) {
	tests := TestSuite{
		{"tail recursion", TestSequence{
			{"(define (loop n) (if (= n 0) 'done (loop (- n 1))))", "loop"},
			// far deeper than the maximum stack height.
			{"(loop 100000)", "done"},
		}},
		{"mutual tail recursion", TestSequence{
			{"(define (even-len? l) (if (null? l) #t (odd-len? (cdr l))))", "even-len?"},
			{"(define (odd-len? l) (if (null? l) #f (even-len? (cdr l))))", "odd-len?"},
			{"(even-len? '(1 2 3 4))", "#t"},
			{"(odd-len? '(1 2 3 4))", "#f"},
		}},
		{"tail position forms", TestSequence{
			{"(define (count-begin n) (begin 'ignored (if (= n 0) 'done (count-begin (- n 1)))))", "count-begin"},
			{"(count-begin 20000)", "done"},
			{"(define (count-cond n) (cond ((= n 0) 'done) (else (count-cond (- n 1)))))", "count-cond"},
			{"(count-cond 20000)", "done"},
			{"(define (count-and n) (and #t (if (= n 0) 'done (count-and (- n 1)))))", "count-and"},
			{"(count-and 20000)", "done"},
			{"(define (count-or n) (or #f (if (= n 0) 'done (count-or (- n 1)))))", "count-or"},
			{"(count-or 20000)", "done"},
		}},
		{"non-tail recursion exhausts the stack", TestSequence{
			{"(define (grow n) (+ 1 (grow (+ n 1))))", "grow"},
			{"(grow 0)", "error: maximum recursion depth exceeded"},
			// the stack unwinds and the environment remains usable.
			{"(+ 1 2)", "3"},
		}},
	}
	RunTestSuite(t, tests)
}
