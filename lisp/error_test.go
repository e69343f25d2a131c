package lisp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorConditions(t *testing.T) {
	err := Errorf(ErrUnbound, "unknown identifier: %s", "x")
	assert.Equal(t, "unknown identifier: x", err.Error())
	assert.Equal(t, ErrUnbound, ConditionOf(err))

	assert.Equal(t, ErrEval, ConditionOf(errors.New("plain")))
	assert.Equal(t, "evaluation error", (&Error{Cond: ErrEval}).Error())
}

func TestIsRecursionError(t *testing.T) {
	assert.True(t, IsRecursionError(Errorf(ErrRecursion, "maximum recursion depth exceeded")))
	assert.False(t, IsRecursionError(Errorf(ErrEval, "nope")))
	assert.False(t, IsRecursionError(errors.New("nope")))
}

func TestConditionStrings(t *testing.T) {
	assert.Equal(t, "unbound identifier", ErrUnbound.String())
	assert.Equal(t, "invalid syntax", ErrSyntax.String())
	assert.Equal(t, "recursion too deep", ErrRecursion.String())
	// out of range conditions report as generic evaluation errors
	assert.Equal(t, "evaluation error", Condition(100).String())
}
