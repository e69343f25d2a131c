package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromiseForce(t *testing.T) {
	env := testEnv(t)

	p := NewPromise(List(Symbol("list"), Int(1), Int(2)), env)
	assert.False(t, p.Promise.Forced())

	v, err := p.Promise.Force()
	require.NoError(t, err)
	assert.Equal(t, "(1 2)", v.String())
	assert.True(t, p.Promise.Forced())

	// the cached value is returned on repeated force
	v2, err := p.Promise.Force()
	require.NoError(t, err)
	assert.Same(t, v, v2)
}

func TestPromiseForceNil(t *testing.T) {
	env := testEnv(t)
	p := NewPromise(List(Symbol("list")), env)
	v, err := p.Promise.Force()
	require.NoError(t, err)
	assert.True(t, v.IsNil())
}

func TestPromiseForceNonPair(t *testing.T) {
	env := testEnv(t)
	p := NewPromise(Int(3), env)
	_, err := p.Promise.Force()
	require.Error(t, err)
	assert.Equal(t, ErrEval, ConditionOf(err))
	assert.False(t, p.Promise.Forced())
}

func TestPromiseForceError(t *testing.T) {
	env := testEnv(t)
	p := NewPromise(Symbol("missing"), env)
	_, err := p.Promise.Force()
	require.Error(t, err)
	assert.Equal(t, ErrUnbound, ConditionOf(err))
	// a failed force is not cached
	assert.False(t, p.Promise.Forced())
}

func TestPromiseString(t *testing.T) {
	env := testEnv(t)
	p := NewPromise(List(Symbol("list"), Int(1)), env)
	assert.Equal(t, "#[promise (not forced)]", p.String())
	_, err := p.Promise.Force()
	require.NoError(t, err)
	assert.Equal(t, "#[promise (forced)]", p.String())
}
