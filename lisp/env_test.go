package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvGetPut(t *testing.T) {
	env := NewEnv(nil)
	env.Put(Symbol("x"), Int(1))
	v, err := env.Get(Symbol("x"))
	require.NoError(t, err)
	assert.Equal(t, 1, v.Int)

	_, err = env.Get(Symbol("y"))
	require.Error(t, err)
	assert.Equal(t, ErrUnbound, ConditionOf(err))

	env.Put(Symbol("x"), Int(2))
	v, err = env.Get(Symbol("x"))
	require.NoError(t, err)
	assert.Equal(t, 2, v.Int)
}

func TestEnvParentChain(t *testing.T) {
	parent := NewEnv(nil)
	parent.Put(Symbol("x"), Int(1))
	parent.Put(Symbol("y"), Int(2))
	child := NewEnv(parent)
	child.Put(Symbol("x"), Int(10))

	v, err := child.Get(Symbol("x"))
	require.NoError(t, err)
	assert.Equal(t, 10, v.Int)

	v, err = child.Get(Symbol("y"))
	require.NoError(t, err)
	assert.Equal(t, 2, v.Int)

	// the child binding does not leak upward
	v, err = parent.Get(Symbol("x"))
	require.NoError(t, err)
	assert.Equal(t, 1, v.Int)
}

func TestMakeChildFrame(t *testing.T) {
	env := NewEnv(nil)
	frame, err := env.MakeChildFrame(
		List(Symbol("a"), Symbol("b")),
		List(Int(1), Int(2)),
	)
	require.NoError(t, err)
	assert.Equal(t, env, frame.Parent)
	v, err := frame.Get(Symbol("a"))
	require.NoError(t, err)
	assert.Equal(t, 1, v.Int)
	v, err = frame.Get(Symbol("b"))
	require.NoError(t, err)
	assert.Equal(t, 2, v.Int)

	_, err = env.MakeChildFrame(List(Symbol("a")), List(Int(1), Int(2)))
	require.Error(t, err)
	assert.Equal(t, ErrArity, ConditionOf(err))

	_, err = env.MakeChildFrame(List(Symbol("a"), Symbol("b")), List(Int(1)))
	require.Error(t, err)
	assert.Equal(t, ErrArity, ConditionOf(err))
}

func TestNewGlobalEnv(t *testing.T) {
	env, err := NewGlobalEnv()
	require.NoError(t, err)
	require.NotNil(t, env.Runtime)

	v, err := env.Get(Symbol("car"))
	require.NoError(t, err)
	assert.Equal(t, LFun, v.Type)
	assert.Equal(t, FunBuiltin, v.FunType)

	v, err = env.Get(Symbol("undefined"))
	require.NoError(t, err)
	assert.Equal(t, LUndefined, v.Type)

	assert.True(t, env.Runtime.Reserved("if"))
	assert.True(t, env.Runtime.Reserved("define"))
	assert.False(t, env.Runtime.Reserved("car"))
}

func TestGlobalEnvConfig(t *testing.T) {
	env, err := NewGlobalEnv(WithMaximumStackHeight(17))
	require.NoError(t, err)
	assert.Equal(t, 17, env.Runtime.Stack.MaxHeight)
}
