package lisp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackPushPop(t *testing.T) {
	s := &CallStack{MaxHeight: 3}
	require.NoError(t, s.Push("a"))
	require.NoError(t, s.Push("b"))
	require.NoError(t, s.Push("c"))
	assert.Equal(t, 3, s.Height())
	assert.Equal(t, "c", s.Top().Name)

	err := s.Push("d")
	require.Error(t, err)
	assert.True(t, IsRecursionError(err))
	assert.Equal(t, 3, s.Height())

	s.Pop()
	assert.Equal(t, 2, s.Height())
	require.NoError(t, s.Push("d"))
}

func TestStackTruncate(t *testing.T) {
	s := &CallStack{}
	for _, name := range []string{"a", "b", "c", "d"} {
		require.NoError(t, s.Push(name))
	}
	s.Truncate(2)
	assert.Equal(t, 2, s.Height())
	assert.Equal(t, "b", s.Top().Name)
	// truncating to a larger height is a no-op
	s.Truncate(10)
	assert.Equal(t, 2, s.Height())
	s.Reset()
	assert.Equal(t, 0, s.Height())
	assert.Nil(t, s.Top())
}

func TestStackDebugPrint(t *testing.T) {
	s := &CallStack{}
	require.NoError(t, s.Push("outer"))
	require.NoError(t, s.Push("inner"))
	var buf bytes.Buffer
	_, err := s.DebugPrint(&buf)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "2 frames")
	assert.Contains(t, out, "outer")
	assert.Contains(t, out, "inner")
}

func TestStackCopy(t *testing.T) {
	s := &CallStack{MaxHeight: 5}
	require.NoError(t, s.Push("a"))
	c := s.Copy()
	s.Pop()
	assert.Equal(t, 0, s.Height())
	assert.Equal(t, 1, c.Height())
	assert.Equal(t, "a", c.Top().Name)
}
