package lisptest

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/bmatsuo/minilisp/lisp"
	"github.com/bmatsuo/minilisp/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadEnv(t *testing.T) *lisp.LEnv {
	t.Helper()
	env, err := lisp.NewGlobalEnv(lisp.WithReader(parser.NewReader()))
	require.NoError(t, err)
	return env
}

func TestLoadString(t *testing.T) {
	env := loadEnv(t)

	v, err := env.LoadString("test", "(+ 2 3)")
	require.NoError(t, err)
	assert.Equal(t, "5", v.String())

	// the value of the last form is returned
	v, err = env.LoadString("test", "(define (double x) (* x 2))\n(double 3)")
	require.NoError(t, err)
	assert.Equal(t, "6", v.String())

	// definitions persist in the environment
	v, err = env.LoadString("test", "(double 21)")
	require.NoError(t, err)
	assert.Equal(t, "42", v.String())

	_, err = env.LoadString("test", "(+ 1")
	require.Error(t, err)
	assert.Equal(t, lisp.ErrSyntax, lisp.ConditionOf(err))
}

func TestLoadStopsOnError(t *testing.T) {
	env := loadEnv(t)

	_, err := env.LoadString("test", "(define x 1)\nmissing\n(define y 2)")
	require.Error(t, err)
	assert.Equal(t, lisp.ErrUnbound, lisp.ConditionOf(err))

	// forms before the failure took effect; forms after it did not
	v, err := env.LoadString("test", "x")
	require.NoError(t, err)
	assert.Equal(t, "1", v.String())
	_, err = env.LoadString("test", "y")
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	env := loadEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.lisp")
	src := "(define (triple x) (* x 3))\n(triple 5)\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0666))

	v, err := env.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "15", v.String())

	// the .lisp suffix is optional
	v, err = env.LoadFile(filepath.Join(dir, "lib"))
	require.NoError(t, err)
	assert.Equal(t, "15", v.String())

	_, err = env.LoadFile(filepath.Join(dir, "nope"))
	require.Error(t, err)
}

func TestLoadBuiltin(t *testing.T) {
	env := loadEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.lisp")
	require.NoError(t, os.WriteFile(path, []byte("(define seven 7)\n"), 0666))

	v, err := env.LoadString("test", fmt.Sprintf("(load %q)", path))
	require.NoError(t, err)
	assert.Equal(t, "undefined", v.String())

	v, err = env.LoadString("test", "seven")
	require.NoError(t, err)
	assert.Equal(t, "7", v.String())
}
