package lisp

import "io"

// Config is a function that configures a global environment or its runtime.
type Config func(env *LEnv) error

// WithReader returns a Config that makes the environment use r to parse
// source streams.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(env *LEnv) error {
		env.Runtime.Reader = r
		return nil
	}
}

// WithStderr returns a Config that makes the environment write diagnostic
// output to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(env *LEnv) error {
		env.Runtime.Stderr = w
		return nil
	}
}

// WithMaximumStackHeight returns a Config that prevents the environment from
// letting non-tail recursion exceed n frames.  Exceeding the limit fails
// with the distinct recursion-exhausted condition instead of growing the
// host stack without bound.
func WithMaximumStackHeight(n int) Config {
	return func(env *LEnv) error {
		env.Runtime.Stack.MaxHeight = n
		return nil
	}
}
