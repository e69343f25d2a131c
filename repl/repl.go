package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bmatsuo/minilisp/lisp"
	"github.com/bmatsuo/minilisp/parser"
	"github.com/chzyer/readline"
)

// RunRepl reads expressions from stdin and evaluates them in a fresh global
// environment until EOF or a call to exit.
func RunRepl(prompt string) {
	env, err := lisp.NewGlobalEnv(lisp.WithReader(parser.NewReader()))
	if err != nil {
		errln(err)
		return
	}
	RunEnvRepl(env, prompt)
}

// RunEnvRepl runs a repl evaluating in env.
func RunEnvRepl(env *lisp.LEnv, prompt string) {
	rl, err := readline.New(prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()
	contPrompt := strings.Repeat(" ", len(prompt)) // prompt had better be ascii...

	var buf []byte
	for {
		var line []byte
		line, err = rl.ReadSlice()
		if err != nil && err != readline.ErrInterrupt {
			break
		}
		if err == readline.ErrInterrupt {
			line = nil
			buf = nil
			rl.SetPrompt(prompt)
		}
		if len(buf) != 0 {
			buf = append(buf, '\n')
			line = append(buf, line...)
			buf = nil
			rl.SetPrompt(prompt)
		}
		if len(line) == 0 {
			continue
		}
		if balance(line) > 0 {
			// wait for closing parens
			buf = line
			rl.SetPrompt(contPrompt)
			continue
		}
		vals, _, err := parser.ParseLVal(line)
		if err != nil {
			errln(err)
			continue
		}
		if exit := evalPrint(env, vals); exit {
			return
		}
	}
	if err != io.EOF {
		errln(err)
		return
	}
	errln("done")
}

func evalPrint(env *lisp.LEnv, vals []*lisp.LVal) (exit bool) {
	for _, v := range vals {
		val, err := env.Eval(v)
		if err == lisp.ErrExit {
			return true
		}
		if err != nil {
			if lisp.IsRecursionError(err) {
				env.Runtime.Stack.DebugPrint(os.Stderr)
			}
			env.Runtime.Stack.Reset()
			errlnf("Error: %v", err)
			continue
		}
		if val.Type != lisp.LUndefined {
			fmt.Println(val)
		}
	}
	return false
}

// balance returns the depth of unclosed parens in line, ignoring parens
// inside strings and comments.  A negative return means extra close parens,
// which the parser will reject.
func balance(line []byte) int {
	depth := 0
	instr := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case instr:
			if c == '\\' {
				i++
			} else if c == '"' {
				instr = false
			}
		case c == '"':
			instr = true
		case c == ';':
			for i < len(line) && line[i] != '\n' {
				i++
			}
		case c == '(':
			depth++
		case c == ')':
			depth--
		}
	}
	return depth
}

func errlnf(format string, v ...interface{}) {
	if strings.HasSuffix(format, "\n") {
		errf(format, v...)
		return
	}
	errf(format+"\n", v...)
}

func errln(v ...interface{}) {
	fmt.Fprintln(os.Stderr, v...)
}

func errf(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format, v...)
}
