package cmd

import (
	"fmt"
	"os"

	"github.com/bmatsuo/minilisp/lisp"
	"github.com/bmatsuo/minilisp/parser"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run lisp code",
	Long:  `Run lisp code supplied via the command line or a file.`,
	Run: func(cmd *cobra.Command, args []string) {
		env, err := lisp.NewGlobalEnv(lisp.WithReader(parser.NewReader()))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if runExpression {
			for _, src := range args {
				if err := runSource(env, "command-line", src); err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(1)
				}
			}
			return
		}
		for _, path := range args {
			b, err := os.ReadFile(path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if err := runSource(env, path, string(b)); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}
	},
}

func runSource(env *lisp.LEnv, name, src string) error {
	exprs, _, err := parser.ParseLVal([]byte(src))
	if err != nil {
		return lisp.Errorf(lisp.ErrSyntax, "%s: parse error", name)
	}
	for _, expr := range exprs {
		v, err := env.Eval(expr)
		if err == lisp.ErrExit {
			os.Exit(0)
		}
		if err != nil {
			return err
		}
		if runPrint && v.Type != lisp.LUndefined {
			fmt.Println(v)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
}
