package cmd

import (
	"fmt"
	"os"

	"github.com/bmatsuo/minilisp/repl"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "minilisp",
	Short: "A small scheme dialect",
	Long: `minilisp is an interpreter for a small dialect of scheme.  Without a
subcommand an interactive session is started.`,
	Run: func(cmd *cobra.Command, args []string) {
		repl.RunRepl("> ")
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
