// Command synhl tokenizes, composes, and serves grammar-driven syntax
// highlighting from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "synhl",
		Short: "Grammar-driven syntax tokenizer",
		Long: `synhl tokenizes source text against a composable grammar, the
same matching model Prism.js popularized: ordered rules, greedy
overrides, and nested sub-grammars.`,
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "synhl: %v\n", err)
		os.Exit(1)
	}

	root.AddCommand(tokenizeCmd(cfg))
	root.AddCommand(composeCmd(cfg))
	root.AddCommand(replCmd(cfg))
	root.AddCommand(serveCmd(cfg))

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "synhl: %v\n", err)
		os.Exit(1)
	}
}
