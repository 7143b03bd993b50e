package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/gophlex/synhl"
	"github.com/gophlex/synhl/grammardef"
	"github.com/gophlex/synhl/render"
)

func replCmd(cfg *config) *cobra.Command {
	var grammarName, grammarsDir string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactively tokenize lines against a grammar",
		RunE: func(cmd *cobra.Command, args []string) error {
			if grammarsDir == "" {
				grammarsDir = cfg.GrammarsDir
			}
			if grammarName == "" {
				grammarName = cfg.Grammar
			}

			loader := grammardef.NewLoader()
			reg, err := loader.LoadDir(grammarsDir)
			if err != nil {
				return fmt.Errorf("load grammars: %w", err)
			}
			g, ok := reg.Get(grammarName)
			if !ok {
				return fmt.Errorf("unknown grammar %q", grammarName)
			}

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          fmt.Sprintf("synhl:%s> ", grammarName),
				HistoryFile:     historyFilePath(),
				HistoryLimit:    1000,
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
			})
			if err != nil {
				return fmt.Errorf("readline: %w", err)
			}
			defer rl.Close()

			pal := paletteFromConfig(cfg)

			for {
				line, err := rl.Readline()
				if err == readline.ErrInterrupt {
					continue
				}
				if err == io.EOF {
					return nil
				}
				if err != nil {
					return err
				}
				if line == "" {
					continue
				}

				frags := synhl.Tokenize(line, g)
				if err := render.ANSI(os.Stdout, frags, pal); err != nil {
					fmt.Fprintf(os.Stderr, "render: %v\n", err)
					continue
				}
				fmt.Println()
			}
		},
	}

	cmd.Flags().StringVar(&grammarName, "grammar", "", "Grammar name to tokenize against")
	cmd.Flags().StringVar(&grammarsDir, "grammars", "", "Directory of grammar definition files")
	return cmd
}

func historyFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "synhl_history")
	}
	return filepath.Join(home, ".synhl_history")
}
