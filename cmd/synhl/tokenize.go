package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gophlex/synhl"
	"github.com/gophlex/synhl/grammardef"
	"github.com/gophlex/synhl/render"
)

func tokenizeCmd(cfg *config) *cobra.Command {
	var grammarName, grammarsDir string
	var asJSON, asANSI bool

	cmd := &cobra.Command{
		Use:   "tokenize <file>",
		Short: "Tokenize a file against a grammar",
		Args:  cobra.ExactArgs(1),
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

			source, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			frags := synhl.Tokenize(string(source), g)

			if asANSI {
				return render.ANSI(os.Stdout, frags, paletteFromConfig(cfg))
			}

			_ = asJSON // JSON is the default output; the flag exists for symmetry with --ansi
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(fragmentsToJSON(frags))
		},
	}

	cmd.Flags().StringVar(&grammarName, "grammar", "", "Grammar name to tokenize against")
	cmd.Flags().StringVar(&grammarsDir, "grammars", "", "Directory of grammar definition files")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Dump the raw token tree as JSON (default)")
	cmd.Flags().BoolVar(&asANSI, "ansi", false, "Render with ANSI escapes instead of JSON")

	return cmd
}

// jsonFragment is the JSON-serializable mirror of synhl.Fragment;
// Fragment and TokenContent keep their fields unexported, so the CLI's
// JSON surface is built from their exported accessors rather than via
// struct tags.
type jsonFragment struct {
	Raw   string          `json:"raw,omitempty"`
	Token *jsonToken      `json:"token,omitempty"`
}

type jsonToken struct {
	Type    string          `json:"type"`
	Alias   []string        `json:"alias,omitempty"`
	Length  int             `json:"length"`
	Text    string          `json:"text,omitempty"`
	Nested  []jsonFragment  `json:"nested,omitempty"`
}

func fragmentsToJSON(frags []synhl.Fragment) []jsonFragment {
	out := make([]jsonFragment, 0, len(frags))
	for _, f := range frags {
		if !f.IsToken() {
			s, _ := f.Raw()
			out = append(out, jsonFragment{Raw: s})
			continue
		}
		tok := f.Token()
		jt := &jsonToken{Type: tok.Type, Alias: tok.Alias, Length: tok.Length}
		if nested, ok := tok.Content.Nested(); ok {
			jt.Nested = fragmentsToJSON(nested)
		} else {
			jt.Text = tok.Content.Text()
		}
		out = append(out, jsonFragment{Token: jt})
	}
	return out
}
