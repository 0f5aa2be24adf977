// Command sentencematch is the CLI front-end for the sentence matching
// library: load an intent catalogue, recognize utterances against it,
// inspect a single template's parse tree, or try utterances live in an
// interactive REPL.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sentencematch/internal/config"
)

func main() {
	defaults := config.Load()

	root := &cobra.Command{
		Use:   "sentencematch",
		Short: "Match natural-language utterances against a sentence-template grammar",
	}

	root.AddCommand(newRecognizeCmd(defaults))
	root.AddCommand(newParseCmd())
	root.AddCommand(newReplCmd(defaults))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
