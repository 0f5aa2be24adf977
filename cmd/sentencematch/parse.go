package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sentencematch/internal/exprtree"
	"sentencematch/sentence"
)

func newParseCmd() *cobra.Command {
	var showKind bool

	cmd := &cobra.Command{
		Use:   "parse [template]",
		Short: "Parse a single sentence template and print its expression tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sentence.ParseSentence(args[0])
			if err != nil {
				return err
			}

			var opts []exprtree.FormatOption
			if showKind {
				opts = append(opts, exprtree.DisplayGroupKind)
			}

			fmt.Fprintln(cmd.OutOrStdout(), exprtree.Format(s.Expression, opts...))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showKind, "kind", false, "label group/alternative nodes explicitly instead of using [ and (|")
	return cmd
}
