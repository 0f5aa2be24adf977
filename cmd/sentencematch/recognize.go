package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sentencematch/internal/catalogue"
	"sentencematch/internal/config"
	"sentencematch/sentence"
)

func newRecognizeCmd(defaults config.Defaults) *cobra.Command {
	var intentsPath string

	cmd := &cobra.Command{
		Use:   "recognize [utterance]",
		Short: "Recognize an utterance against an intent catalogue, printing every accepted match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if intentsPath == "" {
				return fmt.Errorf("no --intents given and SENTENCEMATCH_INTENTS is unset")
			}

			intents, err := catalogue.Load(intentsPath)
			if err != nil {
				return err
			}

			return runRecognize(cmd, intents, args[0])
		},
	}

	cmd.Flags().StringVar(&intentsPath, "intents", defaults.IntentsPath, "path to the YAML intent catalogue")
	return cmd
}

func runRecognize(cmd *cobra.Command, intents *sentence.Intents, utterance string) error {
	out := cmd.OutOrStdout()
	matched := false

	for result, err := range sentence.RecognizeAll(utterance, intents) {
		if err != nil {
			return err
		}
		matched = true
		fmt.Fprintf(out, "%s (response=%s)\n", result.Intent.Name, result.Response)
		for _, e := range result.EntitiesList {
			fmt.Fprintf(out, "  %s = %v\n", e.Name, e.Value)
		}
	}

	if !matched {
		fmt.Fprintln(out, "no match")
	}
	return nil
}
