package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/osse101/QuizDuel_Go/internal/config"
	"github.com/osse101/QuizDuel_Go/internal/event"
)

// newDeadLettersCmd lists events the publisher gave up on
func newDeadLettersCmd() *cobra.Command {
	var (
		path      string
		eventType string
	)

	cmd := &cobra.Command{
		Use:   "dead-letters",
		Short: "List duel events that could not be delivered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			entries, err := event.ReadDeadLetters(f)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tTYPE\tATTEMPTS\tLAST ERROR")
			shown := 0
			for _, e := range entries {
				if eventType != "" && string(e.Event.Type) != eventType {
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", e.Timestamp.Format(time.RFC3339), e.Event.Type, e.Attempts, e.LastError)
				shown++
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d entries\n", shown, len(entries))
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "file", config.DefaultDeadLetterPath, "dead-letter file")
	cmd.Flags().StringVar(&eventType, "type", "", "only show this event type")
	return cmd
}
