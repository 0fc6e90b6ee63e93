package main

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-metabox"
	"github.com/goliatone/go-metabox/pkg/storage"
	"github.com/goliatone/go-metabox/pkg/tui"
)

func newEditCommand(ctx *commandContext) *cobra.Command {
	var itemID string
	var queue string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the fields of a queue for one item in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if itemID == "" {
				itemID = uuid.NewString()
			}
			return ctx.withManager(cmd, func(m *metabox.Manager, store storage.Store, _ *slog.Logger) error {
				fields, ok := m.Fields(queue)
				if !ok {
					return fmt.Errorf("unknown queue %q", queue)
				}
				collector := tui.New(store, tui.WithPromptDriver(tui.NewSurveyDriver(cmd.OutOrStdout())))
				sub, err := collector.Collect(cmd.Context(), itemID, fields)
				if err != nil {
					return err
				}
				result, err := m.SaveQueue(cmd.Context(), itemID, queue, sub)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %d field(s) for item %s\n", len(result.Saved), itemID)
				for _, fe := range result.Errors {
					fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %v\n", fe.Name, fe.Err)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&itemID, "item", "", "Content item id (a new uuid when empty)")
	cmd.Flags().StringVar(&queue, "queue", "", "Queue to edit")
	_ = cmd.MarkFlagRequired("queue")
	return cmd
}
