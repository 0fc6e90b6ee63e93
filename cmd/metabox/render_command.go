package main

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-metabox"
	"github.com/goliatone/go-metabox/pkg/storage"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var itemID string
	var queue string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the form markup of a queue for one item",
		RunE: func(cmd *cobra.Command, args []string) error {
			if itemID == "" {
				itemID = uuid.NewString()
			}
			return ctx.withManager(cmd, func(m *metabox.Manager, _ storage.Store, logger *slog.Logger) error {
				if !m.QueueExists(queue) {
					return fmt.Errorf("unknown queue %q", queue)
				}
				result, err := m.RenderQueue(cmd.Context(), cmd.OutOrStdout(), itemID, queue)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout())
				if len(result.Errors) > 0 {
					logger.Warn("metabox: fields skipped", "item", itemID, "queue", queue, "fields", result.Errors.Names())
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&itemID, "item", "", "Content item id (a new uuid when empty)")
	cmd.Flags().StringVar(&queue, "queue", "", "Queue to render")
	_ = cmd.MarkFlagRequired("queue")
	return cmd
}
