package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-metabox/pkg/field"
	"github.com/goliatone/go-metabox/pkg/registry"
)

// registryTarget registers into a bare registry so check never opens a store.
type registryTarget struct {
	reg *registry.Registry
}

func (t registryTarget) RegisterField(f field.Field, queue string) error {
	return t.reg.Register(f, queue)
}

func (t registryTarget) RegisterOption(f field.Field, queue string) error {
	return t.reg.RegisterOption(f, queue)
}

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the definitions file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := ctx.loadDefinitions()
			if err != nil {
				return err
			}
			reg := registry.New()
			if err := doc.Apply(registryTarget{reg: reg}, builtinCatalog()); err != nil {
				return err
			}
			for _, name := range reg.Names() {
				fields, _ := reg.Queue(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d field(s)\n", name, len(fields))
			}
			return nil
		},
	}
}
