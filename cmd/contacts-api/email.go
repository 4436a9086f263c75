package main

import (
	"github.com/deppfellow/contacts-api/internal/lib/email"
	"github.com/spf13/cobra"
)

func NewEmailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "email",
		Short: "Work with email templates",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "preview <template>",
		Short: "Render a template with sample data to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			html, err := email.Preview(email.Template(args[0]))
			if err != nil {
				return err
			}
			cmd.Print(html)
			return nil
		},
	})

	return cmd
}
