package main

import (
	"github.com/spf13/cobra"
)

func newCollectionCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collection",
		Short: "Manage palettes saved locally.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "save <id>",
		Short: "Fetch a palette and save it to the local collection.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := c.app.SavePalette(cmd.Context(), id); err != nil {
				return err
			}
			store, err := c.app.Collection()
			if err != nil {
				return err
			}
			entries, err := store.List()
			if err != nil {
				return err
			}
			return c.out.Collection(entries)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved palettes.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := c.app.Collection()
			if err != nil {
				return err
			}
			entries, err := store.List()
			if err != nil {
				return err
			}
			return c.out.Collection(entries)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a palette from the local collection.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			store, err := c.app.Collection()
			if err != nil {
				return err
			}
			removed, err := store.Remove(id)
			if err != nil {
				return err
			}
			if !removed {
				printf(cmd.ErrOrStderr(), "palette %d was not in the collection\n", id)
			}
			return nil
		},
	})

	return cmd
}
