package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func newBlocksCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "Search and list blocks.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "search <query>",
		Short: "Find blocks whose name contains the query.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blocks, err := c.app.Client.SearchBlocks(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return c.out.Blocks(blocks)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "popular",
		Short: "List the most used blocks.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			blocks, err := c.app.Client.PopularBlocks(cmd.Context())
			if err != nil {
				return err
			}
			return c.out.PopularBlocks(blocks)
		},
	})

	return cmd
}
