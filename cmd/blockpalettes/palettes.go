package main

import (
	"github.com/spf13/cobra"

	"github.com/samvad-hq/blockpalettes/pkg/blockpalettes"
)

func newPalettesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "palettes",
		Short: "List, fetch and scrape palettes.",
	}

	var (
		blocks []string
		sort   string
		page   uint32
		limit  uint32
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List palettes containing every --block given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			order, err := blockpalettes.ParseSortOrder(sort)
			if err != nil {
				return err
			}
			res, err := c.app.Client.GetPalettes(cmd.Context(), blockpalettes.PaletteQuery{
				Blocks: blocks,
				Sort:   order,
				Page:   page,
				Limit:  limit,
			})
			if err != nil {
				return err
			}
			return c.out.PaletteList(res)
		},
	}
	list.Flags().StringSliceVarP(&blocks, "block", "b", nil, "block the palette must contain (repeatable)")
	list.Flags().StringVar(&sort, "sort", string(blockpalettes.SortRecent), "sort order: recent, popular, oldest, trending")
	list.Flags().Uint32Var(&page, "page", 1, "page number, starting at 1")
	list.Flags().Uint32Var(&limit, "limit", 20, "palettes per page")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one palette.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			details, err := c.app.Client.GetPalette(cmd.Context(), id)
			if err != nil {
				return err
			}
			return c.out.PaletteDetails(details)
		},
	}

	var scrapeSimilar bool
	similar := &cobra.Command{
		Use:   "similar <id>",
		Short: "List palettes similar to a palette.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if scrapeSimilar {
				ids, err := c.app.Client.SimilarPaletteIDs(cmd.Context(), id)
				if err != nil {
					return err
				}
				return c.out.IDs(ids)
			}
			palettes, err := c.app.Client.SimilarPalettes(cmd.Context(), id)
			if err != nil {
				return err
			}
			return c.out.Palettes(palettes)
		},
	}
	similar.Flags().BoolVar(&scrapeSimilar, "scrape", false, "read the similar section of the palette's web page instead of the API")

	scrape := &cobra.Command{
		Use:   "scrape <id>",
		Short: "Scrape a palette's web page for its blocks and similar palettes.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			page, err := c.app.Client.ScrapePalettePage(cmd.Context(), id)
			if err != nil {
				return err
			}
			return c.out.PalettePage(page)
		},
	}

	cmd.AddCommand(list, get, similar, scrape)
	return cmd
}
