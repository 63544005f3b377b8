package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/soaringjerry/evoa/internal/models"
	"github.com/soaringjerry/evoa/internal/store"
)

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "catalog", Short: "Browse the pitch catalog"}
	cmd.AddCommand(newCatalogListCmd(a), newCatalogShowCmd(a), newCatalogCategoriesCmd(a))
	return cmd
}

func newCatalogListCmd(a *app) *cobra.Command {
	var query, stage, category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pitches, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := store.Filter{Query: query, Category: category}
			if stage != "" {
				st, err := models.ParseStage(stage)
				if err != nil {
					return err
				}
				f.Stage = st
			}
			s, err := a.openStore()
			if err != nil {
				return err
			}
			list, err := s.GetCatalog()
			if err != nil {
				return err
			}
			printPitches(cmd.OutOrStdout(), store.FilterPitches(list, f))
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "search startup, founder, title, stage and category")
	cmd.Flags().StringVar(&stage, "stage", "", "exact stage")
	cmd.Flags().StringVar(&category, "category", "", "exact category")
	return cmd
}

func newCatalogShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <pitchId>",
		Short: "Print one pitch with comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			p, err := s.GetPitch(args[0])
			if err != nil {
				return err
			}
			comments, err := s.GetComments(p.ID)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{
				"pitch":       p,
				"playbackUrl": p.PlaybackURL(),
				"comments":    comments,
			})
		},
	}
}

func newCatalogCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories with their pitch counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			list, err := s.GetCatalog()
			if err != nil {
				return err
			}
			groups := store.GroupByCategory(list)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, c := range store.Categories(list) {
				fmt.Fprintf(tw, "%s\t%d\n", c, len(groups[c]))
			}
			return tw.Flush()
		},
	}
}

func printPitches(w io.Writer, list []models.Pitch) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTUP\tFOUNDER\tSTAGE\tCATEGORY\tLIKES")
	for _, p := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n", p.ID, p.Startup, p.Founder, p.Stage, p.Category, p.Likes)
	}
	_ = tw.Flush()
}
