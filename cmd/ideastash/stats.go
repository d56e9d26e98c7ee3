package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"ideastash/internal/storage"

	"github.com/spf13/cobra"
)

var statsScopeFlag string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show store statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		counts, err := app.stats.SidebarCounts()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "All\t%d\n", counts.All)
		fmt.Fprintf(w, "Today\t%d\n", counts.Today)
		fmt.Fprintf(w, "Uncategorized\t%d\n", counts.Uncategorized)
		fmt.Fprintf(w, "Untagged\t%d\n", counts.Untagged)
		fmt.Fprintf(w, "Bookmarks\t%d\n", counts.Bookmark)
		fmt.Fprintf(w, "Trash\t%d\n", counts.Trash)
		w.Flush()

		facets, err := app.stats.FacetStats("", storage.Scope(statsScopeFlag), nil)
		if err != nil {
			return err
		}
		if len(facets.Tags) > 0 {
			fmt.Fprintln(out, "\nTop tags:")
			for i, tc := range facets.Tags {
				if i >= 10 {
					break
				}
				fmt.Fprintf(out, "  %s (%d)\n", tc.Name, tc.Count)
			}
		}
		if len(facets.Stars) > 0 {
			stars := make([]int, 0, len(facets.Stars))
			for s := range facets.Stars {
				stars = append(stars, s)
			}
			sort.Sort(sort.Reverse(sort.IntSlice(stars)))
			fmt.Fprintln(out, "\nRatings:")
			for _, s := range stars {
				fmt.Fprintf(out, "  %d stars: %d\n", s, facets.Stars[s])
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsScopeFlag, "scope", "", "Scope the facet stats: all, trash, today, untagged, bookmark")
	rootCmd.AddCommand(statsCmd)
}
