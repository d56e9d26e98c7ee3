package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"ideastash/internal/storage"

	"github.com/spf13/cobra"
)

var (
	categoryParentFlag int64
	categoryColorFlag  string

	categoryMoveParentFlag   string
	categoryMovePositionFlag int
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"cat"},
	Short:   "Manage the category tree",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the category tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		roots, err := app.cats.Tree()
		if err != nil {
			return err
		}
		if len(roots) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No categories")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCOLOR\tPRESET TAGS")
		var walk func(nodes []*storage.Category, depth int)
		walk = func(nodes []*storage.Category, depth int) {
			for _, c := range nodes {
				fmt.Fprintf(w, "%d\t%s%s\t%s\t%s\n",
					c.ID, strings.Repeat("  ", depth), c.Name, c.Color, c.PresetTags)
				walk(c.Children, depth+1)
			}
		}
		walk(roots, 0)
		return w.Flush()
	},
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		var parentID *int64
		if categoryParentFlag != 0 {
			parentID = &categoryParentFlag
		}

		cat, err := app.cats.Create(args[0], parentID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created category %d (%s)\n", cat.ID, cat.Color)
		return nil
	},
}

var categoryRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		return app.cats.Rename(id, args[1])
	},
}

var categoryRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a category and its whole subtree",
	Long: `Deletes the category and every descendant. Ideas filed anywhere in the
subtree become uncategorized; no idea is deleted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		return app.cats.Delete(id)
	},
}

var categoryColorCmd = &cobra.Command{
	Use:   "color <id>",
	Short: "Recolor a category subtree (random when --color is omitted)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		color := categoryColorFlag
		if color == "" {
			color, err = app.cats.SetRandomColor(id)
		} else {
			err = app.cats.SetColor(id, color)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Recolored to %s\n", color)
		return nil
	},
}

var categoryMoveCmd = &cobra.Command{
	Use:   "move <id>",
	Short: "Reposition a category (--position within --parent, 'none' for root)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		var parentID *int64
		if categoryMoveParentFlag != "" && categoryMoveParentFlag != "none" {
			pid, err := parseID(categoryMoveParentFlag)
			if err != nil {
				return fmt.Errorf("invalid --parent %q", categoryMoveParentFlag)
			}
			parentID = &pid
		}

		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if _, err := app.cats.Get(id); err != nil {
			return err
		}
		return app.cats.SaveOrder([]storage.OrderUpdate{
			{ID: id, SortOrder: categoryMovePositionFlag, ParentID: parentID},
		})
	},
}

var categoryPresetCmd = &cobra.Command{
	Use:   "preset-tags <id> [tags]",
	Short: "Show or set a category's preset tags (comma-separated)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if len(args) == 1 {
			tags, err := app.cats.PresetTags(id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tags)
			return nil
		}
		return app.cats.SetPresetTags(id, args[1])
	},
}

func init() {
	categoryAddCmd.Flags().Int64Var(&categoryParentFlag, "parent", 0, "Parent category id")
	categoryColorCmd.Flags().StringVar(&categoryColorFlag, "color", "", "Color (#RRGGBB)")
	categoryMoveCmd.Flags().StringVar(&categoryMoveParentFlag, "parent", "", "New parent id, or 'none' for root")
	categoryMoveCmd.Flags().IntVar(&categoryMovePositionFlag, "position", 1, "Sort position among siblings")

	categoryCmd.AddCommand(categoryListCmd, categoryAddCmd, categoryRenameCmd,
		categoryRmCmd, categoryColorCmd, categoryMoveCmd, categoryPresetCmd)
	rootCmd.AddCommand(categoryCmd)
}
