package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"ideastash/internal/storage"

	"github.com/spf13/cobra"
)

var (
	listScopeFlag    string
	listSearchFlag   string
	listTagFlag      string
	listCategoryFlag string
	listPageFlag     int
	listPageSizeFlag int

	addContentFlag  string
	addCategoryFlag int64
	addTagsFlag     []string
	addColorFlag    string

	rmPermanentFlag bool

	moveCategoryFlag string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List ideas",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		f := storage.Filter{
			Search:    listSearchFlag,
			Scope:     storage.Scope(listScopeFlag),
			TagFilter: listTagFlag,
		}
		if f.Scope == "" {
			f.Scope = storage.ScopeAll
		}
		if listCategoryFlag != "" {
			f.Scope = storage.ScopeCategory
			if listCategoryFlag != "none" {
				id, err := strconv.ParseInt(listCategoryFlag, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid --category %q", listCategoryFlag)
				}
				f.CategoryID = &id
			}
		}

		ideas, err := app.ideas.List(f, listPageFlag, listPageSizeFlag)
		if err != nil {
			return err
		}
		total, err := app.ideas.Count(f)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tTYPE\tSTARS\tFLAGS\tUPDATED")
		for _, idea := range ideas {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\n",
				idea.ID, truncate(idea.Title, 40), idea.ItemType, idea.Rating,
				flagString(idea), idea.UpdatedAt.Local().Format("2006-01-02 15:04"))
		}
		w.Flush()
		fmt.Fprintf(cmd.OutOrStdout(), "%d of %d ideas\n", len(ideas), total)
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new idea",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		p := storage.NewIdea{Title: args[0], Color: addColorFlag}
		if addContentFlag != "" {
			p.Content = &addContentFlag
		}
		if addCategoryFlag != 0 {
			p.CategoryID = &addCategoryFlag
		}

		idea, err := app.ideas.Create(p, addTagsFlag)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created idea %d\n", idea.ID)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an idea in full",
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

		idea, err := app.ideas.Get(id, false)
		if err != nil {
			return err
		}
		tags, err := app.ideas.Tags(id)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID:       %d\n", idea.ID)
		fmt.Fprintf(out, "Title:    %s\n", idea.Title)
		fmt.Fprintf(out, "Type:     %s\n", idea.ItemType)
		fmt.Fprintf(out, "Color:    %s\n", idea.Color)
		fmt.Fprintf(out, "Stars:    %d\n", idea.Rating)
		fmt.Fprintf(out, "Flags:    %s\n", flagString(idea))
		if idea.CategoryID != nil {
			fmt.Fprintf(out, "Category: %d\n", *idea.CategoryID)
		}
		if len(tags) > 0 {
			fmt.Fprintf(out, "Tags:     %s\n", strings.Join(tags, ", "))
		}
		fmt.Fprintf(out, "Created:  %s\n", idea.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Updated:  %s\n", idea.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
		if idea.Content != nil && *idea.Content != "" {
			fmt.Fprintf(out, "\n%s\n", *idea.Content)
		}
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Move ideas to the trash (or delete permanently)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}

		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if rmPermanentFlag {
			err = app.ideas.DeletePermanent(ids)
		} else {
			err = app.ideas.SoftDelete(ids)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d idea(s)\n", len(ids))
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <id>...",
	Short: "Restore ideas from the trash",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}

		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.ideas.Restore(ids); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %d idea(s)\n", len(ids))
		return nil
	},
}

var lockCmd = &cobra.Command{
	Use:   "lock <id>...",
	Short: "Lock ideas against edits and deletion",
	Args:  cobra.MinimumNArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setLock(cmd, args, true) },
}

var unlockCmd = &cobra.Command{
	Use:   "unlock <id>...",
	Short: "Unlock ideas",
	Args:  cobra.MinimumNArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setLock(cmd, args, false) },
}

var rateCmd = &cobra.Command{
	Use:   "rate <id> <stars>",
	Short: "Set an idea's star rating (0-5)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		stars, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid star count %q", args[1])
		}

		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		return app.ideas.SetRating(id, stars)
	},
}

var favCmd = &cobra.Command{
	Use:   "fav <id>",
	Short: "Toggle an idea's bookmark flag",
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

		return app.ideas.ToggleFavorite(id)
	},
}

var pinCmd = &cobra.Command{
	Use:   "pin <id>",
	Short: "Toggle an idea's pin flag",
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

		return app.ideas.TogglePinned(id)
	},
}

var moveCmd = &cobra.Command{
	Use:   "move <id>...",
	Short: "Move ideas into a category (--category none for uncategorized)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}

		var categoryID *int64
		if moveCategoryFlag != "" && moveCategoryFlag != "none" {
			id, err := strconv.ParseInt(moveCategoryFlag, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid --category %q", moveCategoryFlag)
			}
			categoryID = &id
		}

		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		return app.ideas.MoveToCategory(ids, categoryID)
	},
}

var emptyTrashCmd = &cobra.Command{
	Use:   "empty-trash",
	Short: "Permanently delete everything in the trash",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		n, err := app.ideas.EmptyTrash()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d idea(s)\n", n)
		return nil
	},
}

func setLock(cmd *cobra.Command, args []string, locked bool) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	return app.ideas.SetLocked(ids, locked)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid idea id %q", arg)
	}
	return id, nil
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, len(args))
	for i, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

func flagString(idea *storage.Idea) string {
	var flags []string
	if idea.IsPinned {
		flags = append(flags, "pinned")
	}
	if idea.IsFavorite {
		flags = append(flags, "fav")
	}
	if idea.IsLocked {
		flags = append(flags, "locked")
	}
	if idea.IsDeleted {
		flags = append(flags, "trash")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

func init() {
	listCmd.Flags().StringVar(&listScopeFlag, "scope", "", "Scope: all, trash, today, untagged, bookmark")
	listCmd.Flags().StringVar(&listSearchFlag, "search", "", "Search title, content, and tag names")
	listCmd.Flags().StringVar(&listTagFlag, "tag", "", "Only ideas carrying this tag")
	listCmd.Flags().StringVar(&listCategoryFlag, "category", "", "Category id, or 'none' for uncategorized")
	listCmd.Flags().IntVar(&listPageFlag, "page", 0, "Page number (1-based)")
	listCmd.Flags().IntVar(&listPageSizeFlag, "page-size", 0, "Ideas per page")

	addCmd.Flags().StringVar(&addContentFlag, "content", "", "Idea body text")
	addCmd.Flags().Int64Var(&addCategoryFlag, "category", 0, "Category id")
	addCmd.Flags().StringSliceVar(&addTagsFlag, "tags", nil, "Tags to attach")
	addCmd.Flags().StringVar(&addColorFlag, "color", "", "Card color (#RRGGBB)")

	rmCmd.Flags().BoolVar(&rmPermanentFlag, "permanent", false, "Delete permanently instead of trashing")

	moveCmd.Flags().StringVar(&moveCategoryFlag, "category", "", "Target category id, or 'none'")
	moveCmd.MarkFlagRequired("category")

	rootCmd.AddCommand(listCmd, addCmd, showCmd, rmCmd, restoreCmd,
		lockCmd, unlockCmd, rateCmd, favCmd, pinCmd, moveCmd, emptyTrashCmd)
}
