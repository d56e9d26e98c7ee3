package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage idea tags",
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		names, err := app.ideas.AllTags()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var tagAddCmd = &cobra.Command{
	Use:   "add <id> <tag>...",
	Short: "Attach tags to an idea",
	Args:  cobra.MinimumNArgs(2),
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

		if _, err := app.ideas.Get(id, false); err != nil {
			return err
		}
		return app.ideas.AddTags([]int64{id}, args[1:])
	},
}

var tagRmCmd = &cobra.Command{
	Use:   "rm <id> <tag>",
	Short: "Detach a tag from an idea",
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

		return app.ideas.RemoveTag([]int64{id}, strings.TrimSpace(args[1]))
	},
}

func init() {
	tagCmd.AddCommand(tagListCmd, tagAddCmd, tagRmCmd)
	rootCmd.AddCommand(tagCmd)
}
