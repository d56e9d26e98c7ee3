package main

import (
	"context"
	"fmt"
	"os"

	"ideastash/internal/clipboard"
	"ideastash/internal/storage"

	"github.com/spf13/cobra"
)

var (
	captureTypeFlag     string
	captureCategoryFlag int64
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture stdin as a new idea",
	Long: `Reads stdin and stores it as an idea, the same path a clipboard watcher
uses. Duplicate content (by hash) is silently dropped. Pipe text in, or pass
--type image for binary payloads.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		itemType := storage.ItemType(captureTypeFlag)
		if !storage.ValidItemType(itemType) {
			return fmt.Errorf("invalid --type %q (want text, image, or file)", captureTypeFlag)
		}

		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		cfg := clipboard.Config{
			DedupeWindow: app.cfg.Capture.DedupeWindow,
			DefaultColor: app.cfg.Capture.DefaultColor,
		}
		if captureCategoryFlag != 0 {
			cfg.CategoryID = &captureCategoryFlag
		} else if app.cfg.Capture.CategoryID != 0 {
			id := app.cfg.Capture.CategoryID
			cfg.CategoryID = &id
		}

		stored := 0
		w, err := clipboard.NewWatcher(app.ideas, cfg, app.logger, func(idea *storage.Idea) {
			stored++
			fmt.Fprintf(cmd.OutOrStdout(), "Stored idea %d: %s\n", idea.ID, idea.Title)
		})
		if err != nil {
			return err
		}

		if err := w.Run(context.Background(), clipboard.FromReader(os.Stdin, itemType)); err != nil {
			return err
		}
		if stored == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing stored (empty or duplicate input)")
		}
		return nil
	},
}

func init() {
	captureCmd.Flags().StringVar(&captureTypeFlag, "type", "text", "Capture type: text, image, or file")
	captureCmd.Flags().Int64Var(&captureCategoryFlag, "category", 0, "Category id to file the capture into")
	rootCmd.AddCommand(captureCmd)
}
