package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/SameerRanjanJha/quick-eda-app/internal/history"
	"github.com/spf13/cobra"
)

var (
	histClear bool
	histLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously generated reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		hpath, err := history.DefaultPath()
		if err != nil {
			return err
		}
		store := history.NewStore(hpath, cfg.HistoryLimit)

		if histClear {
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Println("✓ History cleared")
			return nil
		}

		entries, err := store.Load()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("(no reports yet)")
			return nil
		}
		if histLimit > 0 && len(entries) > histLimit {
			entries = entries[:histLimit]
		}
		for _, e := range entries {
			fmt.Printf("- %s  %s (%d rows, %d cols)  %s\n",
				e.GeneratedAt.Format("2006-01-02 15:04"), filepath.Base(e.Source), e.Rows, e.Cols, e.Output)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolVar(&histClear, "clear", false, "delete the recorded history")
	historyCmd.Flags().IntVarP(&histLimit, "limit", "n", 0, "show at most n entries")
}
