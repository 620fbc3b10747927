package cmd

import (
	"fmt"

	"github.com/SameerRanjanJha/quick-eda-app/internal/dataset"
	"github.com/spf13/cobra"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported input formats",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Supported input formats:")
		for _, f := range dataset.Formats() {
			fmt.Printf("  %-6s %s\n", f.Extension, f.Description)
			if f.Notes != "" {
				fmt.Printf("         %s\n", f.Notes)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
