package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/SameerRanjanJha/quick-eda-app/internal/analysis"
	"github.com/SameerRanjanJha/quick-eda-app/internal/dataset"
	"github.com/spf13/cobra"
)

var (
	insHead       int
	insDelimiter  string
	insSheetName  string
	insSheetIndex int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Print shape, column types, and sample rows without writing a report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		loadOpt := dataset.Options{SheetName: insSheetName, SheetIndex: insSheetIndex}
		if insDelimiter != "" {
			switch insDelimiter {
			case ",":
				loadOpt.Delimiter = ','
			case "\t", "tab":
				loadOpt.Delimiter = '\t'
			case ";":
				loadOpt.Delimiter = ';'
			case "|":
				loadOpt.Delimiter = '|'
			default:
				return fmt.Errorf("unsupported --delimiter: %s (use ','|';'|'|'|'tab')", insDelimiter)
			}
		}

		ctx := logger.WithContext(cmd.Context())
		table, err := dataset.LoadFile(ctx, path, loadOpt)
		if err != nil {
			return err
		}

		opt := analysis.DefaultOptions()
		opt.Correlations = false
		prof, err := analysis.Analyze(ctx, table, opt, nil)
		if err != nil {
			return err
		}

		fmt.Printf("File: %s", filepath.Base(path))
		if table.Sheet != "" {
			fmt.Printf(" (sheet: %s)", table.Sheet)
		}
		fmt.Println()
		fmt.Printf("Rows: %d   Columns: %d   Memory: %.2f MB   Duplicate rows: %d\n",
			prof.Rows, prof.Cols, prof.MemoryMB(), prof.DuplicateRows)
		fmt.Println()
		fmt.Printf("%-28s %-12s %14s %10s\n", "COLUMN", "TYPE", "MISSING", "UNIQUE")
		for _, c := range prof.Columns {
			missing := fmt.Sprintf("%d (%.1f%%)", c.Missing, c.MissingPct)
			fmt.Printf("%-28s %-12s %14s %10d\n", clip(c.Name, 28), c.Kind, missing, c.Unique)
		}

		n := insHead
		if n <= 0 {
			n = cfg.SampleRows
		}
		head := table.Head(n)
		if len(head) > 0 {
			fmt.Println()
			fmt.Printf("First %d row(s):\n", len(head))
			cells := make([]string, 0, len(table.Headers))
			for _, h := range table.Headers {
				cells = append(cells, clip(h, 20))
			}
			fmt.Println("  " + strings.Join(cells, " | "))
			for _, row := range head {
				cells = cells[:0]
				for _, v := range row {
					cells = append(cells, clip(v, 20))
				}
				fmt.Println("  " + strings.Join(cells, " | "))
			}
		}

		for _, w := range prof.Warnings {
			fmt.Printf("⚠ %s\n", w)
		}
		return nil
	},
}

func clip(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().IntVarP(&insHead, "head", "n", 0, "number of sample rows to print")
	inspectCmd.Flags().StringVar(&insDelimiter, "delimiter", "", "field delimiter: ',' | ';' | '|' | 'tab' (auto-detect if omitted)")
	inspectCmd.Flags().StringVar(&insSheetName, "sheet-name", "", "XLSX: sheet name to inspect")
	inspectCmd.Flags().IntVar(&insSheetIndex, "sheet-index", 0, "XLSX: 1-based sheet index (default first sheet)")
}
