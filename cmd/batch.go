package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/SameerRanjanJha/quick-eda-app/internal/analysis"
	"github.com/SameerRanjanJha/quick-eda-app/internal/dataset"
	"github.com/SameerRanjanJha/quick-eda-app/internal/history"
	"github.com/SameerRanjanJha/quick-eda-app/internal/report"
	"github.com/SameerRanjanJha/quick-eda-app/internal/report/pdf"
	"github.com/SameerRanjanJha/quick-eda-app/internal/utils"
	"github.com/spf13/cobra"
)

var (
	batOutDir    string
	batFormat    string
	batDelimiter string
	batMaxRows   int
	batSheetName string
	batSheetIdx  int
)

var batchCmd = &cobra.Command{
	Use:   "batch <files...>",
	Short: "Analyze multiple tabular files and write one report per file",
	Long: `Batch expands globs, analyzes every supported file, and writes one report
per input into the output directory. Files with unsupported extensions are
skipped with a warning; read or analysis failures abort the run.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var files []string
		seen := map[string]struct{}{}
		for _, arg := range args {
			matches, _ := filepath.Glob(arg)
			if len(matches) == 0 {
				// treat as literal path if exists
				if _, err := os.Stat(arg); err == nil {
					matches = []string{arg}
				}
			}
			for _, m := range matches {
				if _, ok := seen[m]; ok {
					continue
				}
				seen[m] = struct{}{}
				files = append(files, m)
			}
		}
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		sort.Strings(files)

		format := strings.ToLower(strings.TrimSpace(batFormat))
		switch format {
		case "pdf", "markdown":
		case "md":
			format = "markdown"
		default:
			return fmt.Errorf("unsupported --format: %s (use 'pdf'|'markdown')", batFormat)
		}

		loadOpt := dataset.Options{
			SheetName:  batSheetName,
			SheetIndex: batSheetIdx,
			MaxRows:    cfg.MaxRows,
		}
		if cmd.Flags().Changed("max-rows") {
			loadOpt.MaxRows = batMaxRows
		}
		if batDelimiter != "" {
			switch batDelimiter {
			case ",":
				loadOpt.Delimiter = ','
			case "\t", "tab":
				loadOpt.Delimiter = '\t'
			case ";":
				loadOpt.Delimiter = ';'
			case "|":
				loadOpt.Delimiter = '|'
			default:
				return fmt.Errorf("unsupported --delimiter: %s (use ','|';'|'|'|'tab')", batDelimiter)
			}
		}

		opt := analysis.DefaultOptions()
		opt.TopValues = cfg.TopValues
		opt.Correlations = cfg.Correlations
		opt.Outliers = cfg.Outliers
		if cfg.OutlierThreshold > 0 {
			opt.OutlierThreshold = cfg.OutlierThreshold
		}

		outDir := batOutDir
		if outDir == "" {
			outDir = cfg.OutputDir
		}
		if outDir == "" {
			outDir = "."
		}
		outDir, err := utils.ExpandHome(outDir)
		if err != nil {
			return err
		}
		if err := utils.EnsureDir(outDir); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}

		ctx := logger.WithContext(cmd.Context())
		var store *history.Store
		if hpath, herr := history.DefaultPath(); herr == nil {
			store = history.NewStore(hpath, cfg.HistoryLimit)
		}

		ext := "pdf"
		if format == "markdown" {
			ext = "md"
		}
		total := len(files)
		generated := 0
		for i, path := range files {
			if !dataset.Supported(path) {
				if !quiet {
					fmt.Printf("⚠ [%d/%d] Skipping %s (unsupported format)\n", i+1, total, filepath.Base(path))
				}
				continue
			}
			if !quiet {
				fmt.Printf("[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			table, err := dataset.LoadFile(ctx, path, loadOpt)
			if err != nil {
				return err
			}
			prof, err := analysis.Analyze(ctx, table, opt, nil)
			if err != nil {
				return err
			}
			now := time.Now()
			doc := report.Build(prof, report.Meta{
				Author:      cfg.Author,
				Source:      filepath.Base(path),
				GeneratedAt: now,
			})

			out := batchOutputPath(outDir, path, batSheetName, ext)
			switch format {
			case "markdown":
				if err := os.WriteFile(out, []byte(report.Markdown(doc)), 0o644); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
			default:
				pcfg := pdf.DefaultConfig()
				if cfg.PageSize != "" {
					pcfg.PageSize = cfg.PageSize
				}
				pcfg.Compress = cfg.CompressPDF
				pcfg.PageNumbers = cfg.PageNumbers
				b, _, err := pdf.Render(doc, pcfg)
				if err != nil {
					return fmt.Errorf("render pdf: %w", err)
				}
				if err := utils.SafeWriteFile(out, b); err != nil {
					return fmt.Errorf("save report: %w", err)
				}
			}
			generated++
			if store != nil {
				herr := store.Record(history.Entry{
					Source:      path,
					Output:      out,
					Format:      format,
					Rows:        prof.Rows,
					Cols:        prof.Cols,
					Title:       doc.Title,
					GeneratedAt: now,
				})
				if herr != nil {
					fmt.Fprintf(os.Stderr, "⚠ Warning: failed to record history: %v\n", herr)
				}
			}
		}
		fmt.Printf("✓ Generated %d report(s) in %s\n", generated, outDir)
		return nil
	},
}

// batchOutputPath derives a report filename from the source, adding a numeric
// suffix instead of overwriting an existing report with the same base name.
func batchOutputPath(outDir, src, sheet, ext string) string {
	base := filepath.Base(src)
	safe := strings.TrimSuffix(base, filepath.Ext(base))
	if sheet != "" {
		s := strings.ToLower(strings.TrimSpace(sheet))
		var b strings.Builder
		for _, r := range s {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				b.WriteRune(r)
			} else if r == ' ' || r == '-' || r == '_' {
				b.WriteRune('-')
			}
		}
		ss := strings.Trim(b.String(), "-")
		if ss == "" {
			ss = "sheet"
		}
		safe = safe + "__sheet-" + ss
	}
	out := filepath.Join(outDir, safe+"."+ext)
	if _, err := os.Stat(out); err != nil {
		return out
	}
	idx := 2
	for {
		cand := filepath.Join(outDir, fmt.Sprintf("%s__%d.%s", safe, idx, ext))
		if _, err := os.Stat(cand); os.IsNotExist(err) {
			return cand
		}
		idx++
	}
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVarP(&batOutDir, "out-dir", "o", "", "directory for generated reports (default current directory)")
	batchCmd.Flags().StringVar(&batFormat, "format", "pdf", "report format: 'pdf' | 'markdown'")
	batchCmd.Flags().StringVar(&batDelimiter, "delimiter", "", "field delimiter: ',' | ';' | '|' | 'tab' (auto-detect if omitted)")
	batchCmd.Flags().IntVar(&batMaxRows, "max-rows", 0, "maximum data rows to load per file (0 = unlimited)")
	batchCmd.Flags().StringVar(&batSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	batchCmd.Flags().IntVar(&batSheetIdx, "sheet-index", 0, "XLSX: 1-based sheet index (default first sheet)")
}
