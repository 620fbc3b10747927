package cmd

import (
	"fmt"
	"os"
	"path/filepath"
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
	anaOutputPath string
	anaFormat     string
	anaTitle      string
	anaAuthor     string
	anaDelimiter  string
	anaDecimal    string
	anaThousands  string
	anaSheetName  string
	anaSheetIndex int
	anaMaxRows    int
	anaTopValues  int
	anaOutliers   bool
	anaOutlierThr float64
	anaNoCorr     bool
	anaPageSize   string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a tabular file and write a formatted EDA report",
	Long: `Analyze reads a CSV, TSV, TXT, or XLSX file, profiles every column, and
writes the result as a PDF report (or Markdown with --format markdown).
Without --output the report is named EDA_Report_<timestamp>.pdf.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		format := strings.ToLower(strings.TrimSpace(anaFormat))
		switch format {
		case "pdf", "markdown":
		case "md":
			format = "markdown"
		default:
			return fmt.Errorf("unsupported --format: %s (use 'pdf'|'markdown')", anaFormat)
		}
		if format == "pdf" && anaOutputPath == "-" {
			return fmt.Errorf("cannot write PDF to stdout; pass a file path or use --format markdown")
		}
		pageSize := cfg.PageSize
		if anaPageSize != "" {
			pageSize = anaPageSize
		}
		switch strings.ToLower(pageSize) {
		case "", pdf.PageLetter, pdf.PageA4:
		default:
			return fmt.Errorf("unsupported --page-size: %s (use 'letter'|'a4')", pageSize)
		}

		loadOpt := dataset.Options{
			SheetName:  anaSheetName,
			SheetIndex: anaSheetIndex,
			MaxRows:    cfg.MaxRows,
		}
		if cmd.Flags().Changed("max-rows") {
			loadOpt.MaxRows = anaMaxRows
		}
		if anaDelimiter != "" {
			switch anaDelimiter {
			case ",":
				loadOpt.Delimiter = ','
			case "\t", "tab":
				loadOpt.Delimiter = '\t'
			case ";":
				loadOpt.Delimiter = ';'
			case "|":
				loadOpt.Delimiter = '|'
			default:
				return fmt.Errorf("unsupported --delimiter: %s (use ','|';'|'|'|'tab')", anaDelimiter)
			}
		}

		opt := analysis.DefaultOptions()
		opt.TopValues = cfg.TopValues
		if cmd.Flags().Changed("top-values") && anaTopValues > 0 {
			opt.TopValues = anaTopValues
		}
		opt.Correlations = cfg.Correlations && !anaNoCorr
		opt.Outliers = cfg.Outliers
		if cmd.Flags().Changed("outliers") {
			opt.Outliers = anaOutliers
		}
		if cfg.OutlierThreshold > 0 {
			opt.OutlierThreshold = cfg.OutlierThreshold
		}
		if cmd.Flags().Changed("outlier-threshold") && anaOutlierThr > 0 {
			opt.OutlierThreshold = anaOutlierThr
		}
		// Locale separators
		switch strings.ToLower(strings.TrimSpace(anaDecimal)) {
		case ",", "comma":
			opt.DecimalSeparator = ','
		case ".", "dot":
			opt.DecimalSeparator = '.'
		case "":
		default:
			return fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", anaDecimal)
		}
		switch strings.ToLower(strings.TrimSpace(anaThousands)) {
		case ",":
			opt.ThousandsSeparator = ','
		case ".":
			opt.ThousandsSeparator = '.'
		case "space", " ":
			opt.ThousandsSeparator = ' '
		case "":
		default:
			return fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", anaThousands)
		}

		reporter := stageReporter()
		ctx := logger.WithContext(cmd.Context())

		reporter.Stage(5, fmt.Sprintf("Reading %s...", filepath.Base(path)))
		table, err := dataset.LoadFile(ctx, path, loadOpt)
		if err != nil {
			reporter.Done()
			return err
		}

		prof, err := analysis.Analyze(ctx, table, opt, reporter.Stage)
		if err != nil {
			reporter.Done()
			return err
		}
		reporter.Done()

		now := time.Now()
		author := anaAuthor
		if author == "" {
			author = cfg.Author
		}
		doc := report.Build(prof, report.Meta{
			Title:       anaTitle,
			Author:      author,
			Source:      filepath.Base(path),
			GeneratedAt: now,
		})

		toStdout := format == "markdown" && anaOutputPath == "-"
		out := anaOutputPath
		if out == "" {
			ext := "pdf"
			if format == "markdown" {
				ext = "md"
			}
			name := report.DefaultFilename(now, ext)
			if cfg.OutputDir != "" {
				dir, err := utils.ExpandHome(cfg.OutputDir)
				if err != nil {
					return err
				}
				if err := utils.EnsureDir(dir); err != nil {
					return fmt.Errorf("create output dir: %w", err)
				}
				out = filepath.Join(dir, name)
			} else {
				out = name
			}
		}

		var pages int
		switch {
		case toStdout:
			fmt.Print(report.Markdown(doc))
		case format == "markdown":
			if err := os.WriteFile(out, []byte(report.Markdown(doc)), 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
		default:
			pcfg := pdf.DefaultConfig()
			pcfg.PageSize = pageSize
			pcfg.Compress = cfg.CompressPDF
			pcfg.PageNumbers = cfg.PageNumbers
			b, n, err := pdf.Render(doc, pcfg)
			if err != nil {
				return fmt.Errorf("render pdf: %w", err)
			}
			pages = n
			if err := utils.SafeWriteFile(out, b); err != nil {
				return fmt.Errorf("save report: %w", err)
			}
		}

		for _, w := range prof.Warnings {
			fmt.Printf("⚠ %s\n", w)
		}
		if toStdout {
			return nil
		}
		if format == "pdf" {
			fmt.Printf("✓ Report saved to %s (%d pages, %d rows, %d columns)\n", out, pages, prof.Rows, prof.Cols)
		} else {
			fmt.Printf("✓ Report saved to %s (%d rows, %d columns)\n", out, prof.Rows, prof.Cols)
		}

		if hpath, herr := history.DefaultPath(); herr == nil {
			store := history.NewStore(hpath, cfg.HistoryLimit)
			herr = store.Record(history.Entry{
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
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "report path ('-' prints Markdown to stdout)")
	analyzeCmd.Flags().StringVar(&anaFormat, "format", "pdf", "report format: 'pdf' | 'markdown'")
	analyzeCmd.Flags().StringVar(&anaTitle, "title", "", "report title (default \""+report.DefaultTitle+"\")")
	analyzeCmd.Flags().StringVar(&anaAuthor, "author", "", "report author recorded in the PDF metadata")
	analyzeCmd.Flags().StringVar(&anaDelimiter, "delimiter", "", "field delimiter: ',' | ';' | '|' | 'tab' (auto-detect if omitted)")
	analyzeCmd.Flags().StringVar(&anaDecimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	analyzeCmd.Flags().StringVar(&anaThousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
	analyzeCmd.Flags().StringVar(&anaSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	analyzeCmd.Flags().IntVar(&anaSheetIndex, "sheet-index", 0, "XLSX: 1-based sheet index (default first sheet)")
	analyzeCmd.Flags().IntVar(&anaMaxRows, "max-rows", 0, "maximum data rows to load (0 = unlimited)")
	analyzeCmd.Flags().IntVar(&anaTopValues, "top-values", 0, "top distinct values reported per categorical column")
	analyzeCmd.Flags().BoolVar(&anaOutliers, "outliers", true, "count robust outliers (MAD) per numeric column")
	analyzeCmd.Flags().Float64Var(&anaOutlierThr, "outlier-threshold", 3.5, "robust |z| threshold for outliers (MAD-based)")
	analyzeCmd.Flags().BoolVar(&anaNoCorr, "no-correlations", false, "skip Pearson correlations among numeric columns")
	analyzeCmd.Flags().StringVar(&anaPageSize, "page-size", "", "PDF page size: 'letter' | 'a4'")
}
