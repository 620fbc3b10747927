package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/SameerRanjanJha/quick-eda-app/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set Quick EDA configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("page_size: %s\n", cfg.PageSize)
		if cfg.Author != "" {
			fmt.Printf("author: %s\n", cfg.Author)
		}
		if cfg.OutputDir != "" {
			fmt.Printf("output_dir: %s\n", cfg.OutputDir)
		}
		fmt.Printf("top_values: %d\n", cfg.TopValues)
		fmt.Printf("max_rows: %d\n", cfg.MaxRows)
		fmt.Printf("sample_rows: %d\n", cfg.SampleRows)
		fmt.Printf("outliers: %v\n", cfg.Outliers)
		fmt.Printf("outlier_threshold: %.1f\n", cfg.OutlierThreshold)
		fmt.Printf("correlations: %v\n", cfg.Correlations)
		fmt.Printf("compress_pdf: %v\n", cfg.CompressPDF)
		fmt.Printf("page_numbers: %v\n", cfg.PageNumbers)
		fmt.Printf("history_limit: %d\n", cfg.HistoryLimit)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "page_size":
			switch val {
			case "letter", "Letter", "LETTER":
				cfg.PageSize = "letter"
			case "a4", "A4":
				cfg.PageSize = "a4"
			default:
				return fmt.Errorf("invalid page_size: %s (use letter or a4)", val)
			}
		case "author":
			cfg.Author = val
		case "output_dir":
			cfg.OutputDir = val
		case "top_values":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for top_values: %v", val)
			}
			cfg.TopValues = i
		case "max_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for max_rows: %v", val)
			}
			cfg.MaxRows = i
		case "sample_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for sample_rows: %v", val)
			}
			cfg.SampleRows = i
		case "outliers":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for outliers: %v", val)
			}
			cfg.Outliers = b
		case "outlier_threshold":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid float for outlier_threshold: %v", val)
			}
			cfg.OutlierThreshold = f
		case "correlations":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for correlations: %v", val)
			}
			cfg.Correlations = b
		case "compress_pdf":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for compress_pdf: %v", val)
			}
			cfg.CompressPDF = b
		case "page_numbers":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for page_numbers: %v", val)
			}
			cfg.PageNumbers = b
		case "history_limit":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for history_limit: %v", val)
			}
			cfg.HistoryLimit = i
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
