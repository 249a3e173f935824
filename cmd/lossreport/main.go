// Command lossreport processes loss validation exports (CSV or Excel) into
// summary reports: an on-screen table plus CSV, Excel and PDF exports.
//
// Usage:
//
//	lossreport [flags] input.csv [input2.xlsx ...]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"lossval/internal/config"
	"lossval/internal/dataprocessing"
	apperrors "lossval/internal/errors"
	"lossval/internal/exporter"
	"lossval/internal/files"
	"lossval/internal/infrastructure"
	"lossval/pkg/contracts"
	"lossval/pkg/contracts/domain"
)

// runRequest is the immutable description of one processing run, assembled
// from flags and configuration before anything executes.
type runRequest struct {
	Inputs        []string `validate:"required,min=1,dive,required"`
	OutputDir     string   `validate:"required"`
	Formats       []string `validate:"required,min=1,dive,oneof=csv xlsx pdf"`
	SelectedSheet string
	Combined      bool
	Workers       int `validate:"gte=0"`
	Options       domain.Options
}

func main() {
	configPath := flag.String("config", "", "config file path (default: lossval.yaml next to the executable)")
	inDir := flag.String("dir", "", "process every CSV/Excel file in this directory instead of listing inputs")
	outDir := flag.String("out", "", "output directory for generated reports (default from config)")
	sheet := flag.String("sheet", "", "workbook sheet to use when the header signature occurs on multiple sheets")
	includeAverage := flag.Bool("average", false, "include the per-measurement average column (midpoint of min and max)")
	includeOverall := flag.Bool("overall-average", false, "include overall averages of the group minima and maxima")
	combined := flag.Bool("combined", false, "merge all inputs into one combined report instead of one report per file")
	formats := flag.String("formats", "csv,xlsx,pdf", "comma-separated export formats (csv, xlsx, pdf)")
	workers := flag.Int("workers", 0, "number of files to process in parallel (default from config)")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetVersionString())
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		def := config.Default()
		cfg = &def
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	inputs := flag.Args()
	if *inDir != "" {
		discovered, err := files.NewDiscovery("").FindInputFiles(*inDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to scan input directory: %v\n", err)
			os.Exit(2)
		}
		inputs = append(inputs, files.Paths(discovered)...)
	}

	req := runRequest{
		Inputs:        inputs,
		OutputDir:     *outDir,
		Formats:       splitFormats(*formats),
		SelectedSheet: *sheet,
		Combined:      *combined,
		Workers:       *workers,
		Options: domain.Options{
			IncludeAverage:        *includeAverage,
			IncludeOverallAverage: *includeOverall,
		},
	}
	if req.OutputDir == "" {
		req.OutputDir = cfg.Report.OutputDir
	}
	if req.Workers == 0 {
		req.Workers = cfg.Report.Workers
	}

	if err := validator.New().Struct(req); err != nil {
		fmt.Fprintf(os.Stderr, "invalid arguments: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	if err := run(context.Background(), logger, cfg, req); err != nil {
		fmt.Fprintln(os.Stderr, failureMessage(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.Config, req runRequest) error {
	processor := dataprocessing.NewProcessor(logger, dataprocessing.ProcessorConfig{
		Signature: dataprocessing.Signature{
			LinePrefix: cfg.Columns.HeaderPrefix,
			CellPrefix: cfg.Columns.SheetCellPrefix,
		},
		GroupColumn: cfg.Columns.GroupKey,
		ValueColumn: cfg.Columns.Value,
	})

	reports, err := processor.ProcessFiles(ctx, req.Inputs, req.SelectedSheet, req.Options, req.Workers)
	if err != nil {
		return err
	}

	if req.Combined {
		combined, err := dataprocessing.Combine(reports, req.Options)
		if err != nil {
			return err
		}
		return emit(logger, cfg, req, combined, "combined")
	}

	for _, report := range reports {
		base := strings.TrimSuffix(report.SourceFile, filepath.Ext(report.SourceFile))
		if err := emit(logger, cfg, req, report, base); err != nil {
			return err
		}
	}
	return nil
}

// emit renders one report to stdout and writes the requested export
// formats under the output directory.
func emit(logger *slog.Logger, cfg *config.Config, req runRequest, report *domain.Report, base string) error {
	if err := exporter.RenderText(os.Stdout, report); err != nil {
		return err
	}
	fmt.Println()

	var chartPNG []byte
	for _, format := range req.Formats {
		switch format {
		case "csv":
			path := filepath.Join(req.OutputDir, base+"_processed.csv")
			if err := exporter.NewCSVWriter(logger).Write(path, report); err != nil {
				return err
			}
			fmt.Printf("CSV report saved to %s\n", path)
		case "xlsx":
			path := filepath.Join(req.OutputDir, base+"_report.xlsx")
			if err := exporter.NewExcelWriter(logger).Write(path, report); err != nil {
				return err
			}
			fmt.Printf("Excel report saved to %s\n", path)
		case "pdf":
			if chartPNG == nil {
				png, err := exporter.RenderChartPNG(report, "Minimum and Maximum Percentage Loss per Measurement")
				if err != nil {
					logger.Warn("failed to render chart, continuing without it", "error", err)
				} else {
					chartPNG = png
				}
			}
			path := filepath.Join(req.OutputDir, base+"_report.pdf")
			if err := exporter.NewPDFWriter(logger, cfg.Report.Title).Write(path, report, chartPNG); err != nil {
				return err
			}
			fmt.Printf("PDF report saved to %s\n", path)
		}
	}
	return nil
}

// failureMessage maps the typed pipeline failures to actionable messages.
func failureMessage(err error) string {
	switch {
	case apperrors.IsType(err, apperrors.ErrTypeHeaderNotFound):
		return "Header row not found in the input file."
	case apperrors.IsType(err, apperrors.ErrTypeMissingColumns):
		return fmt.Sprintf("Input file must contain the following columns: %s",
			strings.Join(apperrors.MissingColumns(err), ", "))
	case apperrors.IsType(err, apperrors.ErrTypeAmbiguousSheet):
		return fmt.Sprintf("Multiple sheets contain the header signature (%s); choose one with -sheet.",
			strings.Join(apperrors.SheetCandidates(err), ", "))
	case apperrors.IsType(err, apperrors.ErrTypeInvalidSheet):
		return fmt.Sprintf("Invalid sheet name. Available sheets: %s",
			strings.Join(apperrors.SheetCandidates(err), ", "))
	case apperrors.IsType(err, apperrors.ErrTypeNoValidData):
		return "No rows with a valid loss value remain after cleaning."
	case apperrors.IsType(err, apperrors.ErrTypeMalformedSource):
		return fmt.Sprintf("Input file could not be parsed: %v", err)
	default:
		return err.Error()
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func splitFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}
