// Package dataprocessing implements the core pipeline: header-row discovery
// inside tabular sources, tolerant parsing, numeric cleaning and per-group
// aggregation. Every entry point is a pure function of its inputs, so
// callers may process independent files in parallel.
package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	apperrors "lossval/internal/errors"
	"lossval/pkg/contracts/domain"
)

// Processor runs the ingestion and aggregation pipeline over input files.
type Processor struct {
	logger      *slog.Logger
	signature   Signature
	groupColumn string
	valueColumn string
}

// ProcessorConfig holds the column and signature configuration for a
// Processor.
type ProcessorConfig struct {
	Signature   Signature
	GroupColumn string
	ValueColumn string
}

// DefaultProcessorConfig returns the configuration matching the loss
// validation export format.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		Signature:   DefaultSignature(),
		GroupColumn: "Measurement",
		ValueColumn: "Percentage Loss",
	}
}

// NewProcessor creates a processor with the given configuration. A nil
// logger falls back to slog.Default.
func NewProcessor(logger *slog.Logger, cfg ProcessorConfig) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Signature.LinePrefix == "" {
		cfg.Signature = DefaultSignature()
	}
	if cfg.GroupColumn == "" {
		cfg.GroupColumn = "Measurement"
	}
	if cfg.ValueColumn == "" {
		cfg.ValueColumn = "Percentage Loss"
	}
	return &Processor{
		logger:      logger,
		signature:   cfg.Signature,
		groupColumn: cfg.GroupColumn,
		valueColumn: cfg.ValueColumn,
	}
}

// ProcessFile ingests one source file, dispatching on its extension, and
// aggregates it into a report. selectedSheet is only consulted for workbook
// sources whose signature occurs on more than one sheet.
func (p *Processor) ProcessFile(ctx context.Context, path, selectedSheet string, opts domain.Options) (*domain.Report, error) {
	table, err := p.ingest(path, selectedSheet)
	if err != nil {
		return nil, err
	}

	cleaned := Clean(table, p.groupColumn, p.valueColumn)
	if cleaned.Dropped > 0 {
		p.logger.WarnContext(ctx, "dropped rows with invalid value column",
			slog.String("file", filepath.Base(path)),
			slog.String("column", p.valueColumn),
			slog.Int("dropped", cleaned.Dropped))
	}

	report, err := Aggregate(cleaned, opts)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", filepath.Base(path), err)
	}
	report.SourceFile = filepath.Base(path)

	p.logger.InfoContext(ctx, "processed file",
		slog.String("file", report.SourceFile),
		slog.Int("groups", len(report.Groups)),
		slog.Int("dropped", report.Dropped))

	return report, nil
}

// ProcessFiles runs the pipeline once per path. workers bounds the number of
// files processed concurrently; values below two process sequentially. The
// pipeline itself is stateless, so independent files are safe to process in
// parallel. Results keep the order of the input paths.
func (p *Processor) ProcessFiles(ctx context.Context, paths []string, selectedSheet string, opts domain.Options, workers int) ([]*domain.Report, error) {
	if len(paths) == 0 {
		return nil, apperrors.NewValidationError("no input files given")
	}
	if workers < 1 {
		workers = 1
	}

	reports := make([]*domain.Report, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			report, err := p.ProcessFile(ctx, path, selectedSheet, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Combine merges per-file reports into one combined report. Groups keep
// their source file attribution, ordered by measurement then source file;
// drop counts are summed and the overall summary, when requested, is
// recomputed across the combined groups.
func Combine(reports []*domain.Report, opts domain.Options) (*domain.Report, error) {
	combined := &domain.Report{}
	for _, r := range reports {
		if r == nil {
			continue
		}
		combined.Dropped += r.Dropped
		for _, g := range r.Groups {
			g.SourceFile = r.SourceFile
			combined.Groups = append(combined.Groups, g)
		}
	}

	if len(combined.Groups) == 0 {
		return nil, apperrors.NewNoValidDataError()
	}

	sort.Slice(combined.Groups, func(i, j int) bool {
		a, b := combined.Groups[i], combined.Groups[j]
		if a.Measurement != b.Measurement {
			return a.Measurement < b.Measurement
		}
		return a.SourceFile < b.SourceFile
	})

	if opts.IncludeOverallAverage {
		overall, err := overallSummary(combined.Groups)
		if err != nil {
			return nil, err
		}
		combined.Overall = overall
	}

	return combined, nil
}

// ingest parses one source file into a typed table.
func (p *Processor) ingest(path, selectedSheet string) (*domain.Table, error) {
	required := []string{p.groupColumn, p.valueColumn}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return ParseWorkbook(path, p.signature, selectedSheet, required)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to open source file", err).
				WithContext("path", path)
		}
		defer f.Close()
		return ParseCSV(f, p.signature, required)
	}
}
