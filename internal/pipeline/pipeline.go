// Package pipeline coordinates a reconciliation run: load the invoice,
// reconcile the worksheet into a duty table, resolve a duty per record,
// price the records, and encode the output. The artifact is built fully
// in memory; a failed run produces no bytes at all.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Gee9999/Air-Ship/constants"
	"github.com/Gee9999/Air-Ship/internal/common"
	"github.com/Gee9999/Air-Ship/internal/cost"
	"github.com/Gee9999/Air-Ship/internal/customs"
	"github.com/Gee9999/Air-Ship/internal/doctext"
	"github.com/Gee9999/Air-Ship/internal/factor"
	"github.com/Gee9999/Air-Ship/internal/invoice"
	"github.com/Gee9999/Air-Ship/internal/match"
)

// Processor wires the stages behind one entry point. Stages never talk to
// each other directly; everything flows through Process.
type Processor struct {
	Logger     *slog.Logger
	Loader     *invoice.Loader
	Extractor  doctext.TextExtractor
	Reconciler *customs.Reconciler
	Matcher    *match.Matcher
	Calc       *cost.Calculator
}

func NewProcessor(extractor doctext.TextExtractor, mcfg common.MatchConfig, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		Logger:     logger,
		Loader:     invoice.NewLoader(logger),
		Extractor:  extractor,
		Reconciler: customs.NewReconciler(mcfg.MinDescLen, logger),
		Matcher:    match.NewMatcher(mcfg.Threshold, nil, logger),
		Calc:       cost.NewCalculator(logger),
	}
}

// RunRequest describes one reconciliation job.
type RunRequest struct {
	InvoicePath   string
	WorksheetPath string
	OutputPath    string       // destination for Run; Process only derives the format from it
	Format        string       // constants.CSV or constants.XLSX; empty falls back to OutputPath's extension
	Factors       factor.Table // at least one entry required
}

// outputFormat resolves the artifact format. Anything that is not
// explicitly XLSX encodes as CSV.
func (r RunRequest) outputFormat() string {
	format := r.Format
	if format == "" {
		format = constants.MapExtToFormat(filepath.Ext(r.OutputPath))
	}
	if format == constants.XLSX {
		return constants.XLSX
	}
	return constants.CSV
}

type RunResult struct {
	RunID   string
	Rows    int
	Format  string
	Status  constants.RunStatus
	Elapsed time.Duration
}

// Process runs every stage and returns the encoded artifact. A run ID
// already on the context is kept, otherwise a fresh one is issued. The
// error, when non-nil, already carries its classification sentinel.
func (p *Processor) Process(ctx context.Context, req RunRequest) (RunResult, []byte, error) {
	start := time.Now()
	runID := common.RunIDFromContext(ctx)
	if runID == "" {
		runID = uuid.NewString()
		ctx = common.WithRunID(ctx, runID)
	}
	res := RunResult{RunID: runID, Format: req.outputFormat(), Status: constants.RunStatusRunning}
	log := p.Logger.With("run_id", runID)

	log.Info("pipeline.start", "invoice", req.InvoicePath, "worksheet", req.WorksheetPath, "format", res.Format)
	if len(req.Factors) == 0 {
		return p.fail(log, res, start, "pipeline.start.failed",
			fmt.Errorf("factor table is empty: %w", common.ErrConfig))
	}

	// 1) Invoice rows and column roles.
	header, records, err := p.Loader.LoadPath(req.InvoicePath)
	if err != nil {
		return p.fail(log, res, start, "pipeline.load.failed", err)
	}
	header, cols, err := invoice.ResolveColumns(header)
	if err != nil {
		return p.fail(log, res, start, "pipeline.load.failed", err)
	}
	log.Info("pipeline.load.ok", "rows", len(records), "columns", len(header))

	// 2) Worksheet text -> duty table.
	extracted, err := p.Extractor.Extract(ctx, req.WorksheetPath)
	if err != nil {
		return p.fail(log, res, start, "pipeline.extract.failed", err)
	}
	table, err := p.Reconciler.ParseWorksheet(doctext.Normalize(extracted.Text))
	if err != nil {
		return p.fail(log, res, start, "pipeline.reconcile.failed", err)
	}
	log.Info("pipeline.reconcile.ok", "pairs", len(table), "pages", extracted.Pages, "method", extracted.Method)

	// 3) One duty per record. The first record without a factor aborts.
	duties := make([]int, len(records))
	for i, rec := range records {
		duty, err := p.Matcher.ResolveRecord(rec, cols, table, req.Factors)
		if err != nil {
			return p.fail(log, res, start, "pipeline.match.failed", fmt.Errorf("row %d: %w", i+1, err))
		}
		duties[i] = duty
	}
	log.Info("pipeline.match.ok", "rows", len(records))

	// 4) Pricing.
	for i, rec := range records {
		if err := p.Calc.Price(rec, cols, duties[i], req.Factors); err != nil {
			return p.fail(log, res, start, "pipeline.price.failed", fmt.Errorf("row %d: %w", i+1, err))
		}
	}
	log.Info("pipeline.price.ok", "rows", len(records))

	// 5) Encode in memory.
	outHeader := cost.OutputHeader(header)
	var data []byte
	if res.Format == constants.XLSX {
		data, err = invoice.WriteXLSX(outHeader, records)
	} else {
		data, err = invoice.WriteCSV(outHeader, records)
	}
	if err != nil {
		return p.fail(log, res, start, "pipeline.encode.failed", fmt.Errorf("encode output: %w", err))
	}

	res.Rows = len(records)
	res.Status = constants.RunStatusOK
	res.Elapsed = time.Since(start)
	log.Info("pipeline.ok", "rows", res.Rows, "bytes", len(data), "elapsed", res.Elapsed)
	return res, data, nil
}

// Run executes Process and writes the artifact to req.OutputPath in a
// single call. A failed run leaves the filesystem untouched.
func (p *Processor) Run(ctx context.Context, req RunRequest) (RunResult, error) {
	res, data, err := p.Process(ctx, req)
	if err != nil {
		return res, err
	}
	if err := os.WriteFile(req.OutputPath, data, 0644); err != nil {
		res.Status = constants.RunStatusFailed
		return res, fmt.Errorf("write output %s: %w", req.OutputPath, err)
	}
	p.Logger.Info("pipeline.write.ok", "run_id", res.RunID, "path", req.OutputPath, "rows", res.Rows)
	return res, nil
}

func (p *Processor) fail(log *slog.Logger, res RunResult, start time.Time, event string, err error) (RunResult, []byte, error) {
	res.Status = constants.RunStatusFailed
	res.Elapsed = time.Since(start)
	log.Error(event, "err", err)
	return res, nil, err
}
