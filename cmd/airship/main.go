package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Gee9999/Air-Ship/internal/common"
	"github.com/Gee9999/Air-Ship/internal/doctext"
	"github.com/Gee9999/Air-Ship/internal/factor"
	"github.com/Gee9999/Air-Ship/internal/pipeline"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

// stringSlice collects repeated flag values.
type stringSlice []string

func (s *stringSlice) String() string { return strings.Join(*s, ",") }

func (s *stringSlice) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	// Parse CLI flags
	var factorFlags stringSlice
	var (
		invoicePath   = flag.String("invoice", "", "invoice file path, .csv or .xlsx (required)")
		worksheetPath = flag.String("worksheet", "", "customs worksheet path, .pdf or .txt (required)")
		output        = flag.String("output", "", "output file path (required); .xlsx writes a workbook, anything else CSV")
		factorsFile   = flag.String("factors-file", "", `optional JSON factors file, e.g. {"0": 1.0, "15": 25.91}`)
	)
	flag.StringVar(output, "o", "", "output file path (shorthand)")
	flag.Var(&factorFlags, "factor", "duty factor as INTEGER=REAL, e.g. 15=25.91 (repeatable)")
	flag.Parse()

	// Validate required flags
	if *invoicePath == "" {
		printError("Error: --invoice is required\n")
		os.Exit(2)
	}
	if *worksheetPath == "" {
		printError("Error: --worksheet is required\n")
		os.Exit(2)
	}
	if *output == "" {
		printError("Error: --output is required\n")
		os.Exit(2)
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Debug(".env file not found, using environment variables")
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(common.ExitCode(err))
	}

	// Build the factor table: file first, repeated flags override.
	factors := factor.Table{}
	if *factorsFile != "" {
		fileTable, err := factor.LoadFile(*factorsFile)
		if err != nil {
			printError("Error: %v\n", err)
			os.Exit(common.ExitCode(err))
		}
		factors.Merge(fileTable)
	}
	if len(factorFlags) > 0 {
		flagTable, err := factor.ParseFlags(factorFlags)
		if err != nil {
			printError("Error: %v\n", err)
			os.Exit(common.ExitCode(err))
		}
		factors.Merge(flagTable)
	}
	if len(factors) == 0 {
		printError("Error: at least one --factor (or --factors-file) is required\n")
		os.Exit(2)
	}

	extractor := doctext.NewExtractor(doctext.Config{
		Pdftotext: cfg.Extract.PdftotextBin,
		Timeout:   cfg.Extract.Timeout,
	}, logger)
	proc := pipeline.NewProcessor(extractor, cfg.Match, logger)

	res, err := proc.Run(context.Background(), pipeline.RunRequest{
		InvoicePath:   *invoicePath,
		WorksheetPath: *worksheetPath,
		OutputPath:    *output,
		Factors:       factors,
	})
	if err != nil {
		logger.Error("reconciliation failed", "error", err)
		printError("Error: %v\n", err)
		os.Exit(common.ExitCode(err))
	}

	logger.Info("reconciliation complete",
		"run_id", res.RunID,
		"rows", res.Rows,
		"format", res.Format,
		"elapsed", res.Elapsed,
		"output_file", *output)

	fmt.Printf("Reconciliation complete!\n")
	fmt.Printf("- Rows processed: %d\n", res.Rows)
	fmt.Printf("- Output: %s\n", *output)
}
