package doctext

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Gee9999/Air-Ship/constants"
	"github.com/Gee9999/Air-Ship/internal/common"
)

type Config struct {
	Pdftotext string        // pdftotext binary, name or absolute path
	Timeout   time.Duration // cap per external invocation, default 30s
}

type ExtractionResult struct {
	Text       string
	Pages      int
	SourceType string // constants.PDF | constants.TXT
	Method     string // "pdf-text" | "plain-text"
	Duration   time.Duration
	Warnings   []string
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// Extract pulls the worksheet text, shelling out to pdftotext for PDFs
// and reading plain-text files directly.
func (e *Extractor) Extract(ctx context.Context, path string) (ExtractionResult, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	e.logger.Debug("starting text extraction", "path", path, "ext", ext)
	switch constants.MapExtToFormat(ext) {
	case constants.PDF:
		res, err := e.pdfToText(ctx, path)
		res.Duration = time.Since(start)
		return res, err
	case constants.TXT:
		res, err := e.plainText(path)
		res.Duration = time.Since(start)
		return res, err
	default:
		e.logger.Error("unsupported worksheet extension", "extension", ext)
		return ExtractionResult{}, fmt.Errorf("unsupported extension %q: %w", ext, common.ErrInputShape)
	}
}

func (e *Extractor) pdfToText(ctx context.Context, path string) (ExtractionResult, error) {
	ctx, cancel := common.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return ExtractionResult{SourceType: constants.PDF, Warnings: []string{string(errb)}},
			fmt.Errorf("pdftotext %s: %v: %w", path, err, common.ErrExtraction)
	}
	text := string(out)
	return ExtractionResult{
		Text: text,
		// A form feed \f is used as page separator by default
		Pages:      1 + strings.Count(text, "\f"),
		SourceType: constants.PDF,
		Method:     "pdf-text",
	}, nil
}

func (e *Extractor) plainText(path string) (ExtractionResult, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return ExtractionResult{SourceType: constants.TXT},
			fmt.Errorf("read worksheet %s: %v: %w", path, err, common.ErrExtraction)
	}
	text := string(b)
	return ExtractionResult{
		Text:       text,
		Pages:      1 + strings.Count(text, "\f"),
		SourceType: constants.TXT,
		Method:     "plain-text",
	}, nil
}
