package doctext

import "context"

// TextExtractor is the worksheet stage port: file -> text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (ExtractionResult, error)
}

var _ TextExtractor = (*Extractor)(nil)
