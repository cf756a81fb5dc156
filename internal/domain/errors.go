package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrExtractionFailed    = errors.New("text extraction failed")
	ErrEmptyDocument       = errors.New("document contains no extractable text")
	ErrNotDocx             = errors.New("operation requires a docx source document")
	ErrAnalysisNotFound    = errors.New("analysis not found")
)
