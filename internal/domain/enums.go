package domain

// FileType represents the accepted document formats.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeDOCX FileType = "docx"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF:  "application/pdf",
	FileTypeDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"docx": FileTypeDOCX,
}

// UnitStatus classifies how the LLM reply for one unit was interpreted.
type UnitStatus string

const (
	// UnitStatusFindings: the reply matched the grammar at least once.
	UnitStatusFindings UnitStatus = "findings"
	// UnitStatusClean: the reply was the explicit no-error sentinel.
	UnitStatusClean UnitStatus = "clean"
	// UnitStatusUnparsed: the reply matched neither the grammar nor the sentinel.
	UnitStatusUnparsed UnitStatus = "unparsed"
	// UnitStatusError: the LLM call itself failed; the unit contributed nothing.
	UnitStatusError UnitStatus = "error"
	// UnitStatusSkipped: the unit text was empty or whitespace; no call was made.
	UnitStatusSkipped UnitStatus = "skipped"
)
