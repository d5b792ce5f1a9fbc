package constants

import "strings"

// FileFormat identifies the kind of source document.
type FileFormat string

const (
	PDF  FileFormat = "PDF"
	DOCX FileFormat = "DOCX"
)

// FormulaPlaceholder is substituted for embedded equations the extractor
// cannot transcribe. It is an in-band marker: the structural parsers pass it
// through untouched and the AI prompt instructs the model to preserve it.
const FormulaPlaceholder = "[FORMULA]"

// AllowedExtensions holds the file extensions accepted for test uploads.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"docx": {},
	"doc":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a file extension to its FileFormat, or "" if unsupported.
func MapExtToFormat(ext string) FileFormat {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "docx", "doc":
		return DOCX
	default:
		return ""
	}
}
