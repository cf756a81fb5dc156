package report

import (
	"archive/zip"
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// BundleFile pairs a filename with its content for zipping.
type BundleFile struct {
	Name string
	Data []byte
}

// Bundle writes the given files into an in-memory ZIP archive.
func Bundle(files ...BundleFile) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, file := range files {
		w, err := zw.Create(file.Name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(file.Data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a document name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized download filename.
// Format: {sanitized_base}_{suffix}_{YYYY-MM-DD}.{ext}
func BuildFilename(base, suffix, ext string) string {
	base = strings.TrimSuffix(base, "."+ext)
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s_%s.%s", SanitizeFilename(base), suffix, date, ext)
}
