package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF reads the PDF text layer. The primary method walks each page by
// row so multi-column layouts keep line structure; if that yields nothing
// usable, the whole-document plain-text dump is tried before giving up.
// Pages are joined with a blank line as a paragraph boundary.
func (e *Extractor) extractPDF(path string) (TextExtractionResult, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return TextExtractionResult{}, fmt.Errorf("open pdf: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			e.logger.Warn("extract.pdf.close_error", "path", path, "error", cerr)
		}
	}()

	pages := r.NumPage()
	var warnings []string
	var b strings.Builder
	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("page %d: %v", i, err))
			continue
		}
		var pb strings.Builder
		for _, row := range rows {
			pb.WriteString(joinRowWords(row.Content))
			pb.WriteByte('\n')
		}
		if strings.TrimSpace(pb.String()) == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(pb.String())
	}

	if strings.TrimSpace(b.String()) != "" {
		return TextExtractionResult{
			Text:     b.String(),
			Pages:    pages,
			Method:   "pdf-rows",
			Warnings: warnings,
		}, nil
	}

	// Row extraction came up empty; dump the plain text layer instead.
	plain, err := r.GetPlainText()
	if err != nil {
		return TextExtractionResult{Pages: pages, Method: "pdf-plain", Warnings: warnings},
			fmt.Errorf("pdf plain text: %w", err)
	}
	buf, err := io.ReadAll(plain)
	if err != nil {
		return TextExtractionResult{Pages: pages, Method: "pdf-plain", Warnings: warnings},
			fmt.Errorf("read pdf text: %w", err)
	}
	return TextExtractionResult{
		Text:     string(buf),
		Pages:    pages,
		Method:   "pdf-plain",
		Warnings: warnings,
	}, nil
}

// joinRowWords concatenates the text chunks of one row, inserting a space
// where the horizontal gap between adjacent chunks is wide enough to be a
// word boundary. Chunk splits inside a word carry no gap and stay joined.
func joinRowWords(words []pdf.Text) string {
	var b strings.Builder
	for i, word := range words {
		if i > 0 && isWordGap(words[i-1], word) {
			b.WriteByte(' ')
		}
		b.WriteString(word.S)
	}
	return b.String()
}

func isWordGap(prev, cur pdf.Text) bool {
	if strings.HasSuffix(prev.S, " ") || strings.HasPrefix(cur.S, " ") {
		return false
	}
	threshold := prev.FontSize * 0.3
	if threshold < 1 {
		threshold = 1
	}
	return cur.X-(prev.X+prev.W) > threshold
}
