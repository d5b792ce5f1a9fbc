package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/thajiyev/quizextract/constants"
	"github.com/thajiyev/quizextract/internal/common"
)

// extractDOCX walks word/document.xml paragraph by paragraph, concatenating
// run text in order. An OMML math region (m:oMath / m:oMathPara) or an
// embedded OLE equation object is replaced by one constants.FormulaPlaceholder
// token at its position, so text surrounding an inline equation survives on
// both sides.
func (e *Extractor) extractDOCX(path string) (TextExtractionResult, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		// legacy binary .doc files land here: no ZIP container, no text layer
		return TextExtractionResult{}, fmt.Errorf("%w: open docx: %v", common.ErrUnreadableFile, err)
	}
	defer func() {
		if cerr := zr.Close(); cerr != nil {
			e.logger.Warn("extract.docx.close_error", "path", path, "error", cerr)
		}
	}()

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return TextExtractionResult{}, fmt.Errorf("%w: docx has no word/document.xml", common.ErrUnreadableFile)
	}

	rc, err := doc.Open()
	if err != nil {
		return TextExtractionResult{}, fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	text, paragraphs, err := walkDocumentXML(rc)
	if err != nil {
		return TextExtractionResult{}, fmt.Errorf("parse document.xml: %w", err)
	}
	return TextExtractionResult{
		Text:   text,
		Pages:  paragraphs, // no page concept in DOCX; paragraph count is the nearest signal
		Method: "docx",
	}, nil
}

func walkDocumentXML(r io.Reader) (string, int, error) {
	dec := xml.NewDecoder(r)

	var (
		out        strings.Builder
		para       strings.Builder
		paragraphs int
		inText     bool
		mathDepth  int // >0 while inside an OMML region
		objDepth   int // >0 while inside an embedded object
	)

	flush := func() {
		out.WriteString(strings.TrimRight(para.String(), " \t"))
		out.WriteByte('\n')
		para.Reset()
		paragraphs++
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", 0, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "oMath", "oMathPara":
				if mathDepth == 0 && objDepth == 0 {
					para.WriteString(constants.FormulaPlaceholder)
				}
				mathDepth++
			case "object":
				if mathDepth == 0 && objDepth == 0 {
					para.WriteString(constants.FormulaPlaceholder)
				}
				objDepth++
			case "t":
				if mathDepth == 0 && objDepth == 0 {
					inText = true
				}
			case "tab":
				if mathDepth == 0 && objDepth == 0 {
					para.WriteByte('\t')
				}
			case "br":
				if mathDepth == 0 && objDepth == 0 {
					para.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				flush()
			case "oMath", "oMathPara":
				if mathDepth > 0 {
					mathDepth--
				}
			case "object":
				if objDepth > 0 {
					objDepth--
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				para.Write(t)
			}
		}
	}
	if para.Len() > 0 {
		flush()
	}
	return out.String(), paragraphs, nil
}
