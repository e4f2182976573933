package ingest

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var (
	// Literal strings shown by Tj, and TJ arrays of literals with
	// kerning offsets.
	showTextRe  = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)\s*Tj`)
	showArrayRe = regexp.MustCompile(`\[((?:[^\]\\]|\\.)*)\]\s*TJ`)
	literalRe   = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)`)
	octalRe     = regexp.MustCompile(`\\([0-7]{1,3})`)
)

// extractPDFText pulls the text-show operators out of each page's
// content stream. Simple-font documents (the program handouts) decode
// fine; CID-encoded PDFs come out garbled and should be provided as
// .txt instead.
func extractPDFText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	conf := pdfmodel.NewDefaultConfiguration()
	pageCount, err := api.PageCount(f, conf)
	if err != nil {
		return "", fmt.Errorf("read pdf %s: %w", path, err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return "", fmt.Errorf("read pdf %s: %w", path, err)
	}

	var b strings.Builder
	for page := 1; page <= pageCount; page++ {
		r, err := pdfcpu.ExtractPageContent(ctx, page)
		if err != nil {
			return "", fmt.Errorf("extract page %d of %s: %w", page, path, err)
		}
		content, err := io.ReadAll(r)
		if err != nil {
			return "", err
		}
		if text := decodeContentText(string(content)); text != "" {
			b.WriteString(text)
			b.WriteString("\n\n")
		}
	}
	return b.String(), nil
}

// decodeContentText joins the literal strings of all text-show operators
// in a content stream, in stream order.
func decodeContentText(content string) string {
	type match struct {
		pos  int
		text string
	}
	var matches []match

	for _, m := range showTextRe.FindAllStringSubmatchIndex(content, -1) {
		matches = append(matches, match{m[0], unescapePDFString(content[m[2]:m[3]])})
	}
	for _, m := range showArrayRe.FindAllStringSubmatchIndex(content, -1) {
		array := content[m[2]:m[3]]
		var parts []string
		for _, lit := range literalRe.FindAllStringSubmatch(array, -1) {
			parts = append(parts, unescapePDFString(lit[1]))
		}
		matches = append(matches, match{m[0], strings.Join(parts, "")})
	}

	// FindAll walks left to right per pattern; interleave the two sets
	// by stream position.
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j].pos < matches[j-1].pos; j-- {
			matches[j], matches[j-1] = matches[j-1], matches[j]
		}
	}

	var b strings.Builder
	for _, m := range matches {
		if m.text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(m.text)
	}
	return b.String()
}

func unescapePDFString(s string) string {
	s = octalRe.ReplaceAllStringFunc(s, func(esc string) string {
		n, err := strconv.ParseUint(esc[1:], 8, 16)
		if err != nil || n > 255 {
			return esc
		}
		return string(rune(n))
	})
	replacer := strings.NewReplacer(
		`\n`, "\n",
		`\r`, "\r",
		`\t`, "\t",
		`\(`, "(",
		`\)`, ")",
		`\\`, `\`,
	)
	return replacer.Replace(s)
}
