package export

import (
	"bytes"
	"fmt"
	"strings"
)

// renderPDF writes a minimal single-font PDF by hand: one page object per
// 50 rows, Helvetica, fixed-width columns. Reports are tabular text, which
// keeps a full PDF library out of the dependency tree.
func renderPDF(columns []string, records [][]string) ([]byte, error) {
	lines := []string{formatPDFLine(columns)}
	for _, record := range records {
		lines = append(lines, formatPDFLine(record))
	}

	const rowsPerPage = 50
	var pages []string
	for start := 0; start < len(lines); start += rowsPerPage {
		end := start + rowsPerPage
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, buildPageStream(lines[start:end]))
	}
	if len(pages) == 0 {
		pages = append(pages, buildPageStream([]string{"empty report"}))
	}

	// Object layout: 1 catalog, 2 pages, 3 font, then per page one page
	// object and one content stream.
	var kids []string
	for i := range pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", 4+i*2))
	}

	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
			strings.Join(kids, " "), len(pages)),
		"3 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
	}
	for i, stream := range pages {
		pageNum := 4 + i*2
		objects = append(objects, fmt.Sprintf(
			"%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>\nendobj\n",
			pageNum, pageNum+1))
		objects = append(objects, fmt.Sprintf(
			"%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
			pageNum+1, len(stream), stream))
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := []int{0}
	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF",
		len(offsets), xrefStart))

	return out.Bytes(), nil
}

func buildPageStream(lines []string) string {
	var content strings.Builder
	content.WriteString("BT\n/F1 10 Tf\n14 TL\n50 800 Td\n")
	for i, line := range lines {
		if i > 0 {
			content.WriteString("T* ")
		}
		content.WriteString(fmt.Sprintf("(%s) Tj\n", pdfEscape(line)))
	}
	content.WriteString("ET")
	return content.String()
}

func formatPDFLine(fields []string) string {
	padded := make([]string, len(fields))
	for i, field := range fields {
		if i < 2 {
			padded[i] = fmt.Sprintf("%-24s", field)
		} else {
			padded[i] = fmt.Sprintf("%-16s", field)
		}
	}
	return strings.TrimRight(strings.Join(padded, ""), " ")
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}
