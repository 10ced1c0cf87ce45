// Package report renders the task list as a read-only document.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"todo/internal/task"
)

// Format is a report output format.
type Format string

const (
	Text Format = "text"
	CSV  Format = "csv"
	PDF  Format = "pdf"
)

// Title heads the PDF report.
const Title = "Task List"

// ParseFormat parses a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Text, CSV, PDF:
		return f, nil
	case "txt":
		return Text, nil
	default:
		return "", fmt.Errorf("unknown format %s", s)
	}
}

// FormatForPath picks a format from the file extension, defaulting to text.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSV
	case ".pdf":
		return PDF
	default:
		return Text
	}
}

// Write renders tasks to w in the given format.
func Write(w io.Writer, format Format, tasks []task.Task) error {
	switch format {
	case Text:
		return writeText(w, tasks)
	case CSV:
		return writeCSV(w, tasks)
	case PDF:
		return writePDF(w, tasks)
	default:
		return fmt.Errorf("unknown format %s", format)
	}
}

func writeText(w io.Writer, tasks []task.Task) error {
	for _, t := range tasks {
		if _, err := fmt.Fprintln(w, t.String()); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(w io.Writer, tasks []task.Task) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"position", "title", "completed"})
	for i, t := range tasks {
		_ = cw.Write([]string{strconv.Itoa(i + 1), t.Title, strconv.FormatBool(t.Completed)})
	}
	cw.Flush()
	return cw.Error()
}

// writePDF uses the core Arial font, which is not Unicode: titles are
// translated to cp1252 and the markers are plain ASCII.
func writePDF(w io.Writer, tasks []task.Task) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, Title)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	if len(tasks) == 0 {
		pdf.MultiCell(0, 6, "No tasks.", "0", "L", false)
	}
	for i, t := range tasks {
		marker := "[ ]"
		if t.Completed {
			marker = "[x]"
		}
		line := fmt.Sprintf("%d. %s %s", i+1, marker, tr(t.Title))
		pdf.MultiCell(0, 6, line, "0", "L", false)
	}

	return pdf.Output(w)
}
