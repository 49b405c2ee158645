// Package report renders batch extraction results as an XLSX workbook.
package report

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/content-analyzer/internal/batch"
)

const (
	resultsSheet = "Results"
	summarySheet = "Summary"

	// Excel rejects cells longer than this.
	maxCellChars = 32767
)

var resultHeaders = []string{
	"ID",
	"File",
	"Kind",
	"Status",
	"Pages",
	"Words",
	"Characters",
	"Suggestions",
	"Error",
	"Extracted Text",
}

type Writer struct {
	logger *slog.Logger
}

func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{logger: logger}
}

// XLSX returns a workbook with one row per result and a summary sheet.
func (w *Writer) XLSX(results []batch.FileResult, stats batch.DirStats) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for i, h := range resultHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(resultsSheet, cell, h)
	}

	row := 2
	for _, r := range results {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(resultsSheet, cell, v)
		}
		status := "ok"
		if !r.OK() {
			status = "failed"
		}
		write(1, r.ID)
		write(2, r.Path)
		write(3, string(r.Kind))
		write(4, status)
		write(5, r.Pages)
		write(6, r.WordCount)
		write(7, r.TextLength)
		write(8, strings.Join(r.Suggestions, "\n"))
		write(9, r.Err)
		write(10, truncate(r.Text, maxCellChars))
		row++
	}

	_ = f.SetColWidth(resultsSheet, "A", "A", 38) // id
	_ = f.SetColWidth(resultsSheet, "B", "B", 60) // path
	_ = f.SetColWidth(resultsSheet, "C", "G", 12)
	_ = f.SetColWidth(resultsSheet, "H", "H", 70) // suggestions
	_ = f.SetColWidth(resultsSheet, "I", "I", 40)
	_ = f.SetColWidth(resultsSheet, "J", "J", 80)

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("summary sheet: %w", err)
	}
	summary := [][]any{
		{"Scanned", stats.Scanned},
		{"Matched", stats.Matched},
		{"Succeeded", stats.Succeeded},
		{"Failed", stats.Failed},
	}
	for i, kv := range summary {
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+1), &kv); err != nil {
			return nil, fmt.Errorf("summary row: %w", err)
		}
	}

	idx, _ := f.GetSheetIndex(resultsSheet)
	f.SetActiveSheet(idx)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	w.logger.Info("report.xlsx.ok",
		"rows", len(results),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
