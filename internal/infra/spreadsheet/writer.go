// internal/infra/spreadsheet/writer.go
package spreadsheet

import (
	"fmt"
	"os"
	"path/filepath"

	"course_activity_report/internal/domain/report"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const outputPrefix = "populated_"

// TemplateWriter fills a copy of an xlsx template with report rows.
type TemplateWriter struct {
	templatePath string
	outputDir    string
	logger       *logrus.Entry
}

func NewTemplateWriter(templatePath, outputDir string, logger *logrus.Entry) *TemplateWriter {
	return &TemplateWriter{
		templatePath: templatePath,
		outputDir:    outputDir,
		logger:       logger,
	}
}

// OutputPath is where Write saves the populated workbook.
func (w *TemplateWriter) OutputPath() string {
	return filepath.Join(w.outputDir, outputPrefix+filepath.Base(w.templatePath))
}

// Write loads the template, writes rows on the active sheet from
// report.FirstDataRow downwards and saves under OutputPath. The template
// itself is never modified.
func (w *TemplateWriter) Write(rows []report.Row) (string, error) {
	if _, err := os.Stat(w.templatePath); err != nil {
		return "", fmt.Errorf("template %s: %w", w.templatePath, err)
	}

	book, err := excelize.OpenFile(w.templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to open template %s: %w", w.templatePath, err)
	}
	defer book.Close()

	sheet := book.GetSheetName(book.GetActiveSheetIndex())
	if sheet == "" {
		return "", fmt.Errorf("template %s has no active sheet", w.templatePath)
	}

	for i, row := range rows {
		index := report.FirstDataRow + i
		for _, c := range row.Cells() {
			cell, err := excelize.JoinCellName(c.Column, index)
			if err != nil {
				return "", err
			}
			if err := book.SetCellValue(sheet, cell, c.Value); err != nil {
				return "", fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
			}
		}
	}

	out := w.OutputPath()
	if err := book.SaveAs(out); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", out, err)
	}

	w.logger.WithFields(logrus.Fields{
		"output_file": out,
		"sheet":       sheet,
		"rows":        len(rows),
	}).Info("Excel file has been populated")

	return out, nil
}
