// Package dataset reads and writes the xlsx spreadsheets the pipeline works
// on. Column layout (1-indexed, row 1 is the header): 1 text, 3 human label,
// 7 human-label explanation, 8 LLM label, 9 LLM explanation.
package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Column positions in the spreadsheet contract.
const (
	ColText             = 1
	ColHumanLabel       = 3
	ColHumanExplanation = 7
	ColLLMLabel         = 8
	ColLLMExplanation   = 9
)

// Row is one labeled input row. HumanLabel is empty for unlabeled datasets.
type Row struct {
	Text       string
	HumanLabel string
}

// Enrichment holds the merged LLM output for one text, keyed by the text
// itself. Duplicate texts in a dataset collide here; the last occurrence
// wins, matching the lookup-map join everywhere else in the pipeline.
type Enrichment struct {
	HumanExplanations map[string]string
	LLMLabels         map[string]string
	LLMExplanations   map[string]string
}

// NewEnrichment returns an Enrichment with initialized maps.
func NewEnrichment() Enrichment {
	return Enrichment{
		HumanExplanations: make(map[string]string),
		LLMLabels:         make(map[string]string),
		LLMExplanations:   make(map[string]string),
	}
}

// Load reads the input rows from the first sheet of an xlsx file, skipping
// the header row. Rows with an empty text cell are dropped.
func Load(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	var rows []Row
	for i, cell := range cells {
		if i == 0 {
			continue // header
		}
		text := cellAt(cell, ColText)
		if text == "" {
			continue
		}
		rows = append(rows, Row{
			Text:       text,
			HumanLabel: cellAt(cell, ColHumanLabel),
		})
	}
	return rows, nil
}

// WriteProcessed copies the input workbook to outPath with the enrichment
// columns filled in, joining on the text cell. Rows whose text has no
// enrichment entry keep their cells empty.
func WriteProcessed(inPath, outPath string, enr Enrichment) error {
	f, err := excelize.OpenFile(inPath)
	if err != nil {
		return fmt.Errorf("open dataset %s: %w", inPath, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	cells, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	if err := setCell(f, sheet, ColHumanExplanation, 1, "human_label_explanation"); err != nil {
		return err
	}
	if err := setCell(f, sheet, ColLLMLabel, 1, "llm_label"); err != nil {
		return err
	}
	if err := setCell(f, sheet, ColLLMExplanation, 1, "llm_label_explanation"); err != nil {
		return err
	}

	for i, cell := range cells {
		if i == 0 {
			continue
		}
		text := cellAt(cell, ColText)
		if text == "" {
			continue
		}
		rowNum := i + 1 // 1-indexed sheet row

		if v, ok := enr.HumanExplanations[text]; ok {
			if err := setCell(f, sheet, ColHumanExplanation, rowNum, v); err != nil {
				return err
			}
		}
		if v, ok := enr.LLMLabels[text]; ok {
			if err := setCell(f, sheet, ColLLMLabel, rowNum, v); err != nil {
				return err
			}
		}
		if v, ok := enr.LLMExplanations[text]; ok {
			if err := setCell(f, sheet, ColLLMExplanation, rowNum, v); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(outPath); err != nil {
		return fmt.Errorf("save %s: %w", outPath, err)
	}
	return nil
}

// LoadProcessed reads a processed spreadsheet back for comparison: text,
// human label, and LLM label/explanation columns.
func LoadProcessed(path string) ([]LabeledResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open results %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	var results []LabeledResult
	for i, cell := range cells {
		if i == 0 {
			continue
		}
		text := cellAt(cell, ColText)
		if text == "" {
			continue
		}
		results = append(results, LabeledResult{
			Text:           text,
			HumanLabel:     cellAt(cell, ColHumanLabel),
			LLMLabel:       cellAt(cell, ColLLMLabel),
			LLMExplanation: cellAt(cell, ColLLMExplanation),
		})
	}
	return results, nil
}

// LabeledResult is one row of a processed spreadsheet.
type LabeledResult struct {
	Text           string
	HumanLabel     string
	LLMLabel       string
	LLMExplanation string
}

// cellAt returns the trimmed-by-excelize value of a 1-indexed column, or ""
// when the row is shorter than that.
func cellAt(row []string, col int) string {
	if col-1 < len(row) {
		return row[col-1]
	}
	return ""
}

func setCell(f *excelize.File, sheet string, col, row int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell coords (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("set cell %s: %w", cell, err)
	}
	return nil
}
