package report

import (
	"github.com/xuri/excelize/v2"
)

const (
	sweepSheet   = "sweep"
	summarySheet = "summary"
)

// WriteXLSX stores the records on a "sweep" sheet and the residuals on a
// "summary" sheet, one header row each.
func WriteXLSX(path string, d *Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sweepSheet); err != nil {
		return err
	}
	rows := make([][]any, 0, len(d.Records)+1)
	rows = append(rows, []any{"series", "p", "analytic", "empirical", "count", "trials", "ci_lo", "ci_hi", "within"})
	for _, r := range d.Records {
		rows = append(rows, []any{r.Series, r.P, r.Analytic, r.Empirical, r.Count, r.Trials, r.Lo, r.Hi, r.Within})
	}
	if err := writeRows(f, sweepSheet, rows); err != nil {
		return err
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	rows = rows[:0]
	rows = append(rows, []any{"series", "mean", "stddev", "max_abs", "rmse", "covered", "points"})
	for _, r := range d.Summary {
		rows = append(rows, []any{r.Name, r.Mean, r.StdDev, r.MaxAbs, r.RMSE, r.Covered, r.Points})
	}
	if err := writeRows(f, summarySheet, rows); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
