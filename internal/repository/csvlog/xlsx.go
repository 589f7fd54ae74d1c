package csvlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Comparisons"

// WriteXLSX converts the CSV log at csvPath into a workbook written to w.
func WriteXLSX(csvPath string, w io.Writer) error {
	const opn = "repository.csvlog.WriteXLSX"

	file, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("%s: failed to open log: %w", opn, err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return fmt.Errorf("%s: failed to read log: %w", opn, err)
	}

	book := excelize.NewFile()
	defer book.Close()

	if err = book.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("%s: failed to name sheet: %w", opn, err)
	}

	for i, row := range rows {
		cell, cellErr := excelize.CoordinatesToCellName(1, i+1)
		if cellErr != nil {
			return fmt.Errorf("%s: %w", opn, cellErr)
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err = book.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("%s: failed to write row %d: %w", opn, i+1, err)
		}
	}

	if err = book.Write(w); err != nil {
		return fmt.Errorf("%s: failed to write workbook: %w", opn, err)
	}

	return nil
}
