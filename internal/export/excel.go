// Package export renders member statements as spreadsheets.
package export

import (
	"fmt"
	"io"
	"time"

	"lunch-ledger-go/internal/domain/debt"
	"github.com/xuri/excelize/v2"
)

const (
	sheetName = "Statement"

	// ContentType is the MIME type of the produced workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var statementHeaders = []string{"Date", "Amount", "Status", "Note"}

// WriteMemberStatement writes a member's annotated statement for a date range
// as an .xlsx workbook: one row per entry (date, amount, paid status, note),
// a blank spacer row and a grand total row.
func WriteMemberStatement(w io.Writer, statement []debt.StatementEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	for i, header := range statementHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("set header: %w", err)
		}
	}

	total := 0
	row := 1
	for _, item := range statement {
		row++
		total += item.Amount

		status := "unpaid"
		if item.IsPaid {
			status = "paid"
		}
		note := ""
		if item.Entry.Note != nil {
			note = *item.Entry.Note
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), item.Entry.Date.Format("02/01/2006"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), item.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), status)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), note)
	}

	row += 2
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "TOTAL")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), total)

	f.SetColWidth(sheetName, "A", "B", 15)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 30)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// StatementFilename builds the attachment name for a member's statement.
func StatementFilename(memberName string, from, to time.Time) string {
	return fmt.Sprintf("%s_%s_%s.xlsx", memberName, from.Format("02-01-2006"), to.Format("02-01-2006"))
}
