package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Sheet1"

// ExportDayBookExcel renders a day book into a spreadsheet, one row per
// entry plus a totals row. The caller streams the file to the client.
func ExportDayBookExcel(report *DayBookReport) (*excelize.File, error) {
	f := excelize.NewFile()
	if _, err := f.NewSheet(exportSheet); err != nil {
		return nil, err
	}

	headers := []string{"Date", "Ledger", "Type", "Description", "Amount", "Payment Method", "Reference No"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(exportSheet, cell, h)
	}

	for i, entry := range report.Entries {
		row := i + 2
		f.SetCellValue(exportSheet, "A"+fmt.Sprint(row), entry.Date.Format("2006-01-02"))
		f.SetCellValue(exportSheet, "B"+fmt.Sprint(row), entry.LedgerName)
		f.SetCellValue(exportSheet, "C"+fmt.Sprint(row), string(entry.Type))
		f.SetCellValue(exportSheet, "D"+fmt.Sprint(row), entry.Description)
		f.SetCellValue(exportSheet, "E"+fmt.Sprint(row), entry.Amount.String())
		f.SetCellValue(exportSheet, "F"+fmt.Sprint(row), entry.PaymentMethod)
		f.SetCellValue(exportSheet, "G"+fmt.Sprint(row), entry.ReferenceNo)
	}

	totalsRow := len(report.Entries) + 3
	f.SetCellValue(exportSheet, "A"+fmt.Sprint(totalsRow), "Total Income")
	f.SetCellValue(exportSheet, "B"+fmt.Sprint(totalsRow), report.Totals.TotalIncome.String())
	f.SetCellValue(exportSheet, "A"+fmt.Sprint(totalsRow+1), "Total Expense")
	f.SetCellValue(exportSheet, "B"+fmt.Sprint(totalsRow+1), report.Totals.TotalExpense.String())
	f.SetCellValue(exportSheet, "A"+fmt.Sprint(totalsRow+2), "Net Balance")
	f.SetCellValue(exportSheet, "B"+fmt.Sprint(totalsRow+2), report.Totals.NetBalance.String())
	return f, nil
}

// ExportTrialBalanceExcel renders a trial balance into a spreadsheet.
func ExportTrialBalanceExcel(report *TrialBalanceReport) (*excelize.File, error) {
	f := excelize.NewFile()
	if _, err := f.NewSheet(exportSheet); err != nil {
		return nil, err
	}

	f.SetCellValue(exportSheet, "A1", "Ledger")
	f.SetCellValue(exportSheet, "B1", "Type")
	f.SetCellValue(exportSheet, "C1", "Debit")
	f.SetCellValue(exportSheet, "D1", "Credit")
	f.SetCellValue(exportSheet, "E1", "Entries")

	for i, row := range report.Rows {
		n := i + 2
		f.SetCellValue(exportSheet, "A"+fmt.Sprint(n), row.LedgerName)
		f.SetCellValue(exportSheet, "B"+fmt.Sprint(n), string(row.Type))
		f.SetCellValue(exportSheet, "C"+fmt.Sprint(n), row.Debit.String())
		f.SetCellValue(exportSheet, "D"+fmt.Sprint(n), row.Credit.String())
		f.SetCellValue(exportSheet, "E"+fmt.Sprint(n), row.EntryCount)
	}

	totalsRow := len(report.Rows) + 3
	f.SetCellValue(exportSheet, "A"+fmt.Sprint(totalsRow), "Totals")
	f.SetCellValue(exportSheet, "C"+fmt.Sprint(totalsRow), report.Totals.TotalDebit.String())
	f.SetCellValue(exportSheet, "D"+fmt.Sprint(totalsRow), report.Totals.TotalCredit.String())
	f.SetCellValue(exportSheet, "A"+fmt.Sprint(totalsRow+1), "Difference")
	f.SetCellValue(exportSheet, "C"+fmt.Sprint(totalsRow+1), report.Totals.Difference.String())
	return f, nil
}
