package Progress

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// BuildWorkbook renders a progress bundle as an Excel report with one sheet
// for the per-day series and one for the measurement history.
func BuildWorkbook(bundle Bundle) (*bytes.Buffer, error) {
	f := excelize.NewFile()

	dailySheet := "Daily Progress"
	index, err := f.NewSheet(dailySheet)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headerStyle, styleErr := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
	})

	dailyHeaders := []string{"Date", "Total Tasks", "Completed", "Completion %"}
	for i, header := range dailyHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(dailySheet, cell, header)
	}
	if styleErr == nil {
		f.SetRowStyle(dailySheet, 1, 1, headerStyle)
	}

	series := make([]DailyProgress, len(bundle.DailyProgress))
	copy(series, bundle.DailyProgress)
	SortDailyDesc(series)

	for rowIndex, day := range series {
		row := rowIndex + 2
		values := []interface{}{
			day.Date.String(),
			day.TotalTasks,
			day.CompletedTasks,
			day.CompletionPct,
		}
		for colIndex, value := range values {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, row)
			f.SetCellValue(dailySheet, cell, value)
		}
	}

	summaryRow := len(series) + 3
	f.SetCellValue(dailySheet, fmt.Sprintf("A%d", summaryRow), "All-time total")
	f.SetCellValue(dailySheet, fmt.Sprintf("B%d", summaryRow), bundle.TotalEver)
	f.SetCellValue(dailySheet, fmt.Sprintf("A%d", summaryRow+1), "All-time completed")
	f.SetCellValue(dailySheet, fmt.Sprintf("B%d", summaryRow+1), bundle.CompletedEver)
	f.SetCellValue(dailySheet, fmt.Sprintf("A%d", summaryRow+2), "Current streak (days)")
	f.SetCellValue(dailySheet, fmt.Sprintf("B%d", summaryRow+2), bundle.StreakDays)

	measureSheet := "Measurements"
	if _, err := f.NewSheet(measureSheet); err != nil {
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	measureHeaders := []string{"Measured At", "Height (cm)", "Weight (kg)", "Note"}
	for i, header := range measureHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(measureSheet, cell, header)
	}
	if styleErr == nil {
		f.SetRowStyle(measureSheet, 1, 1, headerStyle)
	}

	for rowIndex, m := range bundle.Measurements {
		row := rowIndex + 2
		f.SetCellValue(measureSheet, fmt.Sprintf("A%d", row), m.MeasuredAt.Format("2006-01-02 15:04:05"))
		if m.HeightCm != nil {
			f.SetCellValue(measureSheet, fmt.Sprintf("B%d", row), *m.HeightCm)
		}
		if m.WeightKg != nil {
			f.SetCellValue(measureSheet, fmt.Sprintf("C%d", row), *m.WeightKg)
		}
		f.SetCellValue(measureSheet, fmt.Sprintf("D%d", row), m.Note)
	}

	for _, sheet := range []string{dailySheet, measureSheet} {
		for i := 0; i < 4; i++ {
			col := string('A' + rune(i))
			f.SetColWidth(sheet, col, col, 18)
		}
	}

	f.DeleteSheet("Sheet1")

	return f.WriteToBuffer()
}
