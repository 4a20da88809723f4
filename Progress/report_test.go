package Progress

import (
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"KidGrow/Models"
)

func TestBuildWorkbook(t *testing.T) {
	base := Models.NewDateOnly(2026, time.May, 10)
	height := 92.5
	bundle := Bundle{
		Child:         ChildSummary{ID: 1, Name: "Mira", AgeGroup: Models.AgeGroupToddler},
		TotalEver:     10,
		CompletedEver: 7,
		StreakDays:    2,
		DailyProgress: []DailyProgress{
			day(base.AddDays(-1), 2, 2),
			day(base, 2, 1),
		},
		Measurements: []Models.ChildMeasurement{
			{ChildID: 1, HeightCm: &height, Note: "Initial measurement", MeasuredAt: time.Date(2026, time.May, 1, 9, 0, 0, 0, time.UTC)},
		},
	}

	buf, err := BuildWorkbook(bundle)
	if err != nil {
		t.Fatalf("BuildWorkbook failed: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Daily Progress", "Measurements"} {
		if index, err := f.GetSheetIndex(sheet); err != nil || index < 0 {
			t.Fatalf("sheet %q missing", sheet)
		}
	}
	if index, _ := f.GetSheetIndex("Sheet1"); index >= 0 {
		t.Fatalf("default sheet not removed")
	}

	// The series is written most-recent-first.
	firstDate, err := f.GetCellValue("Daily Progress", "A2")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if firstDate != base.String() {
		t.Fatalf("first series row = %q, want %s", firstDate, base)
	}

	streak, err := f.GetCellValue("Daily Progress", "B7")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if streak != "2" {
		t.Fatalf("streak cell = %q, want 2", streak)
	}

	note, err := f.GetCellValue("Measurements", "D2")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if note != "Initial measurement" {
		t.Fatalf("measurement note = %q", note)
	}
}
