package export

import (
	"bytes"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/OpenTraceLab/OpenTraceRF/pkg/backend"
)

func fullReport() Report {
	return Report{
		Request: backend.Request{Frequency: 2.4, ZReal: 25, ZImag: -10},
		Z0:      50,
		Match: &backend.MatchResult{
			MatchingType: "l-match",
			GammaPath:    backend.GammaPath{{Re: 0.5}, {Re: 1}, {}},
			Components: backend.Components{
				{Key: "series_inductor_nH", Value: 3.3},
				{Key: "shunt_capacitor_pF", Value: 1.2},
			},
		},
		SParameters: &backend.SParameters{S11: backend.Pair{Re: 0.1}, S21: backend.Pair{Re: 0.9}},
		Prediction:  &backend.Prediction{PredictedType: "l-match", Confidence: 0.8},
		Sweep: &backend.Sweep{Points: []backend.SweepPoint{
			{Frequency: 2.3, Gamma: backend.Pair{Re: 0.2}},
			{Frequency: 2.4, Gamma: backend.Pair{}},
		}},
	}
}

func TestSaveWritesAllSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.xlsx")
	if err := Save(path, fullReport()); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()

	want := []string{SheetSummary, SheetGammaPath, SheetComponents, SheetSParameters, SheetSweep}
	if got := f.GetSheetList(); !reflect.DeepEqual(got, want) {
		t.Fatalf("sheets = %v, want %v", got, want)
	}

	rows, err := f.GetRows(SheetGammaPath)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("gamma path rows = %d, want 4", len(rows))
	}
	// Γ = 1 is the open-circuit pole
	if rows[2][4] != "open" {
		t.Fatalf("pole row = %v", rows[2])
	}
	if rows[3][4] != "50" || rows[3][5] != "0" {
		t.Fatalf("centre row = %v", rows[3])
	}

	comp, err := f.GetRows(SheetComponents)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(comp) != 3 || comp[1][0] != "Series Inductor NH" || comp[1][1] != "3.3" {
		t.Fatalf("components = %v", comp)
	}

	summary, err := f.GetRows(SheetSummary)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	found := map[string]string{}
	for _, r := range summary {
		if len(r) >= 2 {
			found[r[0]] = r[1]
		}
	}
	if found["Load (Ω)"] != "25-j10" || found["Matching type"] != "l-match" {
		t.Fatalf("summary = %v", summary)
	}

	sw, err := f.GetRows(SheetSweep)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(sw) != 3 || sw[2][4] != "1" {
		t.Fatalf("sweep = %v", sw)
	}
}

func TestWorkbookSkipsMissingResults(t *testing.T) {
	f, err := Workbook(Report{Request: backend.Request{Frequency: 1, ZReal: 50}})
	if err != nil {
		t.Fatalf("Workbook returned error: %v", err)
	}
	defer f.Close()
	if got := f.GetSheetList(); !reflect.DeepEqual(got, []string{SheetSummary}) {
		t.Fatalf("sheets = %v, want only the summary", got)
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, fullReport()); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	// xlsx is a zip archive
	if !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Fatalf("output is not a zip archive")
	}
}
