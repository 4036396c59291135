// Package export writes matching results to an Excel workbook.
package export

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/OpenTraceLab/OpenTraceRF/pkg/backend"
	"github.com/OpenTraceLab/OpenTraceRF/pkg/smith"
)

// Sheet names.
const (
	SheetSummary     = "Summary"
	SheetGammaPath   = "Gamma Path"
	SheetComponents  = "Components"
	SheetSParameters = "S-Parameters"
	SheetSweep       = "Sweep"
)

// Report is one matching session's input and whatever results it has.
type Report struct {
	Request     backend.Request
	Z0          float64
	Match       *backend.MatchResult
	SParameters *backend.SParameters
	Prediction  *backend.Prediction
	Sweep       *backend.Sweep
}

// sheet appends rows to one worksheet.
type sheet struct {
	f    *excelize.File
	name string
	row  int
	err  error
}

func (s *sheet) add(values ...any) {
	if s.err != nil {
		return
	}
	s.row++
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		s.err = err
		return
	}
	s.err = s.f.SetSheetRow(s.name, cell, &values)
}

func (s *sheet) header(style int, values ...any) {
	s.add(values...)
	if s.err != nil {
		return
	}
	last, err := excelize.CoordinatesToCellName(len(values), s.row)
	if err != nil {
		s.err = err
		return
	}
	first, _ := excelize.CoordinatesToCellName(1, s.row)
	s.err = s.f.SetCellStyle(s.name, first, last, style)
}

// Workbook builds the workbook for r. Sheets without data are left out.
// The caller closes the file.
func Workbook(r Report) (*excelize.File, error) {
	if r.Z0 <= 0 {
		r.Z0 = smith.DefaultZ0
	}
	t := smith.NewTransform(r.Z0)

	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, err
	}

	sheets := []*sheet{summary(f, bold, r, t)}
	if r.Match != nil && len(r.Match.GammaPath) > 0 {
		sheets = append(sheets, gammaPath(f, bold, r.Match.GammaPath, t))
	}
	if r.Match != nil && len(r.Match.Components) > 0 {
		sheets = append(sheets, components(f, bold, r.Match.Components))
	}
	if r.SParameters != nil {
		sheets = append(sheets, sparams(f, bold, r.SParameters))
	}
	if r.Sweep != nil && len(r.Sweep.Points) > 0 {
		sheets = append(sheets, sweep(f, bold, r.Sweep))
	}

	var errs []error
	for _, s := range sheets {
		if s.err != nil {
			errs = append(errs, fmt.Errorf("sheet %q: %w", s.name, s.err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func newSheet(f *excelize.File, name string) *sheet {
	idx, err := f.GetSheetIndex(name)
	if err == nil && idx < 0 {
		_, err = f.NewSheet(name)
	}
	return &sheet{f: f, name: name, err: err}
}

// impedanceCells converts gamma to ohms, or reports the open-circuit pole.
func impedanceCells(t smith.Transform, g smith.Complex) []any {
	z, err := t.Impedance(g)
	if err != nil {
		return []any{"open", "open"}
	}
	return []any{z.Re, z.Im}
}

func summary(f *excelize.File, bold int, r Report, t smith.Transform) *sheet {
	s := newSheet(f, SheetSummary)
	s.header(bold, "Field", "Value")
	s.add("Frequency (GHz)", r.Request.Frequency)
	s.add("Load (Ω)", r.Request.Impedance().String())
	s.add("Z0 (Ω)", r.Z0)

	if g, err := t.Gamma(r.Request.Impedance()); err == nil {
		s.add("Γ", smith.FormatGamma(g))
		s.add("|Γ|", g.Abs())
		if vswr, err := smith.VSWR(g); err == nil {
			s.add("VSWR", vswr)
		}
		if rl, err := smith.ReturnLossDB(g); err == nil {
			s.add("Return loss (dB)", rl)
		}
	}
	if r.Match != nil {
		s.add("Matching type", r.Match.MatchingType)
	}
	if r.Prediction != nil {
		s.add("Predicted type", r.Prediction.PredictedType)
		s.add("Confidence", r.Prediction.Confidence)
	}
	return s
}

func gammaPath(f *excelize.File, bold int, path backend.GammaPath, t smith.Transform) *sheet {
	s := newSheet(f, SheetGammaPath)
	s.header(bold, "Step", "Γ real", "Γ imag", "|Γ|", "Z real (Ω)", "Z imag (Ω)")
	for i, g := range path.Complex() {
		row := append([]any{i, g.Re, g.Im, g.Abs()}, impedanceCells(t, g)...)
		s.add(row...)
	}
	return s
}

func components(f *excelize.File, bold int, c backend.Components) *sheet {
	s := newSheet(f, SheetComponents)
	s.header(bold, "Component", "Value")
	for _, e := range c.Entries() {
		s.add(e.Label, e.Value)
	}
	return s
}

func sparams(f *excelize.File, bold int, sp *backend.SParameters) *sheet {
	s := newSheet(f, SheetSParameters)
	s.header(bold, "Parameter", "Real", "Imag", "Magnitude", "dB")
	for _, p := range []struct {
		name string
		v    backend.Pair
	}{{"S11", sp.S11}, {"S12", sp.S12}, {"S21", sp.S21}, {"S22", sp.S22}} {
		c := p.v.Complex()
		mag := c.Abs()
		var db any = "-inf"
		if mag > 0 {
			db = 20 * math.Log10(mag)
		}
		s.add(p.name, c.Re, c.Im, mag, db)
	}
	return s
}

func sweep(f *excelize.File, bold int, sw *backend.Sweep) *sheet {
	s := newSheet(f, SheetSweep)
	s.header(bold, "Frequency (GHz)", "Γ real", "Γ imag", "|Γ|", "VSWR")
	for _, p := range sw.Points {
		g := p.Gamma.Complex()
		var vswr any = "inf"
		if v, err := smith.VSWR(g); err == nil {
			vswr = v
		}
		s.add(p.Frequency, g.Re, g.Im, g.Abs(), vswr)
	}
	return s
}

// Write streams the workbook for r as .xlsx.
func Write(w io.Writer, r Report) error {
	f, err := Workbook(r)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteTo(w)
	return err
}

// Save writes the workbook for r to path.
func Save(path string, r Report) error {
	f, err := Workbook(r)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}
