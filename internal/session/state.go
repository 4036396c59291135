package session

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceRF/pkg/backend"
	"github.com/OpenTraceLab/OpenTraceRF/pkg/smith"
)

// Field names one of the form inputs.
type Field string

const (
	FieldFrequency Field = "frequency"
	FieldZReal     Field = "z_real"
	FieldZImag     Field = "z_imag"
)

// Fields lists the form inputs in display order.
var Fields = []Field{FieldFrequency, FieldZReal, FieldZImag}

// Label returns the form label for f.
func (f Field) Label() string {
	switch f {
	case FieldFrequency:
		return "Frequency (GHz)"
	case FieldZReal:
		return "Real(Z)"
	case FieldZImag:
		return "Imag(Z)"
	default:
		return string(f)
	}
}

// Form holds the raw text of the input fields.
type Form struct {
	Frequency string
	ZReal     string
	ZImag     string
}

// Get returns the text of field f.
func (f Form) Get(field Field) string {
	switch field {
	case FieldFrequency:
		return f.Frequency
	case FieldZReal:
		return f.ZReal
	case FieldZImag:
		return f.ZImag
	}
	return ""
}

// With returns a copy of f with field set to value.
func (f Form) With(field Field, value string) Form {
	switch field {
	case FieldFrequency:
		f.Frequency = value
	case FieldZReal:
		f.ZReal = value
	case FieldZImag:
		f.ZImag = value
	}
	return f
}

const numOps = 4

func opIndex(op backend.Operation) int {
	switch op {
	case backend.OpMatch:
		return 0
	case backend.OpSParameters:
		return 1
	case backend.OpPredict:
		return 2
	case backend.OpSweep:
		return 3
	}
	return -1
}

// State is the immutable view model. Every command produces a new State;
// results it points to are never modified after they arrive.
type State struct {
	Form Form

	// Chart click
	Click  *smith.ClickResult
	Marker *smith.Marker

	// Match result and its drawable path
	Result *backend.MatchResult
	Path   smith.Path

	SParameters *backend.SParameters
	Prediction  *backend.Prediction

	Sweep     *backend.Sweep
	SweepPath smith.Path

	// Error replaces the results area; Notice is a non-blocking hint.
	Error  string
	Notice string

	nextSeq uint64
	pending [numOps]uint64
}

// Busy reports whether any request is in flight.
func (s State) Busy() bool {
	for _, seq := range s.pending {
		if seq != 0 {
			return true
		}
	}
	return false
}

// Pending reports whether a request for op is in flight.
func (s State) Pending(op backend.Operation) bool {
	i := opIndex(op)
	return i >= 0 && s.pending[i] != 0
}

// GammaSteps lists the result's gamma path as "Step i: Γ = a + jb".
func (s State) GammaSteps() []string {
	if s.Result == nil {
		return nil
	}
	steps := make([]string, len(s.Result.GammaPath))
	for i, g := range s.Result.GammaPath {
		steps[i] = fmt.Sprintf("Step %d: Γ = %s", i, smith.FormatGamma(g.Complex()))
	}
	return steps
}
