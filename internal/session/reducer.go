package session

import (
	"errors"

	"github.com/OpenTraceLab/OpenTraceRF/pkg/backend"
	"github.com/OpenTraceLab/OpenTraceRF/pkg/smith"
	"github.com/OpenTraceLab/OpenTraceRF/pkg/units"
)

// Command is a user action or a backend completion.
type Command interface {
	isCommand()
}

// EditField replaces the text of one form field.
type EditField struct {
	Field Field
	Value string
}

// ChartClick is a click at (X, Y) relative to the chart's bounding box.
type ChartClick struct {
	Box  smith.BoundingBox
	X, Y float64
}

// Submit validates the form and, if valid, dispatches op.
type Submit struct {
	Op backend.Operation
}

// Response delivers the outcome of a dispatched request. Value holds the
// operation's result type (*backend.MatchResult, ...) when Err is nil.
type Response struct {
	Op    backend.Operation
	Seq   uint64
	Value any
	Err   error
}

// Reset clears results and the marker but keeps the form.
type Reset struct{}

func (EditField) isCommand()  {}
func (ChartClick) isCommand() {}
func (Submit) isCommand()     {}
func (Response) isCommand()   {}
func (Reset) isCommand()      {}

// Dispatch is a request the caller must send to the backend. Its outcome
// comes back as a Response with the same Op and Seq.
type Dispatch struct {
	Op      backend.Operation
	Seq     uint64
	Request backend.Request
}

// Reducer applies commands to states. It holds only the injected chart
// configuration and is safe for concurrent use.
type Reducer struct {
	transform smith.Transform
	frame     smith.Frame
}

// NewReducer returns a reducer for cfg.
func NewReducer(cfg smith.Config) Reducer {
	return Reducer{transform: cfg.Transform(), frame: cfg.Frame()}
}

// Apply returns the state after cmd, and a request to send when cmd is a
// valid Submit.
func (r Reducer) Apply(s State, cmd Command) (State, *Dispatch, error) {
	switch c := cmd.(type) {
	case EditField:
		s.Form = s.Form.With(c.Field, c.Value)
		return s, nil, nil
	case ChartClick:
		return r.click(s, c)
	case Submit:
		return r.submit(s, c)
	case Response:
		return r.response(s, c), nil, nil
	case Reset:
		return State{Form: s.Form, nextSeq: s.nextSeq}, nil, nil
	}
	return s, nil, nil
}

func (r Reducer) click(s State, c ChartClick) (State, *Dispatch, error) {
	res, err := smith.Click(c.Box, c.X, c.Y, r.transform)
	switch {
	case errors.Is(err, smith.ErrOutOfDomain):
		return s, nil, nil
	case errors.Is(err, smith.ErrSingularTransform):
		s.Notice = MsgOpenCircuit
		return s, nil, err
	case err != nil:
		return s, nil, err
	}
	s.Form.ZReal = smith.FormatOhms(res.Impedance.Re)
	s.Form.ZImag = smith.FormatOhms(res.Impedance.Im)
	s.Click = &res
	marker := res.Marker
	s.Marker = &marker
	s.Notice = ""
	return s, nil, nil
}

// Validate parses the form into a backend request.
func Validate(f Form) (backend.Request, error) {
	for _, field := range Fields {
		if f.Get(field) == "" {
			return backend.Request{}, &ValidationError{Field: field, Err: units.ErrEmpty}
		}
	}
	freq, err := units.ParseFrequencyGHz(f.Frequency)
	if err != nil {
		return backend.Request{}, &ValidationError{Field: FieldFrequency, Err: err}
	}
	re, err := units.ParseOhms(f.ZReal)
	if err != nil {
		return backend.Request{}, &ValidationError{Field: FieldZReal, Err: err}
	}
	im, err := units.ParseOhms(f.ZImag)
	if err != nil {
		return backend.Request{}, &ValidationError{Field: FieldZImag, Err: err}
	}
	return backend.Request{Frequency: freq, ZReal: re, ZImag: im}, nil
}

func (r Reducer) submit(s State, c Submit) (State, *Dispatch, error) {
	i := opIndex(c.Op)
	if i < 0 {
		return s, nil, errors.New("session: unknown operation " + string(c.Op))
	}
	req, err := Validate(s.Form)
	if err != nil {
		if c.Op == backend.OpMatch {
			s.Result = nil
			s.Path = smith.Path{}
		}
		s.Error = MsgFieldsRequired
		return s, nil, err
	}
	s.nextSeq++
	s.pending[i] = s.nextSeq
	return s, &Dispatch{Op: c.Op, Seq: s.nextSeq, Request: req}, nil
}

func (r Reducer) response(s State, c Response) State {
	i := opIndex(c.Op)
	if i < 0 || c.Seq == 0 || s.pending[i] != c.Seq {
		// stale or unknown: a newer request of the same kind owns the slot
		return s
	}
	s.pending[i] = 0

	if c.Err != nil {
		switch c.Op {
		case backend.OpMatch:
			s.Result = nil
			s.Path = smith.Path{}
			s.Error = MsgBackendFailed
		case backend.OpSweep:
			s.Sweep = nil
			s.SweepPath = smith.Path{}
		case backend.OpSParameters:
			s.SParameters = nil
			s.Error = MsgBackendFailed
		case backend.OpPredict:
			s.Prediction = nil
			s.Error = MsgBackendFailed
		}
		return s
	}

	switch v := c.Value.(type) {
	case *backend.MatchResult:
		s.Result = v
		s.Path = r.frame.Path(v.GammaPath.Complex())
		s.Error = ""
	case *backend.SParameters:
		s.SParameters = v
		s.Error = ""
	case *backend.Prediction:
		s.Prediction = v
		s.Error = ""
	case *backend.Sweep:
		s.Sweep = v
		s.SweepPath = r.frame.Path(v.Gammas())
	}
	return s
}
