package backend

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sync"

	"github.com/OpenTraceLab/OpenTraceRF/pkg/smith"
)

// SimHook lets tests replace the simulator's canned answer for one call.
// Returning (nil, nil) falls back to the canned answer.
type SimHook func(op Operation, req Request) (any, error)

// SimCall records one request received by the simulator.
type SimCall struct {
	Op      Operation
	Request Request
}

// SimService is an in-process stand-in for the matching service. Its answers
// are canned shapes derived from the load's reflection coefficient: they
// draw sensibly on the chart but are not a matching synthesis.
type SimService struct {
	Z0 float64

	// SweepPoints is the number of sweep samples across ±SweepSpan.
	SweepPoints int
	SweepSpan   float64

	OnRequest SimHook

	mu    sync.Mutex
	calls []SimCall
}

var _ Service = (*SimService)(nil)

// NewSimService returns a simulator for the given reference impedance.
func NewSimService(z0 float64) *SimService {
	return &SimService{Z0: z0, SweepPoints: 11, SweepSpan: 0.1}
}

// Calls returns a copy of every request received so far, in arrival order.
func (s *SimService) Calls() []SimCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SimCall(nil), s.calls...)
}

// Reset forgets recorded calls.
func (s *SimService) Reset() {
	s.mu.Lock()
	s.calls = nil
	s.mu.Unlock()
}

func (s *SimService) Match(ctx context.Context, req Request) (*MatchResult, error) {
	return simulate(ctx, s, OpMatch, req, s.match)
}

func (s *SimService) SParameters(ctx context.Context, req Request) (*SParameters, error) {
	return simulate(ctx, s, OpSParameters, req, s.sparams)
}

func (s *SimService) Predict(ctx context.Context, req Request) (*Prediction, error) {
	return simulate(ctx, s, OpPredict, req, s.predict)
}

func (s *SimService) Sweep(ctx context.Context, req Request) (*Sweep, error) {
	return simulate(ctx, s, OpSweep, req, s.sweep)
}

// simulate records the call, consults the hook and otherwise builds the
// canned answer. Failures look like the HTTP client's.
func simulate[T any](ctx context.Context, s *SimService, op Operation, req Request, canned func(Request, smith.Complex) *T) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRequest, op, err)
	}
	s.mu.Lock()
	s.calls = append(s.calls, SimCall{Op: op, Request: req})
	hook := s.OnRequest
	s.mu.Unlock()

	if hook != nil {
		v, err := hook(op, req)
		if err != nil {
			return nil, err
		}
		if v != nil {
			out, ok := v.(*T)
			if !ok {
				return nil, fmt.Errorf("%w: %s: hook returned %T", ErrRequest, op, v)
			}
			return out, nil
		}
	}

	if req.Frequency <= 0 || req.ZReal < 0 {
		return nil, simError(op, "frequency must be positive and resistance non-negative")
	}
	gamma, err := smith.NewTransform(s.Z0).Gamma(req.Impedance())
	if err != nil {
		return nil, simError(op, err.Error())
	}
	return canned(req, gamma), nil
}

func simError(op Operation, msg string) error {
	return fmt.Errorf("%w: %w", ErrRequest, &StatusError{
		Op:     string(op),
		Status: http.StatusUnprocessableEntity,
		Body:   msg,
	})
}

// match walks from the load to the centre in two equal steps.
func (s *SimService) match(req Request, g smith.Complex) *MatchResult {
	return &MatchResult{
		MatchingType: "simulated",
		GammaPath:    GammaPath{Pair(g), Pair(g.Scale(0.5)), {}},
		Components:   Components{{Key: "type", Value: "simulated"}, {Key: "steps", Value: 2}},
	}
}

// sparams describes a lossless two-port that presents the load at port 1.
func (s *SimService) sparams(req Request, g smith.Complex) *SParameters {
	t := math.Sqrt(math.Max(0, 1-g.Abs()*g.Abs()))
	return &SParameters{
		S11: Pair(g),
		S21: Pair(smith.Real(t)),
		S12: Pair(smith.Real(t)),
		S22: Pair(smith.C(-g.Re, g.Im)),
	}
}

func (s *SimService) predict(req Request, g smith.Complex) *Prediction {
	kind := "l-match"
	if g.Abs() > 0.8 {
		kind = "pi"
	}
	return &Prediction{PredictedType: kind, Confidence: 1 - g.Abs()/2}
}

// sweep is matched at the requested frequency and detunes linearly towards
// the unmatched load at ±SweepSpan, turning once around the chart.
func (s *SimService) sweep(req Request, g smith.Complex) *Sweep {
	n := s.SweepPoints
	if n < 2 {
		n = 2
	}
	span := s.SweepSpan
	if span <= 0 {
		span = 0.1
	}
	out := &Sweep{Points: make([]SweepPoint, n)}
	for i := range out.Points {
		off := -span + 2*span*float64(i)/float64(n-1)
		turn := smith.C(math.Cos(math.Pi*off/span), -math.Sin(math.Pi*off/span))
		out.Points[i] = SweepPoint{
			Frequency: req.Frequency * (1 + off),
			Gamma:     Pair(g.Mul(turn).Scale(math.Abs(off) / span)),
		}
	}
	return out
}
