package backend

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/OpenTraceLab/OpenTraceRF/pkg/smith"
)

var simReq = Request{Frequency: 2.4, ZReal: 150, ZImag: 0}

func TestSimMatchEndsAtCentre(t *testing.T) {
	sim := NewSimService(50)
	res, err := sim.Match(context.Background(), simReq)
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	want := []smith.Complex{smith.C(0.5, 0), smith.C(0.25, 0), {}}
	got := res.GammaPath.Complex()
	if len(got) != len(want) {
		t.Fatalf("gamma path length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].EqualWithin(want[i], 1e-12) {
			t.Fatalf("step %d = %v, want %v", i, got[i], want[i])
		}
	}
	calls := sim.Calls()
	if len(calls) != 1 || calls[0].Op != OpMatch || calls[0].Request != simReq {
		t.Fatalf("calls = %+v", calls)
	}
}

func TestSimSParametersAreLossless(t *testing.T) {
	sp, err := NewSimService(50).SParameters(context.Background(), simReq)
	if err != nil {
		t.Fatal(err)
	}
	s11, s21 := sp.S11.Complex().Abs(), sp.S21.Complex().Abs()
	if math.Abs(s11*s11+s21*s21-1) > 1e-12 {
		t.Fatalf("|S11|²+|S21|² = %v, want 1", s11*s11+s21*s21)
	}
}

func TestSimSweepIsMatchedAtCentreFrequency(t *testing.T) {
	sim := NewSimService(50)
	sw, err := sim.Sweep(context.Background(), simReq)
	if err != nil {
		t.Fatal(err)
	}
	if len(sw.Points) != 11 {
		t.Fatalf("points = %d, want 11", len(sw.Points))
	}
	mid := sw.Points[5]
	if math.Abs(mid.Frequency-2.4) > 1e-12 || mid.Gamma.Complex().Abs() > 1e-12 {
		t.Fatalf("centre point = %+v", mid)
	}
	for _, end := range []SweepPoint{sw.Points[0], sw.Points[10]} {
		if math.Abs(end.Gamma.Complex().Abs()-0.5) > 1e-9 {
			t.Fatalf("edge |Γ| = %v, want 0.5", end.Gamma.Complex().Abs())
		}
	}
}

func TestSimRejectsInvalidRequests(t *testing.T) {
	sim := NewSimService(50)
	for _, req := range []Request{
		{Frequency: 0, ZReal: 50},
		{Frequency: 2.4, ZReal: -1},
	} {
		_, err := sim.Predict(context.Background(), req)
		var status *StatusError
		if !errors.Is(err, ErrRequest) || !errors.As(err, &status) {
			t.Fatalf("Predict(%+v) error = %v, want status error", req, err)
		}
	}
}

func TestSimHook(t *testing.T) {
	sim := NewSimService(50)
	boom := errors.New("boom")
	sim.OnRequest = func(op Operation, req Request) (any, error) {
		switch op {
		case OpPredict:
			return &Prediction{PredictedType: "t", Confidence: 0.5}, nil
		case OpSweep:
			return nil, boom
		}
		return nil, nil
	}

	p, err := sim.Predict(context.Background(), simReq)
	if err != nil || p.PredictedType != "t" {
		t.Fatalf("Predict = %+v, %v", p, err)
	}
	if _, err := sim.Sweep(context.Background(), simReq); !errors.Is(err, boom) {
		t.Fatalf("Sweep error = %v, want boom", err)
	}
	if m, err := sim.Match(context.Background(), simReq); err != nil || m.MatchingType != "simulated" {
		t.Fatalf("Match = %+v, %v", m, err)
	}
	if n := len(sim.Calls()); n != 3 {
		t.Fatalf("calls = %d, want 3", n)
	}
	sim.Reset()
	if n := len(sim.Calls()); n != 0 {
		t.Fatalf("calls after Reset = %d", n)
	}
}

func TestSimCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewSimService(50).Match(ctx, simReq); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}
