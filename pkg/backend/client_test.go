package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/OpenTraceLab/OpenTraceRF/pkg/smith"
)

func newTestServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request, req Request)) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		handler(w, r, req)
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL + "/")
}

func TestMatchDecodesGammaPath(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request, req Request) {
		if r.URL.Path != "/match" {
			t.Errorf("path = %s, want /match", r.URL.Path)
		}
		if req != (Request{Frequency: 2.4, ZReal: 25, ZImag: -10}) {
			t.Errorf("request = %+v", req)
		}
		w.Write([]byte(`{
			"matching_type": "l-match",
			"gamma_path": [[0.5, 0], [0.2, 0], [0, 0]],
			"components": {"type": "L-match (R < Z0)", "series_inductor_nH": 3.32, "shunt_capacitor_pF": 1.33}
		}`))
	})

	res, err := client.Match(context.Background(), Request{Frequency: 2.4, ZReal: 25, ZImag: -10})
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if res.MatchingType != "l-match" {
		t.Fatalf("MatchingType = %q", res.MatchingType)
	}
	want := []smith.Complex{smith.C(0.5, 0), smith.C(0.2, 0), smith.C(0, 0)}
	got := res.GammaPath.Complex()
	if len(got) != len(want) {
		t.Fatalf("gamma path length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("gamma[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	entries := res.Components.Entries()
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	wantEntries := []Entry{
		{Key: "type", Label: "Type", Value: "L-match (R < Z0)"},
		{Key: "series_inductor_nH", Label: "Series Inductor NH", Value: "3.32"},
		{Key: "shunt_capacitor_pF", Label: "Shunt Capacitor PF", Value: "1.33"},
	}
	for i, w := range wantEntries {
		if entries[i] != w {
			t.Fatalf("entry %d = %+v, want %+v", i, entries[i], w)
		}
	}
}

func TestOtherOperations(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request, req Request) {
		switch r.URL.Path {
		case "/sparams":
			w.Write([]byte(`{"s11":[0.1,-0.2],"s12":[0.9,0],"s21":[0.9,0],"s22":[0,0.05]}`))
		case "/predict":
			w.Write([]byte(`{"predicted_type":"stub","confidence":0.82}`))
		case "/sweep":
			w.Write([]byte(`{"points":[{"frequency":2.3,"gamma":[0.2,0.1]},{"frequency":2.4,"gamma":[0,0]}]}`))
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()
	req := Request{Frequency: 2.4, ZReal: 100, ZImag: 0}

	sp, err := client.SParameters(ctx, req)
	if err != nil {
		t.Fatalf("SParameters returned error: %v", err)
	}
	if sp.S11.Complex() != smith.C(0.1, -0.2) || sp.S22.Complex() != smith.C(0, 0.05) {
		t.Fatalf("S-parameters = %+v", sp)
	}

	pred, err := client.Predict(ctx, req)
	if err != nil {
		t.Fatalf("Predict returned error: %v", err)
	}
	if pred.PredictedType != "stub" || pred.Confidence != 0.82 {
		t.Fatalf("prediction = %+v", pred)
	}

	sw, err := client.Sweep(ctx, req)
	if err != nil {
		t.Fatalf("Sweep returned error: %v", err)
	}
	if len(sw.Points) != 2 || sw.Points[1].Frequency != 2.4 {
		t.Fatalf("sweep = %+v", sw)
	}
	if g := sw.Gammas(); len(g) != 2 || g[0] != smith.C(0.2, 0.1) {
		t.Fatalf("sweep gammas = %v", g)
	}
}

func TestStatusErrorIsRequestError(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request, req Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	_, err := client.Match(context.Background(), Request{Frequency: 1, ZReal: 1, ZImag: 1})
	if !errors.Is(err, ErrRequest) {
		t.Fatalf("error = %v, want ErrRequest", err)
	}
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error %v does not carry a StatusError", err)
	}
	if se.Status != http.StatusInternalServerError || se.Body != "boom" || se.Op != "match" {
		t.Fatalf("StatusError = %+v", se)
	}
}

func TestMalformedResponse(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request, req Request) {
		w.Write([]byte(`{"gamma_path": [[1, 2, 3]]}`))
	})
	_, err := client.Match(context.Background(), Request{Frequency: 1, ZReal: 1, ZImag: 1})
	if !errors.Is(err, ErrRequest) {
		t.Fatalf("error = %v, want ErrRequest", err)
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).Predict(context.Background(), Request{})
	if !errors.Is(err, ErrRequest) {
		t.Fatalf("error = %v, want ErrRequest", err)
	}
}

func TestLabel(t *testing.T) {
	cases := map[string]string{
		"series_capacitor_pF": "Series Capacitor PF",
		"type":                "Type",
		"shunt_inductor_nH":   "Shunt Inductor NH",
	}
	for in, want := range cases {
		if got := Label(in); got != want {
			t.Fatalf("Label(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPairRoundTrip(t *testing.T) {
	data, err := json.Marshal(GammaPath{{Re: 0.5, Im: -0.25}})
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(data) != `[[0.5,-0.25]]` {
		t.Fatalf("Marshal = %s", data)
	}
}

func TestComponentsKeepServiceOrder(t *testing.T) {
	var c Components
	if err := json.Unmarshal([]byte(`{"z":1,"a":"x","m":2.5}`), &c); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	want := Components{{Key: "z", Value: 1.0}, {Key: "a", Value: "x"}, {Key: "m", Value: 2.5}}
	if !reflect.DeepEqual(c, want) {
		t.Fatalf("components = %#v, want %#v", c, want)
	}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(data) != `{"z":1,"a":"x","m":2.5}` {
		t.Fatalf("Marshal = %s", data)
	}

	c = Components{{Key: "a"}}
	if err := json.Unmarshal([]byte(`null`), &c); err != nil || c != nil {
		t.Fatalf("null = %#v, %v", c, err)
	}
	if err := json.Unmarshal([]byte(`[1,2]`), &c); err == nil {
		t.Fatal("expected error for an array")
	}
}
