package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrRequest wraps every failure talking to the matching service: transport
// errors, non-2xx statuses and undecodable bodies.
var ErrRequest = errors.New("backend: request failed")

// StatusError reports a non-2xx response.
type StatusError struct {
	Op     string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.Status, e.Body)
}

// Operation names an endpoint of the matching service.
type Operation string

const (
	OpMatch       Operation = "match"
	OpSParameters Operation = "sparams"
	OpPredict     Operation = "predict"
	OpSweep       Operation = "sweep"
)

// Service is the matching backend as seen by the client.
type Service interface {
	Match(ctx context.Context, req Request) (*MatchResult, error)
	SParameters(ctx context.Context, req Request) (*SParameters, error)
	Predict(ctx context.Context, req Request) (*Prediction, error)
	Sweep(ctx context.Context, req Request) (*Sweep, error)
}

// DefaultBaseURL is where the matching service listens by default.
const DefaultBaseURL = "http://127.0.0.1:8000"

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 512

// Client talks JSON over HTTP to the matching service.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

var _ Service = (*Client)(nil)

// NewClient returns a client for baseURL using http.DefaultClient.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: http.DefaultClient}
}

// Match requests a matching network and its gamma path.
func (c *Client) Match(ctx context.Context, req Request) (*MatchResult, error) {
	var out MatchResult
	if err := c.do(ctx, OpMatch, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SParameters requests the two-port S-parameters of the matched network.
func (c *Client) SParameters(ctx context.Context, req Request) (*SParameters, error) {
	var out SParameters
	if err := c.do(ctx, OpSParameters, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Predict requests the predicted matching topology.
func (c *Client) Predict(ctx context.Context, req Request) (*Prediction, error) {
	var out Prediction
	if err := c.do(ctx, OpPredict, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Sweep requests a frequency sweep around req.Frequency.
func (c *Client) Sweep(ctx context.Context, req Request) (*Sweep, error) {
	var out Sweep
	if err := c.do(ctx, OpSweep, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, op Operation, req Request, out any) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("%w: %s: encode: %v", ErrRequest, op, err)
	}

	url := c.BaseURL + "/" + string(op)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRequest, op, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRequest, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: %w", ErrRequest, &StatusError{
			Op:     string(op),
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(data)),
		})
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: decode: %v", ErrRequest, op, err)
	}
	return nil
}
