package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/OpenTraceLab/OpenTraceRF/internal/logging"
	"github.com/OpenTraceLab/OpenTraceRF/pkg/backend"
)

var log = logging.New("session")

// Controller runs commands against a Store and sends the resulting requests
// to the backend, one goroutine per request. Completions are fed back into
// the store as Responses; OnChange is called after every state change.
type Controller struct {
	Store    *Store
	Service  backend.Service
	OnChange func(State)

	wg sync.WaitGroup
}

// NewController wires a store to a backend service.
func NewController(store *Store, svc backend.Service) *Controller {
	return &Controller{Store: store, Service: svc}
}

// Do applies cmd. A resulting request is sent asynchronously with ctx.
// Validation and transform errors are returned to the caller for logging;
// the state already carries the user-facing message.
func (c *Controller) Do(ctx context.Context, cmd Command) error {
	state, d, err := c.Store.Apply(cmd)
	c.changed(state)
	if err != nil {
		return err
	}
	if d == nil {
		return nil
	}
	log.Debugf("dispatch %s #%d %+v", d.Op, d.Seq, d.Request)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.complete(c.send(ctx, *d))
	}()
	return nil
}

// Wait blocks until every dispatched request has completed.
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) send(ctx context.Context, d Dispatch) Response {
	resp := Response{Op: d.Op, Seq: d.Seq}
	if c.Service == nil {
		resp.Err = errors.New("session: no backend configured")
		return resp
	}
	switch d.Op {
	case backend.OpMatch:
		resp.Value, resp.Err = nonNil(c.Service.Match(ctx, d.Request))
	case backend.OpSParameters:
		resp.Value, resp.Err = nonNil(c.Service.SParameters(ctx, d.Request))
	case backend.OpPredict:
		resp.Value, resp.Err = nonNil(c.Service.Predict(ctx, d.Request))
	case backend.OpSweep:
		resp.Value, resp.Err = nonNil(c.Service.Sweep(ctx, d.Request))
	default:
		resp.Err = fmt.Errorf("session: unknown operation %q", d.Op)
	}
	return resp
}

// nonNil returns v as an interface, or an error when a service returned
// neither a value nor an error.
func nonNil[T any](v *T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, errors.New("session: empty response")
	}
	return v, nil
}

func (c *Controller) complete(resp Response) {
	if resp.Err != nil {
		log.Warnf("%s #%d failed: %v", resp.Op, resp.Seq, resp.Err)
	} else {
		log.Debugf("%s #%d completed", resp.Op, resp.Seq)
	}
	state, _, _ := c.Store.Apply(resp)
	c.changed(state)
}

func (c *Controller) changed(s State) {
	if c.OnChange != nil {
		c.OnChange(s)
	}
}
