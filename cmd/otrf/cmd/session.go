package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceRF/internal/logging"
	"github.com/OpenTraceLab/OpenTraceRF/internal/session"
	"github.com/OpenTraceLab/OpenTraceRF/pkg/backend"
	"github.com/OpenTraceLab/OpenTraceRF/pkg/units"
)

var log = logging.New("cli")

// loadFlags are the form fields of the commands that talk to the backend.
type loadFlags struct {
	frequency string
	impedance string
	zReal     string
	zImag     string
	json      bool
}

func (l *loadFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&l.frequency, "freq", "f", "", `frequency; bare numbers are GHz ("2.4", "2400 MHz")`)
	cmd.Flags().StringVarP(&l.impedance, "z", "z", "", `load impedance ("25-j10", "1.2k Ω")`)
	cmd.Flags().StringVar(&l.zReal, "zr", "", "load resistance in ohms (instead of --z)")
	cmd.Flags().StringVar(&l.zImag, "zi", "", "load reactance in ohms (instead of --z)")
	cmd.Flags().BoolVar(&l.json, "json", false, "output as JSON")
}

// form turns the flags into the same three text fields the UI edits.
func (l *loadFlags) form() (session.Form, error) {
	f := session.Form{Frequency: l.frequency, ZReal: l.zReal, ZImag: l.zImag}
	if l.impedance != "" {
		z, err := units.ParseImpedance(l.impedance)
		if err != nil {
			return f, err
		}
		f.ZReal = fmt.Sprint(z.Re)
		f.ZImag = fmt.Sprint(z.Im)
	}
	return f, nil
}

// runSession fills the form, submits every op concurrently and waits for
// all of them. A validation failure is returned before anything is sent.
func runSession(ctx context.Context, l *loadFlags, ops ...backend.Operation) (session.State, error) {
	form, err := l.form()
	if err != nil {
		return session.State{}, fmt.Errorf("%s: %w", session.MsgFieldsRequired, err)
	}
	store := session.NewStore(session.NewReducer(cfg.Smith()))
	ctrl := session.NewController(store, service())
	for _, field := range session.Fields {
		if err := ctrl.Do(ctx, session.EditField{Field: field, Value: form.Get(field)}); err != nil {
			return store.Snapshot(), err
		}
	}
	for _, op := range ops {
		log.Debugf("submitting %s to %s", op, cfg.BackendURL)
		if err := ctrl.Do(ctx, session.Submit{Op: op}); err != nil {
			return store.Snapshot(), fmt.Errorf("%s: %w", session.MsgFieldsRequired, err)
		}
	}
	ctrl.Wait()
	return store.Snapshot(), nil
}

// errMissing reports an operation whose result did not arrive.
func errMissing(op backend.Operation, s session.State) error {
	msg := s.Error
	if msg == "" {
		msg = session.MsgBackendFailed
	}
	return fmt.Errorf("%s: %s", op, msg)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
