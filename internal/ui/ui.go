// Package ui is the interactive Smith chart client: a clickable chart next
// to the load form, the backend actions and their results.
package ui

import (
	"context"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/OpenTraceLab/OpenTraceRF/internal/session"
	"github.com/OpenTraceLab/OpenTraceRF/pkg/smith"
)

// Run launches the Gio UI and blocks until the window closes. Pending
// backend requests are cancelled on exit.
func Run(ctx context.Context, ctrl *session.Controller, cfg smith.Config) error {
	ctx, cancel := context.WithCancel(ctx)

	go func() {
		w := new(app.Window)
		w.Option(app.Title("OpenTrace RF Matching"), app.Size(unit.Dp(1100), unit.Dp(720)))
		ui := New(ctx, w, ctrl, cfg)
		if err := ui.Run(); err != nil {
			log.Errorf("%v", err)
		}
		cancel()
		os.Exit(0)
	}()

	app.Main()
	return nil
}
