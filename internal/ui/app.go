package ui

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"gioui.org/app"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/oligo/gioview/menu"
	"github.com/oligo/gioview/theme"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/OpenTraceLab/OpenTraceRF/internal/logging"
	"github.com/OpenTraceLab/OpenTraceRF/internal/render"
	"github.com/OpenTraceLab/OpenTraceRF/internal/session"
	"github.com/OpenTraceLab/OpenTraceRF/pkg/backend"
	"github.com/OpenTraceLab/OpenTraceRF/pkg/smith"
)

var log = logging.New("ui")

// operation is one backend request the user can submit.
type operation struct {
	op    backend.Operation
	label string
}

var operations = []operation{
	{op: backend.OpMatch, label: "Match"},
	{op: backend.OpSParameters, label: "S-Parameters"},
	{op: backend.OpPredict, label: "Predict"},
	{op: backend.OpSweep, label: "Sweep"},
}

// App drives the Gio-based matching client.
type App struct {
	Window     *app.Window
	Theme      *material.Theme
	Controller *session.Controller

	gvTheme  *theme.Theme
	ctx      context.Context
	ops      op.Ops
	frame    smith.Frame
	geometry smith.Geometry
	z0       float64

	editors  []widget.Editor
	lastForm session.Form

	submitBtn widget.Clickable
	resetBtn  widget.Clickable
	opMenuBtn widget.Clickable
	opMenu    *menu.DropdownMenu
	selected  int

	submitIcon *widget.Icon
	resetIcon  *widget.Icon

	chartTag    bool
	resultsList widget.List
}

// New wires the window, the theme and the session controller together.
func New(ctx context.Context, window *app.Window, ctrl *session.Controller, cfg smith.Config) *App {
	gv := theme.NewTheme("", nil, true)
	a := &App{
		Window:     window,
		Theme:      gv.Theme,
		Controller: ctrl,
		gvTheme:    gv,
		ctx:        ctx,
		frame:      cfg.Frame(),
		geometry:   cfg.Geometry(),
		z0:         cfg.Z0,
		editors:    make([]widget.Editor, len(session.Fields)),
		resultsList: widget.List{
			List: layout.List{Axis: layout.Vertical},
		},
	}
	for i := range a.editors {
		a.editors[i].SingleLine = true
		a.editors[i].Submit = true
	}
	a.submitIcon = makeIcon(icons.AVPlayArrow, "submit")
	a.resetIcon = makeIcon(icons.ContentClear, "reset")
	a.opMenu = a.buildOperationMenu()

	ctrl.OnChange = func(session.State) { a.invalidate() }
	a.syncEditors(ctrl.Store.Snapshot().Form)
	return a
}

func makeIcon(data []byte, name string) *widget.Icon {
	icon, err := widget.NewIcon(data)
	if err != nil {
		log.Warnf("failed to load %s icon: %v", name, err)
		return nil
	}
	return icon
}

func (a *App) invalidate() {
	if a.Window != nil {
		a.Window.Invalidate()
	}
}

// Run processes Gio events until the window is closed.
func (a *App) Run() error {
	for {
		e := a.Window.Event()
		switch ev := e.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&a.ops, ev)
			a.layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}

// do applies a command. Validation and transform errors are already in the
// state as user-facing messages.
func (a *App) do(cmd session.Command) {
	if err := a.Controller.Do(a.ctx, cmd); err != nil {
		log.Debugf("%T: %v", cmd, err)
	}
	a.invalidate()
}

// syncEditors copies form text into the editors when it changed underneath
// them, e.g. after a chart click.
func (a *App) syncEditors(f session.Form) {
	if f == a.lastForm {
		return
	}
	for i, field := range session.Fields {
		if a.editors[i].Text() != f.Get(field) {
			a.editors[i].SetText(f.Get(field))
		}
	}
	a.lastForm = f
}

func (a *App) buildOperationMenu() *menu.DropdownMenu {
	opts := make([]menu.MenuOption, 0, len(operations))
	for i := range operations {
		idx := i
		opts = append(opts, menu.MenuOption{
			OnClicked: func() error {
				a.selected = idx
				a.invalidate()
				return nil
			},
			Layout: func(gtx menu.C, th *theme.Theme) menu.D {
				lbl := material.Body1(th.Theme, operations[idx].label)
				if idx == a.selected {
					lbl.Color = th.Palette.ContrastBg
				}
				return layout.Inset{Left: unit.Dp(4), Right: unit.Dp(4)}.Layout(gtx, lbl.Layout)
			},
		})
	}
	drop := menu.NewDropdownMenu([][]menu.MenuOption{opts})
	drop.MaxWidth = unit.Dp(180)
	return drop
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	state := a.Controller.Store.Snapshot()
	a.syncEditors(state.Form)

	for i, field := range session.Fields {
		for {
			ev, ok := a.editors[i].Update(gtx)
			if !ok {
				break
			}
			switch ev.(type) {
			case widget.ChangeEvent:
				a.do(session.EditField{Field: field, Value: a.editors[i].Text()})
			case widget.SubmitEvent:
				a.do(session.Submit{Op: operations[a.selected].op})
			}
		}
	}
	if a.submitBtn.Clicked(gtx) {
		a.do(session.Submit{Op: operations[a.selected].op})
	}
	if a.resetBtn.Clicked(gtx) {
		a.do(session.Reset{})
	}
	state = a.Controller.Store.Snapshot()
	a.lastForm = state.Form

	paint.FillShape(gtx.Ops, color.NRGBA{R: 238, G: 241, B: 251, A: 255}, clip.Rect{Max: gtx.Constraints.Max}.Op())

	return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return a.layoutCard(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						return a.layoutChart(gtx, state)
					})
				})
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				width := gtx.Dp(unit.Dp(340))
				gtx.Constraints.Min.X = width
				gtx.Constraints.Max.X = width
				return a.layoutCard(gtx, func(gtx layout.Context) layout.Dimensions {
					return a.layoutSidebar(gtx, state)
				})
			}),
		)
	})
}

func (a *App) layoutCard(gtx layout.Context, body layout.Widget) layout.Dimensions {
	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			rr := gtx.Dp(unit.Dp(10))
			paint.FillShape(gtx.Ops, color.NRGBA{R: 248, G: 248, B: 253, A: 255}, clip.RRect{
				Rect: image.Rectangle{Max: gtx.Constraints.Max},
				NW:   rr, NE: rr, SW: rr, SE: rr,
			}.Op(gtx.Ops))
			return layout.Dimensions{Size: gtx.Constraints.Max}
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(12)).Layout(gtx, body)
		}),
	)
}

func (a *App) layoutSidebar(gtx layout.Context, state session.State) layout.Dimensions {
	children := []layout.FlexChild{
		layout.Rigid(material.H6(a.Theme, "Load").Layout),
		layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),
	}
	for i, field := range session.Fields {
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.field(gtx, field.Label(), &a.editors[i])
		}))
	}
	children = append(children,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.layoutActions(gtx, state)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.layoutMessages(gtx, state)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return a.layoutResults(gtx, state)
		}),
	)
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
}

func (a *App) field(gtx layout.Context, label string, editor *widget.Editor) layout.Dimensions {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(material.Body2(a.Theme, label).Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			ed := material.Editor(a.Theme, editor, "")
			ed.TextSize = unit.Sp(14)
			return layout.Inset{Top: unit.Dp(2), Bottom: unit.Dp(8)}.Layout(gtx, ed.Layout)
		}),
	)
}

func (a *App) layoutActions(gtx layout.Context, state session.State) layout.Dimensions {
	if a.opMenuBtn.Clicked(gtx) {
		a.opMenu.ToggleVisibility(gtx)
	}
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			btn := material.Button(a.Theme, &a.opMenuBtn, operations[a.selected].label)
			btn.Background = color.NRGBA{R: 60, G: 64, B: 76, A: 255}
			btn.Inset = layout.UniformInset(unit.Dp(6))
			dims := btn.Layout(gtx)
			a.opMenu.Layout(gtx, a.gvTheme)
			return dims
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if a.submitIcon == nil {
				return material.Button(a.Theme, &a.submitBtn, "Run").Layout(gtx)
			}
			btn := material.IconButton(a.Theme, &a.submitBtn, a.submitIcon, "Run")
			btn.Size = unit.Dp(20)
			btn.Inset = layout.UniformInset(unit.Dp(6))
			return btn.Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if a.resetIcon == nil {
				return material.Button(a.Theme, &a.resetBtn, "Reset").Layout(gtx)
			}
			btn := material.IconButton(a.Theme, &a.resetBtn, a.resetIcon, "Reset")
			btn.Size = unit.Dp(20)
			btn.Inset = layout.UniformInset(unit.Dp(6))
			btn.Background = color.NRGBA{R: 120, G: 124, B: 136, A: 255}
			return btn.Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if !state.Busy() {
				return layout.Dimensions{}
			}
			return material.Caption(a.Theme, "Working…").Layout(gtx)
		}),
	)
}

func (a *App) layoutMessages(gtx layout.Context, state session.State) layout.Dimensions {
	var children []layout.FlexChild
	if state.Error != "" {
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			lbl := material.Body2(a.Theme, state.Error)
			lbl.Color = color.NRGBA{R: 200, G: 40, B: 40, A: 255}
			return lbl.Layout(gtx)
		}))
	}
	if state.Notice != "" {
		children = append(children, layout.Rigid(material.Caption(a.Theme, state.Notice).Layout))
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
}

func (a *App) layoutResults(gtx layout.Context, state session.State) layout.Dimensions {
	lines := resultLines(state, a.z0)
	return material.List(a.Theme, &a.resultsList).Layout(gtx, len(lines), func(gtx layout.Context, i int) layout.Dimensions {
		l := lines[i]
		if l.heading {
			return layout.Inset{Top: unit.Dp(8), Bottom: unit.Dp(2)}.Layout(gtx, material.Subtitle2(a.Theme, l.text).Layout)
		}
		return material.Body2(a.Theme, l.text).Layout(gtx)
	})
}

// resultLine is one row of the results panel.
type resultLine struct {
	text    string
	heading bool
}

// resultLines lists everything the session knows about the current load.
func resultLines(s session.State, z0 float64) []resultLine {
	var out []resultLine
	head := func(t string) { out = append(out, resultLine{text: t, heading: true}) }
	add := func(format string, args ...any) { out = append(out, resultLine{text: fmt.Sprintf(format, args...)}) }

	if s.Click != nil {
		head("Selected point")
		add("Γ = %s", smith.FormatGamma(s.Click.Gamma))
		add("|Γ| = %.3f ∠ %s", s.Click.Gamma.Abs(), smith.FormatAngle(s.Click.Gamma))
		add("Z = %s Ω", s.Click.Impedance)
		if vswr, err := smith.VSWR(s.Click.Gamma); err == nil {
			add("VSWR = %.2f", vswr)
		}
		if rl, err := smith.ReturnLossDB(s.Click.Gamma); err == nil {
			add("Return loss = %.2f dB", rl)
		}
	}
	if s.Result != nil {
		head("Matching network: " + s.Result.MatchingType)
		for _, e := range s.Result.Components.Entries() {
			add("%s: %s", e.Label, e.Value)
		}
		for _, step := range s.GammaSteps() {
			add("%s", step)
		}
	}
	if s.Prediction != nil {
		head("Prediction")
		add("%s (%.0f%%)", s.Prediction.PredictedType, 100*s.Prediction.Confidence)
	}
	if sp := s.SParameters; sp != nil {
		head(fmt.Sprintf("S-parameters (Z0 = %g Ω)", z0))
		for _, p := range []struct {
			name string
			v    backend.Pair
		}{{"S11", sp.S11}, {"S12", sp.S12}, {"S21", sp.S21}, {"S22", sp.S22}} {
			add("%s = %s", p.name, smith.FormatGamma(p.v.Complex()))
		}
	}
	if s.Sweep != nil {
		head(fmt.Sprintf("Sweep: %d points", len(s.Sweep.Points)))
		if sum, err := render.Summarize(s.Sweep); err == nil {
			add("best |Γ| = %.3f at %.3f GHz", sum.Magnitudes[sum.Best], sum.Frequencies[sum.Best])
			add("best VSWR = %.2f, mean |Γ| = %.3f", sum.BestVSWR, sum.Mean)
		}
	}
	return out
}
