// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"gioui.org/app"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
)

func newWindow(cfg *Config) *app.Window {
	w := new(app.Window)
	w.Option(
		app.Title("tokyo"),
		app.Size(unit.Dp(cfg.Width*cfg.Scale), unit.Dp(cfg.Height*cfg.Scale)),
	)
	return w
}

// runWindow shows the display until the window is closed.
func runWindow(w *app.Window, d *display) error {
	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			src := paint.NewImageOp(d.snapshot())
			src.Filter = paint.FilterNearest
			widget.Image{
				Src:      src,
				Fit:      widget.Contain,
				Position: layout.Center,
			}.Layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}
