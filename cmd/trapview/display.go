// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"image"
	"sync"

	"tokyo.dev/tokyo/render"
)

// display shares a view between the simulated processor, which draws,
// and the window, which shows it.
type display struct {
	mu   sync.Mutex
	view render.View
	// changed is called after every drawing operation.
	changed func()
}

func (d *display) Clear(c render.Color) {
	d.mu.Lock()
	d.view.Clear(c)
	d.mu.Unlock()
	d.notify()
}

func (d *display) PrintChar(r rune, fg, bg render.Color) {
	d.mu.Lock()
	d.view.PrintChar(r, fg, bg)
	d.mu.Unlock()
	d.notify()
}

func (d *display) Backspace() {
	d.mu.Lock()
	d.view.Backspace()
	d.mu.Unlock()
	d.notify()
}

func (d *display) NewLine() {
	d.mu.Lock()
	d.view.NewLine()
	d.mu.Unlock()
	d.notify()
}

func (d *display) notify() {
	if d.changed != nil {
		d.changed()
	}
}

// snapshot returns a copy of the framebuffer.
func (d *display) snapshot() *image.RGBA {
	d.mu.Lock()
	defer d.mu.Unlock()
	info := d.view.Info()
	img := image.NewRGBA(image.Rect(0, 0, info.Width, info.Height))
	d.view.RGBA(img)
	return img
}
