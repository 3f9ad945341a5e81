package gui

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestEscapeTapLatchesCancel(t *testing.T) {
	d := &GLDisplay{}

	d.onKey(nil, glfw.KeyA, 0, glfw.Press, 0)
	d.onKey(nil, glfw.KeyEscape, 0, glfw.Repeat, 0)
	if d.CancelRequested() {
		t.Fatal("cancel requested without an Escape press")
	}

	// pressed and released between two checks
	d.onKey(nil, glfw.KeyEscape, 0, glfw.Press, 0)
	d.onKey(nil, glfw.KeyEscape, 0, glfw.Release, 0)
	if !d.CancelRequested() {
		t.Error("Escape tap was not seen")
	}
}
