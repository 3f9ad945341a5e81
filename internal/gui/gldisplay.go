// GLFW window rendering frames as a full-window textured quad
package gui

import (
	"fmt"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// GLDisplay owns one window, its legacy GL context and one luminance texture.
// Every method must be called from the thread that created it; callers lock
// the main OS thread before NewGLDisplay.
type GLDisplay struct {
	window  *glfw.Window
	texture uint32
	cancel  bool
	logger  logrus.FieldLogger
}

// NewGLDisplay initializes GLFW, opens a width x height window, loads the GL
// entry points and allocates the texture. On failure everything created so
// far is destroyed.
func NewGLDisplay(title string, width, height int, logger logrus.FieldLogger) (*GLDisplay, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	logger.WithFields(logrus.Fields{
		"title":      title,
		"width":      width,
		"height":     height,
		"gl_version": gl.GoStr(gl.GetString(gl.VERSION)),
	}).Info("Display window created")

	d := &GLDisplay{
		window:  window,
		texture: texture,
		logger:  logger,
	}
	window.SetKeyCallback(d.onKey)
	return d, nil
}

func (d *GLDisplay) ShouldClose() bool {
	return d.window.ShouldClose()
}

// CancelRequested reports whether Escape was pressed during any poll so far
func (d *GLDisplay) CancelRequested() bool {
	return d.cancel
}

// onKey latches Escape so a tap released before the next check still counts
func (d *GLDisplay) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		d.cancel = true
	}
}

// Upload replaces the texture with an 8-bit single-channel frame
func (d *GLDisplay) Upload(frame gocv.Mat) error {
	if frame.Empty() {
		return fmt.Errorf("cannot upload empty frame")
	}
	if frame.Type() != gocv.MatTypeCV8UC1 {
		return fmt.Errorf("texture expects 8-bit single-channel frames, got type %v", frame.Type())
	}

	pixels := frame.ToBytes()
	cols, rows := frame.Cols(), frame.Rows()
	if len(pixels) != cols*rows {
		return fmt.Errorf("frame has %d bytes, want %d", len(pixels), cols*rows)
	}

	gl.BindTexture(gl.TEXTURE_2D, d.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.LUMINANCE, int32(cols), int32(rows),
		0, gl.LUMINANCE, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return nil
}

// Render clears the framebuffer and draws the texture over the whole
// window, texel (0,0) at the bottom-left corner.
func (d *GLDisplay) Render() {
	fbw, fbh := d.window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbw), int32(fbh))
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.Enable(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, d.texture)
	gl.Begin(gl.QUADS)
	gl.TexCoord2f(0, 0)
	gl.Vertex2f(-1, -1)
	gl.TexCoord2f(1, 0)
	gl.Vertex2f(1, -1)
	gl.TexCoord2f(1, 1)
	gl.Vertex2f(1, 1)
	gl.TexCoord2f(0, 1)
	gl.Vertex2f(-1, 1)
	gl.End()
}

func (d *GLDisplay) Present() {
	d.window.SwapBuffers()
	glfw.PollEvents()
}

func (d *GLDisplay) ReleaseTexture() {
	if d.texture == 0 {
		return
	}
	gl.DeleteTextures(1, &d.texture)
	d.texture = 0
}

// Close destroys the window and terminates GLFW
func (d *GLDisplay) Close() {
	if d.window == nil {
		return
	}
	d.window.Destroy()
	d.window = nil
	glfw.Terminate()
	d.logger.Info("Display window destroyed")
}
