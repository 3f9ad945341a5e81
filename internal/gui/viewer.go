// Blocking viewers for a rendered canvas
package gui

import (
	"fmt"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"cvgl-demos/internal/config"
)

const AppID = "com.cvgl-demos.birdflight"

// Viewer shows an image and returns once the user dismisses it
type Viewer interface {
	Show(title string, img image.Image) error
}

// NewViewer returns the viewer registered under name
func NewViewer(name string, logger logrus.FieldLogger) (Viewer, error) {
	switch name {
	case config.DisplayHighGUI:
		return &HighGUIViewer{logger: logger}, nil
	case config.DisplayFyne:
		return &FyneViewer{logger: logger}, nil
	}
	return nil, fmt.Errorf("unknown display backend: %q", name)
}

// HighGUIViewer uses an OpenCV window and waits for any key
type HighGUIViewer struct {
	logger logrus.FieldLogger
}

func (v *HighGUIViewer) Show(title string, img image.Image) error {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return fmt.Errorf("convert image for display: %w", err)
	}
	defer mat.Close()

	window := gocv.NewWindow(title)
	defer window.Close()

	window.IMShow(mat)
	v.logger.WithField("title", title).Info("Waiting for a key press to close the window")
	key := window.WaitKey(0)
	v.logger.WithField("key", key).Debug("Viewer dismissed")
	return nil
}

// FyneViewer shows the canvas at native size; any key or closing the window dismisses it
type FyneViewer struct {
	logger logrus.FieldLogger
}

func (v *FyneViewer) Show(title string, img image.Image) error {
	bounds := img.Bounds()

	a := app.NewWithID(AppID)
	w := a.NewWindow(title)

	picture := canvas.NewImageFromImage(img)
	picture.FillMode = canvas.ImageFillOriginal
	picture.ScaleMode = canvas.ImageScalePixels

	w.SetContent(picture)
	w.Resize(fyne.NewSize(float32(bounds.Dx()), float32(bounds.Dy())))
	w.SetFixedSize(true)
	w.CenterOnScreen()
	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		v.logger.WithField("key", string(ev.Name)).Debug("Viewer dismissed")
		a.Quit()
	})

	v.logger.WithField("title", title).Info("Waiting for a key press to close the window")
	w.ShowAndRun()
	return nil
}
