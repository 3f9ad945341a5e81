// Bird in Flight - parametric line-art renderer
// License: MIT

package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"cvgl-demos/internal/config"
	"cvgl-demos/internal/curve"
	"cvgl-demos/internal/gui"
	"cvgl-demos/internal/io"
	"cvgl-demos/internal/logging"
)

func main() {
	cfg := config.DefaultCurveConfig()

	debugMode := flag.Bool("debug", false, "Enable debug mode with verbose logging")
	flag.StringVar(&cfg.Display, "display", cfg.Display, "Viewer backend: highgui or fyne")
	flag.StringVar(&cfg.SavePath, "save", "", "Also write the canvas to this image file (.png, .jpg, .bmp, .tif)")
	flag.BoolVar(&cfg.NoDisplay, "no-display", false, "Render (and save) without opening a window")
	flag.Parse()

	logger := logging.New(os.Stderr, *debugMode)
	os.Exit(run(cfg, logger))
}

func run(cfg config.CurveConfig, logger *logrus.Logger) int {
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Error("Invalid configuration")
		return 1
	}

	logger.WithFields(logrus.Fields{
		"samples": cfg.Samples,
		"width":   cfg.Width,
		"height":  cfg.Height,
	}).Info("Rendering curve")

	canvas, err := curve.Render(cfg)
	if err != nil {
		logger.WithError(err).Error("Render failed")
		return 1
	}

	if cfg.SavePath != "" {
		mat, err := curve.ToMat(canvas)
		if err != nil {
			logger.WithError(err).Error("Canvas conversion failed")
			return 1
		}
		err = io.NewImageWriter(logger).SaveImage(mat, cfg.SavePath)
		mat.Close()
		if err != nil {
			logger.WithError(err).Error("Save failed")
			return 1
		}
	}

	if cfg.NoDisplay {
		return 0
	}

	viewer, err := gui.NewViewer(cfg.Display, logger)
	if err != nil {
		logger.WithError(err).Error("Viewer unavailable")
		return 1
	}
	if err := viewer.Show(cfg.Title, canvas); err != nil {
		logger.WithError(err).Error("Display failed")
		return 1
	}
	return 0
}
