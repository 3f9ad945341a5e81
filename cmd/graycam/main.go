// Grayscale camera - capture, mirror, record and display through OpenGL
// License: MIT

package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"cvgl-demos/internal/config"
	"cvgl-demos/internal/core"
	"cvgl-demos/internal/logging"
)

func init() {
	// GLFW and the GL context are bound to the main thread
	runtime.LockOSThread()
}

func main() {
	cfg := config.DefaultCaptureConfig()

	debugMode := flag.Bool("debug", false, "Enable debug mode with verbose logging")
	flag.StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "Directory receiving the recorded video")
	bestEffort := flag.Bool("best-effort-writes", false, "Log and skip frames the video writer rejects instead of stopping")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [camera-index|video-file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(core.ExitFailure)
	}
	if flag.NArg() == 1 {
		cfg.Source = flag.Arg(0)
	}
	cfg.StrictWrites = !*bestEffort

	logger := logging.New(os.Stderr, *debugMode)
	os.Exit(core.Run(cfg, newDeviceOpener(logger), os.Stdout, logger))
}
