package core

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"cvgl-demos/internal/config"
)

// Exit statuses returned by Run
const (
	ExitOK      = 0
	ExitFailure = 1
)

// Run executes one capture session end to end and returns the process exit
// status. The confirmation line goes to stdout on a graceful stop only;
// failures are logged as a single error record.
func Run(cfg config.CaptureConfig, opener Opener, stdout io.Writer, logger logrus.FieldLogger) int {
	loop := NewLoop(cfg, opener, logger)

	if err := loop.Run(); err != nil {
		logger.WithFields(logrus.Fields{
			"reason": loop.Reason().String(),
		}).WithError(err).Error("Capture session failed")
		return ExitFailure
	}

	fmt.Fprintf(stdout, "Saved horizontally-flipped grayscale video to %s\n", loop.OutputPath())
	return ExitOK
}
