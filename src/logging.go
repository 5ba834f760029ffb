package laika

// Console output helpers on top of charmbracelet/log.  Frames go to
// stdout, so everything here goes to stderr.

import (
	"os"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
})

func set_verbose(verbose bool) {
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
}

func log_debug(format string, a ...any) {
	logger.Debugf(format, a...)
}

func log_info(format string, a ...any) {
	logger.Infof(format, a...)
}

func log_error(format string, a ...any) {
	logger.Errorf(format, a...)
}
