// Package logutil provides logging utilities.
package logutil

import (
	"fmt"
	"io"
	"log"
	"os"
)

var out io.Writer = io.Discard

var loggers []*log.Logger

// GetLogger gets a logger with the given prefix. The logger writes to the
// destination set by SetOutput or SetOutputFile.
func GetLogger(prefix string) *log.Logger {
	logger := log.New(out, prefix, log.LstdFlags)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects the output of all loggers obtained with GetLogger to the
// new io.Writer.
func SetOutput(newout io.Writer) {
	out = newout
	for _, logger := range loggers {
		logger.SetOutput(out)
	}
}

// SetOutputFile redirects the output of all loggers obtained with GetLogger to
// the named file, creating it if it does not exist. If the name is empty, the
// output is discarded instead.
func SetOutputFile(fname string) error {
	if fname == "" {
		SetOutput(io.Discard)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("cannot open log file %v: %v", fname, err)
	}
	SetOutput(file)
	return nil
}
