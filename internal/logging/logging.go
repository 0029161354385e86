package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Params controls where and how logs are written.
type Params struct {
	FileName   string
	ToStdout   bool
	Level      string
	FormatJSON bool
}

// Setup configures the global logrus logger. When FileName is empty logs go
// to stdout only; otherwise they go to a size-rotated file (and optionally
// stdout as well).
func Setup(params Params) {
	if params.FormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	logrus.SetLevel(Level(params.Level))

	if params.FileName == "" {
		logrus.SetOutput(os.Stdout)
		return
	}

	if !strings.HasSuffix(params.FileName, ".log") {
		params.FileName += ".log"
	}

	rotated := &lumberjack.Logger{
		Filename:  params.FileName,
		MaxSize:   50, // megabytes
		LocalTime: false,
		Compress:  true,
	}

	if params.ToStdout {
		logrus.SetOutput(io.MultiWriter(os.Stdout, rotated))
	} else {
		logrus.SetOutput(rotated)
	}
}

// Level maps a config string to a logrus level, defaulting to info.
func Level(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}
