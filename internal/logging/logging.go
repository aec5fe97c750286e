package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New creates a component-tagged logger writing to stderr and a rotating
// file under logs/. Stdout is reserved for the JSON-RPC stream, so nothing
// here may ever write there. The returned cleanup closes the file sink.
func New(component string) (*logrus.Entry, func(), error) {
	logger := logrus.New()

	isTerminal := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   isTerminal,
		DisableColors: !isTerminal,
	})

	logDir := os.Getenv("SITELENS_LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, nil, err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, component+".log"),
		MaxSize:    16, // megabytes
		MaxBackups: 8,
		MaxAge:     90, // days
		Compress:   true,
	}

	logger.SetOutput(io.MultiWriter(os.Stderr, fileWriter))
	return logger.WithField("component", component), func() { _ = fileWriter.Close() }, nil
}

// SetVerbose switches the logger backing an entry to debug level.
func SetVerbose(entry *logrus.Entry) {
	entry.Logger.SetLevel(logrus.DebugLevel)
}
