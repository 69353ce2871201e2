package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	log "github.com/sirupsen/logrus"
)

// InitLog points the standard logrus logger at stdout and a daily rotating
// file next to logfile. An empty logfile logs to stdout only.
func InitLog(logfile, level string) {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetLevel(ParseLevel(level))

	if logfile == "" {
		log.SetOutput(os.Stdout)
		return
	}
	writer, err := NewRotateWriter(logfile, 7*24*time.Hour)
	if err != nil {
		log.Errorf("Open rotate log %s failed, logging to stdout only: %v", logfile, err)
		log.SetOutput(os.Stdout)
		return
	}
	log.SetOutput(io.MultiWriter(os.Stdout, writer))
}

// NewRotateWriter returns a writer that starts a new file every day as
// <logfile>.<yyyymmdd> and keeps a symlink at logfile to the current one.
func NewRotateWriter(logfile string, maxAge time.Duration) (*rotatelogs.RotateLogs, error) {
	if dir := filepath.Dir(logfile); dir != "" {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, err
		}
	}
	return rotatelogs.New(
		logfile+".%Y%m%d",
		rotatelogs.WithLinkName(logfile),
		rotatelogs.WithMaxAge(maxAge),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
}

// ParseLevel maps a config value to a logrus level, defaulting to info.
func ParseLevel(level string) log.Level {
	l, err := log.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return log.InfoLevel
	}
	return l
}
