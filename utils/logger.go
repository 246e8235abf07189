package utils

import (
	"fmt"
	"log"
	"os"
	"time"

	"uninest/services/logger"
)

var (
	InfoLogger  *log.Logger
	ErrorLogger *log.Logger
)

func init() {
	out := os.Stderr

	// One file per day under logs/. If the directory or file cannot be
	// created the loggers fall back to stderr.
	if err := os.MkdirAll("logs", 0755); err == nil {
		timestamp := time.Now().Format("2006-01-02")
		logFile, err := os.OpenFile(fmt.Sprintf("logs/app-%s.log", timestamp),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err == nil {
			out = logFile
		} else {
			log.Printf("Warning: cannot open log file, logging to stderr: %v", err)
		}
	}

	InfoLogger = log.New(out, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(out, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
}

// LogInfo writes an info line to the daily log file.
func LogInfo(format string, v ...interface{}) {
	InfoLogger.Printf(format, v...)
}

// LogError writes an error line to the daily log file.
func LogError(format string, v ...interface{}) {
	ErrorLogger.Printf(format, v...)
}

// AppLogger adapts the file loggers to the Logger interface services
// depend on.
type AppLogger struct {
	level logger.Level
}

func NewAppLogger(level logger.Level) *AppLogger {
	return &AppLogger{level: level}
}

func (l *AppLogger) Info(format string, v ...interface{}) {
	if l.level <= logger.InfoLevel {
		InfoLogger.Printf(format, v...)
	}
}

func (l *AppLogger) Error(format string, v ...interface{}) {
	if l.level <= logger.ErrorLevel {
		ErrorLogger.Printf(format, v...)
	}
}

func (l *AppLogger) Debug(format string, v ...interface{}) {
	if l.level <= logger.DebugLevel {
		InfoLogger.Printf(format, v...)
	}
}

var _ logger.Logger = (*AppLogger)(nil)
