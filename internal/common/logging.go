// Package common provides the shared logging layer for the dynamic MCP server.
package common

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phuslu/log"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
	"github.com/ternarybob/arbor/writers"
)

const logTimeFormat = "2006-01-02T15:04:05Z07:00"

// Fallbacks for file output when the logging config leaves them unset.
const (
	defaultLogFile     = "logs/dynamic-mcp.log"
	defaultLogFileSize = 10 * 1024 * 1024
	defaultLogBackups  = 5
)

// LoggingConfig controls logger construction.
type LoggingConfig struct {
	Level      string
	Outputs    []string
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
}

// Logger wraps arbor.ILogger so the rest of the module depends on one type.
type Logger struct {
	arbor.ILogger
}

// NewLogger creates a logger at the given level with console (stderr) and
// rolling file output.
func NewLogger(level string) *Logger {
	return NewLoggerFromConfig(LoggingConfig{
		Level:   level,
		Outputs: []string{"console", "file"},
	})
}

// NewDefaultLogger creates a logger with default settings.
func NewDefaultLogger() *Logger {
	return NewLogger("info")
}

// NewLoggerFromConfig builds a logger from config. Console output goes to
// stderr so nothing interleaves with stdout; a memory writer is always
// attached so recent entries stay queryable for diagnostics.
func NewLoggerFromConfig(cfg LoggingConfig) *Logger {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	outputs := cfg.Outputs
	if len(outputs) == 0 {
		outputs = []string{"console", "file"}
	}

	l := arbor.NewLogger()
	for _, out := range outputs {
		switch out {
		case "console":
			l = l.WithConsoleWriter(consoleWriterConfig())
		case "file":
			l = l.WithFileWriter(fileWriterConfig(cfg))
		}
	}
	l = l.WithMemoryWriter(models.WriterConfiguration{
		Type: models.LogWriterTypeMemory,
	}).WithLevelFromString(level)

	return &Logger{ILogger: l}
}

// NewLoggerWithOutput creates a logger whose console stream is redirected to
// w, with a memory writer for queries. Tests use this to capture output.
func NewLoggerWithOutput(level string, w io.Writer) *Logger {
	arbor.RegisterWriter(arbor.WRITER_CONSOLE, &redirectWriter{out: w, level: log.TraceLevel})

	l := arbor.NewLogger().
		WithMemoryWriter(models.WriterConfiguration{
			Type: models.LogWriterTypeMemory,
		}).
		WithLevelFromString(level)

	return &Logger{ILogger: l}
}

// NewSilentLogger creates a logger that discards everything. The explicit
// discard writer keeps events from falling through to writers registered in
// arbor's global registry.
func NewSilentLogger() *Logger {
	return &Logger{ILogger: arbor.NewLogger().WithWriters([]writers.IWriter{&discardWriter{}})}
}

// WithCorrelationId returns a new Logger scoped to one correlation ID, used
// to trace a management or tool request through all layers.
func (l *Logger) WithCorrelationId(id string) *Logger {
	return &Logger{ILogger: l.ILogger.WithCorrelationId(id)}
}

func consoleWriterConfig() models.WriterConfiguration {
	return models.WriterConfiguration{
		Type:       models.LogWriterTypeConsole,
		Writer:     os.Stderr,
		TimeFormat: logTimeFormat,
	}
}

func fileWriterConfig(cfg LoggingConfig) models.WriterConfiguration {
	path := cfg.FilePath
	if path == "" {
		path = defaultLogFile
	}
	maxSize := int64(cfg.MaxSizeMB) * 1024 * 1024
	if maxSize <= 0 {
		maxSize = defaultLogFileSize
	}
	backups := cfg.MaxBackups
	if backups <= 0 {
		backups = defaultLogBackups
	}
	return models.WriterConfiguration{
		Type:       models.LogWriterTypeFile,
		FileName:   path,
		MaxSize:    maxSize,
		MaxBackups: backups,
		TimeFormat: logTimeFormat,
	}
}

// redirectWriter adapts an io.Writer to arbor's IWriter interface, rendering
// each JSON log event as a single text line.
type redirectWriter struct {
	out   io.Writer
	level log.Level
}

func (w *redirectWriter) Write(p []byte) (int, error) {
	var evt models.LogEvent
	if err := json.Unmarshal(p, &evt); err != nil {
		return w.out.Write(p)
	}
	if evt.Level < w.level {
		return len(p), nil
	}

	var line strings.Builder
	line.WriteString(evt.Message)
	for k, v := range evt.Fields {
		fmt.Fprintf(&line, " %s=%v", k, v)
	}
	if evt.Error != "" {
		fmt.Fprintf(&line, " error=%s", evt.Error)
	}
	line.WriteByte('\n')
	return w.out.Write([]byte(line.String()))
}

func (w *redirectWriter) WithLevel(level log.Level) writers.IWriter {
	w.level = level
	return w
}

func (w *redirectWriter) GetFilePath() string { return "" }
func (w *redirectWriter) Close() error        { return nil }

// discardWriter satisfies writers.IWriter and drops all output.
type discardWriter struct{}

func (w *discardWriter) Write(p []byte) (int, error)           { return len(p), nil }
func (w *discardWriter) WithLevel(_ log.Level) writers.IWriter { return w }
func (w *discardWriter) GetFilePath() string                   { return "" }
func (w *discardWriter) Close() error                          { return nil }
