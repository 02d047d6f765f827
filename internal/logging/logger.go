package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls how New builds a logger.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // console or json
	File   bool   // tee into a session log file
	Dir    string // session log directory, defaults to ~/.finsight/logs
	Output io.Writer
}

// Logger is a zap logger that may also write a session file.
type Logger struct {
	*zap.Logger
	file     *os.File
	filePath string
}

// New builds a logger writing to Output (stderr when nil) and, if File is
// set, to a fresh session log file.
func New(opts Options) (*Logger, error) {
	level := ParseLevel(opts.Level)
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder(opts.Format), zapcore.AddSync(out), level),
	}

	l := &Logger{}
	if opts.File {
		file, path, err := openSession(opts.Dir)
		if err != nil {
			return nil, err
		}
		l.file = file
		l.filePath = path
		// The file records everything at debug, regardless of the console level.
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(file),
			zapcore.DebugLevel,
		))
	}

	l.Logger = zap.New(zapcore.NewTee(cores...))
	return l, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// ParseLevel reads a level name, falling back to info.
func ParseLevel(s string) zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return zapcore.InfoLevel
	}
	return level
}

func encoder(format string) zapcore.Encoder {
	if format == "json" {
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	return zapcore.NewConsoleEncoder(cfg)
}

// openSession creates <dir>/<timestamp>_<session>.log.
func openSession(dir string) (*os.File, string, error) {
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".finsight", "logs")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, "", fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s.log", timestamp, uuid.NewString()[:8])
	path := filepath.Join(dir, filename)

	file, err := os.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create log file: %w", err)
	}
	return file, path, nil
}

// FilePath returns the session log path, empty when there is none.
func (l *Logger) FilePath() string {
	return l.filePath
}

// Close flushes the logger and closes the session file.
func (l *Logger) Close() error {
	_ = l.Logger.Sync()
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Truncate shortens s to at most maxLen runes for log fields.
func Truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen]) + "..."
}
