package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the rotating log file written under the log directory.
const FileName = "lotomania.log"

// Options controls the global logger.
type Options struct {
	Verbose bool
	// Dir overrides LOGS_FOLDER and the executable-relative default.
	Dir string
	// Console receives human-readable output. Defaults to os.Stderr, which
	// keeps stdout free for the MCP stdio transport.
	Console io.Writer
}

// Init sets the global logger with two sinks: the console and a rotating file.
// It returns the file sink so callers can close it on shutdown.
func Init(opts Options) (io.Closer, error) {
	// .env next to the binary may carry LOGS_FOLDER; Init runs before config.Load.
	exePath, exeErr := os.Executable()
	if exeErr == nil {
		_ = godotenv.Load(filepath.Join(filepath.Dir(exePath), ".env"))
	}

	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	noColor := true
	if f, ok := console.(*os.File); ok {
		noColor = !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	}
	consoleWriter := zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}

	logDir := resolveDir(opts.Dir, exePath, exeErr)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %q: %w", logDir, err)
	}
	probe := filepath.Join(logDir, ".write-test")
	if err := os.WriteFile(probe, []byte("test"), 0644); err != nil {
		return nil, fmt.Errorf("log directory %q is not writable: %w", logDir, err)
	}
	_ = os.Remove(probe)

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, FileName),
		MaxSize:    16, // megabytes
		MaxBackups: 32,
		MaxAge:     365, // days
		Compress:   true,
	}

	multi := zerolog.MultiLevelWriter(consoleWriter, fileWriter)
	log.Logger = zerolog.New(multi).
		With().
		Timestamp().
		Str("app", "lotomania").
		Logger()

	return fileWriter, nil
}

func resolveDir(explicit, exePath string, exeErr error) string {
	if explicit != "" {
		return explicit
	}
	if dir := os.Getenv("LOGS_FOLDER"); dir != "" {
		return dir
	}
	if exeErr == nil {
		return filepath.Join(filepath.Dir(exePath), "logs")
	}
	return "logs"
}
