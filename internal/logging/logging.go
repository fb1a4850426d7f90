package logging

import (
	"os"
	"path/filepath"

	"github.com/phuslu/log"
)

// Setup points the default logger at a file under the config
// directory. Commands log start/outcome and best-effort failures
// there; user-facing output never goes through the logger. Setting
// FAST_TASK_DEBUG=1 raises the level to debug.
func Setup(configDir string) {
	level := log.InfoLevel
	if os.Getenv("FAST_TASK_DEBUG") == "1" {
		level = log.DebugLevel
	}

	log.DefaultLogger = log.Logger{
		Level:      level,
		TimeFormat: "2006-01-02 15:04:05",
		Writer: &log.FileWriter{
			Filename:     filepath.Join(configDir, "fast-task.log"),
			MaxSize:      10 << 20,
			MaxBackups:   2,
			EnsureFolder: true,
			LocalTime:    true,
		},
	}
}
