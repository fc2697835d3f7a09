package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogLevels(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{
			level:    "error",
			expected: []string{"ERROR"},
			excluded: []string{"WARN", "INFO", "DEBUG"},
		},
		{
			level:    "warn",
			expected: []string{"ERROR", "WARN"},
			excluded: []string{"INFO", "DEBUG"},
		},
		{
			level:    "info",
			expected: []string{"ERROR", "WARN", "INFO"},
			excluded: []string{"DEBUG"},
		},
		{
			level:    "debug",
			expected: []string{"ERROR", "WARN", "INFO", "DEBUG"},
			excluded: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(tempDir, tt.level+".log")

			cfg := FileConfig{
				Path:       logFile,
				MaxSizeMB:  10,
				MaxBackups: 1,
				MaxAgeDays: 1,
				Compress:   false,
			}

			if err := InitWithFileConfig(tt.level, cfg, false); err != nil {
				t.Fatalf("failed to init logger: %v", err)
			}

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")

			Sync()

			content, err := os.ReadFile(logFile)
			if err != nil {
				t.Fatalf("failed to read log file: %v", err)
			}
			logText := string(content)

			for _, want := range tt.expected {
				if !strings.Contains(logText, want) {
					t.Errorf("level %s: expected %s entries in log", tt.level, want)
				}
			}
			for _, unwanted := range tt.excluded {
				if strings.Contains(logText, unwanted) {
					t.Errorf("level %s: unexpected %s entries in log", tt.level, unwanted)
				}
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	if parseLevel("bogus") != parseLevel("info") {
		t.Error("unknown level should fall back to info")
	}
	if parseLevel("debug") == parseLevel("error") {
		t.Error("debug and error must map to distinct levels")
	}
}

func TestInitWithoutOutputs(t *testing.T) {
	// No file, no console: logger must still be usable.
	if err := InitWithFileConfig("info", FileConfig{}, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	Info("goes nowhere")
	Sugar.Debugf("also nowhere: %d", 42)
	Sync()
}
