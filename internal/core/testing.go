package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/moxxiRan/daily-site/internal/testutil"
	"github.com/moxxiRan/daily-site/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reset forces singletons to be recreated. Useful between unit tests.
func Reset() {
	configOnce.Reset()
	configSingleton = nil
	loggerOnce.Reset()
}

/* Fixtures */

// SetUpSiteFromTempDir populates a temp directory containing a valid daily.toml.
func SetUpSiteFromTempDir(t *testing.T) string {
	dirname := t.TempDir()
	configureDir(t, dirname)
	return dirname
}

// SetUpSiteFromFiles populates a temp directory with the given files (relative path => content).
func SetUpSiteFromFiles(t *testing.T, files map[string]string) string {
	dirname := t.TempDir()
	for relativePath, content := range files {
		path := filepath.Join(dirname, filepath.FromSlash(relativePath))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	configureDir(t, dirname)
	return dirname
}

// SetUpSiteFromGoldenFileNamed populates a temp site containing a single post copied from testdata/.
func SetUpSiteFromGoldenFileNamed(t *testing.T, filename string, relativePath string) string {
	golden := testutil.SetUpFromGoldenFileNamed(t, filename)
	content, err := os.ReadFile(golden)
	require.NoError(t, err)
	return SetUpSiteFromFiles(t, map[string]string{
		relativePath: string(content),
	})
}

func configureDir(t *testing.T, dirname string) {
	configPath := filepath.Join(dirname, ConfigFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Create a default configuration if not exists for CurrentConfig() to work
		if err := os.WriteFile(configPath, []byte(DefaultConfig), 0644); err != nil {
			t.Fatal(err)
		}
	}
	// Force the application to consider the temporary directory as the home
	t.Setenv("DAILY_HOME", dirname)
	Reset()
	t.Cleanup(Reset)

	// Force debug level in tests to diagnose more easily
	CurrentLogger().SetVerboseLevel(VerboseDebug)
	CurrentLogger().Debugf("✨ Set up directory %q", dirname)
}

/* Reproducible Tests */

// FreezeNow wraps the clock API to register the cleanup function at the end of the test.
func FreezeNow(t *testing.T) time.Time {
	now := clock.Freeze()
	t.Cleanup(clock.Unfreeze)
	return now.Now()
}

// FreezeAt wraps the clock API to register the cleanup function at the end of the test.
func FreezeAt(t *testing.T, point time.Time) time.Time {
	now := clock.FreezeAt(point)
	t.Cleanup(clock.Unfreeze)
	return now.Now()
}

/* Test Helpers */

func mustReadFile(t *testing.T, path string) string {
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func assertTrimEqual(t *testing.T, expected string, actual string) {
	assert.Equal(t, strings.TrimSpace(expected), strings.TrimSpace(actual))
}

/* Text Helpers */

// ReplaceLine replaces a line inside a file.
func ReplaceLine(t *testing.T, path string, lineNumber int, oldLine string, newLine string) {
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	require.LessOrEqual(t, lineNumber, len(lines))
	require.Equal(t, oldLine, lines[lineNumber-1])
	lines[lineNumber-1] = newLine
	content := strings.Join(lines, "\n")
	os.WriteFile(path, []byte(content), 0644)
}

// AppendLines append multiple lines in a file.
func AppendLines(t *testing.T, path string, text string) {
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	newLines := strings.Split(text, "\n")
	lines = append(lines, newLines...)
	content := strings.Join(lines, "\n")
	os.WriteFile(path, []byte(content), 0644)
}
