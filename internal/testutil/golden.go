package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/otiai10/copy"
)

// SetUpFromGoldenFile copies the golden file of the current test into a temp directory.
// The file must exist in directory testdata/ and be named after the test.
func SetUpFromGoldenFile(t *testing.T) string {
	return SetUpFromGoldenFileNamed(t, t.Name()+".md")
}

// SetUpFromGoldenFileNamed copies the given golden file into a temp directory.
func SetUpFromGoldenFileNamed(t *testing.T, filename string) string {
	fileIn := filepath.Join("testdata", filename)
	stat, err := os.Lstat(fileIn)
	if err != nil {
		t.Fatal(err)
	}

	in, err := os.ReadFile(fileIn)
	if err != nil {
		t.Fatal(err)
	}

	fileOut := filepath.Join(t.TempDir(), filepath.Base(filename))
	if err := os.WriteFile(fileOut, in, stat.Mode()); err != nil {
		t.Fatal(err)
	}
	return fileOut
}

// SetUpFromFileContent creates a temp file with the given content.
// The relative path may contain directories (ex: ai/2025/08/05.md).
func SetUpFromFileContent(t *testing.T, relativePath string, content string) string {
	fileOut := filepath.Join(t.TempDir(), filepath.FromSlash(relativePath))
	if err := os.MkdirAll(filepath.Dir(fileOut), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fileOut, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return fileOut
}

// SetUpFromGoldenDir copies the golden directory of the current test into a temp directory.
func SetUpFromGoldenDir(t *testing.T) string {
	return SetUpFromGoldenDirNamed(t, t.Name())
}

// SetUpFromGoldenDirNamed copies the given golden directory into a temp directory.
// Tests are free to edit the copy.
func SetUpFromGoldenDirNamed(t *testing.T, dirname string) string {
	dirIn := filepath.Join("testdata", dirname)
	dirOut := filepath.Join(t.TempDir(), filepath.Base(dirname))
	if err := copy.Copy(dirIn, dirOut); err != nil {
		t.Fatalf("failed copying golden dir %s: %v", dirIn, err)
	}
	return dirOut
}

// GoldenFile reads the content of the golden file of the current test.
func GoldenFile(t *testing.T) []byte {
	return GoldenFileNamed(t, t.Name()+".md")
}

// GoldenFileNamed reads the content of the given golden file.
func GoldenFileNamed(t *testing.T, filename string) []byte {
	path := filepath.Join("testdata", filename)
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed reading golden file %s: %v", path, err)
	}
	return b
}
