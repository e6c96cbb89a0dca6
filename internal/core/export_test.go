package core

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport(t *testing.T) {
	SetUpSiteFromFiles(t, map[string]string{
		"daily.toml": `
[content]
ignore = ["drafts/"]
`,
		"public/ai/2025/08/05.md":  "# Today\n",
		"public/manifest.json":     "{}",
		"public/drafts/2025.md":    "# Draft\n",
		"public/.env":              "SECRET=1",
		"public/images/cover.png":  "PNG",
	})
	config := CurrentConfig()
	target := filepath.Join(t.TempDir(), "site")

	require.NoError(t, config.Export(target))
	assert.Equal(t, "# Today\n", mustReadFile(t, filepath.Join(target, "ai", "2025", "08", "05.md")))
	assert.FileExists(t, filepath.Join(target, "manifest.json"))
	assert.FileExists(t, filepath.Join(target, "images", "cover.png"))
	assert.NoDirExists(t, filepath.Join(target, "drafts"))
	assert.NoFileExists(t, filepath.Join(target, ".env"))

	// Cannot export inside the content root
	err := config.Export(filepath.Join(config.ContentDir(), "dist"))
	assert.ErrorContains(t, err, "must be outside the content root")
}
